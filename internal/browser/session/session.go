// internal/browser/session/session.go
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/geofill/geofill-cli/internal/browser/dom"
	"github.com/geofill/geofill-cli/internal/browser/network"
	"github.com/geofill/geofill-cli/internal/browser/style"
	"github.com/geofill/geofill-cli/internal/config"
)

// ErrNoDocument is returned when a page is used before a document was loaded.
var ErrNoDocument = errors.New("session: no document loaded")

// Session loads static HTML over HTTP or from disk. Visibility comes from the
// CSS cascade of the parsed document and writes land in the parsed tree.
type Session struct {
	id      string
	cfg     config.NetworkConfig
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger

	mu     sync.RWMutex
	doc    *dom.Document
	oracle *style.Oracle
	setter *dom.MemorySetter

	closeOnce sync.Once
}

// Option configures a Session.
type Option func(*Session)

// WithClient replaces the HTTP client built from the network config.
func WithClient(c *http.Client) Option {
	return func(s *Session) { s.client = c }
}

// WithLimiter makes every fetch wait on l. Sessions opened for the same scan
// share one limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(s *Session) { s.limiter = l }
}

// New creates a static session.
func New(cfg config.NetworkConfig, logger *zap.Logger, opts ...Option) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New().String()
	s := &Session{
		id:     id,
		cfg:    cfg,
		logger: logger.Named("session").With(zap.String("session_id", id)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		client, err := network.NewClient(cfg, s.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to build HTTP client: %w", err)
		}
		s.client = client
	}
	return s, nil
}

// ID implements Page.
func (s *Session) ID() string { return s.id }

// Open loads target, which is an http(s) URL, a file:// URL or a local path.
func (s *Session) Open(ctx context.Context, target string) error {
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" || isDriveLetter(u.Scheme) {
		return s.openFile(target)
	}
	switch u.Scheme {
	case "http", "https":
		return s.Navigate(ctx, u.String())
	case "file":
		return s.openFile(u.Path)
	default:
		return fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
}

// isDriveLetter reports whether a parsed scheme is really a Windows drive, as in C:\form.html.
func isDriveLetter(scheme string) bool {
	return len(scheme) == 1
}

func (s *Session) openFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path %q: %w", path, err)
	}
	f, err := os.Open(abs)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", abs, err)
	}
	defer f.Close()

	pageURL := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
	s.logger.Info("Loading local file.", zap.String("path", abs))
	return s.Load(f, pageURL)
}

// Navigate fetches targetURL with GET. Redirects are followed by the client
// and the final URL becomes the document URL.
func (s *Session) Navigate(ctx context.Context, targetURL string) error {
	if s.cfg.NavigationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.NavigationTimeout)
		defer cancel()
	}
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	s.logger.Info("Navigating.", zap.String("url", targetURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for '%s': %w", targetURL, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	return s.processResponse(resp)
}

func (s *Session) processResponse(resp *http.Response) error {
	finalURL := resp.Request.URL.String()
	if resp.StatusCode >= 400 {
		s.logger.Warn("Request resulted in error status code.",
			zap.Int("status", resp.StatusCode), zap.String("url", finalURL))
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || (mediaType != "text/html" && mediaType != "application/xhtml+xml") {
			return fmt.Errorf("%w: %s returned %q", ErrNoDocument, finalURL, ct)
		}
	}
	return s.Load(resp.Body, finalURL)
}

// Load parses HTML from r as the page at pageURL and replaces the current
// document.
func (s *Session) Load(r io.Reader, pageURL string) error {
	doc, err := dom.Parse(r, pageURL)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", pageURL, err)
	}

	s.mu.Lock()
	s.doc = doc
	s.oracle = style.NewOracle(doc.Root(), s.logger)
	s.setter = dom.NewMemorySetter(doc)
	s.mu.Unlock()

	s.logger.Debug("Session state updated.", zap.String("url", pageURL), zap.String("title", doc.Title()))
	return nil
}

// URL implements Page.
func (s *Session) URL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return ""
	}
	return s.doc.URL().String()
}

// Language is the first tag of the configured Accept-Language.
func (s *Session) Language() string {
	return primaryLanguage(s.cfg.AcceptLanguage)
}

func primaryLanguage(acceptLanguage string) string {
	first, _, _ := strings.Cut(acceptLanguage, ",")
	tag, _, _ := strings.Cut(first, ";")
	return strings.TrimSpace(tag)
}

// Document implements Page.
func (s *Session) Document() (*dom.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, ErrNoDocument
	}
	return s.doc, nil
}

// Oracle implements Page.
func (s *Session) Oracle() (dom.VisibilityOracle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.oracle == nil {
		return nil, ErrNoDocument
	}
	return s.oracle, nil
}

// Setter implements Page. The returned setter also records dispatched events.
func (s *Session) Setter() (dom.ValueSetter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.setter == nil {
		return nil, ErrNoDocument
	}
	return s.setter, nil
}

// Close releases idle connections.
func (s *Session) Close(context.Context) error {
	s.closeOnce.Do(func() {
		s.logger.Debug("Closing session.")
		s.client.CloseIdleConnections()
	})
	return nil
}
