// internal/browser/session/chrome.go
package session

import (
	"context"
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	cdpnet "github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	json "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/geofill/geofill-cli/internal/browser/dom"
	"github.com/geofill/geofill-cli/internal/config"
)

//go:embed js/snapshot.js
var snapshotJS string

//go:embed js/setter.js
var setterJS string

// snapshotMark is the attribute the snapshot script tags elements with.
const snapshotMark = "data-geofill-idx"

const defaultSnapshotTimeout = 10 * time.Second

// ChromeSession drives one Chrome tab. After every navigation the page is
// snapshotted into a Document whose visibility comes from the browser's own
// computed styles; writes go to the live page and are mirrored in the
// Document.
type ChromeSession struct {
	id      string
	cfg     config.BrowserConfig
	netCfg  config.NetworkConfig
	limiter *rate.Limiter
	logger  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	doc      *dom.Document
	oracle   dom.NodeSetOracle
	setter   *ChromeSetter
	language string

	closeOnce sync.Once
}

// ChromeOption configures a ChromeSession.
type ChromeOption func(*ChromeSession)

// WithChromeLimiter makes every navigation wait on l.
func WithChromeLimiter(l *rate.Limiter) ChromeOption {
	return func(s *ChromeSession) { s.limiter = l }
}

// AllocatorOptions builds the exec allocator options for cfg.
func AllocatorOptions(cfg config.BrowserConfig, netCfg config.NetworkConfig) []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
	}
	if cfg.Headless {
		opts = append(opts, chromedp.Headless)
	}
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}
	if w, h := cfg.Viewport["width"], cfg.Viewport["height"]; w > 0 && h > 0 {
		opts = append(opts, chromedp.WindowSize(w, h))
	}
	if netCfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(netCfg.UserAgent))
	}
	if lang := primaryLanguage(netCfg.AcceptLanguage); lang != "" {
		opts = append(opts, chromedp.Flag("lang", lang))
	}
	if cfg.IgnoreTLSErrors || netCfg.IgnoreTLSErrors {
		opts = append(opts, chromedp.Flag("ignore-certificate-errors", true))
	}
	if netCfg.Proxy.Enabled && netCfg.Proxy.Address != "" {
		opts = append(opts, chromedp.ProxyServer(netCfg.Proxy.Address))
	}

	// Extra args accept both "flag" and "flag=value", with or without dashes.
	for _, arg := range cfg.Args {
		key, value, found := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if found {
			opts = append(opts, chromedp.Flag(key, value))
		} else {
			opts = append(opts, chromedp.Flag(key, true))
		}
	}
	return opts
}

// NewChrome starts a browser and opens a blank tab. The browser lives until
// Close or until ctx is canceled.
func NewChrome(ctx context.Context, cfg config.BrowserConfig, netCfg config.NetworkConfig, logger *zap.Logger, opts ...ChromeOption) (*ChromeSession, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New().String()
	s := &ChromeSession{
		id:     id,
		cfg:    cfg,
		netCfg: netCfg,
		logger: logger.Named("chrome").With(zap.String("session_id", id)),
	}
	for _, opt := range opts {
		opt(s)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, AllocatorOptions(cfg, netCfg)...)
	sugar := s.logger.Sugar()
	tabCtx, tabCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(sugar.Debugf),
		chromedp.WithErrorf(sugar.Debugf),
	)
	s.ctx = tabCtx
	s.cancel = func() {
		tabCancel()
		allocCancel()
	}

	var tasks chromedp.Tasks
	if len(netCfg.Headers) > 0 {
		headers := make(cdpnet.Headers, len(netCfg.Headers))
		for k, v := range netCfg.Headers {
			headers[k] = v
		}
		tasks = append(tasks, cdpnet.Enable(), cdpnet.SetExtraHTTPHeaders(headers))
	}
	if err := chromedp.Run(tabCtx, tasks); err != nil {
		s.cancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	s.logger.Info("Browser started.", zap.Bool("headless", cfg.Headless))
	return s, nil
}

// ID implements Page.
func (s *ChromeSession) ID() string { return s.id }

// runActions runs actions in the tab, bounded by the caller's ctx.
func (s *ChromeSession) runActions(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := CombineContext(s.ctx, ctx)
	defer cancel()
	return chromedp.Run(runCtx, actions...)
}

// Open navigates to target (an http(s) or file URL, or a local path), waits
// for the body and the configured post-load quiet period, then snapshots the page.
func (s *ChromeSession) Open(ctx context.Context, target string) error {
	u, err := chromeURL(target)
	if err != nil {
		return err
	}
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	navCtx := ctx
	if s.netCfg.NavigationTimeout > 0 {
		var cancel context.CancelFunc
		navCtx, cancel = context.WithTimeout(ctx, s.netCfg.NavigationTimeout)
		defer cancel()
	}

	s.logger.Info("Navigating.", zap.String("url", u))
	actions := []chromedp.Action{
		chromedp.Navigate(u),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if s.netCfg.PostLoadWait > 0 {
		actions = append(actions, chromedp.Sleep(s.netCfg.PostLoadWait))
	}
	if err := s.runActions(navCtx, actions...); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", u, err)
	}
	return s.Snapshot(ctx)
}

// chromeURL turns a local path into a file URL and passes URLs through.
func chromeURL(target string) (string, error) {
	if u, err := url.Parse(target); err == nil && len(u.Scheme) > 1 {
		return u.String(), nil
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q: %w", target, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("failed to open %q: %w", abs, err)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

// snapshotPayload is what js/snapshot.js returns.
type snapshotPayload struct {
	URL      string `json:"url"`
	Language string `json:"language"`
	HTML     string `json:"html"`
	Visible  []int  `json:"visible"`
}

// Snapshot re-reads the live page into a new Document. Earlier documents,
// oracles and setters no longer track the page afterwards.
func (s *ChromeSession) Snapshot(ctx context.Context) error {
	timeout := s.cfg.SnapshotTimeout
	if timeout <= 0 {
		timeout = defaultSnapshotTimeout
	}
	snapCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var raw string
	if err := s.runActions(snapCtx, chromedp.Evaluate(snapshotJS, &raw)); err != nil {
		return fmt.Errorf("failed to snapshot page: %w", err)
	}
	var payload snapshotPayload
	if err := json.UnmarshalFromString(raw, &payload); err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}

	doc, oracle, index, err := buildSnapshot(payload)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.doc = doc
	s.oracle = oracle
	s.language = payload.Language
	s.setter = &ChromeSetter{
		session: s,
		mirror:  dom.NewMemorySetter(doc),
		index:   index,
	}
	s.mu.Unlock()

	s.logger.Debug("Page snapshot taken.",
		zap.String("url", payload.URL),
		zap.Int("elements", len(index)),
		zap.Int("visible", len(payload.Visible)))
	return nil
}

// buildSnapshot parses the payload and strips the index marks, returning the
// visible set and the index of every marked node.
func buildSnapshot(p snapshotPayload) (*dom.Document, dom.NodeSetOracle, map[*html.Node]int, error) {
	doc, err := dom.ParseString(p.HTML, p.URL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to parse snapshot of %s: %w", p.URL, err)
	}

	visible := make(map[int]bool, len(p.Visible))
	for _, i := range p.Visible {
		visible[i] = true
	}

	oracle := make(dom.NodeSetOracle)
	index := make(map[*html.Node]int)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			kept := n.Attr[:0]
			for _, a := range n.Attr {
				if a.Key != snapshotMark {
					kept = append(kept, a)
					continue
				}
				if i, err := strconv.Atoi(a.Val); err == nil {
					index[n] = i
					if visible[i] {
						oracle[n] = true
					}
				}
			}
			n.Attr = kept
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc.Root())
	return doc, oracle, index, nil
}

// URL implements Page.
func (s *ChromeSession) URL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return ""
	}
	return s.doc.URL().String()
}

// Language is navigator.language as of the last snapshot.
func (s *ChromeSession) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

// Document implements Page.
func (s *ChromeSession) Document() (*dom.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, ErrNoDocument
	}
	return s.doc, nil
}

// Oracle implements Page.
func (s *ChromeSession) Oracle() (dom.VisibilityOracle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.oracle == nil {
		return nil, ErrNoDocument
	}
	return s.oracle, nil
}

// Setter implements Page.
func (s *ChromeSession) Setter() (dom.ValueSetter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.setter == nil {
		return nil, ErrNoDocument
	}
	return s.setter, nil
}

// Close shuts the tab and the browser.
func (s *ChromeSession) Close(ctx context.Context) error {
	var err error
	s.closeOnce.Do(func() {
		s.logger.Info("Closing browser.")
		closeCtx, cancel := CombineContext(s.ctx, ctx)
		err = chromedp.Cancel(closeCtx)
		cancel()
		s.cancel()
	})
	return err
}

// -- Native setter --

// ChromeSetter writes into the live page through the page helper and then
// mirrors the write into the snapshot Document.
type ChromeSetter struct {
	session *ChromeSession
	mirror  *dom.MemorySetter
	index   map[*html.Node]int

	installOnce sync.Once
	installErr  error
}

var _ dom.ValueSetter = (*ChromeSetter)(nil)

// callTimeout bounds one helper call. Setter calls carry no context of their own.
const callTimeout = 5 * time.Second

func (c *ChromeSetter) install(ctx context.Context) error {
	c.installOnce.Do(func() {
		valueEvents, err := json.MarshalToString(dom.ValueEvents)
		if err != nil {
			c.installErr = err
			return
		}
		checkEvents, err := json.MarshalToString(dom.CheckEvents)
		if err != nil {
			c.installErr = err
			return
		}
		script := fmt.Sprintf("(%s\n)(%s, %s)", setterJS, valueEvents, checkEvents)
		var ok bool
		if err := c.session.runActions(ctx, chromedp.Evaluate(script, &ok)); err != nil {
			c.installErr = fmt.Errorf("failed to install setter helper: %w", err)
		}
	})
	return c.installErr
}

// call invokes window.__geofill[method](idx, arg) and turns a non-empty
// result into an error.
func (c *ChromeSetter) call(n *html.Node, method string, arg interface{}) error {
	idx, ok := c.index[n]
	if !ok {
		return fmt.Errorf("<%s> is not part of the page snapshot", dom.Tag(n))
	}
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	if err := c.install(ctx); err != nil {
		return err
	}

	literal, err := json.MarshalToString(arg)
	if err != nil {
		return err
	}
	var msg string
	expr := fmt.Sprintf("window.__geofill.%s(%d, %s)", method, idx, literal)
	if err := c.session.runActions(ctx, chromedp.Evaluate(expr, &msg)); err != nil {
		return fmt.Errorf("%s on <%s>: %w", method, dom.Tag(n), err)
	}
	if msg != "" {
		return fmt.Errorf("%s on <%s>: %s", method, dom.Tag(n), msg)
	}
	return nil
}

// SetValue implements dom.ValueSetter.
func (c *ChromeSetter) SetValue(n *html.Node, value string) error {
	if err := c.call(n, "setValue", value); err != nil {
		return err
	}
	return c.mirror.SetValue(n, value)
}

// SelectOption implements dom.ValueSetter.
func (c *ChromeSetter) SelectOption(n *html.Node, optionValue string) error {
	if err := c.call(n, "select", optionValue); err != nil {
		return err
	}
	return c.mirror.SelectOption(n, optionValue)
}

// SetChecked implements dom.ValueSetter.
func (c *ChromeSetter) SetChecked(n *html.Node, checked bool) error {
	if err := c.call(n, "check", checked); err != nil {
		return err
	}
	return c.mirror.SetChecked(n, checked)
}

// Mirror returns the in-memory setter that tracks the snapshot Document.
func (c *ChromeSetter) Mirror() *dom.MemorySetter {
	return c.mirror
}
