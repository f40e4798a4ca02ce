// File: internal/browser/network/httpclient.go
package network

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/geofill/geofill-cli/internal/config"
)

const (
	DefaultDialTimeout           = 15 * time.Second
	DefaultKeepAliveInterval     = 30 * time.Second
	DefaultTLSHandshakeTimeout   = 10 * time.Second
	DefaultResponseHeaderTimeout = 30 * time.Second
	DefaultRequestTimeout        = 60 * time.Second
	DefaultMaxIdleConnsPerHost   = 10
	DefaultIdleConnTimeout       = 90 * time.Second
	MaxRedirects                 = 10

	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// SecureMinTLSVersion is the lowest TLS version accepted unless TLS errors are ignored.
const SecureMinTLSVersion = tls.VersionTLS12

// NewHTTPTransport builds the base transport. Compression is left to
// CompressionMiddleware so brotli is handled alongside gzip and deflate.
func NewHTTPTransport(cfg config.NetworkConfig, logger *zap.Logger) (*http.Transport, error) {
	dialer := &net.Dialer{Timeout: DefaultDialTimeout, KeepAlive: DefaultKeepAliveInterval}

	tlsConfig := &tls.Config{
		MinVersion: SecureMinTLSVersion,
		NextProtos: []string{"h2", "http/1.1"},
	}
	if cfg.IgnoreTLSErrors {
		logger.Warn("TLS certificate verification is disabled.")
		tlsConfig.InsecureSkipVerify = true
	}

	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		TLSClientConfig:       tlsConfig,
		TLSHandshakeTimeout:   DefaultTLSHandshakeTimeout,
		MaxIdleConnsPerHost:   DefaultMaxIdleConnsPerHost,
		IdleConnTimeout:       DefaultIdleConnTimeout,
		ResponseHeaderTimeout: DefaultResponseHeaderTimeout,
		DisableCompression:    true,
		ForceAttemptHTTP2:     true,
		Proxy:                 http.ProxyFromEnvironment,
	}

	if cfg.Proxy.Enabled {
		proxyURL, err := url.Parse(cfg.Proxy.Address)
		if err != nil || proxyURL.Host == "" {
			return nil, fmt.Errorf("invalid proxy address %q", cfg.Proxy.Address)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
		logger.Debug("Routing requests through proxy.", zap.String("proxy", proxyURL.Redacted()))
	}
	return transport, nil
}

// NewClient returns the client used for static page fetches: a cookie jar,
// the configured proxy, default browser headers and transparent decompression.
func NewClient(cfg config.NetworkConfig, logger *zap.Logger) (*http.Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("network")

	transport, err := NewHTTPTransport(cfg, logger)
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return &http.Client{
		Transport: &HeaderMiddleware{
			Transport: NewCompressionMiddleware(transport),
			Headers:   DefaultHeaders(cfg),
		},
		Timeout: timeout,
		Jar:     jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", MaxRedirects)
			}
			logger.Debug("Following redirect.", zap.String("to", req.URL.String()))
			return nil
		},
	}, nil
}

// DefaultHeaders returns the headers every request carries unless the
// request sets them itself.
func DefaultHeaders(cfg config.NetworkConfig) http.Header {
	h := make(http.Header)
	h.Set("User-Agent", DefaultUserAgent)
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	if cfg.UserAgent != "" {
		h.Set("User-Agent", cfg.UserAgent)
	}
	if cfg.AcceptLanguage != "" {
		h.Set("Accept-Language", cfg.AcceptLanguage)
	}
	for k, v := range cfg.Headers {
		h.Set(k, v)
	}
	return h
}

// HeaderMiddleware fills in default headers missing from a request.
type HeaderMiddleware struct {
	Transport http.RoundTripper
	Headers   http.Header
}

// RoundTrip implements http.RoundTripper. The caller's request is not modified.
func (m *HeaderMiddleware) RoundTrip(req *http.Request) (*http.Response, error) {
	missing := false
	for k := range m.Headers {
		if req.Header.Get(k) == "" {
			missing = true
			break
		}
	}
	if missing {
		req = req.Clone(req.Context())
		for k, v := range m.Headers {
			if req.Header.Get(k) == "" {
				req.Header[k] = append([]string(nil), v...)
			}
		}
	}
	return m.Transport.RoundTrip(req)
}
