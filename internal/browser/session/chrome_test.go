// internal/browser/session/chrome_test.go
package session

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/net/html"

	"github.com/geofill/geofill-cli/internal/browser/dom"
	"github.com/geofill/geofill-cli/internal/config"
)

func TestAllocatorOptions(t *testing.T) {
	base := len(AllocatorOptions(config.BrowserConfig{}, config.NetworkConfig{}))

	t.Run("Headless", func(t *testing.T) {
		opts := AllocatorOptions(config.BrowserConfig{Headless: true}, config.NetworkConfig{})
		assert.Len(t, opts, base+1)
	})

	t.Run("EverythingSet", func(t *testing.T) {
		cfg := config.BrowserConfig{
			Headless:        true,
			ExecPath:        "/opt/chrome/chrome",
			Viewport:        map[string]int{"width": 1280, "height": 800},
			IgnoreTLSErrors: true,
			Args:            []string{"--disable-dev-shm-usage", "--remote-debugging-port=0"},
		}
		netCfg := config.NetworkConfig{
			UserAgent:      "geofill-test",
			AcceptLanguage: "de-DE,de;q=0.9",
			Proxy:          config.ProxyConfig{Enabled: true, Address: "127.0.0.1:8080"},
		}
		// headless, exec path, window size, user agent, lang, tls, proxy and two args.
		assert.Len(t, AllocatorOptions(cfg, netCfg), base+9)
	})

	t.Run("PartialViewportIgnored", func(t *testing.T) {
		cfg := config.BrowserConfig{Viewport: map[string]int{"width": 1280}}
		assert.Len(t, AllocatorOptions(cfg, config.NetworkConfig{}), base)
	})

	t.Run("DisabledProxyIgnored", func(t *testing.T) {
		netCfg := config.NetworkConfig{Proxy: config.ProxyConfig{Address: "127.0.0.1:8080"}}
		assert.Len(t, AllocatorOptions(config.BrowserConfig{}, netCfg), base)
	})
}

func TestChromeURL(t *testing.T) {
	u, err := chromeURL("https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", u)

	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0o644))
	u, err = chromeURL(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "file:///"), u)

	_, err = chromeURL(filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}

func TestBuildSnapshot(t *testing.T) {
	payload := snapshotPayload{
		URL:      "https://example.com/join",
		Language: "en-GB",
		HTML: `<!DOCTYPE html><html data-geofill-idx="0"><head data-geofill-idx="1"></head>` +
			`<body data-geofill-idx="2"><form data-geofill-idx="3">` +
			`<input id="name" data-geofill-idx="4" value="Ann">` +
			`<input id="trap" data-geofill-idx="5">` +
			`<input id="plain">` +
			`</form></body></html>`,
		Visible: []int{0, 2, 3, 4},
	}

	doc, oracle, index, err := buildSnapshot(payload)
	require.NoError(t, err)

	name, trap, plain := doc.ByID("name"), doc.ByID("trap"), doc.ByID("plain")
	require.NotNil(t, name)
	assert.True(t, oracle.Visible(name))
	assert.False(t, oracle.Visible(trap))
	assert.False(t, oracle.Visible(plain))

	assert.Equal(t, 4, index[name])
	assert.Equal(t, 5, index[trap])
	_, ok := index[plain]
	assert.False(t, ok)
	assert.Len(t, index, 6)

	assert.NotContains(t, doc.String(), snapshotMark)
	assert.Equal(t, "Ann", dom.Value(name))
	assert.Equal(t, "https://example.com/join", doc.URL().String())
}

func TestChromeSetterRejectsUnknownNode(t *testing.T) {
	doc, err := dom.ParseString(`<input id="x">`, "")
	require.NoError(t, err)
	setter := &ChromeSetter{mirror: dom.NewMemorySetter(doc), index: map[*html.Node]int{}}

	err = setter.SetValue(doc.ByID("x"), "v")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not part of the page snapshot")
	assert.Empty(t, setter.Mirror().Events())
}

// -- Browser-backed tests --

func findChrome(t *testing.T) string {
	t.Helper()
	if p := os.Getenv("GEOFILL_CHROME"); p != "" {
		return p
	}
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell", "chrome"} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	t.Skip("no Chrome binary found")
	return ""
}

const livePage = `<!DOCTYPE html>
<html><head><title>Live</title></head><body>
<form>
  <input id="email" name="email">
  <input id="hidden" name="hp" style="display:none">
  <select id="country"><option value="">--</option><option value="JP">Japan</option></select>
  <input id="terms" type="checkbox">
</form>
<script>
  window.seen = [];
  // A framework-style override: instance writes bypass the prototype.
  const email = document.getElementById('email');
  Object.defineProperty(email, 'value', {
    get() { return Object.getOwnPropertyDescriptor(HTMLInputElement.prototype, 'value').get.call(this); },
    set(v) { window.seen.push('instance-set'); },
  });
  for (const t of ['input', 'change', 'keydown', 'keypress', 'keyup', 'blur', 'click']) {
    document.addEventListener(t, (e) => window.seen.push(t + ':' + e.target.id), true);
  }
</script>
</body></html>`

func TestChromeSession(t *testing.T) {
	execPath := findChrome(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, livePage)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s, err := NewChrome(ctx,
		config.BrowserConfig{Headless: true, ExecPath: execPath},
		config.NetworkConfig{NavigationTimeout: 20 * time.Second},
		zaptest.NewLogger(t))
	require.NoError(t, err)
	defer func() { assert.NoError(t, s.Close(context.Background())) }()

	require.NoError(t, s.Open(ctx, server.URL))
	assert.NotEmpty(t, s.Language())

	doc, err := s.Document()
	require.NoError(t, err)
	assert.Equal(t, "Live", doc.Title())

	oracle, err := s.Oracle()
	require.NoError(t, err)
	assert.True(t, oracle.Visible(doc.ByID("email")))
	assert.False(t, oracle.Visible(doc.ByID("hidden")))

	setter, err := s.Setter()
	require.NoError(t, err)
	require.NoError(t, setter.SetValue(doc.ByID("email"), "ann@example.com"))
	require.NoError(t, setter.SelectOption(doc.ByID("country"), "JP"))
	require.NoError(t, setter.SetChecked(doc.ByID("terms"), true))
	assert.Error(t, setter.SelectOption(doc.ByID("country"), "XX"))

	var live struct {
		Email   string   `json:"email"`
		Country string   `json:"country"`
		Terms   bool     `json:"terms"`
		Seen    []string `json:"seen"`
	}
	require.NoError(t, chromedp.Run(s.ctx, chromedp.Evaluate(`({
		email: document.getElementById('email').value,
		country: document.getElementById('country').value,
		terms: document.getElementById('terms').checked,
		seen: window.seen,
	})`, &live)))

	assert.Equal(t, "ann@example.com", live.Email)
	assert.Equal(t, "JP", live.Country)
	assert.True(t, live.Terms)
	assert.NotContains(t, live.Seen, "instance-set")
	assert.Subset(t, live.Seen, []string{
		"input:email", "change:email", "keydown:email", "keypress:email", "keyup:email", "blur:email",
		"click:terms", "change:terms",
	})

	// The mirror keeps the snapshot in step with the page.
	assert.Equal(t, "ann@example.com", dom.Value(doc.ByID("email")))
	assert.Equal(t, "JP", dom.Value(doc.ByID("country")))
	assert.True(t, dom.Checked(doc.ByID("terms")))

	forms := Forms(doc)
	require.Len(t, forms, 1)
	assert.Equal(t, []string{"ann@example.com"}, forms[0].Values["email"])
}
