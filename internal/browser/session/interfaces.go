// internal/browser/session/interfaces.go
package session

import (
	"context"

	"github.com/geofill/geofill-cli/internal/browser/dom"
)

// Page is a loaded document as the scanner and injector see it. Session
// serves static HTML and ChromeSession serves a live tab.
type Page interface {
	// ID identifies the page for logs.
	ID() string
	// URL is the final URL after redirects.
	URL() string
	// Language is the browser language reported for the page.
	Language() string

	Document() (*dom.Document, error)
	Oracle() (dom.VisibilityOracle, error)
	Setter() (dom.ValueSetter, error)

	Close(ctx context.Context) error
}

var (
	_ Page = (*Session)(nil)
	_ Page = (*ChromeSession)(nil)
)
