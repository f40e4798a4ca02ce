// internal/browser/session/context_utils.go
package session

import (
	"context"
)

// CombineContext returns a context derived from primary that is also
// canceled when secondary is done. Values come from primary only, which
// matters for chromedp: the tab lives in primary and the caller's deadline
// lives in secondary.
func CombineContext(primary, secondary context.Context) (context.Context, context.CancelFunc) {
	combined, cancel := context.WithCancel(primary)
	stop := context.AfterFunc(secondary, cancel)
	return combined, func() {
		stop()
		cancel()
	}
}
