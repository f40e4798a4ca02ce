// File: internal/browser/dom/visibility.go
package dom

import "golang.org/x/net/html"

// VisibilityOracle decides whether an element is rendered.
type VisibilityOracle interface {
	Visible(n *html.Node) bool
}

// VisibilityFunc adapts a function to VisibilityOracle.
type VisibilityFunc func(n *html.Node) bool

func (f VisibilityFunc) Visible(n *html.Node) bool { return f(n) }

// NodeSetOracle answers from a precomputed per-node result. Nodes it has no
// entry for are reported as not visible.
type NodeSetOracle map[*html.Node]bool

func (o NodeSetOracle) Visible(n *html.Node) bool { return o[n] }
