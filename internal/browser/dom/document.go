// File: internal/browser/dom/document.go
package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// ErrDetached is returned when a node no longer belongs to the document.
var ErrDetached = errors.New("dom: node is not attached to the document")

// Document is a parsed page. Queries take a read lock and mutations made
// through the package helpers take the write lock.
type Document struct {
	mu   sync.RWMutex
	root *html.Node
	url  *url.URL
}

// NewDocument wraps an already parsed tree.
func NewDocument(root *html.Node, pageURL *url.URL) *Document {
	if pageURL == nil {
		pageURL = &url.URL{}
	}
	return &Document{root: root, url: pageURL}
}

// Parse reads HTML from r. pageURL may be empty.
func Parse(r io.Reader, pageURL string) (*Document, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL %q: %w", pageURL, err)
	}
	root, err := htmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return NewDocument(root, u), nil
}

// ParseString is Parse over a string.
func ParseString(src, pageURL string) (*Document, error) {
	return Parse(strings.NewReader(src), pageURL)
}

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

// URL returns the page URL.
func (d *Document) URL() *url.URL { return d.url }

// Selection returns a goquery view over the whole document.
func (d *Document) Selection() *goquery.Selection {
	return goquery.NewDocumentFromNode(d.root).Selection
}

// QueryAll returns the elements matching a CSS selector in document order.
// A selector that does not compile is reported as an error.
func (d *Document) QueryAll(selector string) ([]*html.Node, error) {
	sel, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return cascadia.QueryAll(d.root, sel), nil
}

// Match returns the elements matched by a compiled selector in document order.
func (d *Document) Match(m cascadia.Matcher) []*html.Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return cascadia.QueryAll(d.root, m)
}

// XPath returns the nodes matching an XPath expression.
func (d *Document) XPath(expr string) ([]*html.Node, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	nodes, err := htmlquery.QueryAll(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("invalid XPath %q: %w", expr, err)
	}
	return nodes, nil
}

// XPathOne returns the first node matching expr, or nil.
func (d *Document) XPathOne(expr string) (*html.Node, error) {
	nodes, err := d.XPath(expr)
	if err != nil || len(nodes) == 0 {
		return nil, err
	}
	return nodes[0], nil
}

// ByID returns the first element whose id equals id.
func (d *Document) ByID(id string) *html.Node {
	if id == "" {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return findFirst(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && Attr(n, "id") == id
	})
}

// Contains reports whether n is part of this document.
func (d *Document) Contains(n *html.Node) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.contains(n)
}

// contains is Contains for callers already holding the lock.
func (d *Document) contains(n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == d.root {
			return true
		}
	}
	return false
}

// Controls returns the visible editable controls of the document in order.
// Their positions are the field indexes used by field_N identifiers.
func (d *Document) Controls(oracle VisibilityOracle) []*html.Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return controls(d.root, oracle)
}

// Render serializes the current tree.
func (d *Document) Render(w io.Writer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return html.Render(w, d.root)
}

// String renders the document, returning "" on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Title returns the trimmed <title> text.
func (d *Document) Title() string {
	return strings.TrimSpace(d.Selection().Find("title").First().Text())
}

// Meta returns the content of <meta name=name>, matched case-insensitively.
func (d *Document) Meta(name string) string {
	var content string
	d.Selection().Find("meta[name]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.EqualFold(s.AttrOr("name", ""), name) {
			content = strings.TrimSpace(s.AttrOr("content", ""))
			return false
		}
		return true
	})
	return content
}

// Language returns the lang attribute of <html>, or "".
func (d *Document) Language() string {
	return strings.TrimSpace(d.Selection().Find("html").First().AttrOr("lang", ""))
}

// mutate runs fn under the write lock after checking n is attached.
func (d *Document) mutate(n *html.Node, fn func()) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.contains(n) {
		return ErrDetached
	}
	fn()
	return nil
}

func findFirst(n *html.Node, pred func(*html.Node) bool) *html.Node {
	if pred(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, pred); found != nil {
			return found
		}
	}
	return nil
}
