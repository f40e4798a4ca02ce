// Package label infers the human-readable label of a form control from the
// markup around it.
package label

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/geofill/geofill-cli/api/schemas"
	"github.com/geofill/geofill-cli/internal/browser/dom"
)

const (
	DefaultSiblingHops = 3
	DefaultMaxLength   = 100
)

// Options bounds the search.
type Options struct {
	// SiblingHops is how many preceding elements are examined.
	SiblingHops int
	// MaxLength caps the returned text in runes.
	MaxLength int
}

// DefaultOptions returns the standard bounds.
func DefaultOptions() Options {
	return Options{SiblingHops: DefaultSiblingHops, MaxLength: DefaultMaxLength}
}

func (o Options) withDefaults() Options {
	if o.SiblingHops <= 0 {
		o.SiblingHops = DefaultSiblingHops
	}
	if o.MaxLength <= 0 {
		o.MaxLength = DefaultMaxLength
	}
	return o
}

// Result is an inferred label and where it came from.
type Result struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// Empty reports whether nothing was found.
func (r Result) Empty() bool { return r.Text == "" }

// labelLikeTags are the elements a preceding-sibling label may be.
var labelLikeTags = map[string]bool{
	"label": true, "span": true, "td": true, "th": true, "div": true, "p": true,
}

// Infer returns the first non-empty label candidate, tried in this order:
// label[for], wrapping label, aria-label, aria-labelledby, aria-describedby,
// title, placeholder, a preceding label-like sibling, the parent's text.
func Infer(doc *dom.Document, n *html.Node, opts Options) Result {
	opts = opts.withDefaults()
	norm := func(s string) string { return Normalize(s, opts.MaxLength) }

	candidates := []struct {
		source string
		text   func() string
	}{
		{schemas.LabelSourceFor, func() string { return labelFor(doc, n) }},
		{schemas.LabelSourceWrapping, func() string { return wrappingLabel(n) }},
		{schemas.LabelSourceAria, func() string { return dom.Attr(n, "aria-label") }},
		{schemas.LabelSourceLabelledBy, func() string { return referencedText(doc, dom.Attr(n, "aria-labelledby")) }},
		{schemas.LabelSourceDescribed, func() string { return referencedText(doc, dom.Attr(n, "aria-describedby")) }},
		{schemas.LabelSourceTitle, func() string { return dom.Attr(n, "title") }},
		{schemas.LabelSourcePlaceholder, func() string { return dom.Attr(n, "placeholder") }},
		{schemas.LabelSourceSibling, func() string { return precedingSibling(n, opts.SiblingHops) }},
		{schemas.LabelSourceParent, func() string { return TextWithoutControls(n.Parent) }},
	}
	for _, c := range candidates {
		if text := norm(c.text()); text != "" {
			return Result{Text: text, Source: c.source}
		}
	}
	return Result{}
}

// Normalize trims, collapses whitespace and caps s at max runes.
func Normalize(s string, max int) string {
	s = dom.CollapseSpace(s)
	if max > 0 && utf8.RuneCountInString(s) > max {
		s = strings.TrimSpace(string([]rune(s)[:max]))
	}
	return s
}

func labelFor(doc *dom.Document, n *html.Node) string {
	id := dom.Attr(n, "id")
	if id == "" || doc == nil {
		return ""
	}
	labels, err := doc.XPath("//label[@for=" + dom.XPathLiteral(id) + "]")
	if err != nil {
		return ""
	}
	for _, l := range labels {
		if text := TextWithoutControls(l); strings.TrimSpace(text) != "" {
			return text
		}
	}
	return ""
}

func wrappingLabel(n *html.Node) string {
	for p := n.Parent; p != nil; p = p.Parent {
		if dom.Tag(p) == "label" {
			return TextWithoutControls(p)
		}
	}
	return ""
}

func referencedText(doc *dom.Document, ids string) string {
	if doc == nil {
		return ""
	}
	var parts []string
	for _, id := range strings.Fields(ids) {
		if ref := doc.ByID(id); ref != nil {
			if text := TextWithoutControls(ref); strings.TrimSpace(text) != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, " ")
}

// precedingSibling walks backwards through element siblings, climbing to the
// parent's siblings when a level runs out, and returns the text of the first
// label-like element that holds no controls of its own.
func precedingSibling(n *html.Node, hops int) string {
	cur := n
	for hops > 0 && cur != nil {
		prev := prevElement(cur)
		if prev == nil {
			cur = cur.Parent
			if cur == nil || dom.Tag(cur) == "form" || dom.Tag(cur) == "body" {
				return ""
			}
			continue
		}
		hops--
		cur = prev
		if !labelLikeTags[dom.Tag(prev)] || containsControl(prev) {
			continue
		}
		if text := TextWithoutControls(prev); strings.TrimSpace(text) != "" {
			return text
		}
	}
	return ""
}

func prevElement(n *html.Node) *html.Node {
	for p := n.PrevSibling; p != nil; p = p.PrevSibling {
		if p.Type == html.ElementNode {
			return p
		}
	}
	return nil
}

func containsControl(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if dom.IsFormControl(c) || containsControl(c) {
			return true
		}
	}
	return false
}

// skippedText are elements whose text never belongs to a label.
var skippedText = map[string]bool{
	"input": true, "select": true, "textarea": true, "option": true, "button": true,
	"script": true, "style": true, "noscript": true, "template": true,
}

// TextWithoutControls returns the text under n, skipping form controls and
// non-rendered elements.
func TextWithoutControls(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
			b.WriteByte(' ')
			return
		case html.ElementNode:
			if skippedText[dom.Tag(c)] {
				return
			}
		}
		for ch := c.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(n)
	return dom.CollapseSpace(b.String())
}
