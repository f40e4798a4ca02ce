// File: internal/browser/style/style.go
package style

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	cssparser "github.com/aymerick/douceur/parser"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// DefaultUserAgentCSS hides the elements a browser never renders.
const DefaultUserAgentCSS = `
head, script, style, template, noscript, title, meta, link, base, datalist, param { display: none; }
[hidden] { display: none; }
input[type="hidden" i] { display: none; }
div, p, form, fieldset, section, article, header, footer, nav, main, ul, ol, li, table, h1, h2, h3, h4, h5, h6 { display: block; }
input, button, textarea, select { display: inline-block; }
`

// -- Stylesheets --

type rule struct {
	selector    cascadia.Sel
	specificity cascadia.Specificity
	decls       []*css.Declaration
}

// Sheet is a parsed stylesheet with its selectors compiled.
type Sheet struct {
	rules []rule
}

// ParseSheet parses CSS text. Rules whose selectors cascadia cannot compile
// (pseudo-elements, dynamic pseudo-classes) are dropped. Rules inside @media
// blocks apply unless the block targets print only.
func ParseSheet(src string) (*Sheet, error) {
	parsed, err := cssparser.Parse(src)
	if err != nil {
		return nil, err
	}
	sheet := &Sheet{}
	sheet.addRules(parsed.Rules)
	return sheet, nil
}

func (s *Sheet) addRules(rules []*css.Rule) {
	for _, r := range rules {
		if r.Kind == css.AtRule {
			if r.Name == "@media" && !printOnly(r.Prelude) {
				s.addRules(r.Rules)
			}
			continue
		}
		for _, raw := range r.Selectors {
			sel, err := cascadia.Parse(raw)
			if err != nil || sel.PseudoElement() != "" {
				continue
			}
			s.rules = append(s.rules, rule{selector: sel, specificity: sel.Specificity(), decls: r.Declarations})
		}
	}
}

func printOnly(prelude string) bool {
	p := strings.ToLower(prelude)
	return strings.Contains(p, "print") && !strings.Contains(p, "screen") && !strings.Contains(p, "all")
}

// Len returns the number of compiled rules.
func (s *Sheet) Len() int { return len(s.rules) }

// -- The Cascade --

// Origin is where a declaration came from.
type Origin int

const (
	OriginUserAgent Origin = iota
	OriginAuthor
	OriginInline
)

type declaration struct {
	property    string
	value       string
	important   bool
	origin      Origin
	specificity cascadia.Specificity
	order       int
}

// cascadePriority orders origins, with !important reversing them.
func cascadePriority(d declaration) int {
	switch d.origin {
	case OriginUserAgent:
		if d.important {
			return 6
		}
		return 1
	case OriginAuthor:
		if d.important {
			return 4
		}
		return 2
	case OriginInline:
		if d.important {
			return 5
		}
		return 3
	}
	return 0
}

func lessSpecific(a, b cascadia.Specificity) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

var inlineSpecificity = cascadia.Specificity{1, 0, 0}

// Engine computes styles for static HTML.
type Engine struct {
	userAgent *Sheet
	author    []*Sheet
	logger    *zap.Logger
}

// NewEngine creates an Engine with the default user agent sheet.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	ua, err := ParseSheet(DefaultUserAgentCSS)
	if err != nil {
		// The embedded sheet is constant.
		panic(err)
	}
	return &Engine{userAgent: ua, logger: logger}
}

// AddAuthorSheet appends a page stylesheet. Later sheets win ties.
func (e *Engine) AddAuthorSheet(s *Sheet) {
	e.author = append(e.author, s)
}

// AddAuthorCSS parses and appends a page stylesheet.
func (e *Engine) AddAuthorCSS(src string) error {
	s, err := ParseSheet(src)
	if err != nil {
		return err
	}
	e.AddAuthorSheet(s)
	return nil
}

// CalculateStyles returns the cascaded (not inherited) declarations for node.
func (e *Engine) CalculateStyles(node *html.Node) map[string]string {
	styles := make(map[string]string)
	if node == nil || node.Type != html.ElementNode {
		return styles
	}

	var decls []declaration
	order := 0
	collect := func(s *Sheet, origin Origin) {
		for _, r := range s.rules {
			if !r.selector.Match(node) {
				continue
			}
			for _, d := range r.decls {
				decls = append(decls, declaration{
					property:    strings.ToLower(d.Property),
					value:       strings.TrimSpace(d.Value),
					important:   d.Important,
					origin:      origin,
					specificity: r.specificity,
					order:       order,
				})
				order++
			}
		}
	}

	collect(e.userAgent, OriginUserAgent)
	for _, s := range e.author {
		collect(s, OriginAuthor)
	}
	for _, attr := range node.Attr {
		if attr.Key != "style" {
			continue
		}
		inline, err := cssparser.ParseDeclarations(attr.Val)
		if err != nil {
			e.logger.Debug("Ignoring malformed inline style.", zap.String("style", attr.Val), zap.Error(err))
			continue
		}
		for _, d := range inline {
			decls = append(decls, declaration{
				property:    strings.ToLower(d.Property),
				value:       strings.TrimSpace(d.Value),
				important:   d.Important,
				origin:      OriginInline,
				specificity: inlineSpecificity,
				order:       order,
			})
			order++
		}
	}

	sort.SliceStable(decls, func(i, j int) bool {
		d1, d2 := decls[i], decls[j]
		if p1, p2 := cascadePriority(d1), cascadePriority(d2); p1 != p2 {
			return p1 < p2
		}
		if d1.specificity != d2.specificity {
			return lessSpecific(d1.specificity, d2.specificity)
		}
		return d1.order < d2.order
	})
	for _, d := range decls {
		styles[d.property] = d.value
	}
	return styles
}

// -- Visibility --

// Oracle answers visibility questions for one static document. Computed
// styles are cached per node; call Invalidate after changing styles.
type Oracle struct {
	engine *Engine

	mu    sync.Mutex
	cache map[*html.Node]map[string]string
}

// NewOracle builds an Oracle from the <style> elements found under root.
func NewOracle(root *html.Node, logger *zap.Logger) *Oracle {
	engine := NewEngine(logger)
	for _, src := range collectStyleText(root) {
		if err := engine.AddAuthorCSS(src); err != nil {
			engine.logger.Debug("Skipping unparsable stylesheet.", zap.Error(err))
		}
	}
	return NewOracleWithEngine(engine)
}

// NewOracleWithEngine builds an Oracle over a prepared Engine.
func NewOracleWithEngine(engine *Engine) *Oracle {
	return &Oracle{engine: engine, cache: make(map[*html.Node]map[string]string)}
}

func collectStyleText(n *html.Node) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n == nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "style" && !isNonScreenMedia(n) {
			var b strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					b.WriteString(c.Data)
				}
			}
			out = append(out, b.String())
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func isNonScreenMedia(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Key == "media" {
			return printOnly(a.Val)
		}
	}
	return false
}

// Invalidate drops cached styles.
func (o *Oracle) Invalidate() {
	o.mu.Lock()
	o.cache = make(map[*html.Node]map[string]string)
	o.mu.Unlock()
}

func (o *Oracle) cascaded(n *html.Node) map[string]string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if s, ok := o.cache[n]; ok {
		return s
	}
	s := o.engine.CalculateStyles(n)
	o.cache[n] = s
	return s
}

// ComputedStyle returns n's cascaded styles with visibility inherited from
// its ancestors.
func (o *Oracle) ComputedStyle(n *html.Node) map[string]string {
	own := o.cascaded(n)
	out := make(map[string]string, len(own)+1)
	for k, v := range own {
		out[k] = v
	}
	if v, ok := out["visibility"]; !ok || v == "inherit" {
		out["visibility"] = o.inheritedVisibility(n.Parent)
	}
	return out
}

func (o *Oracle) inheritedVisibility(n *html.Node) string {
	for ; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		if v, ok := o.cascaded(n)["visibility"]; ok && v != "inherit" {
			return v
		}
	}
	return "visible"
}

// Visible reports whether n would be rendered: no ancestor-or-self has
// display none or zero opacity, the inherited visibility is not hidden or
// collapse, and n has no explicit zero width or height.
func (o *Oracle) Visible(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type != html.ElementNode {
			continue
		}
		s := o.cascaded(cur)
		if s["display"] == "none" {
			return false
		}
		if op, ok := s["opacity"]; ok && parseOpacity(op) <= 0 {
			return false
		}
	}

	s := o.ComputedStyle(n)
	switch s["visibility"] {
	case "hidden", "collapse":
		return false
	}
	if isZeroLength(s["width"]) || isZeroLength(s["height"]) {
		return false
	}
	return true
}

func parseOpacity(v string) float64 {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
		if err != nil {
			return 1
		}
		return f / 100
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 1
	}
	return f
}

// isZeroLength reports whether a CSS length is explicitly zero ("0", "0px", "0%", "0em").
func isZeroLength(v string) bool {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "" {
		return false
	}
	num := strings.TrimRight(v, "abcdefghijklmnopqrstuvwxyz%")
	if num == "" {
		return false
	}
	f, err := strconv.ParseFloat(num, 64)
	return err == nil && f == 0
}
