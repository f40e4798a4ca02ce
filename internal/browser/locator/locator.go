// Package locator finds the controls that correspond to logical profile
// fields on an arbitrary page. Each field has a ranked chain: selector
// patterns first, then keyword matching against inferred labels.
package locator

import (
	"strings"
	"sync"
	"unicode"

	"github.com/andybalholm/cascadia"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/width"

	"github.com/geofill/geofill-cli/api/schemas"
	"github.com/geofill/geofill-cli/internal/browser/dom"
	"github.com/geofill/geofill-cli/internal/browser/label"
)

// Match is one located control and how it was found.
type Match struct {
	Node  *html.Node
	Field string
	// Stage is schemas.StagePattern or schemas.StageLabel.
	Stage string
	// Pattern is the selector or keyword that hit.
	Pattern string
	Label   label.Result
}

// Locator resolves logical fields against one document.
type Locator struct {
	doc       *dom.Document
	oracle    dom.VisibilityOracle
	catalogue Catalogue
	labelOpts label.Options
	logger    *zap.Logger

	mu       sync.Mutex
	compiled map[string]cascadia.SelectorGroup
	labels   map[*html.Node]label.Result
}

// Option configures a Locator.
type Option func(*Locator)

// WithCatalogue replaces the built-in rules.
func WithCatalogue(c Catalogue) Option {
	return func(l *Locator) { l.catalogue = c }
}

// WithLabelOptions bounds label inference in the keyword stage.
func WithLabelOptions(o label.Options) Option {
	return func(l *Locator) { l.labelOpts = o }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Locator) { l.logger = logger }
}

// New returns a Locator over doc. Visibility is decided by oracle.
func New(doc *dom.Document, oracle dom.VisibilityOracle, opts ...Option) *Locator {
	l := &Locator{
		doc:       doc,
		oracle:    oracle,
		catalogue: DefaultCatalogue(),
		labelOpts: label.DefaultOptions(),
		logger:    zap.NewNop(),
		compiled:  make(map[string]cascadia.SelectorGroup),
		labels:    make(map[*html.Node]label.Result),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.Named("locator")
	return l
}

// Document returns the document being searched.
func (l *Locator) Document() *dom.Document { return l.doc }

// Oracle returns the visibility oracle in use.
func (l *Locator) Oracle() dom.VisibilityOracle { return l.oracle }

// Catalogue returns the rules in use.
func (l *Locator) Catalogue() Catalogue { return l.catalogue }

// Locate returns the first usable control for field, or nil.
func (l *Locator) Locate(field string) *Match {
	return l.LocateExcept(field, nil)
}

// LocateExcept is Locate with the controls skip reports as taken left out,
// so a field falls through to its next candidate instead of reusing a
// control another field already claimed. A nil skip excludes nothing.
func (l *Locator) LocateExcept(field string, skip func(*html.Node) bool) *Match {
	rule, ok := l.catalogue.Rule(field)
	if !ok {
		return nil
	}
	for _, pattern := range rule.Patterns {
		for _, n := range l.query(pattern) {
			if l.usable(n) && !excluded(skip, n) {
				return l.match(n, field, schemas.StagePattern, pattern)
			}
		}
	}
	if matches := l.byLabel(field, rule, true, skip); len(matches) > 0 {
		return matches[0]
	}
	l.logger.Debug("Field not found.", zap.String("field", field))
	return nil
}

// LocateAll returns every usable control matched by any of field's
// patterns, each once, in pattern order. When no pattern matches, the
// keyword stage supplies the result instead.
func (l *Locator) LocateAll(field string) []*Match {
	rule, ok := l.catalogue.Rule(field)
	if !ok {
		return nil
	}
	var out []*Match
	seen := make(map[*html.Node]bool)
	for _, pattern := range rule.Patterns {
		for _, n := range l.query(pattern) {
			if seen[n] || !l.usable(n) {
				continue
			}
			seen[n] = true
			out = append(out, l.match(n, field, schemas.StagePattern, pattern))
		}
	}
	if len(out) > 0 {
		return out
	}
	return l.byLabel(field, rule, false, nil)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func excluded(skip func(*html.Node) bool, n *html.Node) bool {
	return skip != nil && skip(n)
}

// Label returns the inferred label of n, computed once per node.
func (l *Locator) Label(n *html.Node) label.Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	if res, ok := l.labels[n]; ok {
		return res
	}
	res := label.Infer(l.doc, n, l.labelOpts)
	l.labels[n] = res
	return res
}

func (l *Locator) match(n *html.Node, field, stage, pattern string) *Match {
	return &Match{Node: n, Field: field, Stage: stage, Pattern: pattern, Label: l.Label(n)}
}

func (l *Locator) usable(n *html.Node) bool {
	return dom.IsEditable(n) && l.oracle.Visible(n)
}

// query runs a pattern. A pattern that does not compile is logged once and
// then matches nothing.
func (l *Locator) query(pattern string) []*html.Node {
	l.mu.Lock()
	sel, seen := l.compiled[pattern]
	if !seen {
		var err error
		sel, err = cascadia.ParseGroup(pattern)
		if err != nil {
			l.logger.Warn("Skipping invalid selector pattern.", zap.String("pattern", pattern), zap.Error(err))
			sel = nil
		}
		l.compiled[pattern] = sel
	}
	l.mu.Unlock()
	if sel == nil {
		return nil
	}
	return l.doc.Match(sel)
}

// byLabel tests the inferred label of every visible editable control
// against keywords. Checkboxes and radios are left to the injector's
// group matching.
func (l *Locator) byLabel(field string, rule Rule, first bool, skip func(*html.Node) bool) []*Match {
	if len(rule.Keywords) == 0 {
		return nil
	}
	type keyword struct{ raw, folded string }
	folded := make([]keyword, 0, len(rule.Keywords))
	for _, kw := range rule.Keywords {
		if f := Fold(kw); f != "" {
			folded = append(folded, keyword{raw: kw, folded: f})
		}
	}
	var exclude []string
	for _, ex := range rule.Exclude {
		if f := Fold(ex); f != "" {
			exclude = append(exclude, f)
		}
	}

	var out []*Match
	for _, n := range l.doc.Controls(l.oracle) {
		if dom.IsCheckable(n) || excluded(skip, n) {
			continue
		}
		text := Fold(l.Label(n).Text)
		if text == "" || containsAny(text, exclude) {
			continue
		}
		for _, kw := range folded {
			if strings.Contains(text, kw.folded) {
				out = append(out, l.match(n, field, schemas.StageLabel, kw.raw))
				break
			}
		}
		if first && len(out) > 0 {
			break
		}
	}
	return out
}

// Fold prepares text for keyword comparison: full-width forms become their
// narrow equivalents, case is folded and whitespace is removed.
func Fold(s string) string {
	s = width.Fold.String(s)
	s = cases.Fold().String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
