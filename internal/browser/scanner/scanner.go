// File: internal/browser/scanner/scanner.go
package scanner

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/geofill/geofill-cli/api/schemas"
	"github.com/geofill/geofill-cli/internal/browser/dom"
	"github.com/geofill/geofill-cli/internal/browser/label"
	"github.com/geofill/geofill-cli/internal/browser/locator"
	"github.com/geofill/geofill-cli/internal/config"
)

// PageInfo is what the caller knows about the page beyond its markup.
type PageInfo struct {
	// URL overrides the document URL when set.
	URL string
	// BrowserLanguage is used when the page declares no language.
	BrowserLanguage string
}

// Scanner describes the fillable controls of a page without deciding what
// to put in them.
type Scanner struct {
	cfg    config.ScannerConfig
	logger *zap.Logger
	now    func() time.Time
}

// New returns a Scanner. Zero bounds in cfg take their defaults.
func New(cfg config.ScannerConfig, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.AncestorDepth <= 0 {
		cfg.AncestorDepth = 5
	}
	if cfg.SiblingHops <= 0 {
		cfg.SiblingHops = label.DefaultSiblingHops
	}
	if cfg.LabelMaxLength <= 0 {
		cfg.LabelMaxLength = label.DefaultMaxLength
	}
	if cfg.ContextMaxLength <= 0 {
		cfg.ContextMaxLength = 300
	}
	return &Scanner{cfg: cfg, logger: logger.Named("scanner"), now: time.Now}
}

// Scan enumerates the visible editable controls of doc and summarizes the page.
func (s *Scanner) Scan(doc *dom.Document, oracle dom.VisibilityOracle, info PageInfo) schemas.ScanResult {
	controls := doc.Controls(oracle)
	fields := make([]schemas.FieldDescriptor, 0, len(controls))
	for i, n := range controls {
		fields = append(fields, s.describe(doc, n, i))
	}
	linkNeighbours(fields)
	linkRelated(fields)

	result := schemas.ScanResult{
		ScanID:    uuid.New().String(),
		ScannedAt: s.now().UTC(),
		Page:      s.pageContext(doc, oracle, info),
		Fields:    fields,
	}
	s.logger.Debug("Scan complete.",
		zap.String("scan_id", result.ScanID),
		zap.String("url", result.Page.URL),
		zap.Int("fields", len(fields)),
		zap.String("page_type", string(result.Page.PageType)),
	)
	return result
}

// FieldID is the identifier id-map filling resolves: the element id, else
// its name, else field_<index>.
func FieldID(n *html.Node, index int) string {
	if id := dom.Attr(n, "id"); id != "" {
		return id
	}
	if name := dom.Attr(n, "name"); name != "" {
		return name
	}
	return fmt.Sprintf("field_%d", index)
}

func (s *Scanner) describe(doc *dom.Document, n *html.Node, index int) schemas.FieldDescriptor {
	lbl := label.Infer(doc, n, label.Options{SiblingHops: s.cfg.SiblingHops, MaxLength: s.cfg.LabelMaxLength})
	fd := schemas.FieldDescriptor{
		ID:           FieldID(n, index),
		Index:        index,
		Tag:          dom.Tag(n),
		Type:         dom.InputType(n),
		Name:         dom.Attr(n, "name"),
		ElementID:    dom.Attr(n, "id"),
		Label:        lbl.Text,
		LabelSource:  lbl.Source,
		Placeholder:  dom.Attr(n, "placeholder"),
		Value:        dom.Value(n),
		Checked:      dom.Checked(n),
		Required:     dom.HasAttr(n, "required") || strings.EqualFold(dom.Attr(n, "aria-required"), "true"),
		Pattern:      dom.Attr(n, "pattern"),
		Min:          dom.Attr(n, "min"),
		Max:          dom.Attr(n, "max"),
		Autocomplete: dom.Attr(n, "autocomplete"),
		Context:      s.expandedContext(n),
		Group:        s.group(n),
		XPath:        dom.GenerateUniqueXPath(n),
	}
	if ml, err := strconv.Atoi(strings.TrimSpace(dom.Attr(n, "maxlength"))); err == nil && ml > 0 {
		fd.MaxLength = ml
	}
	if fd.Tag == "select" {
		fd.Options = dom.Options(n)
	}
	return fd
}

// -- Expanded context --

// contextKeywords are the semantic hints looked for in class, id and data-*
// attributes of a control's ancestors.
var contextKeywords = []string{
	"name", "first", "last", "email", "mail", "phone", "tel", "mobile",
	"address", "street", "city", "state", "province", "zip", "postal",
	"country", "birth", "dob", "gender", "password", "user", "login",
	"billing", "shipping", "payment", "card", "company", "contact",
	"personal", "account", "profile", "register", "signup", "newsletter",
	"kana", "furigana",
	"adresse", "nombre", "telefon", "geburt",
	"住所", "氏名", "名前", "電話", "郵便", "生年月日", "性別", "会員", "お届け",
	"姓名", "地址", "电话", "邮箱", "密码",
}

var foldedContextKeywords = sync.OnceValue(func() []string {
	out := make([]string, len(contextKeywords))
	for i, kw := range contextKeywords {
		out[i] = locator.Fold(kw)
	}
	return out
})

// expandedContext walks up to AncestorDepth ancestors collecting keyword
// hits from their attributes and the text of headings and legends they hold.
func (s *Scanner) expandedContext(n *html.Node) string {
	var parts []string
	seen := make(map[string]bool)
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			parts = append(parts, v)
		}
	}

	depth := 0
	for p := n.Parent; p != nil && depth < s.cfg.AncestorDepth; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		depth++
		for _, a := range p.Attr {
			if a.Key != "class" && a.Key != "id" && !strings.HasPrefix(a.Key, "data-") {
				continue
			}
			folded := locator.Fold(a.Val)
			for i, kw := range foldedContextKeywords() {
				if strings.Contains(folded, kw) {
					add(contextKeywords[i])
				}
			}
		}
		if h := headingWithin(p); h != "" {
			add(h)
		}
		if dom.Tag(p) == "body" || dom.Tag(p) == "form" {
			break
		}
	}
	return label.Normalize(strings.Join(parts, " | "), s.cfg.ContextMaxLength)
}

// headingWithin returns the text of the first heading or legend that is a
// direct child of n.
func headingWithin(n *html.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch dom.Tag(c) {
		case "h1", "h2", "h3", "h4", "h5", "h6", "legend":
			return dom.Text(c)
		}
	}
	return ""
}

// -- Group detection --

var groupContainerHints = []string{
	"section", "group", "fieldset", "panel", "card", "block",
	"billing", "shipping", "address", "contact", "personal", "account", "payment",
}

// group names the section a control belongs to: the legend of the nearest
// fieldset, else the first heading inside the nearest semantically named
// container.
func (s *Scanner) group(n *html.Node) string {
	for p := n.Parent; p != nil; p = p.Parent {
		if dom.Tag(p) != "fieldset" {
			continue
		}
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if dom.Tag(c) == "legend" {
				if t := dom.Text(c); t != "" {
					return label.Normalize(t, s.cfg.LabelMaxLength)
				}
			}
		}
	}
	for p := n.Parent; p != nil; p = p.Parent {
		tag := dom.Tag(p)
		if tag == "body" || tag == "html" {
			break
		}
		if tag != "section" && !hasHint(p) {
			continue
		}
		if h := firstHeading(p); h != "" {
			return label.Normalize(h, s.cfg.LabelMaxLength)
		}
	}
	return ""
}

func hasHint(n *html.Node) bool {
	attrs := strings.ToLower(dom.Attr(n, "class") + " " + dom.Attr(n, "id") + " " + dom.Attr(n, "role"))
	for _, h := range groupContainerHints {
		if strings.Contains(attrs, h) {
			return true
		}
	}
	return false
}

func firstHeading(n *html.Node) string {
	var found string
	var walk func(*html.Node) bool
	walk = func(c *html.Node) bool {
		switch dom.Tag(c) {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			found = dom.Text(c)
			return found != ""
		}
		for ch := c.FirstChild; ch != nil; ch = ch.NextSibling {
			if walk(ch) {
				return true
			}
		}
		return false
	}
	walk(n)
	return found
}

// -- Sibling relationships --

func linkNeighbours(fields []schemas.FieldDescriptor) {
	for i := range fields {
		if i > 0 {
			fields[i].PrevField = fields[i-1].ID
		}
		if i < len(fields)-1 {
			fields[i].NextField = fields[i+1].ID
		}
	}
}

// numericSuffix matches a trailing counter such as "_1", "-2", "3" or "[4]".
var numericSuffix = regexp.MustCompile(`[_\-]?\[?\d+\]?$`)

// namePrefix strips a trailing counter from name. ok is false when there
// was none.
func namePrefix(name string) (prefix string, ok bool) {
	prefix = numericSuffix.ReplaceAllString(name, "")
	return prefix, prefix != name && prefix != ""
}

// linkRelated lists, for each field whose name carries a numeric suffix,
// the other fields sharing the stripped prefix (address_1 and address_2).
func linkRelated(fields []schemas.FieldDescriptor) {
	groups := make(map[string][]int)
	for i, f := range fields {
		if prefix, ok := namePrefix(f.Name); ok {
			groups[strings.ToLower(prefix)] = append(groups[strings.ToLower(prefix)], i)
		}
	}
	for i, f := range fields {
		prefix, ok := namePrefix(f.Name)
		if !ok {
			continue
		}
		for _, j := range groups[strings.ToLower(prefix)] {
			if j != i {
				fields[i].RelatedFields = append(fields[i].RelatedFields, fields[j].ID)
			}
		}
	}
}
