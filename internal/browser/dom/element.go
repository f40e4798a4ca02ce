// File: internal/browser/dom/element.go
package dom

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/geofill/geofill-cli/api/schemas"
)

// Attr returns the value of attribute key, or "".
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether attribute key is present, even if empty.
func HasAttr(n *html.Node, key string) bool {
	if n == nil {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key, val string) {
	for i, attr := range n.Attr {
		if attr.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	for i, attr := range n.Attr {
		if attr.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// Tag returns the lower-cased element name, or "" for non-elements.
func Tag(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.Data)
}

// InputType returns the lower-cased type of an input ("text" when absent).
// Other controls return their tag name.
func InputType(n *html.Node) string {
	tag := Tag(n)
	if tag != "input" {
		return tag
	}
	t := strings.ToLower(strings.TrimSpace(Attr(n, "type")))
	if t == "" {
		return "text"
	}
	return t
}

// IsFormControl reports input, select and textarea elements.
func IsFormControl(n *html.Node) bool {
	switch Tag(n) {
	case "input", "select", "textarea":
		return true
	}
	return false
}

// IsDisabled reports a disabled control, including one inside a disabled fieldset.
func IsDisabled(n *html.Node) bool {
	if HasAttr(n, "disabled") || strings.EqualFold(Attr(n, "aria-disabled"), "true") {
		return true
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if Tag(p) == "fieldset" && HasAttr(p, "disabled") {
			return true
		}
	}
	return false
}

// IsReadOnly reports a readonly text control.
func IsReadOnly(n *html.Node) bool {
	return IsTextEntry(n) && HasAttr(n, "readonly")
}

// IsTextEntry reports elements that take typed text rather than clicks.
func IsTextEntry(n *html.Node) bool {
	switch Tag(n) {
	case "textarea":
		return true
	case "input":
		switch InputType(n) {
		case "hidden", "submit", "button", "reset", "image", "checkbox", "radio", "file":
			return false
		}
		return true
	}
	return false
}

// IsCheckable reports checkbox and radio inputs.
func IsCheckable(n *html.Node) bool {
	t := InputType(n)
	return Tag(n) == "input" && (t == "checkbox" || t == "radio")
}

// nonFillableTypes are input types that never hold user data.
var nonFillableTypes = map[string]bool{
	"hidden": true, "submit": true, "button": true, "reset": true, "image": true,
}

// IsEditable reports a form control that can be filled: not a button-like
// input, not disabled and not read-only.
func IsEditable(n *html.Node) bool {
	if !IsFormControl(n) {
		return false
	}
	if Tag(n) == "input" && nonFillableTypes[InputType(n)] {
		return false
	}
	return !IsDisabled(n) && !IsReadOnly(n)
}

// Text returns n's text content with whitespace collapsed.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	return CollapseSpace(htmlquery.InnerText(n))
}

// CollapseSpace trims s and folds whitespace runs into single spaces.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Options lists a select's options, including those inside optgroups.
// Disabled options are skipped.
func Options(n *html.Node) []schemas.Option {
	var out []schemas.Option
	for _, opt := range htmlquery.Find(n, ".//option") {
		if HasAttr(opt, "disabled") || (Tag(opt.Parent) == "optgroup" && HasAttr(opt.Parent, "disabled")) {
			continue
		}
		out = append(out, schemas.Option{
			Value:    optionValue(opt),
			Text:     Text(opt),
			Selected: HasAttr(opt, "selected"),
		})
	}
	return out
}

// optionValue is the value attribute, or the text when it is absent.
func optionValue(opt *html.Node) string {
	if HasAttr(opt, "value") {
		return Attr(opt, "value")
	}
	return Text(opt)
}

// Value returns the current value of a control.
func Value(n *html.Node) string {
	switch Tag(n) {
	case "option":
		return optionValue(n)
	case "textarea":
		return htmlquery.InnerText(n)
	case "select":
		opts := htmlquery.Find(n, ".//option")
		for _, opt := range opts {
			if HasAttr(opt, "selected") {
				return optionValue(opt)
			}
		}
		if len(opts) > 0 {
			return optionValue(opts[0])
		}
		return ""
	}
	return Attr(n, "value")
}

// Checked reports whether a checkbox or radio is checked.
func Checked(n *html.Node) bool {
	return IsCheckable(n) && HasAttr(n, "checked")
}

// FindParentForm returns the nearest enclosing <form>, or nil.
func FindParentForm(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if Tag(p) == "form" {
			return p
		}
	}
	return nil
}

func controls(root *html.Node, oracle VisibilityOracle) []*html.Node {
	var out []*html.Node
	for _, n := range htmlquery.Find(root, "//input | //select | //textarea") {
		if IsEditable(n) && oracle.Visible(n) {
			out = append(out, n)
		}
	}
	return out
}
