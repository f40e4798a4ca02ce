// internal/browser/session/forms.go
package session

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/geofill/geofill-cli/internal/browser/dom"
)

// Submission is what a browser would send for a form, without sending it.
type Submission struct {
	Method string     `json:"method" yaml:"method"`
	Action string     `json:"action" yaml:"action"`
	Values url.Values `json:"values" yaml:"values"`
}

// FormValues serializes form the way a browser builds its submission:
// named, enabled controls only; checkboxes and radios when checked; every
// selected option of a select.
func FormValues(form *html.Node) url.Values {
	values := url.Values{}
	for _, input := range htmlquery.Find(form, ".//input | .//textarea | .//select") {
		name := dom.Attr(input, "name")
		if name == "" || dom.IsDisabled(input) {
			continue
		}

		switch dom.Tag(input) {
		case "input":
			switch dom.InputType(input) {
			case "checkbox", "radio":
				if dom.Checked(input) {
					value := dom.Attr(input, "value")
					if value == "" {
						value = "on"
					}
					values.Add(name, value)
				}
			case "submit", "button", "image", "reset", "file":
			default:
				values.Add(name, dom.Attr(input, "value"))
			}
		case "textarea":
			values.Add(name, htmlquery.InnerText(input))
		case "select":
			selected := htmlquery.Find(input, ".//option[@selected]")
			if len(selected) == 0 && !dom.HasAttr(input, "multiple") {
				// A single select submits its first option when none is marked.
				if first := htmlquery.FindOne(input, ".//option"); first != nil {
					selected = append(selected, first)
				}
			}
			for _, opt := range selected {
				values.Add(name, dom.Value(opt))
			}
		}
	}
	return values
}

// Forms describes every form in doc as a Submission. Actions resolve against
// the document URL.
func Forms(doc *dom.Document) []Submission {
	nodes, err := doc.XPath("//form")
	if err != nil {
		return nil
	}
	var out []Submission
	for _, form := range nodes {
		method := strings.ToUpper(dom.Attr(form, "method"))
		if method != http.MethodPost {
			method = http.MethodGet
		}
		action := doc.URL().String()
		if raw := strings.TrimSpace(dom.Attr(form, "action")); raw != "" {
			if u, err := doc.URL().Parse(raw); err == nil {
				action = u.String()
			}
		}
		out = append(out, Submission{Method: method, Action: action, Values: FormValues(form)})
	}
	return out
}
