// File: cmd/output.go
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	json "github.com/json-iterator/go"
	"github.com/nao1215/markdown"
	"gopkg.in/yaml.v3"

	"github.com/geofill/geofill-cli/api/schemas"
	"github.com/geofill/geofill-cli/internal/browser/scanner"
	"github.com/geofill/geofill-cli/internal/locale"
)

var jsonAPI = json.ConfigCompatibleWithStandardLibrary

// Output formats.
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatXML      = "xml"
	FormatMarkdown = "markdown"
)

// render writes v to w in the given format.
func render(w io.Writer, format string, pretty bool, v interface{}) error {
	switch strings.ToLower(format) {
	case FormatJSON, "":
		return renderJSON(w, pretty, v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	case FormatXML:
		return renderXML(w, pretty, v)
	case FormatMarkdown:
		return renderMarkdown(w, v)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func renderJSON(w io.Writer, pretty bool, v interface{}) error {
	var (
		out []byte
		err error
	)
	if pretty {
		out, err = jsonAPI.MarshalIndent(v, "", "  ")
	} else {
		out, err = jsonAPI.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}

// -- XML --

var xmlName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9._-]*$`)

// renderXML goes through the JSON form of v so every output type shares
// one element layout: object keys become elements, array entries become
// <item> elements.
func renderXML(w io.Writer, pretty bool, v interface{}) error {
	raw, err := jsonAPI.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode XML: %w", err)
	}
	var tree interface{}
	dec := jsonAPI.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&tree); err != nil {
		return fmt.Errorf("failed to encode XML: %w", err)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	appendXML(doc.CreateElement(xmlRoot(v)), tree)
	if pretty {
		doc.Indent(2)
	}
	_, err = doc.WriteTo(w)
	return err
}

func xmlRoot(v interface{}) string {
	switch v.(type) {
	case schemas.Profile:
		return "profile"
	case []schemas.Profile:
		return "profiles"
	case []locale.Coverage:
		return "countries"
	case []scanner.Outcome:
		return "scans"
	case *FillReport, FillReport:
		return "fill"
	default:
		return "result"
	}
}

func appendXML(el *etree.Element, v interface{}) {
	switch t := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			appendXML(xmlChild(el, k), t[k])
		}
	case []interface{}:
		for _, item := range t {
			appendXML(el.CreateElement("item"), item)
		}
	case nil:
	default:
		el.SetText(fmt.Sprint(t))
	}
}

// xmlChild creates an element named key, or an <entry key="..."> when key
// is not a usable element name.
func xmlChild(parent *etree.Element, key string) *etree.Element {
	if xmlName.MatchString(key) && !strings.HasPrefix(strings.ToLower(key), "xml") {
		return parent.CreateElement(key)
	}
	el := parent.CreateElement("entry")
	el.CreateAttr("key", key)
	return el
}

// -- Markdown --

func renderMarkdown(w io.Writer, v interface{}) error {
	md := markdown.NewMarkdown(w)
	switch t := v.(type) {
	case schemas.Profile:
		md.H1("Profile")
		profileTable(md, t)
	case []schemas.Profile:
		md.H1("Profiles")
		for i, p := range t {
			md.H2("Profile " + strconv.Itoa(i+1))
			profileTable(md, p)
		}
	case []locale.Coverage:
		countriesMarkdown(md, t)
	case []scanner.Outcome:
		scansMarkdown(md, t)
	case *FillReport:
		fillMarkdown(md, t)
	default:
		return fmt.Errorf("markdown output is not available for %T", v)
	}
	return md.Build()
}

// cell escapes pipes and flattens newlines for a table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func profileTable(md *markdown.Markdown, p schemas.Profile) {
	rows := make([][]string, 0, len(p))
	for _, f := range p.Fields() {
		rows = append(rows, []string{f, cell(p[f])})
	}
	md.Table(markdown.TableSet{Header: []string{"Field", "Value"}, Rows: rows})
	md.PlainText("")
}

func countriesMarkdown(md *markdown.Markdown, cov []locale.Coverage) {
	md.H1("Supported countries")
	rows := make([][]string, 0, len(cov))
	for _, c := range cov {
		rows = append(rows, []string{c.Country, c.Language, c.Code, yesNo(c.Phone), yesNo(c.Cities), yesNo(c.Streets)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Country", "Language", "Calling code", "Phone", "Cities", "Streets"},
		Rows:   rows,
	})
}

func scansMarkdown(md *markdown.Markdown, outcomes []scanner.Outcome) {
	md.H1("Form scan")
	for _, o := range outcomes {
		md.H2(o.Target)
		if o.Result == nil {
			md.Warningf("Scan failed: %s", o.Error)
			md.PlainText("")
			continue
		}
		page := o.Result.Page
		md.Table(markdown.TableSet{
			Header: []string{"Property", "Value"},
			Rows: [][]string{
				{"URL", cell(page.URL)},
				{"Title", cell(page.Title)},
				{"Language", page.Language},
				{"Page type", string(page.PageType)},
				{"Main heading", cell(page.MainHeading)},
				{"Submit", cell(strings.Join(page.SubmitTexts, ", "))},
				{"Captcha", yesNo(page.HasCaptcha)},
				{"Fields", strconv.Itoa(len(o.Result.Fields))},
			},
		})
		md.PlainText("")
		if len(o.Result.Fields) == 0 {
			continue
		}
		rows := make([][]string, 0, len(o.Result.Fields))
		for _, f := range o.Result.Fields {
			kind := f.Tag
			if f.Type != "" && f.Type != f.Tag {
				kind += "/" + f.Type
			}
			rows = append(rows, []string{
				strconv.Itoa(f.Index), cell(f.ID), kind, cell(f.Label), f.LabelSource, cell(f.Group), yesNo(f.Required),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"#", "ID", "Kind", "Label", "Label source", "Group", "Required"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

func fillMarkdown(md *markdown.Markdown, r *FillReport) {
	md.H1("Fill result")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Target", cell(r.Target)},
			{"URL", cell(r.URL)},
			{"Filled", strconv.Itoa(r.Result.FilledCount)},
		},
	})
	md.PlainText("")

	fields := make([]string, 0, len(r.Result.Results))
	for f := range r.Result.Results {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, []string{cell(f), cell(r.Result.Results[f])})
	}
	md.Table(markdown.TableSet{Header: []string{"Field", "Status"}, Rows: rows})
	md.PlainText("")

	if r.Output != "" {
		md.PlainTextf("Filled page written to `%s`.", r.Output)
	}
}
