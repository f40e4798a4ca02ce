// File: cmd/output_test.go
package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geofill/geofill-cli/api/schemas"
	"github.com/geofill/geofill-cli/internal/browser/scanner"
	"github.com/geofill/geofill-cli/internal/browser/session"
)

func TestRenderUnsupported(t *testing.T) {
	var buf bytes.Buffer
	err := render(&buf, "csv", false, schemas.Profile{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")

	err = render(&buf, FormatMarkdown, false, map[string]int{"a": 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "markdown output is not available")
}

func TestRenderJSONCompact(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, FormatJSON, false, schemas.Profile{"b": "2", "a": "1"}))
	assert.Equal(t, `{"a":"1","b":"2"}`+"\n", buf.String())
}

func TestRenderXMLKeys(t *testing.T) {
	report := &FillReport{
		Target: "form.html",
		Result: schemas.FillResult{FilledCount: 1, Results: map[string]string{"firstName": schemas.StatusFilled}},
		Forms: []session.Submission{{
			Method: "POST",
			Action: "https://example.com/join",
			Values: map[string][]string{"user[name]": {"Ann"}, "xmlns": {"x"}},
		}},
	}
	var buf bytes.Buffer
	require.NoError(t, render(&buf, FormatXML, true, report))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(buf.String()))
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "fill", root.Tag)
	assert.Equal(t, "1", root.FindElement("result/filledCount").Text())
	assert.Equal(t, schemas.StatusFilled, root.FindElement("result/results/firstName").Text())

	entries := root.FindElements("forms/item/values/entry")
	require.Len(t, entries, 2)
	keys := []string{entries[0].SelectAttrValue("key", ""), entries[1].SelectAttrValue("key", "")}
	assert.ElementsMatch(t, []string{"user[name]", "xmlns"}, keys)
	for _, e := range entries {
		if e.SelectAttrValue("key", "") == "user[name]" {
			require.NotNil(t, e.FindElement("item"))
			assert.Equal(t, "Ann", e.FindElement("item").Text())
		}
	}
}

func TestScansMarkdown(t *testing.T) {
	outcomes := []scanner.Outcome{
		{
			Target: "https://example.com/join",
			Result: &schemas.ScanResult{
				ScanID:    "s1",
				ScannedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
				Page:      schemas.PageContext{Title: "Join | Example", PageType: schemas.PageRegister},
				Fields: []schemas.FieldDescriptor{
					{ID: "email", Tag: "input", Type: "email", Label: "Email", LabelSource: schemas.LabelSourceFor},
				},
			},
		},
		{Target: "https://example.com/down", Error: "connection refused"},
	}
	var buf bytes.Buffer
	require.NoError(t, render(&buf, FormatMarkdown, false, outcomes))
	out := buf.String()

	assert.Contains(t, out, "## https://example.com/join")
	assert.Contains(t, out, "Join")
	assert.NotContains(t, out, "Join | Example")
	assert.Contains(t, out, "input/email")
	assert.Contains(t, out, "connection refused")
}

func TestCell(t *testing.T) {
	assert.Equal(t, `a \| b c`, cell("a | b\n  c"))
	assert.Equal(t, "", cell("   "))
}

func TestXMLRoot(t *testing.T) {
	assert.Equal(t, "profile", xmlRoot(schemas.Profile{}))
	assert.Equal(t, "profiles", xmlRoot([]schemas.Profile{}))
	assert.Equal(t, "scans", xmlRoot([]scanner.Outcome{}))
	assert.Equal(t, "result", xmlRoot(strings.Builder{}))
}
