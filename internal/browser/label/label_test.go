package label_test

import (
	"strings"
	"testing"

	fuzz "github.com/AdaLogics/go-fuzz-headers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/geofill/geofill-cli/api/schemas"
	"github.com/geofill/geofill-cli/internal/browser/dom"
	"github.com/geofill/geofill-cli/internal/browser/label"
)

const labelHTML = `<html><body><form>
	<label for="fn">First   name</label><input id="fn">
	<label>Email <input id="email"><select id="sel-in-label"><option>noise</option></select></label>
	<input id="aria" aria-label="Phone number">
	<span id="lb1">Postal</span><span id="lb2">code</span>
	<input id="labelled" aria-labelledby="lb1 lb2 missing">
	<p id="hint">We never share this</p><input id="described" aria-describedby="hint">
	<input id="titled" title="City">
	<input id="ph" placeholder="Street address">
	<div><span>Last name</span><input id="sib"></div>
	<table><tr><td>Company</td><td><input id="cell"></td></tr></table>
	<div>Nickname <input id="parent"><select><option>should not appear</option></select></div>
	<div><input id="nothing"></div>
	<label for="empty"> </label><input id="empty" placeholder="Fallback">
	<div><span>` + "\n\t  Spaced \n out  " + `</span><input id="spaced"></div>
	<div><div><input id="other"><span>Wrong</span></div><input id="after-control"></div>
</form></body></html>`

func TestInfer(t *testing.T) {
	doc, err := dom.ParseString(labelHTML, "")
	require.NoError(t, err)

	cases := []struct {
		id     string
		text   string
		source string
	}{
		{"fn", "First name", schemas.LabelSourceFor},
		{"email", "Email", schemas.LabelSourceWrapping},
		{"aria", "Phone number", schemas.LabelSourceAria},
		{"labelled", "Postal code", schemas.LabelSourceLabelledBy},
		{"described", "We never share this", schemas.LabelSourceDescribed},
		{"titled", "City", schemas.LabelSourceTitle},
		{"ph", "Street address", schemas.LabelSourcePlaceholder},
		{"sib", "Last name", schemas.LabelSourceSibling},
		{"cell", "Company", schemas.LabelSourceSibling},
		{"parent", "Nickname", schemas.LabelSourceParent},
		{"nothing", "", ""},
		{"empty", "Fallback", schemas.LabelSourcePlaceholder},
		{"spaced", "Spaced out", schemas.LabelSourceSibling},
	}
	for _, tc := range cases {
		t.Run(tc.id, func(t *testing.T) {
			n := doc.ByID(tc.id)
			require.NotNil(t, n)
			got := label.Infer(doc, n, label.DefaultOptions())
			assert.Equal(t, label.Result{Text: tc.text, Source: tc.source}, got)
		})
	}

	t.Run("siblings holding controls are skipped", func(t *testing.T) {
		got := label.Infer(doc, doc.ByID("after-control"), label.DefaultOptions())
		assert.NotEqual(t, "Wrong", got.Text)
	})
}

func TestInferBoundsHops(t *testing.T) {
	doc, err := dom.ParseString(`<div><span>Far</span><b>1</b><b>2</b><b>3</b><input id="x"></div>`, "")
	require.NoError(t, err)

	got := label.Infer(doc, doc.ByID("x"), label.Options{SiblingHops: 3})
	assert.Equal(t, schemas.LabelSourceParent, got.Source)

	got = label.Infer(doc, doc.ByID("x"), label.Options{SiblingHops: 4})
	assert.Equal(t, label.Result{Text: "Far", Source: schemas.LabelSourceSibling}, got)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a b c", label.Normalize("  a \n b\tc ", 0))
	assert.Equal(t, "日本語", label.Normalize("日本語テキスト", 3))
	assert.Len(t, []rune(label.Normalize(strings.Repeat("x", 500), 100)), 100)
}

func FuzzInfer(f *testing.F) {
	f.Add([]byte(labelHTML))
	f.Fuzz(func(t *testing.T, data []byte) {
		c := fuzz.NewConsumer(data)
		var fragments []string
		if err := c.CreateSlice(&fragments); err != nil {
			return
		}
		markup := "<form>" + strings.Join(fragments, "<input>") + "<input id=target></form>"
		doc, err := dom.ParseString(markup, "")
		if err != nil {
			return
		}
		n := doc.ByID("target")
		if n == nil {
			return
		}
		res := label.Infer(doc, n, label.Options{MaxLength: 40})
		if len([]rune(res.Text)) > 40 {
			t.Fatalf("label exceeds cap: %q", res.Text)
		}
		if res.Text != "" && res.Source == "" {
			t.Fatalf("label without source: %q", res.Text)
		}
		_ = html.Render(&strings.Builder{}, doc.Root())
	})
}
