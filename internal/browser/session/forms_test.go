// internal/browser/session/forms_test.go
package session

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geofill/geofill-cli/internal/browser/dom"
)

const serializePage = `<html><body>
<form id="signup" action="/register?src=ad" method="POST">
  <input name="first" value="John">
  <input name="nameless-skip">
  <input value="no name">
  <input name="disabled" value="x" disabled>
  <input type="password" name="pw" value="s3cret">
  <input type="hidden" name="token" value="abc">
  <input type="checkbox" name="terms" checked>
  <input type="checkbox" name="news" value="yes">
  <input type="radio" name="g" value="m">
  <input type="radio" name="g" value="f" checked>
  <input type="submit" name="go" value="Send">
  <input type="file" name="cv">
  <textarea name="bio">Hello</textarea>
  <select name="country"><option value="US">United States</option><option value="JP" selected>Japan</option></select>
  <select name="size"><option>S</option><option>M</option></select>
  <select name="tags" multiple><option value="a">A</option></select>
</form>
<form id="search"><input name="q" value="shoes"></form>
</body></html>`

func TestFormValues(t *testing.T) {
	doc, err := dom.ParseString(serializePage, "https://shop.example/account/new")
	require.NoError(t, err)

	got := FormValues(doc.ByID("signup"))
	want := url.Values{
		"first":         {"John"},
		"nameless-skip": {""},
		"pw":            {"s3cret"},
		"token":         {"abc"},
		"terms":         {"on"},
		"g":             {"f"},
		"bio":           {"Hello"},
		"country":       {"JP"},
		"size":          {"S"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FormValues mismatch (-want +got):\n%s", diff)
	}
}

func TestFormValuesTrackSetterWrites(t *testing.T) {
	doc, err := dom.ParseString(serializePage, "https://shop.example/account/new")
	require.NoError(t, err)
	setter := dom.NewMemorySetter(doc)

	news, err := doc.XPathOne(`//input[@name="news"]`)
	require.NoError(t, err)
	require.NoError(t, setter.SetChecked(news, true))
	country, err := doc.XPathOne(`//select[@name="country"]`)
	require.NoError(t, err)
	require.NoError(t, setter.SelectOption(country, "US"))

	got := FormValues(doc.ByID("signup"))
	assert.Equal(t, []string{"yes"}, got["news"])
	assert.Equal(t, []string{"US"}, got["country"])
}

func TestForms(t *testing.T) {
	doc, err := dom.ParseString(serializePage, "https://shop.example/account/new")
	require.NoError(t, err)

	forms := Forms(doc)
	require.Len(t, forms, 2)

	assert.Equal(t, "POST", forms[0].Method)
	assert.Equal(t, "https://shop.example/register?src=ad", forms[0].Action)

	assert.Equal(t, "GET", forms[1].Method)
	assert.Equal(t, "https://shop.example/account/new", forms[1].Action)
	assert.Equal(t, url.Values{"q": {"shoes"}}, forms[1].Values)
}
