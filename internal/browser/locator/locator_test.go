package locator_test

import (
	"testing"

	fuzz "github.com/AdaLogics/go-fuzz-headers"
	"github.com/andybalholm/cascadia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/net/html"

	"github.com/geofill/geofill-cli/api/schemas"
	"github.com/geofill/geofill-cli/internal/browser/dom"
	"github.com/geofill/geofill-cli/internal/browser/locator"
	"github.com/geofill/geofill-cli/internal/browser/style"
)

func newLocator(t *testing.T, src string, opts ...locator.Option) (*dom.Document, *locator.Locator) {
	t.Helper()
	doc, err := dom.ParseString(src, "https://example.test/signup")
	require.NoError(t, err)
	logger := zaptest.NewLogger(t)
	opts = append([]locator.Option{locator.WithLogger(logger)}, opts...)
	return doc, locator.New(doc, style.NewOracle(doc.Root(), logger), opts...)
}

func TestLocatePatternStage(t *testing.T) {
	doc, loc := newLocator(t, `<html><head><style>.gone { display: none }</style></head><body><form>
		<input id="hidden-first" class="gone" name="first_name">
		<input id="disabled-first" name="firstName" disabled>
		<input id="first" name="first_name">
		<input id="tel" type="tel">
	</form></body></html>`)

	m := loc.Locate(schemas.FieldFirstName)
	require.NotNil(t, m)
	assert.Same(t, doc.ByID("first"), m.Node)
	assert.Equal(t, schemas.StagePattern, m.Stage)
	assert.Contains(t, m.Pattern, `input[name*="first" i]`)

	m = loc.Locate(schemas.FieldPhone)
	require.NotNil(t, m)
	assert.Same(t, doc.ByID("tel"), m.Node)
}

func TestLocateExcept(t *testing.T) {
	doc, loc := newLocator(t, `<form>
		<input id="a" name="first_name">
		<input id="b" name="firstname2">
		<label for="c">First name</label><input id="c" name="q">
	</form>`)

	claimed := map[*html.Node]bool{doc.ByID("a"): true}
	m := loc.LocateExcept(schemas.FieldFirstName, func(n *html.Node) bool { return claimed[n] })
	require.NotNil(t, m)
	assert.Same(t, doc.ByID("b"), m.Node)

	claimed[doc.ByID("b")] = true
	m = loc.LocateExcept(schemas.FieldFirstName, func(n *html.Node) bool { return claimed[n] })
	require.NotNil(t, m)
	assert.Same(t, doc.ByID("c"), m.Node)
	assert.Equal(t, schemas.StageLabel, m.Stage)

	claimed[doc.ByID("c")] = true
	assert.Nil(t, loc.LocateExcept(schemas.FieldFirstName, func(n *html.Node) bool { return claimed[n] }))
	assert.Same(t, doc.ByID("a"), loc.Locate(schemas.FieldFirstName).Node)
}

func TestUsernameIgnoresNestedModelNames(t *testing.T) {
	doc, loc := newLocator(t, `<form>
		<input id="user_first_name" name="user[first_name]">
		<input id="user_username" name="user[username]">
	</form>`)
	m := loc.Locate(schemas.FieldUsername)
	require.NotNil(t, m)
	assert.Same(t, doc.ByID("user_username"), m.Node)
}

func TestLocateIsIdempotent(t *testing.T) {
	_, loc := newLocator(t, `<form><input name="email_address"><input type="email"></form>`)
	first := loc.Locate(schemas.FieldEmail)
	second := loc.Locate(schemas.FieldEmail)
	require.NotNil(t, first)
	assert.Same(t, first.Node, second.Node)
}

func TestLocateLabelStage(t *testing.T) {
	doc, loc := newLocator(t, `<form>
		<label for="q1">Given name</label><input id="q1" name="q1">
		<label for="q2">ＥＭＡＩＬ　Address</label><input id="q2" name="q2">
		<label for="q3">Email me offers</label><input id="q3" type="checkbox" name="q3">
		<label for="q4">生年月日</label><input id="q4" name="q4">
	</form>`)

	m := loc.Locate(schemas.FieldFirstName)
	require.NotNil(t, m)
	assert.Same(t, doc.ByID("q1"), m.Node)
	assert.Equal(t, schemas.StageLabel, m.Stage)
	assert.Equal(t, "given name", m.Pattern)
	assert.Equal(t, schemas.LabelSourceFor, m.Label.Source)

	m = loc.Locate(schemas.FieldEmail)
	require.NotNil(t, m)
	assert.Same(t, doc.ByID("q2"), m.Node, "full-width label text is folded before matching")

	m = loc.Locate(schemas.FieldBirthday)
	require.NotNil(t, m)
	assert.Same(t, doc.ByID("q4"), m.Node)

	assert.Nil(t, loc.Locate(schemas.FieldPhone))
	assert.Nil(t, loc.Locate("favouriteColour"))
}

func TestSurnameKeywordSkipsFullNameAndKanaLabels(t *testing.T) {
	doc, loc := newLocator(t, `<form>
		<label for="q1">姓名</label><input id="q1" name="q1">
		<label for="q2">姓（フリガナ）</label><input id="q2" name="q2">
		<label for="q3">姓</label><input id="q3" name="q3">
	</form>`)

	m := loc.Locate(schemas.FieldLastName)
	require.NotNil(t, m)
	assert.Same(t, doc.ByID("q3"), m.Node)
	assert.Equal(t, schemas.StageLabel, m.Stage)

	all := loc.LocateAll(schemas.FieldLastName)
	require.Len(t, all, 1)
	assert.Same(t, doc.ByID("q3"), all[0].Node)

	m = loc.Locate(schemas.FieldLastNameKana)
	require.NotNil(t, m)
	assert.Same(t, doc.ByID("q2"), m.Node)
}

func TestLocateKeepsKanaApart(t *testing.T) {
	doc, loc := newLocator(t, `<form>
		<input id="kana-last" name="last_name_kana">
		<input id="kana-first" name="first_name_kana">
		<input id="last" name="last_name">
		<input id="first" name="first_name">
		<input id="ph-full" name="q" placeholder="例：山田 太郎">
	</form>`)

	cases := map[string]string{
		schemas.FieldLastName:      "last",
		schemas.FieldFirstName:     "first",
		schemas.FieldLastNameKana:  "kana-last",
		schemas.FieldFirstNameKana: "kana-first",
		schemas.FieldFullName:      "ph-full",
	}
	for field, id := range cases {
		m := loc.Locate(field)
		require.NotNil(t, m, field)
		assert.Same(t, doc.ByID(id), m.Node, field)
	}
}

func TestLocateJapanesePlaceholderHints(t *testing.T) {
	doc, loc := newLocator(t, `<form>
		<input id="sei" name="a1" placeholder="例）山田">
		<input id="mei" name="a2" placeholder="例）太郎">
		<input id="sei-kana" name="a3" placeholder="例）ヤマダ">
		<input id="mei-kana" name="a4" placeholder="例）タロウ">
	</form>`)

	assert.Same(t, doc.ByID("sei"), loc.Locate(schemas.FieldLastName).Node)
	assert.Same(t, doc.ByID("mei"), loc.Locate(schemas.FieldFirstName).Node)
	assert.Same(t, doc.ByID("sei-kana"), loc.Locate(schemas.FieldLastNameKana).Node)
	assert.Same(t, doc.ByID("mei-kana"), loc.Locate(schemas.FieldFirstNameKana).Node)
}

func TestLocateAllDeduplicates(t *testing.T) {
	doc, loc := newLocator(t, `<form>
		<input id="pw" type="password" name="password">
		<input id="confirm" type="password" name="confirm_password">
		<input id="confirm-text" name="confirm_pass">
		<input id="ro" type="password" readonly>
	</form>`)

	matches := loc.LocateAll(schemas.FieldPassword)
	require.Len(t, matches, 3)
	assert.Same(t, doc.ByID("pw"), matches[0].Node)
	assert.Same(t, doc.ByID("confirm"), matches[1].Node)
	assert.Same(t, doc.ByID("confirm-text"), matches[2].Node)
	assert.Equal(t, `input[name*="pass" i]`, matches[2].Pattern)
}

func TestLocateAllFallsBackToLabels(t *testing.T) {
	_, loc := newLocator(t, `<form>
		<label>Password <input name="a"></label>
		<label>Repeat password <input name="b"></label>
	</form>`)
	matches := loc.LocateAll(schemas.FieldPassword)
	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.Equal(t, schemas.StageLabel, m.Stage)
	}
}

func TestInvalidPatternIsSkipped(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	catalogue := locator.Catalogue{
		"custom": {Patterns: []string{`input[`, `input[name="a"]`}},
	}
	doc, err := dom.ParseString(`<form><input id="a" name="a"></form>`, "")
	require.NoError(t, err)
	loc := locator.New(doc, dom.VisibilityFunc(func(*html.Node) bool { return true }),
		locator.WithCatalogue(catalogue), locator.WithLogger(zap.New(core)))

	for i := 0; i < 2; i++ {
		m := loc.Locate("custom")
		require.NotNil(t, m)
		assert.Same(t, doc.ByID("a"), m.Node)
	}
	assert.Equal(t, 1, logs.FilterMessage("Skipping invalid selector pattern.").Len())
}

func TestDefaultCatalogueCompiles(t *testing.T) {
	for field, rule := range locator.DefaultCatalogue() {
		for _, p := range rule.Patterns {
			_, err := cascadia.ParseGroup(p)
			assert.NoError(t, err, "%s: %s", field, p)
		}
		assert.NotEmpty(t, rule.Keywords, field)
	}
}

func TestDefaultCatalogueIsACopy(t *testing.T) {
	c := locator.DefaultCatalogue()
	c[schemas.FieldEmail] = locator.Rule{}
	assert.NotEmpty(t, locator.DefaultCatalogue()[schemas.FieldEmail].Patterns)
}

func TestFold(t *testing.T) {
	assert.Equal(t, "emailaddress", locator.Fold(" ＥＭＡＩＬ　Address "))
	assert.Equal(t, "フリカナ", locator.Fold("ﾌﾘｶﾅ"))
	assert.Equal(t, "postalcode", locator.Fold("Postal\tCODE"))
}

func FuzzLocatePatterns(f *testing.F) {
	f.Add([]byte(`input[name*="mail" i]`))
	f.Fuzz(func(t *testing.T, data []byte) {
		c := fuzz.NewConsumer(data)
		var rule locator.Rule
		if err := c.GenerateStruct(&rule); err != nil {
			return
		}
		doc, err := dom.ParseString(`<form><label for="a">Mail</label><input id="a" name="mail"><select name="s"></select></form>`, "")
		if err != nil {
			return
		}
		loc := locator.New(doc, dom.VisibilityFunc(func(*html.Node) bool { return true }),
			locator.WithCatalogue(locator.Catalogue{"custom": rule}), locator.WithLogger(zap.NewNop()))
		m := loc.Locate("custom")
		if m != nil && !dom.IsEditable(m.Node) {
			t.Fatalf("matched a non-editable node via %q", m.Pattern)
		}
		for _, m := range loc.LocateAll("custom") {
			if m.Field != "custom" {
				t.Fatalf("unexpected field %q", m.Field)
			}
		}
	})
}
