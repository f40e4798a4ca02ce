package injector

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/geofill/geofill-cli/api/schemas"
	"github.com/geofill/geofill-cli/internal/browser/dom"
	"github.com/geofill/geofill-cli/internal/browser/locator"
)

// genderSynonyms are the spellings a gender value may take on a page.
var genderSynonyms = map[string][]string{
	"male":   {"male", "m", "man", "men", "masculino", "homme", "herr", "männlich", "男性", "男"},
	"female": {"female", "f", "woman", "women", "femenino", "femme", "frau", "weiblich", "女性", "女"},
}

// candidatesFor returns the extra exact-match spellings tried for a value.
func candidatesFor(field, value string) []string {
	if field != schemas.FieldGender {
		return nil
	}
	return genderSynonyms[strings.ToLower(strings.TrimSpace(value))]
}

// opposite returns the synonyms of every other gender.
func opposite(value string) []string {
	v := strings.ToLower(strings.TrimSpace(value))
	var out []string
	for g, syn := range genderSynonyms {
		if g != v {
			out = append(out, syn...)
		}
	}
	return out
}

// matchOption picks an option: an exact, case-insensitive text or value
// match for value or any candidate first, then a substring match in either
// direction. Options with an empty value are never chosen.
func matchOption(opts []schemas.Option, value string, candidates []string) (schemas.Option, bool) {
	want := locator.Fold(value)
	if want == "" {
		return schemas.Option{}, false
	}
	exact := append([]string{want}, foldAll(candidates)...)
	for _, w := range exact {
		for _, o := range opts {
			if o.Value == "" {
				continue
			}
			if locator.Fold(o.Text) == w || locator.Fold(o.Value) == w {
				return o, true
			}
		}
	}
	for _, o := range opts {
		if o.Value == "" {
			continue
		}
		for _, have := range []string{locator.Fold(o.Text), locator.Fold(o.Value)} {
			if have != "" && (strings.Contains(have, want) || strings.Contains(want, have)) {
				return o, true
			}
		}
	}
	return schemas.Option{}, false
}

func foldAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if f := locator.Fold(s); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// matchRadio picks the radio whose value or label equals value (or a
// candidate), else the first whose value or label contains value without
// also naming one of the excluded terms.
func matchRadio(radios []*html.Node, labelOf func(*html.Node) string, value string, candidates, exclude []string) *html.Node {
	want := locator.Fold(value)
	if want == "" {
		return nil
	}
	texts := make([][2]string, len(radios))
	for i, r := range radios {
		texts[i] = [2]string{locator.Fold(dom.Attr(r, "value")), locator.Fold(labelOf(r))}
	}

	for _, w := range append([]string{want}, foldAll(candidates)...) {
		for i, r := range radios {
			if texts[i][0] == w || texts[i][1] == w {
				return r
			}
		}
	}

	excluded := foldAll(exclude)
	for i, r := range radios {
		for _, have := range texts[i] {
			if !strings.Contains(have, want) {
				continue
			}
			if containsLonger(have, want, excluded) {
				continue
			}
			return r
		}
	}
	return nil
}

// containsLonger reports whether have contains an excluded term that itself
// contains want, as "female" does for "male".
func containsLonger(have, want string, excluded []string) bool {
	for _, e := range excluded {
		if len(e) > len(want) && strings.Contains(e, want) && strings.Contains(have, e) {
			return true
		}
	}
	return false
}
