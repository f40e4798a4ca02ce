package generator

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/geofill/geofill-cli/internal/locale"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// FirstName samples a given name from the country's lexicon.
func (g *Generator) FirstName(country string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.firstName(country)
}

// LastName samples a family name from the country's lexicon.
func (g *Generator) LastName(country string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastName(country)
}

// Gender returns "male" or "female" with equal probability.
func (g *Generator) Gender() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gender()
}

// Username derives a login name from a first and last name.
func (g *Generator) Username(first, last string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.username(first, last)
}

func (g *Generator) firstName(country string) string {
	return g.choice(locale.LexiconFor(country).FirstNames)
}

func (g *Generator) lastName(country string) string {
	return g.choice(locale.LexiconFor(country).LastNames)
}

func (g *Generator) gender() string {
	if g.rng.Intn(2) == 0 {
		return GenderMale
	}
	return GenderFemale
}

// asciiFold strips diacritics so "Müller" becomes "Muller". Anything still
// outside [a-z0-9] after lowering is dropped by usernamePart.
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func usernamePart(s string) string {
	folded, _, err := transform.String(asciiFold, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (g *Generator) username(first, last string) string {
	f, l := usernamePart(first), usernamePart(last)
	if f == "" {
		f = "user"
	}
	if l == "" {
		l = "x"
	}
	switch g.rng.Intn(5) {
	case 0:
		return f + l + g.digits(2)
	case 1:
		return f + "_" + l
	case 2:
		return f + g.digits(4)
	case 3:
		return l + "." + f
	default:
		return string([]rune(f)[0]) + l + g.digits(3)
	}
}

// JapaneseName is a full name in kanji, kana and romaji.
type JapaneseName struct {
	Surname locale.JapaneseSurname
	Given   locale.JapaneseGivenName
}

// JapaneseName samples a surname and a given name matching gender.
func (g *Generator) JapaneseName(gender string) JapaneseName {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.japaneseName(gender)
}

func (g *Generator) japaneseName(gender string) JapaneseName {
	surname := locale.JapaneseSurnames[g.intn(len(locale.JapaneseSurnames))]
	if gender == "" {
		gender = g.gender()
	}
	pool := locale.GivenNamesFor(gender)
	return JapaneseName{Surname: surname, Given: pool[g.intn(len(pool))]}
}

// romajiForKanji finds the romaji reading of a kanji name from the Japanese pools.
func romajiForKanji(kanji string) (string, bool) {
	for _, s := range locale.JapaneseSurnames {
		if s.Kanji == kanji {
			return s.Romaji, true
		}
	}
	for _, n := range locale.JapaneseGivenNames {
		if n.Kanji == kanji {
			return n.Romaji, true
		}
	}
	return "", false
}
