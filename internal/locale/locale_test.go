package locale

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCountry(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"", DefaultCountry},
		{"   ", DefaultCountry},
		{"USA", "United States"},
		{"usa", "United States"},
		{"UK", "United Kingdom"},
		{"england", "United Kingdom"},
		{"日本", "Japan"},
		{"中国", "China"},
		{"Japan", "Japan"},
		{"japan", "Japan"},
		{" Germany ", "Germany"},
		{"Holland", "Netherlands"},
		{"Korea", "South Korea"},
		{"Italy", "Italy"},
		{"brazil", "Brazil"},
		{"Atlantis", DefaultCountry},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeCountry(tt.in))
		})
	}
}

func TestNormalizeCountryIsIdempotent(t *testing.T) {
	t.Parallel()
	for _, c := range SupportedCountries() {
		assert.Equal(t, c, NormalizeCountry(c), "canonical names must map to themselves")
		assert.Equal(t, c, NormalizeCountry(NormalizeCountry(strings.ToUpper(c))))
	}
}

func TestAliasesResolveToSupportedCountries(t *testing.T) {
	t.Parallel()
	for alias, canonical := range countryAliases {
		assert.True(t, IsSupported(canonical), "alias %q points at unknown country %q", alias, canonical)
	}
}

func TestLanguage(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ja", Language("Japan"))
	assert.Equal(t, "de", Language("Austria"))
	assert.Equal(t, "en", Language("Netherlands"), "countries without a lexicon use English")
	assert.Equal(t, LexiconFor("Austria").LastNames, lexicons["de"].LastNames)
}

func TestLexiconsAreComplete(t *testing.T) {
	t.Parallel()
	for lang, lex := range lexicons {
		assert.Len(t, lex.FirstNames, 20, lang)
		assert.Len(t, lex.LastNames, 20, lang)
	}
}

func TestPhoneFormatsAreConsistent(t *testing.T) {
	t.Parallel()
	digitsOnly := regexp.MustCompile(`\D`)
	for country, pf := range phoneFormats {
		require.NotNil(t, pf.Format, country)
		require.Positive(t, pf.Length, country)
		require.True(t, len(pf.AreaCodes) > 0 || len(pf.MobilePrefixes) > 0, country)

		sample := strings.Repeat("5", pf.Length)
		formatted := pf.Format(sample)
		assert.Equal(t, sample, digitsOnly.ReplaceAllString(formatted, ""), "%s formatter must keep every digit", country)

		for _, p := range append(append([]string{}, pf.AreaCodes...), pf.MobilePrefixes...) {
			assert.Less(t, len(p)+len(pf.MobileFirstDigit), pf.Length, "%s prefix %q too long", country, p)
		}
	}
}

func TestPhoneFormatSamples(t *testing.T) {
	t.Parallel()
	us, ok := PhoneFormatFor("United States")
	require.True(t, ok)
	assert.Equal(t, "(212) 555-0100", us.Format("2125550100"))

	jp, _ := PhoneFormatFor("Japan")
	assert.Empty(t, jp.Code)
	assert.Equal(t, "090-1357-2468", jp.Format("09013572468"))

	fr, _ := PhoneFormatFor("France")
	assert.Equal(t, "6 12 34 56 78", fr.Format("612345678"))

	ru, _ := PhoneFormatFor("Russia")
	assert.Equal(t, "912 345-67-89", ru.Format("9123456789"))

	br, _ := PhoneFormatFor("Brazil")
	assert.Equal(t, "(11) 91234-5678", br.Format("11912345678"))

	fallback, ok := PhoneFormatFor("Austria")
	assert.False(t, ok)
	assert.Equal(t, "+1", fallback.Code)
}

func TestCityTables(t *testing.T) {
	t.Parallel()
	for country, locs := range cityTable {
		require.NotEmpty(t, locs, country)
		for _, loc := range locs {
			assert.NotEmpty(t, loc.City, country)
			assert.NotEmpty(t, loc.State, country)
		}
		_, hasPhone := phoneFormats[country]
		assert.True(t, hasPhone, "%s has cities but no phone plan", country)
		_, hasStreets := streetNames[country]
		assert.True(t, hasStreets, "%s has cities but no streets", country)
	}

	locs, ok := CitiesFor("New Zealand")
	assert.False(t, ok)
	assert.Equal(t, cityTable[DefaultCountry], locs)
}

func TestStreetsFallback(t *testing.T) {
	t.Parallel()
	assert.Equal(t, defaultStreets, StreetsFor("Chile"))
	assert.Contains(t, StreetsFor("Germany"), "Hauptstraße")
}

func TestEmailDomains(t *testing.T) {
	t.Parallel()
	common, ok := EmailDomains(EmailCommon)
	require.True(t, ok)
	assert.Contains(t, common, "gmail.com")

	_, ok = EmailDomains("corporate")
	assert.False(t, ok)

	all := AllEmailDomains()
	assert.Len(t, all, 24)
	assert.Equal(t, "gmail.com", all[0])
}

func TestJapanTables(t *testing.T) {
	t.Parallel()
	assert.Len(t, JapaneseSurnames, 20)
	assert.Len(t, JapaneseAddresses, 20)
	assert.Len(t, GivenNamesFor("male"), 10)
	assert.Len(t, GivenNamesFor("female"), 10)
	assert.Len(t, GivenNamesFor(""), 20)

	zip := regexp.MustCompile(`^\d{3}-\d{4}$`)
	for _, a := range JapaneseAddresses {
		assert.Regexp(t, zip, a.FormattedZip())
	}
}

func TestCoverageFor(t *testing.T) {
	t.Parallel()
	c := CoverageFor("Japan")
	assert.Equal(t, "ja", c.Language)
	assert.True(t, c.Phone && c.Cities && c.Streets)
	assert.Empty(t, c.Code)

	c = CoverageFor("Chile")
	assert.Equal(t, "es", c.Language)
	assert.False(t, c.Phone || c.Cities || c.Streets)
}

func TestCoordinates(t *testing.T) {
	t.Parallel()
	c, ok := CoordinatesFor("Tokyo")
	require.True(t, ok)
	assert.InDelta(t, 35.68, c.Lat, 0.01)

	_, ok = CoordinatesFor("Springfield")
	assert.False(t, ok)
}
