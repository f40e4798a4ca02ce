// Package locale holds the static per-country tables the generator samples
// from: name lexicons, phone numbering plans, street names, city/state/zip
// associations and email domain pools.
package locale

import (
	"sort"
	"strings"
)

// DefaultCountry is used whenever a country is unknown or missing from a table.
const DefaultCountry = "United States"

// countryLanguage maps a canonical country name to its name lexicon key.
var countryLanguage = map[string]string{
	"United States": "en", "United Kingdom": "en", "Canada": "en", "Australia": "en", "New Zealand": "en",
	"China": "zh", "Taiwan": "zh", "Hong Kong": "zh", "Singapore": "zh",
	"Japan":       "ja",
	"South Korea": "ko",
	"Germany":     "de", "Austria": "de", "Switzerland": "de",
	"France": "fr", "Belgium": "fr",
	"Russia": "ru",
	"Spain":  "es", "Mexico": "es", "Argentina": "es", "Colombia": "es", "Peru": "es", "Chile": "es",
}

// countryAliases maps alternative spellings (ISO codes, colloquial and
// Chinese names) to canonical country names.
var countryAliases = map[string]string{
	"US":                 "United States",
	"USA":                "United States",
	"America":            "United States",
	"UK":                 "United Kingdom",
	"GB":                 "United Kingdom",
	"Britain":            "United Kingdom",
	"Great Britain":      "United Kingdom",
	"England":            "United Kingdom",
	"Korea":              "South Korea",
	"Republic of Korea":  "South Korea",
	"Russian Federation": "Russia",
	"Holland":            "Netherlands",
	"中国":                 "China",
	"日本":                 "Japan",
	"韩国":                 "South Korea",
	"台湾":                 "Taiwan",
	"香港":                 "Hong Kong",
	"新加坡":                "Singapore",
	"德国":                 "Germany",
	"法国":                 "France",
	"俄罗斯":                "Russia",
	"西班牙":                "Spain",
	"意大利":                "Italy",
	"巴西":                 "Brazil",
	"印度":                 "India",
	"墨西哥":                "Mexico",
	"加拿大":                "Canada",
	"澳大利亚":               "Australia",
	"荷兰":                 "Netherlands",
}

// NormalizeCountry maps free-form country text to a canonical country name.
// Lookup order: exact alias, exact country, case-insensitive alias,
// case-insensitive country. Anything else yields DefaultCountry.
func NormalizeCountry(raw string) string {
	country := strings.TrimSpace(raw)
	if country == "" {
		return DefaultCountry
	}
	if canonical, ok := countryAliases[country]; ok {
		return canonical
	}
	if IsSupported(country) {
		return country
	}
	for alias, canonical := range countryAliases {
		if strings.EqualFold(alias, country) {
			return canonical
		}
	}
	for _, name := range SupportedCountries() {
		if strings.EqualFold(name, country) {
			return name
		}
	}
	return DefaultCountry
}

// IsSupported reports whether country is a canonical name known to any table.
func IsSupported(country string) bool {
	if _, ok := countryLanguage[country]; ok {
		return true
	}
	if _, ok := phoneFormats[country]; ok {
		return true
	}
	_, ok := cityTable[country]
	return ok
}

// SupportedCountries returns every canonical country name, sorted.
func SupportedCountries() []string {
	seen := make(map[string]struct{})
	for c := range countryLanguage {
		seen[c] = struct{}{}
	}
	for c := range phoneFormats {
		seen[c] = struct{}{}
	}
	for c := range cityTable {
		seen[c] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Language returns the lexicon key for a country, "en" when unmapped.
func Language(country string) string {
	if lang, ok := countryLanguage[country]; ok {
		return lang
	}
	return "en"
}

// Coverage describes which tables have a dedicated entry for a country.
type Coverage struct {
	Country  string `json:"country" yaml:"country"`
	Language string `json:"language" yaml:"language"`
	Code     string `json:"callingCode" yaml:"calling_code"`
	Phone    bool   `json:"phone" yaml:"phone"`
	Cities   bool   `json:"cities" yaml:"cities"`
	Streets  bool   `json:"streets" yaml:"streets"`
}

// CoverageFor reports table coverage for a canonical country name.
func CoverageFor(country string) Coverage {
	pf, hasPhone := phoneFormats[country]
	_, hasCities := cityTable[country]
	_, hasStreets := streetNames[country]
	c := Coverage{
		Country:  country,
		Language: Language(country),
		Phone:    hasPhone,
		Cities:   hasCities,
		Streets:  hasStreets,
	}
	if hasPhone {
		c.Code = pf.Code
	}
	return c
}
