package generator

import (
	"strings"

	"github.com/geofill/geofill-cli/api/schemas"
	"github.com/geofill/geofill-cli/internal/locale"
)

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*"

	defaultPasswordLength = 12
	// maxPhoneAttempts bounds the regeneration loop of the Japanese quality gate.
	maxPhoneAttempts = 5
)

// Email builds an address from username. Domain precedence: the context's
// custom domain, then its category pool, then the common pool.
func (g *Generator) Email(username string, gctx *Context) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.email(username, gctx)
}

// Password builds a password of the configured length from the enabled
// character classes, with at least one character of each enabled class.
func (g *Generator) Password(s schemas.Settings) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.password(s)
}

// Phone builds a mobile number in the country's national format, prefixed
// with its calling code when it has one.
func (g *Generator) Phone(country string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phone(country)
}

func (g *Generator) email(username string, gctx *Context) string {
	if gctx != nil && gctx.CustomEmailDomain != "" {
		return username + "@" + gctx.CustomEmailDomain
	}
	if gctx != nil && gctx.EmailCategory != "" {
		if pool, ok := locale.EmailDomains(gctx.EmailCategory); ok {
			return username + "@" + g.choice(pool)
		}
	}
	common, _ := locale.EmailDomains(locale.EmailCommon)
	return username + "@" + g.choice(common)
}

func (g *Generator) password(s schemas.Settings) string {
	length := s.PasswordLength
	if length <= 0 {
		length = defaultPasswordLength
	}

	var pool strings.Builder
	var mandatory []byte
	for _, class := range []struct {
		enabled bool
		chars   string
	}{
		{s.PwdUppercase, upperChars},
		{s.PwdLowercase, lowerChars},
		{s.PwdNumbers, digitChars},
		{s.PwdSymbols, symbolChars},
	} {
		if !class.enabled {
			continue
		}
		pool.WriteString(class.chars)
		mandatory = append(mandatory, class.chars[g.rng.Intn(len(class.chars))])
	}
	chars := pool.String()
	if chars == "" {
		chars = lowerChars
		mandatory = []byte{'a'}
	}

	// Keep the guaranteed characters only while they fit.
	g.rng.Shuffle(len(mandatory), func(i, j int) { mandatory[i], mandatory[j] = mandatory[j], mandatory[i] })
	if len(mandatory) > length {
		mandatory = mandatory[:length]
	}

	out := make([]byte, 0, length)
	out = append(out, mandatory...)
	for len(out) < length {
		out = append(out, chars[g.rng.Intn(len(chars))])
	}
	g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return string(out)
}

func (g *Generator) nationalNumber(pf locale.PhoneFormat) string {
	switch {
	case len(pf.AreaCodes) > 0:
		area := g.choice(pf.AreaCodes)
		if pf.MobileFirstDigit != "" {
			return area + pf.MobileFirstDigit + g.digits(pf.Length-len(area)-len(pf.MobileFirstDigit))
		}
		return area + g.digits(pf.Length-len(area))
	case len(pf.MobilePrefixes) > 0:
		prefix := g.choice(pf.MobilePrefixes)
		return prefix + g.digits(pf.Length-len(prefix))
	default:
		return g.digits(pf.Length)
	}
}

// lowQualityJapanese reports numbers Japanese sites tend to reject as fake.
func lowQualityJapanese(number string) bool {
	return strings.Contains(number, "1234") || strings.Contains(number, "0000")
}

func (g *Generator) phone(country string) string {
	pf, _ := locale.PhoneFormatFor(country)

	var number string
	for attempt := 0; attempt < maxPhoneAttempts; attempt++ {
		number = g.nationalNumber(pf)
		if country != "Japan" || !lowQualityJapanese(number) {
			break
		}
	}

	formatted := pf.Format(number)
	if pf.Code == "" {
		return formatted
	}
	return pf.Code + " " + formatted
}
