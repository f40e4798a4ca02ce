package generator

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/geofill/geofill-cli/api/schemas"
	"github.com/geofill/geofill-cli/internal/locale"
)

var fixedNow = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

func newTestGenerator(t *testing.T, seed int64) *Generator {
	t.Helper()
	return New(
		WithSeed(seed),
		WithClock(func() time.Time { return fixedNow }),
		WithLogger(zaptest.NewLogger(t)),
	)
}

func nonDigits(s string) string {
	return regexp.MustCompile(`\D`).ReplaceAllString(s, "")
}

func TestGenerateProfileLocationConsistency(t *testing.T) {
	g := newTestGenerator(t, 7)
	for _, country := range locale.SupportedCountries() {
		if country == countryJapan {
			continue
		}
		t.Run(country, func(t *testing.T) {
			locs, _ := locale.CitiesFor(country)
			for i := 0; i < 25; i++ {
				gctx := NewContext(country)
				p := g.GenerateProfile(gctx, schemas.DefaultSettings())

				assert.Contains(t, locs, schemas.Location{
					City: p[schemas.FieldCity], State: p[schemas.FieldState], ZipPrefix: gctx.Location.ZipPrefix,
				})
				assert.Equal(t, country, p[schemas.FieldCountry])
				for _, f := range schemas.CoreFields {
					assert.NotEmpty(t, p[f], "field %s", f)
				}
			}
		})
	}
}

func TestGenerateProfileHonoursIPCity(t *testing.T) {
	g := newTestGenerator(t, 3)

	gctx := NewContext("usa")
	gctx.IPCity = "chicago"
	p := g.GenerateProfile(gctx, schemas.DefaultSettings())
	assert.Equal(t, "chicago", p[schemas.FieldCity])
	assert.Equal(t, "Illinois", p[schemas.FieldState])
	assert.True(t, strings.HasPrefix(p[schemas.FieldZipCode], "606"), p[schemas.FieldZipCode])

	gctx = NewContext("United States")
	gctx.IPCity = "Springfield"
	gctx.IPRegion = "Illinois"
	p = g.GenerateProfile(gctx, schemas.DefaultSettings())
	assert.Equal(t, "Springfield", p[schemas.FieldCity])
	assert.Equal(t, "Illinois", p[schemas.FieldState])

	gctx = NewContext("United States")
	gctx.IPCity = "Unknown"
	p = g.GenerateProfile(gctx, schemas.DefaultSettings())
	locs, _ := locale.CitiesFor("United States")
	_, ok := findCity(locs, p[schemas.FieldCity])
	assert.True(t, ok, "unknown IP city should fall back to the table")
}

func TestPhoneNationalLength(t *testing.T) {
	g := newTestGenerator(t, 11)
	for _, country := range locale.SupportedCountries() {
		pf, ok := locale.PhoneFormatFor(country)
		if !ok {
			continue
		}
		t.Run(country, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				phone := g.Phone(country)
				national := phone
				if pf.Code != "" {
					require.True(t, strings.HasPrefix(phone, pf.Code+" "), phone)
					national = strings.TrimPrefix(phone, pf.Code+" ")
				}
				assert.Len(t, nonDigits(national), pf.Length, phone)
			}
		})
	}
}

func TestJapanesePhoneQualityGate(t *testing.T) {
	g := newTestGenerator(t, 5)
	for i := 0; i < 500; i++ {
		d := nonDigits(g.Phone(countryJapan))
		// Each attempt is resampled independently; with 5 attempts a bad
		// number survives with negligible probability for this seed.
		assert.NotContains(t, d, "1234")
		assert.NotContains(t, d, "0000")
	}
}

func TestPassword(t *testing.T) {
	g := newTestGenerator(t, 1)

	t.Run("all classes", func(t *testing.T) {
		s := schemas.DefaultSettings()
		for _, length := range []int{4, 8, 12, 32} {
			s.PasswordLength = length
			for i := 0; i < 100; i++ {
				pw := g.Password(s)
				require.Len(t, pw, length)
				assert.True(t, strings.ContainsAny(pw, upperChars), pw)
				assert.True(t, strings.ContainsAny(pw, lowerChars), pw)
				assert.True(t, strings.ContainsAny(pw, digitChars), pw)
				assert.True(t, strings.ContainsAny(pw, symbolChars), pw)
			}
		}
	})

	t.Run("digits only", func(t *testing.T) {
		pw := g.Password(schemas.Settings{PasswordLength: 6, PwdNumbers: true})
		assert.Regexp(t, `^\d{6}$`, pw)
	})

	t.Run("no class enabled", func(t *testing.T) {
		pw := g.Password(schemas.Settings{PasswordLength: 5})
		assert.Regexp(t, `^[a-z]{5}$`, pw)
	})

	t.Run("default length", func(t *testing.T) {
		pw := g.Password(schemas.Settings{PwdLowercase: true})
		assert.Len(t, pw, defaultPasswordLength)
	})

	t.Run("shorter than class count", func(t *testing.T) {
		s := schemas.DefaultSettings()
		s.PasswordLength = 2
		assert.Len(t, g.Password(s), 2)
	})
}

func ageOn(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

func TestBirthday(t *testing.T) {
	g := newTestGenerator(t, 9)
	cases := []struct{ min, max int }{{18, 55}, {18, 18}, {30, 40}, {0, 5}, {60, 90}}
	for _, tc := range cases {
		s := schemas.Settings{MinAge: tc.min, MaxAge: tc.max}
		for i := 0; i < 200; i++ {
			raw := g.Birthday(s)
			birth, err := time.Parse("2006-01-02", raw)
			require.NoError(t, err, raw)
			require.Equal(t, raw, birth.Format("2006-01-02"), "date must not normalize")

			age := ageOn(birth, fixedNow)
			assert.GreaterOrEqual(t, age, tc.min, raw)
			assert.LessOrEqual(t, age, tc.max, raw)
			if fixedNow.Year()-tc.max-1 >= 1970 || tc.max <= fixedNow.Year()-1970 {
				assert.GreaterOrEqual(t, birth.Year(), 1970, raw)
			}
		}
	}
}

func TestBirthRangeLeapDay(t *testing.T) {
	today := time.Date(2028, time.February, 29, 0, 0, 0, 0, time.UTC)
	earliest, latest := birthRange(today, 18, 18)
	assert.Equal(t, 18, ageOn(latest, today))
	assert.Equal(t, 18, ageOn(earliest, today))
	assert.Equal(t, 19, ageOn(earliest.AddDate(0, 0, -1), today))
}

func TestEmailDomainPrecedence(t *testing.T) {
	g := newTestGenerator(t, 2)

	gctx := NewContext("United States")
	common, _ := locale.EmailDomains(locale.EmailCommon)
	domain := strings.SplitN(g.Email("jdoe", gctx), "@", 2)[1]
	assert.Contains(t, common, domain)

	gctx.EmailCategory = locale.EmailSecure
	secure, _ := locale.EmailDomains(locale.EmailSecure)
	domain = strings.SplitN(g.Email("jdoe", gctx), "@", 2)[1]
	assert.Contains(t, secure, domain)

	gctx.SetCustomEmailDomain("  example.org ")
	assert.Equal(t, "jdoe@example.org", g.Email("jdoe", gctx))

	gctx.SetCustomEmailDomain("")
	domain = strings.SplitN(g.Email("jdoe", gctx), "@", 2)[1]
	assert.Contains(t, secure, domain)
}

func TestUsername(t *testing.T) {
	g := newTestGenerator(t, 4)
	for i := 0; i < 100; i++ {
		u := g.Username("Zoë", "Müller")
		assert.Regexp(t, `^[a-z0-9._]+$`, u)
		assert.True(t, strings.Contains(u, "zoe") || strings.Contains(u, "muller"), u)
	}
	assert.Regexp(t, `^[a-z0-9._]+$`, g.Username("太郎", "山田"))
}

func TestZipCodeFormats(t *testing.T) {
	g := newTestGenerator(t, 8)
	patterns := map[string]string{
		"United States":  `^\d{5}$`,
		"Canada":         `^[A-Z]\d[A-Z] \d[A-Z]\d$`,
		"United Kingdom": `^[A-Z]{1,2}\d{1,2} \d[A-Z]{2}$`,
		"Japan":          `^\d{3}-\d{4}$`,
		"Germany":        `^\d{5}$`,
		"Brazil":         `^\d{5}-\d{3}$`,
		"India":          `^\d{6}$`,
		"Netherlands":    `^\d{4} [A-Z]{2}$`,
		"China":          `^\d{6}$`,
	}
	for country, pattern := range patterns {
		for i := 0; i < 30; i++ {
			gctx := NewContext(country)
			g.SelectLocation(gctx)
			assert.Regexp(t, pattern, g.ZipCode(gctx), country)
		}
	}
}

func TestAddressLine(t *testing.T) {
	g := newTestGenerator(t, 6)
	re := regexp.MustCompile(`^\d{1,4} .+?(, Apt \d{1,3})?$`)
	apartments := 0
	for i := 0; i < 400; i++ {
		line := g.Address("Germany")
		require.Regexp(t, re, line)
		if strings.Contains(line, ", Apt ") {
			apartments++
		}
	}
	assert.InDelta(t, 120, apartments, 60)
}

func TestRegenerateCityReturnsLocationUpdate(t *testing.T) {
	g := newTestGenerator(t, 10)
	for _, country := range []string{"United States", "France", "Japan", "Netherlands"} {
		gctx := NewContext(country)
		p := g.GenerateProfile(gctx, schemas.DefaultSettings())

		for _, field := range []string{schemas.FieldCity, schemas.FieldState} {
			r := g.RegenerateField(field, p, gctx, schemas.DefaultSettings())
			upd, ok := r.(schemas.LocationUpdate)
			require.True(t, ok, "%s/%s returned %T", country, field, r)
			require.NotEmpty(t, upd.ZipCode)

			if country != countryJapan {
				locs, _ := locale.CitiesFor(country)
				match, found := findCity(locs, upd.City)
				require.True(t, found)
				assert.Equal(t, match.State, upd.State)
			}
			upd.Apply(p)
			assert.Equal(t, upd.City, p[schemas.FieldCity])
			assert.Equal(t, upd.ZipCode, p[schemas.FieldZipCode])
		}
	}
}

func TestRegenerateScalarFields(t *testing.T) {
	g := newTestGenerator(t, 12)
	gctx := NewContext("United Kingdom")
	p := g.GenerateProfile(gctx, schemas.DefaultSettings())

	for _, field := range []string{
		schemas.FieldFirstName, schemas.FieldLastName, schemas.FieldGender, schemas.FieldBirthday,
		schemas.FieldUsername, schemas.FieldEmail, schemas.FieldPassword, schemas.FieldPhone,
		schemas.FieldAddress, schemas.FieldZipCode, schemas.FieldCountry,
	} {
		r := g.RegenerateField(field, p, gctx, schemas.DefaultSettings())
		upd, ok := r.(schemas.ScalarUpdate)
		require.True(t, ok, field)
		assert.Equal(t, field, upd.Field)
		assert.NotEmpty(t, upd.Value, field)
	}

	r := g.RegenerateField("nickname", schemas.Profile{"nickname": "ace"}, gctx, schemas.DefaultSettings())
	assert.Equal(t, schemas.ScalarUpdate{Field: "nickname", Value: "ace"}, r)

	r = g.RegenerateField(schemas.FieldCountry, p, gctx, schemas.DefaultSettings())
	assert.Equal(t, "United Kingdom", r.(schemas.ScalarUpdate).Value)
}

func TestRegenerateZipCodeRestoresLocation(t *testing.T) {
	g := newTestGenerator(t, 13)
	gctx := NewContext("United States")
	current := schemas.Profile{schemas.FieldCity: "Boston"}
	r := g.RegenerateField(schemas.FieldZipCode, current, gctx, schemas.DefaultSettings())
	assert.True(t, strings.HasPrefix(r.(schemas.ScalarUpdate).Value, "021"))
}

func TestJapaneseProfile(t *testing.T) {
	g := newTestGenerator(t, 21)
	for i := 0; i < 30; i++ {
		gctx := NewContext("jp")
		p := g.GenerateProfile(gctx, schemas.DefaultSettings())

		assert.Equal(t, countryJapan, p[schemas.FieldCountry])
		assert.Equal(t, p[schemas.FieldLastNameKanji]+" "+p[schemas.FieldFirstNameKanji], p[schemas.FieldFullName])
		assert.Equal(t, p[schemas.FieldLastNameKana]+" "+p[schemas.FieldFirstNameKana], p[schemas.FieldFullNameKana])
		assert.Regexp(t, `^\d{3}-\d{4}$`, p[schemas.FieldZipCode])
		assert.Regexp(t, `\d+F$`, p[schemas.FieldState])
		assert.True(t, strings.HasPrefix(p[schemas.FieldCity], p[schemas.FieldPrefecture]))
		assert.Regexp(t, `^[a-z0-9._]+$`, p[schemas.FieldUsername])
		assert.False(t, strings.HasPrefix(p[schemas.FieldPhone], "+"))

		given := p[schemas.FieldFirstNameKanji]
		for _, n := range locale.JapaneseGivenNames {
			if n.Kanji == given {
				assert.Equal(t, n.Gender, p[schemas.FieldGender])
			}
		}
	}
}

func TestJapaneseRegeneration(t *testing.T) {
	g := newTestGenerator(t, 22)
	gctx := NewContext(countryJapan)
	p := g.GenerateProfile(gctx, schemas.DefaultSettings())

	addr := g.RegenerateField(schemas.FieldAddress, p, gctx, schemas.DefaultSettings()).(schemas.ScalarUpdate)
	var chomes []string
	for _, a := range locale.JapaneseAddresses {
		if a.Prefecture+a.City == p[schemas.FieldCity] {
			chomes = append(chomes, a.Chome)
		}
	}
	assert.Contains(t, chomes, addr.Value)

	zip := g.RegenerateField(schemas.FieldZipCode, p, gctx, schemas.DefaultSettings()).(schemas.ScalarUpdate)
	assert.Regexp(t, `^\d{3}-\d{4}$`, zip.Value)

	name := g.RegenerateField(schemas.FieldLastName, p, gctx, schemas.DefaultSettings()).(schemas.ScalarUpdate)
	_, ok := romajiForKanji(name.Value)
	assert.True(t, ok)

	user := g.RegenerateField(schemas.FieldUsername, p, gctx, schemas.DefaultSettings()).(schemas.ScalarUpdate)
	assert.Regexp(t, `^[a-z0-9._]+$`, user.Value)
}

func TestJapaneseNameRegenerationKeepsScriptsTogether(t *testing.T) {
	g := newTestGenerator(t, 7)
	gctx := NewContext(countryJapan)
	p := g.GenerateProfile(gctx, schemas.DefaultSettings())

	kanaOf := func(kanji string) string {
		for _, n := range locale.JapaneseGivenNames {
			if n.Kanji == kanji {
				return n.Kana
			}
		}
		for _, s := range locale.JapaneseSurnames {
			if s.Kanji == kanji {
				return s.Kana
			}
		}
		return ""
	}

	for _, field := range []string{schemas.FieldFirstName, schemas.FieldLastName} {
		r := g.RegenerateField(field, p, gctx, schemas.DefaultSettings())
		upd, ok := r.(schemas.ScalarUpdate)
		require.True(t, ok, field)
		r.Apply(p)

		assert.Equal(t, upd.Value, p[field])
		assert.Equal(t, p[schemas.FieldFirstName], p[schemas.FieldFirstNameKanji])
		assert.Equal(t, p[schemas.FieldLastName], p[schemas.FieldLastNameKanji])
		assert.Equal(t, kanaOf(p[schemas.FieldFirstName]), p[schemas.FieldFirstNameKana])
		assert.Equal(t, kanaOf(p[schemas.FieldLastName]), p[schemas.FieldLastNameKana])
		assert.Equal(t, p[schemas.FieldLastName]+" "+p[schemas.FieldFirstName], p[schemas.FieldFullName])
		assert.Equal(t, p[schemas.FieldLastNameKana]+" "+p[schemas.FieldFirstNameKana], p[schemas.FieldFullNameKana])
	}

	other := g.RegenerateField(schemas.FieldFirstName, p, NewContext("Germany"), schemas.DefaultSettings())
	assert.Empty(t, other.(schemas.ScalarUpdate).Derived)
}

func TestSeedIsReproducible(t *testing.T) {
	a := newTestGenerator(t, 99).GenerateProfile(NewContext("Germany"), schemas.DefaultSettings())
	b := newTestGenerator(t, 99).GenerateProfile(NewContext("Germany"), schemas.DefaultSettings())
	assert.Equal(t, a, b)
}

type fakeLookup struct {
	block    *schemas.AddressBlock
	err      error
	lat, lon float64
}

func (f *fakeLookup) ReverseGeocode(_ context.Context, lat, lon float64) (*schemas.AddressBlock, error) {
	f.lat, f.lon = lat, lon
	return f.block, f.err
}

func TestEnrichAddress(t *testing.T) {
	g := newTestGenerator(t, 31)

	t.Run("real address replaces block", func(t *testing.T) {
		gctx := NewContext("United States")
		gctx.IPCity = "Boston"
		p := g.GenerateProfile(gctx, schemas.DefaultSettings())
		lookup := &fakeLookup{block: &schemas.AddressBlock{
			Address: "1 Beacon St", City: "Boston", State: "Massachusetts", ZipCode: "02108", Country: "United States",
		}}

		require.True(t, g.EnrichAddress(context.Background(), gctx, p, lookup))
		assert.Equal(t, "1 Beacon St", p[schemas.FieldAddress])
		assert.Equal(t, "02108", p[schemas.FieldZipCode])

		centre, _ := locale.CoordinatesFor("Boston")
		assert.InDelta(t, centre.Lat, lookup.lat, coordinateJitter)
		assert.InDelta(t, centre.Lon, lookup.lon, coordinateJitter)
	})

	t.Run("partial block keeps synthetic city", func(t *testing.T) {
		gctx := NewContext("United States")
		gctx.IPCity = "Boston"
		p := g.GenerateProfile(gctx, schemas.DefaultSettings())
		zip := p[schemas.FieldZipCode]
		lookup := &fakeLookup{block: &schemas.AddressBlock{Address: "5 Main St"}}

		require.True(t, g.EnrichAddress(context.Background(), gctx, p, lookup))
		assert.Equal(t, "5 Main St", p[schemas.FieldAddress])
		assert.Equal(t, zip, p[schemas.FieldZipCode])
	})

	t.Run("failure falls back", func(t *testing.T) {
		gctx := NewContext("United States")
		gctx.IPCity = "Boston"
		p := g.GenerateProfile(gctx, schemas.DefaultSettings())
		before := p.Clone()

		assert.False(t, g.EnrichAddress(context.Background(), gctx, p, &fakeLookup{err: errors.New("boom")}))
		assert.Equal(t, before, p)
		assert.False(t, g.EnrichAddress(context.Background(), gctx, p, nil))
	})

	t.Run("city without coordinates", func(t *testing.T) {
		gctx := NewContext("United States")
		gctx.Location = &schemas.Location{City: "Nowhere", State: "Nowhere"}
		_, err := g.RealAddress(context.Background(), gctx, &fakeLookup{})
		assert.ErrorIs(t, err, ErrNoCoordinates)
	})
}
