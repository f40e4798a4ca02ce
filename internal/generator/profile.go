package generator

import (
	"go.uber.org/zap"

	"github.com/geofill/geofill-cli/api/schemas"
	"github.com/geofill/geofill-cli/internal/locale"
)

const countryJapan = "Japan"

// GenerateProfile builds a complete record for gctx.Country. The selected
// location is left in gctx so that later calls in the same cycle agree with it.
func (g *Generator) GenerateProfile(gctx *Context, s schemas.Settings) schemas.Profile {
	g.mu.Lock()
	defer g.mu.Unlock()

	country := gctx.normalize()
	gender := g.gender()

	var p schemas.Profile
	if country == countryJapan {
		p = g.japaneseProfile(gctx, gender)
	} else {
		first, last := g.firstName(country), g.lastName(country)
		username := g.username(first, last)
		g.selectLocationByCity(gctx, gctx.IPCity, gctx.IPRegion)
		p = schemas.Profile{
			schemas.FieldFirstName: first,
			schemas.FieldLastName:  last,
			schemas.FieldUsername:  username,
			schemas.FieldAddress:   g.address(country),
			schemas.FieldCity:      gctx.Location.City,
			schemas.FieldState:     gctx.Location.State,
			schemas.FieldZipCode:   g.zipCode(country, gctx.Location),
		}
	}

	p[schemas.FieldGender] = gender
	p[schemas.FieldBirthday] = g.birthday(s)
	p[schemas.FieldEmail] = g.email(p[schemas.FieldUsername], gctx)
	p[schemas.FieldPassword] = g.password(s)
	p[schemas.FieldPhone] = g.phone(country)
	p[schemas.FieldCountry] = country

	g.logger.Debug("Generated profile.",
		zap.String("country", country),
		zap.String("city", p[schemas.FieldCity]),
		zap.Int("fields", len(p)))
	return p
}

func (g *Generator) japaneseProfile(gctx *Context, gender string) schemas.Profile {
	name := g.japaneseName(gender)
	addr := g.japaneseAddress()
	loc := addr.Location()
	gctx.Location = &loc

	return schemas.Profile{
		schemas.FieldFirstName:      name.Given.Kanji,
		schemas.FieldLastName:       name.Surname.Kanji,
		schemas.FieldFirstNameKanji: name.Given.Kanji,
		schemas.FieldLastNameKanji:  name.Surname.Kanji,
		schemas.FieldFirstNameKana:  name.Given.Kana,
		schemas.FieldLastNameKana:   name.Surname.Kana,
		schemas.FieldFullName:       name.Surname.Kanji + " " + name.Given.Kanji,
		schemas.FieldFullNameKana:   name.Surname.Kana + " " + name.Given.Kana,
		schemas.FieldUsername:       g.username(name.Given.Romaji, name.Surname.Romaji),
		schemas.FieldAddress:        addr.Chome,
		schemas.FieldCity:           loc.City,
		schemas.FieldState:          loc.State,
		schemas.FieldZipCode:        addr.FormattedZip(),
		schemas.FieldPrefecture:     addr.Prefecture,
		schemas.FieldBuilding:       addr.Building(),
	}
}

// RegenerateField regenerates one logical field of current. City and state
// always come back as a LocationUpdate carrying a fresh city, state and zip
// code together; every other field is a ScalarUpdate. Unknown fields keep
// their current value.
func (g *Generator) RegenerateField(name string, current schemas.Profile, gctx *Context, s schemas.Settings) schemas.RegenResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	country := gctx.normalize()
	if country == countryJapan {
		if r, ok := g.regenerateJapanese(name, current, gctx); ok {
			return r
		}
	}

	scalar := func(v string) schemas.RegenResult { return schemas.ScalarUpdate{Field: name, Value: v} }

	switch name {
	case schemas.FieldFirstName:
		return scalar(g.firstName(country))
	case schemas.FieldLastName:
		return scalar(g.lastName(country))
	case schemas.FieldGender:
		return scalar(g.gender())
	case schemas.FieldBirthday:
		return scalar(g.birthday(s))
	case schemas.FieldUsername:
		return scalar(g.username(current.Get(schemas.FieldFirstName), current.Get(schemas.FieldLastName)))
	case schemas.FieldEmail:
		username := current.Get(schemas.FieldUsername)
		if username == "" {
			username = g.username(current.Get(schemas.FieldFirstName), current.Get(schemas.FieldLastName))
		}
		return scalar(g.email(username, gctx))
	case schemas.FieldPassword:
		return scalar(g.password(s))
	case schemas.FieldPhone:
		return scalar(g.phone(country))
	case schemas.FieldAddress:
		return scalar(g.address(country))
	case schemas.FieldCity, schemas.FieldState:
		loc := g.selectLocation(gctx)
		return schemas.LocationUpdate{City: loc.City, State: loc.State, ZipCode: g.zipCode(country, &loc)}
	case schemas.FieldZipCode:
		if gctx.Location == nil {
			g.restoreLocation(gctx, current)
		}
		return scalar(g.zipCode(country, gctx.Location))
	case schemas.FieldCountry:
		return scalar(country)
	}
	return scalar(current.Get(name))
}

// restoreLocation rebuilds the context's location from the record's city so a
// regenerated zip code still matches it.
func (g *Generator) restoreLocation(gctx *Context, current schemas.Profile) {
	locs, _ := locale.CitiesFor(gctx.Country)
	if loc, ok := findCity(locs, current.Get(schemas.FieldCity)); ok {
		gctx.Location = &loc
		return
	}
	g.selectLocation(gctx)
}

func (g *Generator) regenerateJapanese(name string, current schemas.Profile, gctx *Context) (schemas.RegenResult, bool) {
	scalar := func(v string) (schemas.RegenResult, bool) { return schemas.ScalarUpdate{Field: name, Value: v}, true }
	gender := current.Get(schemas.FieldGender)

	switch name {
	case schemas.FieldFirstName:
		given := g.japaneseName(gender).Given
		return japaneseNameUpdate(current, name, given.Kanji, given.Kana), true
	case schemas.FieldLastName:
		surname := g.japaneseName(gender).Surname
		return japaneseNameUpdate(current, name, surname.Kanji, surname.Kana), true
	case schemas.FieldUsername:
		first, okFirst := romajiForKanji(current.Get(schemas.FieldFirstName))
		last, okLast := romajiForKanji(current.Get(schemas.FieldLastName))
		if !okFirst || !okLast {
			n := g.japaneseName(gender)
			first, last = n.Given.Romaji, n.Surname.Romaji
		}
		return scalar(g.username(first, last))
	case schemas.FieldCity, schemas.FieldState:
		addr := g.japaneseAddress()
		loc := addr.Location()
		gctx.Location = &loc
		return schemas.LocationUpdate{City: loc.City, State: loc.State, ZipCode: addr.FormattedZip()}, true
	case schemas.FieldAddress:
		var same []locale.JapaneseAddress
		for _, a := range locale.JapaneseAddresses {
			if a.Prefecture+a.City == current.Get(schemas.FieldCity) {
				same = append(same, a)
			}
		}
		if len(same) > 0 {
			return scalar(same[g.intn(len(same))].Chome)
		}
		return scalar(g.japaneseAddress().Chome)
	case schemas.FieldZipCode:
		for _, a := range locale.JapaneseAddresses {
			if a.Prefecture+a.City == current.Get(schemas.FieldCity) {
				return scalar(a.FormattedZip())
			}
		}
		return scalar(g.japaneseAddress().FormattedZip())
	}
	return nil, false
}

// japaneseNameUpdate replaces one name part and rewrites its kanji, kana and
// full-name forms so the three scripts keep agreeing.
func japaneseNameUpdate(current schemas.Profile, field, kanji, kana string) schemas.ScalarUpdate {
	lastKanji, lastKana := current.Get(schemas.FieldLastName), current.Get(schemas.FieldLastNameKana)
	firstKanji, firstKana := current.Get(schemas.FieldFirstName), current.Get(schemas.FieldFirstNameKana)
	derived := make(map[string]string, 4)
	if field == schemas.FieldFirstName {
		firstKanji, firstKana = kanji, kana
		derived[schemas.FieldFirstNameKanji] = kanji
		derived[schemas.FieldFirstNameKana] = kana
	} else {
		lastKanji, lastKana = kanji, kana
		derived[schemas.FieldLastNameKanji] = kanji
		derived[schemas.FieldLastNameKana] = kana
	}
	derived[schemas.FieldFullName] = lastKanji + " " + firstKanji
	derived[schemas.FieldFullNameKana] = lastKana + " " + firstKana
	return schemas.ScalarUpdate{Field: field, Value: kanji, Derived: derived}
}
