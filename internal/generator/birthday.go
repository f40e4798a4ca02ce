package generator

import (
	"time"

	"github.com/geofill/geofill-cli/api/schemas"
)

// earliestBirthYear is the lower bound applied to birth years whenever the age
// range still allows it.
const earliestBirthYear = 1970

// Birthday returns an ISO date (YYYY-MM-DD) for someone whose age today lies
// in [s.MinAge, s.MaxAge].
func (g *Generator) Birthday(s schemas.Settings) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.birthday(s)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// yearsBefore moves t back n years, clamping the day to the target month.
func yearsBefore(t time.Time, n int) time.Time {
	year := t.Year() - n
	day := t.Day()
	if last := daysIn(year, t.Month()); day > last {
		day = last
	}
	return time.Date(year, t.Month(), day, 0, 0, 0, 0, time.UTC)
}

// birthRange returns the earliest and latest birth dates giving an age in [minAge, maxAge] on today.
func birthRange(today time.Time, minAge, maxAge int) (time.Time, time.Time) {
	if minAge < 0 {
		minAge = 0
	}
	if maxAge < minAge {
		maxAge = minAge
	}
	latest := yearsBefore(today, minAge)
	earliest := yearsBefore(today, maxAge+1).AddDate(0, 0, 1)

	floor := time.Date(earliestBirthYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !floor.After(latest) && floor.After(earliest) {
		earliest = floor
	}
	return earliest, latest
}

func (g *Generator) birthday(s schemas.Settings) string {
	minAge, maxAge := s.MinAge, s.MaxAge
	if minAge == 0 && maxAge == 0 {
		d := schemas.DefaultSettings()
		minAge, maxAge = d.MinAge, d.MaxAge
	}
	earliest, latest := birthRange(g.now().UTC(), minAge, maxAge)

	year := earliest.Year() + g.intn(latest.Year()-earliest.Year()+1)

	loMonth, hiMonth := time.January, time.December
	if year == earliest.Year() {
		loMonth = earliest.Month()
	}
	if year == latest.Year() {
		hiMonth = latest.Month()
	}
	month := loMonth + time.Month(g.intn(int(hiMonth-loMonth)+1))

	loDay, hiDay := 1, daysIn(year, month)
	if year == earliest.Year() && month == earliest.Month() {
		loDay = earliest.Day()
	}
	if year == latest.Year() && month == latest.Month() {
		hiDay = latest.Day()
	}
	day := loDay + g.intn(hiDay-loDay+1)

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}
