package generator

import (
	"fmt"
	"strings"

	"github.com/geofill/geofill-cli/api/schemas"
	"github.com/geofill/geofill-cli/internal/locale"
)

const (
	canadaLetters = "ABCEGHJKLMNPRSTVXY"
	upperLetters  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Address builds a street line "<number> <street>[, Apt <n>]".
func (g *Generator) Address(country string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.address(country)
}

// SelectLocation picks a random city tuple for the context's country and
// stores it in the context.
func (g *Generator) SelectLocation(gctx *Context) schemas.Location {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.selectLocation(gctx)
}

// SelectLocationByCity stores a tuple built from externally supplied
// geolocation. With no usable city it falls back to SelectLocation.
func (g *Generator) SelectLocationByCity(gctx *Context, city, region string) schemas.Location {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.selectLocationByCity(gctx, city, region)
}

// ZipCode builds a postal code for the context's country from the selected
// location's prefix.
func (g *Generator) ZipCode(gctx *Context) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.zipCode(gctx.normalize(), gctx.Location)
}

// City returns the selected city, selecting a location first if needed.
func (g *Generator) City(gctx *Context) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gctx.Location == nil {
		g.selectLocation(gctx)
	}
	return gctx.Location.City
}

// State returns the selected state, or "" when nothing is selected.
func (g *Generator) State(gctx *Context) string {
	if gctx.Location == nil {
		return ""
	}
	return gctx.Location.State
}

func (g *Generator) address(country string) string {
	line := fmt.Sprintf("%d %s", g.intn(9999)+1, g.choice(locale.StreetsFor(country)))
	if g.rng.Float64() >= 0.7 {
		line += fmt.Sprintf(", Apt %d", g.intn(999)+1)
	}
	return line
}

func (g *Generator) selectLocation(gctx *Context) schemas.Location {
	locs, _ := locale.CitiesFor(gctx.normalize())
	loc := locs[g.intn(len(locs))]
	gctx.Location = &loc
	return loc
}

func usableGeo(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && !strings.EqualFold(s, "unknown")
}

func (g *Generator) selectLocationByCity(gctx *Context, city, region string) schemas.Location {
	if !usableGeo(city) {
		return g.selectLocation(gctx)
	}
	city = strings.TrimSpace(city)
	region = strings.TrimSpace(region)
	if !usableGeo(region) {
		region = ""
	}

	locs, _ := locale.CitiesFor(gctx.normalize())
	loc := schemas.Location{City: city, State: region}
	if match, ok := findCity(locs, city); ok {
		loc.ZipPrefix = match.ZipPrefix
		if loc.State == "" {
			loc.State = match.State
		}
	} else if region != "" {
		if match, ok := findState(locs, region); ok {
			loc.ZipPrefix = match.ZipPrefix
		}
	}
	gctx.Location = &loc
	return loc
}

func findCity(locs []schemas.Location, city string) (schemas.Location, bool) {
	for _, l := range locs {
		if strings.EqualFold(l.City, city) {
			return l, true
		}
	}
	return schemas.Location{}, false
}

func findState(locs []schemas.Location, region string) (schemas.Location, bool) {
	lower := strings.ToLower(region)
	for _, l := range locs {
		state := strings.ToLower(l.State)
		if state == lower || strings.Contains(state, lower) {
			return l, true
		}
	}
	return schemas.Location{}, false
}

// pad extends prefix with random digits up to n characters.
func (g *Generator) pad(prefix string, n int) string {
	if len(prefix) >= n {
		return prefix[:n]
	}
	return prefix + g.digits(n-len(prefix))
}

func (g *Generator) zipCode(country string, loc *schemas.Location) string {
	prefix := ""
	if loc != nil {
		prefix = loc.ZipPrefix
	}

	switch country {
	case "United States", "Germany", "France", "Spain", "Italy", "South Korea", "Mexico":
		return g.pad(prefix, 5)
	case "Canada":
		// Forward sortation area (letter digit letter), space, local delivery unit (digit letter digit).
		if len(prefix) < 2 {
			prefix = g.letter(canadaLetters) + g.digits(1)
		}
		return prefix[:2] + g.letter(canadaLetters) + " " + g.digits(1) + g.letter(canadaLetters) + g.digits(1)
	case "United Kingdom":
		if prefix == "" {
			prefix = g.letter(upperLetters)
		}
		return prefix + g.digits(1) + " " + g.digits(1) + g.letter(upperLetters) + g.letter(upperLetters)
	case "China":
		if prefix != "" {
			return prefix
		}
		return g.digits(6)
	case "Japan":
		if len(prefix) == 7 {
			return prefix[:3] + "-" + prefix[3:]
		}
		return g.pad(prefix, 3) + "-" + g.digits(4)
	case "Australia":
		if prefix != "" {
			return prefix
		}
		return g.digits(4)
	case "India", "Russia":
		return g.pad(prefix, 6)
	case "Brazil":
		return g.pad(prefix, 5) + "-" + g.digits(3)
	case "Hong Kong", "Singapore":
		if prefix != "" {
			return prefix + g.digits(4)
		}
		return g.digits(6)
	case "Taiwan":
		if prefix != "" {
			return prefix
		}
		return g.digits(3)
	case "Netherlands":
		return g.pad(prefix, 4) + " " + g.letter(upperLetters) + g.letter(upperLetters)
	}
	return g.digits(5)
}

// JapaneseAddressPick is a Japanese landmark address with a sampled floor.
type JapaneseAddressPick struct {
	locale.JapaneseAddress
	Floor int
}

// Building returns the building name with its floor, e.g. "AER 12F".
func (p JapaneseAddressPick) Building() string {
	return fmt.Sprintf("%s %dF", p.JapaneseAddress.Building, p.Floor)
}

// Location returns the tuple stored in the context for this address.
func (p JapaneseAddressPick) Location() schemas.Location {
	return schemas.Location{City: p.Prefecture + p.City, State: p.Building(), ZipPrefix: p.Zip}
}

// JapaneseAddress samples a Japanese landmark address.
func (g *Generator) JapaneseAddress() JapaneseAddressPick {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.japaneseAddress()
}

func (g *Generator) japaneseAddress() JapaneseAddressPick {
	addr := locale.JapaneseAddresses[g.intn(len(locale.JapaneseAddresses))]
	return JapaneseAddressPick{JapaneseAddress: addr, Floor: g.intn(30) + 1}
}
