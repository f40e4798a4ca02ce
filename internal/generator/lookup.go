package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/geofill/geofill-cli/api/schemas"
	"github.com/geofill/geofill-cli/internal/locale"
)

// coordinateJitter is the maximum offset in degrees applied around a city
// centre, small enough to stay inside the city.
const coordinateJitter = 0.0025

// ErrNoCoordinates is returned when the selected city has no known centre.
var ErrNoCoordinates = errors.New("no coordinates for city")

// AddressLookup resolves coordinates into a postal address.
type AddressLookup interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (*schemas.AddressBlock, error)
}

// RealAddress asks lookup for a street address near the selected city's centre.
func (g *Generator) RealAddress(ctx context.Context, gctx *Context, lookup AddressLookup) (*schemas.AddressBlock, error) {
	g.mu.Lock()
	if gctx.Location == nil {
		g.selectLocation(gctx)
	}
	city := gctx.Location.City
	coord, ok := locale.CoordinatesFor(city)
	if !ok {
		g.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrNoCoordinates, city)
	}
	lat := coord.Lat + (g.rng.Float64()*2-1)*coordinateJitter
	lon := coord.Lon + (g.rng.Float64()*2-1)*coordinateJitter
	g.mu.Unlock()

	block, err := lookup.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("reverse geocoding %s: %w", city, err)
	}
	if block == nil || strings.TrimSpace(block.Address) == "" {
		return nil, fmt.Errorf("reverse geocoding %s: empty address", city)
	}
	return block, nil
}

// EnrichAddress replaces the synthetic street line of p with a real one when
// lookup can supply it. City, state and zip code are replaced only when the
// lookup returned all three. It reports whether p changed.
func (g *Generator) EnrichAddress(ctx context.Context, gctx *Context, p schemas.Profile, lookup AddressLookup) bool {
	if lookup == nil {
		return false
	}
	block, err := g.RealAddress(ctx, gctx, lookup)
	if err != nil {
		g.logger.Debug("Real address unavailable, keeping synthetic address.", zap.Error(err))
		return false
	}

	p[schemas.FieldAddress] = block.Address
	if block.City != "" && block.State != "" && block.ZipCode != "" {
		p[schemas.FieldCity] = block.City
		p[schemas.FieldState] = block.State
		p[schemas.FieldZipCode] = block.ZipCode
		gctx.Location = &schemas.Location{City: block.City, State: block.State}
	}
	return true
}
