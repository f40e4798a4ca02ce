// Package generator builds locale-consistent synthetic profiles from the
// locale tables. All randomness comes from an injected *rand.Rand so runs can
// be reproduced from a seed.
package generator

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/geofill/geofill-cli/api/schemas"
	"github.com/geofill/geofill-cli/internal/locale"
)

// Generator samples profile fields. It is safe for concurrent use.
type Generator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	now    func() time.Time
	logger *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source. The Generator takes ownership of r.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// WithSeed seeds a private random source. A zero seed keeps the time-based default.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		if seed != 0 {
			g.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// WithClock overrides the clock used for birthdays.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.Named("generator")
	return g
}

// Context carries the state shared by the calls of one generation cycle.
// Selecting a location stores it here so that city, state and zip code
// generated afterwards agree with each other.
type Context struct {
	Country string
	// IPCity and IPRegion come from an external geolocation source, if any.
	IPCity   string
	IPRegion string
	// Location is the tuple chosen by the last selection.
	Location *schemas.Location
	// CustomEmailDomain overrides every domain pool when set.
	CustomEmailDomain string
	// EmailCategory picks a domain pool; empty means the common pool.
	EmailCategory string
}

// NewContext returns a Context for a normalized country.
func NewContext(country string) *Context {
	return &Context{Country: locale.NormalizeCountry(country)}
}

// SetCustomEmailDomain sets the domain used for every email. A blank domain clears it.
func (c *Context) SetCustomEmailDomain(domain string) {
	c.CustomEmailDomain = strings.TrimSpace(domain)
}

// normalize canonicalizes the country in place and returns it.
func (c *Context) normalize() string {
	c.Country = locale.NormalizeCountry(c.Country)
	return c.Country
}

// -- random helpers; callers hold g.mu --

func (g *Generator) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return g.rng.Intn(n)
}

func (g *Generator) choice(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[g.rng.Intn(len(items))]
}

func (g *Generator) digits(n int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + g.rng.Intn(10)))
	}
	return b.String()
}

func (g *Generator) letter(alphabet string) string {
	return string(alphabet[g.rng.Intn(len(alphabet))])
}
