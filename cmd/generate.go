// File: cmd/generate.go
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geofill/geofill-cli/api/schemas"
	"github.com/geofill/geofill-cli/internal/browser/network"
	"github.com/geofill/geofill-cli/internal/config"
	"github.com/geofill/geofill-cli/internal/generator"
	"github.com/geofill/geofill-cli/internal/geocode"
	"github.com/geofill/geofill-cli/internal/locale"
	"github.com/geofill/geofill-cli/internal/observability"
)

// generationFlags are shared by the commands that produce profile values.
type generationFlags struct {
	country       string
	seed          int64
	emailDomain   string
	emailCategory string
	ipCity        string
	ipRegion      string
}

func (f *generationFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.country, "country", "", "country to generate for (default from config)")
	fs.Int64Var(&f.seed, "seed", 0, "random seed; 0 uses the configured seed or the clock")
	fs.StringVar(&f.emailDomain, "email-domain", "", "use this domain for every email")
	fs.StringVar(&f.emailCategory, "email-category", "", "email domain pool: common, secure, temp, regional")
	fs.StringVar(&f.ipCity, "ip-city", "", "prefer this city when it is in the country's table")
	fs.StringVar(&f.ipRegion, "ip-region", "", "prefer this region when the city is unknown")
}

// context builds a generation context, flags winning over config.
func (f *generationFlags) context(cfg config.GeneratorConfig, fallbackCountry string) (*generator.Context, error) {
	country := f.country
	if country == "" {
		country = fallbackCountry
	}
	if country == "" {
		country = cfg.Country
	}
	gctx := generator.NewContext(country)
	gctx.IPCity, gctx.IPRegion = f.ipCity, f.ipRegion

	gctx.EmailCategory = cfg.EmailCategory
	if f.emailCategory != "" {
		gctx.EmailCategory = f.emailCategory
	}
	if gctx.EmailCategory != "" {
		if _, ok := locale.EmailDomains(gctx.EmailCategory); !ok {
			return nil, fmt.Errorf("unknown email category %q", gctx.EmailCategory)
		}
	}

	gctx.SetCustomEmailDomain(cfg.CustomEmailDomain)
	if f.emailDomain != "" {
		gctx.SetCustomEmailDomain(f.emailDomain)
	}
	return gctx, nil
}

func (f *generationFlags) generator(cfg config.GeneratorConfig) *generator.Generator {
	opts := []generator.Option{generator.WithLogger(observability.GetLogger())}
	seed := cfg.Seed
	if f.seed != 0 {
		seed = f.seed
	}
	if seed != 0 {
		opts = append(opts, generator.WithSeed(seed))
	}
	return generator.New(opts...)
}

func settingsFrom(cfg config.GeneratorConfig) schemas.Settings {
	return schemas.Settings{
		PasswordLength: cfg.PasswordLength,
		PwdUppercase:   cfg.PwdUppercase,
		PwdLowercase:   cfg.PwdLowercase,
		PwdNumbers:     cfg.PwdNumbers,
		PwdSymbols:     cfg.PwdSymbols,
		MinAge:         cfg.MinAge,
		MaxAge:         cfg.MaxAge,
	}
}

// addressLookup returns the geocoder when it is enabled, else nil.
func addressLookup(cfg *config.Config, logger *zap.Logger) (generator.AddressLookup, error) {
	if !cfg.Geocode().Enabled {
		return nil, nil
	}
	client, err := network.NewClient(cfg.Network(), logger)
	if err != nil {
		return nil, err
	}
	gc, err := geocode.New(cfg.Geocode(), client, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocoder: %w", err)
	}
	return gc, nil
}

// newProfile generates one profile and, when a lookup is configured, tries
// to replace its street address with a real one.
func newProfile(ctx context.Context, gen *generator.Generator, gctx *generator.Context, s schemas.Settings, lookup generator.AddressLookup) schemas.Profile {
	p := gen.GenerateProfile(gctx, s)
	if lookup != nil {
		gen.EnrichAddress(ctx, gctx, p, lookup)
	}
	return p
}

func newGenerateCmd() *cobra.Command {
	var (
		gf    generationFlags
		count int
		out   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate synthetic profiles",
		Long: `Generate one or more synthetic profiles whose name, phone, city, state
and postal code all belong to the same country.`,
		Example: `  geofill generate --country Japan
  geofill generate --country "United Kingdom" --count 5 -f yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			logger := observability.GetLogger().Named("generate")

			lookup, err := addressLookup(cfg, logger)
			if err != nil {
				return err
			}
			gen := gf.generator(cfg.Generator())
			settings := settingsFrom(cfg.Generator())

			profiles := make([]schemas.Profile, 0, count)
			for i := 0; i < count; i++ {
				gctx, err := gf.context(cfg.Generator(), "")
				if err != nil {
					return err
				}
				profiles = append(profiles, newProfile(cmd.Context(), gen, gctx, settings, lookup))
			}

			w, closeOut, err := writeTo(out, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			var v interface{} = profiles
			if count == 1 {
				v = profiles[0]
			}
			if err := render(w, cfg.Output().Format, cfg.Output().Pretty, v); err != nil {
				closeOut()
				return err
			}
			return closeOut()
		},
	}
	gf.register(cmd)
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of profiles")
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
