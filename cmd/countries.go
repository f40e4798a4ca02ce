// File: cmd/countries.go
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/geofill/geofill-cli/internal/locale"
)

func newCountriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List supported countries and their table coverage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}
			names := locale.SupportedCountries()
			cov := make([]locale.Coverage, 0, len(names))
			for _, c := range names {
				cov = append(cov, locale.CoverageFor(c))
			}
			return render(cmd.OutOrStdout(), cfg.Output().Format, cfg.Output().Pretty, cov)
		},
	}
}
