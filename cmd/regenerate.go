// File: cmd/regenerate.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geofill/geofill-cli/api/schemas"
	"github.com/geofill/geofill-cli/internal/observability"
)

func newRegenerateCmd() *cobra.Command {
	var (
		gf          generationFlags
		profilePath string
	)

	cmd := &cobra.Command{
		Use:   "regenerate FIELD",
		Short: "Regenerate one field of an existing profile",
		Long: `Regenerate one field of a profile read from a JSON or YAML file (or stdin
with --profile -). City and state regenerate together with the postal code.`,
		Example: `  geofill generate > me.json && geofill regenerate city --profile me.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}
			if profilePath == "" {
				return fmt.Errorf("--profile is required")
			}
			current, err := readProfile(profilePath, cmd.InOrStdin())
			if err != nil {
				return err
			}

			gctx, err := gf.context(cfg.Generator(), current.Get(schemas.FieldCountry))
			if err != nil {
				return err
			}
			gen := gf.generator(cfg.Generator())

			field := args[0]
			result := gen.RegenerateField(field, current, gctx, settingsFrom(cfg.Generator()))
			observability.GetLogger().Named("regenerate").Debug("Field regenerated.",
				zap.String("field", field),
				zap.String("result", fmt.Sprintf("%T", result)))

			updated := current.Clone()
			result.Apply(updated)
			return render(cmd.OutOrStdout(), cfg.Output().Format, cfg.Output().Pretty, updated)
		},
	}
	gf.register(cmd)
	cmd.Flags().StringVarP(&profilePath, "profile", "p", "", "profile file (JSON or YAML), - for stdin")
	return cmd
}
