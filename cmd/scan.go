// File: cmd/scan.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geofill/geofill-cli/internal/browser/scanner"
	"github.com/geofill/geofill-cli/internal/observability"
)

func newScanCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "scan TARGET...",
		Short: "Describe the fillable fields of one or more pages",
		Long: `Scan loads each target (http(s) URL, file:// URL or local HTML file) and
describes its visible form controls: labels, validation attributes, context,
grouping and page classification. Targets are scanned concurrently.`,
		Example: `  geofill scan https://example.com/signup
  geofill scan --backend chrome -f markdown a.html b.html`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}
			logger := observability.GetLogger().Named("scan")

			sc := scanner.New(cfg.Scanner(), logger)
			opener := newPageOpener(cfg, logger)
			outcomes, runErr := sc.ScanAll(cmd.Context(), args, opener.scannerOpener(),
				scanner.WithConcurrency(cfg.Network().Concurrency))

			failed := 0
			for _, o := range outcomes {
				if o.Err != nil {
					failed++
					logger.Warn("Scan failed.", zap.String("target", o.Target), zap.Error(o.Err))
				}
			}

			w, closeOut, err := writeTo(out, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := render(w, cfg.Output().Format, cfg.Output().Pretty, outcomes); err != nil {
				closeOut()
				return err
			}
			if err := closeOut(); err != nil {
				return err
			}

			if runErr != nil {
				return runErr
			}
			if failed == len(outcomes) {
				return fmt.Errorf("all %d targets failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
