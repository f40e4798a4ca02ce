// File: cmd/fill.go
package cmd

import (
	"context"
	"fmt"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geofill/geofill-cli/api/schemas"
	"github.com/geofill/geofill-cli/internal/browser/injector"
	"github.com/geofill/geofill-cli/internal/browser/label"
	"github.com/geofill/geofill-cli/internal/browser/locator"
	"github.com/geofill/geofill-cli/internal/browser/session"
	"github.com/geofill/geofill-cli/internal/config"
	"github.com/geofill/geofill-cli/internal/observability"
)

// FillReport is the output of the fill command.
type FillReport struct {
	Target  string               `json:"target" yaml:"target"`
	URL     string               `json:"url" yaml:"url"`
	Profile schemas.Profile      `json:"profile,omitempty" yaml:"profile,omitempty"`
	Mapping map[string]string    `json:"mapping,omitempty" yaml:"mapping,omitempty"`
	Result  schemas.FillResult   `json:"result" yaml:"result"`
	Forms   []session.Submission `json:"forms,omitempty" yaml:"forms,omitempty"`
	Output  string               `json:"output,omitempty" yaml:"output,omitempty"`
}

// denyList holds compiled browser.deny patterns.
type denyList []struct {
	pattern string
	g       glob.Glob
}

func compileDeny(patterns []string) (denyList, error) {
	var out denyList
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid browser.deny pattern %q: %w", p, err)
		}
		out = append(out, struct {
			pattern string
			g       glob.Glob
		}{p, g})
	}
	return out, nil
}

// check returns an error naming the first pattern any of urls matches.
func (d denyList) check(urls ...string) error {
	for _, u := range urls {
		if u == "" {
			continue
		}
		for _, entry := range d {
			if entry.g.Match(u) {
				return fmt.Errorf("refusing to fill %s: matches deny pattern %q", u, entry.pattern)
			}
		}
	}
	return nil
}

func newFillCmd() *cobra.Command {
	var (
		gf          generationFlags
		profilePath string
		mappingPath string
		pagePath    string
		out         string
	)

	cmd := &cobra.Command{
		Use:   "fill TARGET",
		Short: "Fill the form on a page with a profile",
		Long: `Fill locates each profile field on the target page and writes the value
through the element's native setter, dispatching the events a user would
cause. Without --profile or --mapping a fresh profile is generated.

--mapping fills by scan field ID (element id, name or field_N) instead of by
field heuristics. --out writes the filled page as HTML.`,
		Example: `  geofill fill https://example.com/signup --country Germany
  geofill fill form.html --profile me.yaml --out filled.html
  geofill fill form.html --mapping ids.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}
			if profilePath != "" && mappingPath != "" {
				return fmt.Errorf("--profile and --mapping are mutually exclusive")
			}
			logger := observability.GetLogger().Named("fill")
			target := args[0]

			deny, err := compileDeny(cfg.Browser().Deny)
			if err != nil {
				return err
			}
			if err := deny.check(target); err != nil {
				return err
			}

			report := &FillReport{Target: target}
			switch {
			case mappingPath != "":
				if report.Mapping, err = readStringMap(mappingPath, cmd.InOrStdin()); err != nil {
					return err
				}
			case profilePath != "":
				if report.Profile, err = readProfile(profilePath, cmd.InOrStdin()); err != nil {
					return err
				}
			default:
				if report.Profile, err = generateForFill(cmd.Context(), cfg, &gf, logger); err != nil {
					return err
				}
			}

			page, err := newPageOpener(cfg, logger).open(cmd.Context(), target)
			if err != nil {
				return err
			}
			defer func() {
				if err := page.Close(context.Background()); err != nil {
					logger.Debug("Failed to close page.", zap.Error(err))
				}
			}()
			report.URL = page.URL()
			if err := deny.check(report.URL); err != nil {
				return err
			}

			if err := fillPage(cfg, page, report, logger); err != nil {
				return err
			}

			if pagePath != "" {
				if err := writePage(page, pagePath); err != nil {
					return err
				}
				report.Output = pagePath
			}

			w, closeOut, err := writeTo(out, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := render(w, cfg.Output().Format, cfg.Output().Pretty, report); err != nil {
				closeOut()
				return err
			}
			return closeOut()
		},
	}
	gf.register(cmd)
	fs := cmd.Flags()
	fs.StringVarP(&profilePath, "profile", "p", "", "profile file (JSON or YAML), - for stdin")
	fs.StringVarP(&mappingPath, "mapping", "m", "", "field ID to value map (JSON or YAML), - for stdin")
	fs.StringVar(&pagePath, "out", "", "write the filled page as HTML to this file")
	fs.StringVarP(&out, "output", "o", "", "write the report to this file instead of stdout")
	return cmd
}

func generateForFill(ctx context.Context, cfg *config.Config, gf *generationFlags, logger *zap.Logger) (schemas.Profile, error) {
	gctx, err := gf.context(cfg.Generator(), "")
	if err != nil {
		return nil, err
	}
	lookup, err := addressLookup(cfg, logger)
	if err != nil {
		return nil, err
	}
	return newProfile(ctx, gf.generator(cfg.Generator()), gctx, settingsFrom(cfg.Generator()), lookup), nil
}

// fillPage runs the injector over page and records the outcome in report.
// It returns once deferred writes have landed.
func fillPage(cfg *config.Config, page session.Page, report *FillReport, logger *zap.Logger) error {
	doc, err := page.Document()
	if err != nil {
		return err
	}
	oracle, err := page.Oracle()
	if err != nil {
		return err
	}
	setter, err := page.Setter()
	if err != nil {
		return err
	}

	loc := locator.New(doc, oracle,
		locator.WithLogger(logger),
		locator.WithLabelOptions(label.Options{
			SiblingHops: cfg.Scanner().SiblingHops,
			MaxLength:   cfg.Scanner().LabelMaxLength,
		}))
	inj := injector.New(loc, setter, cfg.Injector(), logger)

	if report.Mapping != nil {
		report.Result = inj.FillFormByIDMap(report.Mapping)
	} else {
		report.Result = inj.FillForm(report.Profile)
	}
	inj.Wait()

	report.Forms = session.Forms(doc)
	logger.Info("Form filled.",
		zap.String("url", report.URL),
		zap.Int("filled", report.Result.FilledCount),
		zap.Int("fields", len(report.Result.Results)))
	return nil
}

func writePage(page session.Page, path string) error {
	if path == "-" {
		return fmt.Errorf("--out needs a file path")
	}
	doc, err := page.Document()
	if err != nil {
		return err
	}
	f, closeFile, err := writeTo(path, nil)
	if err != nil {
		return err
	}
	if err := doc.Render(f); err != nil {
		closeFile()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return closeFile()
}
