// File: cmd/root.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/geofill/geofill-cli/internal/config"
	"github.com/geofill/geofill-cli/internal/observability"
)

type contextKey string

const configKey contextKey = "config"

// rootFlags holds the persistent flags of one command tree.
type rootFlags struct {
	cfgFile  string
	logLevel string
	format   string
	backend  string
}

// newRootCmd builds a fresh command tree. Tests build their own so no state
// leaks between runs.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           config.AppName,
		Short:         "GeoFill generates locale-consistent test identities and fills web forms with them.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			config.SetDefaults(v)

			if err := initializeConfig(v, flags.cfgFile); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}
			bindPersistentFlags(cmd, v, flags)

			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				return fmt.Errorf("failed to load or validate config: %w", err)
			}

			observability.InitializeLogger(cfg.Logger())
			observability.GetLogger().Debug("Configuration loaded.",
				zap.String("version", Version),
				zap.String("config_file", v.ConfigFileUsed()))

			cmd.SetContext(context.WithValue(cmd.Context(), configKey, cfg))
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.cfgFile, "config", "c", "", "config file (default ./config.yaml, then "+filepath.Join(config.DefaultConfigDir(), "config.yaml")+")")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVarP(&flags.format, "format", "f", "", "output format (json, yaml, xml, markdown)")
	pf.StringVar(&flags.backend, "backend", "", "page backend for scan and fill (http, chrome)")
	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	cmd.AddCommand(
		newGenerateCmd(),
		newRegenerateCmd(),
		newCountriesCmd(),
		newScanCmd(),
		newFillCmd(),
		newVersionCmd(),
	)
	return cmd
}

// bindPersistentFlags lets explicitly set flags override file and environment values.
func bindPersistentFlags(cmd *cobra.Command, v *viper.Viper, flags *rootFlags) {
	set := func(name, key, value string) {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			v.Set(key, value)
		}
	}
	set("log-level", "logger.level", flags.logLevel)
	set("format", "output.format", strings.ToLower(flags.format))
	set("backend", "browser.backend", strings.ToLower(flags.backend))
}

// initializeConfig reads the config file and environment. An explicit file
// must exist; the default locations are optional.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		path, err := homedir.Expand(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to expand config path %q: %w", cfgFile, err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(config.DefaultConfigDir())
	}

	v.SetEnvPrefix(strings.ToUpper(config.AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// configFrom returns the configuration loaded by the root command.
func configFrom(cmd *cobra.Command) (*config.Config, error) {
	cfg, ok := cmd.Context().Value(configKey).(*config.Config)
	if !ok || cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	return cfg, nil
}

// Execute runs the command tree with ctx, which main cancels on SIGINT/SIGTERM.
func Execute(ctx context.Context) error {
	defer observability.Sync()
	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
