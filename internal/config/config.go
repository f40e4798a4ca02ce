// File: internal/config/config.go
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// AppName is used for the config directory, the env prefix and the default logger name.
const AppName = "geofill"

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Browser() BrowserConfig
	Network() NetworkConfig
	Generator() GeneratorConfig
	Scanner() ScannerConfig
	Injector() InjectorConfig
	Geocode() GeocodeConfig
	Output() OutputConfig

	SetBrowserBackend(backend string)
	SetGeneratorCountry(country string)
	SetOutputFormat(format string)
}

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg    LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	BrowserCfg   BrowserConfig   `mapstructure:"browser" yaml:"browser"`
	NetworkCfg   NetworkConfig   `mapstructure:"network" yaml:"network"`
	GeneratorCfg GeneratorConfig `mapstructure:"generator" yaml:"generator"`
	ScannerCfg   ScannerConfig   `mapstructure:"scanner" yaml:"scanner"`
	InjectorCfg  InjectorConfig  `mapstructure:"injector" yaml:"injector"`
	GeocodeCfg   GeocodeConfig   `mapstructure:"geocode" yaml:"geocode"`
	OutputCfg    OutputConfig    `mapstructure:"output" yaml:"output"`
}

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig       { return c.LoggerCfg }
func (c *Config) Browser() BrowserConfig     { return c.BrowserCfg }
func (c *Config) Network() NetworkConfig     { return c.NetworkCfg }
func (c *Config) Generator() GeneratorConfig { return c.GeneratorCfg }
func (c *Config) Scanner() ScannerConfig     { return c.ScannerCfg }
func (c *Config) Injector() InjectorConfig   { return c.InjectorCfg }
func (c *Config) Geocode() GeocodeConfig     { return c.GeocodeCfg }
func (c *Config) Output() OutputConfig       { return c.OutputCfg }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetBrowserBackend(backend string)   { c.BrowserCfg.Backend = backend }
func (c *Config) SetGeneratorCountry(country string) { c.GeneratorCfg.Country = country }
func (c *Config) SetOutputFormat(format string)      { c.OutputCfg.Format = format }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// Browser backends.
const (
	BackendHTTP   = "http"
	BackendChrome = "chrome"
)

// BrowserConfig selects and tunes the page backend.
type BrowserConfig struct {
	Backend         string         `mapstructure:"backend" yaml:"backend"`
	Headless        bool           `mapstructure:"headless" yaml:"headless"`
	ExecPath        string         `mapstructure:"exec_path" yaml:"exec_path"`
	IgnoreTLSErrors bool           `mapstructure:"ignore_tls_errors" yaml:"ignore_tls_errors"`
	Args            []string       `mapstructure:"args" yaml:"args"`
	Viewport        map[string]int `mapstructure:"viewport" yaml:"viewport"`
	SnapshotTimeout time.Duration  `mapstructure:"snapshot_timeout" yaml:"snapshot_timeout"`
	// Deny holds URL glob patterns that fill refuses to touch.
	Deny []string `mapstructure:"deny" yaml:"deny"`
}

// ProxyConfig defines the configuration for an outbound proxy.
type ProxyConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Address string `mapstructure:"address" yaml:"address"`
}

// NetworkConfig tunes the network behavior of the application.
type NetworkConfig struct {
	Timeout           time.Duration     `mapstructure:"timeout" yaml:"timeout"`
	NavigationTimeout time.Duration     `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`
	PostLoadWait      time.Duration     `mapstructure:"post_load_wait" yaml:"post_load_wait"`
	UserAgent         string            `mapstructure:"user_agent" yaml:"user_agent"`
	AcceptLanguage    string            `mapstructure:"accept_language" yaml:"accept_language"`
	Headers           map[string]string `mapstructure:"headers" yaml:"headers"`
	Proxy             ProxyConfig       `mapstructure:"proxy" yaml:"proxy"`
	IgnoreTLSErrors   bool              `mapstructure:"ignore_tls_errors" yaml:"ignore_tls_errors"`
	// RateLimit is the number of navigations per second shared by all targets.
	RateLimit   float64 `mapstructure:"rate_limit" yaml:"rate_limit"`
	Burst       int     `mapstructure:"burst" yaml:"burst"`
	Concurrency int     `mapstructure:"concurrency" yaml:"concurrency"`
}

// GeneratorConfig holds the defaults for synthetic profile generation.
type GeneratorConfig struct {
	Country           string `mapstructure:"country" yaml:"country"`
	Seed              int64  `mapstructure:"seed" yaml:"seed"`
	EmailCategory     string `mapstructure:"email_category" yaml:"email_category"`
	CustomEmailDomain string `mapstructure:"custom_email_domain" yaml:"custom_email_domain"`
	PasswordLength    int    `mapstructure:"password_length" yaml:"password_length"`
	PwdUppercase      bool   `mapstructure:"pwd_uppercase" yaml:"pwd_uppercase"`
	PwdLowercase      bool   `mapstructure:"pwd_lowercase" yaml:"pwd_lowercase"`
	PwdNumbers        bool   `mapstructure:"pwd_numbers" yaml:"pwd_numbers"`
	PwdSymbols        bool   `mapstructure:"pwd_symbols" yaml:"pwd_symbols"`
	MinAge            int    `mapstructure:"min_age" yaml:"min_age"`
	MaxAge            int    `mapstructure:"max_age" yaml:"max_age"`
}

// ScannerConfig bounds the heuristics used by label inference and the scanner.
type ScannerConfig struct {
	AncestorDepth    int `mapstructure:"ancestor_depth" yaml:"ancestor_depth"`
	SiblingHops      int `mapstructure:"sibling_hops" yaml:"sibling_hops"`
	LabelMaxLength   int `mapstructure:"label_max_length" yaml:"label_max_length"`
	ContextMaxLength int `mapstructure:"context_max_length" yaml:"context_max_length"`
}

// InjectorConfig tunes the form injector.
type InjectorConfig struct {
	AddressDelay time.Duration `mapstructure:"address_delay" yaml:"address_delay"`
}

// GeocodeConfig configures the optional reverse geocoding address source.
type GeocodeConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	APIKey    string        `mapstructure:"api_key" yaml:"-"`
	Endpoint  string        `mapstructure:"endpoint" yaml:"endpoint"`
	RateLimit float64       `mapstructure:"rate_limit" yaml:"rate_limit"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// OutputConfig controls how command results are rendered.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"`
}

// DefaultConfigDir returns the per-user configuration directory.
func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", AppName)
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")

	// -- Browser --
	v.SetDefault("browser.backend", BackendHTTP)
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.ignore_tls_errors", false)
	v.SetDefault("browser.viewport", map[string]int{"width": 1366, "height": 900})
	v.SetDefault("browser.snapshot_timeout", "15s")

	// -- Network --
	v.SetDefault("network.timeout", "30s")
	v.SetDefault("network.navigation_timeout", "45s")
	v.SetDefault("network.post_load_wait", "1s")
	v.SetDefault("network.user_agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36")
	v.SetDefault("network.accept_language", "en-US,en;q=0.9")
	v.SetDefault("network.proxy.enabled", false)
	v.SetDefault("network.rate_limit", 2.0)
	v.SetDefault("network.burst", 1)
	v.SetDefault("network.concurrency", 4)

	// -- Generator --
	v.SetDefault("generator.country", "United States")
	v.SetDefault("generator.seed", 0)
	v.SetDefault("generator.email_category", "")
	v.SetDefault("generator.password_length", 12)
	v.SetDefault("generator.pwd_uppercase", true)
	v.SetDefault("generator.pwd_lowercase", true)
	v.SetDefault("generator.pwd_numbers", true)
	v.SetDefault("generator.pwd_symbols", true)
	v.SetDefault("generator.min_age", 18)
	v.SetDefault("generator.max_age", 55)

	// -- Scanner --
	v.SetDefault("scanner.ancestor_depth", 5)
	v.SetDefault("scanner.sibling_hops", 3)
	v.SetDefault("scanner.label_max_length", 100)
	v.SetDefault("scanner.context_max_length", 300)

	// -- Injector --
	v.SetDefault("injector.address_delay", "800ms")

	// -- Geocode --
	v.SetDefault("geocode.enabled", false)
	v.SetDefault("geocode.endpoint", "https://api.geoapify.com/v1/geocode/reverse")
	v.SetDefault("geocode.rate_limit", 1.0)
	v.SetDefault("geocode.timeout", "5s")

	// -- Output --
	v.SetDefault("output.format", "json")
	v.SetDefault("output.pretty", true)
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	// The API key is a secret and is normally only provided through the environment.
	_ = v.BindEnv("geocode.api_key", "GEOFILL_GEOAPIFY_KEY")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	switch c.BrowserCfg.Backend {
	case BackendHTTP, BackendChrome:
	default:
		return fmt.Errorf("browser.backend must be %q or %q, got %q", BackendHTTP, BackendChrome, c.BrowserCfg.Backend)
	}
	if c.NetworkCfg.Concurrency <= 0 {
		return fmt.Errorf("network.concurrency must be a positive integer")
	}
	if c.NetworkCfg.RateLimit < 0 {
		return fmt.Errorf("network.rate_limit must not be negative")
	}
	if c.NetworkCfg.Proxy.Enabled && c.NetworkCfg.Proxy.Address == "" {
		return fmt.Errorf("network.proxy.address is required when the proxy is enabled")
	}
	if err := c.GeneratorCfg.Validate(); err != nil {
		return fmt.Errorf("generator configuration invalid: %w", err)
	}
	if c.InjectorCfg.AddressDelay < 0 {
		return fmt.Errorf("injector.address_delay must not be negative")
	}
	if err := c.GeocodeCfg.Validate(); err != nil {
		return fmt.Errorf("geocode configuration invalid: %w", err)
	}
	switch strings.ToLower(c.OutputCfg.Format) {
	case "json", "yaml", "xml", "markdown":
	default:
		return fmt.Errorf("output.format %q is not supported", c.OutputCfg.Format)
	}
	return nil
}

// Validate checks the generator settings.
func (g *GeneratorConfig) Validate() error {
	if g.PasswordLength < 0 {
		return fmt.Errorf("password_length must not be negative")
	}
	if g.MinAge < 0 || g.MaxAge < 0 {
		return fmt.Errorf("min_age and max_age must not be negative")
	}
	if g.MinAge > g.MaxAge {
		return fmt.Errorf("min_age (%d) must not exceed max_age (%d)", g.MinAge, g.MaxAge)
	}
	return nil
}

// Validate checks the geocoder settings.
func (g *GeocodeConfig) Validate() error {
	if !g.Enabled {
		return nil
	}
	if g.APIKey == "" {
		return fmt.Errorf("api_key is required when geocoding is enabled. Set GEOFILL_GEOAPIFY_KEY")
	}
	if g.Endpoint == "" {
		return fmt.Errorf("endpoint is required when geocoding is enabled")
	}
	if g.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be positive")
	}
	return nil
}
