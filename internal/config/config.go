// Package config loads amdash configuration from a YAML file with
// environment-variable overrides (AMDASH_* via envconfig). Precedence is
// defaults < file < environment; command-line flags override all three at
// the call site.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envPrefix namespaces all environment overrides (e.g. AMDASH_API_BASE_URL).
const envPrefix = "amdash"

// Duration wraps time.Duration so config values can be written as "30s" or
// "5m" in YAML and environment variables alike.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Decode implements envconfig.Decoder.
func (d *Duration) Decode(value string) error {
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// Configuration defaults.
const (
	DefaultBaseURL         = "http://localhost:8000"
	DefaultRequestTimeout  = Duration(30 * time.Second)
	DefaultPageSize        = 10
	DefaultRefreshInterval = Duration(30 * time.Second)
)

// APIConfig describes how to reach the assessment backend.
type APIConfig struct {
	// BaseURL is the root of the backend API, without a trailing slash.
	BaseURL string `yaml:"base_url" envconfig:"BASE_URL"`

	// Timeout bounds each HTTP request.
	Timeout Duration `yaml:"timeout" envconfig:"TIMEOUT"`
}

// UIConfig tunes the dashboard behavior.
type UIConfig struct {
	// PageSize is the number of managers per page.
	PageSize int `yaml:"page_size" envconfig:"PAGE_SIZE"`

	// SortResetsPage makes a sort change jump back to page 1. Off by
	// default: sorting preserves the current page position.
	SortResetsPage bool `yaml:"sort_resets_page" envconfig:"SORT_RESETS_PAGE"`

	// RefreshInterval is the cadence of the background stats refresh.
	RefreshInterval Duration `yaml:"refresh_interval" envconfig:"REFRESH_INTERVAL"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"  envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT"`
	File   string `yaml:"file"   envconfig:"FILE"`
}

// Config is the full amdash configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultRequestTimeout,
		},
		UI: UIConfig{
			PageSize:        DefaultPageSize,
			RefreshInterval: DefaultRefreshInterval,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultPath returns the conventional config file location,
// $XDG_CONFIG_HOME/amdash/config.yaml (or ~/.config/amdash/config.yaml).
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "amdash", "config.yaml")
}

// Load reads the configuration from path (DefaultPath when empty), then
// applies environment overrides. A missing file is not an error; a file
// that exists but cannot be parsed is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
			// No config file is fine; stay on defaults.
		default:
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("applying environment overrides: %w", err)
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url must not be empty")
	}
	if c.UI.PageSize < 1 {
		return fmt.Errorf("ui.page_size must be >= 1, got %d", c.UI.PageSize)
	}
	if c.UI.RefreshInterval <= 0 {
		return fmt.Errorf("ui.refresh_interval must be positive, got %s", c.UI.RefreshInterval)
	}
	return nil
}
