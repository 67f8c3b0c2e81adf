package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mdlinks/internal/errors"
)

// DefaultFileName is looked up in the working directory when no explicit
// configuration path is given.
const DefaultFileName = ".mdlinks.yaml"

// Config represents the application configuration
type Config struct {
	Version string        `yaml:"version"`
	Check   CheckConfig   `yaml:"check"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Watch   WatchConfig   `yaml:"watch"`
}

// CheckConfig controls which links are validated and how.
type CheckConfig struct {
	Recursive         bool     `yaml:"recursive"`
	IgnoreHeaderLinks bool     `yaml:"ignore_header_links"`
	DisallowDirLinks  bool     `yaml:"disallow_dir_links"`
	Images            bool     `yaml:"images"`
	HTMLAnchors       bool     `yaml:"html_anchors"`
	NoError           bool     `yaml:"no_error"`
	Extensions        []string `yaml:"extensions,omitempty"` // Defaults to [".md"]
	Exclude           []string `yaml:"exclude,omitempty"`    // Slash-separated globs relative to the root
	Workers           int      `yaml:"workers"`
}

// OutputConfig represents report output configuration
type OutputConfig struct {
	Format      string `yaml:"format"` // "text" or "json"
	Color       string `yaml:"color"`  // "auto", "always" or "never"
	MetricsFile string `yaml:"metrics_file,omitempty"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Verbosity string `yaml:"verbosity"`
	Format    string `yaml:"format"`
}

// WatchConfig represents watch mode configuration
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{Version: "1"}
	applyDefaults(cfg)
	return cfg
}

// Load loads configuration from the specified file. Environment variables
// from .env files are loaded first and expanded in the YAML content.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigError("configuration file not found").
			WithContext("path", configPath).
			Build()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).
			Fatal().
			Build()
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").
			WithContext("path", configPath).
			Fatal().
			Build()
	}

	if cfg.Version != "" && cfg.Version != "1" {
		return nil, errors.ConfigError(fmt.Sprintf("unsupported configuration version: %s (expected 1)", cfg.Version)).
			WithContext("path", configPath).
			Build()
	}
	cfg.Version = "1"

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Resolve loads the explicit path when given, otherwise DefaultFileName
// when it exists, otherwise the defaults. It returns the path that was used,
// or "" for defaults.
func Resolve(explicit string) (*Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}
	if _, err := os.Stat(DefaultFileName); err == nil {
		cfg, err := Load(DefaultFileName)
		return cfg, DefaultFileName, err
	}
	return Default(), "", nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	example := Default()
	example.Check.Recursive = true
	example.Check.Exclude = []string{"node_modules/**", "vendor/**"}

	data, err := yaml.Marshal(example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Fatal().
			Build()
	}
	return nil
}

// DebounceDuration returns the parsed watch debounce, falling back to the
// default when unset or invalid.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return defaultDebounce
	}
	return d
}
