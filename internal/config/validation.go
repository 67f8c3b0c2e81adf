package config

import (
	"path"
	"strings"
	"time"

	"git.home.luguber.info/inful/mdlinks/internal/errors"
	"git.home.luguber.info/inful/mdlinks/internal/logging"
)

// Validate checks the configuration after defaults and overrides are applied.
func (c *Config) Validate() error {
	if _, err := logging.ParseVerbosity(c.Logging.Verbosity); err != nil {
		return invalid("logging.verbosity", c.Logging.Verbosity, err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return invalid("logging.format", c.Logging.Format, nil)
	}
	switch strings.ToLower(c.Output.Format) {
	case "text", "json":
	default:
		return invalid("output.format", c.Output.Format, nil)
	}
	switch strings.ToLower(c.Output.Color) {
	case "auto", "always", "never":
	default:
		return invalid("output.color", c.Output.Color, nil)
	}
	if c.Check.Workers < 1 {
		return invalid("check.workers", c.Check.Workers, nil)
	}
	for _, ext := range c.Check.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return invalid("check.extensions", ext, nil)
		}
	}
	for _, pattern := range c.Check.Exclude {
		if _, err := path.Match(pattern, ""); err != nil {
			return invalid("check.exclude", pattern, err)
		}
	}
	if c.Watch.Debounce != "" {
		d, err := time.ParseDuration(c.Watch.Debounce)
		if err != nil || d <= 0 {
			return invalid("watch.debounce", c.Watch.Debounce, err)
		}
	}
	return nil
}

func invalid(field string, value any, cause error) error {
	return errors.ConfigError("invalid configuration value").
		WithContext("field", field).
		WithContext("value", value).
		WithCause(cause).
		Build()
}
