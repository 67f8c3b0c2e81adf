package config

import "time"

const defaultDebounce = 500 * time.Millisecond

func applyDefaults(cfg *Config) {
	if len(cfg.Check.Extensions) == 0 {
		cfg.Check.Extensions = []string{".md"}
	}
	if cfg.Check.Workers == 0 {
		cfg.Check.Workers = 1
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "text"
	}
	if cfg.Output.Color == "" {
		cfg.Output.Color = "auto"
	}
	if cfg.Logging.Verbosity == "" {
		cfg.Logging.Verbosity = "warn"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = defaultDebounce.String()
	}
}
