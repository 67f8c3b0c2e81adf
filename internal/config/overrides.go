package config

import (
	"slices"
	"time"
)

// Overrides carries command-line values. Zero values leave the file
// configuration untouched; boolean flags can only switch a feature on.
type Overrides struct {
	Recursive         bool
	IgnoreHeaderLinks bool
	DisallowDirLinks  bool
	Images            bool
	HTMLAnchors       bool
	NoError           bool
	Extensions        []string
	Exclude           []string
	Workers           int
	Format            string
	Color             string
	MetricsFile       string
	Verbosity         string
	LogFormat         string
	Debounce          time.Duration
}

// ApplyFlags overlays command-line values onto the configuration.
func (c *Config) ApplyFlags(o Overrides) {
	c.Check.Recursive = c.Check.Recursive || o.Recursive
	c.Check.IgnoreHeaderLinks = c.Check.IgnoreHeaderLinks || o.IgnoreHeaderLinks
	c.Check.DisallowDirLinks = c.Check.DisallowDirLinks || o.DisallowDirLinks
	c.Check.Images = c.Check.Images || o.Images
	c.Check.HTMLAnchors = c.Check.HTMLAnchors || o.HTMLAnchors
	c.Check.NoError = c.Check.NoError || o.NoError

	if len(o.Extensions) > 0 {
		c.Check.Extensions = o.Extensions
	}
	if len(o.Exclude) > 0 {
		c.Check.Exclude = append(slices.Clone(c.Check.Exclude), o.Exclude...)
	}
	if o.Workers > 0 {
		c.Check.Workers = o.Workers
	}
	if o.Format != "" {
		c.Output.Format = o.Format
	}
	if o.Color != "" {
		c.Output.Color = o.Color
	}
	if o.MetricsFile != "" {
		c.Output.MetricsFile = o.MetricsFile
	}
	if o.Verbosity != "" {
		c.Logging.Verbosity = o.Verbosity
	}
	if o.LogFormat != "" {
		c.Logging.Format = o.LogFormat
	}
	if o.Debounce > 0 {
		c.Watch.Debounce = o.Debounce.String()
	}
}
