package linkcheck

import (
	"log/slog"

	"git.home.luguber.info/inful/mdlinks/internal/metrics"
)

// Options control which links are validated and how.
type Options struct {
	// Recursive checks every matching file under a directory. Without it
	// the entry must be a single file.
	Recursive bool
	// IgnoreHeaderLinks skips fragment validation; only paths are checked.
	IgnoreHeaderLinks bool
	// DisallowDirLinks reports links whose target is a directory.
	DisallowDirLinks bool
	// IncludeImages validates image sources as well as links.
	IncludeImages bool
	// NoError downgrades findings to warnings.
	NoError bool
	// Extensions selects the files checked in recursive mode (default ".md").
	Extensions []string
	// Exclude holds slash-separated glob patterns, relative to the root.
	// A pattern without '/' also matches any base name; "dir/**" excludes
	// a whole subtree.
	Exclude []string
	// Workers bounds concurrent file checks (default 1).
	Workers int
}

func (o Options) withDefaults() Options {
	if len(o.Extensions) == 0 {
		o.Extensions = []string{".md"}
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	return o
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger sets the logger findings and progress are written to.
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Checker) {
		if r != nil {
			c.recorder = r
		}
	}
}
