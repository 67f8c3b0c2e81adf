package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/mdlinks/internal/config"
	"git.home.luguber.info/inful/mdlinks/internal/doccache"
	"git.home.luguber.info/inful/mdlinks/internal/linkcheck"
	"git.home.luguber.info/inful/mdlinks/internal/logfields"
	"git.home.luguber.info/inful/mdlinks/internal/logging"
	"git.home.luguber.info/inful/mdlinks/internal/metrics"
	"git.home.luguber.info/inful/mdlinks/internal/report"
)

// CheckFlags are shared by the check and watch commands. Unset flags leave
// configuration file values in place.
type CheckFlags struct {
	Recursive         bool     `short:"r" help:"Check all files in the input directory"`
	IgnoreHeaderLinks bool     `name:"ignore-header-links" help:"Do not check if headers are valid in links (e.g. 'document.md#some-header')"`
	DisallowDirLinks  bool     `name:"disallow-dir-links" help:"Report links that point to a directory"`
	Images            bool     `help:"Also validate image sources"`
	HTMLAnchors       bool     `name:"html-anchors" help:"Accept HTML id and <a name> anchors as fragment targets"`
	NoError           bool     `name:"no-error" help:"Convert all broken/invalid links errors to warnings"`
	Ext               []string `help:"File extensions checked in recursive mode (default .md)"`
	Exclude           []string `help:"Glob patterns, relative to the input directory, to skip"`
	Jobs              int      `short:"j" help:"Number of files checked in parallel"`
	Format            string   `help:"Report format (text, json)"`
	Color             string   `help:"Colorize the report (auto, always, never)"`
	MetricsFile       string   `name:"metrics-file" help:"Write Prometheus metrics to this textfile after each run"`
}

func (f CheckFlags) overrides() config.Overrides {
	return config.Overrides{
		Recursive:         f.Recursive,
		IgnoreHeaderLinks: f.IgnoreHeaderLinks,
		DisallowDirLinks:  f.DisallowDirLinks,
		Images:            f.Images,
		HTMLAnchors:       f.HTMLAnchors,
		NoError:           f.NoError,
		Extensions:        f.Ext,
		Exclude:           f.Exclude,
		Workers:           f.Jobs,
		Format:            f.Format,
		Color:             f.Color,
		MetricsFile:       f.MetricsFile,
	}
}

// FindingsError is returned when broken links were reported; it maps to
// exit code 1 and carries no message of its own beyond the summary.
type FindingsError struct {
	Count int
}

func (e *FindingsError) Error() string {
	if e.Count == 1 {
		return "found 1 broken or invalid link"
	}
	return fmt.Sprintf("found %d broken or invalid links", e.Count)
}

// CheckCmd implements the default 'check' command.
type CheckCmd struct {
	Path string `arg:"" help:"Input file or directory"`
	CheckFlags
}

// Run executes the check command.
func (c *CheckCmd) Run(g *Global) error {
	cfg := *g.Config
	cfg.ApplyFlags(c.overrides())
	if err := cfg.Validate(); err != nil {
		return err
	}

	r, err := runCheck(g.Context, g, &cfg, c.Path)
	if err != nil {
		return err
	}
	return exitStatus(g, &cfg, r)
}

// exitStatus applies the exit policy: silent runs and --no-error always
// succeed; otherwise any finding fails the run.
func exitStatus(g *Global, cfg *config.Config, r *linkcheck.Report) error {
	if !r.HasFindings() || cfg.Check.NoError || g.Verbosity.IsSilent() {
		return nil
	}
	return &FindingsError{Count: r.Count()}
}

// runCheck performs one complete run with a fresh document cache and prints
// the report.
func runCheck(ctx context.Context, g *Global, cfg *config.Config, path string) (*linkcheck.Report, error) {
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var registry *prom.Registry
	if cfg.Output.MetricsFile != "" {
		registry = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	cache := doccache.New(
		doccache.WithHTMLAnchors(cfg.Check.HTMLAnchors),
		doccache.WithLogger(g.Logger),
		doccache.WithRecorder(recorder),
	)
	checker := linkcheck.NewChecker(checkOptions(cfg), cache,
		linkcheck.WithLogger(g.Logger),
		linkcheck.WithRecorder(recorder),
	)

	r, err := checker.Check(ctx, path)

	if registry != nil {
		if werr := metrics.WriteTextfile(cfg.Output.MetricsFile, registry); werr != nil {
			g.Logger.Warn("Failed to write metrics file",
				logfields.Path(cfg.Output.MetricsFile), logfields.Error(werr))
		}
	}
	if err != nil {
		return nil, err
	}

	stats := cache.Stats()
	g.Logger.Debug("Document cache",
		logfields.Count(cache.Len()),
		slog.Int64("hits", stats.Hits),
		slog.Int64("misses", stats.Misses))

	if g.Verbosity.IsSilent() {
		return r, nil
	}
	formatter := report.NewFormatter(cfg.Output.Format, report.Options{
		Color:        report.ColorEnabled(cfg.Output.Color, asFile(g.Stdout)),
		HideWarnings: g.Verbosity == logging.VerbosityErrors,
	})
	if err := formatter.Format(g.Stdout, r); err != nil {
		return nil, fmt.Errorf("formatting output: %w", err)
	}
	return r, nil
}

func checkOptions(cfg *config.Config) linkcheck.Options {
	return linkcheck.Options{
		Recursive:         cfg.Check.Recursive,
		IgnoreHeaderLinks: cfg.Check.IgnoreHeaderLinks,
		DisallowDirLinks:  cfg.Check.DisallowDirLinks,
		IncludeImages:     cfg.Check.Images,
		NoError:           cfg.Check.NoError,
		Extensions:        cfg.Check.Extensions,
		Exclude:           cfg.Check.Exclude,
		Workers:           cfg.Check.Workers,
	}
}

func asFile(w any) *os.File {
	f, _ := w.(*os.File)
	return f
}
