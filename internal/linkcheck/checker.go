package linkcheck

import (
	"context"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/mdlinks/internal/doccache"
	"git.home.luguber.info/inful/mdlinks/internal/errors"
	"git.home.luguber.info/inful/mdlinks/internal/logfields"
	"git.home.luguber.info/inful/mdlinks/internal/metrics"
)

// Checker validates links of one file or one directory tree per Check call.
type Checker struct {
	opts     Options
	cache    *doccache.Cache
	logger   *slog.Logger
	recorder metrics.Recorder
}

// NewChecker creates a checker. A nil cache gets a fresh one.
func NewChecker(opts Options, cache *doccache.Cache, options ...Option) *Checker {
	if cache == nil {
		cache = doccache.New()
	}
	c := &Checker{
		opts:     opts.withDefaults(),
		cache:    cache,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

type fileResult struct {
	findings []Finding
	links    int
}

// Check validates path and returns the collected findings.
func (c *Checker) Check(ctx context.Context, path string) (*Report, error) {
	start := time.Now()
	report, err := c.check(ctx, path)
	elapsed := time.Since(start)
	c.recorder.ObserveRunDuration(elapsed)

	switch {
	case err != nil:
		c.recorder.IncRunOutcome(metrics.OutcomeFailed)
		return nil, err
	case report.HasFindings():
		c.recorder.IncRunOutcome(metrics.OutcomeFindings)
	default:
		c.recorder.IncRunOutcome(metrics.OutcomeClean)
	}
	report.Duration = elapsed

	c.logger.Debug("Check complete",
		logfields.Path(path),
		logfields.Count(report.Count()),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return report, nil
}

func (c *Checker) check(ctx context.Context, path string) (*Report, error) {
	files, err := c.entryFiles(path)
	if err != nil {
		return nil, err
	}

	results := make([]fileResult, len(files))
	if c.opts.Workers > 1 && len(files) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.opts.Workers)
		for i, file := range files {
			g.Go(func() error {
				res, err := c.checkFile(gctx, file)
				results[i] = res
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, file := range files {
			res, err := c.checkFile(ctx, file)
			if err != nil {
				return nil, err
			}
			results[i] = res
		}
	}

	report := &Report{Root: path, Findings: []Finding{}, FilesChecked: len(files)}
	for _, res := range results {
		report.Findings = append(report.Findings, res.findings...)
		report.LinksChecked += res.links
	}
	return report, nil
}

// entryFiles validates the entry path and lists the files to check.
func (c *Checker) entryFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError(ErrNotFound.Message()).
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "cannot access input path").
			WithContext("path", path).
			Fatal().
			Build()
	}

	switch {
	case info.IsDir() && !c.opts.Recursive:
		return nil, errors.ValidationError(ErrNotAFile.Message()).WithContext("path", path).Build()
	case !info.IsDir() && c.opts.Recursive:
		return nil, errors.ValidationError(ErrNotADirectory.Message()).WithContext("path", path).Build()
	case !info.IsDir():
		return []string{path}, nil
	}

	c.logger.Debug("Analyzing directory", logfields.Path(path))
	files, err := collectFiles(path, c.opts.Extensions, c.opts.Exclude)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "cannot walk directory").
			WithContext("path", path).
			Fatal().
			Build()
	}
	return files, nil
}
