package commands

import (
	"context"
	"os"
	"time"

	"git.home.luguber.info/inful/mdlinks/internal/errors"
	"git.home.luguber.info/inful/mdlinks/internal/linkcheck"
	"git.home.luguber.info/inful/mdlinks/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Path     string        `arg:"" help:"Input file or directory"`
	Debounce time.Duration `help:"Quiet period before a re-check (default 500ms)"`
	CheckFlags
}

// Run checks once and then again after every debounced change until interrupted.
func (w *WatchCmd) Run(g *Global) error {
	cfg := *g.Config
	overrides := w.overrides()
	overrides.Debounce = w.Debounce
	cfg.ApplyFlags(overrides)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if _, err := os.Stat(w.Path); err != nil {
		return errors.NotFoundError(linkcheck.ErrNotFound.Message()).
			WithContext("path", w.Path).
			WithCause(err).
			Build()
	}

	watcher, err := watch.New(w.Path, watch.Options{
		Extensions: cfg.Check.Extensions,
		Debounce:   cfg.DebounceDuration(),
		Logger:     g.Logger,
	}, func(ctx context.Context) error {
		_, err := runCheck(ctx, g, &cfg, w.Path)
		return err
	})
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "cannot watch input path").
			WithContext("path", w.Path).
			Fatal().
			Build()
	}
	return watcher.Run(g.Context)
}
