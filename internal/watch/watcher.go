// Package watch re-runs a check whenever Markdown files below a path change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/mdlinks/internal/logfields"
)

// RunFunc performs one check. Errors are logged and do not stop watching.
type RunFunc func(ctx context.Context) error

// Options configure a Watcher.
type Options struct {
	// Extensions select which file events trigger a run (default ".md").
	Extensions []string
	// Debounce collapses bursts of events into a single run.
	Debounce time.Duration
	Logger   *slog.Logger
}

// Watcher monitors a file or a directory tree and calls its RunFunc once
// at start and again after each debounced burst of relevant changes.
type Watcher struct {
	root    string
	isDir   bool
	opts    Options
	run     RunFunc
	watcher *fsnotify.Watcher
	logger  *slog.Logger
}

// New creates a watcher for root. The watcher holds OS resources until Run
// returns.
func New(root string, opts Options, run RunFunc) (*Watcher, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat watch root: %w", err)
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".md"}
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		root:    root,
		isDir:   info.IsDir(),
		opts:    opts,
		run:     run,
		watcher: fw,
		logger:  logger,
	}, nil
}

// Run blocks until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	if err := w.addWatches(); err != nil {
		return err
	}
	w.logger.Info("Watching for changes", logfields.Path(w.root))

	w.runOnce(ctx)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("Change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		case <-fire:
			fire = nil
			w.runOnce(ctx)
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context) {
	if err := w.run(ctx); err != nil && ctx.Err() == nil {
		w.logger.Error("Check failed", logfields.Error(err))
	}
}

// addWatches registers the root directory and, for directories, every
// non-hidden subdirectory. A single file is watched through its parent so
// that editor save-by-rename is seen.
func (w *Watcher) addWatches() error {
	if !w.isDir {
		dir := filepath.Dir(w.root)
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		return nil
	}
	return w.addTree(w.root)
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", p, err)
		}
		return nil
	})
}

// relevant filters events down to Markdown content changes. New
// directories inside a watched tree are added on the fly.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	if w.isDir && event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("Cannot watch new directory", logfields.Path(event.Name), logfields.Error(err))
			}
			return true
		}
	}
	ext := filepath.Ext(event.Name)
	for _, want := range w.opts.Extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}
