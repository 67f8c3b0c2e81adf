// Package doccache memoizes the heading slugs of Markdown files.
//
// A Cache is owned by the caller and may be reused across many check runs.
// Entries are keyed by canonical path and are computed at most once, even
// under concurrent lookups. Entries are never evicted.
package doccache

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"git.home.luguber.info/inful/mdlinks/internal/errors"
	"git.home.luguber.info/inful/mdlinks/internal/logfields"
	"git.home.luguber.info/inful/mdlinks/internal/logging"
	"git.home.luguber.info/inful/mdlinks/internal/markdown"
	"git.home.luguber.info/inful/mdlinks/internal/metrics"
	"git.home.luguber.info/inful/mdlinks/internal/slug"
)

// DocumentSlugSet holds everything a fragment can resolve to in one document.
type DocumentSlugSet struct {
	Path     string // canonical path
	Headings []markdown.Heading
	Anchors  []markdown.Anchor // empty unless HTML anchors are enabled

	slugs map[string]struct{}
	ids   map[string]struct{}
}

// Has reports whether fragment names a heading or anchor of the document.
// Heading slugs match the fragment verbatim or its slugified form; HTML
// anchor ids only match verbatim.
func (d *DocumentSlugSet) Has(fragment string) bool {
	if _, ok := d.slugs[fragment]; ok {
		return true
	}
	if _, ok := d.ids[fragment]; ok {
		return true
	}
	_, ok := d.slugs[slug.Slugify(fragment)]
	return ok
}

// Slugs returns the heading slugs in sorted order.
func (d *DocumentSlugSet) Slugs() []string {
	out := make([]string, 0, len(d.slugs))
	for s := range d.slugs {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Stats counts cache lookups.
type Stats struct {
	Hits   int64
	Misses int64
}

type entry struct {
	once sync.Once
	set  *DocumentSlugSet
	err  error
}

// Cache maps canonical paths to their DocumentSlugSet. The zero value is not
// usable; construct with New.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry

	htmlAnchors bool
	recorder    metrics.Recorder
	logger      *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// Option configures a Cache.
type Option func(*Cache)

// WithHTMLAnchors makes id attributes and <a name> anchors valid fragment targets.
func WithHTMLAnchors(enabled bool) Option {
	return func(c *Cache) { c.htmlAnchors = enabled }
}

// WithRecorder sets the metrics recorder for hit and miss counts.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Cache) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithLogger sets the logger used when documents are parsed.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries:  make(map[string]*entry),
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the slug set of the document at path, reading and parsing it
// on first use. Read failures are cached as well, so a file is read at most
// once per cache.
func (c *Cache) Get(path string) (*DocumentSlugSet, error) {
	key := Canonical(path)

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	c.mu.Unlock()

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	c.recorder.IncCacheLookup(ok)

	e.once.Do(func() {
		e.set, e.err = c.load(key)
	})
	return e.set, e.err
}

// Len returns the number of cached documents, including failed reads.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the lookup counters.
func (c *Cache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

func (c *Cache) load(path string) (*DocumentSlugSet, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "cannot read document").
			WithContext("path", path).
			Build()
	}

	set := &DocumentSlugSet{
		Path:     path,
		Headings: markdown.ExtractHeadings(src),
		slugs:    make(map[string]struct{}),
		ids:      make(map[string]struct{}),
	}
	for _, h := range set.Headings {
		set.slugs[h.Slug] = struct{}{}
		c.logger.Log(context.Background(), logging.LevelTrace, "Heading slug",
			logfields.File(path), logfields.Line(h.Line), logfields.Slug(h.Slug))
	}
	if c.htmlAnchors {
		set.Anchors = markdown.ExtractHTMLAnchors(src)
		for _, a := range set.Anchors {
			set.ids[a.ID] = struct{}{}
		}
	}

	c.logger.Debug("Computed document slugs",
		logfields.File(path),
		logfields.Count(len(set.Headings)))
	return set, nil
}

// Canonical returns the absolute, symlink-resolved form of path. When the
// path cannot be resolved the cleaned absolute path is returned.
func Canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
