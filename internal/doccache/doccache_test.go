package doccache

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdlinks/internal/errors"
	"git.home.luguber.info/inful/mdlinks/internal/metrics"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestGetComputesSlugs(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "guide.md", "# Intro\n\n## Setup\n\n## Setup\n\nText\n")

	cache := New()
	set, err := cache.Get(p)
	require.NoError(t, err)

	assert.Equal(t, []string{"intro", "setup", "setup-1"}, set.Slugs())
	assert.True(t, set.Has("setup-1"))
	assert.True(t, set.Has("Setup"), "fragments are also matched after slugifying")
	assert.False(t, set.Has("install"))
	assert.Len(t, set.Headings, 3)
	assert.Equal(t, Canonical(p), set.Path)
}

func TestGetIsComputedOnce(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.md", "# A\n")

	cache := New()
	first, err := cache.Get(p)
	require.NoError(t, err)

	// Rewriting the file must not change the cached result.
	require.NoError(t, os.WriteFile(p, []byte("# B\n"), 0o600))
	second, err := cache.Get(p)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.True(t, second.Has("a"))
	assert.Equal(t, Stats{Hits: 1, Misses: 1}, cache.Stats())
	assert.Equal(t, 1, cache.Len())
}

func TestGetCanonicalizesPaths(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "docs/a.md", "# A\n")
	writeFile(t, dir, "docs/sub/b.md", "")

	cache := New()
	_, err := cache.Get(p)
	require.NoError(t, err)
	_, err = cache.Get(filepath.Join(dir, "docs", "sub", "..", "a.md"))
	require.NoError(t, err)

	link := filepath.Join(dir, "alias.md")
	if err := os.Symlink(p, link); err == nil {
		_, err = cache.Get(link)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, int64(1), cache.Stats().Misses)
}

func TestGetCachesReadErrors(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.md")

	cache := New()
	_, err := cache.Get(missing)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))

	writeFile(t, dir, "missing.md", "# Now here\n")
	_, err = cache.Get(missing)
	require.Error(t, err, "failed reads are cached too")
	assert.Equal(t, 1, cache.Len())
}

func TestGetConcurrent(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.md", "# A\n## B\n")

	cache := New()
	var wg sync.WaitGroup
	sets := make([]*DocumentSlugSet, 16)
	for i := range sets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			set, err := cache.Get(p)
			assert.NoError(t, err)
			sets[i] = set
		}(i)
	}
	wg.Wait()

	for _, s := range sets {
		assert.Same(t, sets[0], s)
	}
	assert.Equal(t, Stats{Hits: 15, Misses: 1}, cache.Stats())
}

func TestHTMLAnchors(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.md", "# Title\n\n<a id=\"Custom-Anchor\"></a>\n")

	without, err := New().Get(p)
	require.NoError(t, err)
	assert.False(t, without.Has("Custom-Anchor"))

	with, err := New(WithHTMLAnchors(true)).Get(p)
	require.NoError(t, err)
	assert.True(t, with.Has("Custom-Anchor"))
	assert.False(t, with.Has("custom-anchor"), "anchor ids match verbatim only")
	assert.Equal(t, []string{"title"}, with.Slugs())
}

func TestRecorderCountsLookups(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.md", "# A\n")

	reg := prom.NewRegistry()
	cache := New(WithRecorder(metrics.NewPrometheusRecorder(reg)))
	_, _ = cache.Get(p)
	_, _ = cache.Get(p)
	_, _ = cache.Get(p)

	n, err := testutil.GatherAndCount(reg, "mdlinks_document_cache_lookups_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "one series per result label")
}
