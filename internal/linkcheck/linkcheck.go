// Package linkcheck validates the links of Markdown documents against the
// filesystem and the heading slugs of their targets.
//
// Broken links are findings, collected in a Report and never returned as
// errors. Errors are reserved for conditions that stop a run: a missing
// entry path, an entry of the wrong type, or an unreadable source document.
package linkcheck

import (
	"context"

	"git.home.luguber.info/inful/mdlinks/internal/doccache"
	"git.home.luguber.info/inful/mdlinks/internal/errors"
)

var (
	// ErrNotFound is returned when the entry path does not exist.
	ErrNotFound = errors.NotFoundError("input path not found").Build()
	// ErrNotAFile is returned for a directory entry without Recursive.
	ErrNotAFile = errors.ValidationError("input is not a file - to check a folder, use the '-r' / '--recursive' option").Build()
	// ErrNotADirectory is returned for a file entry with Recursive.
	ErrNotADirectory = errors.ValidationError("input is not a directory but '-r' / '--recursive' option was supplied").Build()
)

// CheckBrokenLinks validates path with opts and returns the number of
// broken or invalid links. The cache may be shared between calls so that
// heading slugs of common targets are computed once; nil uses a fresh one.
func CheckBrokenLinks(path string, opts Options, cache *doccache.Cache) (int, error) {
	if cache == nil {
		cache = doccache.New()
	}
	report, err := NewChecker(opts, cache).Check(context.Background(), path)
	if err != nil {
		return 0, err
	}
	return report.Count(), nil
}
