package linkcheck

import (
	"fmt"
	"time"
)

// FindingKind identifies why a link failed validation.
type FindingKind string

const (
	// KindMissingFile: the link path does not resolve to an existing entry,
	// or the target exists but could not be read while resolving a fragment.
	KindMissingFile FindingKind = "missing_file"
	// KindMissingHeading: the target file exists but no heading slug matches
	// the fragment.
	KindMissingHeading FindingKind = "missing_heading"
	// KindMissingTarget: a full or collapsed reference link whose label has
	// no definition.
	KindMissingTarget FindingKind = "missing_target"
	// KindInvalidHeaderLink: a fragment link whose target is a directory.
	KindInvalidHeaderLink FindingKind = "invalid_header_link"
	// KindDirectoryLink: a link to a directory while directory links are disallowed.
	KindDirectoryLink FindingKind = "directory_link"
)

// Class folds kinds into the two top-level classes: missing files and
// missing headings. Undefined references and directory links count as
// missing files.
func (k FindingKind) Class() FindingKind {
	if k == KindMissingHeading {
		return KindMissingHeading
	}
	return KindMissingFile
}

// Severity of a finding. Findings are errors unless NoError is set.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one broken or invalid link.
type Finding struct {
	SourceFile string      `json:"file"`
	Line       int         `json:"line"`
	Column     int         `json:"column"`
	Link       string      `json:"link"`             // raw destination, or "[label]" for undefined references
	Kind       FindingKind `json:"kind"`
	Target     string      `json:"target,omitempty"` // resolved target path
	Fragment   string      `json:"fragment,omitempty"`
	Severity   Severity    `json:"severity"`
	Message    string      `json:"message"`
}

// Location renders "file:line".
func (f Finding) Location() string {
	return fmt.Sprintf("%s:%d", f.SourceFile, f.Line)
}

// Report is the outcome of one Check run. Findings are ordered by source
// file (walk order) and then by position within the file.
type Report struct {
	Root         string        `json:"root"`
	Findings     []Finding     `json:"findings"`
	FilesChecked int           `json:"files_checked"`
	LinksChecked int           `json:"links_checked"`
	Duration     time.Duration `json:"duration_ns"`
}

// Count returns the number of findings.
func (r *Report) Count() int {
	return len(r.Findings)
}

// HasFindings returns true if any link is broken or invalid.
func (r *Report) HasFindings() bool {
	return len(r.Findings) > 0
}

// CountByKind returns the number of findings per kind.
func (r *Report) CountByKind() map[FindingKind]int {
	counts := make(map[FindingKind]int)
	for _, f := range r.Findings {
		counts[f.Kind]++
	}
	return counts
}

// Summary renders the closing line of a run, e.g. "Found 2 broken or invalid links!".
func (r *Report) Summary() string {
	switch n := len(r.Findings); n {
	case 0:
		return "OK."
	case 1:
		return "Found 1 broken or invalid link!"
	default:
		return fmt.Sprintf("Found %d broken or invalid links!", n)
	}
}
