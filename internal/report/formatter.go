// Package report renders link-check results for the terminal or for tools.
package report

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"git.home.luguber.info/inful/mdlinks/internal/linkcheck"
)

// Formatter formats check results for output.
type Formatter interface {
	Format(w io.Writer, r *linkcheck.Report) error
}

// Options tune the text formatter.
type Options struct {
	// Color enables ANSI styling.
	Color bool
	// HideWarnings drops warning-severity findings from the list; the
	// summary line still counts them.
	HideWarnings bool
}

// NewFormatter creates the appropriate formatter based on format string.
func NewFormatter(format string, opts Options) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	default:
		return NewTextFormatter(opts)
	}
}

// ColorEnabled resolves a color mode ("auto", "always", "never") for the
// given output. Auto enables color on terminals unless NO_COLOR is set.
func ColorEnabled(mode string, out *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if out == nil {
		return false
	}
	fd := out.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// pluralize returns "s" if count != 1, otherwise empty string.
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
