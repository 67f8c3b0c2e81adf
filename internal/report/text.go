package report

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"git.home.luguber.info/inful/mdlinks/internal/linkcheck"
)

// Color palette for the text report.
var (
	colorError   = lipgloss.Color("#E74C3C")
	colorWarning = lipgloss.Color("#F4D03F")
	colorSuccess = lipgloss.Color("#2CD7C7")
	colorMuted   = lipgloss.Color("#6C7A89")
)

const (
	iconError   = "✗"
	iconWarning = "⚠"
	iconSuccess = "✓"
)

type styles struct {
	errorText   lipgloss.Style
	warningText lipgloss.Style
	success     lipgloss.Style
	location    lipgloss.Style
	muted       lipgloss.Style
}

// TextFormatter prints one "file:line: message" row per finding followed by
// a summary.
type TextFormatter struct {
	opts Options
}

// NewTextFormatter creates a text formatter.
func NewTextFormatter(opts Options) *TextFormatter {
	return &TextFormatter{opts: opts}
}

func (f *TextFormatter) styles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)
	return styles{
		errorText:   r.NewStyle().Foreground(colorError),
		warningText: r.NewStyle().Foreground(colorWarning),
		success:     r.NewStyle().Foreground(colorSuccess),
		location:    r.NewStyle().Bold(true),
		muted:       r.NewStyle().Foreground(colorMuted),
	}
}

// paint applies s only when color is enabled.
func (f *TextFormatter) paint(s lipgloss.Style, text string) string {
	if !f.opts.Color {
		return text
	}
	return s.Render(text)
}

// Format outputs results in human-readable text format.
func (f *TextFormatter) Format(w io.Writer, r *linkcheck.Report) error {
	st := f.styles(w)

	shown := 0
	warningsOnly := true
	for _, finding := range r.Findings {
		if finding.Severity != linkcheck.SeverityWarning {
			warningsOnly = false
		} else if f.opts.HideWarnings {
			continue
		}
		if err := f.formatFinding(w, st, finding); err != nil {
			return err
		}
		shown++
	}
	if shown > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	// Summary
	var summary string
	switch {
	case !r.HasFindings():
		summary = f.paint(st.success, iconSuccess+" "+r.Summary())
	case warningsOnly:
		summary = f.paint(st.warningText, iconWarning+" "+r.Summary())
	default:
		summary = f.paint(st.errorText, iconError+" "+r.Summary())
	}
	if _, err := fmt.Fprintln(w, summary); err != nil {
		return err
	}

	stats := fmt.Sprintf("%d file%s, %d link%s checked in %s",
		r.FilesChecked, pluralize(r.FilesChecked),
		r.LinksChecked, pluralize(r.LinksChecked),
		r.Duration.Round(time.Millisecond))
	_, err := fmt.Fprintln(w, f.paint(st.muted, stats))
	return err
}

func (f *TextFormatter) formatFinding(w io.Writer, st styles, finding linkcheck.Finding) error {
	icon, style := iconError, st.errorText
	if finding.Severity == linkcheck.SeverityWarning {
		icon, style = iconWarning, st.warningText
	}
	_, err := fmt.Fprintf(w, "%s %s: %s\n",
		f.paint(style, icon),
		f.paint(st.location, finding.Location()),
		f.paint(style, finding.Message))
	return err
}
