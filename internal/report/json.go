package report

import (
	"encoding/json"
	"io"

	"git.home.luguber.info/inful/mdlinks/internal/linkcheck"
)

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// JSONOutput represents the JSON output structure.
type JSONOutput struct {
	Root         string                        `json:"root"`
	FilesChecked int                           `json:"files_checked"`
	LinksChecked int                           `json:"links_checked"`
	FindingCount int                           `json:"finding_count"`
	Kinds        map[linkcheck.FindingKind]int `json:"kinds"`
	DurationMS   int64                         `json:"duration_ms"`
	Findings     []linkcheck.Finding           `json:"findings"`
}

// Format outputs results in JSON format.
func (f *JSONFormatter) Format(w io.Writer, r *linkcheck.Report) error {
	output := JSONOutput{
		Root:         r.Root,
		FilesChecked: r.FilesChecked,
		LinksChecked: r.LinksChecked,
		FindingCount: r.Count(),
		Kinds:        r.CountByKind(),
		DurationMS:   r.Duration.Milliseconds(),
		Findings:     r.Findings,
	}
	if output.Findings == nil {
		output.Findings = []linkcheck.Finding{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
