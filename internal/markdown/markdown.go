// Package markdown scans Markdown documents for the constructs a link checker
// cares about: headings (with their anchor slugs) and link targets.
//
// Block structure is recognized by a small line scanner rather than a full
// CommonMark parser, because the checker needs exact line numbers and a
// pinned-down answer to ambiguous cases (Setext underlines versus thematic
// breaks and list markers, escaped '#' in destinations). Goldmark is only used
// to reduce heading inline content to plain text.
package markdown

// Options controls how links are extracted.
type Options struct {
	// IncludeImages reports image sources (![alt](src)) as links to validate.
	IncludeImages bool
}
