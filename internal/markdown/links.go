package markdown

import "fmt"

// LinkKind classifies the syntax a link was written with.
type LinkKind string

const (
	LinkKindInline    LinkKind = "inline"
	LinkKindImage     LinkKind = "image"
	LinkKindAuto      LinkKind = "auto"
	LinkKindReference LinkKind = "reference"
	// LinkKindDefinition is a reference definition that no link in the
	// document uses; it is still reported so its target gets validated.
	LinkKindDefinition LinkKind = "definition"
)

// LinkReference is one link target found in a document.
type LinkReference struct {
	// Raw is the destination exactly as written.
	Raw string
	// Path is the unescaped, percent-decoded path portion with any query
	// string removed. It is empty for pure fragment links ("#section").
	Path string
	// Fragment is the decoded text after the first unescaped '#'.
	Fragment    string
	HasFragment bool
	Line        int
	Column      int // 1-based byte column of the opening bracket
	Kind        LinkKind
	// Label is the reference label for reference-style links.
	Label string
	// External is set for destinations with a URL scheme (https:, mailto:, ...)
	// or a protocol-relative prefix; these are never checked on disk.
	External bool
	// Undefined is set for full or collapsed reference links whose label has
	// no matching definition. Raw and Path are empty in that case.
	Undefined bool
}

// SelfReference reports whether the link points into its own document.
func (l LinkReference) SelfReference() bool {
	return l.Path == "" && !l.External && !l.Undefined
}

func (l LinkReference) String() string {
	if l.Undefined {
		return fmt.Sprintf("[%s]", l.Label)
	}
	return l.Raw
}
