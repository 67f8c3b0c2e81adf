package markdown

import (
	"strings"

	"git.home.luguber.info/inful/mdlinks/internal/slug"
)

// Heading is an ATX or Setext heading together with its anchor slug.
type Heading struct {
	Text  string // plain text, inline markup removed
	Level int    // 1..6
	Slug  string // unique within the document
	// Occurrence is 0 for the first heading producing a base slug and n for
	// the n-th repeat, whose Slug carries the "-n" suffix.
	Occurrence int
	Line       int
}

// ExtractHeadings returns the headings of src in document order.
//
// Lines inside front matter, code blocks and HTML comments are ignored. ATX
// headings inside block quotes count; a Setext heading takes the text of
// every line of its paragraph.
// Heading-like lines that do not satisfy the ATX or Setext rules are treated
// as plain text.
func ExtractHeadings(src []byte) []Heading {
	lines := scanLines(src)
	counter := slug.NewCounter()

	var headings []Heading
	add := func(raw string, level, line int) {
		text := inlineText(raw)
		s, occurrence := counter.Next(slug.Slugify(text))
		headings = append(headings, Heading{
			Text:       text,
			Level:      level,
			Slug:       s,
			Occurrence: occurrence,
			Line:       line,
		})
	}

	for i, l := range lines {
		if l.skip {
			continue
		}

		if text, level, ok := parseATX(l.text[quotePrefix(l.text):]); ok {
			add(text, level, l.num)
			continue
		}

		if i == 0 {
			continue
		}
		level, ok := setextLevel(l.text)
		if !ok {
			continue
		}
		// The underline applies to the whole paragraph above it. A line that
		// is already an underline ("Title\n===\n---") is not paragraph text.
		start := i
		for start > 0 && !lines[start-1].skip && isParagraphLine(lines[start-1].text) {
			start--
		}
		if start == i {
			continue
		}
		parts := make([]string, 0, i-start)
		for _, p := range lines[start:i] {
			parts = append(parts, strings.TrimSpace(p.text))
		}
		add(strings.Join(parts, " "), level, lines[start].num)
	}

	return headings
}

// parseATX recognizes "# Heading" lines: up to three spaces of indentation,
// one to six '#', then whitespace or end of line. An optional closing run of
// '#' preceded by whitespace is removed.
func parseATX(line string) (string, int, bool) {
	rest, ok := stripIndent(line, 3)
	if !ok {
		return "", 0, false
	}
	level := countRun(rest, '#')
	if level == 0 || level > 6 {
		return "", 0, false
	}
	rest = rest[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return "", 0, false
	}

	text := strings.TrimSpace(rest)
	// Closing sequence: a run of '#' that is the whole text or follows a space.
	trimmed := strings.TrimRight(text, "#")
	if trimmed == "" {
		text = ""
	} else if trimmed != text && (strings.HasSuffix(trimmed, " ") || strings.HasSuffix(trimmed, "\t")) {
		text = strings.TrimSpace(trimmed)
	}
	return text, level, true
}

// setextLevel reports whether line is a Setext underline: only '=' (level 1)
// or only '-' (level 2), at most three spaces of indentation, optional
// trailing whitespace.
func setextLevel(line string) (int, bool) {
	rest, ok := stripIndent(line, 3)
	if !ok {
		return 0, false
	}
	rest = strings.TrimRight(rest, " \t")
	if rest == "" {
		return 0, false
	}
	switch c := rest[0]; c {
	case '=', '-':
		if countRun(rest, c) != len(rest) {
			return 0, false
		}
		if c == '=' {
			return 1, true
		}
		return 2, true
	}
	return 0, false
}

// isParagraphLine reports whether line can be the text of a Setext heading:
// non-blank paragraph content that is not another block construct.
func isParagraphLine(line string) bool {
	if strings.TrimSpace(line) == "" || isIndented(line) {
		return false
	}
	if _, _, ok := parseATX(line); ok {
		return false
	}
	if _, ok := setextLevel(line); ok {
		return false
	}
	if isListItem(line) || isThematicBreak(line) {
		return false
	}
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, ">") || strings.HasPrefix(trimmed, "<") {
		return false
	}
	if _, ok := openFence(line, 3); ok {
		return false
	}
	if isTableDelimiter(trimmed) {
		return false
	}
	if _, _, _, ok := parseDefinition(line); ok {
		return false
	}
	return true
}

// isThematicBreak reports "***", "* * *", "___" and similar lines. Lines made
// only of '-' are handled by setextLevel before this is consulted.
func isThematicBreak(line string) bool {
	rest, ok := stripIndent(line, 3)
	if !ok || rest == "" {
		return false
	}
	c := rest[0]
	if c != '*' && c != '_' && c != '-' {
		return false
	}
	n := 0
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case c:
			n++
		case ' ', '\t':
		default:
			return false
		}
	}
	return n >= 3
}

// isTableDelimiter reports GFM table delimiter rows such as "| --- | :-: |".
func isTableDelimiter(trimmed string) bool {
	if !strings.Contains(trimmed, "-") || !strings.Contains(trimmed, "|") {
		return false
	}
	for i := 0; i < len(trimmed); i++ {
		switch trimmed[i] {
		case '|', '-', ':', ' ', '\t':
		default:
			return false
		}
	}
	return true
}
