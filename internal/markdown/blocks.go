package markdown

import (
	"strings"

	"git.home.luguber.info/inful/mdlinks/internal/frontmatter"
)

// sourceLine is one line of a Markdown document.
type sourceLine struct {
	num  int    // 1-based line number in the full document
	text string // content without the line terminator
	// skip marks lines that carry no Markdown inline content: front matter,
	// fenced or indented code, and HTML comment blocks.
	skip bool
}

func (l sourceLine) blank() bool {
	return strings.TrimSpace(l.text) == ""
}

// scanLines splits src into lines and marks the ones that must not be scanned
// for headings or links.
func scanLines(src []byte) []sourceLine {
	raw := strings.Split(string(src), "\n")
	if len(raw) > 0 && raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}

	lines := make([]sourceLine, len(raw))
	for i, text := range raw {
		lines[i] = sourceLine{num: i + 1, text: strings.TrimSuffix(text, "\r")}
	}

	fmLines := 0
	if block, err := frontmatter.Split(src); err == nil && block.Present {
		fmLines = block.Lines
	}

	var (
		fence     fenceState
		inComment bool
		inList    bool
		prevBlank = true
		prevCode  bool
	)
	for i := range lines {
		l := &lines[i]
		if i < fmLines {
			l.skip = true
			continue
		}

		if fence.open {
			l.skip = true
			if fence.closes(l.text) {
				fence = fenceState{}
			}
			continue
		}

		if inComment {
			l.skip = true
			if strings.Contains(l.text, "-->") {
				inComment = false
			}
			continue
		}

		if l.blank() {
			prevBlank = true
			continue
		}

		maxIndent := 3
		if inList {
			maxIndent = len(l.text)
		}
		if f, ok := openFence(l.text, maxIndent); ok {
			fence = f
			l.skip = true
			prevBlank, prevCode = false, false
			continue
		}

		indented := isIndented(l.text)
		// An indented line starts code only after a blank line outside of a list,
		// or when it continues an indented code block.
		if indented && (prevCode || (prevBlank && !inList)) {
			l.skip = true
			prevBlank, prevCode = false, true
			continue
		}

		trimmed := strings.TrimSpace(l.text)
		if strings.HasPrefix(trimmed, "<!--") && !strings.Contains(trimmed[4:], "-->") {
			l.skip = true
			inComment = true
			prevBlank, prevCode = false, false
			continue
		}

		switch {
		case isListItem(l.text):
			inList = true
		case !indented && prevBlank:
			inList = false
		}
		prevBlank, prevCode = false, false
	}

	return lines
}

type fenceState struct {
	open   bool
	marker byte
	length int
}

// openFence reports whether line opens a fenced code block (``` or ~~~,
// indented by at most maxIndent spaces).
func openFence(line string, maxIndent int) (fenceState, bool) {
	rest, ok := stripIndent(line, maxIndent)
	if !ok || len(rest) < 3 {
		return fenceState{}, false
	}
	c := rest[0]
	if c != '`' && c != '~' {
		return fenceState{}, false
	}
	n := countRun(rest, c)
	if n < 3 {
		return fenceState{}, false
	}
	// Backtick fences cannot carry backticks in their info string.
	if c == '`' && strings.IndexByte(rest[n:], '`') >= 0 {
		return fenceState{}, false
	}
	return fenceState{open: true, marker: c, length: n}, true
}

// closes reports whether line closes the open fence. Indentation is not
// limited so that fences nested in list items close too.
func (f fenceState) closes(line string) bool {
	rest := strings.TrimLeft(line, " \t")
	n := countRun(rest, f.marker)
	return n >= f.length && strings.TrimSpace(rest[n:]) == ""
}

// stripIndent removes up to limit leading spaces. ok is false when the line is
// indented further than limit (or by a tab), which makes it indented code.
func stripIndent(line string, limit int) (string, bool) {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	if i > limit || (i < len(line) && line[i] == '\t') {
		return line, false
	}
	return line[i:], true
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t")
}

func countRun(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

// isListItem reports whether line starts with a bullet (-, +, *) or ordered
// (1. / 1)) list marker followed by whitespace or end of line.
func isListItem(line string) bool {
	rest := strings.TrimLeft(line, " \t")
	if rest == "" {
		return false
	}
	switch rest[0] {
	case '-', '+', '*':
		return len(rest) == 1 || rest[1] == ' ' || rest[1] == '\t'
	}
	digits := 0
	for digits < len(rest) && digits < 9 && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits == 0 || digits >= len(rest) {
		return false
	}
	if rest[digits] != '.' && rest[digits] != ')' {
		return false
	}
	return digits+1 == len(rest) || rest[digits+1] == ' ' || rest[digits+1] == '\t'
}

// maskCodeSpans replaces inline code spans (delimiters included) with spaces
// so that offsets into the line stay valid while their content is ignored.
// HTML comments that open and close on the line are masked the same way.
func maskCodeSpans(s string) string {
	if !strings.ContainsAny(s, "`<") {
		return s
	}

	b := []byte(s)
	for i := 0; i < len(b); {
		switch {
		case b[i] == '\\':
			i += 2
		case b[i] == '`':
			run := countRun(string(b[i:]), '`')
			end := closingBackticks(b, i+run, run)
			if end < 0 {
				// Unclosed code span; the backticks are literal.
				i += run
				continue
			}
			blankOut(b, i, end)
			i = end
		case strings.HasPrefix(string(b[i:]), "<!--"):
			closeRel := strings.Index(string(b[i+4:]), "-->")
			if closeRel < 0 {
				i++
				continue
			}
			end := i + 4 + closeRel + 3
			blankOut(b, i, end)
			i = end
		default:
			i++
		}
	}
	return string(b)
}

// closingBackticks returns the offset just past the first backtick run of
// exactly length run at or after from, or -1.
func closingBackticks(b []byte, from, run int) int {
	for j := from; j < len(b); {
		if b[j] != '`' {
			j++
			continue
		}
		k := countRun(string(b[j:]), '`')
		if k == run {
			return j + k
		}
		j += k
	}
	return -1
}

func blankOut(b []byte, start, end int) {
	for j := start; j < end; j++ {
		b[j] = ' '
	}
}
