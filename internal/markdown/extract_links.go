package markdown

import (
	"net/url"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

type refStyle int

const (
	refNone refStyle = iota
	refFull
	refCollapsed
	refShortcut
)

// pendingLink is a link-like construct found on one line, before reference
// labels are resolved against the document's definitions.
type pendingLink struct {
	kind  LinkKind
	col   int // 0-based byte offset into the line
	dest  string
	label string
	style refStyle
}

type definition struct {
	dest string
	line int
	col  int
	used bool
}

// ExtractLinks returns the link targets of src ordered by line and column.
//
// Inline links, autolinks and reference-style links (full, collapsed and
// shortcut) are recognized; definitions may appear before or after their use
// and the first definition of a label wins. Full and collapsed references to
// an undefined label are returned with Undefined set; shortcut references
// without a definition are plain text. Definitions no link uses are returned
// as LinkKindDefinition so their targets still get validated. Images are
// only returned when opts.IncludeImages is set.
func ExtractLinks(src []byte, opts Options) []LinkReference {
	lines := scanLines(src)

	defs := make(map[string]*definition)
	var defOrder []string
	isDef := make(map[int]bool)
	for i, l := range lines {
		if l.skip {
			continue
		}
		label, dest, col, ok := parseDefinition(l.text)
		if !ok && opensDefinition(l.text) && i+1 < len(lines) && !lines[i+1].skip && !lines[i+1].blank() {
			// The destination may sit on the following line.
			next := lines[i+1]
			if label, dest, col, ok = parseDefinition(l.text + " " + strings.TrimSpace(next.text)); ok {
				isDef[next.num] = true
			}
		}
		if !ok {
			continue
		}
		isDef[l.num] = true
		key := normalizeLabel(label)
		if _, exists := defs[key]; exists {
			continue
		}
		defs[key] = &definition{dest: dest, line: l.num, col: col}
		defOrder = append(defOrder, key)
	}

	var out []LinkReference
	for _, block := range inlineBlocks(lines, isDef) {
		for _, p := range scanInline(maskCodeSpans(block.text), 0) {
			line, col := block.position(p.col)
			ref, ok := resolvePending(p, defs, line, col)
			if !ok {
				continue
			}
			if ref.Kind == LinkKindImage && !opts.IncludeImages {
				continue
			}
			out = append(out, ref)
		}
	}

	for _, key := range defOrder {
		d := defs[key]
		if d.used {
			continue
		}
		ref := newLinkReference(d.dest, LinkKindDefinition, d.line, d.col+1)
		ref.Label = key
		out = append(out, ref)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Column < out[j].Column
	})
	return out
}

func resolvePending(p pendingLink, defs map[string]*definition, line, col int) (LinkReference, bool) {
	if p.style == refNone {
		return newLinkReference(p.dest, p.kind, line, col), true
	}

	kind := p.kind
	if kind == LinkKindInline {
		kind = LinkKindReference
	}

	key := normalizeLabel(p.label)
	d, ok := defs[key]
	if !ok || key == "" {
		if p.style == refShortcut || key == "" {
			return LinkReference{}, false
		}
		return LinkReference{
			Kind:      kind,
			Label:     p.label,
			Line:      line,
			Column:    col,
			Undefined: true,
		}, true
	}

	d.used = true
	ref := newLinkReference(d.dest, kind, line, col)
	ref.Label = p.label
	return ref, true
}

// scanInline finds links on a single (code-masked) line. offset is added to
// every reported column and lets label contents be scanned recursively.
func scanInline(s string, offset int) []pendingLink {
	var out []pendingLink
	for i := 0; i < len(s); {
		switch s[i] {
		case '\\':
			i += 2
		case '<':
			if dest, end, ok := parseAutolink(s, i); ok {
				out = append(out, pendingLink{kind: LinkKindAuto, col: offset + i, dest: dest})
				i = end
				continue
			}
			i++
		case '!':
			if i+1 < len(s) && s[i+1] == '[' {
				found, next := scanBracket(s, i+1, offset, true, &out)
				if found {
					i = next
					continue
				}
				i += 2
				continue
			}
			i++
		case '[':
			found, next := scanBracket(s, i, offset, false, &out)
			if found {
				i = next
				continue
			}
			i++
		default:
			i++
		}
	}
	return out
}

// scanBracket handles a '[' at open. It reports whether a link construct was
// consumed and the offset to resume scanning from.
func scanBracket(s string, open, offset int, image bool, out *[]pendingLink) (bool, int) {
	closeIdx := matchBracket(s, open)
	if closeIdx < 0 {
		return false, 0
	}
	label := s[open+1 : closeIdx]
	// Footnote references ([^1]) are not links.
	if strings.HasPrefix(label, "^") {
		return true, closeIdx + 1
	}

	kind := LinkKindInline
	col := open
	if image {
		kind = LinkKindImage
		col = open - 1
	}

	nested := func() {
		for _, p := range scanInline(label, offset+open+1) {
			if p.kind == LinkKindImage || p.kind == LinkKindAuto {
				*out = append(*out, p)
			}
		}
	}

	after := closeIdx + 1
	if after < len(s) && s[after] == '(' {
		if dest, end, ok := parseInlineDestination(s, after+1); ok {
			*out = append(*out, pendingLink{kind: kind, col: offset + col, dest: dest})
			nested()
			return true, end
		}
	}

	if after < len(s) && s[after] == '[' {
		if end := strings.IndexByte(s[after+1:], ']'); end >= 0 {
			id := s[after+1 : after+1+end]
			p := pendingLink{kind: kind, col: offset + col, label: id, style: refFull}
			if strings.TrimSpace(id) == "" {
				p.label, p.style = label, refCollapsed
			}
			*out = append(*out, p)
			nested()
			return true, after + 1 + end + 1
		}
	}

	*out = append(*out, pendingLink{kind: kind, col: offset + col, label: label, style: refShortcut})
	// Keep scanning inside the brackets: "[see [guide](g.md)]" holds a link.
	return true, open + 1
}

// matchBracket returns the index of the ']' closing the '[' at open, honoring
// nesting and backslash escapes, or -1.
func matchBracket(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parseInlineDestination parses `dest "title")` starting right after the
// opening parenthesis and returns the destination and the offset after ')'.
func parseInlineDestination(s string, start int) (string, int, bool) {
	j := skipSpace(s, start)

	var dest string
	if j < len(s) && s[j] == '<' {
		k := j + 1
		for k < len(s) && s[k] != '>' {
			if s[k] == '<' {
				return "", 0, false
			}
			if s[k] == '\\' {
				k++
			}
			k++
		}
		if k >= len(s) {
			return "", 0, false
		}
		dest = s[j+1 : k]
		j = k + 1
	} else {
		depth := 0
		k := j
	loop:
		for k < len(s) {
			switch s[k] {
			case '\\':
				k += 2
				continue
			case ' ', '\t', '\n':
				break loop
			case '(':
				depth++
			case ')':
				if depth == 0 {
					break loop
				}
				depth--
			}
			k++
		}
		if depth != 0 || k > len(s) {
			return "", 0, false
		}
		dest = s[j:k]
		j = k
	}

	afterDest := j
	j = skipSpace(s, j)
	if j < len(s) && (s[j] == '"' || s[j] == '\'' || s[j] == '(') {
		if j == afterDest && dest != "" {
			return "", 0, false
		}
		end := closingQuote(s, j)
		if end < 0 {
			return "", 0, false
		}
		j = skipSpace(s, end+1)
	}

	if j < len(s) && s[j] == ')' {
		return dest, j + 1, true
	}
	return "", 0, false
}

// closingQuote returns the index of the delimiter closing the title opened at
// open, or -1.
func closingQuote(s string, open int) int {
	closer := s[open]
	if closer == '(' {
		closer = ')'
	}
	for k := open + 1; k < len(s); k++ {
		switch s[k] {
		case '\\':
			k++
		case closer:
			return k
		}
	}
	return -1
}

// parseAutolink recognizes <scheme:rest> and <user@host> at s[i].
func parseAutolink(s string, i int) (string, int, bool) {
	end := strings.IndexByte(s[i+1:], '>')
	if end < 0 {
		return "", 0, false
	}
	inner := s[i+1 : i+1+end]
	if inner == "" || strings.ContainsAny(inner, " \t\n<") {
		return "", 0, false
	}
	if schemeLength(inner) > 0 {
		return inner, i + 1 + end + 1, true
	}
	if at := strings.IndexByte(inner, '@'); at > 0 && at < len(inner)-1 && !strings.Contains(inner, "/") {
		return "mailto:" + inner, i + 1 + end + 1, true
	}
	return "", 0, false
}

// parseDefinition recognizes `[label]: destination "optional title"` with at
// most three spaces of indentation. col is the 0-based offset of '['.
func parseDefinition(line string) (label, dest string, col int, ok bool) {
	rest, indentOK := stripIndent(line, 3)
	if !indentOK || !strings.HasPrefix(rest, "[") {
		return "", "", 0, false
	}
	col = len(line) - len(rest)

	closeIdx := -1
	for i := 1; i < len(rest); i++ {
		if rest[i] == '\\' {
			i++
			continue
		}
		if rest[i] == '[' {
			return "", "", 0, false
		}
		if rest[i] == ']' {
			closeIdx = i
			break
		}
	}
	if closeIdx < 0 || closeIdx+1 >= len(rest) || rest[closeIdx+1] != ':' {
		return "", "", 0, false
	}
	label = rest[1:closeIdx]
	if strings.TrimSpace(label) == "" || strings.HasPrefix(label, "^") {
		return "", "", 0, false
	}

	after := rest[closeIdx+2:]
	j := skipSpace(after, 0)
	if j >= len(after) {
		return "", "", 0, false
	}
	if after[j] == '<' {
		end := strings.IndexByte(after[j+1:], '>')
		if end < 0 {
			return "", "", 0, false
		}
		dest = after[j+1 : j+1+end]
		j = j + 1 + end + 1
	} else {
		k := j
		for k < len(after) && after[k] != ' ' && after[k] != '\t' {
			k++
		}
		dest = after[j:k]
		j = k
	}

	tail := strings.TrimSpace(after[j:])
	if tail != "" {
		if j < len(after) && after[j] != ' ' && after[j] != '\t' {
			return "", "", 0, false
		}
		// Titles may continue on following lines; only the opening quote is required here.
		if tail[0] != '"' && tail[0] != '\'' && tail[0] != '(' {
			return "", "", 0, false
		}
	}
	return label, dest, col, true
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	return i
}

// opensDefinition reports a "[label]:" line whose destination follows on
// the next line.
func opensDefinition(line string) bool {
	rest, ok := stripIndent(line, 3)
	return ok && strings.HasPrefix(rest, "[") && strings.HasSuffix(strings.TrimRight(rest, " \t"), "]:")
}

// normalizeLabel applies reference label matching rules: Unicode case
// folding and whitespace runs collapsed to one space.
func normalizeLabel(label string) string {
	// A Caser keeps state between calls and cannot be shared across goroutines.
	return cases.Fold().String(strings.Join(strings.Fields(label), " "))
}

// newLinkReference splits a raw destination into its path and fragment.
func newLinkReference(raw string, kind LinkKind, line, col int) LinkReference {
	raw = strings.TrimSpace(raw)
	ref := LinkReference{
		Raw:      raw,
		Kind:     kind,
		Line:     line,
		Column:   col,
		External: kind == LinkKindAuto || IsExternal(raw),
	}

	path := raw
	if idx := unescapedIndex(raw, '#'); idx >= 0 {
		path = raw[:idx]
		ref.Fragment = decode(raw[idx+1:])
		ref.HasFragment = true
	}
	if q := unescapedIndex(path, '?'); q >= 0 {
		path = path[:q]
	}
	ref.Path = decode(unescape(path))
	return ref
}

// IsExternal reports whether target starts with a URL scheme (https:,
// mailto:, ...) or is protocol-relative ("//host/path"). Single-letter
// schemes are treated as Windows drive letters, not URLs.
func IsExternal(target string) bool {
	return strings.HasPrefix(target, "//") || schemeLength(target) > 0
}

// schemeLength returns the length of a leading "scheme:" or 0.
func schemeLength(s string) int {
	for i := 0; i < len(s) && i <= 32; i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '.' || c == '-'):
		case c == ':' && i >= 2:
			return i + 1
		default:
			return 0
		}
	}
	return 0
}

func unescapedIndex(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == c {
			return i
		}
	}
	return -1
}

// unescape removes backslashes that escape ASCII punctuation.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isASCIIPunct(c byte) bool {
	return c >= '!' && c <= '/' || c >= ':' && c <= '@' || c >= '[' && c <= '`' || c >= '{' && c <= '~'
}

// decode percent-decodes s, keeping it unchanged when it is not valid
// percent-encoding.
func decode(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	if out, err := url.PathUnescape(s); err == nil {
		return out
	}
	return s
}
