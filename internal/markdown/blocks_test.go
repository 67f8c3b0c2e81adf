package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipped(lines []sourceLine) []int {
	var out []int
	for _, l := range lines {
		if l.skip {
			out = append(out, l.num)
		}
	}
	return out
}

func TestScanLines_FencesAndIndentedCode(t *testing.T) {
	src := []byte("text\n" + // 1
		"```go\n" + // 2
		"code\n" + // 3
		"````\n" + // 4 closes (longer run is allowed)
		"\n" + // 5
		"    indented\n" + // 6
		"\n" + // 7
		"    still code\n" + // 8
		"para\n" + // 9
		"    lazy continuation\n") // 10

	lines := scanLines(src)
	require.Len(t, lines, 10)
	require.Equal(t, []int{2, 3, 4, 6, 8}, skipped(lines))
}

func TestScanLines_FenceRequiresMatchingMarker(t *testing.T) {
	src := []byte("~~~\n```\n~~\n~~~\nafter\n")
	require.Equal(t, []int{1, 2, 3, 4}, skipped(scanLines(src)))
}

func TestScanLines_UnclosedFenceRunsToEnd(t *testing.T) {
	src := []byte("```\n[a](a.md)\n# Heading\n")
	require.Equal(t, []int{1, 2, 3}, skipped(scanLines(src)))
}

func TestScanLines_FencedBlockInList(t *testing.T) {
	src := []byte("- item\n\n      ```\n      # not a heading\n      ```\n")
	require.Equal(t, []int{3, 4, 5}, skipped(scanLines(src)))
}

func TestScanLines_FrontMatter(t *testing.T) {
	src := []byte("---\ntitle: x\n---\nbody\n")
	require.Equal(t, []int{1, 2, 3}, skipped(scanLines(src)))
}

func TestMaskCodeSpans(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "no code", want: "no code"},
		{in: "a `b` c", want: "a     c"},
		{in: "a ``b ` c`` d", want: "a           d"},
		{in: "unclosed ` tick", want: "unclosed ` tick"},
		{in: "escaped \\`x` tick", want: "escaped \\`x` tick"},
		{in: "x <!-- c --> y", want: "x            y"},
		{in: "a `b\nc` d", want: "a       d"},
	}
	for _, tt := range tests {
		got := maskCodeSpans(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Len(t, got, len(tt.in))
	}
}

func TestIsListItem(t *testing.T) {
	for _, s := range []string{"- a", "* a", "+ a", "1. a", "10) a", "-", "  - nested"} {
		assert.True(t, isListItem(s), s)
	}
	for _, s := range []string{"-a", "1.a", "a. b", "---x", ""} {
		assert.False(t, isListItem(s), s)
	}
}

func TestInlineBlocks(t *testing.T) {
	src := []byte("# Title\nfirst\nsecond\n\n- item\n  more\n> quote\n> next\n")

	blocks := inlineBlocks(scanLines(src), nil)
	texts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		texts = append(texts, b.text)
	}
	assert.Equal(t, []string{"# Title", "first\nsecond", "- item\n  more", "  quote\n  next"}, texts)

	line, col := blocks[1].position(len("first\nsec"))
	assert.Equal(t, 3, line)
	assert.Equal(t, 4, col)
}

func TestQuotePrefix(t *testing.T) {
	assert.Equal(t, 0, quotePrefix("plain"))
	assert.Equal(t, 2, quotePrefix("> text"))
	assert.Equal(t, 1, quotePrefix(">text"))
	assert.Equal(t, 4, quotePrefix("> > text"))
	assert.Equal(t, 0, quotePrefix("    > code"))
}
