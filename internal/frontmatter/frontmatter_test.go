package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	block, err := Split(input)
	require.NoError(t, err)
	require.False(t, block.Present)
	require.Empty(t, block.Raw)
	require.Zero(t, block.Lines)
	require.Equal(t, input, block.Body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\nkey: value\n---\n# Title\n")

	block, err := Split(input)
	require.NoError(t, err)
	require.True(t, block.Present)
	require.Equal(t, []byte("key: value\n"), block.Raw)
	require.Equal(t, []byte("# Title\n"), block.Body)
	require.Equal(t, 3, block.Lines)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	input := []byte("---\nkey: value\n# Title\n")

	block, err := Split(input)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
	require.False(t, block.Present)
	require.Equal(t, input, block.Body)
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\r\nkey: value\r\n---\r\n# Title\r\n")

	block, err := Split(input)
	require.NoError(t, err)
	require.True(t, block.Present)
	require.Equal(t, []byte("key: value\r\n"), block.Raw)
	require.Equal(t, []byte("# Title\r\n"), block.Body)
	require.Equal(t, 3, block.Lines)
}

func TestSplit_EmptyFrontmatterBlock(t *testing.T) {
	input := []byte("---\n---\n# Title\n")

	block, err := Split(input)
	require.NoError(t, err)
	require.True(t, block.Present)
	require.Empty(t, block.Raw)
	require.Equal(t, []byte("# Title\n"), block.Body)
	require.Equal(t, 2, block.Lines)
}

func TestSplit_ClosingDelimiterAtEOF(t *testing.T) {
	block, err := Split([]byte("---\ntitle: x\n---"))
	require.NoError(t, err)
	require.True(t, block.Present)
	require.Equal(t, []byte("title: x\n"), block.Raw)
	require.Empty(t, block.Body)
	require.Equal(t, 3, block.Lines)
}

func TestBlock_Fields(t *testing.T) {
	block, err := Split([]byte("---\ntitle: Guide\nweight: 3\n---\nbody\n"))
	require.NoError(t, err)

	fields, err := block.Fields()
	require.NoError(t, err)
	require.Equal(t, "Guide", fields["title"])
	require.Equal(t, 3, fields["weight"])
}

func TestBlock_Fields_Invalid(t *testing.T) {
	block, err := Split([]byte("---\ntitle: [unterminated\n---\nbody\n"))
	require.NoError(t, err)

	_, err = block.Fields()
	require.Error(t, err)
}

func TestBlock_Fields_Absent(t *testing.T) {
	fields, err := Block{}.Fields()
	require.NoError(t, err)
	require.Empty(t, fields)
}
