package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// front matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml front matter start delimiter found but closing delimiter is missing")

// Block is the YAML front matter found at the top of a Markdown document.
type Block struct {
	// Present is false when the document has no front matter; Raw is then nil,
	// Lines is 0 and Body is the whole document.
	Present bool
	// Raw is the YAML between the delimiters.
	Raw []byte
	// Body is everything after the closing delimiter.
	Body []byte
	// Lines is the number of lines occupied by the block, delimiters included.
	Lines int
}

// Split separates YAML front matter (`---` delimited) from the Markdown body.
//
// Both LF and CRLF line endings are recognized. A document that opens a block
// without closing it returns ErrMissingClosingDelimiter together with a Block
// whose Body is the full input, so callers can keep scanning it as Markdown.
func Split(content []byte) (Block, error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return Block{Body: content}, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return Block{Present: true, Raw: []byte{}, Body: content[start+len(open):], Lines: 2}, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// Closing delimiter on the final line without a trailing newline.
		tail := []byte(nl + "---")
		if bytes.HasSuffix(content, tail) && len(content)-len(tail) >= start {
			raw := content[start : len(content)-len(tail)+len(nl)]
			return Block{Present: true, Raw: raw, Body: []byte{}, Lines: bytes.Count(content, []byte(nl)) + 1}, nil
		}
		return Block{Body: content}, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	bodyStart := start + idx + len(closeSeq)
	return Block{
		Present: true,
		Raw:     content[start:end],
		Body:    content[bodyStart:],
		Lines:   bytes.Count(content[:bodyStart], []byte(nl)),
	}, nil
}

// Fields parses the raw YAML of the block into a map. An absent or empty block
// yields an empty map.
func (b Block) Fields() (map[string]any, error) {
	if len(bytes.TrimSpace(b.Raw)) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(b.Raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
