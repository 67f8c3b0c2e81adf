package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"
)

var inlineParser = goldmark.New().Parser()

// inlineText reduces heading content to the text a renderer would display:
// emphasis and code markers are removed, links keep their visible text,
// images contribute their alt text and raw HTML is dropped.
func inlineText(raw string) string {
	if !strings.ContainsAny(raw, "*_`[]<>!\\&") {
		return raw
	}

	// Parsing the content as an ATX heading keeps block markers such as
	// "1." or "-" from being read as list items.
	src := []byte("# " + raw)
	root := inlineParser.Parse(text.NewReader(src))

	var b strings.Builder
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Text:
			b.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(node.Value)
		case *gmast.AutoLink:
			b.Write(node.Label(src))
			return gmast.WalkSkipChildren, nil
		case *gmast.RawHTML:
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})

	plain := string(util.UnescapePunctuations([]byte(b.String())))
	return strings.TrimSpace(html.UnescapeString(plain))
}
