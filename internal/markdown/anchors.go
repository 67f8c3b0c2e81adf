package markdown

import (
	"strings"

	"golang.org/x/net/html"
)

// Anchor is a fragment target declared with raw HTML, e.g. <a id="setup"></a>.
type Anchor struct {
	ID   string
	Line int
}

// ExtractHTMLAnchors returns the id attributes of raw HTML elements and the
// name attributes of <a> elements, in document order. Code blocks, code spans
// and comments are ignored. Tags must open and close on one line.
func ExtractHTMLAnchors(src []byte) []Anchor {
	var anchors []Anchor
	for _, l := range scanLines(src) {
		if l.skip || !strings.Contains(l.text, "<") {
			continue
		}
		z := html.NewTokenizer(strings.NewReader(maskCodeSpans(l.text)))
		for {
			tt := z.Next()
			if tt == html.ErrorToken {
				break
			}
			if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
				continue
			}
			tok := z.Token()
			for _, attr := range tok.Attr {
				if attr.Val == "" {
					continue
				}
				if attr.Key == "id" || (attr.Key == "name" && tok.Data == "a") {
					anchors = append(anchors, Anchor{ID: attr.Val, Line: l.num})
				}
			}
		}
	}
	return anchors
}
