package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractHTMLAnchors(t *testing.T) {
	src := []byte("" +
		"<a name=\"legacy\"></a>\n" +
		"# Title <span id=\"custom-id\"></span>\n" +
		"`<a id=\"in-code\">`\n" +
		"```html\n<div id=\"in-fence\"></div>\n```\n" +
		"<img name=\"not-an-anchor\" src=\"x.png\">\n" +
		"<a id=\"\"></a>\n")

	anchors := ExtractHTMLAnchors(src)
	require.Equal(t, []Anchor{
		{ID: "legacy", Line: 1},
		{ID: "custom-id", Line: 2},
	}, anchors)
}
