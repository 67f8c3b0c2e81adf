package markdown

import (
	"sort"
	"strings"
)

// inlineBlock is the inline content of one paragraph-like block: its lines
// joined with '\n' so that links and code spans may wrap.
type inlineBlock struct {
	text   string
	starts []int // offset of each line within text
	nums   []int // document line number of each line
}

// position maps an offset in text to a 1-based line number and byte column.
func (b inlineBlock) position(off int) (int, int) {
	i := sort.Search(len(b.starts), func(k int) bool { return b.starts[k] > off }) - 1
	if i < 0 {
		i = 0
	}
	return b.nums[i], off - b.starts[i] + 1
}

// inlineBlocks groups scanned lines into blocks of inline content. Blank,
// skipped and excluded lines end a block. ATX headings, Setext underlines
// and thematic breaks stand alone; list items and the first line of a block
// quote start a new block, while unquoted lines after a quote continue it
// lazily. Block quote markers are blanked so that columns stay those of the
// source line.
func inlineBlocks(lines []sourceLine, exclude map[int]bool) []inlineBlock {
	var (
		blocks []inlineBlock
		cur    inlineBlock
		b      strings.Builder
		quoted bool
	)
	flush := func() {
		if len(cur.nums) > 0 {
			cur.text = b.String()
			blocks = append(blocks, cur)
		}
		cur = inlineBlock{}
		b.Reset()
		quoted = false
	}

	for _, l := range lines {
		if l.skip || exclude[l.num] {
			flush()
			continue
		}
		prefix := quotePrefix(l.text)
		content := l.text[prefix:]
		if strings.TrimSpace(content) == "" {
			flush()
			continue
		}

		_, _, atx := parseATX(content)
		_, underline := setextLevel(content)
		standalone := atx || underline || isThematicBreak(content)
		if standalone || isListItem(content) || (prefix > 0 && !quoted) {
			flush()
		}
		quoted = quoted || prefix > 0

		if len(cur.nums) > 0 {
			b.WriteByte('\n')
		}
		cur.starts = append(cur.starts, b.Len())
		cur.nums = append(cur.nums, l.num)
		b.WriteString(strings.Repeat(" ", prefix))
		b.WriteString(content)

		if standalone {
			flush()
		}
	}
	flush()
	return blocks
}

// quotePrefix returns the length of the block quote markers ("> ", "> > ")
// at the start of line, or 0.
func quotePrefix(line string) int {
	end := 0
	for {
		j := end
		for j < len(line) && j-end < 3 && line[j] == ' ' {
			j++
		}
		if j >= len(line) || line[j] != '>' {
			return end
		}
		end = j + 1
		if end < len(line) && line[end] == ' ' {
			end++
		}
	}
}
