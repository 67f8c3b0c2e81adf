// Package slug turns heading text into the anchor identifiers that Markdown
// renderers emit, and disambiguates repeated headings within one document.
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify converts heading text into an anchor slug.
//
// The text is decomposed (NFKD) and stripped of combining marks so that
// accented Latin letters keep their base letter, then lowercased. Whitespace
// and hyphens act as separators; any other rune outside [a-z0-9] is dropped.
// Separator runs collapse to a single hyphen and edge hyphens are trimmed.
//
// The output alphabet is [a-z0-9-], so Slugify is idempotent.
func Slugify(text string) string {
	folded := fold(text)

	var b strings.Builder
	b.Grow(len(folded))

	pendingSep := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingSep = true
		}
	}

	return b.String()
}

// fold applies compatibility decomposition, drops nonspacing marks and lowercases.
func fold(text string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, text)
	if err != nil {
		// Transformation only fails on invalid state; fall back to the raw text.
		out = text
	}
	return strings.ToLower(out)
}

// Counter assigns unique slugs within a single document.
//
// The first heading producing a base slug keeps it as-is; the n-th repeat is
// suffixed with "-n". Suffixed slugs are registered too, so a later literal
// heading that collides with one moves on to the next free suffix.
// The zero value is not usable; call NewCounter.
type Counter struct {
	used   map[string]struct{}
	repeat map[string]int
}

// NewCounter returns an empty Counter.
func NewCounter() *Counter {
	return &Counter{
		used:   make(map[string]struct{}),
		repeat: make(map[string]int),
	}
}

// Next registers base and returns the unique slug to use for it, together
// with its occurrence index (0 for the first occurrence).
func (c *Counter) Next(base string) (string, int) {
	if _, taken := c.used[base]; !taken {
		c.used[base] = struct{}{}
		return base, 0
	}

	n := c.repeat[base]
	for {
		n++
		candidate := base + "-" + strconv.Itoa(n)
		if _, taken := c.used[candidate]; taken {
			continue
		}
		c.repeat[base] = n
		c.used[candidate] = struct{}{}
		return candidate, n
	}
}

// Has reports whether slug has already been assigned.
func (c *Counter) Has(slug string) bool {
	_, ok := c.used[slug]
	return ok
}
