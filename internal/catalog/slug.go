package catalog

import (
	"fmt"
	"strings"
	"unicode"
)

const maxSlugLen = 75

// Characters removed from titles when building slugs.
const slugStripSet = "&/\\#,+()$~%.'\":*?<>{}"

// Slugify derives a URL-safe identifier from a title: lowercase, whitespace
// runs become a single hyphen, the punctuation set above is removed, and the
// result is capped at 75 runes. Titles that are empty, whitespace-only, or
// reduce to nothing yield the fallback.
func Slugify(title, fallback string) string {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return fallback
	}

	var b strings.Builder
	for _, r := range t {
		switch {
		case unicode.IsSpace(r):
			b.WriteRune('-')
		case strings.ContainsRune(slugStripSet, r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}

	s := b.String()
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	if runes := []rune(s); len(runes) > maxSlugLen {
		s = string(runes[:maxSlugLen])
	}
	if s == "" || s == "-" {
		return fallback
	}
	return s
}

// slugCounter disambiguates repeated base slugs. The first occurrence keeps
// the base unmodified; later ones get a 1-based occurrence suffix starting
// at -2.
type slugCounter map[string]int

func (c slugCounter) next(base string) string {
	c[base]++
	if n := c[base]; n > 1 {
		return fmt.Sprintf("%s-%d", base, n)
	}
	return base
}
