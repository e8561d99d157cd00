package ingest

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var descriptionPolicy = bluemonday.UGCPolicy()

// SanitizeDescription strips unsafe markup from a record description.
// Plain-text descriptions (the common case) pass through untouched so their
// characters are not entity-escaped.
func SanitizeDescription(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	return descriptionPolicy.Sanitize(s)
}

// PlainText flattens markup to whitespace-normalized text, for table output
// and previews.
func PlainText(html string) string {
	if !strings.Contains(html, "<") {
		return strings.Join(strings.Fields(html), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// TruncateText cuts a string to max length, appending ellipsis if truncated.
func TruncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	if maxLen > 3 {
		return text[:maxLen-3] + "..."
	}
	return text[:maxLen]
}
