package api

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// descriptionPolicy keeps user-facing markup but strips scripts and event
// handlers. Hackathon descriptions are organizer-supplied HTML.
var descriptionPolicy = bluemonday.UGCPolicy()

// SanitizeDescription strips unsafe markup from a stored description.
func SanitizeDescription(html string) string {
	return descriptionPolicy.Sanitize(html)
}

// HTMLToText converts HTML to plain text, collapsing whitespace.
func HTMLToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html // Fallback to original if parsing fails
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

// Summarize produces a short plain-text summary from an HTML description.
func Summarize(html string, maxLen int) string {
	return TruncateText(HTMLToText(html), maxLen)
}
