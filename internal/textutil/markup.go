package textutil

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// DefaultTitleLength is the rune limit applied to derived slide titles.
const DefaultTitleLength = 80

// StripTags removes HTML tags, unescapes entities and collapses whitespace.
func StripTags(text string) string {
	text = tagPattern.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// ShortenText cuts text to at most maxLen runes at a word boundary and appends
// an ellipsis when something was removed.
func ShortenText(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if maxLen <= 0 || utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:maxLen])
	if idx := strings.LastIndexAny(cut, " \t\n"); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,;:.-") + "…"
}

// CountWords counts whitespace separated words after tags are stripped.
func CountWords(text string) int {
	return len(strings.Fields(StripTags(text)))
}
