package mdx

import (
	"regexp"
	"strings"
)

const (
	// DefaultExcerptLength is the rune budget of an automatic excerpt.
	DefaultExcerptLength = 200
	// DefaultExcerptSeparator marks the end of a hand-written excerpt.
	DefaultExcerptSeparator = "<!-- excerpt -->"
)

var (
	excerptFrontmatter = regexp.MustCompile(`^---(?s:.*?)---`)
	paragraphBreak     = regexp.MustCompile(`\r?\n\r?\n`)
)

// Inline markup is stripped in this order; later patterns expect the earlier
// ones to have run.
var excerptMarkup = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`\*\*(.*?)\*\*`), "$1"},
	{regexp.MustCompile(`\*(.*?)\*`), "$1"},
	{regexp.MustCompile("`(.*?)`"), "$1"},
	{regexp.MustCompile(`\[(.*?)\]\(.*?\)`), "$1"},
	{regexp.MustCompile(`^#{1,6}\s`), ""},
}

// ExtractExcerpt returns a short preview of content. Text before the first
// separator wins when the separator is present. Otherwise the first
// paragraph that is not a heading is stripped of inline markup and cut to
// maxLength runes, with "..." appended when it was cut. Zero values select
// DefaultExcerptLength and DefaultExcerptSeparator.
func ExtractExcerpt(content string, maxLength int, separator string) string {
	if maxLength <= 0 {
		maxLength = DefaultExcerptLength
	}
	if separator == "" {
		separator = DefaultExcerptSeparator
	}

	if before, _, found := strings.Cut(content, separator); found {
		return strings.TrimSpace(before)
	}

	paragraph, ok := firstParagraph(excerptFrontmatter.ReplaceAllString(content, ""))
	if !ok {
		return ""
	}

	for _, rule := range excerptMarkup {
		paragraph = rule.pattern.ReplaceAllString(paragraph, rule.replacement)
	}
	return truncate(paragraph, maxLength)
}

func firstParagraph(body string) (string, bool) {
	for _, paragraph := range paragraphBreak.Split(body, -1) {
		trimmed := strings.TrimSpace(paragraph)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return trimmed, true
	}
	return "", false
}

// truncate cuts on rune boundaries with no regard for words.
func truncate(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	return strings.TrimSpace(string(runes[:maxLength])) + "..."
}
