package mdx

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/Hilal-Ahmad786/Blogweb/pkg/interfaces"
)

// FormatFrontmatter serialises fm into a compat-grammar block, delimiters
// included. Keys are written in sorted order. Raw is used when present so
// unknown keys survive; otherwise the typed fields are written.
//
// Strings that read back as booleans or numbers cannot be expressed in the
// compat grammar and come back converted.
func FormatFrontmatter(fm *interfaces.Frontmatter) string {
	if fm == nil {
		return ""
	}
	values := fm.Raw
	if values == nil {
		values = typedValues(fm)
	}

	var b strings.Builder
	b.WriteString("---\n")
	for _, key := range slices.Sorted(maps.Keys(values)) {
		writeEntry(&b, "", key, values[key])
	}
	b.WriteString("---\n")
	return b.String()
}

func writeEntry(b *strings.Builder, indent, key string, value any) {
	switch v := value.(type) {
	case []string:
		b.WriteString(indent + key + ":\n")
		for _, item := range v {
			b.WriteString(indent + "  - " + formatItem(item) + "\n")
		}
	case map[string]any:
		b.WriteString(indent + key + ":\n")
		for _, nestedKey := range slices.Sorted(maps.Keys(v)) {
			writeEntry(b, indent+"  ", nestedKey, v[nestedKey])
		}
	default:
		b.WriteString(indent + key + ": " + formatScalar(v) + "\n")
	}
}

func formatScalar(value any) string {
	switch v := value.(type) {
	case string:
		if needsQuotes(v) {
			return `"` + v + `"`
		}
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		s, _ := scalarString(v)
		return s
	}
}

func formatItem(item string) string {
	if item == "" || item != strings.TrimSpace(item) || hasQuoteEdge(item) {
		return `"` + item + `"`
	}
	return item
}

func needsQuotes(s string) bool {
	if s == "" || s != strings.TrimSpace(s) || hasQuoteEdge(s) {
		return true
	}
	return strings.HasPrefix(s, "[") || strings.HasPrefix(s, "#")
}

func hasQuoteEdge(s string) bool {
	return strings.HasPrefix(s, `"`) || strings.HasPrefix(s, "'") ||
		strings.HasSuffix(s, `"`) || strings.HasSuffix(s, "'")
}

func typedValues(fm *interfaces.Frontmatter) map[string]any {
	values := map[string]any{}
	for key, value := range fm.Extra {
		values[key] = value
	}
	putString(values, "title", fm.Title)
	putString(values, "excerpt", fm.Excerpt)
	putString(values, "publishedAt", fm.PublishedAt)
	putString(values, "updatedAt", fm.UpdatedAt)
	putString(values, "category", fm.Category)
	putString(values, "coverImage", fm.CoverImage)
	if len(fm.Tags) > 0 {
		values["tags"] = append([]string(nil), fm.Tags...)
	}
	if fm.Featured {
		values["featured"] = true
	}
	if fm.Draft {
		values["draft"] = true
	}
	if fm.Author.Name != "" || fm.Author.Avatar != "" {
		author := map[string]any{}
		putString(author, "name", fm.Author.Name)
		putString(author, "avatar", fm.Author.Avatar)
		values["author"] = author
	}
	if fm.SEO != nil {
		seo := map[string]any{}
		putString(seo, "title", fm.SEO.Title)
		putString(seo, "description", fm.SEO.Description)
		if len(fm.SEO.Keywords) > 0 {
			seo["keywords"] = append([]string(nil), fm.SEO.Keywords...)
		}
		if len(seo) > 0 {
			values["seo"] = seo
		}
	}
	return values
}

func putString(values map[string]any, key, value string) {
	if value != "" {
		values[key] = value
	}
}
