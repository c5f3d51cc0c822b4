package mdx

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/Hilal-Ahmad786/Blogweb/pkg/interfaces"
)

// FrontmatterMode selects the grammar used for the metadata block.
type FrontmatterMode string

const (
	// FrontmatterCompat is the permissive key/value/list mini-language.
	FrontmatterCompat FrontmatterMode = "compat"
	// FrontmatterStrict delegates to a conformant YAML (or TOML/JSON) parser.
	FrontmatterStrict FrontmatterMode = "strict"
)

var (
	errFrontmatterMalformed = errors.New("mdx: malformed frontmatter")
	errFrontmatterMissing   = errors.New("mdx: frontmatter not found")
)

var frontmatterBlock = regexp.MustCompile(`(?s)^---[ \t]*\r?\n(.*?)\r?\n---[ \t]*(?:\r?\n(.*))?$`)

// ParseFrontmatter splits raw into its metadata block and body using the
// compat grammar. When no block is present, or the block cannot be parsed,
// it returns nil and raw unchanged.
func ParseFrontmatter(raw string) (*interfaces.Frontmatter, string) {
	return FrontmatterCompat.Parse(raw)
}

// ParseFrontmatterStrict is ParseFrontmatter backed by a YAML parser.
func ParseFrontmatterStrict(raw string) (*interfaces.Frontmatter, string) {
	return FrontmatterStrict.Parse(raw)
}

// Parse splits raw according to the mode. Failures degrade to nil metadata
// and the original text.
func (m FrontmatterMode) Parse(raw string) (*interfaces.Frontmatter, string) {
	fm, body, err := m.parse(raw)
	if err != nil {
		return nil, raw
	}
	return fm, body
}

func (m FrontmatterMode) parse(raw string) (*interfaces.Frontmatter, string, error) {
	if m == FrontmatterStrict {
		return parseStrict(raw)
	}
	return parseCompat(raw)
}

// Valid reports whether m names a known grammar. The zero value is valid and
// behaves like FrontmatterCompat.
func (m FrontmatterMode) Valid() bool {
	switch m {
	case "", FrontmatterCompat, FrontmatterStrict:
		return true
	default:
		return false
	}
}

func parseCompat(raw string) (*interfaces.Frontmatter, string, error) {
	match := frontmatterBlock.FindStringSubmatch(raw)
	if match == nil {
		return nil, raw, errFrontmatterMissing
	}

	values, err := parseBlock(match[1])
	if err != nil {
		return nil, raw, err
	}
	return toFrontmatter(values), match[2], nil
}

func parseStrict(raw string) (*interfaces.Frontmatter, string, error) {
	var meta map[string]any
	body, err := frontmatter.MustParse(strings.NewReader(raw), &meta)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return nil, raw, errFrontmatterMissing
		}
		return nil, raw, fmt.Errorf("%w: %v", errFrontmatterMalformed, err)
	}

	values := make(map[string]any, len(meta))
	for key, value := range meta {
		values[key] = normalizeYAML(value)
	}
	return toFrontmatter(values), string(body), nil
}

// blockParser walks the metadata block one line at a time. An empty-valued
// key opens a list; indented key/value lines below it turn it into a map
// instead (one level deep, as used by author and seo).
type blockParser struct {
	values map[string]any

	key      string
	listOpen bool

	nested        map[string]any
	nestedKey     string
	nestedListing bool
}

func parseBlock(block string) (map[string]any, error) {
	p := &blockParser{values: map[string]any{}}
	for _, line := range strings.Split(block, "\n") {
		if err := p.line(strings.TrimRight(line, "\r")); err != nil {
			return nil, err
		}
	}
	return p.values, nil
}

func (p *blockParser) line(line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	if strings.HasPrefix(trimmed, "- ") {
		p.item(unquote(strings.TrimSpace(trimmed[2:])))
		return nil
	}

	idx := strings.Index(trimmed, ":")
	if idx < 0 {
		return nil
	}
	key := strings.TrimSpace(trimmed[:idx])
	value := strings.TrimSpace(trimmed[idx+1:])
	if key == "" {
		return fmt.Errorf("%w: empty key in %q", errFrontmatterMalformed, trimmed)
	}

	if isIndented(line) && p.acceptsNested() {
		p.nestedValue(key, value)
		return nil
	}

	p.key = key
	p.listOpen = false
	p.nested = nil
	p.nestedKey = ""
	p.nestedListing = false

	if value == "" {
		p.values[key] = []string{}
		p.listOpen = true
		return nil
	}
	p.values[key] = parseValue(value)
	return nil
}

func (p *blockParser) item(value string) {
	if p.nestedListing {
		list, _ := p.nested[p.nestedKey].([]string)
		p.nested[p.nestedKey] = append(list, value)
		return
	}
	if p.listOpen && p.key != "" {
		list, _ := p.values[p.key].([]string)
		p.values[p.key] = append(list, value)
	}
}

func (p *blockParser) acceptsNested() bool {
	if p.nested != nil {
		return true
	}
	if !p.listOpen {
		return false
	}
	list, _ := p.values[p.key].([]string)
	return len(list) == 0
}

func (p *blockParser) nestedValue(key, value string) {
	if p.nested == nil {
		p.nested = map[string]any{}
		p.values[p.key] = p.nested
		p.listOpen = false
	}
	if value == "" {
		p.nested[key] = []string{}
		p.nestedKey = key
		p.nestedListing = true
		return
	}
	p.nestedKey = ""
	p.nestedListing = false
	p.nested[key] = parseValue(value)
}

func isIndented(line string) bool {
	return line != "" && (line[0] == ' ' || line[0] == '\t')
}

func parseValue(value string) any {
	if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
		return parseInlineList(value[1 : len(value)-1])
	}
	return parseScalar(value)
}

func parseInlineList(inner string) []string {
	if strings.TrimSpace(inner) == "" {
		return []string{}
	}
	parts := strings.Split(inner, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		items = append(items, unquote(strings.TrimSpace(part)))
	}
	return items
}

// parseScalar converts a scalar token: quotes are stripped first, then
// booleans and numbers are recognised. Date-like strings stay strings.
func parseScalar(value string) any {
	unquoted := unquote(value)
	switch unquoted {
	case "true":
		return true
	case "false":
		return false
	}
	if n, ok := parseNumber(unquoted); ok {
		return n
	}
	return unquoted
}

func parseNumber(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

// normalizeYAML maps decoder output onto the value shapes the compat
// grammar produces: strings, bools, float64, []string and map[string]any.
func normalizeYAML(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normalizeYAML(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalizeYAML(item)
		}
		return out
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := scalarString(normalizeYAML(item))
			if !ok {
				return v
			}
			items = append(items, s)
		}
		return items
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return float64(v)
	case time.Time:
		return formatTime(v)
	default:
		return v
	}
}

func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}

var knownKeys = map[string]struct{}{
	"title": {}, "excerpt": {}, "publishedAt": {}, "updatedAt": {}, "tags": {},
	"category": {}, "coverImage": {}, "featured": {}, "draft": {}, "author": {}, "seo": {},
}

func toFrontmatter(values map[string]any) *interfaces.Frontmatter {
	fm := &interfaces.Frontmatter{
		Title:       stringValue(values["title"]),
		Excerpt:     stringValue(values["excerpt"]),
		PublishedAt: stringValue(values["publishedAt"]),
		UpdatedAt:   stringValue(values["updatedAt"]),
		Tags:        stringList(values["tags"]),
		Category:    stringValue(values["category"]),
		CoverImage:  stringValue(values["coverImage"]),
		Featured:    boolValue(values["featured"]),
		Draft:       boolValue(values["draft"]),
		Author:      toAuthor(values["author"]),
		SEO:         toSEO(values["seo"]),
		Extra:       map[string]any{},
		Raw:         values,
	}
	for key, value := range values {
		if _, known := knownKeys[key]; !known {
			fm.Extra[key] = value
		}
	}
	return fm
}

func toAuthor(value any) interfaces.Author {
	switch v := value.(type) {
	case map[string]any:
		return interfaces.Author{
			Name:   stringValue(v["name"]),
			Avatar: stringValue(v["avatar"]),
		}
	default:
		name, _ := scalarString(v)
		return interfaces.Author{Name: name}
	}
}

func toSEO(value any) *interfaces.SEO {
	v, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	return &interfaces.SEO{
		Title:       stringValue(v["title"]),
		Description: stringValue(v["description"]),
		Keywords:    stringList(v["keywords"]),
	}
}

func stringValue(value any) string {
	s, _ := scalarString(value)
	return s
}

func scalarString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case time.Time:
		return formatTime(v), true
	default:
		return "", false
	}
}

// stringList accepts a list or a single scalar; a lone scalar becomes a one
// item list.
func stringList(value any) []string {
	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := scalarString(item); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		if s, ok := scalarString(v); ok && s != "" {
			return []string{s}
		}
		return nil
	}
}

func boolValue(value any) bool {
	b, _ := value.(bool)
	return b
}
