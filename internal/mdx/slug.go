package mdx

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	headingIDStrip      = regexp.MustCompile(`[^a-z0-9\s-]`)
	headingIDWhitespace = regexp.MustCompile(`\s+`)
	headingIDHyphens    = regexp.MustCompile(`-+`)
)

// GenerateHeadingID derives an anchor id from a heading title: lowercase,
// drop everything except ASCII letters, digits, whitespace and hyphens,
// collapse whitespace into single hyphens. The function is idempotent.
func GenerateHeadingID(title string) string {
	id := strings.ToLower(title)
	id = headingIDStrip.ReplaceAllString(id, "")
	id = headingIDWhitespace.ReplaceAllString(id, "-")
	id = headingIDHyphens.ReplaceAllString(id, "-")
	return strings.TrimSpace(id)
}

// HeadingIDs hands out heading ids for a single document. With Unique set,
// repeated ids get a numeric suffix (-1, -2, ...); otherwise equal titles
// share an id.
type HeadingIDs struct {
	Unique bool
	seen   map[string]int
}

// NewHeadingIDs returns a generator scoped to one document.
func NewHeadingIDs(unique bool) *HeadingIDs {
	return &HeadingIDs{Unique: unique, seen: map[string]int{}}
}

// Next returns the id for title.
func (g *HeadingIDs) Next(title string) string {
	id := GenerateHeadingID(title)
	if g == nil || !g.Unique {
		return id
	}
	if g.seen == nil {
		g.seen = map[string]int{}
	}
	count, taken := g.seen[id]
	if !taken {
		g.seen[id] = 0
		return id
	}
	for {
		count++
		candidate := id + "-" + strconv.Itoa(count)
		if _, clash := g.seen[candidate]; !clash {
			g.seen[id] = count
			g.seen[candidate] = 0
			return candidate
		}
	}
}
