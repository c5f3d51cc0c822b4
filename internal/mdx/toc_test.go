package mdx

import (
	"reflect"
	"testing"

	"github.com/Hilal-Ahmad786/Blogweb/pkg/interfaces"
)

func headingsAt(levels ...int) []interfaces.Heading {
	out := make([]interfaces.Heading, len(levels))
	for i, level := range levels {
		out[i] = interfaces.Heading{ID: string(rune('a' + i)), Title: string(rune('A' + i)), Level: level}
	}
	return out
}

func TestGenerateTableOfContents(t *testing.T) {
	roots := GenerateTableOfContents(headingsAt(1, 2, 2, 1), 0)
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if len(roots[0].Children) != 2 || len(roots[1].Children) != 0 {
		t.Fatalf("unexpected nesting: %d and %d children", len(roots[0].Children), len(roots[1].Children))
	}
	if roots[1].Children == nil {
		t.Fatalf("leaf children should be an empty slice")
	}
}

func TestGenerateTableOfContentsFiltersDeepHeadings(t *testing.T) {
	roots := GenerateTableOfContents(headingsAt(1, 2, 3, 4, 2), 0)
	flat := FlattenTableOfContents(roots)
	if len(flat) != 4 {
		t.Fatalf("expected level 4 to be dropped, got %#v", flat)
	}
	for _, heading := range flat {
		if heading.Level > DefaultTOCMaxLevel {
			t.Fatalf("heading deeper than max level kept: %#v", heading)
		}
	}

	shallow := GenerateTableOfContents(headingsAt(1, 2, 3), 1)
	if len(shallow) != 1 || len(shallow[0].Children) != 0 {
		t.Fatalf("expected a single root with max level 1, got %#v", shallow)
	}
}

func TestGenerateTableOfContentsSkippedLevels(t *testing.T) {
	roots := GenerateTableOfContents(headingsAt(3, 1, 3, 2), 0)
	if len(roots) != 2 {
		t.Fatalf("expected leading h3 and the h1 as roots, got %d", len(roots))
	}
	if got := len(roots[1].Children); got != 2 {
		t.Fatalf("expected h3 and h2 under h1, got %d", got)
	}
}

func TestFlattenTableOfContentsPreservesOrder(t *testing.T) {
	headings := headingsAt(1, 2, 3, 2, 1, 2)
	flat := FlattenTableOfContents(GenerateTableOfContents(headings, 3))
	if !reflect.DeepEqual(flat, headings) {
		t.Fatalf("flatten should restore document order:\n got %#v\nwant %#v", flat, headings)
	}
}

func TestGenerateTableOfContentsEmpty(t *testing.T) {
	roots := GenerateTableOfContents(nil, 3)
	if roots == nil || len(roots) != 0 {
		t.Fatalf("expected empty non-nil forest, got %#v", roots)
	}
}
