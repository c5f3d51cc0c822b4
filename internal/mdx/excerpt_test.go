package mdx

import (
	"strings"
	"testing"
)

func TestExtractExcerpt(t *testing.T) {
	cases := []struct {
		name      string
		content   string
		maxLength int
		separator string
		want      string
	}{
		{"separator wins", "A\n<!-- excerpt -->\nB", 0, "", "A"},
		{"custom separator", "Intro text\n<!--more-->\nRest", 0, "<!--more-->", "Intro text"},
		{"truncates by characters", "Hello world", 5, "", "Hello..."},
		{"short paragraph untouched", "Hello world", 50, "", "Hello world"},
		{"skips headings", "# Title\n\n## Sub\n\nFirst paragraph.\n\nSecond.", 0, "", "First paragraph."},
		{"strips frontmatter", "---\ntitle: x\n---\n\nBody text here.", 0, "", "Body text here."},
		{"strips inline markup", "Some **bold**, *italic*, `code` and [a link](https://x.dev).", 0, "", "Some bold, italic, code and a link."},
		{"nothing left", "# Only a heading\n\n   \n", 0, "", ""},
		{"runes not bytes", "héllo wörld", 4, "", "héll..."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractExcerpt(tc.content, tc.maxLength, tc.separator); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractExcerptDefaultLength(t *testing.T) {
	long := strings.Repeat("a", DefaultExcerptLength+20)
	got := ExtractExcerpt(long, 0, "")
	if !strings.HasSuffix(got, "...") || len([]rune(got)) != DefaultExcerptLength+3 {
		t.Fatalf("unexpected default truncation: %d runes", len([]rune(got)))
	}
}

func TestOptimizeImages(t *testing.T) {
	got := OptimizeImages("Look: ![A cat](/img/cat.png) and ![](/x.jpg)")
	want := `Look: <Image src="/img/cat.png" alt="A cat" width={800} height={400} className="rounded-lg" /> and ` +
		`<Image src="/x.jpg" alt="" width={800} height={400} className="rounded-lg" />`
	if got != want {
		t.Fatalf("OptimizeImages mismatch:\n got %s\nwant %s", got, want)
	}
}
