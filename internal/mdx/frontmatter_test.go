package mdx

import (
	"os"
	"reflect"
	"strings"
	"testing"
)

func readFixture(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	return string(data)
}

func TestParseFrontmatter(t *testing.T) {
	raw := readFixture(t, "testdata/posts/hello-world.mdx")

	fm, body := ParseFrontmatter(raw)
	if fm == nil {
		t.Fatalf("expected frontmatter, got nil")
	}
	if fm.Title != "Hello World" {
		t.Fatalf("title mismatch, got %q", fm.Title)
	}
	if fm.PublishedAt != "2024-01-15" {
		t.Fatalf("publishedAt should stay a string, got %q", fm.PublishedAt)
	}
	if !reflect.DeepEqual(fm.Tags, []string{"go", "mdx"}) {
		t.Fatalf("tags mismatch: %#v", fm.Tags)
	}
	if !fm.Featured {
		t.Fatalf("expected featured to be true")
	}
	if fm.Author.Name != "Jane Doe" || fm.Author.Avatar != "/avatars/jane.png" {
		t.Fatalf("author mismatch: %#v", fm.Author)
	}
	if fm.Category != "Engineering" {
		t.Fatalf("category mismatch, got %q", fm.Category)
	}
	if strings.Contains(body, "title:") || !strings.Contains(body, "# Hello World") {
		t.Fatalf("body not split correctly: %q", body)
	}
}

func TestParseFrontmatterScalars(t *testing.T) {
	raw := "---\n" +
		"title: 'Quoted'\n" +
		"# a comment\n" +
		"draft: false\n" +
		"featured: True\n" +
		"readingTime: 5\n" +
		"ratio: 1.5\n" +
		"tags: [go, \"web dev\", mdx]\n" +
		"empty: []\n" +
		"---\n" +
		"body"

	fm, body := ParseFrontmatter(raw)
	if fm == nil {
		t.Fatalf("expected frontmatter")
	}
	if body != "body" {
		t.Fatalf("body mismatch: %q", body)
	}
	if fm.Title != "Quoted" {
		t.Fatalf("quotes not stripped: %q", fm.Title)
	}
	if fm.Raw["draft"] != false {
		t.Fatalf("draft should be boolean false: %#v", fm.Raw["draft"])
	}
	if fm.Raw["featured"] != "True" {
		t.Fatalf("booleans are case sensitive: %#v", fm.Raw["featured"])
	}
	if fm.Extra["readingTime"] != float64(5) || fm.Extra["ratio"] != 1.5 {
		t.Fatalf("numbers not converted: %#v", fm.Extra)
	}
	if !reflect.DeepEqual(fm.Tags, []string{"go", "web dev", "mdx"}) {
		t.Fatalf("inline list mismatch: %#v", fm.Tags)
	}
	if list, ok := fm.Extra["empty"].([]string); !ok || len(list) != 0 {
		t.Fatalf("expected empty list, got %#v", fm.Extra["empty"])
	}
}

func TestParseFrontmatterMissingOrMalformed(t *testing.T) {
	cases := map[string]string{
		"no block":      "# Title\n\nBody",
		"unterminated":  "---\ntitle: x\n\nBody",
		"empty key":     "---\n: broken\n---\nBody",
		"indented open": " ---\ntitle: x\n---\nBody",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			fm, body := ParseFrontmatter(raw)
			if fm != nil {
				t.Fatalf("expected nil frontmatter, got %#v", fm)
			}
			if body != raw {
				t.Fatalf("expected input returned unchanged, got %q", body)
			}
		})
	}
}

func TestParseFrontmatterNestedMaps(t *testing.T) {
	raw := "---\n" +
		"title: Nested\n" +
		"seo:\n" +
		"  title: Search Title\n" +
		"  description: \"About things\"\n" +
		"  keywords:\n" +
		"    - go\n" +
		"    - mdx\n" +
		"tags:\n" +
		"  - one\n" +
		"---\n"

	fm, _ := ParseFrontmatter(raw)
	if fm == nil || fm.SEO == nil {
		t.Fatalf("expected seo block, got %#v", fm)
	}
	if fm.SEO.Title != "Search Title" || fm.SEO.Description != "About things" {
		t.Fatalf("seo scalars mismatch: %#v", fm.SEO)
	}
	if !reflect.DeepEqual(fm.SEO.Keywords, []string{"go", "mdx"}) {
		t.Fatalf("seo keywords mismatch: %#v", fm.SEO.Keywords)
	}
	if !reflect.DeepEqual(fm.Tags, []string{"one"}) {
		t.Fatalf("list after nested map mismatch: %#v", fm.Tags)
	}
}

func TestParseFrontmatterAuthorShorthand(t *testing.T) {
	fm, _ := ParseFrontmatter("---\nauthor: Jane\ntags: solo\n---\n")
	if fm == nil {
		t.Fatalf("expected frontmatter")
	}
	if fm.Author.Name != "Jane" {
		t.Fatalf("author shorthand mismatch: %#v", fm.Author)
	}
	if !reflect.DeepEqual(fm.Tags, []string{"solo"}) {
		t.Fatalf("scalar tags should become a single item list: %#v", fm.Tags)
	}
}

func TestParseFrontmatterStrict(t *testing.T) {
	raw := "---\n" +
		"title: Strict\n" +
		"publishedAt: 2024-02-01\n" +
		"tags: [go, yaml]\n" +
		"featured: true\n" +
		"author:\n" +
		"  name: Sam\n" +
		"---\n" +
		"Body text\n"

	fm, body := ParseFrontmatterStrict(raw)
	if fm == nil {
		t.Fatalf("expected frontmatter")
	}
	if fm.Title != "Strict" || fm.PublishedAt != "2024-02-01" {
		t.Fatalf("scalars mismatch: %#v", fm)
	}
	if !reflect.DeepEqual(fm.Tags, []string{"go", "yaml"}) {
		t.Fatalf("tags mismatch: %#v", fm.Tags)
	}
	if !fm.Featured || fm.Author.Name != "Sam" {
		t.Fatalf("typed fields mismatch: %#v", fm)
	}
	if !strings.Contains(body, "Body text") || strings.Contains(body, "title:") {
		t.Fatalf("body mismatch: %q", body)
	}
}

func TestParseFrontmatterStrictFallsBack(t *testing.T) {
	raw := "---\ntitle: [unclosed\n---\nBody"
	fm, body := ParseFrontmatterStrict(raw)
	if fm != nil || body != raw {
		t.Fatalf("expected nil and unchanged input, got %#v %q", fm, body)
	}

	plain := "Body only"
	if fm, body := ParseFrontmatterStrict(plain); fm != nil || body != plain {
		t.Fatalf("expected nil and unchanged input for plain text")
	}
}

func TestFrontmatterModeValid(t *testing.T) {
	for _, mode := range []FrontmatterMode{"", FrontmatterCompat, FrontmatterStrict} {
		if !mode.Valid() {
			t.Fatalf("expected %q to be valid", mode)
		}
	}
	if FrontmatterMode("toml").Valid() {
		t.Fatalf("expected unknown mode to be invalid")
	}
}

func TestFormatFrontmatterRoundTrip(t *testing.T) {
	sources := []string{
		readFixture(t, "testdata/posts/hello-world.mdx"),
		readFixture(t, "testdata/posts/archive/old-post.mdx"),
		"---\ntitle: \" padded \"\ncount: 3\ndraft: false\nempty: []\nseo:\n  keywords:\n    - a\n    - b\n---\nbody\n",
	}

	for _, source := range sources {
		first, body := ParseFrontmatter(source)
		if first == nil {
			t.Fatalf("expected frontmatter in %q", source)
		}

		formatted := FormatFrontmatter(first) + body
		second, secondBody := ParseFrontmatter(formatted)
		if second == nil {
			t.Fatalf("formatted block did not parse:\n%s", formatted)
		}
		if !reflect.DeepEqual(first.Raw, second.Raw) {
			t.Fatalf("round trip mismatch:\nfirst:  %#v\nsecond: %#v\n%s", first.Raw, second.Raw, formatted)
		}
		if secondBody != body {
			t.Fatalf("body changed on round trip: %q vs %q", body, secondBody)
		}
	}
}

func TestFormatFrontmatterTypedFields(t *testing.T) {
	fm, _ := ParseFrontmatter("---\ntitle: Typed\ntags: [a]\n---\n")
	fm.Raw = nil

	formatted := FormatFrontmatter(fm)
	if !strings.HasPrefix(formatted, "---\n") || !strings.HasSuffix(formatted, "---\n") {
		t.Fatalf("missing delimiters: %q", formatted)
	}
	if !strings.Contains(formatted, "title: Typed\n") || !strings.Contains(formatted, "tags:\n  - a\n") {
		t.Fatalf("typed fields not written: %q", formatted)
	}
	if FormatFrontmatter(nil) != "" {
		t.Fatalf("expected empty output for nil frontmatter")
	}
}
