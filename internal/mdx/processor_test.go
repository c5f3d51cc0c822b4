package mdx

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/Hilal-Ahmad786/Blogweb/pkg/interfaces"
)

func TestProcessMDX(t *testing.T) {
	raw := readFixture(t, "testdata/posts/hello-world.mdx")
	fm, body := ParseFrontmatter(raw)

	processed, err := ProcessMDX(context.Background(), body, fm)
	if err != nil {
		t.Fatalf("ProcessMDX: %v", err)
	}
	if processed.Frontmatter != fm {
		t.Fatalf("expected frontmatter to be attached unchanged")
	}
	if len(processed.Compiled) == 0 || processed.Checksum == "" {
		t.Fatalf("expected compiled output and checksum")
	}
	if processed.WordCount == 0 || processed.ReadingTime != 1 {
		t.Fatalf("unexpected metrics: words=%d minutes=%d", processed.WordCount, processed.ReadingTime)
	}

	var titles []string
	for _, heading := range processed.Headings {
		titles = append(titles, heading.Title)
	}
	if !reflect.DeepEqual(titles, []string{"Hello World", "Getting Started", "Details"}) {
		t.Fatalf("headings mismatch: %#v", processed.Headings)
	}
}

func TestProcessorFallsBackWhenRendererReportsNothing(t *testing.T) {
	renderer := &stubRenderer{}
	processor := NewProcessor(WithRenderer(renderer), WithWordsPerMinute(2))

	processed, err := processor.Process(context.Background(), "# Title\n\none two three four five", nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if processed.WordCount != 7 {
		t.Fatalf("expected fallback word count over raw content, got %d", processed.WordCount)
	}
	if processed.ReadingTime != 4 {
		t.Fatalf("expected fallback reading time 4, got %d", processed.ReadingTime)
	}
	if len(processed.Headings) != 1 || processed.Headings[0].ID != "title" {
		t.Fatalf("expected fallback heading extraction, got %#v", processed.Headings)
	}
	if processed.Frontmatter != nil {
		t.Fatalf("expected nil frontmatter to pass through")
	}
}

func TestProcessorPrefersRendererData(t *testing.T) {
	headings := []interfaces.Heading{{ID: "x", Title: "X", Level: 2}}
	renderer := &stubRenderer{result: &interfaces.RenderResult{
		Compiled: []byte("<h2>X</h2>"),
		Data: map[string]any{
			interfaces.RenderDataHeadings:    headings,
			interfaces.RenderDataWordCount:   42,
			interfaces.RenderDataReadingTime: 9,
		},
	}}

	processed, err := NewProcessor(WithRenderer(renderer)).Process(context.Background(), "ignored", nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if processed.WordCount != 42 || processed.ReadingTime != 9 || !reflect.DeepEqual(processed.Headings, headings) {
		t.Fatalf("renderer data not used: %#v", processed)
	}
}

func TestProcessorHidesRendererFailure(t *testing.T) {
	logger := newRecordingLogger()
	renderer := &stubRenderer{err: errors.New("renderer exploded at line 3")}
	processor := NewProcessor(WithRenderer(renderer), WithProcessorLogger(logger))

	_, err := processor.Process(context.Background(), "body", nil)
	if err == nil {
		t.Fatalf("expected processing error")
	}
	if !errors.Is(err, ErrContentProcessing) {
		t.Fatalf("expected ErrContentProcessing, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryInternal) {
		t.Fatalf("expected internal category, got %v", err)
	}
	if strings.Contains(err.Error(), "exploded") {
		t.Fatalf("renderer detail leaked: %v", err)
	}
	if _, ok := logger.find("mdx.process.failed"); !ok {
		t.Fatalf("expected failure to be logged")
	}
}

func TestProcessorCacheIsolatesResults(t *testing.T) {
	renderer := &stubRenderer{result: &interfaces.RenderResult{
		Compiled: []byte("<h2>Setup</h2>"),
		Data: map[string]any{
			interfaces.RenderDataHeadings: []interfaces.Heading{{ID: "setup", Title: "Setup", Level: 2}},
		},
	}}
	processor := NewProcessor(WithRenderer(renderer), WithCache(newMapCache(), 0))

	first, err := processor.Process(context.Background(), "## Setup", nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	first.Headings[0].ID = "changed"
	first.Compiled[1] = 'X'

	second, err := processor.Process(context.Background(), "## Setup", nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if renderer.calls != 1 {
		t.Fatalf("expected cached second call, got %d renders", renderer.calls)
	}
	if second.Headings[0].ID != "setup" || string(second.Compiled) != "<h2>Setup</h2>" {
		t.Fatalf("cached entry changed by caller: %+v %q", second.Headings, second.Compiled)
	}

	second.Headings[0].ID = "again"
	third, err := processor.Process(context.Background(), "## Setup", nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if third.Headings[0].ID != "setup" {
		t.Fatalf("cache hit result shares storage with cache: %+v", third.Headings)
	}
}

func TestProcessorCachesByChecksum(t *testing.T) {
	renderer := &stubRenderer{}
	cache := newMapCache()
	processor := NewProcessor(WithRenderer(renderer), WithCache(cache, 0))

	first := &interfaces.Frontmatter{Title: "First"}
	second := &interfaces.Frontmatter{Title: "Second"}

	a, err := processor.Process(context.Background(), "same body", first)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	b, err := processor.Process(context.Background(), "same body", second)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if renderer.calls != 1 {
		t.Fatalf("expected a single render, got %d", renderer.calls)
	}
	if a.Checksum != b.Checksum {
		t.Fatalf("checksums differ for equal content")
	}
	if a.Frontmatter != first || b.Frontmatter != second {
		t.Fatalf("cached result must carry the caller's frontmatter")
	}

	if _, err := processor.Process(context.Background(), "other body", nil); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if renderer.calls != 2 {
		t.Fatalf("expected a render for new content, got %d", renderer.calls)
	}
}
