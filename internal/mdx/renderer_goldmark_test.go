package mdx

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/Hilal-Ahmad786/Blogweb/pkg/interfaces"
)

func TestGoldmarkRendererDefaults(t *testing.T) {
	renderer := NewGoldmarkRenderer(DefaultRendererConfig())

	result, err := renderer.Render(context.Background(), []byte("# Hello World\n\nSome **text**.\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	html := string(result.Compiled)
	for _, fragment := range []string{`<h1 id="hello-world">`, `href="#hello-world"`, `class="heading-link"`, "<strong>text</strong>"} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output, got %q", fragment, html)
		}
	}

	headings, ok := result.Data[interfaces.RenderDataHeadings].([]interfaces.Heading)
	if !ok {
		t.Fatalf("expected headings in render data, got %#v", result.Data)
	}
	want := []interfaces.Heading{{ID: "hello-world", Title: "Hello World", Level: 1}}
	if !reflect.DeepEqual(headings, want) {
		t.Fatalf("headings mismatch: %#v", headings)
	}
	if words := result.Data[interfaces.RenderDataWordCount]; words != 4 {
		t.Fatalf("expected 4 words, got %#v", words)
	}
	if minutes := result.Data[interfaces.RenderDataReadingTime]; minutes != 1 {
		t.Fatalf("expected 1 minute, got %#v", minutes)
	}
}

func TestGoldmarkRendererWithoutHeadingStages(t *testing.T) {
	renderer := NewGoldmarkRenderer(RendererConfig{Stages: []interfaces.Stage{{Name: StageGFM}}})

	result, err := renderer.Render(context.Background(), []byte("## Plain\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := strings.TrimSpace(string(result.Compiled)); got != "<h2>Plain</h2>" {
		t.Fatalf("expected bare heading, got %q", got)
	}
}

func TestGoldmarkRendererStageOptions(t *testing.T) {
	renderer := NewGoldmarkRenderer(RendererConfig{
		Stages: []interfaces.Stage{
			{Name: StageHeadingIDs},
			{Name: StageAutolinkHeadings, Options: map[string]any{"class": "anchor"}},
		},
		UniqueHeadingIDs: true,
	})

	result, err := renderer.Render(context.Background(), []byte("## Setup\n\n## Setup\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(result.Compiled)
	if !strings.Contains(html, `id="setup"`) || !strings.Contains(html, `id="setup-1"`) {
		t.Fatalf("expected unique ids, got %q", html)
	}
	if !strings.Contains(html, `class="anchor"`) || !strings.Contains(html, `href="#setup-1"`) {
		t.Fatalf("expected anchors with custom class, got %q", html)
	}

	headings := result.Data[interfaces.RenderDataHeadings].([]interfaces.Heading)
	if len(headings) != 2 || headings[1].ID != "setup-1" {
		t.Fatalf("render data should agree with markup: %#v", headings)
	}
}

func TestGoldmarkRendererAnchorsFollowUniqueIDs(t *testing.T) {
	renderer := NewGoldmarkRenderer(RendererConfig{
		Stages: []interfaces.Stage{
			{Name: StageAutolinkHeadings},
			{Name: StageHeadingIDs},
		},
		UniqueHeadingIDs: true,
	})

	result, err := renderer.Render(context.Background(), []byte("## Setup\n\n## Setup\n\n## Setup\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(result.Compiled)
	for _, id := range []string{"setup", "setup-1", "setup-2"} {
		want := `<h2 id="` + id + `"><a href="#` + id + `"`
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in %q", want, html)
		}
	}
}

func TestGoldmarkRendererImagesStage(t *testing.T) {
	renderer := NewGoldmarkRenderer(RendererConfig{
		Stages: []interfaces.Stage{{Name: StageImages}},
		Unsafe: true,
	})

	result, err := renderer.Render(context.Background(), []byte("Look at this: ![cat](/cat.png)\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(result.Compiled), `<Image src="/cat.png" alt="cat"`) {
		t.Fatalf("expected image component, got %q", result.Compiled)
	}
}

func TestGoldmarkRendererSafeMode(t *testing.T) {
	renderer := NewGoldmarkRenderer(RendererConfig{Unsafe: false})

	result, err := renderer.Render(context.Background(), []byte("<div>raw</div>\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(string(result.Compiled), "<div>") {
		t.Fatalf("expected raw HTML to be omitted, got %q", result.Compiled)
	}
}

func TestGoldmarkRendererUnknownStage(t *testing.T) {
	logger := newRecordingLogger()
	NewGoldmarkRenderer(RendererConfig{
		Stages: []interfaces.Stage{{Name: "math"}, {Name: StageGFM}},
		Logger: logger,
	})

	entry, ok := logger.find("mdx.renderer.stage_unknown")
	if !ok || entry.level != "warn" {
		t.Fatalf("expected warning for unknown stage, got %#v", logger.entries)
	}
}

func TestGoldmarkRendererCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewGoldmarkRenderer(DefaultRendererConfig()).Render(ctx, []byte("# x")); err == nil {
		t.Fatalf("expected context error")
	}
}
