package mdx

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/Hilal-Ahmad786/Blogweb/internal/logging"
	"github.com/Hilal-Ahmad786/Blogweb/pkg/interfaces"
)

// Stage names understood by GoldmarkRenderer.
const (
	StageGFM              = "gfm"
	StageTable            = "table"
	StageStrikethrough    = "strikethrough"
	StageLinkify          = "linkify"
	StageTaskList         = "tasklist"
	StageDefinition       = "definition"
	StageFootnote         = "footnote"
	StageTypographer      = "typographer"
	StageHeadingIDs       = "heading-ids"
	StageAutolinkHeadings = "autolink-headings"
	StageImages           = "images"
)

// DefaultHeadingLinkClass is the class put on heading anchors when the
// autolink-headings stage does not set one.
const DefaultHeadingLinkClass = "heading-link"

var extensionRegistry = map[string]goldmark.Extender{
	StageGFM:           extension.GFM,
	StageTable:         extension.Table,
	StageStrikethrough: extension.Strikethrough,
	StageLinkify:       extension.Linkify,
	StageTaskList:      extension.TaskList,
	StageDefinition:    extension.DefinitionList,
	StageFootnote:      extension.Footnote,
	StageTypographer:   extension.Typographer,
}

// DefaultStages is the pipeline used when none is configured: GitHub
// flavoured Markdown, heading ids and anchored headings.
func DefaultStages() []interfaces.Stage {
	return []interfaces.Stage{
		{Name: StageGFM},
		{Name: StageHeadingIDs},
		{Name: StageAutolinkHeadings, Options: map[string]any{"class": DefaultHeadingLinkClass}},
	}
}

// RendererConfig configures a GoldmarkRenderer.
type RendererConfig struct {
	Stages           []interfaces.Stage
	HardWraps        bool
	Unsafe           bool
	UniqueHeadingIDs bool
	WordsPerMinute   int
	Logger           interfaces.Logger
}

// DefaultRendererConfig allows raw HTML since MDX bodies embed components.
func DefaultRendererConfig() RendererConfig {
	return RendererConfig{
		Stages:         DefaultStages(),
		Unsafe:         true,
		WordsPerMinute: DefaultWordsPerMinute,
	}
}

// GoldmarkRenderer compiles document bodies to HTML with goldmark. Besides
// the markup it publishes headings, word count and reading time through
// RenderResult.Data so callers do not need a second pass.
type GoldmarkRenderer struct {
	cfg        RendererConfig
	options    []goldmark.Option
	preprocess []func(string) string
	logger     interfaces.Logger
}

var _ interfaces.Renderer = (*GoldmarkRenderer)(nil)

// NewGoldmarkRenderer resolves the configured stages in order. Unknown stage
// names are skipped with a warning.
func NewGoldmarkRenderer(cfg RendererConfig) *GoldmarkRenderer {
	r := &GoldmarkRenderer{
		cfg:    cfg,
		logger: logging.Ensure(cfg.Logger),
	}

	var (
		exts         []goldmark.Extender
		transformers []util.PrioritizedValue
		seen         = map[string]struct{}{}
	)
	for _, stage := range cfg.Stages {
		name := strings.ToLower(strings.TrimSpace(stage.Name))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		if ext, ok := extensionRegistry[name]; ok {
			exts = append(exts, ext)
			continue
		}
		switch name {
		case StageHeadingIDs:
			transformers = append(transformers, util.Prioritized(headingIDTransformer{unique: cfg.UniqueHeadingIDs}, 100))
		case StageAutolinkHeadings:
			class := DefaultHeadingLinkClass
			if value, ok := stage.Options["class"].(string); ok && strings.TrimSpace(value) != "" {
				class = value
			}
			transformers = append(transformers, util.Prioritized(headingLinkTransformer{class: class}, 200))
		case StageImages:
			r.preprocess = append(r.preprocess, OptimizeImages)
		default:
			r.logger.Warn("mdx.renderer.stage_unknown", "stage", stage.Name)
		}
	}

	rendererOptions := []renderer.Option{}
	if cfg.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if cfg.Unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	r.options = []goldmark.Option{goldmark.WithRendererOptions(rendererOptions...)}
	if len(exts) > 0 {
		r.options = append(r.options, goldmark.WithExtensions(exts...))
	}
	if len(transformers) > 0 {
		r.options = append(r.options, goldmark.WithParserOptions(parser.WithASTTransformers(transformers...)))
	}
	return r
}

// Render compiles body. A fresh engine is built per call so the renderer can
// be shared between goroutines.
func (r *GoldmarkRenderer) Render(ctx context.Context, body []byte) (*interfaces.RenderResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	source := body
	if len(r.preprocess) > 0 {
		value := string(body)
		for _, fn := range r.preprocess {
			value = fn(value)
		}
		source = []byte(value)
	}

	engine := goldmark.New(r.options...)
	doc := engine.Parser().Parse(text.NewReader(source))

	var buf bytes.Buffer
	if err := engine.Renderer().Render(&buf, source, doc); err != nil {
		return nil, fmt.Errorf("mdx render: %w", err)
	}

	words := CalculateWordCount(plainText(doc, source))
	return &interfaces.RenderResult{
		Compiled: buf.Bytes(),
		Data: map[string]any{
			interfaces.RenderDataHeadings:    ExtractHeadings(MarkdownTree(doc, source), NewHeadingIDs(r.cfg.UniqueHeadingIDs)),
			interfaces.RenderDataWordCount:   words,
			interfaces.RenderDataReadingTime: readingTime(words, r.cfg.WordsPerMinute),
		},
	}, nil
}

// headingIDTransformer sets the id attribute of every heading from its
// plain text title.
type headingIDTransformer struct {
	unique bool
}

func (t headingIDTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	ids := NewHeadingIDs(t.unique)
	source := reader.Source()
	for _, heading := range collectHeadings(doc) {
		title := strings.TrimSpace(TextContent(MarkdownTree(heading, source)))
		heading.SetAttributeString("id", []byte(ids.Next(title)))
	}
}

// headingLinkTransformer wraps heading content in an anchor pointing at the
// heading itself.
type headingLinkTransformer struct {
	class string
}

func (t headingLinkTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	for _, heading := range collectHeadings(doc) {
		id := headingID(heading, source)
		if id == "" || !heading.HasChildren() {
			continue
		}

		link := ast.NewLink()
		link.Destination = []byte("#" + id)
		link.SetAttributeString("class", []byte(t.class))
		for child := heading.FirstChild(); child != nil; {
			next := child.NextSibling()
			heading.RemoveChild(heading, child)
			link.AppendChild(link, child)
			child = next
		}
		heading.AppendChild(heading, link)
	}
}

func headingID(heading *ast.Heading, source []byte) string {
	if value, ok := heading.AttributeString("id"); ok {
		switch v := value.(type) {
		case []byte:
			return string(v)
		case string:
			return v
		}
	}
	return GenerateHeadingID(TextContent(MarkdownTree(heading, source)))
}

func collectHeadings(doc ast.Node) []*ast.Heading {
	var headings []*ast.Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok {
			headings = append(headings, heading)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return headings
}

// plainText flattens the document into words separated by whitespace. Code
// blocks count; raw HTML does not.
func plainText(doc ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				b.WriteByte('\n')
			}
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		case *ast.AutoLink:
			b.Write(v.Label(source))
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				segment := lines.At(i)
				b.Write(segment.Value(source))
			}
		case *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
