package mdx

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"sync"
	"time"

	"github.com/Hilal-Ahmad786/Blogweb/internal/logging"
	"github.com/Hilal-Ahmad786/Blogweb/pkg/interfaces"
)

const cacheKeyPrefix = "mdx:processed:"

// Processor compiles document bodies and derives their metadata. It is safe
// for concurrent use when its renderer and cache are.
type Processor struct {
	renderer       interfaces.Renderer
	cache          interfaces.CacheProvider
	cacheTTL       time.Duration
	logger         interfaces.Logger
	wordsPerMinute int
	uniqueIDs      bool
}

// ProcessorOption customises a Processor.
type ProcessorOption func(*Processor)

// WithRenderer replaces the default goldmark renderer.
func WithRenderer(renderer interfaces.Renderer) ProcessorOption {
	return func(p *Processor) {
		if renderer != nil {
			p.renderer = renderer
		}
	}
}

// WithCache stores processed content by body checksum.
func WithCache(cache interfaces.CacheProvider, ttl time.Duration) ProcessorOption {
	return func(p *Processor) {
		p.cache = cache
		p.cacheTTL = ttl
	}
}

// WithProcessorLogger sets the logger used for processing failures.
func WithProcessorLogger(logger interfaces.Logger) ProcessorOption {
	return func(p *Processor) {
		p.logger = logging.Ensure(logger)
	}
}

// WithWordsPerMinute sets the reading speed used when the renderer does not
// report a reading time.
func WithWordsPerMinute(wpm int) ProcessorOption {
	return func(p *Processor) {
		p.wordsPerMinute = wpm
	}
}

// WithUniqueHeadingIDs disambiguates repeated heading ids in fallback
// extraction.
func WithUniqueHeadingIDs(unique bool) ProcessorOption {
	return func(p *Processor) {
		p.uniqueIDs = unique
	}
}

// NewProcessor builds a processor around DefaultRendererConfig unless a
// renderer is supplied.
func NewProcessor(opts ...ProcessorOption) *Processor {
	p := &Processor{
		logger:         logging.NoOp(),
		wordsPerMinute: DefaultWordsPerMinute,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.renderer == nil {
		cfg := DefaultRendererConfig()
		cfg.WordsPerMinute = p.wordsPerMinute
		cfg.UniqueHeadingIDs = p.uniqueIDs
		cfg.Logger = p.logger
		p.renderer = NewGoldmarkRenderer(cfg)
	}
	return p
}

var defaultProcessor = sync.OnceValue(func() *Processor {
	return NewProcessor()
})

// ProcessMDX processes content with a shared default processor.
func ProcessMDX(ctx context.Context, content string, fm *interfaces.Frontmatter) (*interfaces.ProcessedContent, error) {
	return defaultProcessor().Process(ctx, content, fm)
}

// Process compiles content (a body without its metadata block) and attaches
// fm to the result. Values the renderer reports through RenderResult.Data
// take precedence; anything missing is computed from content directly.
//
// A renderer failure is logged and returned as ErrContentProcessing without
// the underlying cause.
func (p *Processor) Process(ctx context.Context, content string, fm *interfaces.Frontmatter) (*interfaces.ProcessedContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sum := sha256.Sum256([]byte(content))
	checksum := hex.EncodeToString(sum[:])

	if cached, ok := p.cached(ctx, checksum); ok {
		return cloneProcessed(cached, fm), nil
	}

	result, err := p.renderer.Render(ctx, []byte(content))
	if err != nil {
		p.logger.Error("mdx.process.failed", "checksum", checksum, "error", err)
		return nil, contentProcessingError()
	}
	if result == nil {
		result = &interfaces.RenderResult{}
	}

	processed := &interfaces.ProcessedContent{
		Frontmatter: fm,
		Compiled:    result.Compiled,
		Checksum:    checksum,
	}

	if headings, ok := result.Data[interfaces.RenderDataHeadings].([]interfaces.Heading); ok && headings != nil {
		processed.Headings = headings
	} else {
		processed.Headings = ExtractHeadingsFromMarkdown([]byte(content), p.uniqueIDs)
	}

	if words, ok := result.Data[interfaces.RenderDataWordCount].(int); ok {
		processed.WordCount = words
	} else {
		processed.WordCount = CalculateWordCount(content)
	}

	if minutes, ok := result.Data[interfaces.RenderDataReadingTime].(int); ok && minutes > 0 {
		processed.ReadingTime = minutes
	} else {
		processed.ReadingTime = readingTime(processed.WordCount, p.wordsPerMinute)
	}

	p.store(ctx, checksum, processed)
	return processed, nil
}

func (p *Processor) cached(ctx context.Context, checksum string) (*interfaces.ProcessedContent, bool) {
	if p.cache == nil {
		return nil, false
	}
	value, err := p.cache.Get(ctx, cacheKeyPrefix+checksum)
	if err != nil || value == nil {
		return nil, false
	}
	processed, ok := value.(*interfaces.ProcessedContent)
	return processed, ok
}

func (p *Processor) store(ctx context.Context, checksum string, processed *interfaces.ProcessedContent) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Set(ctx, cacheKeyPrefix+checksum, cloneProcessed(processed, nil), p.cacheTTL); err != nil {
		p.logger.Debug("mdx.cache.store_failed", "checksum", checksum, "error", err)
	}
}

// cloneProcessed copies processed with fm attached. Cached entries never
// share slices with results handed to callers.
func cloneProcessed(processed *interfaces.ProcessedContent, fm *interfaces.Frontmatter) *interfaces.ProcessedContent {
	out := *processed
	out.Frontmatter = fm
	out.Compiled = slices.Clone(processed.Compiled)
	out.Headings = slices.Clone(processed.Headings)
	return &out
}
