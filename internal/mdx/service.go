package mdx

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/Hilal-Ahmad786/Blogweb/internal/logging"
	"github.com/Hilal-Ahmad786/Blogweb/pkg/interfaces"
)

// ErrDocumentRequired is returned when a nil document is processed.
var ErrDocumentRequired = errors.New("mdx service: document is required")

// Config controls how the service discovers, processes and summarises documents.
type Config struct {
	BasePath         string
	Patterns         []string
	Recursive        bool
	FrontmatterMode  FrontmatterMode
	Workers          int
	TOCMaxLevel      int
	ExcerptLength    int
	ExcerptSeparator string
	// FS overrides the filesystem rooted at BasePath.
	FS     fs.FS
	Logger interfaces.Logger
}

// Service implements interfaces.ContentService over a filesystem.
type Service struct {
	cfg       Config
	loader    *Loader
	processor *Processor
	validator Validator
	logger    interfaces.Logger
	progress  func(path string, err error)
}

var _ interfaces.ContentService = (*Service)(nil)

// NewService constructs the content service. When processor is nil a default
// one is created.
func NewService(cfg Config, processor *Processor) (*Service, error) {
	filesystem := cfg.FS
	if filesystem == nil {
		var err error
		filesystem, err = prepareFilesystem(cfg.BasePath)
		if err != nil {
			return nil, err
		}
	}
	if !cfg.FrontmatterMode.Valid() {
		return nil, fmt.Errorf("mdx service: unknown frontmatter mode %q", cfg.FrontmatterMode)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	logger := logging.Ensure(cfg.Logger)
	if processor == nil {
		processor = NewProcessor(WithProcessorLogger(logger))
	}

	return &Service{
		cfg: cfg,
		loader: NewLoader(filesystem, LoaderConfig{
			BasePath:        cfg.BasePath,
			Patterns:        cfg.Patterns,
			Recursive:       cfg.Recursive,
			FrontmatterMode: cfg.FrontmatterMode,
			Logger:          logger,
		}),
		processor: processor,
		validator: Validator{Mode: cfg.FrontmatterMode},
		logger:    logger,
	}, nil
}

// WithProgress returns a copy of the service that reports every document
// finished by the directory operations.
func (s *Service) WithProgress(fn func(path string, err error)) *Service {
	clone := *s
	clone.progress = fn
	return &clone
}

// Discover lists document paths below dir.
func (s *Service) Discover(ctx context.Context, dir string) ([]string, error) {
	return s.loader.Discover(ctx, dir)
}

// Load reads a single document relative to the base path.
func (s *Service) Load(ctx context.Context, path string) (*interfaces.Document, error) {
	return s.loader.LoadFile(ctx, path)
}

// LoadDirectory reads every document within dir.
func (s *Service) LoadDirectory(ctx context.Context, dir string) ([]*interfaces.Document, error) {
	return s.loader.LoadDirectory(ctx, dir)
}

// Process compiles doc and derives its outline and excerpt. A frontmatter
// excerpt wins over the generated one.
func (s *Service) Process(ctx context.Context, doc *interfaces.Document) (*interfaces.Post, error) {
	if doc == nil {
		return nil, ErrDocumentRequired
	}
	logger := logging.WithDocumentContext(s.logger, doc.FilePath, doc.Slug, "process")

	content, err := s.processor.Process(ctx, string(doc.Body), doc.Frontmatter)
	if err != nil {
		logger.Warn("mdx.document.process_failed", "error", err)
		return nil, fmt.Errorf("mdx process %s: %w", doc.FilePath, err)
	}

	excerpt := ""
	if doc.Frontmatter != nil {
		excerpt = strings.TrimSpace(doc.Frontmatter.Excerpt)
	}
	if excerpt == "" {
		excerpt = ExtractExcerpt(string(doc.Body), s.cfg.ExcerptLength, s.cfg.ExcerptSeparator)
	}

	logger.Debug("mdx.document.processed", "word_count", content.WordCount, "headings", len(content.Headings))
	return &interfaces.Post{
		Document: doc,
		Content:  content,
		TOC:      GenerateTableOfContents(content.Headings, s.cfg.TOCMaxLevel),
		Excerpt:  excerpt,
	}, nil
}

// ProcessDirectory processes every document within dir on a bounded pool of
// workers. Posts are returned in path order. Documents that fail are left
// out and their errors joined.
func (s *Service) ProcessDirectory(ctx context.Context, dir string) ([]*interfaces.Post, error) {
	paths, err := s.loader.Discover(ctx, dir)
	if err != nil {
		return nil, err
	}

	posts := make([]*interfaces.Post, len(paths))
	errs := make([]error, len(paths))
	s.run(ctx, len(paths), func(i int) {
		doc, err := s.loader.LoadFile(ctx, paths[i])
		if err == nil {
			posts[i], err = s.Process(ctx, doc)
		}
		errs[i] = err
		s.report(paths[i], err)
	})

	out := make([]*interfaces.Post, 0, len(posts))
	for _, post := range posts {
		if post != nil {
			out = append(out, post)
		}
	}
	return out, errors.Join(append(errs, ctx.Err())...)
}

// Validate checks the document source for required metadata and balanced
// braces.
func (s *Service) Validate(doc *interfaces.Document) interfaces.ValidationResult {
	if doc == nil {
		return s.validator.Validate("")
	}
	return s.validator.Validate(string(doc.Source))
}

// ValidateDirectory validates every document within dir, keyed by path.
func (s *Service) ValidateDirectory(ctx context.Context, dir string) (map[string]interfaces.ValidationResult, error) {
	paths, err := s.loader.Discover(ctx, dir)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	results := make(map[string]interfaces.ValidationResult, len(paths))
	errs := make([]error, len(paths))
	s.run(ctx, len(paths), func(i int) {
		doc, err := s.loader.LoadFile(ctx, paths[i])
		errs[i] = err
		s.report(paths[i], err)
		if err != nil {
			return
		}
		result := s.Validate(doc)
		mu.Lock()
		results[paths[i]] = result
		mu.Unlock()
	})
	return results, errors.Join(append(errs, ctx.Err())...)
}

// run calls fn for every index in [0, n) on at most cfg.Workers goroutines.
// Indexes not yet handed out when ctx is cancelled are skipped.
func (s *Service) run(ctx context.Context, n int, fn func(i int)) {
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(s.cfg.Workers, max(n, 1)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}

	defer func() {
		close(jobs)
		wg.Wait()
	}()
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return
		case jobs <- i:
		}
	}
}

func (s *Service) report(path string, err error) {
	if s.progress != nil {
		s.progress(path, err)
	}
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("mdx service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
