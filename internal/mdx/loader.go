package mdx

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/Hilal-Ahmad786/Blogweb/internal/logging"
	"github.com/Hilal-Ahmad786/Blogweb/pkg/interfaces"
)

// DefaultPatterns are the file globs discovered when none are configured.
var DefaultPatterns = []string{"*.md", "*.mdx"}

// documentNamespace seeds deterministic document ids.
var documentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/Hilal-Ahmad786/Blogweb/documents"))

// LoaderConfig configures how documents are discovered within a base directory.
type LoaderConfig struct {
	// BasePath is the root directory absolute paths are resolved against.
	BasePath string
	// Patterns limits discovered files to those matching any glob
	// (defaults to DefaultPatterns).
	Patterns []string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
	// FrontmatterMode selects the metadata grammar.
	FrontmatterMode FrontmatterMode
	Logger          interfaces.Logger
}

// Loader turns filesystem paths into documents with parsed frontmatter.
type Loader struct {
	fs        fs.FS
	basePath  string
	patterns  []string
	recursive bool
	mode      FrontmatterMode
	logger    interfaces.Logger
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	var patterns []string
	for _, pattern := range cfg.Patterns {
		if trimmed := strings.TrimSpace(pattern); trimmed != "" {
			patterns = append(patterns, filepath.ToSlash(trimmed))
		}
	}
	if len(patterns) == 0 {
		patterns = append([]string(nil), DefaultPatterns...)
	}

	basePath := ""
	if strings.TrimSpace(cfg.BasePath) != "" {
		basePath = filepath.Clean(cfg.BasePath)
	}

	return &Loader{
		fs:        filesystem,
		basePath:  basePath,
		patterns:  patterns,
		recursive: cfg.Recursive,
		mode:      cfg.FrontmatterMode,
		logger:    logging.Ensure(cfg.Logger),
	}
}

// LoadFile reads and parses a single document.
func (l *Loader) LoadFile(ctx context.Context, name string) (*interfaces.Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel, err := l.makeRelative(name)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("mdx loader read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("mdx loader stat %s: %w", rel, err)
	}

	return l.buildDocument(rel, data, info.ModTime()), nil
}

// LoadDirectory discovers documents under dir and returns them sorted by path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*interfaces.Document, error) {
	paths, err := l.Discover(ctx, dir)
	if err != nil {
		return nil, err
	}

	docs := make([]*interfaces.Document, 0, len(paths))
	for _, rel := range paths {
		doc, err := l.LoadFile(ctx, rel)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Discover lists the document paths below dir, sorted.
func (l *Loader) Discover(ctx context.Context, dir string) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	root, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	walkErr := fs.WalkDir(l.fs, root, func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if !l.recursive && current != root {
				return fs.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if l.matches(current) {
			paths = append(paths, current)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("mdx loader walk %s: %w", root, walkErr)
	}

	sort.Strings(paths)
	return paths, nil
}

func (l *Loader) buildDocument(rel string, data []byte, modified time.Time) *interfaces.Document {
	sum := sha256.Sum256(data)
	doc := &interfaces.Document{
		ID:           uuid.NewSHA1(documentNamespace, []byte(rel)),
		FilePath:     rel,
		Slug:         documentSlug(rel),
		Body:         data,
		Source:       data,
		LastModified: modified,
		Checksum:     sum[:],
	}

	fm, body, err := l.mode.parse(string(data))
	switch {
	case err == nil:
		doc.Frontmatter = fm
		doc.Body = []byte(body)
	case errors.Is(err, errFrontmatterMissing):
	default:
		logging.WithDocumentContext(l.logger, rel, doc.Slug, "load").
			Debug("mdx.frontmatter.parse_failed", "error", err)
	}
	return doc
}

func (l *Loader) matches(name string) bool {
	for _, pattern := range l.patterns {
		target := path.Base(name)
		if strings.Contains(pattern, "/") {
			target = name
		}
		if ok, err := path.Match(strings.ReplaceAll(pattern, "**/", ""), target); err == nil && ok {
			return true
		}
	}
	return false
}

func (l *Loader) makeRelative(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return ".", nil
	}
	clean := filepath.Clean(name)
	if filepath.IsAbs(clean) {
		if l.basePath == "" {
			return "", fmt.Errorf("mdx loader: absolute path %s provided without base path", name)
		}
		rel, err := filepath.Rel(l.basePath, clean)
		if err != nil {
			return "", fmt.Errorf("mdx loader: make relative %s: %w", name, err)
		}
		clean = rel
	}
	return filepath.ToSlash(clean), nil
}

// documentSlug derives the post slug from the file stem.
func documentSlug(rel string) string {
	base := path.Base(rel)
	stem := strings.TrimSuffix(base, path.Ext(base))
	normalized, err := slug.Normalize(stem)
	if err != nil || normalized == "" {
		return stem
	}
	return normalized
}
