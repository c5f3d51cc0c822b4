package catalog

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/Hilal-Ahmad786/Blogweb/internal/logging"
	"github.com/Hilal-Ahmad786/Blogweb/pkg/interfaces"
)

// Category groups published posts under a shared category name.
type Category struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Tag is a tag with the number of published posts carrying it.
type Tag struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// IndexResult summarises an Index call.
type IndexResult struct {
	Indexed int
	Skipped int
	Removed int
	// Collisions counts posts dropped because another file owns the slug.
	// They are also counted in Skipped.
	Collisions int
}

// Config controls catalog visibility rules.
type Config struct {
	// IncludeDrafts keeps draft posts in the catalog.
	IncludeDrafts bool
	// Prune removes stored posts that are missing from an Index call.
	Prune  bool
	Logger interfaces.Logger
}

// Service derives listings from processed posts.
type Service struct {
	repo   Repository
	cfg    Config
	logger interfaces.Logger
}

// NewService constructs a catalog service over repo.
func NewService(repo Repository, cfg Config) *Service {
	return &Service{
		repo:   repo,
		cfg:    cfg,
		logger: logging.Ensure(cfg.Logger),
	}
}

// WithDrafts returns a copy of the service with draft visibility overridden.
func (s *Service) WithDrafts(include bool) *Service {
	clone := *s
	clone.cfg.IncludeDrafts = include
	return &clone
}

// Summarize builds the listing view of post. ok is false for posts without
// frontmatter, which cannot be listed.
func Summarize(post *interfaces.Post) (PostSummary, bool) {
	if post == nil || post.Document == nil || post.Document.Frontmatter == nil {
		return PostSummary{}, false
	}
	doc := post.Document
	fm := doc.Frontmatter

	summary := PostSummary{
		Slug:         doc.Slug,
		FilePath:     doc.FilePath,
		Title:        fm.Title,
		Excerpt:      post.Excerpt,
		Category:     fm.Category,
		CategorySlug: CategorySlug(fm.Category),
		Tags:         slices.Clone(fm.Tags),
		PublishedAt:  fm.PublishedAt,
		CoverImage:   fm.CoverImage,
		Featured:     fm.Featured,
		Draft:        fm.Draft,
	}
	if summary.Tags == nil {
		summary.Tags = []string{}
	}
	if post.Content != nil {
		summary.ReadingTime = post.Content.ReadingTime
		summary.WordCount = post.Content.WordCount
		summary.Checksum = post.Content.Checksum
	}
	return summary, true
}

// IndexOption adjusts a single Index call.
type IndexOption func(*indexOptions)

type indexOptions struct {
	includeDrafts bool
}

// IncludeDrafts overrides the configured draft visibility for one Index call.
func IncludeDrafts(include bool) IndexOption {
	return func(o *indexOptions) {
		o.includeDrafts = include
	}
}

// Index stores a summary for every listable post. Drafts are skipped unless
// drafts are included.
func (s *Service) Index(ctx context.Context, posts []*interfaces.Post, opts ...IndexOption) (IndexResult, error) {
	options := indexOptions{includeDrafts: s.cfg.IncludeDrafts}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	var result IndexResult
	seen := map[string]struct{}{}

	summaries := make([]PostSummary, 0, len(posts))
	owners := map[string]int{}
	for _, post := range posts {
		summary, ok := Summarize(post)
		if !ok || (summary.Draft && !options.includeDrafts) {
			result.Skipped++
			continue
		}
		i, taken := owners[summary.Slug]
		if !taken {
			owners[summary.Slug] = len(summaries)
			summaries = append(summaries, summary)
			continue
		}
		// Slugs are file stems; the lexically first path keeps the slug.
		kept, dropped := summaries[i], summary
		if summary.FilePath < kept.FilePath {
			kept, dropped = summary, kept
			summaries[i] = kept
		}
		s.logger.Warn("catalog.index.slug_collision",
			"slug", summary.Slug,
			"kept", kept.FilePath,
			"dropped", dropped.FilePath,
		)
		result.Skipped++
		result.Collisions++
	}

	for _, summary := range summaries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if _, err := s.repo.Upsert(ctx, summary); err != nil {
			return result, fmt.Errorf("catalog index %s: %w", summary.Slug, err)
		}
		seen[summary.Slug] = struct{}{}
		result.Indexed++
	}

	if s.cfg.Prune {
		stored, err := s.repo.List(ctx)
		if err != nil {
			return result, err
		}
		for _, post := range stored {
			if _, ok := seen[post.Slug]; ok {
				continue
			}
			if err := s.repo.Delete(ctx, post.Slug); err != nil && !errors.Is(err, ErrPostNotFound) {
				return result, fmt.Errorf("catalog prune %s: %w", post.Slug, err)
			}
			result.Removed++
		}
	}

	s.logger.Info("catalog.index.completed",
		"indexed", result.Indexed,
		"skipped", result.Skipped,
		"removed", result.Removed,
		"collisions", result.Collisions,
	)
	return result, nil
}

// Posts lists visible posts, newest first.
func (s *Service) Posts(ctx context.Context) ([]PostSummary, error) {
	stored, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	posts := make([]PostSummary, 0, len(stored))
	for _, post := range stored {
		if post.Draft && !s.cfg.IncludeDrafts {
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// Post returns a single visible post by slug.
func (s *Service) Post(ctx context.Context, slug string) (PostSummary, error) {
	post, err := s.repo.Get(ctx, slug)
	if err != nil {
		return PostSummary{}, err
	}
	if post.Draft && !s.cfg.IncludeDrafts {
		return PostSummary{}, ErrPostNotFound
	}
	return post, nil
}

// Categories counts visible posts per category, largest first, then by name.
// Posts without a category are not counted.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	posts, err := s.Posts(ctx)
	if err != nil {
		return nil, err
	}

	index := map[string]int{}
	categories := []Category{}
	for _, post := range posts {
		if post.CategorySlug == "" {
			continue
		}
		if i, ok := index[post.CategorySlug]; ok {
			categories[i].Count++
			continue
		}
		index[post.CategorySlug] = len(categories)
		categories = append(categories, Category{Slug: post.CategorySlug, Name: post.Category, Count: 1})
	}

	slices.SortFunc(categories, func(a, b Category) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return categories, nil
}

// PostsByCategory lists visible posts whose category slug matches.
func (s *Service) PostsByCategory(ctx context.Context, categorySlug string) ([]PostSummary, error) {
	return s.filter(ctx, func(post PostSummary) bool {
		return post.CategorySlug == categorySlug
	})
}

// PostsByTag lists visible posts carrying a tag whose slug matches.
func (s *Service) PostsByTag(ctx context.Context, tagSlug string) ([]PostSummary, error) {
	return s.filter(ctx, func(post PostSummary) bool {
		return slices.ContainsFunc(post.Tags, func(tag string) bool {
			return TagSlug(tag) == tagSlug
		})
	})
}

// TrendingTags counts tags across visible posts, most used first, then by
// name. limit <= 0 returns every tag.
func (s *Service) TrendingTags(ctx context.Context, limit int) ([]Tag, error) {
	posts, err := s.Posts(ctx)
	if err != nil {
		return nil, err
	}

	index := map[string]int{}
	tags := []Tag{}
	for _, post := range posts {
		for _, name := range post.Tags {
			tagSlug := TagSlug(name)
			if tagSlug == "" {
				continue
			}
			if i, ok := index[tagSlug]; ok {
				tags[i].Count++
				continue
			}
			index[tagSlug] = len(tags)
			tags = append(tags, Tag{Slug: tagSlug, Name: name, Count: 1})
		}
	}

	slices.SortFunc(tags, func(a, b Tag) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	if limit > 0 && len(tags) > limit {
		tags = tags[:limit]
	}
	return tags, nil
}

func (s *Service) filter(ctx context.Context, keep func(PostSummary) bool) ([]PostSummary, error) {
	posts, err := s.Posts(ctx)
	if err != nil {
		return nil, err
	}
	out := []PostSummary{}
	for _, post := range posts {
		if keep(post) {
			out = append(out, post)
		}
	}
	return out, nil
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// TagSlug lowercases tag and joins its words with hyphens.
func TagSlug(tag string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(tag)), "-")
}

// CategorySlug normalises a category name for use in URLs.
func CategorySlug(category string) string {
	trimmed := strings.TrimSpace(category)
	if trimmed == "" {
		return ""
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || normalized == "" {
		return TagSlug(trimmed)
	}
	return normalized
}
