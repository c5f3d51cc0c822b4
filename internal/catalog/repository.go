package catalog

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"strings"
)

// ErrPostNotFound indicates that no summary is stored for a slug.
var ErrPostNotFound = errors.New("catalog: post not found")

// PostSummary is the listing view of a processed post.
type PostSummary struct {
	Slug         string   `json:"slug"`
	FilePath     string   `json:"filePath"`
	Title        string   `json:"title"`
	Excerpt      string   `json:"excerpt"`
	Category     string   `json:"category,omitempty"`
	CategorySlug string   `json:"categorySlug,omitempty"`
	Tags         []string `json:"tags"`
	PublishedAt  string   `json:"publishedAt"`
	ReadingTime  int      `json:"readingTime"`
	WordCount    int      `json:"wordCount"`
	CoverImage   string   `json:"coverImage,omitempty"`
	Featured     bool     `json:"featured,omitempty"`
	Draft        bool     `json:"draft,omitempty"`
	Checksum     string   `json:"checksum"`
}

func (p PostSummary) equal(other PostSummary) bool {
	if !slices.Equal(p.Tags, other.Tags) {
		return false
	}
	p.Tags, other.Tags = nil, nil
	return reflect.DeepEqual(p, other)
}

// Repository persists post summaries and emits change notifications.
type Repository interface {
	Upsert(ctx context.Context, post PostSummary) (PostSummary, error)
	Get(ctx context.Context, slug string) (PostSummary, error)
	// List returns every stored summary, newest first.
	List(ctx context.Context) ([]PostSummary, error)
	Delete(ctx context.Context, slug string) error
	Subscribe(ctx context.Context) (<-chan ChangeEvent, error)
}

// ChangeType enumerates catalog change events.
type ChangeType string

const (
	// ChangeCreated indicates a post was first indexed.
	ChangeCreated ChangeType = "created"
	// ChangeUpdated indicates an indexed post changed.
	ChangeUpdated ChangeType = "updated"
	// ChangeDeleted indicates a post was removed from the catalog.
	ChangeDeleted ChangeType = "deleted"
)

// ChangeEvent reports catalog mutations to interested subscribers.
type ChangeEvent struct {
	Type ChangeType
	Slug string
}

func newChangeEvent(changeType ChangeType, slug string) ChangeEvent {
	return ChangeEvent{
		Type: changeType,
		Slug: slug,
	}
}

// sortNewestFirst orders by publication date descending, then slug.
func sortNewestFirst(posts []PostSummary) {
	slices.SortFunc(posts, func(a, b PostSummary) int {
		if c := strings.Compare(b.PublishedAt, a.PublishedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Slug, b.Slug)
	})
}
