package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Frontmatter models the metadata block prefixed to an article. Typed fields
// cover the keys the blog understands; every key found in the source block is
// also kept in Raw, and keys without a typed field land in Extra.
type Frontmatter struct {
	Title       string         `yaml:"title" json:"title"`
	Excerpt     string         `yaml:"excerpt,omitempty" json:"excerpt,omitempty"`
	PublishedAt string         `yaml:"publishedAt" json:"publishedAt"`
	UpdatedAt   string         `yaml:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	Tags        []string       `yaml:"tags" json:"tags"`
	Category    string         `yaml:"category,omitempty" json:"category,omitempty"`
	CoverImage  string         `yaml:"coverImage,omitempty" json:"coverImage,omitempty"`
	Featured    bool           `yaml:"featured,omitempty" json:"featured,omitempty"`
	Draft       bool           `yaml:"draft,omitempty" json:"draft,omitempty"`
	Author      Author         `yaml:"author" json:"author"`
	SEO         *SEO           `yaml:"seo,omitempty" json:"seo,omitempty"`
	Extra       map[string]any `yaml:"-" json:"extra,omitempty"`
	Raw         map[string]any `yaml:"-" json:"raw"`
}

// Author identifies who wrote an article.
type Author struct {
	Name   string `yaml:"name" json:"name"`
	Avatar string `yaml:"avatar,omitempty" json:"avatar,omitempty"`
}

// SEO carries search-engine overrides for an article.
type SEO struct {
	Title       string   `yaml:"title,omitempty" json:"title,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Keywords    []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
}

// Heading is a single entry of a document outline.
type Heading struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Level int    `json:"level"`
}

// TOCNode is a heading together with the headings nested below it.
type TOCNode struct {
	Heading
	Children []*TOCNode `json:"children"`
}

// ProcessedContent aggregates everything derived from one document. It is
// built once per processing call and treated as read-only afterwards.
type ProcessedContent struct {
	Frontmatter *Frontmatter `json:"frontmatter"`
	Compiled    []byte       `json:"compiled"`
	ReadingTime int          `json:"readingTime"`
	WordCount   int          `json:"wordCount"`
	Headings    []Heading    `json:"headings"`
	Checksum    string       `json:"checksum"`
}

// ValidationResult reports structural problems found in a document.
// IsValid is true exactly when Errors is empty.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Stage describes one transformation step of the rendering pipeline. Stages
// are applied in the order they are listed.
type Stage struct {
	Name    string         `yaml:"name" json:"name"`
	Options map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
}

// RenderResult is what a Renderer returns for a document body. Data is an
// optional side-channel for values the renderer computed while walking the
// document (see the RenderData* keys).
type RenderResult struct {
	Compiled []byte
	Data     map[string]any
}

// Keys a Renderer may publish through RenderResult.Data.
const (
	RenderDataHeadings    = "headings"
	RenderDataWordCount   = "wordCount"
	RenderDataReadingTime = "readingTime"
)

// Renderer compiles a document body into its rendered representation.
type Renderer interface {
	Render(ctx context.Context, body []byte) (*RenderResult, error)
}

// Document is a source file with its parsed metadata.
type Document struct {
	ID           uuid.UUID
	FilePath     string
	Slug         string
	Frontmatter  *Frontmatter
	Body         []byte
	Source       []byte
	LastModified time.Time
	// Checksum is the SHA-256 digest of Source.
	Checksum []byte
}

// Post is a fully processed document ready for presentation.
type Post struct {
	Document *Document
	Content  *ProcessedContent
	TOC      []*TOCNode
	Excerpt  string
}

// ContentService exposes the file-centric content workflows.
type ContentService interface {
	Load(ctx context.Context, path string) (*Document, error)
	LoadDirectory(ctx context.Context, dir string) ([]*Document, error)
	Process(ctx context.Context, doc *Document) (*Post, error)
	ProcessDirectory(ctx context.Context, dir string) ([]*Post, error)
	Validate(doc *Document) ValidationResult
	ValidateDirectory(ctx context.Context, dir string) (map[string]ValidationResult, error)
}
