package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Hilal-Ahmad786/Blogweb/pkg/interfaces"
)

var ErrContentDirRequired = errors.New("blog config: content directory is required")
var ErrWorkersInvalid = errors.New("blog config: content workers must be zero or positive")
var ErrFrontmatterModeUnknown = errors.New("blog config: frontmatter mode is invalid")
var ErrWordsPerMinuteInvalid = errors.New("blog config: words per minute must be zero or positive")
var ErrTOCMaxLevelInvalid = errors.New("blog config: toc max level must be between 0 and 6")
var ErrExcerptLengthInvalid = errors.New("blog config: excerpt length must be zero or positive")
var ErrStageNameRequired = errors.New("blog config: mdx stage name is required")
var ErrCacheTTLInvalid = errors.New("blog config: cache ttl must be zero or positive")
var ErrCatalogDriverUnknown = errors.New("blog config: catalog driver is invalid")
var ErrCatalogDSNRequired = errors.New("blog config: catalog dsn is required for sqlite")
var ErrLoggingProviderRequired = errors.New("blog config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("blog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("blog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")

// Config aggregates the settings of the content pipeline and its adapters.
type Config struct {
	Content ContentConfig `yaml:"content"`
	MDX     MDXConfig     `yaml:"mdx"`
	Cache   CacheConfig   `yaml:"cache"`
	Catalog CatalogConfig `yaml:"catalog"`
	Logging LoggingConfig `yaml:"logging"`
}

// ContentConfig describes where documents live and how many are processed
// at once.
type ContentConfig struct {
	Dir       string   `yaml:"dir"`
	Patterns  []string `yaml:"patterns"`
	Recursive bool     `yaml:"recursive"`
	Workers   int      `yaml:"workers"`
}

// MDXConfig controls parsing, derived metadata and rendering.
type MDXConfig struct {
	FrontmatterMode  string             `yaml:"frontmatter_mode"`
	WordsPerMinute   int                `yaml:"words_per_minute"`
	TOCMaxLevel      int                `yaml:"toc_max_level"`
	ExcerptLength    int                `yaml:"excerpt_length"`
	ExcerptSeparator string             `yaml:"excerpt_separator"`
	UniqueHeadingIDs bool               `yaml:"unique_heading_ids"`
	Stages           []interfaces.Stage `yaml:"stages"`
	HardWraps        bool               `yaml:"hard_wraps"`
	Unsafe           bool               `yaml:"unsafe"`
}

// CacheConfig captures processed-content cache behaviour.
type CacheConfig struct {
	Enabled  bool          `yaml:"enabled"`
	TTL      time.Duration `yaml:"ttl"`
	Capacity int           `yaml:"capacity"`
}

// CatalogConfig selects the post catalog storage.
type CatalogConfig struct {
	Driver        string `yaml:"driver"`
	DSN           string `yaml:"dsn"`
	IncludeDrafts bool   `yaml:"include_drafts"`
	Prune         bool   `yaml:"prune"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns the settings used when no file is supplied.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			Dir:       "content/posts",
			Patterns:  []string{"*.md", "*.mdx"},
			Recursive: true,
			Workers:   4,
		},
		MDX: MDXConfig{
			FrontmatterMode:  "compat",
			WordsPerMinute:   200,
			TOCMaxLevel:      3,
			ExcerptLength:    200,
			ExcerptSeparator: "<!-- excerpt -->",
			Stages: []interfaces.Stage{
				{Name: "gfm"},
				{Name: "heading-ids"},
				{Name: "autolink-headings", Options: map[string]any{"class": "heading-link"}},
			},
			Unsafe: true,
		},
		Cache: CacheConfig{
			Enabled:  true,
			TTL:      30 * time.Minute,
			Capacity: 1024,
		},
		Catalog: CatalogConfig{
			Driver: "memory",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Load reads a YAML file over DefaultConfig and validates the result.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("blog config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("blog config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if cfg.Content.Workers < 0 {
		return ErrWorkersInvalid
	}
	switch strings.ToLower(strings.TrimSpace(cfg.MDX.FrontmatterMode)) {
	case "", "compat", "strict":
	default:
		return fmt.Errorf("%w: %s", ErrFrontmatterModeUnknown, cfg.MDX.FrontmatterMode)
	}
	if cfg.MDX.WordsPerMinute < 0 {
		return ErrWordsPerMinuteInvalid
	}
	if cfg.MDX.TOCMaxLevel < 0 || cfg.MDX.TOCMaxLevel > 6 {
		return fmt.Errorf("%w: %d", ErrTOCMaxLevelInvalid, cfg.MDX.TOCMaxLevel)
	}
	if cfg.MDX.ExcerptLength < 0 {
		return ErrExcerptLengthInvalid
	}
	for i, stage := range cfg.MDX.Stages {
		if strings.TrimSpace(stage.Name) == "" {
			return fmt.Errorf("%w: index %d", ErrStageNameRequired, i)
		}
	}
	if cfg.Cache.Enabled && cfg.Cache.TTL < 0 {
		return ErrCacheTTLInvalid
	}
	switch driver := strings.ToLower(strings.TrimSpace(cfg.Catalog.Driver)); driver {
	case "", "memory":
	case "sqlite":
		if strings.TrimSpace(cfg.Catalog.DSN) == "" {
			return ErrCatalogDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrCatalogDriverUnknown, driver)
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
