package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Hilal-Ahmad786/Blogweb/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{"content dir", func(c *runtimeconfig.Config) { c.Content.Dir = " " }, runtimeconfig.ErrContentDirRequired},
		{"workers", func(c *runtimeconfig.Config) { c.Content.Workers = -1 }, runtimeconfig.ErrWorkersInvalid},
		{"frontmatter mode", func(c *runtimeconfig.Config) { c.MDX.FrontmatterMode = "toml" }, runtimeconfig.ErrFrontmatterModeUnknown},
		{"words per minute", func(c *runtimeconfig.Config) { c.MDX.WordsPerMinute = -5 }, runtimeconfig.ErrWordsPerMinuteInvalid},
		{"toc level", func(c *runtimeconfig.Config) { c.MDX.TOCMaxLevel = 7 }, runtimeconfig.ErrTOCMaxLevelInvalid},
		{"excerpt length", func(c *runtimeconfig.Config) { c.MDX.ExcerptLength = -1 }, runtimeconfig.ErrExcerptLengthInvalid},
		{"stage name", func(c *runtimeconfig.Config) { c.MDX.Stages[1].Name = "" }, runtimeconfig.ErrStageNameRequired},
		{"cache ttl", func(c *runtimeconfig.Config) { c.Cache.TTL = -time.Second }, runtimeconfig.ErrCacheTTLInvalid},
		{"catalog driver", func(c *runtimeconfig.Config) { c.Catalog.Driver = "mongo" }, runtimeconfig.ErrCatalogDriverUnknown},
		{"catalog dsn", func(c *runtimeconfig.Config) { c.Catalog.Driver = "sqlite" }, runtimeconfig.ErrCatalogDSNRequired},
		{"logging provider", func(c *runtimeconfig.Config) { c.Logging.Provider = "" }, runtimeconfig.ErrLoggingProviderRequired},
		{"unknown provider", func(c *runtimeconfig.Config) { c.Logging.Provider = "syslog" }, runtimeconfig.ErrLoggingProviderUnknown},
		{"logging level", func(c *runtimeconfig.Config) { c.Logging.Level = "loud" }, runtimeconfig.ErrLoggingLevelInvalid},
		{"logging format", func(c *runtimeconfig.Config) {
			c.Logging.Provider = "gologger"
			c.Logging.Format = "xml"
		}, runtimeconfig.ErrLoggingFormatInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blog.yaml")
	data := []byte(`
content:
  dir: posts
  workers: 2
mdx:
  frontmatter_mode: strict
  toc_max_level: 2
  stages:
    - name: gfm
    - name: autolink-headings
      options:
        class: anchor
cache:
  ttl: 5m
catalog:
  driver: sqlite
  dsn: file:blog.db
logging:
  provider: gologger
  format: json
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := runtimeconfig.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Content.Dir != "posts" || cfg.Content.Workers != 2 || !cfg.Content.Recursive {
		t.Fatalf("content section mismatch: %+v", cfg.Content)
	}
	if cfg.MDX.FrontmatterMode != "strict" || cfg.MDX.TOCMaxLevel != 2 || cfg.MDX.WordsPerMinute != 200 {
		t.Fatalf("mdx section mismatch: %+v", cfg.MDX)
	}
	if len(cfg.MDX.Stages) != 2 || cfg.MDX.Stages[1].Options["class"] != "anchor" {
		t.Fatalf("stages mismatch: %+v", cfg.MDX.Stages)
	}
	if cfg.Cache.TTL != 5*time.Minute || !cfg.Cache.Enabled {
		t.Fatalf("cache section mismatch: %+v", cfg.Cache)
	}
	if cfg.Catalog.Driver != "sqlite" || cfg.Logging.Format != "json" {
		t.Fatalf("catalog or logging mismatch: %+v %+v", cfg.Catalog, cfg.Logging)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blog.yaml")
	if err := os.WriteFile(path, []byte("catalog:\n  driver: mongo\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := runtimeconfig.Load(path); !errors.Is(err, runtimeconfig.ErrCatalogDriverUnknown) {
		t.Fatalf("expected ErrCatalogDriverUnknown, got %v", err)
	}
	if _, err := runtimeconfig.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
