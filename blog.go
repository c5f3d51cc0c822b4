package blog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/Hilal-Ahmad786/Blogweb/internal/adapters/cache"
	"github.com/Hilal-Ahmad786/Blogweb/internal/adapters/noop"
	"github.com/Hilal-Ahmad786/Blogweb/internal/catalog"
	"github.com/Hilal-Ahmad786/Blogweb/internal/commands"
	mdxcmd "github.com/Hilal-Ahmad786/Blogweb/internal/commands/mdx"
	"github.com/Hilal-Ahmad786/Blogweb/internal/logging"
	"github.com/Hilal-Ahmad786/Blogweb/internal/logging/console"
	"github.com/Hilal-Ahmad786/Blogweb/internal/logging/gologger"
	"github.com/Hilal-Ahmad786/Blogweb/internal/mdx"
	"github.com/Hilal-Ahmad786/Blogweb/pkg/interfaces"
)

// ContentService exports the file-centric content pipeline.
type ContentService = *mdx.Service

// CatalogService exports the post catalog.
type CatalogService = *catalog.Service

// CommandHandlers exports the content command handlers.
type CommandHandlers = *mdxcmd.HandlerSet

// Option overrides a dependency New would otherwise build from Config.
type Option func(*Module)

// WithLoggerProvider replaces the provider selected by Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.loggerProvider = provider
	}
}

// WithCache replaces the processed-content cache.
func WithCache(provider interfaces.CacheProvider) Option {
	return func(m *Module) {
		m.cache = provider
	}
}

// WithFS serves documents from filesystem instead of Config.Content.Dir.
func WithFS(filesystem fs.FS) Option {
	return func(m *Module) {
		m.fs = filesystem
	}
}

// WithBunDB stores the catalog in db. The caller keeps ownership of db.
func WithBunDB(db *bun.DB) Option {
	return func(m *Module) {
		m.db = db
	}
}

// WithCommandRegistry registers the command handlers with reg.
func WithCommandRegistry(reg commands.CommandRegistry) Option {
	return func(m *Module) {
		m.registry = reg
	}
}

// WithCommandOptions forwards options to the command registration.
func WithCommandOptions(opts ...mdxcmd.Option) Option {
	return func(m *Module) {
		m.commandOpts = append(m.commandOpts, opts...)
	}
}

// Module is the top level blog runtime facade.
type Module struct {
	cfg Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger
	cache          interfaces.CacheProvider
	fs             fs.FS
	db             *bun.DB
	ownsDB         bool
	registry       commands.CommandRegistry
	commandOpts    []mdxcmd.Option

	content  *mdx.Service
	catalog  *catalog.Service
	handlers *mdxcmd.HandlerSet
}

// New validates cfg and wires the content pipeline, the catalog and the
// command handlers.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if m.loggerProvider == nil {
		provider, err := newLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		m.loggerProvider = provider
	}
	m.logger = logging.ModuleLogger(m.loggerProvider, "blog")

	if m.cache == nil {
		m.cache = newCache(cfg.Cache)
	}

	if err := m.configureContent(); err != nil {
		return nil, err
	}
	if err := m.configureCatalog(context.Background()); err != nil {
		return nil, err
	}

	handlers, err := mdxcmd.RegisterMDXCommands(m.registry, m.content, m.catalog, m.loggerProvider, m.commandOpts...)
	if err != nil {
		m.Close()
		return nil, err
	}
	m.handlers = handlers

	m.logger.Debug("blog.module.ready",
		"content_dir", cfg.Content.Dir,
		"catalog_driver", catalogDriver(cfg.Catalog),
		"cache_enabled", cfg.Cache.Enabled,
	)
	return m, nil
}

func (m *Module) configureContent() error {
	mdxLogger := logging.MDXLogger(m.loggerProvider)
	mdxCfg := m.cfg.MDX

	stages := mdxCfg.Stages
	if stages == nil {
		stages = mdx.DefaultStages()
	}
	renderer := mdx.NewGoldmarkRenderer(mdx.RendererConfig{
		Stages:           stages,
		HardWraps:        mdxCfg.HardWraps,
		Unsafe:           mdxCfg.Unsafe,
		UniqueHeadingIDs: mdxCfg.UniqueHeadingIDs,
		WordsPerMinute:   mdxCfg.WordsPerMinute,
		Logger:           mdxLogger,
	})
	processor := mdx.NewProcessor(
		mdx.WithRenderer(renderer),
		mdx.WithCache(m.cache, m.cfg.Cache.TTL),
		mdx.WithProcessorLogger(mdxLogger),
		mdx.WithWordsPerMinute(mdxCfg.WordsPerMinute),
		mdx.WithUniqueHeadingIDs(mdxCfg.UniqueHeadingIDs),
	)

	service, err := mdx.NewService(mdx.Config{
		BasePath:         m.cfg.Content.Dir,
		Patterns:         m.cfg.Content.Patterns,
		Recursive:        m.cfg.Content.Recursive,
		FrontmatterMode:  mdx.FrontmatterMode(strings.ToLower(strings.TrimSpace(mdxCfg.FrontmatterMode))),
		Workers:          m.cfg.Content.Workers,
		TOCMaxLevel:      mdxCfg.TOCMaxLevel,
		ExcerptLength:    mdxCfg.ExcerptLength,
		ExcerptSeparator: mdxCfg.ExcerptSeparator,
		FS:               m.fs,
		Logger:           mdxLogger,
	}, processor)
	if err != nil {
		return fmt.Errorf("blog: configure content: %w", err)
	}
	m.content = service
	return nil
}

func (m *Module) configureCatalog(ctx context.Context) error {
	var repo catalog.Repository
	switch catalogDriver(m.cfg.Catalog) {
	case "sqlite":
		if m.db == nil {
			sqldb, err := sql.Open("sqlite3", m.cfg.Catalog.DSN)
			if err != nil {
				return fmt.Errorf("blog: open catalog database: %w", err)
			}
			m.db = bun.NewDB(sqldb, sqlitedialect.New())
			m.ownsDB = true
		}
		bunRepo := catalog.NewBunRepository(m.db)
		if err := bunRepo.Migrate(ctx); err != nil {
			m.Close()
			return fmt.Errorf("blog: migrate catalog: %w", err)
		}
		repo = bunRepo
	default:
		repo = catalog.NewMemoryRepository()
	}

	m.catalog = catalog.NewService(repo, catalog.Config{
		IncludeDrafts: m.cfg.Catalog.IncludeDrafts,
		Prune:         m.cfg.Catalog.Prune,
		Logger:        logging.CatalogLogger(m.loggerProvider),
	})
	return nil
}

// Config returns the validated configuration the module was built from.
func (m *Module) Config() Config {
	return m.cfg
}

// Content returns the content pipeline service.
func (m *Module) Content() ContentService {
	return m.content
}

// Catalog returns the post catalog service.
func (m *Module) Catalog() CatalogService {
	return m.catalog
}

// Commands returns the content command handlers.
func (m *Module) Commands() CommandHandlers {
	return m.handlers
}

// LoggerProvider returns the provider every module logger is drawn from.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.loggerProvider
}

// Logger returns the root module logger.
func (m *Module) Logger() interfaces.Logger {
	return m.logger
}

// Close releases the catalog database when the module opened it.
func (m *Module) Close() error {
	if m == nil || m.db == nil || !m.ownsDB {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	if err != nil && !errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("blog: close catalog database: %w", err)
	}
	return nil
}

func newLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return nil, fmt.Errorf("blog: configure logging: %w", err)
		}
		return provider, nil
	default:
		opts := console.Options{Writer: os.Stderr}
		if level, ok := console.ParseLevel(cfg.Level); ok {
			opts.MinLevel = &level
		}
		return console.NewProvider(opts), nil
	}
}

func newCache(cfg CacheConfig) interfaces.CacheProvider {
	if !cfg.Enabled {
		return noop.Cache()
	}
	return cache.New(cache.Config{
		Capacity: cfg.Capacity,
		TTL:      cfg.TTL,
	})
}

func catalogDriver(cfg CatalogConfig) string {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		return "memory"
	}
	return driver
}
