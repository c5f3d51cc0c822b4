package mdxcmd

import (
	"context"
	"errors"

	"github.com/Hilal-Ahmad786/Blogweb/internal/commands"
	"github.com/Hilal-Ahmad786/Blogweb/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// HandlerSet groups the handlers produced by RegisterMDXCommands.
type HandlerSet struct {
	Validate *ValidateDirectoryHandler
	Index    *IndexDirectoryHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	report              ReportFunc
	validateHandlerOpts []commands.HandlerOption[ValidateDirectoryCommand]
	indexHandlerOpts    []commands.HandlerOption[IndexDirectoryCommand]
}

// WithReporter forwards per-document validation results to fn.
func WithReporter(fn ReportFunc) Option {
	return func(cfg *options) {
		cfg.report = fn
	}
}

// WithValidateHandlerOptions forwards options to the ValidateDirectoryHandler constructor.
func WithValidateHandlerOptions(opts ...commands.HandlerOption[ValidateDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.validateHandlerOpts = append(cfg.validateHandlerOpts, opts...)
	}
}

// WithIndexHandlerOptions forwards options to the IndexDirectoryHandler constructor.
func WithIndexHandlerOptions(opts ...commands.HandlerOption[IndexDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.indexHandlerOpts = append(cfg.indexHandlerOpts, opts...)
	}
}

// RegisterMDXCommands builds the content command handlers and registers them
// with reg when it is not nil.
func RegisterMDXCommands(reg commands.CommandRegistry, service ContentService, posts Catalog, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("mdx command registration: service is nil")
	}
	if posts == nil {
		return nil, errors.New("mdx command registration: catalog is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "mdx")

	validateHandler := NewValidateDirectoryHandler(service, logger, cfg.report, cfg.validateHandlerOpts...)
	indexHandler := NewIndexDirectoryHandler(service, posts, logger, cfg.indexHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(validateHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(indexHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Validate: validateHandler,
		Index:    indexHandler,
	}, nil
}

// RegisterIndexCron schedules handler with msg using a background context.
func RegisterIndexCron(reg commands.CronRegistrar, handler *IndexDirectoryHandler, cfg command.HandlerConfig, msg IndexDirectoryCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
