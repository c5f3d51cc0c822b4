package mdxcmd

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/Hilal-Ahmad786/Blogweb/internal/catalog"
	"github.com/Hilal-Ahmad786/Blogweb/internal/commands"
	"github.com/Hilal-Ahmad786/Blogweb/internal/logging"
	"github.com/Hilal-Ahmad786/Blogweb/pkg/interfaces"
	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
)

const (
	validateOperation = "mdx.validate_directory"
	indexOperation    = "mdx.index_directory"
)

// ErrInvalidDocuments is returned when a validation run finds at least one
// invalid document.
var ErrInvalidDocuments = errors.New("mdx command: invalid documents")

var invalidDocumentsClass = commands.ErrorClass{
	Target:   ErrInvalidDocuments,
	Category: goerrors.CategoryValidation,
	TextCode: "MDX_INVALID_DOCUMENTS",
	Message:  "directory contains invalid documents",
}

var (
	_ command.Commander[ValidateDirectoryCommand] = (*ValidateDirectoryHandler)(nil)
	_ command.Commander[IndexDirectoryCommand]    = (*IndexDirectoryHandler)(nil)
)

// ContentService is the part of the content pipeline the handlers drive.
type ContentService interface {
	ProcessDirectory(ctx context.Context, dir string) ([]*interfaces.Post, error)
	ValidateDirectory(ctx context.Context, dir string) (map[string]interfaces.ValidationResult, error)
}

// Catalog stores post summaries.
type Catalog interface {
	Index(ctx context.Context, posts []*interfaces.Post, opts ...catalog.IndexOption) (catalog.IndexResult, error)
}

// ReportFunc receives each validation result, in path order.
type ReportFunc func(path string, result interfaces.ValidationResult)

// ValidateDirectoryHandler runs directory validation through the shared
// command handler.
type ValidateDirectoryHandler struct {
	inner *commands.Handler[ValidateDirectoryCommand]
}

// NewValidateDirectoryHandler creates a handler bound to service. report
// may be nil.
func NewValidateDirectoryHandler(service ContentService, logger interfaces.Logger, report ReportFunc, opts ...commands.HandlerOption[ValidateDirectoryCommand]) *ValidateDirectoryHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ValidateDirectoryCommand) error {
		results, err := service.ValidateDirectory(ctx, msg.Directory)
		if err != nil && len(results) == 0 {
			return err
		}

		invalid := 0
		for _, path := range slices.Sorted(maps.Keys(results)) {
			result := results[path]
			if !result.IsValid {
				invalid++
				logging.WithDocumentContext(baseLogger, path, "", "validate").
					Warn("mdx.command.validate_directory.invalid", "errors", result.Errors)
			}
			if report != nil {
				report(path, result)
			}
		}

		logging.WithFields(baseLogger, map[string]any{
			"document_count": len(results),
			"invalid_count":  invalid,
		}).Info("mdx.command.validate_directory.completed")

		if invalid > 0 {
			return errors.Join(fmt.Errorf("%w: %d of %d", ErrInvalidDocuments, invalid, len(results)), err)
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[ValidateDirectoryCommand]{
		commands.WithLogger[ValidateDirectoryCommand](baseLogger),
		commands.WithOperation[ValidateDirectoryCommand](validateOperation),
		commands.WithErrorClasses[ValidateDirectoryCommand](invalidDocumentsClass),
		commands.WithMessageFields(func(msg ValidateDirectoryCommand) map[string]any {
			return map[string]any{"directory": msg.Directory}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ValidateDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ValidateDirectoryCommand].
func (h *ValidateDirectoryHandler) Execute(ctx context.Context, msg ValidateDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// IndexDirectoryHandler processes a directory and feeds the catalog.
type IndexDirectoryHandler struct {
	inner *commands.Handler[IndexDirectoryCommand]
}

// NewIndexDirectoryHandler creates a handler bound to service and posts.
// Posts that processed successfully are indexed even when others failed;
// the processing error is still returned.
func NewIndexDirectoryHandler(service ContentService, posts Catalog, logger interfaces.Logger, opts ...commands.HandlerOption[IndexDirectoryCommand]) *IndexDirectoryHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg IndexDirectoryCommand) error {
		processed, procErr := service.ProcessDirectory(ctx, msg.Directory)
		if procErr != nil && len(processed) == 0 {
			return procErr
		}

		fields := map[string]any{
			"processed_count": len(processed),
			"dry_run":         msg.DryRun,
			"include_drafts":  msg.IncludeDrafts,
		}
		if !msg.DryRun {
			result, err := posts.Index(ctx, processed, catalog.IncludeDrafts(msg.IncludeDrafts))
			if err != nil {
				return errors.Join(err, procErr)
			}
			fields["indexed_count"] = result.Indexed
			fields["skipped_count"] = result.Skipped
			fields["removed_count"] = result.Removed
		}
		logging.WithFields(baseLogger, fields).Info("mdx.command.index_directory.completed")
		return procErr
	}

	handlerOpts := []commands.HandlerOption[IndexDirectoryCommand]{
		commands.WithLogger[IndexDirectoryCommand](baseLogger),
		commands.WithOperation[IndexDirectoryCommand](indexOperation),
		commands.WithMessageFields(func(msg IndexDirectoryCommand) map[string]any {
			fields := map[string]any{"directory": msg.Directory}
			if msg.IncludeDrafts {
				fields["include_drafts"] = true
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &IndexDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[IndexDirectoryCommand].
func (h *IndexDirectoryHandler) Execute(ctx context.Context, msg IndexDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
