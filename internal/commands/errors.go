package commands

import (
	"context"
	"errors"

	"github.com/Hilal-Ahmad786/Blogweb/internal/catalog"
	"github.com/Hilal-Ahmad786/Blogweb/internal/mdx"
	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
)

const (
	codeMessageInvalid    = "BLOG_COMMAND_INVALID"
	codeCanceled          = "BLOG_COMMAND_CANCELED"
	codeDeadline          = "BLOG_COMMAND_DEADLINE"
	codeContext           = "BLOG_COMMAND_CONTEXT"
	codeFailed            = "BLOG_COMMAND_FAILED"
	codeContentProcessing = "BLOG_CONTENT_PROCESSING_FAILED"
	codePostNotFound      = "BLOG_POST_NOT_FOUND"
)

// ErrorClass maps a sentinel error returned by a command to the category and
// text code reported to callers.
type ErrorClass struct {
	Target   error
	Category goerrors.Category
	TextCode string
	Message  string
}

// contentErrorClasses apply to every handler. Handler specific classes are
// consulted first.
var contentErrorClasses = []ErrorClass{
	{
		Target:   mdx.ErrContentProcessing,
		Category: goerrors.CategoryInternal,
		TextCode: codeContentProcessing,
		Message:  "content processing failed",
	},
	{
		Target:   catalog.ErrPostNotFound,
		Category: goerrors.CategoryNotFound,
		TextCode: codePostNotFound,
		Message:  "post not found",
	},
}

// WithErrorClasses registers sentinel mappings for errors returned by the
// handler function.
func WithErrorClasses[T command.Message](classes ...ErrorClass) HandlerOption[T] {
	return func(h *Handler[T]) {
		for _, class := range classes {
			if class.Target != nil {
				h.classes = append(h.classes, class)
			}
		}
	}
}

func classify(err error, classes []ErrorClass) (ErrorClass, bool) {
	for _, set := range [][]ErrorClass{classes, contentErrorClasses} {
		for _, class := range set {
			if errors.Is(err, class.Target) {
				return class, true
			}
		}
	}
	return ErrorClass{}, false
}

// newClassified builds a fresh error so the class wins over categories
// carried by nested go-errors values.
func newClassified(err error, category goerrors.Category, code, message string) error {
	out := goerrors.New(message, category).WithTextCode(code)
	out.Source = err
	return out
}

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid command message").
		WithTextCode(codeMessageInvalid)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return newClassified(err, goerrors.CategoryCommand, codeCanceled, "command cancelled")
	case errors.Is(err, context.DeadlineExceeded):
		return newClassified(err, goerrors.CategoryCommand, codeDeadline, "command deadline exceeded")
	default:
		return newClassified(err, goerrors.CategoryCommand, codeContext, "command context error")
	}
}

func wrapExecuteError(err error, classes []ErrorClass) error {
	if err == nil {
		return nil
	}
	if class, ok := classify(err, classes); ok {
		return newClassified(err, class.Category, class.TextCode, class.Message)
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return newClassified(err, goerrors.CategoryCommand, codeFailed, "command failed")
}

// errorCode returns the text code and category of a go-errors value.
func errorCode(err error) (string, goerrors.Category) {
	var typed *goerrors.Error
	if goerrors.As(err, &typed) {
		return typed.TextCode, typed.Category
	}
	return "", ""
}
