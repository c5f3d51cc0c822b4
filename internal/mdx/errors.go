package mdx

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const contentProcessingCode = "MDX_PROCESSING_FAILED"

// ErrContentProcessing is the single failure kind reported when a document
// body cannot be compiled. It never carries the renderer's own error.
var ErrContentProcessing = errors.New("mdx: failed to process MDX content")

func contentProcessingError() error {
	return goerrors.Wrap(ErrContentProcessing, goerrors.CategoryInternal, "failed to process MDX content").
		WithTextCode(contentProcessingCode)
}
