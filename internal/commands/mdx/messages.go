package mdxcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	validateDirectoryMessageType = "blog.mdx.validate_directory"
	indexDirectoryMessageType    = "blog.mdx.index_directory"
)

// ValidateDirectoryCommand checks every content document under Directory
// for structural problems.
type ValidateDirectoryCommand struct {
	// Directory is resolved against the content service base path.
	Directory string `json:"directory"`
}

// Type implements command.Message.
func (ValidateDirectoryCommand) Type() string { return validateDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ValidateDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(directoryRule(validateDirectoryMessageType))),
	)
}

// IndexDirectoryCommand processes every document under Directory and
// stores the resulting post summaries in the catalog.
type IndexDirectoryCommand struct {
	// Directory is resolved against the content service base path.
	Directory string `json:"directory"`
	// IncludeDrafts indexes documents marked as drafts.
	IncludeDrafts bool `json:"include_drafts,omitempty"`
	// DryRun processes the directory without touching the catalog.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (IndexDirectoryCommand) Type() string { return indexDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd IndexDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(directoryRule(indexDirectoryMessageType))),
	)
}

func directoryRule(messageType string) validation.RuleFunc {
	return func(value any) error {
		if strings.TrimSpace(value.(string)) == "" {
			return validation.NewError(messageType+".directory_required", "directory is required")
		}
		return nil
	}
}
