package mdx

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Hilal-Ahmad786/Blogweb/pkg/interfaces"
)

// Messages reported by the validator.
const (
	MsgFrontmatterRequired = "Frontmatter is required"
	MsgTitleRequired       = "Title is required in frontmatter"
	MsgPublishedAtRequired = "Published date is required in frontmatter"
	MsgTagsRequired        = "At least one tag is required in frontmatter"
	MsgMismatchedBraces    = "Mismatched curly braces in MDX content"
	MsgInvalidSyntax       = "Invalid MDX syntax"
)

// Validator checks documents for required metadata and balanced braces.
type Validator struct {
	Mode FrontmatterMode
}

// ValidateMDX validates content with the compat frontmatter grammar.
func ValidateMDX(content string) interfaces.ValidationResult {
	return Validator{}.Validate(content)
}

// Validate never fails: every problem, including an unexpected panic while
// inspecting content, is reported through the result.
func (v Validator) Validate(content string) (result interfaces.ValidationResult) {
	defer func() {
		if recover() != nil {
			result = interfaces.ValidationResult{IsValid: false, Errors: []string{MsgInvalidSyntax}}
		}
	}()

	errs := []string{}

	fm, _ := v.Mode.Parse(content)
	if fm == nil {
		errs = append(errs, MsgFrontmatterRequired)
	} else {
		errs = append(errs, checkFrontmatter(fm)...)
	}

	// a count, not a parse: nesting order is not checked
	if strings.Count(content, "{") != strings.Count(content, "}") {
		errs = append(errs, MsgMismatchedBraces)
	}

	return interfaces.ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// checkFrontmatter is swapped in tests.
var checkFrontmatter = frontmatterErrors

func frontmatterErrors(fm *interfaces.Frontmatter) []string {
	checks := []struct {
		value   any
		message string
	}{
		{strings.TrimSpace(fm.Title), MsgTitleRequired},
		{strings.TrimSpace(fm.PublishedAt), MsgPublishedAtRequired},
		{fm.Tags, MsgTagsRequired},
	}

	var errs []string
	for _, check := range checks {
		if err := validation.Validate(check.value, validation.Required); err != nil {
			errs = append(errs, check.message)
		}
	}
	return errs
}
