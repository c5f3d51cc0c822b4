package mdxcmd

import "testing"

func TestValidateDirectoryCommandValidateRequiresDirectory(t *testing.T) {
	cmd := ValidateDirectoryCommand{}
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected error when directory missing")
	}

	cmd.Directory = "   "
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected error when directory is blank")
	}

	cmd.Directory = "content/posts"
	if err := cmd.Validate(); err != nil {
		t.Fatalf("unexpected error when directory provided: %v", err)
	}
}

func TestIndexDirectoryCommandValidateRequiresDirectory(t *testing.T) {
	cmd := IndexDirectoryCommand{DryRun: true}
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected error when directory missing")
	}

	cmd.Directory = "."
	if err := cmd.Validate(); err != nil {
		t.Fatalf("unexpected error when directory provided: %v", err)
	}
}

func TestMessageTypes(t *testing.T) {
	if got := (ValidateDirectoryCommand{}).Type(); got != "blog.mdx.validate_directory" {
		t.Fatalf("unexpected validate type %q", got)
	}
	if got := (IndexDirectoryCommand{}).Type(); got != "blog.mdx.index_directory" {
		t.Fatalf("unexpected index type %q", got)
	}
}
