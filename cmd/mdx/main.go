package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	blog "github.com/Hilal-Ahmad786/Blogweb"
	"github.com/Hilal-Ahmad786/Blogweb/internal/catalog"
	mdxcmd "github.com/Hilal-Ahmad786/Blogweb/internal/commands/mdx"
	"github.com/Hilal-Ahmad786/Blogweb/internal/mdx"
	"github.com/Hilal-Ahmad786/Blogweb/pkg/interfaces"
)

var moduleBuilder = blog.New

const usage = `usage: mdx <command> [flags]

commands:
  preview   process one document and print its metadata
  validate  validate every document under a directory
  index     process a directory into the post catalog
`

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "preview":
		err = runPreview(ctx, args[1:], stdout, stderr)
	case "validate":
		err = runValidate(ctx, args[1:], stdout, stderr)
	case "index":
		err = runIndex(ctx, args[1:], stdout, stderr)
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			color.New(color.FgRed).Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

type commonFlags struct {
	configPath *string
	contentDir *string
	workers    *int
	strict     *bool
	logLevel   *string
}

func registerCommon(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		configPath: fs.String("config", "", "Path to a YAML configuration file"),
		contentDir: fs.String("content-dir", "", "Content root (overrides the configuration)"),
		workers:    fs.Int("workers", 0, "Documents processed concurrently (0 keeps the configured value)"),
		strict:     fs.Bool("strict", false, "Parse frontmatter with the YAML/TOML/JSON parser"),
		logLevel:   fs.String("log-level", "", "Log level (overrides the configuration)"),
	}
}

func (c commonFlags) config() (blog.Config, error) {
	cfg := blog.DefaultConfig()
	if path := strings.TrimSpace(*c.configPath); path != "" {
		loaded, err := blog.LoadConfig(path)
		if err != nil {
			return blog.Config{}, err
		}
		cfg = loaded
	}
	if dir := strings.TrimSpace(*c.contentDir); dir != "" {
		cfg.Content.Dir = dir
	}
	if *c.workers > 0 {
		cfg.Content.Workers = *c.workers
	}
	if *c.strict {
		cfg.MDX.FrontmatterMode = string(mdx.FrontmatterStrict)
	}
	if level := strings.TrimSpace(*c.logLevel); level != "" {
		cfg.Logging.Level = level
	} else if strings.TrimSpace(*c.configPath) == "" {
		cfg.Logging.Level = "warn"
	}
	return cfg, nil
}

func runPreview(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	common := registerCommon(fs)
	filePath := fs.String("file", "", "Document to preview (relative to the content root)")
	renderHTML := fs.Bool("html", false, "Print the compiled HTML")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *filePath == "" && fs.NArg() > 0 {
		*filePath = fs.Arg(0)
	}
	if *filePath == "" {
		return errors.New("--file is required")
	}

	cfg, err := common.config()
	if err != nil {
		return err
	}
	module, err := moduleBuilder(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	doc, err := module.Content().Load(ctx, *filePath)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	post, err := module.Content().Process(ctx, doc)
	if err != nil {
		return fmt.Errorf("process document: %w", err)
	}

	heading := color.New(color.FgCyan, color.Bold)
	heading.Fprintln(stdout, "Document")
	fmt.Fprintf(stdout, "Path: %s\nSlug: %s\nChecksum: %s\n", doc.FilePath, doc.Slug, post.Content.Checksum)
	fmt.Fprintf(stdout, "Words: %d\nReading time: %d min\n\n", post.Content.WordCount, post.Content.ReadingTime)

	if doc.Frontmatter != nil {
		raw, err := json.MarshalIndent(doc.Frontmatter.Raw, "", "  ")
		if err == nil {
			heading.Fprintln(stdout, "Frontmatter")
			fmt.Fprintf(stdout, "%s\n\n", raw)
		}
	} else {
		color.New(color.FgYellow).Fprint(stdout, "No frontmatter\n\n")
	}

	if result := module.Content().Validate(doc); !result.IsValid {
		color.New(color.FgYellow).Fprintf(stdout, "Validation: %s\n\n", strings.Join(result.Errors, "; "))
	}

	heading.Fprintln(stdout, "Table of contents")
	printTOC(stdout, post.TOC, 0)
	fmt.Fprintln(stdout)

	heading.Fprintln(stdout, "Excerpt")
	fmt.Fprintf(stdout, "%s\n", post.Excerpt)

	if *renderHTML {
		fmt.Fprintln(stdout)
		heading.Fprintln(stdout, "HTML")
		fmt.Fprintf(stdout, "%s\n", post.Content.Compiled)
	}
	return nil
}

func printTOC(w io.Writer, nodes []*interfaces.TOCNode, depth int) {
	for _, node := range nodes {
		fmt.Fprintf(w, "%s- %s (#%s)\n", strings.Repeat("  ", depth), node.Title, node.ID)
		printTOC(w, node.Children, depth+1)
	}
}

func runValidate(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	common := registerCommon(fs)
	dir := fs.String("dir", ".", "Directory to validate (relative to the content root)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.config()
	if err != nil {
		return err
	}
	module, err := moduleBuilder(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	service, bar, err := withProgress(ctx, module.Content(), *dir, " Validating", stderr)
	if err != nil {
		return err
	}

	var invalid []string
	results := map[string]interfaces.ValidationResult{}
	handler := mdxcmd.NewValidateDirectoryHandler(service, module.Logger(), func(path string, result interfaces.ValidationResult) {
		results[path] = result
		if !result.IsValid {
			invalid = append(invalid, path)
		}
	})
	execErr := handler.Execute(ctx, mdxcmd.ValidateDirectoryCommand{Directory: *dir})
	bar.Finish()
	fmt.Fprintln(stderr)

	for _, path := range invalid {
		color.New(color.FgRed).Fprintf(stdout, "✗ %s\n", path)
		for _, msg := range results[path].Errors {
			fmt.Fprintf(stdout, "    %s\n", msg)
		}
	}
	if len(invalid) == 0 && execErr == nil {
		color.New(color.FgGreen).Fprintf(stdout, "✓ %d documents valid\n", len(results))
		return nil
	}
	if len(invalid) > 0 {
		color.New(color.FgYellow).Fprintf(stdout, "%d of %d documents invalid\n", len(invalid), len(results))
	}
	return execErr
}

func runIndex(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("index", flag.ContinueOnError)
	fs.SetOutput(stderr)
	common := registerCommon(fs)
	dir := fs.String("dir", ".", "Directory to index (relative to the content root)")
	drafts := fs.Bool("drafts", false, "Index and list draft posts")
	dryRun := fs.Bool("dry-run", false, "Process documents without touching the catalog")
	dsn := fs.String("db", "", "SQLite DSN for the catalog (defaults to the configured driver)")
	trending := fs.Int("trending", 10, "Number of trending tags to print")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.config()
	if err != nil {
		return err
	}
	if strings.TrimSpace(*dsn) != "" {
		cfg.Catalog.Driver = "sqlite"
		cfg.Catalog.DSN = *dsn
	}
	if *drafts {
		cfg.Catalog.IncludeDrafts = true
	}

	module, err := moduleBuilder(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	service, bar, err := withProgress(ctx, module.Content(), *dir, " Indexing", stderr)
	if err != nil {
		return err
	}
	handler := mdxcmd.NewIndexDirectoryHandler(service, module.Catalog(), module.Logger())
	execErr := handler.Execute(ctx, mdxcmd.IndexDirectoryCommand{
		Directory:     *dir,
		IncludeDrafts: *drafts,
		DryRun:        *dryRun,
	})
	bar.Finish()
	fmt.Fprintln(stderr)
	if execErr != nil && *dryRun {
		return execErr
	}
	if *dryRun {
		color.New(color.FgGreen).Fprintln(stdout, "✓ Dry run complete, catalog untouched")
		return nil
	}

	if err := printCatalog(ctx, stdout, module.Catalog(), *trending); err != nil {
		return errors.Join(err, execErr)
	}
	return execErr
}

func printCatalog(ctx context.Context, w io.Writer, posts *catalog.Service, trending int) error {
	listed, err := posts.Posts(ctx)
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(w, "✓ %d posts in catalog\n\n", len(listed))

	categories, err := posts.Categories(ctx)
	if err != nil {
		return err
	}
	heading := color.New(color.FgCyan, color.Bold)
	heading.Fprintln(w, "Categories")
	for _, category := range categories {
		fmt.Fprintf(w, "  %-24s %3d  /%s\n", category.Name, category.Count, category.Slug)
	}

	tags, err := posts.TrendingTags(ctx, trending)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	heading.Fprintln(w, "Trending tags")
	for _, tag := range tags {
		fmt.Fprintf(w, "  #%-23s %3d\n", tag.Name, tag.Count)
	}
	return nil
}

func withProgress(ctx context.Context, service *mdx.Service, dir, description string, w io.Writer) (*mdx.Service, *progressbar.ProgressBar, error) {
	paths, err := service.Discover(ctx, dir)
	if err != nil {
		return nil, nil, err
	}
	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("docs"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
	tracked := service.WithProgress(func(string, error) {
		_ = bar.Add(1)
	})
	return tracked, bar, nil
}
