// Package mdx turns Markdown documents with embedded components into
// processed article content: frontmatter, reading metrics, heading outline,
// table of contents, excerpt and structural validation. Compilation of the
// body is delegated to an interfaces.Renderer; GoldmarkRenderer is the
// default implementation.
//
// The package-level functions are pure. Processor and Service may be shared
// between goroutines.
package mdx
