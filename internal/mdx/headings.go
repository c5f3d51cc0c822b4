package mdx

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"

	"github.com/Hilal-Ahmad786/Blogweb/pkg/interfaces"
)

// ExtractHeadings walks root in document order and records every heading,
// however deeply it is nested. ids may be nil, in which case equal titles
// share an id.
func ExtractHeadings(root Node, ids *HeadingIDs) []interfaces.Heading {
	headings := []interfaces.Heading{}
	var walk func(Node)
	walk = func(n Node) {
		if level := n.HeadingLevel(); level > 0 {
			title := strings.TrimSpace(TextContent(n))
			headings = append(headings, interfaces.Heading{
				ID:    ids.Next(title),
				Title: title,
				Level: level,
			})
			return
		}
		for _, child := range n.Children() {
			walk(child)
		}
	}
	if root != nil {
		walk(root)
	}
	return headings
}

// ExtractHeadingsFromMarkdown parses body as GitHub flavoured Markdown and
// returns its headings.
func ExtractHeadingsFromMarkdown(body []byte, unique bool) []interfaces.Heading {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(body))
	return ExtractHeadings(MarkdownTree(doc, body), NewHeadingIDs(unique))
}

// ExtractHeadingsFromHTML parses rendered HTML and returns its h1-h6
// headings.
func ExtractHeadingsFromHTML(document []byte, unique bool) ([]interfaces.Heading, error) {
	root, err := html.Parse(bytes.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("mdx: parse html: %w", err)
	}
	return ExtractHeadings(ElementTree(root), NewHeadingIDs(unique)), nil
}
