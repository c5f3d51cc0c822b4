package mdx

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"golang.org/x/net/html"
)

// Node is the view of a parsed document that heading extraction works on.
// MarkdownTree and ElementTree adapt the two tree shapes the pipeline
// produces so both share one traversal.
type Node interface {
	// HeadingLevel reports 1-6 for heading nodes and 0 for anything else.
	HeadingLevel() int
	// Text returns the literal value of a text leaf.
	Text() (string, bool)
	Children() []Node
}

// MarkdownTree adapts a goldmark syntax tree. source must be the bytes the
// tree was parsed from.
func MarkdownTree(root ast.Node, source []byte) Node {
	return markdownNode{node: root, source: source}
}

type markdownNode struct {
	node   ast.Node
	source []byte
}

func (n markdownNode) HeadingLevel() int {
	if heading, ok := n.node.(*ast.Heading); ok {
		return heading.Level
	}
	return 0
}

func (n markdownNode) Text() (string, bool) {
	switch v := n.node.(type) {
	case *ast.Text:
		value := string(v.Segment.Value(n.source))
		if v.SoftLineBreak() || v.HardLineBreak() {
			value += " "
		}
		return value, true
	case *ast.String:
		return string(v.Value), true
	case *ast.AutoLink:
		return string(v.Label(n.source)), true
	default:
		return "", false
	}
}

func (n markdownNode) Children() []Node {
	var children []Node
	for child := n.node.FirstChild(); child != nil; child = child.NextSibling() {
		children = append(children, markdownNode{node: child, source: n.source})
	}
	return children
}

// ElementTree adapts a rendered HTML element tree; h1 to h6 are headings.
func ElementTree(root *html.Node) Node {
	return elementNode{node: root}
}

type elementNode struct {
	node *html.Node
}

func (n elementNode) HeadingLevel() int {
	if n.node.Type != html.ElementNode {
		return 0
	}
	tag := n.node.Data
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

func (n elementNode) Text() (string, bool) {
	if n.node.Type == html.TextNode {
		return n.node.Data, true
	}
	return "", false
}

func (n elementNode) Children() []Node {
	var children []Node
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		children = append(children, elementNode{node: child})
	}
	return children
}

// TextContent concatenates every text leaf below n in document order with
// no separator.
func TextContent(n Node) string {
	var b strings.Builder
	var walk func(Node)
	walk = func(current Node) {
		if text, ok := current.Text(); ok {
			b.WriteString(text)
			return
		}
		for _, child := range current.Children() {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}
