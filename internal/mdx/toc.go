package mdx

import "github.com/Hilal-Ahmad786/Blogweb/pkg/interfaces"

// DefaultTOCMaxLevel is the deepest heading level kept in a table of contents.
const DefaultTOCMaxLevel = 3

// GenerateTableOfContents nests an ordered heading list into a forest.
// Headings deeper than maxLevel are dropped before nesting. A heading
// becomes the child of the closest preceding heading with a lower level, or
// a root when there is none.
func GenerateTableOfContents(headings []interfaces.Heading, maxLevel int) []*interfaces.TOCNode {
	if maxLevel <= 0 {
		maxLevel = DefaultTOCMaxLevel
	}

	roots := []*interfaces.TOCNode{}
	var stack []*interfaces.TOCNode

	for _, heading := range headings {
		if heading.Level > maxLevel {
			continue
		}
		node := &interfaces.TOCNode{Heading: heading, Children: []*interfaces.TOCNode{}}

		for len(stack) > 0 && stack[len(stack)-1].Level >= heading.Level {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
	}
	return roots
}

// FlattenTableOfContents lists the nodes of a forest depth first.
func FlattenTableOfContents(roots []*interfaces.TOCNode) []interfaces.Heading {
	var out []interfaces.Heading
	var visit func([]*interfaces.TOCNode)
	visit = func(nodes []*interfaces.TOCNode) {
		for _, node := range nodes {
			out = append(out, node.Heading)
			visit(node.Children)
		}
	}
	visit(roots)
	return out
}
