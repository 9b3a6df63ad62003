package outline

import (
	"io"
	"strings"
)

// RenderOptions controls the text rendering of an outline.
type RenderOptions struct {
	// MaxDepth limits how many levels below the root are printed. Zero means no limit.
	MaxDepth int
	// ASCII draws guides with plain ASCII instead of box-drawing characters.
	ASCII bool
}

type guides struct {
	branch, last, pipe, space string
}

var (
	boxGuides   = guides{branch: "├── ", last: "└── ", pipe: "│   ", space: "    "}
	asciiGuides = guides{branch: "|-- ", last: "`-- ", pipe: "|   ", space: "    "}
)

// Render writes root and its descendants as an indented tree.
func Render(w io.Writer, root *DisplayNode, opts RenderOptions) error {
	if root == nil {
		return nil
	}
	g := boxGuides
	if opts.ASCII {
		g = asciiGuides
	}

	var sb strings.Builder
	sb.WriteString(root.Label)
	sb.WriteByte('\n')
	renderChildren(&sb, root.Children, "", 1, opts.MaxDepth, g)

	_, err := io.WriteString(w, sb.String())
	return err
}

func renderChildren(sb *strings.Builder, children []*DisplayNode, prefix string, depth, maxDepth int, g guides) {
	if maxDepth > 0 && depth > maxDepth {
		return
	}
	for i, child := range children {
		last := i == len(children)-1
		connector, next := g.branch, g.pipe
		if last {
			connector, next = g.last, g.space
		}
		sb.WriteString(prefix)
		sb.WriteString(connector)
		sb.WriteString(child.Label)
		sb.WriteByte('\n')
		renderChildren(sb, child.Children, prefix+next, depth+1, maxDepth, g)
	}
}

// String renders the node with default options.
func (n *DisplayNode) String() string {
	var sb strings.Builder
	_ = Render(&sb, n, RenderOptions{})
	return sb.String()
}

// Walk visits n and its descendants depth first. Returning false from fn skips
// the node's children.
func (n *DisplayNode) Walk(fn func(node *DisplayNode, depth int) bool) {
	n.walk(fn, 0)
}

func (n *DisplayNode) walk(fn func(node *DisplayNode, depth int) bool, depth int) {
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *DisplayNode) Count() int {
	count := 0
	n.Walk(func(*DisplayNode, int) bool {
		count++
		return true
	})
	return count
}

// Equal reports whether two outlines have the same labels and shape.
func Equal(a, b *DisplayNode) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Label != b.Label || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
