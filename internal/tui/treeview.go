package tui

import (
	"strings"

	"github.com/soyuz43/jsast-go/internal/outline"
	"github.com/soyuz43/jsast-go/internal/utils"
)

type treeRow struct {
	node  *outline.DisplayNode
	depth int
}

// TreeView is a collapsible outline widget. The root starts expanded and
// every other node collapsed.
type TreeView struct {
	root     *outline.DisplayNode
	expanded map[*outline.DisplayNode]bool
	parents  map[*outline.DisplayNode]*outline.DisplayNode
	rows     []treeRow

	cursor int
	offset int
	width  int
	height int
}

// NewTreeView returns an empty tree view.
func NewTreeView() TreeView {
	return TreeView{
		expanded: map[*outline.DisplayNode]bool{},
		parents:  map[*outline.DisplayNode]*outline.DisplayNode{},
	}
}

// SetRoot replaces the whole tree. A nil root empties the view.
func (t *TreeView) SetRoot(root *outline.DisplayNode) {
	t.root = root
	t.expanded = map[*outline.DisplayNode]bool{}
	t.parents = map[*outline.DisplayNode]*outline.DisplayNode{}
	t.cursor, t.offset = 0, 0
	if root != nil {
		t.expanded[root] = true
		root.Walk(func(n *outline.DisplayNode, _ int) bool {
			for _, c := range n.Children {
				t.parents[c] = n
			}
			return true
		})
	}
	t.rebuild()
}

// SetSize sets the visible area in cells.
func (t *TreeView) SetSize(width, height int) {
	t.width, t.height = width, height
	t.scroll()
}

// Len returns the number of visible rows.
func (t TreeView) Len() int { return len(t.rows) }

// Selected returns the node under the cursor.
func (t TreeView) Selected() *outline.DisplayNode {
	if t.cursor < 0 || t.cursor >= len(t.rows) {
		return nil
	}
	return t.rows[t.cursor].node
}

// IsExpanded reports whether n shows its children.
func (t TreeView) IsExpanded(n *outline.DisplayNode) bool { return t.expanded[n] }

func (t *TreeView) MoveUp(n int)   { t.moveTo(t.cursor - n) }
func (t *TreeView) MoveDown(n int) { t.moveTo(t.cursor + n) }
func (t *TreeView) Home()          { t.moveTo(0) }
func (t *TreeView) End()           { t.moveTo(len(t.rows) - 1) }

// Toggle expands or collapses the selected node.
func (t *TreeView) Toggle() {
	n := t.Selected()
	if n == nil || len(n.Children) == 0 {
		return
	}
	t.expanded[n] = !t.expanded[n]
	t.rebuild()
}

// Expand opens the selected node, or steps into it when already open.
func (t *TreeView) Expand() {
	n := t.Selected()
	if n == nil || len(n.Children) == 0 {
		return
	}
	if t.expanded[n] {
		t.MoveDown(1)
		return
	}
	t.expanded[n] = true
	t.rebuild()
}

// Collapse closes the selected node, or jumps to its parent when it is
// already closed.
func (t *TreeView) Collapse() {
	n := t.Selected()
	if n == nil {
		return
	}
	if t.expanded[n] && len(n.Children) > 0 {
		t.expanded[n] = false
		t.rebuild()
		return
	}
	parent, ok := t.parents[n]
	if !ok {
		return
	}
	for i, row := range t.rows {
		if row.node == parent {
			t.moveTo(i)
			return
		}
	}
}

// ExpandAll opens every node.
func (t *TreeView) ExpandAll() {
	if t.root == nil {
		return
	}
	t.root.Walk(func(n *outline.DisplayNode, _ int) bool {
		if len(n.Children) > 0 {
			t.expanded[n] = true
		}
		return true
	})
	t.rebuild()
}

// CollapseAll closes every node except the root.
func (t *TreeView) CollapseAll() {
	if t.root == nil {
		return
	}
	t.expanded = map[*outline.DisplayNode]bool{t.root: true}
	t.cursor = 0
	t.rebuild()
}

func (t *TreeView) moveTo(i int) {
	if i >= len(t.rows) {
		i = len(t.rows) - 1
	}
	if i < 0 {
		i = 0
	}
	t.cursor = i
	t.scroll()
}

func (t *TreeView) rebuild() {
	selected := t.Selected()
	t.rows = t.rows[:0]
	if t.root != nil {
		t.root.Walk(func(n *outline.DisplayNode, depth int) bool {
			t.rows = append(t.rows, treeRow{node: n, depth: depth})
			return t.expanded[n]
		})
	}
	for i, row := range t.rows {
		if row.node == selected {
			t.cursor = i
			break
		}
	}
	t.moveTo(t.cursor)
}

// scroll keeps the cursor inside the visible window.
func (t *TreeView) scroll() {
	if t.height <= 0 {
		return
	}
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+t.height {
		t.offset = t.cursor - t.height + 1
	}
	if maxOffset := len(t.rows) - t.height; t.offset > maxOffset {
		t.offset = maxOffset
	}
	if t.offset < 0 {
		t.offset = 0
	}
}

func (t TreeView) View(focused bool) string {
	if t.root == nil {
		return dimStyle.Render("No AST yet. Press F5 to parse.")
	}

	end := len(t.rows)
	if t.height > 0 && t.offset+t.height < end {
		end = t.offset + t.height
	}

	lines := make([]string, 0, end-t.offset)
	for i := t.offset; i < end; i++ {
		row := t.rows[i]
		marker := "  "
		if len(row.node.Children) > 0 {
			if t.expanded[row.node] {
				marker = "▾ "
			} else {
				marker = "▸ "
			}
		}
		indent := strings.Repeat("  ", row.depth)
		label := row.node.Label
		if t.width > 0 {
			label = utils.Truncate(label, t.width-len(indent)-2)
		}
		if i == t.cursor && focused {
			label = selectedRowStyle.Render(label)
		} else if i == t.cursor {
			label = activeTabStyle.Render(label)
		}
		lines = append(lines, indent+markerStyle.Render(marker)+label)
	}
	return strings.Join(lines, "\n")
}
