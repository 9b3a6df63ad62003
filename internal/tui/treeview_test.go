package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyuz43/jsast-go/internal/outline"
)

func sampleTree() *outline.DisplayNode {
	return &outline.DisplayNode{Label: "Program (Program)", Children: []*outline.DisplayNode{
		{Label: "body [2 items]", Children: []*outline.DisplayNode{
			{Label: "[0] ExpressionStatement", Children: []*outline.DisplayNode{
				{Label: "expression (Literal): 1"},
			}},
			{Label: "[1] EmptyStatement"},
		}},
		{Label: "sourceType: script"},
	}}
}

func TestTreeViewStartsWithRootExpanded(t *testing.T) {
	tv := NewTreeView()
	tv.SetRoot(sampleTree())
	assert.Equal(t, 3, tv.Len())
	assert.True(t, tv.IsExpanded(tv.Selected()))

	view := tv.View(true)
	assert.Contains(t, view, "▾ Program (Program)")
	assert.Contains(t, view, "▸ body [2 items]")
	assert.Contains(t, view, "  sourceType: script")
}

func TestTreeViewExpandCollapseAll(t *testing.T) {
	tv := NewTreeView()
	tv.SetRoot(sampleTree())

	tv.ExpandAll()
	assert.Equal(t, 6, tv.Len())

	tv.End()
	assert.Equal(t, "sourceType: script", tv.Selected().Label)

	tv.CollapseAll()
	assert.Equal(t, 3, tv.Len())
	assert.Equal(t, "Program (Program)", tv.Selected().Label)
}

func TestTreeViewKeepsSelectionAcrossRebuild(t *testing.T) {
	tv := NewTreeView()
	tv.SetRoot(sampleTree())
	tv.MoveDown(2)
	require.Equal(t, "sourceType: script", tv.Selected().Label)

	tv.MoveUp(1)
	tv.Expand()
	assert.Equal(t, "body [2 items]", tv.Selected().Label)
	tv.MoveDown(10)
	assert.Equal(t, "sourceType: script", tv.Selected().Label, "cursor clamps to the last row")
}

func TestTreeViewScrollsWithCursor(t *testing.T) {
	tv := NewTreeView()
	tv.SetRoot(sampleTree())
	tv.ExpandAll()
	tv.SetSize(40, 2)

	tv.End()
	lines := strings.Split(tv.View(false), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "sourceType: script")

	tv.Home()
	lines = strings.Split(tv.View(false), "\n")
	assert.Contains(t, lines[0], "Program (Program)")
}

func TestTreeViewEmpty(t *testing.T) {
	tv := NewTreeView()
	tv.SetRoot(nil)
	assert.Equal(t, 0, tv.Len())
	assert.Nil(t, tv.Selected())
	tv.Toggle()
	tv.Collapse()
	assert.Contains(t, tv.View(true), "No AST yet")
}
