package outline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOutline() *DisplayNode {
	return &DisplayNode{
		Label: "Program (Program)",
		Children: []*DisplayNode{
			{Label: "body [2 items]", Children: []*DisplayNode{
				{Label: "[0] Literal: 1"},
				{Label: "[1] Literal: 2"},
			}},
			{Label: "sourceType: script"},
		},
	}
}

func TestRenderBoxGuides(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Render(&sb, sampleOutline(), RenderOptions{}))

	want := strings.Join([]string{
		"Program (Program)",
		"├── body [2 items]",
		"│   ├── [0] Literal: 1",
		"│   └── [1] Literal: 2",
		"└── sourceType: script",
		"",
	}, "\n")
	assert.Equal(t, want, sb.String())
}

func TestRenderASCIIWithDepthLimit(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Render(&sb, sampleOutline(), RenderOptions{ASCII: true, MaxDepth: 1}))

	want := "Program (Program)\n|-- body [2 items]\n`-- sourceType: script\n"
	assert.Equal(t, want, sb.String())
}

func TestCountAndWalk(t *testing.T) {
	root := sampleOutline()
	assert.Equal(t, 5, root.Count())

	var depths []int
	root.Walk(func(n *DisplayNode, depth int) bool {
		depths = append(depths, depth)
		return n.Label != "body [2 items]"
	})
	assert.Equal(t, []int{0, 1, 1}, depths)
}

func TestEqual(t *testing.T) {
	a, b := sampleOutline(), sampleOutline()
	assert.True(t, Equal(a, b))
	b.Children[0].Children[1].Label = "[1] Literal: 3"
	assert.False(t, Equal(a, b))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(a, nil))
}
