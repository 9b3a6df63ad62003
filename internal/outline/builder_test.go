package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyuz43/jsast-go/internal/ast"
	"github.com/soyuz43/jsast-go/test"
)

func labels(nodes []*DisplayNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Label)
	}
	return out
}

func TestBuildProgramBody(t *testing.T) {
	root := Build(test.MustDecode(t, `{"type":"Program","body":[{"type":"Literal","value":1},{"type":"Literal","value":2}]}`))

	assert.Equal(t, "Program (Program)", root.Label)
	require.Len(t, root.Children, 1)

	body := root.Children[0]
	assert.Equal(t, "body [2 items]", body.Label)
	assert.Equal(t, []string{"[0] Literal: 1", "[1] Literal: 2"}, labels(body.Children))
}

func TestFoldOrderIgnoresKeyOrder(t *testing.T) {
	orders := []string{
		`{"type":"X","name":"n","value":5,"operator":"+","kind":"let"}`,
		`{"kind":"let","operator":"+","name":"n","value":5,"type":"X"}`,
		`{"operator":"+","type":"X","kind":"let","value":5,"name":"n"}`,
	}
	for _, raw := range orders {
		wrapped := test.MustDecode(t, `{"type":"Program","expression":`+raw+`}`)
		root := Build(wrapped)
		require.Len(t, root.Children, 1, raw)
		assert.Equal(t, "expression (X): 5 'n' [+] (let)", root.Children[0].Label, raw)
		assert.Empty(t, root.Children[0].Children, raw)

		direct := Build(test.MustDecode(t, raw))
		assert.Equal(t, "Program (X): 5 'n' [+] (let)", direct.Label, raw)
	}
}

func TestFoldQuotesStringValues(t *testing.T) {
	root := Build(test.MustDecode(t, `{"type":"Program","body":[{"type":"Literal","value":"hi","raw":"'hi'"}]}`))
	item := root.Children[0].Children[0]
	assert.Equal(t, `[0] Literal: "hi"`, item.Label)
	assert.Equal(t, []string{"raw: 'hi'"}, labels(item.Children))
}

func TestFoldSkipsNullFields(t *testing.T) {
	root := Build(test.MustDecode(t, `{"type":"Program","id":{"type":"Identifier","name":null,"value":null,"kind":"x"}}`))
	assert.Equal(t, []string{"id (Identifier) (x)"}, labels(root.Children))
}

func TestPositionKeysAreSuppressedAtEveryDepth(t *testing.T) {
	plain := test.MustDecode(t, `{
		"type": "Program",
		"body": [
			{"type": "VariableDeclaration", "kind": "const", "declarations": [
				{"type": "VariableDeclarator",
				 "id": {"type": "Identifier", "name": "x"},
				 "init": {"type": "BinaryExpression", "operator": "*",
				          "left": {"type": "Literal", "value": 2},
				          "right": {"type": "Literal", "value": 3}}}
			]}
		]
	}`)
	withPositions := test.MustDecode(t, `{
		"type": "Program", "start": 0, "end": 20, "range": [0, 20],
		"loc": {"start": {"line": 1, "column": 0}, "end": {"line": 1, "column": 20}},
		"body": [
			{"type": "VariableDeclaration", "kind": "const", "start": 0, "end": 20, "range": [0, 20], "loc": {}, "declarations": [
				{"type": "VariableDeclarator", "start": 6, "end": 19, "range": [6, 19], "loc": {},
				 "id": {"type": "Identifier", "name": "x", "start": 6, "end": 7, "range": [6, 7], "loc": {}},
				 "init": {"type": "BinaryExpression", "operator": "*", "start": 10, "end": 19, "range": [10, 19], "loc": {},
				          "left": {"type": "Literal", "value": 2, "start": 10, "end": 11, "range": [10, 11], "loc": {}},
				          "right": {"type": "Literal", "value": 3, "start": 18, "end": 19, "range": [18, 19], "loc": {}}}}
			]}
		]
	}`)

	a, b := Build(plain), Build(withPositions)
	assert.True(t, Equal(a, b), "outlines differ:\n%s\n---\n%s", a, b)

	decl := a.Children[0].Children[0]
	assert.Equal(t, "[0] VariableDeclaration (const)", decl.Label)
	declarator := decl.Children[0].Children[0]
	assert.Equal(t, "[0] VariableDeclarator", declarator.Label)
	assert.Equal(t, []string{"id (Identifier) 'x'", "init (BinaryExpression) [*]"}, labels(declarator.Children))
}

func TestSequencesOutsideBody(t *testing.T) {
	root := Build(test.MustDecode(t, `{"type":"ArrayExpression","elements":[{"type":"Literal","value":"a"},null,3,[1],{"x":true}]}`))
	require.Len(t, root.Children, 1)

	elements := root.Children[0]
	assert.Equal(t, "elements", elements.Label)
	assert.Equal(t, []string{`[0] Literal: "a"`, "[1]: null", "[2]: 3", "[3]", "[4]"}, labels(elements.Children))
	assert.Equal(t, []string{"[0]: 1"}, labels(elements.Children[3].Children))
	assert.Equal(t, []string{"x: true"}, labels(elements.Children[4].Children))
}

func TestBodyWithoutTypes(t *testing.T) {
	root := Build(test.MustDecode(t, `{"body":[{"x":1},"stray"]}`))
	assert.Equal(t, "Program (Program)", root.Label)
	body := root.Children[0]
	assert.Equal(t, "body [2 items]", body.Label)
	assert.Equal(t, []string{"[0] ", "[1] "}, labels(body.Children))
	assert.Equal(t, []string{"x: 1"}, labels(body.Children[0].Children))
	assert.Empty(t, body.Children[1].Children)
}

func TestFoldKeysNeverBecomeRows(t *testing.T) {
	root := Build(test.MustDecode(t, `{"type":"Program","body":[
		{"type":"Property","key":{"type":"Identifier","name":"a"},"value":{"type":"FunctionExpression","params":[]},"kind":"init"}
	]}`))

	prop := root.Children[0].Children[0]
	assert.Equal(t, `[0] Property: {"type":"FunctionExpression","params":[]} (init)`, prop.Label)
	assert.Equal(t, []string{"key (Identifier) 'a'"}, labels(prop.Children))
}

func TestStructuredFoldValuesUseJSONText(t *testing.T) {
	root := Build(test.MustDecode(t, `{"type":"Literal","value":{"pattern":"a+","flags":"g"},"name":["x"],"operator":null}`))
	assert.Equal(t, `Program (Literal): {"pattern":"a+","flags":"g"} '["x"]'`, root.Label)
	assert.Empty(t, root.Children)
}

func TestBuildLeavesInputUntouched(t *testing.T) {
	obj := ast.NewObject()
	obj.Set("type", "Program")
	obj.Set("expression", map[string]any{"type": "Identifier", "name": "x"})

	root := Build(obj)
	assert.Equal(t, []string{"expression (Identifier) 'x'"}, labels(root.Children))

	raw, ok := obj.Get("expression")
	require.True(t, ok)
	assert.IsType(t, map[string]any{}, raw)
}

func TestMalformedInputDegrades(t *testing.T) {
	tests := []struct {
		name  string
		input any
		label string
		kids  []string
	}{
		{"nil", nil, "Program (Program)", nil},
		{"string root", "oops", "Program (Program)", nil},
		{"list root", []any{1.0, "x"}, "Program (Program)", []string{"[0]: 1", "[1]: x"}},
		{"body is a mapping", test.MustDecode(t, `{"type":"Program","body":{"type":"BlockStatement"}}`), "Program (Program)", []string{"body (BlockStatement)"}},
		{"body is a scalar", test.MustDecode(t, `{"type":"Program","body":null}`), "Program (Program)", []string{"body: null"}},
		{"numeric type", test.MustDecode(t, `{"type":7}`), "Program (7)", nil},
		{"plain go map", map[string]any{"type": "Program", "sourceType": "module"}, "Program (Program)", []string{"sourceType: module"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var root *DisplayNode
			require.NotPanics(t, func() { root = Build(tt.input) })
			assert.Equal(t, tt.label, root.Label)
			if tt.kids == nil {
				assert.Empty(t, root.Children)
			} else {
				assert.Equal(t, tt.kids, labels(root.Children))
			}
		})
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	tree := test.MustDecode(t, test.SampleESTreeJSON)
	first := Build(tree)
	second := Build(tree)
	assert.True(t, Equal(first, second))
	assert.Equal(t, first.String(), second.String())
}

func TestBuildDoesNotNeedTypedRoot(t *testing.T) {
	obj := ast.NewObject()
	obj.Set("sourceType", "script")
	root := Build(obj)
	assert.Equal(t, "Program (Program)", root.Label)
	assert.Equal(t, []string{"sourceType: script"}, labels(root.Children))
}
