// internal/outline/builder.go

package outline

import (
	"fmt"
	"strings"

	"github.com/soyuz43/jsast-go/internal/ast"
)

// DisplayNode is one row of the outline shown in the tree view.
type DisplayNode struct {
	Label    string         `json:"label"`
	Children []*DisplayNode `json:"children,omitempty"`
}

// positionKeys are never rendered.
var positionKeys = map[string]bool{
	"loc":   true,
	"range": true,
	"start": true,
	"end":   true,
}

// foldKeys decorate the label of the node that owns them and never become rows
// of their own, whatever they hold.
var foldKeys = map[string]bool{
	"type":     true,
	"name":     true,
	"value":    true,
	"operator": true,
	"kind":     true,
}

// Build turns a parsed AST into an outline. The returned root is the synthetic
// "Program (<type>)" node; its children describe the whole tree.
//
// Build never fails: unexpected shapes and null values degrade to best-effort
// labels. root is not modified; plain map[string]any values are read through
// an ordered copy.
func Build(root any) *DisplayNode {
	root = ast.Normalize(root)

	rootType := "Program"
	if obj, ok := root.(*ast.Object); ok {
		if t, ok := obj.Type(); ok {
			rootType = ast.ScalarText(t)
		}
	}

	return &DisplayNode{
		Label:    foldLabel(fmt.Sprintf("Program (%s)", rootType), root),
		Children: childrenOf(root),
	}
}

func childrenOf(v any) []*DisplayNode {
	switch ast.ShapeOf(v) {
	case ast.ShapeMapping, ast.ShapeTypedMapping:
		return mappingChildren(v.(*ast.Object))
	case ast.ShapeSequence:
		return sequenceChildren(v.([]any))
	default:
		return nil
	}
}

func mappingChildren(obj *ast.Object) []*DisplayNode {
	var out []*DisplayNode
	obj.Range(func(key string, value any) bool {
		if positionKeys[key] || foldKeys[key] {
			return true
		}
		shape := ast.ShapeOf(value)

		switch {
		case key == "body" && shape == ast.ShapeSequence:
			out = append(out, bodyContainer(value.([]any)))
		case shape == ast.ShapeScalar:
			out = append(out, &DisplayNode{Label: fmt.Sprintf("%s: %s", key, ast.ScalarText(value))})
		default:
			label := key
			if shape == ast.ShapeTypedMapping {
				label = fmt.Sprintf("%s (%s)", key, typeText(value))
			}
			out = append(out, &DisplayNode{
				Label:    foldLabel(label, value),
				Children: childrenOf(value),
			})
		}
		return true
	})
	return out
}

func bodyContainer(items []any) *DisplayNode {
	container := &DisplayNode{Label: fmt.Sprintf("body [%d items]", len(items))}
	for i, item := range items {
		label := fmt.Sprintf("[%d] %s", i, typeText(item))
		container.Children = append(container.Children, &DisplayNode{
			Label:    foldLabel(label, item),
			Children: childrenOf(item),
		})
	}
	return container
}

func sequenceChildren(items []any) []*DisplayNode {
	out := make([]*DisplayNode, 0, len(items))
	for i, item := range items {
		switch ast.ShapeOf(item) {
		case ast.ShapeTypedMapping:
			label := fmt.Sprintf("[%d] %s", i, typeText(item))
			out = append(out, &DisplayNode{Label: foldLabel(label, item), Children: childrenOf(item)})
		case ast.ShapeMapping, ast.ShapeSequence:
			label := fmt.Sprintf("[%d]", i)
			out = append(out, &DisplayNode{Label: foldLabel(label, item), Children: childrenOf(item)})
		default:
			out = append(out, &DisplayNode{Label: fmt.Sprintf("[%d]: %s", i, ast.ScalarText(item))})
		}
	}
	return out
}

// typeText is the text of a mapping's "type" field, or "" when there is none.
func typeText(v any) string {
	obj, ok := v.(*ast.Object)
	if !ok {
		return ""
	}
	t, ok := obj.Type()
	if !ok {
		return ""
	}
	return ast.ScalarText(t)
}

// foldLabel appends the value, name, operator and kind of v, in that order, to
// base. Absent and null fields are skipped. A mapping or sequence is shown as
// its compact JSON text.
func foldLabel(base string, v any) string {
	obj, ok := v.(*ast.Object)
	if !ok || obj == nil {
		return base
	}

	var sb strings.Builder
	sb.WriteString(base)
	if val, ok := foldable(obj, "value"); ok {
		if s, isString := val.(string); isString {
			sb.WriteString(fmt.Sprintf(": \"%s\"", s))
		} else {
			sb.WriteString(": " + ast.ScalarText(val))
		}
	}
	if val, ok := foldable(obj, "name"); ok {
		sb.WriteString(fmt.Sprintf(" '%s'", ast.ScalarText(val)))
	}
	if val, ok := foldable(obj, "operator"); ok {
		sb.WriteString(fmt.Sprintf(" [%s]", ast.ScalarText(val)))
	}
	if val, ok := foldable(obj, "kind"); ok {
		sb.WriteString(fmt.Sprintf(" (%s)", ast.ScalarText(val)))
	}
	return sb.String()
}

func foldable(obj *ast.Object, key string) (any, bool) {
	val, ok := obj.Get(key)
	if !ok || val == nil {
		return nil, false
	}
	return val, true
}
