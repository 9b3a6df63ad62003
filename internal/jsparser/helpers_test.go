package jsparser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soyuz43/jsast-go/internal/ast"
)

// field walks a path of object keys and list indexes.
func field(t *testing.T, v any, path ...any) any {
	t.Helper()
	cur := v
	for _, step := range path {
		switch s := step.(type) {
		case string:
			obj, ok := cur.(*ast.Object)
			require.Truef(t, ok, "expected object at %q, got %T", s, cur)
			next, ok := obj.Get(s)
			require.Truef(t, ok, "missing key %q in %v", s, obj.Keys())
			cur = next
		case int:
			list, ok := cur.([]any)
			require.Truef(t, ok, "expected list at [%d], got %T", s, cur)
			require.Greater(t, len(list), s)
			cur = list[s]
		}
	}
	return cur
}
