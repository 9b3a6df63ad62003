// internal/ast/node.go

package ast

import (
	"sort"
)

// Object is a JSON object that remembers the order its keys were inserted in.
// Parsers emit fields in a meaningful order (type first, then children in source
// order) and both the outline and the JSON view follow it.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set stores value under key. Overwriting keeps the key's original position.
func (o *Object) Set(key string, value any) {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present, even with a null value.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Keys returns the keys in insertion order. The slice is a copy.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Range calls fn for each key in order until fn returns false.
func (o *Object) Range(fn func(key string, value any) bool) {
	if o == nil {
		return
	}
	for _, k := range o.keys {
		if !fn(k, o.values[k]) {
			return
		}
	}
}

// Type returns the node's "type" field when it is present and not null.
func (o *Object) Type() (any, bool) {
	v, ok := o.Get("type")
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Shape classifies an AST value for dispatch.
type Shape int

const (
	ShapeScalar Shape = iota
	ShapeSequence
	ShapeMapping
	ShapeTypedMapping
)

func (s Shape) String() string {
	switch s {
	case ShapeSequence:
		return "sequence"
	case ShapeMapping:
		return "mapping"
	case ShapeTypedMapping:
		return "typed-mapping"
	default:
		return "scalar"
	}
}

// ShapeOf reports the shape of v. Values that are neither objects nor slices,
// including nil and unknown Go types, are scalars.
func ShapeOf(v any) Shape {
	switch t := v.(type) {
	case *Object:
		if t == nil {
			return ShapeScalar
		}
		if _, ok := t.Type(); ok {
			return ShapeTypedMapping
		}
		return ShapeMapping
	case []any:
		return ShapeSequence
	default:
		return ShapeScalar
	}
}

// Normalize converts generic decoded values (map[string]any, []map[string]any,
// []string, ...) into the AST model. Plain maps have no order, so their keys are
// sorted. Objects are copied, so v itself is never modified.
func Normalize(v any) any {
	switch t := v.(type) {
	case *Object:
		if t == nil {
			return nil
		}
		obj := NewObject()
		for _, k := range t.keys {
			obj.Set(k, Normalize(t.values[k]))
		}
		return obj
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			obj.Set(k, Normalize(t[k]))
		}
		return obj
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Normalize(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Normalize(item)
		}
		return out
	case []*Object:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Normalize(item)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = item
		}
		return out
	default:
		return v
	}
}
