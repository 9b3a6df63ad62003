// internal/jsparser/goja.go

package jsparser

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	gojaast "github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"
	gojaparser "github.com/dop251/goja/parser"
	"github.com/dop251/goja/token"
	"github.com/pkg/errors"

	"github.com/soyuz43/jsast-go/internal/ast"
)

// GojaBackend is the name of the pure Go backend.
const GojaBackend = "goja"

// maxGojaDepth bounds the reflective walk.
const maxGojaDepth = 2048

// GojaParser parses JavaScript with the goja parser. It needs no cgo, which
// makes it the fallback when tree-sitter is unavailable.
type GojaParser struct {
	opts Options
}

// NewGojaParser creates a goja backed parser.
func NewGojaParser(opts Options) *GojaParser {
	return &GojaParser{opts: opts}
}

// Name implements JsParser.
func (p *GojaParser) Name() string {
	return GojaBackend
}

// Parse implements JsParser.
func (p *GojaParser) Parse(ctx context.Context, source string) (result any, err error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "javascript parse canceled before start")
	}
	if !utf8.ValidString(source) {
		return nil, &ParseError{Backend: GojaBackend, Message: "source is not valid UTF-8"}
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &ParseError{Backend: GojaBackend, Message: fmt.Sprintf("parser failure: %v", r)}
		}
	}()

	program, perr := gojaparser.ParseFile(nil, "", source, 0)
	if perr != nil {
		return nil, gojaParseError(perr)
	}

	conv := newGojaConverter(source, p.opts)
	return conv.value(reflect.ValueOf(program), 0), nil
}

func gojaParseError(err error) error {
	var list gojaparser.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		first := list[0]
		return &ParseError{
			Backend: GojaBackend,
			Line:    first.Position.Line,
			Column:  first.Position.Column,
			Message: first.Message,
		}
	}
	var single *gojaparser.Error
	if errors.As(err, &single) {
		return &ParseError{
			Backend: GojaBackend,
			Line:    single.Position.Line,
			Column:  single.Position.Column,
			Message: single.Message,
		}
	}
	return &ParseError{Backend: GojaBackend, Message: describeGojaError(err.Error())}
}

var (
	idxType      = reflect.TypeOf(file.Idx(0))
	numberType   = reflect.TypeOf(gojaast.NumberLiteral{})
	tokenType    = reflect.TypeOf(token.Token(0))
	filePtrType  = reflect.TypeOf((*file.File)(nil))
	nodeType     = reflect.TypeOf((*gojaast.Node)(nil)).Elem()
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

// skippedGojaFields duplicate information found elsewhere in the tree.
var skippedGojaFields = map[string]bool{
	"DeclarationList": true,
	"Source":          true,
	"File":            true,
}

// gojaKeyRenames maps "<Type>.<Field>" or "<Field>" to the key used in the AST.
// Fields named like the label keys (name, value) but holding nodes get their
// ESTree names.
var gojaKeyRenames = map[string]string{
	"BlockStatement.List":                "body",
	"ArrayLiteral.Value":                 "elements",
	"ObjectLiteral.Value":                "properties",
	"FunctionLiteral.Name":               "id",
	"ClassLiteral.Name":                  "id",
	"PropertyShort.Name":                 "key",
	"Binding.Target":                     "id",
	"Binding.Initializer":                "init",
	"FunctionLiteral.ParameterList":      "params",
	"ArrowFunctionLiteral.ParameterList": "params",
	"Literal":                            "raw",
	"Token":                              "kind",
}

type gojaConverter struct {
	opts       Options
	lineStarts []int
	seen       map[uintptr]bool
}

func newGojaConverter(source string, opts Options) *gojaConverter {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &gojaConverter{opts: opts, lineStarts: starts, seen: make(map[uintptr]bool)}
}

func (c *gojaConverter) value(v reflect.Value, depth int) any {
	if !v.IsValid() || depth > maxGojaDepth {
		return nil
	}
	if v.Type() == tokenType {
		return v.Interface().(token.Token).String()
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return c.value(v.Elem(), depth)
	case reflect.Ptr:
		if v.IsNil() || v.Type() == filePtrType {
			return nil
		}
		ptr := v.Pointer()
		if c.seen[ptr] {
			return nil
		}
		c.seen[ptr] = true
		defer delete(c.seen, ptr)
		if v.Elem().Kind() == reflect.Struct {
			return c.object(v, depth)
		}
		return c.value(v.Elem(), depth)
	case reflect.Struct:
		return c.object(v, depth)
	case reflect.Slice, reflect.Array:
		out := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			out = append(out, c.value(v.Index(i), depth+1))
		}
		return out
	case reflect.Bool:
		return v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.String:
		if v.Type().Implements(stringerType) {
			return v.Interface().(fmt.Stringer).String()
		}
		return v.String()
	default:
		return nil
	}
}

func (c *gojaConverter) object(v reflect.Value, depth int) *ast.Object {
	sv := v
	if sv.Kind() == reflect.Ptr {
		sv = sv.Elem()
	}
	t := sv.Type()

	obj := ast.NewObject()
	obj.Set("type", t.Name())
	if v.Kind() == reflect.Ptr && v.Type().Implements(nodeType) {
		c.setPosition(obj, v.Interface().(gojaast.Node))
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || skippedGojaFields[f.Name] || f.Type == idxType || f.Type == filePtrType {
			continue
		}
		if t == numberType && f.Name == "Value" {
			obj.Set("value", gojaNumber(sv.Field(i), sv.FieldByName("Literal").String()))
			continue
		}
		obj.Set(gojaKey(t.Name(), f.Name), c.value(sv.Field(i), depth+1))
	}
	return obj
}

// gojaNumber keeps finite numbers. Literals that overflow to Infinity and
// BigInt values have no JSON form, so they stay as their source text.
func gojaNumber(v reflect.Value, raw string) any {
	if v.Kind() == reflect.Interface && v.IsNil() {
		return raw
	}
	switch n := v.Interface().(type) {
	case int64:
		return n
	case float64:
		if !math.IsInf(n, 0) && !math.IsNaN(n) {
			return n
		}
	}
	return raw
}

func gojaKey(typeName, field string) string {
	if renamed, ok := gojaKeyRenames[typeName+"."+field]; ok {
		return renamed
	}
	if renamed, ok := gojaKeyRenames[field]; ok {
		return renamed
	}
	r, size := utf8.DecodeRuneInString(field)
	return string(unicode.ToLower(r)) + field[size:]
}

func (c *gojaConverter) setPosition(obj *ast.Object, node gojaast.Node) {
	start, end, ok := nodeSpan(node)
	if !ok {
		return
	}
	obj.Set("start", start)
	obj.Set("end", end)

	if c.opts.Locations {
		loc := ast.NewObject()
		loc.Set("start", c.point(start))
		loc.Set("end", c.point(end))
		obj.Set("loc", loc)
	}
	if c.opts.Ranges {
		obj.Set("range", []any{start, end})
	}
}

// nodeSpan converts goja's 1-based indexes to 0-based offsets. Some nodes
// compute their span from children that may be nil, hence the recover.
func nodeSpan(node gojaast.Node) (start, end int, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	i0, i1 := int(node.Idx0()), int(node.Idx1())
	if i0 <= 0 || i1 <= 0 {
		return 0, 0, false
	}
	return i0 - 1, i1 - 1, true
}

func (c *gojaConverter) point(offset int) *ast.Object {
	line := sort.Search(len(c.lineStarts), func(i int) bool { return c.lineStarts[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	p := ast.NewObject()
	p.Set("line", line+1)
	p.Set("column", offset-c.lineStarts[line])
	return p
}

// describeGojaError trims goja's "(anonymous): " prefix from messages.
func describeGojaError(msg string) string {
	return strings.TrimPrefix(msg, "(anonymous): ")
}
