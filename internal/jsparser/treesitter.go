// internal/jsparser/treesitter.go

package jsparser

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/pkg/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/soyuz43/jsast-go/internal/ast"
)

// TreeSitterBackend is the name of the tree-sitter backend.
const TreeSitterBackend = "tree-sitter"

// TreeSitterParser parses JavaScript with the tree-sitter grammar and converts
// the concrete syntax tree into an ESTree-flavored AST.
type TreeSitterParser struct {
	opts Options
}

// NewTreeSitterParser creates a tree-sitter backed parser.
func NewTreeSitterParser(opts Options) *TreeSitterParser {
	return &TreeSitterParser{opts: opts}
}

// Name implements JsParser.
func (p *TreeSitterParser) Name() string {
	return TreeSitterBackend
}

// Parse implements JsParser. Every call uses its own tree-sitter parser.
func (p *TreeSitterParser) Parse(ctx context.Context, source string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "javascript parse canceled before start")
	}

	content := []byte(source)
	if !utf8.Valid(content) {
		return nil, &ParseError{Backend: TreeSitterBackend, Message: "source is not valid UTF-8"}
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, errors.Wrap(err, "tree-sitter parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(root, content)
	}

	conv := newCSTConverter(content, p.opts)
	return conv.convert(root), nil
}

// syntaxError locates the first ERROR or MISSING node below root.
func syntaxError(root *sitter.Node, content []byte) *ParseError {
	bad := firstErrorNode(root)
	if bad == nil {
		bad = root
	}
	pos := bad.StartPoint()
	perr := &ParseError{
		Backend: TreeSitterBackend,
		Line:    int(pos.Row) + 1,
		Column:  int(pos.Column) + 1,
	}

	switch {
	case bad.IsMissing():
		perr.Message = fmt.Sprintf("missing %q", bad.Type())
	case int(bad.StartByte()) >= len(content) || bad.StartByte() == bad.EndByte():
		perr.Message = "unexpected end of input"
	default:
		perr.Message = fmt.Sprintf("unexpected %q", snippet(bad.Content(content)))
	}
	return perr
}

func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if found := firstErrorNode(n.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

func snippet(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > 24 {
		r := []rune(s)
		s = string(r[:24]) + "…"
	}
	return s
}

// -----------------------------------------------------------------------------
// CST to AST conversion
// -----------------------------------------------------------------------------

var identifierKinds = map[string]bool{
	"identifier":                           true,
	"property_identifier":                  true,
	"private_property_identifier":          true,
	"shorthand_property_identifier":        true,
	"shorthand_property_identifier_pattern": true,
	"statement_identifier":                 true,
}

// textLeafKinds carry their source text as "value".
var textLeafKinds = map[string]bool{
	"string_fragment": true,
	"escape_sequence": true,
	"regex_pattern":   true,
	"regex_flags":     true,
	"hash_bang_line":  true,
}

// flagTokens are anonymous keywords recorded as boolean fields.
var flagTokens = map[string]string{
	"async":  "async",
	"static": "static",
}

var generatorKinds = map[string]bool{
	"generator_function":             true,
	"generator_function_declaration": true,
	"method_definition":              true,
}

// listKeys name the field that collects unlabeled children, per node kind.
var listKeys = map[string]string{
	"program":              "body",
	"statement_block":      "body",
	"class_body":           "body",
	"switch_body":          "cases",
	"object":               "properties",
	"object_pattern":       "properties",
	"array":                "elements",
	"array_pattern":        "elements",
	"arguments":            "elements",
	"formal_parameters":    "params",
	"template_string":      "quasis",
	"variable_declaration": "declarations",
	"lexical_declaration":  "declarations",
	"named_imports":        "specifiers",
	"export_clause":        "specifiers",
	"sequence_expression":  "expressions",
}

// singleKeys name the field of node kinds that wrap exactly one child.
var singleKeys = map[string]string{
	"expression_statement":    "expression",
	"parenthesized_expression": "expression",
	"template_substitution":   "expression",
	"computed_property_name":  "expression",
	"return_statement":        "argument",
	"throw_statement":         "argument",
	"spread_element":          "argument",
	"await_expression":        "argument",
	"yield_expression":        "argument",
	"class_heritage":          "superClass",
	"else_clause":             "body",
}

// fieldRenames maps "<kind>.<field>" or "<field>" to the ESTree key used in the
// AST. Grammar fields named like the label keys (name, value) would otherwise
// hide whole subtrees behind a label.
var fieldRenames = map[string]string{
	"class_body.member": "body",

	"variable_declarator.name":  "id",
	"variable_declarator.value": "init",

	"function_declaration.name":           "id",
	"function_expression.name":            "id",
	"function.name":                       "id",
	"generator_function.name":             "id",
	"generator_function_declaration.name": "id",
	"class_declaration.name":              "id",
	"class.name":                          "id",
	"method_definition.name":              "key",
	"field_definition.property":           "key",

	"arrow_function.parameter": "params",
	"parameters":               "params",
	"catch_clause.parameter":   "param",

	"import_specifier.name":  "imported",
	"import_specifier.alias": "local",
	"export_specifier.name":  "local",
	"export_specifier.alias": "exported",
	"export_statement.value": "declaration",

	"jsx_opening_element.name":      "tag",
	"jsx_closing_element.name":      "tag",
	"jsx_self_closing_element.name": "tag",
}

// listFields are grammar fields that may repeat and are always emitted as lists.
var listFields = map[string]bool{
	"class_body.member":   true,
	"switch_case.body":    true,
	"switch_default.body": true,
	"decorator":           true,
}

type cstConverter struct {
	src   []byte
	opts  Options
	caser cases.Caser
	names map[string]string
}

func newCSTConverter(src []byte, opts Options) *cstConverter {
	return &cstConverter{
		src:   src,
		opts:  opts,
		caser: cases.Title(language.Und),
		names: make(map[string]string),
	}
}

// typeName turns a grammar kind such as "binary_expression" into "BinaryExpression".
func (c *cstConverter) typeName(kind string) string {
	if name, ok := c.names[kind]; ok {
		return name
	}
	var sb strings.Builder
	for _, part := range strings.Split(kind, "_") {
		if part == "" {
			continue
		}
		sb.WriteString(c.caser.String(part))
	}
	name := sb.String()
	c.names[kind] = name
	return name
}

func (c *cstConverter) convert(n *sitter.Node) *ast.Object {
	kind := n.Type()
	obj := ast.NewObject()
	obj.Set("type", c.typeName(kind))
	c.setPosition(obj, n)

	if c.setLeaf(obj, n, kind) {
		return obj
	}

	var positional []any
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		field := n.FieldNameForChild(i)

		if !child.IsNamed() {
			token := child.Type()
			switch {
			case field != "":
				c.setField(obj, kind, field, token)
			case flagTokens[token] != "":
				obj.Set(flagTokens[token], true)
			case token == "*" && generatorKinds[kind]:
				obj.Set("generator", true)
			}
			continue
		}
		if child.Type() == "comment" {
			continue
		}

		converted := c.convert(child)
		if field != "" {
			c.setField(obj, kind, field, converted)
		} else {
			positional = append(positional, converted)
		}
	}

	switch kind {
	case "variable_declaration":
		if !obj.Has("kind") {
			obj.Set("kind", "var")
		}
	case "lexical_declaration":
		if !obj.Has("kind") && n.ChildCount() > 0 {
			obj.Set("kind", n.Child(0).Type())
		}
	}

	if len(positional) > 0 {
		if key, ok := singleKeys[kind]; ok && len(positional) == 1 && !obj.Has(key) {
			obj.Set(key, positional[0])
		} else {
			key, ok := listKeys[kind]
			if !ok {
				key = "children"
				if single, hasSingle := singleKeys[kind]; hasSingle {
					key = single
				}
			}
			appendList(obj, key, positional)
		}
	}
	return obj
}

// setLeaf fills in identifier names and literal values. It reports whether the
// node is complete and its children should not be visited.
func (c *cstConverter) setLeaf(obj *ast.Object, n *sitter.Node, kind string) bool {
	text := n.Content(c.src)
	switch {
	case identifierKinds[kind]:
		obj.Set("name", text)
		return true
	case kind == "number":
		obj.Set("value", parseNumber(text))
		obj.Set("raw", text)
		return true
	case kind == "string":
		obj.Set("value", decodeString(text))
		obj.Set("raw", text)
		return true
	case kind == "true" || kind == "false":
		obj.Set("value", kind == "true")
		obj.Set("raw", text)
		return true
	case kind == "null":
		obj.Set("value", nil)
		obj.Set("raw", text)
		return true
	case kind == "regex":
		obj.Set("value", text)
		return false
	case textLeafKinds[kind] && n.NamedChildCount() == 0:
		obj.Set("value", text)
		return true
	}
	return false
}

func (c *cstConverter) setField(obj *ast.Object, kind, field string, value any) {
	qualified := kind + "." + field
	key := field
	if renamed, ok := fieldRenames[qualified]; ok {
		key = renamed
	} else if renamed, ok := fieldRenames[field]; ok {
		key = renamed
	}
	if listFields[qualified] || listFields[field] {
		appendList(obj, key, []any{value})
		return
	}

	existing, ok := obj.Get(key)
	if !ok {
		obj.Set(key, value)
		return
	}
	if list, isList := existing.([]any); isList {
		obj.Set(key, append(list, value))
		return
	}
	obj.Set(key, []any{existing, value})
}

func appendList(obj *ast.Object, key string, values []any) {
	existing, ok := obj.Get(key)
	switch {
	case !ok:
		obj.Set(key, values)
	case existing == nil:
		obj.Set(key, values)
	default:
		if list, isList := existing.([]any); isList {
			obj.Set(key, append(list, values...))
			return
		}
		obj.Set(key, append([]any{existing}, values...))
	}
}

func (c *cstConverter) setPosition(obj *ast.Object, n *sitter.Node) {
	start, end := int(n.StartByte()), int(n.EndByte())
	obj.Set("start", start)
	obj.Set("end", end)

	if c.opts.Locations {
		sp, ep := n.StartPoint(), n.EndPoint()
		startLoc := ast.NewObject()
		startLoc.Set("line", int(sp.Row)+1)
		startLoc.Set("column", int(sp.Column))
		endLoc := ast.NewObject()
		endLoc.Set("line", int(ep.Row)+1)
		endLoc.Set("column", int(ep.Column))
		loc := ast.NewObject()
		loc.Set("start", startLoc)
		loc.Set("end", endLoc)
		obj.Set("loc", loc)
	}
	if c.opts.Ranges {
		obj.Set("range", []any{start, end})
	}
}

// parseNumber converts a JavaScript numeric literal to float64. BigInt and
// unparseable literals are kept as text.
func parseNumber(raw string) any {
	s := strings.ReplaceAll(raw, "_", "")
	if strings.HasSuffix(s, "n") {
		return raw
	}
	if len(s) > 2 && s[0] == '0' && strings.ContainsRune("xXoObB", rune(s[1])) {
		if v, err := strconv.ParseUint(s, 0, 64); err == nil {
			return float64(v)
		}
		return raw
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return raw
}

// decodeString strips the quotes of a JavaScript string literal and resolves
// its escape sequences.
func decodeString(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	inner := raw[1 : len(raw)-1]
	if !strings.ContainsRune(inner, '\\') {
		return inner
	}

	var sb strings.Builder
	for i := 0; i < len(inner); i++ {
		ch := inner[i]
		if ch != '\\' || i+1 >= len(inner) {
			sb.WriteByte(ch)
			continue
		}
		i++
		switch esc := inner[i]; esc {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			sb.WriteByte(0)
		case '\n':
			// line continuation
		case '\r':
			if i+1 < len(inner) && inner[i+1] == '\n' {
				i++
			}
		case 'x':
			if r, ok := hexRune(inner, i+1, 2); ok {
				sb.WriteRune(r)
				i += 2
			} else {
				sb.WriteByte(esc)
			}
		case 'u':
			if i+1 < len(inner) && inner[i+1] == '{' {
				if closing := strings.IndexByte(inner[i+1:], '}'); closing > 1 {
					if r, ok := hexRune(inner, i+2, closing-1); ok {
						sb.WriteRune(r)
						i += closing + 1
						continue
					}
				}
				sb.WriteByte(esc)
			} else if r, ok := hexRune(inner, i+1, 4); ok {
				i += 4
				if utf16.IsSurrogate(r) && i+6 < len(inner) && inner[i+1] == '\\' && inner[i+2] == 'u' {
					if low, ok := hexRune(inner, i+3, 4); ok {
						if pair := utf16.DecodeRune(r, low); pair != utf8.RuneError {
							r = pair
							i += 6
						}
					}
				}
				sb.WriteRune(r)
			} else {
				sb.WriteByte(esc)
			}
		default:
			sb.WriteByte(esc)
		}
	}
	return sb.String()
}

func hexRune(s string, at, width int) (rune, bool) {
	if at+width > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[at:at+width], 16, 32)
	if err != nil || v > utf8.MaxRune {
		return 0, false
	}
	return rune(v), true
}
