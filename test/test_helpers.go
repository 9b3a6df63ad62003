// test/test_helpers.go
package test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/soyuz43/jsast-go/internal/ast"
	"github.com/soyuz43/jsast-go/internal/jsparser"
)

// SampleESTreeJSON is a small ESTree program with positions, nested bodies and
// every fold key, used wherever a realistic tree is needed.
const SampleESTreeJSON = `{
  "type": "Program",
  "start": 0,
  "end": 58,
  "body": [
    {
      "type": "VariableDeclaration",
      "start": 0,
      "end": 14,
      "declarations": [
        {
          "type": "VariableDeclarator",
          "id": {"type": "Identifier", "name": "total", "start": 6, "end": 11},
          "init": {"type": "Literal", "value": 0, "raw": "0", "start": 12, "end": 13}
        }
      ],
      "kind": "let"
    },
    {
      "type": "FunctionDeclaration",
      "id": {"type": "Identifier", "name": "add"},
      "params": [{"type": "Identifier", "name": "n"}],
      "body": {
        "type": "BlockStatement",
        "body": [
          {
            "type": "ExpressionStatement",
            "expression": {
              "type": "AssignmentExpression",
              "operator": "+=",
              "left": {"type": "Identifier", "name": "total"},
              "right": {"type": "Identifier", "name": "n"}
            }
          }
        ]
      },
      "async": false,
      "generator": false
    }
  ],
  "sourceType": "script"
}`

// MustDecode decodes JSON text into the ordered AST model or fails the test.
func MustDecode(t *testing.T, jsonText string) any {
	t.Helper()

	v, err := ast.Unmarshal([]byte(jsonText))
	if err != nil {
		t.Fatalf("Failed to decode test JSON: %v", err)
	}
	return v
}

// FakeParser is a jsparser.JsParser returning a canned result. It records every
// source it was asked to parse.
type FakeParser struct {
	Backend string
	Result  any
	Err     error

	mu    sync.Mutex
	calls []string
}

// Name implements jsparser.JsParser.
func (f *FakeParser) Name() string {
	if f.Backend == "" {
		return "fake"
	}
	return f.Backend
}

// Parse implements jsparser.JsParser.
func (f *FakeParser) Parse(ctx context.Context, source string) (any, error) {
	f.mu.Lock()
	f.calls = append(f.calls, source)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Result, nil
}

// Calls returns the sources passed to Parse, oldest first.
func (f *FakeParser) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

var _ jsparser.JsParser = (*FakeParser)(nil)

// NewSyntaxErrorParser returns a FakeParser failing every call with a parse error.
func NewSyntaxErrorParser() *FakeParser {
	return &FakeParser{Err: &jsparser.ParseError{
		Backend: "fake",
		Line:    1,
		Column:  10,
		Message: "Unexpected end of input",
	}}
}

// WriteTempFile writes content under a fresh temporary directory and returns its path.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	return path
}

// ReadFile returns the file content or fails the test.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}
