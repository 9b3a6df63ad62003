// internal/jsparser/parser.go

package jsparser

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// JsParser turns JavaScript source text into a JSON-compatible AST made of
// *ast.Object, []any and scalars. Implementations are safe for concurrent use.
type JsParser interface {
	// Name identifies the backend, e.g. "tree-sitter".
	Name() string
	// Parse parses a whole script. Syntax errors are returned as *ParseError.
	Parse(ctx context.Context, source string) (any, error)
}

// Options configures the position metadata attached to every node.
// "start" and "end" offsets are always present.
type Options struct {
	// Locations adds a "loc" object with 1-based lines and 0-based columns.
	Locations bool
	// Ranges adds a "range" pair of offsets.
	Ranges bool
}

// ErrMissingParser is returned when no parser backend is available.
var ErrMissingParser = errors.New("no JavaScript parser library available")

// ParseError describes source text that is not valid JavaScript.
type ParseError struct {
	Backend string
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("Line %d, column %d: %s", e.Line, e.Column, e.Message)
	}
	return e.Message
}

// IsParseError reports whether err is, or wraps, a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
