// internal/session/errors.go

package session

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/soyuz43/jsast-go/internal/jsparser"
)

var (
	// ErrMissingParser is returned by Parse when no parser backend is available.
	ErrMissingParser = jsparser.ErrMissingParser

	// ErrEmptyInput is returned by Parse when the editor holds only whitespace.
	ErrEmptyInput = errors.New("please enter JavaScript code")

	// ErrNothingToSave is returned by SaveAST when there is no AST yet.
	ErrNothingToSave = errors.New("there is no AST to save")
)

// FileIOError reports a failed open or save.
type FileIOError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileIOError) Error() string {
	switch e.Op {
	case "open":
		return fmt.Sprintf("could not open file %s: %v", e.Path, e.Err)
	case "save":
		return fmt.Sprintf("could not save AST to %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
}

func (e *FileIOError) Unwrap() error { return e.Err }

// Cause lets errors.Cause reach the underlying failure.
func (e *FileIOError) Cause() error { return e.Err }

// IsInformational reports whether err is a prompt for the user rather than a
// failure: empty input or nothing to save.
func IsInformational(err error) bool {
	return errors.Is(err, ErrEmptyInput) || errors.Is(err, ErrNothingToSave)
}

// Kind names the error category for dialog titles and logs.
func Kind(err error) string {
	var fileErr *FileIOError
	switch {
	case err == nil:
		return ""
	case IsInformational(err):
		return "Info"
	case errors.Is(err, ErrMissingParser):
		return "Missing parser"
	case jsparser.IsParseError(err):
		return "Parse error"
	case errors.As(err, &fileErr):
		return "File error"
	default:
		return "Error"
	}
}
