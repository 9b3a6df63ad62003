// internal/session/session.go

package session

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/soyuz43/jsast-go/internal/ast"
	"github.com/soyuz43/jsast-go/internal/jsparser"
	"github.com/soyuz43/jsast-go/internal/outline"
	"github.com/soyuz43/jsast-go/internal/utils"
)

// Status texts shown after each action.
const (
	StatusReady         = "Ready"
	StatusNoParser      = "Error: no parser library found!"
	StatusParsing       = "Generating AST..."
	StatusParsed        = "AST generated successfully!"
	StatusParseFailed   = "Error while parsing!"
	StatusCleared       = "Cleared"
	StatusExample       = "Example code inserted"
	fileLoadedPrefix    = "File loaded: "
	astSavedPrefix      = "AST saved: "
	defaultASTExtension = ".json"
)

// Session holds the editor text and the two AST views. It is not safe for
// concurrent use; every action runs to completion before the next one.
type Session struct {
	parser jsparser.JsParser
	log    *logrus.Entry

	source   string
	tree     any
	outline  *outline.DisplayNode
	jsonText string
	status   string
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for action tracing.
func WithLogger(log *logrus.Entry) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithSource pre-fills the editor.
func WithSource(source string) Option {
	return func(s *Session) {
		s.source = source
	}
}

// New creates a session around parser. A nil parser leaves the session in the
// missing parser state: every Parse fails with ErrMissingParser.
func New(parser jsparser.JsParser, opts ...Option) *Session {
	s := &Session{
		parser: parser,
		log:    logrus.NewEntry(logrus.StandardLogger()),
		status: StatusReady,
	}
	for _, opt := range opts {
		opt(s)
	}
	if parser == nil {
		s.status = StatusNoParser
	}
	return s
}

// Source returns the editor text.
func (s *Session) Source() string { return s.source }

// SetSource replaces the editor text. The views are left alone.
func (s *Session) SetSource(source string) { s.source = source }

// Outline returns the current tree view, or nil when there is none.
func (s *Session) Outline() *outline.DisplayNode { return s.outline }

// JSON returns the current JSON view text.
func (s *Session) JSON() string { return s.jsonText }

// Tree returns the parsed AST behind the views, or nil.
func (s *Session) Tree() any { return s.tree }

// HasAST reports whether the JSON view holds something to save.
func (s *Session) HasAST() bool { return strings.TrimSpace(s.jsonText) != "" }

// Status returns the status line.
func (s *Session) Status() string { return s.status }

// HasParser reports whether a parser backend was injected.
func (s *Session) HasParser() bool { return s.parser != nil }

// Backend names the active parser backend.
func (s *Session) Backend() string {
	if s.parser == nil {
		return "no parser installed"
	}
	return s.parser.Name()
}

// Parse runs the parser over the editor text and replaces both views with the
// result. On any failure the views keep their previous content.
func (s *Session) Parse(ctx context.Context) error {
	if s.parser == nil {
		s.status = StatusNoParser
		return ErrMissingParser
	}
	if strings.TrimSpace(s.source) == "" {
		return ErrEmptyInput
	}

	s.status = StatusParsing
	s.log.WithField("bytes", len(s.source)).Debug("Parsing JavaScript source")

	tree, err := s.parser.Parse(ctx, s.source)
	if err != nil {
		s.status = StatusParseFailed
		s.log.WithError(err).Warn("JavaScript parse failed")
		return errors.Wrap(err, "JavaScript parse error")
	}

	text, err := ast.MarshalIndent(tree)
	if err != nil {
		s.status = StatusParseFailed
		return errors.Wrap(err, "failed to render AST as JSON")
	}

	s.tree = tree
	s.jsonText = text
	s.outline = outline.Build(tree)
	s.status = StatusParsed
	s.log.WithField("nodes", s.outline.Count()).Info("AST generated")
	return nil
}

// Clear empties the editor and both views.
func (s *Session) Clear() {
	s.source = ""
	s.tree = nil
	s.jsonText = ""
	s.outline = nil
	s.status = StatusCleared
}

// InsertExample replaces the editor text with the bundled example program.
func (s *Session) InsertExample() {
	s.source = ExampleSource
	s.status = StatusExample
}

// OpenFile loads a UTF-8 file into the editor. The session is unchanged when
// the file cannot be read.
func (s *Session) OpenFile(path string) error {
	path = utils.ExpandHome(path)
	source, err := utils.ReadSource(path)
	if err != nil {
		s.log.WithError(err).WithField("path", path).Warn("Open failed")
		return &FileIOError{Op: "open", Path: path, Err: errors.Cause(err)}
	}

	s.source = source
	s.status = fileLoadedPrefix + path
	s.log.WithField("path", path).Info("Source file loaded")
	return nil
}

// SaveAST writes the JSON view to path, adding a .json extension when path has
// none. It returns the path actually written.
func (s *Session) SaveAST(path string) (string, error) {
	if !s.HasAST() {
		return "", ErrNothingToSave
	}

	path = utils.EnsureExtension(utils.ExpandHome(path), defaultASTExtension)
	if err := utils.WriteFileAtomic(path, []byte(s.jsonText+"\n"), 0644); err != nil {
		s.log.WithError(err).WithField("path", path).Warn("Save failed")
		return "", &FileIOError{Op: "save", Path: path, Err: err}
	}

	s.status = astSavedPrefix + path
	s.log.WithField("path", path).Info("AST saved")
	return path, nil
}
