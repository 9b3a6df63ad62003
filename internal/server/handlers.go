// internal/server/handlers.go

package server

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/soyuz43/jsast-go/internal/jsparser"
	"github.com/soyuz43/jsast-go/internal/outline"
	"github.com/soyuz43/jsast-go/internal/session"
)

// Request/Response types
type (
	ParseRequest struct {
		Source string `json:"source"`
	}

	ParseResponse struct {
		Backend string               `json:"backend"`
		Nodes   int                  `json:"nodes"`
		Outline *outline.DisplayNode `json:"outline"`
		AST     any                  `json:"ast"`
	}

	BackendStatus struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Available   bool   `json:"available"`
		Error       string `json:"error,omitempty"`
	}

	BackendsResponse struct {
		Selected string          `json:"selected"`
		Backends []BackendStatus `json:"backends"`
	}
)

func parseHandler(s *Server) http.HandlerFunc {
	return JSONHandler(http.MethodPost, s.log, func(ctx context.Context, req ParseRequest) (any, error) {
		sess := session.New(s.parser, session.WithLogger(s.log), session.WithSource(req.Source))
		if err := sess.Parse(ctx); err != nil {
			return nil, parseFailure(err)
		}
		return ParseResponse{
			Backend: sess.Backend(),
			Nodes:   sess.Outline().Count(),
			Outline: sess.Outline(),
			AST:     sess.Tree(),
		}, nil
	})
}

// parseFailure maps session errors to HTTP errors.
func parseFailure(err error) error {
	var perr *jsparser.ParseError
	switch {
	case errors.Is(err, session.ErrMissingParser):
		return &httpError{Status: http.StatusServiceUnavailable, Message: err.Error()}
	case errors.Is(err, session.ErrEmptyInput):
		return badRequest("%s", err.Error())
	case errors.As(err, &perr):
		return &httpError{
			Status:  http.StatusUnprocessableEntity,
			Message: perr.Error(),
			Fields: map[string]any{
				"backend": perr.Backend,
				"line":    perr.Line,
				"column":  perr.Column,
			},
		}
	default:
		return err
	}
}

func backendsHandler(s *Server) http.HandlerFunc {
	return JSONHandler(http.MethodGet, s.log, func(_ context.Context, _ struct{}) (any, error) {
		resp := BackendsResponse{Selected: jsparser.NoBackend}
		if s.parser != nil {
			resp.Selected = s.parser.Name()
		}
		for _, r := range jsparser.Probe(s.opts) {
			status := BackendStatus{Name: r.Name, Description: r.Description, Available: r.Available()}
			if r.Err != nil {
				status.Error = r.Err.Error()
			}
			resp.Backends = append(resp.Backends, status)
		}
		return resp, nil
	})
}

func healthHandler(s *Server) http.HandlerFunc {
	return JSONHandler(http.MethodGet, s.log, func(_ context.Context, _ struct{}) (any, error) {
		return map[string]string{"status": "ok"}, nil
	})
}
