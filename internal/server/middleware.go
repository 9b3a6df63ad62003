// internal/server/middleware.go

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/soyuz43/jsast-go/internal/ast"
)

// maxRequestBytes bounds the size of a request body.
const maxRequestBytes = 8 << 20

// httpError carries a status code and extra response fields.
type httpError struct {
	Status  int
	Message string
	Fields  map[string]any
}

func (e *httpError) Error() string { return e.Message }

func badRequest(format string, args ...any) error {
	return &httpError{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// JSONHandler creates a handler for JSON requests and responses with unified
// error handling. GET handlers receive the zero request value.
func JSONHandler[T any](method string, log *logrus.Entry, logic func(context.Context, T) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if r.Method != method {
			w.Header().Set("Allow", method)
			writeError(w, log, &httpError{
				Status:  http.StatusMethodNotAllowed,
				Message: fmt.Sprintf("Method %s not allowed", r.Method),
			})
			return
		}

		var req T
		if method != http.MethodGet {
			dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
			if err := dec.Decode(&req); err != nil {
				writeError(w, log, badRequest("Invalid request format"))
				return
			}
		}

		response, err := logic(r.Context(), req)
		if err != nil {
			writeError(w, log, err)
			return
		}

		body, err := ast.MarshalIndent(response)
		if err != nil {
			writeError(w, log, errors.Wrap(err, "Failed to marshal response"))
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body + "\n"))
	}
}

// writeError handles error responses consistently.
func writeError(w http.ResponseWriter, log *logrus.Entry, err error) {
	status := http.StatusInternalServerError
	payload := ast.NewObject()

	var herr *httpError
	if errors.As(err, &herr) {
		status = herr.Status
		payload.Set("error", herr.Message)
		keys := make([]string, 0, len(herr.Fields))
		for k := range herr.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			payload.Set(k, herr.Fields[k])
		}
	} else {
		payload.Set("error", err.Error())
	}

	log.WithField("status", status).WithError(err).Warn("HTTP request failed")
	w.WriteHeader(status)
	if body, mErr := ast.MarshalIndent(payload); mErr == nil {
		w.Write([]byte(body + "\n"))
	}
}

// trackActivity reports every request on activity without blocking.
func trackActivity(next http.Handler, activity chan<- struct{}) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case activity <- struct{}{}:
		default:
		}
		next.ServeHTTP(w, r)
	})
}
