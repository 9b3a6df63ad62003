// internal/jsparser/registry.go

package jsparser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// AutoBackend selects the first backend whose probe succeeds.
	AutoBackend = "auto"
	// NoBackend disables parsing.
	NoBackend = "none"
)

// probeSource is parsed by every backend during probing.
const probeSource = "var probe = 1;"

const probeTimeout = 5 * time.Second

// Backend describes a parser implementation that can be probed at startup.
type Backend struct {
	Name        string
	Description string
	New         func(opts Options) JsParser
}

// ProbeResult is the outcome of probing one backend.
type ProbeResult struct {
	Name        string
	Description string
	Err         error
}

// Available reports whether the probe succeeded.
func (r ProbeResult) Available() bool {
	return r.Err == nil
}

// Backends returns the known backends in preference order.
func Backends() []Backend {
	return []Backend{
		{
			Name:        TreeSitterBackend,
			Description: "tree-sitter JavaScript grammar (cgo)",
			New:         func(opts Options) JsParser { return NewTreeSitterParser(opts) },
		},
		{
			Name:        GojaBackend,
			Description: "goja ECMAScript parser (pure Go)",
			New:         func(opts Options) JsParser { return NewGojaParser(opts) },
		},
	}
}

// BackendNames lists the values accepted by Select.
func BackendNames() []string {
	names := []string{AutoBackend}
	for _, b := range Backends() {
		names = append(names, b.Name)
	}
	return append(names, NoBackend)
}

// Probe constructs every backend and checks that it can parse a trivial program.
func Probe(opts Options) []ProbeResult {
	backends := Backends()
	results := make([]ProbeResult, 0, len(backends))
	for _, b := range backends {
		_, err := probe(b, opts)
		results = append(results, ProbeResult{Name: b.Name, Description: b.Description, Err: err})
	}
	return results
}

func probe(b Backend, opts Options) (p JsParser, err error) {
	defer func() {
		if r := recover(); r != nil {
			p = nil
			err = fmt.Errorf("backend %s panicked: %v", b.Name, r)
		}
	}()

	p = b.New(opts)
	if p == nil {
		return nil, errors.Errorf("backend %s could not be constructed", b.Name)
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	if _, err := p.Parse(ctx, probeSource); err != nil {
		return nil, errors.Wrapf(err, "backend %s failed its probe", b.Name)
	}
	return p, nil
}

// Select picks the parser used for the rest of the process. "auto" (or an
// empty name) falls back through Backends in order; a named backend must pass
// its probe; "none" disables parsing. ErrMissingParser is returned when no
// backend can be used.
func Select(preferred string, opts Options, log *logrus.Entry) (JsParser, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	name := strings.ToLower(strings.TrimSpace(preferred))
	if name == "" {
		name = AutoBackend
	}

	switch name {
	case NoBackend:
		log.Warn("JavaScript parsing disabled by configuration")
		return nil, ErrMissingParser
	case AutoBackend:
		for _, b := range Backends() {
			p, err := probe(b, opts)
			if err != nil {
				log.WithError(err).WithField("backend", b.Name).Debug("parser backend unavailable, trying next")
				continue
			}
			log.WithField("backend", b.Name).Info("selected parser backend")
			return p, nil
		}
		return nil, ErrMissingParser
	}

	for _, b := range Backends() {
		if b.Name != name {
			continue
		}
		p, err := probe(b, opts)
		if err != nil {
			log.WithError(err).WithField("backend", b.Name).Warn("requested parser backend unavailable")
			return nil, errors.Wrap(ErrMissingParser, err.Error())
		}
		log.WithField("backend", b.Name).Info("selected parser backend")
		return p, nil
	}
	return nil, errors.Errorf("unknown parser backend %q (choose one of %s)", preferred, strings.Join(BackendNames(), ", "))
}
