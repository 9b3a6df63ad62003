// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/soyuz43/jsast-go/internal/jsparser"
	"github.com/soyuz43/jsast-go/internal/utils"
)

const shutdownGracePeriod = 5 * time.Second

// Config controls where the server listens and when it gives up.
type Config struct {
	Host string
	Port int
	// InactivityTimeout stops the server after this long without a request.
	// Zero disables the timeout.
	InactivityTimeout time.Duration
	// StateDir receives the port file while the server runs. Empty skips it.
	StateDir string
}

// Server exposes the parser over HTTP for editor integrations.
type Server struct {
	parser   jsparser.JsParser
	opts     jsparser.Options
	log      *logrus.Entry
	activity chan struct{}
}

// New creates a server around parser. A nil parser answers every parse
// request with 503.
func New(parser jsparser.JsParser, opts jsparser.Options, log *logrus.Entry) *Server {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Server{
		parser:   parser,
		opts:     opts,
		log:      log,
		activity: make(chan struct{}, 1),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	router := http.NewServeMux()
	router.HandleFunc("/parse", parseHandler(s))
	router.HandleFunc("/backends", backendsHandler(s))
	router.HandleFunc("/healthz", healthHandler(s))
	return trackActivity(router, s.activity)
}

// Listen opens the listener described by cfg. Port 0 picks a free port.
func Listen(cfg Config) (net.Listener, error) {
	listener, err := net.Listen("tcp", net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create listener")
	}
	return listener, nil
}

// Run listens according to cfg and serves until ctx is done or the
// inactivity timeout fires.
func (s *Server) Run(ctx context.Context, cfg Config) error {
	listener, err := Listen(cfg)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener, cfg)
}

// Serve runs the full lifecycle on an existing listener: port file, serving,
// graceful shutdown, port file cleanup.
func (s *Server) Serve(ctx context.Context, listener net.Listener, cfg Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	port := listener.Addr().(*net.TCPAddr).Port
	if cfg.StateDir != "" {
		if err := utils.WritePortFile(cfg.StateDir, port); err != nil {
			listener.Close()
			return errors.Wrap(err, "port file write failed")
		}
		defer func() {
			if err := utils.DeletePortFile(cfg.StateDir); err != nil {
				s.log.WithError(err).Warn("Could not remove port file")
			}
		}()
	}

	server := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		reason := s.waitForShutdown(ctx, cfg.InactivityTimeout)
		s.log.WithField("reason", reason).Info("Shutting down server")

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancelShutdown()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.log.WithField("addr", listener.Addr().String()).Info("Server listening")
	if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
		cancel()
		<-stopped
		return errors.Wrap(err, "server error")
	}
	<-stopped

	s.log.Info("Server shutdown completed successfully")
	return nil
}

func (s *Server) waitForShutdown(ctx context.Context, timeout time.Duration) string {
	var expired <-chan time.Time
	var timer *time.Timer
	if timeout > 0 {
		timer = time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return "received shutdown signal"
		case <-expired:
			return "inactivity timeout reached"
		case <-s.activity:
			if timer != nil {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(timeout)
			}
		}
	}
}
