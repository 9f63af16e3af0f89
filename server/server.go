// Package server exposes schema inference, validation and learning over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/mux"

	"github.com/siegeai/schemalike/apispec"
)

const (
	defaultMaxBodyBytes = 1 << 20
	shutdownTimeout     = 5 * time.Second
)

type Options struct {
	// Title and Version describe the document served at /openapi.json.
	Title   string
	Version string

	MaxBodyBytes int64
}

type Server struct {
	router  *mux.Router
	learner *apispec.Learner
	metrics *metrics
	opts    Options
}

func New(opts Options) *Server {
	if opts.Title == "" {
		opts.Title = "schemalike"
	}
	if opts.Version == "" {
		opts.Version = "0.0.0"
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}

	s := &Server{
		router:  mux.NewRouter(),
		learner: apispec.NewLearner(),
		metrics: newMetrics(),
		opts:    opts,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	slog.Info("listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "listen")
	}
	if err := <-done; err != nil {
		return errors.Wrap(err, "shutdown")
	}
	slog.Info("server stopped")
	return nil
}
