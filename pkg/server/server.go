// Package server exposes the generation pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                  liveness probe
//	POST /api/v1/variations        generate every variation, return scenes
//	POST /api/v1/logo.{format}     render one variation as svg, png, pdf or json
//	POST /api/v1/kits              build a brand kit, store its record, return the zip
//	GET  /api/v1/kits              list stored kit records, newest first
//	GET  /api/v1/kits/{id}         fetch one kit record
//
// Request bodies are [pipeline.Options] in JSON. Errors are returned as
// {"code": "...", "message": "..."} with the status derived from the error
// code.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/brandmark/pkg/pipeline"
	"github.com/matzehuels/brandmark/pkg/store"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxBodyBytes = 64 << 10
	shutdownTimeout     = 10 * time.Second
)

// Server serves the HTTP API. Create one with [New].
type Server struct {
	runner       *pipeline.Runner
	store        store.Store
	logger       *log.Logger
	workers      int
	timeout      time.Duration
	maxBodyBytes int64
	now          func() time.Time
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithWorkers bounds concurrent generation per request.
func WithWorkers(n int) Option { return func(s *Server) { s.workers = n } }

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMaxBodyBytes limits request body size.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithClock overrides the kit timestamp source.
func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }

// New creates a server. A nil runner gets an uncached one; a nil store gets
// an in-memory one.
func New(runner *pipeline.Runner, st store.Store, opts ...Option) *Server {
	s := &Server{
		runner:       runner,
		store:        st,
		logger:       log.NewWithOptions(io.Discard, log.Options{}),
		timeout:      defaultTimeout,
		maxBodyBytes: defaultMaxBodyBytes,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	if s.store == nil {
		s.store = store.NewMemoryStore()
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/variations", s.handleVariations)
		r.Post("/logo.{format}", s.handleLogo)
		r.Route("/kits", func(r chi.Router) {
			r.Post("/", s.handleCreateKit)
			r.Get("/", s.handleListKits)
			r.Get("/{id}", s.handleGetKit)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// Close releases the runner cache and the store.
func (s *Server) Close(ctx context.Context) error {
	return stderrors.Join(s.runner.Close(), s.store.Close(ctx))
}
