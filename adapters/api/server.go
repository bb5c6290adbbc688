// Package api serves diagnostics runs over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"goresid/app"
	"goresid/domain/diagnostics"
	"goresid/internal"
	"goresid/internal/config"
	apperrors "goresid/internal/errors"
	"goresid/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/semaphore"
)

// DefaultMaxConcurrentRuns bounds runs when no limit is configured.
const DefaultMaxConcurrentRuns = 4

// maxBodyBytes caps a request body.
const maxBodyBytes = 32 << 20

// Server routes HTTP requests to a DiagnosticsService.
type Server struct {
	router  *chi.Mux
	service *app.DiagnosticsService
	runs    *semaphore.Weighted
	metrics *Metrics
	logger  *internal.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithMaxConcurrentRuns sets the semaphore weight.
func WithMaxConcurrentRuns(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.runs = semaphore.NewWeighted(n)
		}
	}
}

// WithMetrics serves m on /metrics. Pass the same value to
// app.WithObserver so runs are recorded.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithLogger sets the request logger.
func WithLogger(l *internal.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// NewServer creates a server with routes and middleware installed.
func NewServer(service *app.DiagnosticsService, opts ...Option) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		service: service,
		runs:    semaphore.NewWeighted(DefaultMaxConcurrentRuns),
		logger:  internal.NewDefaultLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// NewFromConfig wires a diagnostics service over the given registries to a
// server, with defaults and limits taken from cfg.
func NewFromConfig(cfg *config.Config, models ports.ModelRegistry, scoring ports.ScoringRegistry, logger *internal.Logger) *Server {
	metrics := NewMetrics()
	svc := app.NewDiagnosticsService(models, scoring,
		app.WithAlpha(cfg.Diagnostics.Alpha),
		app.WithSequenceOrder(diagnostics.SequenceOrder(cfg.Diagnostics.SequenceOrder)),
		app.WithLogger(logger),
		app.WithObserver(metrics),
	)
	return NewServer(svc,
		WithMetrics(metrics),
		WithLogger(logger),
		WithMaxConcurrentRuns(int64(cfg.Server.MaxConcurrentRuns)),
	)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.requestLogger)
}

func (s *Server) setupRoutes() {
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, apperrors.NotFound("route "+r.URL.Path))
	})
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", s.metrics.Handler())
	s.router.Route("/v1", func(r chi.Router) {
		r.Get("/models", s.handleModels)
		r.Post("/diagnostics", s.handleDiagnostics)
	})
}

// requestLogger logs method, path, status and latency at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("%s %s -> %d in %s (request %s)",
			r.Method, r.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(r.Context()))
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then drains in-flight
// requests for up to ten seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
