// Package web provides the HTTP status server exposed while a migration runs.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JonMunkholm/pingmigrate/internal/core"
	weblog "github.com/JonMunkholm/pingmigrate/internal/web/middleware"
)

// StatusSource provides a snapshot of the migration run.
// *core.Migrator satisfies it.
type StatusSource interface {
	Status() core.Report
}

// Server serves health, run status and Prometheus metrics.
type Server struct {
	status   StatusSource
	registry *prometheus.Registry
	router   *chi.Mux
	server   *http.Server
}

// NewServer creates a new Server instance. registry may be nil, in which
// case /metrics is not mounted.
func NewServer(status StatusSource, registry *prometheus.Registry) *Server {
	s := &Server{
		status:   status,
		registry: registry,
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(weblog.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(securityHeaders)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/status", s.handleStatus)
	s.router.Get("/status/{entity}", s.handleEntityStatus)

	if s.registry != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
			Registry: s.registry,
		}))
	}

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "not found")
	})
}

// Timeouts bounds the connections of the status server. Zero means none.
type Timeouts struct {
	Read  time.Duration
	Write time.Duration
	Idle  time.Duration
}

// Start begins listening for HTTP requests. It blocks until the server
// stops; http.ErrServerClosed is returned after Shutdown.
func (s *Server) Start(addr string, t Timeouts) error {
	s.server = s.httpServer(addr, t)

	slog.Info("status server listening", "addr", addr)
	return s.server.ListenAndServe()
}

func (s *Server) httpServer(addr string, t Timeouts) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadTimeout:       t.Read,
		ReadHeaderTimeout: t.Read,
		WriteTimeout:      t.Write,
		IdleTimeout:       t.Idle,
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
