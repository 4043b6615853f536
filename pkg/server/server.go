// Package server is the HTTP surface: the Strava webhook endpoint plus
// health and metrics.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EventProcessor handles one activity event. Implemented by
// analyzer.Service.
type EventProcessor interface {
	ProcessEvent(ctx context.Context, athleteID, activityID int64) error
}

// processTimeout bounds one background analysis, including Strava API
// round-trips and an optional model call.
const processTimeout = 2 * time.Minute

// Server holds dependencies for HTTP handlers.
type Server struct {
	processor   EventProcessor
	verifyToken string
	log         *slog.Logger
	router      chi.Router
}

// New creates a new Server with all routes configured.
func New(processor EventProcessor, verifyToken string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		processor:   processor,
		verifyToken: verifyToken,
		log:         log,
		router:      chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))

	s.router.Get("/webhook", s.handleVerification)
	s.router.Post("/webhook", s.handleEvent)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())
}

// RequestLogging returns middleware that logs each request.
func RequestLogging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start).String(),
			)
		})
	}
}

// statusWriter wraps ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
