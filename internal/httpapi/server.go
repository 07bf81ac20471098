// Package httpapi is a thin read-only HTTP surface over the
// market-calendar engine: valid_days, schedule, and open_at_time as JSON
// endpoints, grounded on the teacher's chi+cors server setup.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/marketframe/pkg/market"
)

// Config configures the HTTP server.
type Config struct {
	Port        int
	Log         zerolog.Logger
	CORSOrigins []string
	// Calendars maps an exchange name to its Calendar, used to resolve the
	// {exchange} path parameter on every route.
	Calendars map[string]*market.Calendar
}

// Server is the marketframe read-only HTTP API.
type Server struct {
	router    *chi.Mux
	server    *http.Server
	log       zerolog.Logger
	calendars map[string]*market.Calendar
	port      int
}

// New builds a Server from cfg.
func New(cfg Config) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		log:       cfg.Log.With().Str("component", "httpapi").Logger(),
		calendars: cfg.Calendars,
		port:      cfg.Port,
	}

	s.setupMiddleware(cfg.CORSOrigins)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware(origins []string) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(30 * time.Second))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Route("/api/v1/exchanges/{exchange}", func(r chi.Router) {
		r.Get("/valid-days", s.handleValidDays)
		r.Get("/schedule", s.handleSchedule)
		r.Get("/open-at", s.handleOpenAtTime)
	})
}

// Start runs the server until it errors or is shut down.
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Msg("starting marketframe HTTP API")
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down marketframe HTTP API")
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}

func (s *Server) calendar(w http.ResponseWriter, r *http.Request) (*market.Calendar, bool) {
	name := chi.URLParam(r, "exchange")
	cal, ok := s.calendars[name]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown exchange %q", name))
		return nil, false
	}
	return cal, true
}
