package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/regtech-labs/finregx/internal/domain"
	"github.com/regtech-labs/finregx/internal/gaps"
	"github.com/regtech-labs/finregx/internal/pipeline"
)

// Server represents the HTTP API server.
type Server struct {
	router  *chi.Mux
	handler *Handler
	server  *http.Server
	config  domain.ServerConfig
}

// NewServer creates a new API server.
func NewServer(cfg domain.ServerConfig, throttle domain.ThrottleConfig, repo domain.Repository, cache domain.Cache, bus domain.EventBus, checks *gaps.CheckEngine, processor *pipeline.Processor, version string, async bool) *Server {
	handler := NewHandler(repo, cache, bus, checks, processor, version, async)
	router := chi.NewRouter()

	// Global middleware stack
	router.Use(CORSMiddleware)         // CORS for browser clients
	router.Use(RecoverMiddleware)      // Recover from panics
	router.Use(TracingMiddleware)      // OpenTelemetry tracing
	router.Use(LoggingMiddleware)      // Request logging
	router.Use(middleware.RealIP)      // Extract real IP
	router.Use(middleware.Compress(5)) // Gzip compression

	// Health endpoints (no tenant required)
	router.Get("/health", handler.Health)
	router.Get("/ready", handler.Ready)

	// API routes (tenant required)
	router.Route("/", func(r chi.Router) {
		r.Use(TenantMiddleware)

		// Assessment lifecycle
		r.Post("/assessments", handler.CreateAssessment)
		r.Get("/assessments", handler.ListAssessments)
		r.Get("/assessments/{id}", handler.GetAssessment)

		// Document submission is the expensive path and carries the throttle
		r.With(ThrottleMiddleware(cache, throttle)).
			Post("/assessments/{id}/documents", handler.SubmitDocuments)

		// Knowledge base (read only)
		r.Get("/articles", handler.ListArticles)
		r.Get("/articles/{id}", handler.GetArticle)
		r.Get("/capital-requirements", handler.ListCapitalRequirements)
		r.Get("/resources", handler.ListResources)

		// Custom check management
		r.Get("/checks", handler.ListChecks)
		r.Get("/checks/{id}", handler.GetCheck)
		r.Post("/checks", handler.CreateCheck)
		r.Post("/checks/reload", handler.ReloadChecks)
	})

	return &Server{
		router:  router,
		handler: handler,
		config:  cfg,
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.WriteTimeout) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the Chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Handler returns the handler for testing.
func (s *Server) Handler() *Handler {
	return s.handler
}
