// Package api exposes the lead prioritization pipeline over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/sells-group/lead-agent/internal/catalog"
	"github.com/sells-group/lead-agent/internal/config"
	"github.com/sells-group/lead-agent/internal/pipeline"
)

// Server holds the dependencies shared by all handlers.
type Server struct {
	pipeline *pipeline.Pipeline
	catalog  *catalog.Catalog
	metrics  *Metrics
	cfg      config.ServerConfig
	now      func() time.Time
}

// NewServer creates a Server. The pipeline should report to m so /metrics
// includes run counters.
func NewServer(p *pipeline.Pipeline, c *catalog.Catalog, m *Metrics, cfg config.ServerConfig) *Server {
	if m == nil {
		m = NewMetrics()
	}
	return &Server{
		pipeline: p,
		catalog:  c,
		metrics:  m,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(accessLog(s.metrics))
	r.Use(recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader, "Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(rateLimit(s.cfg.RateLimit, s.cfg.RateBurst))
		r.Use(maxBody(s.cfg.MaxBodyBytes))

		r.Get("/catalog", s.handleCatalog)
		r.Post("/lead-agent", s.handlePrioritize)
		r.Post("/lead-agent/export", s.handleExport)
	})

	return r
}

// HTTPServer wraps Handler in an http.Server using the configured address
// and timeouts.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(s.cfg.ReadTimeoutSecs) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.WriteTimeoutSecs) * time.Second,
	}
}
