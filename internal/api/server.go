package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/paperdesk/internal/config"
	"github.com/dgallion1/paperdesk/internal/marketdata"
	"github.com/dgallion1/paperdesk/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP server for the indicator dashboard.
type Server struct {
	router   chi.Router
	provider marketdata.Provider
	stats    *marketdata.FetchStats
	metrics  *metrics.Recorder
	registry *prometheus.Registry
	log      *slog.Logger
	cfg      config.ServerConfig
}

// NewServer creates and configures the HTTP server. stats may be nil when
// the provider does not track latency.
func NewServer(provider marketdata.Provider, stats *marketdata.FetchStats, reg *prometheus.Registry, log *slog.Logger, cfg config.ServerConfig) *Server {
	s := &Server{
		provider: provider,
		stats:    stats,
		metrics:  metrics.New(reg),
		registry: reg,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(s.metrics.Middleware)

	// Public endpoints.
	r.Get("/", s.handleIndex)
	r.Get("/dashboard", s.handleDashboard)
	r.Get("/download", s.handleDownload)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	// JSON endpoints, authenticated when an API key is configured.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Get("/api/series", s.handleSeries)
		r.Get("/api/stats/fetch", s.handleFetchStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
