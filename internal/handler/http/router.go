package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	searchsvc "github.com/Niharika209/kalakendra-discovery/internal/search"
	"github.com/Niharika209/kalakendra-discovery/internal/sync"
	"github.com/Niharika209/kalakendra-discovery/pkg/health"
	"github.com/Niharika209/kalakendra-discovery/pkg/middleware"
)

// NewRouter creates a chi router with all discovery service routes registered.
func NewRouter(
	service *searchsvc.Service,
	scheduler *sync.Scheduler,
	healthHandler *health.Handler,
	environment string,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.Environment = environment
	r.Use(middleware.CORS(corsCfg))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	// After RequestLogging, so panic logs carry the correlation ID.
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.PrometheusMetrics("discovery"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Search API endpoints
	searchHandler := NewSearchHandler(service, logger)

	r.Route("/api/v1/search", func(r chi.Router) {
		r.Get("/instructors", searchHandler.SearchArtists)
		r.Get("/workshops", searchHandler.SearchWorkshops)
		r.Get("/autocomplete", searchHandler.Autocomplete)
	})

	// Job control surface
	adminHandler := NewAdminHandler(scheduler, logger)

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Get("/jobs", adminHandler.ListJobs)
		r.Post("/jobs/{name}/run", adminHandler.RunJob)
		r.Post("/reindex", adminHandler.Reindex)
	})

	return r
}
