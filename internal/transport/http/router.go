package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"studiolens/internal/config"
	"studiolens/internal/middleware"
)

// NewRouter assembles the HTTP surface: report endpoints under /api,
// health and Prometheus metrics alongside.
func NewRouter(service ReportServiceInterface, cfg *config.Config, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	if cfg.Security.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.Security.RateLimit.RPS, cfg.Security.RateLimit.Burst, logger)
		r.Use(limiter.Handler)
	}

	reports := NewReportHandler(service, logger)
	r.Route("/api", func(r chi.Router) {
		r.Mount("/reports", reports.Routes())
		r.Get("/healthz", healthz)
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func healthz(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}
