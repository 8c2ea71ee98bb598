package api

import (
	"crypto/ed25519"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tpc3/MisskeyIntegrate/internal/api/middleware"
	"github.com/tpc3/MisskeyIntegrate/internal/handlers"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(logger zerolog.Logger, pubkey ed25519.PublicKey, h *handlers.Handler) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	// Security middleware
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(1 << 20)) // 1MB max body, attachments stay on the platform's CDN

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// Operational endpoints
	r.Get("/", h.Root)
	r.Get("/health", h.Health)

	// Webhook endpoint (requires a valid platform signature)
	r.Group(func(r chi.Router) {
		r.Use(middleware.VerifySignature(pubkey))
		r.Post("/interactions", h.Interactions)
	})

	return r
}
