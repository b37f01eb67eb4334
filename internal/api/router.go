package api

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iconidentify/xresolve/internal/api/handler"
	mw "github.com/iconidentify/xresolve/internal/api/middleware"
)

// NewRouter creates the HTTP router with all routes configured.
func NewRouter(
	resolveHandler *handler.ResolveHandler,
	healthHandler *handler.HealthHandler,
	logger *slog.Logger,
	apiKey string,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CleanPath) // Normalize paths (e.g., //ready -> /ready)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS for browser clients
	r.Use(mw.CORS)

	// Health endpoints (no auth)
	r.Get("/health", healthHandler.Live)
	r.Get("/ready", healthHandler.Ready)

	// API v1 (authenticated)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(apiKey))

		// System stats
		r.Get("/stats", healthHandler.Stats)

		// Synchronous resolution
		r.Post("/resolve", resolveHandler.Resolve)
		r.Get("/posts/{postID}", resolveHandler.GetPost)

		// Asynchronous resolution
		r.Post("/jobs", resolveHandler.SubmitJob)
		r.Get("/jobs/{jobID}", resolveHandler.GetJob)

		// Resolution history
		r.Get("/history", resolveHandler.History)
		r.Get("/history/export", resolveHandler.ExportHistory)
	})

	return r
}
