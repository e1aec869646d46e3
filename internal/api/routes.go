package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router returns a configured chi router with all routes.
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)

	// WebSocket: no timeout middleware, the connection is long-lived.
	if h.Hub != nil {
		r.Get("/ws", h.Hub.ServeWs)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(10 * time.Second))

		// Match state (read-only)
		r.Get("/api/match", h.handleMatch)
		r.Get("/api/flags", h.handleFlags)
		r.Get("/api/flags/{id}", h.handleFlag)

		// Zones
		r.Get("/api/zones", h.handleZones)
		r.Get("/api/zones/{id}", h.handleZone)
		r.Get("/api/zones/{id}/perimeter", h.handleZonePerimeter)
		r.Put("/api/zones/{id}", h.handlePutZone)
		r.Delete("/api/zones/{id}", h.handleDeleteZone)

		// Player feed
		r.Put("/api/players/{id}", h.handlePutPlayer)
		r.Delete("/api/players/{id}", h.handleDeletePlayer)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, NotFound("Not found"))
	})

	return r
}
