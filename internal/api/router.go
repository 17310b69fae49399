// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/radiolite/internal/middleware"
)

// NewRouter builds the HTTP handler tree.
func NewRouter(h *Handler, cfg MiddlewareConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(corsHandler(cfg)) // global so OPTIONS preflight is answered
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/health", func(r chi.Router) {
			r.Get("/", h.Health)
			r.Get("/live", h.HealthLive)
			r.Get("/ready", h.HealthReady)
		})

		r.Group(func(r chi.Router) {
			r.Use(rateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow, cfg.RateLimitDisabled))
			r.Use(chimiddleware.Compress(5, "application/json"))

			r.Route("/stations", func(r chi.Router) {
				r.Get("/stats", h.StationStats)
				r.Get("/top", h.TopStations)
				r.Get("/search", h.SearchStations)
				r.Get("/countries", h.Countries)
				r.Get("/languages", h.Languages)
				r.Get("/tags", h.Tags)
				r.Get("/global-search", h.GlobalSearch)
				r.Get("/featured", h.FeaturedRegions)
				r.Get("/featured/{region}", h.Featured)
				r.With(h.requireAdmin).Post("/cache/flush", h.FlushCache)
			})

			r.With(rateLimit(loginRateLimit, loginRateWindow, cfg.RateLimitDisabled)).
				Post("/auth/token", h.Token)

			r.Route("/releases", func(r chi.Router) {
				r.Get("/latest", h.LatestRelease)
				r.Get("/download/{assetID}", h.DownloadRelease)
			})

			r.Route("/track", func(r chi.Router) {
				r.Post("/app-open", h.TrackAppOpen)
				r.Post("/station-play", h.TrackStationPlay)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(h.requireAdmin)
				r.Get("/overview", h.AdminOverview)
				r.Get("/stations", h.AdminStations)
			})
		})
	})

	return r
}
