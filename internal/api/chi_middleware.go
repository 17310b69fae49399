// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/radiolite/internal/config"
)

// Login attempts are limited separately from general traffic.
const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// MiddlewareConfig holds CORS and rate-limit settings.
type MiddlewareConfig struct {
	CORSAllowedOrigins []string
	RateLimitRequests  int
	RateLimitWindow    time.Duration
	RateLimitDisabled  bool
}

// MiddlewareConfigFrom derives middleware settings from security config.
func MiddlewareConfigFrom(cfg *config.SecurityConfig) MiddlewareConfig {
	return MiddlewareConfig{
		CORSAllowedOrigins: cfg.CORSOrigins,
		RateLimitRequests:  cfg.RateLimitReqs,
		RateLimitWindow:    cfg.RateLimitWindow,
		RateLimitDisabled:  cfg.RateLimitDisabled,
	}
}

// corsHandler allows credentials only for explicit origins; the cors
// package refuses credentials with a wildcard anyway.
func corsHandler(cfg MiddlewareConfig) func(http.Handler) http.Handler {
	wildcard := len(cfg.CORSAllowedOrigins) == 0
	for _, o := range cfg.CORSAllowedOrigins {
		if o == "*" {
			wildcard = true
		}
	}
	origins := cfg.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: !wildcard,
		MaxAge:           86400,
	})
}

// rateLimit limits by client IP. chimiddleware.RealIP must run first.
func rateLimit(requests int, window time.Duration, disabled bool) func(http.Handler) http.Handler {
	if disabled || requests <= 0 || window <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, r, http.StatusTooManyRequests, ErrCodeRateLimited, "Too many requests", nil)
		}),
	)
}
