// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

/*
Package middleware provides chi-compatible HTTP middleware for request
tracing, access logging and Prometheus instrumentation.

Key Components:

  - RequestID: accepts or generates X-Request-ID and stores it, with a
    fresh correlation ID, in the logging context
  - AccessLog: one structured zerolog line per request
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern so path parameters do not explode cardinality

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
