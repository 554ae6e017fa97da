// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

/*
Package middleware provides the infrastructure HTTP middleware of the API.

Key Components:

  - RequestID: X-Request-ID propagation into the response and logging context
  - PrometheusMetrics: request counters, latency histograms and in-flight gauge
  - RequestLogger: one structured log line per request

All middleware has the chi signature func(http.Handler) http.Handler.

Middleware Stack:

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)

Metrics are labelled with the chi route pattern (for example
/api/movies/{id}) rather than the raw path, which keeps label cardinality
bounded by the number of routes. Requests that match no route are labelled
"unmatched".
*/
package middleware
