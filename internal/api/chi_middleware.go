// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/cinemapulse/internal/config"
	"github.com/tomtom215/cinemapulse/internal/metrics"
)

// ChiMiddlewareConfig holds configuration for Chi middleware factories.
type ChiMiddlewareConfig struct {
	CORSAllowedOrigins   []string
	CORSAllowedMethods   []string
	CORSAllowedHeaders   []string
	CORSExposedHeaders   []string
	CORSAllowCredentials bool
	CORSMaxAge           int // seconds

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
}

// ChiMiddlewareConfigFrom maps the api config section. Credentials are
// allowed only for explicit origins; browsers reject them with "*".
func ChiMiddlewareConfigFrom(cfg config.APIConfig) *ChiMiddlewareConfig {
	allowCredentials := len(cfg.CORSOrigins) > 0
	for _, o := range cfg.CORSOrigins {
		if o == "*" {
			allowCredentials = false
		}
	}
	return &ChiMiddlewareConfig{
		CORSAllowedOrigins:   cfg.CORSOrigins,
		CORSAllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		CORSAllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		CORSExposedHeaders:   []string{"X-Request-ID"},
		CORSAllowCredentials: allowCredentials,
		CORSMaxAge:           86400,

		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
		RateLimitDisabled: cfg.RateLimitDisabled,
	}
}

// ChiMiddleware provides the CORS and rate limiting middleware.
type ChiMiddleware struct {
	config *ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewChiMiddleware creates the middleware factory.
func NewChiMiddleware(cfg *ChiMiddlewareConfig) *ChiMiddleware {
	return &ChiMiddleware{
		config: cfg,
		cors: cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   cfg.CORSAllowedMethods,
			AllowedHeaders:   cfg.CORSAllowedHeaders,
			ExposedHeaders:   cfg.CORSExposedHeaders,
			AllowCredentials: cfg.CORSAllowCredentials,
			MaxAge:           cfg.CORSMaxAge,
		}),
	}
}

// CORS returns the go-chi/cors handler. It must be global so that OPTIONS
// preflights reach it.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit limits requests per client IP with go-chi/httprate.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled || m.config.RateLimitRequests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		m.config.RateLimitRequests,
		m.config.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
			respondError(w, r, http.StatusTooManyRequests, CodeRateLimited, "Too many requests, please slow down", nil)
		}),
	)
}
