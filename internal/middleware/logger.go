// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/logging"
)

// SlowRequestThreshold promotes request log lines to warn.
const SlowRequestThreshold = time.Second

// RequestLogger logs one line per request and stores a request-scoped logger
// in the context for logging.Ctx. 5xx responses log at error, slow requests
// at warn, everything else at debug.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	base := logger.With().Str("component", "http").Logger()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			reqLogger := base.With().Str("request_id", logging.RequestIDFromContext(r.Context())).Logger()
			ctx := logging.ContextWithLogger(r.Context(), reqLogger)

			next.ServeHTTP(ww, r.WithContext(ctx))

			status := statusOf(ww)
			elapsed := time.Since(start)

			var ev *zerolog.Event
			switch {
			case status >= http.StatusInternalServerError:
				ev = reqLogger.Error()
			case elapsed >= SlowRequestThreshold:
				ev = reqLogger.Warn()
			default:
				ev = reqLogger.Debug()
			}
			ev.Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", routePattern(r)).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", elapsed).
				Str("remote", r.RemoteAddr).
				Msg("request")
		})
	}
}
