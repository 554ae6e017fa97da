// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/logging"
	"github.com/tomtom215/cinemapulse/internal/metrics"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"generated", "", false},
		{"preserved", "upstream-id-123", true},
		{"oversized replaced", strings.Repeat("x", 200), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var seen string
			h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				seen = logging.RequestIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if got != seen {
				t.Errorf("header %q != context %q", got, seen)
			}
			if tt.keep {
				if got != tt.incoming {
					t.Errorf("id = %q, want %q", got, tt.incoming)
				}
				return
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("generated id %q is not a UUID", got)
			}
		})
	}
}

func TestPrometheusMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/api/movies/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/api/movies/{id}", "418"))
	for _, id := range []string{"movie_001", "movie_002"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/movies/"+id, nil))
	}
	after := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/api/movies/{id}", "418"))

	if after-before != 2 {
		t.Errorf("counter delta = %v, want 2", after-before)
	}
}

func TestPrometheusMetricsDefaultStatus(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/implicit", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	before := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/implicit", "200"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/implicit", nil))
	after := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/implicit", "200"))
	if after-before != 1 {
		t.Errorf("counter delta = %v, want 1", after-before)
	}
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(logger))
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		logging.Ctx(r.Context()).Info().Msg("inside handler")
		w.WriteHeader(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	r.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{`"level":"error"`, `"status":500`, `"route":"/boom"`, `"request_id":"req-42"`, `"message":"inside handler"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}
