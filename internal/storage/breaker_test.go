// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/config"
	"github.com/tomtom215/cinemapulse/internal/metrics"
	"github.com/tomtom215/cinemapulse/internal/models"
)

func testBreakerConfig() config.BreakerConfig {
	return config.BreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Hour,
		FailureThreshold: 3,
	}
}

func TestBreakerGateway_OpensOnUnavailable(t *testing.T) {
	ctx := context.Background()
	inner := newFlakyGateway(unavailable("get movie", errors.New("connection refused")))
	gw := NewBreakerGateway(inner, testBreakerConfig(), zerolog.Nop())

	inner.down = true
	for i := 0; i < 3; i++ {
		if _, err := gw.GetMovie(ctx, "movie_001"); !errors.Is(err, ErrUnavailable) {
			t.Fatalf("call %d error = %v, want ErrUnavailable", i, err)
		}
	}
	if gw.State() != "open" {
		t.Fatalf("State() = %q, want open", gw.State())
	}

	// Open breaker fails fast without reaching the backend.
	inner.down = false
	before := inner.calls
	_, err := gw.GetMovie(ctx, "movie_001")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("open breaker error = %v, want ErrUnavailable", err)
	}
	if inner.calls != before {
		t.Errorf("backend called %d times while open", inner.calls-before)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("storage-flaky")); got != 2 {
		t.Errorf("breaker gauge = %v, want 2", got)
	}
}

func TestBreakerGateway_DomainErrorsDoNotTrip(t *testing.T) {
	ctx := context.Background()
	inner := newFlakyGateway(nil)
	gw := NewBreakerGateway(inner, testBreakerConfig(), zerolog.Nop())

	for i := 0; i < 10; i++ {
		err := gw.UpdateMovieStats(ctx, "missing", models.MovieStats{})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("UpdateMovieStats() error = %v, want ErrNotFound", err)
		}
	}
	if gw.State() != "closed" {
		t.Errorf("State() = %q, want closed", gw.State())
	}
}

func TestBreakerGateway_PassesThroughResults(t *testing.T) {
	ctx := context.Background()
	inner := newFlakyGateway(nil)
	gw := NewBreakerGateway(inner, testBreakerConfig(), zerolog.Nop())

	if m, err := gw.GetMovie(ctx, "movie_001"); err != nil || m != nil {
		t.Fatalf("GetMovie(missing) = %+v, %v; want nil, nil", m, err)
	}
	_ = gw.PutMovie(ctx, &models.Movie{MovieID: "movie_001", Title: "X", Active: true})
	m, err := gw.GetMovie(ctx, "movie_001")
	if err != nil || m == nil || m.Title != "X" {
		t.Fatalf("GetMovie() = %+v, %v", m, err)
	}
	if gw.Name() != "flaky" {
		t.Errorf("Name() = %q", gw.Name())
	}
}

func TestBreakerGateway_Disabled(t *testing.T) {
	ctx := context.Background()
	inner := newFlakyGateway(fmt.Errorf("wrapped: %w", ErrUnavailable))
	cfg := testBreakerConfig()
	cfg.Enabled = false
	gw := NewBreakerGateway(inner, cfg, zerolog.Nop())

	inner.down = true
	for i := 0; i < 5; i++ {
		_, _ = gw.GetMovie(ctx, "movie_001")
	}
	if gw.State() != "disabled" {
		t.Errorf("State() = %q, want disabled", gw.State())
	}
	inner.down = false
	before := inner.calls
	if _, err := gw.GetMovie(ctx, "movie_001"); err != nil {
		t.Errorf("GetMovie() error = %v", err)
	}
	if inner.calls != before+1 {
		t.Error("disabled breaker did not reach the backend")
	}
}

func TestBreakerGateway_RecordsMetrics(t *testing.T) {
	ctx := context.Background()
	inner := newFlakyGateway(nil)
	gw := NewBreakerGateway(inner, testBreakerConfig(), zerolog.Nop())

	counter := metrics.StorageOperations.WithLabelValues("flaky", "count_reviews", metrics.ResultOK)
	before := testutil.ToFloat64(counter)
	if _, err := gw.CountReviews(ctx); err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("counter = %v, want %v", got, before+1)
	}
}
