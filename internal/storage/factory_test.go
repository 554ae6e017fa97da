// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/config"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Storage: config.StorageConfig{
			Backend:        backend,
			FallbackToFile: true,
			FilePath:       filepath.Join(dir, "fallback.json"),
			BadgerDir:      filepath.Join(dir, "badger"),
		},
		Breaker: config.BreakerConfig{Enabled: true, MaxRequests: 1, Interval: time.Minute, Timeout: time.Second, FailureThreshold: 5},
	}
}

func TestOpen_Backends(t *testing.T) {
	t.Parallel()

	tests := []struct {
		backend string
		want    string
	}{
		{config.BackendMemory, "memory"},
		{config.BackendFile, "file"},
		{config.BackendBadger, "badger"},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			t.Parallel()
			h, err := Open(context.Background(), testConfig(t, tt.backend), zerolog.Nop())
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer h.Gateway.Close()

			if h.Gateway.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", h.Gateway.Name(), tt.want)
			}
			if h.FellBack {
				t.Error("FellBack = true")
			}
			if (h.Badger != nil) != (tt.backend == config.BackendBadger) {
				t.Errorf("Badger handle = %v for backend %s", h.Badger, tt.backend)
			}
		})
	}
}

func TestOpen_FallsBackToFile(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t, config.BackendBadger)

	// A regular file where the badger directory should be makes Open fail.
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg.Storage.BadgerDir = filepath.Join(blocker, "badger")

	h, err := Open(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer h.Gateway.Close()

	if !h.FellBack || h.Gateway.Name() != "file" {
		t.Errorf("FellBack = %v, Name() = %q; want fallback to file", h.FellBack, h.Gateway.Name())
	}
	if h.Requested != config.BackendBadger {
		t.Errorf("Requested = %q", h.Requested)
	}
}

func TestOpen_NoFallback(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t, "cassandra")
	cfg.Storage.FallbackToFile = false

	if _, err := Open(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Error("Open() with unknown backend and no fallback succeeded")
	}
}

func TestSeedCatalog_InsertsOnlyMissing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gw := NewMemoryGateway()
	now := time.Now()

	n, err := SeedCatalog(ctx, gw, now, zerolog.Nop())
	if err != nil || n != 8 {
		t.Fatalf("SeedCatalog() = %d, %v; want 8", n, err)
	}

	// Existing stats survive a second seed.
	_ = gw.UpdateMovieStats(ctx, "movie_001", modelsStats(4, 4.25))
	n, err = SeedCatalog(ctx, gw, now, zerolog.Nop())
	if err != nil || n != 0 {
		t.Fatalf("second SeedCatalog() = %d, %v; want 0", n, err)
	}
	m, _ := gw.GetMovie(ctx, "movie_001")
	if m.TotalReviews != 4 || m.AvgRating != 4.25 {
		t.Errorf("stats overwritten by seed: %+v", m)
	}

	movies, _ := gw.ListActiveMovies(ctx)
	if len(movies) != 8 {
		t.Errorf("ListActiveMovies() len = %d, want 8", len(movies))
	}
}
