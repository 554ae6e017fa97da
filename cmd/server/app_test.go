// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/config"
	"github.com/tomtom215/cinemapulse/internal/storage"
)

func testAppConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	dir := t.TempDir()
	cfg.Storage.Backend = config.BackendMemory
	cfg.Storage.FilePath = filepath.Join(dir, "cinemapulse.json")
	cfg.Storage.BadgerDir = filepath.Join(dir, "badger")
	cfg.Auth.SessionStore = "memory"
	cfg.Auth.JWTSecret = "app-test-secret-0123456789abcdef"
	cfg.Notify.Enabled = false
	return cfg
}

func TestNewApp(t *testing.T) {
	cfg := testAppConfig(t)

	a, err := newApp(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	defer a.close()

	if a.server == nil || a.server.Handler == nil {
		t.Fatal("newApp() returned no HTTP server")
	}
	if a.storage.Gateway.Name() != "memory" {
		t.Errorf("storage = %q, want memory", a.storage.Gateway.Name())
	}
}

func TestNewApp_StartupErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name: "unknown storage backend",
			mutate: func(c *config.Config) {
				c.Storage.Backend = "bogus"
				c.Storage.FallbackToFile = false
			},
			wantErr: "bogus",
		},
		{
			name:    "invalid recommend config",
			mutate:  func(c *config.Config) { c.Recommend.FavoriteThreshold = 9 },
			wantErr: "recommend config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testAppConfig(t)
			tt.mutate(cfg)

			a, err := newApp(context.Background(), cfg, zerolog.Nop())
			if err == nil {
				a.close()
				t.Fatal("newApp() error = nil")
			}
			if a != nil {
				t.Error("newApp() should return a nil app on error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("newApp() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

// A failure after storage is open must release the Badger directory lock.
func TestNewApp_ErrorReleasesStorage(t *testing.T) {
	cfg := testAppConfig(t)
	cfg.Storage.Backend = config.BackendBadger
	cfg.Storage.FallbackToFile = false
	cfg.Recommend.DefaultLimit = 0

	if _, err := newApp(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Fatal("newApp() error = nil")
	}

	db, err := storage.OpenBadger(cfg.Storage.BadgerDir, zerolog.Nop())
	if err != nil {
		t.Fatalf("badger directory still locked: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
