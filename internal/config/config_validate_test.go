// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "sqlite" }, "storage.backend"},
		{"dynamodb without region", func(c *Config) {
			c.Storage.Backend = BackendDynamoDB
			c.DynamoDB.Region = ""
		}, "dynamodb.region"},
		{"dynamodb without tables", func(c *Config) {
			c.Storage.Backend = BackendDynamoDB
			c.DynamoDB.ReviewsTable = ""
		}, "table names"},
		{"badger without dir", func(c *Config) {
			c.Storage.Backend = BackendBadger
			c.Storage.BadgerDir = ""
		}, "badger_dir"},
		{"fallback without file", func(c *Config) {
			c.Storage.Backend = BackendMemory
			c.Storage.FilePath = ""
		}, "fallback_to_file"},
		{"queue size", func(c *Config) { c.Notify.QueueSize = 0 }, "queue_size"},
		{"eventbridge bus", func(c *Config) {
			c.Notify.EventBridge.Enabled = true
			c.Notify.EventBridge.BusName = ""
		}, "bus_name"},
		{"nats url", func(c *Config) {
			c.Notify.NATS.Enabled = true
			c.Notify.NATS.URL = ""
		}, "notify.nats.url"},
		{"session store", func(c *Config) { c.Auth.SessionStore = "redis" }, "session_store"},
		{"short jwt secret", func(c *Config) { c.Auth.JWTSecret = "short" }, "jwt_secret"},
		{"bcrypt cost", func(c *Config) { c.Auth.BcryptCost = 2 }, "bcrypt_cost"},
		{"admin email", func(c *Config) { c.Auth.AdminEmails = []string{"nobody"} }, "admin_emails"},
		{"threshold", func(c *Config) { c.Recommend.FavoriteThreshold = 6 }, "favorite_threshold"},
		{"recommend limit", func(c *Config) { c.Recommend.DefaultLimit = 0 }, "default_limit"},
		{"analytics limit", func(c *Config) { c.Analytics.TopMoviesLimit = 0 }, "analytics"},
		{"reviews limit", func(c *Config) { c.API.MovieReviewsLimit = 0 }, "movie_reviews_limit"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "127.0.0.1", Port: 5000}
	if got := s.Addr(); got != "127.0.0.1:5000" {
		t.Errorf("Addr() = %q", got)
	}
}
