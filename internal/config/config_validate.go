// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package config

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateStorage,
		c.validateNotify,
		c.validateAuth,
		c.validateEngine,
		c.validateAPI,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}
	return nil
}

func (c *Config) validateStorage() error {
	switch c.Storage.Backend {
	case BackendDynamoDB:
		if c.DynamoDB.Region == "" {
			return fmt.Errorf("dynamodb.region is required when storage.backend=dynamodb")
		}
		if c.DynamoDB.MoviesTable == "" || c.DynamoDB.UsersTable == "" || c.DynamoDB.ReviewsTable == "" {
			return fmt.Errorf("dynamodb table names must not be empty")
		}
	case BackendBadger:
		if c.Storage.BadgerDir == "" {
			return fmt.Errorf("storage.badger_dir is required when storage.backend=badger")
		}
	case BackendFile:
		if c.Storage.FilePath == "" {
			return fmt.Errorf("storage.file_path is required when storage.backend=file")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("storage.backend must be one of dynamodb, badger, file, memory; got %q", c.Storage.Backend)
	}

	if c.Storage.FallbackToFile && c.Storage.FilePath == "" {
		return fmt.Errorf("storage.file_path is required when storage.fallback_to_file=true")
	}
	if c.Breaker.Enabled && c.Breaker.FailureThreshold == 0 {
		return fmt.Errorf("breaker.failure_threshold must be at least 1")
	}
	return nil
}

func (c *Config) validateNotify() error {
	if !c.Notify.Enabled {
		return nil
	}
	if c.Notify.QueueSize < 1 {
		return fmt.Errorf("notify.queue_size must be at least 1")
	}
	if c.Notify.EventBridge.Enabled && c.Notify.EventBridge.BusName == "" {
		return fmt.Errorf("notify.eventbridge.bus_name is required when EventBridge is enabled")
	}
	if c.Notify.NATS.Enabled {
		if c.Notify.NATS.Subject == "" || c.Notify.NATS.Stream == "" {
			return fmt.Errorf("notify.nats.subject and notify.nats.stream must not be empty")
		}
		if strings.ContainsAny(c.Notify.NATS.Stream, ". *>") {
			return fmt.Errorf("notify.nats.stream %q must not contain '.', '*', '>' or spaces", c.Notify.NATS.Stream)
		}
		if !c.Notify.NATS.Embedded && c.Notify.NATS.URL == "" {
			return fmt.Errorf("notify.nats.url is required unless notify.nats.embedded=true")
		}
	}
	return nil
}

func (c *Config) validateAuth() error {
	switch c.Auth.SessionStore {
	case "memory":
	case "badger":
		if c.Auth.SessionDir == "" {
			return fmt.Errorf("auth.session_dir is required when auth.session_store=badger")
		}
	default:
		return fmt.Errorf("auth.session_store must be memory or badger, got %q", c.Auth.SessionStore)
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("auth.session_ttl must be positive")
	}
	if c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters")
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	for _, email := range c.Auth.AdminEmails {
		if !strings.Contains(email, "@") {
			return fmt.Errorf("auth.admin_emails contains an invalid address %q", email)
		}
	}
	return nil
}

func (c *Config) validateEngine() error {
	if c.Recommend.DefaultLimit < 1 {
		return fmt.Errorf("recommend.default_limit must be at least 1")
	}
	if c.Recommend.FavoriteThreshold < 1 || c.Recommend.FavoriteThreshold > 5 {
		return fmt.Errorf("recommend.favorite_threshold must be within the rating scale 1..5")
	}
	if c.Analytics.TopMoviesLimit < 1 || c.Analytics.MostReviewedLimit < 1 {
		return fmt.Errorf("analytics limits must be at least 1")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.MovieReviewsLimit < 1 {
		return fmt.Errorf("api.movie_reviews_limit must be at least 1")
	}
	if !c.API.RateLimitDisabled && (c.API.RateLimitRequests < 1 || c.API.RateLimitWindow <= 0) {
		return fmt.Errorf("api rate limit requires positive rate_limit_requests and rate_limit_window")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled":
	default:
		return fmt.Errorf("logging.level %q is not recognized", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
