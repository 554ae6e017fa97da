// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinemapulse/config.yaml",
	"/etc/cinemapulse/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvPrefix is the prefix for generic environment overrides.
const EnvPrefix = "CINEMAPULSE_"

// defaultConfig returns the built-in defaults. Table names and region match
// the values the legacy deployment used.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Backend:          BackendFile,
			FallbackToFile:   true,
			FilePath:         "data/cinemapulse.json",
			BadgerDir:        "data/badger",
			SeedCatalog:      true,
			BadgerGCInterval: 10 * time.Minute,
		},
		DynamoDB: DynamoDBConfig{
			Region:       "us-east-1",
			MoviesTable:  "CinemaPulse-Movies",
			UsersTable:   "CinemaPulse-Users",
			ReviewsTable: "CinemaPulse-Reviews",
		},
		Breaker: BreakerConfig{
			Enabled:          true,
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          30 * time.Second,
			FailureThreshold: 5,
		},
		Notify: NotifyConfig{
			Enabled:        true,
			QueueSize:      256,
			PublishTimeout: 5 * time.Second,
			EventBridge: EventBridgeConfig{
				Enabled: false,
				BusName: "default",
				Source:  "cinemapulse.reviews",
			},
			NATS: NATSConfig{
				Enabled:   false,
				InProcess: false,
				URL:       "nats://127.0.0.1:4222",
				Subject:   "cinemapulse.events",
				Stream:    "CINEMAPULSE_EVENTS",
				Embedded:  false,
				Host:      "127.0.0.1",
				Port:      4222,
				StoreDir:  "data/nats",
			},
			WebSocket: true,
		},
		Auth: AuthConfig{
			SessionStore:    "memory",
			SessionDir:      "data/sessions",
			SessionTTL:      24 * time.Hour,
			CookieName:      "cinemapulse_session",
			CookieSecure:    false,
			JWTSecret:       "",
			JWTTTL:          24 * time.Hour,
			BcryptCost:      12,
			LoginRateLimit:  10,
			LoginRateWindow: time.Minute,
			AdminEmails:     []string{},
		},
		Recommend: RecommendConfig{
			DefaultLimit:      5,
			FavoriteThreshold: 4.0,
		},
		Analytics: AnalyticsConfig{
			TopMoviesLimit:    6,
			MostReviewedLimit: 5,
		},
		API: APIConfig{
			MovieReviewsLimit:        50,
			DashboardRecommendations: 4,
			RateLimitRequests:        100,
			RateLimitWindow:          time.Minute,
			RateLimitDisabled:        false,
			CORSOrigins:              []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration from three layers, later layers winning:
// struct defaults, the optional YAML file, then the environment.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// normalize applies cross-field defaults that cannot be expressed as
// static struct values.
func (c *Config) normalize() {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	c.Auth.SessionStore = strings.ToLower(strings.TrimSpace(c.Auth.SessionStore))
	if c.Notify.EventBridge.Region == "" {
		c.Notify.EventBridge.Region = c.DynamoDB.Region
	}
	for i, email := range c.Auth.AdminEmails {
		c.Auth.AdminEmails[i] = strings.ToLower(strings.TrimSpace(email))
	}
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set from the environment.
var sliceConfigPaths = []string{
	"auth.admin_emails",
	"api.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := strings.Split(raw, ",")
		values := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				values = append(values, p)
			}
		}
		if err := k.Set(path, values); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps legacy and short environment names to koanf paths.
var envMappings = map[string]string{
	// Legacy deployment names
	"aws_region":     "dynamodb.region",
	"movies_table":   "dynamodb.movies_table",
	"users_table":    "dynamodb.users_table",
	"reviews_table":  "dynamodb.reviews_table",
	"secret_key":     "auth.jwt_secret",
	"event_bus_name": "notify.eventbridge.bus_name",

	// Short aliases
	"dynamodb_endpoint": "dynamodb.endpoint",
	"http_host":         "server.host",
	"http_port":         "server.port",
	"storage_backend":   "storage.backend",
	"storage_file_path": "storage.file_path",
	"badger_dir":        "storage.badger_dir",
	"session_store":     "auth.session_store",
	"jwt_secret":        "auth.jwt_secret",
	"admin_emails":      "auth.admin_emails",
	"nats_url":          "notify.nats.url",
	"cors_origins":      "api.cors_origins",
	"log_level":         "logging.level",
	"log_format":        "logging.format",
	"log_caller":        "logging.caller",
}

// nestedSections lists sub-sections addressable through CINEMAPULSE_ names.
var nestedSections = map[string][]string{
	"notify": {"eventbridge", "nats"},
}

// envTransformFunc maps an environment variable name to a koanf path.
// Unknown names map to "" and are ignored.
func envTransformFunc(key string) string {
	lower := strings.ToLower(key)
	if mapped, ok := envMappings[lower]; ok {
		return mapped
	}

	if !strings.HasPrefix(lower, strings.ToLower(EnvPrefix)) {
		return ""
	}
	rest := strings.TrimPrefix(lower, strings.ToLower(EnvPrefix))
	section, field, ok := strings.Cut(rest, "_")
	if !ok || section == "" || field == "" {
		return ""
	}
	for _, sub := range nestedSections[section] {
		if after, found := strings.CutPrefix(field, sub+"_"); found && after != "" {
			return section + "." + sub + "." + after
		}
	}
	return section + "." + field
}
