// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the CinemaPulse server.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Storage   StorageConfig   `koanf:"storage"`
	DynamoDB  DynamoDBConfig  `koanf:"dynamodb"`
	Breaker   BreakerConfig   `koanf:"breaker"`
	Notify    NotifyConfig    `koanf:"notify"`
	Auth      AuthConfig      `koanf:"auth"`
	Recommend RecommendConfig `koanf:"recommend"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	API       APIConfig       `koanf:"api"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Storage backend names.
const (
	BackendDynamoDB = "dynamodb"
	BackendBadger   = "badger"
	BackendFile     = "file"
	BackendMemory   = "memory"
)

// StorageConfig selects and configures the storage gateway.
type StorageConfig struct {
	// Backend is one of dynamodb, badger, file, memory.
	Backend string `koanf:"backend"`

	// FallbackToFile switches to the local JSON file store when the primary
	// backend cannot be reached at startup.
	FallbackToFile bool `koanf:"fallback_to_file"`

	FilePath  string `koanf:"file_path"`
	BadgerDir string `koanf:"badger_dir"`

	// SeedCatalog inserts the built-in movie catalog on startup.
	// Movies that already exist are left untouched.
	SeedCatalog bool `koanf:"seed_catalog"`

	// BadgerGCInterval controls value-log garbage collection for the badger backend.
	BadgerGCInterval time.Duration `koanf:"badger_gc_interval"`
}

// DynamoDBConfig holds table names and client settings for the DynamoDB backend.
type DynamoDBConfig struct {
	Region       string `koanf:"region"`
	Endpoint     string `koanf:"endpoint"` // non-empty for DynamoDB Local
	MoviesTable  string `koanf:"movies_table"`
	UsersTable   string `koanf:"users_table"`
	ReviewsTable string `koanf:"reviews_table"`
}

// BreakerConfig configures the circuit breaker in front of the primary store.
type BreakerConfig struct {
	Enabled          bool          `koanf:"enabled"`
	MaxRequests      uint32        `koanf:"max_requests"` // requests allowed while half-open
	Interval         time.Duration `koanf:"interval"`     // closed-state counter reset period
	Timeout          time.Duration `koanf:"timeout"`      // open -> half-open delay
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// NotifyConfig configures the review notification side-channel.
type NotifyConfig struct {
	Enabled        bool              `koanf:"enabled"`
	QueueSize      int               `koanf:"queue_size"`
	PublishTimeout time.Duration     `koanf:"publish_timeout"`
	EventBridge    EventBridgeConfig `koanf:"eventbridge"`
	NATS           NATSConfig        `koanf:"nats"`
	WebSocket      bool              `koanf:"websocket"`
}

// EventBridgeConfig configures the AWS EventBridge sink.
type EventBridgeConfig struct {
	Enabled bool   `koanf:"enabled"`
	BusName string `koanf:"bus_name"`
	Source  string `koanf:"source"`
	Region  string `koanf:"region"`
}

// NATSConfig configures the Watermill sink. With Enabled=false and
// InProcess=true events go to an in-process GoChannel instead.
type NATSConfig struct {
	Enabled   bool   `koanf:"enabled"`
	InProcess bool   `koanf:"in_process"`
	URL       string `koanf:"url"`
	Subject   string `koanf:"subject"`
	Stream    string `koanf:"stream"` // JetStream stream created for Subject
	Embedded  bool   `koanf:"embedded"`
	Host      string `koanf:"host"`
	Port      int    `koanf:"port"`
	StoreDir  string `koanf:"store_dir"`
}

// AuthConfig configures accounts, sessions and API tokens.
type AuthConfig struct {
	// SessionStore is memory or badger.
	SessionStore string        `koanf:"session_store"`
	SessionDir   string        `koanf:"session_dir"`
	SessionTTL   time.Duration `koanf:"session_ttl"`
	CookieName   string        `koanf:"cookie_name"`
	CookieSecure bool          `koanf:"cookie_secure"`

	JWTSecret string        `koanf:"jwt_secret"`
	JWTTTL    time.Duration `koanf:"jwt_ttl"`

	BcryptCost int `koanf:"bcrypt_cost"`

	// LoginRateLimit requests per LoginRateWindow per client IP on
	// the login and register endpoints.
	LoginRateLimit  int           `koanf:"login_rate_limit"`
	LoginRateWindow time.Duration `koanf:"login_rate_window"`

	// AdminEmails are granted the admin role.
	AdminEmails []string `koanf:"admin_emails"`

	// PolicyFile replaces the built-in authorization policy when set.
	PolicyFile string `koanf:"policy_file"`
}

// RecommendConfig configures the recommendation engine.
type RecommendConfig struct {
	DefaultLimit      int     `koanf:"default_limit"`
	FavoriteThreshold float64 `koanf:"favorite_threshold"`
}

// AnalyticsConfig configures the analytics report.
type AnalyticsConfig struct {
	TopMoviesLimit    int `koanf:"top_movies_limit"`
	MostReviewedLimit int `koanf:"most_reviewed_limit"`
}

// APIConfig configures HTTP API behaviour.
type APIConfig struct {
	MovieReviewsLimit        int           `koanf:"movie_reviews_limit"`
	DashboardRecommendations int           `koanf:"dashboard_recommendations"`
	RateLimitRequests        int           `koanf:"rate_limit_requests"`
	RateLimitWindow          time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled        bool          `koanf:"rate_limit_disabled"`
	CORSOrigins              []string      `koanf:"cors_origins"`
}

// LoggingConfig mirrors logging.Config for koanf.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
