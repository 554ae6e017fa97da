// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package recommend

import (
	"fmt"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// DefaultLimit is used when a caller passes limit <= 0.
	DefaultLimit int `json:"default_limit"`

	// FavoriteThreshold is the minimum mean rating (inclusive) that makes
	// a genre a favorite.
	FavoriteThreshold float64 `json:"favorite_threshold"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultLimit:      5,
		FavoriteThreshold: 4.0,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.FavoriteThreshold < 1 || c.FavoriteThreshold > 5 {
		return fmt.Errorf("favorite_threshold must be between 1 and 5, got %v", c.FavoriteThreshold)
	}
	return nil
}
