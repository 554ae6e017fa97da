// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/models"
)

// SeedCatalog inserts the built-in catalog. Movies that already exist keep
// their stored fields, including derived stats. It returns the number of
// movies inserted.
func SeedCatalog(ctx context.Context, store MovieStore, now time.Time, logger zerolog.Logger) (int, error) {
	inserted := 0
	for _, m := range models.SeedCatalog(now) {
		m := m
		err := store.InsertMovie(ctx, &m)
		switch {
		case err == nil:
			inserted++
		case errors.Is(err, ErrAlreadyExists):
		default:
			return inserted, fmt.Errorf("seed movie %s: %w", m.MovieID, err)
		}
	}
	logger.Info().Int("inserted", inserted).Msg("movie catalog seeded")
	return inserted, nil
}
