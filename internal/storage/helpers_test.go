// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package storage

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/models"
)

func zerologNop() zerolog.Logger { return zerolog.Nop() }

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}

// flakyGateway fails every call with err while down is set.
type flakyGateway struct {
	*MemoryGateway
	down  bool
	err   error
	calls int
}

func newFlakyGateway(err error) *flakyGateway {
	return &flakyGateway{MemoryGateway: NewMemoryGateway(), err: err}
}

func (f *flakyGateway) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	f.calls++
	if f.down {
		return nil, f.err
	}
	return f.MemoryGateway.GetMovie(ctx, id)
}

func (f *flakyGateway) UpdateMovieStats(ctx context.Context, id string, s models.MovieStats) error {
	f.calls++
	if f.down {
		return f.err
	}
	return f.MemoryGateway.UpdateMovieStats(ctx, id, s)
}

func (f *flakyGateway) Ping(ctx context.Context) error {
	if f.down {
		return f.err
	}
	return nil
}

func (f *flakyGateway) Name() string { return "flaky" }

func modelsStats(total int, avg float64) models.MovieStats {
	return models.MovieStats{TotalReviews: total, AvgRating: avg}
}
