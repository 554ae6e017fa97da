// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

// Package stats recomputes the derived review statistics stored on movies
// and users.
//
// Every recompute is a full scan of the matching reviews followed by one
// write. There are no incremental counters, so a recompute is idempotent and
// concurrent recomputes of the same key converge on the last write.
package stats

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/metrics"
	"github.com/tomtom215/cinemapulse/internal/models"
)

// ReviewSource is the storage surface the aggregator needs.
type ReviewSource interface {
	ListReviewsByMovie(ctx context.Context, movieID string) ([]models.Review, error)
	ListReviewsByUser(ctx context.Context, email string) ([]models.Review, error)
	UpdateMovieStats(ctx context.Context, id string, stats models.MovieStats) error
	UpdateUserStats(ctx context.Context, email string, stats models.UserStats) error
}

// Aggregator recomputes movie and user statistics.
type Aggregator struct {
	store  ReviewSource
	logger zerolog.Logger
	now    func() time.Time
}

// NewAggregator creates an Aggregator over store.
func NewAggregator(store ReviewSource, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		store:  store,
		logger: logger.With().Str("component", "stats").Logger(),
		now:    time.Now,
	}
}

// RoundRating rounds to two decimals, halves away from zero.
func RoundRating(v float64) float64 {
	return math.Round(v*100) / 100
}

// Summarize returns the review count and rounded mean rating. An empty set
// yields (0, 0).
func Summarize(reviews []models.Review) (int, float64) {
	if len(reviews) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return len(reviews), RoundRating(float64(sum) / float64(len(reviews)))
}

// ComputeMovieStats derives the movie stats for reviews at now.
func ComputeMovieStats(reviews []models.Review, now time.Time) models.MovieStats {
	total, avg := Summarize(reviews)
	return models.MovieStats{TotalReviews: total, AvgRating: avg, LastUpdated: now}
}

// ComputeUserStats derives the user stats for reviews. LastReviewDate is the
// newest created_at in RFC 3339, or "" without reviews.
func ComputeUserStats(reviews []models.Review) models.UserStats {
	total, avg := Summarize(reviews)
	s := models.UserStats{TotalReviews: total, AvgRating: avg}

	var latest time.Time
	for _, r := range reviews {
		if r.CreatedAt.After(latest) {
			latest = r.CreatedAt
		}
	}
	if !latest.IsZero() {
		s.LastReviewDate = latest.UTC().Format(time.RFC3339)
	}
	return s
}

// RecomputeMovieStats rescans the movie's reviews and writes the result back.
func (a *Aggregator) RecomputeMovieStats(ctx context.Context, movieID string) (models.MovieStats, error) {
	stats, err := a.recomputeMovie(ctx, movieID)
	metrics.RecordStatsRecompute("movie", err)
	if err != nil {
		a.logger.Error().Err(err).Str("movie_id", movieID).Msg("movie stats recompute failed")
		return models.MovieStats{}, err
	}
	a.logger.Debug().
		Str("movie_id", movieID).
		Int("total_reviews", stats.TotalReviews).
		Float64("avg_rating", stats.AvgRating).
		Msg("movie stats updated")
	return stats, nil
}

func (a *Aggregator) recomputeMovie(ctx context.Context, movieID string) (models.MovieStats, error) {
	reviews, err := a.store.ListReviewsByMovie(ctx, movieID)
	if err != nil {
		return models.MovieStats{}, fmt.Errorf("list reviews for movie %s: %w", movieID, err)
	}
	stats := ComputeMovieStats(reviews, a.now().UTC())
	if err := a.store.UpdateMovieStats(ctx, movieID, stats); err != nil {
		return models.MovieStats{}, fmt.Errorf("update stats for movie %s: %w", movieID, err)
	}
	return stats, nil
}

// RecomputeUserStats rescans the user's reviews and writes the result back.
func (a *Aggregator) RecomputeUserStats(ctx context.Context, email string) (models.UserStats, error) {
	stats, err := a.recomputeUser(ctx, email)
	metrics.RecordStatsRecompute("user", err)
	if err != nil {
		a.logger.Error().Err(err).Str("user", email).Msg("user stats recompute failed")
		return models.UserStats{}, err
	}
	a.logger.Debug().
		Str("user", email).
		Int("total_reviews", stats.TotalReviews).
		Float64("avg_rating", stats.AvgRating).
		Msg("user stats updated")
	return stats, nil
}

func (a *Aggregator) recomputeUser(ctx context.Context, email string) (models.UserStats, error) {
	reviews, err := a.store.ListReviewsByUser(ctx, email)
	if err != nil {
		return models.UserStats{}, fmt.Errorf("list reviews for user %s: %w", email, err)
	}
	stats := ComputeUserStats(reviews)
	if err := a.store.UpdateUserStats(ctx, email, stats); err != nil {
		return models.UserStats{}, fmt.Errorf("update stats for user %s: %w", email, err)
	}
	return stats, nil
}
