// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/cinemapulse/internal/models"
)

var (
	// ErrUnavailable marks failures of the store itself (network, closed
	// database, open circuit breaker).
	ErrUnavailable = errors.New("storage unavailable")

	// ErrAlreadyExists is returned by conditional creates.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrNotFound is returned by updates of a record that does not exist.
	ErrNotFound = errors.New("record not found")

	errClosed = errors.New("store closed")
)

// MovieStore covers the movies table.
type MovieStore interface {
	// GetMovie returns nil, nil when the movie does not exist.
	GetMovie(ctx context.Context, id string) (*models.Movie, error)
	// ListActiveMovies returns active movies ordered by movie_id.
	ListActiveMovies(ctx context.Context) ([]models.Movie, error)
	PutMovie(ctx context.Context, m *models.Movie) error
	// InsertMovie stores m only if no movie with its id exists.
	InsertMovie(ctx context.Context, m *models.Movie) error
	SetMovieActive(ctx context.Context, id string, active bool) error
	UpdateMovieStats(ctx context.Context, id string, stats models.MovieStats) error
}

// UserStore covers the users table.
type UserStore interface {
	// GetUser returns nil, nil when the user does not exist.
	GetUser(ctx context.Context, email string) (*models.User, error)
	// CreateUser fails with ErrAlreadyExists if the email is taken.
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUserStats(ctx context.Context, email string, stats models.UserStats) error
}

// ReviewStore covers the reviews table.
type ReviewStore interface {
	PutReview(ctx context.Context, r *models.Review) error
	ListReviewsByMovie(ctx context.Context, movieID string) ([]models.Review, error)
	ListReviewsByUser(ctx context.Context, email string) ([]models.Review, error)
	CountReviews(ctx context.Context) (int, error)
}

// Gateway is the full storage surface used by the application.
type Gateway interface {
	MovieStore
	UserStore
	ReviewStore

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
	// Name identifies the backend in logs, metrics and /health.
	Name() string
	Close() error
}

// unavailable wraps err so that errors.Is(err, ErrUnavailable) holds while
// keeping the underlying cause.
func unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

// ctxErr reports a cancelled context as unavailable.
func ctxErr(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return unavailable(op, err)
	}
	return nil
}
