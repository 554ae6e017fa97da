// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package storage

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cinemapulse/internal/config"
	"github.com/tomtom215/cinemapulse/internal/metrics"
	"github.com/tomtom215/cinemapulse/internal/models"
)

var classifier = metrics.Classifier{
	Unavailable: ErrUnavailable,
	NotFound:    ErrNotFound,
	Exists:      ErrAlreadyExists,
}

// BreakerGateway decorates a Gateway with a circuit breaker and per-call
// metrics. While the breaker is open every call fails fast with
// ErrUnavailable. Only ErrUnavailable counts as a breaker failure.
type BreakerGateway struct {
	inner  Gateway
	cb     *gobreaker.CircuitBreaker[interface{}]
	logger zerolog.Logger
}

// NewBreakerGateway wraps inner. With cfg.Enabled false the breaker is
// skipped and only metrics are recorded.
func NewBreakerGateway(inner Gateway, cfg config.BreakerConfig, logger zerolog.Logger) *BreakerGateway {
	g := &BreakerGateway{
		inner:  inner,
		logger: logger.With().Str("component", "storage-breaker").Str("backend", inner.Name()).Logger(),
	}
	if !cfg.Enabled {
		return g
	}

	name := "storage-" + inner.Name()
	g.cb = gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, ErrUnavailable)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.RecordBreakerTransition(name, from.String(), to.String())
			ev := g.logger.Info()
			if to == gobreaker.StateOpen {
				ev = g.logger.Warn()
			}
			ev.Str("from", from.String()).Str("to", to.String()).Msg("storage circuit breaker state changed")
		},
	})
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	return g
}

// State reports the breaker state, or "disabled".
func (g *BreakerGateway) State() string {
	if g.cb == nil {
		return "disabled"
	}
	return g.cb.State().String()
}

// Inner returns the wrapped gateway.
func (g *BreakerGateway) Inner() Gateway { return g.inner }

func call[T any](g *BreakerGateway, op string, fn func() (T, error)) (T, error) {
	start := time.Now()

	var (
		out T
		err error
	)
	if g.cb == nil {
		out, err = fn()
	} else {
		var res interface{}
		res, err = g.cb.Execute(func() (interface{}, error) {
			return fn()
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = unavailable(op, err)
		}
		if v, ok := res.(T); ok {
			out = v
		}
	}

	metrics.RecordStorageOp(g.inner.Name(), op, classifier.Result(err), time.Since(start))
	return out, err
}

func exec(g *BreakerGateway, op string, fn func() error) error {
	_, err := call(g, op, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// GetMovie implements MovieStore.
func (g *BreakerGateway) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	return call(g, "get_movie", func() (*models.Movie, error) { return g.inner.GetMovie(ctx, id) })
}

// ListActiveMovies implements MovieStore.
func (g *BreakerGateway) ListActiveMovies(ctx context.Context) ([]models.Movie, error) {
	return call(g, "list_active_movies", func() ([]models.Movie, error) { return g.inner.ListActiveMovies(ctx) })
}

// PutMovie implements MovieStore.
func (g *BreakerGateway) PutMovie(ctx context.Context, m *models.Movie) error {
	return exec(g, "put_movie", func() error { return g.inner.PutMovie(ctx, m) })
}

// InsertMovie implements MovieStore.
func (g *BreakerGateway) InsertMovie(ctx context.Context, m *models.Movie) error {
	return exec(g, "insert_movie", func() error { return g.inner.InsertMovie(ctx, m) })
}

// SetMovieActive implements MovieStore.
func (g *BreakerGateway) SetMovieActive(ctx context.Context, id string, active bool) error {
	return exec(g, "set_movie_active", func() error { return g.inner.SetMovieActive(ctx, id, active) })
}

// UpdateMovieStats implements MovieStore.
func (g *BreakerGateway) UpdateMovieStats(ctx context.Context, id string, stats models.MovieStats) error {
	return exec(g, "update_movie_stats", func() error { return g.inner.UpdateMovieStats(ctx, id, stats) })
}

// GetUser implements UserStore.
func (g *BreakerGateway) GetUser(ctx context.Context, email string) (*models.User, error) {
	return call(g, "get_user", func() (*models.User, error) { return g.inner.GetUser(ctx, email) })
}

// CreateUser implements UserStore.
func (g *BreakerGateway) CreateUser(ctx context.Context, u *models.User) error {
	return exec(g, "create_user", func() error { return g.inner.CreateUser(ctx, u) })
}

// UpdateUserStats implements UserStore.
func (g *BreakerGateway) UpdateUserStats(ctx context.Context, email string, stats models.UserStats) error {
	return exec(g, "update_user_stats", func() error { return g.inner.UpdateUserStats(ctx, email, stats) })
}

// PutReview implements ReviewStore.
func (g *BreakerGateway) PutReview(ctx context.Context, r *models.Review) error {
	return exec(g, "put_review", func() error { return g.inner.PutReview(ctx, r) })
}

// ListReviewsByMovie implements ReviewStore.
func (g *BreakerGateway) ListReviewsByMovie(ctx context.Context, movieID string) ([]models.Review, error) {
	return call(g, "list_reviews_by_movie", func() ([]models.Review, error) { return g.inner.ListReviewsByMovie(ctx, movieID) })
}

// ListReviewsByUser implements ReviewStore.
func (g *BreakerGateway) ListReviewsByUser(ctx context.Context, email string) ([]models.Review, error) {
	return call(g, "list_reviews_by_user", func() ([]models.Review, error) { return g.inner.ListReviewsByUser(ctx, email) })
}

// CountReviews implements ReviewStore.
func (g *BreakerGateway) CountReviews(ctx context.Context) (int, error) {
	return call(g, "count_reviews", func() (int, error) { return g.inner.CountReviews(ctx) })
}

// Ping bypasses the breaker so /health always reflects the backend.
func (g *BreakerGateway) Ping(ctx context.Context) error {
	return g.inner.Ping(ctx)
}

// Name implements Gateway.
func (g *BreakerGateway) Name() string { return g.inner.Name() }

// Close implements Gateway.
func (g *BreakerGateway) Close() error { return g.inner.Close() }
