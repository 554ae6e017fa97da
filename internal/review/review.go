// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

// Package review implements review submission: validation, the review write,
// the two statistics recomputes and the notification hand-off.
package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/metrics"
	"github.com/tomtom215/cinemapulse/internal/models"
	"github.com/tomtom215/cinemapulse/internal/validation"
)

// User-facing validation messages.
const (
	MsgFieldsRequired = "All fields are required!"
	MsgRatingRange    = "Rating must be between 1 and 5!"
	MsgFeedbackShort  = "Feedback must be at least 10 characters!"
	MsgInvalidMovie   = "Invalid movie!"
	MsgInvalidEmail   = "Invalid email format"
)

// ValidationError rejects a submission before anything is written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsValidationError reports whether err is a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Store is the storage surface the service needs.
type Store interface {
	GetMovie(ctx context.Context, id string) (*models.Movie, error)
	PutReview(ctx context.Context, r *models.Review) error
}

// StatsUpdater recomputes derived statistics after a write.
type StatsUpdater interface {
	RecomputeMovieStats(ctx context.Context, movieID string) (models.MovieStats, error)
	RecomputeUserStats(ctx context.Context, email string) (models.UserStats, error)
}

// Notifier observes successful submissions. Implementations must not block.
type Notifier interface {
	ReviewSubmitted(r *models.Review, movieTitle string)
}

// SubmitInput is a review as entered by the user.
type SubmitInput struct {
	Name     string
	Email    string
	MovieID  string
	Rating   int
	Feedback string
}

// Service submits reviews.
type Service struct {
	store    Store
	stats    StatsUpdater
	notifier Notifier
	logger   zerolog.Logger
	now      func() time.Time
	newID    func() string
}

// NewService creates a Service. notifier may be nil.
func NewService(store Store, stats StatsUpdater, notifier Notifier, logger zerolog.Logger) *Service {
	return &Service{
		store:    store,
		stats:    stats,
		notifier: notifier,
		logger:   logger.With().Str("component", "review").Logger(),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// Validate checks the input fields in order and returns the first failure.
// It does not check that the movie exists.
func Validate(in SubmitInput) *ValidationError {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" ||
		strings.TrimSpace(in.MovieID) == "" || strings.TrimSpace(in.Feedback) == "" || in.Rating == 0 {
		return &ValidationError{Field: "all", Message: MsgFieldsRequired}
	}
	if !validation.EmailPattern.MatchString(strings.TrimSpace(in.Email)) {
		return &ValidationError{Field: "email", Message: MsgInvalidEmail}
	}
	if in.Rating < models.MinRating || in.Rating > models.MaxRating {
		return &ValidationError{Field: "rating", Message: MsgRatingRange}
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Feedback)) < models.MinFeedbackLength {
		return &ValidationError{Field: "feedback", Message: MsgFeedbackShort}
	}
	return nil
}

// SubmitReview validates and stores a review, then recomputes the movie and
// user statistics and notifies observers.
//
// Validation failures return *ValidationError and nothing is written. A
// failed review write is returned as is (wrapping storage.ErrUnavailable when
// the store is down). Recompute failures after a successful write are logged
// and counted only; the review is still reported as submitted.
func (s *Service) SubmitReview(ctx context.Context, in SubmitInput) (*models.Review, error) {
	if ve := Validate(in); ve != nil {
		metrics.ReviewsRejected.WithLabelValues(ve.Field).Inc()
		return nil, ve
	}

	movieID := strings.TrimSpace(in.MovieID)
	movie, err := s.store.GetMovie(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("look up movie %s: %w", movieID, err)
	}
	if movie == nil || !movie.Active {
		metrics.ReviewsRejected.WithLabelValues("movie_id").Inc()
		return nil, &ValidationError{Field: "movie_id", Message: MsgInvalidMovie}
	}

	now := s.now()
	r := &models.Review{
		ReviewID:    s.newID(),
		UserEmail:   models.NormalizeEmail(in.Email),
		MovieID:     movieID,
		Name:        strings.TrimSpace(in.Name),
		Rating:      in.Rating,
		Feedback:    strings.TrimSpace(in.Feedback),
		CreatedAt:   now.UTC(),
		DisplayDate: now.Format(models.DisplayDateLayout),
	}

	if err := s.store.PutReview(ctx, r); err != nil {
		return nil, fmt.Errorf("save review: %w", err)
	}
	metrics.ReviewsSubmitted.Inc()

	// The aggregator logs and counts its own failures.
	_, _ = s.stats.RecomputeMovieStats(ctx, r.MovieID)
	_, _ = s.stats.RecomputeUserStats(ctx, r.UserEmail)

	if s.notifier != nil {
		s.notifier.ReviewSubmitted(r, movie.Title)
	}

	s.logger.Info().
		Str("review_id", r.ReviewID).
		Str("movie_id", r.MovieID).
		Int("rating", r.Rating).
		Msg("review submitted")
	return r, nil
}
