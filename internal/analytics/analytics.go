// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

// Package analytics derives catalog-wide reports from live data. Nothing is
// cached; every call reads the store.
package analytics

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/models"
)

// DataSource is the storage surface the reporter needs.
type DataSource interface {
	ListActiveMovies(ctx context.Context) ([]models.Movie, error)
	CountReviews(ctx context.Context) (int, error)
}

// Config holds the report limits.
type Config struct {
	TopMoviesLimit    int
	MostReviewedLimit int
}

// DefaultConfig returns the production limits.
func DefaultConfig() Config {
	return Config{TopMoviesLimit: 6, MostReviewedLimit: 5}
}

// Summary is the analytics dashboard payload.
type Summary struct {
	GenreDistribution map[string]int `json:"genre_distribution"`
	MostReviewed      []models.Movie `json:"most_reviewed"`
	TopMovies         []models.Movie `json:"top_movies"`
	TotalReviewsCount int            `json:"total_reviews_count"`
	TotalMovies       int            `json:"total_movies"`
	AvailableGenres   []string       `json:"available_genres"`
	Degraded          bool           `json:"degraded,omitempty"`
}

// Reporter computes analytics over a DataSource.
type Reporter struct {
	data   DataSource
	config Config
	logger zerolog.Logger
}

// NewReporter creates a Reporter. Non-positive limits take the defaults.
func NewReporter(data DataSource, cfg Config, logger zerolog.Logger) *Reporter {
	def := DefaultConfig()
	if cfg.TopMoviesLimit <= 0 {
		cfg.TopMoviesLimit = def.TopMoviesLimit
	}
	if cfg.MostReviewedLimit <= 0 {
		cfg.MostReviewedLimit = def.MostReviewedLimit
	}
	return &Reporter{
		data:   data,
		config: cfg,
		logger: logger.With().Str("component", "analytics").Logger(),
	}
}

// GenreDistribution counts active movies per genre. Blank genres are counted
// as models.UnknownGenre.
func GenreDistribution(movies []models.Movie) map[string]int {
	dist := make(map[string]int)
	for i := range movies {
		dist[movies[i].GenreOrUnknown()]++
	}
	return dist
}

// MostReviewed returns up to limit movies by total_reviews, highest first.
// Ties keep input order.
func MostReviewed(movies []models.Movie, limit int) []models.Movie {
	ranked := append([]models.Movie(nil), movies...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalReviews > ranked[j].TotalReviews
	})
	return head(ranked, limit)
}

// TopMovies returns up to limit movies by avg_rating * total_reviews,
// highest first. Ties keep input order.
func TopMovies(movies []models.Movie, limit int) []models.Movie {
	ranked := append([]models.Movie(nil), movies...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PopularityScore() > ranked[j].PopularityScore()
	})
	return head(ranked, limit)
}

func head(movies []models.Movie, limit int) []models.Movie {
	if limit >= 0 && len(movies) > limit {
		movies = movies[:limit]
	}
	if movies == nil {
		return []models.Movie{}
	}
	return movies
}

// GenreDistribution reads the catalog and counts movies per genre.
func (r *Reporter) GenreDistribution(ctx context.Context) (map[string]int, error) {
	movies, err := r.data.ListActiveMovies(ctx)
	if err != nil {
		return nil, err
	}
	return GenreDistribution(movies), nil
}

// MostReviewed reads the catalog and ranks it by review count.
func (r *Reporter) MostReviewed(ctx context.Context, limit int) ([]models.Movie, error) {
	movies, err := r.data.ListActiveMovies(ctx)
	if err != nil {
		return nil, err
	}
	return MostReviewed(movies, limit), nil
}

// TopMovies reads the catalog and ranks it by popularity score.
func (r *Reporter) TopMovies(ctx context.Context, limit int) ([]models.Movie, error) {
	movies, err := r.data.ListActiveMovies(ctx)
	if err != nil {
		return nil, err
	}
	return TopMovies(movies, limit), nil
}

// TotalReviewsCount counts every stored review.
func (r *Reporter) TotalReviewsCount(ctx context.Context) (int, error) {
	return r.data.CountReviews(ctx)
}

// Summary builds the full report from a single catalog read. Storage
// failures are logged and produce an empty, Degraded summary.
func (r *Reporter) Summary(ctx context.Context) Summary {
	empty := Summary{
		GenreDistribution: map[string]int{},
		MostReviewed:      []models.Movie{},
		TopMovies:         []models.Movie{},
		AvailableGenres:   []string{},
		Degraded:          true,
	}

	movies, err := r.data.ListActiveMovies(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("analytics degraded: catalog unavailable")
		return empty
	}
	total, err := r.data.CountReviews(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("analytics degraded: review count unavailable")
		return empty
	}

	return Summary{
		GenreDistribution: GenreDistribution(movies),
		MostReviewed:      MostReviewed(movies, r.config.MostReviewedLimit),
		TopMovies:         TopMovies(movies, r.config.TopMoviesLimit),
		TotalReviewsCount: total,
		TotalMovies:       len(movies),
		AvailableGenres:   models.AvailableGenres(movies),
	}
}
