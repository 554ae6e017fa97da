// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package recommend

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/metrics"
	"github.com/tomtom215/cinemapulse/internal/models"
)

// DataProvider supplies the catalog and review history.
// storage.Gateway satisfies it.
type DataProvider interface {
	ListActiveMovies(ctx context.Context) ([]models.Movie, error)
	ListReviewsByUser(ctx context.Context, email string) ([]models.Review, error)
}

// Engine produces recommendation lists. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	data   DataProvider
	config *Config
	logger zerolog.Logger
}

// NewEngine creates a new recommendation engine. A nil or invalid cfg falls
// back to DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(data DataProvider, cfg *Config, logger zerolog.Logger) *Engine {
	log := logger.With().Str("component", "recommend").Logger()
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		log.Warn().Err(err).Msg("invalid recommend config, using defaults")
		cfg = DefaultConfig()
	}
	return &Engine{data: data, config: cfg, logger: log}
}

// Recommend returns up to limit movies for email. It never returns an error;
// storage failures produce an empty list.
func (e *Engine) Recommend(ctx context.Context, email string, limit int) []models.Movie {
	return e.RecommendDetailed(ctx, email, limit).Movies
}

// RecommendDetailed is Recommend plus the mode and favorite genres used.
func (e *Engine) RecommendDetailed(ctx context.Context, email string, limit int) Result {
	if limit <= 0 {
		limit = e.config.DefaultLimit
	}

	res, err := e.recommend(ctx, email, limit)
	if err != nil {
		e.logger.Warn().Err(err).Str("user", email).Msg("recommendations degraded to empty list")
		res = Result{Movies: []models.Movie{}, Mode: ModeDegraded}
	}
	metrics.RecommendationsServed.WithLabelValues(string(res.Mode)).Inc()
	return res
}

func (e *Engine) recommend(ctx context.Context, email string, limit int) (Result, error) {
	catalog, err := e.data.ListActiveMovies(ctx)
	if err != nil {
		return Result{}, err
	}
	reviews, err := e.data.ListReviewsByUser(ctx, email)
	if err != nil {
		return Result{}, err
	}

	if len(reviews) == 0 {
		return Result{Movies: ColdStart(catalog, limit), Mode: ModeColdStart}, nil
	}

	profile := BuildProfile(reviews, catalog)
	favorites := profile.Favorites(e.config.FavoriteThreshold)
	movies := Personalized(catalog, profile, favorites, limit)

	names := make([]string, 0, len(favorites))
	for g := range favorites {
		names = append(names, g)
	}
	sort.Strings(names)

	e.logger.Debug().
		Str("user", email).
		Int("reviews", len(reviews)).
		Strs("favorite_genres", names).
		Int("returned", len(movies)).
		Msg("personalized recommendations")

	return Result{Movies: movies, Mode: ModePersonalized, Favorites: names}, nil
}

// ColdStart returns the top limit movies of catalog by avg_rating. The input
// slice is not modified.
func ColdStart(catalog []models.Movie, limit int) []models.Movie {
	ranked := append([]models.Movie(nil), catalog...)
	models.SortMoviesByRating(ranked)
	return truncate(ranked, limit)
}

// Personalized ranks unreviewed movies in favorite genres first, then fills
// with the remaining unreviewed movies. Candidates match on their stored
// genre, so a blank-genre movie is only ever a fill candidate.
func Personalized(catalog []models.Movie, profile Profile, favorites map[string]struct{}, limit int) []models.Movie {
	var primary, rest []models.Movie
	for _, m := range catalog {
		if _, seen := profile.Rated[m.MovieID]; seen {
			continue
		}
		if _, fav := favorites[m.Genre]; m.Genre != "" && fav {
			primary = append(primary, m)
		} else {
			rest = append(rest, m)
		}
	}
	models.SortMoviesByRating(primary)

	out := primary
	if len(out) < limit {
		models.SortMoviesByRating(rest)
		out = append(out, rest...)
	}
	return truncate(out, limit)
}

func truncate(movies []models.Movie, limit int) []models.Movie {
	if movies == nil {
		return []models.Movie{}
	}
	if len(movies) > limit {
		return movies[:limit]
	}
	return movies
}
