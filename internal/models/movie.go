// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package models

import (
	"sort"
	"strings"
	"time"
)

// UnknownGenre buckets movies and reviews whose genre is missing.
const UnknownGenre = "Unknown"

// Movie is a catalog entry.
type Movie struct {
	MovieID     string `json:"movie_id" dynamodbav:"movie_id"`
	Title       string `json:"title" dynamodbav:"title"`
	Description string `json:"description" dynamodbav:"description"`
	Genre       string `json:"genre" dynamodbav:"genre"`
	ReleaseYear int    `json:"release_year" dynamodbav:"release_year"`
	Director    string `json:"director" dynamodbav:"director"`
	ImageURL    string `json:"image_url" dynamodbav:"image_url"`

	// TotalReviews and AvgRating are derived from the reviews table.
	// AvgRating is rounded to two decimals and is 0 when TotalReviews is 0.
	TotalReviews int     `json:"total_reviews" dynamodbav:"total_reviews"`
	AvgRating    float64 `json:"avg_rating" dynamodbav:"avg_rating"`

	// Active hides a movie from listings. Movies are never deleted.
	Active bool `json:"active" dynamodbav:"active"`

	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
	LastUpdated time.Time `json:"last_updated" dynamodbav:"last_updated"`
}

// MovieStats are the derived fields written back after a recompute.
type MovieStats struct {
	TotalReviews int
	AvgRating    float64
	LastUpdated  time.Time
}

// Apply copies the stats onto m.
func (s MovieStats) Apply(m *Movie) {
	m.TotalReviews = s.TotalReviews
	m.AvgRating = s.AvgRating
	m.LastUpdated = s.LastUpdated
}

// GenreOrUnknown returns the movie genre, or UnknownGenre when it is blank.
func (m *Movie) GenreOrUnknown() string {
	if strings.TrimSpace(m.Genre) == "" {
		return UnknownGenre
	}
	return m.Genre
}

// PopularityScore is avg_rating weighted by review count. A movie without
// reviews scores 0 regardless of its rating.
func (m *Movie) PopularityScore() float64 {
	return m.AvgRating * float64(m.TotalReviews)
}

// MatchesQuery reports whether query occurs in the title, description or
// director, ignoring case.
func (m *Movie) MatchesQuery(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	return strings.Contains(strings.ToLower(m.Title), q) ||
		strings.Contains(strings.ToLower(m.Description), q) ||
		strings.Contains(strings.ToLower(m.Director), q)
}

// SortMoviesByID orders movies by movie_id ascending, the catalog order
// every storage backend returns.
func SortMoviesByID(movies []Movie) {
	sort.SliceStable(movies, func(i, j int) bool {
		return movies[i].MovieID < movies[j].MovieID
	})
}

// SortMoviesByRating stably orders movies by avg_rating, highest first.
// Ties keep their incoming order.
func SortMoviesByRating(movies []Movie) {
	sort.SliceStable(movies, func(i, j int) bool {
		return movies[i].AvgRating > movies[j].AvgRating
	})
}

// FilterByGenre returns the movies whose genre equals genre, ignoring case.
// An empty genre or "all" returns movies unchanged.
func FilterByGenre(movies []Movie, genre string) []Movie {
	g := strings.ToLower(strings.TrimSpace(genre))
	if g == "" || g == "all" {
		return movies
	}
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if strings.ToLower(m.Genre) == g {
			out = append(out, m)
		}
	}
	return out
}

// AvailableGenres returns the sorted set of non-empty genres.
func AvailableGenres(movies []Movie) []string {
	seen := make(map[string]struct{}, len(movies))
	genres := make([]string, 0, len(movies))
	for _, m := range movies {
		if m.Genre == "" {
			continue
		}
		if _, ok := seen[m.Genre]; ok {
			continue
		}
		seen[m.Genre] = struct{}{}
		genres = append(genres, m.Genre)
	}
	sort.Strings(genres)
	return genres
}
