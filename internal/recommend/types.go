// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package recommend

import (
	"sort"

	"github.com/tomtom215/cinemapulse/internal/models"
)

// Mode describes how a recommendation list was produced.
type Mode string

const (
	// ModeColdStart ranks the whole catalog by rating.
	ModeColdStart Mode = "cold_start"
	// ModePersonalized ranks favorite genres first.
	ModePersonalized Mode = "personalized"
	// ModeDegraded is an empty list returned because storage failed.
	ModeDegraded Mode = "degraded"
)

// GenreScore is the user's mean rating within one genre.
type GenreScore struct {
	Genre string  `json:"genre"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// Profile summarizes a user's review history against the catalog.
type Profile struct {
	// Rated holds every movie id the user reviewed, active or not.
	Rated map[string]struct{}
	// Genres is ordered by genre name.
	Genres []GenreScore
}

// BuildProfile joins reviews with the active catalog. A review of a movie
// missing from the catalog counts toward models.UnknownGenre.
func BuildProfile(reviews []models.Review, catalog []models.Movie) Profile {
	genreOf := make(map[string]string, len(catalog))
	for i := range catalog {
		genreOf[catalog[i].MovieID] = catalog[i].GenreOrUnknown()
	}

	type acc struct{ sum, n int }
	per := make(map[string]*acc)
	rated := make(map[string]struct{}, len(reviews))
	for _, r := range reviews {
		rated[r.MovieID] = struct{}{}

		g, ok := genreOf[r.MovieID]
		if !ok {
			g = models.UnknownGenre
		}
		a := per[g]
		if a == nil {
			a = &acc{}
			per[g] = a
		}
		a.sum += r.Rating
		a.n++
	}

	genres := make([]GenreScore, 0, len(per))
	for g, a := range per {
		genres = append(genres, GenreScore{Genre: g, Mean: float64(a.sum) / float64(a.n), Count: a.n})
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].Genre < genres[j].Genre })

	return Profile{Rated: rated, Genres: genres}
}

// Favorites returns the genres whose mean is at least threshold.
func (p Profile) Favorites(threshold float64) map[string]struct{} {
	fav := make(map[string]struct{})
	for _, g := range p.Genres {
		if g.Mean >= threshold {
			fav[g.Genre] = struct{}{}
		}
	}
	return fav
}

// Result is a recommendation list with the reasoning behind it.
type Result struct {
	Movies    []models.Movie `json:"movies"`
	Mode      Mode           `json:"mode"`
	Favorites []string       `json:"favorite_genres,omitempty"`
}
