// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package models

import (
	"sort"
	"time"
)

// Rating bounds and feedback length enforced at submission.
const (
	MinRating         = 1
	MaxRating         = 5
	MinFeedbackLength = 10
)

// DisplayDateLayout formats Review.DisplayDate.
const DisplayDateLayout = "2006-01-02 15:04:05"

// DefaultReleaseYear is reported for reviews whose movie is not in the catalog.
const DefaultReleaseYear = 2025

// Review is one user's rating of one movie. Reviews are immutable.
type Review struct {
	ReviewID    string    `json:"review_id" dynamodbav:"review_id"`
	UserEmail   string    `json:"user_email" dynamodbav:"user_email"`
	MovieID     string    `json:"movie_id" dynamodbav:"movie_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Rating      int       `json:"rating" dynamodbav:"rating"`
	Feedback    string    `json:"feedback" dynamodbav:"feedback"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
	DisplayDate string    `json:"display_date" dynamodbav:"display_date"`
}

// ReviewWithMovie is a review enriched with the reviewed movie's details.
type ReviewWithMovie struct {
	Review
	MovieTitle  string `json:"movie_title,omitempty"`
	MovieGenre  string `json:"movie_genre,omitempty"`
	MovieImage  string `json:"movie_image,omitempty"`
	ReleaseYear int    `json:"release_year"`
}

// SortReviewsNewestFirst orders reviews by created_at descending.
func SortReviewsNewestFirst(reviews []Review) {
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
}

// EnrichReviews joins reviews with the catalog. Reviews of movies missing
// from the catalog keep empty movie fields and DefaultReleaseYear.
func EnrichReviews(reviews []Review, catalog []Movie) []ReviewWithMovie {
	byID := make(map[string]*Movie, len(catalog))
	for i := range catalog {
		byID[catalog[i].MovieID] = &catalog[i]
	}

	out := make([]ReviewWithMovie, len(reviews))
	for i, r := range reviews {
		out[i] = ReviewWithMovie{Review: r, ReleaseYear: DefaultReleaseYear}
		if m, ok := byID[r.MovieID]; ok {
			out[i].MovieTitle = m.Title
			out[i].MovieGenre = m.Genre
			out[i].MovieImage = m.ImageURL
			if m.ReleaseYear != 0 {
				out[i].ReleaseYear = m.ReleaseYear
			}
		}
	}
	return out
}
