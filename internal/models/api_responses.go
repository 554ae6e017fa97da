// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package models

import (
	"time"
)

// APIResponse is the envelope every JSON endpoint returns.
//
// Status is "success" or "error". On error, Error carries a machine-readable
// code and the human-readable message shown to the user.
//
//	{
//	  "status": "error",
//	  "error": {"code": "VALIDATION_ERROR", "message": "Rating must be between 1 and 5!"},
//	  "metadata": {"timestamp": "2026-01-02T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata accompanies every response.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
	Degraded    bool      `json:"degraded,omitempty"` // storage was unavailable; data may be empty
}

// APIError is the error half of the envelope.
//
// Codes in use: VALIDATION_ERROR, NOT_FOUND, UNAUTHORIZED, FORBIDDEN,
// CONFLICT, RATE_LIMITED, SERVICE_UNAVAILABLE and INTERNAL_ERROR.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// MoviesResponse is returned by the listing and search endpoints.
type MoviesResponse struct {
	Movies []Movie `json:"movies"`
	Count  int     `json:"count"`
	Query  string  `json:"query,omitempty"`
	Genre  string  `json:"genre,omitempty"`
}

// MovieDetailResponse is a single movie with its newest reviews.
type MovieDetailResponse struct {
	Movie   Movie    `json:"movie"`
	Reviews []Review `json:"reviews"`
}

// ReviewsResponse lists reviews for one movie.
type ReviewsResponse struct {
	MovieID string   `json:"movie_id"`
	Reviews []Review `json:"reviews"`
	Count   int      `json:"count"`
}

// GenresResponse lists the genres present in the active catalog.
type GenresResponse struct {
	Genres []string `json:"available_genres"`
}

// UserReviewsResponse is the signed-in user's dashboard.
type UserReviewsResponse struct {
	User            UserProfile       `json:"user"`
	Reviews         []ReviewWithMovie `json:"reviews"`
	Recommendations []Movie           `json:"recommendations"`
}

// RecommendationsResponse lists suggested movies for the signed-in user.
type RecommendationsResponse struct {
	Recommendations []Movie `json:"recommendations"`
	Count           int     `json:"count"`
}

// SubmitReviewRequest is the body of POST /api/reviews.
type SubmitReviewRequest struct {
	MovieID  string `json:"movie_id"`
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback"`
}

// SubmitReviewResponse is returned after a review is stored.
type SubmitReviewResponse struct {
	Message string `json:"message"`
	Review  Review `json:"review"`
}

// RegisterRequest is the body of POST /api/auth/register. Its rules and
// messages live in auth.ValidateRegistration.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token issued at login.
type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      UserProfile `json:"user"`
}

// SetActiveRequest is the body of PUT /api/admin/movies/{id}/active.
type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Storage   string    `json:"storage"`
	Backend   string    `json:"backend"`
	Timestamp time.Time `json:"timestamp"`
}
