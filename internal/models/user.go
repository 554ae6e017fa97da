// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package models

import (
	"strings"
	"time"
)

// User is a registered account. Email is the primary key and is always
// stored lowercase.
type User struct {
	Email        string    `json:"email" dynamodbav:"email"`
	Name         string    `json:"name" dynamodbav:"name"`
	PasswordHash string    `json:"password_hash" dynamodbav:"password_hash"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at"`

	TotalReviews int     `json:"total_reviews" dynamodbav:"total_reviews"`
	AvgRating    float64 `json:"avg_rating" dynamodbav:"avg_rating"`

	// LastReviewDate is the RFC 3339 created_at of the newest review,
	// or "" when the user has not reviewed anything.
	LastReviewDate string `json:"last_review_date" dynamodbav:"last_review_date"`

	IsActive bool `json:"is_active" dynamodbav:"is_active"`
}

// UserStats are the derived fields written back after a recompute.
type UserStats struct {
	TotalReviews   int
	AvgRating      float64
	LastReviewDate string
}

// Apply copies the stats onto u.
func (s UserStats) Apply(u *User) {
	u.TotalReviews = s.TotalReviews
	u.AvgRating = s.AvgRating
	u.LastReviewDate = s.LastReviewDate
}

// UserProfile is the public view of a User.
type UserProfile struct {
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	TotalReviews   int       `json:"total_reviews"`
	AvgRating      float64   `json:"avg_rating"`
	LastReviewDate string    `json:"last_review_date"`
}

// Profile strips credentials from u.
func (u *User) Profile() UserProfile {
	return UserProfile{
		Email:          u.Email,
		Name:           u.Name,
		CreatedAt:      u.CreatedAt,
		TotalReviews:   u.TotalReviews,
		AvgRating:      u.AvgRating,
		LastReviewDate: u.LastReviewDate,
	}
}

// NormalizeEmail trims and lowercases an address for use as a key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
