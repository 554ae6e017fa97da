// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package notify

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/cinemapulse/internal/models"
)

// Event types
const (
	EventNewReview      = "new_review"
	EventUserRegistered = "user_registered"
)

// unknownTitle is reported when the reviewed movie cannot be resolved.
const unknownTitle = "Unknown"

// Event is one notification. ID is unique per event and is used for
// broker-side deduplication.
type Event struct {
	ID         string
	Type       string
	OccurredAt time.Time
	Payload    interface{}
}

// NewReviewPayload is the body of a new_review event.
type NewReviewPayload struct {
	Event      string `json:"event"`
	ReviewID   string `json:"review_id"`
	MovieID    string `json:"movie_id"`
	MovieTitle string `json:"movie_title"`
	User       string `json:"user"`
	Rating     int    `json:"rating"`
	Timestamp  string `json:"timestamp"`
}

// UserRegisteredPayload is the body of a user_registered event.
type UserRegisteredPayload struct {
	Event string `json:"event"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// NewReviewEvent builds a new_review event. An empty movieTitle is reported
// as "Unknown".
func NewReviewEvent(r *models.Review, movieTitle string) Event {
	if movieTitle == "" {
		movieTitle = unknownTitle
	}
	return Event{
		ID:         uuid.New().String(),
		Type:       EventNewReview,
		OccurredAt: time.Now().UTC(),
		Payload: NewReviewPayload{
			Event:      EventNewReview,
			ReviewID:   r.ReviewID,
			MovieID:    r.MovieID,
			MovieTitle: movieTitle,
			User:       r.Name,
			Rating:     r.Rating,
			Timestamp:  r.CreatedAt.UTC().Format(time.RFC3339),
		},
	}
}

// NewUserRegisteredEvent builds a user_registered event.
func NewUserRegisteredEvent(u *models.User) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       EventUserRegistered,
		OccurredAt: time.Now().UTC(),
		Payload: UserRegisteredPayload{
			Event: EventUserRegistered,
			Email: u.Email,
			Name:  u.Name,
		},
	}
}

// Encode returns the JSON payload.
func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e.Payload)
}
