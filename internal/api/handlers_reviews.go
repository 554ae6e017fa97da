// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/cinemapulse/internal/auth"
	"github.com/tomtom215/cinemapulse/internal/logging"
	"github.com/tomtom215/cinemapulse/internal/models"
	"github.com/tomtom215/cinemapulse/internal/review"
)

const msgReviewSubmitted = "Review submitted successfully!"

// SubmitReview stores a review by the signed-in user.
//
// @Summary Submit review
// @Description Validates and stores a review, then refreshes the movie and user statistics
// @Tags Reviews
// @Accept json
// @Produce json
// @Param review body models.SubmitReviewRequest true "Review"
// @Success 201 {object} models.APIResponse{data=models.SubmitReviewResponse}
// @Failure 400 {object} models.APIResponse
// @Failure 401 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Security BearerAuth
// @Router /api/reviews [post]
func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	subject := auth.SubjectFromContext(r.Context())

	var req models.SubmitReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rev, err := h.reviews.SubmitReview(r.Context(), review.SubmitInput{
		Name:     subject.Name,
		Email:    subject.Email,
		MovieID:  req.MovieID,
		Rating:   req.Rating,
		Feedback: req.Feedback,
	})
	if err != nil {
		var ve *review.ValidationError
		if errors.As(err, &ve) {
			respondErrorDetails(w, r, http.StatusBadRequest, CodeValidation, ve.Message,
				map[string]interface{}{"field": ve.Field}, nil)
			return
		}
		respondStorageError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusCreated, models.SubmitReviewResponse{Message: msgReviewSubmitted, Review: *rev}, start)
}

// UserReviews returns the signed-in user's dashboard: their reviews joined
// with the catalog, their statistics and a few recommendations.
//
// @Summary My reviews
// @Tags Reviews
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.UserReviewsResponse}
// @Failure 401 {object} models.APIResponse
// @Security BearerAuth
// @Router /api/user/reviews [get]
func (h *Handler) UserReviews(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	subject := auth.SubjectFromContext(r.Context())
	log := logging.Ctx(r.Context())
	degraded := false

	profile := models.UserProfile{Email: subject.Email, Name: subject.Name}
	if u, err := h.store.GetUser(r.Context(), subject.Email); err != nil {
		log.Warn().Err(err).Msg("user record unavailable")
		degraded = true
	} else if u != nil {
		profile = u.Profile()
	}

	enriched := []models.ReviewWithMovie{}
	reviews, err := h.store.ListReviewsByUser(r.Context(), subject.Email)
	if err != nil {
		log.Warn().Err(err).Msg("user reviews unavailable")
		degraded = true
	} else {
		catalog, cerr := h.store.ListActiveMovies(r.Context())
		if cerr != nil {
			log.Warn().Err(cerr).Msg("catalog unavailable, reviews not enriched")
			degraded = true
		}
		models.SortReviewsNewestFirst(reviews)
		enriched = models.EnrichReviews(reviews, catalog)
	}

	resp := models.UserReviewsResponse{
		User:            profile,
		Reviews:         enriched,
		Recommendations: h.recommend.Recommend(r.Context(), subject.Email, h.config.DashboardRecommendations),
	}
	if degraded {
		respondDegraded(w, r, resp, start)
		return
	}
	respondSuccess(w, r, http.StatusOK, resp, start)
}
