// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinemapulse/internal/analytics"
	"github.com/tomtom215/cinemapulse/internal/auth"
	"github.com/tomtom215/cinemapulse/internal/logging"
	"github.com/tomtom215/cinemapulse/internal/models"
	"github.com/tomtom215/cinemapulse/internal/recommend"
)

const maxRecommendations = 50

// Recommendations returns personalized suggestions for the signed-in user.
//
// @Summary Get recommendations
// @Description Favorite-genre movies first, then the best rated of the rest; the top rated movies for users without reviews
// @Tags Recommendations
// @Produce json
// @Param limit query int false "Number of movies (default 5, max 50)"
// @Success 200 {object} models.APIResponse{data=models.RecommendationsResponse}
// @Failure 401 {object} models.APIResponse
// @Security BearerAuth
// @Router /api/recommendations [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	subject := auth.SubjectFromContext(r.Context())
	limit := getIntParam(r, "limit", 0, maxRecommendations)

	res := h.recommend.RecommendDetailed(r.Context(), subject.Email, limit)
	resp := models.RecommendationsResponse{Recommendations: res.Movies, Count: len(res.Movies)}
	if res.Mode == recommend.ModeDegraded {
		respondDegraded(w, r, resp, start)
		return
	}
	respondSuccess(w, r, http.StatusOK, resp, start)
}

// AnalyticsResponse is the analytics dashboard.
type AnalyticsResponse struct {
	analytics.Summary
	UserReviewCount int            `json:"user_review_count"`
	Recommendations []models.Movie `json:"recommendations"`
}

// Analytics returns catalog-wide statistics plus the user's own numbers.
//
// @Summary Analytics dashboard
// @Tags Analytics
// @Produce json
// @Success 200 {object} models.APIResponse{data=AnalyticsResponse}
// @Failure 401 {object} models.APIResponse
// @Security BearerAuth
// @Router /api/analytics [get]
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	subject := auth.SubjectFromContext(r.Context())

	resp := AnalyticsResponse{
		Summary:         h.analytics.Summary(r.Context()),
		Recommendations: h.recommend.Recommend(r.Context(), subject.Email, h.config.DashboardRecommendations),
	}
	degraded := resp.Degraded

	reviews, err := h.store.ListReviewsByUser(r.Context(), subject.Email)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("user review count unavailable")
		degraded = true
	} else {
		resp.UserReviewCount = len(reviews)
	}

	if degraded {
		respondDegraded(w, r, resp, start)
		return
	}
	respondSuccess(w, r, http.StatusOK, resp, start)
}
