// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinemapulse/internal/auth"
	"github.com/tomtom215/cinemapulse/internal/logging"
	"github.com/tomtom215/cinemapulse/internal/models"
	"github.com/tomtom215/cinemapulse/internal/storage"
)

// SetMovieActive shows or hides a movie in the catalog.
//
// @Summary Toggle movie visibility
// @Description Requires the admin role. Inactive movies disappear from listings and cannot be reviewed.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Movie ID"
// @Param body body models.SetActiveRequest true "New state"
// @Success 200 {object} models.APIResponse{data=models.Movie}
// @Failure 400 {object} models.APIResponse
// @Failure 403 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Security BearerAuth
// @Router /api/admin/movies/{id}/active [put]
func (h *Handler) SetMovieActive(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")

	var req models.SetActiveRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	if err := h.store.SetMovieActive(r.Context(), id, *req.Active); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, CodeNotFound, msgMovieNotFound, nil)
			return
		}
		respondStorageError(w, r, err)
		return
	}

	movie, err := h.store.GetMovie(r.Context(), id)
	if err != nil || movie == nil {
		respondStorageError(w, r, err)
		return
	}

	admin := auth.SubjectFromContext(r.Context())
	logging.Ctx(r.Context()).Info().
		Str("admin", admin.Email).
		Str("movie_id", id).
		Bool("active", *req.Active).
		Msg("movie visibility changed")

	respondSuccess(w, r, http.StatusOK, movie, start)
}
