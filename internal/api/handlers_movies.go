// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinemapulse/internal/logging"
	"github.com/tomtom215/cinemapulse/internal/models"
)

const msgMovieNotFound = "Movie not found"

// ListMovies lists active movies.
//
// @Summary List movies
// @Description Active movies sorted by average rating, optionally filtered by genre (case-insensitive, "all" disables the filter)
// @Tags Movies
// @Produce json
// @Param genre query string false "Genre filter"
// @Success 200 {object} models.APIResponse{data=models.MoviesResponse}
// @Router /api/movies [get]
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	genre := strings.TrimSpace(r.URL.Query().Get("genre"))

	catalog, err := h.store.ListActiveMovies(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("catalog unavailable, returning empty list")
		respondDegraded(w, r, models.MoviesResponse{Movies: []models.Movie{}, Genre: genre}, start)
		return
	}

	movies := append([]models.Movie(nil), models.FilterByGenre(catalog, genre)...)
	models.SortMoviesByRating(movies)
	if movies == nil {
		movies = []models.Movie{}
	}

	respondSuccess(w, r, http.StatusOK, models.MoviesResponse{Movies: movies, Count: len(movies), Genre: genre}, start)
}

// GetMovie returns one active movie and its newest reviews.
//
// @Summary Get movie
// @Tags Movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} models.APIResponse{data=models.MovieDetailResponse}
// @Failure 404 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /api/movies/{id} [get]
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	movie, ok := h.loadActiveMovie(w, r)
	if !ok {
		return
	}

	reviews, degraded := h.movieReviews(r, movie.MovieID)
	resp := models.MovieDetailResponse{Movie: *movie, Reviews: reviews}
	if degraded {
		respondDegraded(w, r, resp, start)
		return
	}
	respondSuccess(w, r, http.StatusOK, resp, start)
}

// MovieReviews returns a movie's reviews, newest first.
//
// @Summary List movie reviews
// @Tags Movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} models.APIResponse{data=models.ReviewsResponse}
// @Failure 404 {object} models.APIResponse
// @Router /api/movies/{id}/reviews [get]
func (h *Handler) MovieReviews(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	movie, ok := h.loadActiveMovie(w, r)
	if !ok {
		return
	}

	reviews, degraded := h.movieReviews(r, movie.MovieID)
	resp := models.ReviewsResponse{MovieID: movie.MovieID, Reviews: reviews, Count: len(reviews)}
	if degraded {
		respondDegraded(w, r, resp, start)
		return
	}
	respondSuccess(w, r, http.StatusOK, resp, start)
}

// loadActiveMovie resolves the {id} path parameter, answering 404 or 503
// itself when the movie cannot be served.
func (h *Handler) loadActiveMovie(w http.ResponseWriter, r *http.Request) (*models.Movie, bool) {
	id := chi.URLParam(r, "id")
	movie, err := h.store.GetMovie(r.Context(), id)
	if err != nil {
		respondStorageError(w, r, err)
		return nil, false
	}
	if movie == nil || !movie.Active {
		respondError(w, r, http.StatusNotFound, CodeNotFound, msgMovieNotFound, nil)
		return nil, false
	}
	return movie, true
}

// movieReviews returns up to MovieReviewsLimit reviews, newest first. A
// storage failure yields an empty list and degraded=true.
func (h *Handler) movieReviews(r *http.Request, movieID string) (reviews []models.Review, degraded bool) {
	reviews, err := h.store.ListReviewsByMovie(r.Context(), movieID)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("movie_id", movieID).Msg("reviews unavailable")
		return []models.Review{}, true
	}
	models.SortReviewsNewestFirst(reviews)
	if len(reviews) > h.config.MovieReviewsLimit {
		reviews = reviews[:h.config.MovieReviewsLimit]
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, false
}

// SearchMovies matches the query against title, description and director.
//
// @Summary Search movies
// @Tags Movies
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} models.APIResponse{data=models.MoviesResponse}
// @Failure 400 {object} models.APIResponse
// @Router /api/search [get]
func (h *Handler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respondError(w, r, http.StatusBadRequest, CodeValidation, "Please enter a search term", nil)
		return
	}

	catalog, err := h.store.ListActiveMovies(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("catalog unavailable, returning empty search")
		respondDegraded(w, r, models.MoviesResponse{Movies: []models.Movie{}, Query: query}, start)
		return
	}

	matches := make([]models.Movie, 0, len(catalog))
	for i := range catalog {
		if catalog[i].MatchesQuery(query) {
			matches = append(matches, catalog[i])
		}
	}
	models.SortMoviesByRating(matches)

	respondSuccess(w, r, http.StatusOK, models.MoviesResponse{Movies: matches, Count: len(matches), Query: query}, start)
}

// Genres lists the genres of the active catalog.
//
// @Summary List genres
// @Tags Movies
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.GenresResponse}
// @Router /api/genres [get]
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	catalog, err := h.store.ListActiveMovies(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("catalog unavailable, returning no genres")
		respondDegraded(w, r, models.GenresResponse{Genres: []string{}}, start)
		return
	}
	respondSuccess(w, r, http.StatusOK, models.GenresResponse{Genres: models.AvailableGenres(catalog)}, start)
}
