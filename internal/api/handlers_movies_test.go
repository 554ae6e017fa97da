// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/tomtom215/cinemapulse/internal/models"
)

func TestListMovies(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	tests := []struct {
		name      string
		query     string
		wantCount int
		check     func(t *testing.T, movies []models.Movie)
	}{
		{"all movies", "", 8, nil},
		{"all keyword", "?genre=all", 8, nil},
		{"genre filter is case-insensitive", "?genre=sci-fi", 2, func(t *testing.T, movies []models.Movie) {
			for _, m := range movies {
				if m.Genre != "Sci-Fi" {
					t.Errorf("genre = %q", m.Genre)
				}
			}
		}},
		{"unknown genre", "?genre=Western", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := s.do(t, http.MethodGet, "/api/movies"+tt.query, "", nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			var resp models.MoviesResponse
			decodeData(t, rec, &resp)
			if resp.Count != tt.wantCount || len(resp.Movies) != tt.wantCount {
				t.Fatalf("count = %d/%d, want %d", resp.Count, len(resp.Movies), tt.wantCount)
			}
			for i := 1; i < len(resp.Movies); i++ {
				if resp.Movies[i-1].AvgRating < resp.Movies[i].AvgRating {
					t.Errorf("not sorted by rating at %d", i)
				}
			}
			if tt.check != nil {
				tt.check(t, resp.Movies)
			}
		})
	}
}

func TestGetMovie(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/movies/movie_001", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp models.MovieDetailResponse
	decodeData(t, rec, &resp)
	if resp.Movie.MovieID != "movie_001" || resp.Reviews == nil {
		t.Errorf("resp = %+v", resp)
	}

	expectError(t, s.do(t, http.MethodGet, "/api/movies/movie_999", "", nil), http.StatusNotFound, CodeNotFound, "Movie not found")
	expectError(t, s.do(t, http.MethodGet, "/api/movies/movie_999/reviews", "", nil), http.StatusNotFound, CodeNotFound, "Movie not found")
}

func TestSearchMovies(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	expectError(t, s.do(t, http.MethodGet, "/api/search?q=%20", "", nil), http.StatusBadRequest, CodeValidation, "Please enter a search term")

	rec := s.do(t, http.MethodGet, "/api/search?q=TANAKA", "", nil)
	var resp models.MoviesResponse
	decodeData(t, rec, &resp)
	if resp.Count == 0 {
		t.Fatal("expected matches for director search")
	}
	for _, m := range resp.Movies {
		if !m.MatchesQuery("tanaka") {
			t.Errorf("%s does not match", m.MovieID)
		}
	}
	if resp.Query != "TANAKA" {
		t.Errorf("query = %q", resp.Query)
	}
}

func TestGenres(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	var resp models.GenresResponse
	decodeData(t, s.do(t, http.MethodGet, "/api/genres", "", nil), &resp)
	if len(resp.Genres) == 0 {
		t.Fatal("no genres")
	}
	for i := 1; i < len(resp.Genres); i++ {
		if strings.Compare(resp.Genres[i-1], resp.Genres[i]) >= 0 {
			t.Errorf("genres not sorted and unique: %v", resp.Genres)
		}
	}
}

func TestCatalogDegradesWhenStorageDown(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	_ = s.store.Close()

	for _, path := range []string{"/api/movies", "/api/genres", "/api/search?q=x"} {
		rec := s.do(t, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, rec.Code)
			continue
		}
		env := decodeEnvelope(t, rec)
		if !env.Metadata.Degraded {
			t.Errorf("%s not marked degraded", path)
		}
	}

	expectError(t, s.do(t, http.MethodGet, "/api/movies/movie_001", "", nil), http.StatusServiceUnavailable, CodeUnavailable, "")
}

func TestHealth(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"storage":"ok"`) {
		t.Errorf("healthy: %d %s", rec.Code, rec.Body.String())
	}

	_ = s.store.Close()
	rec = s.do(t, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusServiceUnavailable || !strings.Contains(rec.Body.String(), `"status":"unhealthy"`) {
		t.Errorf("unhealthy: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRequestIDInMetadata(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/genres", "", nil)
	env := decodeEnvelope(t, rec)
	if env.Metadata.RequestID == "" || env.Metadata.RequestID != rec.Header().Get("X-Request-ID") {
		t.Errorf("request id = %q, header %q", env.Metadata.RequestID, rec.Header().Get("X-Request-ID"))
	}
}
