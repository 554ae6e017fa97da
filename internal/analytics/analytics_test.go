// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package analytics

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/models"
	"github.com/tomtom215/cinemapulse/internal/storage"
)

type fakeSource struct {
	movies   []models.Movie
	count    int
	moviesEr error
	countErr error
}

func (f *fakeSource) ListActiveMovies(ctx context.Context) ([]models.Movie, error) {
	return f.movies, f.moviesEr
}

func (f *fakeSource) CountReviews(ctx context.Context) (int, error) {
	return f.count, f.countErr
}

func m(id, genre string, avg float64, total int) models.Movie {
	return models.Movie{MovieID: id, Genre: genre, AvgRating: avg, TotalReviews: total, Active: true}
}

func movieIDs(movies []models.Movie) []string {
	out := make([]string, len(movies))
	for i := range movies {
		out[i] = movies[i].MovieID
	}
	return out
}

var catalog = []models.Movie{
	m("m1", "Drama", 4.0, 2),  // score 8
	m("m2", "Action", 5.0, 1), // score 5
	m("m3", "", 3.0, 4),       // score 12
	m("m4", "Drama", 5.0, 0),  // score 0
	m("m5", "Action", 2.0, 4), // score 8
	m("m6", "Sci-Fi", 4.5, 2), // score 9
}

func TestGenreDistribution(t *testing.T) {
	t.Parallel()

	got := GenreDistribution(catalog)
	want := map[string]int{"Drama": 2, "Action": 2, "Unknown": 1, "Sci-Fi": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GenreDistribution() = %v, want %v", got, want)
	}
}

func TestMostReviewed(t *testing.T) {
	t.Parallel()

	got := movieIDs(MostReviewed(catalog, 4))
	want := []string{"m3", "m5", "m1", "m6"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MostReviewed() = %v, want %v", got, want)
	}
}

func TestTopMovies(t *testing.T) {
	t.Parallel()

	got := movieIDs(TopMovies(catalog, 6))
	// m1 and m5 tie at 8 and keep catalog order; unreviewed m4 scores 0.
	want := []string{"m3", "m6", "m1", "m5", "m2", "m4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopMovies() = %v, want %v", got, want)
	}
}

func TestRankings_DoNotMutateInput(t *testing.T) {
	t.Parallel()

	in := append([]models.Movie(nil), catalog...)
	_ = TopMovies(in, 3)
	_ = MostReviewed(in, 3)
	if !reflect.DeepEqual(movieIDs(in), movieIDs(catalog)) {
		t.Error("ranking reordered the input slice")
	}
}

func TestReporter_Summary(t *testing.T) {
	t.Parallel()

	r := NewReporter(&fakeSource{movies: catalog, count: 13}, Config{TopMoviesLimit: 2, MostReviewedLimit: 1}, zerolog.Nop())
	s := r.Summary(context.Background())

	if s.Degraded {
		t.Error("Degraded = true")
	}
	if s.TotalReviewsCount != 13 || s.TotalMovies != 6 {
		t.Errorf("counts = %d reviews / %d movies", s.TotalReviewsCount, s.TotalMovies)
	}
	if got := movieIDs(s.TopMovies); !reflect.DeepEqual(got, []string{"m3", "m6"}) {
		t.Errorf("TopMovies = %v", got)
	}
	if got := movieIDs(s.MostReviewed); !reflect.DeepEqual(got, []string{"m3"}) {
		t.Errorf("MostReviewed = %v", got)
	}
	if !reflect.DeepEqual(s.AvailableGenres, []string{"Action", "Drama", "Sci-Fi"}) {
		t.Errorf("AvailableGenres = %v", s.AvailableGenres)
	}
}

func TestReporter_SummaryDegrades(t *testing.T) {
	t.Parallel()

	down := storage.ErrUnavailable
	for name, src := range map[string]*fakeSource{
		"catalog": {moviesEr: down},
		"count":   {movies: catalog, countErr: down},
	} {
		s := NewReporter(src, DefaultConfig(), zerolog.Nop()).Summary(context.Background())
		if !s.Degraded {
			t.Errorf("%s: Degraded = false", name)
		}
		if s.GenreDistribution == nil || s.TopMovies == nil || s.MostReviewed == nil || s.TotalReviewsCount != 0 {
			t.Errorf("%s: summary = %+v, want empty collections", name, s)
		}
	}
}

func TestReporter_IndividualQueries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := NewReporter(&fakeSource{movies: catalog, count: 7}, Config{}, zerolog.Nop())

	if r.config != DefaultConfig() {
		t.Errorf("config = %+v, want defaults", r.config)
	}
	dist, err := r.GenreDistribution(ctx)
	if err != nil || dist["Unknown"] != 1 {
		t.Errorf("GenreDistribution() = %v, %v", dist, err)
	}
	top, err := r.TopMovies(ctx, 1)
	if err != nil || len(top) != 1 || top[0].MovieID != "m3" {
		t.Errorf("TopMovies() = %v, %v", movieIDs(top), err)
	}
	most, err := r.MostReviewed(ctx, 2)
	if err != nil || len(most) != 2 {
		t.Errorf("MostReviewed() = %v, %v", movieIDs(most), err)
	}
	n, err := r.TotalReviewsCount(ctx)
	if err != nil || n != 7 {
		t.Errorf("TotalReviewsCount() = %d, %v", n, err)
	}

	failing := NewReporter(&fakeSource{moviesEr: errors.New("boom")}, Config{}, zerolog.Nop())
	if _, err := failing.TopMovies(ctx, 3); err == nil {
		t.Error("TopMovies() on failing source returned nil error")
	}
}

func TestReporter_EmptyCatalog(t *testing.T) {
	t.Parallel()

	s := NewReporter(&fakeSource{}, DefaultConfig(), zerolog.Nop()).Summary(context.Background())
	if s.Degraded || s.TotalMovies != 0 || len(s.TopMovies) != 0 || s.TopMovies == nil {
		t.Errorf("Summary() on empty catalog = %+v", s)
	}
}
