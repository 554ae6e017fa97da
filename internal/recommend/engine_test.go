// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package recommend

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/models"
	"github.com/tomtom215/cinemapulse/internal/storage"
)

// mockDataProvider implements DataProvider for testing.
type mockDataProvider struct {
	movies     []models.Movie
	reviews    map[string][]models.Review
	moviesErr  error
	reviewsErr error
}

func (m *mockDataProvider) ListActiveMovies(ctx context.Context) ([]models.Movie, error) {
	if m.moviesErr != nil {
		return nil, m.moviesErr
	}
	return append([]models.Movie(nil), m.movies...), nil
}

func (m *mockDataProvider) ListReviewsByUser(ctx context.Context, email string) ([]models.Review, error) {
	if m.reviewsErr != nil {
		return nil, m.reviewsErr
	}
	return m.reviews[email], nil
}

func movie(id, genre string, avg float64, total int) models.Movie {
	return models.Movie{MovieID: id, Genre: genre, AvgRating: avg, TotalReviews: total, Active: true}
}

func review(email, movieID string, rating int) models.Review {
	return models.Review{ReviewID: email + movieID, UserEmail: email, MovieID: movieID, Rating: rating}
}

func ids(movies []models.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.MovieID
	}
	return out
}

func newTestEngine(dp DataProvider) *Engine {
	return NewEngine(dp, DefaultConfig(), zerolog.Nop())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", *DefaultConfig(), false},
		{"zero limit", Config{DefaultLimit: 0, FavoriteThreshold: 4}, true},
		{"threshold too high", Config{DefaultLimit: 5, FavoriteThreshold: 5.5}, true},
		{"threshold too low", Config{DefaultLimit: 5, FavoriteThreshold: 0.5}, true},
		{"custom", Config{DefaultLimit: 10, FavoriteThreshold: 3.5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEngine_ColdStart(t *testing.T) {
	t.Parallel()

	dp := &mockDataProvider{movies: []models.Movie{
		movie("m1", "Drama", 3.0, 2),
		movie("m2", "Action", 4.5, 2),
		movie("m3", "Drama", 4.5, 1),
		movie("m4", "Sci-Fi", 1.0, 1),
		movie("m5", "Sci-Fi", 0, 0),
		movie("m6", "Thriller", 5.0, 1),
		movie("m7", "Action", 2.0, 3),
	}}
	res := newTestEngine(dp).RecommendDetailed(context.Background(), "new@example.com", 5)

	if res.Mode != ModeColdStart {
		t.Errorf("Mode = %s, want %s", res.Mode, ModeColdStart)
	}
	// m2 and m3 tie at 4.5 and keep catalog order.
	want := []string{"m6", "m2", "m3", "m1", "m7"}
	if got := ids(res.Movies); !reflect.DeepEqual(got, want) {
		t.Errorf("cold start = %v, want %v", got, want)
	}
}

func TestEngine_FavoriteGenreThreshold(t *testing.T) {
	t.Parallel()

	dp := &mockDataProvider{
		movies: []models.Movie{
			movie("d1", "Drama", 3, 1),
			movie("d2", "Drama", 3, 1),
			movie("d3", "Drama", 2, 1),
			movie("a1", "Action", 3, 1),
			movie("a2", "Action", 3, 1),
			movie("a3", "Action", 5, 1),
		},
		reviews: map[string][]models.Review{
			"u@x.io": {
				review("u@x.io", "d1", 4),
				review("u@x.io", "d2", 5),
				review("u@x.io", "a1", 4),
				review("u@x.io", "a2", 3),
			},
		},
	}
	res := newTestEngine(dp).RecommendDetailed(context.Background(), "u@x.io", 1)

	if !reflect.DeepEqual(res.Favorites, []string{"Drama"}) {
		t.Errorf("Favorites = %v, want [Drama]", res.Favorites)
	}
	// a3 has the higher rating but Action (3.5) is not a favorite.
	if got := ids(res.Movies); !reflect.DeepEqual(got, []string{"d3"}) {
		t.Errorf("recommend = %v, want [d3]", got)
	}
}

func TestEngine_ThresholdIsInclusive(t *testing.T) {
	t.Parallel()

	p := BuildProfile(
		[]models.Review{review("u", "d1", 4), review("u", "d2", 4)},
		[]models.Movie{movie("d1", "Drama", 0, 0), movie("d2", "Drama", 0, 0)},
	)
	if _, ok := p.Favorites(4.0)["Drama"]; !ok {
		t.Error("mean exactly 4.0 should be a favorite")
	}
	if _, ok := p.Favorites(4.01)["Drama"]; ok {
		t.Error("mean 4.0 should not reach 4.01")
	}
}

func TestEngine_NeverRecommendsRatedMovies(t *testing.T) {
	t.Parallel()

	catalog := []models.Movie{
		movie("m1", "Drama", 5, 1),
		movie("m2", "Drama", 4, 1),
		movie("m3", "Action", 3, 1),
	}
	dp := &mockDataProvider{
		movies: catalog,
		reviews: map[string][]models.Review{
			"u": {review("u", "m1", 5), review("u", "m3", 1)},
		},
	}
	got := newTestEngine(dp).Recommend(context.Background(), "u", 10)
	if !reflect.DeepEqual(ids(got), []string{"m2"}) {
		t.Errorf("recommend = %v, want [m2]", ids(got))
	}
}

func TestEngine_FillsFromOtherGenres(t *testing.T) {
	t.Parallel()

	dp := &mockDataProvider{
		movies: []models.Movie{
			movie("d0", "Drama", 5, 1),
			movie("d1", "Drama", 2, 1),
			movie("d2", "Drama", 3, 1),
			movie("a1", "Action", 4.8, 1),
			movie("a2", "Action", 1, 1),
			movie("s1", "Sci-Fi", 4.9, 1),
			movie("t1", "Thriller", 2.5, 1),
		},
		reviews: map[string][]models.Review{"u": {review("u", "d0", 5)}},
	}
	got := ids(newTestEngine(dp).Recommend(context.Background(), "u", 5))
	want := []string{"d2", "d1", "s1", "a1", "t1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("recommend = %v, want %v", got, want)
	}
}

func TestEngine_NoFavoritesStillFills(t *testing.T) {
	t.Parallel()

	dp := &mockDataProvider{
		movies: []models.Movie{movie("m1", "Drama", 1, 1), movie("m2", "Action", 4, 1), movie("m3", "Drama", 3, 1)},
		reviews: map[string][]models.Review{
			"u": {review("u", "m1", 2)},
		},
	}
	res := newTestEngine(dp).RecommendDetailed(context.Background(), "u", 5)
	if len(res.Favorites) != 0 {
		t.Errorf("Favorites = %v, want none", res.Favorites)
	}
	if got := ids(res.Movies); !reflect.DeepEqual(got, []string{"m2", "m3"}) {
		t.Errorf("recommend = %v, want [m2 m3]", got)
	}
}

func TestEngine_ReviewOfMissingMovieCountsAsUnknown(t *testing.T) {
	t.Parallel()

	catalog := []models.Movie{movie("m1", "", 4.5, 1), movie("m2", "Drama", 4, 1)}
	p := BuildProfile([]models.Review{review("u", "retired", 5)}, catalog)

	if len(p.Genres) != 1 || p.Genres[0].Genre != models.UnknownGenre || p.Genres[0].Mean != 5 {
		t.Fatalf("Genres = %+v", p.Genres)
	}
	if _, ok := p.Favorites(4)[models.UnknownGenre]; !ok {
		t.Fatalf("Favorites() = %v, want %q", p.Favorites(4), models.UnknownGenre)
	}
}

func TestPersonalized_BlankGenreIsOnlyFill(t *testing.T) {
	t.Parallel()

	catalog := []models.Movie{
		movie("m1", "", 2, 1),
		movie("m2", "Drama", 3, 1),
		movie("m3", "Sci-Fi", 4, 1),
	}
	p := BuildProfile([]models.Review{review("u", "retired", 5)}, catalog)
	favorites := p.Favorites(4)

	tests := []struct {
		limit int
		want  []string
	}{
		// No movie carries a favorite genre, so everything comes from the fill.
		{limit: 1, want: []string{"m3"}},
		{limit: 3, want: []string{"m3", "m2", "m1"}},
	}
	for _, tt := range tests {
		got := Personalized(catalog, p, favorites, tt.limit)
		if !reflect.DeepEqual(ids(got), tt.want) {
			t.Errorf("Personalized(limit=%d) = %v, want %v", tt.limit, ids(got), tt.want)
		}
	}

	withUnknown := append([]models.Movie{movie("m0", models.UnknownGenre, 1, 1)}, catalog...)
	got := Personalized(withUnknown, p, favorites, 1)
	if !reflect.DeepEqual(ids(got), []string{"m0"}) {
		t.Errorf("Personalized() = %v, want the movie tagged %q first", ids(got), models.UnknownGenre)
	}
}

func TestEngine_DefaultLimit(t *testing.T) {
	t.Parallel()

	var catalog []models.Movie
	for i := 0; i < 9; i++ {
		catalog = append(catalog, movie(fmt.Sprintf("m%d", i), "Drama", float64(i%5), 1))
	}
	e := newTestEngine(&mockDataProvider{movies: catalog})
	for _, limit := range []int{0, -3} {
		if got := e.Recommend(context.Background(), "u", limit); len(got) != 5 {
			t.Errorf("Recommend(limit=%d) len = %d, want 5", limit, len(got))
		}
	}
}

func TestEngine_DegradesOnStorageError(t *testing.T) {
	t.Parallel()

	down := fmt.Errorf("scan: %w", storage.ErrUnavailable)
	for name, dp := range map[string]*mockDataProvider{
		"movies":  {moviesErr: down},
		"reviews": {movies: []models.Movie{movie("m1", "Drama", 5, 1)}, reviewsErr: down},
	} {
		res := newTestEngine(dp).RecommendDetailed(context.Background(), "u", 5)
		if res.Mode != ModeDegraded {
			t.Errorf("%s: Mode = %s, want degraded", name, res.Mode)
		}
		if res.Movies == nil || len(res.Movies) != 0 {
			t.Errorf("%s: Movies = %v, want empty non-nil", name, res.Movies)
		}
	}
}

func TestEngine_EmptyCatalog(t *testing.T) {
	t.Parallel()

	got := newTestEngine(&mockDataProvider{}).Recommend(context.Background(), "u", 5)
	if got == nil || len(got) != 0 {
		t.Errorf("Recommend() = %v, want empty non-nil", got)
	}
}

func TestEngine_InvalidConfigFallsBack(t *testing.T) {
	t.Parallel()

	e := NewEngine(&mockDataProvider{}, &Config{DefaultLimit: -1}, zerolog.Nop())
	if e.config.DefaultLimit != 5 || e.config.FavoriteThreshold != 4.0 {
		t.Errorf("config = %+v, want defaults", e.config)
	}
}

// TestEngine_SeedCatalogScenario runs the full pipeline on the launch catalog:
// a user loves a Sci-Fi movie and dislikes an Action one.
func TestEngine_SeedCatalogScenario(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	gw := storage.NewMemoryGateway()
	if _, err := storage.SeedCatalog(ctx, gw, time.Now(), zerolog.Nop()); err != nil {
		t.Fatal(err)
	}
	for _, r := range []models.Review{
		review("fan@example.com", "movie_001", 5),
		review("fan@example.com", "movie_003", 2),
	} {
		r := r
		if err := gw.PutReview(ctx, &r); err != nil {
			t.Fatal(err)
		}
	}
	_ = gw.UpdateMovieStats(ctx, "movie_001", models.MovieStats{TotalReviews: 1, AvgRating: 5})
	_ = gw.UpdateMovieStats(ctx, "movie_003", models.MovieStats{TotalReviews: 1, AvgRating: 2})

	res := newTestEngine(gw).RecommendDetailed(ctx, "fan@example.com", 3)
	want := []string{"movie_005", "movie_002", "movie_004"}
	if got := ids(res.Movies); !reflect.DeepEqual(got, want) {
		t.Errorf("recommend = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(res.Favorites, []string{"Sci-Fi"}) {
		t.Errorf("Favorites = %v, want [Sci-Fi]", res.Favorites)
	}
	for _, m := range res.Movies {
		if m.MovieID == "movie_001" || m.MovieID == "movie_003" {
			t.Errorf("rated movie %s recommended", m.MovieID)
		}
	}
}

func TestColdStart_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	catalog := []models.Movie{movie("a", "", 1, 1), movie("b", "", 5, 1)}
	_ = ColdStart(catalog, 2)
	if catalog[0].MovieID != "a" {
		t.Error("ColdStart reordered the caller's slice")
	}
}

