// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package storage

import (
	"context"
	"sync"

	"github.com/tomtom215/cinemapulse/internal/models"
)

// snapshot is the complete data set held by MemoryGateway. It is also the
// on-disk layout of FileGateway.
type snapshot struct {
	Movies  []models.Movie  `json:"movies"`
	Users   []models.User   `json:"users"`
	Reviews []models.Review `json:"reviews"`
}

// MemoryGateway keeps everything in maps guarded by a single RWMutex.
// Returned records are copies.
type MemoryGateway struct {
	mu      sync.RWMutex
	name    string
	movies  map[string]models.Movie
	users   map[string]models.User
	reviews []models.Review
	closed  bool

	// persist runs under the write lock after every mutation. When it
	// fails the mutation is undone, so memory never holds a write the
	// caller was told failed.
	persist func(snapshot) error
}

// NewMemoryGateway returns an empty in-memory store.
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		name:   "memory",
		movies: make(map[string]models.Movie),
		users:  make(map[string]models.User),
	}
}

func (g *MemoryGateway) load(s snapshot) {
	for _, m := range s.Movies {
		g.movies[m.MovieID] = m
	}
	for _, u := range s.Users {
		g.users[u.Email] = u
	}
	g.reviews = append(g.reviews[:0], s.Reviews...)
}

// snapshotLocked must be called with g.mu held.
func (g *MemoryGateway) snapshotLocked() snapshot {
	s := snapshot{
		Movies:  make([]models.Movie, 0, len(g.movies)),
		Users:   make([]models.User, 0, len(g.users)),
		Reviews: append([]models.Review(nil), g.reviews...),
	}
	for _, m := range g.movies {
		s.Movies = append(s.Movies, m)
	}
	models.SortMoviesByID(s.Movies)
	for _, u := range g.users {
		s.Users = append(s.Users, u)
	}
	return s
}

func (g *MemoryGateway) check(ctx context.Context, op string) error {
	if err := ctxErr(ctx, op); err != nil {
		return err
	}
	if g.closed {
		return unavailable(op, errClosed)
	}
	return nil
}

// commitLocked persists the current state and runs undo if that fails.
func (g *MemoryGateway) commitLocked(op string, undo func()) error {
	if g.persist == nil {
		return nil
	}
	if err := g.persist(g.snapshotLocked()); err != nil {
		undo()
		return unavailable(op, err)
	}
	return nil
}

// restoreMovie returns an undo that puts back the current record for id,
// or removes id when there is none.
func (g *MemoryGateway) restoreMovie(id string) func() {
	prev, had := g.movies[id]
	return func() {
		if had {
			g.movies[id] = prev
		} else {
			delete(g.movies, id)
		}
	}
}

func (g *MemoryGateway) restoreUser(email string) func() {
	prev, had := g.users[email]
	return func() {
		if had {
			g.users[email] = prev
		} else {
			delete(g.users, email)
		}
	}
}

// GetMovie implements MovieStore.
func (g *MemoryGateway) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if err := g.check(ctx, "get movie"); err != nil {
		return nil, err
	}
	m, ok := g.movies[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// ListActiveMovies implements MovieStore.
func (g *MemoryGateway) ListActiveMovies(ctx context.Context) ([]models.Movie, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if err := g.check(ctx, "list movies"); err != nil {
		return nil, err
	}
	out := make([]models.Movie, 0, len(g.movies))
	for _, m := range g.movies {
		if m.Active {
			out = append(out, m)
		}
	}
	models.SortMoviesByID(out)
	return out, nil
}

// PutMovie implements MovieStore.
func (g *MemoryGateway) PutMovie(ctx context.Context, m *models.Movie) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(ctx, "put movie"); err != nil {
		return err
	}
	undo := g.restoreMovie(m.MovieID)
	g.movies[m.MovieID] = *m
	return g.commitLocked("put movie", undo)
}

// InsertMovie implements MovieStore.
func (g *MemoryGateway) InsertMovie(ctx context.Context, m *models.Movie) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(ctx, "insert movie"); err != nil {
		return err
	}
	if _, ok := g.movies[m.MovieID]; ok {
		return ErrAlreadyExists
	}
	undo := g.restoreMovie(m.MovieID)
	g.movies[m.MovieID] = *m
	return g.commitLocked("insert movie", undo)
}

// SetMovieActive implements MovieStore.
func (g *MemoryGateway) SetMovieActive(ctx context.Context, id string, active bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(ctx, "set movie active"); err != nil {
		return err
	}
	m, ok := g.movies[id]
	if !ok {
		return ErrNotFound
	}
	undo := g.restoreMovie(id)
	m.Active = active
	g.movies[id] = m
	return g.commitLocked("set movie active", undo)
}

// UpdateMovieStats implements MovieStore.
func (g *MemoryGateway) UpdateMovieStats(ctx context.Context, id string, stats models.MovieStats) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(ctx, "update movie stats"); err != nil {
		return err
	}
	m, ok := g.movies[id]
	if !ok {
		return ErrNotFound
	}
	undo := g.restoreMovie(id)
	stats.Apply(&m)
	g.movies[id] = m
	return g.commitLocked("update movie stats", undo)
}

// GetUser implements UserStore.
func (g *MemoryGateway) GetUser(ctx context.Context, email string) (*models.User, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if err := g.check(ctx, "get user"); err != nil {
		return nil, err
	}
	u, ok := g.users[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// CreateUser implements UserStore.
func (g *MemoryGateway) CreateUser(ctx context.Context, u *models.User) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(ctx, "create user"); err != nil {
		return err
	}
	if _, ok := g.users[u.Email]; ok {
		return ErrAlreadyExists
	}
	undo := g.restoreUser(u.Email)
	g.users[u.Email] = *u
	return g.commitLocked("create user", undo)
}

// UpdateUserStats implements UserStore.
func (g *MemoryGateway) UpdateUserStats(ctx context.Context, email string, stats models.UserStats) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(ctx, "update user stats"); err != nil {
		return err
	}
	u, ok := g.users[email]
	if !ok {
		return ErrNotFound
	}
	undo := g.restoreUser(email)
	stats.Apply(&u)
	g.users[email] = u
	return g.commitLocked("update user stats", undo)
}

// PutReview implements ReviewStore.
func (g *MemoryGateway) PutReview(ctx context.Context, r *models.Review) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(ctx, "put review"); err != nil {
		return err
	}
	n := len(g.reviews)
	g.reviews = append(g.reviews, *r)
	return g.commitLocked("put review", func() { g.reviews = g.reviews[:n] })
}

// ListReviewsByMovie implements ReviewStore.
func (g *MemoryGateway) ListReviewsByMovie(ctx context.Context, movieID string) ([]models.Review, error) {
	return g.filterReviews(ctx, "list movie reviews", func(r *models.Review) bool {
		return r.MovieID == movieID
	})
}

// ListReviewsByUser implements ReviewStore.
func (g *MemoryGateway) ListReviewsByUser(ctx context.Context, email string) ([]models.Review, error) {
	return g.filterReviews(ctx, "list user reviews", func(r *models.Review) bool {
		return r.UserEmail == email
	})
}

func (g *MemoryGateway) filterReviews(ctx context.Context, op string, keep func(*models.Review) bool) ([]models.Review, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if err := g.check(ctx, op); err != nil {
		return nil, err
	}
	out := make([]models.Review, 0)
	for i := range g.reviews {
		if keep(&g.reviews[i]) {
			out = append(out, g.reviews[i])
		}
	}
	return out, nil
}

// CountReviews implements ReviewStore.
func (g *MemoryGateway) CountReviews(ctx context.Context) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if err := g.check(ctx, "count reviews"); err != nil {
		return 0, err
	}
	return len(g.reviews), nil
}

// Ping implements Gateway.
func (g *MemoryGateway) Ping(ctx context.Context) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.check(ctx, "ping")
}

// Name implements Gateway.
func (g *MemoryGateway) Name() string { return g.name }

// Close marks the store closed. Later calls fail with ErrUnavailable.
func (g *MemoryGateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	return nil
}
