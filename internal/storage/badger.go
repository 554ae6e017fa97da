// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/models"
)

// Key prefixes for BadgerDB storage
const (
	movieKeyPrefix       = "movie:"
	userKeyPrefix        = "user:"
	reviewKeyPrefix      = "review:"
	reviewMovieKeyPrefix = "review_movie:"
	reviewUserKeyPrefix  = "review_user:"
)

// BadgerGateway implements Gateway on an embedded BadgerDB.
//
// Reviews are stored once under review:<id>. Two index keys,
// review_movie:<movie>:<id> and review_user:<email>:<id>, hold the review
// id so per-movie and per-user listings are prefix scans.
type BadgerGateway struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a BadgerDB in dir.
func OpenBadger(dir string, logger zerolog.Logger) (*BadgerGateway, error) {
	opts := badger.DefaultOptions(dir).WithLogger(badgerLogger{logger.With().Str("component", "badger").Logger()})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", dir, err)
	}
	return NewBadgerGateway(db), nil
}

// OpenBadgerInMemory opens a BadgerDB with no files on disk. Used by tests.
func OpenBadgerInMemory() (*BadgerGateway, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open in-memory badger: %w", err)
	}
	return NewBadgerGateway(db), nil
}

// NewBadgerGateway wraps an already open database.
func NewBadgerGateway(db *badger.DB) *BadgerGateway {
	return &BadgerGateway{db: db}
}

// DB exposes the underlying database for value-log GC and the session store.
func (b *BadgerGateway) DB() *badger.DB { return b.db }

func getJSON(txn *badger.Txn, key string, v interface{}) (bool, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func setJSON(txn *badger.Txn, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return txn.Set([]byte(key), data)
}

// fail classifies a badger error. Sentinels from this package pass through.
func (b *BadgerGateway) fail(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrAlreadyExists):
		return err
	default:
		return unavailable(op, err)
	}
}

// GetMovie implements MovieStore.
func (b *BadgerGateway) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	if err := ctxErr(ctx, "get movie"); err != nil {
		return nil, err
	}
	var m models.Movie
	var found bool
	err := b.db.View(func(txn *badger.Txn) error {
		var err error
		found, err = getJSON(txn, movieKeyPrefix+id, &m)
		return err
	})
	if err != nil {
		return nil, b.fail("get movie", err)
	}
	if !found {
		return nil, nil
	}
	return &m, nil
}

// ListActiveMovies implements MovieStore. Badger iterates keys in byte order,
// which is movie_id order.
func (b *BadgerGateway) ListActiveMovies(ctx context.Context) ([]models.Movie, error) {
	if err := ctxErr(ctx, "list movies"); err != nil {
		return nil, err
	}
	movies := make([]models.Movie, 0)
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(movieKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var m models.Movie
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &m)
			}); err != nil {
				return fmt.Errorf("decode movie %s: %w", it.Item().Key(), err)
			}
			if m.Active {
				movies = append(movies, m)
			}
		}
		return nil
	})
	if err != nil {
		return nil, b.fail("list movies", err)
	}
	return movies, nil
}

// PutMovie implements MovieStore.
func (b *BadgerGateway) PutMovie(ctx context.Context, m *models.Movie) error {
	if err := ctxErr(ctx, "put movie"); err != nil {
		return err
	}
	return b.fail("put movie", b.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, movieKeyPrefix+m.MovieID, m)
	}))
}

// InsertMovie implements MovieStore.
func (b *BadgerGateway) InsertMovie(ctx context.Context, m *models.Movie) error {
	if err := ctxErr(ctx, "insert movie"); err != nil {
		return err
	}
	return b.fail("insert movie", b.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(movieKeyPrefix + m.MovieID))
		if err == nil {
			return ErrAlreadyExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return setJSON(txn, movieKeyPrefix+m.MovieID, m)
	}))
}

func (b *BadgerGateway) updateMovie(ctx context.Context, op, id string, mutate func(*models.Movie)) error {
	if err := ctxErr(ctx, op); err != nil {
		return err
	}
	return b.fail(op, b.db.Update(func(txn *badger.Txn) error {
		var m models.Movie
		found, err := getJSON(txn, movieKeyPrefix+id, &m)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		mutate(&m)
		return setJSON(txn, movieKeyPrefix+id, &m)
	}))
}

// SetMovieActive implements MovieStore.
func (b *BadgerGateway) SetMovieActive(ctx context.Context, id string, active bool) error {
	return b.updateMovie(ctx, "set movie active", id, func(m *models.Movie) {
		m.Active = active
	})
}

// UpdateMovieStats implements MovieStore.
func (b *BadgerGateway) UpdateMovieStats(ctx context.Context, id string, stats models.MovieStats) error {
	return b.updateMovie(ctx, "update movie stats", id, stats.Apply)
}

// GetUser implements UserStore.
func (b *BadgerGateway) GetUser(ctx context.Context, email string) (*models.User, error) {
	if err := ctxErr(ctx, "get user"); err != nil {
		return nil, err
	}
	var u models.User
	var found bool
	err := b.db.View(func(txn *badger.Txn) error {
		var err error
		found, err = getJSON(txn, userKeyPrefix+email, &u)
		return err
	})
	if err != nil {
		return nil, b.fail("get user", err)
	}
	if !found {
		return nil, nil
	}
	return &u, nil
}

// CreateUser implements UserStore.
func (b *BadgerGateway) CreateUser(ctx context.Context, u *models.User) error {
	if err := ctxErr(ctx, "create user"); err != nil {
		return err
	}
	return b.fail("create user", b.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(userKeyPrefix + u.Email))
		if err == nil {
			return ErrAlreadyExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return setJSON(txn, userKeyPrefix+u.Email, u)
	}))
}

// UpdateUserStats implements UserStore.
func (b *BadgerGateway) UpdateUserStats(ctx context.Context, email string, stats models.UserStats) error {
	if err := ctxErr(ctx, "update user stats"); err != nil {
		return err
	}
	return b.fail("update user stats", b.db.Update(func(txn *badger.Txn) error {
		var u models.User
		found, err := getJSON(txn, userKeyPrefix+email, &u)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		stats.Apply(&u)
		return setJSON(txn, userKeyPrefix+email, &u)
	}))
}

// PutReview implements ReviewStore. The review and both index keys are
// written in one transaction.
func (b *BadgerGateway) PutReview(ctx context.Context, r *models.Review) error {
	if err := ctxErr(ctx, "put review"); err != nil {
		return err
	}
	return b.fail("put review", b.db.Update(func(txn *badger.Txn) error {
		if err := setJSON(txn, reviewKeyPrefix+r.ReviewID, r); err != nil {
			return err
		}
		id := []byte(r.ReviewID)
		if err := txn.Set([]byte(reviewMovieKeyPrefix+r.MovieID+":"+r.ReviewID), id); err != nil {
			return fmt.Errorf("set movie index: %w", err)
		}
		if err := txn.Set([]byte(reviewUserKeyPrefix+r.UserEmail+":"+r.ReviewID), id); err != nil {
			return fmt.Errorf("set user index: %w", err)
		}
		return nil
	}))
}

// ListReviewsByMovie implements ReviewStore.
func (b *BadgerGateway) ListReviewsByMovie(ctx context.Context, movieID string) ([]models.Review, error) {
	return b.listIndexed(ctx, "list movie reviews", reviewMovieKeyPrefix+movieID+":")
}

// ListReviewsByUser implements ReviewStore.
func (b *BadgerGateway) ListReviewsByUser(ctx context.Context, email string) ([]models.Review, error) {
	return b.listIndexed(ctx, "list user reviews", reviewUserKeyPrefix+email+":")
}

func (b *BadgerGateway) listIndexed(ctx context.Context, op, indexPrefix string) ([]models.Review, error) {
	if err := ctxErr(ctx, op); err != nil {
		return nil, err
	}
	reviews := make([]models.Review, 0)
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(indexPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var reviewID string
			if err := it.Item().Value(func(val []byte) error {
				reviewID = string(val)
				return nil
			}); err != nil {
				return err
			}

			var r models.Review
			found, err := getJSON(txn, reviewKeyPrefix+reviewID, &r)
			if err != nil {
				return fmt.Errorf("load review %s: %w", reviewID, err)
			}
			if found {
				reviews = append(reviews, r)
			}
		}
		return nil
	})
	if err != nil {
		return nil, b.fail(op, err)
	}
	return reviews, nil
}

// CountReviews implements ReviewStore.
func (b *BadgerGateway) CountReviews(ctx context.Context) (int, error) {
	if err := ctxErr(ctx, "count reviews"); err != nil {
		return 0, err
	}
	count := 0
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(reviewKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, b.fail("count reviews", err)
	}
	return count, nil
}

// Ping implements Gateway.
func (b *BadgerGateway) Ping(ctx context.Context) error {
	if err := ctxErr(ctx, "ping"); err != nil {
		return err
	}
	if b.db.IsClosed() {
		return unavailable("ping", badger.ErrDBClosed)
	}
	return nil
}

// Name implements Gateway.
func (b *BadgerGateway) Name() string { return "badger" }

// RunValueLogGC reclaims value-log space. badger.ErrNoRewrite means there
// was nothing to collect and is not reported.
func (b *BadgerGateway) RunValueLogGC(discardRatio float64) error {
	err := b.db.RunValueLogGC(discardRatio)
	if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
		return nil
	}
	return err
}

// Close implements Gateway.
func (b *BadgerGateway) Close() error {
	if b.db.IsClosed() {
		return nil
	}
	return b.db.Close()
}

// badgerLogger routes badger's internal logging into zerolog.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msgf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Trace().Msgf(format, args...)
}
