// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/config"
)

func openTestBadger(t *testing.T) *badger.DB {
	t.Helper()
	opts := badger.DefaultOptions(t.TempDir())
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// testSessionStores runs fn against every SessionStore implementation.
func testSessionStores(t *testing.T, fn func(t *testing.T, store SessionStore)) {
	t.Run("memory", func(t *testing.T) {
		t.Parallel()
		fn(t, NewMemorySessionStore())
	})
	t.Run("badger", func(t *testing.T) {
		t.Parallel()
		fn(t, NewBadgerSessionStore(openTestBadger(t)))
	})
}

func TestSessionStoreLifecycle(t *testing.T) {
	t.Parallel()
	testSessionStores(t, func(t *testing.T, store SessionStore) {
		ctx := context.Background()
		subject := &Subject{Email: "ana@example.com", Name: "Ana", Roles: []string{RoleUser}}
		s := NewSession(subject, time.Hour)

		if err := store.Create(ctx, s); err != nil {
			t.Fatalf("Create: %v", err)
		}
		got, err := store.Get(ctx, s.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Email != "ana@example.com" || got.Name != "Ana" {
			t.Errorf("session = %+v", got)
		}
		sub := got.Subject()
		if sub.SessionID != s.ID || sub.Method != MethodSession || !sub.HasRole(RoleUser) {
			t.Errorf("subject = %+v", sub)
		}

		later := time.Now().Add(2 * time.Hour)
		if err := store.Touch(ctx, s.ID, later); err != nil {
			t.Fatalf("Touch: %v", err)
		}
		got, _ = store.Get(ctx, s.ID)
		if !got.ExpiresAt.Equal(later) {
			t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, later)
		}

		if err := store.Delete(ctx, s.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := store.Get(ctx, s.ID); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Get after delete = %v", err)
		}
		if err := store.Delete(ctx, s.ID); err != nil {
			t.Errorf("second Delete = %v", err)
		}
		if err := store.Touch(ctx, "missing", later); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Touch missing = %v", err)
		}
	})
}

func TestSessionStoreExpiry(t *testing.T) {
	t.Parallel()
	testSessionStores(t, func(t *testing.T, store SessionStore) {
		ctx := context.Background()
		subject := &Subject{Email: "ana@example.com", Name: "Ana"}

		expired := NewSession(subject, time.Hour)
		expired.ExpiresAt = time.Now().Add(-time.Minute)
		live := NewSession(subject, time.Hour)

		for _, s := range []*Session{expired, live} {
			if err := store.Create(ctx, s); err != nil {
				t.Fatal(err)
			}
		}

		if _, err := store.Get(ctx, expired.ID); err == nil {
			t.Error("expired session returned")
		}
		n, err := store.CleanupExpired(ctx)
		if err != nil {
			t.Fatalf("CleanupExpired: %v", err)
		}
		// Badger may already have dropped the entry via its TTL.
		if n > 1 {
			t.Errorf("cleaned %d sessions, want at most 1", n)
		}
		if _, err := store.Get(ctx, live.ID); err != nil {
			t.Errorf("live session lost: %v", err)
		}
	})
}

func TestNewSessionIDsUnique(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := NewSession(&Subject{Email: "a@b.co"}, time.Minute)
		if len(s.ID) != 64 {
			t.Fatalf("id length = %d", len(s.ID))
		}
		if seen[s.ID] {
			t.Fatal("duplicate session id")
		}
		seen[s.ID] = true
	}
}

func TestNewSessionStore(t *testing.T) {
	t.Parallel()

	store, closeFn, err := NewSessionStore(config.AuthConfig{SessionStore: "memory"}, nil, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(*MemorySessionStore); !ok {
		t.Errorf("store = %T", store)
	}
	_ = closeFn()

	store, closeFn, err = NewSessionStore(config.AuthConfig{SessionStore: "badger", SessionDir: t.TempDir()}, nil, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(*BadgerSessionStore); !ok {
		t.Errorf("store = %T", store)
	}
	if err := closeFn(); err != nil {
		t.Errorf("close: %v", err)
	}

	shared := openTestBadger(t)
	store, closeFn, err = NewSessionStore(config.AuthConfig{SessionStore: "badger"}, shared, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	_ = closeFn()
	// The shared database must still be usable after the store's closer runs.
	if err := store.Create(context.Background(), NewSession(&Subject{Email: "a@b.co"}, time.Minute)); err != nil {
		t.Errorf("shared db closed: %v", err)
	}

	if _, _, err := NewSessionStore(config.AuthConfig{SessionStore: "redis"}, nil, zerolog.Nop()); err == nil {
		t.Error("expected error for unknown store")
	}
}
