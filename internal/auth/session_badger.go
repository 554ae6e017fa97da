// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const sessionKeyPrefix = "session:"

// BadgerSessionStore persists sessions in Badger so logins survive restarts.
// Entries carry a Badger TTL matching the session expiry, so expired
// sessions also disappear on compaction.
type BadgerSessionStore struct {
	db *badger.DB
}

// NewBadgerSessionStore wraps an open database.
func NewBadgerSessionStore(db *badger.DB) *BadgerSessionStore {
	return &BadgerSessionStore{db: db}
}

func sessionKey(id string) []byte {
	return []byte(sessionKeyPrefix + id)
}

func (b *BadgerSessionStore) put(txn *badger.Txn, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	entry := badger.NewEntry(sessionKey(s.ID), data)
	if ttl := time.Until(s.ExpiresAt); ttl > 0 {
		entry = entry.WithTTL(ttl)
	}
	return txn.SetEntry(entry)
}

func (b *BadgerSessionStore) read(txn *badger.Txn, id string) (*Session, error) {
	item, err := txn.Get(sessionKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	var s Session
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &s)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

// Create implements SessionStore.
func (b *BadgerSessionStore) Create(_ context.Context, s *Session) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return b.put(txn, s)
	})
}

// Get implements SessionStore.
func (b *BadgerSessionStore) Get(_ context.Context, id string) (*Session, error) {
	var s *Session
	err := b.db.View(func(txn *badger.Txn) error {
		var err error
		s, err = b.read(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if s.IsExpired() {
		return nil, ErrSessionExpired
	}
	return s, nil
}

// Delete implements SessionStore.
func (b *BadgerSessionStore) Delete(_ context.Context, id string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(sessionKey(id)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	})
}

// Touch implements SessionStore.
func (b *BadgerSessionStore) Touch(_ context.Context, id string, expiresAt time.Time) error {
	return b.db.Update(func(txn *badger.Txn) error {
		s, err := b.read(txn, id)
		if err != nil {
			return err
		}
		s.ExpiresAt = expiresAt
		return b.put(txn, s)
	})
}

// CleanupExpired implements SessionStore.
func (b *BadgerSessionStore) CleanupExpired(_ context.Context) (int, error) {
	var expired [][]byte
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(sessionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var s Session
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &s)
			}); err != nil {
				continue
			}
			if s.IsExpired() {
				expired = append(expired, item.KeyCopy(nil))
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan sessions: %w", err)
	}
	if len(expired) == 0 {
		return 0, nil
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		for _, key := range expired {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return len(expired), nil
}
