// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package auth

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/config"
)

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreBadger = "badger"
)

// NewSessionStore builds the store selected by cfg.SessionStore.
//
// For the badger store, shared is reused when non-nil (the catalog's Badger
// database); otherwise a database is opened at cfg.SessionDir. The returned
// close function releases only what this call opened.
func NewSessionStore(cfg config.AuthConfig, shared *badger.DB, logger zerolog.Logger) (SessionStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.SessionStore {
	case "", SessionStoreMemory:
		logger.Info().Str("store", SessionStoreMemory).Msg("session store ready")
		return NewMemorySessionStore(), noop, nil

	case SessionStoreBadger:
		if shared != nil {
			logger.Info().Str("store", SessionStoreBadger).Msg("session store sharing catalog database")
			return NewBadgerSessionStore(shared), noop, nil
		}
		opts := badger.DefaultOptions(cfg.SessionDir)
		opts.Logger = nil
		db, err := badger.Open(opts)
		if err != nil {
			return nil, nil, fmt.Errorf("open badger db for sessions: %w", err)
		}
		logger.Info().Str("store", SessionStoreBadger).Str("dir", cfg.SessionDir).Msg("session store ready")
		return NewBadgerSessionStore(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}
}
