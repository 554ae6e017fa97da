// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/config"
)

// pingTimeout bounds the startup reachability check of the primary backend.
const pingTimeout = 5 * time.Second

// Handle is the result of Open.
type Handle struct {
	// Gateway is the breaker-wrapped store the application uses.
	Gateway *BreakerGateway

	// Requested is the configured backend; Gateway.Name() is the one in use.
	Requested string
	FellBack  bool

	// Badger is set when the badger backend is in use so that value-log
	// GC can be scheduled.
	Badger *BadgerGateway
}

// Open builds the configured backend, verifies it with Ping and wraps it in
// a BreakerGateway. When the primary cannot be opened or reached and
// storage.fallback_to_file is set, the local file store is used instead.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Handle, error) {
	log := logger.With().Str("component", "storage").Logger()

	h := &Handle{Requested: cfg.Storage.Backend}

	primary, err := openBackend(ctx, cfg, logger)
	if err == nil {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = primary.Ping(pingCtx)
		cancel()
		if err != nil {
			_ = primary.Close()
		}
	}

	if err != nil {
		if !cfg.Storage.FallbackToFile || cfg.Storage.Backend == config.BackendFile {
			return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
		}
		log.Warn().Err(err).
			Str("backend", cfg.Storage.Backend).
			Str("fallback_path", cfg.Storage.FilePath).
			Msg("primary storage unavailable, falling back to local file store")

		fallback, ferr := NewFileGateway(cfg.Storage.FilePath)
		if ferr != nil {
			return nil, fmt.Errorf("open fallback file storage: %w", ferr)
		}
		primary = fallback
		h.FellBack = true
	}

	if bg, ok := primary.(*BadgerGateway); ok {
		h.Badger = bg
	}
	h.Gateway = NewBreakerGateway(primary, cfg.Breaker, logger)

	log.Info().
		Str("backend", primary.Name()).
		Bool("fallback", h.FellBack).
		Str("breaker", h.Gateway.State()).
		Msg("storage ready")
	return h, nil
}

func openBackend(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (Gateway, error) {
	switch cfg.Storage.Backend {
	case config.BackendDynamoDB:
		client, err := NewDynamoClient(ctx, cfg.DynamoDB)
		if err != nil {
			return nil, err
		}
		gw := NewDynamoGateway(client, Tables{
			Movies:  cfg.DynamoDB.MoviesTable,
			Users:   cfg.DynamoDB.UsersTable,
			Reviews: cfg.DynamoDB.ReviewsTable,
		})
		if cfg.DynamoDB.Endpoint != "" {
			ensureCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			defer cancel()
			if err := gw.EnsureTables(ensureCtx); err != nil {
				return nil, fmt.Errorf("create local tables: %w", err)
			}
		}
		return gw, nil
	case config.BackendBadger:
		return OpenBadger(cfg.Storage.BadgerDir, logger)
	case config.BackendFile:
		return NewFileGateway(cfg.Storage.FilePath)
	case config.BackendMemory:
		return NewMemoryGateway(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
