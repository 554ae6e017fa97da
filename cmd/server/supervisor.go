// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package main

import (
	"context"
	"time"

	"github.com/tomtom215/cinemapulse/internal/config"
	"github.com/tomtom215/cinemapulse/internal/logging"
	"github.com/tomtom215/cinemapulse/internal/supervisor"
	"github.com/tomtom215/cinemapulse/internal/supervisor/services"
)

const (
	badgerGCDiscardRatio   = 0.5
	sessionCleanupInterval = 15 * time.Minute
)

// buildTree places the long-running parts of a into the supervisor layers.
func (a *app) buildTree(cfg *config.Config) (*supervisor.SupervisorTree, error) {
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		return nil, err
	}

	// Data layer
	if bg := a.storage.Badger; bg != nil {
		tree.AddDataService(services.NewPeriodicService("badger-gc", func(context.Context) error {
			return bg.RunValueLogGC(badgerGCDiscardRatio)
		}, services.PeriodicConfig{Interval: cfg.Storage.BadgerGCInterval}, a.logger))
	}
	sessions := a.sessions
	tree.AddDataService(services.NewPeriodicService("session-cleanup", func(ctx context.Context) error {
		n, err := sessions.CleanupExpired(ctx)
		if n > 0 {
			a.logger.Debug().Int("removed", n).Msg("expired sessions removed")
		}
		return err
	}, services.PeriodicConfig{Interval: sessionCleanupInterval}, a.logger))

	// Messaging layer
	if d := a.notify.Dispatcher; d != nil {
		tree.AddMessagingService(services.NewRunnerService("notify-dispatcher", d))
	}
	if a.hub != nil {
		tree.AddMessagingService(services.NewWebSocketHubService(a.hub))
	}

	// API layer
	tree.AddAPIService(services.NewHTTPServerService(a.server, cfg.Server.ShutdownTimeout))

	return tree, nil
}
