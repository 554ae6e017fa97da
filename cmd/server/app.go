// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/analytics"
	"github.com/tomtom215/cinemapulse/internal/api"
	"github.com/tomtom215/cinemapulse/internal/auth"
	"github.com/tomtom215/cinemapulse/internal/authz"
	"github.com/tomtom215/cinemapulse/internal/config"
	"github.com/tomtom215/cinemapulse/internal/notify"
	"github.com/tomtom215/cinemapulse/internal/recommend"
	"github.com/tomtom215/cinemapulse/internal/review"
	"github.com/tomtom215/cinemapulse/internal/stats"
	"github.com/tomtom215/cinemapulse/internal/storage"
	ws "github.com/tomtom215/cinemapulse/internal/websocket"
)

// app holds everything main starts and must close.
type app struct {
	storage       *storage.Handle
	notify        *notify.Runtime
	hub           *ws.Hub
	sessions      auth.SessionStore
	closeSessions func() error
	limiter       *auth.LoginLimiter
	enforcer      *authz.Enforcer
	server        *http.Server
	logger        zerolog.Logger
}

// newApp assembles the application. On error everything opened so far is
// closed again.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (_ *app, err error) {
	a := &app{logger: logger, closeSessions: func() error { return nil }}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	// Storage
	a.storage, err = storage.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	store := a.storage.Gateway

	if cfg.Storage.SeedCatalog {
		if _, err := storage.SeedCatalog(ctx, store, time.Now(), logger); err != nil {
			// A partial catalog is still servable.
			logger.Warn().Err(err).Msg("catalog seed incomplete")
		}
	}

	// Core services
	aggregator := stats.NewAggregator(store, logger)
	recCfg := &recommend.Config{
		DefaultLimit:      cfg.Recommend.DefaultLimit,
		FavoriteThreshold: cfg.Recommend.FavoriteThreshold,
	}
	if err := recCfg.Validate(); err != nil {
		return nil, fmt.Errorf("recommend config: %w", err)
	}
	engine := recommend.NewEngine(store, recCfg, logger)
	reporter := analytics.NewReporter(store, analytics.Config{
		TopMoviesLimit:    cfg.Analytics.TopMoviesLimit,
		MostReviewedLimit: cfg.Analytics.MostReviewedLimit,
	}, logger)

	// Notifications
	var broadcaster notify.Broadcaster
	if cfg.Notify.Enabled && cfg.Notify.WebSocket {
		a.hub = ws.NewHub(logger)
		broadcaster = a.hub
	}
	a.notify, err = notify.Build(ctx, cfg.Notify, cfg.Breaker, broadcaster, logger)
	if err != nil {
		return nil, fmt.Errorf("notifications: %w", err)
	}
	var (
		reviewNotifier  review.Notifier
		accountNotifier auth.RegistrationNotifier
	)
	if d := a.notify.Dispatcher; d != nil {
		reviewNotifier = d
		accountNotifier = d
	}
	reviews := review.NewService(store, aggregator, reviewNotifier, logger)

	// Auth
	accounts := auth.NewService(store, accountNotifier, cfg.Auth.BcryptCost, cfg.Auth.AdminEmails, logger)
	var sharedDB *badger.DB
	if a.storage.Badger != nil {
		sharedDB = a.storage.Badger.DB()
	}
	a.sessions, a.closeSessions, err = auth.NewSessionStore(cfg.Auth, sharedDB, logger)
	if err != nil {
		return nil, err
	}
	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL, logger)
	if err != nil {
		return nil, err
	}
	sessions := auth.NewMiddleware(a.sessions, tokens, auth.MiddlewareConfig{
		CookieName:   cfg.Auth.CookieName,
		CookieSecure: cfg.Auth.CookieSecure,
		SessionTTL:   cfg.Auth.SessionTTL,
	}, logger)
	a.limiter = auth.NewLoginLimiter(cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow)
	authzCfg := authz.DefaultEnforcerConfig()
	authzCfg.PolicyPath = cfg.Auth.PolicyFile
	a.enforcer, err = authz.NewEnforcer(authzCfg)
	if err != nil {
		return nil, fmt.Errorf("authorization policy: %w", err)
	}

	// Router
	handler := api.NewHandler(api.Deps{
		Store:     store,
		Reviews:   reviews,
		Recommend: engine,
		Analytics: reporter,
		Accounts:  accounts,
		Sessions:  sessions,
		Tokens:    tokens,
		Hub:       a.hub,
		Config:    cfg.API,
		Logger:    logger,
	})
	router := api.NewRouter(handler, sessions, authz.NewMiddleware(a.enforcer, logger), a.limiter,
		api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.API)), logger)

	if cfg.API.RateLimitDisabled {
		logger.Warn().Msg("API rate limiting is disabled")
	}

	a.server = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
	return a, nil
}

// close releases resources in reverse start order. Errors are logged.
func (a *app) close() {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.enforcer != nil {
		a.enforcer.Close()
	}
	if a.notify != nil {
		if err := a.notify.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Error closing notification runtime")
		}
	}
	if err := a.closeSessions(); err != nil {
		a.logger.Error().Err(err).Msg("Error closing session store")
	}
	if a.storage != nil {
		if err := a.storage.Gateway.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Error closing storage")
		}
	}
}
