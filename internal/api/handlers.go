// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package api

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/analytics"
	"github.com/tomtom215/cinemapulse/internal/auth"
	"github.com/tomtom215/cinemapulse/internal/config"
	"github.com/tomtom215/cinemapulse/internal/recommend"
	"github.com/tomtom215/cinemapulse/internal/review"
	"github.com/tomtom215/cinemapulse/internal/storage"
	ws "github.com/tomtom215/cinemapulse/internal/websocket"
)

// Deps are the collaborators of Handler.
type Deps struct {
	Store     storage.Gateway
	Reviews   *review.Service
	Recommend *recommend.Engine
	Analytics *analytics.Reporter
	Accounts  *auth.Service
	Sessions  *auth.Middleware
	Tokens    *auth.TokenIssuer

	// Hub is optional; without it /ws/reviews is not served.
	Hub *ws.Hub

	Config config.APIConfig
	Logger zerolog.Logger
}

// Handler contains dependencies for API handlers.
type Handler struct {
	store     storage.Gateway
	reviews   *review.Service
	recommend *recommend.Engine
	analytics *analytics.Reporter
	accounts  *auth.Service
	sessions  *auth.Middleware
	tokens    *auth.TokenIssuer
	hub       *ws.Hub
	upgrader  websocket.Upgrader
	config    config.APIConfig
	logger    zerolog.Logger
	startTime time.Time
}

// NewHandler creates the API handler.
func NewHandler(d Deps) *Handler {
	cfg := d.Config
	if cfg.MovieReviewsLimit <= 0 {
		cfg.MovieReviewsLimit = 50
	}
	if cfg.DashboardRecommendations <= 0 {
		cfg.DashboardRecommendations = 4
	}
	return &Handler{
		store:     d.Store,
		reviews:   d.Reviews,
		recommend: d.Recommend,
		analytics: d.Analytics,
		accounts:  d.Accounts,
		sessions:  d.Sessions,
		tokens:    d.Tokens,
		hub:       d.Hub,
		upgrader:  ws.NewUpgrader(cfg.CORSOrigins),
		config:    cfg,
		logger:    d.Logger.With().Str("component", "api").Logger(),
		startTime: time.Now(),
	}
}
