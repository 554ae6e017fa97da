// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinemapulse/internal/logging"
	"github.com/tomtom215/cinemapulse/internal/models"
	ws "github.com/tomtom215/cinemapulse/internal/websocket"
)

const healthPingTimeout = 2 * time.Second

// Health reports whether storage is reachable. It is not wrapped in the API
// envelope so that load balancers can read it directly.
//
// @Summary Health check
// @Tags Core
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Failure 503 {object} models.HealthResponse
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	resp := models.HealthResponse{
		Status:    "healthy",
		Storage:   "ok",
		Backend:   h.store.Name(),
		Timestamp: time.Now().UTC(),
	}
	status := http.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("health check: storage unreachable")
		resp.Status = "unhealthy"
		resp.Storage = "unavailable"
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("failed to write health response")
	}
}

// ReviewFeed upgrades to the live review websocket.
//
// @Summary Live review feed
// @Description WebSocket stream of new_review and user_registered events
// @Tags Core
// @Router /ws/reviews [get]
func (h *Handler) ReviewFeed(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeUnavailable, "Live feed disabled", nil)
		return
	}
	ws.ServeWS(h.hub, h.upgrader, w, r)
}
