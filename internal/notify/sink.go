// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package notify

import (
	"context"
	"errors"
)

// Sink is one notification destination.
type Sink interface {
	// Name labels metrics, logs and the sink's circuit breaker.
	Name() string
	Publish(ctx context.Context, ev Event) error
}

// Broadcaster is the part of the websocket hub the HubSink needs.
type Broadcaster interface {
	BroadcastJSON(messageType string, data interface{}) bool
}

// ErrBroadcastDropped is returned when the hub's buffer is full.
var ErrBroadcastDropped = errors.New("websocket broadcast buffer full")

// HubSink forwards events to the websocket live feed.
type HubSink struct {
	hub Broadcaster
}

// NewHubSink creates a HubSink.
func NewHubSink(hub Broadcaster) *HubSink {
	return &HubSink{hub: hub}
}

// Name implements Sink.
func (s *HubSink) Name() string { return "websocket" }

// Publish implements Sink.
func (s *HubSink) Publish(_ context.Context, ev Event) error {
	if !s.hub.BroadcastJSON(ev.Type, ev.Payload) {
		return ErrBroadcastDropped
	}
	return nil
}
