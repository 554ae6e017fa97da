// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package websocket

import (
	"context"
	"sort"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/metrics"
)

// ShutdownReason identifies why the hub stopped.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled is the normal graceful shutdown path.
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline means the context deadline was exceeded.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message types
const (
	MessageTypeNewReview      = "new_review"
	MessageTypeUserRegistered = "user_registered"
	MessageTypePing           = "ping"
	MessageTypePong           = "pong"
)

// broadcastBuffer is the hub's pending broadcast capacity.
const broadcastBuffer = 256

// Message is a single frame sent to clients.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
	logger     zerolog.Logger
}

// NewHub creates a new Hub.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan Message, broadcastBuffer),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger.With().Str("component", "websocket-hub").Logger(),
	}
}

// RunWithContext runs the hub until ctx is cancelled, then closes every
// client and returns ctx.Err().
//
// Selection is prioritised: shutdown first, then client lifecycle events,
// then broadcasts. Client state is therefore always settled before a message
// is fanned out.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case client := <-h.Register:
			h.addClient(client)
			continue
		case client := <-h.Unregister:
			h.removeClient(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.addClient(client)
		case client := <-h.Unregister:
			h.removeClient(client)
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	n := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(n))
	h.logger.Info().Int("total_clients", n).Msg("websocket client connected")
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	n := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(n))
	h.logger.Info().Int("total_clients", n).Msg("websocket client disconnected")
}

func (h *Hub) logGracefulShutdown(ctx context.Context) {
	count := h.GetClientCount()
	h.closeAllClients()

	// Cancellation is the expected path, so it is not logged as an error.
	h.logger.Info().
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients_closed", count).
		Msg("websocket hub stopped")
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	if ctx.Err() == context.DeadlineExceeded {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}

// sortedClientsLocked returns clients in id order. Caller holds h.mu.
func (h *Hub) sortedClientsLocked() []*Client {
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients
}

// broadcastToClients delivers message to every client in id order. Clients
// whose buffer is full are disconnected.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var toRemove []*Client
	for _, client := range h.sortedClientsLocked() {
		select {
		case client.send <- message:
		default:
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		close(client.send)
		delete(h.clients, client)
	}
	if len(toRemove) > 0 {
		metrics.WSConnections.Set(float64(len(h.clients)))
		h.logger.Warn().Int("dropped", len(toRemove)).Msg("dropped slow websocket clients")
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.sortedClientsLocked() {
		close(client.send)
		delete(h.clients, client)
	}
	metrics.WSConnections.Set(0)
}

// BroadcastJSON queues a message for all clients. It never blocks; when the
// broadcast buffer is full the message is dropped and false is returned.
func (h *Hub) BroadcastJSON(messageType string, data interface{}) bool {
	select {
	case h.broadcast <- Message{Type: messageType, Data: data}:
		return true
	default:
		h.logger.Warn().Str("message_type", messageType).Msg("broadcast channel full, dropping message")
		return false
	}
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// MarshalMessage converts a message to JSON.
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
