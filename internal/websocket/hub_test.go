// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package websocket

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// newTestClient returns a client with no connection, for hub-only tests.
func newTestClient(hub *Hub, buffer int) *Client {
	return &Client{
		id:   clientIDCounter.Add(1),
		hub:  hub,
		send: make(chan Message, buffer),
	}
}

func startHub(t *testing.T) (*Hub, context.CancelFunc, <-chan error) {
	t.Helper()
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.RunWithContext(ctx) }()
	t.Cleanup(cancel)
	return hub, cancel, done
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.GetClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want %d", hub.GetClientCount(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewHub(t *testing.T) {
	t.Parallel()

	hub := NewHub(zerolog.Nop())
	if hub.GetClientCount() != 0 {
		t.Errorf("GetClientCount() = %d, want 0", hub.GetClientCount())
	}
	if cap(hub.broadcast) != broadcastBuffer {
		t.Errorf("broadcast capacity = %d, want %d", cap(hub.broadcast), broadcastBuffer)
	}
}

func TestHub_RegisterUnregister(t *testing.T) {
	t.Parallel()

	hub, _, _ := startHub(t)
	client := newTestClient(hub, 4)

	hub.Register <- client
	waitForClients(t, hub, 1)

	hub.Unregister <- client
	waitForClients(t, hub, 0)

	if _, ok := <-client.send; ok {
		t.Error("send channel still open after unregister")
	}

	// Unregistering twice must not close the channel again.
	hub.Unregister <- client
	waitForClients(t, hub, 0)
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	t.Parallel()

	hub, _, _ := startHub(t)
	a, b := newTestClient(hub, 4), newTestClient(hub, 4)
	hub.Register <- a
	hub.Register <- b
	waitForClients(t, hub, 2)

	payload := map[string]interface{}{"movie_id": "movie_001", "rating": 5}
	if !hub.BroadcastJSON(MessageTypeNewReview, payload) {
		t.Fatal("BroadcastJSON() = false")
	}

	for name, c := range map[string]*Client{"a": a, "b": b} {
		select {
		case msg := <-c.send:
			if msg.Type != MessageTypeNewReview {
				t.Errorf("%s: type = %q", name, msg.Type)
			}
		case <-time.After(time.Second):
			t.Errorf("%s: no message", name)
		}
	}
}

func TestHub_DropsSlowClients(t *testing.T) {
	t.Parallel()

	hub := NewHub(zerolog.Nop())
	slow := newTestClient(hub, 0)
	fast := newTestClient(hub, 1)
	hub.clients[slow] = true
	hub.clients[fast] = true

	hub.broadcastToClients(Message{Type: MessageTypeNewReview})

	if hub.GetClientCount() != 1 {
		t.Fatalf("GetClientCount() = %d, want 1", hub.GetClientCount())
	}
	if !hub.clients[fast] {
		t.Error("fast client was removed")
	}
	if _, ok := <-slow.send; ok {
		t.Error("slow client channel not closed")
	}
}

func TestHub_BroadcastJSONNeverBlocks(t *testing.T) {
	t.Parallel()

	hub := NewHub(zerolog.Nop()) // not running, nothing drains
	for i := 0; i < broadcastBuffer; i++ {
		if !hub.BroadcastJSON(MessageTypeNewReview, i) {
			t.Fatalf("BroadcastJSON() #%d = false before buffer full", i)
		}
	}

	done := make(chan bool, 1)
	go func() { done <- hub.BroadcastJSON(MessageTypeNewReview, "overflow") }()
	select {
	case ok := <-done:
		if ok {
			t.Error("BroadcastJSON() on full buffer = true")
		}
	case <-time.After(time.Second):
		t.Fatal("BroadcastJSON() blocked")
	}
}

func TestHub_RunWithContextShutdown(t *testing.T) {
	t.Parallel()

	hub, cancel, done := startHub(t)
	client := newTestClient(hub, 4)
	hub.Register <- client
	waitForClients(t, hub, 1)

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("RunWithContext() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	if hub.GetClientCount() != 0 {
		t.Errorf("clients after shutdown = %d", hub.GetClientCount())
	}
	if _, ok := <-client.send; ok {
		t.Error("client channel not closed on shutdown")
	}
}

func TestGetShutdownReason(t *testing.T) {
	t.Parallel()

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if got := getShutdownReason(cancelled); got != ShutdownReasonContextCanceled {
		t.Errorf("cancelled = %q", got)
	}

	expired, cancel2 := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel2()
	if got := getShutdownReason(expired); got != ShutdownReasonContextDeadline {
		t.Errorf("expired = %q", got)
	}
}

func TestMarshalMessage(t *testing.T) {
	t.Parallel()

	data, err := MarshalMessage(Message{Type: MessageTypeUserRegistered, Data: map[string]string{"email": "a@b.co"}})
	if err != nil {
		t.Fatalf("MarshalMessage() error = %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"type":"user_registered"`) || !strings.Contains(s, `"email":"a@b.co"`) {
		t.Errorf("MarshalMessage() = %s", s)
	}
}
