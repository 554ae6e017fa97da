// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package notify

import (
	"fmt"
	"time"

	"github.com/nats-io/nats-server/v2/server"

	"github.com/tomtom215/cinemapulse/internal/config"
)

// natsReadyTimeout bounds how long StartEmbeddedNATS waits for the server.
const natsReadyTimeout = 30 * time.Second

// EmbeddedNATS is an in-process NATS server with JetStream enabled.
type EmbeddedNATS struct {
	server    *server.Server
	clientURL string
}

// StartEmbeddedNATS starts a JetStream-enabled server on cfg.Host:cfg.Port
// storing streams under cfg.StoreDir. Port -1 picks a random free port.
func StartEmbeddedNATS(cfg config.NATSConfig) (*EmbeddedNATS, error) {
	opts := &server.Options{
		ServerName: "cinemapulse-events",
		Host:       cfg.Host,
		Port:       cfg.Port,
		JetStream:  true,
		StoreDir:   cfg.StoreDir,
		NoLog:      true,
		NoSigs:     true,
		MaxPayload: 1024 * 1024,
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		return nil, fmt.Errorf("create NATS server: %w", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(natsReadyTimeout) {
		ns.Shutdown()
		return nil, fmt.Errorf("NATS server not ready within %s", natsReadyTimeout)
	}

	return &EmbeddedNATS{server: ns, clientURL: ns.ClientURL()}, nil
}

// ClientURL returns the connection URL for clients.
func (s *EmbeddedNATS) ClientURL() string {
	return s.clientURL
}

// IsRunning reports whether the server is accepting connections.
func (s *EmbeddedNATS) IsRunning() bool {
	return s.server.Running()
}

// Shutdown stops the server and waits for it to exit.
func (s *EmbeddedNATS) Shutdown() {
	s.server.Shutdown()
	s.server.WaitForShutdown()
}
