// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

/*
Package supervisor runs the long-lived CinemaPulse services under suture v4.

# Overview

	RootSupervisor ("cinemapulse")
	├── DataSupervisor ("data-layer")
	│   ├── badger-gc (badger backend only)
	│   └── session-cleanup
	├── MessagingSupervisor ("messaging-layer")
	│   ├── notify-dispatcher (if notifications are enabled)
	│   └── websocket-hub
	└── APISupervisor ("api-layer")
	    └── http-server

Each layer restarts independently, so a failing notification sink never
takes the HTTP server down with it.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	errCh := tree.ServeBackground(ctx)
	<-ctx.Done()
	<-errCh

# Failure Handling

Each failure increments a counter that decays over FailureDecay seconds.
Past FailureThreshold the supervisor waits FailureBackoff before the next
restart. A service that returns nil is not restarted; one that returns
any other error is.

If services outlive ShutdownTimeout, UnstoppedServiceReport names them.

# What Is NOT Supervised

The storage gateway is a library, not a service. It is opened before the
tree starts and closed after it stops.
*/
package supervisor
