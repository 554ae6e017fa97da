// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

/*
Package main is the entry point for the CinemaPulse server.

CinemaPulse serves a movie catalog, accepts 1-5 star reviews from signed-in
users, keeps per-movie and per-user rating statistics current, and suggests
movies from each user's favorite genres.

# Application Architecture

	RootSupervisor ("cinemapulse")
	├── DataSupervisor ("data-layer")
	│   ├── badger-gc (storage.backend=badger)
	│   └── session-cleanup
	├── MessagingSupervisor ("messaging-layer")
	│   ├── notify-dispatcher (notify.enabled)
	│   └── websocket-hub (notify.websocket)
	└── APISupervisor ("api-layer")
	    └── http-server

Startup order:

 1. Configuration: koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, JSON or console
 3. Storage: dynamodb, badger, file or memory behind a circuit breaker,
    falling back to the file store when the primary is unreachable
 4. Catalog seed: inserts missing built-in movies
 5. Core services: statistics, recommendations, analytics
 6. Notifications: dispatcher with websocket, NATS JetStream, Watermill
    and EventBridge sinks
 7. Auth: accounts, sessions, JWT, login limiter, casbin policy
 8. Router: chi with the /api, /health, /metrics and /swagger routes
 9. Supervisor tree

# Configuration

Every key can be set in config.yaml (or the file named by CONFIG_PATH) or
through CINEMAPULSE_<SECTION>_<KEY> variables:

	CINEMAPULSE_STORAGE_BACKEND=badger
	CINEMAPULSE_SERVER_PORT=8080
	CINEMAPULSE_NOTIFY_NATS_ENABLED=true

The legacy deployment environment names are still accepted:
AWS_REGION, MOVIES_TABLE, USERS_TABLE, REVIEWS_TABLE, SECRET_KEY and
EVENT_BUS_NAME.

# Signal Handling

On SIGINT or SIGTERM the tree is canceled, the HTTP server drains for
server.shutdown_timeout, services that did not stop are logged, and the
notification runtime, session store and storage are closed in that order.

# Example Usage

Local development with the embedded store:

	CINEMAPULSE_STORAGE_BACKEND=badger LOG_FORMAT=console ./cinemapulse

Against DynamoDB Local:

	DYNAMODB_ENDPOINT=http://localhost:8000 AWS_REGION=us-east-1 ./cinemapulse
*/
package main
