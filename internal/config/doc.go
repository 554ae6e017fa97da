// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

/*
Package config loads and validates CinemaPulse configuration.

Configuration is layered with Koanf v2, lowest precedence first:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: CONFIG_PATH, else config.yaml / config.yml in the
    working directory, else /etc/cinemapulse/config.yaml
 3. Environment variables

# Environment Variables

The legacy deployment variables keep working:

  - AWS_REGION, MOVIES_TABLE, USERS_TABLE, REVIEWS_TABLE: DynamoDB settings
  - SECRET_KEY: signing secret for API tokens
  - EVENT_BUS_NAME: EventBridge bus for review notifications

Every other setting is reachable through a CINEMAPULSE_ prefixed name where
the first underscore separates the section from the key:

	CINEMAPULSE_SERVER_PORT=8080                -> server.port
	CINEMAPULSE_STORAGE_BACKEND=badger          -> storage.backend
	CINEMAPULSE_AUTH_ADMIN_EMAILS=a@x.io,b@y.io -> auth.admin_emails
	CINEMAPULSE_NOTIFY_NATS_URL=nats://...      -> notify.nats.url

A handful of short aliases (HTTP_PORT, LOG_LEVEL, STORAGE_BACKEND, ...) are
mapped explicitly in envMappings.

# Example YAML

	server:
	  port: 5000
	storage:
	  backend: dynamodb
	  fallback_to_file: true
	  file_path: /data/cinemapulse.json
	dynamodb:
	  region: us-east-1
	notify:
	  enabled: true
	  eventbridge:
	    enabled: true
	    bus_name: cinemapulse
*/
package config
