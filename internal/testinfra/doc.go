// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

// Package testinfra starts the DynamoDB Local container used by the
// storage integration tests. It is built only with the integration tag and
// skips when Docker is not running.
//
//	endpoint := testinfra.StartDynamoDBLocal(t)
//	cfg.DynamoDB.Endpoint = endpoint
//
// Run with:
//
//	go test -tags integration ./internal/storage/...
package testinfra
