// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

/*
Package storage is the persistence layer for movies, users and reviews.

Every backend implements Gateway:

  - DynamoGateway: three DynamoDB tables (movies, users, reviews)
  - BadgerGateway: embedded BadgerDB with secondary index keys
  - FileGateway: a single JSON document on local disk
  - MemoryGateway: in-process maps, used by tests and as the file store core

BreakerGateway wraps any backend in a circuit breaker and records per-operation
metrics. Open wires them together from configuration, including the fallback
to the file store when the primary cannot be reached at startup.

# Error Contract

Reads of a missing movie or user return (nil, nil). Updates of a missing
record return ErrNotFound. Conditional creates return ErrAlreadyExists.
Anything that indicates the store itself is unreachable is wrapped with
ErrUnavailable so callers can degrade:

	movies, err := gw.ListActiveMovies(ctx)
	if errors.Is(err, storage.ErrUnavailable) {
	    movies = nil
	}

# Ordering

ListActiveMovies returns movies sorted by movie_id ascending on every backend.
Review listings carry no ordering guarantee.
*/
package storage
