// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

// Package recommend suggests movies from a user's genre preferences.
//
// # Algorithm
//
// Cold start (no reviews): the active catalog ordered by avg_rating, highest
// first. Ties keep catalog (movie_id) order.
//
// Otherwise the user's reviews are joined with the catalog to build a
// Profile: the mean rating the user gave in each genre. Genres whose mean
// reaches Config.FavoriteThreshold (4.0 by default, inclusive) are
// favorites. Movies the user has reviewed are never suggested.
//
//  1. Unreviewed movies in a favorite genre, by avg_rating descending
//  2. Remaining unreviewed movies, by avg_rating descending
//
// The two lists are concatenated and cut at the requested limit.
//
// # Degradation
//
// Recommend never fails. When storage is unavailable it logs a warning and
// returns an empty list.
//
// # Usage
//
//	engine := recommend.NewEngine(gateway, recommend.DefaultConfig(), logger)
//	movies := engine.Recommend(ctx, "ann@example.com", 5)
package recommend
