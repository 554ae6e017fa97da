// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

// Package models defines the records stored by CinemaPulse and the shapes
// returned by its HTTP API.
//
// There are three stored records, one per table:
//
//   - Movie: catalog entry plus derived total_reviews / avg_rating
//   - User: account keyed by lowercase email plus derived review stats
//   - Review: immutable rating and feedback for one movie by one user
//
// Derived fields are written only by the stats aggregator. The struct tags
// carry both the JSON names (API and file store) and the DynamoDB attribute
// names, which are identical.
package models
