// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

// Package logging provides the zerolog-based structured logger used across CinemaPulse.
//
// A single global logger is configured once at startup with Init and then
// reached through the package-level helpers (Info, Warn, Error, ...) or
// through component loggers derived with WithComponent. Request handlers use
// Ctx(ctx) so that the request ID assigned by the HTTP middleware is attached
// to every line written while serving the request.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("backend", "dynamodb").Msg("storage ready")
//	logging.Ctx(ctx).Warn().Err(err).Msg("movie stats recompute failed")
//
// # slog bridge
//
// Suture (through sutureslog) and Watermill log through log/slog. NewSlogLogger
// returns an *slog.Logger whose records are written by zerolog, so every
// subsystem ends up in the same stream with the same field names.
//
// # Tests
//
// Components accept a zerolog.Logger. Tests pass zerolog.Nop(), or
// NewTestLogger(&buf) when the output itself is asserted.
package logging
