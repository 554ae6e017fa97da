// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	userKey      contextKey = "user_email"
	loggerKey    contextKey = "logger"
)

// GenerateRequestID returns a new random request ID.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithRequestID returns a copy of ctx carrying the request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID stored in ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithUser records the authenticated user's email for log lines.
func ContextWithUser(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userKey, email)
}

// UserFromContext returns the user email stored by ContextWithUser, or "".
func UserFromContext(ctx context.Context) string {
	if email, ok := ctx.Value(userKey).(string); ok {
		return email
	}
	return ""
}

// ContextWithLogger stores a logger in ctx.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext returns the logger stored in ctx, falling back to the global one.
func LoggerFromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return logger
	}
	return Logger()
}

// Ctx returns a logger with request_id and user fields taken from ctx.
//
//	logging.Ctx(ctx).Info().Str("movie_id", id).Msg("review stored")
func Ctx(ctx context.Context) *zerolog.Logger {
	logCtx := LoggerFromContext(ctx).With()
	if id := RequestIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("request_id", id)
	}
	if email := UserFromContext(ctx); email != "" {
		logCtx = logCtx.Str("user", email)
	}
	l := logCtx.Logger()
	return &l
}
