// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package logging

import (
	"context"
	"log/slog"

	"github.com/rs/zerolog"
)

// SlogHandler is a slog.Handler that writes records through zerolog.
type SlogHandler struct {
	logger zerolog.Logger
	attrs  []slog.Attr
	prefix string
}

// NewSlogHandler wraps the given zerolog logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSlogHandler(logger zerolog.Logger) *SlogHandler {
	return &SlogHandler{logger: logger}
}

// NewSlogLogger returns an *slog.Logger backed by the global zerolog logger,
// tagged with the given component name.
//
//	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), cfg)
func NewSlogLogger(component string) *slog.Logger {
	return slog.New(NewSlogHandler(WithComponent(component)))
}

// Enabled implements slog.Handler.
func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	zl := slogLevel(level)
	return zl >= h.logger.GetLevel() && zl >= zerolog.GlobalLevel()
}

// Handle implements slog.Handler.
//
//nolint:gocritic // slog.Record is passed by value per slog.Handler interface
func (h *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	event := h.logger.WithLevel(slogLevel(record.Level))
	if event == nil {
		return nil
	}
	for _, a := range h.attrs {
		event = appendAttr(event, h.prefix, a)
	}
	record.Attrs(func(a slog.Attr) bool {
		event = appendAttr(event, h.prefix, a)
		return true
	})
	event.Msg(record.Message)
	return nil
}

// WithAttrs implements slog.Handler.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &SlogHandler{logger: h.logger, attrs: merged, prefix: h.prefix}
}

// WithGroup implements slog.Handler. Groups are flattened into dotted keys.
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &SlogHandler{logger: h.logger, attrs: h.attrs, prefix: h.prefix + name + "."}
}

func appendAttr(event *zerolog.Event, prefix string, a slog.Attr) *zerolog.Event {
	a.Value = a.Value.Resolve()
	key := prefix + a.Key

	switch a.Value.Kind() {
	case slog.KindString:
		return event.Str(key, a.Value.String())
	case slog.KindInt64:
		return event.Int64(key, a.Value.Int64())
	case slog.KindUint64:
		return event.Uint64(key, a.Value.Uint64())
	case slog.KindFloat64:
		return event.Float64(key, a.Value.Float64())
	case slog.KindBool:
		return event.Bool(key, a.Value.Bool())
	case slog.KindDuration:
		return event.Dur(key, a.Value.Duration())
	case slog.KindTime:
		return event.Time(key, a.Value.Time())
	case slog.KindGroup:
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			event = appendAttr(event, groupPrefix, ga)
		}
		return event
	default:
		if err, ok := a.Value.Any().(error); ok {
			return event.AnErr(key, err)
		}
		return event.Interface(key, a.Value.Any())
	}
}

func slogLevel(level slog.Level) zerolog.Level {
	switch {
	case level < slog.LevelDebug:
		return zerolog.TraceLevel
	case level < slog.LevelInfo:
		return zerolog.DebugLevel
	case level < slog.LevelWarn:
		return zerolog.InfoLevel
	case level < slog.LevelError:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

