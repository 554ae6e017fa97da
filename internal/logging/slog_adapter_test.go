// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogHandlerWritesThroughZerolog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(zerolog.New(&buf)))

	logger.Info("service started", "service", "http-server", "attempt", 2, "backoff", time.Second)

	out := buf.String()
	for _, want := range []string{`"message":"service started"`, `"service":"http-server"`, `"attempt":2`, `"level":"info"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
}

func TestSlogHandlerGroupsAndAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(zerolog.New(&buf))).
		With("supervisor", "root").
		WithGroup("svc")

	logger.Error("service failed", "name", "dispatcher", "err", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{`"supervisor":"root"`, `"svc.name":"dispatcher"`, `"svc.err":"boom"`, `"level":"error"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
}

func TestSlogHandlerEnabled(t *testing.T) {
	t.Parallel()

	h := NewSlogHandler(zerolog.New(&bytes.Buffer{}).Level(zerolog.WarnLevel))
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled for a warn-level logger")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled for a warn-level logger")
	}
}

func TestSlogLevelMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := slogLevel(tt.in); got != tt.want {
			t.Errorf("slogLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
