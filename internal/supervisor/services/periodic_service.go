// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Task is one run of a periodic job.
type Task func(ctx context.Context) error

// PeriodicConfig controls a PeriodicService.
type PeriodicConfig struct {
	// Interval between runs. Defaults to one hour.
	Interval time.Duration

	// RunOnStart runs the task once before the first tick.
	RunOnStart bool

	// Timeout bounds a single run. Zero means the interval.
	Timeout time.Duration
}

// PeriodicService calls a task on a fixed interval. A failed run is logged
// and retried on the next tick; it never restarts the service.
type PeriodicService struct {
	task   Task
	config PeriodicConfig
	logger zerolog.Logger
	name   string
}

// NewPeriodicService creates a periodic service named name.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPeriodicService(name string, task Task, cfg PeriodicConfig, logger zerolog.Logger) *PeriodicService {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = cfg.Interval
	}
	return &PeriodicService{
		task:   task,
		config: cfg,
		logger: logger.With().Str("service", name).Logger(),
		name:   name,
	}
}

// Serve implements suture.Service.
func (s *PeriodicService) Serve(ctx context.Context) error {
	s.logger.Debug().
		Dur("interval", s.config.Interval).
		Bool("run_on_start", s.config.RunOnStart).
		Msg("periodic service starting")

	if s.config.RunOnStart {
		s.run(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *PeriodicService) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	if err := s.task(runCtx); err != nil {
		if ctx.Err() == nil {
			s.logger.Warn().Err(err).Msg("periodic task failed")
		}
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("periodic task complete")
}

// String implements fmt.Stringer.
func (s *PeriodicService) String() string {
	return s.name
}
