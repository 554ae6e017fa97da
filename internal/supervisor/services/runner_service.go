// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package services

import (
	"context"
)

// Runner is a component with a blocking run loop, such as
// *notify.Dispatcher.
type Runner interface {
	Run(ctx context.Context) error
}

// RunnerService supervises a Runner under a fixed name.
type RunnerService struct {
	runner Runner
	name   string
}

// NewRunnerService wraps runner.
func NewRunnerService(name string, runner Runner) *RunnerService {
	return &RunnerService{runner: runner, name: name}
}

// Serve implements suture.Service.
func (s *RunnerService) Serve(ctx context.Context) error {
	return s.runner.Run(ctx)
}

// String implements fmt.Stringer.
func (s *RunnerService) String() string {
	return s.name
}
