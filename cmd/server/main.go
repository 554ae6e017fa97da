// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/tomtom215/cinemapulse/docs" // swagger docs
	"github.com/tomtom215/cinemapulse/internal/config"
	"github.com/tomtom215/cinemapulse/internal/logging"
	"github.com/tomtom215/cinemapulse/internal/metrics"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	metrics.SetAppInfo(version)
	logging.Info().
		Str("version", version).
		Str("backend", cfg.Storage.Backend).
		Str("addr", cfg.Server.Addr()).
		Bool("notifications", cfg.Notify.Enabled).
		Msg("Starting CinemaPulse")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer a.close()

	tree, err := a.buildTree(cfg)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create supervisor tree")
		return
	}

	errCh := tree.ServeBackground(ctx)
	logging.Info().Str("addr", cfg.Server.Addr()).Msg("CinemaPulse is ready")

	<-ctx.Done()
	logging.Info().Msg("Shutdown signal received")

	if err := <-errCh; err != nil && ctx.Err() == nil {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	report, err := tree.UnstoppedServiceReport()
	if err != nil {
		logging.Warn().Err(err).Msg("Could not collect unstopped service report")
	}
	for _, svc := range report {
		logging.Warn().Str("service", svc.Name).Msg("Service did not stop within the shutdown timeout")
	}

	logging.Info().Msg("CinemaPulse stopped")
}
