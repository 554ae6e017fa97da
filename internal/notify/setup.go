// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/config"
	"github.com/tomtom215/cinemapulse/internal/logging"
)

// Runtime is the assembled notification side-channel.
type Runtime struct {
	// Dispatcher is nil when notifications are disabled.
	Dispatcher *Dispatcher

	// GoChannel is set for the in-process Watermill sink so tests and
	// local consumers can subscribe.
	GoChannel *gochannel.GoChannel

	// NATS is set when an embedded server was started.
	NATS *EmbeddedNATS

	closers []func() error
}

// Build assembles the sinks enabled in cfg. hub may be nil when the
// websocket feed is not served.
func Build(ctx context.Context, cfg config.NotifyConfig, breakerCfg config.BreakerConfig, hub Broadcaster, logger zerolog.Logger) (_ *Runtime, err error) {
	rt := &Runtime{}
	if !cfg.Enabled {
		logger.Info().Msg("notifications disabled")
		return rt, nil
	}
	defer func() {
		if err != nil {
			if cerr := rt.Close(); cerr != nil {
				logger.Warn().Err(cerr).Msg("notification runtime cleanup failed")
			}
		}
	}()

	wmLogger := watermill.NewSlogLogger(logging.NewSlogLogger("watermill"))
	var sinks []Sink

	if cfg.WebSocket && hub != nil {
		sinks = append(sinks, NewHubSink(hub))
	}

	if cfg.EventBridge.Enabled {
		client, err := NewEventBridgeClient(ctx, cfg.EventBridge)
		if err != nil {
			return nil, fmt.Errorf("eventbridge sink: %w", err)
		}
		sinks = append(sinks, NewEventBridgeSink(client, cfg.EventBridge.BusName, cfg.EventBridge.Source))
	}

	switch {
	case cfg.NATS.Enabled:
		sink, err := rt.buildNATSSink(ctx, cfg.NATS, wmLogger, logger)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, sink)
	case cfg.NATS.InProcess:
		rt.GoChannel = NewGoChannel(wmLogger)
		rt.closers = append(rt.closers, rt.GoChannel.Close)
		sinks = append(sinks, NewWatermillSink(rt.GoChannel, cfg.NATS.Subject, "gochannel"))
	}

	rt.Dispatcher = NewDispatcher(cfg.QueueSize, cfg.PublishTimeout, breakerCfg, logger, sinks...)
	return rt, nil
}

func (rt *Runtime) buildNATSSink(ctx context.Context, cfg config.NATSConfig, wmLogger watermill.LoggerAdapter, logger zerolog.Logger) (Sink, error) {
	url := cfg.URL
	if cfg.Embedded {
		ns, err := StartEmbeddedNATS(cfg)
		if err != nil {
			return nil, fmt.Errorf("embedded nats: %w", err)
		}
		rt.NATS = ns
		rt.closers = append(rt.closers, func() error { ns.Shutdown(); return nil })
		url = ns.ClientURL()
		logger.Info().Str("url", url).Msg("embedded NATS server started")
	}

	if err := EnsureStream(ctx, url, cfg.Stream, cfg.Subject); err != nil {
		return nil, fmt.Errorf("nats stream: %w", err)
	}
	pub, err := NewJetStreamPublisher(url, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("nats sink: %w", err)
	}
	// Publishers close before the embedded server shuts down.
	rt.closers = append([]func() error{pub.Close}, rt.closers...)
	return NewWatermillSink(pub, cfg.Subject, "nats"), nil
}

// Close releases publishers and stops the embedded server.
func (rt *Runtime) Close() error {
	var errs []error
	for _, c := range rt.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}
