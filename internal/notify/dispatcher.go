// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cinemapulse/internal/config"
	"github.com/tomtom215/cinemapulse/internal/metrics"
	"github.com/tomtom215/cinemapulse/internal/models"
)

// drainTimeout bounds delivery of events still queued at shutdown.
const drainTimeout = 2 * time.Second

type guardedSink struct {
	sink Sink
	cb   *gobreaker.CircuitBreaker[interface{}]
}

// Dispatcher queues events and delivers them to sinks from one worker.
type Dispatcher struct {
	queue          chan Event
	sinks          []guardedSink
	publishTimeout time.Duration
	logger         zerolog.Logger
}

// NewDispatcher creates a Dispatcher with a queue of queueSize events. Each
// sink gets its own breaker built from breakerCfg.
func NewDispatcher(queueSize int, publishTimeout time.Duration, breakerCfg config.BreakerConfig, logger zerolog.Logger, sinks ...Sink) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	if publishTimeout <= 0 {
		publishTimeout = 5 * time.Second
	}
	logger = logger.With().Str("component", "notify").Logger()

	d := &Dispatcher{
		queue:          make(chan Event, queueSize),
		publishTimeout: publishTimeout,
		logger:         logger,
	}
	for _, s := range sinks {
		d.sinks = append(d.sinks, guardedSink{sink: s, cb: newSinkBreaker(s.Name(), breakerCfg, logger)})
	}
	return d
}

func newSinkBreaker(sink string, cfg config.BreakerConfig, logger zerolog.Logger) *gobreaker.CircuitBreaker[interface{}] {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	name := "notify-" + sink
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.RecordBreakerTransition(name, from.String(), to.String())
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("notification circuit breaker state changed")
		},
	})
}

// Sinks returns the configured sink names.
func (d *Dispatcher) Sinks() []string {
	names := make([]string, len(d.sinks))
	for i, g := range d.sinks {
		names[i] = g.sink.Name()
	}
	return names
}

// Enqueue queues ev without blocking. It returns false, and counts a drop,
// when the queue is full.
func (d *Dispatcher) Enqueue(ev Event) bool {
	select {
	case d.queue <- ev:
		metrics.NotificationQueueDepth.Set(float64(len(d.queue)))
		return true
	default:
		metrics.NotificationsDropped.Inc()
		d.logger.Warn().Str("event", ev.Type).Str("event_id", ev.ID).Msg("notification queue full, dropping event")
		return false
	}
}

// ReviewSubmitted enqueues a new_review event.
func (d *Dispatcher) ReviewSubmitted(r *models.Review, movieTitle string) {
	d.Enqueue(NewReviewEvent(r, movieTitle))
}

// UserRegistered enqueues a user_registered event.
func (d *Dispatcher) UserRegistered(u *models.User) {
	d.Enqueue(NewUserRegisteredEvent(u))
}

// Run delivers queued events until ctx is cancelled. Events still queued at
// that point get one last delivery attempt bounded by drainTimeout.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.Info().Strs("sinks", d.Sinks()).Int("queue_size", cap(d.queue)).Msg("notification dispatcher started")

	for {
		select {
		case <-ctx.Done():
			d.drain()
			return ctx.Err()
		case ev := <-d.queue:
			metrics.NotificationQueueDepth.Set(float64(len(d.queue)))
			d.deliver(ctx, ev)
		}
	}
}

func (d *Dispatcher) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	n := 0
	for {
		select {
		case ev := <-d.queue:
			d.deliver(ctx, ev)
			n++
		default:
			metrics.NotificationQueueDepth.Set(0)
			d.logger.Info().Int("drained", n).Msg("notification dispatcher stopped")
			return
		}
	}
}

// deliver publishes ev to every sink. Failures are logged and counted.
func (d *Dispatcher) deliver(ctx context.Context, ev Event) {
	for _, g := range d.sinks {
		err := d.publish(ctx, g, ev)
		metrics.RecordNotification(g.sink.Name(), err)
		if err != nil {
			d.logger.Warn().Err(err).
				Str("sink", g.sink.Name()).
				Str("event", ev.Type).
				Str("event_id", ev.ID).
				Msg("notification delivery failed")
		}
	}
}

func (d *Dispatcher) publish(ctx context.Context, g guardedSink, ev Event) error {
	pctx, cancel := context.WithTimeout(ctx, d.publishTimeout)
	defer cancel()

	_, err := g.cb.Execute(func() (interface{}, error) {
		return nil, g.sink.Publish(pctx, ev)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", g.sink.Name(), err)
	}
	return nil
}
