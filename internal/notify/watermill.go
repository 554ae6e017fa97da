// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Message metadata keys
const (
	MetadataEventType  = "event_type"
	MetadataOccurredAt = "occurred_at"
)

// WatermillSink publishes events as Watermill messages on one topic.
type WatermillSink struct {
	publisher message.Publisher
	topic     string
	name      string
}

// NewWatermillSink creates a sink over any Watermill publisher. name labels
// the sink, e.g. "nats" or "gochannel".
func NewWatermillSink(publisher message.Publisher, topic, name string) *WatermillSink {
	return &WatermillSink{publisher: publisher, topic: topic, name: name}
}

// Name implements Sink.
func (s *WatermillSink) Name() string { return s.name }

// Publish implements Sink. The event ID doubles as the message UUID and the
// Nats-Msg-Id header so JetStream can deduplicate retries.
func (s *WatermillSink) Publish(ctx context.Context, ev Event) error {
	data, err := ev.Encode()
	if err != nil {
		return fmt.Errorf("encode %s: %w", ev.Type, err)
	}

	msg := message.NewMessage(ev.ID, data)
	msg.Metadata.Set(MetadataEventType, ev.Type)
	msg.Metadata.Set(MetadataOccurredAt, ev.OccurredAt.Format(time.RFC3339Nano))
	msg.Metadata.Set(natsgo.MsgIdHdr, ev.ID)
	msg.SetContext(ctx)

	if err := s.publisher.Publish(s.topic, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", s.topic, err)
	}
	return nil
}

// Close closes the underlying publisher.
func (s *WatermillSink) Close() error {
	return s.publisher.Close()
}

// NewGoChannel returns an in-process pub/sub. Subscribers attached before
// publishing receive every event.
func NewGoChannel(logger watermill.LoggerAdapter) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, logger)
}

// NewJetStreamPublisher connects a Watermill publisher to NATS JetStream.
// The stream must already exist; see EnsureStream.
func NewJetStreamPublisher(url string, logger watermill.LoggerAdapter) (message.Publisher, error) {
	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2 * time.Second),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{"url": nc.ConnectedUrl()})
		}),
	}

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         url,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:      false,
			AutoProvision: false,
			TrackMsgId:    true,
			PublishOptions: []natsgo.PubOpt{
				natsgo.RetryAttempts(3),
				natsgo.RetryWait(100 * time.Millisecond),
			},
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}
	return pub, nil
}

// EnsureStream creates the stream capturing subject, or updates it when it
// already exists.
func EnsureStream(ctx context.Context, url, stream, subject string) error {
	nc, err := natsgo.Connect(url, natsgo.Timeout(5*time.Second))
	if err != nil {
		return fmt.Errorf("connect %s: %w", url, err)
	}
	defer nc.Close()

	js, err := jetstream.New(nc)
	if err != nil {
		return fmt.Errorf("jetstream context: %w", err)
	}

	cfg := jetstream.StreamConfig{
		Name:       stream,
		Subjects:   []string{subject},
		Retention:  jetstream.LimitsPolicy,
		MaxAge:     7 * 24 * time.Hour,
		Duplicates: 2 * time.Minute,
		Storage:    jetstream.FileStorage,
		Discard:    jetstream.DiscardOld,
	}

	_, err = js.Stream(ctx, stream)
	switch {
	case err == nil:
		if _, err := js.UpdateStream(ctx, cfg); err != nil {
			return fmt.Errorf("update stream %s: %w", stream, err)
		}
	case errors.Is(err, jetstream.ErrStreamNotFound):
		if _, err := js.CreateStream(ctx, cfg); err != nil {
			return fmt.Errorf("create stream %s: %w", stream, err)
		}
	default:
		return fmt.Errorf("check stream %s: %w", stream, err)
	}
	return nil
}
