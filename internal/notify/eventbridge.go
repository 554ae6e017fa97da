// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"

	"github.com/tomtom215/cinemapulse/internal/config"
)

// EventBridgeAPI is the subset of the EventBridge client the sink uses.
type EventBridgeAPI interface {
	PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error)
}

// NewEventBridgeClient creates an EventBridge client from the default AWS
// credential chain.
func NewEventBridgeClient(ctx context.Context, cfg config.EventBridgeConfig) (*eventbridge.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return eventbridge.NewFromConfig(awsCfg), nil
}

// EventBridgeSink publishes events to an EventBridge bus. The event type is
// the DetailType and the JSON payload the Detail.
type EventBridgeSink struct {
	client  EventBridgeAPI
	busName string
	source  string
}

// NewEventBridgeSink creates an EventBridgeSink.
func NewEventBridgeSink(client EventBridgeAPI, busName, source string) *EventBridgeSink {
	return &EventBridgeSink{client: client, busName: busName, source: source}
}

// Name implements Sink.
func (s *EventBridgeSink) Name() string { return "eventbridge" }

// Publish implements Sink.
func (s *EventBridgeSink) Publish(ctx context.Context, ev Event) error {
	detail, err := ev.Encode()
	if err != nil {
		return fmt.Errorf("encode %s: %w", ev.Type, err)
	}

	out, err := s.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{{
			EventBusName: aws.String(s.busName),
			Source:       aws.String(s.source),
			DetailType:   aws.String(ev.Type),
			Detail:       aws.String(string(detail)),
			Time:         aws.Time(ev.OccurredAt),
		}},
	})
	if err != nil {
		return fmt.Errorf("put events: %w", err)
	}

	if out.FailedEntryCount > 0 {
		for _, entry := range out.Entries {
			if entry.ErrorCode != nil {
				return fmt.Errorf("put events: entry rejected: %s: %s",
					aws.ToString(entry.ErrorCode), aws.ToString(entry.ErrorMessage))
			}
		}
		return fmt.Errorf("put events: %d entries failed", out.FailedEntryCount)
	}
	return nil
}
