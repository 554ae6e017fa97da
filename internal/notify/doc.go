// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

/*
Package notify delivers review and registration events to optional sinks.

The Dispatcher is a fire-and-forget observer. Request handlers call
ReviewSubmitted or UserRegistered, which enqueue onto a bounded channel and
return immediately; a full queue drops the event and increments
cinemapulse_notifications_dropped_total. A single background worker, run
under the supervisor tree, drains the queue and fans each event out to every
configured sink.

Sinks:

  - EventBridgeSink: AWS EventBridge PutEvents (successor of the SNS topic)
  - WatermillSink: Watermill publisher, either NATS JetStream or an
    in-process GoChannel
  - HubSink: the websocket live feed

Every sink sits behind its own gobreaker circuit breaker, so one failing
destination neither slows the others nor floods the logs. Sink failures are
logged and counted; they never reach the caller that produced the event.

An EmbeddedNATS server can be started in-process for single-node
deployments with notify.nats.embedded=true.
*/
package notify
