// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

/*
Package metrics provides the Prometheus collectors for CinemaPulse.

Collectors are registered on the default registry through promauto and are
exposed at /metrics by the API router.

# Available Metrics

HTTP:
  - cinemapulse_api_requests_total{method,endpoint,status_code}
  - cinemapulse_api_request_duration_seconds{method,endpoint}
  - cinemapulse_api_active_requests
  - cinemapulse_api_rate_limit_hits_total{endpoint}

Reviews and derived data:
  - cinemapulse_reviews_submitted_total
  - cinemapulse_reviews_rejected_total{field}
  - cinemapulse_stats_recompute_total{target,result}
  - cinemapulse_recommendations_served_total{mode}

Storage:
  - cinemapulse_storage_operations_total{backend,op,result}
  - cinemapulse_storage_operation_duration_seconds{backend,op}
  - cinemapulse_circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - cinemapulse_circuit_breaker_state_transitions_total{name,from_state,to_state}

Notifications:
  - cinemapulse_notifications_total{sink,result}
  - cinemapulse_notifications_dropped_total
  - cinemapulse_notification_queue_depth
  - cinemapulse_websocket_clients
  - cinemapulse_websocket_messages_sent_total

# Usage

	start := time.Now()
	err := gw.PutReview(ctx, r)
	metrics.RecordStorageOp("dynamodb", "put_review", classifier.Result(err), time.Since(start))
*/
package metrics
