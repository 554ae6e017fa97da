// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

/*
Package websocket serves the live review feed at /ws/reviews.

A single Hub owns the set of connected clients. The notification dispatcher
hands each new_review and user_registered event to the hub, which fans it out
to every client. Slow clients whose send buffer is full are dropped rather than
allowed to stall the broadcast loop.

	┌────────────┐   BroadcastJSON   ┌─────┐
	│ dispatcher │ ────────────────► │ Hub │ ──► Client 1..N
	└────────────┘                   └─────┘

Each client has two goroutines:
  - readPump: reads client frames, answers {"type":"ping"} with a pong
  - writePump: writes queued messages and keepalive pings

Wire format:

	{"type": "new_review", "data": {"review_id": "...", "movie_id": "movie_001", ...}}

The hub runs under the supervisor tree via RunWithContext and closes all
clients when its context is cancelled.
*/
package websocket
