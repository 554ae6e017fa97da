// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

/*
Package services adapts CinemaPulse components to suture v4 services.

Each wrapper implements

	type Service interface {
	    Serve(ctx context.Context) error
	}

and fmt.Stringer so suture can name it in logs. Serve blocks until the
context is canceled and returns ctx.Err() on a clean stop; any other
return value counts as a failure and the supervisor restarts the service.

# Available Services

HTTPServerService wraps *http.Server and translates ListenAndServe and
Shutdown into Serve, draining connections for the configured timeout.

WebSocketHubService runs the live review feed hub.

RunnerService runs any component with a Run(ctx) error loop, such as the
notification dispatcher.

PeriodicService calls a task on a fixed interval. It carries the Badger
value-log GC and expired session cleanup.
*/
package services
