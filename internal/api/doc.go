// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

/*
Package api provides the HTTP API of CinemaPulse on the chi router.

Handler methods are split across files:

  - handlers.go: Handler struct and constructor
  - handlers_helpers.go: JSON envelope and request helpers
  - handlers_movies.go: catalog browsing and search
  - handlers_reviews.go: review submission and the user's dashboard
  - handlers_recommend.go: recommendations and analytics
  - handlers_auth.go: registration, login, logout, current user
  - handlers_admin.go: catalog administration
  - handlers_health.go: health check
  - chi_router.go: routes and middleware stack

Every JSON endpoint except /health answers with models.APIResponse:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "query_time_ms": 3, "request_id": "..."}
	}

Errors use the same envelope with status "error" and an error object
carrying one of VALIDATION_ERROR, NOT_FOUND, UNAUTHORIZED, FORBIDDEN,
CONFLICT, SERVICE_UNAVAILABLE, INTERNAL_ERROR or RATE_LIMITED.

Read endpoints degrade when storage is unavailable: they answer 200 with
empty collections and metadata.degraded set. Writes answer 503.
*/
package api
