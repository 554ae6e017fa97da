// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

// @title CinemaPulse API
// @version 1.0
// @description Movie catalog, reviews, ratings and genre-based recommendations.
// @description
// @description ## Authentication
// @description
// @description `POST /api/auth/login` sets an HTTP-only session cookie and returns a JWT.
// @description Either may be used; the bearer token is checked first.
// @description
// @description ## Degraded Responses
// @description
// @description When storage is unavailable, read endpoints still answer 200 with
// @description `metadata.degraded=true` and empty data. Writes answer 503.
// @description
// @description ## Error Responses
// @description
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {"code": "VALIDATION_ERROR", "message": "Rating must be between 1 and 5!", "details": {"field": "rating"}},
// @description   "metadata": {"timestamp": "2026-01-01T12:00:00Z", "request_id": "..."}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/cinemapulse/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:5000
// @BasePath /
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description "Bearer " followed by the token from /api/auth/login.
//
// @tag.name Movies
// @tag.description Catalog browsing and search
//
// @tag.name Reviews
// @tag.description Submitting reviews and the personal dashboard
//
// @tag.name Recommendations
// @tag.description Genre-based suggestions and analytics
//
// @tag.name Auth
// @tag.description Accounts, sessions and tokens
//
// @tag.name Admin
// @tag.description Catalog moderation
//
// @tag.name Core
// @tag.description Health and live feed
package main
