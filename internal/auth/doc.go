// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

/*
Package auth provides accounts, sessions and request authentication.

Key Components:

  - Service: registration and login over the user store, bcrypt hashing
  - SessionStore: server-side sessions, in memory or in Badger
  - TokenIssuer: HS256 bearer tokens for clients that do not keep cookies
  - Middleware: resolves the caller from a bearer token or session cookie
  - LoginLimiter: per-IP token bucket for the login and register endpoints

Authentication:

A request is authenticated when it carries either

	Authorization: Bearer <jwt>

or the session cookie (default name cinemapulse_session). The bearer token
wins when both are present. The resolved Subject is stored in the request
context; handlers read it with SubjectFromContext.

RequireAuth answers unauthenticated requests with 401 and the message
"Not authenticated" in the standard API error envelope.

Roles:

Every account has the "user" role. Addresses listed in auth.admin_emails
also get "admin". Authorization decisions are made by the authz package.
*/
package auth
