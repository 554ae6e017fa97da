// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package authz

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/auth"
	"github.com/tomtom215/cinemapulse/internal/metrics"
)

// Actions derived from HTTP methods.
const (
	ActionRead   = "read"
	ActionWrite  = "write"
	ActionDelete = "delete"
)

// Middleware enforces the policy on the request path.
type Middleware struct {
	enforcer *Enforcer
	logger   zerolog.Logger
}

// NewMiddleware creates the authorization middleware.
func NewMiddleware(enforcer *Enforcer, logger zerolog.Logger) *Middleware {
	return &Middleware{
		enforcer: enforcer,
		logger:   logger.With().Str("component", "authz").Logger(),
	}
}

// AuthorizeRequest checks the subject's roles against the request path and
// the action implied by its method. Unauthenticated requests are checked as
// anonymous and denied with 401 rather than 403.
func (m *Middleware) AuthorizeRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject := auth.SubjectFromContext(r.Context())
		var roles []string
		if subject != nil {
			roles = subject.Roles
		}

		allowed, err := m.enforcer.EnforceAny(roles, r.URL.Path, methodToAction(r.Method))
		if err != nil {
			metrics.AuthzDecisions.WithLabelValues("error").Inc()
			m.logger.Error().Err(err).Str("path", r.URL.Path).Msg("authorization error")
			auth.WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
			return
		}
		if !allowed {
			metrics.AuthzDecisions.WithLabelValues("denied").Inc()
			if subject == nil {
				auth.WriteError(w, http.StatusUnauthorized, auth.CodeUnauthorized, auth.MsgNotAuthenticated)
				return
			}
			m.logger.Warn().Str("user", subject.Email).Str("path", r.URL.Path).Str("method", r.Method).Msg("access denied")
			auth.WriteError(w, http.StatusForbidden, auth.CodeForbidden, "Insufficient permissions")
			return
		}

		metrics.AuthzDecisions.WithLabelValues("allowed").Inc()
		next.ServeHTTP(w, r)
	})
}

func methodToAction(method string) string {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return ActionWrite
	case http.MethodDelete:
		return ActionDelete
	default:
		return ActionRead
	}
}
