// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package auth

import "context"

// Authentication methods recorded on a Subject.
const (
	MethodSession = "session"
	MethodBearer  = "bearer"
)

// Subject is the authenticated caller of a request.
type Subject struct {
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Roles     []string `json:"roles"`
	Method    string   `json:"method,omitempty"`
	SessionID string   `json:"-"`
}

// HasRole reports whether the subject holds role.
func (s *Subject) HasRole(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type contextKey string

const subjectContextKey contextKey = "auth_subject"

// ContextWithSubject stores s in ctx.
func ContextWithSubject(ctx context.Context, s *Subject) context.Context {
	return context.WithValue(ctx, subjectContextKey, s)
}

// SubjectFromContext returns the authenticated subject, or nil.
func SubjectFromContext(ctx context.Context) *Subject {
	s, _ := ctx.Value(subjectContextKey).(*Subject)
	return s
}
