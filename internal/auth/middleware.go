// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/logging"
	"github.com/tomtom215/cinemapulse/internal/models"
)

// Error codes written by the auth and authz middleware.
const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeRateLimited  = "RATE_LIMITED"
)

// MiddlewareConfig controls the session cookie.
type MiddlewareConfig struct {
	CookieName   string
	CookieSecure bool
	SessionTTL   time.Duration
}

// Middleware resolves the caller from a bearer token or session cookie.
type Middleware struct {
	store  SessionStore
	tokens *TokenIssuer
	cfg    MiddlewareConfig
	logger zerolog.Logger
}

// NewMiddleware creates the middleware. tokens may be nil to accept only
// cookie sessions.
func NewMiddleware(store SessionStore, tokens *TokenIssuer, cfg MiddlewareConfig, logger zerolog.Logger) *Middleware {
	if cfg.CookieName == "" {
		cfg.CookieName = "cinemapulse_session"
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	return &Middleware{
		store:  store,
		tokens: tokens,
		cfg:    cfg,
		logger: logger.With().Str("component", "auth_middleware").Logger(),
	}
}

// Authenticate attaches the Subject to the request context when the request
// carries valid credentials. Requests without credentials pass through.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject := m.resolve(r)
		if subject == nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := ContextWithSubject(r.Context(), subject)
		ctx = logging.ContextWithUser(ctx, subject.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects requests without a Subject with 401. Credentials are
// resolved here unless Authenticate already ran further up the chain.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	resolveThenCheck := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SubjectFromContext(r.Context()) == nil {
			WriteError(w, http.StatusUnauthorized, CodeUnauthorized, MsgNotAuthenticated)
			return
		}
		next.ServeHTTP(w, r)
	}))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SubjectFromContext(r.Context()) != nil {
			next.ServeHTTP(w, r)
			return
		}
		resolveThenCheck.ServeHTTP(w, r)
	})
}

// resolve checks the Authorization header first, then the session cookie.
func (m *Middleware) resolve(r *http.Request) *Subject {
	if m.tokens != nil {
		if token, ok := bearerToken(r); ok {
			subject, err := m.tokens.Validate(token)
			if err != nil {
				m.logger.Debug().Err(err).Msg("bearer token rejected")
				return nil
			}
			return subject
		}
	}

	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	session, err := m.store.Get(r.Context(), cookie.Value)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrSessionExpired) {
			m.logger.Error().Err(err).Msg("session lookup failed")
		}
		return nil
	}
	return session.Subject()
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return "", false
	}
	token := strings.TrimSpace(h[7:])
	return token, token != ""
}

// StartSession creates a session for subject and sets the cookie. An
// existing session cookie on the request is destroyed first.
func (m *Middleware) StartSession(ctx context.Context, w http.ResponseWriter, r *http.Request, subject *Subject) (*Session, error) {
	if old, err := r.Cookie(m.cfg.CookieName); err == nil && old.Value != "" {
		if err := m.store.Delete(ctx, old.Value); err != nil {
			m.logger.Warn().Err(err).Msg("failed to delete previous session")
		}
	}

	session := NewSession(subject, m.cfg.SessionTTL)
	if err := m.store.Create(ctx, session); err != nil {
		return nil, err
	}
	m.SetSessionCookie(w, session.ID)
	return session, nil
}

// EndSession deletes the request's session, if any, and clears the cookie.
func (m *Middleware) EndSession(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	defer m.ClearSessionCookie(w)
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	return m.store.Delete(ctx, cookie.Value)
}

// SetSessionCookie sets the session cookie on the response.
func (m *Middleware) SetSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(m.cfg.SessionTTL.Seconds()),
		Secure:   m.cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func (m *Middleware) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   m.cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// WriteError writes the standard error envelope. It is shared by the auth
// and authz middleware, which sit below the API package.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    &models.APIError{Code: code, Message: message},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("failed to encode error response")
	}
}
