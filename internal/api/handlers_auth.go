// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/cinemapulse/internal/auth"
	"github.com/tomtom215/cinemapulse/internal/logging"
	"github.com/tomtom215/cinemapulse/internal/models"
)

// MeResponse describes the signed-in user.
type MeResponse struct {
	User   models.UserProfile `json:"user"`
	Roles  []string           `json:"roles"`
	Method string             `json:"method"`
}

// Register creates an account.
//
// @Summary Register
// @Tags Auth
// @Accept json
// @Produce json
// @Param account body models.RegisterRequest true "Account"
// @Success 201 {object} models.APIResponse{data=models.UserProfile}
// @Failure 400 {object} models.APIResponse
// @Failure 409 {object} models.APIResponse
// @Failure 429 {object} models.APIResponse
// @Router /api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.accounts.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		var fe *auth.FieldError
		switch {
		case errors.As(err, &fe):
			respondErrorDetails(w, r, http.StatusBadRequest, CodeValidation, fe.Message,
				map[string]interface{}{"field": fe.Field}, nil)
		case errors.Is(err, auth.ErrUserExists):
			respondError(w, r, http.StatusConflict, CodeConflict, auth.MsgUserExists, nil)
		default:
			respondStorageError(w, r, err)
		}
		return
	}

	respondSuccess(w, r, http.StatusCreated, u.Profile(), start)
}

// Login checks credentials, starts a cookie session and issues a bearer
// token.
//
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Credentials"
// @Success 200 {object} models.APIResponse{data=models.LoginResponse}
// @Failure 400 {object} models.APIResponse
// @Failure 401 {object} models.APIResponse
// @Failure 429 {object} models.APIResponse
// @Router /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req models.LoginRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	u, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, r, http.StatusUnauthorized, auth.CodeUnauthorized, auth.MsgInvalidCredentials, nil)
			return
		}
		respondStorageError(w, r, err)
		return
	}

	subject := h.accounts.SubjectFor(u)
	if _, err := h.sessions.StartSession(r.Context(), w, r, subject); err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "Could not start session", err)
		return
	}
	token, expires, err := h.tokens.Issue(subject)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "Could not issue token", err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("user", u.Email).Msg("user logged in")
	respondSuccess(w, r, http.StatusOK, models.LoginResponse{Token: token, ExpiresAt: expires, User: u.Profile()}, start)
}

// Logout ends the cookie session. Bearer tokens stay valid until they
// expire.
//
// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /api/auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.EndSession(r.Context(), w, r); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("failed to delete session")
	}
	respondSuccess(w, r, http.StatusOK, map[string]string{"message": "Logged out"}, time.Time{})
}

// Me returns the signed-in user.
//
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} models.APIResponse{data=MeResponse}
// @Failure 401 {object} models.APIResponse
// @Security BearerAuth
// @Router /api/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	subject := auth.SubjectFromContext(r.Context())

	resp := MeResponse{
		User:   models.UserProfile{Email: subject.Email, Name: subject.Name},
		Roles:  subject.Roles,
		Method: subject.Method,
	}
	u, err := h.store.GetUser(r.Context(), subject.Email)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("user record unavailable")
		respondDegraded(w, r, resp, start)
		return
	}
	if u != nil {
		resp.User = u.Profile()
	}
	respondSuccess(w, r, http.StatusOK, resp, start)
}
