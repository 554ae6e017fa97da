// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/cinemapulse/internal/auth"
	"github.com/tomtom215/cinemapulse/internal/models"
)

func TestRegister(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{Email: "New@Example.com", Password: "secret1", Name: "New"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var profile models.UserProfile
	decodeData(t, rec, &profile)
	if profile.Email != "new@example.com" || profile.TotalReviews != 0 {
		t.Errorf("profile = %+v", profile)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("response leaks password field")
	}

	expectError(t, s.do(t, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{Email: "new@example.com", Password: "secret1", Name: "Again"}),
		http.StatusConflict, CodeConflict, auth.MsgUserExists)

	rec = s.do(t, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{Email: "not-an-email", Password: "secret1", Name: "Bad"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid email status = %d", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	token := s.signUp(t, "member@example.com", "Member")
	if token == "" {
		t.Fatal("empty token")
	}

	tests := []struct {
		name   string
		req    interface{}
		status int
		code   string
	}{
		{"wrong password", models.LoginRequest{Email: "member@example.com", Password: "nope"}, http.StatusUnauthorized, auth.CodeUnauthorized},
		{"unknown user", models.LoginRequest{Email: "ghost@example.com", Password: "secret1"}, http.StatusUnauthorized, auth.CodeUnauthorized},
		{"missing fields", map[string]string{}, http.StatusBadRequest, CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			expectError(t, s.do(t, http.MethodPost, "/api/auth/login", "", tt.req), tt.status, tt.code, "")
		})
	}
}

func TestMe_BearerAndCookie(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	token := s.signUp(t, adminEmail, "Admin")

	var me MeResponse
	decodeData(t, s.do(t, http.MethodGet, "/api/auth/me", token, nil), &me)
	if me.Method != auth.MethodBearer || me.User.Email != adminEmail {
		t.Errorf("me = %+v", me)
	}
	hasAdmin := false
	for _, r := range me.Roles {
		hasAdmin = hasAdmin || r == "admin"
	}
	if !hasAdmin {
		t.Errorf("roles = %v", me.Roles)
	}

	login := s.do(t, http.MethodPost, "/api/auth/login", "", models.LoginRequest{Email: adminEmail, Password: "secret1"})
	cookies := login.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login set no session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookies[0])
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	decodeData(t, rec, &me)
	if me.Method != auth.MethodSession {
		t.Errorf("method = %q", me.Method)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(cookies[0])
	s.handler.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	expectError(t, rec, http.StatusUnauthorized, auth.CodeUnauthorized, "")
}

func TestMe_Anonymous(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	expectError(t, s.do(t, http.MethodGet, "/api/auth/me", "", nil), http.StatusUnauthorized, auth.CodeUnauthorized, auth.MsgNotAuthenticated)
}

func TestReviewFeed_NoHub(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/ws/reviews", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d", rec.Code)
	}
}
