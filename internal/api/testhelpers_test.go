// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/cinemapulse/internal/analytics"
	"github.com/tomtom215/cinemapulse/internal/auth"
	"github.com/tomtom215/cinemapulse/internal/authz"
	"github.com/tomtom215/cinemapulse/internal/config"
	"github.com/tomtom215/cinemapulse/internal/models"
	"github.com/tomtom215/cinemapulse/internal/recommend"
	"github.com/tomtom215/cinemapulse/internal/review"
	"github.com/tomtom215/cinemapulse/internal/stats"
	"github.com/tomtom215/cinemapulse/internal/storage"
)

const adminEmail = "admin@example.com"

type testServer struct {
	store   *storage.MemoryGateway
	handler http.Handler
	limiter *auth.LoginLimiter
}

// newTestServer builds the full router over a seeded memory store.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	logger := zerolog.Nop()

	store := storage.NewMemoryGateway()
	if _, err := storage.SeedCatalog(ctx, store, time.Now(), logger); err != nil {
		t.Fatalf("seed: %v", err)
	}

	agg := stats.NewAggregator(store, logger)
	accounts := auth.NewService(store, nil, bcrypt.MinCost, []string{adminEmail}, logger)
	tokens, err := auth.NewTokenIssuer("api-test-secret", time.Hour, logger)
	if err != nil {
		t.Fatal(err)
	}
	sessions := auth.NewMiddleware(auth.NewMemorySessionStore(), tokens, auth.MiddlewareConfig{SessionTTL: time.Hour}, logger)
	enforcer, err := authz.NewEnforcer(authz.DefaultEnforcerConfig())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(enforcer.Close)
	limiter := auth.NewLoginLimiter(1000, time.Minute)
	t.Cleanup(limiter.Stop)

	apiCfg := config.APIConfig{
		MovieReviewsLimit:        50,
		DashboardRecommendations: 4,
		RateLimitDisabled:        true,
		CORSOrigins:              []string{"*"},
	}
	h := NewHandler(Deps{
		Store:     store,
		Reviews:   review.NewService(store, agg, nil, logger),
		Recommend: recommend.NewEngine(store, nil, logger),
		Analytics: analytics.NewReporter(store, analytics.DefaultConfig(), logger),
		Accounts:  accounts,
		Sessions:  sessions,
		Tokens:    tokens,
		Config:    apiCfg,
		Logger:    logger,
	})
	router := NewRouter(h, sessions, authz.NewMiddleware(enforcer, logger), limiter,
		NewChiMiddleware(ChiMiddlewareConfigFrom(apiCfg)), logger)

	return &testServer{store: store, handler: router.SetupChi(), limiter: limiter}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// signUp registers and logs in, returning a bearer token.
func (s *testServer) signUp(t *testing.T, email, name string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{Email: email, Password: "secret1", Name: name})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: %d %s", email, rec.Code, rec.Body.String())
	}
	rec = s.do(t, http.MethodPost, "/api/auth/login", "", models.LoginRequest{Email: email, Password: "secret1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", email, rec.Code, rec.Body.String())
	}
	var login models.LoginResponse
	decodeData(t, rec, &login)
	return login.Token
}

type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v\n%s", err, rec.Body.String())
	}
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) envelope {
	t.Helper()
	env := decodeEnvelope(t, rec)
	if env.Status != "success" {
		t.Fatalf("status %q: %+v", env.Status, env.Error)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	return env
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code, message string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d: %s", rec.Code, status, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "error" || env.Error == nil {
		t.Fatalf("not an error envelope: %s", rec.Body.String())
	}
	if env.Error.Code != code {
		t.Errorf("code = %q, want %q", env.Error.Code, code)
	}
	if message != "" && env.Error.Message != message {
		t.Errorf("message = %q, want %q", env.Error.Message, message)
	}
}
