// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package authz

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemapulse/internal/auth"
)

func newTestEnforcer(t *testing.T) *Enforcer {
	t.Helper()
	e, err := NewEnforcer(DefaultEnforcerConfig())
	if err != nil {
		t.Fatalf("NewEnforcer: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestEmbeddedPolicy(t *testing.T) {
	t.Parallel()
	e := newTestEnforcer(t)

	tests := []struct {
		roles  []string
		object string
		action string
		want   bool
	}{
		{[]string{auth.RoleUser}, "/api/reviews", ActionWrite, true},
		{[]string{auth.RoleUser}, "/api/recommendations", ActionRead, true},
		{[]string{auth.RoleUser}, "/api/user/reviews", ActionRead, true},
		{[]string{auth.RoleUser}, "/api/admin/movies/movie_001/active", ActionWrite, false},
		{[]string{auth.RoleUser, auth.RoleAdmin}, "/api/admin/movies/movie_001/active", ActionWrite, true},
		{[]string{auth.RoleAdmin}, "/api/reviews", ActionWrite, true},
		{nil, "/api/reviews", ActionWrite, false},
		{nil, "/api/admin/movies/movie_001/active", ActionWrite, false},
		{[]string{auth.RoleUser}, "/api/reviews", ActionDelete, false},
	}
	for _, tt := range tests {
		got, err := e.EnforceAny(tt.roles, tt.object, tt.action)
		if err != nil {
			t.Fatalf("EnforceAny(%v, %s, %s): %v", tt.roles, tt.object, tt.action, err)
		}
		if got != tt.want {
			t.Errorf("EnforceAny(%v, %s, %s) = %v, want %v", tt.roles, tt.object, tt.action, got, tt.want)
		}
	}
}

func TestPolicyFromFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "policy.csv")
	if err := os.WriteFile(path, []byte("p, user, /api/admin/*, write\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	e, err := NewEnforcer(EnforcerConfig{PolicyPath: path})
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	if ok, _ := e.Enforce(auth.RoleUser, "/api/admin/movies/x/active", ActionWrite); !ok {
		t.Error("file policy not applied")
	}
	if ok, _ := e.Enforce(auth.RoleUser, "/api/reviews", ActionWrite); ok {
		t.Error("embedded policy leaked into file policy")
	}
}

func TestDecisionCache(t *testing.T) {
	t.Parallel()
	c := newDecisionCache(time.Hour)
	defer c.stop()
	defer c.stop()

	if _, ok := c.get("user", "/a", "read"); ok {
		t.Fatal("empty cache hit")
	}
	c.set("user", "/a", "read", true)
	if allowed, ok := c.get("user", "/a", "read"); !ok || !allowed {
		t.Errorf("get = %v, %v", allowed, ok)
	}

	c.evictExpired(time.Now().Add(2 * time.Hour))
	if c.len() != 0 {
		t.Errorf("expired entries kept: %d", c.len())
	}
}

func TestAuthorizeRequest(t *testing.T) {
	t.Parallel()
	mw := NewMiddleware(newTestEnforcer(t), zerolog.Nop())
	h := mw.AuthorizeRequest(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name    string
		subject *auth.Subject
		method  string
		path    string
		want    int
	}{
		{"admin toggles movie", &auth.Subject{Email: "root@example.com", Roles: []string{auth.RoleUser, auth.RoleAdmin}}, http.MethodPut, "/api/admin/movies/movie_001/active", http.StatusNoContent},
		{"user forbidden", &auth.Subject{Email: "ana@example.com", Roles: []string{auth.RoleUser}}, http.MethodPut, "/api/admin/movies/movie_001/active", http.StatusForbidden},
		{"anonymous unauthorized", nil, http.MethodPut, "/api/admin/movies/movie_001/active", http.StatusUnauthorized},
		{"user submits review", &auth.Subject{Email: "ana@example.com", Roles: []string{auth.RoleUser}}, http.MethodPost, "/api/reviews", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.subject != nil {
				req = req.WithContext(auth.ContextWithSubject(req.Context(), tt.subject))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
