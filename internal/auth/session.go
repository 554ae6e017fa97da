// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

var (
	// ErrSessionNotFound is returned for unknown session IDs.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned for sessions past their expiry.
	ErrSessionExpired = errors.New("session expired")
)

// Session is a server-side login session.
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Subject returns the authenticated subject the session represents.
func (s *Session) Subject() *Subject {
	return &Subject{
		Email:     s.Email,
		Name:      s.Name,
		Roles:     append([]string(nil), s.Roles...),
		Method:    MethodSession,
		SessionID: s.ID,
	}
}

// NewSession creates a session for subject lasting ttl.
func NewSession(subject *Subject, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        generateSessionID(),
		Email:     subject.Email,
		Name:      subject.Name,
		Roles:     append([]string(nil), subject.Roles...),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// generateSessionID returns 256 random bits, hex encoded.
func generateSessionID() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand does not fail on supported platforms.
		panic("auth: crypto/rand failed: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// SessionStore persists sessions.
type SessionStore interface {
	Create(ctx context.Context, s *Session) error

	// Get returns ErrSessionNotFound or ErrSessionExpired when the session
	// cannot be used.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete is idempotent.
	Delete(ctx context.Context, id string) error

	// Touch extends a session's expiry.
	Touch(ctx context.Context, id string, expiresAt time.Time) error

	// CleanupExpired removes expired sessions and returns how many.
	CleanupExpired(ctx context.Context) (int, error)
}

// MemorySessionStore keeps sessions in process memory.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemorySessionStore creates an empty store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]Session)}
}

// Create implements SessionStore.
func (m *MemorySessionStore) Create(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *s
	stored.Roles = append([]string(nil), s.Roles...)
	m.sessions[s.ID] = stored
	return nil
}

// Get implements SessionStore.
func (m *MemorySessionStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.IsExpired() {
		return nil, ErrSessionExpired
	}
	s.Roles = append([]string(nil), s.Roles...)
	return &s, nil
}

// Delete implements SessionStore.
func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Touch implements SessionStore.
func (m *MemorySessionStore) Touch(_ context.Context, id string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	s.ExpiresAt = expiresAt
	m.sessions[id] = s
	return nil
}

// CleanupExpired implements SessionStore.
func (m *MemorySessionStore) CleanupExpired(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.IsExpired() {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

// Count returns the number of stored sessions, expired ones included.
func (m *MemorySessionStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
