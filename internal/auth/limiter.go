// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package auth

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/cinemapulse/internal/metrics"
)

// LoginLimiter is a per-client-IP token bucket for the login and register
// endpoints. A client may burst limit requests, refilled at limit per window.
type LoginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	window   time.Duration
	idleTTL  time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewLoginLimiter creates a limiter and starts its cleanup loop. A
// non-positive limit disables limiting.
func NewLoginLimiter(limit int, window time.Duration) *LoginLimiter {
	if window <= 0 {
		window = time.Minute
	}
	l := &LoginLimiter{
		limiters: make(map[string]*limiterEntry),
		burst:    limit,
		window:   window,
		idleTTL:  10 * window,
		stop:     make(chan struct{}),
	}
	if limit > 0 {
		l.rate = rate.Limit(float64(limit) / window.Seconds())
		go l.cleanupLoop(window)
	}
	return l
}

// Allow reports whether a request from ip may proceed.
func (l *LoginLimiter) Allow(ip string) bool {
	if l.burst <= 0 {
		return true
	}
	l.mu.Lock()
	entry, ok := l.limiters[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastAccess = time.Now()
	limiter := entry.limiter
	l.mu.Unlock()

	return limiter.Allow()
}

// Middleware rejects over-limit clients with 429.
func (l *LoginLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientIP(r)) {
			metrics.AuthAttempts.WithLabelValues("login", "rate_limited").Inc()
			w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			WriteError(w, http.StatusTooManyRequests, CodeRateLimited, "Too many attempts, please try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *LoginLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stop:
			return
		}
	}
}

func (l *LoginLimiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()
	threshold := time.Now().Add(-l.idleTTL)
	for ip, entry := range l.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(l.limiters, ip)
		}
	}
}

// Stop ends the cleanup loop. It is safe to call more than once.
func (l *LoginLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// clientIP uses RemoteAddr; chi's RealIP middleware rewrites it from
// proxy headers upstream.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
