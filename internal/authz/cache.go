// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package authz

import (
	"sync"
	"time"
)

type decision struct {
	allowed   bool
	expiresAt time.Time
}

// decisionCache memoizes (role, object, action) results. The policy is
// static at runtime, so entries only age out.
type decisionCache struct {
	ttl      time.Duration
	mu       sync.RWMutex
	items    map[string]decision
	done     chan struct{}
	stopOnce sync.Once
}

func newDecisionCache(ttl time.Duration) *decisionCache {
	c := &decisionCache{
		ttl:   ttl,
		items: make(map[string]decision),
		done:  make(chan struct{}),
	}
	go c.evictLoop()
	return c
}

func cacheKey(role, object, action string) string {
	return role + "\x00" + object + "\x00" + action
}

func (c *decisionCache) get(role, object, action string) (allowed, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, found := c.items[cacheKey(role, object, action)]
	if !found || time.Now().After(d.expiresAt) {
		return false, false
	}
	return d.allowed, true
}

func (c *decisionCache) set(role, object, action string, allowed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[cacheKey(role, object, action)] = decision{allowed: allowed, expiresAt: time.Now().Add(c.ttl)}
}

func (c *decisionCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *decisionCache) evictExpired(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, d := range c.items {
		if now.After(d.expiresAt) {
			delete(c.items, k)
		}
	}
}

func (c *decisionCache) evictLoop() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case now := <-ticker.C:
			c.evictExpired(now)
		}
	}
}

func (c *decisionCache) stop() {
	c.stopOnce.Do(func() { close(c.done) })
}
