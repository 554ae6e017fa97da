// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package authz

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

// RoleAnonymous is enforced for requests without an authenticated subject.
const RoleAnonymous = "anonymous"

// EnforcerConfig selects the model and policy sources.
type EnforcerConfig struct {
	// ModelPath overrides the embedded model when the file exists.
	ModelPath string

	// PolicyPath overrides the embedded policy when the file exists.
	PolicyPath string

	// CacheTTL enables decision caching when positive.
	CacheTTL time.Duration
}

// DefaultEnforcerConfig uses the embedded model and policy with a one
// minute decision cache.
func DefaultEnforcerConfig() EnforcerConfig {
	return EnforcerConfig{CacheTTL: time.Minute}
}

// Enforcer wraps the Casbin enforcer with a decision cache.
type Enforcer struct {
	enforcer *casbin.SyncedEnforcer
	cache    *decisionCache
}

// NewEnforcer loads the model and policy.
func NewEnforcer(cfg EnforcerConfig) (*Enforcer, error) {
	var (
		m   model.Model
		err error
	)
	if cfg.ModelPath != "" && fileExists(cfg.ModelPath) {
		m, err = model.NewModelFromFile(cfg.ModelPath)
	} else {
		m, err = model.NewModelFromString(embeddedModel)
	}
	if err != nil {
		return nil, fmt.Errorf("load casbin model: %w", err)
	}

	var enforcer *casbin.SyncedEnforcer
	if cfg.PolicyPath != "" && fileExists(cfg.PolicyPath) {
		enforcer, err = casbin.NewSyncedEnforcer(m, fileadapter.NewAdapter(cfg.PolicyPath))
	} else {
		enforcer, err = casbin.NewSyncedEnforcer(m)
		if err == nil {
			err = loadPolicy(enforcer, embeddedPolicy)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("create casbin enforcer: %w", err)
	}

	e := &Enforcer{enforcer: enforcer}
	if cfg.CacheTTL > 0 {
		e.cache = newDecisionCache(cfg.CacheTTL)
	}
	return e, nil
}

// loadPolicy adds the p and g lines of a policy CSV.
func loadPolicy(enforcer *casbin.SyncedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		switch {
		case parts[0] == "p" && len(parts) == 4:
			if _, err := enforcer.AddPolicy(parts[1], parts[2], parts[3]); err != nil {
				return fmt.Errorf("add policy %v: %w", parts[1:], err)
			}
		case parts[0] == "g" && len(parts) == 3:
			if _, err := enforcer.AddGroupingPolicy(parts[1], parts[2]); err != nil {
				return fmt.Errorf("add grouping policy %v: %w", parts[1:], err)
			}
		default:
			return fmt.Errorf("malformed policy line %q", line)
		}
	}
	return nil
}

// Enforce checks one role against object and action.
func (e *Enforcer) Enforce(role, object, action string) (bool, error) {
	if e.cache != nil {
		if allowed, ok := e.cache.get(role, object, action); ok {
			return allowed, nil
		}
	}

	allowed, err := e.enforcer.Enforce(role, object, action)
	if err != nil {
		return false, fmt.Errorf("enforce: %w", err)
	}

	if e.cache != nil {
		e.cache.set(role, object, action, allowed)
	}
	return allowed, nil
}

// EnforceAny reports whether any of roles permits the action. An empty role
// list is checked as anonymous.
func (e *Enforcer) EnforceAny(roles []string, object, action string) (bool, error) {
	if len(roles) == 0 {
		roles = []string{RoleAnonymous}
	}
	for _, role := range roles {
		allowed, err := e.Enforce(role, object, action)
		if err != nil {
			return false, err
		}
		if allowed {
			return true, nil
		}
	}
	return false, nil
}

// Close stops the cache cleanup loop.
func (e *Enforcer) Close() {
	if e.cache != nil {
		e.cache.stop()
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
