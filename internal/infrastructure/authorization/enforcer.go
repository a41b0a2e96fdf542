// Package authorization wraps a casbin RBAC enforcer persisted through
// GORM, scoping the "user"/"admin" roles spec.md's admin surface needs
// (node/package/user/order management) onto resource:action policies.
package authorization

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/casbin/casbin/v2"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	applogger "nodal/internal/shared/logger"
)

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
}

// NewEnforcer loads the RBAC model from modelPath and persists policies
// through db via the gorm-adapter, so policy edits survive process restarts.
func NewEnforcer(db *gorm.DB, modelPath string) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("create casbin gorm adapter: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(modelPath, adapter)
	if err != nil {
		return nil, fmt.Errorf("create casbin enforcer: %w", err)
	}
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load casbin policy: %w", err)
	}

	return &Enforcer{enforcer: enforcer}, nil
}

func (e *Enforcer) Enforce(userID uint, resource, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(subjectForUser(userID), resource, action)
	if err != nil {
		applogger.Get().Error("permission check failed", "error", err, "user_id", userID, "resource", resource, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	return allowed, nil
}

func (e *Enforcer) AddRoleForUser(userID uint, role string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.AddRoleForUser(subjectForUser(userID), role); err != nil {
		return fmt.Errorf("add role for user: %w", err)
	}
	return e.enforcer.SavePolicy()
}

func subjectForUser(userID uint) string {
	return "user:" + strconv.FormatUint(uint64(userID), 10)
}

// SeedDefaultPolicies installs the baseline role -> resource:action grants
// for nodal's admin surface onto e (spec.md §4.6). Idempotent: AddPolicy
// no-ops when the tuple already exists.
func (e *Enforcer) SeedDefaultPolicies() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return seedDefaultPolicies(e.enforcer)
}

func seedDefaultPolicies(enforcer *casbin.Enforcer) error {
	policies := [][]string{
		{"admin", "node", "create"},
		{"admin", "node", "read"},
		{"admin", "node", "update"},
		{"admin", "node", "delete"},
		{"admin", "package", "create"},
		{"admin", "package", "read"},
		{"admin", "package", "update"},
		{"admin", "package", "delete"},
		{"admin", "user", "read"},
		{"admin", "user", "update"},
		{"admin", "order", "read"},
		{"admin", "coin_transaction", "credit"},

		{"user", "package", "read"},
		{"user", "order", "create"},
		{"user", "order", "read_own"},
		{"user", "subscription", "read_own"},
		{"user", "subscription", "reset_own"},
	}
	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p); err != nil {
			return fmt.Errorf("add policy %v: %w", p, err)
		}
	}
	return enforcer.SavePolicy()
}
