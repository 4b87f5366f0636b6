package index

import (
	"sync"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
)

// ─────────────────────────────────────────────────────────────────
// Roles
// ─────────────────────────────────────────────────────────────────

// RoleTable maps caller keys to explicitly assigned roles
type RoleTable struct {
	mu    sync.RWMutex
	roles map[string]domain.Role
}

// NewRoleTable creates an empty role table
func NewRoleTable() *RoleTable {
	return &RoleTable{roles: make(map[string]domain.Role)}
}

// Load replaces all role assignments
func (t *RoleTable) Load(roles map[string]domain.Role) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.roles = make(map[string]domain.Role, len(roles))
	for k, r := range roles {
		t.roles[k] = r
	}
}

// Get returns the role assigned to key, if any
func (t *RoleTable) Get(key string) (domain.Role, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	r, ok := t.roles[key]
	return r, ok
}

// Set assigns a role, overwriting any previous one
func (t *RoleTable) Set(key string, role domain.Role) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.roles[key] = role
}

// CountRole returns how many callers hold role
func (t *RoleTable) CountRole(role domain.Role) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, r := range t.roles {
		if r == role {
			n++
		}
	}
	return n
}

// ─────────────────────────────────────────────────────────────────
// Profiles
// ─────────────────────────────────────────────────────────────────

// ProfileTable maps caller keys to their display profile
type ProfileTable struct {
	mu       sync.RWMutex
	profiles map[string]domain.Profile
}

// NewProfileTable creates an empty profile table
func NewProfileTable() *ProfileTable {
	return &ProfileTable{profiles: make(map[string]domain.Profile)}
}

// Load replaces all profiles
func (t *ProfileTable) Load(profiles map[string]domain.Profile) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.profiles = make(map[string]domain.Profile, len(profiles))
	for k, p := range profiles {
		t.profiles[k] = p
	}
}

// Get returns the profile saved by key, if any
func (t *ProfileTable) Get(key string) (domain.Profile, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	p, ok := t.profiles[key]
	return p, ok
}

// Set saves a profile, overwriting any previous one
func (t *ProfileTable) Set(key string, p domain.Profile) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.profiles[key] = p
}

// Count returns the number of saved profiles
func (t *ProfileTable) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.profiles)
}

// All returns a copy of every role assignment
func (t *RoleTable) All() map[string]domain.Role {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]domain.Role, len(t.roles))
	for k, r := range t.roles {
		out[k] = r
	}
	return out
}

// All returns a copy of every profile
func (t *ProfileTable) All() map[string]domain.Profile {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]domain.Profile, len(t.profiles))
	for k, p := range t.profiles {
		out[k] = p
	}
	return out
}
