package catalog

import (
	"strings"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
)

// RoleOf resolves the role of a caller key. It never fails: an explicit
// assignment wins, a caller with a saved profile is a user, anyone else
// is a guest.
func (s *Service) RoleOf(key string) domain.Role {
	if key == "" || key == domain.AnonymousCaller {
		return domain.RoleGuest
	}
	if r, ok := s.roles.Get(key); ok {
		return r
	}
	if _, ok := s.profiles.Get(key); ok {
		return domain.RoleUser
	}
	return domain.RoleGuest
}

// IsAdmin reports whether key currently holds the admin role.
func (s *Service) IsAdmin(key string) bool {
	return s.RoleOf(key) == domain.RoleAdmin
}

// IsCallerAdmin is IsAdmin for a resolved caller. Both names are part of
// the public surface.
func (s *Service) IsCallerAdmin(c domain.Caller) bool {
	return s.IsAdmin(c.Key)
}

// CallerRole returns the role of a resolved caller.
func (s *Service) CallerRole(c domain.Caller) domain.Role {
	return s.RoleOf(c.Key)
}

// AssignRole sets the role of target. Only an admin may do so; the last
// admin may demote themselves.
func (s *Service) AssignRole(actor domain.Caller, target string, role domain.Role) error {
	s.roleMu.Lock()
	defer s.roleMu.Unlock()

	if err := s.authorize(actor, "assign role"); err != nil {
		return err
	}

	target = strings.TrimSpace(target)
	if target == "" || target == domain.AnonymousCaller {
		return domain.Errorf(domain.ErrInvalidArgument, "a caller key is required")
	}
	if !role.Valid() {
		return domain.Errorf(domain.ErrInvalidArgument, "unknown role %q", role)
	}

	s.roles.Set(target, role)
	s.record(Change{Kind: ChangeSetRole, Key: target, Role: role})

	s.logger.Info("role assigned",
		logger.String("actor", actor.Key),
		logger.String("target", target),
		logger.String("role", string(role)))
	return nil
}

// SeedAdmins grants admin to keys without any authorization check. It is
// the bootstrap path and is only reachable from start-up code. Each key is
// granted once per store: a seeded admin demoted later stays demoted.
func (s *Service) SeedAdmins(keys []string) int {
	s.roleMu.Lock()
	defer s.roleMu.Unlock()

	seeded := 0
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" || key == domain.AnonymousCaller {
			continue
		}
		marker := adminMarker(key)
		if s.seeded.Has(marker) {
			continue
		}
		if r, ok := s.roles.Get(key); !ok || r != domain.RoleAdmin {
			s.roles.Set(key, domain.RoleAdmin)
			s.record(Change{Kind: ChangeSetRole, Key: key, Role: domain.RoleAdmin})
			seeded++
		}
		s.markSeeded(marker)
	}

	if seeded > 0 {
		s.logger.Info("bootstrap admins seeded", logger.Int("count", seeded))
	}
	return seeded
}

// authorize is the gate in front of every mutating operation. Callers
// hold roleMu, for reading or writing, until the mutation is done.
func (s *Service) authorize(actor domain.Caller, op string) error {
	if s.IsAdmin(actor.Key) {
		return nil
	}
	s.logger.Info("mutation denied",
		logger.String("operation", op),
		logger.String("caller", actor.Key),
		logger.String("role", string(s.RoleOf(actor.Key))))
	return domain.Errorf(domain.ErrUnauthorized, "%s requires the admin role", op)
}
