package catalog

import (
	"strings"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
)

// CallerProfile returns the caller's own profile, if saved.
func (s *Service) CallerProfile(c domain.Caller) (domain.Profile, bool) {
	if c.Anonymous() {
		return domain.Profile{}, false
	}
	return s.profiles.Get(c.Key)
}

// SaveCallerProfile stores the caller's own profile. Any identified caller
// may do so, whatever their role; anonymous callers may not.
func (s *Service) SaveCallerProfile(c domain.Caller, p domain.Profile) error {
	if c.Anonymous() {
		return domain.Errorf(domain.ErrUnauthorized, "an identified caller is required to save a profile")
	}

	p.Name = strings.TrimSpace(p.Name)
	if err := domain.ValidateProfile(p); err != nil {
		return err
	}

	s.profileMu.Lock()
	defer s.profileMu.Unlock()

	s.profiles.Set(c.Key, p)
	s.record(Change{Kind: ChangeSetProfile, Key: c.Key, Profile: p})

	s.logger.Debug("profile saved", logger.String("caller", c.Key))
	return nil
}

// Profile looks up another caller's profile. Read only.
func (s *Service) Profile(key string) (domain.Profile, bool) {
	return s.profiles.Get(strings.TrimSpace(key))
}
