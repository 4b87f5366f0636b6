package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
)

// SetRole stores the role of a caller.
func (s *Store) SetRole(ctx context.Context, key string, role domain.Role) error {
	if err := s.client.HSet(ctx, KeyRoles, key, string(role)).Err(); err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}
	return nil
}

// GetRoles returns every stored role. Unknown role names are dropped.
func (s *Store) GetRoles(ctx context.Context) (map[string]domain.Role, error) {
	raw, err := s.client.HGetAll(ctx, KeyRoles).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get roles: %w", err)
	}

	roles := make(map[string]domain.Role, len(raw))
	for key, value := range raw {
		role, err := domain.ParseRole(value)
		if err != nil {
			continue
		}
		roles[key] = role
	}
	return roles, nil
}

// SaveProfile stores the profile of a caller.
func (s *Store) SaveProfile(ctx context.Context, key string, p domain.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := s.client.HSet(ctx, KeyProfiles, key, data).Err(); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// GetProfiles returns every stored profile.
func (s *Store) GetProfiles(ctx context.Context) (map[string]domain.Profile, error) {
	raw, err := s.client.HGetAll(ctx, KeyProfiles).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}

	profiles := make(map[string]domain.Profile, len(raw))
	for key, value := range raw {
		var p domain.Profile
		if err := json.Unmarshal([]byte(value), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile %s: %w", key, err)
		}
		profiles[key] = p
	}
	return profiles, nil
}

// MarkSeeded records that a seed item was applied.
func (s *Store) MarkSeeded(ctx context.Context, marker string) error {
	if err := s.client.SAdd(ctx, KeySeeded, marker).Err(); err != nil {
		return fmt.Errorf("failed to mark seeded: %w", err)
	}
	return nil
}

// GetSeedMarkers returns every seed marker, sorted.
func (s *Store) GetSeedMarkers(ctx context.Context) ([]string, error) {
	markers, err := s.client.SMembers(ctx, KeySeeded).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get seed markers: %w", err)
	}
	slices.Sort(markers)
	return markers, nil
}
