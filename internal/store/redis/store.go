package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/toolshelf/internal/catalog"
)

// Store persists the catalog in Redis. It holds no state of its own; the
// in-memory indexes stay authoritative while the process runs.
type Store struct {
	client redis.UniversalClient
}

// NewStore creates a new Redis store
func NewStore(client redis.UniversalClient) *Store {
	return &Store{
		client: client,
	}
}

// Apply writes one journaled change.
func (s *Store) Apply(ctx context.Context, c catalog.Change) error {
	switch c.Kind {
	case catalog.ChangePutEntry:
		return s.SaveEntry(ctx, c.Entry, c.Created)
	case catalog.ChangeDeleteEntry:
		return s.DeleteEntry(ctx, c.Key)
	case catalog.ChangeAddCategory:
		return s.AddCategory(ctx, c.Key)
	case catalog.ChangeRemoveCategory:
		return s.RemoveCategory(ctx, c.Key)
	case catalog.ChangeSetRole:
		return s.SetRole(ctx, c.Key, c.Role)
	case catalog.ChangeSetProfile:
		return s.SaveProfile(ctx, c.Key, c.Profile)
	case catalog.ChangeSeedMark:
		return s.MarkSeeded(ctx, c.Key)
	default:
		return fmt.Errorf("unknown change kind %q", c.Kind)
	}
}

// LoadSnapshot reads back everything stored, for start-up.
func (s *Store) LoadSnapshot(ctx context.Context) (catalog.Snapshot, error) {
	entries, err := s.GetAllEntries(ctx)
	if err != nil {
		return catalog.Snapshot{}, err
	}
	categories, err := s.GetCategories(ctx)
	if err != nil {
		return catalog.Snapshot{}, err
	}
	roles, err := s.GetRoles(ctx)
	if err != nil {
		return catalog.Snapshot{}, err
	}
	profiles, err := s.GetProfiles(ctx)
	if err != nil {
		return catalog.Snapshot{}, err
	}
	seeded, err := s.GetSeedMarkers(ctx)
	if err != nil {
		return catalog.Snapshot{}, err
	}

	return catalog.Snapshot{
		Entries:    entries,
		Categories: categories,
		Roles:      roles,
		Profiles:   profiles,
		Seeded:     seeded,
	}, nil
}

// ReplaceSnapshot overwrites everything stored with snap in one
// transaction. Entry payloads no longer referenced are deleted.
func (s *Store) ReplaceSnapshot(ctx context.Context, snap catalog.Snapshot) error {
	oldIDs, err := s.client.LRange(ctx, KeyEntries, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to get entry IDs: %w", err)
	}

	keep := make(map[string]bool, len(snap.Entries))
	for _, e := range snap.Entries {
		keep[e.ID] = true
	}

	pipe := s.client.TxPipeline()
	for _, id := range oldIDs {
		if !keep[id] {
			pipe.Del(ctx, EntryKey(id))
		}
	}
	pipe.Del(ctx, KeyEntries, KeyCategories, KeyRoles, KeyProfiles, KeySeeded)

	for _, e := range snap.Entries {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to marshal entry %s: %w", e.ID, err)
		}
		pipe.Set(ctx, EntryKey(e.ID), data, 0)
		pipe.RPush(ctx, KeyEntries, e.ID)
	}
	for _, name := range snap.Categories {
		pipe.RPush(ctx, KeyCategories, name)
	}
	for key, role := range snap.Roles {
		pipe.HSet(ctx, KeyRoles, key, string(role))
	}
	for key, p := range snap.Profiles {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal profile %s: %w", key, err)
		}
		pipe.HSet(ctx, KeyProfiles, key, data)
	}
	for _, marker := range snap.Seeded {
		pipe.SAdd(ctx, KeySeeded, marker)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
