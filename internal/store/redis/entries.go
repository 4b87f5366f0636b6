package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
)

// SaveEntry stores an entry in Redis. A created entry is appended to the
// ordered ID list; an update keeps its position.
func (s *Store) SaveEntry(ctx context.Context, entry domain.Entry, created bool) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, EntryKey(entry.ID), data, 0)
	if created {
		pipe.LRem(ctx, KeyEntries, 0, entry.ID)
		pipe.RPush(ctx, KeyEntries, entry.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}

	return nil
}

// GetAllEntries retrieves all entries in insertion order. IDs whose
// payload is gone are skipped.
func (s *Store) GetAllEntries(ctx context.Context) ([]domain.Entry, error) {
	ids, err := s.client.LRange(ctx, KeyEntries, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get entry IDs: %w", err)
	}

	if len(ids) == 0 {
		return []domain.Entry{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = EntryKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get entries: %w", err)
	}

	entries := make([]domain.Entry, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var e domain.Entry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, fmt.Errorf("failed to unmarshal entry %s: %w", ids[i], err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// DeleteEntry removes an entry from Redis
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, EntryKey(id))
	pipe.LRem(ctx, KeyEntries, 0, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	return nil
}
