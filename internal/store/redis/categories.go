package redis

import (
	"context"
	"fmt"
)

// AddCategory appends a custom category name.
func (s *Store) AddCategory(ctx context.Context, name string) error {
	pipe := s.client.TxPipeline()
	pipe.LRem(ctx, KeyCategories, 0, name)
	pipe.RPush(ctx, KeyCategories, name)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add category: %w", err)
	}
	return nil
}

// RemoveCategory deletes a custom category name.
func (s *Store) RemoveCategory(ctx context.Context, name string) error {
	if err := s.client.LRem(ctx, KeyCategories, 0, name).Err(); err != nil {
		return fmt.Errorf("failed to remove category: %w", err)
	}
	return nil
}

// GetCategories returns custom category names in insertion order.
func (s *Store) GetCategories(ctx context.Context) ([]string, error) {
	names, err := s.client.LRange(ctx, KeyCategories, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return names, nil
}
