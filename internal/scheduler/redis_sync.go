package scheduler

import (
	"context"

	"github.com/MrSnakeDoc/toolshelf/internal/catalog"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
)

// SnapshotLoader reads the persisted catalog.
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context) (catalog.Snapshot, error)
}

// Restorer accepts a snapshot into memory.
type Restorer interface {
	Restore(snap catalog.Snapshot)
}

// RedisSyncer syncs the catalog from Redis to memory on startup
type RedisSyncer struct {
	store   SnapshotLoader
	catalog Restorer
	logger  logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store SnapshotLoader,
	cat Restorer,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:   store,
		catalog: cat,
		logger:  log,
	}
}

// Sync loads the catalog from Redis and replaces the memory state
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("syncing catalog from redis to memory")

	snap, err := rs.store.LoadSnapshot(ctx)
	if err != nil {
		return err
	}

	if len(snap.Entries) == 0 && len(snap.Categories) == 0 && len(snap.Roles) == 0 &&
		len(snap.Profiles) == 0 && len(snap.Seeded) == 0 {
		rs.logger.Info("no catalog found in redis")
		return nil
	}

	rs.catalog.Restore(snap)

	rs.logger.Info("synced catalog from redis",
		logger.Int("entries", len(snap.Entries)),
		logger.Int("categories", len(snap.Categories)))

	return nil
}
