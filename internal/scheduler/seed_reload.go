package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/toolshelf/internal/catalog"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
	"github.com/MrSnakeDoc/toolshelf/internal/sources/seed"
)

// Importer applies seed data out-of-band.
type Importer interface {
	Import(s catalog.Seed) error
}

// SeedReloader imports the seed file at start-up, then again on every
// interval and on manual trigger. Import is idempotent, so a reload only
// adds what is new in the file.
type SeedReloader struct {
	loader        *seed.Loader
	mapper        *seed.Mapper
	importer      Importer
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewSeedReloader creates a new seed reloader. A zero interval disables
// periodic reloads.
func NewSeedReloader(
	seedFile string,
	importer Importer,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *SeedReloader {
	return &SeedReloader{
		loader:        seed.NewLoader(seedFile),
		mapper:        seed.NewMapper(),
		importer:      importer,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the seed file immediately and begins the reload loop
func (sr *SeedReloader) Start(ctx context.Context) error {
	if err := sr.Reload(ctx); err != nil {
		return fmt.Errorf("initial seed import failed: %w", err)
	}

	var tick <-chan time.Time
	var ticker *time.Ticker
	if sr.interval > 0 {
		ticker = time.NewTicker(sr.interval)
		tick = ticker.C
	}

	go func() {
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-tick:
				if err := sr.Reload(ctx); err != nil {
					sr.logger.Error("failed to reload seed file",
						logger.Error(err))
				}
			case <-sr.manualTrigger:
				sr.logger.Info("manual seed reload triggered")
				if err := sr.Reload(ctx); err != nil {
					sr.logger.Error("failed to reload seed file",
						logger.Error(err))
				}
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (sr *SeedReloader) Stop() {
	close(sr.stopCh)
}

// Reload reads the seed file and imports it into the catalog
func (sr *SeedReloader) Reload(_ context.Context) error {
	sr.logger.Info("importing seed file",
		logger.String("file", sr.loader.Path()))

	file, err := sr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load seed: %w", err)
	}

	s, err := sr.mapper.Map(file)
	if err != nil {
		return fmt.Errorf("failed to map seed: %w", err)
	}

	if err := sr.importer.Import(s); err != nil {
		return fmt.Errorf("failed to import seed: %w", err)
	}

	sr.logger.Info("seed file imported",
		logger.Int("admins", len(s.Admins)),
		logger.Int("categories", len(s.Categories)),
		logger.Int("entries", len(s.Entries)))
	return nil
}
