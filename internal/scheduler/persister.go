package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrSnakeDoc/toolshelf/internal/catalog"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
)

// DefaultCheckpointInterval is how often a full snapshot is written when
// a change could not be persisted.
const DefaultCheckpointInterval = time.Hour

// ChangeStore is the durable side of the catalog.
type ChangeStore interface {
	Apply(ctx context.Context, c catalog.Change) error
	ReplaceSnapshot(ctx context.Context, snap catalog.Snapshot) error
}

// Persister drains catalog changes into Redis from a single goroutine.
// Memory stays authoritative: a change that can not be queued or written
// marks the store dirty, and the next checkpoint rewrites everything from
// the snapshot source.
type Persister struct {
	store    ChangeStore
	snapshot func() catalog.Snapshot
	logger   logger.Logger

	queue      chan catalog.Change
	checkpoint chan struct{}
	interval   time.Duration
	timeout    time.Duration

	dirty   atomic.Bool
	stopped atomic.Bool
	stopCh  chan struct{}
	done    sync.WaitGroup
}

// NewPersister creates a persister with room for queueSize pending changes.
func NewPersister(
	store ChangeStore,
	snapshot func() catalog.Snapshot,
	log logger.Logger,
	queueSize int,
	interval time.Duration,
	timeout time.Duration,
) *Persister {
	if interval <= 0 {
		interval = DefaultCheckpointInterval
	}
	if queueSize <= 0 {
		queueSize = 1
	}

	return &Persister{
		store:      store,
		snapshot:   snapshot,
		logger:     log,
		queue:      make(chan catalog.Change, queueSize),
		checkpoint: make(chan struct{}, 1),
		interval:   interval,
		timeout:    timeout,
		stopCh:     make(chan struct{}),
	}
}

// Record queues a change without blocking. It is called with catalog
// locks held.
func (p *Persister) Record(c catalog.Change) {
	if p.stopped.Load() {
		p.dirty.Store(true)
		return
	}
	select {
	case p.queue <- c:
	default:
		p.dirty.Store(true)
		p.logger.Warn("persist queue full, change will be checkpointed",
			logger.String("kind", string(c.Kind)),
			logger.String("key", c.Key))
	}
}

// RequestCheckpoint asks the worker for a full rewrite.
func (p *Persister) RequestCheckpoint() {
	p.dirty.Store(true)
	select {
	case p.checkpoint <- struct{}{}:
	default:
	}
}

// Dirty reports whether Redis may lag behind memory beyond the queue.
func (p *Persister) Dirty() bool {
	return p.dirty.Load()
}

// Start begins draining the queue
func (p *Persister) Start(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	p.done.Add(1)
	go func() {
		defer p.done.Done()
		defer ticker.Stop()
		for {
			select {
			case c := <-p.queue:
				p.apply(ctx, c)
			case <-ticker.C:
				if p.dirty.Load() {
					p.runCheckpoint(ctx)
				}
			case <-p.checkpoint:
				p.runCheckpoint(ctx)
			case <-p.stopCh:
				p.drain(ctx)
				return
			case <-ctx.Done():
				p.drain(context.WithoutCancel(ctx))
				return
			}
		}
	}()

	return nil
}

// Stop flushes pending changes and stops the worker
func (p *Persister) Stop() {
	if p.stopped.Swap(true) {
		return
	}
	close(p.stopCh)
	p.done.Wait()
}

// drain writes what is left in the queue, then a final checkpoint if
// anything was lost along the way.
func (p *Persister) drain(ctx context.Context) {
	p.applyQueued(ctx)
	if p.dirty.Load() {
		p.runCheckpoint(ctx)
	}
}

// applyQueued writes every change currently queued, without waiting for
// more.
func (p *Persister) applyQueued(ctx context.Context) {
	for {
		select {
		case c := <-p.queue:
			p.apply(ctx, c)
		default:
			return
		}
	}
}

func (p *Persister) apply(ctx context.Context, c catalog.Change) {
	opCtx, cancel := p.opContext(ctx)
	defer cancel()

	if err := p.store.Apply(opCtx, c); err != nil {
		p.dirty.Store(true)
		p.logger.Warn("failed to persist change",
			logger.String("kind", string(c.Kind)),
			logger.String("key", c.Key),
			logger.Error(err))
		return
	}
	p.logger.Debug("change persisted",
		logger.String("kind", string(c.Kind)),
		logger.String("key", c.Key))
}

// runCheckpoint rewrites the store from a fresh snapshot. Changes still
// queued are older than that snapshot and must not land after it, so they
// are written first. A change dropped while the checkpoint runs schedules
// another one.
func (p *Persister) runCheckpoint(ctx context.Context) {
	p.applyQueued(ctx)
	p.dirty.Store(false)
	snap := p.snapshot()

	opCtx, cancel := p.opContext(ctx)
	defer cancel()

	if err := p.store.ReplaceSnapshot(opCtx, snap); err != nil {
		p.dirty.Store(true)
		p.logger.Error("checkpoint failed", logger.Error(err))
		return
	}
	p.logger.Info("checkpoint written",
		logger.Int("entries", len(snap.Entries)),
		logger.Int("categories", len(snap.Categories)))

	if p.dirty.Load() && !p.stopped.Load() {
		select {
		case p.checkpoint <- struct{}{}:
		default:
		}
	}
}

func (p *Persister) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}
