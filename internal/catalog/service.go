// Package catalog owns entries, categories, roles and profiles and enforces
// who may mutate them. It is the only writer of the in-memory indexes.
package catalog

import (
	"sync"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/index"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
)

// Journal receives every successful mutation, in the order it was applied.
// Implementations must not call back into the Service.
type Journal interface {
	Record(change Change)
}

// Service is the catalog façade. All methods are safe for concurrent use.
//
// Categories and entries reference each other, so their mutations share
// catalogMu. Roles and profiles have their own locks. A gated mutation
// holds roleMu for reading from the authorization check to its last
// write, so a concurrent demotion orders strictly before or after it.
// Lock order is roleMu, then catalogMu. Reads never take these locks;
// they go straight to the indexes.
type Service struct {
	catalogMu sync.Mutex
	roleMu    sync.RWMutex
	profileMu sync.Mutex

	entries    *index.EntryIndex
	categories *index.CategorySet
	roles      *index.RoleTable
	profiles   *index.ProfileTable
	seeded     *index.SeedLedger

	journal Journal
	newID   func() string
	logger  logger.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithJournal sets the sink for applied mutations.
func WithJournal(j Journal) Option {
	return func(s *Service) { s.journal = j }
}

// WithIDGenerator replaces the entry ID generator (random UUIDs by default).
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

// New creates a Service with the built-in categories and nothing else.
func New(log logger.Logger, opts ...Option) *Service {
	s := &Service{
		entries:    index.NewEntryIndex(),
		categories: index.NewCategorySet(),
		roles:      index.NewRoleTable(),
		profiles:   index.NewProfileTable(),
		seeded:     index.NewSeedLedger(),
		newID:      uuid.NewString,
		logger:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore replaces the whole state with a snapshot, typically read back
// from durable storage at start-up. Nothing is journaled.
func (s *Service) Restore(snap Snapshot) {
	s.roleMu.Lock()
	s.catalogMu.Lock()
	s.categories.Load(snap.Categories)
	s.entries.Load(snap.Entries)
	s.roles.Load(snap.Roles)
	s.seeded.Load(snap.Seeded)
	s.catalogMu.Unlock()
	s.roleMu.Unlock()

	s.profileMu.Lock()
	s.profiles.Load(snap.Profiles)
	s.profileMu.Unlock()

	s.logger.Info("catalog restored",
		logger.Int("entries", len(snap.Entries)),
		logger.Int("categories", len(snap.Categories)),
		logger.Int("roles", len(snap.Roles)),
		logger.Int("profiles", len(snap.Profiles)))
}

// Snapshot copies the whole state. Each collection is read under its
// writer lock so the copy never shows a half-applied mutation. The seed
// ledger is written under roleMu or catalogMu, so it is read under both.
func (s *Service) Snapshot() Snapshot {
	var snap Snapshot

	s.roleMu.Lock()
	s.catalogMu.Lock()
	snap.Entries = s.entries.All()
	snap.Categories = s.categories.Custom()
	snap.Roles = s.roles.All()
	snap.Seeded = s.seeded.All()
	s.catalogMu.Unlock()
	s.roleMu.Unlock()

	s.profileMu.Lock()
	snap.Profiles = s.profiles.All()
	s.profileMu.Unlock()

	return snap
}

// Stats returns collection sizes, for status endpoints.
func (s *Service) Stats() Stats {
	return Stats{
		Entries:    s.entries.Count(),
		Categories: len(s.categories.Names()),
		Admins:     s.roles.CountRole(domain.RoleAdmin),
		Profiles:   s.profiles.Count(),
	}
}

// record forwards a change to the journal. Callers hold the lock of the
// collection they mutated, so the journal sees changes in applied order.
func (s *Service) record(c Change) {
	if s.journal != nil {
		s.journal.Record(c)
	}
}
