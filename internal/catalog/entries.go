package catalog

import (
	"strings"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
)

// maxIDAttempts bounds ID regeneration on the (practically impossible)
// event of a collision.
const maxIDAttempts = 3

// AddEntry creates an entry and returns its new ID.
func (s *Service) AddEntry(actor domain.Caller, in domain.EntryInput) (string, error) {
	s.roleMu.RLock()
	defer s.roleMu.RUnlock()

	if err := s.authorize(actor, "add entry"); err != nil {
		return "", err
	}
	if err := domain.ValidateEntryInput(in); err != nil {
		return "", err
	}

	s.catalogMu.Lock()
	defer s.catalogMu.Unlock()

	category, err := s.resolveCategory(in.Category)
	if err != nil {
		return "", err
	}
	in.Category = category

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		entry := in.ToEntry(s.newID())
		if entry.ID == "" || !s.entries.Insert(entry) {
			continue
		}
		s.record(Change{Kind: ChangePutEntry, Key: entry.ID, Entry: entry, Created: true})

		s.logger.Info("entry added",
			logger.String("actor", actor.Key),
			logger.String("id", entry.ID),
			logger.String("name", entry.Name),
			logger.String("category", entry.Category))
		return entry.ID, nil
	}

	s.logger.Error("entry id generator kept colliding",
		logger.Int("attempts", maxIDAttempts))
	return "", domain.Errorf(domain.ErrInvalidArgument, "could not allocate an entry id")
}

// UpdateEntry replaces every field of an existing entry. The ID is kept.
func (s *Service) UpdateEntry(actor domain.Caller, id string, in domain.EntryInput) error {
	s.roleMu.RLock()
	defer s.roleMu.RUnlock()

	if err := s.authorize(actor, "update entry"); err != nil {
		return err
	}
	if err := domain.ValidateEntryInput(in); err != nil {
		return err
	}

	s.catalogMu.Lock()
	defer s.catalogMu.Unlock()

	if _, ok := s.entries.Get(id); !ok {
		return domain.Errorf(domain.ErrNotFound, "entry %q does not exist", id)
	}

	category, err := s.resolveCategory(in.Category)
	if err != nil {
		return err
	}
	in.Category = category

	entry := in.ToEntry(id)
	s.entries.Replace(entry)
	s.record(Change{Kind: ChangePutEntry, Key: id, Entry: entry})

	s.logger.Info("entry updated",
		logger.String("actor", actor.Key),
		logger.String("id", id))
	return nil
}

// RemoveEntry deletes an entry for good.
func (s *Service) RemoveEntry(actor domain.Caller, id string) error {
	s.roleMu.RLock()
	defer s.roleMu.RUnlock()

	if err := s.authorize(actor, "remove entry"); err != nil {
		return err
	}

	s.catalogMu.Lock()
	defer s.catalogMu.Unlock()

	if !s.entries.Delete(id) {
		return domain.Errorf(domain.ErrNotFound, "entry %q does not exist", id)
	}
	s.record(Change{Kind: ChangeDeleteEntry, Key: id})

	s.logger.Info("entry removed",
		logger.String("actor", actor.Key),
		logger.String("id", id))
	return nil
}

// Entry returns one entry by ID.
func (s *Service) Entry(id string) (domain.Entry, error) {
	e, ok := s.entries.Get(id)
	if !ok {
		return domain.Entry{}, domain.Errorf(domain.ErrNotFound, "entry %q does not exist", id)
	}
	return e, nil
}

// Entries returns every entry in insertion order.
func (s *Service) Entries() []domain.Entry {
	return s.entries.All()
}

// EntriesByCategory returns the entries of a category (any case). An
// unknown or empty category yields an empty slice.
func (s *Service) EntriesByCategory(category string) []domain.Entry {
	_, key := domain.NormalizeCategory(category)
	if key == "" {
		return []domain.Entry{}
	}
	return s.entries.Filter(inCategory(key))
}

// FeaturedEntries returns the featured entries in insertion order.
func (s *Service) FeaturedEntries() []domain.Entry {
	return s.entries.Filter(func(e domain.Entry) bool { return e.Featured })
}

// SearchEntries ranks entries against a free-text query on name and
// description, optionally restricted to one category. A blank query
// returns the (filtered) entries in insertion order.
func (s *Service) SearchEntries(query, category string) []domain.Entry {
	entries := s.entries.All()
	if strings.TrimSpace(category) != "" {
		entries = s.EntriesByCategory(category)
	}

	if strings.TrimSpace(query) == "" {
		return entries
	}

	ranked := domain.RankEntries(query, entries)
	result := make([]domain.Entry, 0, len(ranked))
	for _, c := range ranked {
		result = append(result, c.Entry)
	}
	return result
}

// resolveCategory maps a category name (any case) to its stored spelling.
// Callers hold catalogMu.
func (s *Service) resolveCategory(name string) (string, error) {
	stored, ok := s.categories.Lookup(name)
	if !ok {
		return "", domain.Errorf(domain.ErrInvalidCategory, "category %q does not exist", strings.TrimSpace(name))
	}
	return stored, nil
}
