package catalog

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
)

// Import applies seed data without authorization. Every seed item is
// applied at most once per store: once an admin, category or entry has
// been seeded (or found already present), later imports leave it alone,
// so removals and demotions made at runtime survive reloads and restarts.
func (s *Service) Import(seed Seed) error {
	s.SeedAdmins(seed.Admins)

	s.catalogMu.Lock()
	defer s.catalogMu.Unlock()

	addedCategories := 0
	for _, name := range seed.Categories {
		display, key := domain.NormalizeCategory(name)
		if key == "" {
			continue
		}
		marker := categoryMarker(key)
		if s.seeded.Has(marker) {
			continue
		}
		if s.categories.Add(display) {
			s.record(Change{Kind: ChangeAddCategory, Key: display})
			addedCategories++
		}
		s.markSeeded(marker)
	}

	addedEntries := 0
	for i, in := range seed.Entries {
		if err := domain.ValidateEntryInput(in); err != nil {
			return fmt.Errorf("seed entry %d: %w", i, err)
		}
		marker := entryMarker(in)
		if s.seeded.Has(marker) {
			continue
		}
		category, err := s.resolveCategory(in.Category)
		if err != nil {
			return fmt.Errorf("seed entry %d (%s): %w", i, in.Name, err)
		}
		in.Category = category

		if !s.entries.Any(sameEntry(in)) {
			entry := in.ToEntry(s.newID())
			if !s.entries.Insert(entry) {
				return fmt.Errorf("seed entry %d (%s): %w", i, in.Name,
					domain.Errorf(domain.ErrInvalidArgument, "duplicate entry id"))
			}
			s.record(Change{Kind: ChangePutEntry, Key: entry.ID, Entry: entry, Created: true})
			addedEntries++
		}
		s.markSeeded(marker)
	}

	s.logger.Info("seed imported",
		logger.Int("categories_added", addedCategories),
		logger.Int("entries_added", addedEntries))
	return nil
}

// markSeeded records a seed marker. Callers hold the lock guarding the
// item the marker stands for.
func (s *Service) markSeeded(marker string) {
	if s.seeded.Mark(marker) {
		s.record(Change{Kind: ChangeSeedMark, Key: marker})
	}
}

func adminMarker(key string) string {
	return "admin:" + key
}

func categoryMarker(key string) string {
	return "category:" + key
}

func entryMarker(in domain.EntryInput) string {
	_, key := domain.NormalizeCategory(in.Category)
	return "entry:" + key + "/" + strings.ToLower(strings.TrimSpace(in.Name))
}

func sameEntry(in domain.EntryInput) func(domain.Entry) bool {
	name := strings.ToLower(strings.TrimSpace(in.Name))
	_, key := domain.NormalizeCategory(in.Category)
	return func(e domain.Entry) bool {
		_, k := domain.NormalizeCategory(e.Category)
		return k == key && strings.ToLower(strings.TrimSpace(e.Name)) == name
	}
}
