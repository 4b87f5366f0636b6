package catalog

import (
	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
)

// Categories lists category names: built-ins first, then insertion order.
func (s *Service) Categories() []string {
	return s.categories.Names()
}

// AddCategory creates a category and returns its stored name.
func (s *Service) AddCategory(actor domain.Caller, name string) (string, error) {
	s.roleMu.RLock()
	defer s.roleMu.RUnlock()

	if err := s.authorize(actor, "add category"); err != nil {
		return "", err
	}

	display, key := domain.NormalizeCategory(name)
	if key == "" {
		return "", domain.Errorf(domain.ErrInvalidArgument, "category name is required")
	}

	s.catalogMu.Lock()
	defer s.catalogMu.Unlock()

	if !s.categories.Add(display) {
		return "", domain.Errorf(domain.ErrDuplicateCategory, "category %q already exists", display)
	}
	s.record(Change{Kind: ChangeAddCategory, Key: display})

	s.logger.Info("category added",
		logger.String("actor", actor.Key),
		logger.String("category", display))
	return display, nil
}

// RemoveCategory deletes a custom category. Built-ins are protected and a
// category still referenced by an entry can not be removed.
func (s *Service) RemoveCategory(actor domain.Caller, name string) error {
	s.roleMu.RLock()
	defer s.roleMu.RUnlock()

	if err := s.authorize(actor, "remove category"); err != nil {
		return err
	}

	display, key := domain.NormalizeCategory(name)
	if domain.IsDefaultCategory(key) {
		return domain.Errorf(domain.ErrProtectedCategory, "%q is a default category", display)
	}

	s.catalogMu.Lock()
	defer s.catalogMu.Unlock()

	stored, ok := s.categories.Lookup(key)
	if !ok {
		return domain.Errorf(domain.ErrNotFound, "category %q does not exist", display)
	}

	if s.entries.Any(inCategory(key)) {
		return domain.Errorf(domain.ErrCategoryInUse, "category %q still has entries", stored)
	}

	s.categories.Remove(key)
	s.record(Change{Kind: ChangeRemoveCategory, Key: stored})

	s.logger.Info("category removed",
		logger.String("actor", actor.Key),
		logger.String("category", stored))
	return nil
}

// CategoryCounts returns the number of entries per category, in category
// order, including categories with no entries.
func (s *Service) CategoryCounts() []CategoryCount {
	names := s.categories.Names()
	byKey := make(map[string]int, len(names))
	for _, e := range s.entries.All() {
		_, key := domain.NormalizeCategory(e.Category)
		byKey[key]++
	}

	counts := make([]CategoryCount, 0, len(names))
	for _, name := range names {
		_, key := domain.NormalizeCategory(name)
		counts = append(counts, CategoryCount{Name: name, Count: byKey[key]})
	}
	return counts
}

func inCategory(key string) func(domain.Entry) bool {
	return func(e domain.Entry) bool {
		_, k := domain.NormalizeCategory(e.Category)
		return k == key
	}
}
