package index

import (
	"sync"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
)

// CategorySet holds category names. Built-in categories are always present
// and listed first; the rest follow in insertion order. Lookups are
// case-insensitive.
type CategorySet struct {
	mu     sync.RWMutex
	names  []string          // display names, built-ins first
	byKey  map[string]string // lowercase key -> display name
	custom int               // number of non built-in names
}

// NewCategorySet creates a set seeded with the built-in categories
func NewCategorySet() *CategorySet {
	s := &CategorySet{}
	s.reset()
	return s
}

func (s *CategorySet) reset() {
	s.names = make([]string, 0, len(domain.DefaultCategories))
	s.byKey = make(map[string]string, len(domain.DefaultCategories))
	s.custom = 0
	for _, name := range domain.DefaultCategories {
		s.names = append(s.names, name)
		s.byKey[name] = name
	}
}

// Load replaces the custom categories. Built-ins are re-seeded and any
// built-in or duplicate name in the input is skipped.
func (s *CategorySet) Load(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	for _, name := range names {
		s.addLocked(name)
	}
}

// Lookup returns the display name stored for name (any case)
func (s *CategorySet) Lookup(name string) (string, bool) {
	_, key := domain.NormalizeCategory(name)

	s.mu.RLock()
	defer s.mu.RUnlock()

	display, ok := s.byKey[key]
	return display, ok
}

// Add stores a new category. It returns false if a name with the same key
// already exists.
func (s *CategorySet) Add(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addLocked(name)
}

func (s *CategorySet) addLocked(name string) bool {
	display, key := domain.NormalizeCategory(name)
	if key == "" {
		return false
	}
	if _, exists := s.byKey[key]; exists {
		return false
	}
	s.names = append(s.names, display)
	s.byKey[key] = display
	s.custom++
	return true
}

// Remove deletes a category by name (any case). Built-ins are never
// removed. It returns false if nothing was removed.
func (s *CategorySet) Remove(name string) bool {
	_, key := domain.NormalizeCategory(name)
	if domain.IsDefaultCategory(key) {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byKey[key]; !exists {
		return false
	}
	delete(s.byKey, key)
	for i, existing := range s.names {
		_, k := domain.NormalizeCategory(existing)
		if k == key {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	s.custom--
	return true
}

// Names returns all category names, built-ins first
func (s *CategorySet) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// Custom returns the admin-added category names in insertion order
func (s *CategorySet) Custom() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, s.custom)
	copy(names, s.names[len(s.names)-s.custom:])
	return names
}
