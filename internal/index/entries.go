package index

import (
	"sync"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
)

// EntryIndex is the in-memory, insertion-ordered collection of entries.
// Reads return copies, so callers never observe a later mutation.
type EntryIndex struct {
	mu    sync.RWMutex
	order []string                // IDs in insertion order
	byID  map[string]domain.Entry // ID -> Entry
}

// NewEntryIndex creates an empty entry index
func NewEntryIndex() *EntryIndex {
	return &EntryIndex{
		byID: make(map[string]domain.Entry),
	}
}

// Load replaces all entries, keeping the given order
func (idx *EntryIndex) Load(entries []domain.Entry) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.order = make([]string, 0, len(entries))
	idx.byID = make(map[string]domain.Entry, len(entries))
	for _, e := range entries {
		if _, dup := idx.byID[e.ID]; dup {
			continue
		}
		idx.order = append(idx.order, e.ID)
		idx.byID[e.ID] = e
	}
}

// Get retrieves an entry by ID
func (idx *EntryIndex) Get(id string) (domain.Entry, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	e, ok := idx.byID[id]
	return e, ok
}

// Insert appends a new entry. It returns false if the ID is already taken.
func (idx *EntryIndex) Insert(e domain.Entry) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, exists := idx.byID[e.ID]; exists {
		return false
	}
	idx.order = append(idx.order, e.ID)
	idx.byID[e.ID] = e
	return true
}

// Replace overwrites an existing entry in place, keeping its position.
// It returns false if the ID is unknown.
func (idx *EntryIndex) Replace(e domain.Entry) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, exists := idx.byID[e.ID]; !exists {
		return false
	}
	idx.byID[e.ID] = e
	return true
}

// Delete removes an entry. It returns false if the ID is unknown.
func (idx *EntryIndex) Delete(id string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, exists := idx.byID[id]; !exists {
		return false
	}
	delete(idx.byID, id)
	for i, existing := range idx.order {
		if existing == id {
			idx.order = append(idx.order[:i], idx.order[i+1:]...)
			break
		}
	}
	return true
}

// All returns every entry in insertion order
func (idx *EntryIndex) All() []domain.Entry {
	return idx.Filter(nil)
}

// Filter returns the entries accepted by keep, in insertion order.
// A nil keep accepts everything.
func (idx *EntryIndex) Filter(keep func(domain.Entry) bool) []domain.Entry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	entries := make([]domain.Entry, 0, len(idx.order))
	for _, id := range idx.order {
		e := idx.byID[id]
		if keep == nil || keep(e) {
			entries = append(entries, e)
		}
	}
	return entries
}

// Any reports whether at least one entry satisfies match
func (idx *EntryIndex) Any(match func(domain.Entry) bool) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	for _, e := range idx.byID {
		if match(e) {
			return true
		}
	}
	return false
}

// Count returns the number of entries in the index
func (idx *EntryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.byID)
}
