package index

import (
	"slices"
	"sync"
)

// SeedLedger remembers which seed items were already applied, so a later
// import never brings back what an admin changed or removed.
type SeedLedger struct {
	mu   sync.RWMutex
	keys map[string]struct{}
}

// NewSeedLedger creates an empty ledger
func NewSeedLedger() *SeedLedger {
	return &SeedLedger{keys: make(map[string]struct{})}
}

// Load replaces every recorded key
func (l *SeedLedger) Load(keys []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.keys = make(map[string]struct{}, len(keys))
	for _, k := range keys {
		l.keys[k] = struct{}{}
	}
}

// Has reports whether key was recorded
func (l *SeedLedger) Has(key string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.keys[key]
	return ok
}

// Mark records key. It returns false if key was already there.
func (l *SeedLedger) Mark(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.keys[key]; ok {
		return false
	}
	l.keys[key] = struct{}{}
	return true
}

// All returns every recorded key, sorted
func (l *SeedLedger) All() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]string, 0, len(l.keys))
	for k := range l.keys {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
