package store

import (
	"sync"

	"github.com/i474232898/iss-finder/internal/sky"
)

// MemoryLocationStore keeps the latest viewer location in process memory.
// Writes are last-writer-wins; the lock only keeps latitude and longitude
// from being read half-updated. Any request may observe a location written
// by an unrelated request.
type MemoryLocationStore struct {
	mu  sync.RWMutex
	loc sky.Coordinates

	// initial is restored by Reset.
	initial sky.Coordinates
}

// NewMemoryLocationStore creates a store seeded with the default location.
func NewMemoryLocationStore(initial sky.Coordinates) *MemoryLocationStore {
	return &MemoryLocationStore{
		loc:     initial,
		initial: initial,
	}
}

// Get returns the current viewer location.
func (s *MemoryLocationStore) Get() sky.Coordinates {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loc
}

// Set overwrites the viewer location.
func (s *MemoryLocationStore) Set(loc sky.Coordinates) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loc = loc
}

// Reset restores the location the store was created with.
func (s *MemoryLocationStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loc = s.initial
}
