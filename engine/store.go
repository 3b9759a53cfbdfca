package engine

import (
	"slices"
	"sync"

	"github.com/lixenwraith/warehouse/core"
)

// Store holds one component type keyed by entity
// The id index stays sorted so every system walks entities in ascending id order
type Store[T any] struct {
	mu         sync.RWMutex
	components map[core.Entity]T
	ids        []core.Entity
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		components: make(map[core.Entity]T),
		ids:        make([]core.Entity, 0, 64),
	}
}

// Set inserts or replaces the component of e
func (s *Store[T]) Set(e core.Entity, val T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.components[e]; !exists {
		// Ids are handed out increasing, so this is almost always an append
		i, _ := slices.BinarySearch(s.ids, e)
		s.ids = slices.Insert(s.ids, i, e)
	}
	s.components[e] = val
}

func (s *Store[T]) Get(e core.Entity) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.components[e]
	return val, ok
}

// Remove drops the component of e, no-op if absent
func (s *Store[T]) Remove(e core.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.components[e]; !exists {
		return
	}
	delete(s.components, e)
	if i, found := slices.BinarySearch(s.ids, e); found {
		s.ids = slices.Delete(s.ids, i, i+1)
	}
}

func (s *Store[T]) Has(e core.Entity) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.components[e]
	return ok
}

// All returns a copy of the holders in ascending id order
func (s *Store[T]) All() []core.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ids)
}

func (s *Store[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// Clear empties the store
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.components)
	s.ids = s.ids[:0]
}
