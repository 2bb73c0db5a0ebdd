// Package registry provides the in-memory entity store backing every
// repository in the front desk service. One Store is instantiated per
// entity kind and shared for the lifetime of the process; there is no
// durability across restarts.
package registry

import (
	"sync"

	"github.com/google/uuid"
)

// Entity is anything the store can hold.
type Entity interface {
	EntityID() uuid.UUID
}

// Store is a mutex-guarded map keyed by entity ID. Insertion order is
// preserved so that All returns a stable snapshot.
type Store[T Entity] struct {
	mu    sync.RWMutex
	items map[uuid.UUID]T
	order []uuid.UUID
}

// NewStore creates an empty store.
func NewStore[T Entity]() *Store[T] {
	return &Store[T]{items: make(map[uuid.UUID]T)}
}

// Add inserts the entity. Duplicate IDs are a silent no-op: IDs are
// generated internally, so a collision means the caller already holds
// the record.
func (s *Store[T]) Add(e T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := e.EntityID()
	if _, ok := s.items[id]; ok {
		return
	}
	s.items[id] = e
	s.order = append(s.order, id)
}

// Get returns the entity with the given ID.
func (s *Store[T]) Get(id uuid.UUID) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.items[id]
	return e, ok
}

// All returns a snapshot of every stored entity in insertion order.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.items))
	for _, id := range s.order {
		if e, ok := s.items[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Update replaces the stored record keyed by the entity's own ID. Absent
// IDs are a no-op; callers are expected to have confirmed existence.
func (s *Store[T]) Update(e T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := e.EntityID()
	if _, ok := s.items[id]; !ok {
		return
	}
	s.items[id] = e
}

// Remove deletes the entity if present, no-op otherwise.
func (s *Store[T]) Remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return
	}
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of stored entities.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
