package sim

import (
	"cmp"
	"fmt"
	"slices"
)

// Store owns the live entities of a session, keyed by id with a per-category
// index kept in id order. Query methods return copies of the index so callers
// may remove entities while iterating.
type Store struct {
	byID   map[EntityID]*Entity
	index  [categoryCount][]*Entity
	nextID EntityID
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{byID: make(map[EntityID]*Entity)}
}

// NextID allocates an id that is not live in the store.
func (s *Store) NextID() EntityID {
	for {
		s.nextID++
		if _, live := s.byID[s.nextID]; !live {
			return s.nextID
		}
	}
}

// Insert adds an entity. Fails with ErrDuplicateID if the id is already live.
func (s *Store) Insert(e *Entity) error {
	if _, live := s.byID[e.ID]; live {
		return fmt.Errorf("sim: insert %d: %w", e.ID, ErrDuplicateID)
	}
	if e.Category < 0 || e.Category >= categoryCount {
		return fmt.Errorf("sim: insert %d: %w", e.ID, ErrUnknownCategory)
	}

	s.byID[e.ID] = e
	idx := s.index[e.Category]
	pos, _ := slices.BinarySearchFunc(idx, e.ID, func(x *Entity, id EntityID) int {
		return cmp.Compare(x.ID, id)
	})
	s.index[e.Category] = slices.Insert(idx, pos, e)
	return nil
}

// Remove deletes an entity. No-op if absent.
func (s *Store) Remove(id EntityID) {
	e, ok := s.byID[id]
	if !ok {
		return
	}
	delete(s.byID, id)

	idx := s.index[e.Category]
	if pos, found := slices.BinarySearchFunc(idx, id, func(x *Entity, id EntityID) int {
		return cmp.Compare(x.ID, id)
	}); found {
		s.index[e.Category] = slices.Delete(idx, pos, pos+1)
	}
}

// Get returns the live entity with the given id.
func (s *Store) Get(id EntityID) (*Entity, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// Len returns the number of live entities.
func (s *Store) Len() int {
	return len(s.byID)
}

// Clear removes every entity. Id allocation restarts.
func (s *Store) Clear() {
	clear(s.byID)
	for i := range s.index {
		s.index[i] = nil
	}
	s.nextID = 0
}

// Category returns the live entities of one category in id order.
func (s *Store) Category(c Category) []*Entity {
	if c < 0 || c >= categoryCount {
		return nil
	}
	return slices.Clone(s.index[c])
}

// ForEach calls fn for every live entity of a category in id order.
// fn may insert or remove entities; it sees the set as it was on entry.
func (s *Store) ForEach(c Category, fn func(*Entity)) {
	for _, e := range s.Category(c) {
		fn(e)
	}
}

// All returns every live entity in id order.
func (s *Store) All() []*Entity {
	all := make([]*Entity, 0, len(s.byID))
	for i := range s.index {
		all = append(all, s.index[i]...)
	}
	slices.SortFunc(all, func(a, b *Entity) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return all
}

// CountSource returns how many live entities were spawned by a table.
func (s *Store) CountSource(source string) int {
	n := 0
	for _, e := range s.byID {
		if e.Source == source {
			n++
		}
	}
	return n
}
