package ecs

import "fmt"

// storage is the type-erased view of a Store that the World keeps per
// ComponentType.
type storage interface {
	insertAny(id EntityID, c Component)
	Remove(id EntityID)
	Has(id EntityID) bool
	Len() int
	entities() []EntityID
}

// Store is a sparse set holding every component of type T.
// Components live in a dense slice in insertion order; removal swaps the
// last element into the hole. Pointers returned by Get or a query stay
// valid until the next Insert or Remove on the same store.
type Store[T Component] struct {
	dense []T
	ids   []EntityID
	index map[EntityID]int
}

// NewStore creates an empty store.
func NewStore[T Component]() *Store[T] {
	return &Store[T]{
		dense: make([]T, 0, 64),
		ids:   make([]EntityID, 0, 64),
		index: make(map[EntityID]int, 64),
	}
}

// Insert stores c for id, replacing any previous value in place.
func (s *Store[T]) Insert(id EntityID, c T) {
	if i, ok := s.index[id]; ok {
		s.dense[i] = c
		return
	}
	s.index[id] = len(s.dense)
	s.dense = append(s.dense, c)
	s.ids = append(s.ids, id)
}

func (s *Store[T]) insertAny(id EntityID, c Component) {
	v, ok := c.(T)
	if !ok {
		var zero T
		panic(fmt.Sprintf("ecs: component type %d is registered as %T, got %T", c.Type(), zero, c))
	}
	s.Insert(id, v)
}

// Get returns a pointer to id's component.
func (s *Store[T]) Get(id EntityID) (*T, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return &s.dense[i], true
}

// Remove deletes id's component. Removing an absent component is a no-op.
func (s *Store[T]) Remove(id EntityID) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	last := len(s.dense) - 1
	if i != last {
		s.dense[i] = s.dense[last]
		s.ids[i] = s.ids[last]
		s.index[s.ids[i]] = i
	}
	var zero T
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.ids = s.ids[:last]
	delete(s.index, id)
}

// Has reports whether id has a component in this store.
func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Store[T]) entities() []EntityID { return s.ids }

// Len returns the number of stored components.
func (s *Store[T]) Len() int { return len(s.dense) }
