package ecs

import "iter"

// Get returns a pointer to entity id's component of type T.
func Get[T Component](w *World, id EntityID) (*T, bool) {
	return storeFor[T](w).Get(id)
}

// Query iterates all alive entities carrying a T and every component type
// listed in with. Iteration follows the store's dense order, which is
// insertion order until the first removal; callers must not depend on it.
// The world must not be structurally modified during iteration.
func Query[T Component](w *World, with ...ComponentType) iter.Seq2[EntityID, *T] {
	return func(yield func(EntityID, *T) bool) {
		s := storeFor[T](w)
		for i, id := range s.ids {
			if !w.alive[id] || !w.hasAll(id, with) {
				continue
			}
			if !yield(id, &s.dense[i]) {
				return
			}
		}
	}
}

// First returns the first entity Query would yield. ok is false when no
// entity matches.
func First[T Component](w *World, with ...ComponentType) (id EntityID, c *T, ok bool) {
	for id, c := range Query[T](w, with...) {
		return id, c, true
	}
	return NilEntity, nil, false
}

// Count returns the number of entities Query would yield.
func Count[T Component](w *World, with ...ComponentType) int {
	n := 0
	for range Query[T](w, with...) {
		n++
	}
	return n
}

// IDs returns all alive entities that have every listed component type.
func (w *World) IDs(types ...ComponentType) []EntityID {
	if len(types) == 0 {
		return nil
	}
	// Use the smallest store as the candidate set.
	smallest := w.stores[types[0]]
	for _, t := range types[1:] {
		s := w.stores[t]
		if s == nil {
			return nil
		}
		if smallest == nil || s.Len() < smallest.Len() {
			smallest = s
		}
	}
	if smallest == nil {
		return nil
	}
	var result []EntityID
	for _, id := range smallest.entities() {
		if w.alive[id] && w.hasAll(id, types) {
			result = append(result, id)
		}
	}
	return result
}

func (w *World) hasAll(id EntityID, types []ComponentType) bool {
	for _, t := range types {
		if !w.Has(id, t) {
			return false
		}
	}
	return true
}
