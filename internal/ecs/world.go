package ecs

import "fmt"

// World is the central entity registry and component store.
// It is not safe for concurrent use; the simulation goroutine owns it.
type World struct {
	nextID EntityID
	alive  map[EntityID]bool
	count  int
	stores map[ComponentType]storage
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		nextID: 1,
		alive:  make(map[EntityID]bool),
		stores: make(map[ComponentType]storage),
	}
}

// CreateEntity mints a new entity ID and marks it alive.
func (w *World) CreateEntity() EntityID {
	id := w.nextID
	w.nextID++
	w.alive[id] = true
	w.count++
	return id
}

// Spawn creates an entity carrying the given component bundle.
func (w *World) Spawn(bundle ...Component) EntityID {
	id := w.CreateEntity()
	for _, c := range bundle {
		w.Add(id, c)
	}
	return id
}

// DestroyEntity marks the entity dead and removes all its components.
func (w *World) DestroyEntity(id EntityID) {
	if !w.alive[id] {
		return
	}
	w.alive[id] = false
	w.count--
	for _, s := range w.stores {
		s.Remove(id)
	}
}

// Alive reports whether the entity is alive.
func (w *World) Alive(id EntityID) bool {
	return w.alive[id]
}

// Len returns the number of live entities.
func (w *World) Len() int { return w.count }

// Add attaches a component to an entity, replacing one of the same type.
func (w *World) Add(id EntityID, c Component) {
	t := c.Type()
	s := w.stores[t]
	if s == nil {
		// Untyped until the first typed access; see storeFor.
		s = NewStore[Component]()
		w.stores[t] = s
	}
	s.insertAny(id, c)
}

// Remove detaches a component from an entity.
func (w *World) Remove(id EntityID, t ComponentType) {
	if s := w.stores[t]; s != nil {
		s.Remove(id)
	}
}

// Has reports whether entity id has a component of the given type.
func (w *World) Has(id EntityID, t ComponentType) bool {
	s := w.stores[t]
	return s != nil && s.Has(id)
}

// Register returns the typed store for T, creating it if needed.
func Register[T Component](w *World) *Store[T] {
	return storeFor[T](w)
}

// storeFor returns the typed store for T. A store created by an untyped Add
// is converted in place, keeping its iteration order.
func storeFor[T Component](w *World) *Store[T] {
	var zero T
	t := zero.Type()
	switch s := w.stores[t].(type) {
	case *Store[T]:
		return s
	case nil:
		typed := NewStore[T]()
		w.stores[t] = typed
		return typed
	case *Store[Component]:
		typed := NewStore[T]()
		for i, id := range s.ids {
			typed.insertAny(id, s.dense[i])
		}
		w.stores[t] = typed
		return typed
	default:
		panic(fmt.Sprintf("ecs: component type %d already registered as %T", t, s))
	}
}
