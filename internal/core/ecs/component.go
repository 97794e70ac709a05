package ecs

import "fmt"

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
	Clear()
}

// Store is a generic typed component table indexed by entity index. Slots are
// generation-checked, and iteration runs in ascending entity index so that
// systems consume the RNG in a reproducible order.
type Store[T any] struct {
	world *World
	ids   []EntityID
	data  []*T
	count int
}

// NewStore creates a store bound to w and registers it for bulk removal.
func NewStore[T any](w *World) *Store[T] {
	s := &Store[T]{
		world: w,
		ids:   make([]EntityID, 0, 256),
		data:  make([]*T, 0, 256),
	}
	w.registry.Register(s)
	return s
}

// Set attaches c to id, overwriting any previous value. Attaching to a dead
// entity or one queued for destruction is an invariant violation.
func (s *Store[T]) Set(id EntityID, c *T) {
	if !s.world.pool.Alive(id) {
		panic(fmt.Sprintf("ecs: set %T on dead entity %s", c, id))
	}
	if s.world.Pending(id) {
		panic(fmt.Sprintf("ecs: set %T on entity %s pending destruction", c, id))
	}
	idx := int(id.Index())
	for idx >= len(s.ids) {
		s.ids = append(s.ids, 0)
		s.data = append(s.data, nil)
	}
	if s.data[idx] == nil {
		s.count++
	}
	s.ids[idx] = id
	s.data[idx] = c
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	idx := int(id.Index())
	if idx >= len(s.ids) || s.ids[idx] != id || s.data[idx] == nil {
		return nil, false
	}
	return s.data[idx], true
}

// MustGet returns the component or panics. Systems use it where the
// component is present by construction.
func (s *Store[T]) MustGet(id EntityID) *T {
	c, ok := s.Get(id)
	if !ok {
		var zero T
		panic(fmt.Sprintf("ecs: entity %s has no %T", id, zero))
	}
	return c
}

func (s *Store[T]) Remove(id EntityID) {
	idx := int(id.Index())
	if idx >= len(s.ids) || s.ids[idx] != id || s.data[idx] == nil {
		return
	}
	s.ids[idx] = 0
	s.data[idx] = nil
	s.count--
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.Get(id)
	return ok
}

func (s *Store[T]) Len() int {
	return s.count
}

// Clear drops every component in the store. Used to drain intent tables.
func (s *Store[T]) Clear() {
	for i := range s.data {
		s.ids[i] = 0
		s.data[i] = nil
	}
	s.count = 0
}

// Each calls fn for every entity holding a T, in ascending entity index.
// fn may remove the current entity's component.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for i := 0; i < len(s.data); i++ {
		if c := s.data[i]; c != nil {
			fn(s.ids[i], c)
		}
	}
}

// Entities returns a snapshot of the ids holding a T.
func (s *Store[T]) Entities() []EntityID {
	out := make([]EntityID, 0, s.count)
	s.Each(func(id EntityID, _ *T) { out = append(out, id) })
	return out
}
