package ecs

// World is the top-level ECS container. It owns the entity pool, the component
// registry, and a deferred destruction queue flushed by the cleanup phase each turn.
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []EntityID
	pending      map[EntityID]struct{}
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 64),
		pending:      make(map[EntityID]struct{}, 64),
	}
}

func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Pending reports whether id is queued for destruction this tick.
func (w *World) Pending(id EntityID) bool {
	_, ok := w.pending[id]
	return ok
}

// MarkForDestruction queues an entity for end-of-tick cleanup. Marking the
// same entity twice within a tick is a no-op.
func (w *World) MarkForDestruction(id EntityID) {
	if _, ok := w.pending[id]; ok {
		return
	}
	w.pending[id] = struct{}{}
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue destroys all queued entities and clears their components.
func (w *World) FlushDestroyQueue() {
	for _, id := range w.destroyQueue {
		w.registry.RemoveAll(id)
		w.pool.Destroy(id)
		delete(w.pending, id)
	}
	w.destroyQueue = w.destroyQueue[:0]
}

// Each calls fn for every live entity in ascending index order.
func (w *World) Each(fn func(EntityID)) {
	w.pool.Each(fn)
}

// Entities returns every live entity.
func (w *World) Entities() []EntityID {
	out := make([]EntityID, 0, w.pool.Len())
	w.pool.Each(func(id EntityID) { out = append(out, id) })
	return out
}

// Reset destroys every entity immediately and empties all stores.
func (w *World) Reset() {
	w.registry.ClearAll()
	w.pool = NewEntityPool()
	w.destroyQueue = w.destroyQueue[:0]
	w.pending = make(map[EntityID]struct{}, 64)
}

// Generations returns the pool's per-slot generations for a snapshot.
func (w *World) Generations() []uint32 {
	return w.pool.Generations()
}

// Restore replaces the live entity set with ids, puts every slot back at its
// saved generation and empties all stores.
func (w *World) Restore(ids []EntityID, generations []uint32) {
	w.Reset()
	w.pool.Restore(ids, generations)
}
