package ecs

import "fmt"

// EntityID encodes a 32-bit index in the lower bits and a 32-bit generation
// in the upper bits. Generation increments on destroy to invalidate stale refs.
// Generations start at 1, so the zero EntityID never names a live entity.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

func (id EntityID) String() string {
	return fmt.Sprintf("%d:%d", id.Index(), id.Generation())
}

// EntityPool manages entity allocation with generational indices and a free list.
type EntityPool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
	alive       []bool
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		generations: make([]uint32, 0, 1024),
		freeList:    make([]uint32, 0, 256),
		alive:       make([]bool, 0, 1024),
	}
}

func (p *EntityPool) Create() EntityID {
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		p.alive[idx] = true
		return NewEntityID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	p.generations = append(p.generations, 1)
	p.alive = append(p.alive, true)
	return NewEntityID(idx, p.generations[idx])
}

func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx >= p.nextIndex {
		return false
	}
	return p.alive[idx] && p.generations[idx] == id.Generation()
}

// Destroy releases id. Destroying a stale or unknown id is a double free and panics.
func (p *EntityPool) Destroy(id EntityID) {
	if !p.Alive(id) {
		panic(fmt.Sprintf("ecs: destroy of dead entity %s", id))
	}
	idx := id.Index()
	p.generations[idx]++
	p.alive[idx] = false
	p.freeList = append(p.freeList, idx)
}

// Each calls fn for every live entity in ascending index order.
func (p *EntityPool) Each(fn func(EntityID)) {
	for idx := uint32(0); idx < p.nextIndex; idx++ {
		if p.alive[idx] {
			fn(NewEntityID(idx, p.generations[idx]))
		}
	}
}

// Len returns the number of live entities.
func (p *EntityPool) Len() int {
	return int(p.nextIndex) - len(p.freeList)
}

// Generations returns a copy of every slot's current generation, live or
// free. Snapshots store it next to the live ids.
func (p *EntityPool) Generations() []uint32 {
	return append([]uint32(nil), p.generations[:p.nextIndex]...)
}

// Restore rebuilds the pool so that exactly the given ids are alive, with
// every slot at the generation it had when generations was taken. Freed slots
// keep their bumped generation, so ids that went stale before a save stay
// dead after it.
func (p *EntityPool) Restore(ids []EntityID, generations []uint32) {
	n := uint32(len(generations))
	for _, id := range ids {
		if id.IsZero() || id.Generation() == 0 {
			panic(fmt.Sprintf("ecs: restore of invalid entity %s", id))
		}
		if id.Index() >= n || generations[id.Index()] != id.Generation() {
			panic(fmt.Sprintf("ecs: restore of entity %s disagrees with slot generations", id))
		}
	}
	p.generations = append(make([]uint32, 0, n), generations...)
	p.alive = make([]bool, n)
	p.freeList = p.freeList[:0]
	p.nextIndex = n
	for _, id := range ids {
		idx := id.Index()
		if p.alive[idx] {
			panic(fmt.Sprintf("ecs: restore of duplicate entity index %d", idx))
		}
		p.alive[idx] = true
	}
	for idx := int(n) - 1; idx >= 0; idx-- {
		if !p.alive[idx] {
			if p.generations[idx] == 0 {
				panic(fmt.Sprintf("ecs: restore of slot %d at generation 0", idx))
			}
			p.freeList = append(p.freeList, uint32(idx))
		}
	}
}
