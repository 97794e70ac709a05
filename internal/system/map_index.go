package system

import (
	"time"

	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/core/ecs"
	coresys "github.com/l1jgo/delve/internal/core/system"
	"github.com/l1jgo/delve/internal/sim"
)

// MapIndexSystem rebuilds tile occupancy and the Blocked grid.
// Phase 2 (Index).
type MapIndexSystem struct {
	ctx *sim.Context
}

func NewMapIndexSystem(ctx *sim.Context) *MapIndexSystem {
	return &MapIndexSystem{ctx: ctx}
}

func (s *MapIndexSystem) Phase() coresys.Phase { return coresys.PhaseIndex }

func (s *MapIndexSystem) Update(_ time.Duration) {
	m := s.ctx.Map
	c := s.ctx.C
	m.PopulateBlocked()
	m.ClearContentIndex()
	c.Position.Each(func(id ecs.EntityID, pos *component.Position) {
		if !m.InBounds(pos.X, pos.Y) {
			return
		}
		idx := m.Index(pos.X, pos.Y)
		if c.BlocksTile.Has(id) {
			m.Blocked[idx] = true
		}
		m.TileContent[idx] = append(m.TileContent[idx], id)
	})
}
