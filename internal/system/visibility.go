package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/core/ecs"
	coresys "github.com/l1jgo/delve/internal/core/system"
	"github.com/l1jgo/delve/internal/sim"
	"github.com/l1jgo/delve/internal/world"
)

// VisibilitySystem recomputes dirty viewsheds. The player's viewshed also
// drives the map's Visible and Revealed grids and the chance to spot hidden
// things. Phase 0 (Visibility).
type VisibilitySystem struct {
	ctx *sim.Context
}

func NewVisibilitySystem(ctx *sim.Context) *VisibilitySystem {
	return &VisibilitySystem{ctx: ctx}
}

func (s *VisibilitySystem) Phase() coresys.Phase { return coresys.PhaseVisibility }

func (s *VisibilitySystem) Update(_ time.Duration) {
	c := s.ctx.C
	ecs.Each2(c.Viewshed, c.Position, func(id ecs.EntityID, vs *component.Viewshed, pos *component.Position) {
		if !vs.Dirty {
			return
		}
		vs.Dirty = false
		vs.Visible = world.FieldOfView(pos.Point(), vs.Range, s.ctx.Map)
		if c.Player.Has(id) {
			s.applyPlayerView(vs)
		}
	})
}

func (s *VisibilitySystem) applyPlayerView(vs *component.Viewshed) {
	m := s.ctx.Map
	c := s.ctx.C
	m.ClearVisible()

	// Hidden occupants by tile. Built from positions rather than TileContent,
	// which is not rebuilt until the index phase.
	var hidden map[int][]ecs.EntityID
	ecs.Each2(c.Hidden, c.Position, func(id ecs.EntityID, _ *component.Hidden, pos *component.Position) {
		if hidden == nil {
			hidden = make(map[int][]ecs.EntityID)
		}
		idx := m.Index(pos.X, pos.Y)
		hidden[idx] = append(hidden[idx], id)
	})

	for _, p := range vs.Visible {
		idx := m.Index(p.X, p.Y)
		m.Revealed[idx] = true
		m.Visible[idx] = true
		for _, e := range hidden[idx] {
			if s.ctx.RNG.Roll(1, 24) != 1 {
				continue
			}
			if n, ok := c.Name.Get(e); ok {
				s.ctx.Log.Add("You spotted a %s!", n.Name)
			}
			c.Hidden.Remove(e)
			s.ctx.Zap.Debug("hidden entity revealed", zap.Stringer("entity", e))
		}
	}
}
