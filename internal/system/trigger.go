package system

import (
	"time"

	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/core/ecs"
	"github.com/l1jgo/delve/internal/core/event"
	coresys "github.com/l1jgo/delve/internal/core/system"
	"github.com/l1jgo/delve/internal/sim"
)

// TriggerSystem fires entry triggers on tiles entered this turn.
// Phase 3 (Trigger).
type TriggerSystem struct {
	ctx *sim.Context
}

func NewTriggerSystem(ctx *sim.Context) *TriggerSystem {
	return &TriggerSystem{ctx: ctx}
}

func (s *TriggerSystem) Phase() coresys.Phase { return coresys.PhaseTrigger }

func (s *TriggerSystem) Update(_ time.Duration) {
	c := s.ctx.C
	m := s.ctx.Map
	c.EntityMoved.Each(func(id ecs.EntityID, _ *component.EntityMoved) {
		pos, ok := c.Position.Get(id)
		if !ok {
			return
		}
		for _, other := range m.TileContent[m.Index(pos.X, pos.Y)] {
			if other == id || !c.EntryTrigger.Has(other) {
				continue
			}
			if n, ok := c.Name.Get(other); ok {
				s.ctx.Log.Add("%s triggers!", n.Name)
			}
			if dmg, ok := c.InflictsDamage.Get(other); ok {
				s.ctx.Particles.Request(pos.X, pos.Y, component.Orange, component.Black, '‼', 200)
				c.AddDamage(id, dmg.Amount)
				s.ctx.Log.Add("%s suffers %d damage.", c.Named(id), dmg.Amount)
				event.Emit(s.ctx.Bus, event.Cue{Kind: event.CueTrapSprung, Entity: other})
			}
			if c.SingleActivation.Has(other) {
				s.ctx.World.MarkForDestruction(other)
			}
			c.Hidden.Remove(other)
		}
	})
	c.EntityMoved.Clear()
}
