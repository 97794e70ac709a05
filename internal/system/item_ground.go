package system

import (
	"time"

	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/core/ecs"
	coresys "github.com/l1jgo/delve/internal/core/system"
	"github.com/l1jgo/delve/internal/sim"
)

// PickupSystem moves items from the map into a backpack.
// Phase 6 (Inventory), first.
type PickupSystem struct {
	ctx *sim.Context
}

func NewPickupSystem(ctx *sim.Context) *PickupSystem {
	return &PickupSystem{ctx: ctx}
}

func (s *PickupSystem) Phase() coresys.Phase { return coresys.PhaseInventory }

func (s *PickupSystem) Update(_ time.Duration) {
	c := s.ctx.C
	c.WantsToPickupItem.Each(func(_ ecs.EntityID, w *component.WantsToPickupItem) {
		mustAlive(s.ctx, w.Item, "pickup")
		c.Position.Remove(w.Item)
		c.InBackpack.Set(w.Item, &component.InBackpack{Owner: w.CollectedBy})
		if s.ctx.IsPlayer(w.CollectedBy) {
			s.ctx.Log.Add("You pick up the %s.", c.NameOf(w.Item))
		}
	})
	c.WantsToPickupItem.Clear()
}

// DropSystem places backpack items at the dropper's feet.
// Phase 6 (Inventory), after use.
type DropSystem struct {
	ctx *sim.Context
}

func NewDropSystem(ctx *sim.Context) *DropSystem {
	return &DropSystem{ctx: ctx}
}

func (s *DropSystem) Phase() coresys.Phase { return coresys.PhaseInventory }

func (s *DropSystem) Update(_ time.Duration) {
	c := s.ctx.C
	c.WantsToDropItem.Each(func(id ecs.EntityID, w *component.WantsToDropItem) {
		mustAlive(s.ctx, w.Item, "drop")
		pos := c.Position.MustGet(id)
		c.Position.Set(w.Item, &component.Position{X: pos.X, Y: pos.Y})
		c.InBackpack.Remove(w.Item)
		if s.ctx.IsPlayer(id) {
			s.ctx.Log.Add("You drop the %s.", c.NameOf(w.Item))
		}
	})
	c.WantsToDropItem.Clear()
}
