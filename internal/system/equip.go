package system

import (
	"fmt"
	"time"

	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/core/ecs"
	coresys "github.com/l1jgo/delve/internal/core/system"
	"github.com/l1jgo/delve/internal/sim"
)

// RemoveSystem unequips items back into the wearer's backpack.
// Phase 6 (Inventory), last.
type RemoveSystem struct {
	ctx *sim.Context
}

func NewRemoveSystem(ctx *sim.Context) *RemoveSystem {
	return &RemoveSystem{ctx: ctx}
}

func (s *RemoveSystem) Phase() coresys.Phase { return coresys.PhaseInventory }

func (s *RemoveSystem) Update(_ time.Duration) {
	c := s.ctx.C
	c.WantsToRemoveItem.Each(func(id ecs.EntityID, w *component.WantsToRemoveItem) {
		mustAlive(s.ctx, w.Item, "remove")
		c.Equipped.Remove(w.Item)
		c.InBackpack.Set(w.Item, &component.InBackpack{Owner: id})
		if s.ctx.IsPlayer(id) {
			s.ctx.Log.Add("You unequip %s.", c.NameOf(w.Item))
		}
	})
	c.WantsToRemoveItem.Clear()
}

// equip wears item on target, first moving anything target has in the same
// slot into its backpack. Leaves exactly one Equipped per (owner, slot).
func equip(ctx *sim.Context, item, target ecs.EntityID, slot component.EquipmentSlot) {
	c := ctx.C
	var displaced []ecs.EntityID
	c.Equipped.Each(func(id ecs.EntityID, eq *component.Equipped) {
		if eq.Owner == target && eq.Slot == slot && id != item {
			displaced = append(displaced, id)
		}
	})
	for _, id := range displaced {
		c.Equipped.Remove(id)
		c.InBackpack.Set(id, &component.InBackpack{Owner: target})
		if ctx.IsPlayer(target) {
			ctx.Log.Add("You unequip %s.", c.NameOf(id))
		}
	}
	c.Equipped.Set(item, &component.Equipped{Owner: target, Slot: slot})
	c.InBackpack.Remove(item)
	if ctx.IsPlayer(target) {
		ctx.Log.Add("You equip %s.", c.NameOf(item))
	}
}

func mustAlive(ctx *sim.Context, id ecs.EntityID, what string) {
	if !ctx.World.Alive(id) {
		panic(fmt.Sprintf("%s: intent references dead entity %s", what, id))
	}
}
