package system

import (
	"fmt"
	"time"

	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/core/ecs"
	"github.com/l1jgo/delve/internal/core/event"
	coresys "github.com/l1jgo/delve/internal/core/system"
	"github.com/l1jgo/delve/internal/sim"
)

// MeleeDamage is the melee formula: attacker power plus equipment offense
// against defender defense plus equipment bonus, never negative.
func MeleeDamage(power, offense, defense, bonus int) int {
	return max(0, (power+offense)-(defense+bonus))
}

// MeleeSystem resolves WantsToMelee intents. Phase 4 (Melee).
type MeleeSystem struct {
	ctx *sim.Context
}

func NewMeleeSystem(ctx *sim.Context) *MeleeSystem {
	return &MeleeSystem{ctx: ctx}
}

func (s *MeleeSystem) Phase() coresys.Phase { return coresys.PhaseMelee }

func (s *MeleeSystem) Update(_ time.Duration) {
	c := s.ctx.C
	c.WantsToMelee.Each(func(id ecs.EntityID, wm *component.WantsToMelee) {
		stats := c.CombatStats.MustGet(id)
		if stats.HP <= 0 {
			return
		}
		if !s.ctx.World.Alive(wm.Target) {
			panic(fmt.Sprintf("melee: %s targets dead entity %s", id, wm.Target))
		}
		target := c.CombatStats.MustGet(wm.Target)
		if target.HP <= 0 {
			return
		}

		offense, kind := s.offense(id)
		if hc, ok := c.HungerClock.Get(id); ok && hc.State == component.WellFed {
			offense++
		}
		defense := s.defense(wm.Target)

		if pos, ok := c.Position.Get(wm.Target); ok {
			s.ctx.Particles.Request(pos.X, pos.Y, component.Orange, component.Black, '‼', 200)
		}

		dealer, victim := c.Named(id), c.Named(wm.Target)
		damage := MeleeDamage(stats.Power, offense, target.Defense, defense)
		if damage == 0 {
			s.ctx.Log.Add("%s is unable to hurt %s", dealer, victim)
			return
		}
		s.ctx.Log.Add("%s hits %s, for %d hp. (%d(+%d)-%d(+%d)",
			dealer, victim, damage, stats.Power, offense, target.Defense, defense)
		c.AddDamage(wm.Target, damage)
		event.Emit(s.ctx.Bus, event.Cue{Kind: event.CueAttackLanded, Entity: id, Variant: kind.String()})
	})
	c.WantsToMelee.Clear()
}

// offense sums MeleePowerBonus over items owner has equipped. The kind of
// the last bonus item wins; bare hands are blunt.
func (s *MeleeSystem) offense(owner ecs.EntityID) (int, component.MeleeKind) {
	c := s.ctx.C
	total, kind := 0, component.Blunt
	ecs.Each2(c.MeleePowerBonus, c.Equipped, func(_ ecs.EntityID, b *component.MeleePowerBonus, eq *component.Equipped) {
		if eq.Owner == owner {
			total += b.Power
			kind = b.Kind
		}
	})
	return total, kind
}

func (s *MeleeSystem) defense(owner ecs.EntityID) int {
	c := s.ctx.C
	total := 0
	ecs.Each2(c.DefenseBonus, c.Equipped, func(_ ecs.EntityID, b *component.DefenseBonus, eq *component.Equipped) {
		if eq.Owner == owner {
			total += b.Amount
		}
	})
	return total
}
