package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/core/ecs"
	"github.com/l1jgo/delve/internal/core/event"
	coresys "github.com/l1jgo/delve/internal/core/system"
	"github.com/l1jgo/delve/internal/sim"
)

// DamageSystem applies accumulated damage, stains the victim's tile, then
// sweeps the dead. The player is never destroyed; its death requests game
// over instead. Phase 5 (Damage).
type DamageSystem struct {
	ctx *sim.Context
}

func NewDamageSystem(ctx *sim.Context) *DamageSystem {
	return &DamageSystem{ctx: ctx}
}

func (s *DamageSystem) Phase() coresys.Phase { return coresys.PhaseDamage }

func (s *DamageSystem) Update(_ time.Duration) {
	c := s.ctx.C
	m := s.ctx.Map
	ecs.Each2(c.CombatStats, c.SufferDamage, func(id ecs.EntityID, stats *component.CombatStats, sd *component.SufferDamage) {
		stats.HP -= sd.Total()
		if pos, ok := c.Position.Get(id); ok && m.InBounds(pos.X, pos.Y) {
			m.Stain(m.Index(pos.X, pos.Y))
		}
	})
	c.SufferDamage.Clear()

	s.sweepDead()
}

func (s *DamageSystem) sweepDead() {
	c := s.ctx.C
	c.CombatStats.Each(func(id ecs.EntityID, stats *component.CombatStats) {
		if stats.HP >= 1 || s.ctx.World.Pending(id) {
			return
		}
		if s.ctx.IsPlayer(id) {
			if !s.ctx.Requests.GameOver {
				s.ctx.Log.Add("You are dead :(")
				s.ctx.Zap.Info("player died", zap.Int("depth", s.ctx.Map.Depth))
			}
			s.ctx.Requests.GameOver = true
			return
		}
		s.ctx.Log.Add("%s is dead", c.Named(id))
		variant := ""
		if mon, ok := c.Monster.Get(id); ok {
			variant = mon.Kind
		}
		event.Emit(s.ctx.Bus, event.Cue{Kind: event.CueEntityDied, Entity: id, Variant: variant})
		s.ctx.World.MarkForDestruction(id)
	})
}
