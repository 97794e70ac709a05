package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/core/ecs"
	coresys "github.com/l1jgo/delve/internal/core/system"
	"github.com/l1jgo/delve/internal/sim"
)

// HungerSystem ticks hunger clocks. The player's clock runs on the player
// turn and everyone else's on the monster turn; transitions come from the
// Lua hunger policy. Phase 8 (Status).
type HungerSystem struct {
	ctx *sim.Context
}

func NewHungerSystem(ctx *sim.Context) *HungerSystem {
	return &HungerSystem{ctx: ctx}
}

func (s *HungerSystem) Phase() coresys.Phase { return coresys.PhaseStatus }

func (s *HungerSystem) Update(_ time.Duration) {
	c := s.ctx.C
	c.HungerClock.Each(func(id ecs.EntityID, hc *component.HungerClock) {
		isPlayer := s.ctx.IsPlayer(id)
		switch {
		case s.ctx.Turn == sim.TurnPlayer && isPlayer:
		case s.ctx.Turn == sim.TurnMonster && !isPlayer:
		default:
			return
		}
		if s.ctx.World.Pending(id) {
			return
		}

		hc.Duration--
		if hc.Duration >= 1 {
			return
		}
		step := s.ctx.Scripts.NextHunger(hc.State.String())
		next, ok := component.ParseHungerState(step.State)
		if !ok {
			s.ctx.Zap.Warn("hunger policy returned unknown state", zap.String("state", step.State))
			next = component.Normal
		}
		hc.State = next
		hc.Duration = step.Duration
		if step.Damage > 0 {
			c.AddDamage(id, step.Damage)
		}
		if isPlayer && step.Message != "" {
			s.ctx.Log.Add("%s", step.Message)
		}
	})
}
