package system

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/core/ecs"
	"github.com/l1jgo/delve/internal/core/event"
	coresys "github.com/l1jgo/delve/internal/core/system"
	"github.com/l1jgo/delve/internal/sim"
	"github.com/l1jgo/delve/internal/world"
)

// MonsterAISystem decides monster actions on the monster turn: confused
// monsters lose the turn, adjacent ones attack, and ones that can see the
// player step toward it. Phase 1 (AI).
type MonsterAISystem struct {
	ctx *sim.Context
}

func NewMonsterAISystem(ctx *sim.Context) *MonsterAISystem {
	return &MonsterAISystem{ctx: ctx}
}

func (s *MonsterAISystem) Phase() coresys.Phase { return coresys.PhaseAI }

func (s *MonsterAISystem) Update(_ time.Duration) {
	if s.ctx.Turn != sim.TurnMonster {
		return
	}
	c := s.ctx.C
	done := false
	ecs.Each3(c.Monster, c.Viewshed, c.Position, func(id ecs.EntityID, mon *component.Monster, vs *component.Viewshed, pos *component.Position) {
		if done {
			return
		}

		if conf, ok := c.Confusion.Get(id); ok {
			conf.Turns--
			if conf.Turns < 1 {
				c.Confusion.Remove(id)
			}
			s.ctx.Particles.Request(pos.X, pos.Y, component.Magenta, component.Black, '?', 200)
			return
		}

		pp := s.ctx.PlayerPos
		dist := math.Hypot(float64(pos.X-pp.X), float64(pos.Y-pp.Y))
		if dist < 1.5 {
			c.WantsToMelee.Set(id, &component.WantsToMelee{Target: s.ctx.Player})
			if s.ctx.Opts.SingleAttacker {
				done = true
			}
			return
		}
		if !vs.Contains(pp) {
			return
		}
		s.chase(id, pos, vs)
		if !mon.SeenPlayer {
			mon.SeenPlayer = true
			event.Emit(s.ctx.Bus, event.Cue{Kind: event.CueMonsterAlerted, Entity: id, Variant: mon.Kind})
		}
	})
}

func (s *MonsterAISystem) chase(id ecs.EntityID, pos *component.Position, vs *component.Viewshed) {
	m := s.ctx.Map
	from := m.Index(pos.X, pos.Y)
	path := world.AStar(from, m.Index(s.ctx.PlayerPos.X, s.ctx.PlayerPos.Y), m)
	if !path.Success || len(path.Steps) < 2 {
		s.ctx.Zap.Debug("monster has no path", zap.Stringer("entity", id))
		return
	}
	m.Blocked[from] = false
	pos.X, pos.Y = m.XY(path.Steps[1])
	m.Blocked[path.Steps[1]] = true
	vs.Dirty = true
	s.ctx.C.EntityMoved.Set(id, &component.EntityMoved{})
}
