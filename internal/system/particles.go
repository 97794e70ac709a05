package system

import (
	"time"

	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/core/ecs"
	coresys "github.com/l1jgo/delve/internal/core/system"
	"github.com/l1jgo/delve/internal/sim"
)

// ParticleSpawnSystem turns queued particle requests into short-lived
// entities. Phase 7 (Effects).
type ParticleSpawnSystem struct {
	ctx *sim.Context
}

func NewParticleSpawnSystem(ctx *sim.Context) *ParticleSpawnSystem {
	return &ParticleSpawnSystem{ctx: ctx}
}

func (s *ParticleSpawnSystem) Phase() coresys.Phase { return coresys.PhaseEffects }

func (s *ParticleSpawnSystem) Update(_ time.Duration) {
	c := s.ctx.C
	for _, r := range s.ctx.Particles.Drain() {
		e := s.ctx.World.CreateEntity()
		c.Position.Set(e, &component.Position{X: r.X, Y: r.Y})
		c.Renderable.Set(e, &component.Renderable{Glyph: r.Glyph, FG: r.FG, BG: r.BG, Order: 0})
		c.ParticleLifetime.Set(e, &component.ParticleLifetime{LifetimeMS: r.LifetimeMS})
	}
}

// CullParticles ages particles by dt and destroys the expired ones at once.
// Called every frame outside the pipeline.
func CullParticles(ctx *sim.Context, dt time.Duration) {
	ms := float64(dt) / float64(time.Millisecond)
	expired := false
	ctx.C.ParticleLifetime.Each(func(id ecs.EntityID, p *component.ParticleLifetime) {
		p.LifetimeMS -= ms
		if p.LifetimeMS < 0 {
			ctx.World.MarkForDestruction(id)
			expired = true
		}
	})
	if expired {
		ctx.World.FlushDestroyQueue()
	}
}
