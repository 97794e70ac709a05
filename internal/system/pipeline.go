// Package system implements the turn pipeline: one struct per pass, each
// bound to the shared simulation context and ordered by its Phase.
package system

import (
	coresys "github.com/l1jgo/delve/internal/core/system"
	"github.com/l1jgo/delve/internal/sim"
)

// NewPipeline registers every pass on a new runner. Systems sharing a phase
// run in the order listed here.
func NewPipeline(ctx *sim.Context) *coresys.Runner {
	r := coresys.NewRunner()
	r.Register(NewVisibilitySystem(ctx))
	r.Register(NewMonsterAISystem(ctx))
	r.Register(NewMapIndexSystem(ctx))
	r.Register(NewTriggerSystem(ctx))
	r.Register(NewMeleeSystem(ctx))
	r.Register(NewDamageSystem(ctx))
	r.Register(NewPickupSystem(ctx))
	r.Register(NewItemUseSystem(ctx))
	r.Register(NewDropSystem(ctx))
	r.Register(NewRemoveSystem(ctx))
	r.Register(NewParticleSpawnSystem(ctx))
	r.Register(NewHungerSystem(ctx))
	r.Register(NewCleanupSystem(ctx))
	return r
}
