package system

import (
	"time"

	coresys "github.com/l1jgo/delve/internal/core/system"
	"github.com/l1jgo/delve/internal/sim"
)

// CleanupSystem delivers the turn's cues and flushes the deferred entity
// destruction queue. Phase 9 (Cleanup).
type CleanupSystem struct {
	ctx *sim.Context
}

func NewCleanupSystem(ctx *sim.Context) *CleanupSystem {
	return &CleanupSystem{ctx: ctx}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.ctx.Bus.Flush()
	s.ctx.World.FlushDestroyQueue()
}
