package system

import "time"

// Phase defines execution ordering within a single turn.
type Phase int

const (
	PhaseVisibility Phase = iota // 0: recompute dirty viewsheds
	PhaseAI                      // 1: monster decisions and movement
	PhaseIndex                   // 2: rebuild tile occupancy and blocking
	PhaseTrigger                 // 3: entry triggers for moved entities
	PhaseMelee                   // 4: resolve melee intents
	PhaseDamage                  // 5: apply damage, death sweep
	PhaseInventory               // 6: pickup, use, drop, remove
	PhaseEffects                 // 7: particle spawn
	PhaseStatus                  // 8: hunger and other clocks
	PhaseCleanup                 // 9: destroy queued entities, flush cues
)

var phaseNames = [...]string{
	"visibility", "ai", "index", "trigger", "melee",
	"damage", "inventory", "effects", "status", "cleanup",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// System is the interface every pipeline pass implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
