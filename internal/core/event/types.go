package event

import "github.com/l1jgo/delve/internal/core/ecs"

// CueKind names a discrete side-channel signal for the audio collaborator.
type CueKind int

const (
	CueAttackLanded CueKind = iota
	CueMonsterAlerted
	CueEntityDied
	CueTrapSprung
)

func (k CueKind) String() string {
	switch k {
	case CueAttackLanded:
		return "attack_landed"
	case CueMonsterAlerted:
		return "monster_alerted"
	case CueEntityDied:
		return "entity_died"
	case CueTrapSprung:
		return "trap_sprung"
	}
	return "unknown"
}

// Cue is emitted by pipeline systems. Variant carries a sound family hint
// (melee kind, monster kind) without naming any asset.
type Cue struct {
	Kind    CueKind
	Entity  ecs.EntityID
	Variant string
}

// LevelChanged is emitted after a new map has been generated.
type LevelChanged struct {
	Depth int
}
