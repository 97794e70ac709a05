package component

import "github.com/l1jgo/delve/internal/core/ecs"

type Player struct{}

type Monster struct {
	Kind       string
	SeenPlayer bool
}

type CombatStats struct {
	MaxHP   int
	HP      int
	Defense int
	Power   int
}

// SufferDamage accumulates damage since the last resolution pass.
type SufferDamage struct {
	Amounts []int
}

func (s *SufferDamage) Total() int {
	sum := 0
	for _, a := range s.Amounts {
		sum += a
	}
	return sum
}

type BlocksTile struct{}

type Hidden struct{}

type EntryTrigger struct{}

type SingleActivation struct{}

// EntityMoved marks an entity that changed tiles this turn.
type EntityMoved struct{}

type HungerState uint8

const (
	WellFed HungerState = iota
	Normal
	Hungry
	Starving
)

func (s HungerState) String() string {
	switch s {
	case WellFed:
		return "Well Fed"
	case Normal:
		return "Normal"
	case Hungry:
		return "Hungry"
	case Starving:
		return "Starving"
	}
	return "Unknown"
}

// ParseHungerState is the inverse of HungerState.String.
func ParseHungerState(s string) (HungerState, bool) {
	for st := WellFed; st <= Starving; st++ {
		if st.String() == s {
			return st, true
		}
	}
	return 0, false
}

type HungerClock struct {
	State    HungerState
	Duration int
}

// Confusion makes a monster skip its next Turns turns.
type Confusion struct {
	Turns int
}

// Owned returns the owner id of an item and whether it is carried or worn.
func (c *Components) Owned(item ecs.EntityID) (ecs.EntityID, bool) {
	if bp, ok := c.InBackpack.Get(item); ok {
		return bp.Owner, true
	}
	if eq, ok := c.Equipped.Get(item); ok {
		return eq.Owner, true
	}
	return 0, false
}
