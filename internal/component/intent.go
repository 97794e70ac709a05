package component

import (
	"github.com/l1jgo/delve/internal/core/ecs"
	"github.com/l1jgo/delve/internal/world"
)

// Intent components live for a single turn. Each is keyed by the acting
// entity and drained by the system that consumes it.

type WantsToMelee struct {
	Target ecs.EntityID
}

type WantsToPickupItem struct {
	CollectedBy ecs.EntityID
	Item        ecs.EntityID
}

type WantsToDropItem struct {
	Item ecs.EntityID
}

type WantsToRemoveItem struct {
	Item ecs.EntityID
}

// WantsToUseItem carries an optional target tile; nil targets the user.
type WantsToUseItem struct {
	Item   ecs.EntityID
	Target *world.Point
}
