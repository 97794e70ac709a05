package component

import (
	"fmt"

	"github.com/l1jgo/delve/internal/core/ecs"
)

type Item struct{}

type Consumable struct{}

type Ranged struct {
	Range int
}

type ProvidesHealing struct {
	Amount int
}

type InflictsDamage struct {
	Amount int
}

type AreaOfEffect struct {
	Radius int
}

type ProvidesFood struct{}

type MagicMapper struct{}

type EquipmentSlot uint8

const (
	SlotMelee EquipmentSlot = iota
	SlotShield
)

func (s EquipmentSlot) String() string {
	switch s {
	case SlotMelee:
		return "melee"
	case SlotShield:
		return "shield"
	}
	return fmt.Sprintf("slot(%d)", uint8(s))
}

type Equippable struct {
	Slot EquipmentSlot
}

type Equipped struct {
	Owner ecs.EntityID
	Slot  EquipmentSlot
}

type MeleeKind uint8

const (
	Blunt MeleeKind = iota
	Slash
)

func (k MeleeKind) String() string {
	if k == Slash {
		return "slash"
	}
	return "blunt"
}

type MeleePowerBonus struct {
	Power int
	Kind  MeleeKind
}

type DefenseBonus struct {
	Amount int
}

type InBackpack struct {
	Owner ecs.EntityID
}
