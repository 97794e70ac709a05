package component

import "github.com/l1jgo/delve/internal/core/ecs"

// Components is the full set of component tables bound to one World.
type Components struct {
	Position   *ecs.Store[Position]
	Renderable *ecs.Store[Renderable]
	Viewshed   *ecs.Store[Viewshed]
	Name       *ecs.Store[Name]
	GivenName  *ecs.Store[GivenName]

	Player       *ecs.Store[Player]
	Monster      *ecs.Store[Monster]
	CombatStats  *ecs.Store[CombatStats]
	SufferDamage *ecs.Store[SufferDamage]
	BlocksTile   *ecs.Store[BlocksTile]
	HungerClock  *ecs.Store[HungerClock]
	Confusion    *ecs.Store[Confusion]

	Item            *ecs.Store[Item]
	Consumable      *ecs.Store[Consumable]
	Ranged          *ecs.Store[Ranged]
	ProvidesHealing *ecs.Store[ProvidesHealing]
	InflictsDamage  *ecs.Store[InflictsDamage]
	AreaOfEffect    *ecs.Store[AreaOfEffect]
	ProvidesFood    *ecs.Store[ProvidesFood]
	MagicMapper     *ecs.Store[MagicMapper]
	Equippable      *ecs.Store[Equippable]
	Equipped        *ecs.Store[Equipped]
	MeleePowerBonus *ecs.Store[MeleePowerBonus]
	DefenseBonus    *ecs.Store[DefenseBonus]
	InBackpack      *ecs.Store[InBackpack]

	Hidden           *ecs.Store[Hidden]
	EntryTrigger     *ecs.Store[EntryTrigger]
	SingleActivation *ecs.Store[SingleActivation]
	EntityMoved      *ecs.Store[EntityMoved]

	WantsToMelee      *ecs.Store[WantsToMelee]
	WantsToPickupItem *ecs.Store[WantsToPickupItem]
	WantsToDropItem   *ecs.Store[WantsToDropItem]
	WantsToRemoveItem *ecs.Store[WantsToRemoveItem]
	WantsToUseItem    *ecs.Store[WantsToUseItem]

	ParticleLifetime *ecs.Store[ParticleLifetime]
	Animation        *ecs.Store[Animation]
}

// New creates every table and registers it with w.
func New(w *ecs.World) *Components {
	return &Components{
		Position:   ecs.NewStore[Position](w),
		Renderable: ecs.NewStore[Renderable](w),
		Viewshed:   ecs.NewStore[Viewshed](w),
		Name:       ecs.NewStore[Name](w),
		GivenName:  ecs.NewStore[GivenName](w),

		Player:       ecs.NewStore[Player](w),
		Monster:      ecs.NewStore[Monster](w),
		CombatStats:  ecs.NewStore[CombatStats](w),
		SufferDamage: ecs.NewStore[SufferDamage](w),
		BlocksTile:   ecs.NewStore[BlocksTile](w),
		HungerClock:  ecs.NewStore[HungerClock](w),
		Confusion:    ecs.NewStore[Confusion](w),

		Item:            ecs.NewStore[Item](w),
		Consumable:      ecs.NewStore[Consumable](w),
		Ranged:          ecs.NewStore[Ranged](w),
		ProvidesHealing: ecs.NewStore[ProvidesHealing](w),
		InflictsDamage:  ecs.NewStore[InflictsDamage](w),
		AreaOfEffect:    ecs.NewStore[AreaOfEffect](w),
		ProvidesFood:    ecs.NewStore[ProvidesFood](w),
		MagicMapper:     ecs.NewStore[MagicMapper](w),
		Equippable:      ecs.NewStore[Equippable](w),
		Equipped:        ecs.NewStore[Equipped](w),
		MeleePowerBonus: ecs.NewStore[MeleePowerBonus](w),
		DefenseBonus:    ecs.NewStore[DefenseBonus](w),
		InBackpack:      ecs.NewStore[InBackpack](w),

		Hidden:           ecs.NewStore[Hidden](w),
		EntryTrigger:     ecs.NewStore[EntryTrigger](w),
		SingleActivation: ecs.NewStore[SingleActivation](w),
		EntityMoved:      ecs.NewStore[EntityMoved](w),

		WantsToMelee:      ecs.NewStore[WantsToMelee](w),
		WantsToPickupItem: ecs.NewStore[WantsToPickupItem](w),
		WantsToDropItem:   ecs.NewStore[WantsToDropItem](w),
		WantsToRemoveItem: ecs.NewStore[WantsToRemoveItem](w),
		WantsToUseItem:    ecs.NewStore[WantsToUseItem](w),

		ParticleLifetime: ecs.NewStore[ParticleLifetime](w),
		Animation:        ecs.NewStore[Animation](w),
	}
}

// AddDamage appends amount to victim's damage accumulator, creating it if
// needed.
func (c *Components) AddDamage(victim ecs.EntityID, amount int) {
	if sd, ok := c.SufferDamage.Get(victim); ok {
		sd.Amounts = append(sd.Amounts, amount)
		return
	}
	c.SufferDamage.Set(victim, &SufferDamage{Amounts: []int{amount}})
}
