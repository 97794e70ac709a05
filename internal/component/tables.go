package component

import (
	"fmt"

	"github.com/l1jgo/delve/internal/core/ecs"
)

// Row is one entity's value in a dumped table.
type Row[T any] struct {
	Entity ecs.EntityID
	Value  T
}

// Table is one entry of the save/restore registry. Dump returns a []Row[T]
// for the encoder; Restore hands decode a *[]Row[T] to fill and then
// re-attaches every row. The registry does not know the wire format.
type Table struct {
	Name    string
	Dump    func() any
	Restore func(decode func(dst any) error) error
}

func table[T any](name string, s *ecs.Store[T]) Table {
	return Table{
		Name: name,
		Dump: func() any {
			rows := make([]Row[T], 0, s.Len())
			s.Each(func(id ecs.EntityID, v *T) {
				rows = append(rows, Row[T]{Entity: id, Value: *v})
			})
			return rows
		},
		Restore: func(decode func(dst any) error) error {
			var rows []Row[T]
			if err := decode(&rows); err != nil {
				return fmt.Errorf("decode %s: %w", name, err)
			}
			for i := range rows {
				v := rows[i].Value
				s.Set(rows[i].Entity, &v)
			}
			return nil
		},
	}
}

// Tables enumerates every component table in a fixed order. Names are
// stable identifiers in saved games; append, never rename.
func (c *Components) Tables() []Table {
	return []Table{
		table("position", c.Position),
		table("renderable", c.Renderable),
		table("viewshed", c.Viewshed),
		table("name", c.Name),
		table("given_name", c.GivenName),
		table("player", c.Player),
		table("monster", c.Monster),
		table("combat_stats", c.CombatStats),
		table("suffer_damage", c.SufferDamage),
		table("blocks_tile", c.BlocksTile),
		table("hunger_clock", c.HungerClock),
		table("confusion", c.Confusion),
		table("item", c.Item),
		table("consumable", c.Consumable),
		table("ranged", c.Ranged),
		table("provides_healing", c.ProvidesHealing),
		table("inflicts_damage", c.InflictsDamage),
		table("area_of_effect", c.AreaOfEffect),
		table("provides_food", c.ProvidesFood),
		table("magic_mapper", c.MagicMapper),
		table("equippable", c.Equippable),
		table("equipped", c.Equipped),
		table("melee_power_bonus", c.MeleePowerBonus),
		table("defense_bonus", c.DefenseBonus),
		table("in_backpack", c.InBackpack),
		table("hidden", c.Hidden),
		table("entry_trigger", c.EntryTrigger),
		table("single_activation", c.SingleActivation),
		table("entity_moved", c.EntityMoved),
		table("wants_to_melee", c.WantsToMelee),
		table("wants_to_pickup_item", c.WantsToPickupItem),
		table("wants_to_drop_item", c.WantsToDropItem),
		table("wants_to_remove_item", c.WantsToRemoveItem),
		table("wants_to_use_item", c.WantsToUseItem),
		table("particle_lifetime", c.ParticleLifetime),
		table("animation", c.Animation),
	}
}
