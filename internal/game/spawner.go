package game

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/core/ecs"
	"github.com/l1jgo/delve/internal/data"
	"github.com/l1jgo/delve/internal/world"
)

var colors = map[string]component.Color{
	"black":   component.Black,
	"red":     component.Red,
	"green":   component.Green,
	"yellow":  component.Yellow,
	"cyan":    component.Cyan,
	"magenta": component.Magenta,
	"orange":  component.Orange,
	"pink":    component.Pink,
	"brown":   component.Brown,
}

func colorOf(name string) component.Color {
	if c, ok := colors[name]; ok {
		return c
	}
	return component.Yellow
}

func glyphOf(s string) rune {
	for _, r := range s {
		return r
	}
	return '?'
}

func (g *Game) spawnPlayer(x, y int) ecs.EntityID {
	ctx := g.ctx
	c := ctx.C
	id := ctx.World.CreateEntity()
	c.Position.Set(id, &component.Position{X: x, Y: y})
	c.Renderable.Set(id, &component.Renderable{Glyph: '@', FG: component.Yellow, BG: component.Black, Order: 0})
	c.Player.Set(id, &component.Player{})
	c.Viewshed.Set(id, &component.Viewshed{Range: ctx.Opts.ViewRange, Dirty: true})
	c.Name.Set(id, &component.Name{Name: "Player"})
	c.CombatStats.Set(id, &component.CombatStats{MaxHP: 30, HP: 30, Defense: 2, Power: 5})
	c.HungerClock.Set(id, &component.HungerClock{State: component.WellFed, Duration: ctx.Scripts.WellFedDuration()})
	return id
}

// spawnRoom fills one room. Spawn points are picked for every monster and
// item first, then the kinds are rolled, so the RNG stream per room is
// stable regardless of which kinds come up.
func (g *Game) spawnRoom(room world.Rect, depth int) {
	ctx := g.ctx
	r := ctx.RNG
	limits := ctx.Scripts.RoomSpawnLimits(depth)
	numMonsters := r.Roll(1, limits.Monsters+2) - 3
	numItems := r.Roll(1, limits.Items+2) - 3

	monsterPoints := g.spawnPoints(room, numMonsters)
	itemPoints := g.spawnPoints(room, numItems)

	monsters := ctx.Spawns.Monsters(depth)
	for _, idx := range monsterPoints {
		if kind := monsters.Roll(r); kind != "" {
			x, y := ctx.Map.XY(idx)
			g.spawnMonster(kind, x, y)
		}
	}
	items := ctx.Spawns.Items(depth)
	for _, idx := range itemPoints {
		if name := items.Roll(r); name != "" {
			x, y := ctx.Map.XY(idx)
			g.spawnItem(name, x, y)
		}
	}
}

// spawnPoints picks n distinct interior tiles of room.
func (g *Game) spawnPoints(room world.Rect, n int) []int {
	r := g.ctx.RNG
	m := g.ctx.Map
	w, h := abs(room.X2-room.X1), abs(room.Y2-room.Y1)
	if n > w*h {
		n = w * h
	}
	taken := mapset.New[int]()
	out := make([]int, 0, max(n, 0))
	for len(out) < n {
		idx := m.Index(room.X1+r.Roll(1, w), room.Y1+r.Roll(1, h))
		if taken.Has(idx) {
			continue
		}
		taken.Put(idx)
		out = append(out, idx)
	}
	return out
}

func (g *Game) spawnMonster(kind string, x, y int) ecs.EntityID {
	ctx := g.ctx
	c := ctx.C
	tpl, ok := ctx.Spawns.Monster(kind)
	if !ok {
		panic(fmt.Sprintf("game: no monster template %q", kind))
	}
	id := ctx.World.CreateEntity()
	c.Position.Set(id, &component.Position{X: x, Y: y})
	c.Renderable.Set(id, &component.Renderable{Glyph: glyphOf(tpl.Glyph), FG: colorOf(tpl.Color), BG: component.Black, Order: 1})
	c.Viewshed.Set(id, &component.Viewshed{Range: tpl.ViewRange, Dirty: true})
	c.Monster.Set(id, &component.Monster{Kind: tpl.Kind})
	c.Name.Set(id, &component.Name{Name: component.Title(tpl.Kind)})
	c.BlocksTile.Set(id, &component.BlocksTile{})
	c.CombatStats.Set(id, &component.CombatStats{MaxHP: tpl.HP, HP: tpl.HP, Defense: tpl.Defense, Power: tpl.Power})
	if given := ctx.Spawns.Names().Roll(ctx.RNG); given != "" {
		c.GivenName.Set(id, &component.GivenName{Name: given})
	}
	return id
}

// spawnItem builds an item or trap from its template. Traps are hidden
// entry triggers and cannot be picked up.
func (g *Game) spawnItem(name string, x, y int) ecs.EntityID {
	ctx := g.ctx
	c := ctx.C
	tpl, ok := ctx.Spawns.Item(name)
	if !ok {
		panic(fmt.Sprintf("game: no item template %q", name))
	}
	id := ctx.World.CreateEntity()
	c.Position.Set(id, &component.Position{X: x, Y: y})
	c.Renderable.Set(id, &component.Renderable{Glyph: glyphOf(tpl.Glyph), FG: colorOf(tpl.Color), BG: component.Black, Order: 2})
	c.Name.Set(id, &component.Name{Name: tpl.Name})
	if tpl.Damage > 0 {
		c.InflictsDamage.Set(id, &component.InflictsDamage{Amount: tpl.Damage})
	}

	if tpl.Trap {
		c.Hidden.Set(id, &component.Hidden{})
		c.EntryTrigger.Set(id, &component.EntryTrigger{})
		c.SingleActivation.Set(id, &component.SingleActivation{})
		return id
	}

	c.Item.Set(id, &component.Item{})
	applyItemTemplate(c, id, tpl)
	return id
}

func applyItemTemplate(c *component.Components, id ecs.EntityID, tpl *data.ItemTemplate) {
	if tpl.Consumable {
		c.Consumable.Set(id, &component.Consumable{})
	}
	if tpl.Healing > 0 {
		c.ProvidesHealing.Set(id, &component.ProvidesHealing{Amount: tpl.Healing})
	}
	if tpl.Range > 0 {
		c.Ranged.Set(id, &component.Ranged{Range: tpl.Range})
	}
	if tpl.Radius > 0 {
		c.AreaOfEffect.Set(id, &component.AreaOfEffect{Radius: tpl.Radius})
	}
	if tpl.ConfusionTurns > 0 {
		c.Confusion.Set(id, &component.Confusion{Turns: tpl.ConfusionTurns})
	}
	if tpl.Food {
		c.ProvidesFood.Set(id, &component.ProvidesFood{})
	}
	if tpl.MagicMapping {
		c.MagicMapper.Set(id, &component.MagicMapper{})
	}
	switch tpl.Equip {
	case "melee":
		kind := component.Blunt
		if tpl.MeleeKind == "slash" {
			kind = component.Slash
		}
		c.Equippable.Set(id, &component.Equippable{Slot: component.SlotMelee})
		c.MeleePowerBonus.Set(id, &component.MeleePowerBonus{Power: tpl.PowerBonus, Kind: kind})
	case "shield":
		c.Equippable.Set(id, &component.Equippable{Slot: component.SlotShield})
		c.DefenseBonus.Set(id, &component.DefenseBonus{Amount: tpl.DefenseBonus})
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
