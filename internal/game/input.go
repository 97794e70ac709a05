package game

import (
	"math"

	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/core/ecs"
	"github.com/l1jgo/delve/internal/world"
)

// playerInput handles one command while awaiting input. Moves, waiting,
// pickup and failed descents all spend the turn.
func (g *Game) playerInput(cmd Command) State {
	switch cmd.Kind {
	case CmdMove:
		g.tryMove(cmd.DX, cmd.DY)
	case CmdWait:
		g.skipTurn()
	case CmdPickup:
		g.pickup()
	case CmdInventory:
		return State{Kind: ShowInventory}
	case CmdDrop:
		return State{Kind: ShowDropItem}
	case CmdRemove:
		return State{Kind: ShowRemoveItem}
	case CmdDescend:
		pp := g.ctx.PlayerPos
		if g.ctx.Map.StairsAt(pp.X, pp.Y) {
			return State{Kind: NextLevel}
		}
		g.ctx.Log.Add("There is no way down from here.")
	case CmdConsole:
		return State{Kind: Console}
	case CmdSave:
		return State{Kind: SaveGame}
	default:
		return State{Kind: AwaitingInput}
	}
	return State{Kind: PlayerTurn}
}

// tryMove moves the player or, when the destination holds something with
// combat stats, attacks it instead. Reads the previous pass's tile index.
func (g *Game) tryMove(dx, dy int) {
	ctx := g.ctx
	c := ctx.C
	m := ctx.Map
	pos := c.Position.MustGet(ctx.Player)
	nx, ny := pos.X+dx, pos.Y+dy
	if nx < 1 || nx > m.Width-1 || ny < 1 || ny > m.Height-1 {
		return
	}
	idx := m.Index(nx, ny)

	for _, other := range m.TileContent[idx] {
		if other != ctx.Player && c.CombatStats.Has(other) {
			c.WantsToMelee.Set(ctx.Player, &component.WantsToMelee{Target: other})
			return
		}
	}
	if m.Blocked[idx] {
		return
	}

	pos.X, pos.Y = nx, ny
	ctx.PlayerPos = pos.Point()
	if vs, ok := c.Viewshed.Get(ctx.Player); ok {
		vs.Dirty = true
	}
	c.EntityMoved.Set(ctx.Player, &component.EntityMoved{})
}

// skipTurn heals 1 hp unless the player is hungry or a monster is in view.
func (g *Game) skipTurn() {
	ctx := g.ctx
	c := ctx.C
	if hc, ok := c.HungerClock.Get(ctx.Player); ok && (hc.State == component.Hungry || hc.State == component.Starving) {
		return
	}
	if vs, ok := c.Viewshed.Get(ctx.Player); ok {
		for _, p := range vs.Visible {
			for _, id := range ctx.Map.Occupants(p.X, p.Y) {
				if c.Monster.Has(id) {
					return
				}
			}
		}
	}
	stats := c.CombatStats.MustGet(ctx.Player)
	stats.HP = min(stats.HP+1, stats.MaxHP)
}

// pickup queues the last item lying on the player's tile.
func (g *Game) pickup() {
	ctx := g.ctx
	c := ctx.C
	var target ecs.EntityID
	ecs.Each2(c.Item, c.Position, func(id ecs.EntityID, _ *component.Item, pos *component.Position) {
		if pos.X == ctx.PlayerPos.X && pos.Y == ctx.PlayerPos.Y {
			target = id
		}
	})
	if target.IsZero() {
		ctx.Log.Add("There is nothing here to pick up.")
		return
	}
	c.WantsToPickupItem.Set(ctx.Player, &component.WantsToPickupItem{CollectedBy: ctx.Player, Item: target})
}

// pick resolves a menu selection against items; ok is false for an
// out-of-range index.
func pick(items []ecs.EntityID, cmd Command) (ecs.EntityID, bool) {
	if cmd.Kind != CmdSelect || cmd.Index < 0 || cmd.Index >= len(items) {
		return 0, false
	}
	return items[cmd.Index], true
}

func (g *Game) inventoryMenu(cmd Command) {
	if cmd.Kind == CmdCancel {
		g.set(State{Kind: AwaitingInput})
		return
	}
	item, ok := pick(g.Inventory(), cmd)
	if !ok {
		return
	}
	c := g.ctx.C
	if r, ok := c.Ranged.Get(item); ok {
		g.set(State{Kind: ShowTargeting, Range: r.Range, Item: item})
		return
	}
	c.WantsToUseItem.Set(g.ctx.Player, &component.WantsToUseItem{Item: item})
	g.set(State{Kind: PlayerTurn})
}

func (g *Game) dropMenu(cmd Command) {
	if cmd.Kind == CmdCancel {
		g.set(State{Kind: AwaitingInput})
		return
	}
	item, ok := pick(g.Inventory(), cmd)
	if !ok {
		return
	}
	g.ctx.C.WantsToDropItem.Set(g.ctx.Player, &component.WantsToDropItem{Item: item})
	g.set(State{Kind: PlayerTurn})
}

func (g *Game) removeMenu(cmd Command) {
	if cmd.Kind == CmdCancel {
		g.set(State{Kind: AwaitingInput})
		return
	}
	item, ok := pick(g.Equipment(), cmd)
	if !ok {
		return
	}
	g.ctx.C.WantsToRemoveItem.Set(g.ctx.Player, &component.WantsToRemoveItem{Item: item})
	g.set(State{Kind: PlayerTurn})
}

// targeting accepts a tile from Targets; any other tile cancels.
func (g *Game) targeting(cmd Command) {
	switch cmd.Kind {
	case CmdCancel:
		g.set(State{Kind: AwaitingInput})
	case CmdTarget:
		for _, p := range g.Targets() {
			if p == cmd.Target {
				target := p
				g.ctx.C.WantsToUseItem.Set(g.ctx.Player, &component.WantsToUseItem{Item: g.state.Item, Target: &target})
				g.set(State{Kind: PlayerTurn})
				return
			}
		}
		g.set(State{Kind: AwaitingInput})
	}
}

// Targets lists the tiles the player can aim at while targeting: visible
// and within the item's range.
func (g *Game) Targets() []world.Point {
	if g.state.Kind != ShowTargeting {
		return nil
	}
	vs, ok := g.ctx.C.Viewshed.Get(g.ctx.Player)
	if !ok {
		return nil
	}
	pp := g.ctx.PlayerPos
	var out []world.Point
	for _, p := range vs.Visible {
		if math.Hypot(float64(p.X-pp.X), float64(p.Y-pp.Y)) <= float64(g.state.Range) {
			out = append(out, p)
		}
	}
	return out
}
