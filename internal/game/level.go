package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/l1jgo/delve/internal/core/ecs"
	"github.com/l1jgo/delve/internal/core/event"
	"github.com/l1jgo/delve/internal/world"
)

const maxGenerateAttempts = 100

// NewGame throws the current run away and starts over at depth 1.
func (g *Game) NewGame() {
	ctx := g.ctx
	for _, id := range ctx.World.Entities() {
		ctx.World.MarkForDestruction(id)
	}
	ctx.World.FlushDestroyQueue()
	ctx.Bus.Discard()
	ctx.Particles.Drain()
	ctx.Requests.GameOver = false
	ctx.Requests.MagicMap = 0

	m := g.generate(1)
	ctx.Map = m
	for _, room := range m.Rooms[1:] {
		g.spawnRoom(room, m.Depth)
	}
	x, y := m.Rooms[0].Center()
	ctx.Player = g.spawnPlayer(x, y)
	ctx.PlayerPos = world.Point{X: x, Y: y}

	ctx.Log.Reset("Welcome to the deep")
	event.Emit(ctx.Bus, event.LevelChanged{Depth: m.Depth})
	g.log.Info("new game", zap.Int("rooms", len(m.Rooms)), zap.Int("entities", len(ctx.World.Entities())))
}

// nextLevel keeps the player and everything it carries or wears, builds
// the next depth and drops the player in the first room.
func (g *Game) nextLevel() {
	ctx := g.ctx
	c := ctx.C
	for _, id := range ctx.World.Entities() {
		if g.keepOnLevelChange(id) {
			continue
		}
		ctx.World.MarkForDestruction(id)
	}
	ctx.World.FlushDestroyQueue()

	m := g.generate(ctx.Map.Depth + 1)
	ctx.Map = m
	for _, room := range m.Rooms[1:] {
		g.spawnRoom(room, m.Depth)
	}

	x, y := m.Rooms[0].Center()
	pos := c.Position.MustGet(ctx.Player)
	pos.X, pos.Y = x, y
	ctx.PlayerPos = world.Point{X: x, Y: y}
	if vs, ok := c.Viewshed.Get(ctx.Player); ok {
		vs.Dirty = true
	}

	ctx.Log.Add("You descend to the next level, and take a moment to heal.")
	stats := c.CombatStats.MustGet(ctx.Player)
	stats.HP = max(stats.HP, stats.MaxHP/2)

	event.Emit(ctx.Bus, event.LevelChanged{Depth: m.Depth})
	g.log.Info("level changed", zap.Int("depth", m.Depth), zap.Int("rooms", len(m.Rooms)))
}

func (g *Game) keepOnLevelChange(id ecs.EntityID) bool {
	if id == g.ctx.Player {
		return true
	}
	owner, ok := g.ctx.C.Owned(id)
	return ok && owner == g.ctx.Player
}

// generate builds a map for depth, retrying the rare layout with no rooms.
func (g *Game) generate(depth int) *world.Map {
	o := g.ctx.Opts
	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		m := world.Generate(depth, o.MapWidth, o.MapHeight, g.ctx.RNG)
		if len(m.Rooms) > 0 {
			return m
		}
		g.log.Debug("map has no rooms, regenerating", zap.Int("depth", depth), zap.Int("attempt", attempt))
	}
	panic(fmt.Sprintf("game: no rooms after %d attempts at %dx%d", maxGenerateAttempts, o.MapWidth, o.MapHeight))
}
