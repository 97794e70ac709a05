// Package sim holds the state shared by every pipeline system for one run:
// the world, its component tables, the current map and the per-turn
// requests systems raise for the state machine.
package sim

import (
	"go.uber.org/zap"

	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/core/ecs"
	"github.com/l1jgo/delve/internal/core/event"
	"github.com/l1jgo/delve/internal/core/rng"
	"github.com/l1jgo/delve/internal/data"
	"github.com/l1jgo/delve/internal/scripting"
	"github.com/l1jgo/delve/internal/world"
)

// Turn says whose actions the current pipeline pass resolves.
type Turn uint8

const (
	TurnNone Turn = iota // priming pass, nobody acts
	TurnPlayer
	TurnMonster
)

func (t Turn) String() string {
	switch t {
	case TurnPlayer:
		return "player"
	case TurnMonster:
		return "monster"
	}
	return "none"
}

// Options are the tunables systems read.
type Options struct {
	MapWidth       int
	MapHeight      int
	ViewRange      int
	SingleAttacker bool
	// RevealMS is how long the magic-map reveal animation runs.
	RevealMS float64
}

// Requests are raised by systems during a pass and consumed by the state
// machine after it.
type Requests struct {
	GameOver bool
	// MagicMap is the reveal animation entity; zero when not requested.
	MagicMap ecs.EntityID
}

// Context is passed by pointer to every system. Only the pipeline and the
// state machine mutate it, one at a time.
type Context struct {
	World  *ecs.World
	C      *component.Components
	Map    *world.Map
	RNG    *rng.RNG
	Log    *GameLog
	Bus    *event.Bus
	Zap    *zap.Logger
	Opts   Options
	Turn   Turn
	Player ecs.EntityID
	// PlayerPos mirrors the player's Position for cheap lookups.
	PlayerPos world.Point

	Particles *ParticleBuilder
	Requests  Requests

	Scripts *scripting.Engine
	Spawns  *data.SpawnTable
}

// New builds a context with an empty world and an all-wall placeholder map.
func New(r *rng.RNG, scripts *scripting.Engine, spawns *data.SpawnTable, opts Options, log *zap.Logger) *Context {
	w := ecs.NewWorld()
	return &Context{
		World:     w,
		C:         component.New(w),
		Map:       world.NewMap(opts.MapWidth, opts.MapHeight, 0),
		RNG:       r,
		Log:       NewGameLog(log),
		Bus:       event.NewBus(),
		Zap:       log,
		Opts:      opts,
		Particles: &ParticleBuilder{},
		Scripts:   scripts,
		Spawns:    spawns,
	}
}

// SyncPlayer re-derives Player and PlayerPos from the Player marker. Used
// after restoring a snapshot.
func (ctx *Context) SyncPlayer() bool {
	ctx.Player = 0
	ctx.C.Player.Each(func(id ecs.EntityID, _ *component.Player) {
		if ctx.Player.IsZero() {
			ctx.Player = id
		}
	})
	if ctx.Player.IsZero() {
		return false
	}
	if pos, ok := ctx.C.Position.Get(ctx.Player); ok {
		ctx.PlayerPos = pos.Point()
	}
	return true
}

// IsPlayer reports whether id is the player entity.
func (ctx *Context) IsPlayer(id ecs.EntityID) bool {
	return id == ctx.Player
}
