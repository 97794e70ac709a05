package game

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/core/ecs"
	coresys "github.com/l1jgo/delve/internal/core/system"
	"github.com/l1jgo/delve/internal/persist"
	"github.com/l1jgo/delve/internal/sim"
	"github.com/l1jgo/delve/internal/system"
	"github.com/l1jgo/delve/internal/world"
)

// Game drives one run. Tick is called once per external frame.
type Game struct {
	ctx      *sim.Context
	machine  *machine
	state    State
	pipeline *coresys.Runner
	store    persist.Store
	ready    func() bool
	quit     bool
	log      *zap.Logger
}

type Option func(*Game)

// WithStore sets the save store. Without one, saving only logs.
func WithStore(s persist.Store) Option {
	return func(g *Game) { g.store = s }
}

// WithLoadGate makes Loading wait until ready reports true, for front-ends
// that load assets asynchronously.
func WithLoadGate(ready func() bool) Option {
	return func(g *Game) { g.ready = ready }
}

// New builds a game sitting in the main menu with a fresh run prepared.
func New(ctx *sim.Context, opts ...Option) *Game {
	g := &Game{
		ctx:      ctx,
		machine:  newMachine(MainMenu),
		state:    State{Kind: MainMenu},
		pipeline: system.NewPipeline(ctx),
		ready:    func() bool { return true },
		log:      ctx.Zap,
	}
	for _, o := range opts {
		o(g)
	}
	g.NewGame()
	return g
}

func (g *Game) State() State { return g.state }
func (g *Game) Context() *sim.Context { return g.ctx }
func (g *Game) Map() *world.Map { return g.ctx.Map }

// Quit reports whether the player chose Quit in the main menu.
func (g *Game) Quit() bool { return g.quit }

// Tick advances the state machine by one frame. cmd may be NoCommand;
// states that wait for input then stay where they are.
func (g *Game) Tick(dt time.Duration, cmd Command) {
	system.CullParticles(g.ctx, dt)

	switch g.state.Kind {
	case MainMenu:
		g.mainMenu(cmd)
	case PreLoading:
		g.set(State{Kind: Loading})
	case Loading:
		if g.ready() {
			g.set(State{Kind: PreRun})
		}
	case PreRun:
		g.runTurn(sim.TurnNone)
		g.afterPass(State{Kind: AwaitingInput})
	case AwaitingInput:
		g.set(g.playerInput(cmd))
	case PlayerTurn:
		g.runTurn(sim.TurnPlayer)
		next := State{Kind: MonsterTurn}
		if anim := g.ctx.Requests.MagicMap; !anim.IsZero() {
			g.ctx.Requests.MagicMap = 0
			next = State{Kind: MagicMapReveal, Animation: anim}
		}
		g.afterPass(next)
	case MonsterTurn:
		g.runTurn(sim.TurnMonster)
		g.afterPass(State{Kind: AwaitingInput})
	case MagicMapReveal:
		g.revealStep(dt)
	case ShowInventory:
		g.inventoryMenu(cmd)
	case ShowDropItem:
		g.dropMenu(cmd)
	case ShowRemoveItem:
		g.removeMenu(cmd)
	case ShowTargeting:
		g.targeting(cmd)
	case NextLevel:
		g.nextLevel()
		g.set(State{Kind: PreRun})
	case SaveGame:
		g.save()
		g.set(State{Kind: MainMenu})
	case GameOver:
		if cmd.Kind == CmdMenu || cmd.Kind == CmdCancel {
			g.NewGame()
			g.set(State{Kind: MainMenu})
		}
	case Console:
		if cmd.Kind == CmdCancel || cmd.Kind == CmdConsole {
			g.set(State{Kind: AwaitingInput})
		}
	}
}

func (g *Game) set(s State) {
	if s.Kind != g.state.Kind {
		g.log.Debug("run state", zap.Stringer("from", g.state.Kind), zap.Stringer("to", s.Kind))
	}
	g.machine.move(s.Kind)
	g.state = s
}

// runTurn runs the pipeline once, end to end, as turn.
func (g *Game) runTurn(turn sim.Turn) {
	g.ctx.Turn = turn
	g.pipeline.Tick(0)
	g.ctx.Turn = sim.TurnNone
}

// afterPass moves to next unless the pass killed the player.
func (g *Game) afterPass(next State) {
	if g.ctx.Requests.GameOver {
		g.set(State{Kind: GameOver})
		return
	}
	g.set(next)
}

func (g *Game) revealStep(dt time.Duration) {
	ctx := g.ctx
	m := ctx.Map
	st := g.state
	m.RevealRow(st.Row)
	if st.Row >= m.Height-1 {
		if ctx.World.Alive(st.Animation) {
			ctx.World.MarkForDestruction(st.Animation)
			ctx.World.FlushDestroyQueue()
		}
		g.set(State{Kind: MonsterTurn})
		return
	}

	next := st.Row + 1
	if anim, ok := ctx.C.Animation.Get(st.Animation); ok {
		anim.ElapsedMS += float64(dt) / float64(time.Millisecond)
		perRow := anim.DurationMS / float64(m.Height)
		if anim.ElapsedMS/perRow <= float64(st.Row) {
			next = st.Row
		}
	}
	st.Row = next
	g.set(st)
}

// Drawable is one entity for the renderer.
type Drawable struct {
	Pos        world.Point
	Renderable component.Renderable
}

// Renderables returns every positioned, unhidden renderable, highest render
// order first so that lower orders are drawn on top.
func (g *Game) Renderables() []Drawable {
	c := g.ctx.C
	out := make([]Drawable, 0, c.Renderable.Len())
	ecs.Each2(c.Position, c.Renderable, func(id ecs.EntityID, p *component.Position, r *component.Renderable) {
		if c.Hidden.Has(id) {
			return
		}
		out = append(out, Drawable{Pos: p.Point(), Renderable: *r})
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Renderable.Order > out[j].Renderable.Order
	})
	return out
}

// Inventory lists the player's backpack in entity order.
func (g *Game) Inventory() []ecs.EntityID {
	var out []ecs.EntityID
	g.ctx.C.InBackpack.Each(func(id ecs.EntityID, bp *component.InBackpack) {
		if bp.Owner == g.ctx.Player {
			out = append(out, id)
		}
	})
	return out
}

// Equipment lists the items the player wears in entity order.
func (g *Game) Equipment() []ecs.EntityID {
	var out []ecs.EntityID
	g.ctx.C.Equipped.Each(func(id ecs.EntityID, eq *component.Equipped) {
		if eq.Owner == g.ctx.Player {
			out = append(out, id)
		}
	})
	return out
}
