package term

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/l1jgo/delve/internal/core/rng"
	"github.com/l1jgo/delve/internal/data"
	"github.com/l1jgo/delve/internal/game"
	"github.com/l1jgo/delve/internal/scripting"
	"github.com/l1jgo/delve/internal/sim"
	"github.com/l1jgo/delve/internal/world"
)

func runeKey(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }
func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(world.DefaultWidth, world.DefaultHeight+1+logLines)
	t.Cleanup(s.Fini)
	return s
}

func newGame(t *testing.T) *game.Game {
	t.Helper()
	scripts, err := scripting.NewEngine("", zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(scripts.Close)
	spawns, err := data.DefaultSpawnTable()
	if err != nil {
		t.Fatal(err)
	}
	opts := sim.Options{MapWidth: world.DefaultWidth, MapHeight: world.DefaultHeight, ViewRange: 8, RevealMS: 1000}
	return game.New(sim.New(rng.New(42), scripts, spawns, opts, zap.NewNop()))
}

func TestPlayKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want game.Command
	}{
		{"arrow left", key(tcell.KeyLeft), game.Move(-1, 0)},
		{"arrow down", key(tcell.KeyDown), game.Move(0, 1)},
		{"vi up", runeKey('k'), game.Move(0, -1)},
		{"vi up-left", runeKey('y'), game.Move(-1, -1)},
		{"vi down-right", runeKey('n'), game.Move(1, 1)},
		{"numpad up-right", runeKey('9'), game.Move(1, -1)},
		{"numpad down-left", runeKey('1'), game.Move(-1, 1)},
		{"pickup", runeKey('g'), game.Simple(game.CmdPickup)},
		{"inventory", runeKey('i'), game.Simple(game.CmdInventory)},
		{"drop", runeKey('d'), game.Simple(game.CmdDrop)},
		{"remove", runeKey('r'), game.Simple(game.CmdRemove)},
		{"descend", runeKey('.'), game.Simple(game.CmdDescend)},
		{"wait space", runeKey(' '), game.Simple(game.CmdWait)},
		{"wait numpad", runeKey('5'), game.Simple(game.CmdWait)},
		{"save", key(tcell.KeyEscape), game.Simple(game.CmdSave)},
		{"console", runeKey('`'), game.Simple(game.CmdConsole)},
		{"unbound", runeKey('z'), game.NoCommand},
		{"unbound key", key(tcell.KeyF5), game.NoCommand},
	}
	for _, tt := range tests {
		if got := playKey(tt.ev); got != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestListKeys(t *testing.T) {
	if got := listKey(runeKey('c')); got != game.Select(2) {
		t.Fatalf("c = %+v", got)
	}
	if got := listKey(key(tcell.KeyEscape)); got != game.Simple(game.CmdCancel) {
		t.Fatalf("esc = %+v", got)
	}
	if got := listKey(runeKey('A')); got != game.NoCommand {
		t.Fatalf("A = %+v", got)
	}
}

func TestTargetCursor(t *testing.T) {
	u := New(newScreen(t), zap.NewNop())
	u.cursor = world.Point{X: 5, Y: 5}
	u.targetKey(key(tcell.KeyRight))
	u.targetKey(runeKey('k'))
	if got := u.targetKey(key(tcell.KeyEnter)); got != game.Target(world.Point{X: 6, Y: 4}) {
		t.Fatalf("enter = %+v", got)
	}
	if got := u.targetKey(key(tcell.KeyEscape)); got != game.Simple(game.CmdCancel) {
		t.Fatalf("esc = %+v", got)
	}
}

func TestMainMenuWithoutSave(t *testing.T) {
	u := New(newScreen(t), zap.NewNop())
	g := newGame(t)
	if got := u.Command(g, runeKey('l')); got != game.NoCommand {
		t.Fatalf("load offered without a save: %+v", got)
	}
	u.Command(g, key(tcell.KeyDown))
	if got := u.Command(g, key(tcell.KeyEnter)); got != game.Menu(game.MenuQuit) {
		t.Fatalf("second entry = %+v", got)
	}
	if got := u.Command(g, runeKey('n')); got != game.Menu(game.MenuNewGame) {
		t.Fatalf("n = %+v", got)
	}
}

func TestDrawShowsPlayerAndLog(t *testing.T) {
	screen := newScreen(t)
	u := New(screen, zap.NewNop())
	g := newGame(t)
	g.Tick(0, game.Menu(game.MenuNewGame))
	for g.State().Kind != game.AwaitingInput {
		g.Tick(0, game.NoCommand)
	}
	u.Draw(g)

	cells, w, _ := screen.GetContents()
	at := func(x, y int) rune {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			return ' '
		}
		return c.Runes[0]
	}
	pp := g.Context().PlayerPos
	if r := at(pp.X, pp.Y); r != '@' {
		t.Fatalf("player cell = %q", r)
	}

	var log strings.Builder
	for x := 0; x < w; x++ {
		log.WriteRune(at(x, world.DefaultHeight+1))
	}
	if !strings.HasPrefix(log.String(), "Welcome to the deep") {
		t.Fatalf("log row = %q", log.String())
	}
}

func TestPollEventsStopsOnceRunReturns(t *testing.T) {
	screen := newScreen(t)
	u := New(screen, zap.NewNop())
	for _, r := range "jjjj" {
		screen.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}

	// Nobody reads events, as after Run has returned.
	events := make(chan tcell.Event)
	done := make(chan struct{})
	close(done)
	exited := make(chan struct{})
	go func() {
		u.pollEvents(events, done)
		close(exited)
	}()
	select {
	case <-exited:
	case <-time.After(2 * time.Second):
		t.Fatal("event reader blocked on send after done closed")
	}
}

func TestRunReturnsOnCancel(t *testing.T) {
	screen := newScreen(t)
	u := New(screen, zap.NewNop())
	for i := 0; i < 8; i++ {
		screen.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := newGame(t)
	errc := make(chan error, 1)
	go func() { errc <- u.Run(ctx, g, time.Hour) }()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run ignored cancellation")
	}
}
