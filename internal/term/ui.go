// Package term is the terminal front-end: it draws a game with tcell and
// turns key presses into game commands.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/l1jgo/delve/internal/game"
	"github.com/l1jgo/delve/internal/world"
)

type menuEntry struct {
	label  string
	key    rune
	choice game.MenuChoice
}

// UI owns the screen plus the little state the game does not track: the
// targeting cursor and the main menu selection.
type UI struct {
	screen  tcell.Screen
	log     *zap.Logger
	cursor  world.Point
	menu    int
	hasSave bool
	last    game.StateKind
	synced  bool
}

// New wraps an already initialized screen.
func New(screen tcell.Screen, log *zap.Logger) *UI {
	return &UI{screen: screen, log: log}
}

// Open creates and initializes the terminal screen.
func Open(log *zap.Logger) (*UI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.HideCursor()
	return New(screen, log), nil
}

func (u *UI) Close() {
	u.screen.Fini()
}

// sync resets per-state UI fields when the game has moved to a new state.
func (u *UI) sync(g *game.Game) {
	kind := g.State().Kind
	if u.synced && kind == u.last {
		return
	}
	u.synced = true
	u.last = kind
	switch kind {
	case game.ShowTargeting:
		u.cursor = g.Context().PlayerPos
	case game.MainMenu:
		u.hasSave = g.HasSave()
		u.menu = 0
	}
}

func (u *UI) menuEntries() []menuEntry {
	entries := []menuEntry{{"Begin New Game", 'n', game.MenuNewGame}}
	if u.hasSave {
		entries = append(entries, menuEntry{"Load Game", 'l', game.MenuLoadGame})
	}
	return append(entries, menuEntry{"Quit", 'q', game.MenuQuit})
}

// pollEvents forwards screen events until the screen is finalized or done
// closes. events is closed only when the screen runs dry.
func (u *UI) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := u.screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Run drives g at one tick per frame until the player quits, the terminal
// closes or ctx is cancelled. A key press ticks immediately with its command.
func (u *UI) Run(ctx context.Context, g *game.Game, frame time.Duration) error {
	events := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)
	go u.pollEvents(events, done)

	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	last := time.Now()
	u.Draw(g)

	for {
		cmd := game.NoCommand
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				u.screen.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC {
					u.log.Info("interrupted from keyboard")
					return nil
				}
				cmd = u.Command(g, ev)
			}
		case <-ticker.C:
		}

		now := time.Now()
		g.Tick(now.Sub(last), cmd)
		last = now
		if g.Quit() {
			return nil
		}
		u.Draw(g)
	}
}
