package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/l1jgo/delve/internal/game"
	"github.com/l1jgo/delve/internal/world"
)

type dir struct{ dx, dy int }

var (
	keyDirs = map[tcell.Key]dir{
		tcell.KeyLeft:  {-1, 0},
		tcell.KeyRight: {1, 0},
		tcell.KeyUp:    {0, -1},
		tcell.KeyDown:  {0, 1},
	}
	// vi-keys and the numeric keypad.
	runeDirs = map[rune]dir{
		'h': {-1, 0}, '4': {-1, 0},
		'l': {1, 0}, '6': {1, 0},
		'k': {0, -1}, '8': {0, -1},
		'j': {0, 1}, '2': {0, 1},
		'y': {-1, -1}, '7': {-1, -1},
		'u': {1, -1}, '9': {1, -1},
		'b': {-1, 1}, '1': {-1, 1},
		'n': {1, 1}, '3': {1, 1},
	}
)

func direction(ev *tcell.EventKey) (dir, bool) {
	if ev.Key() == tcell.KeyRune {
		d, ok := runeDirs[ev.Rune()]
		return d, ok
	}
	d, ok := keyDirs[ev.Key()]
	return d, ok
}

// Command maps a key press to a game command for the current state. Keys
// that mean nothing in that state map to NoCommand.
func (u *UI) Command(g *game.Game, ev *tcell.EventKey) game.Command {
	u.sync(g)
	switch g.State().Kind {
	case game.MainMenu:
		return u.menuKey(ev)
	case game.AwaitingInput:
		return playKey(ev)
	case game.ShowInventory, game.ShowDropItem, game.ShowRemoveItem:
		return listKey(ev)
	case game.ShowTargeting:
		return u.targetKey(ev)
	case game.GameOver:
		return game.Menu(game.MenuNewGame)
	case game.Console:
		if ev.Key() == tcell.KeyEscape || ev.Rune() == '`' {
			return game.Simple(game.CmdCancel)
		}
	}
	return game.NoCommand
}

func playKey(ev *tcell.EventKey) game.Command {
	if d, ok := direction(ev); ok {
		return game.Move(d.dx, d.dy)
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		return game.Simple(game.CmdSave)
	case tcell.KeyRune:
	default:
		return game.NoCommand
	}
	switch ev.Rune() {
	case 'g':
		return game.Simple(game.CmdPickup)
	case 'i':
		return game.Simple(game.CmdInventory)
	case 'd':
		return game.Simple(game.CmdDrop)
	case 'r':
		return game.Simple(game.CmdRemove)
	case '.':
		return game.Simple(game.CmdDescend)
	case ' ', '5':
		return game.Simple(game.CmdWait)
	case '`':
		return game.Simple(game.CmdConsole)
	}
	return game.NoCommand
}

// listKey selects menu rows by letter, a for the first.
func listKey(ev *tcell.EventKey) game.Command {
	if ev.Key() == tcell.KeyEscape {
		return game.Simple(game.CmdCancel)
	}
	if r := ev.Rune(); ev.Key() == tcell.KeyRune && r >= 'a' && r <= 'z' {
		return game.Select(int(r - 'a'))
	}
	return game.NoCommand
}

func (u *UI) targetKey(ev *tcell.EventKey) game.Command {
	if d, ok := direction(ev); ok {
		u.cursor = world.Point{X: u.cursor.X + d.dx, Y: u.cursor.Y + d.dy}
		return game.NoCommand
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		return game.Simple(game.CmdCancel)
	case tcell.KeyEnter:
		return game.Target(u.cursor)
	}
	return game.NoCommand
}

func (u *UI) menuKey(ev *tcell.EventKey) game.Command {
	entries := u.menuEntries()
	switch ev.Key() {
	case tcell.KeyUp:
		u.menu = (u.menu - 1 + len(entries)) % len(entries)
	case tcell.KeyDown:
		u.menu = (u.menu + 1) % len(entries)
	case tcell.KeyEnter:
		return game.Menu(entries[u.menu].choice)
	case tcell.KeyEscape:
		return game.Menu(game.MenuQuit)
	case tcell.KeyRune:
		for _, e := range entries {
			if e.key == ev.Rune() {
				return game.Menu(e.choice)
			}
		}
	}
	return game.NoCommand
}
