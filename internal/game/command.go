package game

import "github.com/l1jgo/delve/internal/world"

// CommandKind is one discrete player command. At most one arrives per tick.
type CommandKind uint8

const (
	CmdNone CommandKind = iota
	CmdMove
	CmdWait
	CmdPickup
	CmdInventory
	CmdDrop
	CmdRemove
	CmdDescend
	CmdSave
	CmdCancel
	CmdSelect
	CmdTarget
	CmdMenu
	CmdConsole
)

// MenuChoice is a main-menu or game-over selection.
type MenuChoice uint8

const (
	MenuNewGame MenuChoice = iota
	MenuLoadGame
	MenuQuit
)

// Command carries the command kind and its argument: DX/DY for moves, Index
// for menu item selection, Target for targeting, Choice for the main menu.
type Command struct {
	Kind   CommandKind
	DX, DY int
	Index  int
	Target world.Point
	Choice MenuChoice
}

var NoCommand = Command{}

func Move(dx, dy int) Command { return Command{Kind: CmdMove, DX: dx, DY: dy} }
func Select(i int) Command { return Command{Kind: CmdSelect, Index: i} }
func Target(p world.Point) Command { return Command{Kind: CmdTarget, Target: p} }
func Menu(c MenuChoice) Command { return Command{Kind: CmdMenu, Choice: c} }

// Simple builds a command that takes no argument.
func Simple(k CommandKind) Command { return Command{Kind: k} }
