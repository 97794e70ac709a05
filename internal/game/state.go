// Package game sequences turns: it owns the run state machine, turns player
// commands into intents, and drives the system pipeline once per gameplay
// turn. It also handles level changes, new games and save/load.
package game

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/l1jgo/delve/internal/core/ecs"
)

// StateKind names a run state.
type StateKind uint8

const (
	MainMenu StateKind = iota
	PreLoading
	Loading
	PreRun
	AwaitingInput
	PlayerTurn
	MonsterTurn
	ShowInventory
	ShowDropItem
	ShowRemoveItem
	ShowTargeting
	MagicMapReveal
	NextLevel
	SaveGame
	GameOver
	Console
)

var stateNames = [...]string{
	MainMenu:       "MainMenu",
	PreLoading:     "PreLoading",
	Loading:        "Loading",
	PreRun:         "PreRun",
	AwaitingInput:  "AwaitingInput",
	PlayerTurn:     "PlayerTurn",
	MonsterTurn:    "MonsterTurn",
	ShowInventory:  "ShowInventory",
	ShowDropItem:   "ShowDropItem",
	ShowRemoveItem: "ShowRemoveItem",
	ShowTargeting:  "ShowTargeting",
	MagicMapReveal: "MagicMapReveal",
	NextLevel:      "NextLevel",
	SaveGame:       "SaveGame",
	GameOver:       "GameOver",
	Console:        "Console",
}

func (k StateKind) String() string {
	if int(k) < len(stateNames) {
		return stateNames[k]
	}
	return fmt.Sprintf("StateKind(%d)", k)
}

// State is the current run state plus its payload. Range and Item are set
// for ShowTargeting; Row and Animation for MagicMapReveal.
type State struct {
	Kind      StateKind
	Range     int
	Item      ecs.EntityID
	Row       int
	Animation ecs.EntityID
}

func (s State) String() string {
	switch s.Kind {
	case ShowTargeting:
		return fmt.Sprintf("%s{range=%d item=%s}", s.Kind, s.Range, s.Item)
	case MagicMapReveal:
		return fmt.Sprintf("%s{row=%d animation=%s}", s.Kind, s.Row, s.Animation)
	}
	return s.Kind.String()
}

// transitions maps each destination to the states allowed to enter it.
// Staying in the same state is always allowed and never consults the table.
var transitions = map[StateKind][]StateKind{
	PreLoading:     {MainMenu},
	Loading:        {PreLoading},
	PreRun:         {Loading, NextLevel},
	AwaitingInput:  {PreRun, MonsterTurn, ShowInventory, ShowDropItem, ShowRemoveItem, ShowTargeting, Console},
	PlayerTurn:     {AwaitingInput, ShowInventory, ShowDropItem, ShowRemoveItem, ShowTargeting},
	MonsterTurn:    {PlayerTurn, MagicMapReveal},
	ShowInventory:  {AwaitingInput},
	ShowDropItem:   {AwaitingInput},
	ShowRemoveItem: {AwaitingInput},
	ShowTargeting:  {ShowInventory},
	MagicMapReveal: {PlayerTurn},
	NextLevel:      {AwaitingInput},
	SaveGame:       {AwaitingInput},
	GameOver:       {PreRun, PlayerTurn, MonsterTurn},
	MainMenu:       {SaveGame, GameOver},
	Console:        {AwaitingInput},
}

// machine validates run state changes against the transition table.
type machine struct {
	fsm *fsm.FSM
}

func newMachine(initial StateKind) *machine {
	events := make(fsm.Events, 0, len(transitions))
	for dst := MainMenu; dst <= Console; dst++ {
		srcs, ok := transitions[dst]
		if !ok {
			continue
		}
		names := make([]string, len(srcs))
		for i, s := range srcs {
			names[i] = s.String()
		}
		events = append(events, fsm.EventDesc{Name: dst.String(), Src: names, Dst: dst.String()})
	}
	return &machine{fsm: fsm.NewFSM(initial.String(), events, fsm.Callbacks{})}
}

// move switches to dst. An undeclared transition is a programming error.
func (m *machine) move(dst StateKind) {
	if m.fsm.Current() == dst.String() {
		return
	}
	if err := m.fsm.Event(context.Background(), dst.String()); err != nil {
		panic(fmt.Sprintf("game: transition %s -> %s: %v", m.fsm.Current(), dst, err))
	}
}

func (m *machine) can(dst StateKind) bool {
	return m.fsm.Current() == dst.String() || m.fsm.Can(dst.String())
}
