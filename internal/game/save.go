package game

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/delve/internal/persist"
)

const storeTimeout = 5 * time.Second

func (g *Game) mainMenu(cmd Command) {
	if cmd.Kind != CmdMenu {
		return
	}
	switch cmd.Choice {
	case MenuNewGame:
		g.NewGame()
		g.set(State{Kind: PreLoading})
	case MenuLoadGame:
		if g.load() {
			g.set(State{Kind: PreLoading})
		}
	case MenuQuit:
		g.quit = true
	}
}

// HasSave reports whether the store holds a saved run. Store errors read
// as no save.
func (g *Game) HasSave() bool {
	if g.store == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	ok, err := g.store.Exists(ctx)
	if err != nil {
		g.log.Warn("check save", zap.Error(err))
		return false
	}
	return ok
}

// save writes the run to the store. Failures are logged and the game moves
// on as if it had saved.
func (g *Game) save() {
	if g.store == nil {
		g.log.Warn("no save store configured, run not saved")
		return
	}
	snap, err := persist.Capture(g.ctx)
	if err != nil {
		g.log.Error("capture run", zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := g.store.Save(ctx, snap); err != nil {
		g.log.Error("save run", zap.Error(err))
		return
	}
	g.log.Info("run saved", zap.Int("depth", snap.Depth), zap.Int("entities", len(snap.Entities)))
}

// load restores the saved run and deletes it from the store. A payload that
// is not a snapshot at all panics, like a failed checksum does in Restore.
func (g *Game) load() bool {
	if g.store == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	snap, err := g.store.Load(ctx)
	switch {
	case errors.Is(err, persist.ErrNoSave):
		g.log.Info("no saved game")
		return false
	case errors.Is(err, persist.ErrCorrupt):
		panic("game: " + err.Error())
	case err != nil:
		g.log.Error("load run", zap.Error(err))
		return false
	}

	persist.Restore(g.ctx, snap)
	if err := g.store.Delete(ctx); err != nil {
		g.log.Warn("delete save", zap.Error(err))
	}
	g.log.Info("run loaded", zap.Int("depth", g.ctx.Map.Depth))
	return true
}
