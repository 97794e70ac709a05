package scripting

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

//go:embed scripts/*.lua
var builtin embed.FS

// Engine wraps a single gopher-lua VM holding the game's tunable policies.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine loads the built-in scripts, then every .lua file in overrideDir
// (if set) so it can redefine any policy function.
func NewEngine(overrideDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	if err := e.loadEmbedded(); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load builtin scripts: %w", err)
	}
	if overrideDir != "" {
		if err := e.loadDir(overrideDir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load scripts from %s: %w", overrideDir, err)
		}
	}
	return e, nil
}

func (e *Engine) loadEmbedded() error {
	names, err := fs.Glob(builtin, "scripts/*.lua")
	if err != nil {
		return err
	}
	sort.Strings(names)
	for _, name := range names {
		src, err := builtin.ReadFile(name)
		if err != nil {
			return err
		}
		if err := e.vm.DoString(string(src)); err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", name))
	}
	return nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// HungerStep is the next hunger state after a clock runs out.
type HungerStep struct {
	State    string
	Duration int
	Damage   int
	Message  string
}

var fallbackHunger = map[string]HungerStep{
	"Well Fed": {State: "Normal", Duration: 200},
	"Normal":   {State: "Hungry", Duration: 200},
	"Hungry":   {State: "Starving", Duration: 200},
	"Starving": {State: "Starving", Damage: 1},
}

// NextHunger calls the Lua hunger_step function.
func (e *Engine) NextHunger(state string) HungerStep {
	fallback, ok := fallbackHunger[state]
	if !ok {
		fallback = HungerStep{State: "Normal", Duration: 200}
	}

	t := e.vm.NewTable()
	t.RawSetString("state", lua.LString(state))

	rt, ok := e.callTable("hunger_step", t)
	if !ok {
		return fallback
	}
	return HungerStep{
		State:    lStr(rt, "state"),
		Duration: lInt(rt, "duration"),
		Damage:   lInt(rt, "damage"),
		Message:  lStr(rt, "message"),
	}
}

// WellFedDuration returns how many turns a meal keeps an entity well fed.
func (e *Engine) WellFedDuration() int {
	if n := e.callIntFunc("well_fed_duration"); n > 0 {
		return n
	}
	return 20
}

// SpawnLimits caps how many monsters and items one room can receive.
type SpawnLimits struct {
	Monsters int
	Items    int
}

// RoomSpawnLimits calls the Lua room_spawn_limits function.
func (e *Engine) RoomSpawnLimits(depth int) SpawnLimits {
	t := e.vm.NewTable()
	t.RawSetString("depth", lua.LNumber(depth))

	rt, ok := e.callTable("room_spawn_limits", t)
	if !ok {
		return SpawnLimits{Monsters: 4, Items: 2}
	}
	return SpawnLimits{
		Monsters: max(0, lInt(rt, "monsters")),
		Items:    max(0, lInt(rt, "items")),
	}
}

// callTable calls a global taking one table and returning one table. Errors
// are logged and reported as !ok so callers fall back to defaults.
func (e *Engine) callTable(name string, arg *lua.LTable) (*lua.LTable, bool) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("func", name))
		return nil, false
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, arg); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return nil, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua function returned non-table", zap.String("func", name))
		return nil, false
	}
	return rt, true
}

func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

func lStr(t *lua.LTable, key string) string {
	return lua.LVAsString(t.RawGetString(key))
}

func (e *Engine) callIntFunc(name string, args ...int) int {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("func", name))
		return 0
	}

	lArgs := make([]lua.LValue, len(args))
	for i, a := range args {
		lArgs[i] = lua.LNumber(a)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lArgs...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return 0
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return int(lua.LVAsNumber(result))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
