package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func newTestEngine(t *testing.T, dir string) *Engine {
	t.Helper()
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestBuiltinHungerSteps(t *testing.T) {
	e := newTestEngine(t, "")
	tests := []struct {
		from   string
		to     string
		damage int
	}{
		{"Well Fed", "Normal", 0},
		{"Normal", "Hungry", 0},
		{"Hungry", "Starving", 0},
		{"Starving", "Starving", 1},
	}
	for _, tt := range tests {
		got := e.NextHunger(tt.from)
		if got.State != tt.to || got.Damage != tt.damage {
			t.Errorf("NextHunger(%q) = %+v", tt.from, got)
		}
		if tt.from != "Starving" && got.Duration != 200 {
			t.Errorf("NextHunger(%q) duration = %d", tt.from, got.Duration)
		}
	}
	if got := e.WellFedDuration(); got != 20 {
		t.Errorf("well fed duration = %d", got)
	}
}

func TestRoomSpawnLimitsIgnoreDepth(t *testing.T) {
	e := newTestEngine(t, "")
	for _, depth := range []int{1, 2, 9, 30} {
		if got := e.RoomSpawnLimits(depth); got.Monsters != 4 || got.Items != 2 {
			t.Fatalf("depth %d limits = %+v", depth, got)
		}
	}
}

func TestOverrideDirRedefinesPolicy(t *testing.T) {
	dir := t.TempDir()
	src := "function well_fed_duration() return 50 end\n"
	if err := os.WriteFile(filepath.Join(dir, "food.lua"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	e := newTestEngine(t, dir)
	if got := e.WellFedDuration(); got != 50 {
		t.Fatalf("well fed duration = %d, want override", got)
	}
}

func TestBrokenScriptFallsBack(t *testing.T) {
	dir := t.TempDir()
	src := "function room_spawn_limits(ctx) error('boom') end\n"
	if err := os.WriteFile(filepath.Join(dir, "spawn.lua"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	e := newTestEngine(t, dir)
	if got := e.RoomSpawnLimits(3); got.Monsters != 4 || got.Items != 2 {
		t.Fatalf("fallback limits = %+v", got)
	}
}

func TestSyntaxErrorFailsLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.lua"), []byte("function ("), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewEngine(dir, zap.NewNop()); err == nil {
		t.Fatal("expected load error")
	}
}
