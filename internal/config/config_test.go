package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "delve.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[game]
seed = 42
reveal_duration = "2s"

[ai]
single_attacker = true

[save]
driver = "postgres"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Game.Seed != 42 {
		t.Errorf("seed = %d", cfg.Game.Seed)
	}
	if cfg.Game.RevealDuration != 2*time.Second {
		t.Errorf("reveal duration = %v", cfg.Game.RevealDuration)
	}
	if !cfg.AI.SingleAttacker {
		t.Error("single_attacker not applied")
	}
	if cfg.Save.Driver != "postgres" {
		t.Errorf("driver = %q", cfg.Save.Driver)
	}
	if cfg.Game.MapWidth != 80 || cfg.Game.MapHeight != 43 {
		t.Errorf("map defaults lost: %dx%d", cfg.Game.MapWidth, cfg.Game.MapHeight)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "[game]\nseed = 1\n")
	t.Setenv("DELVE_SEED", "777")
	t.Setenv("DELVE_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Game.Seed != 777 {
		t.Errorf("seed = %d, want env override", cfg.Game.Seed)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	bad := writeConfig(t, "[save]\ndriver = \"mysql\"\n")
	_, err := Load(bad)
	if err == nil || !strings.Contains(err.Error(), "unknown save driver") {
		t.Fatalf("err = %v", err)
	}

	t.Setenv("DELVE_SEED", "not-a-number")
	_, err = Load(writeConfig(t, ""))
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("err = %v", err)
	}
}
