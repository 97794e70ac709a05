package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/l1jgo/delve/internal/audio"
	"github.com/l1jgo/delve/internal/config"
	"github.com/l1jgo/delve/internal/core/rng"
	"github.com/l1jgo/delve/internal/data"
	"github.com/l1jgo/delve/internal/game"
	"github.com/l1jgo/delve/internal/persist"
	"github.com/l1jgo/delve/internal/scripting"
	"github.com/l1jgo/delve/internal/sim"
	"github.com/l1jgo/delve/internal/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/delve.toml"
	if p := os.Getenv("DELVE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Policy scripts
	scripts, err := scripting.NewEngine(cfg.Scripts.Dir, log)
	if err != nil {
		return fmt.Errorf("scripts: %w", err)
	}
	defer scripts.Close()

	// 4. Spawn tables
	spawns, err := loadSpawns(cfg.Data)
	if err != nil {
		return fmt.Errorf("spawn table: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 5. Save store. A run without one still plays; saving just logs.
	var opts []game.Option
	openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	store, err := persist.Open(openCtx, cfg.Save, log)
	cancel()
	if err != nil {
		log.Error("save store unavailable", zap.String("driver", cfg.Save.Driver), zap.Error(err))
	} else {
		defer store.Close()
		opts = append(opts, game.WithStore(store))
	}

	// 6. Simulation
	seed := cfg.Game.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	simCtx := sim.New(rng.New(seed), scripts, spawns, sim.Options{
		MapWidth:       cfg.Game.MapWidth,
		MapHeight:      cfg.Game.MapHeight,
		ViewRange:      cfg.Game.ViewRange,
		SingleAttacker: cfg.AI.SingleAttacker,
		RevealMS:       float64(cfg.Game.RevealDuration) / float64(time.Millisecond),
	}, log)
	g := game.New(simCtx, opts...)

	// 7. Audio
	audio.Attach(simCtx.Bus, audio.NewLogSink(log), log)

	log.Info("delve starting",
		zap.Uint64("seed", seed),
		zap.Int("map_width", cfg.Game.MapWidth),
		zap.Int("map_height", cfg.Game.MapHeight),
		zap.String("save_driver", cfg.Save.Driver))

	// 8. Terminal loop
	ui, err := term.Open(log)
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer ui.Close()

	if err := ui.Run(ctx, g, cfg.Game.FrameTime); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	log.Info("delve stopped")
	return nil
}

// loadConfig falls back to built-in defaults when the file does not exist.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return config.Default()
	}
	return config.Load(path)
}

func loadSpawns(cfg config.DataConfig) (*data.SpawnTable, error) {
	if cfg.SpawnTable == "" {
		return data.DefaultSpawnTable()
	}
	return data.LoadSpawnTable(cfg.SpawnTable)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	return zapCfg.Build()
}
