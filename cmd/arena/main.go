package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gridforge/engine/internal/collision"
	"github.com/gridforge/engine/internal/component"
	"github.com/gridforge/engine/internal/config"
	"github.com/gridforge/engine/internal/ecs"
	"github.com/gridforge/engine/internal/factory"
	"github.com/gridforge/engine/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/engine.toml"
	if p := os.Getenv("ARENA_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Optional profiling
	switch cfg.Profile.Mode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	// 4. Build world and systems
	world := ecs.NewWorld()

	var broad collision.Broadphase
	if cfg.Collision.Broadphase == "grid" {
		broad = collision.NewGrid(cfg.Collision.CellSize)
	}
	collisionSys := collision.NewSystem(30, broad, log)

	if _, err := os.Stat(cfg.Scripts.Dir); err == nil {
		scriptSys, err := system.NewScriptSystem(5, cfg.Scripts.Dir, log)
		if err != nil {
			return fmt.Errorf("script system: %w", err)
		}
		world.AddSystem(scriptSys)
	} else {
		log.Info("no script directory, running without behaviors", zap.String("dir", cfg.Scripts.Dir))
	}
	world.AddSystem(system.NewMovementSystem(10))
	world.AddSystem(collisionSys)
	world.AddSystem(system.NewLifetimeSystem(90, log))

	// 5. Wire game rules as listeners
	collisionSys.AddListener(func(ev collision.Event) {
		if ev.Kind != collision.Enter {
			return
		}
		applyContactDamage(world, log, ev.A, ev.B)
	})

	// 6. Spawn the demo scene
	fac, err := factory.Load(cfg.Templates.Path, log)
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	if err := spawnScene(world, fac); err != nil {
		return fmt.Errorf("spawn scene: %w", err)
	}

	// 7. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Loop.TickRate)
	defer ticker.Stop()

	log.Info("arena started",
		zap.Duration("tick_rate", cfg.Loop.TickRate),
		zap.String("broadphase", cfg.Collision.Broadphase),
		zap.Strings("templates", fac.Names()))

	last := time.Now()
	statCounter := 0
	const statInterval = 300

	for {
		select {
		case now := <-ticker.C:
			delta := now.Sub(last)
			last = now
			// The core performs no clamping; capping runaway deltas after a
			// stall is the driver's responsibility.
			if delta > cfg.Loop.MaxDelta {
				delta = cfg.Loop.MaxDelta
			}
			world.Update(delta.Seconds())

			statCounter++
			if statCounter >= statInterval {
				statCounter = 0
				log.Info("world stats", zap.Int("entities", len(world.Entities())))
			}
		case sig := <-shutdownCh:
			log.Info("shutting down", zap.String("signal", sig.String()))
			world.Clear()
			return nil
		}
	}
}

// spawnScene builds a ring of crates around scattered drones.
func spawnScene(world *ecs.World, fac *factory.Factory) error {
	for i := 0; i < 8; i++ {
		e, err := fac.Spawn("crate", 100+float64(i%4)*120, 100+float64(i/4)*200)
		if err != nil {
			return err
		}
		world.AddEntity(e)
	}
	for i := 0; i < 12; i++ {
		e, err := fac.Spawn("drone", 60+rand.Float64()*400, 60+rand.Float64()*300)
		if err != nil {
			return err
		}
		world.AddEntity(e)
	}
	return nil
}

// applyContactDamage is the demo's game rule: entities with Health lose one
// hit point on first contact and are removed when it reaches zero.
func applyContactDamage(world *ecs.World, log *zap.Logger, entities ...*ecs.Entity) {
	for _, e := range entities {
		hc, ok := e.Component(ecs.TypeHealth)
		if !ok {
			continue
		}
		h := hc.(*component.Health)
		if h.Damage(1) {
			continue
		}
		log.Info("entity destroyed by contact", zap.Uint64("entity", uint64(e.ID())))
		world.RemoveEntity(e.ID())
	}
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
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
