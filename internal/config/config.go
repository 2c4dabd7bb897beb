package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Loop      LoopConfig      `toml:"loop"`
	Collision CollisionConfig `toml:"collision"`
	Scripts   ScriptsConfig   `toml:"scripts"`
	Templates TemplatesConfig `toml:"templates"`
	Logging   LoggingConfig   `toml:"logging"`
	Profile   ProfileConfig   `toml:"profile"`
}

type LoopConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
	// MaxDelta caps the elapsed time handed to World.Update after a stall.
	// Clamping is the driver's job; the core accepts whatever it is given.
	MaxDelta time.Duration `toml:"max_delta"`
}

type CollisionConfig struct {
	Broadphase string  `toml:"broadphase"` // "all" or "grid"
	CellSize   float64 `toml:"cell_size"`  // grid only
}

type ScriptsConfig struct {
	Dir string `toml:"dir"`
}

type TemplatesConfig struct {
	Path string `toml:"path"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type ProfileConfig struct {
	Mode string `toml:"mode"` // "", "cpu", or "mem"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Collision.Broadphase {
	case "all", "grid":
	default:
		return fmt.Errorf("unknown broadphase %q", c.Collision.Broadphase)
	}
	if c.Collision.Broadphase == "grid" && c.Collision.CellSize <= 0 {
		return fmt.Errorf("grid broadphase needs a positive cell_size, got %v", c.Collision.CellSize)
	}
	switch c.Profile.Mode {
	case "", "cpu", "mem":
	default:
		return fmt.Errorf("unknown profile mode %q", c.Profile.Mode)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Loop: LoopConfig{
			TickRate: 16 * time.Millisecond,
			MaxDelta: 250 * time.Millisecond,
		},
		Collision: CollisionConfig{
			Broadphase: "all",
			CellSize:   64,
		},
		Scripts: ScriptsConfig{
			Dir: "scripts",
		},
		Templates: TemplatesConfig{
			Path: "config/templates.yaml",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
