// Package config provides YAML-based application configuration loading
// for the Aether Rift hosts.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/aether-rift/internal/core"
)

// Config contains all application configuration.
// Game tuning is fixed in the simulation and is not configurable here.
type Config struct {
	Runtime RuntimeConfig `yaml:"runtime"`
	Input   InputConfig   `yaml:"input"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Audio   AudioConfig   `yaml:"audio"`
}

// RuntimeConfig defines frame rate and seeding.
type RuntimeConfig struct {
	FPS  int   `yaml:"fps"`
	Seed int64 `yaml:"seed"` // 0 = time-based seed per run
}

// InputConfig defines how terminal key presses become held directions.
type InputConfig struct {
	// KeyHold is how long one press keeps its direction held. Terminals
	// report presses and auto-repeat but never releases.
	KeyHold time.Duration `yaml:"key_hold"`
}

// StorageConfig defines where finished runs are recorded.
type StorageConfig struct {
	Path string `yaml:"path"` // Empty = ~/.aether-rift/runs.db
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// AudioConfig toggles sound cues.
type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Validate checks that values are usable by the hosts.
func (c Config) Validate() error {
	var errs []error
	if c.Runtime.FPS <= 0 || c.Runtime.FPS > 240 {
		errs = append(errs, fmt.Errorf("runtime.fps must be in 1..240, got %d", c.Runtime.FPS))
	}
	if c.Input.KeyHold < 0 {
		errs = append(errs, fmt.Errorf("input.key_hold must not be negative, got %s", c.Input.KeyHold))
	}
	if c.Server.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("server.idle_timeout must not be negative, got %s", c.Server.IdleTimeout))
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	return errors.Join(errs...)
}

// HoldTicks converts the key hold duration into simulation ticks (at least 1).
func (c Config) HoldTicks() int {
	if c.Runtime.FPS <= 0 || c.Input.KeyHold <= 0 {
		return 1
	}
	ticks := int(c.Input.KeyHold * time.Duration(c.Runtime.FPS) / time.Second)
	return max(ticks, 1)
}

// RuntimeConfig returns the core runtime config for a terminal of the given size.
func (c Config) RuntimeConfig(screenW, screenH int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  screenW,
		ScreenH:  screenH,
		TickRate: c.Runtime.FPS,
		Seed:     c.Runtime.Seed,
	}
}
