// Package config loads the TOML runtime configuration, falling back to
// built-in defaults for anything the file leaves unset.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/corridor/parameter"
)

// LayoutConfig tunes the corridor planner
type LayoutConfig struct {
	RoomCount    int   `toml:"room_count"`
	SizeMinX     int   `toml:"size_min_x"`
	SizeMaxX     int   `toml:"size_max_x"`
	SizeMinZ     int   `toml:"size_min_z"`
	SizeMaxZ     int   `toml:"size_max_z"`
	Height       int   `toml:"height"`
	Attempts     int   `toml:"placement_attempts"`
	JitterMax    int   `toml:"cursor_jitter_max"`
	DoorWidthMin int   `toml:"door_width_min"`
	DoorWidthMax int   `toml:"door_width_max"`
	DoorHeight   int   `toml:"door_height"`
	Seed         int64 `toml:"seed"`
}

// BuilderConfig tunes incremental room construction
type BuilderConfig struct {
	Ceiling        bool `toml:"ceiling"`
	PropsMax       int  `toml:"props_max"`
	SpawnBatchSize int  `toml:"spawn_batch_size"`

	// BuildTimeBudgetMs bounds per-tick build work in milliseconds
	BuildTimeBudgetMs int `toml:"build_time_budget_ms"`
}

func (c BuilderConfig) BuildTimeBudget() time.Duration {
	return time.Duration(c.BuildTimeBudgetMs) * time.Millisecond
}

// LifecycleConfig tunes room residency and eviction
type LifecycleConfig struct {
	MaxActiveRooms    int `toml:"max_active_rooms"`
	UnloadDistance    int `toml:"unload_distance"`
	BuildWaitBudgetMs int `toml:"build_wait_budget_ms"`
}

func (c LifecycleConfig) BuildWaitBudget() time.Duration {
	return time.Duration(c.BuildWaitBudgetMs) * time.Millisecond
}

// PoolConfig bounds the entity recycler
type PoolConfig struct {
	MaxSize int `toml:"max_size"`
	Prewarm int `toml:"prewarm"`
}

// DoorConfig tunes curtain transitions
type DoorConfig struct {
	AnimationMs   int     `toml:"animation_ms"`
	StaggerMs     int     `toml:"stagger_ms"`
	GuardMarginMs int     `toml:"guard_margin_ms"`
	MaxRandomYaw  float64 `toml:"max_random_yaw"`
}

func (c DoorConfig) AnimationDuration() time.Duration {
	return time.Duration(c.AnimationMs) * time.Millisecond
}

func (c DoorConfig) StaggerDelay() time.Duration {
	return time.Duration(c.StaggerMs) * time.Millisecond
}

func (c DoorConfig) GuardMargin() time.Duration {
	return time.Duration(c.GuardMarginMs) * time.Millisecond
}

// AudioConfig controls the cue mixer
type AudioConfig struct {
	Enabled    bool    `toml:"enabled"`
	Volume     float64 `toml:"volume"`
	SampleRate int     `toml:"sample_rate"`
}

// LoggingConfig controls the structured logger
type LoggingConfig struct {
	Level   string `toml:"level"`
	File    string `toml:"file"`
	Console bool   `toml:"console"`
}

// Config is the full runtime configuration
type Config struct {
	Layout    LayoutConfig    `toml:"layout"`
	Builder   BuilderConfig   `toml:"builder"`
	Lifecycle LifecycleConfig `toml:"lifecycle"`
	Pool      PoolConfig      `toml:"pool"`
	Door      DoorConfig      `toml:"door"`
	Audio     AudioConfig     `toml:"audio"`
	Logging   LoggingConfig   `toml:"logging"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{
			RoomCount:    parameter.MapRoomCount,
			SizeMinX:     parameter.RoomSizeMinX,
			SizeMaxX:     parameter.RoomSizeMaxX,
			SizeMinZ:     parameter.RoomSizeMinZ,
			SizeMaxZ:     parameter.RoomSizeMaxZ,
			Height:       parameter.RoomHeight,
			Attempts:     parameter.PlacementAttempts,
			JitterMax:    parameter.CursorJitterMax,
			DoorWidthMin: parameter.DoorWidthMin,
			DoorWidthMax: parameter.DoorWidthMax,
			DoorHeight:   parameter.DoorHeight,
		},
		Builder: BuilderConfig{
			Ceiling:           parameter.CeilingEnabled,
			PropsMax:          3,
			SpawnBatchSize:    parameter.SpawnBatchSize,
			BuildTimeBudgetMs: int(parameter.BuildTimeBudget / time.Millisecond),
		},
		Lifecycle: LifecycleConfig{
			MaxActiveRooms:    parameter.MaxActiveRooms,
			UnloadDistance:    parameter.UnloadDistance,
			BuildWaitBudgetMs: int(parameter.BuildWaitBudget / time.Millisecond),
		},
		Pool: PoolConfig{
			MaxSize: parameter.PoolMaxSize,
			Prewarm: parameter.PoolPrewarm,
		},
		Door: DoorConfig{
			AnimationMs:   int(parameter.DoorAnimationDuration / time.Millisecond),
			StaggerMs:     int(parameter.DoorStaggerDelay / time.Millisecond),
			GuardMarginMs: int(parameter.DoorGuardMargin / time.Millisecond),
			MaxRandomYaw:  parameter.DoorMaxRandomYaw,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.8,
			SampleRate: 44100,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "corridor.log",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error; a
// malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the engine cannot run with
func (c *Config) Validate() error {
	if c.Layout.RoomCount < 1 {
		return fmt.Errorf("layout.room_count must be positive, got %d", c.Layout.RoomCount)
	}
	if c.Layout.SizeMinX < 3 || c.Layout.SizeMinZ < 3 || c.Layout.Height < 3 {
		return fmt.Errorf("room dimensions must be at least 3 cells")
	}
	if c.Layout.SizeMaxX < c.Layout.SizeMinX || c.Layout.SizeMaxZ < c.Layout.SizeMinZ {
		return fmt.Errorf("room size max must not be below min")
	}
	if c.Layout.DoorWidthMin < 1 || c.Layout.DoorWidthMax < c.Layout.DoorWidthMin {
		return fmt.Errorf("invalid door width range %d..%d",
			c.Layout.DoorWidthMin, c.Layout.DoorWidthMax)
	}
	if c.Lifecycle.MaxActiveRooms < 1 {
		return fmt.Errorf("lifecycle.max_active_rooms must be positive, got %d",
			c.Lifecycle.MaxActiveRooms)
	}
	if c.Builder.SpawnBatchSize < 1 {
		return fmt.Errorf("builder.spawn_batch_size must be positive, got %d",
			c.Builder.SpawnBatchSize)
	}
	if c.Door.AnimationMs < 0 || c.Door.StaggerMs < 0 || c.Door.GuardMarginMs < 0 {
		return fmt.Errorf("door timings must not be negative")
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume must be in [0,1], got %v", c.Audio.Volume)
	}
	return nil
}
