package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Lifecycle.MaxActiveRooms != Default().Lifecycle.MaxActiveRooms {
		t.Fatal("missing file must yield defaults")
	}
}

func TestLoadOverridesSelectively(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corridor.toml")
	body := `
[lifecycle]
max_active_rooms = 8

[door]
animation_ms = 500

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Lifecycle.MaxActiveRooms != 8 {
		t.Fatalf("max_active_rooms = %d, want 8", cfg.Lifecycle.MaxActiveRooms)
	}
	if got := cfg.Door.AnimationDuration(); got != 500*time.Millisecond {
		t.Fatalf("animation duration = %v, want 500ms", got)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("logging level = %q, want debug", cfg.Logging.Level)
	}
	// Untouched sections keep defaults
	if cfg.Layout.RoomCount != Default().Layout.RoomCount {
		t.Fatal("layout defaults lost on partial file")
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[layout\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed file must fail")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rooms", func(c *Config) { c.Layout.RoomCount = 0 }},
		{"tiny room", func(c *Config) { c.Layout.SizeMinX = 2 }},
		{"inverted size range", func(c *Config) { c.Layout.SizeMaxX = c.Layout.SizeMinX - 1 }},
		{"inverted door width", func(c *Config) { c.Layout.DoorWidthMax = 0 }},
		{"zero capacity", func(c *Config) { c.Lifecycle.MaxActiveRooms = 0 }},
		{"zero batch", func(c *Config) { c.Builder.SpawnBatchSize = 0 }},
		{"negative stagger", func(c *Config) { c.Door.StaggerMs = -1 }},
		{"volume out of range", func(c *Config) { c.Audio.Volume = 1.5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
