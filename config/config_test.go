package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("window = %dx%d, want 1280x720", cfg.Window.Width, cfg.Window.Height)
	}
	wantOrder := []int{0, 3, 1, 2}
	for i, idx := range cfg.Gait.Order {
		if idx != wantOrder[i] {
			t.Fatalf("gait order = %v, want %v", cfg.Gait.Order, wantOrder)
		}
	}
	if cfg.Skin.Iso != 0.28 {
		t.Errorf("iso = %v, want 0.28", cfg.Skin.Iso)
	}
	if cfg.Derived.WorldW32 != 1280 || cfg.Derived.WorldH32 != 720 {
		t.Errorf("derived world = %vx%v, want window size", cfg.Derived.WorldW32, cfg.Derived.WorldH32)
	}
	if cfg.Derived.WindowTicks != 600 {
		t.Errorf("window ticks = %d, want 600", cfg.Derived.WindowTicks)
	}
}

func TestLoadOverrideMergesWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	body := "window:\n  width: 640\ngait:\n  trigger_distance: 25\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Window.Width != 640 {
		t.Errorf("width = %d, want 640 from override", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("height = %d, want 720 from defaults", cfg.Window.Height)
	}
	if cfg.Gait.TriggerDistance != 25 {
		t.Errorf("trigger = %v, want 25 from override", cfg.Gait.TriggerDistance)
	}
	if cfg.Gait.DurationTicks != 14 {
		t.Errorf("duration = %v, want 14 from defaults", cfg.Gait.DurationTicks)
	}
	if cfg.Derived.WorldW32 != 640 {
		t.Errorf("derived world width = %v, want 640", cfg.Derived.WorldW32)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load succeeded on a missing file")
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window"},
		{"no creatures", func(c *Config) { c.Population.Count = 0 }, "population"},
		{"negative bone", func(c *Config) { c.Creature.BoneUpper = -1 }, "bone lengths"},
		{"zero hip span", func(c *Config) { c.Creature.HipSpanY = 0 }, "hip span"},
		{"jitter too large", func(c *Config) { c.Creature.Jitter = 1 }, "jitter"},
		{"zero trigger", func(c *Config) { c.Gait.TriggerDistance = 0 }, "trigger_distance"},
		{"fractional duration", func(c *Config) { c.Gait.DurationTicks = 0.5 }, "duration_ticks"},
		{"negative lift", func(c *Config) { c.Gait.Height = -2 }, "height"},
		{"short order", func(c *Config) { c.Gait.Order = []int{0, 1} }, "order"},
		{"repeated order", func(c *Config) { c.Gait.Order = []int{0, 1, 2, 2} }, "repeats"},
		{"order out of range", func(c *Config) { c.Gait.Order = []int{0, 1, 2, 4} }, "out of range"},
		{"zero cell size", func(c *Config) { c.Skin.CellSize = 0 }, "cell_size"},
		{"zero joint radius", func(c *Config) { c.Skin.Knee.Radius = 0 }, "knee radius"},
		{"zero joint weight", func(c *Config) { c.Skin.Foot.Weight = 0 }, "foot weight"},
		{"iso above weights", func(c *Config) { c.Skin.Iso = 1.5 }, "iso"},
		{"zero max speed", func(c *Config) { c.Locomotion.MaxSpeed = 0 }, "max_speed"},
		{"wander scale above one", func(c *Config) { c.Locomotion.WanderScale = 1.2 }, "wander_scale"},
		{"margin swallows world", func(c *Config) { c.Locomotion.Margin = 400 }, "margin"},
		{"zero window sec", func(c *Config) { c.Telemetry.WindowSec = 0 }, "window_sec"},
		{"zoom inverted", func(c *Config) { c.Camera.MinZoom = 2; c.Camera.MaxZoom = 1 }, "max_zoom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load(\"\") failed: %v", err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if err == nil {
				t.Fatal("Validate accepted an invalid config")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Gait.TriggerDistance = 21.5

	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Gait.TriggerDistance != 21.5 {
		t.Errorf("trigger = %v, want 21.5", loaded.Gait.TriggerDistance)
	}
	if loaded.Skin.Core.Radius != cfg.Skin.Core.Radius {
		t.Errorf("core radius = %v, want %v", loaded.Skin.Core.Radius, cfg.Skin.Core.Radius)
	}
}
