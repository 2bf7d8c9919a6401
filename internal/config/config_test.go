package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Simulation.Integrator != "euler_cromer" {
		t.Errorf("expected integrator euler_cromer, got %s", cfg.Simulation.Integrator)
	}
	if cfg.Data.Path != "data/hyperion_data.json" {
		t.Errorf("unexpected data path %s", cfg.Data.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if cfg.Steps() != 10000 {
		t.Errorf("expected 10000 steps, got %d", cfg.Steps())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Simulation.Dt = 0 }},
		{"negative duration", func(c *Config) { c.Simulation.Duration = -1 }},
		{"duration below dt", func(c *Config) { c.Simulation.Duration = c.Simulation.Dt / 2 }},
		{"unknown integrator", func(c *Config) { c.Simulation.Integrator = "rk45" }},
		{"empty data path", func(c *Config) { c.Data.Path = "" }},
		{"origin", func(c *Config) { c.Hyperion.X0, c.Hyperion.Y0 = 0, 0 }},
		{"zero window", func(c *Config) { c.Plots.Window = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hyperion.yaml")
	doc := "simulation:\n  integrator: rk4\n  dt: 0.001\nhyperion:\n  vy0: 5\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Simulation.Integrator != "rk4" || cfg.Simulation.Dt != 0.001 {
		t.Errorf("simulation not overridden: %+v", cfg.Simulation)
	}
	if cfg.Hyperion.VY0 != 5 {
		t.Errorf("expected vy0 5, got %f", cfg.Hyperion.VY0)
	}
	if cfg.Hyperion.X0 != DefaultX0 || cfg.Simulation.Duration != DefaultDuration {
		t.Error("unset fields should keep defaults")
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("simulation:\n  dt: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.yaml")
	cfg := GetPreset("escape")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *cfg {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", got, cfg)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("circular")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if math.Abs(cfg.Hyperion.VY0-2*math.Pi) > 1e-12 {
		t.Errorf("expected vy0 2π, got %f", cfg.Hyperion.VY0)
	}
	if cfg.Simulation.Dt != DefaultDt {
		t.Error("preset should keep default simulation settings")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	want := []string{"circular", "default", "elliptical", "escape"}
	if len(presets) != len(want) {
		t.Fatalf("expected %v, got %v", want, presets)
	}
	for i := range want {
		if presets[i] != want[i] {
			t.Errorf("presets[%d] = %s, want %s", i, presets[i], want[i])
		}
	}
}
