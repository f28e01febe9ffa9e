package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/particlefield/internal/effect"
	"github.com/san-kum/particlefield/internal/field"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Effect != "particles" {
		t.Errorf("expected effect particles, got %s", cfg.Effect)
	}
	if cfg.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if cfg.ResizeDebounce != 250*time.Millisecond {
		t.Errorf("expected 250ms debounce, got %s", cfg.ResizeDebounce)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 99
	cfg.Particles.Neighbors = field.NeighborsGrid
	cfg.Particles.Color = field.Color{R: 10, G: 20, B: 30, A: 0.5}
	cfg.ResizeDebounce = 100 * time.Millisecond

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Seed != 99 || loaded.Particles.Neighbors != field.NeighborsGrid {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
	if loaded.Particles.Color != cfg.Particles.Color {
		t.Errorf("color %v did not round trip, got %v", cfg.Particles.Color, loaded.Particles.Color)
	}
	if loaded.ResizeDebounce != 100*time.Millisecond {
		t.Errorf("debounce did not round trip, got %s", loaded.ResizeDebounce)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "effect: starfield\nparticles:\n  wide_count: 120\n  color: \"#ff0000\"\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Effect != "starfield" || cfg.Particles.WideCount != 120 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Particles.NarrowCount != field.DefaultNarrowCount || cfg.FPS != DefaultFPS {
		t.Error("unset fields lost their defaults")
	}
	if cfg.Particles.Color != (field.Color{R: 255, A: 1}) {
		t.Errorf("unexpected color %v", cfg.Particles.Color)
	}
}

func TestLoadOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "over.yaml")
	if err := os.WriteFile(path, []byte("seed: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	base, err := GetPreset("particles", "dense")
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadOver(path, base)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Seed != 5 || cfg.Particles.WideCount != 200 {
		t.Errorf("expected file seed over the dense preset, got seed %d wide %d", cfg.Seed, cfg.Particles.WideCount)
	}
	if base.Seed != 0 {
		t.Error("base config was modified")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"negative debounce", func(c *Config) { c.ResizeDebounce = -time.Second }},
		{"negative width", func(c *Config) { c.Width = -1 }},
		{"negative count", func(c *Config) { c.Particles.WideCount = -1 }},
		{"zero radius", func(c *Config) { c.Particles.MinRadius = 0 }},
		{"inverted radius", func(c *Config) { c.Particles.MaxRadius = 0.5 }},
		{"inverted distance", func(c *Config) { c.Particles.MinDistance = 200 }},
		{"unknown neighbors", func(c *Config) { c.Particles.Neighbors = "octree" }},
		{"zero period", func(c *Config) { c.Starfield.Layers[0].Period = 0 }},
		{"inverted durations", func(c *Config) { c.Shooting.DurationMax = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestValidateWrapsNeighbors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Particles.Neighbors = "octree"
	if err := cfg.Validate(); !errors.Is(err, field.ErrUnknownNeighbors) {
		t.Errorf("expected the field error to be wrapped, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg, err := GetPreset("particles", "dense")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Particles.WideCount != 200 || cfg.Particles.Neighbors != field.NeighborsGrid {
		t.Errorf("preset not applied: %+v", cfg.Particles)
	}
	if cfg.FPS != DefaultFPS {
		t.Error("preset should start from the defaults")
	}

	again, _ := GetPreset("particles", "default")
	if again.Particles.WideCount != field.DefaultWideCount {
		t.Error("presets must not share state")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if _, err := GetPreset("particles", "nonexistent"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
	if _, err := GetPreset("nonexistent", "default"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets("particles")
	if len(names) == 0 || names[0] != "calm" {
		t.Errorf("expected sorted presets, got %v", names)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for unknown effect")
	}
	for name := range Presets {
		if _, err := effect.NewRegistry(effect.DefaultParams()).Get(name, 1); err != nil {
			t.Errorf("presets declared for unregistered effect %q", name)
		}
	}
}

func TestEffectParamsDPR(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DPR = 2
	if p := cfg.EffectParams(); p.Shooting.DPR != 2 || p.FPS != cfg.FPS {
		t.Errorf("unexpected effect params %+v", p)
	}
	sc := cfg.SimConfig()
	if sc.Width != DefaultWidth || sc.ResizeDebounce != DefaultDebounce {
		t.Errorf("unexpected sim config %+v", sc)
	}
	if cfg.EffectParams().Shooting.ReducedMotion {
		t.Error("shooting stars should animate by default")
	}
	cfg.ReducedMotion = true
	if !cfg.EffectParams().Shooting.ReducedMotion || !cfg.SimConfig().ReducedMotion {
		t.Error("reduced motion should reach both the effect and the simulator")
	}
}
