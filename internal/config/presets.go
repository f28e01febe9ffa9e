package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/particlefield/internal/field"
	"github.com/san-kum/particlefield/internal/stars"
)

// Presets are keyed by effect, then by name. Each one edits a copy of the
// default configuration.
var Presets = map[string]map[string]func(*Config){
	"particles": {
		"default": func(c *Config) {},
		"dense": func(c *Config) {
			c.Particles.NarrowCount, c.Particles.WideCount = 120, 200
			c.Particles.Neighbors = field.NeighborsGrid
		},
		"sparse": func(c *Config) {
			c.Particles.NarrowCount, c.Particles.WideCount = 20, 30
			c.Particles.MaxDistance = 220
		},
		"calm": func(c *Config) {
			c.Particles.MaxSpeed = 0.1
		},
		"ember": func(c *Config) {
			c.Particles.Color = field.Color{R: 0xfb, G: 0x92, B: 0x3c, A: 0.8}
			c.Particles.MaxRadius = 3
		},
	},
	"starfield": {
		"default": func(c *Config) {},
		"warp": func(c *Config) {
			c.Starfield.Layers = []stars.LayerParams{
				{Count: 175, Size: 1, Period: 10},
				{Count: 50, Size: 2, Period: 20},
				{Count: 25, Size: 3, Period: 30},
			}
		},
	},
	"shooting-stars": {
		"default": func(c *Config) {},
		"shower": func(c *Config) {
			c.Shooting.Count = 30
			c.Shooting.DurationMin, c.Shooting.DurationMax = 3, 6
		},
	},
}

func GetPreset(effectName, preset string) (*Config, error) {
	effectPresets, ok := Presets[effectName]
	if !ok {
		return nil, fmt.Errorf("%w: no presets for effect %q", ErrUnknownPreset, effectName)
	}
	apply, ok := effectPresets[preset]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownPreset, effectName, preset)
	}
	cfg := DefaultConfig()
	cfg.Effect = effectName
	apply(cfg)
	return cfg, nil
}

func ListPresets(effectName string) []string {
	effectPresets, ok := Presets[effectName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(effectPresets))
	for name := range effectPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
