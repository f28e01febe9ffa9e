package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/particlefield/internal/effect"
	"github.com/san-kum/particlefield/internal/field"
	"github.com/san-kum/particlefield/internal/sim"
	"github.com/san-kum/particlefield/internal/stars"
)

const (
	DefaultEffect   = "particles"
	DefaultWidth    = 1024.0
	DefaultHeight   = 768.0
	DefaultFPS      = sim.DefaultFPS
	DefaultDebounce = sim.DefaultDebounce
	DefaultTheme    = "night"
)

var (
	ErrUnknownPreset = errors.New("config: unknown preset")
	ErrInvalid       = errors.New("config: invalid")
)

type Config struct {
	Effect         string                `yaml:"effect"`
	Seed           int64                 `yaml:"seed"`
	Width          float64               `yaml:"width"`
	Height         float64               `yaml:"height"`
	FPS            float64               `yaml:"fps"`
	DPR            float64               `yaml:"dpr"`
	ReducedMotion  bool                  `yaml:"reduced_motion"`
	ResizeDebounce time.Duration         `yaml:"resize_debounce"`
	Theme          string                `yaml:"theme"`
	Particles      field.Params          `yaml:"particles"`
	Starfield      stars.StarfieldParams `yaml:"starfield"`
	Shooting       stars.ShootingParams  `yaml:"shooting_stars"`
}

func DefaultConfig() *Config {
	return &Config{
		Effect:         DefaultEffect,
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		FPS:            DefaultFPS,
		DPR:            1,
		ResizeDebounce: DefaultDebounce,
		Theme:          DefaultTheme,
		Particles:      field.DefaultParams(),
		Starfield:      stars.DefaultStarfieldParams(),
		Shooting:       stars.DefaultShootingParams(),
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base, so keys missing from the file keep
// base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %f", ErrInvalid, c.FPS)
	}
	if c.ResizeDebounce < 0 {
		return fmt.Errorf("%w: resize debounce must not be negative, got %s", ErrInvalid, c.ResizeDebounce)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: surface size must not be negative, got %gx%g", ErrInvalid, c.Width, c.Height)
	}
	if err := c.Particles.Validate(); err != nil {
		return fmt.Errorf("%w: particles: %w", ErrInvalid, err)
	}
	for i, l := range c.Starfield.Layers {
		if l.Count < 0 || l.Size <= 0 || l.Period <= 0 {
			return fmt.Errorf("%w: starfield layer %d: count, size and period must be positive", ErrInvalid, i)
		}
	}
	if c.Shooting.Count < 0 {
		return fmt.Errorf("%w: shooting star count must not be negative", ErrInvalid)
	}
	if c.Shooting.DurationMin <= 0 || c.Shooting.DurationMax < c.Shooting.DurationMin {
		return fmt.Errorf("%w: shooting star durations must satisfy 0 < min <= max", ErrInvalid)
	}
	return nil
}

// EffectParams hands the effect tunables to the registry, with the DPR and
// the motion preference applied to the shooting stars.
func (c *Config) EffectParams() effect.Params {
	shooting := c.Shooting
	if c.DPR > 0 {
		shooting.DPR = c.DPR
	}
	shooting.ReducedMotion = c.ReducedMotion
	return effect.Params{
		Field:     c.Particles,
		Starfield: c.Starfield,
		Shooting:  shooting,
		FPS:       c.FPS,
	}
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Width:          c.Width,
		Height:         c.Height,
		FPS:            c.FPS,
		ReducedMotion:  c.ReducedMotion,
		ResizeDebounce: c.ResizeDebounce,
	}
}
