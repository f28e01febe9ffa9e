package effect

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/san-kum/particlefield/internal/field"
	"github.com/san-kum/particlefield/internal/metrics"
	"github.com/san-kum/particlefield/internal/sim"
	"github.com/san-kum/particlefield/internal/stars"
)

var ErrUnknownEffect = errors.New("effect: unknown effect")

// Params carries the tunables of every registered effect.
type Params struct {
	Field     field.Params
	Starfield stars.StarfieldParams
	Shooting  stars.ShootingParams
	FPS       float64
}

func DefaultParams() Params {
	return Params{
		Field:     field.DefaultParams(),
		Starfield: stars.DefaultStarfieldParams(),
		Shooting:  stars.DefaultShootingParams(),
		FPS:       sim.DefaultFPS,
	}
}

type Registry struct {
	params  Params
	effects map[string]func(rng *rand.Rand) sim.Effect
}

func NewRegistry(params Params) *Registry {
	r := &Registry{
		params:  params,
		effects: make(map[string]func(*rand.Rand) sim.Effect),
	}

	r.effects["particles"] = func(rng *rand.Rand) sim.Effect {
		return NewParticles(r.params.Field, rng)
	}
	r.effects["starfield"] = func(rng *rand.Rand) sim.Effect {
		return stars.NewStarfield(r.params.Starfield, r.params.FPS, rng)
	}
	r.effects["shooting-stars"] = func(rng *rand.Rand) sim.Effect {
		return stars.NewShootingStars(r.params.Shooting, r.params.FPS, rng)
	}

	return r
}

// Get builds a fresh, unsized effect seeded with seed.
func (r *Registry) Get(name string, seed int64) (sim.Effect, error) {
	fn, ok := r.effects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEffect, name)
	}
	return fn(rand.New(rand.NewSource(seed))), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.effects))
	for name := range r.effects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics are only meaningful for effects that report connections;
// the others get none.
func (r *Registry) DefaultMetrics(name string) []sim.Metric {
	if name != "particles" {
		return nil
	}
	return metrics.Default()
}
