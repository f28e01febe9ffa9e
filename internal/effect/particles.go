package effect

import (
	"math/rand"

	"github.com/san-kum/particlefield/internal/field"
	"github.com/san-kum/particlefield/internal/sim"
)

// Particles adapts a field to the simulator and remembers the stats of the
// last frame it drew.
type Particles struct {
	*field.Field
	last field.Stats
}

func NewParticles(params field.Params, rng *rand.Rand) *Particles {
	return &Particles{Field: field.New(0, 0, params, rng)}
}

func (p *Particles) Name() string { return "particles" }

func (p *Particles) Render(s field.Surface) {
	p.last = p.Field.Render(s)
}

func (p *Particles) Report() sim.Report {
	escaped := 0
	for _, pt := range p.Particles {
		if !field.Contained(pt, p.Width(), p.Height()) {
			escaped++
		}
	}
	return sim.Report{
		Particles:   p.last.Particles,
		Connections: p.last.Connections,
		MeanOpacity: p.last.MeanOpacity(),
		Escaped:     escaped,
	}
}
