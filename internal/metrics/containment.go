package metrics

import "github.com/san-kum/particlefield/internal/sim"

// Containment is the fraction of frames in which every particle lay fully
// inside the surface.
type Containment struct {
	name       string
	violations int
	samples    int
}

func NewContainment() *Containment {
	return &Containment{name: "containment"}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(f sim.FrameInfo) {
	c.samples++
	if f.Escaped > 0 {
		c.violations++
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}

// Default returns the metric set every run records.
func Default() []sim.Metric {
	return []sim.Metric{
		NewConnections(),
		NewPeakConnections(),
		NewMeanOpacity(),
		NewContainment(),
	}
}
