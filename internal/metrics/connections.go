package metrics

import "github.com/san-kum/particlefield/internal/sim"

// Connections is the mean number of lines drawn per frame.
type Connections struct {
	name    string
	total   int
	samples int
}

func NewConnections() *Connections {
	return &Connections{name: "connections"}
}

func (c *Connections) Name() string { return c.name }

func (c *Connections) Observe(f sim.FrameInfo) {
	c.total += f.Connections
	c.samples++
}

func (c *Connections) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.total) / float64(c.samples)
}

func (c *Connections) Reset() {
	c.total = 0
	c.samples = 0
}

type PeakConnections struct {
	name string
	peak int
}

func NewPeakConnections() *PeakConnections {
	return &PeakConnections{name: "peak_connections"}
}

func (p *PeakConnections) Name() string { return p.name }

func (p *PeakConnections) Observe(f sim.FrameInfo) {
	p.peak = max(p.peak, f.Connections)
}

func (p *PeakConnections) Value() float64 { return float64(p.peak) }

func (p *PeakConnections) Reset() { p.peak = 0 }

// MeanOpacity averages the per-frame mean line opacity over frames that
// drew at least one line.
type MeanOpacity struct {
	name    string
	sum     float64
	samples int
}

func NewMeanOpacity() *MeanOpacity {
	return &MeanOpacity{name: "mean_opacity"}
}

func (m *MeanOpacity) Name() string { return m.name }

func (m *MeanOpacity) Observe(f sim.FrameInfo) {
	if f.Connections == 0 {
		return
	}
	m.sum += f.MeanOpacity
	m.samples++
}

func (m *MeanOpacity) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanOpacity) Reset() {
	m.sum = 0
	m.samples = 0
}
