package field

import (
	"math"
	"math/rand"
)

// Particle is a moving disc. DX and DY are per-frame displacements.
type Particle struct {
	X, Y   float64
	DX, DY float64
	Radius float64
	Color  Color
}

// Connection is a pair of particles closer than the field threshold.
type Connection struct {
	A, B    int
	DistSq  float64
	Opacity float64
}

// Field owns a batch of particles on a surface of fixed size.
// It is not safe for concurrent use.
type Field struct {
	Particles []Particle

	params      Params
	rng         *rand.Rand
	width       float64
	height      float64
	threshold   float64
	thresholdSq float64
	grid        *grid
}

// New generates a field for a width x height surface.
// A nil rng falls back to a time-independent source seeded with 1.
func New(width, height float64, params Params, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	f := &Field{params: params, rng: rng}
	if params.Neighbors == NeighborsGrid {
		f.grid = newGrid()
	}
	f.Resize(width, height)
	return f
}

func (f *Field) Width() float64     { return f.width }
func (f *Field) Height() float64    { return f.height }
func (f *Field) Threshold() float64 { return f.threshold }
func (f *Field) Params() Params     { return f.params }
func (f *Field) Len() int           { return len(f.Particles) }

// Resize discards every particle and regenerates the field for the new
// surface. Nothing carries over from the previous batch.
func (f *Field) Resize(width, height float64) {
	f.width, f.height = width, height
	if width <= 0 || height <= 0 {
		f.threshold, f.thresholdSq = 0, 0
		f.Particles = nil
		return
	}

	f.threshold = f.params.Threshold(width, height)
	f.thresholdSq = f.threshold * f.threshold

	n := f.params.Count(width)
	f.Particles = make([]Particle, n)
	for i := range f.Particles {
		f.Particles[i] = f.spawn()
	}
}

func (f *Field) spawn() Particle {
	p := f.params
	r := p.MinRadius + f.rng.Float64()*(p.MaxRadius-p.MinRadius)
	// on surfaces narrower than a disc the radius shrinks so the free span
	// still covers one full step each way
	if limit := (math.Min(f.width, f.height) - 2*p.MaxSpeed) / 2; r > limit {
		r = math.Max(limit, math.Min(f.width, f.height)/4)
	}
	return Particle{
		X:      f.rng.Float64()*(f.width-2*r) + r,
		Y:      f.rng.Float64()*(f.height-2*r) + r,
		DX:     f.rng.Float64()*2*p.MaxSpeed - p.MaxSpeed,
		DY:     f.rng.Float64()*2*p.MaxSpeed - p.MaxSpeed,
		Radius: r,
		Color:  p.Color,
	}
}

// Advance moves every particle one frame. A velocity component whose next
// step would carry the particle's edge past a boundary is inverted first.
func (f *Field) Advance() {
	for i := range f.Particles {
		p := &f.Particles[i]
		if nx := p.X + p.DX; nx+p.Radius > f.width || nx-p.Radius < 0 {
			p.DX = -p.DX
		}
		if ny := p.Y + p.DY; ny+p.Radius > f.height || ny-p.Radius < 0 {
			p.DY = -p.DY
		}
		p.X += p.DX
		p.Y += p.DY
	}
}

// Opacity maps a squared distance to a line opacity. ok is false at or
// beyond the threshold, where no line is drawn.
func (f *Field) Opacity(distSq float64) (opacity float64, ok bool) {
	if distSq >= f.thresholdSq {
		return 0, false
	}
	return max(f.params.MinOpacity, 1-distSq/f.thresholdSq), true
}

// Connections calls fn for every unordered pair closer than the threshold.
func (f *Field) Connections(fn func(Connection)) {
	if f.thresholdSq == 0 || len(f.Particles) < 2 {
		return
	}
	if f.grid != nil {
		f.grid.connections(f, fn)
		return
	}
	ps := f.Particles
	for a := 0; a < len(ps); a++ {
		for b := a + 1; b < len(ps); b++ {
			f.pair(a, b, fn)
		}
	}
}

func (f *Field) pair(a, b int, fn func(Connection)) {
	dx := f.Particles[a].X - f.Particles[b].X
	dy := f.Particles[a].Y - f.Particles[b].Y
	d := dx*dx + dy*dy
	if op, ok := f.Opacity(d); ok {
		fn(Connection{A: a, B: b, DistSq: d, Opacity: op})
	}
}

// Stats summarizes one rendered frame.
type Stats struct {
	Particles   int
	Connections int
	OpacitySum  float64
}

func (s Stats) MeanOpacity() float64 {
	if s.Connections == 0 {
		return 0
	}
	return s.OpacitySum / float64(s.Connections)
}

// Render clears the surface, fills every particle and strokes every
// connection.
func (f *Field) Render(s Surface) Stats {
	s.Clear(f.width, f.height)
	for _, p := range f.Particles {
		s.FillCircle(p.X, p.Y, p.Radius, p.Color)
	}
	st := Stats{Particles: len(f.Particles)}
	lc := f.params.Color
	f.Connections(func(c Connection) {
		a, b := f.Particles[c.A], f.Particles[c.B]
		s.StrokeLine(a.X, a.Y, b.X, b.Y, f.params.LineWidth, lc.WithAlpha(c.Opacity))
		st.Connections++
		st.OpacitySum += c.Opacity
	})
	return st
}

// Contained reports whether p lies fully inside a width x height surface.
func Contained(p Particle, width, height float64) bool {
	const eps = 1e-9
	return p.X-p.Radius >= -eps && p.X+p.Radius <= width+eps &&
		p.Y-p.Radius >= -eps && p.Y+p.Radius <= height+eps
}

// Dist returns the true distance of a connection, for callers that need it.
func (c Connection) Dist() float64 { return math.Sqrt(c.DistSq) }
