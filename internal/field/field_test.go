package field

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"
)

type op struct {
	kind string
	args []float64
	c    Color
}

type recorder struct {
	ops []op
}

func (r *recorder) Clear(w, h float64) {
	r.ops = append(r.ops, op{kind: "clear", args: []float64{w, h}})
}
func (r *recorder) FillRect(x, y, w, h float64, c Color) {
	r.ops = append(r.ops, op{kind: "rect", args: []float64{x, y, w, h}, c: c})
}
func (r *recorder) FillCircle(x, y, rad float64, c Color) {
	r.ops = append(r.ops, op{kind: "circle", args: []float64{x, y, rad}, c: c})
}
func (r *recorder) StrokeLine(x0, y0, x1, y1, w float64, c Color) {
	r.ops = append(r.ops, op{kind: "line", args: []float64{x0, y0, x1, y1, w}, c: c})
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, o := range r.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}

func newTestField(w, h float64, seed int64) *Field {
	return New(w, h, DefaultParams(), rand.New(rand.NewSource(seed)))
}

func TestParticleCountTiers(t *testing.T) {
	tests := []struct {
		width    float64
		expected int
	}{
		{700, 50},
		{767.9, 50},
		{768, 80},
		{1024, 80},
		{0, 0},
	}

	for _, tt := range tests {
		f := newTestField(tt.width, 600, 1)
		if f.Len() != tt.expected {
			t.Errorf("width %.1f: expected %d particles, got %d", tt.width, tt.expected, f.Len())
		}
	}
}

func TestThresholdClamp(t *testing.T) {
	tests := []struct {
		w, h     float64
		expected float64
	}{
		{300, 300, 90},
		{1920, 1080, 160},
		{700, 700, 126},
		{1024, 500, 90},
	}

	for _, tt := range tests {
		f := newTestField(tt.w, tt.h, 1)
		if math.Abs(f.Threshold()-tt.expected) > 1e-9 {
			t.Errorf("%vx%v: expected threshold %f, got %f", tt.w, tt.h, tt.expected, f.Threshold())
		}
		if math.Abs(f.thresholdSq-tt.expected*tt.expected) > 1e-6 {
			t.Errorf("%vx%v: squared threshold not cached", tt.w, tt.h)
		}
	}
}

func TestInitialization(t *testing.T) {
	f := newTestField(1024, 768, 7)
	p := DefaultParams()
	for i, pt := range f.Particles {
		if pt.Radius < p.MinRadius || pt.Radius >= p.MaxRadius {
			t.Errorf("particle %d: radius %f outside [1,6)", i, pt.Radius)
		}
		if math.Abs(pt.DX) > p.MaxSpeed || math.Abs(pt.DY) > p.MaxSpeed {
			t.Errorf("particle %d: velocity (%f,%f) outside [-0.25,0.25)", i, pt.DX, pt.DY)
		}
		if !Contained(pt, f.Width(), f.Height()) {
			t.Errorf("particle %d spawned outside the surface: %+v", i, pt)
		}
		if pt.Color != p.Color {
			t.Errorf("particle %d: color %s", i, pt.Color)
		}
	}
}

func TestAdvanceContainment(t *testing.T) {
	for _, size := range [][2]float64{{300, 200}, {1024, 768}, {40, 40}} {
		f := newTestField(size[0], size[1], 42)
		for step := 0; step < 20000; step++ {
			f.Advance()
			for i, p := range f.Particles {
				if !Contained(p, size[0], size[1]) {
					t.Fatalf("%v step %d particle %d escaped: %+v", size, step, i, p)
				}
			}
		}
	}
}

func TestTinySurfaceContainment(t *testing.T) {
	for _, size := range [][2]float64{{8, 8}, {3, 400}, {12, 2}} {
		f := newTestField(size[0], size[1], 3)
		if f.Len() == 0 {
			t.Fatalf("%v: expected particles", size)
		}
		for step := 0; step < 1000; step++ {
			for i, p := range f.Particles {
				if !Contained(p, size[0], size[1]) {
					t.Fatalf("%v step %d particle %d outside: %+v", size, step, i, p)
				}
			}
			f.Advance()
		}
	}
}

func TestReflection(t *testing.T) {
	tests := []struct {
		name           string
		p              Particle
		wantDX, wantDY float64
		wantX, wantY   float64
	}{
		{
			name:   "right edge",
			p:      Particle{X: 96, Y: 50, DX: 0.25, DY: 0.1, Radius: 3.9},
			wantDX: -0.25, wantDY: 0.1,
			wantX: 95.75, wantY: 50.1,
		},
		{
			name:   "left edge",
			p:      Particle{X: 2.1, Y: 50, DX: -0.2, DY: 0, Radius: 2},
			wantDX: 0.2, wantDY: 0,
			wantX: 2.3, wantY: 50,
		},
		{
			name:   "corner flips both axes independently",
			p:      Particle{X: 1.1, Y: 98.9, DX: -0.2, DY: 0.2, Radius: 1},
			wantDX: 0.2, wantDY: -0.2,
			wantX: 1.3, wantY: 98.7,
		},
		{
			name:   "interior untouched",
			p:      Particle{X: 50, Y: 50, DX: 0.1, DY: -0.1, Radius: 5},
			wantDX: 0.1, wantDY: -0.1,
			wantX: 50.1, wantY: 49.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestField(100, 100, 1)
			f.Particles = []Particle{tt.p}
			f.Advance()
			got := f.Particles[0]
			if got.DX != tt.wantDX || got.DY != tt.wantDY {
				t.Errorf("velocity: expected (%f,%f), got (%f,%f)", tt.wantDX, tt.wantDY, got.DX, got.DY)
			}
			if math.Abs(got.X-tt.wantX) > 1e-9 || math.Abs(got.Y-tt.wantY) > 1e-9 {
				t.Errorf("position: expected (%f,%f), got (%f,%f)", tt.wantX, tt.wantY, got.X, got.Y)
			}

			// the flipped velocity carries on next step without flipping again
			f.Advance()
			if f.Particles[0].DX != tt.wantDX {
				t.Errorf("dx flipped twice: %f", f.Particles[0].DX)
			}
		})
	}
}

func TestOpacityMonotonic(t *testing.T) {
	f := newTestField(1024, 768, 1)
	prev := math.Inf(1)
	steps := 1000
	for i := 0; i < steps; i++ {
		d := f.Threshold() * float64(i) / float64(steps)
		op, ok := f.Opacity(d * d)
		if !ok {
			t.Fatalf("distance %f below threshold %f not drawn", d, f.Threshold())
		}
		if op > prev {
			t.Fatalf("opacity increased at distance %f: %f > %f", d, op, prev)
		}
		if op < DefaultMinOpacity || op > 1 {
			t.Fatalf("opacity %f out of range", op)
		}
		prev = op
	}

	if _, ok := f.Opacity(f.thresholdSq); ok {
		t.Error("line drawn at exactly the threshold")
	}
	if _, ok := f.Opacity(f.thresholdSq * 4); ok {
		t.Error("line drawn beyond the threshold")
	}
	if op, _ := f.Opacity(0); op != 1 {
		t.Errorf("expected full opacity at distance 0, got %f", op)
	}
}

func TestRender(t *testing.T) {
	f := newTestField(800, 600, 3)
	r := &recorder{}
	drawn := f.Render(r).Connections

	if len(r.ops) == 0 || r.ops[0].kind != "clear" {
		t.Fatal("render must clear the surface first")
	}
	if r.ops[0].args[0] != 800 || r.ops[0].args[1] != 600 {
		t.Errorf("clear covered %v, expected whole surface", r.ops[0].args)
	}
	if n := r.count("circle"); n != f.Len() {
		t.Errorf("expected %d discs, got %d", f.Len(), n)
	}
	if n := r.count("line"); n != drawn {
		t.Errorf("render reported %d connections but stroked %d", drawn, n)
	}

	for _, o := range r.ops {
		if o.kind != "line" {
			continue
		}
		dx, dy := o.args[0]-o.args[2], o.args[1]-o.args[3]
		d2 := dx*dx + dy*dy
		if d2 >= f.thresholdSq {
			t.Errorf("line of squared length %f at or beyond threshold %f", d2, f.thresholdSq)
		}
		want := math.Max(DefaultMinOpacity, 1-d2/f.thresholdSq)
		if math.Abs(o.c.A-want) > 1e-9 {
			t.Errorf("line opacity %f, expected %f", o.c.A, want)
		}
	}
}

func TestRenderCloseParticles(t *testing.T) {
	f := newTestField(800, 600, 3)
	f.Particles = []Particle{
		{X: 100, Y: 100, Radius: 2, Color: White},
		{X: 110, Y: 100, Radius: 2, Color: White},
		{X: 700, Y: 500, Radius: 2, Color: White},
	}
	r := &recorder{}
	if n := f.Render(r).Connections; n != 1 {
		t.Fatalf("expected exactly one connection, got %d", n)
	}
}

func TestResizeRegenerates(t *testing.T) {
	f := newTestField(1024, 768, 9)
	before := append([]Particle(nil), f.Particles...)

	f.Resize(700, 500)
	if f.Len() != 50 {
		t.Errorf("expected 50 particles after narrowing, got %d", f.Len())
	}
	if f.Threshold() != 90 {
		t.Errorf("expected threshold 90, got %f", f.Threshold())
	}
	for _, p := range f.Particles {
		if !Contained(p, 700, 500) {
			t.Fatalf("regenerated particle outside the surface: %+v", p)
		}
	}

	f.Resize(1024, 768)
	same := 0
	for i := range before {
		if before[i] == f.Particles[i] {
			same++
		}
	}
	if same == len(before) {
		t.Error("resize carried particle state over")
	}
}

func TestDegenerateSurface(t *testing.T) {
	for _, size := range [][2]float64{{0, 0}, {0, 500}, {800, 0}, {-10, 10}} {
		f := newTestField(size[0], size[1], 1)
		if f.Len() != 0 {
			t.Errorf("%v: expected no particles, got %d", size, f.Len())
		}
		if f.Threshold() != 0 {
			t.Errorf("%v: expected zero threshold, got %f", size, f.Threshold())
		}
		f.Advance()
		r := &recorder{}
		if n := f.Render(r).Connections; n != 0 || len(r.ops) != 1 {
			t.Errorf("%v: expected a blank frame, got %d ops", size, len(r.ops))
		}
	}
}

func collect(f *Field) []Connection {
	var cs []Connection
	f.Connections(func(c Connection) { cs = append(cs, c) })
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].A != cs[j].A {
			return cs[i].A < cs[j].A
		}
		return cs[i].B < cs[j].B
	})
	return cs
}

func TestGridMatchesPairs(t *testing.T) {
	gridParams := DefaultParams()
	gridParams.Neighbors = NeighborsGrid

	for seed := int64(1); seed <= 5; seed++ {
		pairs := New(1280, 720, DefaultParams(), rand.New(rand.NewSource(seed)))
		grid := New(1280, 720, gridParams, rand.New(rand.NewSource(seed)))

		for step := 0; step < 200; step++ {
			want, got := collect(pairs), collect(grid)
			if len(want) != len(got) {
				t.Fatalf("seed %d step %d: pairs found %d connections, grid %d", seed, step, len(want), len(got))
			}
			for i := range want {
				if want[i] != got[i] {
					t.Fatalf("seed %d step %d: connection %d differs: %+v vs %+v", seed, step, i, want[i], got[i])
				}
			}
			pairs.Advance()
			grid.Advance()
		}
		if grid.grid.occupied() == 0 {
			t.Errorf("seed %d: grid never populated", seed)
		}
	}
}

func TestScaledSurface(t *testing.T) {
	r := &recorder{}
	s := Scaled(r, 2)
	s.Clear(10, 20)
	s.FillCircle(1, 2, 3, White)
	s.StrokeLine(1, 1, 2, 2, 1, White)

	if got := r.ops[0].args; got[0] != 20 || got[1] != 40 {
		t.Errorf("clear not scaled: %v", got)
	}
	if got := r.ops[1].args; got[0] != 2 || got[1] != 4 || got[2] != 6 {
		t.Errorf("circle not scaled: %v", got)
	}
	if got := r.ops[2].args; got[4] != 2 {
		t.Errorf("line width not scaled: %v", got)
	}
	if Scaled(r, 1) != Surface(r) {
		t.Error("unit scale should return the surface itself")
	}
}

func BenchmarkConnectionsPairs(b *testing.B) {
	f := newTestField(1920, 1080, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Advance()
		f.Connections(func(Connection) {})
	}
}

func BenchmarkConnectionsGrid(b *testing.B) {
	p := DefaultParams()
	p.Neighbors = NeighborsGrid
	f := New(1920, 1080, p, rand.New(rand.NewSource(1)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Advance()
		f.Connections(func(Connection) {})
	}
}

func TestParamsSet(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		name  string
		value float64
		get   func(Params) float64
	}{
		{"wide_count", 120, func(p Params) float64 { return float64(p.WideCount) }},
		{"max_distance", 200, func(p Params) float64 { return p.MaxDistance }},
		{"max_speed", 0.1, func(p Params) float64 { return p.MaxSpeed }},
	}
	for _, tt := range tests {
		if err := p.Set(tt.name, tt.value); err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got := tt.get(p); got != tt.value {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.value, got)
		}
	}
	if err := p.Set("gravity", 1); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestDiscardSurface(t *testing.T) {
	f := New(400, 300, DefaultParams(), rand.New(rand.NewSource(1)))
	if st := f.Render(Discard); st.Particles != f.Len() {
		t.Errorf("expected stats for %d particles, got %d", f.Len(), st.Particles)
	}
}
