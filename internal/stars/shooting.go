package stars

import (
	"math"
	"math/rand"

	"github.com/san-kum/particlefield/internal/field"
)

const (
	emPx        = 16.0
	startEm     = 104.0
	endEm       = -30.0
	layerAngle  = -math.Pi / 4
	restOpacity = 0.3
)

type ShootingParams struct {
	Count       int         `yaml:"count"`
	Color       field.Color `yaml:"color"`
	Background  field.Color `yaml:"background"`
	Horizon     field.Color `yaml:"horizon"`
	TailMinEm   float64     `yaml:"tail_min_em"`
	TailMaxEm   float64     `yaml:"tail_max_em"`
	DurationMin float64     `yaml:"duration_min"`
	DurationMax float64     `yaml:"duration_max"`
	Stagger     float64     `yaml:"stagger"`
	// GlowWidth is the widest surface drawn without the glow and the tail fade.
	GlowWidth float64 `yaml:"glow_width"`
	DPR       float64 `yaml:"dpr"`
	// ReducedMotion parks every streak at the start of its fall.
	ReducedMotion bool `yaml:"-"`
}

func DefaultShootingParams() ShootingParams {
	return ShootingParams{
		Count:       10,
		Color:       field.Color{R: 0x7d, G: 0xd3, B: 0xfc, A: 1},
		Background:  field.Color{R: 0x0c, G: 0x0d, B: 0x13, A: 1},
		Horizon:     field.Color{R: 0x0d, G: 0x1d, B: 0x31, A: 1},
		TailMinEm:   5,
		TailMaxEm:   7.5,
		DurationMin: 6,
		DurationMax: 12,
		Stagger:     10,
		GlowWidth:   750,
		DPR:         1,
	}
}

// Streak is one shooting star. Top is a fraction of the surface height.
type Streak struct {
	Tail     float64
	Top      float64
	Duration float64
	Delay    float64
}

// State is a streak's pose at a moment, in unrotated layer coordinates.
type State struct {
	HeadX, HeadY float64
	Tail         float64
	Opacity      float64
}

// At evaluates the fall and tail-fade keyframes at time t on a surface of
// the given height. ok is false before the streak's delay has elapsed.
func (s Streak) At(t, height float64) (State, bool) {
	if t < s.Delay || s.Duration <= 0 {
		return State{}, false
	}
	p := math.Mod(t-s.Delay, s.Duration) / s.Duration
	st := State{
		HeadX: (startEm + (endEm-startEm)*p) * emPx,
		HeadY: s.Top * height,
	}
	switch {
	case p <= 0.5:
		st.Tail, st.Opacity = s.Tail, 1
	case p <= 0.7:
		k := (p - 0.5) / 0.2
		st.Tail, st.Opacity = s.Tail*(1-k), 1-0.6*k
	case p <= 0.8:
		st.Tail, st.Opacity = 0, 0.4
	default:
		k := (p - 0.8) / 0.2
		st.Tail, st.Opacity = 0, 0.4*(1-k)
	}
	return st, true
}

// Rest is the pose of a streak with its animations removed.
func (s Streak) Rest(height float64) State {
	return State{HeadX: startEm * emPx, HeadY: s.Top * height, Tail: s.Tail, Opacity: restOpacity}
}

// ShootingStars draws diagonal streaks over a dark backdrop. The streak
// layer is rotated -45 degrees about its center, which sits at half the
// width and 60% of the height (the layer is 120% tall).
type ShootingStars struct {
	params        ShootingParams
	streaks       []Streak
	fps           float64
	t             float64
	width, height float64
}

// randomRange returns an integer in [lo, hi].
func randomRange(rng *rand.Rand, lo, hi int) int {
	return rng.Intn(hi-lo+1) + lo
}

func NewShootingStars(params ShootingParams, fps float64, rng *rand.Rand) *ShootingStars {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if fps <= 0 {
		fps = DefaultFPS
	}
	ss := &ShootingStars{params: params, fps: fps}
	ss.streaks = make([]Streak, params.Count)
	for i := range ss.streaks {
		tail := float64(randomRange(rng, int(params.TailMinEm*100), int(params.TailMaxEm*100))) / 100
		ss.streaks[i] = Streak{
			Tail:     tail * emPx,
			Top:      float64(randomRange(rng, 0, 10000)) / 10000,
			Duration: float64(randomRange(rng, int(params.DurationMin*1000), int(params.DurationMax*1000))) / 1000,
			Delay:    float64(i) * params.Stagger / float64(params.Count),
		}
	}
	return ss
}

func (ss *ShootingStars) Name() string           { return "shooting-stars" }
func (ss *ShootingStars) Streaks() []Streak      { return ss.streaks }
func (ss *ShootingStars) Time() float64          { return ss.t }
func (ss *ShootingStars) SetTime(t float64)      { ss.t = t }
func (ss *ShootingStars) SetColor(c field.Color) { ss.params.Color = c }
func (ss *ShootingStars) SetDPR(dpr float64)     { ss.params.DPR = dpr }

func (ss *ShootingStars) Resize(width, height float64) {
	ss.width, ss.height = width, height
}

func (ss *ShootingStars) Advance() {
	ss.t += 1 / ss.fps
}

// Thickness is the tail height in logical units.
func (ss *ShootingStars) Thickness() float64 {
	return math.Max(2, math.Round(2*ss.params.DPR))
}

func (ss *ShootingStars) rotate(x, y float64) (float64, float64) {
	cx, cy := ss.width/2, ss.height*0.6
	sin, cos := math.Sincos(layerAngle)
	dx, dy := x-cx, y-cy
	return cx + dx*cos - dy*sin, cy + dx*sin + dy*cos
}

// Segment returns the on-surface endpoints of streak i's tail at the
// current time: the head first. Surfaces no wider than GlowWidth keep the
// full tail for the whole fall.
func (ss *ShootingStars) Segment(i int) (x0, y0, x1, y1, opacity float64, ok bool) {
	s := ss.streaks[i]
	var st State
	if ss.params.ReducedMotion {
		st, ok = s.Rest(ss.height), true
	} else if st, ok = s.At(ss.t, ss.height); ok && ss.width <= ss.params.GlowWidth {
		st.Tail, st.Opacity = s.Tail, 1
	}
	if !ok {
		return 0, 0, 0, 0, 0, false
	}
	x0, y0 = ss.rotate(st.HeadX, st.HeadY)
	x1, y1 = ss.rotate(st.HeadX+st.Tail, st.HeadY)
	return x0, y0, x1, y1, st.Opacity, true
}

func (ss *ShootingStars) Render(s field.Surface) {
	s.Clear(ss.width, ss.height)
	ss.renderBackdrop(s)

	thick := ss.Thickness()
	glow := ss.width > ss.params.GlowWidth
	c := ss.params.Color
	for i := range ss.streaks {
		x0, y0, x1, y1, op, ok := ss.Segment(i)
		if !ok || op <= 0 {
			continue
		}
		if x0 == x1 && y0 == y1 {
			s.FillCircle(x0, y0, thick/2, c.WithAlpha(op))
			continue
		}
		if glow {
			s.StrokeLine(x0, y0, x1, y1, thick*4, c.WithAlpha(op*0.15))
		}
		// three segments approximate the head-to-tail gradient
		const parts = 3
		for k := 0; k < parts; k++ {
			a, b := float64(k)/parts, float64(k+1)/parts
			s.StrokeLine(
				x0+(x1-x0)*a, y0+(y1-y0)*a,
				x0+(x1-x0)*b, y0+(y1-y0)*b,
				thick, c.WithAlpha(op*(1-a)),
			)
		}
	}
}

// renderBackdrop approximates the bottom-lit radial gradient with bands.
func (ss *ShootingStars) renderBackdrop(s field.Surface) {
	const bands = 8
	top, bottom := ss.params.Background, ss.params.Horizon
	bh := ss.height / bands
	for i := 0; i < bands; i++ {
		k := float64(i) / (bands - 1)
		s.FillRect(0, float64(i)*bh, ss.width, bh, top.Blend(bottom, k))
	}
}
