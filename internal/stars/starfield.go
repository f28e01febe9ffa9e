package stars

import (
	"math"
	"math/rand"

	"github.com/san-kum/particlefield/internal/field"
)

const (
	DefaultFieldWidth  = 2500
	DefaultFieldHeight = 2000
	DefaultFPS         = 60
)

// LayerParams describes one parallax layer: Count square stars of side
// Size scrolling up one field height every Period seconds.
type LayerParams struct {
	Count  int     `yaml:"count"`
	Size   float64 `yaml:"size"`
	Period float64 `yaml:"period"`
}

type StarfieldParams struct {
	Layers      []LayerParams `yaml:"layers"`
	FieldWidth  int           `yaml:"field_width"`
	FieldHeight int           `yaml:"field_height"`
	Color       field.Color   `yaml:"color"`
}

func DefaultStarfieldParams() StarfieldParams {
	return StarfieldParams{
		Layers: []LayerParams{
			{Count: 175, Size: 1, Period: 50},
			{Count: 50, Size: 2, Period: 100},
			{Count: 25, Size: 3, Period: 150},
		},
		FieldWidth:  DefaultFieldWidth,
		FieldHeight: DefaultFieldHeight,
		Color:       field.White,
	}
}

type Star struct {
	X, Y int
}

type Layer struct {
	LayerParams
	Stars []Star
}

// Offset is the layer's vertical translation at time t, in (-FieldHeight, 0].
func (l *Layer) Offset(t float64, fieldHeight int) float64 {
	if l.Period <= 0 {
		return 0
	}
	phase := math.Mod(t, l.Period) / l.Period
	return -phase * float64(fieldHeight)
}

// Starfield is three (by default) layers of static stars translated
// upwards over time. Each layer is drawn twice, the copy one field height
// below, so the scroll wraps without a seam.
type Starfield struct {
	params        StarfieldParams
	layers        []Layer
	fps           float64
	t             float64
	width, height float64
}

func NewStarfield(params StarfieldParams, fps float64, rng *rand.Rand) *Starfield {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if fps <= 0 {
		fps = DefaultFPS
	}
	sf := &Starfield{params: params, fps: fps}
	sf.layers = make([]Layer, len(params.Layers))
	for i, lp := range params.Layers {
		sf.layers[i] = Layer{LayerParams: lp, Stars: generateStars(lp.Count, params.FieldWidth, params.FieldHeight, rng)}
	}
	return sf
}

func generateStars(n, w, h int, rng *rand.Rand) []Star {
	stars := make([]Star, n)
	for i := range stars {
		stars[i] = Star{X: int(math.Floor(rng.Float64() * float64(w))), Y: int(math.Floor(rng.Float64() * float64(h)))}
	}
	return stars
}

func (sf *Starfield) Name() string    { return "starfield" }
func (sf *Starfield) Layers() []Layer { return sf.layers }
func (sf *Starfield) Time() float64   { return sf.t }

func (sf *Starfield) Resize(width, height float64) {
	sf.width, sf.height = width, height
}

func (sf *Starfield) Advance() {
	sf.t += 1 / sf.fps
}

// Visible counts the star squares that intersect the surface at the current time.
func (sf *Starfield) Visible() int {
	n := 0
	sf.each(func(float64, float64, float64) { n++ })
	return n
}

func (sf *Starfield) Render(s field.Surface) {
	s.Clear(sf.width, sf.height)
	c := sf.params.Color
	sf.each(func(x, y, size float64) {
		s.FillRect(x, y, size, size, c)
	})
}

func (sf *Starfield) each(fn func(x, y, size float64)) {
	fh := float64(sf.params.FieldHeight)
	for i := range sf.layers {
		l := &sf.layers[i]
		off := l.Offset(sf.t, sf.params.FieldHeight)
		for _, st := range l.Stars {
			x := float64(st.X)
			if x >= sf.width {
				continue
			}
			for _, tile := range [2]float64{0, fh} {
				y := float64(st.Y) + tile + off
				if y+l.Size <= 0 || y >= sf.height {
					continue
				}
				fn(x, y, l.Size)
			}
		}
	}
}
