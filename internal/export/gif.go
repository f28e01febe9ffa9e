package export

import (
	"errors"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"

	"github.com/san-kum/particlefield/internal/sim"
)

var ErrNoFrames = errors.New("export: no frames recorded")

// GIFRecorder collects frames and encodes them as a looping animation.
// Frames are quantized to the Plan 9 palette with dithering.
type GIFRecorder struct {
	// Delay between frames, in hundredths of a second.
	Delay  int
	frames []*image.Paletted
}

func NewGIFRecorder(delay int) *GIFRecorder {
	if delay <= 0 {
		delay = 2
	}
	return &GIFRecorder{Delay: delay}
}

func (g *GIFRecorder) Add(img image.Image) {
	if p, ok := img.(*image.Paletted); ok {
		g.frames = append(g.frames, p)
		return
	}
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)
	g.frames = append(g.frames, p)
}

func (g *GIFRecorder) Len() int { return len(g.frames) }

func (g *GIFRecorder) Reset() { g.frames = nil }

func (g *GIFRecorder) Encode(w io.Writer) error {
	if len(g.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range g.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, g.Delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (g *GIFRecorder) Save(path string) error {
	if len(g.frames) == 0 {
		return ErrNoFrames
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FrameRecorder is a sim observer that rasterizes every nth frame into a
// GIF. The raster surface must be the one the effect renders to.
type FrameRecorder struct {
	GIF     *GIFRecorder
	Surface *RasterSurface
	Every   int
}

func (f *FrameRecorder) OnFrame(info sim.FrameInfo) {
	every := max(1, f.Every)
	if info.Frame%every == 0 {
		f.GIF.Add(f.Surface.Image())
	}
}
