package export

import (
	"image"
	"image/png"
	"math"
	"os"

	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"

	"github.com/san-kum/particlefield/internal/field"
)

// RasterSurface draws through an HTML5-style canvas onto an in-memory RGBA
// image. Logical coordinates are multiplied by the device pixel ratio.
type RasterSurface struct {
	backend    *softwarebackend.SoftwareBackend
	cv         *canvas.Canvas
	dpr        float64
	Background field.Color
}

// NewRasterSurface allocates a backing image of width*dpr x height*dpr pixels.
func NewRasterSurface(width, height int, dpr float64, background field.Color) *RasterSurface {
	if dpr <= 0 {
		dpr = 1
	}
	pw := max(1, int(math.Round(float64(width)*dpr)))
	ph := max(1, int(math.Round(float64(height)*dpr)))
	backend := softwarebackend.New(pw, ph)
	return &RasterSurface{
		backend:    backend,
		cv:         canvas.New(backend),
		dpr:        dpr,
		Background: background,
	}
}

func (r *RasterSurface) Clear(width, height float64) {
	w, h := float64(r.cv.Width()), float64(r.cv.Height())
	r.cv.ClearRect(0, 0, w, h)
	if r.Background.A > 0 {
		r.cv.SetFillStyle(r.Background.NRGBA())
		r.cv.FillRect(0, 0, w, h)
	}
}

func (r *RasterSurface) FillRect(x, y, w, h float64, c field.Color) {
	r.cv.SetFillStyle(c.NRGBA())
	r.cv.FillRect(x*r.dpr, y*r.dpr, w*r.dpr, h*r.dpr)
}

func (r *RasterSurface) FillCircle(x, y, radius float64, c field.Color) {
	r.cv.SetFillStyle(c.NRGBA())
	r.cv.BeginPath()
	r.cv.Arc(x*r.dpr, y*r.dpr, radius*r.dpr, 0, 2*math.Pi, false)
	r.cv.ClosePath()
	r.cv.Fill()
}

func (r *RasterSurface) StrokeLine(x0, y0, x1, y1, width float64, c field.Color) {
	r.cv.SetStrokeStyle(c.NRGBA())
	r.cv.SetLineWidth(width * r.dpr)
	r.cv.BeginPath()
	r.cv.MoveTo(x0*r.dpr, y0*r.dpr)
	r.cv.LineTo(x1*r.dpr, y1*r.dpr)
	r.cv.Stroke()
}

// Image is the backing image; it is reused across frames.
func (r *RasterSurface) Image() *image.RGBA {
	return r.backend.Image
}

func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
