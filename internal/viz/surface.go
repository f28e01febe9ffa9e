package viz

import (
	"math"

	"github.com/san-kum/particlefield/internal/field"
)

// DotScale is the number of logical pixels per braille dot.
const DotScale = 8.0

// minLight is the perceived brightness below which fills are skipped, so
// dark backdrops stay blank on a one-bit canvas.
const minLight = 0.25

// BrailleSurface draws onto a Canvas in dot coordinates. Faint lines are
// dotted, their stride growing as opacity falls.
type BrailleSurface struct {
	Canvas *Canvas
}

// NewSurface wraps c so callers draw in logical pixels. The returned
// BrailleSurface lets the host swap canvases on resize.
func NewSurface(c *Canvas) (*BrailleSurface, field.Surface) {
	b := &BrailleSurface{Canvas: c}
	return b, field.Scaled(b, 1/DotScale)
}

// LogicalSize is the logical surface a canvas of cols x rows cells covers.
func LogicalSize(cols, rows int) (float64, float64) {
	return float64(cols*2) * DotScale, float64(rows*4) * DotScale
}

func (b *BrailleSurface) Clear(width, height float64) { b.Canvas.Clear() }

func (b *BrailleSurface) FillRect(x, y, w, h float64, c field.Color) {
	if light(c) < minLight {
		return
	}
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	x1, y1 := max(x0+1, int(math.Ceil(x+w))), max(y0+1, int(math.Ceil(y+h)))
	b.Canvas.FillRect(x0, y0, x1, y1)
}

func (b *BrailleSurface) FillCircle(x, y, r float64, c field.Color) {
	if light(c) < minLight {
		return
	}
	b.Canvas.FillDisc(x, y, r)
}

func (b *BrailleSurface) StrokeLine(x0, y0, x1, y1, width float64, c field.Color) {
	a := light(c)
	if a <= 0 {
		return
	}
	stride := int(math.Round(1 / a))
	b.Canvas.DrawDotted(int(x0), int(y0), int(x1), int(y1), stride)
}

// light is the color's relative luminance scaled by its alpha.
func light(c field.Color) float64 {
	l := (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255
	return l * c.A
}
