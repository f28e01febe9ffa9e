package field

// Surface is the 2D drawing target a host hands to the renderers.
// Coordinates are logical units; hosts with a device pixel ratio wrap
// their native target in a ScaledSurface.
type Surface interface {
	Clear(width, height float64)
	FillRect(x, y, w, h float64, c Color)
	FillCircle(x, y, r float64, c Color)
	StrokeLine(x0, y0, x1, y1, width float64, c Color)
}

// ScaledSurface multiplies every coordinate by Scale before forwarding.
type ScaledSurface struct {
	Surface
	Scale float64
}

func Scaled(s Surface, scale float64) Surface {
	if scale <= 0 || scale == 1 {
		return s
	}
	return &ScaledSurface{Surface: s, Scale: scale}
}

func (s *ScaledSurface) Clear(width, height float64) {
	s.Surface.Clear(width*s.Scale, height*s.Scale)
}

func (s *ScaledSurface) FillRect(x, y, w, h float64, c Color) {
	s.Surface.FillRect(x*s.Scale, y*s.Scale, w*s.Scale, h*s.Scale, c)
}

func (s *ScaledSurface) FillCircle(x, y, r float64, c Color) {
	s.Surface.FillCircle(x*s.Scale, y*s.Scale, r*s.Scale, c)
}

func (s *ScaledSurface) StrokeLine(x0, y0, x1, y1, width float64, c Color) {
	k := s.Scale
	s.Surface.StrokeLine(x0*k, y0*k, x1*k, y1*k, width*k, c)
}

// Discard is a Surface that draws nothing, for headless runs that only
// need frame stats.
var Discard Surface = discard{}

type discard struct{}

func (discard) Clear(width, height float64)                       {}
func (discard) FillRect(x, y, w, h float64, c Color)              {}
func (discard) FillCircle(x, y, r float64, c Color)               {}
func (discard) StrokeLine(x0, y0, x1, y1, width float64, c Color) {}
