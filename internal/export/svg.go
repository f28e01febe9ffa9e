package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/particlefield/internal/field"
)

// SVGSurface records drawing calls as SVG elements. Clear starts a new
// document; Background, if set, is painted first.
type SVGSurface struct {
	Background    field.Color
	width, height float64
	body          strings.Builder
	circles       int
	lines         int
}

func NewSVGSurface(background field.Color) *SVGSurface {
	return &SVGSurface{Background: background}
}

func (s *SVGSurface) Clear(width, height float64) {
	s.width, s.height = width, height
	s.body.Reset()
	s.circles, s.lines = 0, 0
}

func (s *SVGSurface) FillRect(x, y, w, h float64, c field.Color) {
	fmt.Fprintf(&s.body, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" fill-opacity="%.3f"/>
`, x, y, w, h, c.Hex(), c.A)
}

func (s *SVGSurface) FillCircle(x, y, r float64, c field.Color) {
	fmt.Fprintf(&s.body, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.3f"/>
`, x, y, r, c.Hex(), c.A)
	s.circles++
}

func (s *SVGSurface) StrokeLine(x0, y0, x1, y1, width float64, c field.Color) {
	fmt.Fprintf(&s.body, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f" stroke-linecap="round"/>
`, x0, y0, x1, y1, c.Hex(), c.A, width)
	s.lines++
}

// Counts reports how many circles and lines the current document holds.
func (s *SVGSurface) Counts() (circles, lines int) { return s.circles, s.lines }

func (s *SVGSurface) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.width, s.height, s.width, s.height, s.Background.Hex()))
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

// SeriesToSVG draws a per-frame series as a polyline, frames on x.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2
	stepX := float64(width) / float64(len(values)-1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) * stepX
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
