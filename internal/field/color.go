package field

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB color with a fractional alpha, the way CSS writes it.
type Color struct {
	R, G, B uint8
	A       float64
}

var White = Color{R: 255, G: 255, B: 255, A: 1}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

func (c Color) toColorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(cc colorful.Color, a float64) Color {
	r, g, b := cc.Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: a}
}

// Hex returns the #rrggbb form, dropping alpha.
func (c Color) Hex() string {
	return c.toColorful().Hex()
}

// Blend interpolates between c and to in sRGB; alpha is interpolated linearly.
func (c Color) Blend(to Color, t float64) Color {
	return fromColorful(c.toColorful().BlendRgb(to.toColorful(), t), c.A+(to.A-c.A)*t)
}

// NRGBA converts to a non-premultiplied image color.
func (c Color) NRGBA() color.NRGBA {
	a := math.Max(0, math.Min(1, c.A))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(a * 255))}
}

// ParseColor accepts "#rgb", "#rrggbb", "rgb(r, g, b)" and "rgba(r, g, b, a)".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[5:len(s)-1], 4)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[4:len(s)-1], 3)
	}
	return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
}

func parseHex(h string) (Color, error) {
	if len(h) != 3 && len(h) != 6 {
		return Color{}, fmt.Errorf("%w: #%s", ErrBadColor, h)
	}
	cc, err := colorful.Hex("#" + h)
	if err != nil {
		return Color{}, fmt.Errorf("%w: #%s", ErrBadColor, h)
	}
	return fromColorful(cc, 1), nil
}

func parseFunc(args string, n int) (Color, error) {
	parts := strings.Split(args, ",")
	if len(parts) != n {
		return Color{}, fmt.Errorf("%w: expected %d components, got %d", ErrBadColor, n, len(parts))
	}
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return Color{}, fmt.Errorf("%w: component %q", ErrBadColor, parts[i])
		}
		rgb[i] = uint8(v)
	}
	c := Color{R: rgb[0], G: rgb[1], B: rgb[2], A: 1}
	if n == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return Color{}, fmt.Errorf("%w: alpha %q", ErrBadColor, parts[3])
		}
		c.A = a
	}
	return c, nil
}

// MarshalText lets colors live in yaml as CSS strings.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
