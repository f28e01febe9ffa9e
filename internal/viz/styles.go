package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/particlefield/internal/field"
)

// Styles derived from the current theme. They are rebuilt on every View so
// a theme switch takes effect on the next frame.
func canvasStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Canvas)
}

func panelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(CurrentTheme.Muted).
		Padding(0, 2).
		Width(panelWidth - 3)
}

func labelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Width(13)
}

func valueStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Text).Bold(true)
}

func graphStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Padding(1, 0)
}

func helpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Italic(true).MarginTop(1)
}

func statusStyle(running, recording bool) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch {
	case recording:
		return s.Foreground(CurrentTheme.Record).Blink(true)
	case running:
		return s.Foreground(CurrentTheme.Running)
	default:
		return s.Foreground(CurrentTheme.Paused)
	}
}

// GradientText colors each rune of text on a ramp from start to end.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	sc, err := field.ParseColor(string(start))
	if err != nil {
		sc = field.White
	}
	ec, err := field.ParseColor(string(end))
	if err != nil {
		ec = field.White
	}

	var result strings.Builder
	n := max(len(runes)-1, 1)
	for i, r := range runes {
		t := float64(i) / float64(n)
		c := field.Color{
			R: lerp(sc.R, ec.R, t),
			G: lerp(sc.G, ec.G, t),
			B: lerp(sc.B, ec.B, t),
		}
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Hex()))
		result.WriteString(style.Render(string(r)))
	}
	return result.String()
}

// SparklineChart renders a one-line sparkline of the most recent values.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / rng * float64(len(chars)-1))
		b.WriteRune(chars[max(0, min(idx, len(chars)-1))])
	}
	return b.String()
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + t*(float64(b)-float64(a)))
}
