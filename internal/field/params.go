package field

import "fmt"

const (
	DefaultNarrowCount    = 50
	DefaultWideCount      = 80
	DefaultBreakpoint     = 768
	DefaultMinRadius      = 1.0
	DefaultMaxRadius      = 6.0
	DefaultMaxSpeed       = 0.25
	DefaultLineWidth      = 1.0
	DefaultDistanceFactor = 0.18
	DefaultMinDistance    = 90.0
	DefaultMaxDistance    = 160.0
	DefaultMinOpacity     = 0.05
)

// Neighbor search modes for the connection pass.
const (
	NeighborsPairs = "pairs"
	NeighborsGrid  = "grid"
)

// Params configures a Field. The zero value is not useful; start from DefaultParams.
type Params struct {
	NarrowCount    int     `yaml:"narrow_count"`
	WideCount      int     `yaml:"wide_count"`
	Breakpoint     float64 `yaml:"breakpoint"`
	MinRadius      float64 `yaml:"min_radius"`
	MaxRadius      float64 `yaml:"max_radius"`
	MaxSpeed       float64 `yaml:"max_speed"`
	Color          Color   `yaml:"color"`
	LineWidth      float64 `yaml:"line_width"`
	DistanceFactor float64 `yaml:"distance_factor"`
	MinDistance    float64 `yaml:"min_distance"`
	MaxDistance    float64 `yaml:"max_distance"`
	MinOpacity     float64 `yaml:"min_opacity"`
	Neighbors      string  `yaml:"neighbors"`
}

func DefaultParams() Params {
	return Params{
		NarrowCount:    DefaultNarrowCount,
		WideCount:      DefaultWideCount,
		Breakpoint:     DefaultBreakpoint,
		MinRadius:      DefaultMinRadius,
		MaxRadius:      DefaultMaxRadius,
		MaxSpeed:       DefaultMaxSpeed,
		Color:          White.WithAlpha(0.8),
		LineWidth:      DefaultLineWidth,
		DistanceFactor: DefaultDistanceFactor,
		MinDistance:    DefaultMinDistance,
		MaxDistance:    DefaultMaxDistance,
		MinOpacity:     DefaultMinOpacity,
		Neighbors:      NeighborsPairs,
	}
}

func (p Params) Validate() error {
	if p.NarrowCount < 0 || p.WideCount < 0 {
		return fmt.Errorf("particle counts must be non-negative, got %d/%d", p.NarrowCount, p.WideCount)
	}
	if p.MinRadius <= 0 {
		return fmt.Errorf("min radius must be positive, got %f", p.MinRadius)
	}
	if p.MaxRadius < p.MinRadius {
		return fmt.Errorf("max radius %f below min radius %f", p.MaxRadius, p.MinRadius)
	}
	if p.MaxSpeed < 0 {
		return fmt.Errorf("max speed must be non-negative, got %f", p.MaxSpeed)
	}
	if p.MinDistance > p.MaxDistance {
		return fmt.Errorf("min distance %f above max distance %f", p.MinDistance, p.MaxDistance)
	}
	switch p.Neighbors {
	case NeighborsPairs, NeighborsGrid:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownNeighbors, p.Neighbors)
	}
	return nil
}

// Set assigns a numeric parameter by its yaml name, for sweeps and
// scenario files.
func (p *Params) Set(name string, v float64) error {
	switch name {
	case "narrow_count":
		p.NarrowCount = int(v)
	case "wide_count":
		p.WideCount = int(v)
	case "breakpoint":
		p.Breakpoint = v
	case "min_radius":
		p.MinRadius = v
	case "max_radius":
		p.MaxRadius = v
	case "max_speed":
		p.MaxSpeed = v
	case "line_width":
		p.LineWidth = v
	case "distance_factor":
		p.DistanceFactor = v
	case "min_distance":
		p.MinDistance = v
	case "max_distance":
		p.MaxDistance = v
	case "min_opacity":
		p.MinOpacity = v
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return nil
}

// Count is the number of particles for a surface of the given width.
func (p Params) Count(width float64) int {
	if width <= 0 {
		return 0
	}
	if width < p.Breakpoint {
		return p.NarrowCount
	}
	return p.WideCount
}

// Threshold is the connection distance for a surface, clamped to [MinDistance, MaxDistance].
func (p Params) Threshold(width, height float64) float64 {
	base := min(width, height) * p.DistanceFactor
	return max(p.MinDistance, min(p.MaxDistance, base))
}
