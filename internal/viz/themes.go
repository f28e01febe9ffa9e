package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Canvas  lipgloss.Color
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Running lipgloss.Color
	Paused  lipgloss.Color
	Record  lipgloss.Color
}

// Available themes
var (
	ThemeNight = Theme{
		Name:    "night",
		Canvas:  lipgloss.Color("#e6edf3"),
		Primary: lipgloss.Color("#7dd3fc"),
		Accent:  lipgloss.Color("#c4b5fd"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#5b6478"),
		Running: lipgloss.Color("#00ff88"),
		Paused:  lipgloss.Color("#ffaa00"),
		Record:  lipgloss.Color("#ff4444"),
	}

	ThemeAurora = Theme{
		Name:    "aurora",
		Canvas:  lipgloss.Color("#a7f3d0"), // pale green
		Primary: lipgloss.Color("#34d399"),
		Accent:  lipgloss.Color("#f0abfc"),
		Text:    lipgloss.Color("#ecfdf5"),
		Muted:   lipgloss.Color("#3f6b5c"),
		Running: lipgloss.Color("#6ee7b7"),
		Paused:  lipgloss.Color("#fcd34d"),
		Record:  lipgloss.Color("#fb7185"),
	}

	ThemeEmber = Theme{
		Name:    "ember",
		Canvas:  lipgloss.Color("#fdba74"),
		Primary: lipgloss.Color("#fb923c"),
		Accent:  lipgloss.Color("#fde047"),
		Text:    lipgloss.Color("#fff7ed"),
		Muted:   lipgloss.Color("#7c4a2d"),
		Running: lipgloss.Color("#bef264"),
		Paused:  lipgloss.Color("#fde047"),
		Record:  lipgloss.Color("#ef4444"),
	}

	ThemeMono = Theme{
		Name:    "mono",
		Canvas:  lipgloss.Color("#ffffff"),
		Primary: lipgloss.Color("#cccccc"),
		Accent:  lipgloss.Color("#ffffff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#777777"),
		Running: lipgloss.Color("#ffffff"),
		Paused:  lipgloss.Color("#aaaaaa"),
		Record:  lipgloss.Color("#ffffff"),
	}

	// Default theme
	CurrentTheme = ThemeNight

	Themes = []Theme{
		ThemeNight,
		ThemeAurora,
		ThemeEmber,
		ThemeMono,
	}
)

// GetTheme returns a theme by name, falling back to night.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNight
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme returns the theme after the current one, wrapping around.
func NextTheme() Theme {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
