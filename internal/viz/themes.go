package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the TUI color scheme. An empty Canvas color draws the
// field in its own base color.
type Theme struct {
	Name   string
	Canvas lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Graph  lipgloss.Color
}

var (
	ThemeField = Theme{
		Name:   "field",
		Accent: lipgloss.Color("86"),
		Text:   lipgloss.Color("252"),
		Muted:  lipgloss.Color("240"),
		Graph:  lipgloss.Color("49"),
	}

	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Canvas: lipgloss.Color("#00ffff"),
		Accent: lipgloss.Color("#ff00ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666666"),
		Graph:  lipgloss.Color("#ffff00"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Canvas: lipgloss.Color("#00ff00"),
		Accent: lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Graph:  lipgloss.Color("#00cc00"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Canvas: lipgloss.Color("#00a8cc"),
		Accent: lipgloss.Color("#ffd700"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Graph:  lipgloss.Color("#0077be"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Canvas: lipgloss.Color("#feca57"),
		Accent: lipgloss.Color("#ff6b6b"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Graph:  lipgloss.Color("#ff9ff3"),
	}

	Themes = []Theme{
		ThemeField,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to ThemeField.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeField
}

// NextTheme returns the theme after the named one, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
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
