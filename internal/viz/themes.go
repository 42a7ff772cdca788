package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the lattice and the side panel.
type Theme struct {
	Name   string
	Up     lipgloss.Color
	Down   lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Up:     lipgloss.Color("#ff00ff"),
		Down:   lipgloss.Color("#00ffff"),
		Accent: lipgloss.Color("#ffff00"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666666"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Up:     lipgloss.Color("#00ff00"),
		Down:   lipgloss.Color("#003300"),
		Accent: lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Up:     lipgloss.Color("#ffffff"),
		Down:   lipgloss.Color("#333333"),
		Accent: lipgloss.Color("#0088ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Up:     lipgloss.Color("#ffd700"),
		Down:   lipgloss.Color("#0077be"),
		Accent: lipgloss.Color("#00a8cc"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Up:     lipgloss.Color("#ff6b6b"),
		Down:   lipgloss.Color("#2d1b2e"),
		Accent: lipgloss.Color("#feca57"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns the named theme, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func nextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
