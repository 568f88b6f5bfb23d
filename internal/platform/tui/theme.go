package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hexfit/internal/core"
)

// DefaultThemeName is used when no theme is configured or stored.
const DefaultThemeName = "lava"

// Theme is a named color scheme for the board and HUD.
type Theme struct {
	Name       string
	Background lipgloss.Color // screen background
	Grid       lipgloss.Color // panel fill behind overlays
	Active     lipgloss.Color // titles, cursor, flashes
	Idle       lipgloss.Color // inactive highlights
	Border     lipgloss.Color // frames
}

var themes = []Theme{
	{Name: "neon", Background: "#1A1A1A", Grid: "#2A2A2A", Active: "#00FF99", Idle: "#222222", Border: "#333333"},
	{Name: "lava", Background: "#1A0500", Grid: "#331100", Active: "#FF4400", Idle: "#220000", Border: "#441100"},
	{Name: "cyberSynth", Background: "#120422", Grid: "#241139", Active: "#FF00FF", Idle: "#2A0A3D", Border: "#333333"},
	{Name: "deepOcean", Background: "#001219", Grid: "#00222E", Active: "#00E5FF", Idle: "#00313D", Border: "#444444"},
	{Name: "forestSpirit", Background: "#0B1305", Grid: "#1C2A12", Active: "#A7C957", Idle: "#1A2410", Border: "#333333"},
	{Name: "royalGold", Background: "#0F0F0F", Grid: "#1C1C1C", Active: "#D4AF37", Idle: "#252010", Border: "#444444"},
	{Name: "iceWhite", Background: "#121212", Grid: "#1E1E1E", Active: "#FFFFFF", Idle: "#252525", Border: "#444444"},
	{Name: "bloodMoon", Background: "#1A0505", Grid: "#2A0D0D", Active: "#FF3333", Idle: "#3D0A0A", Border: "#444444"},
}

// Fixed colors shared by every theme.
const (
	textColor = lipgloss.Color("#E6E6E6")
	dimColor  = lipgloss.Color("#6C6C6C")
	goodColor = lipgloss.Color("#33FF57")
	badColor  = lipgloss.Color("#FF3B3B")
)

// Themes returns all themes in cycle order.
func Themes() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// ThemeNames returns all theme names in cycle order.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// ThemeByName looks up a theme.
func ThemeByName(name string) (Theme, bool) {
	for _, t := range themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// DefaultTheme returns the lava theme.
func DefaultTheme() Theme {
	t, _ := ThemeByName(DefaultThemeName)
	return t
}

// Next returns the theme after t, wrapping around.
func (t Theme) Next() Theme {
	for i, th := range themes {
		if th.Name == t.Name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}

// Foreground returns the terminal color a semantic screen color maps to.
func (t Theme) Foreground(c core.Color) lipgloss.Color {
	switch c {
	case core.ColorText, core.ColorDefault:
		return textColor
	case core.ColorDim:
		return dimColor
	case core.ColorAccent, core.ColorFlash:
		return t.Active
	case core.ColorBorder:
		return t.Border
	case core.ColorGood:
		return goodColor
	case core.ColorBad:
		return badColor
	case core.ColorPieceOrange:
		return "#FF5733"
	case core.ColorPieceGreen:
		return "#33FF57"
	case core.ColorPieceBlue:
		return "#3357FF"
	case core.ColorPieceYellow:
		return "#F1C40F"
	case core.ColorPiecePurple:
		return "#9B59B6"
	default:
		return textColor
	}
}

// Style returns the lipgloss style for a semantic screen color.
func (t Theme) Style(c core.Color) lipgloss.Style {
	s := lipgloss.NewStyle().
		Foreground(t.Foreground(c)).
		Background(t.Background)
	if c == core.ColorAccent || c == core.ColorFlash {
		s = s.Bold(true)
	}
	return s
}
