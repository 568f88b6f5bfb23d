package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hexfit/internal/core"
)

// DifficultyOption is one entry of the difficulty picker.
type DifficultyOption struct {
	Preset      string
	Label       string
	Description string
}

// difficultyOptions are listed in picker order. Normal is the default cursor.
var difficultyOptions = []DifficultyOption{
	{Preset: "easy", Label: "Easy", Description: "small pieces, generous trays"},
	{Preset: "normal", Label: "Normal", Description: "classic piece mix"},
	{Preset: "hard", Label: "Hard", Description: "big pieces, growing with your score"},
	{Preset: "fixed", Label: "Fixed", Description: "classic mix, ramp off even if configured"},
}

// DifficultyModel lets users choose a difficulty preset before a run.
type DifficultyModel struct {
	title    string
	cursor   int
	width    int
	height   int
	theme    Theme
	keys     MenuKeyMap
	selected string
	choosing bool
	quitting bool
	back     bool
}

// NewDifficultyModel creates a new difficulty picker for the named game.
func NewDifficultyModel(title string, width, height int, theme Theme) DifficultyModel {
	return DifficultyModel{
		title:    title,
		cursor:   1,
		width:    width,
		height:   height,
		theme:    theme,
		keys:     DefaultMenuKeyMap(),
		choosing: true,
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(difficultyOptions)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selected = difficultyOptions[m.cursor].Preset
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the picker.
func (m DifficultyModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	accent := m.theme.Style(core.ColorAccent)
	normal := m.theme.Style(core.ColorText)
	dim := m.theme.Style(core.ColorDim)

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(accent.Render(strings.ToUpper(m.title)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(normal.Render("Select difficulty:"), m.width))
	b.WriteString("\n\n")

	for i, opt := range difficultyOptions {
		cursor := "  "
		style := normal
		if i == m.cursor {
			cursor = "> "
			style = accent
		}
		line := fmt.Sprintf("%s%-8s", cursor, opt.Label)
		b.WriteString(centerText(style.Render(line)+dim.Render(" "+opt.Description), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dim.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

// Selected returns the chosen preset, or "" while still choosing.
func (m DifficultyModel) Selected() string {
	if m.choosing {
		return ""
	}
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// RunDifficultySelector runs the picker. Returns "" if the user backed out
// or quit.
func RunDifficultySelector(title string, cfg core.RuntimeConfig, theme Theme) (string, error) {
	model := NewDifficultyModel(title, cfg.ScreenW, cfg.ScreenH, theme)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(DifficultyModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return "", nil
	}
	return m.Selected(), nil
}
