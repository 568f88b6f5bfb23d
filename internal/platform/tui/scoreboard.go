package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hexfit/internal/core"
	"github.com/vovakirdan/hexfit/internal/registry"
	"github.com/vovakirdan/hexfit/internal/storage"
)

const (
	minWidthForStats = 80  // below this the stats panel collapses to one line
	statsPanelWidth  = 24
	maxScores        = 100
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextMode, k.PrevMode},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the best runs of each mode with aggregated stats.
type ScoreboardModel struct {
	modes     []registry.GameInfo
	mode      int
	store     *storage.Store
	scores    []storage.ScoreEntry
	stats     *storage.GameStats
	theme     Theme
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int, theme Theme) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		theme:  theme,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	if len(m.modes) > 0 {
		m.load()
	}
	return m
}

// newTable builds the score table sized to the current screen.
func (m *ScoreboardModel) newTable() table.Model {
	dateWidth := 12
	if m.width >= minWidthForStats+20 {
		dateWidth = 16
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 9},
			{Title: "Lines", Width: 6},
			{Title: "Combo", Width: 6},
			{Title: "When", Width: dateWidth},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(m.theme.Background).
		Background(m.theme.Active).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads scores and stats of the current mode.
func (m *ScoreboardModel) load() {
	m.scores = nil
	m.stats = nil
	id := m.modes[m.mode].ID
	if m.store != nil {
		if scores, err := m.store.TopScores(id, maxScores); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}

	layout := "Jan 02 15:04"
	if m.width >= minWidthForStats+20 {
		layout = "2006-01-02 15:04"
	}
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprint(i + 1),
			fmt.Sprint(s.Score),
			fmt.Sprint(s.Lines),
			fmt.Sprintf("x%d", s.MaxCombo),
			s.CreatedAt.Local().Format(layout),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// shiftMode moves the mode cursor by d, wrapping around.
func (m *ScoreboardModel) shiftMode(d int) {
	if len(m.modes) == 0 {
		return
	}
	m.mode = (m.mode + d + len(m.modes)) % len(m.modes)
	m.load()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.shiftMode(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.shiftMode(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		if len(m.modes) > 0 {
			m.load()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Style(core.ColorAccent).Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.modeTabs(), m.width))
	b.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1)
	scores := box.Render(m.tableContent())

	if m.width >= minWidthForStats {
		panel := box.Width(statsPanelWidth).Render(m.statsPanel())
		b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, scores, "  ", panel), m.width))
	} else {
		b.WriteString(centerText(scores, m.width))
		if line := m.statsLine(); line != "" {
			b.WriteString("\n")
			b.WriteString(centerText(m.theme.Style(core.ColorDim).Render(line), m.width))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	return b.String()
}

// modeTabs renders one tab per registered mode.
func (m ScoreboardModel) modeTabs() string {
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.theme.Background).
		Background(m.theme.Active).
		Padding(0, 1)
	idle := lipgloss.NewStyle().Foreground(dimColor).Padding(0, 1)

	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.mode {
			tabs[i] = active.Render(g.Title)
		} else {
			tabs[i] = idle.Render(g.Title)
		}
	}
	return strings.Join(tabs, " ")
}

func (m ScoreboardModel) tableContent() string {
	if len(m.scores) == 0 {
		return lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true).
			Padding(2, 4).
			Render("No runs recorded yet.\nFinish a game to get on the board!")
	}
	return m.table.View()
}

// statsPanel renders the aggregated stats of the current mode.
func (m ScoreboardModel) statsPanel() string {
	label := lipgloss.NewStyle().Foreground(dimColor)
	value := m.theme.Style(core.ColorText).UnsetBackground()

	if m.stats == nil || m.stats.GamesCount == 0 {
		return label.Render("No stats yet")
	}
	rows := [][2]string{
		{"Runs", fmt.Sprint(m.stats.GamesCount)},
		{"Best", fmt.Sprint(m.stats.HighScore)},
		{"Average", fmt.Sprintf("%.0f", m.stats.AvgScore)},
		{"Lines", fmt.Sprint(m.stats.TotalLines)},
		{"Best combo", fmt.Sprintf("x%d", m.stats.BestCombo)},
	}
	if !m.stats.LastPlayed.IsZero() {
		rows = append(rows, [2]string{"Last", m.stats.LastPlayed.Local().Format("Jan 02")})
	}

	var b strings.Builder
	b.WriteString(m.theme.Style(core.ColorAccent).UnsetBackground().Render("Stats"))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(label.Render(fmt.Sprintf("%-11s", r[0])))
		b.WriteString(value.Render(r[1]))
	}
	return b.String()
}

// statsLine is the one-line stats summary used on narrow screens.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("%d runs   avg %.0f   %d lines   best combo x%d",
		m.stats.GamesCount, m.stats.AvgScore, m.stats.TotalLines, m.stats.BestCombo)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int, theme Theme) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height, theme),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
