package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hexfit/internal/core"
	"github.com/vovakirdan/hexfit/internal/registry"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenScores
	screenDifficulty
	screenGame
)

// SessionModel manages the full session flow:
// menu -> difficulty -> game -> menu, or menu -> scores -> menu.
// Used for SSH sessions, where one program serves the whole visit.
// The session owns the player's preferences; nothing is process-wide.
type SessionModel struct {
	opts       GameOptions
	config     core.RuntimeConfig
	screen     sessionScreen
	menu       MenuModel
	scoreboard ScoreboardModel
	difficulty DifficultyModel
	pending    registry.Game // created, waiting for a difficulty choice
	gameModel  GameModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg core.RuntimeConfig, opts GameOptions) SessionModel {
	return SessionModel{
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(opts.Store, cfg, opts.Prefs, opts.Logger),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenDifficulty:
		return m.updateDifficulty(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}
	m.opts.Prefs = m.menu.Prefs()

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.scoreboard = NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH, m.opts.Prefs.Theme)
		m.screen = screenScores
		return m, m.scoreboard.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		game, err := registry.Create(selected.GameID)
		if err != nil {
			// Shouldn't happen since menu only shows registered games
			m.opts.Logger.Error("cannot create game", "game", selected.GameID, "error", err)
			return m.backToMenu()
		}

		if _, ok := game.(registry.DifficultyAware); ok {
			m.pending = game
			m.difficulty = NewDifficultyModel(game.Title(), m.config.ScreenW, m.config.ScreenH, m.opts.Prefs.Theme)
			m.screen = screenDifficulty
			return m, m.difficulty.Init()
		}
		return m.startGame(game)
	}

	return m, cmd
}

// updateDifficulty handles the difficulty picker shown before a run.
func (m SessionModel) updateDifficulty(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.difficulty.Update(msg)
	if dm, ok := newModel.(DifficultyModel); ok {
		m.difficulty = dm
	}

	switch {
	case m.difficulty.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.difficulty.WantsBack():
		m.pending = nil
		return m.backToMenu()
	case m.difficulty.Selected() != "":
		game := m.pending
		m.pending = nil
		if da, ok := game.(registry.DifficultyAware); ok {
			da.SetDifficulty(m.difficulty.Selected())
		}
		return m.startGame(game)
	}
	return m, cmd
}

// startGame switches to the game screen with a fresh seed.
func (m SessionModel) startGame(game registry.Game) (tea.Model, tea.Cmd) {
	cfg := m.config
	cfg.Seed = 0
	m.gameModel = NewGameModel(game, cfg, m.opts)
	m.screen = screenGame
	return m, m.gameModel.Init()
}

// updateScores handles updates on the scoreboard screen.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.gameModel.BackToMenu() {
		return m.backToMenu()
	}
	return m, cmd
}

// backToMenu returns to a fresh menu, refreshing best scores.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.opts.Store, m.config, m.opts.Prefs, m.opts.Logger)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenScores:
		return m.scoreboard.View()
	case screenDifficulty:
		return m.difficulty.View()
	default:
		return m.menu.View()
	}
}

// Prefs returns the session's current preferences.
func (m SessionModel) Prefs() Preferences {
	return m.opts.Prefs
}
