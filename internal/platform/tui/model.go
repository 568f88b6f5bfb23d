package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexfit/internal/core"
	"github.com/vovakirdan/hexfit/internal/registry"
	"github.com/vovakirdan/hexfit/internal/storage"
)

// GameOptions carries the per-session dependencies of a GameModel.
type GameOptions struct {
	Store  *storage.Store // may be nil
	Prefs  Preferences
	Bell   io.Writer   // receives BEL on clear, combo and game over; nil for silence
	Logger *log.Logger // may be nil
}

// GameModel is the Bubble Tea model for running a single game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	opts       GameOptions
	config     core.RuntimeConfig
	keys       GameKeyMap
	inputFrame core.InputFrame
	gameState  core.GameState
	quitOnBack bool // standalone play: back exits the program
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		keys:       DefaultGameKeyMap(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.loadHighScore()
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)
	return tickCmd(m.config.TickRate)
}

// loadHighScore hands the stored best to games that display it.
func (m GameModel) loadHighScore() {
	hs, ok := m.game.(registry.HighScoreAware)
	if !ok || m.opts.Store == nil {
		return
	}
	best, err := m.opts.Store.HighScore(m.game.ID())
	if err != nil {
		m.opts.Logger.Warn("cannot read high score", "game", m.game.ID(), "error", err)
		return
	}
	hs.SetHighScore(best)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.quitOnBack {
				return m, tea.Quit
			}
		}
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(action)
		}
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.loadHighScore()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveRun()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.ringsBell(result.Cues) {
		cmds = append(cmds, bellCmd(m.opts.Bell))
	}
	return m, tea.Batch(cmds...)
}

// ringsBell reports whether any cue is loud enough for the terminal bell.
func (m GameModel) ringsBell(cues []core.Cue) bool {
	if !m.opts.Prefs.Sound || m.opts.Bell == nil {
		return false
	}
	for _, c := range cues {
		if c != core.CuePlace {
			return true
		}
	}
	return false
}

// bellCmd writes a BEL byte to w.
func bellCmd(w io.Writer) tea.Cmd {
	return func() tea.Msg {
		//nolint:errcheck // Best-effort, a missed bell is harmless
		w.Write([]byte{'\a'})
		return nil
	}
}

// saveRun stores the finished run once. Zero scores are not recorded.
func (m GameModel) saveRun() {
	if m.opts.Store == nil || m.gameState.Score <= 0 {
		return
	}

	run := storage.Run{GameID: m.game.ID(), Score: m.gameState.Score}
	if rr, ok := m.game.(registry.RunReporter); ok {
		s := rr.RunSummary()
		run.Lines = s.Lines
		run.Turns = s.Turns
		run.MaxCombo = s.MaxCombo
	}
	if _, err := m.opts.Store.SaveRun(run); err != nil {
		m.opts.Logger.Error("cannot save run", "game", run.GameID, "error", err)
		return
	}
	m.opts.Logger.Info("run saved", "game", run.GameID, "score", run.Score, "lines", run.Lines)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".hexfit", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen, m.opts.Prefs.Theme)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for one game.
// Returns true if the player asked to go back rather than quit.
func Run(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) (backToMenu bool, err error) {
	model := NewGameModel(game, cfg, opts)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(GameModel)
	return ok && m.BackToMenu(), nil
}
