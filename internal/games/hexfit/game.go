// Package hexfit implements the HexFit session: tray, cursor, scoring and
// end-of-run sequencing on top of the board and spawner in hexfit/core.
package hexfit

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexfit/internal/config"
	platform "github.com/vovakirdan/hexfit/internal/core"
	"github.com/vovakirdan/hexfit/internal/games/hexfit/core"
	"github.com/vovakirdan/hexfit/internal/registry"
)

// Mode selects the board size.
type Mode string

const (
	ModeClassic Mode = "classic"
	ModeMini    Mode = "mini"
)

// Phase is the session lifecycle stage.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseDissolving
	PhaseOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseDissolving:
		return "dissolving"
	case PhaseOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives spawner diagnostics
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	if p, ok := config.ParsePreset(preset); ok && preset != "" {
		difficultyPreset = p
		return
	}
	difficultyPreset = ""
}

// SetLogger routes spawner debug output for games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Slot is one tray position.
type Slot struct {
	Shape  core.Shape
	Color  core.Color
	Filled bool
}

type flash struct {
	cells []core.ClearedCell
	ticks int
}

type floatText struct {
	text  string
	at    core.Coord
	ticks int
}

// Game is a HexFit session. It implements registry.Game.
type Game struct {
	mode     Mode
	override *config.HexfitConfig
	preset   config.DifficultyPreset // per-game choice, overrides difficultyPreset

	cfg        config.HexfitConfig
	colors     []core.Color
	rng        *rand.Rand
	board      *core.Board
	spawner    *core.Spawner
	difficulty *config.DifficultyManager

	tray     [core.TraySize]Slot
	selected int
	cursor   core.Coord
	aimX     int // preferred screen column, in half cells, for vertical moves

	tick      uint64
	score     int
	highScore int
	lines     int
	turns     int
	combo     int
	maxCombo  int
	lastClear uint64
	cleared   bool // any clear yet this run
	trays     int  // trays spawned
	fallbacks int  // trays that fell back to the single-cell triple

	flashes []flash
	floats  []floatText
	blocked int // ticks left on the "doesn't fit" hint
	cues    []platform.Cue

	phase    Phase
	paused   bool
	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a classic-mode session.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewMini creates a session on the small board.
func NewMini() *Game {
	return &Game{mode: ModeMini}
}

// NewWithConfig creates a session that uses cfg instead of loading one.
func NewWithConfig(mode Mode, cfg config.HexfitConfig) *Game {
	return &Game{mode: mode, override: &cfg}
}

func init() {
	registry.Register("hexfit", func() registry.Game {
		return New()
	})
	registry.Register("hexfit_mini", func() registry.Game {
		return NewMini()
	})
}

// ID returns the game identifier, also used as the high-score key.
func (g *Game) ID() string {
	if g.mode == ModeMini {
		return "hexfit_mini"
	}
	return "hexfit"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeMini {
		return "HexFit (Mini)"
	}
	return "HexFit"
}

// SetDifficulty selects a preset for this game only.
func (g *Game) SetDifficulty(preset string) bool {
	p, ok := config.ParsePreset(preset)
	if ok {
		g.preset = p
	}
	return ok
}

// SetHighScore gives the session the stored best for this mode.
func (g *Game) SetHighScore(score int) {
	g.highScore = score
}

// loadConfig resolves the configuration for a new run.
func (g *Game) loadConfig() config.HexfitConfig {
	var cfg config.HexfitConfig
	if g.override != nil {
		cfg = *g.override
	} else {
		var err error
		cfg, err = config.LoadHexfit(configPath)
		if err != nil {
			logger.Warn("hexfit: using default config", "error", err)
			cfg = config.DefaultHexfitConfig()
		}
	}

	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	if preset != "" {
		config.ApplyHexfitPreset(&cfg, preset)
	}
	return cfg
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rt platform.RuntimeConfig) {
	cfg := g.loadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Warn("hexfit: invalid config, using defaults", "error", err)
		cfg = config.DefaultHexfitConfig()
	}
	g.cfg = cfg

	catalog, err := cfg.Catalog()
	if err != nil {
		catalog = core.DefaultCatalog()
	}
	g.colors, err = cfg.PaletteColors()
	if err != nil {
		g.colors = core.AllColors()
	}

	radius := cfg.Board.Radius
	if g.mode == ModeMini {
		radius = cfg.Board.MiniRadius
	}
	if g.board == nil {
		g.board = core.NewBoard(radius)
	} else {
		g.board.Reset(radius)
	}

	g.rng = rand.New(rand.NewSource(rt.Seed))
	g.spawner = core.NewSpawner(catalog, cfg.SpawnParams(), g.rng)
	g.spawner.SetLogger(logger)
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty, g.spawner.Params().Tiers)

	g.tick = 0
	g.score = 0
	g.lines = 0
	g.turns = 0
	g.combo = 0
	g.maxCombo = 0
	g.lastClear = 0
	g.cleared = false
	g.trays = 0
	g.fallbacks = 0
	g.flashes = nil
	g.floats = nil
	g.blocked = 0
	g.cues = nil
	g.phase = PhasePlaying
	g.paused = false

	g.cursor = core.Coord{}
	g.aimX = 0
	g.tray = [core.TraySize]Slot{}
	g.refillTray()

	g.screenW = rt.ScreenW
	g.screenH = rt.ScreenH
	g.checkScreenSize()
}

// refillTray draws a new tray. Called only when every slot is empty.
func (g *Game) refillTray() {
	g.spawner.SetTiers(g.difficulty.Tiers(g.score, g.turns))

	tray, stats := g.spawner.SpawnWithStats(g.board)
	g.trays++
	if stats.Fallback {
		g.fallbacks++
		logger.Debug("hexfit: fallback tray", "trays", g.trays, "fallbacks", g.fallbacks, "attempts", stats.Attempts)
	}
	for i, sh := range tray {
		g.tray[i] = Slot{
			Shape:  sh,
			Color:  g.colors[g.rng.Intn(len(g.colors))],
			Filled: true,
		}
	}
	g.selected = 0
}

// checkScreenSize checks if the screen is large enough for the board and tray.
func (g *Game) checkScreenSize() {
	w, h := g.minScreenSize()
	g.tooSmall = g.screenW < w || g.screenH < h
}

// Resize adapts to a new screen size. The run continues.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// Step advances the game by one tick.
func (g *Game) Step(in platform.InputFrame) platform.StepResult {
	g.tick++
	g.cues = g.cues[:0]

	if g.tooSmall {
		return g.result()
	}

	if in.Has(platform.ActionPause) && g.phase == PhasePlaying {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	g.advanceEffects()

	switch g.phase {
	case PhasePlaying:
		g.handleInput(in)
	case PhaseDissolving:
		g.advanceDissolve()
	}

	return g.result()
}

func (g *Game) result() platform.StepResult {
	var cues []platform.Cue
	if len(g.cues) > 0 {
		cues = append(cues, g.cues...)
	}
	return platform.StepResult{State: g.State(), Cues: cues}
}

// advanceEffects ages flashes and floating text by one tick.
func (g *Game) advanceEffects() {
	kept := g.flashes[:0]
	for _, f := range g.flashes {
		f.ticks--
		if f.ticks > 0 {
			kept = append(kept, f)
		}
	}
	g.flashes = kept

	keptText := g.floats[:0]
	for _, ft := range g.floats {
		ft.ticks--
		if ft.ticks > 0 {
			keptText = append(keptText, ft)
		}
	}
	g.floats = keptText

	if g.blocked > 0 {
		g.blocked--
	}
}

// handleInput applies slot selection, cursor movement and placement.
func (g *Game) handleInput(in platform.InputFrame) {
	switch {
	case in.Has(platform.ActionSlot1):
		g.selectSlot(0)
	case in.Has(platform.ActionSlot2):
		g.selectSlot(1)
	case in.Has(platform.ActionSlot3):
		g.selectSlot(2)
	case in.Has(platform.ActionCycle):
		g.cycleSlot()
	}

	switch {
	case in.Has(platform.ActionLeft):
		g.moveHorizontal(-1)
	case in.Has(platform.ActionRight):
		g.moveHorizontal(1)
	case in.Has(platform.ActionUp):
		g.moveVertical(-1)
	case in.Has(platform.ActionDown):
		g.moveVertical(1)
	}

	if in.Has(platform.ActionConfirm) {
		g.tryPlace()
	}
}

func (g *Game) selectSlot(i int) {
	if i >= 0 && i < len(g.tray) && g.tray[i].Filled {
		g.selected = i
	}
}

// cycleSlot moves the selection to the next filled slot.
func (g *Game) cycleSlot() {
	for step := 1; step <= len(g.tray); step++ {
		i := (g.selected + step) % len(g.tray)
		if g.tray[i].Filled {
			g.selected = i
			return
		}
	}
}

// screenX is a coordinate's column in half-cell units.
func screenX(c core.Coord) int {
	return 2*c.Q + c.R
}

func (g *Game) moveHorizontal(dq int) {
	next := core.C(g.cursor.Q+dq, g.cursor.R)
	if g.board.Layout().Contains(next) {
		g.cursor = next
		g.aimX = screenX(next)
	}
}

// moveVertical steps one row up or down, picking whichever of the two
// neighbors in that row stays closest to the remembered column.
func (g *Game) moveVertical(dr int) {
	var candidates [2]core.Coord
	if dr < 0 {
		candidates = [2]core.Coord{core.C(g.cursor.Q, g.cursor.R-1), core.C(g.cursor.Q+1, g.cursor.R-1)}
	} else {
		candidates = [2]core.Coord{core.C(g.cursor.Q-1, g.cursor.R+1), core.C(g.cursor.Q, g.cursor.R+1)}
	}

	best, found := core.Coord{}, false
	bestDist := 0
	for _, c := range candidates {
		if !g.board.Layout().Contains(c) {
			continue
		}
		d := abs(screenX(c) - g.aimX)
		if !found || d < bestDist {
			best, bestDist, found = c, d, true
		}
	}
	if found {
		g.cursor = best
	}
}

// tryPlace commits the selected shape at the cursor if it fits.
func (g *Game) tryPlace() {
	slot := &g.tray[g.selected]
	if !slot.Filled {
		return
	}
	if !g.board.CanPlace(g.cursor, slot.Shape) {
		g.blocked = g.cfg.Effects.FlashTicks
		return
	}
	if err := g.board.Place(g.cursor, slot.Shape, slot.Color); err != nil {
		logger.Error("hexfit: placement rejected after CanPlace", "error", err)
		return
	}

	g.turns++
	g.score += slot.Shape.Size() * g.cfg.Scoring.PerTile
	g.cues = append(g.cues, platform.CuePlace)
	*slot = Slot{}

	res := g.board.CheckAndClearLines()
	if res.LinesCleared > 0 {
		g.applyClear(res)
	}

	if g.trayEmpty() {
		g.refillTray()
	} else if !g.tray[g.selected].Filled {
		g.cycleSlot()
	}

	if g.noMoves() {
		g.startGameOver()
	}
}

// ClearPoints is the score for clearing n lines at once:
// n × base × (1 + (n-1) × bonus), truncated.
func ClearPoints(n, base int, bonus float64) int {
	if n <= 0 {
		return 0
	}
	return int(float64(n*base) * (1 + float64(n-1)*bonus))
}

// applyClear scores a clear and triggers its effects.
func (g *Game) applyClear(res core.ClearResult) {
	n := res.LinesCleared
	points := ClearPoints(n, g.cfg.Scoring.LineBase, g.cfg.Scoring.ComboBonus)
	g.score += points
	g.lines += n

	if g.cleared && g.tick-g.lastClear <= uint64(g.cfg.Scoring.ComboWindowTicks) {
		g.combo++
	} else {
		g.combo = 1
	}
	g.cleared = true
	g.lastClear = g.tick
	g.maxCombo = max(g.maxCombo, g.combo)

	g.flashes = append(g.flashes, flash{cells: res.Cells, ticks: g.cfg.Effects.FlashTicks})
	at := res.Cells[len(res.Cells)/2].Coord
	g.floats = append(g.floats, floatText{text: fmt.Sprintf("+%d", points), at: at, ticks: g.cfg.Effects.FloatTicks})
	g.cues = append(g.cues, platform.CueClear)

	if g.combo > 1 {
		g.floats = append(g.floats, floatText{
			text:  fmt.Sprintf("COMBO x%d", g.combo),
			at:    core.C(at.Q, at.R-1),
			ticks: g.cfg.Effects.FloatTicks,
		})
		g.cues = append(g.cues, platform.CueCombo)
	}
}

func (g *Game) trayEmpty() bool {
	for _, s := range g.tray {
		if s.Filled {
			return false
		}
	}
	return true
}

// noMoves reports whether no filled slot fits anywhere.
func (g *Game) noMoves() bool {
	for _, s := range g.tray {
		if s.Filled && g.board.CanPlaceAny(s.Shape) {
			return false
		}
	}
	return true
}

// startGameOver begins the dissolve sequence.
func (g *Game) startGameOver() {
	g.combo = 0
	if g.board.StartDissolve(g.cfg.Effects.DissolveStagger) == 0 {
		g.finish()
		return
	}
	g.phase = PhaseDissolving
}

// advanceDissolve runs one tick of the dissolve sequence.
func (g *Game) advanceDissolve() {
	emptied, done := g.board.UpdateDissolve(1)
	if len(emptied) > 0 {
		g.flashes = append(g.flashes, flash{cells: emptied, ticks: g.cfg.Effects.FlashTicks})
	}
	if done {
		g.finish()
	}
}

func (g *Game) finish() {
	g.phase = PhaseOver
	g.cues = append(g.cues, platform.CueGameOver)
}

// State returns the current game state.
func (g *Game) State() platform.GameState {
	return platform.GameState{
		Score:    g.score,
		GameOver: g.phase == PhaseOver,
		Paused:   g.paused || g.tooSmall,
	}
}

// NewBest reports whether the current score beats the stored best.
func (g *Game) NewBest() bool {
	return g.score > g.highScore
}

// RunSummary reports the run for score storage.
func (g *Game) RunSummary() registry.RunSummary {
	return registry.RunSummary{
		Score:    g.score,
		Lines:    g.lines,
		Turns:    g.turns,
		MaxCombo: g.maxCombo,
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
