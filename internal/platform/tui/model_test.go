package tui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hexfit/internal/core"
	"github.com/vovakirdan/hexfit/internal/registry"
	"github.com/vovakirdan/hexfit/internal/storage"
)

// fakeGame ends after overAt steps, scoring 10 per step.
type fakeGame struct {
	steps   int
	overAt  int
	score   int
	best    int
	resets  int
	preset  string
	cues    []core.Cue
	resized [2]int
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
	g.score = 0
}

func (g *fakeGame) Step(core.InputFrame) core.StepResult {
	if !g.State().GameOver {
		g.steps++
		g.score += 10
	}
	return core.StepResult{State: g.State(), Cues: g.cues}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "FAKE")
}

func (g *fakeGame) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.overAt > 0 && g.steps >= g.overAt}
}

func (g *fakeGame) SetHighScore(s int) { g.best = s }

func (g *fakeGame) SetDifficulty(p string) bool {
	g.preset = p
	return true
}

func (g *fakeGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func (g *fakeGame) RunSummary() registry.RunSummary {
	return registry.RunSummary{Score: g.score, Lines: 3, Turns: g.steps, MaxCombo: 2}
}

var lastFake *fakeGame

func init() {
	registry.Register("fake", func() registry.Game {
		lastFake = &fakeGame{overAt: 3}
		return lastFake
	})
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func tick(t *testing.T, m tea.Model) tea.Model {
	t.Helper()
	next, _ := m.Update(TickMsg{})
	return next
}

func TestGameModelSavesRunOnce(t *testing.T) {
	store := openStore(t)
	game := &fakeGame{overAt: 3}
	m := NewGameModel(game, core.DefaultConfig(), GameOptions{Store: store})
	m.Init()

	var model tea.Model = m
	for i := 0; i < 6; i++ {
		model = tick(t, model)
	}

	scores, err := store.TopScores("fake", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d runs, want 1", len(scores))
	}
	if scores[0].Score != 30 || scores[0].Lines != 3 || scores[0].MaxCombo != 2 {
		t.Errorf("saved %+v", scores[0])
	}
}

func TestGameModelLoadsHighScore(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore("fake", 120); err != nil {
		t.Fatal(err)
	}
	game := &fakeGame{}
	NewGameModel(game, core.DefaultConfig(), GameOptions{Store: store}).Init()
	if game.best != 120 {
		t.Errorf("best = %d, want 120", game.best)
	}
}

func TestGameModelRestartAfterGameOver(t *testing.T) {
	game := &fakeGame{overAt: 1}
	var model tea.Model = NewGameModel(game, core.DefaultConfig(), GameOptions{})
	model.Init()
	model = tick(t, model)

	model, _ = model.Update(runes("r"))
	tick(t, model)
	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}
}

func TestGameModelBackOnlyWhenOver(t *testing.T) {
	game := &fakeGame{overAt: 2}
	var model tea.Model = NewGameModel(game, core.DefaultConfig(), GameOptions{})
	model.Init()
	model = tick(t, model)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if model.(GameModel).BackToMenu() {
		t.Fatal("back accepted mid-game")
	}
	model = tick(t, model)
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !model.(GameModel).BackToMenu() {
		t.Error("back ignored after game over")
	}
}

func TestGameModelResizeKeepsRun(t *testing.T) {
	game := &fakeGame{}
	var model tea.Model = NewGameModel(game, core.DefaultConfig(), GameOptions{})
	model.Init()
	model.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	if game.resets != 1 {
		t.Errorf("resize reset the game")
	}
	if game.resized != [2]int{100, 40} {
		t.Errorf("resized = %v", game.resized)
	}
}

func TestBell(t *testing.T) {
	var buf bytes.Buffer
	m := NewGameModel(&fakeGame{}, core.DefaultConfig(), GameOptions{
		Prefs: Preferences{Theme: DefaultTheme(), Sound: true},
		Bell:  &buf,
	})

	if m.ringsBell([]core.Cue{core.CuePlace}) {
		t.Error("bell on a plain placement")
	}
	if !m.ringsBell([]core.Cue{core.CuePlace, core.CueClear}) {
		t.Error("no bell on clear")
	}
	bellCmd(&buf)()
	if buf.String() != "\a" {
		t.Errorf("bell wrote %q", buf.String())
	}

	m.opts.Prefs.Sound = false
	if m.ringsBell([]core.Cue{core.CueGameOver}) {
		t.Error("bell with sound off")
	}
}

func TestGameModelView(t *testing.T) {
	m := NewGameModel(&fakeGame{}, core.RuntimeConfig{ScreenW: 20, ScreenH: 3, TickRate: 30}, GameOptions{
		Prefs: Preferences{Theme: DefaultTheme()},
	})
	if !strings.Contains(m.View(), "FAKE") {
		t.Error("view missing game output")
	}
}

func TestGameKeyMapActions(t *testing.T) {
	keys := DefaultGameKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{tea.KeyMsg{Type: tea.KeyTab}, core.ActionCycle},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{runes("2"), core.ActionSlot2},
		{runes("d"), core.ActionRight},
		{runes("p"), core.ActionPause},
		{runes("q"), core.ActionQuit},
		{runes("z"), core.ActionNone},
	}
	for _, tt := range tests {
		if got := keys.Action(tt.msg); got != tt.want {
			t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestMenuKeyMap(t *testing.T) {
	keys := DefaultMenuKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runes("j"), MenuActionDown},
		{runes("t"), MenuActionTheme},
		{runes("m"), MenuActionSound},
		{runes("x"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := keys.MenuAction(tt.msg); got != tt.want {
			t.Errorf("MenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
