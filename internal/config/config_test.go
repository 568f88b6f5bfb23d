package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/hexfit/internal/games/hexfit/core"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	got := embeddedDefault()
	want := DefaultHexfitConfig()

	if got.Board != want.Board || got.Scoring != want.Scoring || got.Effects != want.Effects {
		t.Errorf("embedded default differs from hardcoded:\n got %+v\nwant %+v", got, want)
	}
	if got.Spawn.NeedClearRatio != want.Spawn.NeedClearRatio || got.Spawn.MaxAttempts != want.Spawn.MaxAttempts {
		t.Errorf("spawn = %+v, want %+v", got.Spawn, want.Spawn)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("embedded default invalid: %v", err)
	}
	if p := got.SpawnParams(); p != core.DefaultSpawnParams() {
		t.Errorf("SpawnParams() = %+v, want %+v", p, core.DefaultSpawnParams())
	}
}

func TestLoadHexfitCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hexfit.yaml")
	data := []byte(`
board:
  radius: 4
scoring:
  line_base: 250
shapes:
  - name: Pair
    difficulty: 1
    offsets: [[0, 0], [1, 0]]
  - name: Tri
    difficulty: 3
    offsets: [[0, 0], [1, 0], [0, 1]]
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadHexfit(path)
	if err != nil {
		t.Fatalf("LoadHexfit: %v", err)
	}
	if cfg.Board.Radius != 4 || cfg.Scoring.LineBase != 250 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Scoring.PerTile != 10 {
		t.Errorf("unset keys should keep defaults, per_tile = %d", cfg.Scoring.PerTile)
	}

	cat, err := cfg.Catalog()
	if err != nil {
		t.Fatal(err)
	}
	if cat.Len() != 2 || cat.Fallback().Name() != "Dot" {
		t.Errorf("catalog len %d fallback %s", cat.Len(), cat.Fallback())
	}
}

func TestLoadHexfitMissingCustomPath(t *testing.T) {
	if _, err := LoadHexfit(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing custom config should be an error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*HexfitConfig)
	}{
		{"radius", func(c *HexfitConfig) { c.Board.Radius = 0 }},
		{"ratio high", func(c *HexfitConfig) { c.Spawn.NeedClearRatio = 1.5 }},
		{"ratio negative", func(c *HexfitConfig) { c.Spawn.NeedClearRatio = -0.1 }},
		{"attempts", func(c *HexfitConfig) { c.Spawn.MaxAttempts = 0 }},
		{"tiers count", func(c *HexfitConfig) { c.Spawn.Tiers = []float64{10, 20} }},
		{"tiers order", func(c *HexfitConfig) { c.Spawn.Tiers = []float64{10, 5, 70, 90} }},
		{"palette empty", func(c *HexfitConfig) { c.Palette = nil }},
		{"palette unknown", func(c *HexfitConfig) { c.Palette = []string{"teal"} }},
		{"shape no origin", func(c *HexfitConfig) {
			c.Shapes = []ShapeConfig{{Name: "X", Difficulty: 1, Offsets: [][]int{{1, 0}}}}
		}},
		{"shape bad offset", func(c *HexfitConfig) {
			c.Shapes = []ShapeConfig{{Name: "X", Difficulty: 1, Offsets: [][]int{{0}}}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultHexfitConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestApplyHexfitPreset(t *testing.T) {
	easy := DefaultHexfitConfig()
	ApplyHexfitPreset(&easy, DifficultyEasy)
	hard := DefaultHexfitConfig()
	ApplyHexfitPreset(&hard, DifficultyHard)

	if err := easy.Validate(); err != nil {
		t.Fatalf("easy invalid: %v", err)
	}
	if err := hard.Validate(); err != nil {
		t.Fatalf("hard invalid: %v", err)
	}
	// Small-shape tier 2 covers more of the roll range on easy.
	if easy.Spawn.Tiers[1] <= hard.Spawn.Tiers[1] {
		t.Errorf("easy tiers %v should favor small shapes over hard %v", easy.Spawn.Tiers, hard.Spawn.Tiers)
	}
	if hard.Difficulty.InitialLevel <= easy.Difficulty.InitialLevel {
		t.Error("hard should start at a higher level")
	}

	if easy.Difficulty.Enabled {
		t.Error("easy preset should not turn the ramp on")
	}
	if !hard.Difficulty.Enabled {
		t.Error("hard preset should turn the ramp on")
	}

	normal := DefaultHexfitConfig()
	ApplyHexfitPreset(&normal, DifficultyNormal)
	if normal.Difficulty.Enabled || normal.Spawn.Tiers[1] != 40 {
		t.Errorf("normal preset changed the config: %+v", normal)
	}

	fixed := DefaultHexfitConfig()
	fixed.Difficulty.Enabled = true
	ApplyHexfitPreset(&fixed, DifficultyFixed)
	if fixed.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	if _, ok := ParsePreset("insane"); ok {
		t.Error("unknown preset accepted")
	}
	if p, ok := ParsePreset(""); !ok || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, ok)
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 1000},
	}
	dm := NewDifficultyManager(cfg, core.DefaultTiers)

	if got := dm.Tiers(0, 0); got != core.DefaultTiers {
		t.Errorf("Tiers at score 0 = %v, want base", got)
	}
	if got := dm.Tiers(5000, 0); got != HardTiers {
		t.Errorf("Tiers past max_at = %v, want HardTiers", got)
	}
	mid := dm.Tiers(500, 0)
	if !mid.Valid() {
		t.Errorf("blended tiers %v invalid", mid)
	}
	if mid[0] >= core.DefaultTiers[0] && mid[3] >= core.DefaultTiers[3] {
		t.Errorf("blended tiers %v did not move toward hard", mid)
	}

	turns := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "turns", MaxAt: 10},
	}, core.DefaultTiers)
	if lvl := turns.Level(0, 5); lvl != 0.5 {
		t.Errorf("Level(turns=5) = %v, want 0.5", lvl)
	}

	off := NewDifficultyManager(DifficultyConfig{Enabled: false}, core.DefaultTiers)
	if off.IsEnabled() || off.Tiers(99999, 99) != core.DefaultTiers {
		t.Error("disabled manager should keep the base tiers")
	}
}

func TestDefaultTiersStayFixed(t *testing.T) {
	cfg := DefaultHexfitConfig()
	if cfg.Difficulty.Enabled {
		t.Fatal("difficulty ramp enabled by default")
	}
	m := NewDifficultyManager(cfg.Difficulty, core.DefaultTiers)
	for _, score := range []int{0, 5000, cfg.Difficulty.Progression.MaxAt, 1_000_000} {
		if got := m.Tiers(score, score/10); got != core.DefaultTiers {
			t.Errorf("Tiers(%d) = %v, want %v", score, got, core.DefaultTiers)
		}
	}
}
