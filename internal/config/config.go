// Package config provides YAML-based configuration loading and difficulty
// management for HexFit.
package config

// HexfitConfig contains all tunables for a HexFit session.
type HexfitConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Effects    EffectsConfig    `yaml:"effects"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Palette    []string         `yaml:"palette"`          // piece color names, see core.ParseColor
	Shapes     []ShapeConfig    `yaml:"shapes,omitempty"` // replaces the built-in catalog when set
	Theme      string           `yaml:"theme"`
}

// BoardConfig defines the board geometry.
type BoardConfig struct {
	Radius     int `yaml:"radius"`
	MiniRadius int `yaml:"mini_radius"` // radius of the hexfit_mini mode
}

// SpawnConfig defines the safe-spawn search.
type SpawnConfig struct {
	NeedClearRatio float64   `yaml:"need_clear_ratio"`
	MaxAttempts    int       `yaml:"max_attempts"`
	Tiers          []float64 `yaml:"tiers"` // cumulative thresholds for tiers 1..4
}

// ScoringConfig defines point values.
type ScoringConfig struct {
	PerTile          int     `yaml:"per_tile"`
	LineBase         int     `yaml:"line_base"`
	ComboBonus       float64 `yaml:"combo_bonus"`        // extra multiplier per additional line in one clear
	ComboWindowTicks int     `yaml:"combo_window_ticks"` // clears closer than this chain a combo
}

// EffectsConfig defines visual effect durations, in ticks.
type EffectsConfig struct {
	FlashTicks      int     `yaml:"flash_ticks"`
	FloatTicks      int     `yaml:"float_ticks"`
	DissolveStagger float64 `yaml:"dissolve_stagger"` // ticks per ring of distance from the center
}

// ShapeConfig is one catalog entry.
type ShapeConfig struct {
	Name       string  `yaml:"name"`
	Difficulty int     `yaml:"difficulty"`
	Offsets    [][]int `yaml:"offsets"` // [[q, r], ...]
}

// DifficultyConfig defines how the tier table ramps during a run.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = configured tiers, 1.0 = hard tiers
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "turns", or "none"
	MaxAt int    `yaml:"max_at"` // score/turns at which the hard tiers are reached
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyHard:
		return 0.3
	default:
		return 0.0
	}
}
