package config

import (
	"math"

	"github.com/vovakirdan/hexfit/internal/games/hexfit/core"
)

// HardTiers is the tier table reached at difficulty level 1.0.
var HardTiers = core.TierTable{1, 15, 35, 60}

// DifficultyManager shifts the spawn tier table toward larger shapes as a
// run progresses.
type DifficultyManager struct {
	cfg          DifficultyConfig
	base         core.TierTable
	initialLevel float64
}

// NewDifficultyManager creates a manager ramping from base toward HardTiers.
func NewDifficultyManager(cfg DifficultyConfig, base core.TierTable) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		base:         base,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) from score or
// turns, depending on the progression type.
func (d *DifficultyManager) Level(score, turns int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "turns":
		progress = float64(turns) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Tiers interpolates between the base table and HardTiers. Both tables are
// strictly increasing, so every blend is too.
func (d *DifficultyManager) Tiers(score, turns int) core.TierTable {
	level := d.Level(score, turns)
	if !d.cfg.Enabled {
		return d.base
	}
	var t core.TierTable
	for i := range t {
		t[i] = d.base[i] + level*(HardTiers[i]-d.base[i])
	}
	return t
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
