package config

import (
	_ "embed"
)

//go:embed defaults/hexfit.yaml
var defaultHexfitYAML []byte

// DefaultHexfitConfig returns the hardcoded default configuration.
// It matches defaults/hexfit.yaml and is used if the embedded file fails to parse.
func DefaultHexfitConfig() HexfitConfig {
	return HexfitConfig{
		Board: BoardConfig{
			Radius:     5,
			MiniRadius: 3,
		},
		Spawn: SpawnConfig{
			NeedClearRatio: 0.25,
			MaxAttempts:    100,
			Tiers:          []float64{2, 40, 70, 90},
		},
		Scoring: ScoringConfig{
			PerTile:          10,
			LineBase:         100,
			ComboBonus:       0.5,
			ComboWindowTicks: 90,
		},
		Effects: EffectsConfig{
			FlashTicks:      12,
			FloatTicks:      30,
			DissolveStagger: 3,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20000,
			},
		},
		Palette: []string{"orange", "green", "blue", "yellow", "purple"},
		Theme:   "lava",
	}
}
