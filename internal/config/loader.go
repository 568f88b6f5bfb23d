package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/hexfit/internal/games/hexfit/core"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// LoadHexfit loads HexFit configuration.
// Search order: customPath -> ~/.hexfit/configs/hexfit.yaml -> ./configs/hexfit.yaml -> embedded default.
// Files found on the search path are merged over the defaults, so a partial
// file only needs the keys it changes.
func LoadHexfit(customPath string) (HexfitConfig, error) {
	cfg := embeddedDefault()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("hexfit.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			override := cfg
			if err := yaml.Unmarshal(data, &override); err == nil && override.Validate() == nil {
				return override, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "hexfit.yaml")); err == nil {
		override := cfg
		if err := yaml.Unmarshal(data, &override); err == nil && override.Validate() == nil {
			return override, nil
		}
	}

	return cfg, nil
}

// embeddedDefault parses the embedded YAML, falling back to the hardcoded default.
func embeddedDefault() HexfitConfig {
	var cfg HexfitConfig
	if err := yaml.Unmarshal(defaultHexfitYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultHexfitConfig()
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hexfit", "configs", filename)
}

// Validate checks every field the game depends on.
func (c HexfitConfig) Validate() error {
	if c.Board.Radius < 1 {
		return fmt.Errorf("%w: board.radius %d < 1", ErrInvalid, c.Board.Radius)
	}
	if c.Board.MiniRadius < 1 {
		return fmt.Errorf("%w: board.mini_radius %d < 1", ErrInvalid, c.Board.MiniRadius)
	}
	if r := c.Spawn.NeedClearRatio; r < 0 || r > 1 {
		return fmt.Errorf("%w: spawn.need_clear_ratio %v outside [0,1]", ErrInvalid, r)
	}
	if c.Spawn.MaxAttempts < 1 {
		return fmt.Errorf("%w: spawn.max_attempts %d < 1", ErrInvalid, c.Spawn.MaxAttempts)
	}
	if _, err := c.TierTable(); err != nil {
		return err
	}
	if c.Scoring.PerTile < 0 || c.Scoring.LineBase < 0 || c.Scoring.ComboBonus < 0 {
		return fmt.Errorf("%w: scoring values must not be negative", ErrInvalid)
	}
	if _, err := c.PaletteColors(); err != nil {
		return err
	}
	if len(c.Shapes) > 0 {
		if _, err := c.Catalog(); err != nil {
			return err
		}
	}
	return nil
}

// TierTable converts spawn.tiers into the core table.
func (c HexfitConfig) TierTable() (core.TierTable, error) {
	var t core.TierTable
	if len(c.Spawn.Tiers) != len(t) {
		return t, fmt.Errorf("%w: spawn.tiers needs %d values, got %d", ErrInvalid, len(t), len(c.Spawn.Tiers))
	}
	copy(t[:], c.Spawn.Tiers)
	if !t.Valid() {
		return t, fmt.Errorf("%w: spawn.tiers %v must increase within (0,100]", ErrInvalid, c.Spawn.Tiers)
	}
	return t, nil
}

// SpawnParams builds spawner settings. Invalid tiers fall back to the defaults.
func (c HexfitConfig) SpawnParams() core.SpawnParams {
	p := core.DefaultSpawnParams()
	if t, err := c.TierTable(); err == nil {
		p.Tiers = t
	}
	p.NeedClearRatio = c.Spawn.NeedClearRatio
	if c.Spawn.MaxAttempts > 0 {
		p.MaxAttempts = c.Spawn.MaxAttempts
	}
	return p
}

// PaletteColors resolves the palette names.
func (c HexfitConfig) PaletteColors() ([]core.Color, error) {
	if len(c.Palette) == 0 {
		return nil, fmt.Errorf("%w: palette is empty", ErrInvalid)
	}
	out := make([]core.Color, 0, len(c.Palette))
	for _, name := range c.Palette {
		col, ok := core.ParseColor(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown palette color %q", ErrInvalid, name)
		}
		out = append(out, col)
	}
	return out, nil
}

// Catalog builds the shape catalog: the configured shapes if any, else the
// built-in set. The single-cell Dot is always the fallback.
func (c HexfitConfig) Catalog() (*core.Catalog, error) {
	if len(c.Shapes) == 0 {
		return core.DefaultCatalog(), nil
	}

	shapes := make([]core.Shape, 0, len(c.Shapes))
	for i, sc := range c.Shapes {
		offsets := make([]core.Coord, 0, len(sc.Offsets))
		for _, o := range sc.Offsets {
			if len(o) != 2 {
				return nil, fmt.Errorf("%w: shapes[%d] offset %v is not [q, r]", ErrInvalid, i, o)
			}
			offsets = append(offsets, core.C(o[0], o[1]))
		}
		s, err := core.NewShape(sc.Name, sc.Difficulty, offsets...)
		if err != nil {
			return nil, fmt.Errorf("%w: shapes[%d]: %w", ErrInvalid, i, err)
		}
		shapes = append(shapes, s)
	}

	cat, err := core.NewCatalog(shapes, core.Dot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return cat, nil
}

// ApplyHexfitPreset modifies the config based on a difficulty preset.
// Normal keeps the config as loaded. Easy favors small shapes and demands a
// clearing tray sooner as the board fills. Hard favors large shapes, lets
// the board fill further first and turns the ramp on. Fixed turns it off.
func ApplyHexfitPreset(cfg *HexfitConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Spawn.Tiers = []float64{5, 55, 80, 95}
		cfg.Spawn.NeedClearRatio = 0.35
	case DifficultyHard:
		cfg.Spawn.Tiers = []float64{1, 25, 50, 75}
		cfg.Spawn.NeedClearRatio = 0.15
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	}
}
