package core

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

// TraySize is the number of shapes offered to the player at once.
const TraySize = 3

// Tray is one set of offered shapes.
type Tray [TraySize]Shape

// TierTable holds the cumulative percentage thresholds for difficulty tiers
// 1..4. A roll in [0,100) at or above the last threshold selects tier 5.
type TierTable [MaxDifficulty - 1]float64

// DefaultTiers: tier 1 2%, tier 2 38%, tier 3 30%, tier 4 20%, tier 5 10%.
var DefaultTiers = TierTable{2, 40, 70, 90}

// Tier maps a roll in [0,100) to a difficulty tier.
func (t TierTable) Tier(roll float64) int {
	for i, limit := range t {
		if roll < limit {
			return i + 1
		}
	}
	return MaxDifficulty
}

// Valid reports whether thresholds are strictly increasing within (0,100].
func (t TierTable) Valid() bool {
	prev := 0.0
	for _, limit := range t {
		if limit <= prev || limit > 100 {
			return false
		}
		prev = limit
	}
	return true
}

// SpawnParams configures the safe-spawn search.
type SpawnParams struct {
	Tiers          TierTable
	NeedClearRatio float64 // accept a no-clear triple if empty ratio stays above this
	MaxAttempts    int     // draws before falling back to the single-cell triple
}

// DefaultSpawnParams returns the standard spawn settings.
func DefaultSpawnParams() SpawnParams {
	return SpawnParams{
		Tiers:          DefaultTiers,
		NeedClearRatio: 0.25,
		MaxAttempts:    100,
	}
}

// SpawnStats describes how a tray was produced.
type SpawnStats struct {
	Attempts int  // draws tested
	Fallback bool // true if the fallback triple was returned
	Nodes    int  // placements tried by the search across all attempts
}

// Spawner draws trays that are not an immediate dead end.
type Spawner struct {
	catalog *Catalog
	params  SpawnParams
	rng     *rand.Rand
	logger  *log.Logger
}

// NewSpawner creates a spawner drawing from catalog with the given random source.
func NewSpawner(catalog *Catalog, params SpawnParams, rng *rand.Rand) *Spawner {
	if params.MaxAttempts <= 0 {
		params.MaxAttempts = DefaultSpawnParams().MaxAttempts
	}
	if !params.Tiers.Valid() {
		params.Tiers = DefaultTiers
	}
	return &Spawner{
		catalog: catalog,
		params:  params,
		rng:     rng,
		logger:  log.New(io.Discard),
	}
}

// SetLogger routes search diagnostics to l. Attempts are logged at debug level.
func (s *Spawner) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	s.logger = l
}

// Params returns the spawner settings.
func (s *Spawner) Params() SpawnParams {
	return s.params
}

// SetTiers replaces the tier table used for future draws.
// Invalid tables are ignored.
func (s *Spawner) SetTiers(t TierTable) {
	if t.Valid() {
		s.params.Tiers = t
	}
}

// SelectWeighted draws a difficulty tier from the tier table and returns a
// uniformly chosen catalog shape of that tier. Shapes are shuffled before the
// scan so ties are not biased toward catalog order. If no shape has the
// drawn tier, the catalog fallback is returned.
func (s *Spawner) SelectWeighted() Shape {
	roll := s.rng.Float64() * 100
	tier := s.params.Tiers.Tier(roll)

	for _, i := range s.rng.Perm(len(s.catalog.shapes)) {
		if sh := s.catalog.shapes[i]; sh.difficulty == tier {
			return sh
		}
	}
	return s.catalog.fallback
}

// Spawn returns three shapes that can be placed one after another on the
// current board, or three fallback shapes if the attempt budget runs out.
func (s *Spawner) Spawn(b *Board) Tray {
	tray, _ := s.SpawnWithStats(b)
	return tray
}

// SpawnWithStats is Spawn with search statistics.
func (s *Spawner) SpawnWithStats(b *Board) (Tray, SpawnStats) {
	var stats SpawnStats
	for stats.Attempts < s.params.MaxAttempts {
		stats.Attempts++

		var tray Tray
		for i := range tray {
			tray[i] = s.SelectWeighted()
		}

		ok, nodes := searchTray(b.CloneState(), tray[:], s.params.NeedClearRatio)
		stats.Nodes += nodes
		s.logger.Debug("spawn attempt",
			"attempt", stats.Attempts,
			"shapes", []string{tray[0].name, tray[1].name, tray[2].name},
			"empty", b.EmptyCount(),
			"total", b.Len(),
			"ok", ok,
			"nodes", nodes,
		)
		if ok {
			return tray, stats
		}
	}

	fb := s.catalog.fallback
	stats.Fallback = true
	s.logger.Debug("spawn fell back", "attempts", stats.Attempts, "shape", fb.name)
	return Tray{fb, fb, fb}, stats
}

// IsJointlyPlaceable reports whether the shapes can be placed in the given
// order on state, with line clears resolved after each placement, such that
// at least one line clears along the way or the final empty ratio exceeds
// needClearRatio. The state is never modified.
func IsJointlyPlaceable(state State, shapes []Shape, needClearRatio float64) bool {
	ok, _ := searchTray(state.Clone(), shapes, needClearRatio)
	return ok
}

// searchTray runs the depth-first search on work, which it mutates and
// restores on backtrack. Returns the result and nodes visited.
func searchTray(work State, shapes []Shape, needClearRatio float64) (bool, int) {
	sr := searcher{
		work:  work,
		ratio: needClearRatio,
		total: work.Len(),
	}
	ok := sr.solve(shapes, false, work.EmptyCount())
	return ok, sr.nodes
}

type searcher struct {
	work  State
	ratio float64
	total int
	nodes int
}

// solve tries every board coordinate, in layout order, as the anchor for the
// first remaining shape. hasCleared is accumulated across the branch.
func (sr *searcher) solve(shapes []Shape, hasCleared bool, empty int) bool {
	if len(shapes) == 0 {
		if hasCleared {
			return true
		}
		return sr.total > 0 && float64(empty)/float64(sr.total) > sr.ratio
	}

	shape, rest := shapes[0], shapes[1:]
	var idx []int
	var cleared []clearedCell

	for _, c := range sr.work.layout.coords {
		var ok bool
		idx, ok = sr.work.targets(c, shape, idx)
		if !ok {
			continue
		}
		sr.nodes++

		sr.work.occupy(idx, ColorNone)
		var lines int
		cleared, lines = sr.work.clearFull(cleared)

		if sr.solve(rest, hasCleared || lines > 0, empty-len(idx)+len(cleared)) {
			return true
		}

		for _, cc := range cleared {
			sr.work.cells[cc.index] = cc.prev
		}
		for _, i := range idx {
			sr.work.cells[i] = Cell{}
		}
	}
	return false
}
