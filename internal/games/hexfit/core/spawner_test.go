package core_test

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/hexfit/internal/games/hexfit/core"
)

func TestTierTable(t *testing.T) {
	tests := []struct {
		roll float64
		want int
	}{
		{0, 1},
		{1.99, 1},
		{2, 2},
		{39.9, 2},
		{40, 3},
		{69.9, 3},
		{70, 4},
		{89.99, 4},
		{90, 5},
		{99.9, 5},
	}
	for _, tt := range tests {
		if got := core.DefaultTiers.Tier(tt.roll); got != tt.want {
			t.Errorf("Tier(%v) = %d, want %d", tt.roll, got, tt.want)
		}
	}

	if !core.DefaultTiers.Valid() {
		t.Error("DefaultTiers reported invalid")
	}
	if (core.TierTable{10, 5, 70, 90}).Valid() {
		t.Error("non-increasing table reported valid")
	}
	if (core.TierTable{2, 40, 70, 120}).Valid() {
		t.Error("table above 100 reported valid")
	}
}

func TestSelectWeightedDistribution(t *testing.T) {
	sp := core.NewSpawner(core.DefaultCatalog(), core.DefaultSpawnParams(), rand.New(rand.NewSource(7)))

	const draws = 20000
	counts := make(map[int]int)
	for i := 0; i < draws; i++ {
		counts[sp.SelectWeighted().Difficulty()]++
	}

	// Expected shares: 2%, 38%, 30%, 20%, 10%.
	bounds := map[int][2]float64{
		1: {0.01, 0.03},
		2: {0.35, 0.41},
		3: {0.27, 0.33},
		4: {0.17, 0.23},
		5: {0.08, 0.12},
	}
	for tier, b := range bounds {
		share := float64(counts[tier]) / draws
		if share < b[0] || share > b[1] {
			t.Errorf("tier %d share = %.3f, want within [%.2f, %.2f]", tier, share, b[0], b[1])
		}
	}
}

func TestSelectWeightedFallsBackOnEmptyTier(t *testing.T) {
	hex, _ := core.DefaultCatalog().Lookup("Hex")
	cat, err := core.NewCatalog([]core.Shape{hex}, core.Dot)
	if err != nil {
		t.Fatal(err)
	}
	sp := core.NewSpawner(cat, core.DefaultSpawnParams(), rand.New(rand.NewSource(1)))

	sawDot, sawHex := false, false
	for i := 0; i < 200; i++ {
		switch sp.SelectWeighted().Name() {
		case "Dot":
			sawDot = true
		case "Hex":
			sawHex = true
		default:
			t.Fatal("SelectWeighted returned a shape outside the catalog")
		}
	}
	if !sawDot || !sawHex {
		t.Errorf("sawDot=%v sawHex=%v, want both", sawDot, sawHex)
	}
}

func TestSpawnEmptyBoardFirstAttempt(t *testing.T) {
	b := core.NewBoard(5)
	for seed := int64(0); seed < 20; seed++ {
		sp := core.NewSpawner(core.DefaultCatalog(), core.DefaultSpawnParams(), rand.New(rand.NewSource(seed)))
		tray, stats := sp.SpawnWithStats(b)
		if stats.Attempts != 1 || stats.Fallback {
			t.Errorf("seed %d: attempts %d fallback %v, want 1 and false", seed, stats.Attempts, stats.Fallback)
		}
		for i, sh := range tray {
			if sh.IsZero() {
				t.Errorf("seed %d: slot %d empty", seed, i)
			}
		}
	}
}

func TestSpawnFallsBackWhenNothingFits(t *testing.T) {
	// Every tier has a multi-cell shape, so no draw fits a single open cell.
	pair := core.MustShape("Pair", 1, core.C(0, 0), core.C(1, 0))
	shapes := []core.Shape{pair}
	for _, s := range core.DefaultShapes() {
		if s.Name() != "Dot" {
			shapes = append(shapes, s)
		}
	}
	cat, err := core.NewCatalog(shapes, core.Dot)
	if err != nil {
		t.Fatal(err)
	}

	b := core.NewBoard(2)
	for _, c := range b.Coords() {
		if c != core.C(0, 0) {
			fill(t, b, c)
		}
	}
	before := b.CloneState()

	params := core.DefaultSpawnParams()
	params.MaxAttempts = 25
	sp := core.NewSpawner(cat, params, rand.New(rand.NewSource(3)))
	tray, stats := sp.SpawnWithStats(b)

	if !stats.Fallback || stats.Attempts != 25 {
		t.Fatalf("attempts %d fallback %v, want 25 and true", stats.Attempts, stats.Fallback)
	}
	for i, sh := range tray {
		if sh.Name() != "Dot" {
			t.Errorf("slot %d = %s, want Dot", i, sh.Name())
		}
	}
	if !b.CloneState().Equal(before) {
		t.Error("Spawn modified the live board")
	}
}

func TestSpawnIsDeterministic(t *testing.T) {
	b := core.NewBoard(3)
	fill(t, b, core.C(0, 0), core.C(1, 0), core.C(0, 1), core.C(-2, 3))

	a := core.NewSpawner(core.DefaultCatalog(), core.DefaultSpawnParams(), rand.New(rand.NewSource(42)))
	c := core.NewSpawner(core.DefaultCatalog(), core.DefaultSpawnParams(), rand.New(rand.NewSource(42)))
	for round := 0; round < 10; round++ {
		ta, tc := a.Spawn(b), c.Spawn(b)
		for i := range ta {
			if ta[i].Name() != tc[i].Name() {
				t.Fatalf("round %d slot %d: %s != %s", round, i, ta[i].Name(), tc[i].Name())
			}
		}
	}
}

func TestIsJointlyPlaceable(t *testing.T) {
	line, _ := core.DefaultCatalog().Lookup("Line")
	dots := []core.Shape{core.Dot, core.Dot, core.Dot}

	ringOnly := func() core.State {
		b := core.NewBoard(1)
		for _, c := range b.Coords() {
			if c != core.C(0, 0) {
				_ = b.Place(c, core.Dot, core.ColorGreen)
			}
		}
		return b.CloneState()
	}

	tests := []struct {
		name   string
		state  core.State
		shapes []core.Shape
		ratio  float64
		want   bool
	}{
		{
			name:   "clear accepts despite high ratio",
			state:  ringOnly(),
			shapes: dots,
			ratio:  0.99,
			want:   true,
		},
		{
			name:   "no room",
			state:  ringOnly(),
			shapes: []core.Shape{line},
			ratio:  0,
			want:   false,
		},
		{
			name:   "ratio exceeded without clear",
			state:  core.NewBoard(3).CloneState(),
			shapes: dots,
			ratio:  0.9,
			want:   true,
		},
		{
			name:   "ratio not exceeded without clear",
			state:  core.NewBoard(3).CloneState(),
			shapes: dots,
			ratio:  0.95,
			want:   false,
		},
		{
			name:   "empty tray on open board",
			state:  core.NewBoard(2).CloneState(),
			shapes: nil,
			ratio:  0.25,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.state.Clone()
			if got := core.IsJointlyPlaceable(tt.state, tt.shapes, tt.ratio); got != tt.want {
				t.Errorf("IsJointlyPlaceable = %v, want %v", got, tt.want)
			}
			if !tt.state.Equal(before) {
				t.Error("IsJointlyPlaceable modified its input")
			}
		})
	}
}
