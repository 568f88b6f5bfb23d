package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/hexfit/internal/games/hexfit/core"
)

// fill places a Dot on every coordinate in cs without resolving clears.
func fill(t *testing.T, b *core.Board, cs ...core.Coord) {
	t.Helper()
	for _, c := range cs {
		if err := b.Place(c, core.Dot, core.ColorBlue); err != nil {
			t.Fatalf("Place(%s) failed: %v", c, err)
		}
	}
}

func TestNewBoardCellCount(t *testing.T) {
	for radius := 1; radius <= 7; radius++ {
		b := core.NewBoard(radius)
		want := 3*radius*radius + 3*radius + 1
		if b.Len() != want {
			t.Errorf("radius %d: Len() = %d, want %d", radius, b.Len(), want)
		}
		if b.EmptyCount() != want {
			t.Errorf("radius %d: EmptyCount() = %d, want %d", radius, b.EmptyCount(), want)
		}
		for _, c := range b.Coords() {
			if core.Distance(c, core.C(0, 0)) > radius {
				t.Errorf("radius %d: coord %s outside hexagon", radius, c)
			}
		}
	}
}

func TestNewBoardClampsRadius(t *testing.T) {
	b := core.NewBoard(0)
	if b.Radius() != 1 || b.Len() != 7 {
		t.Errorf("NewBoard(0): radius %d len %d, want 1 and 7", b.Radius(), b.Len())
	}
}

func TestBoardReset(t *testing.T) {
	b := core.NewBoard(2)
	fill(t, b, core.C(0, 0), core.C(1, 0))

	b.Reset(4)
	if b.Len() != core.CellCount(4) {
		t.Errorf("Len() after Reset(4) = %d, want %d", b.Len(), core.CellCount(4))
	}
	if b.FilledCount() != 0 {
		t.Errorf("FilledCount() after Reset = %d, want 0", b.FilledCount())
	}
}

func TestCanPlace(t *testing.T) {
	line, err := core.DefaultCatalog().Lookup("Line")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		block  []core.Coord
		center core.Coord
		want   bool
	}{
		{name: "open board", center: core.C(0, 0), want: true},
		{name: "blocked cell under shape", block: []core.Coord{core.C(1, 0)}, center: core.C(0, 0), want: false},
		{name: "blocked cell elsewhere", block: []core.Coord{core.C(0, 1)}, center: core.C(0, 0), want: true},
		{name: "off the edge", center: core.C(2, 0), want: false},
		{name: "far outside", center: core.C(10, 10), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := core.NewBoard(2)
			fill(t, b, tt.block...)
			if got := b.CanPlace(tt.center, line); got != tt.want {
				t.Errorf("CanPlace(%s, Line) = %v, want %v", tt.center, got, tt.want)
			}
		})
	}
}

func TestPlaceIsAtomic(t *testing.T) {
	b := core.NewBoard(2)
	fill(t, b, core.C(1, 0))
	before := b.CloneState()

	hex, _ := core.DefaultCatalog().Lookup("Hex")
	err := b.Place(core.C(0, 0), hex, core.ColorGreen)
	if !errors.Is(err, core.ErrInvalidPlacement) {
		t.Fatalf("Place over occupied cell: err = %v, want ErrInvalidPlacement", err)
	}
	if !b.CloneState().Equal(before) {
		t.Error("failed Place modified the board")
	}

	// Partially off-board
	err = b.Place(core.C(2, 0), hex, core.ColorGreen)
	if !errors.Is(err, core.ErrInvalidPlacement) {
		t.Fatalf("Place off board: err = %v, want ErrInvalidPlacement", err)
	}
	if b.FilledCount() != 1 {
		t.Errorf("FilledCount() = %d, want 1", b.FilledCount())
	}

	if err := b.Place(core.C(-1, 0), core.Dot, core.ColorNone); !errors.Is(err, core.ErrInvalidPlacement) {
		t.Errorf("Place with ColorNone: err = %v, want ErrInvalidPlacement", err)
	}
}

func TestPlaceSetsColor(t *testing.T) {
	b := core.NewBoard(2)
	tri, _ := core.DefaultCatalog().Lookup("Small-Triangle")
	if err := b.Place(core.C(0, 0), tri, core.ColorPurple); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	for _, c := range tri.Cells(core.C(0, 0)) {
		cell, ok := b.Cell(c)
		if !ok || !cell.Occupied || cell.Color != core.ColorPurple {
			t.Errorf("cell %s = %+v, want occupied purple", c, cell)
		}
	}
	if b.FilledCount() != tri.Size() {
		t.Errorf("FilledCount() = %d, want %d", b.FilledCount(), tri.Size())
	}
}

func TestCheckAndClearSingleLine(t *testing.T) {
	b := core.NewBoard(2)
	line, _ := core.DefaultCatalog().Lookup("Line")

	// Row r=-2 is (0,-2) (1,-2) (2,-2).
	if err := b.Place(core.C(1, -2), line, core.ColorOrange); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	res := b.CheckAndClearLines()

	if res.LinesCleared != 1 {
		t.Fatalf("LinesCleared = %d, want 1", res.LinesCleared)
	}
	want := map[core.Coord]bool{core.C(0, -2): true, core.C(1, -2): true, core.C(2, -2): true}
	if len(res.Cells) != len(want) {
		t.Fatalf("cleared %d cells, want %d", len(res.Cells), len(want))
	}
	for _, c := range res.Cells {
		if !want[c.Coord] {
			t.Errorf("unexpected cleared cell %s", c.Coord)
		}
		if c.Color != core.ColorOrange {
			t.Errorf("cleared cell %s color = %v, want orange", c.Coord, c.Color)
		}
		if cell, _ := b.Cell(c.Coord); cell.Occupied {
			t.Errorf("cell %s still occupied after clear", c.Coord)
		}
	}
	if len(res.Lines) != 1 || res.Lines[0].Axis != core.AxisR || res.Lines[0].Index != -2 {
		t.Errorf("Lines = %+v, want one r=-2 line", res.Lines)
	}
}

func TestCheckAndClearIntersection(t *testing.T) {
	b := core.NewBoard(2)

	// Row r=0 and diagonal q+r=0 meet at the origin.
	fill(t, b,
		core.C(-2, 0), core.C(-1, 0), core.C(1, 0), core.C(2, 0),
		core.C(-2, 2), core.C(-1, 1), core.C(1, -1), core.C(2, -2),
	)
	if res := b.CheckAndClearLines(); res.LinesCleared != 0 {
		t.Fatalf("premature clear: %d lines", res.LinesCleared)
	}

	fill(t, b, core.C(0, 0))
	res := b.CheckAndClearLines()

	if res.LinesCleared != 2 {
		t.Fatalf("LinesCleared = %d, want 2", res.LinesCleared)
	}
	if len(res.Cells) != 9 {
		t.Fatalf("cleared %d cells, want 9", len(res.Cells))
	}
	origin := 0
	for _, c := range res.Cells {
		if c.Coord == core.C(0, 0) {
			origin++
		}
	}
	if origin != 1 {
		t.Errorf("origin appears %d times in cleared cells, want 1", origin)
	}
	if b.FilledCount() != 0 {
		t.Errorf("FilledCount() = %d, want 0", b.FilledCount())
	}
}

func TestCanPlaceAnyLastSlot(t *testing.T) {
	b := core.NewBoard(2)
	line, _ := core.DefaultCatalog().Lookup("Line")

	open := map[core.Coord]bool{core.C(-1, 0): true, core.C(0, 0): true, core.C(1, 0): true}
	for _, c := range b.Coords() {
		if !open[c] {
			fill(t, b, c)
		}
	}

	if !b.CanPlaceAny(line) {
		t.Fatal("CanPlaceAny(Line) = false with exactly one slot open")
	}
	hex, _ := core.DefaultCatalog().Lookup("Hex")
	if b.CanPlaceAny(hex) {
		t.Error("CanPlaceAny(Hex) = true, want false")
	}

	fill(t, b, core.C(0, 0))
	if b.CanPlaceAny(line) {
		t.Error("CanPlaceAny(Line) = true after closing the last slot")
	}
	if !b.CanPlaceAny(core.Dot) {
		t.Error("CanPlaceAny(Dot) = false with two open cells")
	}
}

func TestRadiusOneSequence(t *testing.T) {
	b := core.NewBoard(1)
	if b.Len() != 7 {
		t.Fatalf("Len() = %d, want 7", b.Len())
	}

	steps := []struct {
		at    core.Coord
		lines int
		cells int
	}{
		{core.C(0, 0), 0, 0},
		{core.C(1, 0), 0, 0},
		{core.C(-1, 0), 1, 3}, // r=0 complete
		{core.C(0, -1), 0, 0},
		{core.C(1, -1), 1, 2}, // r=-1 complete
		{core.C(-1, 1), 0, 0},
		{core.C(0, 1), 1, 2}, // r=1 complete
		{core.C(0, -1), 0, 0},
		{core.C(0, 1), 0, 0},
		{core.C(0, 0), 1, 3}, // q=0 complete
	}

	for i, s := range steps {
		fill(t, b, s.at)
		res := b.CheckAndClearLines()
		if res.LinesCleared != s.lines || len(res.Cells) != s.cells {
			t.Errorf("step %d at %s: lines %d cells %d, want %d and %d",
				i, s.at, res.LinesCleared, len(res.Cells), s.lines, s.cells)
		}
	}
	if b.FilledCount() != 0 {
		t.Errorf("FilledCount() = %d, want 0", b.FilledCount())
	}
}

func TestRadiusOneCenterClearsEverything(t *testing.T) {
	b := core.NewBoard(1)
	for _, c := range b.Coords() {
		if c != core.C(0, 0) {
			fill(t, b, c)
		}
	}
	// Six neighbors alone complete r=±1, q=±1 and q+r=±1.
	res := b.CheckAndClearLines()
	if res.LinesCleared != 6 || len(res.Cells) != 6 {
		t.Fatalf("ring clear: lines %d cells %d, want 6 and 6", res.LinesCleared, len(res.Cells))
	}
}

func TestPreview(t *testing.T) {
	b := core.NewBoard(2)
	fill(t, b, core.C(0, -2), core.C(1, -2))
	before := b.CloneState()

	p := b.Preview(core.C(2, -2), core.Dot)
	if !p.Valid {
		t.Fatal("Preview reported invalid placement")
	}
	if p.Lines != 1 || len(p.Clears) != 3 {
		t.Errorf("Preview: lines %d clears %v, want 1 line and 3 cells", p.Lines, p.Clears)
	}
	if !b.CloneState().Equal(before) {
		t.Error("Preview modified the board")
	}

	if p := b.Preview(core.C(0, -2), core.Dot); p.Valid {
		t.Error("Preview over occupied cell reported valid")
	}
}

func TestSimulationDoesNotMutate(t *testing.T) {
	b := core.NewBoard(1)
	fill(t, b, core.C(-1, 0), core.C(1, 0))
	live := b.CloneState()

	placed, ok := core.SimulatePlace(live, core.C(0, 0), core.Dot)
	if !ok {
		t.Fatal("SimulatePlace failed on open cell")
	}
	if live.Occupied(core.C(0, 0)) {
		t.Error("SimulatePlace mutated its input")
	}
	if !placed.Occupied(core.C(0, 0)) {
		t.Error("SimulatePlace result missing placed cell")
	}

	cleared, hasCleared := core.SimulateClear(placed)
	if !hasCleared {
		t.Fatal("SimulateClear did not clear the completed row")
	}
	if !placed.Occupied(core.C(1, 0)) {
		t.Error("SimulateClear mutated its input")
	}
	if cleared.EmptyCount() != 7 {
		t.Errorf("EmptyCount() after clear = %d, want 7", cleared.EmptyCount())
	}

	if _, ok := core.SimulatePlace(live, core.C(1, 0), core.Dot); ok {
		t.Error("SimulatePlace succeeded on occupied cell")
	}
	if cell, _ := b.Cell(core.C(0, 0)); cell.Occupied {
		t.Error("simulation touched the live board")
	}
}

func TestDissolve(t *testing.T) {
	b := core.NewBoard(2)
	fill(t, b, core.C(0, 0), core.C(1, 0), core.C(2, 0))

	if n := b.StartDissolve(1.0); n != 3 {
		t.Fatalf("StartDissolve marked %d cells, want 3", n)
	}
	if !b.IsDissolving() {
		t.Fatal("IsDissolving() = false after StartDissolve")
	}

	emptied, done := b.UpdateDissolve(0.5)
	if len(emptied) != 1 || emptied[0].Coord != core.C(0, 0) || done {
		t.Fatalf("first update: emptied %v done %v, want center only", emptied, done)
	}
	emptied, done = b.UpdateDissolve(0.5)
	if len(emptied) != 1 || emptied[0].Coord != core.C(1, 0) || done {
		t.Fatalf("second update: emptied %v done %v, want ring 1 only", emptied, done)
	}
	emptied, done = b.UpdateDissolve(1.0)
	if len(emptied) != 1 || !done {
		t.Fatalf("third update: emptied %v done %v, want ring 2 and done", emptied, done)
	}
	if b.FilledCount() != 0 || b.Len() != core.CellCount(2) {
		t.Errorf("after dissolve: filled %d len %d", b.FilledCount(), b.Len())
	}
}
