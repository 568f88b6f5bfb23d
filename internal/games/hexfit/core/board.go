package core

import (
	"errors"
	"fmt"
)

// ErrInvalidPlacement is returned by Place when the shape does not fit.
var ErrInvalidPlacement = errors.New("invalid placement")

// ClearedCell is a cell emptied by a line clear or dissolve, with the color
// it had before.
type ClearedCell struct {
	Coord Coord
	Color Color
}

// ClearResult reports one line-clear resolution pass.
type ClearResult struct {
	Cells        []ClearedCell // unique cleared cells, first-seen order
	Lines        []Line        // full lines found, evaluation order
	LinesCleared int           // number of full lines, not cells
}

// Board is the live, mutable game board.
// The key set of cells is fixed for the board's lifetime unless Reset is called.
type Board struct {
	layout *Layout
	state  State
}

// NewBoard creates an empty board of the given radius.
func NewBoard(radius int) *Board {
	b := &Board{}
	b.Reset(radius)
	return b
}

// Reset reinitializes the board with a new radius. All cells become empty.
func (b *Board) Reset(radius int) {
	b.layout = NewLayout(radius)
	b.state = newState(b.layout)
}

// Radius returns the board radius.
func (b *Board) Radius() int {
	return b.layout.Radius()
}

// Len returns the total number of cells.
func (b *Board) Len() int {
	return b.layout.Len()
}

// Layout returns the board geometry.
func (b *Board) Layout() *Layout {
	return b.layout
}

// Coords returns every coordinate in iteration order.
func (b *Board) Coords() []Coord {
	return b.layout.Coords()
}

// Cell returns the cell at a coordinate. The bool is false off the board.
func (b *Board) Cell(c Coord) (Cell, bool) {
	return b.state.Cell(c)
}

// EmptyCount returns the number of unoccupied cells.
func (b *Board) EmptyCount() int {
	return b.state.EmptyCount()
}

// FilledCount returns the number of occupied cells.
func (b *Board) FilledCount() int {
	return b.Len() - b.EmptyCount()
}

// CanPlace reports whether every cell of shape anchored at center exists
// and is unoccupied.
func (b *Board) CanPlace(center Coord, shape Shape) bool {
	return b.state.CanPlace(center, shape)
}

// Place commits a shape at center with the given color.
// It is all-or-nothing: if any target cell is off the board or occupied,
// the board is left untouched and ErrInvalidPlacement is returned.
func (b *Board) Place(center Coord, shape Shape, color Color) error {
	if shape.IsZero() {
		return fmt.Errorf("%w: empty shape", ErrInvalidPlacement)
	}
	if color == ColorNone || color >= ColorCount {
		return fmt.Errorf("%w: bad color %d", ErrInvalidPlacement, color)
	}
	idx, ok := b.state.targets(center, shape, nil)
	if !ok {
		return fmt.Errorf("%w: %s at %s", ErrInvalidPlacement, shape.Name(), center)
	}
	b.state.occupy(idx, color)
	return nil
}

// CanPlaceAny reports whether the shape fits anywhere on the board.
func (b *Board) CanPlaceAny(shape Shape) bool {
	var buf []int
	for i, c := range b.layout.coords {
		if b.state.cells[i].Occupied {
			continue
		}
		var ok bool
		if buf, ok = b.state.targets(c, shape, buf); ok {
			return true
		}
	}
	return false
}

// CheckAndClearLines finds every full line along the three axes, empties
// their cells and reports what was cleared.
func (b *Board) CheckAndClearLines() ClearResult {
	lines := b.state.fullLines()
	cleared, n := b.state.clearFull(nil)

	res := ClearResult{
		Cells:        make([]ClearedCell, len(cleared)),
		Lines:        lines,
		LinesCleared: n,
	}
	for i, c := range cleared {
		res.Cells[i] = ClearedCell{Coord: b.layout.coords[c.index], Color: c.prev.Color}
	}
	return res
}

// CloneState returns a detached copy of the board cells for simulation.
func (b *Board) CloneState() State {
	return b.state.Clone()
}

// Preview describes what committing a placement would do.
type Preview struct {
	Valid  bool
	Cells  []Coord // cells the shape would cover
	Clears []Coord // cells that would be cleared as a result
	Lines  int     // lines that would complete
}

// Preview simulates a placement without touching the board.
func (b *Board) Preview(center Coord, shape Shape) Preview {
	p := Preview{Cells: shape.Cells(center)}

	placed, ok := SimulatePlace(b.state, center, shape)
	if !ok {
		return p
	}
	p.Valid = true
	p.Lines = len(placed.fullLines())

	after, cleared := SimulateClear(placed)
	if !cleared {
		return p
	}
	for i := range placed.cells {
		if placed.cells[i].Occupied && !after.cells[i].Occupied {
			p.Clears = append(p.Clears, b.layout.coords[i])
		}
	}
	return p
}

// StartDissolve marks every occupied cell as dissolving. Cells further from
// the center get a longer ClearTimer (ring distance × stagger).
// Returns the number of cells marked.
func (b *Board) StartDissolve(stagger float64) int {
	n := 0
	for i, c := range b.layout.coords {
		cell := &b.state.cells[i]
		if !cell.Occupied {
			continue
		}
		cell.Dissolving = true
		cell.ClearTimer = float64(Distance(c, Coord{})) * stagger
		n++
	}
	return n
}

// UpdateDissolve advances the dissolve sequence by dt. Cells whose timer
// runs out are emptied and returned. done is true once no cell is dissolving.
func (b *Board) UpdateDissolve(dt float64) (emptied []ClearedCell, done bool) {
	done = true
	for i, c := range b.layout.coords {
		cell := &b.state.cells[i]
		if !cell.Dissolving {
			continue
		}
		cell.ClearTimer -= dt
		if cell.ClearTimer > 0 {
			done = false
			continue
		}
		emptied = append(emptied, ClearedCell{Coord: c, Color: cell.Color})
		*cell = Cell{}
	}
	return emptied, done
}

// IsDissolving reports whether any cell is still dissolving.
func (b *Board) IsDissolving() bool {
	for _, c := range b.state.cells {
		if c.Dissolving {
			return true
		}
	}
	return false
}
