package core

// Cell is the content of one board cell.
// Color is meaningful only when Occupied is true. Dissolving and ClearTimer
// belong to the end-of-run dissolve sequence.
type Cell struct {
	Occupied   bool
	Color      Color
	Dissolving bool
	ClearTimer float64
}

// State is a detached snapshot of board cells over a shared Layout.
// The exported API never mutates a State in place: SimulatePlace and
// SimulateClear return fresh copies.
type State struct {
	layout *Layout
	cells  []Cell
}

// newState returns an all-empty state for a layout.
func newState(l *Layout) State {
	return State{layout: l, cells: make([]Cell, l.Len())}
}

// Layout returns the geometry the state is defined over.
func (s State) Layout() *Layout {
	return s.layout
}

// Len returns the number of cells.
func (s State) Len() int {
	return len(s.cells)
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	cells := make([]Cell, len(s.cells))
	copy(cells, s.cells)
	return State{layout: s.layout, cells: cells}
}

// Cell returns the cell at a coordinate and whether it exists.
func (s State) Cell(c Coord) (Cell, bool) {
	i, ok := s.layout.Index(c)
	if !ok {
		return Cell{}, false
	}
	return s.cells[i], true
}

// Occupied reports whether the coordinate exists and is occupied.
func (s State) Occupied(c Coord) bool {
	cell, ok := s.Cell(c)
	return ok && cell.Occupied
}

// EmptyCount returns the number of unoccupied cells.
func (s State) EmptyCount() int {
	n := 0
	for _, c := range s.cells {
		if !c.Occupied {
			n++
		}
	}
	return n
}

// EmptyRatio returns the fraction of unoccupied cells.
func (s State) EmptyRatio() float64 {
	if len(s.cells) == 0 {
		return 0
	}
	return float64(s.EmptyCount()) / float64(len(s.cells))
}

// CanPlace reports whether every cell of the shape anchored at center
// exists and is unoccupied.
func (s State) CanPlace(center Coord, shape Shape) bool {
	_, ok := s.targets(center, shape, nil)
	return ok
}

// Equal reports whether two states have the same layout radius and cells.
func (s State) Equal(o State) bool {
	if s.layout.Radius() != o.layout.Radius() || len(s.cells) != len(o.cells) {
		return false
	}
	for i := range s.cells {
		if s.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// targets resolves the cell indexes a placement would cover, appending to buf.
// Returns false if any cell is off the board or occupied.
func (s State) targets(center Coord, shape Shape, buf []int) ([]int, bool) {
	buf = buf[:0]
	for _, o := range shape.offsets {
		i, ok := s.layout.index[center.Add(o)]
		if !ok || s.cells[i].Occupied {
			return buf, false
		}
		buf = append(buf, i)
	}
	return buf, true
}

// occupy marks cells as occupied with a color. In-place; internal use only.
func (s State) occupy(idx []int, color Color) {
	for _, i := range idx {
		s.cells[i] = Cell{Occupied: true, Color: color}
	}
}

// lineFull reports whether every cell on a non-empty line is occupied.
func (s State) lineFull(line Line) bool {
	if len(line.cells) == 0 {
		return false
	}
	for _, i := range line.cells {
		if !s.cells[i].Occupied {
			return false
		}
	}
	return true
}

// clearedCell remembers a cell's content before it was cleared.
type clearedCell struct {
	index int
	prev  Cell
}

// clearFull empties every cell on every full line, in place.
// Cells on intersecting lines are cleared once. Returns the cleared cells in
// first-seen order (with their previous content, appended to buf) and the
// number of full lines.
func (s State) clearFull(buf []clearedCell) ([]clearedCell, int) {
	buf = buf[:0]

	// Fullness is decided for every line before anything is cleared, so an
	// intersection cell counts toward each line it sits on.
	var full []int
	for li, line := range s.layout.lines {
		if s.lineFull(line) {
			full = append(full, li)
		}
	}

	for _, li := range full {
		for _, i := range s.layout.lines[li].cells {
			if !s.cells[i].Occupied {
				continue // already cleared by an earlier line
			}
			buf = append(buf, clearedCell{index: i, prev: s.cells[i]})
			s.cells[i] = Cell{}
		}
	}
	return buf, len(full)
}

// fullLines returns the lines that are currently full, in evaluation order.
func (s State) fullLines() []Line {
	var out []Line
	for _, line := range s.layout.lines {
		if s.lineFull(line) {
			out = append(out, line)
		}
	}
	return out
}

// SimulatePlace returns a copy of state with the shape placed at center,
// or false if the placement is illegal. The input state is not modified.
func SimulatePlace(state State, center Coord, shape Shape) (State, bool) {
	idx, ok := state.targets(center, shape, nil)
	if !ok {
		return State{}, false
	}
	next := state.Clone()
	next.occupy(idx, ColorNone)
	return next, true
}

// SimulateClear returns a copy of state with all full lines cleared and
// whether anything was cleared. The input state is not modified.
func SimulateClear(state State) (State, bool) {
	next := state.Clone()
	_, lines := next.clearFull(nil)
	return next, lines > 0
}
