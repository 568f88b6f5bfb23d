// Package core provides the board, line-clear and safe-spawn logic for the
// HexFit puzzle. This package is UI-agnostic and deterministic for a given
// random source.
package core

// Axis identifies one of the three line families of a hex board.
type Axis uint8

const (
	AxisR Axis = iota // constant r
	AxisQ             // constant q
	AxisS             // constant q+r
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisR:
		return "r"
	case AxisQ:
		return "q"
	case AxisS:
		return "s"
	default:
		return "?"
	}
}

// Line is a maximal run of board cells sharing one axis value.
type Line struct {
	Axis  Axis
	Index int   // the constant value of r, q or q+r
	cells []int // cell indexes into the layout
}

// Len returns the number of cells on the line.
func (l Line) Len() int {
	return len(l.cells)
}

// Layout is the immutable geometry of a hexagonal board of radius R.
// It is shared between a live Board and every simulation State cloned from it.
type Layout struct {
	radius int
	coords []Coord
	index  map[Coord]int
	lines  []Line
}

// CellCount returns the number of cells of a board of the given radius: 3R²+3R+1.
func CellCount(radius int) int {
	return 3*radius*radius + 3*radius + 1
}

// NewLayout builds the geometry for a board of the given radius.
// Radii below 1 are clamped to 1.
func NewLayout(radius int) *Layout {
	if radius < 1 {
		radius = 1
	}

	l := &Layout{
		radius: radius,
		coords: make([]Coord, 0, CellCount(radius)),
		index:  make(map[Coord]int, CellCount(radius)),
	}

	for q := -radius; q <= radius; q++ {
		r1 := max(-radius, -q-radius)
		r2 := min(radius, -q+radius)
		for r := r1; r <= r2; r++ {
			c := C(q, r)
			l.index[c] = len(l.coords)
			l.coords = append(l.coords, c)
		}
	}

	l.buildLines()
	return l
}

// buildLines precomputes the three line families in evaluation order:
// rows of constant r, then constant q, then constant q+r.
func (l *Layout) buildLines() {
	R := l.radius

	for r := -R; r <= R; r++ {
		var cells []int
		for q := -R; q <= R; q++ {
			if i, ok := l.index[C(q, r)]; ok {
				cells = append(cells, i)
			}
		}
		l.addLine(AxisR, r, cells)
	}

	for q := -R; q <= R; q++ {
		var cells []int
		for r := -R; r <= R; r++ {
			if i, ok := l.index[C(q, r)]; ok {
				cells = append(cells, i)
			}
		}
		l.addLine(AxisQ, q, cells)
	}

	for k := -R; k <= R; k++ {
		var cells []int
		for q := -R; q <= R; q++ {
			if i, ok := l.index[C(q, k-q)]; ok {
				cells = append(cells, i)
			}
		}
		l.addLine(AxisS, k, cells)
	}
}

// addLine records a line. Zero-length lines are never full, so they are dropped.
func (l *Layout) addLine(axis Axis, index int, cells []int) {
	if len(cells) == 0 {
		return
	}
	l.lines = append(l.lines, Line{Axis: axis, Index: index, cells: cells})
}

// Radius returns the board radius.
func (l *Layout) Radius() int {
	return l.radius
}

// Len returns the total number of cells.
func (l *Layout) Len() int {
	return len(l.coords)
}

// Coords returns all coordinates in iteration order (q ascending, then r).
func (l *Layout) Coords() []Coord {
	cp := make([]Coord, len(l.coords))
	copy(cp, l.coords)
	return cp
}

// CoordAt returns the coordinate at a cell index.
func (l *Layout) CoordAt(i int) Coord {
	return l.coords[i]
}

// Index returns the cell index of a coordinate and whether it is on the board.
func (l *Layout) Index(c Coord) (int, bool) {
	i, ok := l.index[c]
	return i, ok
}

// Contains reports whether the coordinate is on the board.
func (l *Layout) Contains(c Coord) bool {
	_, ok := l.index[c]
	return ok
}

// Lines returns the line families in evaluation order.
func (l *Layout) Lines() []Line {
	return l.lines
}

// LineCoords returns the coordinates of a line.
func (l *Layout) LineCoords(line Line) []Coord {
	out := make([]Coord, len(line.cells))
	for i, idx := range line.cells {
		out[i] = l.coords[idx]
	}
	return out
}
