package core

import "fmt"

// Coord is a cell address in axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type Coord struct {
	Q int
	R int
}

// C is a convenience constructor for Coord.
func C(q, r int) Coord {
	return Coord{Q: q, R: r}
}

// S returns the implicit third cube coordinate.
func (c Coord) S() int {
	return -c.Q - c.R
}

// Add returns the coordinate offset by another coordinate.
func (c Coord) Add(o Coord) Coord {
	return Coord{Q: c.Q + o.Q, R: c.R + o.R}
}

// String returns the canonical "q,r" key.
func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.Q, c.R)
}

// Key packs the coordinate into a single integer usable as a map key.
func (c Coord) Key() int64 {
	return int64(c.Q)<<32 | int64(uint32(c.R))
}

// FromKey unpacks a coordinate produced by Key.
func FromKey(k int64) Coord {
	return Coord{Q: int(int32(k >> 32)), R: int(int32(uint32(k)))}
}

// Directions are the six axial neighbor offsets, clockwise from east.
var Directions = [6]Coord{
	{Q: 1, R: 0},
	{Q: 0, R: 1},
	{Q: -1, R: 1},
	{Q: -1, R: 0},
	{Q: 0, R: -1},
	{Q: 1, R: -1},
}

// Neighbors returns the six adjacent coordinates.
func (c Coord) Neighbors() [6]Coord {
	var out [6]Coord
	for i, d := range Directions {
		out[i] = c.Add(d)
	}
	return out
}

// Distance returns the hex distance between two coordinates.
func Distance(a, b Coord) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())
	return max(dq, dr, ds)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
