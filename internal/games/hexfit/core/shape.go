package core

import (
	"errors"
	"fmt"
)

// Difficulty bounds for catalog shapes.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// ErrInvalidShape is returned when a shape definition is malformed.
var ErrInvalidShape = errors.New("invalid shape")

// Shape is a polyhex piece: a set of axial offsets around its anchor.
// Shapes are immutable once built; Offsets returns a copy.
type Shape struct {
	name       string
	offsets    []Coord
	difficulty int
}

// NewShape validates and builds a shape.
// Offsets must be non-empty, unique and include the origin (0,0).
func NewShape(name string, difficulty int, offsets ...Coord) (Shape, error) {
	if name == "" {
		return Shape{}, fmt.Errorf("%w: empty name", ErrInvalidShape)
	}
	if difficulty < MinDifficulty || difficulty > MaxDifficulty {
		return Shape{}, fmt.Errorf("%w: %s difficulty %d outside %d..%d",
			ErrInvalidShape, name, difficulty, MinDifficulty, MaxDifficulty)
	}
	if len(offsets) == 0 {
		return Shape{}, fmt.Errorf("%w: %s has no cells", ErrInvalidShape, name)
	}

	seen := make(map[Coord]bool, len(offsets))
	hasOrigin := false
	for _, o := range offsets {
		if seen[o] {
			return Shape{}, fmt.Errorf("%w: %s repeats offset %s", ErrInvalidShape, name, o)
		}
		seen[o] = true
		if o == (Coord{}) {
			hasOrigin = true
		}
	}
	if !hasOrigin {
		return Shape{}, fmt.Errorf("%w: %s does not contain the origin", ErrInvalidShape, name)
	}

	cp := make([]Coord, len(offsets))
	copy(cp, offsets)
	return Shape{name: name, offsets: cp, difficulty: difficulty}, nil
}

// MustShape is like NewShape but panics on error. Used for built-in catalogs.
func MustShape(name string, difficulty int, offsets ...Coord) Shape {
	s, err := NewShape(name, difficulty, offsets...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the shape name.
func (s Shape) Name() string { return s.name }

// Difficulty returns the difficulty tier (1..5).
func (s Shape) Difficulty() int { return s.difficulty }

// Size returns the number of cells in the shape.
func (s Shape) Size() int { return len(s.offsets) }

// IsZero reports whether the shape is the zero value (no shape).
func (s Shape) IsZero() bool { return len(s.offsets) == 0 }

// Offsets returns a copy of the shape's offsets.
func (s Shape) Offsets() []Coord {
	cp := make([]Coord, len(s.offsets))
	copy(cp, s.offsets)
	return cp
}

// Cells returns the absolute coordinates the shape covers when anchored at center.
func (s Shape) Cells(center Coord) []Coord {
	out := make([]Coord, len(s.offsets))
	for i, o := range s.offsets {
		out[i] = center.Add(o)
	}
	return out
}

// Bounds returns the min and max offset along q and r.
func (s Shape) Bounds() (minQ, minR, maxQ, maxR int) {
	for i, o := range s.offsets {
		if i == 0 {
			minQ, maxQ, minR, maxR = o.Q, o.Q, o.R, o.R
			continue
		}
		minQ, maxQ = min(minQ, o.Q), max(maxQ, o.Q)
		minR, maxR = min(minR, o.R), max(maxR, o.R)
	}
	return minQ, minR, maxQ, maxR
}

// String returns the shape name.
func (s Shape) String() string {
	return s.name
}
