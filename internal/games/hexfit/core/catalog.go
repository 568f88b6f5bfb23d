package core

import (
	"errors"
	"fmt"
)

// ErrUnknownShape is returned when a catalog lookup misses.
var ErrUnknownShape = errors.New("unknown shape")

// Catalog is the fixed set of shapes the spawner draws from.
type Catalog struct {
	shapes   []Shape
	fallback Shape
}

// NewCatalog builds a catalog. The fallback is returned by the weighted
// draw when no shape matches the drawn tier, and is used three times when
// the spawn search gives up, so it should be a single cell.
func NewCatalog(shapes []Shape, fallback Shape) (*Catalog, error) {
	if len(shapes) == 0 {
		return nil, fmt.Errorf("%w: empty catalog", ErrInvalidShape)
	}
	if fallback.IsZero() {
		return nil, fmt.Errorf("%w: catalog fallback is empty", ErrInvalidShape)
	}
	names := make(map[string]bool, len(shapes))
	for _, s := range shapes {
		if s.IsZero() {
			return nil, fmt.Errorf("%w: zero shape in catalog", ErrInvalidShape)
		}
		if names[s.name] {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidShape, s.name)
		}
		names[s.name] = true
	}

	cp := make([]Shape, len(shapes))
	copy(cp, shapes)
	return &Catalog{shapes: cp, fallback: fallback}, nil
}

// Shapes returns the catalog shapes in catalog order.
func (c *Catalog) Shapes() []Shape {
	cp := make([]Shape, len(c.shapes))
	copy(cp, c.shapes)
	return cp
}

// Len returns the number of shapes.
func (c *Catalog) Len() int {
	return len(c.shapes)
}

// Fallback returns the default shape.
func (c *Catalog) Fallback() Shape {
	return c.fallback
}

// Lookup finds a shape by name.
func (c *Catalog) Lookup(name string) (Shape, error) {
	for _, s := range c.shapes {
		if s.name == name {
			return s, nil
		}
	}
	return Shape{}, fmt.Errorf("%w: %q", ErrUnknownShape, name)
}

// ByDifficulty returns every shape of the given tier, in catalog order.
func (c *Catalog) ByDifficulty(d int) []Shape {
	var out []Shape
	for _, s := range c.shapes {
		if s.difficulty == d {
			out = append(out, s)
		}
	}
	return out
}

// Dot is the single-cell shape.
var Dot = MustShape("Dot", 1, C(0, 0))

// DefaultShapes returns the built-in shape set.
func DefaultShapes() []Shape {
	return []Shape{
		Dot,
		MustShape("Slash", 2, C(0, 0), C(1, -1), C(-1, 1)),
		MustShape("Back-Slash", 2, C(0, 0), C(0, 1), C(0, -1)),
		MustShape("Line", 2, C(0, 0), C(1, 0), C(-1, 0)),
		MustShape("Small-Triangle", 2, C(0, 0), C(0, -1), C(-1, 0)),
		MustShape("Small-Triangle-Reversed", 2, C(0, 0), C(-1, 1), C(-1, 0)),
		MustShape("Crystal", 2, C(0, 0), C(-1, 1), C(0, -1), C(-1, 0)),
		MustShape("Long-Line", 3, C(0, 0), C(1, 0), C(2, 0), C(-1, 0)),
		MustShape("Hourglass", 3, C(0, 0), C(-1, 1), C(0, -1), C(1, -1), C(0, 1)),
		MustShape("Big-V", 4, C(-1, 0), C(0, 0), C(1, 0), C(-1, 1), C(-1, 2)),
		MustShape("Big-V-Reversed", 4, C(-1, 0), C(0, 0), C(1, 0), C(1, -1), C(1, -2)),
		MustShape("Fan", 4, C(0, 0), C(-1, 1), C(0, -1), C(1, 0)),
		MustShape("Y-Shape", 4, C(0, 0), C(0, -1), C(1, 0), C(-1, 1)),
		MustShape("Hook", 4, C(0, 0), C(1, 0), C(0, 1), C(-1, 2)),
		MustShape("Snake", 4, C(0, 0), C(1, 0), C(1, -1), C(2, -1)),
		MustShape("Hex", 5, C(0, 0), C(-1, 1), C(-1, 0), C(0, -1), C(1, 0), C(1, -1), C(0, 1)),
		MustShape("Big-Triangle", 5, C(0, 0), C(1, 0), C(2, 0), C(0, 1), C(1, 1), C(0, 2)),
	}
}

// DefaultCatalog returns the built-in catalog with Dot as fallback.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultShapes(), Dot)
	if err != nil {
		panic(err)
	}
	return c
}
