package core

import "fmt"

// Cell is a single grid position. Color is meaningful only when Filled is set.
type Cell struct {
	Filled bool
	Color  Color
}

// Grid is the persistent board of settled cells.
// Cells are stored in row-major order: index = y*w + x.
// Dimensions are fixed at creation.
type Grid struct {
	w     int
	h     int
	cells []Cell
}

// NewGrid creates a grid of the given dimensions. Every cell starts unfilled
// and carries the fill color.
func NewGrid(w, h int, fill Color) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g := &Grid{
		w:     w,
		h:     h,
		cells: make([]Cell, w*h),
	}
	for i := range g.cells {
		g.cells[i] = Cell{Color: fill}
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.w
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.h
}

// InBounds returns true if (x, y) lies inside [0,w)×[0,h).
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// Get returns the cell at (x, y).
func (g *Grid) Get(x, y int) (Cell, error) {
	if !g.InBounds(x, y) {
		return Cell{}, fmt.Errorf("get (%d, %d) on %dx%d grid: %w", x, y, g.w, g.h, ErrOutOfBounds)
	}
	return g.cells[y*g.w+x], nil
}

// Set stores c at (x, y). Storage is untouched when the coordinates are out of bounds.
func (g *Grid) Set(x, y int, c Cell) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("set (%d, %d) on %dx%d grid: %w", x, y, g.w, g.h, ErrOutOfBounds)
	}
	g.cells[y*g.w+x] = c
	return nil
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{
		w:     g.w,
		h:     g.h,
		cells: cells,
	}
}

// FilledCount returns the number of filled cells.
func (g *Grid) FilledCount() int {
	count := 0
	for _, c := range g.cells {
		if c.Filled {
			count++
		}
	}
	return count
}
