package core

import (
	"fmt"
	"strings"
)

// Shape identifies a tetromino.
type Shape int

const (
	ShapeI Shape = iota
	ShapeL
	ShapeO
	ShapeS
	ShapeT
)

// String returns the single-letter shape name.
func (s Shape) String() string {
	switch s {
	case ShapeI:
		return "I"
	case ShapeL:
		return "L"
	case ShapeO:
		return "O"
	case ShapeS:
		return "S"
	case ShapeT:
		return "T"
	default:
		return "?"
	}
}

// ParseShape converts a shape letter (case-insensitive) into a Shape.
func ParseShape(name string) (Shape, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "I":
		return ShapeI, nil
	case "L":
		return ShapeL, nil
	case "O":
		return ShapeO, nil
	case "S":
		return ShapeS, nil
	case "T":
		return ShapeT, nil
	}
	return ShapeI, fmt.Errorf("unknown shape %q", name)
}

// iFootprint is the vertical I bar hanging below its anchor.
var iFootprint = []Point{{0, 0}, {0, 1}, {0, 2}, {0, 3}}

// Piece is the falling tetromino. (X, Y) is the anchor in grid coordinates.
type Piece struct {
	Shape    Shape
	Color    Color
	Rotation int
	X, Y     int
}

// Anchor returns the anchor as a Point.
func (p Piece) Anchor() Point {
	return Point{X: p.X, Y: p.Y}
}

// Footprint returns the grid offsets the piece occupies relative to its anchor.
// Only the I bar has geometry; every other shape occupies its anchor alone.
func (p Piece) Footprint() []Point {
	if p.Shape == ShapeI {
		return iFootprint
	}
	return []Point{{0, 0}}
}

// Cells returns the absolute grid coordinates covered by the piece.
func (p Piece) Cells() []Point {
	fp := p.Footprint()
	cells := make([]Point, len(fp))
	for i, off := range fp {
		cells[i] = p.Anchor().Add(off)
	}
	return cells
}

// Fits reports whether every cell of the piece lies inside the grid.
func (p Piece) Fits(g *Grid) bool {
	for _, c := range p.Cells() {
		if !g.InBounds(c.X, c.Y) {
			return false
		}
	}
	return true
}

// Moved returns the piece after applying one intent. Up and Neutral leave it unchanged.
func (p Piece) Moved(in Intent) Piece {
	switch in {
	case IntentLeft:
		p.X--
	case IntentRight:
		p.X++
	case IntentDown:
		p.Y++
	}
	return p
}

// String implements fmt.Stringer for log output.
func (p Piece) String() string {
	return fmt.Sprintf("%s(%s)@(%d,%d)r%d", p.Shape, p.Color, p.X, p.Y, p.Rotation)
}
