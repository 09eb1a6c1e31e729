// Package core provides the fundamental types of the falling-block engine.
// It contains no external dependencies (no terminal libraries) to keep the
// data model pure and testable.
package core

// Point is a grid coordinate or offset.
type Point struct {
	X, Y int
}

// Add returns the component-wise sum of two points.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}
