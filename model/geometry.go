package model

import "math"

// Rect is an axis-aligned rectangle in top-left page coordinates.
type Rect struct {
	X0     float64 // Left
	Top    float64 // Upper edge (smaller Y)
	X1     float64 // Right
	Bottom float64 // Lower edge (larger Y)
}

// NewRect creates a rectangle from two corners given in any order.
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{
		X0:     math.Min(x0, x1),
		Top:    math.Min(y0, y1),
		X1:     math.Max(x0, x1),
		Bottom: math.Max(y0, y1),
	}
}

// Width returns the horizontal extent of the rectangle
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the vertical extent of the rectangle
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Area returns the area of the rectangle
func (r Rect) Area() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Width() * r.Height()
}

// IsEmpty returns true if the rectangle has zero width or zero height
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Contains reports whether other lies entirely inside r (edges included).
func (r Rect) Contains(other Rect) bool {
	return other.X0 >= r.X0 && other.X1 <= r.X1 &&
		other.Top >= r.Top && other.Bottom <= r.Bottom
}

// Intersects checks if two rectangles overlap
func (r Rect) Intersects(other Rect) bool {
	return !(r.X1 < other.X0 ||
		r.X0 > other.X1 ||
		r.Bottom < other.Top ||
		r.Top > other.Bottom)
}

// Round1 rounds v to one decimal place. Word deduplication and line
// grouping compare coordinates at this precision.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
