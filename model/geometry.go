package model

import "math"

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox represents a bounding box by its edges. Coordinates are top-origin:
// Y0 is the top edge, Y1 the bottom edge, and Y grows downward, matching
// the fragment contract supplied by the decoder.
type BBox struct {
	X0 float64 // Left
	Y0 float64 // Top
	X1 float64 // Right
	Y1 float64 // Bottom
}

// NewBBox creates a bounding box from edge coordinates
func NewBBox(x0, y0, x1, y1 float64) BBox {
	return BBox{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// Width returns the horizontal extent of the box
func (b BBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the vertical extent of the box
func (b BBox) Height() float64 {
	return b.Y1 - b.Y0
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{
		X: (b.X0 + b.X1) / 2,
		Y: (b.Y0 + b.Y1) / 2,
	}
}

// Area returns the area of the box
func (b BBox) Area() float64 {
	return b.Width() * b.Height()
}

// IsZero reports whether the box has no extent. Malformed boxes from the
// decoder collapse to zero area and are sorted last among positional ties.
func (b BBox) IsZero() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// Union returns the smallest box containing both boxes
func (b BBox) Union(other BBox) BBox {
	return BBox{
		X0: math.Min(b.X0, other.X0),
		Y0: math.Min(b.Y0, other.Y0),
		X1: math.Max(b.X1, other.X1),
		Y1: math.Max(b.Y1, other.Y1),
	}
}

// Intersects reports whether two boxes overlap
func (b BBox) Intersects(other BBox) bool {
	return b.X0 < other.X1 && other.X0 < b.X1 &&
		b.Y0 < other.Y1 && other.Y0 < b.Y1
}

// HorizontalOverlap returns the length of the overlap between the two
// boxes' horizontal ranges, or 0 if they do not overlap.
func (b BBox) HorizontalOverlap(other BBox) float64 {
	overlap := math.Min(b.X1, other.X1) - math.Max(b.X0, other.X0)
	if overlap < 0 {
		return 0
	}
	return overlap
}

// Contains reports whether the point lies within the box
func (b BBox) Contains(p Point) bool {
	return p.X >= b.X0 && p.X <= b.X1 && p.Y >= b.Y0 && p.Y <= b.Y1
}
