package pdfcompare

import "math"

// Point is a position in page-relative display space (origin top-left).
type Point struct {
	X, Y float64
}

// Rect is a bounding box in page-relative display space (origin
// top-left), used for Difference.Bounds, image placement, and the text
// element boxes the style detector compares.
type Rect struct {
	X, Y, W, H float64
}

// Contains returns true if point (px, py) is inside the rectangle.
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && px <= r.X+r.W && py >= r.Y && py <= r.Y+r.H
}

// Intersects returns true if r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && r.X+r.W > other.X &&
		r.Y < other.Y+other.H && r.Y+r.H > other.Y
}

// Intersection returns the overlapping area of two rectangles.
// Returns a zero Rect if they don't overlap.
func (r Rect) Intersection(other Rect) Rect {
	if !r.Intersects(other) {
		return Rect{}
	}
	x := math.Max(r.X, other.X)
	y := math.Max(r.Y, other.Y)
	x2 := math.Min(r.X+r.W, other.X+other.W)
	y2 := math.Min(r.Y+r.H, other.Y+other.H)
	return Rect{X: x, Y: y, W: x2 - x, H: y2 - y}
}

// Union returns the smallest rectangle that contains both r and other.
func (r Rect) Union(other Rect) Rect {
	x := math.Min(r.X, other.X)
	y := math.Min(r.Y, other.Y)
	x2 := math.Max(r.X+r.W, other.X+other.W)
	y2 := math.Max(r.Y+r.H, other.Y+other.H)
	return Rect{X: x, Y: y, W: x2 - x, H: y2 - y}
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Area returns the area of the rectangle.
func (r Rect) Area() float64 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Normalize ensures W and H are positive, adjusting X and Y if needed.
func (r Rect) Normalize() Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// IoU returns the intersection-over-union ratio of r and other. The
// image and style detectors in internal/diffdetect compute the same
// measure on their own Box type (> 0.5 for images, > 0.7 for style runs).
func (r Rect) IoU(other Rect) float64 {
	inter := r.Intersection(other).Area()
	if inter == 0 {
		return 0
	}
	union := r.Area() + other.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// FlipY converts a bottom-left-origin y coordinate to the top-left
// display-space y used throughout this package (§4.6: "any bottom-left
// inputs are flipped via y' = H − y − h").
func FlipY(pageHeight, y, h float64) float64 {
	return pageHeight - y - h
}

// Distance returns the Euclidean distance between two points.
func Distance(p1, p2 Point) float64 {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	return math.Sqrt(dx*dx + dy*dy)
}
