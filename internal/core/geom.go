// Package core provides fundamental types and utilities shared by the simulation
// and every host. It contains no external dependencies (especially no Bubble Tea,
// tcell or Ebitengine) to keep game logic pure and testable.
package core

import "math"

// Vec is a point or displacement in world coordinates.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Dist returns the Euclidean distance between v and o.
func (v Vec) Dist(o Vec) float64 {
	return math.Hypot(o.X-v.X, o.Y-v.Y)
}

// Heading returns the angle in radians from v towards o.
func (v Vec) Heading(o Vec) float64 {
	return math.Atan2(o.Y-v.Y, o.X-v.X)
}

// Polar returns the displacement of the given length along angle.
func Polar(angle, length float64) Vec {
	return Vec{X: math.Cos(angle) * length, Y: math.Sin(angle) * length}
}

// Rect represents an axis-aligned bounding box used for collision detection.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// RectAround returns the square of side size centred on c.
func RectAround(c Vec, size float64) Rect {
	return Rect{X: c.X - size/2, Y: c.Y - size/2, W: size, H: size}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
// Rectangles that only share an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
