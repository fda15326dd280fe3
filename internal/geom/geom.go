// Package geom provides the 2D geometry used by the collision engine: convex
// polygons with outward face normals, axis projection, point containment,
// segment ray casts and axis-aligned bounds. Vectors are jakecoffman/cp vectors.
// It has no knowledge of bodies, grids or time.
package geom

import (
	"errors"
	"math"

	"github.com/jakecoffman/cp"
)

// Infinite is the mass/inertia sentinel for immovable bodies. It is the
// largest finite float64 so arithmetic on it never produces Inf by itself.
const Infinite = math.MaxFloat64

// Epsilon is the tolerance used for degenerate edge and area checks.
const Epsilon = 1e-9

// ErrDegenerateGeometry is returned for polygons that cannot produce finite
// normals: fewer than three vertices, a zero-length edge or zero area.
var ErrDegenerateGeometry = errors.New("degenerate geometry")

// V is shorthand for cp.Vector{X: x, Y: y}.
func V(x, y float64) cp.Vector {
	return cp.Vector{X: x, Y: y}
}

// IsInfinite reports whether a mass or inertia is the immovable sentinel.
func IsInfinite(v float64) bool {
	return v >= Infinite
}

// Inverse returns 1/v, or 0 for the immovable sentinel.
func Inverse(v float64) float64 {
	if IsInfinite(v) {
		return 0
	}
	return 1 / v
}

// Rect is an axis-aligned bounding box in world units.
type Rect struct {
	Min cp.Vector // Top-left (smallest x and y)
	Max cp.Vector // Bottom-right (largest x and y)
}

// NewRect creates a rectangle from two corners in any order.
func NewRect(a, b cp.Vector) Rect {
	return Rect{
		Min: V(math.Min(a.X, b.X), math.Min(a.Y, b.Y)),
		Max: V(math.Max(a.X, b.X), math.Max(a.Y, b.Y)),
	}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Intersects returns true if this rectangle overlaps another.
// Touching edges count as overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.Min.X > other.Max.X || other.Min.X > r.Max.X {
		return false
	}
	if r.Min.Y > other.Max.Y || other.Min.Y > r.Max.Y {
		return false
	}
	return true
}

// Contains returns true if the point lies inside or on the rectangle.
func (r Rect) Contains(p cp.Vector) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Center returns the center point of the rectangle.
func (r Rect) Center() cp.Vector {
	return V((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

// Expand grows the rectangle by margin on every side.
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		Min: V(r.Min.X-margin, r.Min.Y-margin),
		Max: V(r.Max.X+margin, r.Max.Y+margin),
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Near reports whether two vectors are within tol of each other.
func Near(a, b cp.Vector, tol float64) bool {
	return a.Sub(b).Length() <= tol
}
