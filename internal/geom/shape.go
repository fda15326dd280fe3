package geom

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// Shape is a convex outline in local space, centered on the body origin.
type Shape struct {
	Points []cp.Vector
}

// Box returns a w x h rectangle centered on the origin, wound counter-clockwise.
func Box(w, h float64) Shape {
	hw, hh := w/2, h/2
	return Shape{Points: []cp.Vector{
		V(-hw, -hh),
		V(hw, -hh),
		V(hw, hh),
		V(-hw, hh),
	}}
}

// Regular returns a regular polygon with the given number of sides inscribed
// in a circle of radius r.
func Regular(sides int, r float64) Shape {
	pts := make([]cp.Vector, 0, sides)
	for i := 0; i < sides; i++ {
		a := 2 * math.Pi * float64(i) / float64(sides)
		pts = append(pts, cp.ForAngle(a).Mult(r))
	}
	return Shape{Points: pts}
}

// Validate checks that the shape can produce a non-degenerate polygon.
func (s Shape) Validate() error {
	_, err := NewPolygon(s.Points)
	return err
}

// Transform places the shape at pos rotated by rot degrees and returns the
// world-space polygon.
func (s Shape) Transform(pos cp.Vector, rot float64) (Polygon, error) {
	dir := cp.ForAngle(rot * math.Pi / 180)
	world := make([]cp.Vector, len(s.Points))
	for i, pt := range s.Points {
		world[i] = pos.Add(pt.Rotate(dir))
	}
	poly, err := NewPolygon(world)
	if err != nil {
		return Polygon{}, fmt.Errorf("geom: transform shape: %w", err)
	}
	return poly, nil
}

// Moment returns the moment of inertia of the shape for the given mass about
// its origin. Immovable bodies get the Infinite sentinel.
func (s Shape) Moment(mass float64) float64 {
	if IsInfinite(mass) {
		return Infinite
	}
	return math.Abs(cp.MomentForPoly(mass, len(s.Points), s.Points, cp.Vector{}, 0))
}

// Radius returns the distance from the origin to the farthest vertex.
func (s Shape) Radius() float64 {
	var r float64
	for _, pt := range s.Points {
		r = math.Max(r, pt.Length())
	}
	return r
}
