package geom

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// Polygon is a convex polygon in world space. Normals[i] is the outward unit
// normal of the edge Points[i] -> Points[(i+1)%len(Points)].
type Polygon struct {
	Points  []cp.Vector
	Normals []cp.Vector
}

// Projection is the scalar range of a polygon projected onto an axis, with
// the indices of the vertices that attained each extreme.
type Projection struct {
	Min      float64
	Max      float64
	MinIndex int
	MaxIndex int
}

// Overlaps reports whether two projections share any part of the axis.
func (p Projection) Overlaps(other Projection) bool {
	return !(p.Max < other.Min || p.Min > other.Max)
}

// RayHit is the result of a ray cast. Hit is false for the disjoint result.
type RayHit struct {
	Hit       bool
	Point     cp.Vector // Strike point on the edge
	Normal    cp.Vector // Outward unit normal of the struck edge
	Direction cp.Vector // Unit ray direction
}

// NewPolygon builds a polygon from world-space vertices and computes one
// outward unit normal per edge. Either winding is accepted.
func NewPolygon(points []cp.Vector) (Polygon, error) {
	n := len(points)
	if n < 3 {
		return Polygon{}, fmt.Errorf("geom: polygon has %d vertices: %w", n, ErrDegenerateGeometry)
	}

	area := SignedArea(points)
	if area > -Epsilon && area < Epsilon {
		return Polygon{}, fmt.Errorf("geom: polygon has zero area: %w", ErrDegenerateGeometry)
	}

	pts := make([]cp.Vector, n)
	copy(pts, points)
	normals := make([]cp.Vector, n)
	for i := 0; i < n; i++ {
		edge := pts[(i+1)%n].Sub(pts[i])
		length := edge.Length()
		if length < Epsilon {
			return Polygon{}, fmt.Errorf("geom: edge %d has zero length: %w", i, ErrDegenerateGeometry)
		}
		// Perp rotates counter-clockwise, which points inside a
		// counter-clockwise polygon.
		normal := edge.Perp().Mult(1 / length)
		if area > 0 {
			normal = normal.Neg()
		}
		normals[i] = normal
	}

	return Polygon{Points: pts, Normals: normals}, nil
}

// SignedArea returns the shoelace area; positive for counter-clockwise
// winding in a y-up frame.
func SignedArea(points []cp.Vector) float64 {
	var sum float64
	n := len(points)
	for i := 0; i < n; i++ {
		sum += points[i].Cross(points[(i+1)%n])
	}
	return sum / 2
}

// Project returns the range of vertex dot products with axis. On ties the
// later vertex wins.
func (p Polygon) Project(axis cp.Vector) Projection {
	proj := Projection{Min: Infinite, Max: -Infinite}
	for i, pt := range p.Points {
		d := axis.Dot(pt)
		if d <= proj.Min {
			proj.Min = d
			proj.MinIndex = i
		}
		if d >= proj.Max {
			proj.Max = d
			proj.MaxIndex = i
		}
	}
	return proj
}

// ContainsPoint reports whether pt lies inside or on the polygon. Checking
// every face normal of a single convex polygon is sufficient.
func (p Polygon) ContainsPoint(pt cp.Vector) bool {
	for _, normal := range p.Normals {
		proj := p.Project(normal)
		d := normal.Dot(pt)
		if d < proj.Min || d > proj.Max {
			return false
		}
	}
	return true
}

// CastRay intersects the segment start->end with the polygon edges. Only
// edges the ray enters through are considered (inward normal has a positive
// dot with the ray), and both parametric values must lie strictly inside
// (0, 1). The first qualifying edge in vertex order is returned, which is not
// necessarily the nearest.
func (p Polygon) CastRay(start, end cp.Vector) RayHit {
	ray := end.Sub(start)
	n := len(p.Points)
	for i := 0; i < n; i++ {
		outward := p.Normals[i]
		if outward.Neg().Dot(ray) <= 0 {
			continue
		}

		seg := p.Points[(i+1)%n].Sub(p.Points[i])
		denom := ray.Cross(seg)
		if denom == 0 {
			continue
		}

		first := p.Points[i].Sub(start)
		t := first.Cross(seg) / denom // along the ray
		u := first.Cross(ray) / denom // along the edge
		if t > 0 && t < 1 && u > 0 && u < 1 {
			return RayHit{
				Hit:       true,
				Point:     start.Add(ray.Mult(t)),
				Normal:    outward,
				Direction: ray.Normalize(),
			}
		}
	}
	return RayHit{}
}

// Translate moves every vertex by delta. Normals are unchanged.
func (p Polygon) Translate(delta cp.Vector) {
	for i := range p.Points {
		p.Points[i] = p.Points[i].Add(delta)
	}
}

// Clone returns a deep copy of the polygon.
func (p Polygon) Clone() Polygon {
	pts := make([]cp.Vector, len(p.Points))
	copy(pts, p.Points)
	normals := make([]cp.Vector, len(p.Normals))
	copy(normals, p.Normals)
	return Polygon{Points: pts, Normals: normals}
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (p Polygon) Bounds() Rect {
	if len(p.Points) == 0 {
		return Rect{}
	}
	r := Rect{Min: p.Points[0], Max: p.Points[0]}
	for _, pt := range p.Points[1:] {
		if pt.X < r.Min.X {
			r.Min.X = pt.X
		}
		if pt.Y < r.Min.Y {
			r.Min.Y = pt.Y
		}
		if pt.X > r.Max.X {
			r.Max.X = pt.X
		}
		if pt.Y > r.Max.Y {
			r.Max.Y = pt.Y
		}
	}
	return r
}
