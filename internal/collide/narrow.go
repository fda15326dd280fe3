package collide

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/polycollide/internal/geom"
)

// Manifold describes one contact found by TestCollision. Normal points
// toward A and has length Depth; when the bodies exactly touch Depth is 0
// and Normal stays a unit vector.
type Manifold struct {
	A, B     Handle
	Point    cp.Vector
	Normal   cp.Vector
	Depth    float64
	PointOnA bool // Point is a vertex of A rather than of B
}

// ContactFunc consumes a manifold during a sweep. Returning an error stops
// the sweep.
type ContactFunc func(m Manifold) error

// Neighborhood returns the cached 3x3 cell block of a body. See Grid.Neighborhood.
func (w *World) Neighborhood(h Handle) []CellID {
	return w.grid.Neighborhood(h)
}

// Sweep tests a body against every occupant of the candidate cells and hands
// each manifold to fn. NoCell entries are skipped.
func (w *World) Sweep(ctx *Context, h Handle, cells []CellID, fn ContactFunc) error {
	if _, err := w.get(h); err != nil {
		return err
	}
	var sweepErr error
	for _, id := range cells {
		if id == NoCell {
			continue
		}
		w.grid.ForEachOccupant(id, func(other Handle) bool {
			m, ok := w.TestCollision(ctx, h, other)
			if !ok {
				return true
			}
			if err := fn(m); err != nil {
				sweepErr = err
				return false
			}
			return true
		})
		if sweepErr != nil {
			return sweepErr
		}
	}
	return nil
}

// TestCollision runs the separating-axis test between a and b. It returns
// false when b is hidden, a == b, b's name is filtered out by a, the pair was
// already evaluated in this pass, or the polygons are disjoint.
func (w *World) TestCollision(ctx *Context, a, b Handle) (Manifold, bool) {
	if a == b {
		return Manifold{}, false
	}
	ea, err := w.get(a)
	if err != nil {
		return Manifold{}, false
	}
	eb, err := w.get(b)
	if err != nil || !eb.visible() || !ea.accepts(eb.Name) {
		return Manifold{}, false
	}
	if !ctx.registry.Mark(a, b) {
		return Manifold{}, false
	}

	ownAxes := len(ea.poly.Normals)
	axes := make([]cp.Vector, 0, ownAxes+len(eb.poly.Normals))
	axes = append(axes, ea.poly.Normals...)
	axes = append(axes, eb.poly.Normals...)

	minDepth := math.MaxFloat64
	var minPoint [2]int
	axisIndex := -1
	for i, axis := range axes {
		pa := ea.poly.Project(axis)
		pb := eb.poly.Project(axis)
		if !pa.Overlaps(pb) {
			return Manifold{}, false
		}
		left := math.Abs(pa.Max - pb.Min)
		right := math.Abs(pb.Max - pa.Min)
		depth := math.Min(left, right)
		if depth < minDepth {
			minDepth = depth
			if right < left {
				minPoint = [2]int{pa.MinIndex, pb.MaxIndex}
			} else {
				minPoint = [2]int{pa.MaxIndex, pb.MinIndex}
			}
			axisIndex = i
		}
	}
	if axisIndex < 0 {
		return Manifold{}, false
	}

	// The winning axis is B's face when its index is past A's normals, so
	// the penetrating vertex is A's; otherwise it is B's.
	pointOnA := axisIndex >= ownAxes
	var point cp.Vector
	if pointOnA {
		point = ea.poly.Points[minPoint[0]]
	} else {
		point = eb.poly.Points[minPoint[1]]
	}

	normal := axes[axisIndex]
	if minDepth > 0 {
		normal = normal.Mult(minDepth)
	}
	if point.Sub(ea.Pos).Dot(normal) > 0 {
		normal = normal.Neg()
	}

	return Manifold{
		A:        a,
		B:        b,
		Point:    point,
		Normal:   normal,
		Depth:    minDepth,
		PointOnA: pointOnA,
	}, true
}

// Project returns the projection of a body's polygon onto axis.
func (w *World) Project(h Handle, axis cp.Vector) (geom.Projection, error) {
	e, err := w.get(h)
	if err != nil {
		return geom.Projection{}, err
	}
	return e.poly.Project(axis), nil
}

// TestPoint reports whether p lies inside the body's polygon.
func (w *World) TestPoint(h Handle, p cp.Vector) bool {
	e, err := w.get(h)
	if err != nil {
		return false
	}
	return e.poly.ContainsPoint(p)
}

// CastRay casts start->end against one body. See geom.Polygon.CastRay.
func (w *World) CastRay(h Handle, start, end cp.Vector) geom.RayHit {
	e, err := w.get(h)
	if err != nil {
		return geom.RayHit{}
	}
	return e.poly.CastRay(start, end)
}

// TraceHit is a ray strike on a specific body.
type TraceHit struct {
	geom.RayHit
	Body     Handle
	Distance float64
}

// RayTrace casts a ray clamped to maxRange (0 means unclamped) against every
// visible body bucketed in a cell within one cell of the ray's bounds, and
// returns the nearest strike.
func (w *World) RayTrace(start, end cp.Vector, maxRange float64) (TraceHit, bool) {
	ray := end.Sub(start)
	if maxRange > 0 && ray.Length() > maxRange {
		end = start.Add(ray.Normalize().Mult(maxRange))
	}

	bounds := geom.NewRect(start, end).Expand(w.grid.size)
	x0 := clampIndex(int(math.Floor(bounds.Min.X/w.grid.size)), w.grid.cols)
	x1 := clampIndex(int(math.Floor(bounds.Max.X/w.grid.size)), w.grid.cols)
	y0 := clampIndex(int(math.Floor(bounds.Min.Y/w.grid.size)), w.grid.rows)
	y1 := clampIndex(int(math.Floor(bounds.Max.Y/w.grid.size)), w.grid.rows)

	var best TraceHit
	found := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			w.grid.ForEachOccupant(w.grid.id(x, y), func(h Handle) bool {
				e := &w.entities[h.Index]
				if !e.visible() {
					return true
				}
				hit := e.poly.CastRay(start, end)
				if !hit.Hit {
					return true
				}
				d := hit.Point.Sub(start).Length()
				if !found || d < best.Distance {
					best = TraceHit{RayHit: hit, Body: h, Distance: d}
					found = true
				}
				return true
			})
		}
	}
	return best, found
}

func clampIndex(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
