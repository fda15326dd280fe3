package collide

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/polycollide/internal/geom"
)

// Options configures a World.
type Options struct {
	Restitution    float64 // Coefficient of restitution for rigid impulses
	AngularDamping float64 // Scale of the angular impulse applied to spin

	CellSize float64 // Grid cell edge in world units
	Cols     int
	Rows     int

	// RefreshNeighborhood drops a body's cached neighborhood when it moves
	// to another cell. When false the neighborhood computed on first use is
	// kept for the body's lifetime, which is the legacy grid behavior.
	RefreshNeighborhood bool
}

// DefaultOptions returns the stock engine parameters.
func DefaultOptions() Options {
	return Options{
		Restitution:         0.2,
		AngularDamping:      34,
		CellSize:            64,
		Cols:                32,
		Rows:                32,
		RefreshNeighborhood: true,
	}
}

// World owns the body arena and the spatial grid.
type World struct {
	opts     Options
	entities []entity
	free     []uint32
	grid     *Grid
}

// NewWorld creates an empty world.
func NewWorld(opts Options) (*World, error) {
	if opts.CellSize <= 0 || opts.Cols <= 0 || opts.Rows <= 0 {
		return nil, fmt.Errorf("collide: invalid grid %dx%d of size %f", opts.Cols, opts.Rows, opts.CellSize)
	}
	w := &World{opts: opts}
	w.grid = newGrid(w, opts.Cols, opts.Rows, opts.CellSize, opts.RefreshNeighborhood)
	return w, nil
}

// Options returns the world configuration.
func (w *World) Options() Options {
	return w.opts
}

// Grid returns the broad-phase grid.
func (w *World) Grid() *Grid {
	return w.grid
}

// Add inserts a body and attaches the collision capabilities to it. handler
// may be nil; if it does not implement TouchHandler touches are dropped.
func (w *World) Add(b Body, handler CollisionHandler) (Handle, error) {
	if !validMass(b.Mass) {
		return Handle{}, fmt.Errorf("collide: body %q mass %v: %w", b.Name, b.Mass, ErrInvalidMass)
	}
	poly, err := b.Shape.Transform(b.Pos, b.Rot)
	if err != nil {
		return Handle{}, fmt.Errorf("collide: body %q: %w", b.Name, err)
	}

	if geom.IsInfinite(b.Mass) {
		b.Mass = geom.Infinite
		b.Inertia = geom.Infinite
	} else if b.Inertia == 0 {
		b.Inertia = b.Shape.Moment(b.Mass)
	}
	if !validMass(b.Inertia) {
		return Handle{}, fmt.Errorf("collide: body %q inertia %v: %w", b.Name, b.Inertia, ErrInvalidMass)
	}
	if geom.IsInfinite(b.Inertia) {
		b.Inertia = geom.Infinite
	}

	if handler == nil {
		handler = nopHandler{}
	}
	touch, ok := handler.(TouchHandler)
	if !ok {
		touch = nopHandler{}
	}

	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		idx = uint32(len(w.entities))
		w.entities = append(w.entities, entity{})
	}

	e := &w.entities[idx]
	version := e.version + 1
	*e = entity{
		Body:      b,
		version:   version,
		alive:     true,
		poly:      poly,
		collision: handler,
		touch:     touch,
		cell:      NoCell,
		next:      -1,
	}

	h := Handle{Index: idx, Version: version}
	w.grid.Place(h)
	return h, nil
}

// Remove deletes a body. Its handle becomes stale.
func (w *World) Remove(h Handle) error {
	e, err := w.get(h)
	if err != nil {
		return err
	}
	w.grid.Leave(h)
	version := e.version
	*e = entity{version: version + 1, cell: NoCell, next: -1}
	w.free = append(w.free, h.Index)
	return nil
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	return len(w.entities) - len(w.free)
}

// Each calls fn for every live body in arena order.
func (w *World) Each(fn func(h Handle)) {
	for i := range w.entities {
		e := &w.entities[i]
		if e.alive {
			fn(Handle{Index: uint32(i), Version: e.version})
		}
	}
}

// Body returns a copy of the body state.
func (w *World) Body(h Handle) (Body, error) {
	e, err := w.get(h)
	if err != nil {
		return Body{}, err
	}
	return e.Body, nil
}

// Polygon returns the world-space polygon of a body.
func (w *World) Polygon(h Handle) (geom.Polygon, error) {
	e, err := w.get(h)
	if err != nil {
		return geom.Polygon{}, err
	}
	return e.poly.Clone(), nil
}

// Collided reports whether the body took part in a resolution since the
// last ClearCollided.
func (w *World) Collided(h Handle) bool {
	e, err := w.get(h)
	return err == nil && e.collided
}

// ClearCollided resets every body's collided flag.
func (w *World) ClearCollided() {
	for i := range w.entities {
		w.entities[i].collided = false
	}
}

// SetPose moves a body, recomputes its world polygon and re-buckets it.
func (w *World) SetPose(h Handle, pos cp.Vector, rot float64) error {
	e, err := w.get(h)
	if err != nil {
		return err
	}
	poly, err := e.Shape.Transform(pos, rot)
	if err != nil {
		return fmt.Errorf("collide: body %q: %w", e.Name, err)
	}
	e.Pos, e.Rot, e.poly = pos, rot, poly
	w.grid.Place(h)
	return nil
}

// SetVelocity replaces linear velocity and spin.
func (w *World) SetVelocity(h Handle, vel cp.Vector, spin float64) error {
	e, err := w.get(h)
	if err != nil {
		return err
	}
	if !finite(vel.X) || !finite(vel.Y) || !finite(spin) {
		return fmt.Errorf("collide: body %q velocity: %w", e.Name, ErrNonFinite)
	}
	e.Vel, e.Spin = vel, spin
	return nil
}

// SetHidden toggles candidate visibility.
func (w *World) SetHidden(h Handle, hidden bool) error {
	e, err := w.get(h)
	if err != nil {
		return err
	}
	e.Hidden = hidden
	return nil
}

// Refresh rebuilds the world polygon from the current pose and re-buckets
// the body. Owners call it after changing the pose outside SetPose.
func (w *World) Refresh(h Handle) error {
	e, err := w.get(h)
	if err != nil {
		return err
	}
	return w.SetPose(h, e.Pos, e.Rot)
}

// get resolves a handle. The pointer is invalidated by Add.
func (w *World) get(h Handle) (*entity, error) {
	if int(h.Index) >= len(w.entities) {
		return nil, fmt.Errorf("collide: handle %s: %w", h, ErrStaleHandle)
	}
	e := &w.entities[h.Index]
	if !e.alive || e.version != h.Version {
		return nil, fmt.Errorf("collide: handle %s: %w", h, ErrStaleHandle)
	}
	return e, nil
}

// at returns the record for an index known to be live.
func (w *World) at(idx int32) (*entity, Handle) {
	e := &w.entities[idx]
	return e, Handle{Index: uint32(idx), Version: e.version}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
