package collide

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/polycollide/internal/geom"
)

// Body is the definition of a collidable body. Angles are in degrees and
// angular rates in degrees per second.
type Body struct {
	Name   string // Collision filter key
	Hidden bool   // Hidden bodies are skipped as collision candidates

	Shape geom.Shape // Local-space outline, convex and consistently wound

	Pos  cp.Vector
	Rot  float64
	Vel  cp.Vector
	Spin float64

	// Mass and Inertia are positive finite or geom.Infinite. A zero Inertia
	// is derived from the shape.
	Mass    float64
	Inertia float64

	Response Response

	// CollidesWith restricts candidates to these names; nil means everything.
	CollidesWith map[string]bool
}

// Contact is delivered to body handlers. Normal points toward Self.
type Contact struct {
	Self             Handle
	Other            Handle
	Point            cp.Vector
	Normal           cp.Vector
	RelativeVelocity cp.Vector // Zero for touches
}

// CollisionHandler receives resolved collisions.
type CollisionHandler interface {
	Collision(c Contact)
}

// TouchHandler receives sensor contacts. Handlers that do not implement it
// get a no-op.
type TouchHandler interface {
	Touch(c Contact)
}

type nopHandler struct{}

func (nopHandler) Collision(Contact) {}
func (nopHandler) Touch(Contact)     {}

// entity is the arena record behind a Handle.
type entity struct {
	Body

	version uint32
	alive   bool

	poly      geom.Polygon
	collision CollisionHandler
	touch     TouchHandler

	cell         CellID
	next         int32    // next occupant of the same cell, -1 at the tail
	neighborhood []CellID // cached 3x3 block, nil until first query
	collided     bool
}

func (e *entity) visible() bool {
	return e.alive && !e.Hidden
}

func (e *entity) accepts(name string) bool {
	return e.CollidesWith == nil || e.CollidesWith[name]
}

// pointVelocity is linear velocity plus spin applied to the perpendicular
// of the offset from the body origin.
func (e *entity) pointVelocity(offset cp.Vector) cp.Vector {
	return offset.Perp().Mult(e.Spin * math.Pi / 180).Add(e.Vel)
}

// translate moves the body and its world polygon together.
func (e *entity) translate(delta cp.Vector) {
	e.Pos = e.Pos.Add(delta)
	e.poly.Translate(delta)
}

func validMass(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
