package collide

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/polycollide/internal/geom"
)

// PointVelocity returns the velocity of a point on the body given its
// offset from the body origin.
func (w *World) PointVelocity(h Handle, offset cp.Vector) (cp.Vector, error) {
	e, err := w.get(h)
	if err != nil {
		return cp.Vector{}, err
	}
	return e.pointVelocity(offset), nil
}

// DefaultCallback handles manifolds from the primary detection pass. Sensor
// contacts are reported as touches on both bodies. Everything else is
// resolved, reported as a collision on both bodies and A is queued on ctx
// for the speculative pass.
func (w *World) DefaultCallback(ctx *Context) ContactFunc {
	return func(m Manifold) error {
		ea, err := w.get(m.A)
		if err != nil {
			return err
		}
		eb, err := w.get(m.B)
		if err != nil {
			return err
		}

		if ea.Response.notifyOnly() || eb.Response.notifyOnly() {
			ea.touch.Touch(Contact{Self: m.A, Other: m.B, Point: m.Point, Normal: m.Normal})
			eb.touch.Touch(Contact{Self: m.B, Other: m.A, Point: m.Point, Normal: m.Normal.Neg()})
			return nil
		}

		vab, point, err := w.resolve(ea, eb, m.Point, m.Normal, m.PointOnA)
		if err != nil {
			return fmt.Errorf("collide: resolve %s/%s: %w", m.A, m.B, err)
		}
		ea.collision.Collision(Contact{Self: m.A, Other: m.B, Point: point, Normal: m.Normal, RelativeVelocity: vab})
		eb.collision.Collision(Contact{Self: m.B, Other: m.A, Point: point, Normal: m.Normal.Neg(), RelativeVelocity: vab})
		ctx.Enqueue(m.A)
		return nil
	}
}

// Resolve separates a and b along normal (pointing toward a, length equal to
// the penetration depth) in proportion to inverse mass, then applies a
// restitution impulse when either body is rigid and the bodies approach.
// It returns the relative velocity of the contact point before the impulse.
func (w *World) Resolve(a, b Handle, point, normal cp.Vector, pointOnA bool) (cp.Vector, error) {
	ea, err := w.get(a)
	if err != nil {
		return cp.Vector{}, err
	}
	eb, err := w.get(b)
	if err != nil {
		return cp.Vector{}, err
	}
	vab, _, err := w.resolve(ea, eb, point, normal, pointOnA)
	return vab, err
}

// resolve returns the relative velocity and the corrected contact point.
func (w *World) resolve(ea, eb *entity, point, normal cp.Vector, pointOnA bool) (cp.Vector, cp.Vector, error) {
	invMassA, invMassB := geom.Inverse(ea.Mass), geom.Inverse(eb.Mass)
	invMass := invMassA + invMassB
	if invMass == 0 {
		return cp.Vector{}, point, ErrImmovablePair
	}

	ea.collided = true
	eb.collided = true

	// Lighter bodies take the larger share of the correction.
	shareA := invMassA / invMass
	partA := normal.Mult(shareA)
	partB := normal.Mult(shareA - 1)
	ea.translate(partA)
	eb.translate(partB)
	if pointOnA {
		point = point.Add(partA)
	} else {
		point = point.Add(partB)
	}

	offA := point.Sub(ea.Pos)
	offB := point.Sub(eb.Pos)
	vab := ea.pointVelocity(offA).Sub(eb.pointVelocity(offB))

	if !ea.Response.impulse() && !eb.Response.impulse() {
		return vab, point, nil
	}

	n := normal.Normalize()
	approach := vab.Dot(n)
	if approach >= 0 {
		return vab, point, nil
	}

	invInertiaA, invInertiaB := geom.Inverse(ea.Inertia), geom.Inverse(eb.Inertia)
	ap := offA.Perp()
	bp := offB.Perp()
	apd := math.Pow(ap.Dot(n), 2)
	bpd := math.Pow(bp.Dot(n), 2)

	denom := n.Mult(invMass).Dot(n) + apd*invInertiaA + bpd*invInertiaB
	j := -(1 + w.opts.Restitution) * approach / denom
	if math.IsNaN(j) || math.IsInf(j, 0) {
		return vab, point, ErrNonFinite
	}

	ea.Vel = ea.Vel.Add(n.Mult(j * invMassA))
	eb.Vel = eb.Vel.Add(n.Mult(-j * invMassB))

	ea.Spin += w.opts.AngularDamping * ap.Dot(n.Mult(j)) * invInertiaA / math.Pi
	eb.Spin += w.opts.AngularDamping * bp.Dot(n.Mult(-j)) * invInertiaB / math.Pi

	return vab, point, nil
}
