package collide

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/polycollide/internal/geom"
)

// ProcessSpeculative rechecks every body queued by the previous resolution
// pass. Each body is moved forward by its velocity over dt without
// committing the move, swept against its neighborhood with the rectifier,
// and put back. The registry is reset first and the queue is always cleared.
// It returns the number of velocity corrections applied.
func (w *World) ProcessSpeculative(ctx *Context, dt float64) (int, error) {
	ctx.Reset()
	defer func() { ctx.queue = ctx.queue[:0] }()

	corrections := 0
	rectify := func(m Manifold) error {
		applied, err := w.rectify(m, dt)
		if applied {
			corrections++
		}
		return err
	}

	for _, h := range ctx.queue {
		e, err := w.get(h)
		if err != nil {
			// Removed since it was queued.
			continue
		}

		savedPos := e.Pos
		savedPoints := make([]cp.Vector, len(e.poly.Points))
		copy(savedPoints, e.poly.Points)

		e.translate(e.Vel.Mult(dt))
		sweepErr := w.Sweep(ctx, h, w.grid.Neighborhood(h), rectify)

		e.Pos = savedPos
		copy(e.poly.Points, savedPoints)

		if sweepErr != nil {
			return corrections, fmt.Errorf("collide: speculative %s: %w", h, sweepErr)
		}
	}
	return corrections, nil
}

// Rectifier returns the speculative contact callback for a step of dt.
func (w *World) Rectifier(dt float64) ContactFunc {
	return func(m Manifold) error {
		_, err := w.rectify(m, dt)
		return err
	}
}

// rectify removes just enough closing velocity along the contact normal to
// leave the bodies touching after dt.
//
// Pairs involving a Sensor are skipped. This departs from the legacy
// rectifier, which corrected every pair.
func (w *World) rectify(m Manifold, dt float64) (bool, error) {
	ea, err := w.get(m.A)
	if err != nil {
		return false, err
	}
	eb, err := w.get(m.B)
	if err != nil {
		return false, err
	}
	if ea.Response.notifyOnly() || eb.Response.notifyOnly() {
		return false, nil
	}

	n := m.Normal.Normalize()
	relative := ea.Vel.Sub(eb.Vel).Dot(n)
	separation := m.Depth - relative*dt
	remove := relative + separation
	if remove >= 0 {
		return false, nil
	}

	invMassA, invMassB := geom.Inverse(ea.Mass), geom.Inverse(eb.Mass)
	invMass := invMassA + invMassB
	if invMass == 0 {
		return false, ErrImmovablePair
	}
	shareA := invMassA / invMass
	shareB := 1 - shareA

	ea.Vel = ea.Vel.Add(n.Mult(-shareA * remove))
	eb.Vel = eb.Vel.Add(n.Mult(shareB * remove))
	return true, nil
}
