// Package sim is the outer loop around the collision core. It integrates
// bodies at a fixed step, drives the detection and speculative passes and
// collects run statistics.
package sim

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/polycollide/internal/collide"
	"github.com/vovakirdan/polycollide/internal/config"
	"github.com/vovakirdan/polycollide/internal/geom"
	"github.com/vovakirdan/polycollide/internal/scene"
)

// Stats accumulates over the life of a Simulation.
type Stats struct {
	Collisions  int     // Resolved pairs
	Touches     int     // Sensor pairs
	Corrections int     // Speculative velocity corrections
	MaxDepth    float64 // Deepest penetration seen by the primary pass
}

// Report summarizes a headless run.
type Report struct {
	ID             string
	SceneID        string
	Steps          int
	Bodies         int
	Collisions     int
	Touches        int
	Corrections    int
	MaxDepth       float64
	MomentumBefore float64 // |sum of m*v| over movable bodies
	MomentumAfter  float64
	Duration       time.Duration
	CreatedAt      time.Time
}

// Simulation owns a world built from a scene.
type Simulation struct {
	scene   *scene.Scene
	cfg     config.Engine
	logger  *log.Logger
	world   *collide.World
	handles []collide.Handle
	movable []collide.Handle
	ctx     *collide.Context
	gravity cp.Vector
	detect  collide.ContactFunc

	tick     int
	stats    Stats
	contacts []cp.Vector // contact points of the last step
}

// New builds the scene into a fresh world. logger may be nil.
func New(s *scene.Scene, cfg config.Engine, logger *log.Logger) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sim := &Simulation{
		scene:   s,
		cfg:     cfg,
		logger:  logger,
		ctx:     collide.NewContext(),
		gravity: s.GravityOr(cp.Vector{X: cfg.Physics.Gravity.X, Y: cfg.Physics.Gravity.Y}),
	}

	world, handles, err := s.Build(cfg, func(int, collide.Body) collide.CollisionHandler {
		return &handler{sim: sim}
	})
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	sim.world = world
	sim.handles = handles
	for i, b := range s.Bodies {
		if !geom.IsInfinite(b.Mass) {
			sim.movable = append(sim.movable, handles[i])
		}
	}

	resolve := world.DefaultCallback(sim.ctx)
	sim.detect = func(m collide.Manifold) error {
		if err := resolve(m); err != nil {
			return err
		}
		sim.stats.MaxDepth = math.Max(sim.stats.MaxDepth, m.Depth)
		sim.contacts = append(sim.contacts, m.Point)
		return nil
	}

	logger.Info("scene loaded", "scene", s.ID, "bodies", len(handles), "movable", len(sim.movable), "gravity", fmt.Sprintf("(%g, %g)", sim.gravity.X, sim.gravity.Y))
	return sim, nil
}

// Step advances the simulation by dt seconds: the speculative pass over the
// bodies resolved last step, integration, then detection and resolution.
func (s *Simulation) Step(dt float64) error {
	s.contacts = s.contacts[:0]

	if s.cfg.Step.Speculative {
		n, err := s.world.ProcessSpeculative(s.ctx, dt)
		if err != nil {
			return fmt.Errorf("sim: step %d: %w", s.tick, err)
		}
		if n > 0 {
			s.logger.Debug("speculative corrections", "tick", s.tick, "count", n)
		}
		s.stats.Corrections += n
	} else {
		s.ctx.DropPending()
	}

	s.world.ClearCollided()
	for _, h := range s.movable {
		if err := s.integrate(h, dt); err != nil {
			return fmt.Errorf("sim: step %d: %w", s.tick, err)
		}
	}

	s.ctx.Reset()
	for _, h := range s.movable {
		if err := s.world.Sweep(s.ctx, h, s.world.Neighborhood(h), s.detect); err != nil {
			return fmt.Errorf("sim: step %d: %w", s.tick, err)
		}
	}

	s.tick++
	return nil
}

func (s *Simulation) integrate(h collide.Handle, dt float64) error {
	b, err := s.world.Body(h)
	if err != nil {
		return err
	}
	if b.Response == collide.Rigid {
		b.Vel = b.Vel.Add(s.gravity.Mult(dt))
		if err := s.world.SetVelocity(h, b.Vel, b.Spin); err != nil {
			return err
		}
	}
	return s.world.SetPose(h, b.Pos.Add(b.Vel.Mult(dt)), b.Rot+b.Spin*dt)
}

// Run advances steps ticks at the configured rate and reports. steps <= 0
// uses the configured default.
func (s *Simulation) Run(steps int) (Report, error) {
	if steps <= 0 {
		steps = s.cfg.Step.MaxSteps
	}
	dt := s.cfg.DeltaTime()
	before := s.Momentum()
	start := time.Now()

	report := Report{
		ID:             uuid.NewString(),
		SceneID:        s.scene.ID,
		Bodies:         len(s.handles),
		MomentumBefore: before.Length(),
		CreatedAt:      start,
	}

	startStats := s.stats
	for i := 0; i < steps; i++ {
		if err := s.Step(dt); err != nil {
			s.logger.Error("run aborted", "scene", s.scene.ID, "tick", s.tick, "error", err)
			return report, err
		}
		report.Steps++
	}

	report.Collisions = s.stats.Collisions - startStats.Collisions
	report.Touches = s.stats.Touches - startStats.Touches
	report.Corrections = s.stats.Corrections - startStats.Corrections
	report.MaxDepth = s.stats.MaxDepth
	report.MomentumAfter = s.Momentum().Length()
	report.Duration = time.Since(start)

	s.logger.Info("run complete",
		"scene", report.SceneID,
		"steps", report.Steps,
		"collisions", report.Collisions,
		"touches", report.Touches,
		"corrections", report.Corrections,
		"duration", report.Duration,
	)
	return report, nil
}

// Momentum returns the total linear momentum of the movable bodies.
func (s *Simulation) Momentum() cp.Vector {
	var p cp.Vector
	for _, h := range s.movable {
		b, err := s.world.Body(h)
		if err != nil {
			continue
		}
		p = p.Add(b.Vel.Mult(b.Mass))
	}
	return p
}

// RayTrace casts a ray through the world, limited to the configured range.
func (s *Simulation) RayTrace(start, end cp.Vector) (collide.TraceHit, bool) {
	hit, ok := s.world.RayTrace(start, end, s.cfg.Raycast.MaxRange)
	if ok {
		b, _ := s.world.Body(hit.Body)
		s.logger.Debug("ray hit", "body", b.Name, "point", fmt.Sprintf("(%.2f, %.2f)", hit.Point.X, hit.Point.Y), "distance", hit.Distance)
	}
	return hit, ok
}

// World returns the simulated world.
func (s *Simulation) World() *collide.World { return s.world }

// Handles returns the body handles, parallel to the scene's bodies.
func (s *Simulation) Handles() []collide.Handle { return s.handles }

// Scene returns the scene the simulation was built from.
func (s *Simulation) Scene() *scene.Scene { return s.scene }

// Config returns the engine configuration.
func (s *Simulation) Config() config.Engine { return s.cfg }

// Tick returns the number of completed steps.
func (s *Simulation) Tick() int { return s.tick }

// Stats returns the accumulated statistics.
func (s *Simulation) Stats() Stats { return s.stats }

// Contacts returns the contact points found in the last step.
func (s *Simulation) Contacts() []cp.Vector { return s.contacts }

// handler counts contacts. Both bodies of a pair are notified, so only the
// side with the lower index counts.
type handler struct {
	sim *Simulation
}

func (h *handler) Collision(c collide.Contact) {
	if c.Self.Index > c.Other.Index {
		return
	}
	h.sim.stats.Collisions++
	h.sim.logger.Debug("collision", "tick", h.sim.tick, "a", c.Self, "b", c.Other, "rel_vel", fmt.Sprintf("(%.2f, %.2f)", c.RelativeVelocity.X, c.RelativeVelocity.Y))
}

func (h *handler) Touch(c collide.Contact) {
	if c.Self.Index > c.Other.Index {
		return
	}
	h.sim.stats.Touches++
	h.sim.logger.Debug("touch", "tick", h.sim.tick, "a", c.Self, "b", c.Other)
}
