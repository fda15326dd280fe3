// Package scene provides scene loading and world construction. This package
// depends on collide but collide does not depend on scene.
package scene

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/polycollide/internal/collide"
	"github.com/vovakirdan/polycollide/internal/config"
)

// Scene represents a complete scene definition.
type Scene struct {
	ID          string
	Name        string
	Description string
	Gravity     *cp.Vector // nil means use the engine configuration
	Bodies      []collide.Body
	FilePath    string
}

// HandlerFunc supplies the collision handler for a body by index in Bodies.
// It may return nil.
type HandlerFunc func(i int, b collide.Body) collide.CollisionHandler

// GravityOr returns the scene gravity, or fallback when the scene has none.
func (s *Scene) GravityOr(fallback cp.Vector) cp.Vector {
	if s.Gravity != nil {
		return *s.Gravity
	}
	return fallback
}

// Build creates a world from the scene and adds every body in order. The
// returned handles are parallel to Bodies.
func (s *Scene) Build(cfg config.Engine, handlers HandlerFunc) (*collide.World, []collide.Handle, error) {
	world, err := collide.NewWorld(cfg.WorldOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("scene %s: %w", s.ID, err)
	}

	handles := make([]collide.Handle, len(s.Bodies))
	for i, b := range s.Bodies {
		var h collide.CollisionHandler
		if handlers != nil {
			h = handlers(i, b)
		}
		handle, err := world.Add(b, h)
		if err != nil {
			return nil, nil, fmt.Errorf("scene %s: body %d: %w", s.ID, i, err)
		}
		handles[i] = handle
	}
	return world, handles, nil
}

// Clone returns a deep copy whose bodies can be modified independently.
func (s *Scene) Clone() *Scene {
	c := *s
	if s.Gravity != nil {
		g := *s.Gravity
		c.Gravity = &g
	}
	c.Bodies = make([]collide.Body, len(s.Bodies))
	copy(c.Bodies, s.Bodies)
	return &c
}
