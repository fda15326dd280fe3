package registry

import (
	"math/rand"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/polycollide/internal/collide"
	"github.com/vovakirdan/polycollide/internal/geom"
	"github.com/vovakirdan/polycollide/internal/scene"
)

const (
	floorY    = 960.0
	tileWidth = 64.0
	tiles     = 20
)

// floor returns a row of immovable tiles spanning x in [64, 64+tiles*tileWidth].
func floor() []collide.Body {
	bodies := make([]collide.Body, 0, tiles)
	for i := 0; i < tiles; i++ {
		bodies = append(bodies, collide.Body{
			Name:     "floor",
			Shape:    geom.Box(tileWidth, 32),
			Pos:      cp.Vector{X: 64 + tileWidth/2 + float64(i)*tileWidth, Y: floorY},
			Mass:     geom.Infinite,
			Response: collide.Kinematic,
		})
	}
	return bodies
}

// Rain drops random convex polygons of varied sizes and masses onto a floor.
func Rain(seed int64) (*scene.Scene, error) {
	rng := rand.New(rand.NewSource(seed))
	gravity := cp.Vector{X: 0, Y: 300}

	s := &scene.Scene{
		ID:          "rain",
		Name:        "Polygon rain",
		Description: "Random convex polygons falling onto a tiled floor.",
		Gravity:     &gravity,
		Bodies:      floor(),
	}

	for i := 0; i < 40; i++ {
		sides := 3 + rng.Intn(5)
		radius := 8 + rng.Float64()*14
		s.Bodies = append(s.Bodies, collide.Body{
			Name:     "drop",
			Shape:    geom.Regular(sides, radius),
			Pos:      cp.Vector{X: 128 + rng.Float64()*1024, Y: 64 + rng.Float64()*640},
			Rot:      rng.Float64() * 360,
			Vel:      cp.Vector{X: rng.Float64()*80 - 40, Y: 0},
			Spin:     rng.Float64()*180 - 90,
			Mass:     0.5 + rng.Float64()*2,
			Response: collide.Rigid,
		})
	}
	return s, nil
}

// Pyramid stacks rows of boxes, each row one shorter than the one below.
// The seed jitters the boxes horizontally.
func Pyramid(seed int64) (*scene.Scene, error) {
	rng := rand.New(rand.NewSource(seed))
	gravity := cp.Vector{X: 0, Y: 300}

	s := &scene.Scene{
		ID:          "pyramid",
		Name:        "Box pyramid",
		Description: "Rows of boxes stacked into a pyramid.",
		Gravity:     &gravity,
		Bodies:      floor(),
	}

	const (
		base = 8
		size = 30.0
		gap  = 2.0
	)
	top := floorY - 16
	for row := 0; row < base; row++ {
		n := base - row
		width := float64(n)*(size+gap) - gap
		left := 704 - width/2 + size/2
		y := top - size/2 - 1 - float64(row)*(size+1)
		for i := 0; i < n; i++ {
			jitter := (rng.Float64() - 0.5) * gap
			s.Bodies = append(s.Bodies, collide.Body{
				Name:     "box",
				Shape:    geom.Box(size, size),
				Pos:      cp.Vector{X: left + float64(i)*(size+gap) + jitter, Y: y},
				Mass:     1,
				Response: collide.Rigid,
			})
		}
	}
	return s, nil
}
