// Package formats provides pluggable scene file format parsers.
package formats

import (
	"fmt"
	"math"
	"strings"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/polycollide/internal/collide"
	"github.com/vovakirdan/polycollide/internal/geom"
)

// YAMLScene represents the YAML structure for a scene file.
type YAMLScene struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Gravity     *YAMLVec   `yaml:"gravity,omitempty"`
	Bodies      []YAMLBody `yaml:"bodies"`
}

// YAMLVec is a 2D vector.
type YAMLVec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// YAMLBody represents one body entry. Count > 1 replicates the body,
// offsetting each copy by Step.
type YAMLBody struct {
	Name         string    `yaml:"name"`
	Shape        YAMLShape `yaml:"shape"`
	Pos          YAMLVec   `yaml:"pos"`
	Rot          float64   `yaml:"rot,omitempty"`
	Vel          YAMLVec   `yaml:"vel,omitempty"`
	Spin         float64   `yaml:"spin,omitempty"`
	Mass         Mass      `yaml:"mass"`
	Inertia      float64   `yaml:"inertia,omitempty"`
	Response     string    `yaml:"response,omitempty"`
	CollidesWith []string  `yaml:"collides_with,omitempty"`
	Hidden       bool      `yaml:"hidden,omitempty"`
	Count        int       `yaml:"count,omitempty"`
	Step         YAMLVec   `yaml:"step,omitempty"`
}

// YAMLShape holds exactly one of its fields.
type YAMLShape struct {
	Box     *YAMLBox     `yaml:"box,omitempty"`
	Polygon [][2]float64 `yaml:"polygon,omitempty"`
	Regular *YAMLRegular `yaml:"regular,omitempty"`
}

// YAMLBox is a centered rectangle.
type YAMLBox struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// YAMLRegular is a regular polygon.
type YAMLRegular struct {
	Sides  int     `yaml:"sides"`
	Radius float64 `yaml:"radius"`
}

// Mass is a body mass that also accepts the string "infinite".
type Mass float64

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Mass) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && strings.EqualFold(node.Value, "infinite") {
		*m = Mass(geom.Infinite)
		return nil
	}
	var v float64
	if err := node.Decode(&v); err != nil {
		return fmt.Errorf("mass must be a number or \"infinite\": %w", err)
	}
	*m = Mass(v)
	return nil
}

// Scene represents a parsed scene ready for use.
type Scene struct {
	ID          string
	Name        string
	Description string
	Gravity     *cp.Vector
	Bodies      []collide.Body
}

// ParseYAML parses a YAML scene file.
func ParseYAML(data []byte) (Scene, error) {
	var ys YAMLScene
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Scene{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if ys.ID == "" {
		return Scene{}, fmt.Errorf("scene has no id")
	}

	scene := Scene{
		ID:          ys.ID,
		Name:        ys.Name,
		Description: ys.Description,
	}
	if scene.Name == "" {
		scene.Name = ys.ID
	}
	if ys.Gravity != nil {
		g := cp.Vector{X: ys.Gravity.X, Y: ys.Gravity.Y}
		scene.Gravity = &g
	}

	for i, yb := range ys.Bodies {
		bodies, err := yb.expand()
		if err != nil {
			return Scene{}, fmt.Errorf("body %d (%s): %w", i, yb.Name, err)
		}
		scene.Bodies = append(scene.Bodies, bodies...)
	}
	return scene, nil
}

func (yb YAMLBody) expand() ([]collide.Body, error) {
	shape, err := yb.Shape.toShape()
	if err != nil {
		return nil, err
	}
	resp, ok := collide.ParseResponse(yb.Response)
	if !ok {
		return nil, fmt.Errorf("unknown response %q", yb.Response)
	}
	mass := float64(yb.Mass)
	if mass == 0 {
		mass = 1 // Default mass
	}
	if math.IsNaN(mass) || mass < 0 {
		return nil, fmt.Errorf("invalid mass %v", mass)
	}

	var filter map[string]bool
	if len(yb.CollidesWith) > 0 {
		filter = make(map[string]bool, len(yb.CollidesWith))
		for _, name := range yb.CollidesWith {
			filter[name] = true
		}
	}

	count := yb.Count
	if count <= 0 {
		count = 1
	}
	out := make([]collide.Body, 0, count)
	for n := 0; n < count; n++ {
		offset := float64(n)
		out = append(out, collide.Body{
			Name:         yb.Name,
			Hidden:       yb.Hidden,
			Shape:        shape,
			Pos:          cp.Vector{X: yb.Pos.X + yb.Step.X*offset, Y: yb.Pos.Y + yb.Step.Y*offset},
			Rot:          yb.Rot,
			Vel:          cp.Vector{X: yb.Vel.X, Y: yb.Vel.Y},
			Spin:         yb.Spin,
			Mass:         mass,
			Inertia:      yb.Inertia,
			Response:     resp,
			CollidesWith: filter,
		})
	}
	return out, nil
}

func (ys YAMLShape) toShape() (geom.Shape, error) {
	var shape geom.Shape
	set := 0
	if ys.Box != nil {
		shape = geom.Box(ys.Box.W, ys.Box.H)
		set++
	}
	if ys.Regular != nil {
		shape = geom.Regular(ys.Regular.Sides, ys.Regular.Radius)
		set++
	}
	if len(ys.Polygon) > 0 {
		pts := make([]cp.Vector, len(ys.Polygon))
		for i, p := range ys.Polygon {
			pts[i] = cp.Vector{X: p[0], Y: p[1]}
		}
		shape = geom.Shape{Points: pts}
		set++
	}
	if set != 1 {
		return geom.Shape{}, fmt.Errorf("shape needs exactly one of box, polygon, regular (got %d)", set)
	}
	if err := shape.Validate(); err != nil {
		return geom.Shape{}, err
	}
	return shape, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
