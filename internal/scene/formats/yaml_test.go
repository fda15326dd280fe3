package formats

import (
	"strings"
	"testing"

	"github.com/vovakirdan/polycollide/internal/collide"
	"github.com/vovakirdan/polycollide/internal/geom"
)

const sample = `
id: sample
gravity: {x: 0, y: 9.8}
bodies:
  - name: floor
    shape: {box: {w: 100, h: 10}}
    pos: {x: 50, y: 200}
    mass: infinite
    response: kinematic
  - name: crate
    shape: {regular: {sides: 5, radius: 10}}
    pos: {x: 10, y: 20}
    mass: 2
    response: rigid
    collides_with: [floor]
    count: 3
    step: {x: 25, y: 0}
  - name: zone
    shape:
      polygon: [[0, 0], [10, 0], [10, 10], [0, 10]]
    pos: {x: 0, y: 0}
    response: sensor
    hidden: true
`

func TestParseYAML(t *testing.T) {
	s, err := ParseYAML([]byte(sample))
	if err != nil {
		t.Fatalf("ParseYAML() failed: %v", err)
	}
	if s.ID != "sample" || s.Name != "sample" {
		t.Errorf("ID/Name = %q/%q, want sample/sample", s.ID, s.Name)
	}
	if s.Gravity == nil || s.Gravity.Y != 9.8 {
		t.Errorf("Gravity = %v, want (0, 9.8)", s.Gravity)
	}
	if len(s.Bodies) != 5 {
		t.Fatalf("got %d bodies, want 5", len(s.Bodies))
	}

	floor := s.Bodies[0]
	if !geom.IsInfinite(floor.Mass) || floor.Response != collide.Kinematic {
		t.Errorf("floor mass=%v response=%s", floor.Mass, floor.Response)
	}

	for i, b := range s.Bodies[1:4] {
		if b.Pos.X != 10+25*float64(i) || b.Pos.Y != 20 {
			t.Errorf("crate %d at %v", i, b.Pos)
		}
		if !b.CollidesWith["floor"] || b.CollidesWith["crate"] {
			t.Errorf("crate %d filter = %v", i, b.CollidesWith)
		}
		if len(b.Shape.Points) != 5 {
			t.Errorf("crate %d has %d vertices, want 5", i, len(b.Shape.Points))
		}
	}

	zone := s.Bodies[4]
	if zone.Response != collide.Sensor || !zone.Hidden || zone.Mass != 1 {
		t.Errorf("zone = %+v", zone)
	}
	if zone.CollidesWith != nil {
		t.Error("absent collides_with should mean everything")
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"malformed", "id: [", "yaml unmarshal"},
		{"missing id", "bodies: []", "no id"},
		{"no shape", "id: x\nbodies:\n  - name: a\n", "exactly one"},
		{"two shapes", "id: x\nbodies:\n  - name: a\n    shape: {box: {w: 1, h: 1}, regular: {sides: 3, radius: 1}}\n", "exactly one"},
		{"degenerate", "id: x\nbodies:\n  - name: a\n    shape: {box: {w: 0, h: 1}}\n", "degenerate"},
		{"bad response", "id: x\nbodies:\n  - name: a\n    shape: {box: {w: 1, h: 1}}\n    response: bouncy\n", "unknown response"},
		{"bad mass", "id: x\nbodies:\n  - name: a\n    shape: {box: {w: 1, h: 1}}\n    mass: heavy\n", "mass"},
		{"negative mass", "id: x\nbodies:\n  - name: a\n    shape: {box: {w: 1, h: 1}}\n    mass: -3\n", "invalid mass"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ParseYAML() error = %v, want %q", err, tt.want)
			}
		})
	}
}
