package tui

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/polycollide/internal/collide"
	"github.com/vovakirdan/polycollide/internal/geom"
)

func newWorld(t *testing.T, bodies ...collide.Body) (*collide.World, []collide.Handle) {
	t.Helper()
	w, err := collide.NewWorld(collide.DefaultOptions())
	if err != nil {
		t.Fatalf("NewWorld() failed: %v", err)
	}
	var hs []collide.Handle
	for _, b := range bodies {
		h, err := w.Add(b, nil)
		if err != nil {
			t.Fatalf("Add(%s) failed: %v", b.Name, err)
		}
		hs = append(hs, h)
	}
	return w, hs
}

func body(name string, x, y, size float64, resp collide.Response) collide.Body {
	return collide.Body{
		Name:     name,
		Shape:    geom.Box(size, size),
		Pos:      cp.Vector{X: x, Y: y},
		Mass:     1,
		Response: resp,
	}
}

func TestViewportRoundTrip(t *testing.T) {
	v := Viewport{Origin: cp.Vector{X: -10, Y: 20}, Scale: 2}

	tests := []struct {
		x, y int
	}{
		{0, 0},
		{5, 3},
		{79, 23},
	}
	for _, tt := range tests {
		p := v.ToWorld(tt.x, tt.y)
		x, y := v.ToCell(p)
		if x != tt.x || y != tt.y {
			t.Errorf("ToCell(ToWorld(%d, %d)) = (%d, %d)", tt.x, tt.y, x, y)
		}
	}
}

func TestFitContainsBounds(t *testing.T) {
	bounds := geom.NewRect(cp.Vector{X: 0, Y: 0}, cp.Vector{X: 200, Y: 50})
	v := Fit(bounds, 80, 20)

	for _, p := range []cp.Vector{bounds.Min, bounds.Max} {
		x, y := v.ToCell(p)
		if x < 0 || x >= 80 || y < 0 || y >= 20 {
			t.Errorf("corner %v maps to (%d, %d), outside 80x20", p, x, y)
		}
	}
	if v.Scale <= 0 || math.IsNaN(v.Scale) {
		t.Errorf("Scale = %v, want positive", v.Scale)
	}
}

func TestFitEmptyCanvas(t *testing.T) {
	v := Fit(geom.Rect{}, 0, 0)
	if v.Scale != 1 {
		t.Errorf("Scale = %v, want 1", v.Scale)
	}
}

func TestWorldBounds(t *testing.T) {
	w, _ := newWorld(t,
		body("a", 100, 100, 20, collide.Rigid),
		body("b", 300, 200, 40, collide.Rigid),
	)

	got := WorldBounds(w)
	want := geom.NewRect(cp.Vector{X: 90, Y: 90}, cp.Vector{X: 320, Y: 220})
	if !geom.Near(got.Min, want.Min, 1e-9) || !geom.Near(got.Max, want.Max, 1e-9) {
		t.Errorf("WorldBounds() = %+v, want %+v", got, want)
	}
}

func TestRasterize(t *testing.T) {
	w, hs := newWorld(t,
		body("crate", 50, 50, 20, collide.Rigid),
		body("zone", 20, 20, 10, collide.Sensor),
		body("hidden", 10, 60, 10, collide.Rigid),
	)
	if err := w.SetHidden(hs[2], true); err != nil {
		t.Fatalf("SetHidden() failed: %v", err)
	}

	c := NewCanvas(80, 40)
	view := Viewport{Scale: 1}
	Rasterize(c, w, view, []cp.Vector{{X: 70.5, Y: 71}})

	tests := []struct {
		name  string
		x, y  int
		rune  rune
		color Color
	}{
		{"crate center", 50, 25, '█', ColorRigid},
		{"sensor", 20, 10, '░', ColorSensor},
		{"empty", 5, 5, ' ', ColorDefault},
		{"hidden", 10, 30, ' ', ColorDefault},
		{"contact", 70, 35, '*', ColorContact},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := c.Get(tt.x, tt.y)
			if cell.Rune != tt.rune || cell.Color != tt.color {
				t.Errorf("cell (%d, %d) = %q/%d, want %q/%d", tt.x, tt.y, cell.Rune, cell.Color, tt.rune, tt.color)
			}
		})
	}
}

func TestRasterizeTinyBody(t *testing.T) {
	w, _ := newWorld(t, body("speck", 41, 41, 0.2, collide.Rigid))

	c := NewCanvas(10, 10)
	Rasterize(c, w, Viewport{Scale: 10}, nil)

	if cell := c.Get(4, 2); cell.Rune != '█' {
		t.Errorf("tiny body not drawn, cell = %q", cell.Rune)
	}
}
