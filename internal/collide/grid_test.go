package collide

import (
	"testing"

	"github.com/vovakirdan/polycollide/internal/geom"
)

func TestGridNeighbors(t *testing.T) {
	w := newTestWorld(t)
	g := w.Grid()

	corner := g.Cell(g.id(0, 0))
	if corner.North != NoCell || corner.West != NoCell {
		t.Errorf("top-left corner has north=%d west=%d, want NoCell", corner.North, corner.West)
	}
	if corner.South != g.id(0, 1) || corner.East != g.id(1, 0) {
		t.Errorf("top-left corner has south=%d east=%d", corner.South, corner.East)
	}

	empty := g.Cell(NoCell)
	if empty.North != NoCell || empty.South != NoCell {
		t.Error("NoCell should have no neighbors")
	}
	if g.Occupancy(NoCell) != 0 {
		t.Error("NoCell should have no occupants")
	}
}

func TestGridPushFront(t *testing.T) {
	w := newTestWorld(t)
	a := addBox(t, w, "a", geom.V(10, 10), 1, 1, 1, Rigid)
	b := addBox(t, w, "b", geom.V(20, 20), 1, 1, 1, Rigid)
	c := addBox(t, w, "c", geom.V(30, 30), 1, 1, 1, Rigid)

	var order []Handle
	w.Grid().ForEachOccupant(w.Grid().CellAt(geom.V(10, 10)), func(h Handle) bool {
		order = append(order, h)
		return true
	})
	want := []Handle{c, b, a}
	if len(order) != len(want) {
		t.Fatalf("got %d occupants, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("occupant %d = %s, want %s", i, order[i], want[i])
		}
	}

	// Unlinking from the middle keeps the rest of the list.
	w.Grid().Leave(b)
	if got := w.Grid().Occupancy(w.Grid().CellAt(geom.V(10, 10))); got != 2 {
		t.Errorf("Occupancy() after Leave = %d, want 2", got)
	}
}

func TestGridNeighborhood(t *testing.T) {
	w := newTestWorld(t)
	g := w.Grid()

	inner := addBox(t, w, "inner", geom.V(100, 100), 1, 1, 1, Rigid)
	cells := g.Neighborhood(inner)
	if len(cells) != 9 {
		t.Fatalf("Neighborhood() returned %d cells, want 9", len(cells))
	}
	want := []CellID{
		g.id(1, 1),
		g.id(1, 0), g.id(1, 2), g.id(2, 1), g.id(0, 1),
		g.id(2, 0), g.id(0, 0), g.id(2, 2), g.id(0, 2),
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Errorf("cell %d = %d, want %d", i, cells[i], want[i])
		}
	}

	edge := addBox(t, w, "edge", geom.V(10, 10), 1, 1, 1, Rigid)
	absent := 0
	for _, id := range g.Neighborhood(edge) {
		if id == NoCell {
			absent++
		}
	}
	if absent != 5 {
		t.Errorf("corner neighborhood has %d absent cells, want 5", absent)
	}

	outside := addBox(t, w, "outside", geom.V(-500, -500), 1, 1, 1, Rigid)
	if got := g.Neighborhood(outside); got != nil {
		t.Errorf("out-of-grid Neighborhood() = %v, want nil", got)
	}

	hidden := addBox(t, w, "hidden", geom.V(100, 100), 1, 1, 1, Rigid)
	_ = w.SetHidden(hidden, true)
	if got := g.Neighborhood(hidden); got != nil {
		t.Errorf("hidden Neighborhood() = %v, want nil", got)
	}
}

func TestGridNeighborhoodCache(t *testing.T) {
	tests := []struct {
		name    string
		refresh bool
		want    func(g *Grid) CellID
	}{
		{"refresh on cell change", true, func(g *Grid) CellID { return g.id(5, 5) }},
		{"keep first neighborhood", false, func(g *Grid) CellID { return g.id(1, 1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.RefreshNeighborhood = tt.refresh
			w, err := NewWorld(opts)
			if err != nil {
				t.Fatalf("NewWorld() failed: %v", err)
			}
			h := addBox(t, w, "a", geom.V(100, 100), 1, 1, 1, Rigid)
			_ = w.Neighborhood(h)
			if err := w.SetPose(h, geom.V(5*64+10, 5*64+10), 0); err != nil {
				t.Fatalf("SetPose() failed: %v", err)
			}
			if got, want := w.Neighborhood(h)[0], tt.want(w.Grid()); got != want {
				t.Errorf("Neighborhood()[0] = %d, want %d", got, want)
			}
		})
	}
}

func TestGridEnterDropsNeighborhood(t *testing.T) {
	tests := []struct {
		name    string
		refresh bool
		want    func(g *Grid) CellID
	}{
		{"refresh", true, func(g *Grid) CellID { return g.id(5, 5) }},
		{"keep", false, func(g *Grid) CellID { return g.id(1, 1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.RefreshNeighborhood = tt.refresh
			w, err := NewWorld(opts)
			if err != nil {
				t.Fatalf("NewWorld() failed: %v", err)
			}
			g := w.Grid()
			h := addBox(t, w, "a", geom.V(100, 100), 1, 1, 1, Rigid)
			_ = g.Neighborhood(h)

			g.Enter(g.id(5, 5), h)
			if got, want := g.Neighborhood(h)[0], tt.want(g); got != want {
				t.Errorf("Neighborhood()[0] = %d, want %d", got, want)
			}
			if g.Occupancy(g.id(1, 1)) != 0 || g.Occupancy(g.id(5, 5)) != 1 {
				t.Error("Enter() did not move the body between cells")
			}
		})
	}
}

func TestGridIsEmpty(t *testing.T) {
	w := newTestWorld(t)
	g := w.Grid()
	h := addBox(t, w, "crate", geom.V(10, 10), 1, 1, 1, Rigid)
	id := g.CellAt(geom.V(10, 10))

	if g.IsEmpty(id, map[string]bool{"crate": true}) {
		t.Error("cell with a crate reported empty")
	}
	if !g.IsEmpty(id, map[string]bool{"wall": true}) {
		t.Error("cell without walls reported non-empty")
	}
	_ = w.SetHidden(h, true)
	if !g.IsEmpty(id, map[string]bool{"crate": true}) {
		t.Error("hidden crate should not count")
	}
	if len(g.Nearby(g.id(1, 1))) != 1 {
		t.Error("Nearby() should include the diagonal cell occupant")
	}
}
