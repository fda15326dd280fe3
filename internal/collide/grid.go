package collide

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/polycollide/internal/geom"
)

// CellID indexes a grid cell. NoCell is the absent neighbor at the grid edge
// and the cell of bodies outside the grid.
type CellID int32

// NoCell marks "no cell". Callers treat it as a cell with no occupants.
const NoCell CellID = -1

// Cell is one grid cell. Neighbors are NoCell at the grid boundary.
type Cell struct {
	North, South, East, West CellID

	head int32 // first occupant index, -1 when empty
}

// Grid is a fixed mesh of cells, row 0 at the top (north). Each cell holds
// an intrusive singly linked list of body indices; every body links to the
// next occupant and keeps a back-reference to its cell.
type Grid struct {
	world   *World
	cols    int
	rows    int
	size    float64
	cells   []Cell
	refresh bool
}

func newGrid(w *World, cols, rows int, size float64, refresh bool) *Grid {
	g := &Grid{
		world:   w,
		cols:    cols,
		rows:    rows,
		size:    size,
		cells:   make([]Cell, cols*rows),
		refresh: refresh,
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			g.cells[y*cols+x] = Cell{
				North: g.id(x, y-1),
				South: g.id(x, y+1),
				East:  g.id(x+1, y),
				West:  g.id(x-1, y),
				head:  -1,
			}
		}
	}
	return g
}

// id converts cell coordinates to an ID, NoCell when out of bounds.
func (g *Grid) id(x, y int) CellID {
	if x < 0 || x >= g.cols || y < 0 || y >= g.rows {
		return NoCell
	}
	return CellID(y*g.cols + x)
}

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// CellSize returns the cell edge length in world units.
func (g *Grid) CellSize() float64 { return g.size }

// Cell returns the cell with the given ID. NoCell yields an empty cell whose
// neighbors are all NoCell.
func (g *Grid) Cell(id CellID) Cell {
	if !g.valid(id) {
		return Cell{North: NoCell, South: NoCell, East: NoCell, West: NoCell, head: -1}
	}
	return g.cells[id]
}

// CellAt maps a world point to the cell containing it.
func (g *Grid) CellAt(p cp.Vector) CellID {
	return g.id(int(math.Floor(p.X/g.size)), int(math.Floor(p.Y/g.size)))
}

// Coords returns the column and row of a cell.
func (g *Grid) Coords(id CellID) (x, y int) {
	return int(id) % g.cols, int(id) / g.cols
}

// Bounds returns the world rectangle covered by a cell.
func (g *Grid) Bounds(id CellID) geom.Rect {
	x, y := g.Coords(id)
	min := geom.V(float64(x)*g.size, float64(y)*g.size)
	return geom.Rect{Min: min, Max: min.Add(geom.V(g.size, g.size))}
}

func (g *Grid) valid(id CellID) bool {
	return id >= 0 && int(id) < len(g.cells)
}

// Enter pushes a body to the front of a cell's occupant list and sets its
// back-reference. Moving to a different cell drops the cached neighborhood
// when refreshing is enabled. O(1) plus the Leave of the previous cell.
func (g *Grid) Enter(id CellID, h Handle) {
	e, err := g.world.get(h)
	if err != nil || !g.valid(id) {
		return
	}
	if g.refresh && e.cell != id {
		e.neighborhood = nil
	}
	if e.cell != NoCell {
		g.Leave(h)
	}
	c := &g.cells[id]
	e.next = c.head
	c.head = int32(h.Index)
	e.cell = id
}

// Leave unlinks a body from its cell. O(occupancy).
func (g *Grid) Leave(h Handle) {
	e, err := g.world.get(h)
	if err != nil || !g.valid(e.cell) {
		return
	}
	c := &g.cells[e.cell]
	target := int32(h.Index)
	if c.head == target {
		c.head = e.next
	} else {
		ref := c.head
		for ref != -1 {
			prev := &g.world.entities[ref]
			if prev.next == target {
				prev.next = e.next
				break
			}
			ref = prev.next
		}
	}
	e.next = -1
	e.cell = NoCell
}

// Place moves a body into the cell under its position, or out of the grid.
func (g *Grid) Place(h Handle) {
	e, err := g.world.get(h)
	if err != nil {
		return
	}
	id := g.CellAt(e.Pos)
	if id == e.cell {
		return
	}
	if id == NoCell {
		g.Leave(h)
		if g.refresh {
			e.neighborhood = nil
		}
		return
	}
	g.Enter(id, h)
}

// ForEachOccupant visits the bodies in a cell, most recent entry first,
// until visit returns false.
func (g *Grid) ForEachOccupant(id CellID, visit func(h Handle) bool) {
	if !g.valid(id) {
		return
	}
	ref := g.cells[id].head
	for ref != -1 {
		e, h := g.world.at(ref)
		next := e.next
		if !visit(h) {
			return
		}
		ref = next
	}
}

// IsEmpty reports whether no visible occupant of the cell has one of names.
func (g *Grid) IsEmpty(id CellID, names map[string]bool) bool {
	empty := true
	g.ForEachOccupant(id, func(h Handle) bool {
		e := &g.world.entities[h.Index]
		if e.visible() && names[e.Name] {
			empty = false
		}
		return empty
	})
	return empty
}

// Neighborhood returns the body's cell followed by N, S, E, W, NE, NW, SE,
// SW. Absent neighbors are NoCell. The result is cached on the body; nil is
// returned for hidden bodies and bodies outside the grid.
func (g *Grid) Neighborhood(h Handle) []CellID {
	e, err := g.world.get(h)
	if err != nil || e.Hidden || e.cell == NoCell {
		return nil
	}
	if e.neighborhood != nil {
		return e.neighborhood
	}
	c := g.cells[e.cell]
	north, south := g.Cell(c.North), g.Cell(c.South)
	e.neighborhood = []CellID{
		e.cell,
		c.North,
		c.South,
		c.East,
		c.West,
		north.East,
		north.West,
		south.East,
		south.West,
	}
	return e.neighborhood
}

// Nearby returns every occupant of the 3x3 block around a cell.
func (g *Grid) Nearby(id CellID) []Handle {
	if !g.valid(id) {
		return nil
	}
	c := g.cells[id]
	north, south := g.Cell(c.North), g.Cell(c.South)
	block := []CellID{id, c.North, c.South, c.East, c.West, north.East, north.West, south.East, south.West}

	var out []Handle
	for _, n := range block {
		g.ForEachOccupant(n, func(h Handle) bool {
			out = append(out, h)
			return true
		})
	}
	return out
}

// Occupancy returns the number of bodies in a cell.
func (g *Grid) Occupancy(id CellID) int {
	n := 0
	g.ForEachOccupant(id, func(Handle) bool {
		n++
		return true
	})
	return n
}
