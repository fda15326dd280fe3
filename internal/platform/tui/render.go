package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/polycollide/internal/collide"
	"github.com/vovakirdan/polycollide/internal/geom"
)

// colorStyles maps Color to lipgloss styles.
var colorStyles = map[Color]lipgloss.Style{
	ColorDefault:   lipgloss.NewStyle(),
	ColorRigid:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	ColorKinematic: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	ColorSensor:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	ColorCollided:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	ColorContact:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	ColorGrid:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
}

// Viewport maps world coordinates onto canvas cells. A cell covers Scale
// world units horizontally and twice that vertically.
type Viewport struct {
	Origin cp.Vector // World point at the top-left cell
	Scale  float64
}

// ToWorld returns the world point at the center of a cell.
func (v Viewport) ToWorld(x, y int) cp.Vector {
	return cp.Vector{
		X: v.Origin.X + (float64(x)+0.5)*v.Scale,
		Y: v.Origin.Y + (float64(y)+0.5)*v.Scale*2,
	}
}

// ToCell returns the cell containing a world point.
func (v Viewport) ToCell(p cp.Vector) (int, int) {
	return int(math.Floor((p.X - v.Origin.X) / v.Scale)), int(math.Floor((p.Y - v.Origin.Y) / (v.Scale * 2)))
}

// Fit returns a viewport showing bounds on a width x height canvas.
func Fit(bounds geom.Rect, width, height int) Viewport {
	if width <= 0 || height <= 0 {
		return Viewport{Origin: bounds.Min, Scale: 1}
	}
	b := bounds.Expand(math.Max(bounds.Width(), bounds.Height()) * 0.05)
	scale := math.Max(b.Width()/float64(width), b.Height()/float64(height*2))
	if scale <= 0 {
		scale = 1
	}
	center := b.Center()
	return Viewport{
		Origin: cp.Vector{
			X: center.X - scale*float64(width)/2,
			Y: center.Y - scale*float64(height),
		},
		Scale: scale,
	}
}

// WorldBounds returns the union of every visible body's bounds.
func WorldBounds(w *collide.World) geom.Rect {
	var out geom.Rect
	first := true
	w.Each(func(h collide.Handle) {
		poly, err := w.Polygon(h)
		if err != nil {
			return
		}
		b := poly.Bounds()
		if first {
			out, first = b, false
			return
		}
		out = geom.Rect{
			Min: cp.Vector{X: math.Min(out.Min.X, b.Min.X), Y: math.Min(out.Min.Y, b.Min.Y)},
			Max: cp.Vector{X: math.Max(out.Max.X, b.Max.X), Y: math.Max(out.Max.Y, b.Max.Y)},
		}
	})
	return out
}

// Rasterize draws every body of w whose polygon contains a cell center, then
// marks the contact points.
func Rasterize(dst *Canvas, w *collide.World, view Viewport, contacts []cp.Vector) {
	w.Each(func(h collide.Handle) {
		b, err := w.Body(h)
		if err != nil || b.Hidden {
			return
		}
		poly, err := w.Polygon(h)
		if err != nil {
			return
		}
		r, color := bodyGlyph(b, w.Collided(h))

		bounds := poly.Bounds()
		x0, y0 := view.ToCell(bounds.Min)
		x1, y1 := view.ToCell(bounds.Max)
		x0, y0 = max(x0, 0), max(y0, 0)
		x1, y1 = min(x1, dst.Width()-1), min(y1, dst.Height()-1)
		drawn := false
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if w.TestPoint(h, view.ToWorld(x, y)) {
					dst.Set(x, y, r, color)
					drawn = true
				}
			}
		}
		// Bodies smaller than a cell still get one glyph.
		if !drawn {
			x, y := view.ToCell(b.Pos)
			dst.Set(x, y, r, color)
		}
	})

	for _, p := range contacts {
		x, y := view.ToCell(p)
		dst.Set(x, y, '*', ColorContact)
	}
}

func bodyGlyph(b collide.Body, collided bool) (rune, Color) {
	switch b.Response {
	case collide.Sensor:
		return '░', ColorSensor
	case collide.Kinematic:
		return '▓', ColorKinematic
	case collide.Rigid:
		if collided {
			return '█', ColorCollided
		}
		return '█', ColorRigid
	default:
		return '?', ColorDefault
	}
}

// RenderCanvas converts a Canvas to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderCanvas(c *Canvas) string {
	var sb strings.Builder
	sb.Grow(c.Width()*c.Height()*2 + c.Height())

	for y := range c.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < c.Width() {
			startColor := c.Get(x, y).Color

			var run strings.Builder
			for x < c.Width() {
				cell := c.Get(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
