package tui

import (
	"strings"
	"testing"
)

func TestCanvasSetClips(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(-1, 0, 'x', ColorRigid)
	c.Set(4, 0, 'x', ColorRigid)
	c.Set(0, 2, 'x', ColorRigid)
	c.Set(1, 1, 'x', ColorRigid)

	if got, want := c.String(), "    \n x  "; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if cell := c.Get(9, 9); cell.Rune != ' ' {
		t.Errorf("Get() out of bounds = %q, want blank", cell.Rune)
	}
}

func TestCanvasDrawText(t *testing.T) {
	c := NewCanvas(5, 1)
	c.DrawText(2, 0, "abcdef", ColorDefault)

	if got, want := c.String(), "  abc"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCanvasResize(t *testing.T) {
	c := NewCanvas(3, 3)
	c.Set(0, 0, 'x', ColorDefault)
	c.Resize(2, 1)

	if c.Width() != 2 || c.Height() != 1 {
		t.Fatalf("size = %dx%d, want 2x1", c.Width(), c.Height())
	}
	if strings.ContainsRune(c.String(), 'x') {
		t.Error("Resize() kept old content")
	}

	c.Resize(-1, -1)
	if c.Width() != 0 || c.Height() != 0 {
		t.Errorf("negative resize = %dx%d, want 0x0", c.Width(), c.Height())
	}
}

func TestRenderCanvasKeepsText(t *testing.T) {
	c := NewCanvas(6, 2)
	c.DrawText(0, 0, "ab", ColorRigid)
	c.DrawText(2, 0, "cd", ColorSensor)
	c.DrawText(0, 1, "ef", ColorContact)

	out := RenderCanvas(c)
	for _, want := range []string{"ab", "cd", "ef"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderCanvas() missing %q in %q", want, out)
		}
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("RenderCanvas() has %d newlines, want 1", got)
	}
}
