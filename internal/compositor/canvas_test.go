package compositor

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/deskos/internal/platform"
	"github.com/1broseidon/deskos/internal/theme"
	"github.com/1broseidon/deskos/internal/wm"
)

func TestCanvasTextClipsToLimit(t *testing.T) {
	c := NewCanvas(10, 1, StyleDesktop)
	n := c.Text(2, 0, "hello world", StyleContent, 5)
	if n != 5 {
		t.Fatalf("Text wrote %d cells, want 5", n)
	}
	if got := c.Row(0); got != "  hello   " {
		t.Fatalf("Row = %q", got)
	}
	if _, style := c.Cell(2, 0); style != StyleContent {
		t.Fatalf("style = %d, want content", style)
	}
}

func TestCanvasWideRunes(t *testing.T) {
	c := NewCanvas(6, 1, StyleDesktop)
	c.Text(0, 0, "🚀ab", StyleContent, 6)
	if got := c.Row(0); got != "🚀ab  " {
		t.Fatalf("Row = %q", got)
	}

	// Overwriting the right half of the rocket blanks its left half.
	c.Set(1, 0, 'x', StyleContent)
	if got := c.Row(0); got != " xab  " {
		t.Fatalf("after overwrite Row = %q", got)
	}

	// A wide rune in the last column does not fit.
	c.Set(5, 0, '🚀', StyleContent)
	if got := c.Row(0); got != " xab  " {
		t.Fatalf("clipped wide rune Row = %q", got)
	}
}

func TestCanvasIgnoresOutOfBounds(t *testing.T) {
	c := NewCanvas(3, 2, StyleDesktop)
	c.Set(-1, 0, 'x', StyleContent)
	c.Set(0, 5, 'x', StyleContent)
	c.Fill(platform.Rect{X: 2, Y: 1, Width: 10, Height: 10}, '#', StyleContent)
	if c.Row(0) != "   " || c.Row(1) != "  #" {
		t.Fatalf("rows = %q %q", c.Row(0), c.Row(1))
	}
}

func TestCanvasRenderGroupsRuns(t *testing.T) {
	c := NewCanvas(4, 2, StyleDesktop)
	c.Text(0, 1, "ab", StyleContent, 2)
	styles := make([]lipgloss.Style, styleCount)
	for i := range styles {
		styles[i] = lipgloss.NewStyle()
	}
	out := c.Render(styles)
	if out != "    \nab  " {
		t.Fatalf("Render = %q", out)
	}
}

func TestDrawWindowFrame(t *testing.T) {
	c := NewCanvas(30, 8, StyleDesktop)
	w := wm.Window{ID: "w", Title: "Notes", Bounds: platform.Rect{X: 1, Y: 1, Width: 26, Height: 5}}
	DrawWindow(c, Surface{Window: w, Icon: "N", Lines: []string{"first line", "second", "third", "dropped"}, Focused: true})

	top := c.Row(1)
	if !strings.HasPrefix(top, " ╭─●─●─●─ N Notes ") {
		t.Fatalf("title row = %q", top)
	}
	if r, style := c.Cell(1+closeColumn, 1); r != controlGlyph || style != StyleClose {
		t.Fatalf("close control = %q/%d", r, style)
	}
	if got := c.Row(2); !strings.HasPrefix(got, " │first line") {
		t.Fatalf("content row = %q", got)
	}
	if strings.Contains(strings.Join([]string{c.Row(2), c.Row(3), c.Row(4), c.Row(5)}, "\n"), "dropped") {
		t.Fatal("content beyond the frame height must be clipped")
	}
	if r, _ := c.Cell(26, 5); r != '◢' {
		t.Fatalf("resize handle = %q", r)
	}
	if _, style := c.Cell(0, 1); style != StyleDesktop {
		t.Fatal("frame drew outside its bounds")
	}
}

func TestDrawWindowMaximizedHasNoHandle(t *testing.T) {
	c := NewCanvas(30, 8, StyleDesktop)
	w := wm.Window{Title: "x", Maximized: true, Bounds: platform.Rect{X: 0, Y: 0, Width: 30, Height: 8}}
	DrawWindow(c, Surface{Window: w})
	if r, _ := c.Cell(29, 7); r != '╯' {
		t.Fatalf("corner = %q, want ╯", r)
	}
}

func TestStylesCoverEveryID(t *testing.T) {
	for _, name := range []theme.Name{theme.Dark, theme.Light} {
		if got := len(Styles(theme.For(name))); got != int(styleCount) {
			t.Fatalf("%s: %d styles, want %d", name, got, styleCount)
		}
	}
}
