// Package compositor draws window frames onto a cell canvas and turns
// pointer input into window manager operations.
package compositor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/1broseidon/deskos/internal/platform"
	"github.com/1broseidon/deskos/internal/theme"
)

// StyleID indexes the style table a canvas is rendered with.
type StyleID int

const (
	StyleDesktop StyleID = iota
	StyleMenuBar
	StyleMenuBadge
	StyleMenuActive
	StyleMenuItem
	StyleDock
	StyleDockItem
	StyleDockRunning
	StyleDockMinimized
	StyleFrame
	StyleFrameFocused
	StyleTitle
	StyleTitleFocused
	StyleContent
	StyleClose
	StyleMaximize
	StyleMinimize
	StyleResize
	styleCount
)

// Styles builds the style table for a palette.
func Styles(p theme.Palette) []lipgloss.Style {
	s := make([]lipgloss.Style, styleCount)
	s[StyleDesktop] = p.Desktop
	s[StyleMenuBar] = p.MenuBar
	s[StyleMenuBadge] = p.MenuBadge
	s[StyleMenuActive] = p.MenuActive
	s[StyleMenuItem] = p.MenuItem
	s[StyleDock] = p.Dock
	s[StyleDockItem] = p.DockItem
	s[StyleDockRunning] = p.DockRunning
	s[StyleDockMinimized] = p.DockMinimized
	s[StyleFrame] = p.Frame
	s[StyleFrameFocused] = p.FrameFocused
	s[StyleTitle] = p.Title
	s[StyleTitleFocused] = p.TitleFocused
	s[StyleContent] = p.Content
	s[StyleClose] = p.Close
	s[StyleMaximize] = p.Maximize
	s[StyleMinimize] = p.Minimize
	s[StyleResize] = p.Resize
	return s
}

type cell struct {
	r     rune
	style StyleID
	// cont marks the right half of a double-width rune.
	cont bool
}

// Canvas is a grid of styled cells that later draws overwrite.
type Canvas struct {
	width  int
	height int
	cells  [][]cell
}

// NewCanvas returns a canvas filled with blanks in the given style.
func NewCanvas(width, height int, fill StyleID) *Canvas {
	c := &Canvas{width: max(width, 0), height: max(height, 0)}
	c.cells = make([][]cell, c.height)
	for y := range c.cells {
		row := make([]cell, c.width)
		for x := range row {
			row[x] = cell{r: ' ', style: fill}
		}
		c.cells[y] = row
	}
	return c
}

// Bounds returns the canvas area.
func (c *Canvas) Bounds() platform.Rect {
	return platform.Rect{Width: c.width, Height: c.height}
}

// Set writes one rune. Cells outside the canvas are ignored. A double-width
// rune that would not fit is replaced by a blank.
func (c *Canvas) Set(x, y int, r rune, style StyleID) int {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return 0
	}
	if y < 0 || y >= c.height || x < 0 || x >= c.width {
		return w
	}
	c.clear(x, y)
	if w == 2 {
		if x+1 >= c.width {
			c.cells[y][x] = cell{r: ' ', style: style}
			return w
		}
		c.clear(x+1, y)
		c.cells[y][x+1] = cell{style: style, cont: true}
	}
	c.cells[y][x] = cell{r: r, style: style}
	return w
}

// clear breaks up any wide rune that overlaps (x, y).
func (c *Canvas) clear(x, y int) {
	row := c.cells[y]
	if row[x].cont && x > 0 {
		row[x-1] = cell{r: ' ', style: row[x-1].style}
	}
	if !row[x].cont && x+1 < c.width && row[x+1].cont {
		row[x+1] = cell{r: ' ', style: row[x+1].style}
	}
	row[x].cont = false
}

// Text writes s starting at (x, y), using at most limit cells. It returns the
// number of cells written.
func (c *Canvas) Text(x, y int, s string, style StyleID, limit int) int {
	used := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if used+w > limit {
			break
		}
		c.Set(x+used, y, r, style)
		used += w
	}
	return used
}

// Fill paints a rect with r.
func (c *Canvas) Fill(rect platform.Rect, r rune, style StyleID) {
	area := rect.Intersect(c.Bounds())
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			c.Set(x, y, r, style)
		}
	}
}

// Cell returns the rune and style at (x, y). The right half of a wide rune
// reports the rune with zero value.
func (c *Canvas) Cell(x, y int) (rune, StyleID) {
	if y < 0 || y >= c.height || x < 0 || x >= c.width {
		return 0, 0
	}
	cl := c.cells[y][x]
	return cl.r, cl.style
}

// Row returns the plain text of a row.
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= c.height {
		return ""
	}
	var b strings.Builder
	for _, cl := range c.cells[y] {
		if !cl.cont {
			b.WriteRune(cl.r)
		}
	}
	return b.String()
}

// Render styles each run of equally styled cells and joins the rows.
func (c *Canvas) Render(styles []lipgloss.Style) string {
	var out strings.Builder
	var run strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			out.WriteByte('\n')
		}
		current := StyleID(-1)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if int(current) >= 0 && int(current) < len(styles) {
				out.WriteString(styles[current].Render(run.String()))
			} else {
				out.WriteString(run.String())
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.cont {
				continue
			}
			if cl.style != current {
				flush()
				current = cl.style
			}
			run.WriteRune(cl.r)
		}
		flush()
	}
	return out.String()
}
