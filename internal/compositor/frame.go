package compositor

import (
	"github.com/mattn/go-runewidth"

	"github.com/1broseidon/deskos/internal/platform"
	"github.com/1broseidon/deskos/internal/wm"
)

// Zone identifies a region of a window frame.
type Zone int

const (
	ZoneNone Zone = iota
	ZoneTitleBar
	ZoneClose
	ZoneMaximize
	ZoneMinimize
	ZoneResize
	ZoneBorder
	ZoneContent
)

func (z Zone) String() string {
	switch z {
	case ZoneTitleBar:
		return "titlebar"
	case ZoneClose:
		return "close"
	case ZoneMaximize:
		return "maximize"
	case ZoneMinimize:
		return "minimize"
	case ZoneResize:
		return "resize"
	case ZoneBorder:
		return "border"
	case ZoneContent:
		return "content"
	default:
		return "none"
	}
}

// Control reports whether the zone is one of the window buttons.
func (z Zone) Control() bool {
	return z == ZoneClose || z == ZoneMaximize || z == ZoneMinimize
}

// Column offsets of the title bar controls, left to right.
const (
	closeColumn    = 2
	maximizeColumn = 4
	minimizeColumn = 6
	titleColumn    = 9
)

const controlGlyph = '●'

// ContentRect is the interior of a window frame.
func ContentRect(w wm.Window) platform.Rect {
	return w.Bounds.Inset(1)
}

// ZoneAt classifies p against the frame of w. p must lie inside w.Bounds.
func ZoneAt(w wm.Window, p platform.Point) Zone {
	if !w.Bounds.Contains(p) {
		return ZoneNone
	}
	d := p.Sub(w.Bounds.Origin())
	last := platform.Point{X: w.Bounds.Width - 1, Y: w.Bounds.Height - 1}
	switch {
	case d.Y == 0:
		switch d.X {
		case closeColumn:
			return ZoneClose
		case maximizeColumn:
			return ZoneMaximize
		case minimizeColumn:
			return ZoneMinimize
		}
		return ZoneTitleBar
	case d == last:
		if w.Maximized {
			return ZoneBorder
		}
		return ZoneResize
	case d.X == 0 || d.X == last.X || d.Y == last.Y:
		return ZoneBorder
	}
	return ZoneContent
}

// Surface is one window ready to draw.
type Surface struct {
	Window  wm.Window
	Icon    string
	Lines   []string
	Focused bool
}

// DrawWindow draws the frame and content of s onto c.
func DrawWindow(c *Canvas, s Surface) {
	r := s.Window.Bounds
	if r.Width < 2 || r.Height < 2 {
		return
	}
	frame, title := StyleFrame, StyleTitle
	if s.Focused {
		frame, title = StyleFrameFocused, StyleTitleFocused
	}

	c.Fill(ContentRect(s.Window), ' ', StyleContent)

	top, bottom := r.Y, r.Bottom()-1
	left, right := r.X, r.Right()-1
	for x := left + 1; x < right; x++ {
		c.Set(x, top, '─', frame)
		c.Set(x, bottom, '─', frame)
	}
	for y := top + 1; y < bottom; y++ {
		c.Set(left, y, '│', frame)
		c.Set(right, y, '│', frame)
	}
	c.Set(left, top, '╭', frame)
	c.Set(right, top, '╮', frame)
	c.Set(left, bottom, '╰', frame)
	if s.Window.Maximized {
		c.Set(right, bottom, '╯', frame)
	} else {
		c.Set(right, bottom, '◢', StyleResize)
	}

	c.Set(left+closeColumn, top, controlGlyph, StyleClose)
	c.Set(left+maximizeColumn, top, controlGlyph, StyleMaximize)
	c.Set(left+minimizeColumn, top, controlGlyph, StyleMinimize)

	label := s.Window.Title
	if s.Icon != "" {
		label = s.Icon + " " + label
	}
	room := r.Width - titleColumn - 2
	if room > 2 {
		label = " " + runewidth.Truncate(label, room-2, "…") + " "
		c.Text(left+titleColumn-1, top, label, title, room)
	}

	content := ContentRect(s.Window)
	for i, line := range s.Lines {
		if i >= content.Height {
			break
		}
		c.Text(content.X, content.Y+i, line, StyleContent, content.Width)
	}
}
