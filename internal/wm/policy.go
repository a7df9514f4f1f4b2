package wm

import "github.com/1broseidon/deskos/internal/platform"

// Policy holds the geometry rules applied by the Manager. Units are whatever
// the host renders in; the terminal desktop uses cells.
type Policy struct {
	// TopInset is the height of the menu bar. No window may sit above it.
	TopInset int
	// BottomInset is the height reserved for the dock when maximizing.
	BottomInset int

	MinWidth  int
	MinHeight int

	DefaultWidth  int
	DefaultHeight int

	// New desktop windows open at CascadeOrigin + n*CascadeStep, where n is
	// the number of windows already open.
	CascadeOrigin platform.Point
	CascadeStep   platform.Point

	// Viewports narrower than MobileBreakpoint use mobile geometry.
	MobileBreakpoint    int
	MobileOrigin        platform.Point
	MobileWidthPercent  int
	MobileHeightPercent int

	// BaseZ is the counter value before the first window is opened.
	BaseZ int
}

// DefaultPolicy returns the terminal desktop policy (cells).
func DefaultPolicy() Policy {
	return Policy{
		TopInset:            1,
		BottomInset:         3,
		MinWidth:            24,
		MinHeight:           6,
		DefaultWidth:        64,
		DefaultHeight:       18,
		CascadeOrigin:       platform.Point{X: 4, Y: 2},
		CascadeStep:         platform.Point{X: 3, Y: 1},
		MobileBreakpoint:    80,
		MobileOrigin:        platform.Point{X: 1, Y: 2},
		MobileWidthPercent:  90,
		MobileHeightPercent: 70,
		BaseZ:               10,
	}
}

func (p Policy) clampSize(w, h int) (int, int) {
	return max(w, p.MinWidth), max(h, p.MinHeight)
}

func (p Policy) clampY(y int) int {
	return max(y, p.TopInset)
}

// maximizedBounds is the desktop area between the menu bar and the dock.
func (p Policy) maximizedBounds(viewport platform.Size) platform.Rect {
	w, h := p.clampSize(viewport.Width, viewport.Height-p.TopInset-p.BottomInset)
	return platform.Rect{X: 0, Y: p.TopInset, Width: w, Height: h}
}

// Mobile reports whether new windows use mobile geometry.
func (p Policy) Mobile(mode ViewMode, viewport platform.Size) bool {
	return mode == ViewMobile || viewport.Width < p.MobileBreakpoint
}

func (p Policy) initialBounds(viewport platform.Size, mode ViewMode, open int) platform.Rect {
	var r platform.Rect
	if p.Mobile(mode, viewport) {
		r = platform.Rect{
			X:      p.MobileOrigin.X,
			Y:      p.MobileOrigin.Y,
			Width:  viewport.Width * p.MobileWidthPercent / 100,
			Height: viewport.Height * p.MobileHeightPercent / 100,
		}
	} else {
		origin := p.CascadeOrigin.Add(p.CascadeStep.Scale(open))
		r = platform.Rect{X: origin.X, Y: origin.Y, Width: p.DefaultWidth, Height: p.DefaultHeight}
	}
	r.Width, r.Height = p.clampSize(r.Width, r.Height)
	r.Y = p.clampY(r.Y)
	return r
}
