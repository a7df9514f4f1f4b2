package movemode

import "github.com/1broseidon/deskos/internal/platform"

// Phase represents the current phase of move mode
type Phase int

const (
	// PhaseInactive means move mode is not active
	PhaseInactive Phase = iota
	// PhaseSelecting means the user is choosing which window to move
	PhaseSelecting
	// PhaseGrabbed means a window is grabbed and arrows change its geometry
	PhaseGrabbed
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseInactive:
		return "inactive"
	case PhaseSelecting:
		return "selecting"
	case PhaseGrabbed:
		return "grabbed"
	default:
		return "unknown"
	}
}

// Direction represents an arrow key direction
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Delta returns the unit offset for the direction.
func (d Direction) Delta() platform.Point {
	switch d {
	case DirUp:
		return platform.Point{Y: -1}
	case DirDown:
		return platform.Point{Y: 1}
	case DirLeft:
		return platform.Point{X: -1}
	case DirRight:
		return platform.Point{X: 1}
	}
	return platform.Point{}
}

// State holds the current move mode state
type State struct {
	Phase         Phase
	SelectedIndex int      // Index of the highlighted window in Windows
	Windows       []string // Visible window ids, back to front
	// Original is the grabbed window's geometry when it was grabbed.
	Original platform.Rect
}

// NewState creates a new inactive state
func NewState() *State {
	return &State{Phase: PhaseInactive}
}

// Reset resets the state to inactive
func (s *State) Reset() {
	*s = State{Phase: PhaseInactive}
}

// Selected returns the highlighted window id, or "" if none
func (s *State) Selected() string {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Windows) {
		return ""
	}
	return s.Windows[s.SelectedIndex]
}

// NavigateWindow moves the selection: Up/Left = previous, Down/Right = next,
// wrapping at both ends.
func NavigateWindow(currentIdx int, dir Direction, count int) int {
	if count <= 1 {
		return 0
	}
	switch dir {
	case DirUp, DirLeft:
		return (currentIdx - 1 + count) % count
	case DirDown, DirRight:
		return (currentIdx + 1) % count
	}
	return currentIdx
}
