// Package movemode is the keyboard alternative to dragging: select a window
// with the arrows, grab it, then move or resize it cell by cell.
package movemode

import (
	"slices"
	"time"

	"github.com/1broseidon/deskos/internal/wm"
)

// DefaultTimeout is how long move mode stays open without a key press.
const DefaultTimeout = 10 * time.Second

// Horizontal steps are wider than vertical ones because terminal cells are
// roughly twice as tall as they are wide.
const (
	stepX = 2
	stepY = 1
)

// Action is what a key does in move mode.
type Action int

const (
	ActionNone Action = iota
	ActionMove
	ActionResize
	ActionConfirm
	ActionCancel
)

// ActionFromKey maps a bubbletea key name to a move mode action. Shifted
// arrows resize.
func ActionFromKey(key string) (Action, Direction) {
	switch key {
	case "up", "k":
		return ActionMove, DirUp
	case "down", "j":
		return ActionMove, DirDown
	case "left", "h":
		return ActionMove, DirLeft
	case "right", "l":
		return ActionMove, DirRight
	case "shift+up", "K":
		return ActionResize, DirUp
	case "shift+down", "J":
		return ActionResize, DirDown
	case "shift+left", "H":
		return ActionResize, DirLeft
	case "shift+right", "L":
		return ActionResize, DirRight
	case "enter", " ":
		return ActionConfirm, 0
	case "esc", "q":
		return ActionCancel, 0
	}
	return ActionNone, 0
}

// Mode drives a window manager from the keyboard. Like the manager, it is
// used from a single goroutine.
type Mode struct {
	state   *State
	lastKey time.Time
	now     func() time.Time
	timeout time.Duration
}

// NewMode returns an inactive move mode.
func NewMode() *Mode {
	return &Mode{state: NewState(), now: time.Now, timeout: DefaultTimeout}
}

// IsActive reports whether move mode is active
func (m *Mode) IsActive() bool {
	return m.state.Phase != PhaseInactive
}

// Phase returns the current phase.
func (m *Mode) Phase() Phase {
	return m.state.Phase
}

// Selected returns the highlighted window id.
func (m *Mode) Selected() string {
	return m.state.Selected()
}

// Enter starts selecting among the visible windows, beginning with the
// frontmost one. It reports false when there is nothing to move.
func (m *Mode) Enter(mgr *wm.Manager) bool {
	visible := mgr.Visible()
	if len(visible) == 0 {
		return false
	}
	ids := make([]string, len(visible))
	for i, w := range visible {
		ids[i] = w.ID
	}
	m.state.Reset()
	m.state.Phase = PhaseSelecting
	m.state.Windows = ids
	m.state.SelectedIndex = len(ids) - 1
	m.touch()
	return true
}

// Exit leaves move mode, keeping any geometry changes.
func (m *Mode) Exit() {
	m.state.Reset()
}

// Expired reports whether the mode has been idle longer than the timeout.
func (m *Mode) Expired() bool {
	return m.IsActive() && m.now().Sub(m.lastKey) >= m.timeout
}

func (m *Mode) touch() {
	m.lastKey = m.now()
}

// Handle applies one action. It reports whether the key was consumed.
func (m *Mode) Handle(mgr *wm.Manager, action Action, dir Direction) bool {
	if !m.IsActive() || action == ActionNone {
		return false
	}
	m.touch()
	switch m.state.Phase {
	case PhaseSelecting:
		m.handleSelecting(mgr, action, dir)
	case PhaseGrabbed:
		m.handleGrabbed(mgr, action, dir)
	}
	return true
}

func (m *Mode) handleSelecting(mgr *wm.Manager, action Action, dir Direction) {
	switch action {
	case ActionMove, ActionResize:
		m.prune(mgr)
		if len(m.state.Windows) == 0 {
			m.Exit()
			return
		}
		m.state.SelectedIndex = NavigateWindow(m.state.SelectedIndex, dir, len(m.state.Windows))
		mgr.Focus(m.state.Selected())
	case ActionConfirm:
		id := m.state.Selected()
		w, ok := mgr.Window(id)
		if !ok {
			m.Exit()
			return
		}
		if w.Maximized || w.Minimized {
			// Maximized windows have no free geometry to change.
			return
		}
		mgr.Focus(id)
		m.state.Original = w.Bounds
		m.state.Phase = PhaseGrabbed
	case ActionCancel:
		m.Exit()
	}
}

func (m *Mode) handleGrabbed(mgr *wm.Manager, action Action, dir Direction) {
	id := m.state.Selected()
	w, ok := mgr.Window(id)
	if !ok {
		m.Exit()
		return
	}
	d := dir.Delta()
	switch action {
	case ActionMove:
		mgr.UpdatePosition(id, w.Bounds.X+d.X*stepX, w.Bounds.Y+d.Y*stepY)
	case ActionResize:
		mgr.UpdateSize(id, w.Bounds.Width+d.X*stepX, w.Bounds.Height+d.Y*stepY)
	case ActionConfirm:
		m.Exit()
	case ActionCancel:
		o := m.state.Original
		mgr.UpdatePosition(id, o.X, o.Y)
		mgr.UpdateSize(id, o.Width, o.Height)
		m.Exit()
	}
}

// prune drops windows closed or minimized since Enter.
func (m *Mode) prune(mgr *wm.Manager) {
	selected := m.state.Selected()
	m.state.Windows = slices.DeleteFunc(m.state.Windows, func(id string) bool {
		w, ok := mgr.Window(id)
		return !ok || w.Minimized
	})
	m.state.SelectedIndex = max(slices.Index(m.state.Windows, selected), 0)
}

// Hint describes the keys for the current phase.
func (m *Mode) Hint() string {
	switch m.state.Phase {
	case PhaseSelecting:
		return "MOVE  ←→ choose window · enter grab · esc done"
	case PhaseGrabbed:
		return "MOVE  arrows move · shift+arrows resize · enter keep · esc revert"
	}
	return ""
}
