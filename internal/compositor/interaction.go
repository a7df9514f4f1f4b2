package compositor

import (
	"slices"

	"github.com/1broseidon/deskos/internal/platform"
	"github.com/1broseidon/deskos/internal/wm"
)

// Phase is the pointer capture state.
type Phase int

const (
	// PhaseIdle means no drag or resize is in progress.
	PhaseIdle Phase = iota
	// PhaseDragging means a title bar press is moving a window.
	PhaseDragging
	// PhaseResizing means a corner press is resizing a window.
	PhaseResizing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// Hit is the result of a hit test.
type Hit struct {
	WindowID string
	Zone     Zone
}

// HitTest returns the frontmost visible window under p.
func HitTest(windows []wm.Window, p platform.Point) (Hit, bool) {
	ordered := slices.Clone(windows)
	slices.SortFunc(ordered, func(a, b wm.Window) int { return b.Z - a.Z })
	for _, w := range ordered {
		if w.Minimized || !w.Bounds.Contains(p) {
			continue
		}
		return Hit{WindowID: w.ID, Zone: ZoneAt(w, p)}, true
	}
	return Hit{}, false
}

// CanDrag reports whether w accepts drag and resize.
func CanDrag(w wm.Window) bool {
	return !w.Maximized && !w.Minimized
}

// Target is the geometry requested by an in-progress interaction.
type Target struct {
	Phase    Phase
	WindowID string
	Position platform.Point
	Size     platform.Size
}

// Interaction is the drag/resize state machine:
// Idle -> Dragging|Resizing -> Idle. It holds no reference to input events.
type Interaction struct {
	Phase    Phase
	WindowID string

	offset    platform.Point
	start     platform.Point
	startSize platform.Size
}

// NewInteraction returns an idle interaction.
func NewInteraction() *Interaction {
	return &Interaction{Phase: PhaseIdle}
}

// Active reports whether a drag or resize is in progress.
func (in *Interaction) Active() bool {
	return in.Phase != PhaseIdle
}

// BeginDrag captures the pointer offset from the window origin.
func (in *Interaction) BeginDrag(id string, pointer, origin platform.Point) {
	in.Phase = PhaseDragging
	in.WindowID = id
	in.offset = pointer.Sub(origin)
}

// BeginResize captures the starting pointer and window size.
func (in *Interaction) BeginResize(id string, pointer platform.Point, size platform.Size) {
	in.Phase = PhaseResizing
	in.WindowID = id
	in.start = pointer
	in.startSize = size
}

// Update computes the geometry for the pointer's new position.
func (in *Interaction) Update(pointer platform.Point) (Target, bool) {
	switch in.Phase {
	case PhaseDragging:
		return Target{Phase: in.Phase, WindowID: in.WindowID, Position: pointer.Sub(in.offset)}, true
	case PhaseResizing:
		d := pointer.Sub(in.start)
		return Target{
			Phase:    in.Phase,
			WindowID: in.WindowID,
			Size:     platform.Size{Width: in.startSize.Width + d.X, Height: in.startSize.Height + d.Y},
		}, true
	}
	return Target{}, false
}

// End returns to idle. It reports whether an interaction was in progress.
func (in *Interaction) End() bool {
	was := in.Active()
	*in = Interaction{Phase: PhaseIdle}
	return was
}

// Apply hands a target to the window manager.
func Apply(m *wm.Manager, t Target) bool {
	switch t.Phase {
	case PhaseDragging:
		return m.UpdatePosition(t.WindowID, t.Position.X, t.Position.Y)
	case PhaseResizing:
		return m.UpdateSize(t.WindowID, t.Size.Width, t.Size.Height)
	}
	return false
}

// Press handles a primary-button press at p. Controls act without focusing
// or starting a drag; any other part of a frame focuses the window first,
// then the title bar starts a drag and the corner starts a resize.
func (in *Interaction) Press(m *wm.Manager, p platform.Point) (Hit, bool) {
	hit, ok := HitTest(m.Visible(), p)
	if !ok {
		return Hit{}, false
	}
	switch hit.Zone {
	case ZoneClose:
		m.Close(hit.WindowID)
		return hit, true
	case ZoneMaximize:
		m.ToggleMaximize(hit.WindowID)
		return hit, true
	case ZoneMinimize:
		m.Minimize(hit.WindowID)
		return hit, true
	}

	m.Focus(hit.WindowID)
	w, found := m.Window(hit.WindowID)
	if !found || !CanDrag(w) {
		return hit, true
	}
	switch hit.Zone {
	case ZoneTitleBar:
		in.BeginDrag(w.ID, p, w.Bounds.Origin())
	case ZoneResize:
		in.BeginResize(w.ID, p, w.Bounds.Size())
	}
	return hit, true
}

// Motion applies pointer movement to the captured window.
func (in *Interaction) Motion(m *wm.Manager, p platform.Point) bool {
	t, ok := in.Update(p)
	if !ok {
		return false
	}
	if !Apply(m, t) {
		in.End()
		return false
	}
	return true
}

// Release ends any drag or resize.
func (in *Interaction) Release() bool {
	return in.End()
}
