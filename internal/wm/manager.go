// Package wm implements the desktop window manager: window lifecycle,
// stacking order and geometry constraints.
//
// A Manager is not safe for concurrent use. The desktop owns it from a single
// goroutine and linearizes every request (input events, IPC commands, timers)
// through that goroutine.
package wm

import (
	"slices"

	"github.com/google/uuid"

	"github.com/1broseidon/deskos/internal/platform"
)

// Manager owns the open windows and the stacking counter.
type Manager struct {
	policy    Policy
	viewport  platform.Size
	mode      ViewMode
	windows   []Window
	z         int
	activeApp string

	newID     func() string
	titleOf   func(appID string) (string, bool)
	observers []Observer
}

// Option configures a Manager.
type Option func(*Manager)

// WithViewport sets the initial viewport size.
func WithViewport(width, height int) Option {
	return func(m *Manager) {
		m.viewport = platform.Size{Width: width, Height: height}
	}
}

// WithViewMode sets the initial view mode.
func WithViewMode(mode ViewMode) Option {
	return func(m *Manager) {
		m.mode = mode
	}
}

// WithIDGenerator replaces the UUID window id generator.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		m.newID = fn
	}
}

// WithTitles supplies the default title for an application id, normally the
// registry display name.
func WithTitles(fn func(appID string) (string, bool)) Option {
	return func(m *Manager) {
		m.titleOf = fn
	}
}

// WithObserver registers fn to receive every mutation event.
func WithObserver(fn Observer) Option {
	return func(m *Manager) {
		m.observers = append(m.observers, fn)
	}
}

// NewManager creates an empty desktop.
func NewManager(policy Policy, opts ...Option) *Manager {
	m := &Manager{
		policy:   policy,
		viewport: platform.Size{Width: 120, Height: 40},
		mode:     ViewDesktop,
		z:        policy.BaseZ,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Policy returns the geometry policy.
func (m *Manager) Policy() Policy {
	return m.policy
}

// Viewport returns the current viewport size.
func (m *Manager) Viewport() platform.Size {
	return m.viewport
}

// ViewMode returns the current view mode.
func (m *Manager) ViewMode() ViewMode {
	return m.mode
}

// SetViewMode changes the geometry used for windows opened afterwards.
func (m *Manager) SetViewMode(mode ViewMode) {
	m.mode = mode
}

// SetViewport records a new viewport size and refits maximized windows to
// the new desktop area.
func (m *Manager) SetViewport(width, height int) {
	m.viewport = platform.Size{Width: width, Height: height}
	full := m.policy.maximizedBounds(m.viewport)
	for i := range m.windows {
		if m.windows[i].Maximized {
			m.windows[i].Bounds = full
		}
	}
}

// ActiveApp returns the application id of the active window, or "" when no
// window is active.
func (m *Manager) ActiveApp() string {
	return m.activeApp
}

// Windows returns a copy of every open window in creation order.
func (m *Manager) Windows() []Window {
	out := make([]Window, len(m.windows))
	for i, w := range m.windows {
		out[i] = w.clone()
	}
	return out
}

// Window returns a copy of the window with the given id.
func (m *Manager) Window(id string) (Window, bool) {
	if i := m.index(id); i >= 0 {
		return m.windows[i].clone(), true
	}
	return Window{}, false
}

// Len returns the number of open windows.
func (m *Manager) Len() int {
	return len(m.windows)
}

// Visible returns non-minimized windows in ascending z order, i.e. the order
// in which they are drawn.
func (m *Manager) Visible() []Window {
	var out []Window
	for _, w := range m.windows {
		if !w.Minimized {
			out = append(out, w.clone())
		}
	}
	slices.SortFunc(out, func(a, b Window) int { return a.Z - b.Z })
	return out
}

// Top returns the frontmost visible window.
func (m *Manager) Top() (Window, bool) {
	visible := m.Visible()
	if len(visible) == 0 {
		return Window{}, false
	}
	return visible[len(visible)-1], true
}

// MinimizedApps returns the application ids of minimized windows.
func (m *Manager) MinimizedApps() []string {
	var out []string
	for _, w := range m.windows {
		if w.Minimized {
			out = append(out, w.AppID)
		}
	}
	return out
}

// Open raises the window for appID, creating it when none exists. It
// returns the window id and whether a new window was created. A non-empty
// title only applies to new windows; non-empty params replace the stored
// params of an existing window.
func (m *Manager) Open(appID, title string, params LaunchParams) (string, bool) {
	if i := m.indexApp(appID); i >= 0 {
		w := &m.windows[i]
		w.Minimized = false
		w.Z = m.nextZ()
		if len(params) > 0 {
			w.Params = params.Clone()
		}
		m.activeApp = appID
		m.emit(EventReopened, *w)
		return w.ID, false
	}

	w := Window{
		ID:     m.newID(),
		AppID:  appID,
		Title:  m.resolveTitle(appID, title),
		Bounds: m.policy.initialBounds(m.viewport, m.mode, len(m.windows)),
		Params: params.Clone(),
		Z:      m.nextZ(),
	}
	m.windows = append(m.windows, w)
	m.activeApp = appID
	m.emit(EventOpened, w)
	return w.ID, true
}

// Close removes a window. Closing the active window leaves no active app.
func (m *Manager) Close(id string) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	w := m.windows[i]
	m.windows = slices.Delete(m.windows, i, i+1)
	if m.activeApp == w.AppID {
		m.activeApp = ""
	}
	m.emit(EventClosed, Window{ID: w.ID, AppID: w.AppID, Z: w.Z})
	return true
}

// Minimize hides a window without touching its geometry or maximized state.
func (m *Manager) Minimize(id string) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	m.windows[i].Minimized = true
	m.emit(EventMinimized, m.windows[i])
	return true
}

// ToggleMaximize fills the desktop area with a window, or restores the
// geometry saved when it was maximized.
func (m *Manager) ToggleMaximize(id string) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	w := &m.windows[i]
	if w.Maximized {
		if w.Saved != nil {
			w.Bounds = *w.Saved
		}
		w.Saved = nil
		w.Maximized = false
		m.emit(EventRestored, *w)
		return true
	}
	saved := w.Bounds
	w.Saved = &saved
	w.Maximized = true
	w.Bounds = m.policy.maximizedBounds(m.viewport)
	m.emit(EventMaximized, *w)
	return true
}

// Focus raises a window above all others and restores it if minimized.
func (m *Manager) Focus(id string) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	w := &m.windows[i]
	w.Z = m.nextZ()
	w.Minimized = false
	m.activeApp = w.AppID
	m.emit(EventFocused, *w)
	return true
}

// UpdatePosition moves a window. x is stored as given; y never goes above
// the menu bar.
func (m *Manager) UpdatePosition(id string, x, y int) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	w := &m.windows[i]
	w.Bounds.X = x
	w.Bounds.Y = m.policy.clampY(y)
	m.emit(EventMoved, *w)
	return true
}

// UpdateSize resizes a window, clamping to the minimum size.
func (m *Manager) UpdateSize(id string, width, height int) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	w := &m.windows[i]
	w.Bounds.Width, w.Bounds.Height = m.policy.clampSize(width, height)
	m.emit(EventResized, *w)
	return true
}

// Reset closes every window and clears the active app. The stacking counter
// keeps increasing across resets.
func (m *Manager) Reset() {
	m.windows = nil
	m.activeApp = ""
	m.emit(EventReset, Window{Z: m.z})
}

func (m *Manager) nextZ() int {
	m.z++
	return m.z
}

func (m *Manager) resolveTitle(appID, override string) string {
	if override != "" {
		return override
	}
	if m.titleOf != nil {
		if name, ok := m.titleOf(appID); ok && name != "" {
			return name
		}
	}
	return DefaultTitle
}

func (m *Manager) index(id string) int {
	return slices.IndexFunc(m.windows, func(w Window) bool { return w.ID == id })
}

func (m *Manager) indexApp(appID string) int {
	return slices.IndexFunc(m.windows, func(w Window) bool { return w.AppID == appID })
}

func (m *Manager) emit(kind EventKind, w Window) {
	if len(m.observers) == 0 {
		return
	}
	ev := Event{Kind: kind, WindowID: w.ID, AppID: w.AppID, Z: w.Z, Bounds: w.Bounds}
	for _, fn := range m.observers {
		fn(ev)
	}
}
