package wm

import "github.com/1broseidon/deskos/internal/platform"

// EventKind names a successful manager mutation.
type EventKind string

const (
	EventOpened    EventKind = "opened"
	EventReopened  EventKind = "reopened"
	EventClosed    EventKind = "closed"
	EventMinimized EventKind = "minimized"
	EventMaximized EventKind = "maximized"
	EventRestored  EventKind = "restored"
	EventFocused   EventKind = "focused"
	EventMoved     EventKind = "moved"
	EventResized   EventKind = "resized"
	EventReset     EventKind = "reset"
)

// Event describes one mutation. Bounds is the window geometry after the
// change; it is zero for closed and reset events.
type Event struct {
	Kind     EventKind
	WindowID string
	AppID    string
	Z        int
	Bounds   platform.Rect
}

// Observer receives events synchronously on the manager's goroutine.
type Observer func(Event)
