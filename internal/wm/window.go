package wm

import (
	"errors"
	"maps"

	"github.com/1broseidon/deskos/internal/platform"
)

// ErrWindowNotFound is returned by callers that surface a missing window as an
// error. Manager operations themselves report it as a false result.
var ErrWindowNotFound = errors.New("window not found")

// DefaultTitle is used when neither an override nor a registry name exists.
const DefaultTitle = "New Window"

// LaunchParams is an opaque payload handed to the application view. The
// manager stores and forwards it without interpreting any key.
type LaunchParams map[string]string

// Get returns the value for key, or "" when absent.
func (p LaunchParams) Get(key string) string {
	if p == nil {
		return ""
	}
	return p[key]
}

// Clone returns an independent copy.
func (p LaunchParams) Clone() LaunchParams {
	if len(p) == 0 {
		return nil
	}
	return maps.Clone(p)
}

// Window is one open window instance.
type Window struct {
	ID        string         `json:"id"`
	AppID     string         `json:"app_id"`
	Title     string         `json:"title"`
	Minimized bool           `json:"minimized"`
	Maximized bool           `json:"maximized"`
	Z         int            `json:"z"`
	Bounds    platform.Rect  `json:"bounds"`
	Saved     *platform.Rect `json:"saved,omitempty"`
	Params    LaunchParams   `json:"params,omitempty"`
}

func (w Window) clone() Window {
	out := w
	if w.Saved != nil {
		saved := *w.Saved
		out.Saved = &saved
	}
	out.Params = w.Params.Clone()
	return out
}

// ViewMode selects the geometry used for newly opened windows.
type ViewMode string

const (
	ViewDesktop ViewMode = "desktop"
	ViewMobile  ViewMode = "mobile"
)

// Toggle returns the other mode.
func (m ViewMode) Toggle() ViewMode {
	if m == ViewMobile {
		return ViewDesktop
	}
	return ViewMobile
}
