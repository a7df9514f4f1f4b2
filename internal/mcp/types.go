package mcp

import (
	"github.com/1broseidon/deskos/internal/registry"
	"github.com/1broseidon/deskos/internal/wm"
)

// NoInput is the input for tools without arguments.
type NoInput struct{}

// ListAppsOutput is the output for the list_apps tool.
type ListAppsOutput struct {
	Apps []registry.App `json:"apps"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows   []wm.Window `json:"windows"`
	ActiveApp string      `json:"active_app"`
}

// OpenAppInput is the input for the open_app tool.
type OpenAppInput struct {
	App    string            `json:"app" jsonschema:"Application id as listed by list_apps (e.g. terminal, notes, browser)"`
	Title  string            `json:"title,omitempty" jsonschema:"Window title for a newly created window; ignored when the app is already open"`
	Params map[string]string `json:"params,omitempty" jsonschema:"Launch parameters handed to the app, e.g. {\"command\":\"whoami\"} for terminal or {\"url\":\"...\"} for browser"`
}

// OpenAppOutput is the output for the open_app tool.
type OpenAppOutput struct {
	WindowID string `json:"window_id"`
	Created  bool   `json:"created"`
}

// WindowInput selects one window.
type WindowInput struct {
	WindowID string `json:"window_id" jsonschema:"Window id as listed by list_windows"`
}

// MoveWindowInput is the input for the move_window tool.
type MoveWindowInput struct {
	WindowID string `json:"window_id" jsonschema:"Window id as listed by list_windows"`
	X        int    `json:"x" jsonschema:"New left edge in terminal columns"`
	Y        int    `json:"y" jsonschema:"New top edge in terminal rows; values above the menu bar are clamped"`
}

// ResizeWindowInput is the input for the resize_window tool.
type ResizeWindowInput struct {
	WindowID string `json:"window_id" jsonschema:"Window id as listed by list_windows"`
	Width    int    `json:"width" jsonschema:"New width in columns; clamped to the minimum window width"`
	Height   int    `json:"height" jsonschema:"New height in rows; clamped to the minimum window height"`
}

// WindowOutput describes a window after a tool changed it.
type WindowOutput struct {
	Window wm.Window `json:"window"`
}

// ClosedOutput is the output for close_window and fresh_start.
type ClosedOutput struct {
	Closed bool `json:"closed"`
}
