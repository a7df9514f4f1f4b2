package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/deskos/internal/platform"
	"github.com/1broseidon/deskos/internal/registry"
	"github.com/1broseidon/deskos/internal/wm"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus      CommandType = "GET_STATUS"
	CommandListApps       CommandType = "LIST_APPS"
	CommandListWindows    CommandType = "LIST_WINDOWS"
	CommandOpenApp        CommandType = "OPEN_APP"
	CommandCloseWindow    CommandType = "CLOSE_WINDOW"
	CommandMinimizeWindow CommandType = "MINIMIZE_WINDOW"
	CommandToggleMaximize CommandType = "TOGGLE_MAXIMIZE"
	CommandFocusWindow    CommandType = "FOCUS_WINDOW"
	CommandMoveWindow     CommandType = "MOVE_WINDOW"
	CommandResizeWindow   CommandType = "RESIZE_WINDOW"
	CommandFreshStart     CommandType = "FRESH_START"
)

// Error codes carried alongside ERROR responses so clients can restore the
// sentinel errors.
const (
	CodeNotFound   = "not_found"
	CodeUnknownApp = "unknown_app"
	CodeBadRequest = "bad_request"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
	Code   string          `json:"code,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	Mode          string        `json:"mode"` // "tui" or "daemon"
	Theme         string        `json:"theme,omitempty"`
	ViewMode      wm.ViewMode   `json:"view_mode"`
	Viewport      platform.Size `json:"viewport"`
	ActiveApp     string        `json:"active_app"`
	WindowCount   int           `json:"window_count"`
	VisibleCount  int           `json:"visible_count"`
	UptimeSeconds int64         `json:"uptime_seconds"`
	Running       bool          `json:"running"`
}

type AppsData struct {
	Apps []registry.App `json:"apps"`
}

type WindowsData struct {
	Windows   []wm.Window `json:"windows"`
	ActiveApp string      `json:"active_app"`
}

type OpenAppPayload struct {
	App    string            `json:"app"`
	Title  string            `json:"title,omitempty"`
	Params map[string]string `json:"params,omitempty"`
}

type OpenAppData struct {
	WindowID string `json:"window_id"`
	Created  bool   `json:"created"`
}

type WindowPayload struct {
	WindowID string `json:"window_id"`
}

type MovePayload struct {
	WindowID string `json:"window_id"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

type ResizePayload struct {
	WindowID string `json:"window_id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// WindowData is returned by commands that act on one window.
type WindowData struct {
	Window wm.Window `json:"window"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data any) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// NewCodedErrorResponse creates an error response with a machine-readable code.
func NewCodedErrorResponse(code, errMsg string) *Response {
	resp := NewErrorResponse(errMsg)
	resp.Code = code
	return resp
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
