package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/deskos/internal/registry"
	"github.com/1broseidon/deskos/internal/runtimepath"
	"github.com/1broseidon/deskos/internal/wm"
)

// ErrBadRequest marks requests the desktop rejected as malformed.
var ErrBadRequest = errors.New("bad request")

// Client handles IPC communication with a running desktop
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the runtime socket.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientAt(socketPath)
}

// NewClientAt creates a client for an explicit socket path.
func NewClientAt(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(command CommandType, payload any) (*Response, error) {
	req := &Request{Command: command}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", command, err)
		}
		req.Payload = data
	}

	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to desktop: %w (is deskos running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, responseError(resp)
	}

	return &resp, nil
}

func responseError(resp Response) error {
	switch resp.Code {
	case CodeNotFound:
		return fmt.Errorf("desktop error: %w", coded{sentinel: wm.ErrWindowNotFound, msg: resp.Error})
	case CodeUnknownApp:
		return fmt.Errorf("desktop error: %w", coded{sentinel: registry.ErrUnknownApp, msg: resp.Error})
	case CodeBadRequest:
		return fmt.Errorf("desktop error: %w", coded{sentinel: ErrBadRequest, msg: resp.Error})
	}
	return fmt.Errorf("desktop error: %s", resp.Error)
}

// coded keeps the server's message while matching the sentinel with errors.Is.
type coded struct {
	sentinel error
	msg      string
}

func (e coded) Error() string { return e.msg }
func (e coded) Unwrap() error { return e.sentinel }

func decodeData[T any](resp *Response, what string) (*T, error) {
	var out T
	if err := json.Unmarshal(resp.Data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse %s data: %w", what, err)
	}
	return &out, nil
}

// GetStatus retrieves desktop status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(CommandGetStatus, nil)
	if err != nil {
		return nil, err
	}
	return decodeData[StatusData](resp, "status")
}

// ListApps retrieves the application catalog.
func (c *Client) ListApps() ([]registry.App, error) {
	resp, err := c.sendRequest(CommandListApps, nil)
	if err != nil {
		return nil, err
	}
	data, err := decodeData[AppsData](resp, "apps")
	if err != nil {
		return nil, err
	}
	return data.Apps, nil
}

// ListWindows retrieves the open windows in creation order.
func (c *Client) ListWindows() (*WindowsData, error) {
	resp, err := c.sendRequest(CommandListWindows, nil)
	if err != nil {
		return nil, err
	}
	return decodeData[WindowsData](resp, "windows")
}

// OpenApp opens or raises the window for app.
func (c *Client) OpenApp(app, title string, params map[string]string) (*OpenAppData, error) {
	resp, err := c.sendRequest(CommandOpenApp, OpenAppPayload{App: app, Title: title, Params: params})
	if err != nil {
		return nil, err
	}
	return decodeData[OpenAppData](resp, "open")
}

// CloseWindow closes a window.
func (c *Client) CloseWindow(id string) error {
	_, err := c.sendRequest(CommandCloseWindow, WindowPayload{WindowID: id})
	return err
}

// MinimizeWindow hides a window.
func (c *Client) MinimizeWindow(id string) (*wm.Window, error) {
	return c.windowRequest(CommandMinimizeWindow, WindowPayload{WindowID: id})
}

// ToggleMaximize maximizes or restores a window.
func (c *Client) ToggleMaximize(id string) (*wm.Window, error) {
	return c.windowRequest(CommandToggleMaximize, WindowPayload{WindowID: id})
}

// FocusWindow raises a window.
func (c *Client) FocusWindow(id string) (*wm.Window, error) {
	return c.windowRequest(CommandFocusWindow, WindowPayload{WindowID: id})
}

// MoveWindow moves a window's top-left corner.
func (c *Client) MoveWindow(id string, x, y int) (*wm.Window, error) {
	return c.windowRequest(CommandMoveWindow, MovePayload{WindowID: id, X: x, Y: y})
}

// ResizeWindow sets a window's size.
func (c *Client) ResizeWindow(id string, width, height int) (*wm.Window, error) {
	return c.windowRequest(CommandResizeWindow, ResizePayload{WindowID: id, Width: width, Height: height})
}

// FreshStart closes every window.
func (c *Client) FreshStart() error {
	_, err := c.sendRequest(CommandFreshStart, nil)
	return err
}

func (c *Client) windowRequest(command CommandType, payload any) (*wm.Window, error) {
	resp, err := c.sendRequest(command, payload)
	if err != nil {
		return nil, err
	}
	data, err := decodeData[WindowData](resp, "window")
	if err != nil {
		return nil, err
	}
	return &data.Window, nil
}

// Ping checks if the desktop is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}

// ErrAlreadyRunning is returned when another desktop answers on the socket.
var ErrAlreadyRunning = errors.New("a desktop is already running")

// CheckSocketFree returns ErrAlreadyRunning when a desktop already answers on
// socketPath. A stale socket file is not an error; NewServer replaces it.
func CheckSocketFree(socketPath string) error {
	if err := NewClientAt(socketPath).Ping(); err == nil {
		return fmt.Errorf("%w (socket %s)", ErrAlreadyRunning, socketPath)
	}
	return nil
}
