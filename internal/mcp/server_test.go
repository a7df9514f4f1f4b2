package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskos/internal/ipc"
	"github.com/1broseidon/deskos/internal/registry"
	"github.com/1broseidon/deskos/internal/wm"
)

// fakeDesktop drives a real manager in-process.
type fakeDesktop struct {
	m    *wm.Manager
	apps *registry.Registry
}

func newFakeDesktop() *fakeDesktop {
	apps := registry.New(registry.Builtin())
	n := 0
	return &fakeDesktop{
		m: wm.NewManager(wm.DefaultPolicy(),
			wm.WithViewport(120, 40),
			wm.WithTitles(apps.Title),
			wm.WithIDGenerator(func() string { n++; return fmt.Sprintf("w%d", n) }),
		),
		apps: apps,
	}
}

func (f *fakeDesktop) GetStatus() (*ipc.StatusData, error) {
	return &ipc.StatusData{Mode: "daemon", ActiveApp: f.m.ActiveApp(), WindowCount: f.m.Len(), Running: true}, nil
}

func (f *fakeDesktop) ListApps() ([]registry.App, error) { return f.apps.List(), nil }

func (f *fakeDesktop) ListWindows() (*ipc.WindowsData, error) {
	return &ipc.WindowsData{Windows: f.m.Windows(), ActiveApp: f.m.ActiveApp()}, nil
}

func (f *fakeDesktop) OpenApp(app, title string, params map[string]string) (*ipc.OpenAppData, error) {
	if _, ok := f.apps.Lookup(app); !ok {
		return nil, fmt.Errorf("%w: %s", registry.ErrUnknownApp, app)
	}
	id, created := f.m.Open(app, title, params)
	return &ipc.OpenAppData{WindowID: id, Created: created}, nil
}

func (f *fakeDesktop) CloseWindow(id string) error {
	if !f.m.Close(id) {
		return wm.ErrWindowNotFound
	}
	return nil
}

func (f *fakeDesktop) window(id string, ok bool) (*wm.Window, error) {
	if !ok {
		return nil, wm.ErrWindowNotFound
	}
	w, _ := f.m.Window(id)
	return &w, nil
}

func (f *fakeDesktop) MinimizeWindow(id string) (*wm.Window, error) { return f.window(id, f.m.Minimize(id)) }
func (f *fakeDesktop) ToggleMaximize(id string) (*wm.Window, error) {
	return f.window(id, f.m.ToggleMaximize(id))
}
func (f *fakeDesktop) FocusWindow(id string) (*wm.Window, error) { return f.window(id, f.m.Focus(id)) }
func (f *fakeDesktop) MoveWindow(id string, x, y int) (*wm.Window, error) {
	return f.window(id, f.m.UpdatePosition(id, x, y))
}
func (f *fakeDesktop) ResizeWindow(id string, w, h int) (*wm.Window, error) {
	return f.window(id, f.m.UpdateSize(id, w, h))
}
func (f *fakeDesktop) FreshStart() error { f.m.Reset(); return nil }

func connect(t *testing.T, desk Desktop) *mcpsdk.ClientSession {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	serverTransport, clientTransport := mcpsdk.NewInMemoryTransports()
	srv := NewServer(desk, nil)
	ss, err := srv.Connect(ctx, serverTransport)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	t.Cleanup(func() { ss.Close() })

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { cs.Close() })
	return cs
}

func call(t *testing.T, cs *mcpsdk.ClientSession, name string, args map[string]any) *mcpsdk.CallToolResult {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	res, err := cs.CallTool(context.Background(), &mcpsdk.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("call %s: %v", name, err)
	}
	return res
}

func decodeStructured[T any](t *testing.T, res *mcpsdk.CallToolResult) T {
	t.Helper()
	if res.IsError {
		t.Fatalf("tool returned error: %+v", res.Content)
	}
	data, err := json.Marshal(res.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode structured content: %v", err)
	}
	return out
}

func errorText(res *mcpsdk.CallToolResult) string {
	var parts []string
	for _, c := range res.Content {
		if tc, ok := c.(*mcpsdk.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func TestToolsAreRegistered(t *testing.T) {
	cs := connect(t, newFakeDesktop())
	res, err := cs.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	got := make(map[string]bool)
	for _, tool := range res.Tools {
		got[tool.Name] = true
	}
	for _, name := range []string{
		"list_apps", "list_windows", "desktop_status", "open_app", "close_window",
		"focus_window", "minimize_window", "toggle_maximize", "move_window",
		"resize_window", "fresh_start",
	} {
		if !got[name] {
			t.Errorf("tool %q not registered", name)
		}
	}
}

func TestOpenMoveAndListWindows(t *testing.T) {
	desk := newFakeDesktop()
	cs := connect(t, desk)

	opened := decodeStructured[OpenAppOutput](t, call(t, cs, "open_app", map[string]any{
		"app":    "terminal",
		"params": map[string]any{"command": "whoami"},
	}))
	if opened.WindowID != "w1" || !opened.Created {
		t.Fatalf("unexpected open result %+v", opened)
	}

	moved := decodeStructured[WindowOutput](t, call(t, cs, "move_window", map[string]any{
		"window_id": "w1", "x": 7, "y": 0,
	}))
	if moved.Window.Bounds.X != 7 || moved.Window.Bounds.Y != wm.DefaultPolicy().TopInset {
		t.Fatalf("unexpected bounds %+v", moved.Window.Bounds)
	}

	list := decodeStructured[ListWindowsOutput](t, call(t, cs, "list_windows", nil))
	if len(list.Windows) != 1 || list.ActiveApp != "terminal" {
		t.Fatalf("unexpected list %+v", list)
	}
	if list.Windows[0].Params.Get("command") != "whoami" {
		t.Fatalf("params lost: %+v", list.Windows[0])
	}

	maxed := decodeStructured[WindowOutput](t, call(t, cs, "toggle_maximize", map[string]any{"window_id": "w1"}))
	if !maxed.Window.Maximized {
		t.Fatalf("expected maximized window, got %+v", maxed.Window)
	}

	decodeStructured[ClosedOutput](t, call(t, cs, "fresh_start", nil))
	if desk.m.Len() != 0 {
		t.Fatalf("fresh_start left %d windows", desk.m.Len())
	}
}

func TestResizeClampsToMinimum(t *testing.T) {
	desk := newFakeDesktop()
	cs := connect(t, desk)
	decodeStructured[OpenAppOutput](t, call(t, cs, "open_app", map[string]any{"app": "notes"}))

	p := wm.DefaultPolicy()
	tests := []struct {
		name          string
		width, height int
	}{
		{"negative width", -5, 3},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := decodeStructured[WindowOutput](t, call(t, cs, "resize_window", map[string]any{
				"window_id": "w1", "width": tt.width, "height": tt.height,
			}))
			b := res.Window.Bounds
			if b.Width != p.MinWidth || b.Height != p.MinHeight {
				t.Fatalf("bounds %dx%d, want %dx%d", b.Width, b.Height, p.MinWidth, p.MinHeight)
			}
		})
	}
}

func TestToolErrors(t *testing.T) {
	cs := connect(t, newFakeDesktop())

	tests := []struct {
		name string
		tool string
		args map[string]any
		want string
	}{
		{"unknown app", "open_app", map[string]any{"app": "solitaire"}, "unknown application"},
		{"missing app", "open_app", map[string]any{"app": " "}, "app is required"},
		{"missing window", "close_window", map[string]any{"window_id": "nope"}, "window not found"},
		{"focus missing", "focus_window", map[string]any{"window_id": "nope"}, "window not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := call(t, cs, tt.tool, tt.args)
			if !res.IsError {
				t.Fatalf("expected tool error, got %+v", res)
			}
			if text := errorText(res); !strings.Contains(text, tt.want) {
				t.Fatalf("error %q does not contain %q", text, tt.want)
			}
		})
	}
}

func TestStatusAndApps(t *testing.T) {
	cs := connect(t, newFakeDesktop())

	status := decodeStructured[ipc.StatusData](t, call(t, cs, "desktop_status", nil))
	if !status.Running || status.Mode != "daemon" {
		t.Fatalf("unexpected status %+v", status)
	}

	apps := decodeStructured[ListAppsOutput](t, call(t, cs, "list_apps", nil))
	if len(apps.Apps) != len(registry.Builtin()) {
		t.Fatalf("got %d apps", len(apps.Apps))
	}
}
