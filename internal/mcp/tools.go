package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskos/internal/ipc"
	"github.com/1broseidon/deskos/internal/wm"
)

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_apps",
		Description: "List the applications that can be opened on the desktop, with their ids and dock membership.",
	}, s.handleListApps)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List open windows in creation order with geometry (terminal cells), stacking order and minimized/maximized state.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "desktop_status",
		Description: "Report the desktop mode, theme, view mode, viewport size, active app and window counts.",
	}, s.handleStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "open_app",
		Description: "Open an application. Each app has at most one window: opening an app that is already open raises and restores its window and replaces its launch params when params are given.",
	}, s.handleOpenApp)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Close a window by id.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Raise a window above all others, restoring it if minimized.",
	}, s.windowTool("focus_window", s.desktop.FocusWindow))

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "minimize_window",
		Description: "Minimize a window to the dock. Its geometry is kept.",
	}, s.windowTool("minimize_window", s.desktop.MinimizeWindow))

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_maximize",
		Description: "Maximize a window to fill the desktop area, or restore a maximized window to its previous geometry.",
	}, s.windowTool("toggle_maximize", s.desktop.ToggleMaximize))

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Move a window's top-left corner. The window never moves above the menu bar.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resize_window",
		Description: "Resize a window. Sizes below the minimum window size are clamped.",
	}, s.handleResizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "fresh_start",
		Description: "Close every window, returning the desktop to its empty state.",
	}, s.handleFreshStart)
}

func (s *Server) handleListApps(_ context.Context, _ *mcpsdk.CallToolRequest, _ NoInput) (*mcpsdk.CallToolResult, ListAppsOutput, error) {
	apps, err := s.desktop.ListApps()
	if err != nil {
		return nil, ListAppsOutput{}, s.fail("list_apps", err)
	}
	return nil, ListAppsOutput{Apps: apps}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ NoInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.desktop.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, s.fail("list_windows", err)
	}
	return nil, ListWindowsOutput{Windows: data.Windows, ActiveApp: data.ActiveApp}, nil
}

func (s *Server) handleStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ NoInput) (*mcpsdk.CallToolResult, ipc.StatusData, error) {
	status, err := s.desktop.GetStatus()
	if err != nil {
		return nil, ipc.StatusData{}, s.fail("desktop_status", err)
	}
	return nil, *status, nil
}

func (s *Server) handleOpenApp(_ context.Context, _ *mcpsdk.CallToolRequest, args OpenAppInput) (*mcpsdk.CallToolResult, OpenAppOutput, error) {
	app := strings.TrimSpace(args.App)
	if app == "" {
		return nil, OpenAppOutput{}, fmt.Errorf("app is required")
	}
	data, err := s.desktop.OpenApp(app, args.Title, args.Params)
	if err != nil {
		return nil, OpenAppOutput{}, s.fail("open_app", err, "app", app)
	}
	s.logger.Info("opened app", "tool", "open_app", "app", app, "window", data.WindowID, "created", data.Created)
	return nil, OpenAppOutput{WindowID: data.WindowID, Created: data.Created}, nil
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, ClosedOutput, error) {
	if args.WindowID == "" {
		return nil, ClosedOutput{}, fmt.Errorf("window_id is required")
	}
	if err := s.desktop.CloseWindow(args.WindowID); err != nil {
		return nil, ClosedOutput{}, s.fail("close_window", err, "window", args.WindowID)
	}
	s.logger.Info("closed window", "tool", "close_window", "window", args.WindowID)
	return nil, ClosedOutput{Closed: true}, nil
}

// windowTool adapts a single-window desktop call into a tool handler.
func (s *Server) windowTool(name string, op func(id string) (*wm.Window, error)) mcpsdk.ToolHandlerFor[WindowInput, WindowOutput] {
	return func(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
		if args.WindowID == "" {
			return nil, WindowOutput{}, fmt.Errorf("window_id is required")
		}
		w, err := op(args.WindowID)
		if err != nil {
			return nil, WindowOutput{}, s.fail(name, err, "window", args.WindowID)
		}
		s.logger.Debug("window changed", "tool", name, "window", w.ID)
		return nil, WindowOutput{Window: *w}, nil
	}
}

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveWindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	if args.WindowID == "" {
		return nil, WindowOutput{}, fmt.Errorf("window_id is required")
	}
	w, err := s.desktop.MoveWindow(args.WindowID, args.X, args.Y)
	if err != nil {
		return nil, WindowOutput{}, s.fail("move_window", err, "window", args.WindowID)
	}
	return nil, WindowOutput{Window: *w}, nil
}

func (s *Server) handleResizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args ResizeWindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	if args.WindowID == "" {
		return nil, WindowOutput{}, fmt.Errorf("window_id is required")
	}
	w, err := s.desktop.ResizeWindow(args.WindowID, args.Width, args.Height)
	if err != nil {
		return nil, WindowOutput{}, s.fail("resize_window", err, "window", args.WindowID)
	}
	return nil, WindowOutput{Window: *w}, nil
}

func (s *Server) handleFreshStart(_ context.Context, _ *mcpsdk.CallToolRequest, _ NoInput) (*mcpsdk.CallToolResult, ClosedOutput, error) {
	if err := s.desktop.FreshStart(); err != nil {
		return nil, ClosedOutput{}, s.fail("fresh_start", err)
	}
	s.logger.Info("fresh start", "tool", "fresh_start")
	return nil, ClosedOutput{Closed: true}, nil
}

func (s *Server) fail(tool string, err error, attrs ...any) error {
	s.logger.Warn("tool failed", append([]any{"tool", tool, "error", err}, attrs...)...)
	return fmt.Errorf("%s: %w", tool, err)
}
