package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskos/internal/ipc"
	"github.com/1broseidon/deskos/internal/registry"
	"github.com/1broseidon/deskos/internal/wm"
)

const (
	ServerName    = "deskos"
	ServerVersion = "0.1.0"
)

// Desktop is the control surface the tools drive. *ipc.Client implements it.
type Desktop interface {
	GetStatus() (*ipc.StatusData, error)
	ListApps() ([]registry.App, error)
	ListWindows() (*ipc.WindowsData, error)
	OpenApp(app, title string, params map[string]string) (*ipc.OpenAppData, error)
	CloseWindow(id string) error
	MinimizeWindow(id string) (*wm.Window, error)
	ToggleMaximize(id string) (*wm.Window, error)
	FocusWindow(id string) (*wm.Window, error)
	MoveWindow(id string, x, y int) (*wm.Window, error)
	ResizeWindow(id string, width, height int) (*wm.Window, error)
	FreshStart() error
}

// Server is the MCP server exposing the running desktop's windows as tools.
type Server struct {
	mcpServer *mcpsdk.Server
	desktop   Desktop
	logger    *slog.Logger
}

// NewServer creates a new MCP server backed by desktop. A nil logger
// discards tool logs.
func NewServer(desktop Desktop, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		desktop: desktop,
		logger:  logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Connect serves a single session over t. Used with in-memory transports.
func (s *Server) Connect(ctx context.Context, t mcpsdk.Transport) (*mcpsdk.ServerSession, error) {
	return s.mcpServer.Connect(ctx, t, nil)
}
