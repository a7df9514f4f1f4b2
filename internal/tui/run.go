package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/deskos/internal/ipc"
	"github.com/1broseidon/deskos/internal/platform"
	"github.com/1broseidon/deskos/internal/runtimepath"
)

// RunOptions controls an interactive session.
type RunOptions struct {
	// SocketPath is the control socket; "" selects the runtime default.
	SocketPath string
	// NoIPC disables the control socket.
	NoIPC bool
}

// Run draws the desktop in the current terminal until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options, ro RunOptions) error {
	term := platform.NewTerminal()
	if !term.Interactive() {
		return fmt.Errorf("deskos requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	m := New(opts)
	if size, err := term.Size(); err == nil {
		m.resize(size.Width, size.Height)
	}

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if !ro.NoIPC {
		path := ro.SocketPath
		if path == "" {
			var err error
			if path, err = runtimepath.SocketPath(); err != nil {
				return fmt.Errorf("failed to resolve IPC socket path: %w", err)
			}
		}
		if err := ipc.CheckSocketFree(path); err != nil {
			return err
		}
		server, err := ipc.NewServer(path, NewProgramExecutor(p.Send, DefaultExecTimeout))
		if err != nil {
			return err
		}
		if err := server.Start(); err != nil {
			return err
		}
		defer server.Stop()
	}

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("desktop exited: %w", err)
	}
	return nil
}
