package tui

import (
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/deskos/internal/ipc"
)

// DefaultExecTimeout bounds how long an IPC request waits for the event loop.
const DefaultExecTimeout = 5 * time.Second

// ErrDesktopBusy is returned when the event loop did not run a request in
// time, for example because the program has exited.
var ErrDesktopBusy = errors.New("desktop did not respond")

// ProgramExecutor runs IPC requests on the bubbletea goroutine that owns the
// window manager.
type ProgramExecutor struct {
	send    func(tea.Msg)
	timeout time.Duration
}

// NewProgramExecutor returns an executor delivering requests through send,
// normally (*tea.Program).Send.
func NewProgramExecutor(send func(tea.Msg), timeout time.Duration) *ProgramExecutor {
	if timeout <= 0 {
		timeout = DefaultExecTimeout
	}
	return &ProgramExecutor{send: send, timeout: timeout}
}

func (e *ProgramExecutor) Do(fn func(d *ipc.Desktop)) error {
	var (
		mu        sync.Mutex
		ran       bool
		abandoned bool
	)
	done := make(chan struct{})
	run := func(d *ipc.Desktop) {
		mu.Lock()
		defer mu.Unlock()
		if !abandoned {
			fn(d)
			ran = true
		}
	}
	// Send blocks until the program reads the message and returns without
	// delivering once the program has exited.
	go e.send(execMsg{fn: run, done: done})

	timer := time.NewTimer(e.timeout)
	defer timer.Stop()
	select {
	case <-done:
		return nil
	case <-timer.C:
	}

	mu.Lock()
	defer mu.Unlock()
	if ran {
		return nil
	}
	abandoned = true
	return ErrDesktopBusy
}
