package ipc

import (
	"sync"

	"github.com/1broseidon/deskos/internal/registry"
	"github.com/1broseidon/deskos/internal/wm"
)

// Desktop is the state IPC commands operate on. It must only be touched from
// inside an Executor.
type Desktop struct {
	Manager *wm.Manager
	Apps    *registry.Registry
	// Mode is reported by GET_STATUS ("tui" or "daemon").
	Mode string
	// Theme reports the current palette. Optional.
	Theme func() string
}

// Executor runs fn with exclusive access to the Desktop, on whichever
// goroutine owns it, and returns once fn has run.
type Executor interface {
	Do(fn func(d *Desktop)) error
}

// SerialExecutor owns a Desktop itself and serializes calls with a mutex. It
// backs the headless daemon.
type SerialExecutor struct {
	mu      sync.Mutex
	desktop *Desktop
}

func NewSerialExecutor(d *Desktop) *SerialExecutor {
	return &SerialExecutor{desktop: d}
}

func (e *SerialExecutor) Do(fn func(d *Desktop)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.desktop)
	return nil
}
