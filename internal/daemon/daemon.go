// Package daemon runs a headless desktop: the window manager and the control
// socket without a renderer, for scripting and MCP clients.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/deskos/internal/config"
	"github.com/1broseidon/deskos/internal/ipc"
	"github.com/1broseidon/deskos/internal/registry"
	"github.com/1broseidon/deskos/internal/runtimepath"
	"github.com/1broseidon/deskos/internal/wm"
)

// Mode is the status name reported over IPC for a headless desktop.
const Mode = "daemon"

// Options configures a daemon.
type Options struct {
	Config *config.Config
	Apps   *registry.Registry
	// SocketPath is the control socket; "" selects the runtime default.
	SocketPath string
	// Observer receives window manager events, typically the journal.
	Observer wm.Observer
	Logger   *slog.Logger
	// CheckInterval is how often the control socket is verified.
	CheckInterval time.Duration
	// NewID overrides window id generation.
	NewID func() string
}

// Daemon owns a headless desktop.
type Daemon struct {
	opts    Options
	logger  *slog.Logger
	desktop *ipc.Desktop
	exec    *ipc.SerialExecutor

	mu     sync.Mutex
	server *ipc.Server
}

// New builds the desktop state. Nothing listens until Run.
func New(opts Options) (*Daemon, error) {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Apps == nil {
		opts.Apps = registry.New(registry.Builtin())
	}
	if opts.SocketPath == "" {
		path, err := runtimepath.SocketPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
		}
		opts.SocketPath = path
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	mgrOpts := []wm.Option{
		wm.WithViewMode(opts.Config.InitialViewMode()),
		wm.WithTitles(opts.Apps.Title),
	}
	if opts.Observer != nil {
		mgrOpts = append(mgrOpts, wm.WithObserver(opts.Observer))
	}
	if opts.NewID != nil {
		mgrOpts = append(mgrOpts, wm.WithIDGenerator(opts.NewID))
	}

	theme := opts.Config.Theme
	desktop := &ipc.Desktop{
		Manager: wm.NewManager(opts.Config.Policy(), mgrOpts...),
		Apps:    opts.Apps,
		Mode:    Mode,
		Theme:   func() string { return theme },
	}
	return &Daemon{
		opts:    opts,
		logger:  logger,
		desktop: desktop,
		exec:    ipc.NewSerialExecutor(desktop),
	}, nil
}

// SocketPath returns the control socket path.
func (d *Daemon) SocketPath() string {
	return d.opts.SocketPath
}

// Executor gives serialized access to the desktop.
func (d *Daemon) Executor() ipc.Executor {
	return d.exec
}

// Run serves the control socket and opens the startup applications. It
// blocks until ctx is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	if err := ipc.CheckSocketFree(d.opts.SocketPath); err != nil {
		return err
	}
	if err := d.listen(); err != nil {
		return err
	}
	defer d.stop()

	d.logger.Info("headless desktop started", "socket", d.opts.SocketPath)

	timers := d.scheduleStartup()
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	reconciler := NewReconciler(ReconcilerConfig{
		Interval: d.opts.CheckInterval,
		Logger:   d.logger,
	}, SocketExists(d.opts.SocketPath), d.restart)
	watchdog := make(chan struct{})
	go func() {
		defer close(watchdog)
		reconciler.Run(ctx)
	}()

	<-ctx.Done()
	// The watchdog must be gone before the deferred stop, or it could restart
	// the listener behind it.
	<-watchdog
	d.logger.Info("shutting down headless desktop")
	return nil
}

func (d *Daemon) listen() error {
	server, err := ipc.NewServer(d.opts.SocketPath, d.exec)
	if err != nil {
		return err
	}
	if err := server.Start(); err != nil {
		return err
	}
	d.mu.Lock()
	d.server = server
	d.mu.Unlock()
	return nil
}

func (d *Daemon) stop() {
	d.mu.Lock()
	server := d.server
	d.server = nil
	d.mu.Unlock()
	if server != nil {
		server.Stop()
	}
}

func (d *Daemon) restart() error {
	d.stop()
	return d.listen()
}

// scheduleStartup opens each startup application after its delay.
func (d *Daemon) scheduleStartup() []*time.Timer {
	timers := make([]*time.Timer, 0, len(d.opts.Config.Startup))
	for _, s := range d.opts.Config.Startup {
		delay := time.Duration(s.DelayMS) * time.Millisecond
		timers = append(timers, time.AfterFunc(delay, func() {
			d.exec.Do(func(dk *ipc.Desktop) {
				id, created := dk.Manager.Open(s.App, s.Title, wm.LaunchParams(s.Params).Clone())
				d.logger.Info("startup application opened", "app", s.App, "window", id, "created", created)
			})
		}))
	}
	return timers
}
