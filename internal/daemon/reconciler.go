package daemon

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// SocketCheck reports whether the control socket is still reachable.
type SocketCheck func() bool

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically checks that the control socket still exists and
// restarts the listener when it was removed from under the daemon, as
// runtime directory cleaners do.
type Reconciler struct {
	interval time.Duration
	check    SocketCheck
	restart  func() error
	logger   *slog.Logger
}

// NewReconciler creates a reconciler. restart is called whenever check fails.
func NewReconciler(cfg ReconcilerConfig, check SocketCheck, restart func() error) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reconciler{
		interval: interval,
		check:    check,
		restart:  restart,
		logger:   logger,
	}
}

// SocketExists returns a SocketCheck that stats path.
func SocketExists(path string) SocketCheck {
	return func() bool {
		info, err := os.Stat(path)
		return err == nil && info.Mode()&os.ModeSocket != 0
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Debug("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("reconciler stopped")
			return
		case <-ticker.C:
			r.ReconcileNow()
		}
	}
}

// ReconcileNow performs a single pass.
func (r *Reconciler) ReconcileNow() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	if r.check() {
		return
	}
	r.logger.Warn("control socket missing, restarting listener")
	if err := r.restart(); err != nil {
		r.logger.Error("reconciler: failed to restart listener", "error", err)
		return
	}
	r.logger.Info("control socket restored")
}
