package movemode

import (
	"fmt"
	"testing"
	"time"

	"github.com/1broseidon/deskos/internal/platform"
	"github.com/1broseidon/deskos/internal/wm"
)

func newManager(t *testing.T, apps ...string) *wm.Manager {
	t.Helper()
	n := 0
	m := wm.NewManager(wm.DefaultPolicy(),
		wm.WithViewport(120, 40),
		wm.WithIDGenerator(func() string { n++; return fmt.Sprintf("w%d", n) }),
	)
	for _, app := range apps {
		m.Open(app, "", nil)
	}
	return m
}

func TestNavigateWindow(t *testing.T) {
	tests := []struct {
		name  string
		idx   int
		dir   Direction
		count int
		want  int
	}{
		{"next", 0, DirRight, 3, 1},
		{"next wraps", 2, DirDown, 3, 0},
		{"previous wraps", 0, DirLeft, 3, 2},
		{"previous", 2, DirUp, 3, 1},
		{"single", 0, DirRight, 1, 0},
		{"empty", 4, DirRight, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NavigateWindow(tt.idx, tt.dir, tt.count); got != tt.want {
				t.Fatalf("NavigateWindow(%d, %v, %d) = %d, want %d", tt.idx, tt.dir, tt.count, got, tt.want)
			}
		})
	}
}

func TestActionFromKey(t *testing.T) {
	tests := []struct {
		key    string
		action Action
		dir    Direction
	}{
		{"up", ActionMove, DirUp},
		{"l", ActionMove, DirRight},
		{"shift+left", ActionResize, DirLeft},
		{"J", ActionResize, DirDown},
		{"enter", ActionConfirm, 0},
		{"esc", ActionCancel, 0},
		{"x", ActionNone, 0},
	}
	for _, tt := range tests {
		action, dir := ActionFromKey(tt.key)
		if action != tt.action || (action != ActionNone && dir != tt.dir) {
			t.Errorf("ActionFromKey(%q) = %v, %v; want %v, %v", tt.key, action, dir, tt.action, tt.dir)
		}
	}
}

func TestEnterRequiresVisibleWindow(t *testing.T) {
	m := NewMode()
	if m.Enter(newManager(t)) {
		t.Fatal("Enter should fail on an empty desktop")
	}
	if m.IsActive() {
		t.Fatal("mode should stay inactive")
	}
}

func TestSelectCycleFocusesWindow(t *testing.T) {
	mgr := newManager(t, "terminal", "notes", "calculator")
	m := NewMode()
	if !m.Enter(mgr) {
		t.Fatal("Enter failed")
	}
	if m.Selected() != "w3" || m.Phase() != PhaseSelecting {
		t.Fatalf("expected frontmost w3 selected, got %q (%v)", m.Selected(), m.Phase())
	}

	m.Handle(mgr, ActionMove, DirRight)
	if m.Selected() != "w1" {
		t.Fatalf("expected wrap to w1, got %q", m.Selected())
	}
	if mgr.ActiveApp() != "terminal" {
		t.Fatalf("selection should focus window, active app %q", mgr.ActiveApp())
	}
}

func TestGrabMoveResizeAndConfirm(t *testing.T) {
	mgr := newManager(t, "terminal")
	before, _ := mgr.Window("w1")
	m := NewMode()
	m.Enter(mgr)
	m.Handle(mgr, ActionConfirm, 0)
	if m.Phase() != PhaseGrabbed {
		t.Fatalf("expected grabbed, got %v", m.Phase())
	}

	m.Handle(mgr, ActionMove, DirRight)
	m.Handle(mgr, ActionMove, DirDown)
	m.Handle(mgr, ActionResize, DirLeft)
	w, _ := mgr.Window("w1")
	want := platform.Rect{X: before.Bounds.X + 2, Y: before.Bounds.Y + 1, Width: before.Bounds.Width - 2, Height: before.Bounds.Height}
	if w.Bounds != want {
		t.Fatalf("bounds = %+v, want %+v", w.Bounds, want)
	}

	m.Handle(mgr, ActionConfirm, 0)
	if m.IsActive() {
		t.Fatal("confirm should exit")
	}
	w, _ = mgr.Window("w1")
	if w.Bounds != want {
		t.Fatalf("confirm should keep geometry, got %+v", w.Bounds)
	}
}

func TestCancelRevertsGeometry(t *testing.T) {
	mgr := newManager(t, "terminal")
	before, _ := mgr.Window("w1")
	m := NewMode()
	m.Enter(mgr)
	m.Handle(mgr, ActionConfirm, 0)
	m.Handle(mgr, ActionMove, DirLeft)
	m.Handle(mgr, ActionResize, DirDown)
	m.Handle(mgr, ActionCancel, 0)

	w, _ := mgr.Window("w1")
	if w.Bounds != before.Bounds {
		t.Fatalf("cancel should restore %+v, got %+v", before.Bounds, w.Bounds)
	}
	if m.IsActive() {
		t.Fatal("cancel should exit")
	}
}

func TestMaximizedWindowCannotBeGrabbed(t *testing.T) {
	mgr := newManager(t, "terminal")
	mgr.ToggleMaximize("w1")
	m := NewMode()
	m.Enter(mgr)
	m.Handle(mgr, ActionConfirm, 0)
	if m.Phase() != PhaseSelecting {
		t.Fatalf("expected to stay selecting, got %v", m.Phase())
	}
}

func TestClosedWindowsArePruned(t *testing.T) {
	mgr := newManager(t, "terminal", "notes")
	m := NewMode()
	m.Enter(mgr)
	mgr.Close("w1")
	m.Handle(mgr, ActionMove, DirRight)
	if m.Selected() != "w2" {
		t.Fatalf("expected only w2 left, got %q", m.Selected())
	}

	mgr.Close("w2")
	m.Handle(mgr, ActionMove, DirRight)
	if m.IsActive() {
		t.Fatal("mode should exit once no windows remain")
	}
}

func TestExpired(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMode()
	m.now = func() time.Time { return now }
	m.Enter(newManager(t, "terminal"))
	if m.Expired() {
		t.Fatal("fresh mode should not be expired")
	}
	now = now.Add(DefaultTimeout)
	if !m.Expired() {
		t.Fatal("mode should expire after the timeout")
	}
}
