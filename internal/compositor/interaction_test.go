package compositor

import (
	"fmt"
	"testing"

	"github.com/1broseidon/deskos/internal/platform"
	"github.com/1broseidon/deskos/internal/wm"
)

func pixelPolicy() wm.Policy {
	p := wm.DefaultPolicy()
	p.TopInset = 32
	p.BottomInset = 88
	p.MinWidth = 200
	p.MinHeight = 150
	p.DefaultWidth = 850
	p.DefaultHeight = 600
	p.CascadeOrigin = platform.Point{X: 100, Y: 100}
	p.CascadeStep = platform.Point{X: 30, Y: 30}
	p.MobileBreakpoint = 768
	return p
}

func newManager() *wm.Manager {
	n := 0
	return wm.NewManager(pixelPolicy(),
		wm.WithViewport(1440, 900),
		wm.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("w%d", n)
		}),
	)
}

func window(t *testing.T, m *wm.Manager, id string) wm.Window {
	t.Helper()
	w, ok := m.Window(id)
	if !ok {
		t.Fatalf("window %s missing", id)
	}
	return w
}

func TestInteractionStateMachine(t *testing.T) {
	in := NewInteraction()
	if in.Active() {
		t.Fatal("new interaction should be idle")
	}
	if _, ok := in.Update(platform.Point{X: 5, Y: 5}); ok {
		t.Fatal("idle Update should report no target")
	}

	in.BeginDrag("w1", platform.Point{X: 110, Y: 105}, platform.Point{X: 100, Y: 100})
	if in.Phase != PhaseDragging {
		t.Fatalf("phase = %s, want dragging", in.Phase)
	}
	got, ok := in.Update(platform.Point{X: 160, Y: -395})
	if !ok || got.Position != (platform.Point{X: 150, Y: -400}) {
		t.Fatalf("drag target = %+v, %v", got, ok)
	}
	if !in.End() || in.Active() {
		t.Fatal("End should report the drag and return to idle")
	}
	if in.End() {
		t.Fatal("End on idle should report false")
	}

	in.BeginResize("w1", platform.Point{X: 10, Y: 10}, platform.Size{Width: 300, Height: 200})
	got, ok = in.Update(platform.Point{X: 25, Y: 5})
	if !ok || got.Size != (platform.Size{Width: 315, Height: 195}) || got.Phase != PhaseResizing {
		t.Fatalf("resize target = %+v, %v", got, ok)
	}
}

func TestDragClampsToMenuBar(t *testing.T) {
	m := newManager()
	id, _ := m.Open("notes", "", nil)
	start := window(t, m, id).Bounds
	if start.X != 100 || start.Y != 100 {
		t.Fatalf("unexpected start %+v", start)
	}

	in := NewInteraction()
	grab := platform.Point{X: 100 + 20, Y: 100}
	hit, ok := in.Press(m, grab)
	if !ok || hit.Zone != ZoneTitleBar {
		t.Fatalf("press hit = %+v, %v", hit, ok)
	}
	for _, d := range []platform.Point{{X: 10, Y: -100}, {X: 30, Y: -300}, {X: 50, Y: -500}} {
		in.Motion(m, grab.Add(d))
	}
	in.Release()

	got := window(t, m, id).Bounds
	if got.X != 150 || got.Y != 32 {
		t.Fatalf("final position = (%d,%d), want (150,32)", got.X, got.Y)
	}
	if in.Active() {
		t.Fatal("release should end the drag")
	}
	if in.Motion(m, platform.Point{X: 0, Y: 500}) {
		t.Fatal("motion after release should do nothing")
	}
}

func TestResizeFromCorner(t *testing.T) {
	m := newManager()
	id, _ := m.Open("notes", "", nil)
	b := window(t, m, id).Bounds
	corner := platform.Point{X: b.Right() - 1, Y: b.Bottom() - 1}

	in := NewInteraction()
	hit, _ := in.Press(m, corner)
	if hit.Zone != ZoneResize || in.Phase != PhaseResizing {
		t.Fatalf("hit %+v phase %s", hit, in.Phase)
	}
	in.Motion(m, corner.Add(platform.Point{X: 40, Y: -30}))
	if got := window(t, m, id).Bounds.Size(); got != (platform.Size{Width: 890, Height: 570}) {
		t.Fatalf("size = %+v", got)
	}
	in.Motion(m, corner.Add(platform.Point{X: -2000, Y: -2000}))
	if got := window(t, m, id).Bounds.Size(); got != (platform.Size{Width: 200, Height: 150}) {
		t.Fatalf("size below floor = %+v", got)
	}
	in.Release()
}

func TestPressFocusesBeforeInteraction(t *testing.T) {
	m := newManager()
	a, _ := m.Open("a", "", nil)
	b, _ := m.Open("b", "", nil)
	wa := window(t, m, a)

	// (101,101) lies inside a's content but not b's frame, which starts at 130.
	in := NewInteraction()
	hit, ok := in.Press(m, platform.Point{X: wa.Bounds.X + 1, Y: wa.Bounds.Y + 1})
	if !ok || hit.WindowID != a || hit.Zone != ZoneContent {
		t.Fatalf("hit = %+v", hit)
	}
	if in.Active() {
		t.Fatal("content press must not start a drag")
	}
	if window(t, m, a).Z <= window(t, m, b).Z {
		t.Fatal("press should raise the clicked window")
	}
	if m.ActiveApp() != "a" {
		t.Fatalf("ActiveApp() = %q", m.ActiveApp())
	}
}

func TestControlsDoNotFocusOrDrag(t *testing.T) {
	tests := []struct {
		name   string
		column int
		check  func(t *testing.T, m *wm.Manager, id string)
	}{
		{"close", closeColumn, func(t *testing.T, m *wm.Manager, id string) {
			if _, ok := m.Window(id); ok {
				t.Fatal("window should be closed")
			}
		}},
		{"maximize", maximizeColumn, func(t *testing.T, m *wm.Manager, id string) {
			if !window(t, m, id).Maximized {
				t.Fatal("window should be maximized")
			}
		}},
		{"minimize", minimizeColumn, func(t *testing.T, m *wm.Manager, id string) {
			if !window(t, m, id).Minimized {
				t.Fatal("window should be minimized")
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newManager()
			a, _ := m.Open("a", "", nil)
			m.Open("b", "", nil)
			m.UpdatePosition(a, 1000, 500)
			before := window(t, m, a).Z

			in := NewInteraction()
			w := window(t, m, a)
			hit, ok := in.Press(m, platform.Point{X: w.Bounds.X + tt.column, Y: w.Bounds.Y})
			if !ok || hit.WindowID != a || !hit.Zone.Control() {
				t.Fatalf("hit = %+v", hit)
			}
			if in.Active() {
				t.Fatal("control press must not start an interaction")
			}
			tt.check(t, m, a)
			if after, ok := m.Window(a); ok && after.Z != before {
				t.Fatalf("control press changed z: %d -> %d", before, after.Z)
			}
		})
	}
}

func TestMaximizedWindowIgnoresDragAndResize(t *testing.T) {
	m := newManager()
	id, _ := m.Open("a", "", nil)
	m.ToggleMaximize(id)
	w := window(t, m, id)

	in := NewInteraction()
	hit, _ := in.Press(m, platform.Point{X: w.Bounds.X + 20, Y: w.Bounds.Y})
	if hit.Zone != ZoneTitleBar || in.Active() {
		t.Fatalf("maximized title press: hit %+v phase %s", hit, in.Phase)
	}
	hit, _ = in.Press(m, platform.Point{X: w.Bounds.Right() - 1, Y: w.Bounds.Bottom() - 1})
	if hit.Zone != ZoneBorder || in.Active() {
		t.Fatalf("maximized corner press: hit %+v phase %s", hit, in.Phase)
	}
}

func TestHitTestPicksFrontmostVisible(t *testing.T) {
	windows := []wm.Window{
		{ID: "low", Z: 1, Bounds: platform.Rect{X: 0, Y: 0, Width: 10, Height: 10}},
		{ID: "high", Z: 3, Bounds: platform.Rect{X: 5, Y: 5, Width: 10, Height: 10}},
		{ID: "hidden", Z: 9, Minimized: true, Bounds: platform.Rect{X: 0, Y: 0, Width: 20, Height: 20}},
	}
	tests := []struct {
		p    platform.Point
		want string
		ok   bool
	}{
		{platform.Point{X: 6, Y: 6}, "high", true},
		{platform.Point{X: 1, Y: 1}, "low", true},
		{platform.Point{X: 18, Y: 18}, "", false},
	}
	for _, tt := range tests {
		hit, ok := HitTest(windows, tt.p)
		if ok != tt.ok || hit.WindowID != tt.want {
			t.Errorf("HitTest(%v) = %+v, %v; want %q, %v", tt.p, hit, ok, tt.want, tt.ok)
		}
	}
}

func TestZoneAt(t *testing.T) {
	w := wm.Window{Bounds: platform.Rect{X: 10, Y: 5, Width: 30, Height: 8}}
	tests := []struct {
		p    platform.Point
		want Zone
	}{
		{platform.Point{X: 12, Y: 5}, ZoneClose},
		{platform.Point{X: 14, Y: 5}, ZoneMaximize},
		{platform.Point{X: 16, Y: 5}, ZoneMinimize},
		{platform.Point{X: 25, Y: 5}, ZoneTitleBar},
		{platform.Point{X: 39, Y: 12}, ZoneResize},
		{platform.Point{X: 10, Y: 8}, ZoneBorder},
		{platform.Point{X: 20, Y: 12}, ZoneBorder},
		{platform.Point{X: 20, Y: 8}, ZoneContent},
		{platform.Point{X: 50, Y: 8}, ZoneNone},
	}
	for _, tt := range tests {
		if got := ZoneAt(w, tt.p); got != tt.want {
			t.Errorf("ZoneAt(%v) = %s, want %s", tt.p, got, tt.want)
		}
	}
}
