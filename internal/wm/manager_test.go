package wm

import (
	"fmt"
	"testing"

	"github.com/1broseidon/deskos/internal/platform"
)

// browserPolicy mirrors the pixel geometry of the web desktop.
func browserPolicy() Policy {
	return Policy{
		TopInset:            32,
		BottomInset:         88,
		MinWidth:            200,
		MinHeight:           150,
		DefaultWidth:        850,
		DefaultHeight:       600,
		CascadeOrigin:       platform.Point{X: 100, Y: 100},
		CascadeStep:         platform.Point{X: 30, Y: 30},
		MobileBreakpoint:    768,
		MobileOrigin:        platform.Point{X: 20, Y: 60},
		MobileWidthPercent:  90,
		MobileHeightPercent: 70,
		BaseZ:               10,
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("w%d", n)
	}
}

func newTestManager(opts ...Option) *Manager {
	base := []Option{
		WithViewport(1440, 900),
		WithIDGenerator(sequentialIDs()),
		WithTitles(func(appID string) (string, bool) {
			switch appID {
			case "notes":
				return "Notes", true
			case "calculator":
				return "Calculator", true
			}
			return "", false
		}),
	}
	return NewManager(browserPolicy(), append(base, opts...)...)
}

func mustWindow(t *testing.T, m *Manager, id string) Window {
	t.Helper()
	w, ok := m.Window(id)
	if !ok {
		t.Fatalf("window %q not found", id)
	}
	return w
}

func TestOpenCreatesOneWindowPerApp(t *testing.T) {
	m := newTestManager()
	apps := []string{"notes", "calculator", "terminal", "notes", "terminal"}
	for _, app := range apps {
		m.Open(app, "", nil)
	}
	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
	seen := map[string]bool{}
	for _, w := range m.Windows() {
		if seen[w.AppID] {
			t.Fatalf("duplicate window for %s", w.AppID)
		}
		seen[w.AppID] = true
	}
}

func TestOpenCascadesDesktopGeometry(t *testing.T) {
	m := newTestManager()
	first, created := m.Open("notes", "", nil)
	if !created {
		t.Fatal("first open should create a window")
	}
	second, _ := m.Open("calculator", "", nil)

	w1 := mustWindow(t, m, first)
	want1 := platform.Rect{X: 100, Y: 100, Width: 850, Height: 600}
	if w1.Bounds != want1 {
		t.Fatalf("first bounds = %+v, want %+v", w1.Bounds, want1)
	}
	w2 := mustWindow(t, m, second)
	want2 := platform.Rect{X: 130, Y: 130, Width: 850, Height: 600}
	if w2.Bounds != want2 {
		t.Fatalf("second bounds = %+v, want %+v", w2.Bounds, want2)
	}
}

func TestOpenUsesMobileGeometry(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want platform.Rect
	}{
		{
			name: "narrow viewport",
			opts: []Option{WithViewport(400, 800)},
			want: platform.Rect{X: 20, Y: 60, Width: 360, Height: 560},
		},
		{
			name: "mobile view mode on wide viewport",
			opts: []Option{WithViewMode(ViewMobile)},
			want: platform.Rect{X: 20, Y: 60, Width: 1296, Height: 630},
		},
		{
			name: "tiny viewport clamps to floor",
			opts: []Option{WithViewport(100, 100)},
			want: platform.Rect{X: 20, Y: 60, Width: 200, Height: 150},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(tt.opts...)
			id, _ := m.Open("notes", "", nil)
			if got := mustWindow(t, m, id).Bounds; got != tt.want {
				t.Fatalf("bounds = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOpenTitleResolution(t *testing.T) {
	m := newTestManager()
	a, _ := m.Open("notes", "", nil)
	b, _ := m.Open("browser", "Portfolio", nil)
	c, _ := m.Open("mystery", "", nil)

	if got := mustWindow(t, m, a).Title; got != "Notes" {
		t.Errorf("registry title = %q, want Notes", got)
	}
	if got := mustWindow(t, m, b).Title; got != "Portfolio" {
		t.Errorf("override title = %q, want Portfolio", got)
	}
	if got := mustWindow(t, m, c).Title; got != DefaultTitle {
		t.Errorf("fallback title = %q, want %q", got, DefaultTitle)
	}
}

func TestReopenKeepsTitleAndRaises(t *testing.T) {
	m := newTestManager()
	notes, _ := m.Open("notes", "", nil)
	calc, _ := m.Open("calculator", "", nil)
	again, created := m.Open("notes", "Something Else", nil)

	if created {
		t.Fatal("reopen should not create")
	}
	if again != notes {
		t.Fatalf("reopen id = %q, want %q", again, notes)
	}
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	n := mustWindow(t, m, notes)
	c := mustWindow(t, m, calc)
	if n.Title != "Notes" {
		t.Fatalf("title = %q, want unchanged Notes", n.Title)
	}
	if n.Z <= c.Z {
		t.Fatalf("notes z %d should exceed calculator z %d", n.Z, c.Z)
	}
	if m.ActiveApp() != "notes" {
		t.Fatalf("ActiveApp() = %q, want notes", m.ActiveApp())
	}
}

func TestReopenRestoresMinimizedAndReplacesParams(t *testing.T) {
	m := newTestManager()
	id, _ := m.Open("browser", "", LaunchParams{"url": "https://a.example"})
	m.Minimize(id)

	m.Open("browser", "", nil)
	w := mustWindow(t, m, id)
	if w.Minimized {
		t.Fatal("reopen should clear minimized")
	}
	if w.Params.Get("url") != "https://a.example" {
		t.Fatalf("empty params should keep existing, got %v", w.Params)
	}

	m.Open("browser", "", LaunchParams{"url": "https://b.example"})
	if got := mustWindow(t, m, id).Params.Get("url"); got != "https://b.example" {
		t.Fatalf("params url = %q, want https://b.example", got)
	}
}

func TestFocusRaisesAboveAll(t *testing.T) {
	m := newTestManager()
	var ids []string
	for _, app := range []string{"a", "b", "c", "d"} {
		id, _ := m.Open(app, "", nil)
		ids = append(ids, id)
	}
	for _, id := range []string{ids[0], ids[2], ids[0], ids[1]} {
		if !m.Focus(id) {
			t.Fatalf("Focus(%q) = false", id)
		}
		top := mustWindow(t, m, id)
		for _, w := range m.Windows() {
			if w.ID != id && w.Z >= top.Z {
				t.Fatalf("after Focus(%s): %s z=%d not below %d", id, w.ID, w.Z, top.Z)
			}
		}
	}
}

func TestZCounterStrictlyIncreases(t *testing.T) {
	m := newTestManager()
	a, _ := m.Open("a", "", nil)
	last := mustWindow(t, m, a).Z
	if last != 11 {
		t.Fatalf("first z = %d, want 11", last)
	}
	b, _ := m.Open("b", "", nil)
	steps := []func(){
		func() { m.Focus(a) },
		func() { m.Focus(a) },
		func() { m.Open("b", "", nil) },
		func() { m.Focus(b) },
	}
	for i, step := range steps {
		step()
		top, ok := m.Top()
		if !ok {
			t.Fatal("Top() returned no window")
		}
		if top.Z <= last {
			t.Fatalf("step %d: z %d not above %d", i, top.Z, last)
		}
		last = top.Z
	}
}

func TestFocusRestoresMinimized(t *testing.T) {
	m := newTestManager()
	a, _ := m.Open("a", "", nil)
	b, _ := m.Open("b", "", nil)
	m.Minimize(a)

	if got := m.MinimizedApps(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("MinimizedApps() = %v, want [a]", got)
	}
	for _, w := range m.Visible() {
		if w.ID == a {
			t.Fatal("minimized window should not be visible")
		}
	}
	if m.Len() != 2 {
		t.Fatal("minimize must not remove the window")
	}

	m.Focus(a)
	w := mustWindow(t, m, a)
	if w.Minimized {
		t.Fatal("focus should clear minimized")
	}
	if w.Z <= mustWindow(t, m, b).Z {
		t.Fatal("focus should raise the restored window")
	}
}

func TestMinimizeKeepsMaximized(t *testing.T) {
	m := newTestManager()
	id, _ := m.Open("a", "", nil)
	m.ToggleMaximize(id)
	m.Minimize(id)
	w := mustWindow(t, m, id)
	if !w.Maximized || w.Saved == nil {
		t.Fatalf("minimize should keep maximized state: %+v", w)
	}
}

func TestToggleMaximizeRoundTrip(t *testing.T) {
	m := newTestManager()
	id, _ := m.Open("a", "", nil)
	m.UpdateSize(id, 800, 600)
	m.UpdatePosition(id, 100, 100)
	before := mustWindow(t, m, id).Bounds

	m.ToggleMaximize(id)
	w := mustWindow(t, m, id)
	if !w.Maximized || w.Saved == nil || *w.Saved != before {
		t.Fatalf("maximize did not save geometry: %+v", w)
	}
	full := platform.Rect{X: 0, Y: 32, Width: 1440, Height: 900 - 120}
	if w.Bounds != full {
		t.Fatalf("maximized bounds = %+v, want %+v", w.Bounds, full)
	}

	m.ToggleMaximize(id)
	w = mustWindow(t, m, id)
	if w.Maximized || w.Saved != nil {
		t.Fatalf("restore did not clear state: %+v", w)
	}
	want := platform.Rect{X: 100, Y: 100, Width: 800, Height: 600}
	if w.Bounds != want {
		t.Fatalf("restored bounds = %+v, want %+v", w.Bounds, want)
	}
}

func TestSetViewportRefitsMaximized(t *testing.T) {
	m := newTestManager()
	a, _ := m.Open("a", "", nil)
	b, _ := m.Open("b", "", nil)
	m.ToggleMaximize(a)
	before := mustWindow(t, m, b).Bounds

	m.SetViewport(1000, 700)
	if got := mustWindow(t, m, a).Bounds; got != (platform.Rect{X: 0, Y: 32, Width: 1000, Height: 580}) {
		t.Fatalf("maximized bounds after resize = %+v", got)
	}
	if got := mustWindow(t, m, b).Bounds; got != before {
		t.Fatalf("normal window changed: %+v", got)
	}
}

func TestUpdateSizeClampsToFloor(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{500, 400, 500, 400},
		{10, 400, 200, 400},
		{500, 10, 500, 150},
		{-50, -9999, 200, 150},
		{200, 150, 200, 150},
	}
	m := newTestManager()
	id, _ := m.Open("a", "", nil)
	for _, tt := range tests {
		m.UpdateSize(id, tt.w, tt.h)
		got := mustWindow(t, m, id).Bounds
		if got.Width != tt.wantW || got.Height != tt.wantH {
			t.Errorf("UpdateSize(%d,%d) = %dx%d, want %dx%d", tt.w, tt.h, got.Width, got.Height, tt.wantW, tt.wantH)
		}
	}
}

func TestUpdatePositionClampsTopOnly(t *testing.T) {
	tests := []struct {
		x, y         int
		wantX, wantY int
	}{
		{150, -400, 150, 32},
		{-300, 31, -300, 32},
		{5000, 32, 5000, 32},
		{7, 500, 7, 500},
	}
	m := newTestManager()
	id, _ := m.Open("a", "", nil)
	for _, tt := range tests {
		m.UpdatePosition(id, tt.x, tt.y)
		got := mustWindow(t, m, id).Bounds
		if got.X != tt.wantX || got.Y != tt.wantY {
			t.Errorf("UpdatePosition(%d,%d) = (%d,%d), want (%d,%d)", tt.x, tt.y, got.X, got.Y, tt.wantX, tt.wantY)
		}
	}
}

func TestCloseClearsActiveWithoutReassigning(t *testing.T) {
	m := newTestManager()
	a, _ := m.Open("a", "", nil)
	b, _ := m.Open("b", "", nil)
	zA := mustWindow(t, m, a).Z

	if !m.Close(b) {
		t.Fatal("Close returned false")
	}
	if m.ActiveApp() != "" {
		t.Fatalf("ActiveApp() = %q, want empty", m.ActiveApp())
	}
	if got := mustWindow(t, m, a).Z; got != zA {
		t.Fatalf("closing changed other z: %d -> %d", zA, got)
	}

	m.Focus(a)
	c, _ := m.Open("c", "", nil)
	m.Focus(a)
	m.Close(c)
	if m.ActiveApp() != "a" {
		t.Fatalf("closing an inactive window should keep active app, got %q", m.ActiveApp())
	}
}

func TestUnknownIDIsNoop(t *testing.T) {
	m := newTestManager()
	id, _ := m.Open("a", "", nil)
	before := m.Windows()

	ops := map[string]func() bool{
		"close":    func() bool { return m.Close("missing") },
		"minimize": func() bool { return m.Minimize("missing") },
		"maximize": func() bool { return m.ToggleMaximize("missing") },
		"focus":    func() bool { return m.Focus("missing") },
		"move":     func() bool { return m.UpdatePosition("missing", 1, 1) },
		"resize":   func() bool { return m.UpdateSize("missing", 1, 1) },
	}
	for name, op := range ops {
		if op() {
			t.Errorf("%s on unknown id returned true", name)
		}
	}
	after := m.Windows()
	if len(after) != 1 || after[0].ID != id || after[0].Bounds != before[0].Bounds || after[0].Z != before[0].Z {
		t.Fatalf("unknown-id operations mutated state: %+v", after)
	}
}

func TestIDsAreNeverReused(t *testing.T) {
	m := NewManager(browserPolicy())
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		id, _ := m.Open("a", "", nil)
		if seen[id] {
			t.Fatalf("id %q reused", id)
		}
		seen[id] = true
		m.Close(id)
	}
}

func TestResetKeepsCounterMonotonic(t *testing.T) {
	m := newTestManager()
	a, _ := m.Open("a", "", nil)
	z := mustWindow(t, m, a).Z
	m.Reset()
	if m.Len() != 0 || m.ActiveApp() != "" {
		t.Fatalf("Reset left state: len=%d active=%q", m.Len(), m.ActiveApp())
	}
	b, _ := m.Open("a", "", nil)
	if got := mustWindow(t, m, b).Z; got <= z {
		t.Fatalf("z after reset = %d, want > %d", got, z)
	}
}

func TestVisibleOrderedByZ(t *testing.T) {
	m := newTestManager()
	a, _ := m.Open("a", "", nil)
	b, _ := m.Open("b", "", nil)
	c, _ := m.Open("c", "", nil)
	m.Focus(a)
	m.Minimize(b)

	visible := m.Visible()
	if len(visible) != 2 || visible[0].ID != c || visible[1].ID != a {
		t.Fatalf("Visible() order = %+v", visible)
	}
	top, _ := m.Top()
	if top.ID != a {
		t.Fatalf("Top() = %s, want %s", top.ID, a)
	}
}

func TestObserverReceivesEvents(t *testing.T) {
	var kinds []EventKind
	m := newTestManager(WithObserver(func(ev Event) { kinds = append(kinds, ev.Kind) }))
	id, _ := m.Open("a", "", nil)
	m.Open("a", "", nil)
	m.UpdatePosition(id, 1, 1)
	m.UpdateSize(id, 1, 1)
	m.ToggleMaximize(id)
	m.ToggleMaximize(id)
	m.Minimize(id)
	m.Focus(id)
	m.Close(id)
	m.Close(id)
	m.Reset()

	want := []EventKind{
		EventOpened, EventReopened, EventMoved, EventResized, EventMaximized,
		EventRestored, EventMinimized, EventFocused, EventClosed, EventReset,
	}
	if fmt.Sprint(kinds) != fmt.Sprint(want) {
		t.Fatalf("events = %v, want %v", kinds, want)
	}
}

func TestWindowsReturnsCopies(t *testing.T) {
	m := newTestManager()
	id, _ := m.Open("a", "", LaunchParams{"k": "v"})
	m.ToggleMaximize(id)
	ws := m.Windows()
	ws[0].Bounds.X = 999
	ws[0].Saved.X = 999
	ws[0].Params["k"] = "changed"

	w := mustWindow(t, m, id)
	if w.Bounds.X == 999 || w.Saved.X == 999 || w.Params.Get("k") != "v" {
		t.Fatalf("caller mutation leaked into manager: %+v", w)
	}
}
