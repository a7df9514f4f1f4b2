package apps

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/deskos/internal/registry"
	"github.com/1broseidon/deskos/internal/wm"
)

type openCall struct {
	appID  string
	title  string
	params wm.LaunchParams
}

type recorder struct {
	opens  []openCall
	closes int
}

func testContext(params wm.LaunchParams) (registry.Context, *recorder) {
	rec := &recorder{}
	ctx := registry.Context{
		WindowID: "w1",
		Params:   params,
		Open: func(appID, title string, params wm.LaunchParams) tea.Cmd {
			rec.opens = append(rec.opens, openCall{appID, title, params})
			return func() tea.Msg { return nil }
		},
		Close: func() tea.Cmd {
			rec.closes++
			return func() tea.Msg { return nil }
		},
	}
	return ctx, rec
}

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"backspace": tea.KeyBackspace,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"f2":        tea.KeyF2,
	"f3":        tea.KeyF3,
	"f5":        tea.KeyF5,
}

// key builds a KeyMsg: named keys map to their type, anything else is typed
// as runes.
func key(s string) tea.KeyMsg {
	if t, ok := namedKeys[s]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(v registry.View, keys ...string) {
	for _, k := range keys {
		v.Update(key(k))
	}
}

func contains(lines []string, want string) bool {
	for _, l := range lines {
		if strings.Contains(l, want) {
			return true
		}
	}
	return false
}

func TestNewRegistryBindsViews(t *testing.T) {
	r := NewRegistry(Options{DataDir: t.TempDir()})
	ctx, _ := testContext(nil)
	for _, app := range registry.Builtin() {
		view := r.Render(app.ID, ctx)
		_, placeholder := view.(registry.Placeholder)
		want := app.ID == registry.LiveRoom || app.ID == registry.Assistant
		if placeholder != want {
			t.Errorf("%s: placeholder = %v, want %v", app.ID, placeholder, want)
		}
		if lines := view.Render(40, 10); len(lines) == 0 {
			t.Errorf("%s rendered nothing", app.ID)
		}
	}
}

func TestWrapAndWindow(t *testing.T) {
	got := wrap("one two three four", 9)
	if len(got) < 2 {
		t.Fatalf("wrap = %q, want at least two lines", got)
	}
	for _, l := range got {
		if len([]rune(l)) > 9 {
			t.Fatalf("line %q wider than 9", l)
		}
	}
	if wrap("x", 0) != nil {
		t.Fatal("zero width should wrap to nothing")
	}

	lines := []string{"a", "b", "c", "d"}
	out, off := window(lines, 10, 2)
	if off != 2 || strings.Join(out, "") != "cd" {
		t.Fatalf("window clamp = %q at %d", out, off)
	}
}

func TestDocumentScrolls(t *testing.T) {
	d := NewDocument("l1\nl2\nl3\nl4\nl5")
	if got := d.Render(10, 2); got[0] != "l1" {
		t.Fatalf("first line = %q", got[0])
	}
	press(d, "down", "down")
	if got := d.Render(10, 2); got[0] != "l3" {
		t.Fatalf("after scrolling first line = %q", got[0])
	}
	press(d, "down", "down", "down", "down")
	if got := d.Render(10, 2); got[1] != "l5" {
		t.Fatalf("scroll should stop at the end, got %q", got)
	}
}
