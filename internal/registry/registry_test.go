package registry

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/deskos/internal/wm"
)

type stubView struct {
	ctx Context
}

func (v *stubView) Update(tea.KeyMsg) tea.Cmd { return nil }
func (v *stubView) Render(int, int) []string { return []string{"stub " + v.ctx.Params.Get("k")} }

func TestLookup(t *testing.T) {
	r := New(Builtin())
	app, ok := r.Lookup(Terminal)
	if !ok {
		t.Fatal("terminal should be registered")
	}
	if app.Name != "Terminal" {
		t.Fatalf("Name = %q", app.Name)
	}
	if _, ok := r.Lookup("nope"); ok {
		t.Fatal("unknown id should not be found")
	}
	if name, ok := r.Title(Notes); !ok || name != "Notes" {
		t.Fatalf("Title(notes) = %q, %v", name, ok)
	}
}

func TestNewDropsDuplicateIDs(t *testing.T) {
	r := New([]App{{ID: "a", Name: "First"}, {ID: "a", Name: "Second"}, {ID: "b"}})
	if len(r.List()) != 2 {
		t.Fatalf("List() = %v", r.List())
	}
	if app, _ := r.Lookup("a"); app.Name != "First" {
		t.Fatalf("duplicate replaced the first entry: %+v", app)
	}
}

func TestDockOrderAndMembership(t *testing.T) {
	r := New(Builtin())
	dock := r.Dock()
	if len(dock) != 10 {
		t.Fatalf("dock has %d apps, want 10", len(dock))
	}
	if dock[0].ID != Launchpad || dock[len(dock)-1].ID != Assistant {
		t.Fatalf("dock order = %v", dock)
	}
	for _, app := range dock {
		if app.ID == Resume || app.ID == About {
			t.Fatalf("%s should not be docked", app.ID)
		}
	}
}

func TestSelectSkipsUnknown(t *testing.T) {
	r := New(Builtin())
	got := r.Select([]string{Notes, "ghost", Browser})
	if len(got) != 2 || got[0].ID != Notes || got[1].ID != Browser {
		t.Fatalf("Select = %v", got)
	}
}

func TestRegisterRejectsUnknown(t *testing.T) {
	r := New(Builtin())
	err := r.Register("ghost", func(Context) View { return nil })
	if !errors.Is(err, ErrUnknownApp) {
		t.Fatalf("err = %v, want ErrUnknownApp", err)
	}
}

func TestRenderDispatch(t *testing.T) {
	r := New(Builtin())
	if err := r.Register(Notes, func(ctx Context) View { return &stubView{ctx: ctx} }); err != nil {
		t.Fatal(err)
	}

	v := r.Render(Notes, Context{Params: wm.LaunchParams{"k": "v"}})
	sv, ok := v.(*stubView)
	if !ok {
		t.Fatalf("Render returned %T", v)
	}
	if sv.ctx.AppID != Notes {
		t.Fatalf("ctx.AppID = %q", sv.ctx.AppID)
	}
	if len(sv.ctx.Catalog) != len(Builtin()) {
		t.Fatalf("catalog not populated: %d", len(sv.ctx.Catalog))
	}
	if got := v.Render(10, 1); got[0] != "stub v" {
		t.Fatalf("Render lines = %v", got)
	}
}

func TestRenderPlaceholder(t *testing.T) {
	r := New(Builtin())
	tests := []struct {
		appID string
		want  string
	}{
		{"ghost", "App ghost is coming soon."},
		{LiveRoom, "App LiveRoom is coming soon."},
	}
	for _, tt := range tests {
		t.Run(tt.appID, func(t *testing.T) {
			v := r.Render(tt.appID, Context{})
			p, ok := v.(Placeholder)
			if !ok {
				t.Fatalf("Render returned %T, want Placeholder", v)
			}
			if p.Message() != tt.want {
				t.Fatalf("Message() = %q, want %q", p.Message(), tt.want)
			}
			lines := v.Render(40, 5)
			if len(lines) != 5 || !strings.Contains(lines[2], tt.want) {
				t.Fatalf("placeholder lines = %q", lines)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	r := New(Builtin())
	if got := r.Search(""); len(got) != len(Builtin()) {
		t.Fatalf("empty search returned %d apps", len(got))
	}
	got := r.Search("calc")
	if len(got) == 0 || got[0].ID != Calculator {
		t.Fatalf("Search(calc) = %v", got)
	}
	if got := r.Search("zzzz"); len(got) != 0 {
		t.Fatalf("Search(zzzz) = %v", got)
	}
}

func TestContextCallbacksNilSafe(t *testing.T) {
	var ctx Context
	if ctx.OpenApp(Notes, "", nil) != nil || ctx.CloseSelf() != nil {
		t.Fatal("nil callbacks should yield nil commands")
	}
}
