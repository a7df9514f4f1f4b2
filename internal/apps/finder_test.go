package apps

import (
	"testing"

	"github.com/1broseidon/deskos/internal/registry"
)

func TestFinderStartsInHome(t *testing.T) {
	ctx, _ := testContext(nil)
	f := NewFinder(ctx)
	if f.Path() != homeDirectory {
		t.Fatalf("Path() = %q", f.Path())
	}
	if n := len(f.Cwd().Children); n != 7 {
		t.Fatalf("home has %d entries, want 7", n)
	}
	out := f.Render(50, 14)
	if !contains(out, "7 items   Storage: Fully Abstracted") {
		t.Fatalf("footer missing from %q", out)
	}
}

func TestFinderNavigation(t *testing.T) {
	ctx, rec := testContext(nil)
	f := NewFinder(ctx)

	press(f, "enter")
	if f.Path() != homeDirectory+"/Documents" {
		t.Fatalf("after enter Path() = %q", f.Path())
	}
	if len(rec.opens) != 0 {
		t.Fatal("entering a directory must not open an app")
	}
	press(f, "backspace", "backspace", "backspace")
	if f.Path() != "/" {
		t.Fatalf("Path() = %q, want /", f.Path())
	}
	if f.Up() {
		t.Fatal("Up at the root should report false")
	}
	f.Sidebar(0)
	if f.Path() != homeDirectory {
		t.Fatalf("home sidebar entry Path() = %q", f.Path())
	}
}

func TestFinderOpensFileApps(t *testing.T) {
	tests := []struct {
		downs int
		app   string
		title string
	}{
		{2, registry.Projects, "Projects"},
		{3, registry.Resume, "Resume.pdf"},
		{4, registry.Notes, "Notes"},
		{5, registry.CodeStudio, "CodeStudio"},
		{6, registry.Terminal, "Terminal"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			ctx, rec := testContext(nil)
			f := NewFinder(ctx)
			for range tt.downs {
				press(f, "down")
			}
			if cmd := f.Update(key("enter")); cmd == nil {
				t.Fatal("opening a file should return a command")
			}
			if len(rec.opens) != 1 {
				t.Fatalf("opens = %+v", rec.opens)
			}
			got := rec.opens[0]
			if got.appID != tt.app || got.title != tt.title {
				t.Fatalf("opened %q titled %q, want %q titled %q", got.appID, got.title, tt.app, tt.title)
			}
		})
	}
}

func TestFinderSelectionClamps(t *testing.T) {
	ctx, _ := testContext(nil)
	f := NewFinder(ctx)
	for range 20 {
		press(f, "down")
	}
	if n, _ := f.Selected(); n.Name != "Terminal" {
		t.Fatalf("selected %q", n.Name)
	}
	for range 20 {
		press(f, "up")
	}
	if n, _ := f.Selected(); n.Name != "Documents" {
		t.Fatalf("selected %q", n.Name)
	}
}

func TestFinderSidebarMessages(t *testing.T) {
	ctx, _ := testContext(nil)
	f := NewFinder(ctx)
	press(f, "3")
	if f.Status() != "Downloads folder is empty" {
		t.Fatalf("status = %q", f.Status())
	}
	if out := f.Render(50, 12); out[len(out)-1] == "" || !contains(out, "Downloads folder is empty") {
		t.Fatalf("status not rendered: %q", out)
	}
	press(f, "down")
	if f.Status() != "" {
		t.Fatal("status should clear on the next key")
	}
}

func TestFinderClickSelectsThenOpens(t *testing.T) {
	ctx, rec := testContext(nil)
	f := NewFinder(ctx)
	// Entries start on content row 2; Resume.pdf is the fourth.
	f.Click(finderSidebarWidth+2, 5)
	if n, _ := f.Selected(); n.Name != "Resume.pdf" {
		t.Fatalf("selected %q", n.Name)
	}
	if len(rec.opens) != 0 {
		t.Fatal("first click should only select")
	}
	f.Click(finderSidebarWidth+2, 5)
	if len(rec.opens) != 1 || rec.opens[0].appID != registry.Resume {
		t.Fatalf("opens = %+v", rec.opens)
	}

	f.Click(1, 3)
	if f.Status() != "Recents is currently being indexed by FOSal." {
		t.Fatalf("sidebar click status = %q", f.Status())
	}
}
