package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/1broseidon/deskos/internal/platform"
	"github.com/1broseidon/deskos/internal/wm"
)

func openTest(t *testing.T, cfg Config) *Journal {
	t.Helper()
	j, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	j.now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC) }
	t.Cleanup(func() { j.Close() })
	return j
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(data)
}

func TestObserveFormatsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "window-events.log")
	j := openTest(t, Config{Enabled: true, Level: LevelInfo, FilePath: path, MaxSizeMB: 1, MaxFiles: 2})

	j.Observe(wm.Event{Kind: wm.EventOpened, WindowID: "w1", AppID: "notes", Z: 11, Bounds: platform.Rect{X: 4, Y: 2, Width: 64, Height: 18}})
	j.Observe(wm.Event{Kind: wm.EventClosed, WindowID: "w1", AppID: "notes"})

	got := readFile(t, path)
	want := `2024-03-01 09:30:00 [OPENED] window=w1 app="notes" z=11 bounds=64x18+4+2
2024-03-01 09:30:00 [CLOSED] window=w1 app="notes"
`
	if got != want {
		t.Fatalf("journal =\n%s\nwant\n%s", got, want)
	}
}

func TestObserveFiltersByLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	j := openTest(t, Config{Enabled: true, Level: LevelInfo, FilePath: path, MaxSizeMB: 1, MaxFiles: 1})

	for _, kind := range []wm.EventKind{wm.EventMoved, wm.EventResized, wm.EventFocused} {
		j.Observe(wm.Event{Kind: kind, WindowID: "w1"})
	}
	if got := readFile(t, path); got != "" {
		t.Fatalf("debug events leaked at info level: %q", got)
	}

	j.config.Level = LevelDebug
	j.Observe(wm.Event{Kind: wm.EventMoved, WindowID: "w1"})
	if got := readFile(t, path); !strings.Contains(got, "[MOVED]") {
		t.Fatalf("expected moved entry at debug level, got %q", got)
	}
}

func TestDisabledJournalWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	j := openTest(t, Config{Enabled: false, FilePath: path})
	j.Observe(wm.Event{Kind: wm.EventOpened, WindowID: "w1"})
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no journal file, stat err = %v", err)
	}

	var nilJournal *Journal
	nilJournal.Observe(wm.Event{Kind: wm.EventOpened})
	if err := nilJournal.Close(); err != nil {
		t.Fatalf("nil Close: %v", err)
	}
}

func TestRotationKeepsMaxFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	j := openTest(t, Config{Enabled: true, Level: LevelInfo, FilePath: path, MaxSizeMB: 1, MaxFiles: 2})

	for i := range 3 {
		// Force a rotation before every write after the first.
		if i > 0 {
			j.currentSize = 1024 * 1024
		}
		j.Observe(wm.Event{Kind: wm.EventOpened, WindowID: string(rune('a' + i))})
	}

	if got := readFile(t, path); !strings.Contains(got, "window=c") {
		t.Fatalf("current journal = %q", got)
	}
	if got := readFile(t, path+".1"); !strings.Contains(got, "window=b") {
		t.Fatalf(".1 = %q", got)
	}
	if got := readFile(t, path+".2"); !strings.Contains(got, "window=a") {
		t.Fatalf(".2 = %q", got)
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Fatalf("expected no .3 file, stat err = %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
		"bogus":   LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
