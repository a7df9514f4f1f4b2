// Package journal appends window manager events to a size-rotated log file.
package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/1broseidon/deskos/internal/wm"
)

// Level defines the journal verbosity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// eventLevel returns the level an event is recorded at. Pointer-driven
// geometry changes are frequent, so they sit below info.
func eventLevel(kind wm.EventKind) Level {
	switch kind {
	case wm.EventMoved, wm.EventResized, wm.EventFocused:
		return LevelDebug
	default:
		return LevelInfo
	}
}

// Config holds configuration for the journal.
type Config struct {
	Enabled   bool
	Level     Level
	FilePath  string
	MaxSizeMB int
	MaxFiles  int
}

// Journal records window events with file rotation.
type Journal struct {
	mu          sync.Mutex
	file        *os.File
	config      Config
	currentSize int64
	now         func() time.Time
}

// Open creates the journal file (and its directory) when cfg is enabled.
// A disabled journal is valid and discards everything.
func Open(cfg Config) (*Journal, error) {
	j := &Journal{config: cfg, now: time.Now}
	if !cfg.Enabled {
		return j, nil
	}

	dir := filepath.Dir(cfg.FilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory %s: %w", dir, err)
	}

	f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal %s: %w", cfg.FilePath, err)
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat journal: %w", err)
	}

	j.file = f
	j.currentSize = stat.Size()
	return j, nil
}

// Observe records ev. It has the wm.Observer signature so it can be handed to
// wm.WithObserver directly.
func (j *Journal) Observe(ev wm.Event) {
	if j == nil || !j.config.Enabled {
		return
	}
	if eventLevel(ev.Kind) < j.config.Level {
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file == nil {
		return
	}

	maxBytes := int64(j.config.MaxSizeMB) * 1024 * 1024
	if maxBytes > 0 && j.currentSize >= maxBytes {
		if err := j.rotate(); err != nil {
			fmt.Fprintf(os.Stderr, "journal rotation failed: %v\n", err)
		}
		if j.file == nil {
			return
		}
	}

	n, err := j.file.WriteString(j.format(ev))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to write journal entry: %v\n", err)
		return
	}
	j.currentSize += int64(n)
}

func (j *Journal) format(ev wm.Event) string {
	var sb strings.Builder
	sb.WriteString(j.now().Format("2006-01-02 15:04:05"))
	sb.WriteString(" [")
	sb.WriteString(strings.ToUpper(string(ev.Kind)))
	sb.WriteString("]")
	if ev.WindowID != "" {
		fmt.Fprintf(&sb, " window=%s", ev.WindowID)
	}
	if ev.AppID != "" {
		fmt.Fprintf(&sb, " app=%q", ev.AppID)
	}
	switch ev.Kind {
	case wm.EventClosed, wm.EventReset:
	default:
		b := ev.Bounds
		fmt.Fprintf(&sb, " z=%d bounds=%dx%d+%d+%d", ev.Z, b.Width, b.Height, b.X, b.Y)
	}
	sb.WriteString("\n")
	return sb.String()
}

// Close closes the journal file.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file == nil {
		return nil
	}
	err := j.file.Close()
	j.file = nil
	return err
}

// rotate shifts window-events.log to .1, .1 to .2 and so on, keeping at most
// MaxFiles rotated files.
func (j *Journal) rotate() error {
	if j.file != nil {
		j.file.Close()
		j.file = nil
	}

	basePath := j.config.FilePath
	for i := j.config.MaxFiles; i >= 1; i-- {
		oldPath := fmt.Sprintf("%s.%d", basePath, i)
		if i == j.config.MaxFiles {
			os.Remove(oldPath)
			continue
		}
		os.Rename(oldPath, fmt.Sprintf("%s.%d", basePath, i+1))
	}

	if j.config.MaxFiles > 0 {
		if err := os.Rename(basePath, basePath+".1"); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to rotate journal: %w", err)
		}
	} else {
		os.Remove(basePath)
	}

	f, err := os.OpenFile(basePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open new journal: %w", err)
	}

	j.file = f
	j.currentSize = 0
	return nil
}

// ParseLevel converts a string to Level. Unknown names map to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}
