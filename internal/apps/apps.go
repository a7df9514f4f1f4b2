// Package apps contains the interior applications of the desktop. Each one
// is a registry.View: it receives the keys routed to its window and renders
// plain text lines that the compositor clips into the window frame.
package apps

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/1broseidon/deskos/internal/registry"
)

// Options configures the built-in applications.
type Options struct {
	// DataDir is where notes exports and code previews are written.
	DataDir string
	// Now is the clock used for note dates. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) dataPath(elem ...string) string {
	return filepath.Join(append([]string{o.DataDir}, elem...)...)
}

// NewRegistry returns the built-in catalog with every implemented application
// bound to its view. LiveRoom and Assistant stay unbound and render the
// placeholder.
func NewRegistry(opts Options) *registry.Registry {
	r := registry.New(registry.Builtin())
	factories := map[string]registry.Factory{
		registry.Launchpad:  func(ctx registry.Context) registry.View { return NewLaunchpad(ctx, r) },
		registry.Finder:     func(ctx registry.Context) registry.View { return NewFinder(ctx) },
		registry.Terminal:   func(ctx registry.Context) registry.View { return NewTerminal(ctx) },
		registry.CodeStudio: func(ctx registry.Context) registry.View { return NewCodeStudio(ctx, opts) },
		registry.Projects:   func(ctx registry.Context) registry.View { return NewProjects(ctx) },
		registry.Notes:      func(ctx registry.Context) registry.View { return NewNotes(ctx, opts) },
		registry.Calculator: func(ctx registry.Context) registry.View { return NewCalculator() },
		registry.Browser:    func(ctx registry.Context) registry.View { return NewBrowser(ctx) },
		registry.Resume:     func(ctx registry.Context) registry.View { return NewDocument(resumeText) },
		registry.About:      func(ctx registry.Context) registry.View { return NewDocument(aboutText) },
	}
	for id, f := range factories {
		// Every id above is part of the builtin catalog.
		_ = r.Register(id, f)
	}
	return r
}

// wrap breaks text into lines of at most width cells.
func wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		if para == "" {
			out = append(out, "")
			continue
		}
		rendered := lipgloss.NewStyle().Width(width).Render(para)
		for _, line := range strings.Split(rendered, "\n") {
			out = append(out, strings.TrimRight(line, " "))
		}
	}
	return out
}

// fit pads or truncates s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(s, width, "…")
	return runewidth.FillRight(s, width)
}

func center(s string, width int) string {
	s = runewidth.Truncate(s, width, "…")
	pad := (width - runewidth.StringWidth(s)) / 2
	return strings.Repeat(" ", max(pad, 0)) + s
}

// tail keeps the last n lines.
func tail(lines []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(lines) > n {
		return lines[len(lines)-n:]
	}
	return lines
}

// window returns at most n lines starting at offset, clamping the offset.
func window(lines []string, offset, n int) ([]string, int) {
	if n <= 0 {
		return nil, 0
	}
	offset = min(offset, max(len(lines)-n, 0))
	offset = max(offset, 0)
	end := min(offset+n, len(lines))
	return lines[offset:end], offset
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Focus()
	return ti
}

// inputLine renders a text input's value with a block cursor.
func inputLine(ti textinput.Model) string {
	value := []rune(ti.Value())
	if len(value) == 0 && ti.Placeholder != "" {
		return "█" + ti.Placeholder
	}
	pos := min(max(ti.Position(), 0), len(value))
	return string(value[:pos]) + "█" + string(value[pos:])
}
