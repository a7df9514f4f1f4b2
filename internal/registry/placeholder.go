package registry

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// Placeholder is the view shown for applications that have no content yet.
type Placeholder struct {
	Name string
}

// Message returns the placeholder text.
func (p Placeholder) Message() string {
	return "App " + p.Name + " is coming soon."
}

func (p Placeholder) Update(tea.KeyMsg) tea.Cmd {
	return nil
}

// Render centers the message in the content area.
func (p Placeholder) Render(width, height int) []string {
	if height <= 0 {
		return nil
	}
	lines := make([]string, height)
	msg := runewidth.Truncate(p.Message(), width, "…")
	pad := (width - runewidth.StringWidth(msg)) / 2
	lines[height/2] = strings.Repeat(" ", max(pad, 0)) + msg
	return lines
}
