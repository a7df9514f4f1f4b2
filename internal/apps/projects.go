package apps

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/deskos/internal/registry"
	"github.com/1broseidon/deskos/internal/wm"
)

// Projects lists the portfolio. Enter opens the selected project's source in
// the browser.
type Projects struct {
	ctx      registry.Context
	selected int
	offset   int
}

func NewProjects(ctx registry.Context) *Projects {
	return &Projects{ctx: ctx}
}

// Selected returns the highlighted project.
func (p *Projects) Selected() Project {
	return Portfolio[p.selected]
}

// ViewSource opens the selected project's repository in the browser.
func (p *Projects) ViewSource() tea.Cmd {
	project := p.Selected()
	if project.GitHubURL == "" {
		return nil
	}
	return p.ctx.OpenApp(registry.Browser, project.Name, wm.LaunchParams{ParamURL: project.GitHubURL})
}

func (p *Projects) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		p.selected = max(p.selected-1, 0)
	case "down", "j":
		p.selected = min(p.selected+1, len(Portfolio)-1)
	case "enter", "o":
		return p.ViewSource()
	}
	return nil
}

func (p *Projects) Render(width, height int) []string {
	if height <= 0 {
		return nil
	}
	lines := []string{"Projects", "A collection of systems, tools, and research explorations.", ""}
	top := 0
	for i, project := range Portfolio {
		marker := "  "
		if i == p.selected {
			marker = "▸ "
			top = len(lines)
		}
		lines = append(lines, marker+project.Name)
		for _, l := range wrap(project.Tagline, width-2) {
			lines = append(lines, "  "+l)
		}
		for _, l := range wrap(project.Description, width-2) {
			lines = append(lines, "  "+l)
		}
		lines = append(lines, "  ["+strings.Join(project.Tech, "] [")+"]", "")
	}
	lines = append(lines, "enter: view source")

	// Keep the selected project's heading on screen.
	if top < p.offset {
		p.offset = top
	}
	if top >= p.offset+height {
		p.offset = top - height + 1
	}
	out, offset := window(lines, p.offset, height)
	p.offset = offset
	return out
}
