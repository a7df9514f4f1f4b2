package apps

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/deskos/internal/registry"
)

// Searcher filters the application catalog.
type Searcher interface {
	Search(query string) []registry.App
}

const launchpadTile = 18

// Launchpad is a filterable grid of docked applications. Opening one closes
// the launchpad window.
type Launchpad struct {
	ctx      registry.Context
	search   Searcher
	query    textinput.Model
	selected int
	cols     int
}

func NewLaunchpad(ctx registry.Context, search Searcher) *Launchpad {
	return &Launchpad{ctx: ctx, search: search, query: newInput("type to filter", 32), cols: 1}
}

// Apps returns the grid entries for the current filter.
func (l *Launchpad) Apps() []registry.App {
	var found []registry.App
	if l.search != nil {
		found = l.search.Search(l.query.Value())
	} else {
		found = l.ctx.Catalog
	}
	out := make([]registry.App, 0, len(found))
	for _, app := range found {
		if app.Dock && app.ID != registry.Launchpad {
			out = append(out, app)
		}
	}
	return out
}

// Selected returns the highlighted application.
func (l *Launchpad) Selected() (registry.App, bool) {
	apps := l.Apps()
	if l.selected < 0 || l.selected >= len(apps) {
		return registry.App{}, false
	}
	return apps[l.selected], true
}

// Launch opens app and closes the launchpad.
func (l *Launchpad) Launch(app registry.App) tea.Cmd {
	return tea.Sequence(l.ctx.OpenApp(app.ID, "", nil), l.ctx.CloseSelf())
}

func (l *Launchpad) move(delta int) {
	n := len(l.Apps())
	if n == 0 {
		l.selected = 0
		return
	}
	l.selected = min(max(l.selected+delta, 0), n-1)
}

func (l *Launchpad) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return l.ctx.CloseSelf()
	case "enter":
		if app, ok := l.Selected(); ok {
			return l.Launch(app)
		}
		return nil
	case "left":
		l.move(-1)
		return nil
	case "right":
		l.move(1)
		return nil
	case "up":
		l.move(-l.cols)
		return nil
	case "down":
		l.move(l.cols)
		return nil
	}
	var cmd tea.Cmd
	l.query, cmd = l.query.Update(msg)
	l.selected = 0
	return cmd
}

// Click launches the tile under the pointer.
func (l *Launchpad) Click(x, y int) tea.Cmd {
	row := y - 3
	if row < 0 || x < 0 {
		return nil
	}
	i := row*l.cols + x/launchpadTile
	apps := l.Apps()
	if x/launchpadTile >= l.cols || i >= len(apps) {
		return nil
	}
	l.selected = i
	return l.Launch(apps[i])
}

func (l *Launchpad) Render(width, height int) []string {
	if height <= 0 {
		return nil
	}
	l.cols = max(width/launchpadTile, 1)
	out := []string{
		fit("Applications", max(width-7, 0)) + "[esc] ",
		"🔍 " + inputLine(l.query),
		"",
	}
	apps := l.Apps()
	var row strings.Builder
	for i, app := range apps {
		marker := " "
		if i == l.selected {
			marker = "▸"
		}
		row.WriteString(fit(marker+app.Icon+" "+app.Name, launchpadTile))
		if (i+1)%l.cols == 0 || i == len(apps)-1 {
			out = append(out, row.String())
			row.Reset()
		}
	}
	if len(apps) == 0 {
		out = append(out, "No applications match.")
	}
	if len(out) > height {
		out = out[:height]
	}
	return out
}
