package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/mattn/go-runewidth"

	"github.com/1broseidon/deskos/internal/apps"
	"github.com/1broseidon/deskos/internal/compositor"
	"github.com/1broseidon/deskos/internal/platform"
	"github.com/1broseidon/deskos/internal/registry"
	"github.com/1broseidon/deskos/internal/wm"
)

// menuAction is what a menu bar entry does when clicked.
type menuAction int

const (
	menuNone menuAction = iota
	menuAbout
	menuFile
	menuTheme
	menuView
	menuWindow
	menuHelp
)

const badgeLabel = " ◆ DeskOS "

var menuEntries = []struct {
	label  string
	action menuAction
}{
	{"File", menuFile},
	{"Theme", menuTheme},
	{"View", menuView},
	{"Window", menuWindow},
	{"Help", menuHelp},
}

// span is a clickable run of cells on one row.
type span struct {
	x, width int
}

func (s span) contains(x int) bool {
	return x >= s.x && x < s.x+s.width
}

type menuItem struct {
	span
	label  string
	action menuAction
	style  compositor.StyleID
}

// layoutMenu places the badge, the active application name and the menus
// from the left edge.
func layoutMenu(active string) []menuItem {
	items := make([]menuItem, 0, len(menuEntries)+2)
	x := 0
	add := func(label string, action menuAction, style compositor.StyleID) {
		w := runewidth.StringWidth(label)
		items = append(items, menuItem{span: span{x: x, width: w}, label: label, action: action, style: style})
		x += w
	}
	add(badgeLabel, menuAbout, compositor.StyleMenuBadge)
	if active != "" {
		add(" "+active+" ", menuNone, compositor.StyleMenuActive)
	}
	for _, e := range menuEntries {
		add(" "+e.label+" ", e.action, compositor.StyleMenuItem)
	}
	return items
}

func menuActionAt(items []menuItem, x int) menuAction {
	for _, it := range items {
		if it.contains(x) {
			return it.action
		}
	}
	return menuNone
}

// drawMenuBar paints row 0 and fills the remaining top inset rows.
func drawMenuBar(c *compositor.Canvas, items []menuItem, hint, clock string, topInset int) {
	width := c.Bounds().Width
	c.Fill(platform.Rect{Width: width, Height: max(topInset, 1)}, ' ', compositor.StyleMenuBar)
	end := 0
	for _, it := range items {
		c.Text(it.x, 0, it.label, it.style, width-it.x)
		end = it.x + it.width
	}
	clockX := width - runewidth.StringWidth(clock) - 1
	if clock != "" && clockX > end {
		c.Text(clockX, 0, clock, compositor.StyleMenuActive, width-clockX)
	}
	if hint != "" {
		room := clockX - end - 2
		if room > 0 {
			c.Text(end+1, 0, runewidth.Truncate(hint, room, "…"), compositor.StyleMenuItem, room)
		}
	}
}

// dockCell is the width of one dock item.
const dockCell = 6

type dockItem struct {
	span
	app registry.App
}

// dockArea is the strip below the desktop the dock is drawn into.
func dockArea(viewport platform.Size, bottomInset int) platform.Rect {
	h := min(bottomInset, viewport.Height)
	return platform.Rect{X: 0, Y: viewport.Height - h, Width: viewport.Width, Height: h}
}

// layoutDock centers the docked applications in area.
func layoutDock(apps []registry.App, area platform.Rect) []dockItem {
	if area.Height <= 0 || len(apps) == 0 {
		return nil
	}
	n := min(len(apps), area.Width/dockCell)
	left := area.X + (area.Width-n*dockCell)/2
	items := make([]dockItem, n)
	for i := range n {
		items[i] = dockItem{span: span{x: left + i*dockCell, width: dockCell}, app: apps[i]}
	}
	return items
}

func dockItemAt(items []dockItem, x int) (registry.App, bool) {
	for _, it := range items {
		if it.contains(x) {
			return it.app, true
		}
	}
	return registry.App{}, false
}

// dockState is what the dock shows under each application.
type dockState struct {
	active    string
	running   map[string]bool
	minimized map[string]bool
}

func newDockState(m *wm.Manager) dockState {
	s := dockState{active: m.ActiveApp(), running: map[string]bool{}, minimized: map[string]bool{}}
	for _, w := range m.Windows() {
		s.running[w.AppID] = true
	}
	for _, id := range m.MinimizedApps() {
		s.minimized[id] = true
	}
	return s
}

func drawDock(c *compositor.Canvas, items []dockItem, area platform.Rect, state dockState) {
	if area.Height <= 0 {
		return
	}
	c.Fill(area, ' ', compositor.StyleDesktop)
	if len(items) == 0 {
		return
	}
	strip := platform.Rect{
		X:      items[0].x - 1,
		Y:      area.Y,
		Width:  len(items)*dockCell + 2,
		Height: area.Height,
	}
	c.Fill(strip, ' ', compositor.StyleDock)

	iconRow := area.Y + (area.Height-1)/2
	markRow := iconRow + 1
	for _, it := range items {
		style := compositor.StyleDockItem
		mark, markStyle := ' ', compositor.StyleDock
		switch {
		case state.minimized[it.app.ID]:
			style = compositor.StyleDockMinimized
			mark, markStyle = '◦', compositor.StyleDockMinimized
		case it.app.ID == state.active:
			style = compositor.StyleDockRunning
			mark, markStyle = '●', compositor.StyleDockRunning
		case state.running[it.app.ID]:
			mark, markStyle = '•', compositor.StyleDockItem
		}
		icon := it.app.Icon
		pad := (dockCell - runewidth.StringWidth(icon)) / 2
		c.Text(it.x+pad, iconRow, icon, style, dockCell-pad)
		if markRow < area.Bottom() {
			c.Set(it.x+dockCell/2-1, markRow, mark, markStyle)
		}
	}
}

// sidebarLink is one entry of the social sidebar. Links open in the browser.
type sidebarLink struct {
	icon   string
	label  string
	appID  string
	params wm.LaunchParams
}

func browse(url string) wm.LaunchParams {
	return wm.LaunchParams{apps.ParamURL: url}
}

func sidebarLinks(aboutIcon string) []sidebarLink {
	return []sidebarLink{
		{icon: "🐙", label: "GitHub", appID: registry.Browser, params: browse(apps.SocialLinks.GitHub)},
		{icon: "🔗", label: "LinkedIn", appID: registry.Browser, params: browse(apps.SocialLinks.LinkedIn)},
		{icon: "🌐", label: "Portfolio", appID: registry.Browser, params: browse(apps.SocialLinks.Portfolio)},
		{icon: "📧", label: "Contact", appID: registry.Browser, params: browse("mailto:" + apps.SocialLinks.Email)},
		{icon: aboutIcon, label: "About Project", appID: registry.About},
	}
}

// sidebarCell is the width of one sidebar entry.
const sidebarCell = 4

type sidebarItem struct {
	rect platform.Rect
	link sidebarLink
}

// layoutSidebar stacks the links down the left edge of the desktop area, one
// entry every other row. In mobile view they sit in a centered row under the
// menu bar instead. Entries that do not fit are dropped.
func layoutSidebar(links []sidebarLink, desk platform.Rect, mobile bool) []sidebarItem {
	if desk.Empty() {
		return nil
	}
	var items []sidebarItem
	if mobile {
		n := min(len(links), desk.Width/sidebarCell)
		left := desk.X + (desk.Width-n*sidebarCell)/2
		for i := range n {
			items = append(items, sidebarItem{
				rect: platform.Rect{X: left + i*sidebarCell, Y: desk.Y, Width: sidebarCell, Height: 1},
				link: links[i],
			})
		}
		return items
	}
	for i, l := range links {
		y := desk.Y + 1 + 2*i
		if y >= desk.Bottom()-1 {
			break
		}
		items = append(items, sidebarItem{
			rect: platform.Rect{X: desk.X, Y: y, Width: sidebarCell, Height: 1},
			link: l,
		})
	}
	return items
}

func sidebarItemAt(items []sidebarItem, p platform.Point) (sidebarLink, bool) {
	for _, it := range items {
		if it.rect.Contains(p) {
			return it.link, true
		}
	}
	return sidebarLink{}, false
}

// sidebarStrip is the panel behind the entries, one cell of padding around
// them in the direction they run.
func sidebarStrip(items []sidebarItem, mobile bool) platform.Rect {
	first, last := items[0].rect, items[len(items)-1].rect
	if mobile {
		return platform.Rect{X: first.X, Y: first.Y, Width: last.Right() - first.X, Height: 1}
	}
	return platform.Rect{X: first.X, Y: first.Y - 1, Width: sidebarCell, Height: last.Bottom() - first.Y + 2}
}

func drawSidebar(c *compositor.Canvas, items []sidebarItem, mobile bool) {
	if len(items) == 0 {
		return
	}
	c.Fill(sidebarStrip(items, mobile).Intersect(c.Bounds()), ' ', compositor.StyleDock)
	for _, it := range items {
		pad := (it.rect.Width - runewidth.StringWidth(it.link.icon)) / 2
		c.Text(it.rect.X+pad, it.rect.Y, it.link.icon, compositor.StyleDockItem, it.rect.Width-pad)
	}
}

// drawWallpaper writes the desktop name and the main bindings in the middle
// of the free desktop area.
func drawWallpaper(c *compositor.Canvas, area platform.Rect, bindings []key.Binding) {
	if area.Height < 3 {
		return
	}
	var hints []string
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	lines := []string{"D e s k O S", "", strings.Join(hints, "  ·  ")}
	top := area.Y + (area.Height-len(lines))/2
	for i, line := range lines {
		line = runewidth.Truncate(line, area.Width, "")
		x := area.X + (area.Width-runewidth.StringWidth(line))/2
		c.Text(x, top+i, line, compositor.StyleDesktop, area.Width)
	}
}
