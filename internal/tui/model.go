// Package tui is the desktop shell: a full-screen bubbletea program that
// draws the menu bar, the dock and the window stack, and routes keyboard and
// mouse input to the window manager and the application views.
package tui

import (
	"log/slog"
	"maps"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/deskos/internal/apps"
	"github.com/1broseidon/deskos/internal/compositor"
	"github.com/1broseidon/deskos/internal/config"
	"github.com/1broseidon/deskos/internal/ipc"
	"github.com/1broseidon/deskos/internal/movemode"
	"github.com/1broseidon/deskos/internal/platform"
	"github.com/1broseidon/deskos/internal/registry"
	"github.com/1broseidon/deskos/internal/theme"
	"github.com/1broseidon/deskos/internal/wm"
)

// Mode is the status name reported over IPC for an interactive desktop.
const Mode = "tui"

// Options configures a desktop model.
type Options struct {
	Config *config.Config
	Apps   *registry.Registry
	// Manager is optional; one is built from Config when nil.
	Manager *wm.Manager
	// Observer receives window events of the built manager, typically the
	// journal. Ignored when Manager is set.
	Observer wm.Observer
	Logger   *slog.Logger
	// Now is the menu bar clock. Defaults to time.Now.
	Now func() time.Time
}

// openAppMsg asks the desktop to open or raise an application.
type openAppMsg struct {
	appID  string
	title  string
	params wm.LaunchParams
}

// closeWindowMsg asks the desktop to close a window.
type closeWindowMsg struct {
	id string
}

// execMsg runs fn against the desktop on the program goroutine. done is
// closed once fn has returned.
type execMsg struct {
	fn   func(d *ipc.Desktop)
	done chan struct{}
}

type tickMsg time.Time

// Model is the root bubbletea model of the desktop.
type Model struct {
	cfg    *config.Config
	apps   *registry.Registry
	mgr    *wm.Manager
	logger *slog.Logger
	now    func() time.Time
	keys   keyMap

	theme   theme.Name
	desktop *ipc.Desktop

	// views holds the content of every open window, keyed by window id.
	views      map[string]registry.View
	viewParams map[string]wm.LaunchParams

	interaction *compositor.Interaction
	move        *movemode.Mode
	dock        []registry.App

	width  int
	height int
}

// New builds a desktop model.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	mgr := opts.Manager
	if mgr == nil {
		mgrOpts := []wm.Option{
			wm.WithViewMode(cfg.InitialViewMode()),
			wm.WithTitles(opts.Apps.Title),
		}
		if opts.Observer != nil {
			mgrOpts = append(mgrOpts, wm.WithObserver(opts.Observer))
		}
		mgr = wm.NewManager(cfg.Policy(), mgrOpts...)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := &Model{
		cfg:         cfg,
		apps:        opts.Apps,
		mgr:         mgr,
		logger:      logger,
		now:         now,
		keys:        defaultKeyMap(),
		theme:       cfg.ThemeName(),
		views:       make(map[string]registry.View),
		viewParams:  make(map[string]wm.LaunchParams),
		interaction: compositor.NewInteraction(),
		move:        movemode.NewMode(),
		dock:        opts.Apps.Select(cfg.Dock),
	}
	vp := mgr.Viewport()
	m.width, m.height = vp.Width, vp.Height
	m.desktop = &ipc.Desktop{
		Manager: mgr,
		Apps:    opts.Apps,
		Mode:    Mode,
		Theme:   func() string { return string(m.theme) },
	}
	return m
}

// Manager returns the window manager the desktop drives.
func (m *Model) Manager() *wm.Manager {
	return m.mgr
}

// Theme returns the current palette name.
func (m *Model) Theme() theme.Name {
	return m.theme
}

// WindowView returns the content view of a window.
func (m *Model) WindowView(id string) (registry.View, bool) {
	v, ok := m.views[id]
	return v, ok
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.mgr.SetViewport(width, height)
}

func openApp(appID, title string, params wm.LaunchParams) tea.Cmd {
	return func() tea.Msg {
		return openAppMsg{appID: appID, title: title, params: params}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts the clock and schedules the startup applications.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tick()}
	for _, s := range m.cfg.Startup {
		cmds = append(cmds, startupCmd(s))
	}
	return tea.Batch(cmds...)
}

func startupCmd(s config.StartupApp) tea.Cmd {
	open := openAppMsg{appID: s.App, title: s.Title, params: wm.LaunchParams(s.Params).Clone()}
	if s.DelayMS <= 0 {
		return func() tea.Msg { return open }
	}
	return tea.Tick(time.Duration(s.DelayMS)*time.Millisecond, func(time.Time) tea.Msg {
		return open
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		if m.move.Expired() {
			m.move.Exit()
		}
		return m, tick()

	case openAppMsg:
		if _, ok := m.apps.Lookup(msg.appID); !ok {
			m.logger.Warn("ignoring unknown application", "app", msg.appID)
			return m, nil
		}
		m.mgr.Open(msg.appID, msg.title, msg.params)
		return m, m.reconcile()

	case closeWindowMsg:
		m.mgr.Close(msg.id)
		return m, m.reconcile()

	case execMsg:
		msg.fn(m.desktop)
		cmd := m.reconcile()
		close(msg.done)
		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}
	return m, nil
}

// reconcile creates views for new windows, drops those of closed windows and
// hands changed launch params to views that accept them.
func (m *Model) reconcile() tea.Cmd {
	var cmds []tea.Cmd
	open := make(map[string]bool, m.mgr.Len())
	for _, w := range m.mgr.Windows() {
		open[w.ID] = true
		view, ok := m.views[w.ID]
		if !ok {
			m.views[w.ID] = m.apps.Render(w.AppID, m.context(w))
			m.viewParams[w.ID] = w.Params.Clone()
			continue
		}
		if maps.Equal(m.viewParams[w.ID], w.Params) {
			continue
		}
		m.viewParams[w.ID] = w.Params.Clone()
		if r, ok := view.(registry.Relauncher); ok {
			cmds = append(cmds, r.Relaunch(w.Params.Clone()))
		}
	}
	for id := range m.views {
		if !open[id] {
			delete(m.views, id)
			delete(m.viewParams, id)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) context(w wm.Window) registry.Context {
	id := w.ID
	return registry.Context{
		WindowID: id,
		AppID:    w.AppID,
		Params:   w.Params.Clone(),
		Theme:    m.Theme,
		Open:     openApp,
		Close: func() tea.Cmd {
			return func() tea.Msg { return closeWindowMsg{id: id} }
		},
	}
}

// activeWindow is the window that receives keyboard input: the active
// application's window when it is visible.
func (m *Model) activeWindow() (wm.Window, bool) {
	active := m.mgr.ActiveApp()
	if active == "" {
		return wm.Window{}, false
	}
	for _, w := range m.mgr.Visible() {
		if w.AppID == active {
			return w, true
		}
	}
	return wm.Window{}, false
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return tea.Quit
	}

	if m.move.IsActive() {
		action, dir := movemode.ActionFromKey(msg.String())
		m.move.Handle(m.mgr, action, dir)
		return nil
	}

	active, hasActive := m.activeWindow()
	switch {
	case key.Matches(msg, m.keys.Close):
		if hasActive {
			m.mgr.Close(active.ID)
			return m.reconcile()
		}
		return nil
	case key.Matches(msg, m.keys.Minimize):
		if hasActive {
			m.mgr.Minimize(active.ID)
		}
		return nil
	case key.Matches(msg, m.keys.Maximize):
		if hasActive {
			m.mgr.ToggleMaximize(active.ID)
		}
		return nil
	case key.Matches(msg, m.keys.Cycle):
		m.cycle()
		return nil
	case key.Matches(msg, m.keys.MoveMode):
		m.move.Enter(m.mgr)
		return nil
	case key.Matches(msg, m.keys.Launchpad):
		return openApp(registry.Launchpad, "", nil)
	case key.Matches(msg, m.keys.Help):
		return m.menu(menuHelp)
	case key.Matches(msg, m.keys.ViewMode):
		return m.menu(menuView)
	case key.Matches(msg, m.keys.Theme):
		return m.menu(menuTheme)
	case key.Matches(msg, m.keys.FreshStart):
		return m.menu(menuWindow)
	}

	if !hasActive {
		return nil
	}
	if view, ok := m.views[active.ID]; ok {
		return view.Update(msg)
	}
	return nil
}

// cycle raises the bottom-most visible window.
func (m *Model) cycle() {
	visible := m.mgr.Visible()
	if len(visible) == 0 {
		return
	}
	m.mgr.Focus(visible[0].ID)
}

func (m *Model) menu(action menuAction) tea.Cmd {
	switch action {
	case menuAbout:
		return openApp(registry.About, "", nil)
	case menuFile:
		return openApp(registry.Finder, "", nil)
	case menuHelp:
		return openApp(registry.Terminal, "Help", wm.LaunchParams{apps.ParamCommand: "help"})
	case menuTheme:
		m.theme = m.theme.Toggle()
		m.logger.Debug("theme changed", "theme", m.theme)
	case menuView:
		m.mgr.SetViewMode(m.mgr.ViewMode().Toggle())
		m.logger.Debug("view mode changed", "view_mode", m.mgr.ViewMode())
	case menuWindow:
		m.move.Exit()
		m.interaction.End()
		m.mgr.Reset()
		m.logger.Info("fresh start")
		return m.reconcile()
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	p := platform.Point{X: msg.X, Y: msg.Y}
	switch msg.Action {
	case tea.MouseActionMotion:
		m.interaction.Motion(m.mgr, p)
		return nil
	case tea.MouseActionRelease:
		m.interaction.Release()
		return nil
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
	default:
		return nil
	}

	policy := m.mgr.Policy()
	if p.Y < max(policy.TopInset, 1) {
		return m.menu(menuActionAt(layoutMenu(m.activeName()), p.X))
	}
	area := dockArea(m.mgr.Viewport(), policy.BottomInset)
	if area.Contains(p) {
		if app, ok := dockItemAt(layoutDock(m.dock, area), p.X); ok {
			return openApp(app.ID, "", nil)
		}
		return nil
	}

	if link, ok := sidebarItemAt(m.sidebar(), p); ok {
		return openApp(link.appID, "", link.params)
	}

	hit, ok := m.interaction.Press(m.mgr, p)
	if !ok {
		return nil
	}
	if hit.Zone == compositor.ZoneClose {
		return m.reconcile()
	}
	if hit.Zone != compositor.ZoneContent {
		return nil
	}
	w, found := m.mgr.Window(hit.WindowID)
	if !found {
		return nil
	}
	clicker, ok := m.views[w.ID].(registry.Clicker)
	if !ok {
		return nil
	}
	d := p.Sub(compositor.ContentRect(w).Origin())
	return clicker.Click(d.X, d.Y)
}

// sidebar lays out the social links over the desktop area.
func (m *Model) sidebar() []sidebarItem {
	policy := m.mgr.Policy()
	viewport := m.mgr.Viewport()
	dock := dockArea(viewport, policy.BottomInset)
	desk := platform.Rect{Y: policy.TopInset, Width: viewport.Width, Height: dock.Y - policy.TopInset}
	mobile := policy.Mobile(m.mgr.ViewMode(), viewport)
	return layoutSidebar(sidebarLinks(m.apps.Icon(registry.About)), desk, mobile)
}

func (m *Model) activeName() string {
	if app, ok := m.apps.Lookup(m.mgr.ActiveApp()); ok {
		return app.Name
	}
	return ""
}

// View composes the desktop: wallpaper, windows in z order, dock, menu bar.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	policy := m.mgr.Policy()
	c := compositor.NewCanvas(m.width, m.height, compositor.StyleDesktop)
	viewport := platform.Size{Width: m.width, Height: m.height}
	dock := dockArea(viewport, policy.BottomInset)

	visible := m.mgr.Visible()
	if len(visible) == 0 {
		free := platform.Rect{Y: policy.TopInset, Width: m.width, Height: dock.Y - policy.TopInset}
		drawWallpaper(c, free, m.keys.ShortHelp())
	}

	active, _ := m.activeWindow()
	highlight := active.ID
	if m.move.IsActive() {
		highlight = m.move.Selected()
	}
	for _, w := range visible {
		content := compositor.ContentRect(w)
		var lines []string
		if v, ok := m.views[w.ID]; ok && content.Width > 0 && content.Height > 0 {
			lines = v.Render(content.Width, content.Height)
		}
		compositor.DrawWindow(c, compositor.Surface{
			Window:  w,
			Icon:    m.apps.Icon(w.AppID),
			Lines:   lines,
			Focused: w.ID == highlight,
		})
	}

	drawSidebar(c, m.sidebar(), policy.Mobile(m.mgr.ViewMode(), viewport))
	drawDock(c, layoutDock(m.dock, dock), dock, newDockState(m.mgr))
	drawMenuBar(c, layoutMenu(m.activeName()), m.move.Hint(), m.now().Format(m.cfg.ClockFormat), policy.TopInset)

	return c.Render(compositor.Styles(theme.For(m.theme)))
}
