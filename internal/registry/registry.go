// Package registry maps application ids to display metadata and to the
// constructors of their window content.
package registry

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/1broseidon/deskos/internal/theme"
	"github.com/1broseidon/deskos/internal/wm"
)

// ErrUnknownApp is returned by surfaces that reject unregistered ids.
var ErrUnknownApp = errors.New("unknown application")

// App is the display metadata of an application.
type App struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	// Dock marks apps shown in the dock and launchpad.
	Dock bool `json:"dock"`
}

// View renders window content and handles input routed to the window.
// Render returns plain text lines; the compositor clips and styles them.
type View interface {
	Update(msg tea.KeyMsg) tea.Cmd
	Render(width, height int) []string
}

// Clicker is implemented by views that react to clicks inside their content
// area. x and y are relative to the content origin.
type Clicker interface {
	Click(x, y int) tea.Cmd
}

// Relauncher is implemented by views that accept new launch params when
// their application is opened again.
type Relauncher interface {
	Relaunch(params wm.LaunchParams) tea.Cmd
}

// Context is handed to a view constructor.
type Context struct {
	WindowID string
	AppID    string
	Params   wm.LaunchParams
	// Theme reports the desktop's current palette.
	Theme func() theme.Name

	// Open asks the desktop to open (or raise) another application.
	Open func(appID, title string, params wm.LaunchParams) tea.Cmd
	// Close asks the desktop to close this window.
	Close func() tea.Cmd

	// Catalog lists the registered applications, for launcher views.
	Catalog []App
}

// OpenApp is a nil-safe wrapper around Open.
func (c Context) OpenApp(appID, title string, params wm.LaunchParams) tea.Cmd {
	if c.Open == nil {
		return nil
	}
	return c.Open(appID, title, params)
}

// CurrentTheme returns the palette in effect now, dark when unknown.
func (c Context) CurrentTheme() theme.Name {
	if c.Theme == nil {
		return theme.Dark
	}
	return c.Theme()
}

// CloseSelf is a nil-safe wrapper around Close.
func (c Context) CloseSelf() tea.Cmd {
	if c.Close == nil {
		return nil
	}
	return c.Close()
}

// Factory constructs the content view for one window.
type Factory func(ctx Context) View

// Registry is the application catalog. It is populated at startup and read
// only afterwards.
type Registry struct {
	apps      []App
	index     map[string]int
	factories map[string]Factory
}

// New returns a registry holding apps in the given order.
func New(apps []App) *Registry {
	r := &Registry{
		apps:      make([]App, 0, len(apps)),
		index:     make(map[string]int, len(apps)),
		factories: make(map[string]Factory),
	}
	for _, app := range apps {
		if _, dup := r.index[app.ID]; dup {
			continue
		}
		r.index[app.ID] = len(r.apps)
		r.apps = append(r.apps, app)
	}
	return r
}

// Register binds a view constructor to a registered application id.
func (r *Registry) Register(appID string, f Factory) error {
	if _, ok := r.index[appID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownApp, appID)
	}
	r.factories[appID] = f
	return nil
}

// Lookup returns the metadata for appID.
func (r *Registry) Lookup(appID string) (App, bool) {
	i, ok := r.index[appID]
	if !ok {
		return App{}, false
	}
	return r.apps[i], true
}

// Title returns the display name for appID. It has the signature expected by
// wm.WithTitles.
func (r *Registry) Title(appID string) (string, bool) {
	app, ok := r.Lookup(appID)
	return app.Name, ok
}

// Icon returns the icon for appID, or a generic glyph.
func (r *Registry) Icon(appID string) string {
	if app, ok := r.Lookup(appID); ok && app.Icon != "" {
		return app.Icon
	}
	return "▪"
}

// List returns every registered application in catalog order.
func (r *Registry) List() []App {
	return append([]App(nil), r.apps...)
}

// Dock returns the applications shown in the dock.
func (r *Registry) Dock() []App {
	var out []App
	for _, app := range r.apps {
		if app.Dock {
			out = append(out, app)
		}
	}
	return out
}

// Select returns the registered apps named by ids, in the given order.
// Unknown ids are skipped.
func (r *Registry) Select(ids []string) []App {
	out := make([]App, 0, len(ids))
	for _, id := range ids {
		if app, ok := r.Lookup(id); ok {
			out = append(out, app)
		}
	}
	return out
}

// Search fuzzy-matches query against application ids and names. An empty
// query returns the full catalog.
func (r *Registry) Search(query string) []App {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.List()
	}
	matches := fuzzy.FindFrom(query, appSource(r.apps))
	out := make([]App, 0, len(matches))
	for _, m := range matches {
		out = append(out, r.apps[m.Index])
	}
	return out
}

// Render builds the content view for a window. Applications without a
// constructor, registered or not, get a placeholder.
func (r *Registry) Render(appID string, ctx Context) View {
	ctx.AppID = appID
	if ctx.Catalog == nil {
		ctx.Catalog = r.List()
	}
	if f, ok := r.factories[appID]; ok && f != nil {
		return f(ctx)
	}
	name := appID
	if app, ok := r.Lookup(appID); ok {
		name = app.Name
	}
	return Placeholder{Name: name}
}

type appSource []App

func (s appSource) String(i int) string {
	return s[i].ID + " " + s[i].Name
}

func (s appSource) Len() int {
	return len(s)
}
