// Package theme holds the dark and light desktop palettes.
package theme

import "github.com/charmbracelet/lipgloss"

// Name identifies a palette.
type Name string

const (
	Dark  Name = "dark"
	Light Name = "light"
)

// Toggle returns the other theme.
func (n Name) Toggle() Name {
	if n == Light {
		return Dark
	}
	return Light
}

// Valid reports whether n names a known palette.
func (n Name) Valid() bool {
	return n == Dark || n == Light
}

// Palette is the set of styles the desktop is drawn with.
type Palette struct {
	Desktop lipgloss.Style

	MenuBar    lipgloss.Style
	MenuBadge  lipgloss.Style
	MenuActive lipgloss.Style
	MenuItem   lipgloss.Style

	Dock          lipgloss.Style
	DockItem      lipgloss.Style
	DockRunning   lipgloss.Style
	DockMinimized lipgloss.Style

	Frame        lipgloss.Style
	FrameFocused lipgloss.Style
	Title        lipgloss.Style
	TitleFocused lipgloss.Style
	Content      lipgloss.Style
	Close        lipgloss.Style
	Maximize     lipgloss.Style
	Minimize     lipgloss.Style
	Resize       lipgloss.Style
}

// For returns the palette for n, falling back to dark.
func For(n Name) Palette {
	if n == Light {
		return light
	}
	return dark
}

var dark = Palette{
	Desktop: lipgloss.NewStyle().Background(lipgloss.Color("17")).Foreground(lipgloss.Color("60")),

	MenuBar:    lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("252")),
	MenuBadge:  lipgloss.NewStyle().Background(lipgloss.Color("27")).Foreground(lipgloss.Color("15")).Bold(true),
	MenuActive: lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("15")).Bold(true),
	MenuItem:   lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("246")),

	Dock:          lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("250")),
	DockItem:      lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252")),
	DockRunning:   lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("15")).Bold(true),
	DockMinimized: lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("242")),

	Frame:        lipgloss.NewStyle().Background(lipgloss.Color("234")).Foreground(lipgloss.Color("240")),
	FrameFocused: lipgloss.NewStyle().Background(lipgloss.Color("234")).Foreground(lipgloss.Color("69")),
	Title:        lipgloss.NewStyle().Background(lipgloss.Color("234")).Foreground(lipgloss.Color("245")),
	TitleFocused: lipgloss.NewStyle().Background(lipgloss.Color("234")).Foreground(lipgloss.Color("15")).Bold(true),
	Content:      lipgloss.NewStyle().Background(lipgloss.Color("234")).Foreground(lipgloss.Color("252")),
	Close:        lipgloss.NewStyle().Background(lipgloss.Color("234")).Foreground(lipgloss.Color("203")),
	Maximize:     lipgloss.NewStyle().Background(lipgloss.Color("234")).Foreground(lipgloss.Color("221")),
	Minimize:     lipgloss.NewStyle().Background(lipgloss.Color("234")).Foreground(lipgloss.Color("77")),
	Resize:       lipgloss.NewStyle().Background(lipgloss.Color("234")).Foreground(lipgloss.Color("242")),
}

var light = Palette{
	Desktop: lipgloss.NewStyle().Background(lipgloss.Color("153")).Foreground(lipgloss.Color("110")),

	MenuBar:    lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("236")),
	MenuBadge:  lipgloss.NewStyle().Background(lipgloss.Color("27")).Foreground(lipgloss.Color("15")).Bold(true),
	MenuActive: lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("16")).Bold(true),
	MenuItem:   lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("241")),

	Dock:          lipgloss.NewStyle().Background(lipgloss.Color("252")).Foreground(lipgloss.Color("238")),
	DockItem:      lipgloss.NewStyle().Background(lipgloss.Color("252")).Foreground(lipgloss.Color("236")),
	DockRunning:   lipgloss.NewStyle().Background(lipgloss.Color("252")).Foreground(lipgloss.Color("16")).Bold(true),
	DockMinimized: lipgloss.NewStyle().Background(lipgloss.Color("252")).Foreground(lipgloss.Color("245")),

	Frame:        lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("248")),
	FrameFocused: lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("27")),
	Title:        lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("243")),
	TitleFocused: lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("16")).Bold(true),
	Content:      lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("235")),
	Close:        lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("160")),
	Maximize:     lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("178")),
	Minimize:     lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("34")),
	Resize:       lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("245")),
}
