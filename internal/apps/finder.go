package apps

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/deskos/internal/registry"
)

type sidebarEntry struct {
	name    string
	icon    string
	message string
}

var finderSidebar = []sidebarEntry{
	{name: "Prajwal", icon: "📂"},
	{name: "Recents", icon: "🕒", message: "Recents is currently being indexed by FOSal."},
	{name: "Downloads", icon: "📥", message: "Downloads folder is empty"},
	{name: "FOSal Core", icon: "⚙", message: "FOSal Core location is offline."},
}

const finderSidebarWidth = 16

// Finder browses the virtual file system. Opening a file opens the
// application it belongs to, titled with the file name.
type Finder struct {
	ctx      registry.Context
	root     *Node
	path     []*Node
	selected int
	section  string
	status   string
}

func NewFinder(ctx registry.Context) *Finder {
	f := &Finder{ctx: ctx, root: FileSystem()}
	f.home()
	return f
}

func (f *Finder) home() {
	users := f.root.Children[0]
	f.path = []*Node{f.root, users, users.Children[0]}
	f.selected = 0
	f.section = finderSidebar[0].name
}

// Cwd returns the current directory node.
func (f *Finder) Cwd() *Node {
	return f.path[len(f.path)-1]
}

// Path returns the absolute path of the current directory.
func (f *Finder) Path() string {
	if len(f.path) == 1 {
		return "/"
	}
	names := make([]string, 0, len(f.path)-1)
	for _, n := range f.path[1:] {
		names = append(names, n.Name)
	}
	return "/" + strings.Join(names, "/")
}

// Selected returns the highlighted entry of the current directory.
func (f *Finder) Selected() (*Node, bool) {
	entries := f.Cwd().Children
	if f.selected < 0 || f.selected >= len(entries) {
		return nil, false
	}
	return entries[f.selected], true
}

// Status returns the last sidebar message.
func (f *Finder) Status() string {
	return f.status
}

// Open enters a directory or opens a file's application.
func (f *Finder) Open(n *Node) tea.Cmd {
	if n.Dir {
		f.path = append(f.path, n)
		f.selected = 0
		f.section = n.Name
		return nil
	}
	if n.AppID == "" {
		return nil
	}
	return f.ctx.OpenApp(n.AppID, n.Name, nil)
}

// Up moves to the parent directory.
func (f *Finder) Up() bool {
	if len(f.path) <= 1 {
		return false
	}
	f.path = f.path[:len(f.path)-1]
	f.selected = 0
	f.section = f.Cwd().Name
	return true
}

// Sidebar activates the i-th sidebar location.
func (f *Finder) Sidebar(i int) {
	if i < 0 || i >= len(finderSidebar) {
		return
	}
	entry := finderSidebar[i]
	f.section = entry.name
	f.status = entry.message
	if i == 0 {
		f.home()
	}
}

func (f *Finder) Update(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	f.status = ""
	switch key {
	case "up", "k":
		f.selected = max(f.selected-1, 0)
	case "down", "j":
		f.selected = min(f.selected+1, max(len(f.Cwd().Children)-1, 0))
	case "enter", "right", "l":
		if n, ok := f.Selected(); ok {
			return f.Open(n)
		}
	case "backspace", "left", "h":
		f.Up()
	case "1", "2", "3", "4":
		i, _ := strconv.Atoi(key)
		f.Sidebar(i - 1)
	}
	return nil
}

// Click selects an entry; clicking the selected entry again opens it.
// Clicks in the sidebar switch location.
func (f *Finder) Click(x, y int) tea.Cmd {
	row := y - 2
	f.status = ""
	if x < finderSidebarWidth {
		if row >= 0 && row < len(finderSidebar) {
			f.Sidebar(row)
		}
		return nil
	}
	entries := f.Cwd().Children
	if row < 0 || row >= len(entries) {
		return nil
	}
	if row == f.selected {
		return f.Open(entries[row])
	}
	f.selected = row
	return nil
}

func entryIcon(n *Node) string {
	switch {
	case n.Dir:
		return "📁"
	case strings.HasSuffix(n.Name, ".pdf"):
		return "📕"
	default:
		return "📄"
	}
}

func (f *Finder) Render(width, height int) []string {
	if height <= 0 {
		return nil
	}
	entries := f.Cwd().Children
	out := []string{fit(f.Path(), width), ""}

	for row := 0; row < max(len(finderSidebar), len(entries)); row++ {
		left := ""
		if row < len(finderSidebar) {
			s := finderSidebar[row]
			marker := " "
			if s.name == f.section {
				marker = "▸"
			}
			left = marker + s.icon + " " + s.name
		}
		right := ""
		if row < len(entries) {
			marker := "  "
			if row == f.selected {
				marker = "▸ "
			}
			right = marker + entryIcon(entries[row]) + " " + entries[row].Name
		}
		out = append(out, fit(left, finderSidebarWidth)+right)
	}

	footer := strconv.Itoa(len(entries)) + " items   Storage: Fully Abstracted"
	if f.status != "" {
		footer = f.status
	}
	for len(out) < height-1 {
		out = append(out, "")
	}
	out = out[:max(height-1, 0)]
	return append(out, fit(footer, width))
}
