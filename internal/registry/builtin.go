package registry

// Application ids.
const (
	Launchpad  = "launchpad"
	Finder     = "finder"
	Terminal   = "terminal"
	CodeStudio = "codestudio"
	Projects   = "projects"
	Notes      = "notes"
	Calculator = "calculator"
	LiveRoom   = "liveroom"
	Browser    = "browser"
	Assistant  = "assistant"
	Resume     = "resume"
	About      = "about"
)

// Builtin returns the DeskOS application catalog.
func Builtin() []App {
	return []App{
		{ID: Launchpad, Name: "Applications", Icon: "🚀", Dock: true},
		{ID: Finder, Name: "Finder", Icon: "📂", Dock: true},
		{ID: Terminal, Name: "Terminal", Icon: ">_", Dock: true},
		{ID: CodeStudio, Name: "CodeStudio", Icon: "🛠", Dock: true},
		{ID: Projects, Name: "Projects", Icon: "📁", Dock: true},
		{ID: Notes, Name: "Notes", Icon: "📝", Dock: true},
		{ID: Calculator, Name: "Calculator", Icon: "🧮", Dock: true},
		{ID: LiveRoom, Name: "LiveRoom", Icon: "💬", Dock: true},
		{ID: Browser, Name: "Browser", Icon: "🌐", Dock: true},
		{ID: Assistant, Name: "Assistant", Icon: "✨", Dock: true},
		{ID: Resume, Name: "Resume", Icon: "📄"},
		{ID: About, Name: "About DeskOS", Icon: "ℹ"},
	}
}
