package apps

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/deskos/internal/registry"
	"github.com/1broseidon/deskos/internal/wm"
)

var studioFiles = []string{"index.html", "style.css", "script.js"}

type studioTemplate struct {
	name  string
	files map[string]string
}

var studioTemplates = []studioTemplate{
	{
		name: "HTML Boilerplate",
		files: map[string]string{
			"index.html": "<html>\n  <head>\n    <title>FOSal Project</title>\n    <link rel=\"stylesheet\" href=\"style.css\">\n  </head>\n  <body>\n    <h1>New FOSal Application</h1>\n    <div id=\"root\"></div>\n    <script src=\"script.js\"></script>\n  </body>\n</html>",
			"style.css":  "body {\n  font-family: system-ui;\n  padding: 40px;\n  background: #f0f0f0;\n}",
			"script.js":  "console.log(\"FOSal Runtime Started\");",
		},
	},
	{
		name: "Portfolio Starter",
		files: map[string]string{
			"index.html": "<div class=\"card\">\n  <h1>Prajwal Shelar</h1>\n  <p>Software Engineer</p>\n</div>",
			"style.css":  ".card { background: white; padding: 2rem; border-radius: 1rem; box-shadow: 0 4px 6px rgba(0,0,0,0.1); }",
			"script.js":  "",
		},
	},
}

// CodeStudio edits a three-file web snippet. Running it writes a combined
// page to the data directory and opens it in the browser.
type CodeStudio struct {
	ctx      registry.Context
	opts     Options
	files    map[string]string
	active   int
	template int
	status   string
	editor   textarea.Model
}

func NewCodeStudio(ctx registry.Context, opts Options) *CodeStudio {
	editor := textarea.New()
	editor.CharLimit = 0
	editor.ShowLineNumbers = false
	editor.Focus()
	s := &CodeStudio{ctx: ctx, opts: opts, editor: editor}
	s.LoadTemplate(0)
	return s
}

// ActiveFile returns the name of the file being edited.
func (s *CodeStudio) ActiveFile() string {
	return studioFiles[s.active]
}

// File returns the saved content of name.
func (s *CodeStudio) File(name string) string {
	s.sync()
	return s.files[name]
}

// Status returns the last run result.
func (s *CodeStudio) Status() string {
	return s.status
}

func (s *CodeStudio) sync() {
	s.files[s.ActiveFile()] = s.editor.Value()
}

// SwitchFile moves the editor to the next file.
func (s *CodeStudio) SwitchFile() {
	s.sync()
	s.active = (s.active + 1) % len(studioFiles)
	s.editor.SetValue(s.files[s.ActiveFile()])
}

// LoadTemplate replaces all files with the i-th template.
func (s *CodeStudio) LoadTemplate(i int) {
	t := studioTemplates[i%len(studioTemplates)]
	s.template = i % len(studioTemplates)
	s.files = make(map[string]string, len(t.files))
	for name, content := range t.files {
		s.files[name] = content
	}
	s.active = 0
	s.editor.SetValue(s.files[s.ActiveFile()])
}

// Combined returns the page built from the three files.
func (s *CodeStudio) Combined() string {
	s.sync()
	return s.files["index.html"] +
		"\n<style>" + s.files["style.css"] + "</style>" +
		"\n<script>" + s.files["script.js"] + "</script>\n"
}

// Run writes the preview page and opens it in the browser.
func (s *CodeStudio) Run() tea.Cmd {
	dir := s.opts.dataPath("preview")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.status = fmt.Sprintf("run failed: %v", err)
		return nil
	}
	path := s.opts.dataPath("preview", "index.html")
	if err := os.WriteFile(path, []byte(s.Combined()), 0o644); err != nil {
		s.status = fmt.Sprintf("run failed: %v", err)
		return nil
	}
	s.status = "Preview written to " + path
	return s.ctx.OpenApp(registry.Browser, "Preview: "+s.ActiveFile(), wm.LaunchParams{ParamURL: "file://" + path})
}

func (s *CodeStudio) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "f2":
		s.SwitchFile()
		return nil
	case "f3":
		s.LoadTemplate(s.template + 1)
		return nil
	case "f5":
		return s.Run()
	}
	var cmd tea.Cmd
	s.editor, cmd = s.editor.Update(msg)
	return cmd
}

func (s *CodeStudio) Render(width, height int) []string {
	if height <= 0 {
		return nil
	}
	var tabs strings.Builder
	for i, name := range studioFiles {
		if i == s.active {
			tabs.WriteString("[" + name + "] ")
		} else {
			tabs.WriteString(" " + name + "  ")
		}
	}
	out := []string{tabs.String(), strings.Repeat("─", max(width, 0))}

	body := strings.Split(s.editor.Value(), "\n")
	room := max(height-len(out)-1, 0)
	cursor := s.editor.Line()
	offset := max(cursor-room+1, 0)
	visible, _ := window(body, offset, room)
	for i, line := range visible {
		marker := "  "
		if offset+i == cursor {
			marker = "▸ "
		}
		out = append(out, marker+line)
	}
	for len(out) < height-1 {
		out = append(out, "")
	}

	footer := studioTemplates[s.template].name + "  f2 next file  f3 template  f5 run"
	if s.status != "" {
		footer = s.status
	}
	return append(out, fit(footer, width))
}
