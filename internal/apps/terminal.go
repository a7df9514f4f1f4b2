package apps

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/deskos/internal/registry"
	"github.com/1broseidon/deskos/internal/wm"
)

// ParamCommand is the launch parameter holding a command for the terminal
// to run when it opens.
const ParamCommand = "command"

const terminalPrompt = ">_ "

var terminalOutput = map[string]string{
	"help": "SYSTEM COMMANDS:\n" +
		"  sysinfo   - View DeskOS hardware abstraction\n" +
		"  whoami    - User profile details\n" +
		"  journey   - Prajwal's career path\n" +
		"  open <app>- Launch application\n" +
		"  ls        - List virtual file system\n" +
		"  clear     - Clear terminal buffer\n" +
		"  goals     - Engineering roadmap",
	"sysinfo": "OS: " + systemName + "\n" +
		"Kernel: FOSal Abstraction v1.2\n" +
		"Architecture: Terminal-Hosted Runtime\n" +
		"UI: Cell Compositor\n" +
		"Uptime: 100%",
	"whoami": "Prajwal Shelar\n" +
		"Role: Software Engineer\n" +
		"Focus: Backend, Systems, and AI\n" +
		"Location: Bengaluru",
	"journey": "2017: B.Sc Physics (Hons)\n" +
		"2022: MCA Admission\n" +
		"2023: IMD Rainfall Patent Filing\n" +
		"2024: DeskOS Development & Graduation.",
	"ls": "Documents/  Code/  Projects/  Notes/  Resume.pdf",
	"goals": "• Architect highly concurrent distributed systems\n" +
		"• Optimize client-side OS-like abstractions\n" +
		"• Advance climate tech via predictive modeling",
}

// Terminal is the dsh command shell.
type Terminal struct {
	ctx     registry.Context
	lines   []string
	input   textinput.Model
	history []string
	recall  int
}

// NewTerminal returns a terminal and runs the command launch parameter, if
// any.
func NewTerminal(ctx registry.Context) *Terminal {
	t := &Terminal{
		ctx: ctx,
		lines: []string{
			systemBanner,
			`Type "help" to list available system commands.`,
		},
		input: newInput("", 256),
	}
	if cmd := ctx.Params.Get(ParamCommand); cmd != "" {
		t.Exec(cmd)
	}
	return t
}

// Lines returns the scrollback buffer.
func (t *Terminal) Lines() []string {
	return append([]string(nil), t.lines...)
}

// Exec runs one command line and appends its output to the scrollback.
func (t *Terminal) Exec(line string) tea.Cmd {
	fields := strings.Fields(line)
	name := ""
	if len(fields) > 0 {
		name = strings.ToLower(fields[0])
	}
	if strings.TrimSpace(line) != "" {
		t.history = append(t.history, line)
	}
	t.recall = len(t.history)

	echo := terminalPrompt + line
	switch name {
	case "clear":
		t.lines = nil
		return nil
	case "open":
		if len(fields) < 2 {
			t.lines = append(t.lines, echo, "Usage: open <app_name>")
			return nil
		}
		app := strings.ToLower(fields[1])
		t.lines = append(t.lines, echo, "Executing "+app+".app binary...")
		return t.ctx.OpenApp(app, "", nil)
	}

	t.lines = append(t.lines, echo)
	if out, ok := terminalOutput[name]; ok {
		t.lines = append(t.lines, strings.Split(out, "\n")...)
		if name == "sysinfo" {
			t.lines = append(t.lines, "Theme: "+string(t.ctx.CurrentTheme()))
		}
		return nil
	}
	t.lines = append(t.lines, "dsh: command not found: "+name)
	return nil
}

// Relaunch runs the command parameter of a repeated open.
func (t *Terminal) Relaunch(params wm.LaunchParams) tea.Cmd {
	if cmd := params.Get(ParamCommand); cmd != "" {
		return t.Exec(cmd)
	}
	return nil
}

func (t *Terminal) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		line := t.input.Value()
		t.input.Reset()
		return t.Exec(line)
	case "up":
		if t.recall > 0 {
			t.recall--
			t.input.SetValue(t.history[t.recall])
			t.input.CursorEnd()
		}
		return nil
	case "down":
		if t.recall < len(t.history)-1 {
			t.recall++
			t.input.SetValue(t.history[t.recall])
			t.input.CursorEnd()
		} else {
			t.recall = len(t.history)
			t.input.Reset()
		}
		return nil
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return cmd
}

func (t *Terminal) Render(width, height int) []string {
	if height <= 0 {
		return nil
	}
	var wrapped []string
	for _, line := range t.lines {
		wrapped = append(wrapped, wrap(line, width)...)
	}
	out := tail(wrapped, height-1)
	return append(out, terminalPrompt+inputLine(t.input))
}
