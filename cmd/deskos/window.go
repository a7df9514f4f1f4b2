package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/1broseidon/deskos/internal/apps"
	"github.com/1broseidon/deskos/internal/ipc"
	"github.com/1broseidon/deskos/internal/registry"
	"github.com/1broseidon/deskos/internal/wm"
)

func runApps(args []string) int {
	fs := flag.NewFlagSet("apps", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	socket := fs.String("socket", "", "Control socket path")
	search := fs.String("search", "", "Fuzzy filter on application names")
	asJSON := fs.Bool("json", false, "Output JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskos apps [--search QUERY] [--json] [--socket PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List applications. Uses the running desktop's catalog when one is")
		fmt.Fprintln(os.Stderr, "reachable, otherwise the built-in catalog.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "apps takes no arguments")
		fs.Usage()
		return 2
	}

	list, err := newClient(*socket).ListApps()
	if err != nil {
		list = apps.NewRegistry(apps.Options{}).List()
	}
	if *search != "" {
		list = registry.New(list).Search(*search)
	}

	if *asJSON {
		return printJSON(os.Stdout, list)
	}
	for _, app := range list {
		dock := ""
		if app.Dock {
			dock = "dock"
		}
		fmt.Printf("%-12s %s %-20s %s\n", app.ID, app.Icon, app.Name, dock)
	}
	return 0
}

func printJSON(w io.Writer, v any) int {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func printWindowUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  deskos window list [--json]")
	fmt.Fprintln(w, "  deskos window open [--title TITLE] [--param KEY=VALUE]... <app>")
	fmt.Fprintln(w, "  deskos window close <id>")
	fmt.Fprintln(w, "  deskos window minimize <id>")
	fmt.Fprintln(w, "  deskos window maximize <id>")
	fmt.Fprintln(w, "  deskos window focus <id>")
	fmt.Fprintln(w, "  deskos window move <id> <x> <y>")
	fmt.Fprintln(w, "  deskos window resize <id> <width> <height>")
	fmt.Fprintln(w, "  deskos window reset")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Every subcommand accepts --socket PATH.")
}

func runWindow(args []string) int {
	if len(args) == 0 {
		printWindowUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "list":
		return runWindowList(args[1:])
	case "open":
		return runWindowOpen(args[1:])
	case "close", "minimize", "maximize", "focus":
		return runWindowByID(args[0], args[1:])
	case "move":
		return runWindowGeometry("move", args[1:], func(c *ipc.Client, id string, a, b int) (*wm.Window, error) {
			return c.MoveWindow(id, a, b)
		})
	case "resize":
		return runWindowGeometry("resize", args[1:], func(c *ipc.Client, id string, a, b int) (*wm.Window, error) {
			return c.ResizeWindow(id, a, b)
		})
	case "reset":
		return runWindowReset(args[1:])
	case "help", "-h", "--help":
		printWindowUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown window command: %s\n\n", args[0])
		printWindowUsage(os.Stderr)
		return 2
	}
}

func newWindowFlags(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	socket := fs.String("socket", "", "Control socket path")
	return fs, socket
}

func runWindowList(args []string) int {
	fs, socket := newWindowFlags("list")
	asJSON := fs.Bool("json", false, "Output JSON")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "list takes no arguments")
		return 2
	}

	data, err := newClient(*socket).ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *asJSON {
		return printJSON(os.Stdout, data)
	}
	if len(data.Windows) == 0 {
		fmt.Println("no windows")
		return 0
	}
	for _, w := range data.Windows {
		printWindow(w, w.AppID == data.ActiveApp && !w.Minimized)
	}
	return 0
}

func printWindow(w wm.Window, active bool) {
	state := "normal"
	switch {
	case w.Minimized:
		state = "minimized"
	case w.Maximized:
		state = "maximized"
	}
	mark := " "
	if active {
		mark = "*"
	}
	b := w.Bounds
	fmt.Printf("%s %-36s %-11s %-20q z=%-4d %dx%d+%d+%d %s\n",
		mark, w.ID, w.AppID, w.Title, w.Z, b.Width, b.Height, b.X, b.Y, state)
}

// paramFlag collects repeated --param KEY=VALUE flags.
type paramFlag map[string]string

func (p paramFlag) String() string {
	parts := make([]string, 0, len(p))
	for k, v := range p {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (p paramFlag) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return fmt.Errorf("expected KEY=VALUE, got %q", s)
	}
	p[k] = v
	return nil
}

func runWindowOpen(args []string) int {
	fs, socket := newWindowFlags("open")
	title := fs.String("title", "", "Window title (default: the application name)")
	params := paramFlag{}
	fs.Var(params, "param", "Launch parameter KEY=VALUE (repeatable)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "open requires <app>")
		return 2
	}

	var launch map[string]string
	if len(params) > 0 {
		launch = params
	}
	res, err := newClient(*socket).OpenApp(fs.Arg(0), *title, launch)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	verb := "raised"
	if res.Created {
		verb = "opened"
	}
	fmt.Printf("%s %s\n", verb, res.WindowID)
	return 0
}

func runWindowByID(cmd string, args []string) int {
	fs, socket := newWindowFlags(cmd)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "%s requires <id>\n", cmd)
		return 2
	}
	id := fs.Arg(0)
	client := newClient(*socket)

	var (
		w   *wm.Window
		err error
	)
	switch cmd {
	case "close":
		err = client.CloseWindow(id)
	case "minimize":
		w, err = client.MinimizeWindow(id)
	case "maximize":
		w, err = client.ToggleMaximize(id)
	case "focus":
		w, err = client.FocusWindow(id)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if w != nil {
		printWindow(*w, false)
	}
	return 0
}

func runWindowGeometry(cmd string, args []string, apply func(c *ipc.Client, id string, a, b int) (*wm.Window, error)) int {
	fs, socket := newWindowFlags(cmd)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 3 {
		fmt.Fprintf(os.Stderr, "%s requires <id> and two integers\n", cmd)
		return 2
	}
	a, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid number %q\n", fs.Arg(1))
		return 2
	}
	b, err := strconv.Atoi(fs.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid number %q\n", fs.Arg(2))
		return 2
	}

	w, err := apply(newClient(*socket), fs.Arg(0), a, b)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printWindow(*w, false)
	return 0
}

func runWindowReset(args []string) int {
	fs, socket := newWindowFlags("reset")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "reset takes no arguments")
		return 2
	}
	if err := newClient(*socket).FreshStart(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("desktop reset")
	return 0
}
