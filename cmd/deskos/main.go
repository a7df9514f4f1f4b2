package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/1broseidon/deskos/internal/apps"
	"github.com/1broseidon/deskos/internal/config"
	"github.com/1broseidon/deskos/internal/daemon"
	"github.com/1broseidon/deskos/internal/ipc"
	"github.com/1broseidon/deskos/internal/journal"
	"github.com/1broseidon/deskos/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		os.Exit(runDesktop(nil))
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runDesktop(os.Args[2:]))
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "apps":
		os.Exit(runApps(os.Args[2:]))
	case "window":
		os.Exit(runWindow(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deskos [command] [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Start the desktop in this terminal (default)")
	fmt.Fprintln(w, "  daemon              Start a headless desktop (foreground)")
	fmt.Fprintln(w, "  status              Show the running desktop's status")
	fmt.Fprintln(w, "  apps                List installed applications")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  window list         List open windows")
	fmt.Fprintln(w, "  window open         Open or raise an application")
	fmt.Fprintln(w, "  window close        Close a window")
	fmt.Fprintln(w, "  window minimize     Minimize a window")
	fmt.Fprintln(w, "  window maximize     Toggle maximize on a window")
	fmt.Fprintln(w, "  window focus        Bring a window to the front")
	fmt.Fprintln(w, "  window move         Move a window")
	fmt.Fprintln(w, "  window resize       Resize a window")
	fmt.Fprintln(w, "  window reset        Close every window")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "  config init         Create a configuration interactively")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'deskos <command> --help' for command-specific options.")
}

// parseFlags parses args into fs with the exit code convention used by every
// subcommand: ok=true to continue, otherwise code is what to exit with.
func parseFlags(fs *flag.FlagSet, args []string) (code int, ok bool) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}

// loadConfig loads path, or the standard location when path is empty.
func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func openJournal(cfg *config.Config) (*journal.Journal, error) {
	lc := cfg.GetLoggingConfig()
	return journal.Open(journal.Config{
		Enabled:   lc.Enabled,
		Level:     journal.ParseLevel(lc.Level),
		FilePath:  lc.File,
		MaxSizeMB: lc.MaxSizeMB,
		MaxFiles:  lc.MaxFiles,
	})
}

func runDesktop(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/deskos/config.yaml)")
	socket := fs.String("socket", "", "Control socket path (default: $XDG_RUNTIME_DIR/deskos.sock)")
	noIPC := fs.Bool("no-ipc", false, "Do not serve the control socket")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskos run [--path PATH] [--socket PATH] [--no-ipc]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Start the desktop in the current terminal.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  Ctrl+O     Launchpad")
		fmt.Fprintln(os.Stderr, "  F6         Cycle windows")
		fmt.Fprintln(os.Stderr, "  F7         Move mode (arrows move, shift+arrows resize, Enter/Esc)")
		fmt.Fprintln(os.Stderr, "  F8         Toggle desktop/mobile view")
		fmt.Fprintln(os.Stderr, "  F9         Toggle theme")
		fmt.Fprintln(os.Stderr, "  F10/F11    Minimize / maximize the active window")
		fmt.Fprintln(os.Stderr, "  F12        Fresh start")
		fmt.Fprintln(os.Stderr, "  Ctrl+W     Close the active window")
		fmt.Fprintln(os.Stderr, "  Ctrl+Q     Quit")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "run takes no arguments")
		fs.Usage()
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config

	// The terminal belongs to the renderer: process logs go to debug_log or
	// nowhere.
	logOut := io.Discard
	if cfg.DebugLog != "" {
		f, err := os.OpenFile(cfg.DebugLog, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open debug log: %v\n", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	log.SetOutput(logOut)
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))

	j, err := openJournal(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer j.Close()

	ctx, cancel := signalContext()
	defer cancel()

	opts := tui.Options{
		Config:   cfg,
		Apps:     apps.NewRegistry(apps.Options{DataDir: cfg.GetDataDir()}),
		Observer: j.Observe,
		Logger:   logger,
	}
	if err := tui.Run(ctx, opts, tui.RunOptions{SocketPath: *socket, NoIPC: *noIPC}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/deskos/config.yaml)")
	socket := fs.String("socket", "", "Control socket path (default: $XDG_RUNTIME_DIR/deskos.sock)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskos daemon [--path PATH] [--socket PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run a desktop without a renderer, driven over the control socket.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}
	cfg := res.Config
	log.Printf("Configuration loaded (theme: %s, geometry: %s)", cfg.Theme, cfg.Geometry.Preset)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))

	j, err := openJournal(cfg)
	if err != nil {
		log.Printf("Failed to open journal: %v", err)
		return 1
	}
	defer j.Close()

	d, err := daemon.New(daemon.Options{
		Config:     cfg,
		Apps:       apps.NewRegistry(apps.Options{DataDir: cfg.GetDataDir()}),
		SocketPath: *socket,
		Observer:   j.Observe,
		Logger:     logger,
	})
	if err != nil {
		log.Printf("Failed to create desktop: %v", err)
		return 1
	}

	ctx, cancel := signalContext()
	defer cancel()

	if err := d.Run(ctx); err != nil {
		log.Printf("Desktop error: %v", err)
		return 1
	}
	log.Println("deskos daemon stopped")
	return 0
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	socket := fs.String("socket", "", "Control socket path")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskos status [--socket PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show the running desktop's status via IPC.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	status, err := newClient(*socket).GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("mode:           %s\n", status.Mode)
	fmt.Printf("theme:          %s\n", status.Theme)
	fmt.Printf("view_mode:      %s\n", status.ViewMode)
	fmt.Printf("viewport:       %dx%d\n", status.Viewport.Width, status.Viewport.Height)
	fmt.Printf("active_app:     %s\n", status.ActiveApp)
	fmt.Printf("window_count:   %d\n", status.WindowCount)
	fmt.Printf("visible_count:  %d\n", status.VisibleCount)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	return 0
}

func newClient(socket string) *ipc.Client {
	if socket != "" {
		return ipc.NewClientAt(socket)
	}
	return ipc.NewClient()
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceBuiltin:
		if src.Name != "" {
			return "builtin:" + src.Name
		}
		return "builtin"
	case config.SourceEnv:
		if src.Name != "" {
			return "env:" + src.Name
		}
		return "env"
	case config.SourceDefault:
		if src.Name != "" {
			return "default:" + src.Name
		}
		return "default"
	default:
		return string(src.Kind)
	}
}
