package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/deskos/internal/registry"
	"github.com/1broseidon/deskos/internal/runtimepath"
	"github.com/1broseidon/deskos/internal/wm"
)

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	exec         Executor
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
	wg           sync.WaitGroup
}

// NewServer creates a new IPC server. An empty socketPath selects the
// runtime socket.
func NewServer(socketPath string, exec Executor) (*Server, error) {
	if socketPath == "" {
		path, err := runtimepath.SocketPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
		}
		socketPath = path
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		exec:       exec,
		startTime:  time.Now(),
	}, nil
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(10 * time.Second))

	reader := bufio.NewReader(conn)

	// One JSON request per line.
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.send(conn, NewCodedErrorResponse(CodeBadRequest, fmt.Sprintf("Invalid request: %v", err)))
		return
	}

	s.send(conn, s.handleCommand(req))
}

func (s *Server) send(conn net.Conn, resp *Response) {
	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}
	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand decodes the payload and runs the command through the
// executor.
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.run(s.getStatus)
	case CommandListApps:
		return s.run(listApps)
	case CommandListWindows:
		return s.run(listWindows)
	case CommandOpenApp:
		var p OpenAppPayload
		if resp := decode(req.Payload, &p); resp != nil {
			return resp
		}
		return s.run(func(d *Desktop) *Response { return openApp(d, p) })
	case CommandCloseWindow:
		return s.windowCommand(req, "Closing", func(m *wm.Manager, id string) bool { return m.Close(id) })
	case CommandMinimizeWindow:
		return s.windowCommand(req, "Minimizing", func(m *wm.Manager, id string) bool { return m.Minimize(id) })
	case CommandToggleMaximize:
		return s.windowCommand(req, "Toggling maximize on", func(m *wm.Manager, id string) bool { return m.ToggleMaximize(id) })
	case CommandFocusWindow:
		return s.windowCommand(req, "Focusing", func(m *wm.Manager, id string) bool { return m.Focus(id) })
	case CommandMoveWindow:
		var p MovePayload
		if resp := decode(req.Payload, &p); resp != nil {
			return resp
		}
		return s.run(func(d *Desktop) *Response {
			return windowResult(d, p.WindowID, d.Manager.UpdatePosition(p.WindowID, p.X, p.Y))
		})
	case CommandResizeWindow:
		var p ResizePayload
		if resp := decode(req.Payload, &p); resp != nil {
			return resp
		}
		return s.run(func(d *Desktop) *Response {
			return windowResult(d, p.WindowID, d.Manager.UpdateSize(p.WindowID, p.Width, p.Height))
		})
	case CommandFreshStart:
		log.Println("IPC: Fresh start")
		return s.run(func(d *Desktop) *Response {
			d.Manager.Reset()
			resp, _ := NewOKResponse(nil)
			return resp
		})
	default:
		return NewCodedErrorResponse(CodeBadRequest, fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// run executes fn on the desktop's goroutine.
func (s *Server) run(fn func(d *Desktop) *Response) *Response {
	var resp *Response
	if err := s.exec.Do(func(d *Desktop) { resp = fn(d) }); err != nil {
		return NewErrorResponse(fmt.Sprintf("Desktop unavailable: %v", err))
	}
	if resp == nil {
		return NewErrorResponse("Desktop returned no response")
	}
	return resp
}

func (s *Server) windowCommand(req *Request, verb string, op func(m *wm.Manager, id string) bool) *Response {
	var p WindowPayload
	if resp := decode(req.Payload, &p); resp != nil {
		return resp
	}
	if p.WindowID == "" {
		return NewCodedErrorResponse(CodeBadRequest, "window_id is required")
	}
	log.Printf("IPC: %s window %s", verb, p.WindowID)
	return s.run(func(d *Desktop) *Response {
		if op(d.Manager, p.WindowID) {
			// Closed windows no longer exist, so there is nothing to return.
			if w, ok := d.Manager.Window(p.WindowID); ok {
				resp, _ := NewOKResponse(WindowData{Window: w})
				return resp
			}
			resp, _ := NewOKResponse(nil)
			return resp
		}
		return notFound(p.WindowID)
	})
}

func decode(payload json.RawMessage, out any) *Response {
	if len(payload) == 0 {
		return NewCodedErrorResponse(CodeBadRequest, "payload is required")
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return NewCodedErrorResponse(CodeBadRequest, fmt.Sprintf("Invalid payload: %v", err))
	}
	return nil
}

func notFound(id string) *Response {
	return NewCodedErrorResponse(CodeNotFound, fmt.Sprintf("%v: %s", wm.ErrWindowNotFound, id))
}

func windowResult(d *Desktop, id string, ok bool) *Response {
	if !ok {
		return notFound(id)
	}
	w, _ := d.Manager.Window(id)
	resp, _ := NewOKResponse(WindowData{Window: w})
	return resp
}

func (s *Server) getStatus(d *Desktop) *Response {
	status := StatusData{
		Mode:          d.Mode,
		ViewMode:      d.Manager.ViewMode(),
		Viewport:      d.Manager.Viewport(),
		ActiveApp:     d.Manager.ActiveApp(),
		WindowCount:   d.Manager.Len(),
		VisibleCount:  len(d.Manager.Visible()),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		Running:       true,
	}
	if d.Theme != nil {
		status.Theme = d.Theme()
	}
	resp, _ := NewOKResponse(status)
	return resp
}

func listApps(d *Desktop) *Response {
	resp, _ := NewOKResponse(AppsData{Apps: d.Apps.List()})
	return resp
}

func listWindows(d *Desktop) *Response {
	resp, _ := NewOKResponse(WindowsData{
		Windows:   d.Manager.Windows(),
		ActiveApp: d.Manager.ActiveApp(),
	})
	return resp
}

func openApp(d *Desktop, p OpenAppPayload) *Response {
	if _, ok := d.Apps.Lookup(p.App); !ok {
		return NewCodedErrorResponse(CodeUnknownApp, fmt.Sprintf("%v: %s", registry.ErrUnknownApp, p.App))
	}
	log.Printf("IPC: Opening %s", p.App)
	id, created := d.Manager.Open(p.App, p.Title, wm.LaunchParams(p.Params))
	resp, _ := NewOKResponse(OpenAppData{WindowID: id, Created: created})
	return resp
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	os.Remove(s.socketPath)
}
