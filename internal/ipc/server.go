package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/runtimepath"
	"github.com/1broseidon/tilewm/internal/wm"
)

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	mgr          *wm.Manager
	log          *slog.Logger
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(mgr *wm.Manager, log *slog.Logger) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		mgr:        mgr,
		log:        log,
		startTime:  time.Now(),
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.log.Info("IPC server listening", "socket", s.socketPath)

	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.log.Warn("IPC accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.log.Warn("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		s.log.Warn("failed to marshal response", "error", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.log.Warn("failed to send response", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetScreens:
		resp, _ := NewOKResponse(ScreensData{Screens: s.mgr.Screens()})
		return resp
	case CommandGetWorkspaces:
		resp, _ := NewOKResponse(WorkspacesData{Workspaces: s.mgr.Workspaces()})
		return resp
	case CommandGetWindows:
		resp, _ := NewOKResponse(WindowsData{Windows: s.mgr.Windows()})
		return resp
	case CommandFocus:
		var p DirectionPayload
		return s.decodeAndRun(req.Payload, &p, func() error {
			return s.mgr.FocusDirection(p.Direction)
		})
	case CommandSwap:
		var p DirectionPayload
		return s.decodeAndRun(req.Payload, &p, func() error {
			return s.mgr.SwapDirection(p.Direction)
		})
	case CommandResize:
		var p ResizePayload
		return s.decodeAndRun(req.Payload, &p, func() error {
			return s.mgr.ResizeFocused(p.Dimension, p.Delta)
		})
	case CommandSendToWorkspace:
		var p SendToWorkspacePayload
		return s.decodeAndRun(req.Payload, &p, func() error {
			return s.mgr.SendToWorkspace(p.Workspace, p.Follow)
		})
	case CommandSendToScreen:
		var p SendToScreenPayload
		return s.decodeAndRun(req.Payload, &p, func() error {
			return s.mgr.SendToScreen(p.Screen)
		})
	case CommandSetLayout:
		return s.handleSetLayout(req.Payload)
	case CommandApplyPreset:
		var p ApplyPresetPayload
		return s.decodeAndRun(req.Payload, &p, func() error {
			return s.mgr.ApplyPreset(p.Preset)
		})
	case CommandSwitchWorkspace:
		var p SwitchWorkspacePayload
		return s.decodeAndRun(req.Payload, &p, func() error {
			return s.mgr.SwitchWorkspace(p.Workspace)
		})
	case CommandBalance:
		return s.handleBalance(req.Payload)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// decodeAndRun unmarshals a payload into p and runs the operation.
func (s *Server) decodeAndRun(payload json.RawMessage, p interface{}, run func() error) *Response {
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, p); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid payload: %v", err))
		}
	}
	if err := run(); err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

// handleReload reloads the configuration from disk
func (s *Server) handleReload() *Response {
	s.log.Info("IPC: received RELOAD command")

	newCfg, err := config.Load()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}

	if err := s.mgr.Reload(newCfg); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to apply config: %v", err))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

// handleGetStatus returns current daemon status
func (s *Server) handleGetStatus() *Response {
	status := StatusData{
		StatusSnapshot: s.mgr.Status(),
		UptimeSeconds:  int64(time.Since(s.startTime).Seconds()),
		DaemonRunning:  true,
	}

	resp, _ := NewOKResponse(status)
	return resp
}

// handleSetLayout switches a workspace's layout, defaulting to the
// focused workspace when none is named.
func (s *Server) handleSetLayout(payload json.RawMessage) *Response {
	var p SetLayoutPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &p); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid payload: %v", err))
		}
	}
	if p.Layout == "" {
		return NewErrorResponse("layout is required")
	}

	workspace := p.Workspace
	if workspace == "" {
		workspace = s.mgr.Status().FocusedWorkspace
	}
	if workspace == "" {
		return NewErrorResponse("no focused workspace")
	}

	if err := s.mgr.SetWorkspaceLayout(workspace, config.LayoutMode(p.Layout)); err != nil {
		return NewErrorResponse(err.Error())
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

// handleBalance resets a workspace's split ratios, defaulting to the
// focused workspace when none is named.
func (s *Server) handleBalance(payload json.RawMessage) *Response {
	var p BalancePayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &p); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid payload: %v", err))
		}
	}

	workspace := p.Workspace
	if workspace == "" {
		workspace = s.mgr.Status().FocusedWorkspace
	}
	if workspace == "" {
		return NewErrorResponse("no focused workspace")
	}

	if err := s.mgr.BalanceWorkspace(workspace); err != nil {
		return NewErrorResponse(err.Error())
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
