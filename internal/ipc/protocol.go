package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/tilewm/internal/wm"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload          CommandType = "RELOAD"
	CommandGetStatus       CommandType = "GET_STATUS"
	CommandGetScreens      CommandType = "GET_SCREENS"
	CommandGetWorkspaces   CommandType = "GET_WORKSPACES"
	CommandGetWindows      CommandType = "GET_WINDOWS"
	CommandFocus           CommandType = "FOCUS"
	CommandSwap            CommandType = "SWAP"
	CommandResize          CommandType = "RESIZE"
	CommandSendToWorkspace CommandType = "SEND_TO_WORKSPACE"
	CommandSendToScreen    CommandType = "SEND_TO_SCREEN"
	CommandSetLayout       CommandType = "SET_LAYOUT"
	CommandApplyPreset     CommandType = "APPLY_PRESET"
	CommandSwitchWorkspace CommandType = "SWITCH_WORKSPACE"
	CommandBalance         CommandType = "BALANCE"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	wm.StatusSnapshot
	UptimeSeconds int64 `json:"uptime_seconds"`
	DaemonRunning bool  `json:"daemon_running"`
}

// ScreensData represents the data returned by GET_SCREENS
type ScreensData struct {
	Screens []wm.ScreenSnapshot `json:"screens"`
}

// WorkspacesData represents the data returned by GET_WORKSPACES
type WorkspacesData struct {
	Workspaces []wm.WorkspaceSnapshot `json:"workspaces"`
}

// WindowsData represents the data returned by GET_WINDOWS
type WindowsData struct {
	Windows []wm.WindowSnapshot `json:"windows"`
}

// DirectionPayload carries FOCUS and SWAP commands.
type DirectionPayload struct {
	Direction string `json:"direction"`
}

// ResizePayload carries the RESIZE command.
type ResizePayload struct {
	Dimension string `json:"dimension"`
	Delta     int    `json:"delta"`
}

// SendToWorkspacePayload carries the SEND_TO_WORKSPACE command.
type SendToWorkspacePayload struct {
	Workspace string `json:"workspace"`
	Follow    bool   `json:"follow,omitempty"`
}

// SendToScreenPayload carries the SEND_TO_SCREEN command.
type SendToScreenPayload struct {
	Screen string `json:"screen"`
}

// SetLayoutPayload carries the SET_LAYOUT command.
type SetLayoutPayload struct {
	Workspace string `json:"workspace,omitempty"`
	Layout    string `json:"layout"`
}

// ApplyPresetPayload carries the APPLY_PRESET command.
type ApplyPresetPayload struct {
	Preset string `json:"preset"`
}

// SwitchWorkspacePayload carries the SWITCH_WORKSPACE command.
type SwitchWorkspacePayload struct {
	Workspace string `json:"workspace"`
}

// BalancePayload carries the BALANCE command.
type BalancePayload struct {
	Workspace string `json:"workspace,omitempty"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
