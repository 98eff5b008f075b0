package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/tilewm/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// send marshals a payload and sends the command, discarding any data.
func (c *Client) send(cmd CommandType, payload interface{}) error {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		req.Payload = data
	}
	_, err := c.sendRequest(req)
	return err
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	return c.send(CommandReload, nil)
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}
	return &status, nil
}

// GetScreens retrieves the connected screens
func (c *Client) GetScreens() (*ScreensData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetScreens})
	if err != nil {
		return nil, err
	}

	var data ScreensData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse screens data: %w", err)
	}
	return &data, nil
}

// GetWorkspaces retrieves all workspaces
func (c *Client) GetWorkspaces() (*WorkspacesData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetWorkspaces})
	if err != nil {
		return nil, err
	}

	var data WorkspacesData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse workspaces data: %w", err)
	}
	return &data, nil
}

// GetWindows retrieves all managed windows
func (c *Client) GetWindows() (*WindowsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetWindows})
	if err != nil {
		return nil, err
	}

	var data WindowsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse windows data: %w", err)
	}
	return &data, nil
}

// Focus moves focus in a direction (left/right/up/down/next/previous).
func (c *Client) Focus(direction string) error {
	return c.send(CommandFocus, DirectionPayload{Direction: direction})
}

// Swap exchanges the focused window with its neighbor in a direction.
func (c *Client) Swap(direction string) error {
	return c.send(CommandSwap, DirectionPayload{Direction: direction})
}

// Resize adjusts the focused window's size by delta pixels.
func (c *Client) Resize(dimension string, delta int) error {
	return c.send(CommandResize, ResizePayload{Dimension: dimension, Delta: delta})
}

// SendToWorkspace moves the focused window to a workspace.
func (c *Client) SendToWorkspace(workspace string, follow bool) error {
	return c.send(CommandSendToWorkspace, SendToWorkspacePayload{Workspace: workspace, Follow: follow})
}

// SendToScreen moves the focused window to another screen.
func (c *Client) SendToScreen(screen string) error {
	return c.send(CommandSendToScreen, SendToScreenPayload{Screen: screen})
}

// SetLayout switches a workspace's layout mode. An empty workspace
// name targets the focused workspace.
func (c *Client) SetLayout(workspace, layout string) error {
	return c.send(CommandSetLayout, SetLayoutPayload{Workspace: workspace, Layout: layout})
}

// ApplyPreset applies a floating preset to the focused window.
func (c *Client) ApplyPreset(preset string) error {
	return c.send(CommandApplyPreset, ApplyPresetPayload{Preset: preset})
}

// SwitchWorkspace focuses a workspace on its screen.
// Balance resets a workspace's split ratios to even shares.
func (c *Client) Balance(workspace string) error {
	return c.send(CommandBalance, BalancePayload{Workspace: workspace})
}

func (c *Client) SwitchWorkspace(workspace string) error {
	return c.send(CommandSwitchWorkspace, SwitchWorkspacePayload{Workspace: workspace})
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
