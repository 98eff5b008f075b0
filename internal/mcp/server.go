// Package mcp exposes the tiling daemon to MCP clients. The server
// speaks stdio and proxies every tool call to the daemon over IPC, so
// it can run next to any MCP host without touching the display itself.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/tilewm/internal/ipc"
)

const (
	ServerName    = "tilewm"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for window management tools.
type Server struct {
	mcpServer *mcpsdk.Server
	client    *ipc.Client
}

// NewServer creates a new MCP server proxying to the daemon.
func NewServer() *Server {
	s := &Server{
		client: ipc.NewClient(),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Move keyboard focus to another window: directionally (left/right/up/down, by window center) or cyclically (next/previous in layout order).",
	}, s.handleFocusWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "swap_window",
		Description: "Swap the focused window with a neighbor in the given direction. Focus follows the moved window.",
	}, s.handleSwapWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resize_window",
		Description: "Grow or shrink the focused window by a pixel delta. In tiled layouts this adjusts the split ratio controlling the given dimension; in the floating layout it resizes the window directly.",
	}, s.handleResizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "send_to_workspace",
		Description: "Move the focused window to a named workspace. With follow the view switches to that workspace and the window keeps focus; otherwise the window is hidden unless the workspace is already visible.",
	}, s.handleSendToWorkspace)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "send_to_screen",
		Description: "Move the focused window to the focused workspace of another screen (main, secondary, or a screen name).",
	}, s.handleSendToScreen)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "switch_workspace",
		Description: "Make a workspace the visible one on its screen, hiding the windows of the workspace it replaces.",
	}, s.handleSwitchWorkspace)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_layout",
		Description: "Switch a workspace's layout mode (tiling, monocle, split, split-vertical, split-horizontal, master, floating, scrolling). Defaults to the focused workspace.",
	}, s.handleSetLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "balance_workspace",
		Description: "Reset a workspace's split ratios so its windows share the screen evenly. Defaults to the focused workspace.",
	}, s.handleBalanceWorkspace)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "apply_preset",
		Description: "Apply a named floating preset (size and position) to the focused window. Only valid in the floating layout.",
	}, s.handleApplyPreset)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List all managed windows with their workspace, app, and state.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_workspaces",
		Description: "List all workspaces with their screen, layout, and window count.",
	}, s.handleListWorkspaces)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_screens",
		Description: "List connected screens with their resolution and focused workspace.",
	}, s.handleListScreens)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Get a summary of the daemon state: screen, workspace, and window counts plus the focused workspace.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "reload_config",
		Description: "Reload the daemon's configuration file and re-apply all layouts.",
	}, s.handleReloadConfig)
}
