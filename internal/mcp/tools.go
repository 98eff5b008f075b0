package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func textResult(format string, args ...any) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}
}

func (s *Server) handleFocusWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args FocusWindowInput) (*mcpsdk.CallToolResult, any, error) {
	if err := s.client.Focus(args.Direction); err != nil {
		return nil, nil, err
	}
	return textResult("Focused window to the %s", args.Direction), nil, nil
}

func (s *Server) handleSwapWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args SwapWindowInput) (*mcpsdk.CallToolResult, any, error) {
	if err := s.client.Swap(args.Direction); err != nil {
		return nil, nil, err
	}
	return textResult("Swapped window to the %s", args.Direction), nil, nil
}

func (s *Server) handleResizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args ResizeWindowInput) (*mcpsdk.CallToolResult, any, error) {
	if err := s.client.Resize(args.Dimension, args.Delta); err != nil {
		return nil, nil, err
	}
	return textResult("Resized window %s by %dpx", args.Dimension, args.Delta), nil, nil
}

func (s *Server) handleSendToWorkspace(_ context.Context, _ *mcpsdk.CallToolRequest, args SendToWorkspaceInput) (*mcpsdk.CallToolResult, any, error) {
	if err := s.client.SendToWorkspace(args.Workspace, args.Follow); err != nil {
		return nil, nil, err
	}
	return textResult("Sent window to workspace %s", args.Workspace), nil, nil
}

func (s *Server) handleSendToScreen(_ context.Context, _ *mcpsdk.CallToolRequest, args SendToScreenInput) (*mcpsdk.CallToolResult, any, error) {
	if err := s.client.SendToScreen(args.Screen); err != nil {
		return nil, nil, err
	}
	return textResult("Sent window to screen %s", args.Screen), nil, nil
}

func (s *Server) handleSwitchWorkspace(_ context.Context, _ *mcpsdk.CallToolRequest, args SwitchWorkspaceInput) (*mcpsdk.CallToolResult, any, error) {
	if err := s.client.SwitchWorkspace(args.Workspace); err != nil {
		return nil, nil, err
	}
	return textResult("Switched to workspace %s", args.Workspace), nil, nil
}

func (s *Server) handleSetLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args SetLayoutInput) (*mcpsdk.CallToolResult, any, error) {
	if err := s.client.SetLayout(args.Workspace, args.Layout); err != nil {
		return nil, nil, err
	}
	target := args.Workspace
	if target == "" {
		target = "focused workspace"
	}
	return textResult("Set layout of %s to %s", target, args.Layout), nil, nil
}

func (s *Server) handleBalanceWorkspace(_ context.Context, _ *mcpsdk.CallToolRequest, args BalanceWorkspaceInput) (*mcpsdk.CallToolResult, any, error) {
	if err := s.client.Balance(args.Workspace); err != nil {
		return nil, nil, err
	}
	target := args.Workspace
	if target == "" {
		target = "focused workspace"
	}
	return textResult("Balanced %s", target), nil, nil
}

func (s *Server) handleApplyPreset(_ context.Context, _ *mcpsdk.CallToolRequest, args ApplyPresetInput) (*mcpsdk.CallToolResult, any, error) {
	if err := s.client.ApplyPreset(args.Preset); err != nil {
		return nil, nil, err
	}
	return textResult("Applied preset %s", args.Preset), nil, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.client.GetWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}

	out := ListWindowsOutput{Windows: make([]WindowSummary, 0, len(data.Windows))}
	for _, w := range data.Windows {
		out.Windows = append(out.Windows, WindowSummary{
			ID:        w.ID,
			Title:     w.Title,
			AppID:     w.AppID,
			Workspace: w.Workspace,
			Floating:  w.Floating,
			Hidden:    w.Hidden,
			Focused:   w.Focused,
		})
	}
	return nil, out, nil
}

func (s *Server) handleListWorkspaces(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWorkspacesInput) (*mcpsdk.CallToolResult, ListWorkspacesOutput, error) {
	data, err := s.client.GetWorkspaces()
	if err != nil {
		return nil, ListWorkspacesOutput{}, err
	}

	out := ListWorkspacesOutput{Workspaces: make([]WorkspaceSummary, 0, len(data.Workspaces))}
	for _, ws := range data.Workspaces {
		out.Workspaces = append(out.Workspaces, WorkspaceSummary{
			Name:        ws.Name,
			Screen:      ws.Screen,
			Layout:      ws.Layout,
			WindowCount: len(ws.Windows),
			Focused:     ws.Focused,
			Visible:     ws.Visible,
		})
	}
	return nil, out, nil
}

func (s *Server) handleListScreens(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListScreensInput) (*mcpsdk.CallToolResult, ListScreensOutput, error) {
	data, err := s.client.GetScreens()
	if err != nil {
		return nil, ListScreensOutput{}, err
	}

	out := ListScreensOutput{Screens: make([]ScreenSummary, 0, len(data.Screens))}
	for _, sc := range data.Screens {
		out.Screens = append(out.Screens, ScreenSummary{
			ID:               sc.ID,
			Name:             sc.Name,
			Width:            sc.Frame.Width,
			Height:           sc.Frame.Height,
			IsMain:           sc.IsMain,
			FocusedWorkspace: sc.FocusedWorkspace,
		})
	}
	return nil, out, nil
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, err
	}

	return nil, GetStatusOutput{
		Screens:          status.Screens,
		Workspaces:       status.Workspaces,
		Windows:          status.Windows,
		FocusedWorkspace: status.FocusedWorkspace,
		UptimeSeconds:    status.UptimeSeconds,
	}, nil
}

func (s *Server) handleReloadConfig(_ context.Context, _ *mcpsdk.CallToolRequest, _ ReloadConfigInput) (*mcpsdk.CallToolResult, any, error) {
	if err := s.client.Reload(); err != nil {
		return nil, nil, err
	}
	return textResult("Configuration reloaded"), nil, nil
}
