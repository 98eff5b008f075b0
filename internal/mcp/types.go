package mcp

// Input/output types for the MCP tools.

type FocusWindowInput struct {
	Direction string `json:"direction" jsonschema:"required,Direction to move focus: left, right, up, down, next, or previous"`
}

type SwapWindowInput struct {
	Direction string `json:"direction" jsonschema:"required,Direction to swap the focused window: left, right, up, down, next, or previous"`
}

type ResizeWindowInput struct {
	Dimension string `json:"dimension" jsonschema:"required,Dimension to resize: width or height"`
	Delta     int    `json:"delta" jsonschema:"required,Size change in pixels; positive grows, negative shrinks"`
}

type SendToWorkspaceInput struct {
	Workspace string `json:"workspace" jsonschema:"required,Target workspace name"`
	Follow    bool   `json:"follow,omitempty" jsonschema:"When true, switch to the target workspace and keep the window focused"`
}

type SendToScreenInput struct {
	Screen string `json:"screen" jsonschema:"required,Target screen: main, secondary, a screen ID, or a screen name"`
}

type SwitchWorkspaceInput struct {
	Workspace string `json:"workspace" jsonschema:"required,Workspace name to switch to"`
}

type SetLayoutInput struct {
	Layout    string `json:"layout" jsonschema:"required,Layout mode: tiling, monocle, split, split-vertical, split-horizontal, master, floating, or scrolling"`
	Workspace string `json:"workspace,omitempty" jsonschema:"Workspace name (default: the focused workspace)"`
}

type BalanceWorkspaceInput struct {
	Workspace string `json:"workspace,omitempty" jsonschema:"Workspace name (default: the focused workspace)"`
}

type ApplyPresetInput struct {
	Preset string `json:"preset" jsonschema:"required,Name of the floating preset to apply to the focused window"`
}

type ListWindowsInput struct{}

type ListWindowsOutput struct {
	Windows []WindowSummary `json:"windows"`
}

type WindowSummary struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	AppID     string `json:"app_id"`
	Workspace string `json:"workspace"`
	Floating  bool   `json:"floating,omitempty"`
	Hidden    bool   `json:"hidden,omitempty"`
	Focused   bool   `json:"focused,omitempty"`
}

type ListWorkspacesInput struct{}

type ListWorkspacesOutput struct {
	Workspaces []WorkspaceSummary `json:"workspaces"`
}

type WorkspaceSummary struct {
	Name        string `json:"name"`
	Screen      string `json:"screen"`
	Layout      string `json:"layout"`
	WindowCount int    `json:"window_count"`
	Focused     bool   `json:"focused,omitempty"`
	Visible     bool   `json:"visible,omitempty"`
}

type ListScreensInput struct{}

type ListScreensOutput struct {
	Screens []ScreenSummary `json:"screens"`
}

type ScreenSummary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	IsMain           bool   `json:"is_main,omitempty"`
	FocusedWorkspace string `json:"focused_workspace,omitempty"`
}

type GetStatusInput struct{}

type GetStatusOutput struct {
	Screens          int    `json:"screens"`
	Workspaces       int    `json:"workspaces"`
	Windows          int    `json:"windows"`
	FocusedWorkspace string `json:"focused_workspace,omitempty"`
	UptimeSeconds    int64  `json:"uptime_seconds"`
}

type ReloadConfigInput struct{}
