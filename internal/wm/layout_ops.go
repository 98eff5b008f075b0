package wm

import (
	"strings"

	"github.com/1broseidon/tilewm/internal/animation"
	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/layout"
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/1broseidon/tilewm/internal/state"
)

// applyAllLayouts applies the layout of every workspace, logging
// failures instead of aborting.
func (m *Manager) applyAllLayouts() {
	for _, ws := range m.st.Workspaces {
		if err := m.applyLayout(ws.Name); err != nil {
			m.log.Warn("apply layout", "workspace", ws.Name, "error", err)
		}
	}
}

// ApplyLayout recomputes and applies the layout of one workspace.
func (m *Manager) ApplyLayout(workspaceName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applyLayout(workspaceName)
}

func (m *Manager) applyLayout(workspaceName string) error {
	actual, err := m.backend.ListWindows()
	if err != nil {
		return opErrorf("list windows: %v", err)
	}
	actualByID := make(map[state.WindowID]platform.WindowInfo, len(actual))
	for _, info := range actual {
		actualByID[info.ID] = info
	}

	ws := m.st.Workspace(workspaceName)
	if ws == nil {
		return &WorkspaceNotFoundError{Name: workspaceName}
	}

	appIDs := m.workspaceAppIDs(workspaceName)

	// Count windows per app to detect multi-window apps whose helper
	// and splash windows should not join the layout.
	appWindowCounts := make(map[string]int)
	for _, info := range actual {
		if info.AppID != "" && matchesAnyAppID(info.AppID, appIDs) {
			appWindowCounts[info.AppID]++
		}
	}

	// Keep only windows that still exist and either were explicitly
	// assigned here or match this workspace's rules.
	valid := ws.Windows[:0:0]
	for _, id := range ws.Windows {
		info, exists := actualByID[id]
		if !exists {
			continue
		}

		explicit := false
		if w := m.st.Window(id); w != nil && w.Workspace == workspaceName {
			explicit = true
		}
		matchesRules := info.AppID != "" && matchesAnyAppID(info.AppID, appIDs)
		if !explicit && !matchesRules {
			continue
		}

		if appWindowCounts[info.AppID] > 1 {
			small := info.Frame.Width < 600 || info.Frame.Height < 400
			if small && (info.Title == "" || info.Title == info.AppName) {
				continue
			}
		}

		if ws.Layout != config.LayoutFloating && isPiPWindow(info.Title) {
			continue
		}

		// The user can minimize or fullscreen a window behind our
		// back; the fresh snapshot is authoritative for those flags.
		if w := m.st.Window(id); w != nil {
			w.Minimized = info.Minimized
			w.Fullscreen = info.Fullscreen
			w.Title = info.Title
		}

		valid = append(valid, id)
	}

	// Drop stale windows from the workspace and the state.
	kept := make(map[state.WindowID]bool, len(valid))
	for _, id := range valid {
		kept[id] = true
	}
	for _, id := range ws.Windows {
		if !kept[id] {
			delete(m.st.Windows, id)
		}
	}
	ws.Windows = valid

	screen := m.st.Screen(ws.Screen)
	if screen == nil {
		return &ScreenNotFoundError{Name: ws.Screen}
	}

	ctx := &layout.Context{
		ScreenFrame: screen.UsableFrame,
		Gaps:        layout.ResolveGaps(m.cfg.Gaps, screen, len(m.st.Screens)),
		SplitRatios: ws.SplitRatios,
	}

	// The workspace window order is authoritative: user actions like
	// swapping set it, so it is never re-sorted here.
	windows := make([]layout.Window, 0, len(ws.Windows))
	for _, id := range ws.Windows {
		w := m.st.Window(id)
		if w == nil {
			continue
		}
		windows = append(windows, layout.Window{
			ID:         w.ID,
			Floating:   w.Floating,
			Minimized:  w.Minimized,
			Fullscreen: w.Fullscreen,
		})
	}

	engine := layout.ForMode(ws.Layout, m.cfg.Master)
	assignments := engine.Layout(windows, ctx)

	targets := make([]animation.Target, 0, len(assignments))
	for _, a := range assignments {
		from := a.Frame
		if info, ok := actualByID[a.ID]; ok {
			from = info.Frame
		}
		targets = append(targets, animation.Target{ID: a.ID, From: from, To: a.Frame})
		if w := m.st.Window(a.ID); w != nil {
			w.Frame = a.Frame
		}
	}
	m.anim.Animate(targets)

	return nil
}

// SetWorkspaceLayout switches a workspace's layout mode and re-applies
// it. Split ratios are reset; leaving the floating layout clears the
// floating flag on the workspace's windows so they tile again.
func (m *Manager) SetWorkspaceLayout(workspaceName string, mode config.LayoutMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !mode.Valid() {
		return opErrorf("invalid layout: %s", mode)
	}

	ws := m.st.Workspace(workspaceName)
	if ws == nil {
		return &WorkspaceNotFoundError{Name: workspaceName}
	}

	wasFloating := ws.Layout == config.LayoutFloating
	ws.Layout = mode
	ws.SplitRatios = nil

	if wasFloating && mode != config.LayoutFloating {
		for _, id := range ws.Windows {
			if w := m.st.Window(id); w != nil {
				w.Floating = false
			}
		}
	}

	return m.applyLayout(workspaceName)
}

// workspaceAppIDs collects the app_id values of the workspace's rules.
func (m *Manager) workspaceAppIDs(workspaceName string) []string {
	for _, wc := range m.cfg.EffectiveWorkspaces() {
		if wc.Name != workspaceName {
			continue
		}
		var ids []string
		for _, rule := range wc.Rules {
			if rule.AppID != "" {
				ids = append(ids, rule.AppID)
			}
		}
		return ids
	}
	return nil
}

func matchesAnyAppID(appID string, ruleIDs []string) bool {
	for _, ruleID := range ruleIDs {
		if appID == ruleID || strings.Contains(appID, ruleID) {
			return true
		}
	}
	return false
}
