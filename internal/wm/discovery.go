package wm

import (
	"strings"

	"github.com/1broseidon/tilewm/internal/rules"
	"github.com/1broseidon/tilewm/internal/state"
)

// discoverAndAssignWindows scans existing windows and places each in a
// workspace according to the rule priority.
func (m *Manager) discoverAndAssignWindows() {
	infos, err := m.backend.ListWindows()
	if err != nil {
		m.log.Warn("discover windows", "error", err)
		return
	}

	for _, info := range infos {
		if _, tracked := m.st.Windows[info.ID]; tracked {
			continue
		}
		w := managedFromInfo(info)
		wsName := m.findWorkspaceForWindow(w)
		if wsName == "" {
			continue
		}
		m.attachWindow(w, wsName)
		m.log.Debug("assigned window",
			"window", w.ID, "app", w.AppID, "workspace", wsName)
	}
}

// findWorkspaceForWindow resolves where a window belongs.
//
// Priority: global rules with a workspace target, then per-workspace
// rules, then the workspace the window's process was last assigned to,
// then a workspace on the window's screen, then the focused workspace,
// then the first workspace.
func (m *Manager) findWorkspaceForWindow(w *state.ManagedWindow) string {
	if name := rules.WorkspaceFor(m.cfg, w); name != "" {
		if m.st.Workspace(name) != nil {
			return name
		}
	}

	// An app that closed and reopened its window keeps its workspace,
	// even though the window id changed.
	if name := m.pidWorkspace(w.PID); name != "" {
		if m.st.Workspace(name) != nil {
			return name
		}
	}

	if screen := m.st.ScreenForPoint(w.Frame.CenterX(), w.Frame.CenterY()); screen != nil {
		for _, ws := range m.st.Workspaces {
			if ws.Screen == screen.ID {
				return ws.Name
			}
		}
	}

	if m.st.FocusedWorkspace != "" {
		return m.st.FocusedWorkspace
	}
	if len(m.st.Workspaces) > 0 {
		return m.st.Workspaces[0].Name
	}
	return ""
}

// ensureWorkspaceWindowsTracked adopts visible windows that belong to
// the workspace by rule but were never focused since startup.
func (m *Manager) ensureWorkspaceWindowsTracked(wsName string) {
	infos, err := m.backend.ListWindows()
	if err != nil {
		return
	}
	for _, info := range infos {
		if _, tracked := m.st.Windows[info.ID]; tracked {
			continue
		}
		w := managedFromInfo(info)
		if m.findWorkspaceForWindow(w) != wsName {
			continue
		}
		m.attachWindow(w, wsName)
	}
}

// isPiPWindow spots picture-in-picture popups, which should float
// above tiled windows rather than join the layout.
func isPiPWindow(title string) bool {
	t := strings.ToLower(title)
	return strings.Contains(t, "picture-in-picture") || strings.Contains(t, "picture in picture")
}
