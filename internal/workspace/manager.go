// Package workspace creates and heals the workspace set across screen
// configuration changes.
package workspace

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/state"
)

// Manager builds workspaces from configuration and keeps them
// consistent when screens come and go. Windows are never lost: a
// workspace whose screen disappears falls back to the main screen and
// remembers where it wanted to be.
type Manager struct {
	cfg *config.Config
	log *slog.Logger
}

func NewManager(cfg *config.Config, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{cfg: cfg, log: log}
}

// SetConfig swaps the configuration, for reloads.
func (m *Manager) SetConfig(cfg *config.Config) { m.cfg = cfg }

// Initialize builds the workspace set for the given screens.
func (m *Manager) Initialize(st *state.State, screens []state.Screen) {
	st.Screens = screens
	st.Workspaces = m.buildWorkspaces(st)

	st.FocusedPerScreen = make(map[string]string)
	for _, s := range screens {
		if wss := st.WorkspacesOnScreen(s.ID); len(wss) > 0 {
			st.FocusedPerScreen[s.ID] = wss[0].Name
		}
	}
	if main := st.MainScreen(); main != nil {
		st.FocusedWorkspace = st.FocusedPerScreen[main.ID]
	} else if len(st.Workspaces) > 0 {
		st.FocusedWorkspace = st.Workspaces[0].Name
	}
}

// Reinitialize adapts the workspace set to a new screen configuration.
// When the screen set is unchanged only the frames are refreshed.
// Otherwise workspaces are rebuilt from configuration and the old
// contents, layouts, and focus are restored by name.
func (m *Manager) Reinitialize(st *state.State, screens []state.Screen) {
	if sameScreenIDs(st.Screens, screens) {
		st.Screens = screens
		m.log.Debug("screen change kept same displays, refreshed frames only")
		return
	}

	backup := st.Workspaces
	prevFocusPerScreen := st.FocusedPerScreen
	prevFocused := st.FocusedWorkspace

	m.Initialize(st, screens)

	byName := make(map[string]*state.Workspace, len(st.Workspaces))
	for _, ws := range st.Workspaces {
		byName[ws.Name] = ws
	}

	// Restore surviving workspaces and collect windows from the rest.
	var orphans []state.WindowID
	for _, old := range backup {
		if ws, ok := byName[old.Name]; ok {
			ws.Layout = old.Layout
			ws.SplitRatios = old.SplitRatios
			ws.Windows = old.Windows
			ws.FocusedWindow = old.FocusedWindow
			continue
		}
		orphans = append(orphans, old.Windows...)
	}

	if len(orphans) > 0 {
		target := m.fallbackWorkspace(st)
		if target != nil {
			target.Windows = append(target.Windows, orphans...)
			for _, id := range orphans {
				if w := st.Window(id); w != nil {
					w.Workspace = target.Name
				}
			}
			m.log.Info("reattached windows from removed workspaces",
				"count", len(orphans), "workspace", target.Name)
		}
	}

	// Restore focus where the screen and workspace both survived.
	for screenID, wsName := range prevFocusPerScreen {
		if st.Screen(screenID) == nil {
			continue
		}
		ws, ok := byName[wsName]
		if !ok || ws.Screen != screenID {
			continue
		}
		st.FocusedPerScreen[screenID] = wsName
	}
	if _, ok := byName[prevFocused]; ok {
		st.FocusedWorkspace = prevFocused
	}
}

// buildWorkspaces creates workspaces from configuration, resolving
// each screen target. Targets that cannot be resolved fall back to the
// main screen, with the intent recorded. Screens left without any
// workspace get one named after the screen.
func (m *Manager) buildWorkspaces(st *state.State) []*state.Workspace {
	main := st.MainScreen()

	var out []*state.Workspace
	seen := make(map[string]bool)
	for _, wc := range m.cfg.EffectiveWorkspaces() {
		if seen[wc.Name] {
			continue
		}
		seen[wc.Name] = true

		ws := &state.Workspace{
			Name:   wc.Name,
			Layout: wc.Layout,
		}

		target := wc.Screen
		if target == "" {
			target = config.ScreenMain
		}
		if screenID, ok := st.ResolveScreenTarget(string(target), ""); ok {
			ws.Screen = screenID
		} else if main != nil {
			ws.Screen = main.ID
			intended := target
			ws.IntendedScreen = &intended
			m.log.Warn("workspace screen not found, using main",
				"workspace", wc.Name, "screen", target)
		}
		out = append(out, ws)
	}

	for _, s := range st.Screens {
		hasAny := false
		for _, ws := range out {
			if ws.Screen == s.ID {
				hasAny = true
				break
			}
		}
		if hasAny {
			continue
		}
		name := s.Name
		for i := 2; seen[name]; i++ {
			name = fmt.Sprintf("%s-%d", s.Name, i)
		}
		seen[name] = true
		out = append(out, &state.Workspace{
			Name:   name,
			Screen: s.ID,
			Layout: config.LayoutTiling,
		})
	}

	return out
}

// fallbackWorkspace is where windows land when their workspace is gone:
// the main screen's first workspace, or any workspace at all.
func (m *Manager) fallbackWorkspace(st *state.State) *state.Workspace {
	if main := st.MainScreen(); main != nil {
		if wss := st.WorkspacesOnScreen(main.ID); len(wss) > 0 {
			return wss[0]
		}
	}
	if len(st.Workspaces) > 0 {
		return st.Workspaces[0]
	}
	return nil
}

func sameScreenIDs(a []state.Screen, b []state.Screen) bool {
	if len(a) != len(b) {
		return false
	}
	ids := make(map[string]bool, len(a))
	for _, s := range a {
		ids[s.ID] = true
	}
	for _, s := range b {
		if !ids[s.ID] {
			return false
		}
	}
	return true
}
