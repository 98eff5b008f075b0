// Package wm is the window manager core: it owns the state, reacts to
// window-system events, and executes the commands the IPC server
// receives.
package wm

import (
	"log/slog"
	"sync"

	"github.com/1broseidon/tilewm/internal/animation"
	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/1broseidon/tilewm/internal/state"
	"github.com/1broseidon/tilewm/internal/workspace"
)

// Manager coordinates workspaces, layouts, and windows. All public
// methods are safe for concurrent use; a single RWMutex guards the
// state.
type Manager struct {
	mu      sync.RWMutex
	cfg     *config.Config
	st      *state.State
	backend platform.Backend
	wsm     *workspace.Manager
	anim    *animation.Engine
	log     *slog.Logger

	// workspacePIDs remembers which workspace an application's windows
	// were assigned to, keyed by process id. Entries outlive the
	// windows, so an app that closes and reopens its window returns to
	// the same workspace.
	workspacePIDs map[string]map[int]bool
}

func New(cfg *config.Config, backend platform.Backend, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	m := &Manager{
		cfg:           cfg,
		st:            state.New(),
		backend:       backend,
		wsm:           workspace.NewManager(cfg, log),
		log:           log,
		workspacePIDs: make(map[string]map[int]bool),
	}
	m.anim = animation.NewEngine(cfg.Animation, backend.MoveResize, log)
	return m
}

// Animation exposes the animation engine so the daemon can run its
// frame loop.
func (m *Manager) Animation() *animation.Engine { return m.anim }

// Initialize reads the screen and window state from the backend,
// builds workspaces, assigns existing windows by rules, and applies
// all layouts.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	screens, err := m.backend.Screens()
	if err != nil {
		return opErrorf("list screens: %v", err)
	}
	if len(screens) == 0 {
		return opErrorf("no screens found")
	}

	m.wsm.Initialize(m.st, screens)
	m.discoverAndAssignWindows()
	m.applyAllLayouts()

	if id, err := m.backend.ActiveWindow(); err == nil && id != 0 {
		m.focusWindow(id)
		if ws := m.st.WorkspaceOf(id); ws != nil {
			m.st.FocusedWorkspace = ws.Name
			m.st.FocusedPerScreen[ws.Screen] = ws.Name
		}
	}

	m.log.Info("initialized",
		"screens", len(m.st.Screens),
		"workspaces", len(m.st.Workspaces),
		"windows", len(m.st.Windows))
	return nil
}

// Reload swaps in a new configuration and re-applies every layout.
// Workspaces are rebuilt, so windows are re-matched against rules.
func (m *Manager) Reload(cfg *config.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cfg = cfg
	m.wsm.SetConfig(cfg)
	m.anim.SetConfig(cfg.Animation)

	screens, err := m.backend.Screens()
	if err != nil {
		return opErrorf("list screens: %v", err)
	}
	m.wsm.Reinitialize(m.st, screens)
	m.applyAllLayouts()

	m.log.Info("configuration reloaded")
	return nil
}

// SwitchWorkspace makes a workspace the focused one on its screen,
// hiding the windows of the workspace it replaces.
func (m *Manager) SwitchWorkspace(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.switchWorkspace(name)
}

func (m *Manager) switchWorkspace(name string) error {
	target := m.st.Workspace(name)
	if target == nil {
		return &WorkspaceNotFoundError{Name: name}
	}

	previous := m.st.FocusedPerScreen[target.Screen]
	if previous != name {
		if prevWS := m.st.Workspace(previous); prevWS != nil {
			for _, id := range prevWS.Windows {
				if err := m.backend.Hide(id); err != nil {
					m.log.Warn("hide window", "window", id, "error", err)
					continue
				}
				if w := m.st.Window(id); w != nil {
					w.Hidden = true
				}
			}
		}
	}

	for _, id := range target.Windows {
		w := m.st.Window(id)
		if w == nil || !w.Hidden {
			continue
		}
		if err := m.backend.Unhide(id); err != nil {
			m.log.Warn("unhide window", "window", id, "error", err)
			continue
		}
		w.Hidden = false
	}

	m.st.FocusedPerScreen[target.Screen] = name
	m.st.FocusedWorkspace = name

	if err := m.applyLayout(name); err != nil {
		return err
	}

	if len(target.Windows) > 0 {
		id := target.Windows[0]
		if target.FocusedWindow != 0 && target.HasWindow(target.FocusedWindow) {
			id = target.FocusedWindow
		}
		if err := m.backend.Focus(id); err == nil {
			m.focusWindow(id)
		}
	}
	return nil
}

// HandleScreenChange adapts to a new screen configuration and
// re-applies all layouts.
func (m *Manager) HandleScreenChange() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	screens, err := m.backend.Screens()
	if err != nil {
		return opErrorf("list screens: %v", err)
	}
	if len(screens) == 0 {
		return opErrorf("no screens found")
	}

	m.wsm.Reinitialize(m.st, screens)
	m.applyAllLayouts()

	m.log.Info("screen configuration changed", "screens", len(screens))
	return nil
}

// focusedWindowAndWorkspace resolves the focused window and makes sure
// it is tracked in a workspace, adding it on the fly if needed.
func (m *Manager) focusedWindowAndWorkspace() (*state.ManagedWindow, string, error) {
	id, err := m.backend.ActiveWindow()
	if err != nil || id == 0 {
		return nil, "", opErrorf("no focused window")
	}

	if ws := m.st.WorkspaceOf(id); ws != nil {
		w := m.st.Window(id)
		if w == nil {
			return nil, "", &WindowNotFoundError{ID: id}
		}
		return w, ws.Name, nil
	}

	// Window not tracked yet, adopt it now.
	info, err := m.backend.Window(id)
	if err != nil {
		return nil, "", &WindowNotFoundError{ID: id}
	}
	w := managedFromInfo(info)
	wsName := m.findWorkspaceForWindow(w)
	if wsName == "" {
		return nil, "", opErrorf("could not find workspace for window %d", id)
	}
	m.attachWindow(w, wsName)
	return w, wsName, nil
}

func (m *Manager) attachWindow(w *state.ManagedWindow, wsName string) {
	w.Workspace = wsName
	m.st.Windows[w.ID] = w
	if ws := m.st.Workspace(wsName); ws != nil && !ws.HasWindow(w.ID) {
		ws.Windows = append(ws.Windows, w.ID)
	}
	m.recordPID(w.PID, wsName)
}

// recordPID binds a process id to a workspace, replacing any earlier
// binding for the same pid.
func (m *Manager) recordPID(pid int, wsName string) {
	if pid == 0 {
		return
	}
	for name, pids := range m.workspacePIDs {
		if name != wsName {
			delete(pids, pid)
		}
	}
	pids := m.workspacePIDs[wsName]
	if pids == nil {
		pids = make(map[int]bool)
		m.workspacePIDs[wsName] = pids
	}
	pids[pid] = true
}

// pidWorkspace returns the workspace a process was last assigned to.
func (m *Manager) pidWorkspace(pid int) string {
	if pid == 0 {
		return ""
	}
	for name, pids := range m.workspacePIDs {
		if pids[pid] {
			return name
		}
	}
	return ""
}

// focusWindow records focus on the window and its workspace after a
// successful backend focus.
func (m *Manager) focusWindow(id state.WindowID) {
	m.st.FocusedWindow = &id
	if ws := m.st.WorkspaceOf(id); ws != nil {
		ws.FocusedWindow = id
	}
}

func managedFromInfo(info platform.WindowInfo) *state.ManagedWindow {
	return &state.ManagedWindow{
		ID:         info.ID,
		PID:        info.PID,
		Title:      info.Title,
		AppName:    info.AppName,
		AppID:      info.AppID,
		Class:      info.Class,
		Minimized:  info.Minimized,
		Fullscreen: info.Fullscreen,
		Frame:      info.Frame,
	}
}
