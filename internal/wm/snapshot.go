package wm

import (
	"github.com/1broseidon/tilewm/internal/state"
)

// ScreenSnapshot is the wire form of a connected screen.
type ScreenSnapshot struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Frame            state.Frame `json:"frame"`
	UsableFrame      state.Frame `json:"usable_frame"`
	IsMain           bool        `json:"is_main"`
	FocusedWorkspace string      `json:"focused_workspace,omitempty"`
}

// WorkspaceSnapshot is the wire form of a workspace.
type WorkspaceSnapshot struct {
	Name          string    `json:"name"`
	Screen        string    `json:"screen"`
	Layout        string    `json:"layout"`
	Windows       []uint64  `json:"windows"`
	SplitRatios   []float64 `json:"split_ratios,omitempty"`
	FocusedWindow uint64    `json:"focused_window_id,omitempty"`
	Focused       bool      `json:"focused"`
	Visible       bool      `json:"visible"`
}

// WindowSnapshot is the wire form of a managed window.
type WindowSnapshot struct {
	ID         uint64      `json:"id"`
	PID        int         `json:"pid"`
	Title      string      `json:"title"`
	AppName    string      `json:"app_name"`
	AppID      string      `json:"app_id"`
	Workspace  string      `json:"workspace"`
	Floating   bool        `json:"floating"`
	Minimized  bool        `json:"minimized"`
	Hidden     bool        `json:"hidden"`
	Fullscreen bool        `json:"fullscreen"`
	Frame      state.Frame `json:"frame"`
	Focused    bool        `json:"focused"`
}

// StatusSnapshot summarizes the manager for the status command.
type StatusSnapshot struct {
	Screens          int    `json:"screens"`
	Workspaces       int    `json:"workspaces"`
	Windows          int    `json:"windows"`
	FocusedWorkspace string `json:"focused_workspace,omitempty"`
	FocusedWindow    uint64 `json:"focused_window,omitempty"`
	Animating        int    `json:"animating"`
}

// Status returns a summary of the current state.
func (m *Manager) Status() StatusSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := StatusSnapshot{
		Screens:          len(m.st.Screens),
		Workspaces:       len(m.st.Workspaces),
		Windows:          len(m.st.Windows),
		FocusedWorkspace: m.st.FocusedWorkspace,
		Animating:        m.anim.Active(),
	}
	if m.st.FocusedWindow != nil {
		s.FocusedWindow = uint64(*m.st.FocusedWindow)
	}
	return s
}

// Screens returns snapshots of all connected screens.
func (m *Manager) Screens() []ScreenSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ScreenSnapshot, 0, len(m.st.Screens))
	for _, sc := range m.st.Screens {
		out = append(out, ScreenSnapshot{
			ID:               sc.ID,
			Name:             sc.Name,
			Frame:            sc.Frame,
			UsableFrame:      sc.UsableFrame,
			IsMain:           sc.IsMain,
			FocusedWorkspace: m.st.FocusedPerScreen[sc.ID],
		})
	}
	return out
}

// Workspaces returns snapshots of all workspaces.
func (m *Manager) Workspaces() []WorkspaceSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]WorkspaceSnapshot, 0, len(m.st.Workspaces))
	for _, ws := range m.st.Workspaces {
		ids := make([]uint64, 0, len(ws.Windows))
		for _, id := range ws.Windows {
			ids = append(ids, uint64(id))
		}
		out = append(out, WorkspaceSnapshot{
			Name:          ws.Name,
			Screen:        ws.Screen,
			Layout:        string(ws.Layout),
			Windows:       ids,
			SplitRatios:   ws.SplitRatios,
			FocusedWindow: uint64(ws.FocusedWindow),
			Focused:       ws.Name == m.st.FocusedWorkspace,
			Visible:       m.st.FocusedPerScreen[ws.Screen] == ws.Name,
		})
	}
	return out
}

// Windows returns snapshots of all managed windows in workspace order.
func (m *Manager) Windows() []WindowSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var focused state.WindowID
	if m.st.FocusedWindow != nil {
		focused = *m.st.FocusedWindow
	}

	var out []WindowSnapshot
	for _, ws := range m.st.Workspaces {
		for _, id := range ws.Windows {
			w := m.st.Window(id)
			if w == nil {
				continue
			}
			out = append(out, WindowSnapshot{
				ID:         uint64(w.ID),
				PID:        w.PID,
				Title:      w.Title,
				AppName:    w.AppName,
				AppID:      w.AppID,
				Workspace:  ws.Name,
				Floating:   w.Floating,
				Minimized:  w.Minimized,
				Hidden:     w.Hidden,
				Fullscreen: w.Fullscreen,
				Frame:      w.Frame,
				Focused:    w.ID == focused && focused != 0,
			})
		}
	}
	return out
}
