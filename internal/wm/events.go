package wm

import (
	"context"
	"time"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/1broseidon/tilewm/internal/state"
)

// screenChangeDebounce coalesces the burst of randr events a monitor
// hotplug produces into a single reconfiguration.
const screenChangeDebounce = 500 * time.Millisecond

// Run consumes platform events until the context ends or the channel
// closes. It is the single writer for event-driven state changes.
func (m *Manager) Run(ctx context.Context, events <-chan platform.Event) {
	var debounce *time.Timer
	var debounceC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-debounceC:
			debounceC = nil
			if err := m.HandleScreenChange(); err != nil {
				m.log.Warn("screen change", "error", err)
			}
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case platform.WindowCreated:
				m.handleWindowCreated(ev.Window)
			case platform.WindowDestroyed:
				m.handleWindowDestroyed(ev.ID)
			case platform.WindowFrameChanged:
				m.handleFrameChanged(ev)
			case platform.FocusChanged:
				m.handleFocusChanged(ev.ID)
			case platform.ScreensChanged:
				if debounce == nil {
					debounce = time.NewTimer(screenChangeDebounce)
				} else {
					if !debounce.Stop() {
						select {
						case <-debounce.C:
						default:
						}
					}
					debounce.Reset(screenChangeDebounce)
				}
				debounceC = debounce.C
			}
		}
	}
}

func (m *Manager) handleWindowCreated(info platform.WindowInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, tracked := m.st.Windows[info.ID]; tracked {
		return
	}

	w := managedFromInfo(info)
	wsName := m.findWorkspaceForWindow(w)
	if wsName == "" {
		return
	}
	m.attachWindow(w, wsName)
	m.log.Debug("window created", "window", w.ID, "app", w.AppID, "workspace", wsName)

	ws := m.st.Workspace(wsName)
	if ws != nil && ws.Layout == config.LayoutFloating {
		if preset := m.presetOnOpen(wsName); preset != "" {
			if err := m.applyPresetToWindow(w, wsName, preset); err != nil {
				m.log.Warn("preset on open", "window", w.ID, "preset", preset, "error", err)
			}
			return
		}
	}

	if err := m.applyLayout(wsName); err != nil {
		m.log.Warn("apply layout", "workspace", wsName, "error", err)
	}
}

func (m *Manager) handleWindowDestroyed(id state.WindowID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ws := m.st.WorkspaceOf(id)
	if ws == nil {
		delete(m.st.Windows, id)
		return
	}

	ws.RemoveWindow(id)
	delete(m.st.Windows, id)
	if ws.FocusedWindow == id {
		ws.FocusedWindow = 0
	}
	if m.st.FocusedWindow != nil && *m.st.FocusedWindow == id {
		m.st.FocusedWindow = nil
	}

	m.log.Debug("window destroyed", "window", id, "workspace", ws.Name)
	if err := m.applyLayout(ws.Name); err != nil {
		m.log.Warn("apply layout", "workspace", ws.Name, "error", err)
	}
}

// handleFrameChanged tells user moves apart from user resizes and
// routes them. Frames still being animated by us are not user input.
func (m *Manager) handleFrameChanged(ev platform.WindowFrameChanged) {
	if m.anim.Animating(ev.ID) {
		return
	}

	m.mu.RLock()
	w := m.st.Window(ev.ID)
	var expected state.Frame
	if w != nil {
		expected = w.Frame
	}
	m.mu.RUnlock()

	if w == nil || ev.Frame == expected {
		return
	}

	sizeChanged := ev.Frame.Width != ev.Old.Width || ev.Frame.Height != ev.Old.Height
	var err error
	if sizeChanged {
		err = m.HandleUserResize(ev.ID, ev.Frame.Width, ev.Frame.Height)
	} else {
		err = m.HandleWindowMoved(ev.ID)
	}
	if err != nil {
		m.log.Warn("frame change", "window", ev.ID, "error", err)
	}
}

func (m *Manager) handleFocusChanged(id state.WindowID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == 0 {
		m.st.FocusedWindow = nil
		return
	}
	m.focusWindow(id)
	if ws := m.st.WorkspaceOf(id); ws != nil {
		m.st.FocusedWorkspace = ws.Name
		m.st.FocusedPerScreen[ws.Screen] = ws.Name
	}
}

// presetOnOpen returns the preset new windows of a workspace get.
func (m *Manager) presetOnOpen(wsName string) string {
	for _, wc := range m.cfg.EffectiveWorkspaces() {
		if wc.Name == wsName {
			return wc.PresetOnOpen
		}
	}
	return ""
}
