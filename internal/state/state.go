package state

import (
	"github.com/1broseidon/tilewm/internal/config"
)

// WindowID identifies a managed window. X11 window IDs fit in the low
// 32 bits; the wider type keeps room for other backends.
type WindowID uint64

// Frame is a rectangle in global screen coordinates.
type Frame struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CenterX returns the horizontal center of the frame.
func (f Frame) CenterX() int { return f.X + f.Width/2 }

// CenterY returns the vertical center of the frame.
func (f Frame) CenterY() int { return f.Y + f.Height/2 }

// Contains reports whether the point lies inside the frame.
func (f Frame) Contains(x, y int) bool {
	return x >= f.X && x < f.X+f.Width && y >= f.Y && y < f.Y+f.Height
}

// IsLandscape reports whether the frame is at least as wide as it is tall.
func (f Frame) IsLandscape() bool { return f.Width >= f.Height }

// Screen describes a connected display.
type Screen struct {
	ID   string
	Name string
	// Frame is the full screen area.
	Frame Frame
	// UsableFrame excludes reserved areas such as panels and docks.
	UsableFrame Frame
	IsMain      bool
}

// ManagedWindow is a window tracked by the tiler.
type ManagedWindow struct {
	ID         WindowID
	PID        int
	Title      string
	AppName    string
	AppID      string
	Class      string
	Workspace  string
	Floating   bool
	Minimized  bool
	Fullscreen bool
	Hidden     bool
	Frame      Frame
}

// Workspace is a named group of windows bound to a screen.
type Workspace struct {
	Name   string
	Screen string
	Layout config.LayoutMode
	// Windows holds window IDs in layout order. The order is
	// authoritative: swaps and sends mutate it directly.
	Windows []WindowID
	// SplitRatios customizes split points by depth; 0.5 when absent.
	SplitRatios []float64
	// FocusedWindow is the window last focused on this workspace,
	// 0 when none. Switching back restores focus to it.
	FocusedWindow WindowID
	// IntendedScreen is set when the workspace was placed on the main
	// screen because its configured screen was not connected.
	IntendedScreen *config.ScreenTarget
}

// HasWindow reports whether the workspace contains the window.
func (w *Workspace) HasWindow(id WindowID) bool {
	for _, wid := range w.Windows {
		if wid == id {
			return true
		}
	}
	return false
}

// WindowIndex returns the window's position in layout order, or -1.
func (w *Workspace) WindowIndex(id WindowID) int {
	for i, wid := range w.Windows {
		if wid == id {
			return i
		}
	}
	return -1
}

// RemoveWindow removes the window from the workspace, preserving order.
func (w *Workspace) RemoveWindow(id WindowID) {
	kept := w.Windows[:0]
	for _, wid := range w.Windows {
		if wid != id {
			kept = append(kept, wid)
		}
	}
	w.Windows = kept
}

// State is the complete tiling state. It is not safe for concurrent
// use; the tiling manager serializes access behind its lock.
type State struct {
	Screens    []Screen
	Workspaces []*Workspace
	Windows    map[WindowID]*ManagedWindow
	// FocusedWorkspace is the globally focused workspace name.
	FocusedWorkspace string
	// FocusedPerScreen maps screen ID to the workspace focused on it.
	FocusedPerScreen map[string]string
	FocusedWindow    *WindowID
}

// New returns an empty state.
func New() *State {
	return &State{
		Windows:          make(map[WindowID]*ManagedWindow),
		FocusedPerScreen: make(map[string]string),
	}
}

// Workspace returns the workspace with the given name, or nil.
func (s *State) Workspace(name string) *Workspace {
	for _, ws := range s.Workspaces {
		if ws.Name == name {
			return ws
		}
	}
	return nil
}

// Screen returns the screen with the given ID, or nil.
func (s *State) Screen(id string) *Screen {
	for i := range s.Screens {
		if s.Screens[i].ID == id {
			return &s.Screens[i]
		}
	}
	return nil
}

// MainScreen returns the main screen, falling back to the first one.
func (s *State) MainScreen() *Screen {
	for i := range s.Screens {
		if s.Screens[i].IsMain {
			return &s.Screens[i]
		}
	}
	if len(s.Screens) > 0 {
		return &s.Screens[0]
	}
	return nil
}

// Window returns the managed window with the given ID, or nil.
func (s *State) Window(id WindowID) *ManagedWindow {
	return s.Windows[id]
}

// WorkspaceOf returns the workspace containing the window, or nil.
func (s *State) WorkspaceOf(id WindowID) *Workspace {
	for _, ws := range s.Workspaces {
		if ws.HasWindow(id) {
			return ws
		}
	}
	return nil
}

// WorkspacesOnScreen returns workspaces bound to the screen, in order.
func (s *State) WorkspacesOnScreen(screenID string) []*Workspace {
	var out []*Workspace
	for _, ws := range s.Workspaces {
		if ws.Screen == screenID {
			out = append(out, ws)
		}
	}
	return out
}

// ScreenForPoint returns the screen whose frame contains the point,
// falling back to the main screen.
func (s *State) ScreenForPoint(x, y int) *Screen {
	for i := range s.Screens {
		if s.Screens[i].Frame.Contains(x, y) {
			return &s.Screens[i]
		}
	}
	return s.MainScreen()
}

// ResolveScreenTarget maps a screen target string ("main", "secondary",
// a screen ID, or a screen name) to a screen ID. Secondary resolves to
// the first non-main screen, preferring one different from current.
func (s *State) ResolveScreenTarget(target string, currentScreenID string) (string, bool) {
	switch target {
	case string(config.ScreenMain):
		if main := s.MainScreen(); main != nil {
			return main.ID, true
		}
		return "", false
	case string(config.ScreenSecondary):
		for i := range s.Screens {
			if !s.Screens[i].IsMain && s.Screens[i].ID != currentScreenID {
				return s.Screens[i].ID, true
			}
		}
		for i := range s.Screens {
			if !s.Screens[i].IsMain {
				return s.Screens[i].ID, true
			}
		}
		return "", false
	default:
		for i := range s.Screens {
			if s.Screens[i].ID == target || s.Screens[i].Name == target {
				return s.Screens[i].ID, true
			}
		}
		return "", false
	}
}
