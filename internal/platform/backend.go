// Package platform abstracts window-system operations across backends.
package platform

import "github.com/1broseidon/tilewm/internal/state"

// WindowInfo is a snapshot of one top-level window.
type WindowInfo struct {
	ID         state.WindowID
	PID        int
	Title      string
	AppName    string
	AppID      string
	Class      string
	Frame      state.Frame
	Minimized  bool
	Fullscreen bool
}

// Backend abstracts the window system.
type Backend interface {
	// Screens returns the connected screens with their usable frames.
	Screens() ([]state.Screen, error)
	// ListWindows returns every manageable top-level window.
	ListWindows() ([]WindowInfo, error)
	// Window returns a snapshot of one window.
	Window(id state.WindowID) (WindowInfo, error)
	// ActiveWindow returns the focused window, 0 when none.
	ActiveWindow() (state.WindowID, error)
	MoveResize(id state.WindowID, frame state.Frame) error
	Focus(id state.WindowID) error
	// Hide removes a window from view without closing it.
	Hide(id state.WindowID) error
	// Unhide makes a hidden window visible again.
	Unhide(id state.WindowID) error
	Minimize(id state.WindowID) error
	Close(id state.WindowID) error
	// RefreshRate reports the display refresh rate in Hz.
	RefreshRate() int
}

// Event is a change reported by an event source.
type Event interface{ isEvent() }

// WindowCreated reports a new top-level window.
type WindowCreated struct{ Window WindowInfo }

// WindowDestroyed reports a window that no longer exists.
type WindowDestroyed struct{ ID state.WindowID }

// WindowFrameChanged reports a window moved or resized outside our
// control, for example by the user dragging it.
type WindowFrameChanged struct {
	ID    state.WindowID
	Old   state.Frame
	Frame state.Frame
}

// FocusChanged reports a new focused window, 0 when focus was lost.
type FocusChanged struct{ ID state.WindowID }

// ScreensChanged reports a change in the screen configuration.
type ScreensChanged struct{}

func (WindowCreated) isEvent()      {}
func (WindowDestroyed) isEvent()    {}
func (WindowFrameChanged) isEvent() {}
func (FocusChanged) isEvent()       {}
func (ScreensChanged) isEvent()     {}
