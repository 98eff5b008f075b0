//go:build linux

package platform

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/1broseidon/tilewm/internal/state"
	"github.com/1broseidon/tilewm/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// LinuxBackend wraps an X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// Screens returns all connected screens, main screen first.
func (b *LinuxBackend) Screens() ([]state.Screen, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	screens := make([]state.Screen, 0, len(monitors))
	for _, m := range monitors {
		screens = append(screens, state.Screen{
			ID:     strconv.Itoa(m.ID),
			Name:   m.Name,
			IsMain: m.Primary,
			Frame:  state.Frame{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height},
			UsableFrame: state.Frame{
				X: m.UsableX, Y: m.UsableY,
				Width: m.UsableWidth, Height: m.UsableHeight,
			},
		})
	}

	sort.Slice(screens, func(i, j int) bool {
		if screens[i].IsMain != screens[j].IsMain {
			return screens[i].IsMain
		}
		return screens[i].ID < screens[j].ID
	})

	return screens, nil
}

// ListWindows returns every manageable top-level window.
func (b *LinuxBackend) ListWindows() ([]WindowInfo, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	infos, err := conn.ListWindows()
	if err != nil {
		return nil, err
	}

	windows := make([]WindowInfo, 0, len(infos))
	for _, info := range infos {
		windows = append(windows, windowFromX11(info))
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].ID < windows[j].ID
	})

	return windows, nil
}

// Window returns a snapshot of one window.
func (b *LinuxBackend) Window(id state.WindowID) (WindowInfo, error) {
	conn, err := b.connection()
	if err != nil {
		return WindowInfo{}, err
	}
	info, err := conn.WindowInfo(xproto.Window(id))
	if err != nil {
		return WindowInfo{}, err
	}
	return windowFromX11(info), nil
}

// ActiveWindow returns the currently focused window, 0 when none.
func (b *LinuxBackend) ActiveWindow() (state.WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	wid, err := conn.GetActiveWindow()
	if err != nil {
		return 0, err
	}
	return state.WindowID(wid), nil
}

// MoveResize moves and resizes a window to the specified frame.
func (b *LinuxBackend) MoveResize(id state.WindowID, frame state.Frame) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MoveResizeWindow(xproto.Window(id), frame.X, frame.Y, frame.Width, frame.Height)
}

// Focus activates and raises a window.
func (b *LinuxBackend) Focus(id state.WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.FocusWindow(xproto.Window(id))
}

// Hide iconifies a window. X11 has no separate hidden state for client
// windows, so hiding and minimizing are the same operation.
func (b *LinuxBackend) Hide(id state.WindowID) error {
	return b.Minimize(id)
}

// Unhide maps an iconified window again.
func (b *LinuxBackend) Unhide(id state.WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.Deiconify(xproto.Window(id))
}

// Minimize minimizes a window via WM_CHANGE_STATE.
func (b *LinuxBackend) Minimize(id state.WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.Iconify(xproto.Window(id))
}

// Close requests graceful window close via WM_DELETE_WINDOW.
func (b *LinuxBackend) Close(id state.WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.CloseWindow(xproto.Window(id))
}

// RefreshRate reports the primary display refresh rate in Hz.
func (b *LinuxBackend) RefreshRate() int {
	conn, err := b.connection()
	if err != nil {
		return 60
	}
	return conn.RefreshRate()
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func windowFromX11(info x11.WindowInfo) WindowInfo {
	return WindowInfo{
		ID:         state.WindowID(info.ID),
		PID:        info.PID,
		Title:      info.Title,
		AppName:    info.Instance,
		AppID:      info.Class,
		Class:      info.Class,
		Frame:      state.Frame{X: info.X, Y: info.Y, Width: info.Width, Height: info.Height},
		Minimized:  info.Minimized,
		Fullscreen: info.Fullscreen,
	}
}
