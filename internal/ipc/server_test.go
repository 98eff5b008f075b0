package ipc

import (
	"io"
	"log/slog"
	"testing"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/1broseidon/tilewm/internal/state"
	"github.com/1broseidon/tilewm/internal/wm"
)

// stubBackend serves a fixed screen and window set.
type stubBackend struct {
	screens []state.Screen
	windows []platform.WindowInfo
	active  state.WindowID
}

func (b *stubBackend) Screens() ([]state.Screen, error)            { return b.screens, nil }
func (b *stubBackend) ListWindows() ([]platform.WindowInfo, error) { return b.windows, nil }
func (b *stubBackend) Window(id state.WindowID) (platform.WindowInfo, error) {
	for _, w := range b.windows {
		if w.ID == id {
			return w, nil
		}
	}
	return platform.WindowInfo{}, io.EOF
}
func (b *stubBackend) ActiveWindow() (state.WindowID, error)        { return b.active, nil }
func (b *stubBackend) MoveResize(state.WindowID, state.Frame) error { return nil }
func (b *stubBackend) Focus(id state.WindowID) error                { b.active = id; return nil }
func (b *stubBackend) Hide(state.WindowID) error                    { return nil }
func (b *stubBackend) Unhide(state.WindowID) error                  { return nil }
func (b *stubBackend) Minimize(state.WindowID) error                { return nil }
func (b *stubBackend) Close(state.WindowID) error                   { return nil }
func (b *stubBackend) RefreshRate() int                             { return 60 }

func startTestServer(t *testing.T) *Client {
	t.Helper()
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	frame := state.Frame{Width: 1920, Height: 1080}
	backend := &stubBackend{
		screens: []state.Screen{{ID: "s1", Name: "eDP-1", Frame: frame, UsableFrame: frame, IsMain: true}},
		windows: []platform.WindowInfo{
			{ID: 1, Title: "editor", AppID: "code", Frame: state.Frame{Width: 800, Height: 600}},
		},
		active: 1,
	}

	cfg := config.Default()
	off := false
	cfg.Animation.Enabled = &off

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	mgr := wm.New(cfg, backend, log)
	if err := mgr.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	server, err := NewServer(mgr, log)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if err := server.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(server.Stop)

	return NewClient()
}

func TestServerStatusRoundtrip(t *testing.T) {
	client := startTestServer(t)

	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if !status.DaemonRunning {
		t.Fatal("expected daemon_running")
	}
	if status.Windows != 1 || status.Screens != 1 {
		t.Fatalf("status = %+v", status)
	}
}

func TestServerQueriesAndCommands(t *testing.T) {
	client := startTestServer(t)

	screens, err := client.GetScreens()
	if err != nil {
		t.Fatalf("GetScreens: %v", err)
	}
	if len(screens.Screens) != 1 || screens.Screens[0].Name != "eDP-1" {
		t.Fatalf("screens = %+v", screens.Screens)
	}

	windows, err := client.GetWindows()
	if err != nil {
		t.Fatalf("GetWindows: %v", err)
	}
	if len(windows.Windows) != 1 || windows.Windows[0].AppID != "code" {
		t.Fatalf("windows = %+v", windows.Windows)
	}

	if err := client.Balance(""); err != nil {
		t.Fatalf("Balance: %v", err)
	}

	if err := client.SwitchWorkspace("2"); err != nil {
		t.Fatalf("SwitchWorkspace: %v", err)
	}
	workspaces, err := client.GetWorkspaces()
	if err != nil {
		t.Fatalf("GetWorkspaces: %v", err)
	}
	var focused string
	for _, ws := range workspaces.Workspaces {
		if ws.Focused {
			focused = ws.Name
		}
	}
	if focused != "2" {
		t.Fatalf("focused workspace = %q, want 2", focused)
	}
}

func TestServerErrorResponses(t *testing.T) {
	client := startTestServer(t)

	if err := client.SwitchWorkspace("nope"); err == nil {
		t.Fatal("expected error for unknown workspace")
	}
	if err := client.Resize("depth", 10); err == nil {
		t.Fatal("expected error for invalid dimension")
	}
	if err := client.SetLayout("", "cascade"); err == nil {
		t.Fatal("expected error for invalid layout")
	}
	if err := client.Balance("nope"); err == nil {
		t.Fatal("expected error for unknown workspace")
	}
	if _, err := client.sendRequest(&Request{Command: "BOGUS"}); err == nil {
		t.Fatal("expected error for unknown command")
	}
}
