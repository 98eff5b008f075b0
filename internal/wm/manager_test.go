package wm

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/1broseidon/tilewm/internal/state"
)

// fakeBackend is an in-memory window system for tests. Hide iconifies,
// matching the X11 backend.
type fakeBackend struct {
	screens []state.Screen
	windows map[state.WindowID]*platform.WindowInfo
	order   []state.WindowID
	active  state.WindowID

	focusLog []state.WindowID
	hideLog  []state.WindowID
	closed   []state.WindowID
}

func newFakeBackend(screens ...state.Screen) *fakeBackend {
	return &fakeBackend{
		screens: screens,
		windows: make(map[state.WindowID]*platform.WindowInfo),
	}
}

func (f *fakeBackend) addWindow(info platform.WindowInfo) {
	copied := info
	f.windows[info.ID] = &copied
	f.order = append(f.order, info.ID)
}

func (f *fakeBackend) removeWindow(id state.WindowID) {
	delete(f.windows, id)
	kept := f.order[:0]
	for _, wid := range f.order {
		if wid != id {
			kept = append(kept, wid)
		}
	}
	f.order = kept
}

func (f *fakeBackend) Screens() ([]state.Screen, error) { return f.screens, nil }

func (f *fakeBackend) ListWindows() ([]platform.WindowInfo, error) {
	out := make([]platform.WindowInfo, 0, len(f.order))
	for _, id := range f.order {
		if info, ok := f.windows[id]; ok {
			out = append(out, *info)
		}
	}
	return out, nil
}

func (f *fakeBackend) Window(id state.WindowID) (platform.WindowInfo, error) {
	if info, ok := f.windows[id]; ok {
		return *info, nil
	}
	return platform.WindowInfo{}, &WindowNotFoundError{ID: id}
}

func (f *fakeBackend) ActiveWindow() (state.WindowID, error) { return f.active, nil }

func (f *fakeBackend) MoveResize(id state.WindowID, frame state.Frame) error {
	if info, ok := f.windows[id]; ok {
		info.Frame = frame
	}
	return nil
}

func (f *fakeBackend) Focus(id state.WindowID) error {
	f.active = id
	f.focusLog = append(f.focusLog, id)
	return nil
}

func (f *fakeBackend) Hide(id state.WindowID) error {
	if info, ok := f.windows[id]; ok {
		info.Minimized = true
	}
	f.hideLog = append(f.hideLog, id)
	return nil
}

func (f *fakeBackend) Unhide(id state.WindowID) error {
	if info, ok := f.windows[id]; ok {
		info.Minimized = false
	}
	return nil
}

func (f *fakeBackend) Minimize(id state.WindowID) error { return f.Hide(id) }

func (f *fakeBackend) Close(id state.WindowID) error {
	f.closed = append(f.closed, id)
	f.removeWindow(id)
	return nil
}

func (f *fakeBackend) RefreshRate() int { return 60 }

func singleScreen() state.Screen {
	frame := state.Frame{X: 0, Y: 0, Width: 1920, Height: 1080}
	return state.Screen{ID: "s1", Name: "eDP-1", Frame: frame, UsableFrame: frame, IsMain: true}
}

func testConfig() *config.Config {
	cfg := config.Default()
	off := false
	cfg.Animation.Enabled = &off
	return cfg
}

func testWindow(id state.WindowID, appID string, frame state.Frame) platform.WindowInfo {
	return platform.WindowInfo{
		ID:      id,
		PID:     int(id) + 1000,
		Title:   appID + " window",
		AppName: appID,
		AppID:   appID,
		Class:   appID,
		Frame:   frame,
	}
}

func newTestManager(t *testing.T, cfg *config.Config, be *fakeBackend) *Manager {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := New(cfg, be, log)
	if err := m.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return m
}

func wantFrame(t *testing.T, be *fakeBackend, id state.WindowID, want state.Frame) {
	t.Helper()
	info, ok := be.windows[id]
	if !ok {
		t.Fatalf("window %d not in backend", id)
	}
	if info.Frame != want {
		t.Fatalf("window %d frame = %+v, want %+v", id, info.Frame, want)
	}
}

func TestInitializeTilesExistingWindows(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "firefox", state.Frame{X: 10, Y: 10, Width: 800, Height: 600}))
	be.addWindow(testWindow(2, "kitty", state.Frame{X: 50, Y: 50, Width: 800, Height: 600}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	ws := m.st.Workspace("1")
	if ws == nil || len(ws.Windows) != 2 {
		t.Fatalf("expected both windows on workspace 1, got %+v", ws)
	}
	wantFrame(t, be, 1, state.Frame{X: 0, Y: 0, Width: 960, Height: 1080})
	wantFrame(t, be, 2, state.Frame{X: 960, Y: 0, Width: 960, Height: 1080})

	if m.st.FocusedWorkspace != "1" {
		t.Fatalf("focused workspace = %q, want 1", m.st.FocusedWorkspace)
	}
}

func TestRulesAssignWindowsToWorkspaces(t *testing.T) {
	cfg := testConfig()
	cfg.Workspaces = []config.WorkspaceConfig{
		{Name: "code", Layout: config.LayoutTiling, Screen: config.ScreenMain,
			Rules: []config.WindowRule{{AppID: "code"}}},
		{Name: "web", Layout: config.LayoutTiling, Screen: config.ScreenMain,
			Rules: []config.WindowRule{{AppID: "firefox"}}},
	}

	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "code", state.Frame{Width: 800, Height: 600}))
	be.addWindow(testWindow(2, "firefox", state.Frame{Width: 800, Height: 600}))
	be.active = 1

	m := newTestManager(t, cfg, be)

	if ws := m.st.WorkspaceOf(1); ws == nil || ws.Name != "code" {
		t.Fatalf("window 1 workspace = %v, want code", ws)
	}
	if ws := m.st.WorkspaceOf(2); ws == nil || ws.Name != "web" {
		t.Fatalf("window 2 workspace = %v, want web", ws)
	}
}

func TestFocusNextCycles(t *testing.T) {
	be := newFakeBackend(singleScreen())
	for id := state.WindowID(1); id <= 3; id++ {
		be.addWindow(testWindow(id, "term", state.Frame{Width: 500, Height: 500}))
	}
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	for _, want := range []state.WindowID{2, 3, 1} {
		if err := m.FocusDirection("next"); err != nil {
			t.Fatalf("FocusDirection(next): %v", err)
		}
		if be.active != want {
			t.Fatalf("active = %d, want %d", be.active, want)
		}
	}

	if err := m.FocusDirection("previous"); err != nil {
		t.Fatalf("FocusDirection(previous): %v", err)
	}
	if be.active != 3 {
		t.Fatalf("active = %d, want 3", be.active)
	}
}

func TestFocusDirectional(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "left", state.Frame{Width: 500, Height: 500}))
	be.addWindow(testWindow(2, "right", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	if err := m.FocusDirection("right"); err != nil {
		t.Fatalf("FocusDirection(right): %v", err)
	}
	if be.active != 2 {
		t.Fatalf("active = %d, want 2", be.active)
	}

	// No window further right: focus stays put without an error.
	if err := m.FocusDirection("right"); err != nil {
		t.Fatalf("FocusDirection(right) with no target: %v", err)
	}
	if be.active != 2 {
		t.Fatalf("active = %d, focus should not move", be.active)
	}
	if err := m.FocusDirection("left"); err != nil {
		t.Fatalf("FocusDirection(left): %v", err)
	}
	if be.active != 1 {
		t.Fatalf("active = %d, want 1", be.active)
	}

	if err := m.FocusDirection("sideways"); err == nil {
		t.Fatal("expected error for invalid direction")
	}
}

func TestSwapDirectionReordersAndKeepsFocus(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.addWindow(testWindow(2, "b", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	if err := m.SwapDirection("right"); err != nil {
		t.Fatalf("SwapDirection: %v", err)
	}

	ws := m.st.Workspace("1")
	if ws.Windows[0] != 2 || ws.Windows[1] != 1 {
		t.Fatalf("window order = %v, want [2 1]", ws.Windows)
	}
	wantFrame(t, be, 2, state.Frame{X: 0, Y: 0, Width: 960, Height: 1080})
	wantFrame(t, be, 1, state.Frame{X: 960, Y: 0, Width: 960, Height: 1080})
	if be.active != 1 {
		t.Fatalf("active = %d, focus should follow the swapped window", be.active)
	}
}

func TestSetWorkspaceLayout(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.addWindow(testWindow(2, "b", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	if err := m.SetWorkspaceLayout("1", config.LayoutMonocle); err != nil {
		t.Fatalf("SetWorkspaceLayout: %v", err)
	}
	full := state.Frame{X: 0, Y: 0, Width: 1920, Height: 1080}
	wantFrame(t, be, 1, full)
	wantFrame(t, be, 2, full)

	if err := m.SetWorkspaceLayout("1", "cascade"); err == nil {
		t.Fatal("expected error for invalid layout")
	}
	if err := m.SetWorkspaceLayout("nope", config.LayoutTiling); err == nil {
		t.Fatal("expected error for unknown workspace")
	}
}

func TestSetWorkspaceLayoutClearsFloatingFlags(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	if err := m.SetWorkspaceLayout("1", config.LayoutFloating); err != nil {
		t.Fatalf("SetWorkspaceLayout: %v", err)
	}
	m.st.Window(1).Floating = true

	if err := m.SetWorkspaceLayout("1", config.LayoutTiling); err != nil {
		t.Fatalf("SetWorkspaceLayout: %v", err)
	}
	if m.st.Window(1).Floating {
		t.Fatal("floating flag should reset when leaving the floating layout")
	}
}

func TestResizeFocusedAdjustsSplitRatio(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.addWindow(testWindow(2, "b", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	// 192px on a 1920px screen moves the ratio by 0.1.
	if err := m.ResizeFocused("width", 192); err != nil {
		t.Fatalf("ResizeFocused: %v", err)
	}

	ws := m.st.Workspace("1")
	if len(ws.SplitRatios) == 0 || ws.SplitRatios[0] != 0.6 {
		t.Fatalf("split ratios = %v, want [0.6]", ws.SplitRatios)
	}
	wantFrame(t, be, 1, state.Frame{X: 0, Y: 0, Width: 1152, Height: 1080})
	wantFrame(t, be, 2, state.Frame{X: 1152, Y: 0, Width: 768, Height: 1080})
}

func TestResizeFocusedNoSplitOnDimension(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.addWindow(testWindow(2, "b", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	// Window 0 on a landscape screen sits only on a horizontal split,
	// so a height resize has no ratio to adjust.
	if err := m.ResizeFocused("height", 100); err != nil {
		t.Fatalf("ResizeFocused: %v", err)
	}
	if ratios := m.st.Workspace("1").SplitRatios; len(ratios) != 0 {
		t.Fatalf("split ratios = %v, want none", ratios)
	}

	if err := m.ResizeFocused("depth", 100); err == nil {
		t.Fatal("expected error for invalid dimension")
	}
}

func TestResizeFocusedSingleWindowNoop(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	if err := m.ResizeFocused("width", 100); err != nil {
		t.Fatalf("ResizeFocused: %v", err)
	}
	if ratios := m.st.Workspace("1").SplitRatios; len(ratios) != 0 {
		t.Fatalf("split ratios = %v, want none", ratios)
	}
}

func TestResizeFocusedMasterLayout(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.addWindow(testWindow(2, "b", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)
	if err := m.SetWorkspaceLayout("1", config.LayoutMaster); err != nil {
		t.Fatalf("SetWorkspaceLayout: %v", err)
	}

	if err := m.ResizeFocused("width", 192); err != nil {
		t.Fatalf("ResizeFocused: %v", err)
	}

	ws := m.st.Workspace("1")
	if len(ws.SplitRatios) == 0 || ws.SplitRatios[0] != 0.6 {
		t.Fatalf("split ratios = %v, want [0.6]", ws.SplitRatios)
	}
	wantFrame(t, be, 1, state.Frame{X: 0, Y: 0, Width: 1152, Height: 1080})

	// Height resizing does not apply to the master layout.
	if err := m.ResizeFocused("height", 100); err != nil {
		t.Fatalf("ResizeFocused: %v", err)
	}
	if ws.SplitRatios[0] != 0.6 {
		t.Fatalf("split ratio changed on height resize: %v", ws.SplitRatios)
	}
}

func TestResizeFloatingLayoutWindow(t *testing.T) {
	cfg := testConfig()
	cfg.Workspaces = []config.WorkspaceConfig{
		{Name: "f", Layout: config.LayoutFloating, Screen: config.ScreenMain},
	}

	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{X: 100, Y: 100, Width: 500, Height: 400}))
	be.active = 1

	m := newTestManager(t, cfg, be)

	if err := m.ResizeFocused("width", 150); err != nil {
		t.Fatalf("ResizeFocused: %v", err)
	}
	wantFrame(t, be, 1, state.Frame{X: 100, Y: 100, Width: 650, Height: 400})

	// Shrinking below the minimum clamps to it.
	if err := m.ResizeFocused("height", -1000); err != nil {
		t.Fatalf("ResizeFocused: %v", err)
	}
	wantFrame(t, be, 1, state.Frame{X: 100, Y: 100, Width: 650, Height: 100})
}

func TestHandleUserResizeStoresRatio(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.addWindow(testWindow(2, "b", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	if err := m.HandleUserResize(1, 1152, 1080); err != nil {
		t.Fatalf("HandleUserResize: %v", err)
	}

	ws := m.st.Workspace("1")
	if len(ws.SplitRatios) == 0 || ws.SplitRatios[0] != 0.6 {
		t.Fatalf("split ratios = %v, want [0.6]", ws.SplitRatios)
	}
	wantFrame(t, be, 1, state.Frame{X: 0, Y: 0, Width: 1152, Height: 1080})
}

func TestHandleUserResizeSecondWindowInverts(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.addWindow(testWindow(2, "b", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	// Growing the second window shrinks the first party of the split.
	if err := m.HandleUserResize(2, 1152, 1080); err != nil {
		t.Fatalf("HandleUserResize: %v", err)
	}

	ws := m.st.Workspace("1")
	if len(ws.SplitRatios) == 0 || ws.SplitRatios[0] != 0.4 {
		t.Fatalf("split ratios = %v, want [0.4]", ws.SplitRatios)
	}
}

func TestHandleWindowMovedSnapsBack(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.addWindow(testWindow(2, "b", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	// Simulate the user dragging the window away.
	be.windows[1].Frame = state.Frame{X: 300, Y: 300, Width: 960, Height: 1080}

	if err := m.HandleWindowMoved(1); err != nil {
		t.Fatalf("HandleWindowMoved: %v", err)
	}
	wantFrame(t, be, 1, state.Frame{X: 0, Y: 0, Width: 960, Height: 1080})
}

func TestHandleWindowMovedFloatingNoop(t *testing.T) {
	cfg := testConfig()
	cfg.Workspaces = []config.WorkspaceConfig{
		{Name: "f", Layout: config.LayoutFloating, Screen: config.ScreenMain},
	}

	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{X: 100, Y: 100, Width: 500, Height: 400}))
	be.active = 1

	m := newTestManager(t, cfg, be)

	moved := state.Frame{X: 300, Y: 300, Width: 500, Height: 400}
	be.windows[1].Frame = moved

	if err := m.HandleWindowMoved(1); err != nil {
		t.Fatalf("HandleWindowMoved: %v", err)
	}
	wantFrame(t, be, 1, moved)
}

func TestSwitchWorkspaceHidesAndRestores(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.addWindow(testWindow(2, "b", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	if err := m.SwitchWorkspace("2"); err != nil {
		t.Fatalf("SwitchWorkspace: %v", err)
	}
	if !m.st.Window(1).Hidden || !m.st.Window(2).Hidden {
		t.Fatal("windows of the previous workspace should be hidden")
	}
	if m.st.FocusedWorkspace != "2" {
		t.Fatalf("focused workspace = %q, want 2", m.st.FocusedWorkspace)
	}

	if err := m.SwitchWorkspace("1"); err != nil {
		t.Fatalf("SwitchWorkspace: %v", err)
	}
	if m.st.Window(1).Hidden || m.st.Window(2).Hidden {
		t.Fatal("windows should be visible again")
	}
	if be.active != 1 {
		t.Fatalf("active = %d, want first window focused", be.active)
	}
}

func TestSendToWorkspaceHidesWindow(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.addWindow(testWindow(2, "b", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	if err := m.SendToWorkspace("2", false); err != nil {
		t.Fatalf("SendToWorkspace: %v", err)
	}

	if ws := m.st.WorkspaceOf(1); ws == nil || ws.Name != "2" {
		t.Fatalf("window 1 workspace = %v, want 2", ws)
	}
	if !m.st.Window(1).Hidden {
		t.Fatal("window sent to an invisible workspace should be hidden")
	}
	// The remaining window takes the whole screen.
	wantFrame(t, be, 2, state.Frame{X: 0, Y: 0, Width: 1920, Height: 1080})
}

func TestSendToWorkspaceWithFollowSwitches(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.addWindow(testWindow(2, "b", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	if err := m.SendToWorkspace("2", true); err != nil {
		t.Fatalf("SendToWorkspace: %v", err)
	}

	if m.st.FocusedWorkspace != "2" {
		t.Fatalf("focused workspace = %q, want 2", m.st.FocusedWorkspace)
	}
	if be.active != 1 {
		t.Fatalf("active = %d, want the sent window", be.active)
	}
	if m.st.Window(1).Hidden {
		t.Fatal("followed window should stay visible")
	}

	if err := m.SendToWorkspace("nowhere", false); err == nil {
		t.Fatal("expected error for unknown workspace")
	}
}

func TestSendToScreen(t *testing.T) {
	second := state.Screen{
		ID:          "s2",
		Name:        "HDMI-1",
		Frame:       state.Frame{X: 1920, Y: 0, Width: 1280, Height: 1024},
		UsableFrame: state.Frame{X: 1920, Y: 0, Width: 1280, Height: 1024},
	}
	cfg := testConfig()
	cfg.Workspaces = []config.WorkspaceConfig{
		{Name: "one", Layout: config.LayoutTiling, Screen: config.ScreenMain},
		{Name: "two", Layout: config.LayoutTiling, Screen: config.ScreenSecondary},
	}

	be := newFakeBackend(singleScreen(), second)
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, cfg, be)

	if err := m.SendToScreen("secondary"); err != nil {
		t.Fatalf("SendToScreen: %v", err)
	}
	if ws := m.st.WorkspaceOf(1); ws == nil || ws.Name != "two" {
		t.Fatalf("window 1 workspace = %v, want two", ws)
	}
	wantFrame(t, be, 1, state.Frame{X: 1920, Y: 0, Width: 1280, Height: 1024})

	// Already there, so this is a no-op.
	if err := m.SendToScreen("secondary"); err != nil {
		t.Fatalf("SendToScreen: %v", err)
	}

	if err := m.SendToScreen("DP-9"); err == nil {
		t.Fatal("expected error for unknown screen")
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := testConfig()
	cfg.Workspaces = []config.WorkspaceConfig{
		{Name: "f", Layout: config.LayoutFloating, Screen: config.ScreenMain},
	}
	cfg.Floating.Presets = []config.FloatingPreset{
		{
			Name:   "centered",
			Width:  config.DimensionValue{Percent: 50, IsPercent: true},
			Height: config.DimensionValue{Percent: 50, IsPercent: true},
			Center: true,
		},
	}

	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{X: 5, Y: 5, Width: 500, Height: 400}))
	be.active = 1

	m := newTestManager(t, cfg, be)

	if err := m.ApplyPreset("centered"); err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}
	wantFrame(t, be, 1, state.Frame{X: 480, Y: 270, Width: 960, Height: 540})
	if !m.st.Window(1).Floating {
		t.Fatal("preset should mark the window floating")
	}

	if err := m.ApplyPreset("nope"); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestApplyPresetRequiresFloatingLayout(t *testing.T) {
	cfg := testConfig()
	cfg.Floating.Presets = []config.FloatingPreset{
		{Name: "p", Width: config.DimensionValue{Pixels: 100}, Height: config.DimensionValue{Pixels: 100}},
	}

	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 400}))
	be.active = 1

	m := newTestManager(t, cfg, be)

	if err := m.ApplyPreset("p"); err == nil {
		t.Fatal("expected error outside the floating layout")
	}
}

func TestWindowCreatedEvent(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	info := testWindow(2, "b", state.Frame{Width: 500, Height: 500})
	be.addWindow(info)
	m.handleWindowCreated(info)

	ws := m.st.Workspace("1")
	if len(ws.Windows) != 2 {
		t.Fatalf("workspace windows = %v, want two", ws.Windows)
	}
	wantFrame(t, be, 1, state.Frame{X: 0, Y: 0, Width: 960, Height: 1080})
	wantFrame(t, be, 2, state.Frame{X: 960, Y: 0, Width: 960, Height: 1080})
}

func TestWindowCreatedPresetOnOpen(t *testing.T) {
	cfg := testConfig()
	cfg.Workspaces = []config.WorkspaceConfig{
		{Name: "f", Layout: config.LayoutFloating, Screen: config.ScreenMain, PresetOnOpen: "centered"},
	}
	cfg.Floating.Presets = []config.FloatingPreset{
		{
			Name:   "centered",
			Width:  config.DimensionValue{Percent: 50, IsPercent: true},
			Height: config.DimensionValue{Percent: 50, IsPercent: true},
			Center: true,
		},
	}

	be := newFakeBackend(singleScreen())
	m := newTestManager(t, cfg, be)

	info := testWindow(7, "scratch", state.Frame{X: 5, Y: 5, Width: 300, Height: 200})
	be.addWindow(info)
	m.handleWindowCreated(info)

	wantFrame(t, be, 7, state.Frame{X: 480, Y: 270, Width: 960, Height: 540})
	if !m.st.Window(7).Floating {
		t.Fatal("preset-on-open should mark the window floating")
	}
}

func TestWindowDestroyedEvent(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.addWindow(testWindow(2, "b", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	be.removeWindow(2)
	m.handleWindowDestroyed(2)

	if m.st.Window(2) != nil {
		t.Fatal("destroyed window should leave the state")
	}
	wantFrame(t, be, 1, state.Frame{X: 0, Y: 0, Width: 1920, Height: 1080})
}

func TestFocusChangedEvent(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	m.handleFocusChanged(1)
	if m.st.FocusedWindow == nil || *m.st.FocusedWindow != 1 {
		t.Fatalf("focused window = %v, want 1", m.st.FocusedWindow)
	}

	m.handleFocusChanged(0)
	if m.st.FocusedWindow != nil {
		t.Fatal("losing focus should clear the focused window")
	}
}

func TestStaleWindowsPrunedOnLayout(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.addWindow(testWindow(2, "b", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	// Window 2 vanished without an event; the next layout prunes it.
	be.removeWindow(2)
	if err := m.ApplyLayout("1"); err != nil {
		t.Fatalf("ApplyLayout: %v", err)
	}

	ws := m.st.Workspace("1")
	if len(ws.Windows) != 1 || ws.Windows[0] != 1 {
		t.Fatalf("workspace windows = %v, want [1]", ws.Windows)
	}
	if m.st.Window(2) != nil {
		t.Fatal("stale window should leave the state")
	}
	wantFrame(t, be, 1, state.Frame{X: 0, Y: 0, Width: 1920, Height: 1080})
}

func TestSnapshots(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	status := m.Status()
	if status.Screens != 1 || status.Windows != 1 || status.Workspaces != 9 {
		t.Fatalf("status = %+v", status)
	}
	if status.FocusedWindow != 1 {
		t.Fatalf("focused window = %d, want 1", status.FocusedWindow)
	}

	screens := m.Screens()
	if len(screens) != 1 || screens[0].FocusedWorkspace != "1" {
		t.Fatalf("screens = %+v", screens)
	}

	var visible int
	for _, ws := range m.Workspaces() {
		if ws.Visible {
			visible++
		}
	}
	if visible != 1 {
		t.Fatalf("visible workspaces = %d, want 1", visible)
	}

	windows := m.Windows()
	if len(windows) != 1 || !windows[0].Focused || windows[0].Workspace != "1" {
		t.Fatalf("windows = %+v", windows)
	}
}

func TestDirectionalMoveWithoutTargetIsNoop(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.addWindow(testWindow(2, "b", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	// Both windows sit side by side, so nothing is above.
	if err := m.FocusDirection("up"); err != nil {
		t.Fatalf("FocusDirection(up): %v", err)
	}
	if be.active != 1 {
		t.Fatalf("active = %d, focus should not move", be.active)
	}

	if err := m.SwapDirection("up"); err != nil {
		t.Fatalf("SwapDirection(up): %v", err)
	}
	ws := m.st.Workspace("1")
	if ws.Windows[0] != 1 || ws.Windows[1] != 2 {
		t.Fatalf("window order = %v, want [1 2]", ws.Windows)
	}
}

func TestBalanceWorkspaceResetsRatios(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.addWindow(testWindow(2, "b", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	if err := m.ResizeFocused("width", 192); err != nil {
		t.Fatalf("ResizeFocused: %v", err)
	}
	wantFrame(t, be, 1, state.Frame{X: 0, Y: 0, Width: 1152, Height: 1080})

	if err := m.BalanceWorkspace("1"); err != nil {
		t.Fatalf("BalanceWorkspace: %v", err)
	}

	ws := m.st.Workspace("1")
	if len(ws.SplitRatios) != 0 {
		t.Fatalf("split ratios = %v, want none", ws.SplitRatios)
	}
	wantFrame(t, be, 1, state.Frame{X: 0, Y: 0, Width: 960, Height: 1080})
	wantFrame(t, be, 2, state.Frame{X: 960, Y: 0, Width: 960, Height: 1080})

	if err := m.BalanceWorkspace("nope"); err == nil {
		t.Fatal("expected error for unknown workspace")
	}
}

func TestResizeFocusedRoundTrip(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.addWindow(testWindow(2, "b", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	if err := m.ResizeFocused("width", 192); err != nil {
		t.Fatalf("ResizeFocused(+192): %v", err)
	}
	if err := m.ResizeFocused("width", -192); err != nil {
		t.Fatalf("ResizeFocused(-192): %v", err)
	}

	// Growing and shrinking by the same delta restores the even split.
	ws := m.st.Workspace("1")
	if len(ws.SplitRatios) == 0 || math.Abs(ws.SplitRatios[0]-0.5) > 1e-9 {
		t.Fatalf("split ratios = %v, want [0.5]", ws.SplitRatios)
	}
	wantFrame(t, be, 1, state.Frame{X: 0, Y: 0, Width: 960, Height: 1080})
	wantFrame(t, be, 2, state.Frame{X: 960, Y: 0, Width: 960, Height: 1080})
}

func TestWindowReturnsToWorkspaceByPID(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "term", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)

	if err := m.SendToWorkspace("2", false); err != nil {
		t.Fatalf("SendToWorkspace: %v", err)
	}

	// The app closes its window and opens a new one under a fresh id.
	be.removeWindow(1)
	m.handleWindowDestroyed(1)

	reopened := testWindow(5, "term", state.Frame{Width: 500, Height: 500})
	reopened.PID = 1001
	be.addWindow(reopened)
	m.handleWindowCreated(reopened)

	w := m.st.Window(5)
	if w == nil || w.Workspace != "2" {
		t.Fatalf("window = %+v, want workspace 2", w)
	}
	if !m.st.Workspace("2").HasWindow(5) {
		t.Fatal("workspace 2 should contain the reopened window")
	}
}

func TestExternallyMinimizedWindowLeavesLayout(t *testing.T) {
	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.addWindow(testWindow(2, "b", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, testConfig(), be)
	wantFrame(t, be, 1, state.Frame{X: 0, Y: 0, Width: 960, Height: 1080})

	// The user minimizes window 2 through the app, not through us.
	be.windows[2].Minimized = true
	if err := m.ApplyLayout("1"); err != nil {
		t.Fatalf("ApplyLayout: %v", err)
	}

	if !m.st.Window(2).Minimized {
		t.Fatal("state should pick up the external minimize")
	}
	wantFrame(t, be, 1, state.Frame{X: 0, Y: 0, Width: 1920, Height: 1080})

	be.windows[2].Minimized = false
	if err := m.ApplyLayout("1"); err != nil {
		t.Fatalf("ApplyLayout: %v", err)
	}
	if m.st.Window(2).Minimized {
		t.Fatal("state should pick up the restore")
	}
	wantFrame(t, be, 1, state.Frame{X: 0, Y: 0, Width: 960, Height: 1080})
	wantFrame(t, be, 2, state.Frame{X: 960, Y: 0, Width: 960, Height: 1080})
}

func TestWorkspaceRemembersFocusedWindow(t *testing.T) {
	cfg := testConfig()

	be := newFakeBackend(singleScreen())
	be.addWindow(testWindow(1, "a", state.Frame{Width: 500, Height: 500}))
	be.addWindow(testWindow(2, "b", state.Frame{Width: 500, Height: 500}))
	be.active = 1

	m := newTestManager(t, cfg, be)

	if err := m.FocusDirection("next"); err != nil {
		t.Fatalf("FocusDirection: %v", err)
	}
	if err := m.SwitchWorkspace("2"); err != nil {
		t.Fatalf("SwitchWorkspace(2): %v", err)
	}

	var snap *WorkspaceSnapshot
	for _, ws := range m.Workspaces() {
		if ws.Name == "1" {
			copied := ws
			snap = &copied
		}
	}
	if snap == nil || snap.FocusedWindow != 2 {
		t.Fatalf("workspace 1 snapshot = %+v, want focused window 2", snap)
	}

	// Switching back restores focus to the remembered window.
	if err := m.SwitchWorkspace("1"); err != nil {
		t.Fatalf("SwitchWorkspace(1): %v", err)
	}
	if be.active != 2 {
		t.Fatalf("active = %d, want 2", be.active)
	}
}
