package wm

import (
	"github.com/1broseidon/tilewm/internal/animation"
	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/layout"
	"github.com/1broseidon/tilewm/internal/state"
)

// FocusDirection focuses a window relative to the focused one.
// Direction is one of: left, right, up, down, next, previous.
func (m *Manager) FocusDirection(direction string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	focused, wsName, err := m.focusedWindowAndWorkspace()
	if err != nil {
		return err
	}

	// Cycling should include windows never focused since startup.
	if direction == "next" || direction == "previous" {
		m.ensureWorkspaceWindowsTracked(wsName)
	}

	ws := m.st.Workspace(wsName)
	if ws == nil {
		return &WorkspaceNotFoundError{Name: wsName}
	}
	if len(ws.Windows) < 2 {
		return nil
	}

	targetID, ok, err := m.resolveDirection(ws, focused.ID, direction)
	if err != nil {
		return err
	}
	if !ok {
		m.log.Debug("no window in direction", "direction", direction)
		return nil
	}

	if err := m.backend.Focus(targetID); err != nil {
		return opErrorf("focus window %d: %v", targetID, err)
	}
	m.focusWindow(targetID)
	return nil
}

// SwapDirection swaps the focused window with its neighbor in the
// given direction and keeps focus on the moved window.
func (m *Manager) SwapDirection(direction string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	focused, wsName, err := m.focusedWindowAndWorkspace()
	if err != nil {
		return err
	}

	ws := m.st.Workspace(wsName)
	if ws == nil {
		return &WorkspaceNotFoundError{Name: wsName}
	}
	if len(ws.Windows) < 2 {
		return nil
	}

	targetID, ok, err := m.resolveDirection(ws, focused.ID, direction)
	if err != nil {
		return err
	}
	if !ok {
		m.log.Debug("no window in direction", "direction", direction)
		return nil
	}

	src := ws.WindowIndex(focused.ID)
	dst := ws.WindowIndex(targetID)
	if src >= 0 && dst >= 0 {
		ws.Windows[src], ws.Windows[dst] = ws.Windows[dst], ws.Windows[src]
	}

	if err := m.applyLayout(wsName); err != nil {
		return err
	}

	if err := m.backend.Focus(focused.ID); err == nil {
		m.focusWindow(focused.ID)
	}
	return nil
}

// resolveDirection picks the target window for a focus or swap move.
// A directional move with no qualifying window is not an error; the
// second return value reports whether a target was found.
func (m *Manager) resolveDirection(ws *state.Workspace, sourceID state.WindowID, direction string) (state.WindowID, bool, error) {
	switch direction {
	case "next", "previous":
		current := ws.WindowIndex(sourceID)
		if current < 0 {
			current = 0
		}
		n := len(ws.Windows)
		if direction == "next" {
			return ws.Windows[(current+1)%n], true, nil
		}
		return ws.Windows[(current+n-1)%n], true, nil
	case "left", "right", "up", "down":
		target, ok := m.findWindowInDirection(ws, sourceID, direction)
		return target, ok, nil
	default:
		return 0, false, opErrorf("invalid direction: %s", direction)
	}
}

// findWindowInDirection returns the nearest workspace window whose
// center lies strictly beyond the source center in the direction.
// Distance is Manhattan; hidden and minimized windows are skipped.
func (m *Manager) findWindowInDirection(ws *state.Workspace, sourceID state.WindowID, direction string) (state.WindowID, bool) {
	source := m.st.Window(sourceID)
	if source == nil {
		return 0, false
	}
	srcX, srcY := source.Frame.CenterX(), source.Frame.CenterY()

	var bestID state.WindowID
	bestDist := -1
	for _, id := range ws.Windows {
		if id == sourceID {
			continue
		}
		w := m.st.Window(id)
		if w == nil || w.Hidden || w.Minimized {
			continue
		}
		cx, cy := w.Frame.CenterX(), w.Frame.CenterY()

		valid := false
		switch direction {
		case "left":
			valid = cx < srcX
		case "right":
			valid = cx > srcX
		case "up":
			valid = cy < srcY
		case "down":
			valid = cy > srcY
		}
		if !valid {
			continue
		}

		dist := abs(cx-srcX) + abs(cy-srcY)
		if bestDist < 0 || dist < bestDist {
			bestID, bestDist = id, dist
		}
	}
	return bestID, bestDist >= 0
}

// SendToScreen moves the focused window to the focused workspace of
// another screen. Target is a screen alias, id, or name.
func (m *Manager) SendToScreen(target string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	focused, wsName, err := m.focusedWindowAndWorkspace()
	if err != nil {
		return err
	}

	ws := m.st.Workspace(wsName)
	if ws == nil {
		return &WorkspaceNotFoundError{Name: wsName}
	}

	targetScreenID, ok := m.st.ResolveScreenTarget(target, ws.Screen)
	if !ok {
		return &ScreenNotFoundError{Name: target}
	}
	if targetScreenID == ws.Screen {
		return nil
	}

	targetWS, ok := m.st.FocusedPerScreen[targetScreenID]
	if !ok {
		return &WorkspaceNotFoundError{Name: "no workspace on screen " + targetScreenID}
	}

	return m.moveWindowToWorkspace(focused, wsName, targetWS, true)
}

// SendToWorkspace moves the focused window to a workspace. With
// focusAfter the view follows the window: the target workspace is
// switched to and the window keeps focus. Without it the window is
// hidden unless the target workspace is already visible.
func (m *Manager) SendToWorkspace(targetWorkspace string, focusAfter bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	targetWS := m.st.Workspace(targetWorkspace)
	if targetWS == nil {
		return &WorkspaceNotFoundError{Name: targetWorkspace}
	}

	focused, wsName, err := m.focusedWindowAndWorkspace()
	if err != nil {
		return err
	}
	if wsName == targetWorkspace {
		return nil
	}

	targetVisible := m.st.FocusedPerScreen[targetWS.Screen] == targetWorkspace

	m.detachWindow(focused.ID, wsName)
	targetWS.Windows = append(targetWS.Windows, focused.ID)
	focused.Workspace = targetWorkspace
	m.recordPID(focused.PID, targetWorkspace)

	if focusAfter {
		if focused.Hidden {
			if err := m.backend.Unhide(focused.ID); err == nil {
				focused.Hidden = false
			}
		}
		if err := m.applyLayout(wsName); err != nil {
			return err
		}
		if err := m.switchWorkspace(targetWorkspace); err != nil {
			return err
		}
		if err := m.backend.Focus(focused.ID); err == nil {
			m.focusWindow(focused.ID)
		}
		return nil
	}

	if !targetVisible {
		if err := m.backend.Hide(focused.ID); err == nil {
			focused.Hidden = true
		}
	}
	if err := m.applyLayout(wsName); err != nil {
		return err
	}
	if targetVisible {
		return m.applyLayout(targetWorkspace)
	}
	return nil
}

// moveWindowToWorkspace moves a window between workspaces, re-applies
// both layouts, and optionally refocuses the window.
func (m *Manager) moveWindowToWorkspace(w *state.ManagedWindow, fromWS, toWS string, refocus bool) error {
	target := m.st.Workspace(toWS)
	if target == nil {
		return &WorkspaceNotFoundError{Name: toWS}
	}

	m.detachWindow(w.ID, fromWS)
	target.Windows = append(target.Windows, w.ID)
	w.Workspace = toWS
	m.recordPID(w.PID, toWS)

	if err := m.applyLayout(fromWS); err != nil {
		return err
	}
	if err := m.applyLayout(toWS); err != nil {
		return err
	}

	if refocus {
		if err := m.backend.Focus(w.ID); err == nil {
			m.focusWindow(w.ID)
		}
	}
	return nil
}

func (m *Manager) detachWindow(id state.WindowID, wsName string) {
	if ws := m.st.Workspace(wsName); ws != nil {
		ws.RemoveWindow(id)
	}
}

// BalanceWorkspace drops a workspace's custom split ratios so every
// split returns to an even share, and re-applies the layout.
func (m *Manager) BalanceWorkspace(workspaceName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ws := m.st.Workspace(workspaceName)
	if ws == nil {
		return &WorkspaceNotFoundError{Name: workspaceName}
	}

	ws.SplitRatios = nil
	return m.applyLayout(workspaceName)
}

// ResizeFocused grows or shrinks the focused window by adjusting the
// split ratio that controls the given dimension. Dimension is "width"
// or "height"; positive deltas grow.
func (m *Manager) ResizeFocused(dimension string, deltaPixels int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if dimension != "width" && dimension != "height" {
		return opErrorf("invalid dimension: %s", dimension)
	}

	focused, wsName, err := m.focusedWindowAndWorkspace()
	if err != nil {
		return err
	}

	// Individually floating windows are sized by presets only.
	if focused.Floating {
		return nil
	}

	ws := m.st.Workspace(wsName)
	if ws == nil {
		return &WorkspaceNotFoundError{Name: wsName}
	}
	screen := m.st.Screen(ws.Screen)
	if screen == nil {
		return &ScreenNotFoundError{Name: ws.Screen}
	}

	index := ws.WindowIndex(focused.ID)
	if index < 0 {
		return &WindowNotFoundError{ID: focused.ID}
	}

	switch ws.Layout {
	case config.LayoutMonocle:
		return nil
	case config.LayoutFloating:
		return m.resizeFloatingWindow(focused, dimension, deltaPixels)
	case config.LayoutMaster:
		return m.resizeMasterLayout(ws, index, dimension, deltaPixels, screen.UsableFrame.Width)
	}

	if len(ws.Windows) < 2 {
		return nil
	}

	isLandscape := screen.UsableFrame.Width >= screen.UsableFrame.Height
	targetIsHorizontal := dimension == "width"

	// Dwindle splits alternate direction by depth. Walk back from the
	// window's depth to the nearest split along the target dimension.
	ratioIndex := -1
	for depth := index; depth >= 0; depth-- {
		splitIsHorizontal := depth%2 == 0
		if !isLandscape {
			splitIsHorizontal = depth%2 == 1
		}
		if splitIsHorizontal == targetIsHorizontal {
			ratioIndex = depth
			break
		}
	}
	if ratioIndex < 0 {
		return nil
	}

	screenDimension := screen.UsableFrame.Width
	if !targetIsHorizontal {
		screenDimension = screen.UsableFrame.Height
	}
	if screenDimension == 0 {
		return nil
	}

	ratioDelta := float64(deltaPixels) / float64(screenDimension)

	for len(ws.SplitRatios) <= ratioIndex {
		ws.SplitRatios = append(ws.SplitRatios, 0.5)
	}
	ws.SplitRatios[ratioIndex] = clampRatio(ws.SplitRatios[ratioIndex] + ratioDelta)

	return m.applyLayout(wsName)
}

// resizeFloatingWindow resizes a window in the floating layout
// directly, keeping a sane minimum size.
func (m *Manager) resizeFloatingWindow(w *state.ManagedWindow, dimension string, deltaPixels int) error {
	const minSize = 100

	frame := w.Frame
	switch dimension {
	case "width":
		frame.Width += deltaPixels
		if frame.Width < minSize {
			frame.Width = minSize
		}
	case "height":
		frame.Height += deltaPixels
		if frame.Height < minSize {
			frame.Height = minSize
		}
	}

	if err := m.backend.MoveResize(w.ID, frame); err != nil {
		return opErrorf("resize window %d: %v", w.ID, err)
	}
	w.Frame = frame
	return nil
}

// resizeMasterLayout adjusts the master/stack ratio. Only width
// resizing applies; the stack shares height evenly.
func (m *Manager) resizeMasterLayout(ws *state.Workspace, index int, dimension string, deltaPixels, screenWidth int) error {
	if dimension != "width" {
		return nil
	}
	if screenWidth == 0 {
		return nil
	}

	current := float64(m.cfg.Master.Ratio) / 100
	if len(ws.SplitRatios) > 0 {
		current = ws.SplitRatios[0]
	}

	// Growing the master grows the ratio; growing a stack window
	// shrinks it.
	ratioDelta := float64(deltaPixels) / float64(screenWidth)
	newRatio := current + ratioDelta
	if index != 0 {
		newRatio = current - ratioDelta
	}
	newRatio = clampRatio(newRatio)

	if len(ws.SplitRatios) == 0 {
		ws.SplitRatios = []float64{newRatio}
	} else {
		ws.SplitRatios[0] = newRatio
	}

	return m.applyLayout(ws.Name)
}

// HandleWindowMoved reacts to a user-initiated window move. Tiled
// windows snap back to their assigned position; floating windows and
// the floating layout move freely.
func (m *Manager) HandleWindowMoved(id state.WindowID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ws := m.st.WorkspaceOf(id)
	if ws == nil {
		return nil
	}
	if w := m.st.Window(id); w != nil && w.Floating {
		return nil
	}
	if ws.Layout == config.LayoutFloating {
		return nil
	}
	return m.applyLayout(ws.Name)
}

// HandleUserResize absorbs a user-initiated window resize into the
// workspace's split ratios so the layout keeps the new proportions.
func (m *Manager) HandleUserResize(id state.WindowID, newWidth, newHeight int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ws := m.st.WorkspaceOf(id)
	if ws == nil {
		return nil
	}
	index := ws.WindowIndex(id)
	if index < 0 {
		return nil
	}
	screen := m.st.Screen(ws.Screen)
	if screen == nil {
		return &ScreenNotFoundError{Name: ws.Screen}
	}

	switch ws.Layout {
	case config.LayoutMonocle, config.LayoutFloating:
		return nil
	case config.LayoutMaster:
		return m.handleUserResizeMaster(ws, index, newWidth, screen)
	}

	if len(ws.Windows) < 2 {
		return nil
	}

	gaps := layout.ResolveGaps(m.cfg.Gaps, screen, len(m.st.Screens))
	usableWidth := maxInt(screen.UsableFrame.Width-gaps.OuterLeft-gaps.OuterRight, 0)
	usableHeight := maxInt(screen.UsableFrame.Height-gaps.OuterTop-gaps.OuterBottom, 0)
	isLandscape := screen.UsableFrame.Width >= screen.UsableFrame.Height

	// Window 0 and 1 both sit on the first split; deeper windows are
	// the first part of the split one level above them.
	ratioIndex := 0
	if index > 0 {
		ratioIndex = index - 1
	}
	isFirstAtSplit := index == 0 || ratioIndex > 0

	var usesWidth bool
	switch ws.Layout {
	case config.LayoutSplitHorizontal:
		usesWidth = false
	case config.LayoutSplitVertical:
		usesWidth = true
	default:
		if isLandscape {
			usesWidth = ratioIndex%2 == 0
		} else {
			usesWidth = ratioIndex%2 == 1
		}
	}

	containerSize := usableWidth - gaps.Inner
	windowSize := newWidth
	if !usesWidth {
		containerSize = usableHeight - gaps.Inner
		windowSize = newHeight
	}
	if containerSize <= 0 {
		return nil
	}

	raw := float64(windowSize) / float64(containerSize)
	adjusted := raw
	if !isFirstAtSplit {
		adjusted = 1 - raw
	}

	for len(ws.SplitRatios) <= ratioIndex {
		ws.SplitRatios = append(ws.SplitRatios, 0.5)
	}
	ws.SplitRatios[ratioIndex] = clampRatio(adjusted)

	return m.applyLayout(ws.Name)
}

// handleUserResizeMaster derives the master ratio from the resized
// window's new width.
func (m *Manager) handleUserResizeMaster(ws *state.Workspace, index, newWidth int, screen *state.Screen) error {
	gaps := layout.ResolveGaps(m.cfg.Gaps, screen, len(m.st.Screens))
	usableWidth := maxInt(screen.UsableFrame.Width-gaps.OuterLeft-gaps.OuterRight, 0)
	total := usableWidth - gaps.Inner
	if total <= 0 {
		return nil
	}

	var newRatio float64
	if index == 0 {
		newRatio = float64(newWidth) / float64(total)
	} else {
		newRatio = 1 - float64(newWidth)/float64(total)
	}
	newRatio = clampRatio(newRatio)

	if len(ws.SplitRatios) == 0 {
		ws.SplitRatios = []float64{newRatio}
	} else {
		ws.SplitRatios[0] = newRatio
	}

	return m.applyLayout(ws.Name)
}

// ApplyPreset positions the focused window by a named floating preset.
// Presets only apply in the floating layout.
func (m *Manager) ApplyPreset(presetName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	focused, wsName, err := m.focusedWindowAndWorkspace()
	if err != nil {
		return err
	}

	ws := m.st.Workspace(wsName)
	if ws == nil || ws.Layout != config.LayoutFloating {
		return opErrorf("presets can only be applied in floating layout mode")
	}

	return m.applyPresetToWindow(focused, wsName, presetName)
}

func (m *Manager) applyPresetToWindow(w *state.ManagedWindow, wsName, presetName string) error {
	preset, ok := m.cfg.FindPreset(presetName)
	if !ok {
		return opErrorf("preset not found: %s", presetName)
	}

	ws := m.st.Workspace(wsName)
	if ws == nil {
		return &WorkspaceNotFoundError{Name: wsName}
	}
	screen := m.st.Screen(ws.Screen)
	if screen == nil {
		return &ScreenNotFoundError{Name: ws.Screen}
	}

	gaps := layout.ResolveGaps(m.cfg.Gaps, screen, len(m.st.Screens))
	usable := gaps.ApplyToScreen(screen.UsableFrame)

	width := minInt(preset.Width.Resolve(usable.Width), usable.Width)
	height := minInt(preset.Height.Resolve(usable.Height), usable.Height)

	var x, y int
	if preset.Center {
		x = usable.X + (usable.Width-width)/2
		y = usable.Y + (usable.Height-height)/2
	} else {
		if preset.X != nil {
			x = usable.X + preset.X.Resolve(usable.Width)
		} else {
			x = usable.X
		}
		if preset.Y != nil {
			y = usable.Y + preset.Y.Resolve(usable.Height)
		} else {
			y = usable.Y
		}
	}

	// Keep the window inside the usable area.
	x = clampInt(x, usable.X, usable.X+usable.Width-width)
	y = clampInt(y, usable.Y, usable.Y+usable.Height-height)

	frame := state.Frame{X: x, Y: y, Width: width, Height: height}
	m.anim.Animate([]animation.Target{{ID: w.ID, From: w.Frame, To: frame}})

	w.Frame = frame
	w.Floating = true
	return nil
}

func clampRatio(r float64) float64 {
	if r < 0.1 {
		return 0.1
	}
	if r > 0.9 {
		return 0.9
	}
	return r
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
