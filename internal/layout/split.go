package layout

import (
	"github.com/1broseidon/tilewm/internal/state"
)

// SplitOrientation selects how the split engine divides the screen.
type SplitOrientation int

const (
	// OrientAuto picks vertical for landscape screens, horizontal for portrait.
	OrientAuto SplitOrientation = iota
	// OrientVertical places windows side by side (columns).
	OrientVertical
	// OrientHorizontal stacks windows top to bottom (rows).
	OrientHorizontal
)

// Split divides one axis of the screen evenly among all windows.
// Leftover pixels from integer division go to the earliest windows so
// the full span is always covered.
type Split struct {
	Orientation SplitOrientation
}

// SplitAuto returns a split engine that picks its orientation from the
// screen aspect ratio.
func SplitAuto() Split { return Split{Orientation: OrientAuto} }

// SplitVertical returns a side-by-side split engine.
func SplitVertical() Split { return Split{Orientation: OrientVertical} }

// SplitHorizontal returns a stacked split engine.
func SplitHorizontal() Split { return Split{Orientation: OrientHorizontal} }

func (s Split) Layout(windows []Window, ctx *Context) []Assignment {
	tileable := eligible(windows)
	if len(tileable) == 0 {
		return nil
	}

	frame := ctx.Gaps.ApplyToScreen(ctx.ScreenFrame)

	orientation := s.Orientation
	if orientation == OrientAuto {
		if frame.Width >= frame.Height {
			orientation = OrientVertical
		} else {
			orientation = OrientHorizontal
		}
	}

	if orientation == OrientVertical {
		return splitColumns(tileable, frame, ctx.Gaps.Inner)
	}
	return splitRows(tileable, frame, ctx.Gaps.Inner)
}

// splitColumns arranges windows side by side, sharing the width.
func splitColumns(windows []Window, frame state.Frame, gap int) []Assignment {
	if len(windows) == 1 {
		return []Assignment{{ID: windows[0].ID, Frame: frame}}
	}

	count := len(windows)
	available := frame.Width - gap*(count-1)
	if available < 0 {
		available = 0
	}
	base := available / count
	extra := available % count

	out := make([]Assignment, 0, count)
	x := frame.X
	for i, w := range windows {
		width := base
		if i < extra {
			width++
		}
		out = append(out, Assignment{
			ID:    w.ID,
			Frame: state.Frame{X: x, Y: frame.Y, Width: width, Height: frame.Height},
		})
		x += width + gap
	}
	return out
}

// splitRows arranges windows top to bottom, sharing the height.
func splitRows(windows []Window, frame state.Frame, gap int) []Assignment {
	if len(windows) == 1 {
		return []Assignment{{ID: windows[0].ID, Frame: frame}}
	}

	count := len(windows)
	available := frame.Height - gap*(count-1)
	if available < 0 {
		available = 0
	}
	base := available / count
	extra := available % count

	out := make([]Assignment, 0, count)
	y := frame.Y
	for i, w := range windows {
		height := base
		if i < extra {
			height++
		}
		out = append(out, Assignment{
			ID:    w.ID,
			Frame: state.Frame{X: frame.X, Y: y, Width: frame.Width, Height: height},
		})
		y += height + gap
	}
	return out
}
