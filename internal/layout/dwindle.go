package layout

import (
	"github.com/1broseidon/tilewm/internal/state"
)

// splitAxis is the direction of one dwindle split.
type splitAxis int

const (
	// axisHorizontal splits the width: first window left, rest right.
	axisHorizontal splitAxis = iota
	// axisVertical splits the height: first window top, rest bottom.
	axisVertical
)

func (a splitAxis) toggle() splitAxis {
	if a == axisHorizontal {
		return axisVertical
	}
	return axisHorizontal
}

// Dwindle is the default tiling engine. Each window takes a share of
// the remaining space, splits alternating axis at every level, which
// produces a fibonacci-like spiral:
//
//	+-------+-------+
//	|       |   2   |
//	|   1   +---+---+
//	|       | 3 | 4 |
//	|       |   +---+
//	|       |   | 5 |
//	+-------+---+---+
//
// Exactly 4 windows are special-cased into a balanced 2x2 grid.
type Dwindle struct{}

func (Dwindle) Layout(windows []Window, ctx *Context) []Assignment {
	tileable := eligible(windows)
	if len(tileable) == 0 {
		return nil
	}

	frame := ctx.Gaps.ApplyToScreen(ctx.ScreenFrame)

	// Landscape screens split the width first, portrait the height.
	initial := axisHorizontal
	if ctx.ScreenFrame.Height > ctx.ScreenFrame.Width {
		initial = axisVertical
	}

	if len(tileable) == 4 {
		return grid2x2(tileable, frame, ctx.Gaps.Inner)
	}
	return dwindle(tileable, frame, initial, ctx.Gaps.Inner, ctx.SplitRatios, 0)
}

func dwindle(windows []Window, frame state.Frame, axis splitAxis, gap int, ratios []float64, depth int) []Assignment {
	switch len(windows) {
	case 0:
		return nil
	case 1:
		return []Assignment{{ID: windows[0].ID, Frame: frame}}
	}

	first, rest := splitFrame(frame, axis, gap, ratioAt(ratios, depth))

	out := []Assignment{{ID: windows[0].ID, Frame: first}}
	out = append(out, dwindle(windows[1:], rest, axis.toggle(), gap, ratios, depth+1)...)
	return out
}

// splitFrame divides a frame into a first part and the remainder,
// with the gap between them. The ratio is the first part's share.
func splitFrame(frame state.Frame, axis splitAxis, gap int, ratio float64) (state.Frame, state.Frame) {
	ratio = clampRatio(ratio)

	if axis == axisHorizontal {
		total := frame.Width - gap
		if total < 0 {
			total = 0
		}
		leftWidth := int(float64(total) * ratio)
		rightWidth := total - leftWidth

		left := state.Frame{X: frame.X, Y: frame.Y, Width: leftWidth, Height: frame.Height}
		right := state.Frame{X: frame.X + leftWidth + gap, Y: frame.Y, Width: rightWidth, Height: frame.Height}
		return left, right
	}

	total := frame.Height - gap
	if total < 0 {
		total = 0
	}
	topHeight := int(float64(total) * ratio)
	bottomHeight := total - topHeight

	top := state.Frame{X: frame.X, Y: frame.Y, Width: frame.Width, Height: topHeight}
	bottom := state.Frame{X: frame.X, Y: frame.Y + topHeight + gap, Width: frame.Width, Height: bottomHeight}
	return top, bottom
}

// grid2x2 lays out exactly four windows in a balanced grid.
// Order: top-left, top-right, bottom-left, bottom-right.
func grid2x2(windows []Window, frame state.Frame, gap int) []Assignment {
	halfGap := gap / 2
	leftWidth := frame.Width/2 - halfGap
	rightWidth := frame.Width - leftWidth - gap
	topHeight := frame.Height/2 - halfGap
	bottomHeight := frame.Height - topHeight - gap

	rightX := frame.X + leftWidth + gap
	bottomY := frame.Y + topHeight + gap

	return []Assignment{
		{ID: windows[0].ID, Frame: state.Frame{X: frame.X, Y: frame.Y, Width: leftWidth, Height: topHeight}},
		{ID: windows[1].ID, Frame: state.Frame{X: rightX, Y: frame.Y, Width: rightWidth, Height: topHeight}},
		{ID: windows[2].ID, Frame: state.Frame{X: frame.X, Y: bottomY, Width: leftWidth, Height: bottomHeight}},
		{ID: windows[3].ID, Frame: state.Frame{X: rightX, Y: bottomY, Width: rightWidth, Height: bottomHeight}},
	}
}
