package layout

import (
	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/state"
)

// Master dedicates a region of the screen to the first windows and
// stacks the remainder. The orientation adapts to the screen:
//
// Landscape (master left, stack right):
//
//	+----------+----------+
//	|          |    2     |
//	|          +----------+
//	|    1     |    3     |
//	|          +----------+
//	|          |    4     |
//	+----------+----------+
//
// Portrait (master top, stack bottom):
//
//	+--------------------+
//	|         1          |
//	+------+------+------+
//	|  2   |  3   |  4   |
//	+------+------+------+
type Master struct {
	Config config.MasterConfig
}

func (m Master) Layout(windows []Window, ctx *Context) []Assignment {
	tileable := eligible(windows)
	if len(tileable) == 0 {
		return nil
	}

	frame := ctx.Gaps.ApplyToScreen(ctx.ScreenFrame)
	gap := ctx.Gaps.Inner

	if len(tileable) == 1 {
		return []Assignment{{ID: tileable[0].ID, Frame: frame}}
	}

	maxMasters := m.Config.MaxMasters
	if maxMasters < 1 {
		maxMasters = 1
	}
	masterCount := len(tileable)
	if masterCount > maxMasters {
		masterCount = maxMasters
	}
	masters, stack := tileable[:masterCount], tileable[masterCount:]

	portrait := frame.Height > frame.Width

	// All windows fit in the master area: stack them across the full frame.
	if len(stack) == 0 {
		if portrait {
			return stackHorizontal(masters, frame, gap)
		}
		return stackVertical(masters, frame, gap)
	}

	// The first split ratio, when present, overrides the configured
	// master ratio so the area can be resized dynamically.
	var override *float64
	if len(ctx.SplitRatios) > 0 {
		override = &ctx.SplitRatios[0]
	}

	if portrait {
		return m.layoutPortrait(masters, stack, frame, gap, override)
	}
	return m.layoutLandscape(masters, stack, frame, gap, override)
}

// masterSize computes the master area's share of the given dimension.
func (m Master) masterSize(total, gap int, override *float64) int {
	ratio := m.Config.Ratio
	if override != nil {
		pct := clampRatio(*override) * 100
		ratio = int(pct)
	}
	if ratio > 100 {
		ratio = 100
	}
	available := total - gap
	if available < 0 {
		available = 0
	}
	return available * ratio / 100
}

func (m Master) layoutLandscape(masters, stack []Window, frame state.Frame, gap int, override *float64) []Assignment {
	masterWidth := m.masterSize(frame.Width, gap, override)
	stackWidth := frame.Width - masterWidth - gap
	if stackWidth < 0 {
		stackWidth = 0
	}

	masterFrame := state.Frame{X: frame.X, Y: frame.Y, Width: masterWidth, Height: frame.Height}
	stackFrame := state.Frame{X: frame.X + masterWidth + gap, Y: frame.Y, Width: stackWidth, Height: frame.Height}

	out := stackVertical(masters, masterFrame, gap)
	out = append(out, stackVertical(stack, stackFrame, gap)...)
	return out
}

func (m Master) layoutPortrait(masters, stack []Window, frame state.Frame, gap int, override *float64) []Assignment {
	masterHeight := m.masterSize(frame.Height, gap, override)
	stackHeight := frame.Height - masterHeight - gap
	if stackHeight < 0 {
		stackHeight = 0
	}

	masterFrame := state.Frame{X: frame.X, Y: frame.Y, Width: frame.Width, Height: masterHeight}
	stackFrame := state.Frame{X: frame.X, Y: frame.Y + masterHeight + gap, Width: frame.Width, Height: stackHeight}

	out := stackHorizontal(masters, masterFrame, gap)
	out = append(out, stackHorizontal(stack, stackFrame, gap)...)
	return out
}

// stackVertical shares a frame's height evenly, extra pixels first.
func stackVertical(windows []Window, frame state.Frame, gap int) []Assignment {
	if len(windows) == 0 {
		return nil
	}
	return splitRows(windows, frame, gap)
}

// stackHorizontal shares a frame's width evenly, extra pixels first.
func stackHorizontal(windows []Window, frame state.Frame, gap int) []Assignment {
	if len(windows) == 0 {
		return nil
	}
	return splitColumns(windows, frame, gap)
}
