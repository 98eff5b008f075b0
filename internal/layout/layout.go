// Package layout computes window geometry for the tiling layouts.
//
// Engines are pure: they take an ordered window list plus a context and
// return target frames. They never touch the window system.
package layout

import (
	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/state"
)

// Window carries the per-window flags an engine needs.
type Window struct {
	ID         state.WindowID
	Floating   bool
	Minimized  bool
	Fullscreen bool
}

// Assignment is a computed target frame for one window.
type Assignment struct {
	ID    state.WindowID
	Frame state.Frame
}

// Context is the input shared by all engines.
type Context struct {
	// ScreenFrame is the screen's usable frame, before outer gaps.
	ScreenFrame state.Frame
	Gaps        ResolvedGaps
	// SplitRatios customizes split points by depth. Each value is the
	// share of the first part, default 0.5.
	SplitRatios []float64
}

// Engine computes assignments for the eligible windows in order.
// Floating, minimized, and fullscreen windows are skipped.
type Engine interface {
	Layout(windows []Window, ctx *Context) []Assignment
}

// ForMode returns the engine for a layout mode. Scrolling currently
// falls back to the dwindle engine.
func ForMode(mode config.LayoutMode, master config.MasterConfig) Engine {
	switch mode {
	case config.LayoutMonocle:
		return Monocle{}
	case config.LayoutSplit:
		return SplitAuto()
	case config.LayoutSplitVertical:
		return SplitVertical()
	case config.LayoutSplitHorizontal:
		return SplitHorizontal()
	case config.LayoutMaster:
		return Master{Config: master}
	case config.LayoutFloating:
		return Floating{}
	default:
		return Dwindle{}
	}
}

// eligible filters out windows the engines must skip.
func eligible(windows []Window) []Window {
	out := make([]Window, 0, len(windows))
	for _, w := range windows {
		if w.Floating || w.Minimized || w.Fullscreen {
			continue
		}
		out = append(out, w)
	}
	return out
}

func ratioAt(ratios []float64, depth int) float64 {
	if depth < len(ratios) {
		return ratios[depth]
	}
	return 0.5
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
