package layout

import (
	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/state"
)

// ResolvedGaps holds the gap values, in pixels, that apply to one screen.
type ResolvedGaps struct {
	OuterTop    int
	OuterBottom int
	OuterLeft   int
	OuterRight  int
	Inner       int
}

// ResolveGaps picks the gap values for a screen from the configuration.
//
// Per-screen entries are matched in priority order: "main" for the main
// screen, "secondary" when there are exactly two screens and this is
// not the main one, then screen ID, then screen name, then the entry
// with no screen set. No match means zero gaps.
func ResolveGaps(cfg config.GapsConfig, screen *state.Screen, screenCount int) ResolvedGaps {
	sg := findScreenGaps(cfg, screen, screenCount)
	return ResolvedGaps{
		OuterTop:    sg.Outer.Top,
		OuterBottom: sg.Outer.Bottom,
		OuterLeft:   sg.Outer.Left,
		OuterRight:  sg.Outer.Right,
		// Layouts use a single inner gap; the horizontal value wins.
		Inner: sg.Inner.Horizontal,
	}
}

func findScreenGaps(cfg config.GapsConfig, screen *state.Screen, screenCount int) config.ScreenGaps {
	if cfg.Global != nil {
		return *cfg.Global
	}

	if screen.IsMain {
		for _, sg := range cfg.PerScreen {
			if sg.Screen == string(config.ScreenMain) {
				return sg
			}
		}
	} else if screenCount == 2 {
		for _, sg := range cfg.PerScreen {
			if sg.Screen == string(config.ScreenSecondary) {
				return sg
			}
		}
	}

	for _, sg := range cfg.PerScreen {
		if sg.Screen == screen.ID {
			return sg
		}
	}
	for _, sg := range cfg.PerScreen {
		if sg.Screen == screen.Name {
			return sg
		}
	}
	for _, sg := range cfg.PerScreen {
		if sg.Screen == "" {
			return sg
		}
	}
	return config.ScreenGaps{}
}

// ApplyToScreen shrinks a screen frame by the outer gaps.
func (g ResolvedGaps) ApplyToScreen(screen state.Frame) state.Frame {
	width := screen.Width - g.OuterLeft - g.OuterRight
	if width < 0 {
		width = 0
	}
	height := screen.Height - g.OuterTop - g.OuterBottom
	if height < 0 {
		height = 0
	}
	return state.Frame{
		X:      screen.X + g.OuterLeft,
		Y:      screen.Y + g.OuterTop,
		Width:  width,
		Height: height,
	}
}
