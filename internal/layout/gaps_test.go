package layout

import (
	"testing"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/state"
)

func screenMain() *state.Screen {
	return &state.Screen{ID: "1", Name: "DP-1", IsMain: true}
}

func screenSecondary() *state.Screen {
	return &state.Screen{ID: "2", Name: "HDMI-1"}
}

func TestResolveGapsGlobalWins(t *testing.T) {
	cfg := config.GapsConfig{
		Global: &config.ScreenGaps{
			Inner: config.InnerGaps{Horizontal: 8, Vertical: 8},
			Outer: config.OuterGaps{Top: 4, Bottom: 4, Left: 4, Right: 4},
		},
		PerScreen: []config.ScreenGaps{
			{Screen: "main", Inner: config.InnerGaps{Horizontal: 20}},
		},
	}

	got := ResolveGaps(cfg, screenMain(), 1)
	if got.Inner != 8 || got.OuterTop != 4 {
		t.Fatalf("global gaps should win: %+v", got)
	}
}

func TestResolveGapsMainAlias(t *testing.T) {
	cfg := config.GapsConfig{
		PerScreen: []config.ScreenGaps{
			{Screen: "1", Inner: config.InnerGaps{Horizontal: 99}},
			{Screen: "main", Inner: config.InnerGaps{Horizontal: 12}},
		},
	}

	got := ResolveGaps(cfg, screenMain(), 2)
	if got.Inner != 12 {
		t.Fatalf("main alias should beat ID match: inner = %d", got.Inner)
	}
}

func TestResolveGapsSecondaryAlias(t *testing.T) {
	cfg := config.GapsConfig{
		PerScreen: []config.ScreenGaps{
			{Screen: "secondary", Inner: config.InnerGaps{Horizontal: 6}},
		},
	}

	// Only applies with exactly two screens.
	if got := ResolveGaps(cfg, screenSecondary(), 2); got.Inner != 6 {
		t.Fatalf("secondary alias not matched: inner = %d", got.Inner)
	}
	if got := ResolveGaps(cfg, screenSecondary(), 3); got.Inner != 0 {
		t.Fatalf("secondary alias should need exactly two screens: inner = %d", got.Inner)
	}
}

func TestResolveGapsByIDThenName(t *testing.T) {
	cfg := config.GapsConfig{
		PerScreen: []config.ScreenGaps{
			{Screen: "HDMI-1", Inner: config.InnerGaps{Horizontal: 5}},
		},
	}
	if got := ResolveGaps(cfg, screenSecondary(), 3); got.Inner != 5 {
		t.Fatalf("name match failed: inner = %d", got.Inner)
	}

	cfg.PerScreen = append([]config.ScreenGaps{
		{Screen: "2", Inner: config.InnerGaps{Horizontal: 7}},
	}, cfg.PerScreen...)
	if got := ResolveGaps(cfg, screenSecondary(), 3); got.Inner != 7 {
		t.Fatalf("ID match should beat name: inner = %d", got.Inner)
	}
}

func TestResolveGapsDefaultEntry(t *testing.T) {
	cfg := config.GapsConfig{
		PerScreen: []config.ScreenGaps{
			{Screen: "", Inner: config.InnerGaps{Horizontal: 3}},
		},
	}
	if got := ResolveGaps(cfg, screenSecondary(), 3); got.Inner != 3 {
		t.Fatalf("default entry not used: inner = %d", got.Inner)
	}
}

func TestResolveGapsNoMatch(t *testing.T) {
	got := ResolveGaps(config.GapsConfig{}, screenMain(), 1)
	if got != (ResolvedGaps{}) {
		t.Fatalf("expected zero gaps, got %+v", got)
	}
}

func TestApplyToScreenSaturates(t *testing.T) {
	g := ResolvedGaps{OuterTop: 600, OuterBottom: 600, OuterLeft: 10, OuterRight: 10}
	got := g.ApplyToScreen(state.Frame{X: 0, Y: 0, Width: 100, Height: 100})

	if got.Width != 80 {
		t.Fatalf("width = %d, want 80", got.Width)
	}
	if got.Height != 0 {
		t.Fatalf("height should clamp to 0, got %d", got.Height)
	}
}
