package layout

// Monocle gives every eligible window the full usable frame. Windows
// stack on top of each other; focus decides which one is visible.
type Monocle struct{}

func (Monocle) Layout(windows []Window, ctx *Context) []Assignment {
	tileable := eligible(windows)
	if len(tileable) == 0 {
		return nil
	}

	frame := ctx.Gaps.ApplyToScreen(ctx.ScreenFrame)

	out := make([]Assignment, 0, len(tileable))
	for _, w := range tileable {
		out = append(out, Assignment{ID: w.ID, Frame: frame})
	}
	return out
}
