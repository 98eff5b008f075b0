package layout

// Floating leaves windows where they are. It never produces
// assignments; windows are positioned by presets or by the user.
type Floating struct{}

func (Floating) Layout(windows []Window, ctx *Context) []Assignment {
	return nil
}
