package animation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/state"
)

// ApplyFunc moves a window to a frame on the window system.
type ApplyFunc func(id state.WindowID, frame state.Frame) error

// FrameClock delivers ticks at the display refresh rate.
type FrameClock interface {
	Frames() <-chan time.Time
	Stop()
}

// TickerClock is a FrameClock backed by a time.Ticker.
type TickerClock struct {
	ticker *time.Ticker
}

// NewTickerClock returns a clock ticking at the given refresh rate.
// Rates of zero or below fall back to 60Hz.
func NewTickerClock(refreshHz int) *TickerClock {
	if refreshHz <= 0 {
		refreshHz = 60
	}
	return &TickerClock{ticker: time.NewTicker(time.Second / time.Duration(refreshHz))}
}

func (c *TickerClock) Frames() <-chan time.Time { return c.ticker.C }
func (c *TickerClock) Stop()                    { c.ticker.Stop() }

// Target is one window's animation: from its current frame to a goal.
type Target struct {
	ID   state.WindowID
	From state.Frame
	To   state.Frame
}

type transition struct {
	from  state.Frame
	to    state.Frame
	start time.Time
}

// Engine runs window transitions. Targets submitted while a window is
// already animating restart from the window's interpolated position,
// so layout changes mid-flight stay smooth.
type Engine struct {
	apply ApplyFunc
	log   *slog.Logger
	now   func() time.Time

	mu          sync.Mutex
	cfg         config.AnimationConfig
	transitions map[state.WindowID]*transition
}

func NewEngine(cfg config.AnimationConfig, apply ApplyFunc, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		cfg:         cfg,
		apply:       apply,
		log:         log,
		now:         time.Now,
		transitions: make(map[state.WindowID]*transition),
	}
}

// SetConfig swaps the animation settings, for config reloads.
func (e *Engine) SetConfig(cfg config.AnimationConfig) {
	e.mu.Lock()
	e.cfg = cfg
	e.mu.Unlock()
}

// Animate starts transitions for a batch of windows. When animations
// are disabled the targets are applied immediately.
func (e *Engine) Animate(targets []Target) {
	e.mu.Lock()
	cfg := e.cfg

	if !cfg.IsEnabled() || cfg.DurationMs <= 0 {
		e.mu.Unlock()
		for _, t := range targets {
			if err := e.apply(t.ID, t.To); err != nil {
				e.log.Warn("apply frame", "window", t.ID, "error", err)
			}
		}
		return
	}

	now := e.now()
	for _, t := range targets {
		from := t.From
		if prev, ok := e.transitions[t.ID]; ok {
			from = frameAt(prev, now, cfg)
		}
		if from == t.To {
			delete(e.transitions, t.ID)
			continue
		}
		e.transitions[t.ID] = &transition{from: from, to: t.To, start: now}
	}
	e.mu.Unlock()
}

// Cancel drops a pending transition without applying its target.
func (e *Engine) Cancel(id state.WindowID) {
	e.mu.Lock()
	delete(e.transitions, id)
	e.mu.Unlock()
}

// Animating reports whether a window has a transition in flight.
func (e *Engine) Animating(id state.WindowID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.transitions[id]
	return ok
}

// Active returns the number of windows currently animating.
func (e *Engine) Active() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.transitions)
}

// Run consumes the clock and steps transitions until the context ends.
func (e *Engine) Run(ctx context.Context, clock FrameClock) {
	defer clock.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-clock.Frames():
			e.step(t)
		}
	}
}

// step advances every transition to the given time and applies the
// interpolated frames. Finished transitions land exactly on target.
func (e *Engine) step(now time.Time) {
	type move struct {
		id    state.WindowID
		frame state.Frame
	}

	e.mu.Lock()
	cfg := e.cfg
	d := time.Duration(cfg.DurationMs) * time.Millisecond
	moves := make([]move, 0, len(e.transitions))
	for id, tr := range e.transitions {
		if now.Sub(tr.start) >= d {
			moves = append(moves, move{id, tr.to})
			delete(e.transitions, id)
			continue
		}
		moves = append(moves, move{id, frameAt(tr, now, cfg)})
	}
	e.mu.Unlock()

	for _, m := range moves {
		if err := e.apply(m.id, m.frame); err != nil {
			e.log.Warn("apply frame", "window", m.id, "error", err)
		}
	}
}

// frameAt interpolates a transition's frame at the given time.
func frameAt(tr *transition, now time.Time, cfg config.AnimationConfig) state.Frame {
	d := time.Duration(cfg.DurationMs) * time.Millisecond
	if d <= 0 {
		return tr.to
	}
	progress := float64(now.Sub(tr.start)) / float64(d)
	eased := Ease(cfg.Easing, progress)
	return state.Frame{
		X:      Lerp(tr.from.X, tr.to.X, eased),
		Y:      Lerp(tr.from.Y, tr.to.Y, eased),
		Width:  Lerp(tr.from.Width, tr.to.Width, eased),
		Height: Lerp(tr.from.Height, tr.to.Height, eased),
	}
}
