package platform

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/1broseidon/tilewm/internal/state"
)

// DefaultPollInterval is how often the watcher samples the window system.
const DefaultPollInterval = 250 * time.Millisecond

// Watcher polls a backend and turns state differences into events.
// It is the single event producer; consumers drain Events from one
// processing loop.
type Watcher struct {
	backend  Backend
	interval time.Duration
	log      *slog.Logger
	events   chan Event

	prevWindows map[state.WindowID]WindowInfo
	prevFocus   state.WindowID
	prevScreens string
	primed      bool
}

func NewWatcher(backend Backend, interval time.Duration, log *slog.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{
		backend:  backend,
		interval: interval,
		log:      log,
		events:   make(chan Event, 64),
	}
}

// Events returns the channel the watcher publishes on. The channel is
// closed when Run returns.
func (w *Watcher) Events() <-chan Event { return w.events }

// Run polls until the context is cancelled. The first poll primes the
// baseline without emitting events.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.events)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *Watcher) poll(ctx context.Context) {
	windows, err := w.backend.ListWindows()
	if err != nil {
		w.log.Warn("poll windows", "error", err)
		return
	}
	focus, err := w.backend.ActiveWindow()
	if err != nil {
		focus = 0
	}
	screens, err := w.backend.Screens()
	if err != nil {
		w.log.Warn("poll screens", "error", err)
		return
	}
	screenSig := screenSignature(screens)

	current := make(map[state.WindowID]WindowInfo, len(windows))
	for _, win := range windows {
		current[win.ID] = win
	}

	if !w.primed {
		w.prevWindows = current
		w.prevFocus = focus
		w.prevScreens = screenSig
		w.primed = true
		return
	}

	if screenSig != w.prevScreens {
		w.prevScreens = screenSig
		w.emit(ctx, ScreensChanged{})
	}

	for id, win := range current {
		prev, ok := w.prevWindows[id]
		if !ok {
			w.emit(ctx, WindowCreated{Window: win})
			continue
		}
		if win.Frame != prev.Frame {
			w.emit(ctx, WindowFrameChanged{ID: id, Old: prev.Frame, Frame: win.Frame})
		}
	}
	for id := range w.prevWindows {
		if _, ok := current[id]; !ok {
			w.emit(ctx, WindowDestroyed{ID: id})
		}
	}

	if focus != w.prevFocus {
		w.emit(ctx, FocusChanged{ID: focus})
	}

	w.prevWindows = current
	w.prevFocus = focus
}

func (w *Watcher) emit(ctx context.Context, ev Event) {
	select {
	case w.events <- ev:
	case <-ctx.Done():
	}
}

func screenSignature(screens []state.Screen) string {
	sig := ""
	for _, s := range screens {
		sig += fmt.Sprintf("%s:%+v;", s.ID, s.Frame)
	}
	return sig
}
