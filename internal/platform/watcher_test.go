package platform

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/1broseidon/tilewm/internal/state"
)

// pollBackend serves a mutable window and screen set.
type pollBackend struct {
	mu      sync.Mutex
	screens []state.Screen
	windows []WindowInfo
	active  state.WindowID
}

func (b *pollBackend) set(fn func(*pollBackend)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(b)
}

func (b *pollBackend) Screens() ([]state.Screen, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]state.Screen(nil), b.screens...), nil
}

func (b *pollBackend) ListWindows() ([]WindowInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]WindowInfo(nil), b.windows...), nil
}

func (b *pollBackend) Window(id state.WindowID) (WindowInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, w := range b.windows {
		if w.ID == id {
			return w, nil
		}
	}
	return WindowInfo{}, errors.New("window not found")
}

func (b *pollBackend) ActiveWindow() (state.WindowID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active, nil
}

func (b *pollBackend) MoveResize(state.WindowID, state.Frame) error { return nil }
func (b *pollBackend) Focus(state.WindowID) error                   { return nil }
func (b *pollBackend) Hide(state.WindowID) error                    { return nil }
func (b *pollBackend) Unhide(state.WindowID) error                  { return nil }
func (b *pollBackend) Minimize(state.WindowID) error                { return nil }
func (b *pollBackend) Close(state.WindowID) error                   { return nil }
func (b *pollBackend) RefreshRate() int                             { return 60 }

func startWatcher(t *testing.T, backend *pollBackend) <-chan Event {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	w := NewWatcher(backend, time.Millisecond, nil)
	go w.Run(ctx)
	return w.Events()
}

func nextEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestWatcherEmitsWindowCreated(t *testing.T) {
	backend := &pollBackend{
		screens: []state.Screen{{ID: "s1", IsMain: true}},
	}
	events := startWatcher(t, backend)

	// Let the first poll prime the baseline, then add a window.
	time.Sleep(10 * time.Millisecond)
	backend.set(func(b *pollBackend) {
		b.windows = []WindowInfo{{ID: 7, AppID: "term"}}
	})

	ev := nextEvent(t, events)
	created, ok := ev.(WindowCreated)
	if !ok {
		t.Fatalf("event = %T, want WindowCreated", ev)
	}
	if created.Window.ID != 7 {
		t.Fatalf("window = %d", created.Window.ID)
	}
}

func TestWatcherEmitsFrameChangeAndDestroy(t *testing.T) {
	backend := &pollBackend{
		screens: []state.Screen{{ID: "s1", IsMain: true}},
		windows: []WindowInfo{{ID: 7, Frame: state.Frame{Width: 100, Height: 100}}},
	}
	events := startWatcher(t, backend)

	time.Sleep(10 * time.Millisecond)
	backend.set(func(b *pollBackend) {
		b.windows[0].Frame.Width = 200
	})

	ev := nextEvent(t, events)
	changed, ok := ev.(WindowFrameChanged)
	if !ok {
		t.Fatalf("event = %T, want WindowFrameChanged", ev)
	}
	if changed.Old.Width != 100 || changed.Frame.Width != 200 {
		t.Fatalf("frames = %+v -> %+v", changed.Old, changed.Frame)
	}

	backend.set(func(b *pollBackend) {
		b.windows = nil
	})

	ev = nextEvent(t, events)
	destroyed, ok := ev.(WindowDestroyed)
	if !ok {
		t.Fatalf("event = %T, want WindowDestroyed", ev)
	}
	if destroyed.ID != 7 {
		t.Fatalf("window = %d", destroyed.ID)
	}
}

func TestWatcherEmitsFocusAndScreenChanges(t *testing.T) {
	backend := &pollBackend{
		screens: []state.Screen{{ID: "s1", IsMain: true}},
		windows: []WindowInfo{{ID: 1}, {ID: 2}},
		active:  1,
	}
	events := startWatcher(t, backend)

	time.Sleep(10 * time.Millisecond)
	backend.set(func(b *pollBackend) {
		b.active = 2
	})

	ev := nextEvent(t, events)
	focus, ok := ev.(FocusChanged)
	if !ok {
		t.Fatalf("event = %T, want FocusChanged", ev)
	}
	if focus.ID != 2 {
		t.Fatalf("focus = %d", focus.ID)
	}

	backend.set(func(b *pollBackend) {
		b.screens = append(b.screens, state.Screen{ID: "s2"})
	})

	ev = nextEvent(t, events)
	if _, ok := ev.(ScreensChanged); !ok {
		t.Fatalf("event = %T, want ScreensChanged", ev)
	}
}
