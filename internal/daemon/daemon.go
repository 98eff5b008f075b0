// Package daemon wires the manager, the event watcher, the animation
// engine, and the IPC server into one foreground process.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/tilewm/internal/animation"
	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/ipc"
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/1broseidon/tilewm/internal/wm"
)

// Daemon runs the tiling manager against a backend.
type Daemon struct {
	cfg          *config.Config
	backend      platform.Backend
	mgr          *wm.Manager
	log          *slog.Logger
	pollInterval time.Duration
}

func New(cfg *config.Config, backend platform.Backend, log *slog.Logger) *Daemon {
	if log == nil {
		log = slog.Default()
	}
	return &Daemon{
		cfg:          cfg,
		backend:      backend,
		mgr:          wm.New(cfg, backend, log),
		log:          log,
		pollInterval: platform.DefaultPollInterval,
	}
}

// Manager returns the window manager core.
func (d *Daemon) Manager() *wm.Manager { return d.mgr }

// Run starts the daemon and blocks until the context is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.mgr.Initialize(); err != nil {
		return fmt.Errorf("initialize manager: %w", err)
	}

	server, err := ipc.NewServer(d.mgr, d.log)
	if err != nil {
		return fmt.Errorf("create IPC server: %w", err)
	}
	if err := server.Start(); err != nil {
		return fmt.Errorf("start IPC server: %w", err)
	}
	defer server.Stop()

	watcher := platform.NewWatcher(d.backend, d.pollInterval, d.log)
	clock := animation.NewTickerClock(d.backend.RefreshRate())

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer d.recoverPanic("animation loop")
		d.mgr.Animation().Run(ctx, clock)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer d.recoverPanic("watcher")
		watcher.Run(ctx)
	}()

	d.log.Info("daemon started", "poll_interval", d.pollInterval)

	// The event loop is the single consumer of watcher events.
	d.mgr.Run(ctx, watcher.Events())

	wg.Wait()
	d.log.Info("daemon stopped")
	return nil
}

// recoverPanic keeps a crashing goroutine from taking the daemon down.
func (d *Daemon) recoverPanic(name string) {
	if err := recover(); err != nil {
		d.log.Error("panic recovered", "in", name, "error", err)
	}
}
