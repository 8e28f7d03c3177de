package app

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/vgacon/internal/config"
	"github.com/dshills/vgacon/internal/config/watcher"
	"github.com/dshills/vgacon/internal/console"
	"github.com/dshills/vgacon/internal/input/key"
	"github.com/dshills/vgacon/internal/renderer/backend"
)

// jobQueueSize bounds work waiting for the dispatcher.
const jobQueueSize = 64

// job is one unit of console work.
type job struct {
	name string
	run  func(c *console.Console)
}

// Run draws the initial screen and runs the session until ctx is done,
// the user interrupts, or the key source closes. Keys, idle ticks and
// reloads are produced on their own goroutines and applied in order by
// a single dispatcher.
//
// When the session ends for any reason the application is closed, which
// shuts the backend down and unblocks a key source waiting on it. Run
// cannot be called again afterwards.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.Render()
	app.logger.Info("console started")

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan job, jobQueueSize)

	if app.keys != nil {
		g.Go(func() error { return app.pollKeys(ctx, jobs) })
	}
	g.Go(func() error { return app.runIdle(ctx, jobs) })
	if app.configPath != "" {
		g.Go(func() error { return app.watchConfig(ctx, jobs) })
	}
	g.Go(func() error { return app.dispatch(ctx, jobs) })
	g.Go(func() error {
		<-ctx.Done()
		app.Close()
		return nil
	})

	err := g.Wait()
	switch {
	case errors.Is(err, ErrQuit), errors.Is(err, context.Canceled), errors.Is(err, backend.ErrClosed):
		return nil
	default:
		return err
	}
}

// submit hands j to the dispatcher, waiting while the queue is full.
func submit(ctx context.Context, jobs chan<- job, j job) error {
	select {
	case jobs <- j:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// dispatch applies jobs one at a time.
func (app *Application) dispatch(ctx context.Context, jobs <-chan job) error {
	log := app.logger.WithComponent("dispatcher")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case j := <-jobs:
			start := time.Now()
			app.Do(j.run)
			if j.name == "key" {
				app.metrics.RecordKey(time.Since(start))
			}
			log.Debug("%s handled in %v", j.name, time.Since(start))
		}
	}
}

// pollKeys reads keys until the source fails. An interrupt ends the
// session with ErrQuit.
func (app *Application) pollKeys(ctx context.Context, jobs chan<- job) error {
	for {
		ev, err := app.keys.PollKey(ctx)
		if err != nil {
			if errors.Is(err, backend.ErrInterrupt) {
				app.logger.Info("interrupt received")
				return ErrQuit
			}
			if errors.Is(err, backend.ErrClosed) || ctx.Err() != nil {
				return err
			}
			return &SessionError{Task: "keys", Err: err}
		}

		if err := submit(ctx, jobs, keyJob(ev)); err != nil {
			return err
		}
	}
}

func keyJob(ev key.Event) job {
	return job{name: "key", run: func(c *console.Console) { c.HandleKey(ev) }}
}

// runIdle fires the idle clearer on the configured interval. A reload
// can change the interval or switch the clearer off and on.
func (app *Application) runIdle(ctx context.Context, jobs chan<- job) error {
	idle := app.Config().Idle

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	arm := func() {
		if idle.Enabled {
			ticker.Reset(idle.Interval.D())
		} else {
			ticker.Stop()
		}
	}
	arm()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case idle = <-app.idleReset:
			arm()
			app.logger.Debug("idle clearer enabled=%v interval=%v", idle.Enabled, idle.Interval)

		case <-ticker.C:
			if err := submit(ctx, jobs, app.idleJob()); err != nil {
				return err
			}
		}
	}
}

func (app *Application) idleJob() job {
	return job{name: "idle", run: func(c *console.Console) {
		app.metrics.RecordIdle(c.Mode() == console.ModeNormal)
		c.IdleTick()
	}}
}

// watchConfig reloads the configuration file when it changes.
func (app *Application) watchConfig(ctx context.Context, jobs chan<- job) error {
	log := app.logger.WithComponent("config")

	w, err := watcher.New(app.configPath)
	if err != nil {
		// A session without live reload is still usable.
		log.Warn("not watching %s: %v", app.configPath, err)
		return nil
	}
	defer w.Close()

	err = w.Run(ctx, func(ev watcher.Event) {
		app.reload(ctx, jobs, ev)
	})
	if errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		return &SessionError{Task: "watch", Path: app.configPath, Err: err}
	}
	return nil
}

// reload handles one change of the configuration file. A valid file is
// queued for applyConfig; a removed or invalid one is logged.
func (app *Application) reload(ctx context.Context, jobs chan<- job, ev watcher.Event) {
	log := app.logger.WithComponent("config")

	if ev.Op == watcher.OpRemove {
		log.Info("%s removed, keeping current settings", ev.Path)
		return
	}
	next, err := config.Load(ev.Path)
	if err != nil {
		app.metrics.RecordReload(false)
		log.Warn("ignoring bad configuration: %v", err)
		return
	}
	err = submit(ctx, jobs, job{name: "reload", run: func(*console.Console) {
		app.applyConfig(next)
	}})
	if err != nil {
		log.Debug("reload of %s dropped: %v", ev.Path, err)
	}
}

// applyConfig installs the live-reloadable parts of next: colours, tab
// width and the idle clearer. Other changes are logged and ignored. It
// runs under the console lock.
func (app *Application) applyConfig(next *config.Config) {
	log := app.logger.WithComponent("config")

	if !app.cfg.Reloadable(next) {
		log.Warn("size, backend and logging changes need a restart")
	}

	app.cfg.Display.TabWidth = next.Display.TabWidth
	app.cfg.Display.DefaultAttr = next.Display.DefaultAttr
	app.cfg.Display.HighlightAttr = next.Display.HighlightAttr
	app.cfg.Idle = next.Idle

	app.renderer.SetOptions(rendererOptions(app.cfg))
	app.console.Render()

	// Replace any reset the idle loop has not picked up yet.
	select {
	case <-app.idleReset:
	default:
	}
	app.idleReset <- app.cfg.Idle

	app.metrics.RecordReload(true)
	log.Info("configuration reloaded")
}
