// Package app wires configuration, display backend, renderer and
// console together, and schedules key handling, idle clears and
// configuration reloads so the console sees one call at a time.
package app

import (
	"sync"
	"sync/atomic"

	"github.com/dshills/vgacon/internal/config"
	"github.com/dshills/vgacon/internal/console"
	"github.com/dshills/vgacon/internal/hw"
	"github.com/dshills/vgacon/internal/input/key"
	"github.com/dshills/vgacon/internal/renderer"
	"github.com/dshills/vgacon/internal/renderer/backend"
	"github.com/dshills/vgacon/internal/renderer/core"
)

// Options configures the application.
type Options struct {
	// Config is the starting configuration. Nil uses config.Default.
	Config *config.Config

	// ConfigPath is watched for live reloads while running. Empty
	// disables watching.
	ConfigPath string

	// Logger receives application logs. Nil discards them.
	Logger *Logger

	// Backend overrides the backend selected by Config.Backend.Kind.
	// If it also implements backend.KeySource it supplies the keys.
	Backend backend.Backend
}

// Application is the central coordinator of one console session.
type Application struct {
	// mu serialises every call into the console.
	mu sync.Mutex

	cfg        *config.Config
	configPath string
	logger     *Logger
	metrics    *Metrics

	backend  backend.Backend
	keys     backend.KeySource
	post     func(key.Event) bool
	queue    *backend.KeyQueue
	bus      *hw.Bus
	renderer *renderer.Renderer
	console  *console.Console

	running   atomic.Bool
	idleReset chan config.IdleConfig
	closeOnce sync.Once
}

// New creates an Application and initialises its backend. The screen is
// not drawn until Run or the first key.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = NullLogger
	}

	app := &Application{
		cfg:        cfg.Clone(),
		configPath: opts.ConfigPath,
		logger:     logger,
		metrics:    NewMetrics(),
		backend:    opts.Backend,
		idleReset:  make(chan config.IdleConfig, 1),
	}

	if err := newBootstrapper(app).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Config returns a copy of the active configuration.
func (app *Application) Config() *config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.cfg.Clone()
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Metrics returns the run metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Bus returns the simulated hardware bus of the vga backend, or nil.
func (app *Application) Bus() *hw.Bus {
	return app.bus
}

// Do runs fn with exclusive access to the console. Key handling, idle
// ticks, reloads and scripts all go through Do, so at most one of them
// touches the console at a time.
func (app *Application) Do(fn func(c *console.Console)) {
	app.mu.Lock()
	defer app.mu.Unlock()
	fn(app.console)
}

// HandleKey applies one key event and redraws.
func (app *Application) HandleKey(ev key.Event) {
	app.Do(func(c *console.Console) { c.HandleKey(ev) })
}

// IdleTick runs the idle clearer once.
func (app *Application) IdleTick() {
	app.Do(func(c *console.Console) { c.IdleTick() })
}

// Render redraws the current state.
func (app *Application) Render() {
	app.Do(func(c *console.Console) { c.Render() })
}

// Mode returns the console mode.
func (app *Application) Mode() (m console.Mode) {
	app.Do(func(c *console.Console) { m = c.Mode() })
	return m
}

// Text returns the console text.
func (app *Application) Text() (s string) {
	app.Do(func(c *console.Console) { s = c.Text() })
	return s
}

// Search returns the console search string.
func (app *Application) Search() (s string) {
	app.Do(func(c *console.Console) { s = c.Search() })
	return s
}

// CapsLock returns the Caps-Lock flag.
func (app *Application) CapsLock() (on bool) {
	app.Do(func(c *console.Console) { on = c.CapsLock() })
	return on
}

// Frame returns a copy of the last rendered frame.
func (app *Application) Frame() *core.Frame {
	var out *core.Frame
	app.Do(func(c *console.Console) {
		f := c.Frame()
		out = &core.Frame{
			Width:  f.Width,
			Height: f.Height,
			Cells:  append([]core.Cell(nil), f.Cells...),
			Cursor: f.Cursor,
		}
	})
	return out
}

// PostKey queues a key for a running headless session. It reports false
// when the backend has its own keyboard or the queue is full.
func (app *Application) PostKey(ev key.Event) bool {
	if app.post == nil {
		return false
	}
	if !app.post(ev) {
		app.metrics.RecordKeyDropped()
		return false
	}
	return true
}

// Close shuts the backend down. It is safe to call more than once.
func (app *Application) Close() {
	app.closeOnce.Do(func() {
		if app.queue != nil {
			app.queue.Close()
		}
		app.backend.Shutdown()
		s := app.metrics.Snapshot()
		app.logger.Info("session ended after %v: %d keys (avg %v, max %v), %d idle clears, %d reloads",
			s.Uptime.Round(1e6), s.Keys, s.AvgKey, s.MaxKey, s.IdleClears, s.Reloads)
	})
}
