package app

import (
	"github.com/dshills/vgacon/internal/config"
	"github.com/dshills/vgacon/internal/console"
	"github.com/dshills/vgacon/internal/hw"
	"github.com/dshills/vgacon/internal/hw/kbd"
	"github.com/dshills/vgacon/internal/renderer"
	"github.com/dshills/vgacon/internal/renderer/backend"
	"github.com/dshills/vgacon/internal/renderer/core"
)

// keyQueueSize bounds keys posted to a headless session.
const keyQueueSize = 256

// busOpLimit bounds the vga bus operation log of a long session.
const busOpLimit = 4096

// bootstrapper initialises the application in dependency order.
type bootstrapper struct {
	app       *Application
	indicator kbd.Indicator
}

func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{app: app, indicator: kbd.Nop{}}
}

func (b *bootstrapper) bootstrap() error {
	if err := b.initBackend(); err != nil {
		return err
	}
	b.initRenderer()
	b.initConsole()
	return nil
}

func (b *bootstrapper) initBackend() error {
	app := b.app
	cfg := app.cfg
	log := app.logger.WithComponent("backend")

	if app.backend == nil {
		switch cfg.Backend.Kind {
		case config.BackendTerminal:
			t, err := backend.NewTerminal()
			if err != nil {
				return NewSetupError("backend", "create terminal", err)
			}
			app.backend = t

		case config.BackendNull:
			app.backend = backend.NewNullBackend(cfg.Display.Width, cfg.Display.Height)

		case config.BackendVGA:
			bus := hw.NewBus(cfg.Display.Width * cfg.Display.Height * 2)
			bus.EmulateKeyboardController()
			bus.SetOpLimit(busOpLimit)
			app.bus = bus
			app.backend = backend.NewVGA(bus, bus, bus, cfg.Display.Width, cfg.Display.Height)

			q := backend.NewKeyQueue(keyQueueSize)
			app.queue = q
			app.keys = q
			app.post = q.Post

			b.indicator = kbd.NewController(bus, kbd.WithMaxPolls(cfg.Indicator.MaxPolls))

		default:
			return NewSetupError("backend", "select", config.ErrUnknownBackend)
		}
	}

	if app.keys == nil {
		if ks, ok := app.backend.(backend.KeySource); ok {
			app.keys = ks
		}
	}
	if app.post == nil {
		if nb, ok := app.backend.(*backend.NullBackend); ok {
			app.post = nb.PostKey
		}
	}

	if err := app.backend.Init(); err != nil {
		return NewSetupError("backend", "init", err)
	}

	w, h := app.backend.Size()
	if w < cfg.Display.Width || h < cfg.Display.Height {
		log.Warn("display is %dx%d, smaller than the %dx%d console", w, h, cfg.Display.Width, cfg.Display.Height)
	}
	log.Debug("using %s backend", cfg.Backend.Kind)
	return nil
}

func (b *bootstrapper) initRenderer() {
	b.app.renderer = renderer.New(b.app.backend, rendererOptions(b.app.cfg))
}

func (b *bootstrapper) initConsole() {
	app := b.app
	log := app.logger.WithComponent("console")

	app.console = console.New(app.renderer,
		console.WithIndicator(b.indicator),
		console.WithIndicatorTimeout(app.cfg.Indicator.Timeout.D()),
		console.WithLogger(log),
		console.WithModeChangeCallback(func(from, to console.Mode) {
			log.Info("mode %s -> %s", from, to)
		}),
	)
}

// rendererOptions maps the display settings to renderer options.
func rendererOptions(cfg *config.Config) renderer.Options {
	return renderer.Options{
		Width:         cfg.Display.Width,
		Height:        cfg.Display.Height,
		TabWidth:      cfg.Display.TabWidth,
		DefaultAttr:   core.Attribute(cfg.Display.DefaultAttr),
		HighlightAttr: core.Attribute(cfg.Display.HighlightAttr),
	}
}
