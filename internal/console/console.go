package console

import (
	"context"
	"time"

	"github.com/dshills/vgacon/internal/hw/kbd"
	"github.com/dshills/vgacon/internal/renderer"
	"github.com/dshills/vgacon/internal/renderer/core"
)

// DefaultIndicatorTimeout bounds one Caps-Lock indicator handshake.
const DefaultIndicatorTimeout = 500 * time.Millisecond

// Logger is the logging surface the console needs.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// ModeChangeCallback is called after the mode changes.
type ModeChangeCallback func(from, to Mode)

// Console is the driver state of one text-mode console.
type Console struct {
	text     *Ring
	search   *Ring
	mode     Mode
	capsLock bool

	renderer         *renderer.Renderer
	indicator        kbd.Indicator
	indicatorTimeout time.Duration
	logger           Logger
	onModeChange     ModeChangeCallback
}

// Option configures a Console.
type Option func(*Console)

// WithIndicator sets the Caps-Lock indicator. The default is kbd.Nop.
func WithIndicator(ind kbd.Indicator) Option {
	return func(c *Console) {
		c.indicator = ind
	}
}

// WithIndicatorTimeout bounds each indicator handshake. Zero means no
// deadline beyond the indicator's own poll budget.
func WithIndicatorTimeout(d time.Duration) Option {
	return func(c *Console) {
		c.indicatorTimeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(c *Console) {
		c.logger = l
	}
}

// WithModeChangeCallback registers a function called on every mode
// transition.
func WithModeChangeCallback(fn ModeChangeCallback) Option {
	return func(c *Console) {
		c.onModeChange = fn
	}
}

// New creates a console rendering through r. Both buffers hold one byte
// per screen cell, half the size of the display memory.
func New(r *renderer.Renderer, opts ...Option) *Console {
	o := r.Options()
	capacity := o.Width * o.Height

	c := &Console{
		text:             NewRing(capacity),
		search:           NewRing(capacity),
		mode:             ModeNormal,
		renderer:         r,
		indicator:        kbd.Nop{},
		indicatorTimeout: DefaultIndicatorTimeout,
		logger:           nopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render redraws the screen from the current state.
func (c *Console) Render() {
	c.renderer.Render(renderer.View{
		Text:       c.text.Bytes(),
		Search:     c.search.Bytes(),
		Highlight:  c.mode.Highlights(),
		ShowSearch: c.mode.ShowsSearch(),
	})
}

// IdleTick clears the text and redraws, but only in ModeNormal. In the
// search modes it does nothing so an ongoing search is left alone.
func (c *Console) IdleTick() {
	if c.mode != ModeNormal {
		return
	}
	c.text.Reset()
	c.Render()
}

// Mode returns the current mode.
func (c *Console) Mode() Mode {
	return c.mode
}

// CapsLock returns the Caps-Lock flag.
func (c *Console) CapsLock() bool {
	return c.capsLock
}

// Text returns the current text.
func (c *Console) Text() string {
	return c.text.String()
}

// TextPos returns the text write position.
func (c *Console) TextPos() int {
	return c.text.Len()
}

// Search returns the current search string.
func (c *Console) Search() string {
	return c.search.String()
}

// Frame returns the last rendered frame.
func (c *Console) Frame() *core.Frame {
	return c.renderer.Frame()
}

// Renderer returns the console's renderer.
func (c *Console) Renderer() *renderer.Renderer {
	return c.renderer
}

func (c *Console) setMode(m Mode) {
	if m == c.mode {
		return
	}
	from := c.mode
	c.mode = m
	c.logger.Debug("mode %s -> %s", from, m)
	if c.onModeChange != nil {
		c.onModeChange(from, m)
	}
}

// toggleCapsLock flips the flag and updates the indicator light. The
// flag changes even if the light cannot be set.
func (c *Console) toggleCapsLock() {
	c.capsLock = !c.capsLock

	ctx := context.Background()
	if c.indicatorTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.indicatorTimeout)
		defer cancel()
	}
	if err := c.indicator.SetCapsLock(ctx, c.capsLock); err != nil {
		c.logger.Warn("caps-lock indicator: %v", err)
	}
}

// foldCase swaps the case of ASCII letters while Caps-Lock is on.
func (c *Console) foldCase(b byte) byte {
	if !c.capsLock {
		return b
	}
	switch {
	case b >= 'A' && b <= 'Z':
		return b + ('a' - 'A')
	case b >= 'a' && b <= 'z':
		return b - ('a' - 'A')
	default:
		return b
	}
}
