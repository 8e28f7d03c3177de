package renderer

import (
	"github.com/dshills/vgacon/internal/renderer/backend"
	"github.com/dshills/vgacon/internal/renderer/core"
)

// Renderer owns the frame and presents it on a backend.
// It is not safe for concurrent use; callers serialize renders.
type Renderer struct {
	opts    Options
	backend backend.Backend
	frame   *core.Frame
}

// New creates a renderer drawing to b.
func New(b backend.Backend, opts Options) *Renderer {
	return &Renderer{
		opts:    opts,
		backend: b,
		frame:   core.NewFrame(opts.Width, opts.Height, opts.DefaultAttr),
	}
}

// Options returns the active options.
func (r *Renderer) Options() Options {
	return r.opts
}

// SetOptions replaces the options. A size change reallocates the frame.
// The next Render uses the new values.
func (r *Renderer) SetOptions(opts Options) {
	if opts.Width != r.opts.Width || opts.Height != r.opts.Height {
		r.frame = core.NewFrame(opts.Width, opts.Height, opts.DefaultAttr)
	}
	r.opts = opts
}

// Render rebuilds the frame from v, copies it to the backend and moves
// the cursor to just after the last rendered character.
func (r *Renderer) Render(v View) {
	Compose(r.frame, v, r.opts)
	r.backend.Draw(r.frame)
	r.backend.SetCursor(r.frame.Cursor)
	r.backend.Show()
}

// Frame returns the most recently composed frame. The frame is reused
// by the next Render.
func (r *Renderer) Frame() *core.Frame {
	return r.frame
}
