package backend

import (
	"context"
	"sync"

	"github.com/dshills/vgacon/internal/input/key"
	"github.com/dshills/vgacon/internal/renderer/core"
)

// NullBackend is an in-memory backend for tests and headless sessions.
// It keeps the last drawn frame and a queue of injected key events.
type NullBackend struct {
	mu     sync.Mutex
	width  int
	height int
	frame  *core.Frame
	cursor int
	draws  int
	shows  int

	keys *KeyQueue
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		frame:  core.NewFrame(width, height, 0),
		keys:   NewKeyQueue(256),
	}
}

func (b *NullBackend) Init() error { return nil }

// Shutdown closes the key queue; pending PollKey calls return ErrClosed.
func (b *NullBackend) Shutdown() {
	b.keys.Close()
}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *NullBackend) Draw(frame *core.Frame) {
	b.mu.Lock()
	defer b.mu.Unlock()

	copy(b.frame.Cells, frame.Cells)
	b.draws++
}

func (b *NullBackend) SetCursor(offset int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cursor = offset
	b.frame.Cursor = offset
}

func (b *NullBackend) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shows++
}

// PostKey queues a key event. Events are dropped if the queue is full.
func (b *NullBackend) PostKey(ev key.Event) bool {
	return b.keys.Post(ev)
}

func (b *NullBackend) PollKey(ctx context.Context) (key.Event, error) {
	return b.keys.PollKey(ctx)
}

// Frame returns a copy of the last drawn frame, including the cursor.
func (b *NullBackend) Frame() *core.Frame {
	b.mu.Lock()
	defer b.mu.Unlock()

	f := &core.Frame{
		Width:  b.frame.Width,
		Height: b.frame.Height,
		Cells:  make([]core.Cell, len(b.frame.Cells)),
		Cursor: b.cursor,
	}
	copy(f.Cells, b.frame.Cells)
	return f
}

// Cursor returns the last cursor offset.
func (b *NullBackend) Cursor() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor
}

// Draws returns how many frames have been drawn.
func (b *NullBackend) Draws() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.draws
}

// Shows returns how many times Show was called.
func (b *NullBackend) Shows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}
