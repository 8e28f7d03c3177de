// Package backend provides display backend abstraction for the renderer.
package backend

import (
	"context"
	"errors"

	"github.com/dshills/vgacon/internal/input/key"
	"github.com/dshills/vgacon/internal/renderer/core"
)

// Backend errors.
var (
	// ErrClosed is returned by PollKey once the backend is shut down.
	ErrClosed = errors.New("backend closed")

	// ErrInterrupt is returned by PollKey when the user asks to leave.
	ErrInterrupt = errors.New("interrupt requested")
)

// Backend defines the interface for display backends.
// Implementations copy whole frames to a display surface and position
// the hardware cursor.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores display state.
	Shutdown()

	// Size returns the display dimensions in cells.
	Size() (width, height int)

	// Draw copies every cell of the frame to the display.
	Draw(frame *core.Frame)

	// SetCursor moves the cursor to the linear cell offset row*width+col.
	SetCursor(offset int)

	// Show flushes pending output to the display.
	Show()
}

// KeySource delivers key events.
type KeySource interface {
	// PollKey blocks until a key is pressed, the backend closes or ctx
	// ends.
	PollKey(ctx context.Context) (key.Event, error)
}
