// Package watcher reports changes to the configuration file.
//
// The file's directory is watched rather than the file itself, because
// most editors save by writing a new file and renaming it over the old
// one, which drops a watch on the file.
package watcher

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrClosed is returned by Run after Close.
var ErrClosed = errors.New("watcher closed")

// Event represents a change to the watched file.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the operation that triggered the event.
	Op Operation

	// Time is when the event occurred.
	Time time.Time
}

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota

	// OpCreate indicates the file was created or renamed into place.
	OpCreate

	// OpRemove indicates the file was deleted or renamed away.
	OpRemove
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Handler is called when a change is detected.
type Handler func(event Event)

// Watcher watches one file.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the file must be quiet before a change is
// reported. Zero reports every event.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher for the file at path. The file need not exist
// yet, but its directory must.
func New(path string, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		path:     absPath,
		debounce: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Run delivers changes to handler until ctx is done or the watcher is
// closed. Bursts of events within the debounce window are coalesced
// into one, and a removal wins over writes in the same burst. handler
// runs on the caller's goroutine.
func (w *Watcher) Run(ctx context.Context, handler Handler) error {
	var (
		pending *Event
		timer   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case fsEvent, ok := <-w.fsw.Events:
			if !ok {
				return ErrClosed
			}
			ev, ok := w.convert(fsEvent)
			if !ok {
				continue
			}
			if w.debounce == 0 {
				handler(ev)
				continue
			}
			pending = coalesce(pending, ev)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if pending != nil {
				handler(*pending)
				pending = nil
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return ErrClosed
			}
			return err
		}
	}
}

// Close stops the watcher. A running Run returns ErrClosed.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// convert maps an fsnotify event for the watched file. Events for other
// files in the directory and chmod-only events are dropped.
func (w *Watcher) convert(fsEvent fsnotify.Event) (Event, bool) {
	name, err := filepath.Abs(fsEvent.Name)
	if err != nil || name != w.path {
		return Event{}, false
	}

	ev := Event{Path: w.path, Time: time.Now()}
	switch {
	case fsEvent.Has(fsnotify.Remove), fsEvent.Has(fsnotify.Rename):
		ev.Op = OpRemove
	case fsEvent.Has(fsnotify.Create):
		ev.Op = OpCreate
	case fsEvent.Has(fsnotify.Write):
		ev.Op = OpWrite
	default:
		return Event{}, false
	}
	return ev, true
}

// coalesce folds next into a pending event:
// create + write => create, any + remove => remove, remove + create =>
// create, otherwise the latest wins.
func coalesce(pending *Event, next Event) *Event {
	if pending == nil {
		return &next
	}
	op := next.Op
	if pending.Op == OpCreate && next.Op == OpWrite {
		op = OpCreate
	}
	return &Event{Path: next.Path, Op: op, Time: next.Time}
}
