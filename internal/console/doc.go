// Package console implements a single text-mode console: a fixed-size
// text log, a search mode that highlights matches in it, and a
// self-clearing idle timer.
//
// # State
//
// Console is the one owned driver-state value. It holds the text and
// search buffers, the current Mode, the Caps-Lock flag and the renderer
// that owns the display frame. Buffers have fixed capacity; a full text
// buffer wraps its write position to slot 0 and keeps writing without
// clearing.
//
// # Modes
//
// Esc leaves Normal for SearchEntry, Enter moves SearchEntry to
// SearchActive, and Esc from either search mode returns to Normal.
//
//   - Normal: printable keys, Enter and Tab append to the text;
//     Backspace removes the last byte.
//   - SearchEntry: printable keys build the search string shown after
//     the text; Enter freezes it.
//   - SearchActive: every occurrence of the search string in the text is
//     highlighted; only Esc does anything.
//
// Caps-Lock toggles letter case in every mode except SearchActive and
// drives the keyboard indicator light.
//
// # Concurrency
//
// Console is not safe for concurrent use. HandleKey and IdleTick must be
// called one at a time; the application's dispatcher provides that.
package console
