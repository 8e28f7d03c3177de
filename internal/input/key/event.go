package key

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// Event represents a single key press delivered by the keyboard decoder.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Char is the character payload for KeyRune events.
	Char byte

	// Extended is set for control keys (no printable payload).
	Extended bool

	// Modifiers contains the modifier keys held during the press.
	Modifiers Modifier
}

// NewCharEvent creates a printable key event.
func NewCharEvent(c byte) Event {
	return Event{Key: KeyRune, Char: c}
}

// NewSpecialEvent creates an extended key event.
func NewSpecialEvent(k Key) Event {
	return Event{Key: k, Extended: true}
}

// FromRune converts a host rune into a printable event.
// Only runes that fit one byte and occupy one column are accepted;
// wide and combining characters have no glyph in a text-mode cell.
func FromRune(r rune) (Event, bool) {
	if r <= 0 || r > 0xFF || runewidth.RuneWidth(r) != 1 {
		return Event{}, false
	}
	return NewCharEvent(byte(r)), true
}

// Is returns true if this is the extended key k.
func (e Event) Is(k Key) bool {
	return e.Extended && e.Key == k
}

// IsChar returns true if this event carries a character payload.
func (e Event) IsChar() bool {
	return !e.Extended
}

// String returns a short representation: the character for printable
// events, the key name for extended ones.
func (e Event) String() string {
	if !e.Extended {
		if e.Char == ' ' {
			return "Space"
		}
		return fmt.Sprintf("%q", e.Char)
	}
	if e.Modifiers != ModNone {
		return e.Modifiers.String() + "+" + e.Key.String()
	}
	return e.Key.String()
}
