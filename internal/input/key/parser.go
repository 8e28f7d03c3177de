package key

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyName is returned by Parse for an empty key name.
var ErrEmptyName = errors.New("empty key name")

var keyNames = map[string]Key{
	"esc":        KeyEscape,
	"escape":     KeyEscape,
	"enter":      KeyEnter,
	"return":     KeyEnter,
	"cr":         KeyEnter,
	"tab":        KeyTab,
	"backspace":  KeyBackspace,
	"bs":         KeyBackspace,
	"capslock":   KeyCapsLock,
	"caps":       KeyCapsLock,
	"numlock":    KeyNumLock,
	"scrolllock": KeyScrollLock,
	"up":         KeyUp,
	"down":       KeyDown,
	"left":       KeyLeft,
	"right":      KeyRight,
}

// Parse converts a key name into an Event.
// A single character yields a printable event; "space" is accepted for
// ' '. Names are case-insensitive and may be wrapped in angle brackets
// ("<Esc>").
func Parse(name string) (Event, error) {
	if name == "" {
		return Event{}, ErrEmptyName
	}
	if len(name) == 1 {
		return NewCharEvent(name[0]), nil
	}

	n := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(name, "<"), ">"))
	if n == "space" {
		return NewCharEvent(' '), nil
	}
	if k, ok := keyNames[n]; ok {
		return NewSpecialEvent(k), nil
	}
	if strings.HasPrefix(n, "f") {
		if f, err := strconv.Atoi(n[1:]); err == nil && f >= 1 && f <= 12 {
			return NewSpecialEvent(KeyF1 + Key(f-1)), nil
		}
	}
	return Event{}, fmt.Errorf("unknown key name %q", name)
}
