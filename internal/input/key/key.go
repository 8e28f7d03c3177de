package key

import "fmt"

// Key identifies a keyboard key.
// For printable keys use KeyRune and set Event.Char.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Control keys the console acts on
	KeyEscape
	KeyTab
	KeyEnter
	KeyBackspace
	KeyCapsLock

	// Control keys the console ignores
	KeyShiftL
	KeyShiftR
	KeyCtrlL
	KeyCtrlR
	KeyAltL
	KeyAltR
	KeyNumLock
	KeyScrollLock
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// KeyRune is used for printable keys.
	// The character is stored in Event.Char.
	KeyRune
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyEscape:
		return "Escape"
	case KeyTab:
		return "Tab"
	case KeyEnter:
		return "Enter"
	case KeyBackspace:
		return "Backspace"
	case KeyCapsLock:
		return "CapsLock"
	case KeyShiftL:
		return "ShiftL"
	case KeyShiftR:
		return "ShiftR"
	case KeyCtrlL:
		return "CtrlL"
	case KeyCtrlR:
		return "CtrlR"
	case KeyAltL:
		return "AltL"
	case KeyAltR:
		return "AltR"
	case KeyNumLock:
		return "NumLock"
	case KeyScrollLock:
		return "ScrollLock"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyRune:
		return "Rune"
	}
	if k.IsFunctionKey() {
		return fmt.Sprintf("F%d", k-KeyF1+1)
	}
	return fmt.Sprintf("Key(%d)", k)
}

// IsSpecial returns true if this is a control (non-character) key.
func (k Key) IsSpecial() bool {
	return k != KeyNone && k != KeyRune
}

// IsFunctionKey returns true if this is a function key (F1-F12).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF12
}

// IsArrowKey returns true if this is an arrow key.
func (k Key) IsArrowKey() bool {
	return k >= KeyUp && k <= KeyRight
}
