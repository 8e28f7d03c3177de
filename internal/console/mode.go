package console

import "fmt"

// Mode is the input state of the console.
type Mode uint8

const (
	// ModeNormal appends keystrokes to the text.
	ModeNormal Mode = iota

	// ModeSearchEntry appends keystrokes to the search string.
	ModeSearchEntry

	// ModeSearchActive highlights the frozen search string.
	ModeSearchActive
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSearchEntry:
		return "search-entry"
	case ModeSearchActive:
		return "search-active"
	default:
		return fmt.Sprintf("mode(%d)", m)
	}
}

// ShowsSearch reports whether the search string is drawn after the text.
func (m Mode) ShowsSearch() bool {
	return m != ModeNormal
}

// Highlights reports whether search matches are highlighted.
func (m Mode) Highlights() bool {
	return m == ModeSearchActive
}
