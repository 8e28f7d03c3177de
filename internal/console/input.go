package console

import "github.com/dshills/vgacon/internal/input/key"

// HandleKey applies one key event and redraws.
//
// Caps-Lock is handled first in every mode except ModeSearchActive and
// consumes the event. Everything else is routed by mode.
func (c *Console) HandleKey(ev key.Event) {
	defer c.Render()

	if ev.Is(key.KeyCapsLock) && c.mode != ModeSearchActive {
		c.toggleCapsLock()
		return
	}

	switch c.mode {
	case ModeNormal:
		c.handleNormal(ev)
	case ModeSearchEntry:
		c.handleSearchEntry(ev)
	case ModeSearchActive:
		c.handleSearchActive(ev)
	}
}

func (c *Console) handleNormal(ev key.Event) {
	if !ev.Extended {
		c.text.Append(c.foldCase(ev.Char))
		return
	}

	switch ev.Key {
	case key.KeyEnter:
		c.text.Append('\n')
	case key.KeyTab:
		c.text.Append('\t')
	case key.KeyBackspace:
		c.text.Backspace()
	case key.KeyEscape:
		c.search.Reset()
		c.setMode(ModeSearchEntry)
	}
}

func (c *Console) handleSearchEntry(ev key.Event) {
	if !ev.Extended {
		c.search.Append(c.foldCase(ev.Char))
		return
	}

	switch ev.Key {
	case key.KeyEnter:
		c.setMode(ModeSearchActive)
	case key.KeyBackspace:
		c.search.Backspace()
	case key.KeyEscape:
		c.leaveSearch()
	}
}

func (c *Console) handleSearchActive(ev key.Event) {
	if ev.Is(key.KeyEscape) {
		c.leaveSearch()
	}
}

// leaveSearch discards the search string and returns to ModeNormal. The
// text is untouched.
func (c *Console) leaveSearch() {
	c.search.Reset()
	c.setMode(ModeNormal)
}
