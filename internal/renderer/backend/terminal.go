package backend

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vgacon/internal/input/key"
	"github.com/dshills/vgacon/internal/renderer/core"
)

// Terminal implements Backend and KeySource using tcell.
// Terminals never report a Caps-Lock press, so Ctrl-L stands in for it.
// Ctrl-C ends the session.
type Terminal struct {
	screen tcell.Screen
	cols   int // width of the last drawn frame
	closed bool
	mu     sync.Mutex
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newTerminalWithScreen(screen), nil
}

// newTerminalWithScreen wraps an existing screen (a simulation screen in
// tests).
func newTerminalWithScreen(s tcell.Screen) *Terminal {
	return &Terminal{screen: s, cols: core.DefaultWidth}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.SetStyle(convertAttr(core.AttrDefault))
	t.screen.Clear()
	return nil
}

// Shutdown restores the terminal and wakes a blocked PollKey, which
// then returns ErrClosed. Later calls and draws do nothing.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.closed = true
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// Draw copies the frame to the screen. Cells outside the terminal are
// clipped; NUL glyphs are drawn as spaces.
func (t *Terminal) Draw(frame *core.Frame) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.cols = frame.Width
	for row := 0; row < frame.Height; row++ {
		for col := 0; col < frame.Width; col++ {
			c := frame.At(row, col)
			r := rune(c.Glyph)
			if r == 0 {
				r = ' '
			}
			t.screen.SetContent(col, row, r, nil, convertAttr(c.Attr))
		}
	}
}

func (t *Terminal) SetCursor(offset int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.screen.ShowCursor(offset%t.cols, offset/t.cols)
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.closed {
		t.screen.Show()
	}
}

// PollKey returns the next key the console understands. Resize events
// trigger a full repaint; other events are skipped. Cancelling ctx
// posts an interrupt event so a blocked poll returns ctx.Err().
func (t *Terminal) PollKey(ctx context.Context) (key.Event, error) {
	stop := context.AfterFunc(ctx, func() {
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		if err := ctx.Err(); err != nil {
			return key.Event{}, err
		}

		ev := t.screen.PollEvent()
		if ev == nil {
			return key.Event{}, ErrClosed
		}

		switch e := ev.(type) {
		case *tcell.EventKey:
			if e.Key() == tcell.KeyCtrlC {
				return key.Event{}, ErrInterrupt
			}
			if kev, ok := convertKey(e); ok {
				return kev, nil
			}
		case *tcell.EventResize:
			t.mu.Lock()
			if !t.closed {
				t.screen.Sync()
			}
			t.mu.Unlock()
		}
	}
}

// paletteColors maps text-mode colours to the terminal's 16-colour
// palette, which orders red and blue the other way round.
var paletteColors = [16]tcell.Color{
	core.ColorBlack:        tcell.ColorBlack,
	core.ColorBlue:         tcell.ColorNavy,
	core.ColorGreen:        tcell.ColorGreen,
	core.ColorCyan:         tcell.ColorTeal,
	core.ColorRed:          tcell.ColorMaroon,
	core.ColorMagenta:      tcell.ColorPurple,
	core.ColorBrown:        tcell.ColorOlive,
	core.ColorLightGray:    tcell.ColorSilver,
	core.ColorDarkGray:     tcell.ColorGray,
	core.ColorLightBlue:    tcell.ColorBlue,
	core.ColorLightGreen:   tcell.ColorLime,
	core.ColorLightCyan:    tcell.ColorAqua,
	core.ColorLightRed:     tcell.ColorRed,
	core.ColorLightMagenta: tcell.ColorFuchsia,
	core.ColorYellow:       tcell.ColorYellow,
	core.ColorWhite:        tcell.ColorWhite,
}

// convertAttr converts a text-mode attribute to a tcell style.
func convertAttr(a core.Attribute) tcell.Style {
	return tcell.StyleDefault.
		Foreground(paletteColors[a.Foreground()]).
		Background(paletteColors[a.Background()])
}

// convertKey converts a tcell key event to a console key event.
func convertKey(e *tcell.EventKey) (key.Event, bool) {
	var ev key.Event
	switch e.Key() {
	case tcell.KeyRune:
		var ok bool
		if ev, ok = key.FromRune(e.Rune()); !ok {
			return key.Event{}, false
		}
	case tcell.KeyEscape:
		ev = key.NewSpecialEvent(key.KeyEscape)
	case tcell.KeyEnter:
		ev = key.NewSpecialEvent(key.KeyEnter)
	case tcell.KeyTab:
		ev = key.NewSpecialEvent(key.KeyTab)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ev = key.NewSpecialEvent(key.KeyBackspace)
	case tcell.KeyCtrlL:
		ev = key.NewSpecialEvent(key.KeyCapsLock)
	case tcell.KeyUp:
		ev = key.NewSpecialEvent(key.KeyUp)
	case tcell.KeyDown:
		ev = key.NewSpecialEvent(key.KeyDown)
	case tcell.KeyLeft:
		ev = key.NewSpecialEvent(key.KeyLeft)
	case tcell.KeyRight:
		ev = key.NewSpecialEvent(key.KeyRight)
	default:
		if e.Key() >= tcell.KeyF1 && e.Key() <= tcell.KeyF12 {
			ev = key.NewSpecialEvent(key.KeyF1 + key.Key(e.Key()-tcell.KeyF1))
			break
		}
		return key.Event{}, false
	}
	ev.Modifiers = convertMod(e.Modifiers())
	return ev, true
}

// convertMod converts tcell modifiers to our Modifier type.
func convertMod(m tcell.ModMask) key.Modifier {
	var mod key.Modifier
	if m&tcell.ModShift != 0 {
		mod = mod.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mod = mod.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mod = mod.With(key.ModAlt)
	}
	return mod
}
