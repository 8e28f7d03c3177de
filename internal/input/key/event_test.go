package key

import "testing"

func TestNewCharEvent(t *testing.T) {
	e := NewCharEvent('a')
	if e.Key != KeyRune {
		t.Errorf("NewCharEvent key = %v, want KeyRune", e.Key)
	}
	if e.Char != 'a' {
		t.Errorf("NewCharEvent char = %q, want 'a'", e.Char)
	}
	if e.Extended {
		t.Error("NewCharEvent should not be extended")
	}
	if !e.IsChar() {
		t.Error("NewCharEvent should be a char event")
	}
}

func TestEventIs(t *testing.T) {
	esc := NewSpecialEvent(KeyEscape)
	if !esc.Is(KeyEscape) {
		t.Error("extended escape should match KeyEscape")
	}
	if esc.Is(KeyEnter) {
		t.Error("escape should not match KeyEnter")
	}

	// A printable event never matches a control key, even with a
	// mismatched Key field.
	fake := Event{Key: KeyEscape, Char: 0x1b}
	if fake.Is(KeyEscape) {
		t.Error("non-extended event should not match KeyEscape")
	}
}

func TestFromRune(t *testing.T) {
	tests := []struct {
		r    rune
		ok   bool
		want byte
	}{
		{'a', true, 'a'},
		{'Z', true, 'Z'},
		{' ', true, ' '},
		{'~', true, '~'},
		{0, false, 0},
		{'世', false, 0},
		{'́', false, 0}, // combining accent
		{'\t', false, 0},
	}

	for _, tt := range tests {
		ev, ok := FromRune(tt.r)
		if ok != tt.ok {
			t.Errorf("FromRune(%q) ok = %v, want %v", tt.r, ok, tt.ok)
			continue
		}
		if ok && ev.Char != tt.want {
			t.Errorf("FromRune(%q) char = %q, want %q", tt.r, ev.Char, tt.want)
		}
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{NewCharEvent('x'), `'x'`},
		{NewCharEvent(' '), "Space"},
		{NewSpecialEvent(KeyTab), "Tab"},
		{Event{Key: KeyEnter, Extended: true, Modifiers: ModCtrl}, "Ctrl+Enter"},
	}

	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
