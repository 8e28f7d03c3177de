package key

import "testing"

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyNone, "None"},
		{KeyEscape, "Escape"},
		{KeyEnter, "Enter"},
		{KeyCapsLock, "CapsLock"},
		{KeyF1, "F1"},
		{KeyF12, "F12"},
		{KeyRune, "Rune"},
		{Key(999), "Key(999)"},
	}

	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("Key(%d).String() = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestKeyIsSpecial(t *testing.T) {
	if KeyRune.IsSpecial() {
		t.Error("KeyRune should not be special")
	}
	if KeyNone.IsSpecial() {
		t.Error("KeyNone should not be special")
	}
	if !KeyBackspace.IsSpecial() {
		t.Error("KeyBackspace should be special")
	}
	if !KeyLeft.IsArrowKey() || KeyF3.IsArrowKey() {
		t.Error("IsArrowKey misclassified")
	}
}
