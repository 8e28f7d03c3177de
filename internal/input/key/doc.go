// Package key provides key event types for the console input path.
//
// A keyboard decoder delivers one Event per key press. Events come in two
// flavours:
//
//   - Printable: Key is KeyRune and Char holds the byte to insert.
//   - Extended: Extended is set and Key names a control key such as
//     KeyEscape, KeyEnter, KeyTab, KeyBackspace or KeyCapsLock.
//
// # Raw Codes
//
// Kernel keyboard drivers pass keys around as packed 32-bit codes: the
// low byte is the character, FlagExt marks a control key and the
// modifier flags live above it. Decode and Encode convert between that
// representation and Event:
//
//	ev := key.Decode(key.CodeEscape)
//	ev.Extended // true
//	ev.Key      // KeyEscape
//
// # Names
//
// Parse accepts the short names used by scripts: "esc", "enter", "tab",
// "backspace", "capslock", or any single printable character.
package key
