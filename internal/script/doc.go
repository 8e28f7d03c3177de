// Package script drives a console from Lua.
//
// A script sees a small global API:
//
//	type(s)      send each character of s as a key press
//	key(name)    send a named key ("esc", "enter", "f1", "a")
//	raw(code)    send a packed raw keyboard code
//	idle()       fire the idle clearer once
//	mode()       current mode name
//	text()       current text
//	search()     current search string
//	caps()       Caps-Lock flag
//	line(row)    screen row (0-based) as a string
//	cursor()     cursor row and column (0-based)
//
// The Lua state is sandboxed: only the base, table, string and math
// libraries are opened and the file loaders are removed.
package script
