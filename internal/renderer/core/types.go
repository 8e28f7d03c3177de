// Package core provides shared types for the renderer subsystem.
// This package breaks import cycles between renderer and backend.
package core

import (
	"fmt"
	"strings"
)

// Default display geometry of a colour text-mode screen.
const (
	DefaultWidth  = 80
	DefaultHeight = 25
)

// Color is one of the 16 text-mode palette entries.
type Color uint8

// Text-mode palette.
const (
	ColorBlack Color = iota
	ColorBlue
	ColorGreen
	ColorCyan
	ColorRed
	ColorMagenta
	ColorBrown
	ColorLightGray
	ColorDarkGray
	ColorLightBlue
	ColorLightGreen
	ColorLightCyan
	ColorLightRed
	ColorLightMagenta
	ColorYellow
	ColorWhite
)

// RGB returns the conventional RGB value of the palette entry.
func (c Color) RGB() (r, g, b uint8) {
	p := palette[c&0x0F]
	return p[0], p[1], p[2]
}

var palette = [16][3]uint8{
	{0x00, 0x00, 0x00}, {0x00, 0x00, 0xAA}, {0x00, 0xAA, 0x00}, {0x00, 0xAA, 0xAA},
	{0xAA, 0x00, 0x00}, {0xAA, 0x00, 0xAA}, {0xAA, 0x55, 0x00}, {0xAA, 0xAA, 0xAA},
	{0x55, 0x55, 0x55}, {0x55, 0x55, 0xFF}, {0x55, 0xFF, 0x55}, {0x55, 0xFF, 0xFF},
	{0xFF, 0x55, 0x55}, {0xFF, 0x55, 0xFF}, {0xFF, 0xFF, 0x55}, {0xFF, 0xFF, 0xFF},
}

// Attribute is the colour byte paired with a glyph: background in the
// high nibble, foreground in the low nibble.
type Attribute uint8

const (
	// AttrDefault is bright white on black.
	AttrDefault Attribute = 0x0F

	// AttrHighlight marks search matches: bright red on black.
	AttrHighlight Attribute = 0x0C
)

// NewAttribute packs a foreground and background colour.
func NewAttribute(fg, bg Color) Attribute {
	return Attribute(bg&0x0F)<<4 | Attribute(fg&0x0F)
}

// Foreground returns the foreground colour.
func (a Attribute) Foreground() Color {
	return Color(a & 0x0F)
}

// Background returns the background colour.
func (a Attribute) Background() Color {
	return Color(a>>4) & 0x0F
}

// String returns the attribute as a hex byte.
func (a Attribute) String() string {
	return fmt.Sprintf("%#04x", uint8(a))
}

// Cell is one screen position: a glyph byte and its attribute.
type Cell struct {
	Glyph byte
	Attr  Attribute
}

// EmptyCell returns a blank cell with the given attribute.
func EmptyCell(attr Attribute) Cell {
	return Cell{Attr: attr}
}

// Position is a zero-based (row, col) screen coordinate.
type Position struct {
	Row int
	Col int
}

// Offset returns the linear cell index row*width+col.
func (p Position) Offset(width int) int {
	return p.Row*width + p.Col
}

// PositionOf converts a linear cell index back to a Position.
func PositionOf(offset, width int) Position {
	return Position{Row: offset / width, Col: offset % width}
}

// Frame is a full screen of cells plus the cursor offset.
// Frames are rebuilt from scratch on every render.
type Frame struct {
	Width  int
	Height int
	Cells  []Cell
	Cursor int
}

// NewFrame allocates a frame of the given size with every cell blank.
func NewFrame(width, height int, attr Attribute) *Frame {
	f := &Frame{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height),
	}
	f.Reset(attr)
	return f
}

// Reset blanks every cell with the given attribute and homes the cursor.
func (f *Frame) Reset(attr Attribute) {
	empty := EmptyCell(attr)
	for i := range f.Cells {
		f.Cells[i] = empty
	}
	f.Cursor = 0
}

// Len returns the number of cells.
func (f *Frame) Len() int {
	return len(f.Cells)
}

// At returns the cell at (row, col).
// Out-of-range coordinates return the zero Cell.
func (f *Frame) At(row, col int) Cell {
	if row < 0 || row >= f.Height || col < 0 || col >= f.Width {
		return Cell{}
	}
	return f.Cells[row*f.Width+col]
}

// Set replaces the cell at (row, col). Out-of-range writes are ignored.
func (f *Frame) Set(row, col int, c Cell) {
	if row < 0 || row >= f.Height || col < 0 || col >= f.Width {
		return
	}
	f.Cells[row*f.Width+col] = c
}

// CursorPosition returns the cursor as a (row, col) pair.
func (f *Frame) CursorPosition() Position {
	return PositionOf(f.Cursor, f.Width)
}

// Bytes returns the frame in display memory layout: glyph and attribute
// interleaved, Width*Height*2 bytes.
func (f *Frame) Bytes() []byte {
	b := make([]byte, 0, len(f.Cells)*2)
	for _, c := range f.Cells {
		b = append(b, c.Glyph, byte(c.Attr))
	}
	return b
}

// Line returns the glyphs of a row as a string with NUL cells shown as
// spaces and trailing blanks trimmed.
func (f *Frame) Line(row int) string {
	if row < 0 || row >= f.Height {
		return ""
	}
	var sb strings.Builder
	for _, c := range f.Cells[row*f.Width : (row+1)*f.Width] {
		if c.Glyph == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteByte(c.Glyph)
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

// String returns all rows joined by newlines, with trailing empty rows
// dropped.
func (f *Frame) String() string {
	lines := make([]string, f.Height)
	for row := range lines {
		lines[row] = f.Line(row)
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// CellsWith returns the offsets of every cell carrying attr, in order.
func (f *Frame) CellsWith(attr Attribute) []int {
	var out []int
	for i, c := range f.Cells {
		if c.Attr == attr {
			out = append(out, i)
		}
	}
	return out
}
