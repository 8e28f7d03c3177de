package renderer

import (
	"bytes"

	"github.com/dshills/vgacon/internal/renderer/core"
)

// View is the state a render reads.
type View struct {
	// Text is the logical text, already cut to its current length.
	Text []byte

	// Search is the current search string.
	Search []byte

	// Highlight enables match highlighting of Search within Text.
	Highlight bool

	// ShowSearch appends Search, highlighted, after the text.
	ShowSearch bool
}

// Options configures layout and colours.
type Options struct {
	Width         int
	Height        int
	TabWidth      int
	DefaultAttr   core.Attribute
	HighlightAttr core.Attribute
}

// DefaultOptions returns an 80x25 screen with 4-column tab stops.
func DefaultOptions() Options {
	return Options{
		Width:         core.DefaultWidth,
		Height:        core.DefaultHeight,
		TabWidth:      4,
		DefaultAttr:   core.AttrDefault,
		HighlightAttr: core.AttrHighlight,
	}
}

// layout tracks the write position while walking the text.
type layout struct {
	row, col      int
	width, height int
}

// wrap folds a column overflow into the following rows, and a row
// overflow back to the top. A tab stop can lie more than a row ahead.
func (l *layout) wrap() {
	for l.col >= l.width {
		l.col -= l.width
		l.row = (l.row + 1) % l.height
	}
}

func (l *layout) offset() int {
	return l.row*l.width + l.col
}

// Compose rebuilds f from v and returns the final write position, which
// is where the cursor belongs. f must be opts.Width x opts.Height.
func Compose(f *core.Frame, v View, opts Options) core.Position {
	f.Reset(opts.DefaultAttr)

	text := v.Text
	if i := bytes.IndexByte(text, 0); i >= 0 {
		text = text[:i]
	}

	l := layout{width: opts.Width, height: opts.Height}
	// cells[i] is the cell holding text[i], or -1 for bytes that only
	// move the write position.
	cells := make([]int, len(text))
	for i, c := range text {
		cells[i] = -1
		switch c {
		case '\n':
			l.row = (l.row + 1) % l.height
			l.col = 0
		case '\t':
			l.col += opts.TabWidth - l.col%opts.TabWidth
		default:
			cells[i] = l.offset()
			f.Cells[cells[i]].Glyph = c
			l.col++
		}
		l.wrap()
	}

	if v.Highlight {
		for _, start := range Matches(text, v.Search) {
			if cells[start] < 0 {
				continue
			}
			for _, off := range cells[start : start+len(v.Search)] {
				if off >= 0 {
					f.Cells[off].Attr = opts.HighlightAttr
				}
			}
		}
	}

	if v.ShowSearch {
		for _, c := range v.Search {
			f.Cells[l.offset()] = core.Cell{Glyph: c, Attr: opts.HighlightAttr}
			l.col++
			l.wrap()
		}
	}

	pos := core.Position{Row: l.row, Col: l.col}
	f.Cursor = pos.Offset(opts.Width)
	return pos
}

// Matches returns every index i where pattern occurs in text starting at
// i. Overlapping occurrences are all reported. An empty pattern matches
// nothing. Comparison is case-sensitive.
func Matches(text, pattern []byte) []int {
	if len(pattern) == 0 {
		return nil
	}
	var out []int
	for i := 0; i+len(pattern) <= len(text); i++ {
		if text[i] == pattern[0] && bytes.Equal(text[i:i+len(pattern)], pattern) {
			out = append(out, i)
		}
	}
	return out
}
