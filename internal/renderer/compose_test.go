package renderer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/vgacon/internal/renderer/core"
)

func compose(t *testing.T, v View) (*core.Frame, core.Position) {
	t.Helper()
	opts := DefaultOptions()
	f := core.NewFrame(opts.Width, opts.Height, opts.DefaultAttr)
	pos := Compose(f, v, opts)
	return f, pos
}

func TestComposeEmpty(t *testing.T) {
	f, pos := compose(t, View{})

	for i, c := range f.Cells {
		if c != (core.Cell{Glyph: 0, Attr: core.AttrDefault}) {
			t.Fatalf("cell %d = %+v, want blank", i, c)
		}
	}
	if pos != (core.Position{}) || f.Cursor != 0 {
		t.Errorf("cursor = %+v/%d, want origin", pos, f.Cursor)
	}
}

func TestComposePlainText(t *testing.T) {
	f, pos := compose(t, View{Text: []byte("hello")})

	if got := f.Line(0); got != "hello" {
		t.Errorf("Line(0) = %q, want %q", got, "hello")
	}
	if pos != (core.Position{Row: 0, Col: 5}) {
		t.Errorf("cursor = %+v, want (0,5)", pos)
	}
	if f.Cursor != 5 {
		t.Errorf("frame cursor = %d, want 5", f.Cursor)
	}
}

func TestComposeNewline(t *testing.T) {
	f, pos := compose(t, View{Text: []byte("ab\ncd\n")})

	if f.Line(0) != "ab" || f.Line(1) != "cd" {
		t.Errorf("lines = %q, %q", f.Line(0), f.Line(1))
	}
	if pos != (core.Position{Row: 2, Col: 0}) {
		t.Errorf("cursor = %+v, want (2,0)", pos)
	}
}

func TestComposeTabStops(t *testing.T) {
	tests := []struct {
		text    string
		wantCol int
		line    string
	}{
		{"\t", 4, ""},
		{"a\t", 4, "a"},
		{"abc\t", 4, "abc"},
		{"abcd\t", 8, "abcd"},
		{"a\tb", 5, "a   b"},
		{"\t\t", 8, ""},
	}

	for _, tt := range tests {
		f, pos := compose(t, View{Text: []byte(tt.text)})
		if pos.Col != tt.wantCol || pos.Row != 0 {
			t.Errorf("%q: cursor = %+v, want (0,%d)", tt.text, pos, tt.wantCol)
		}
		if got := f.Line(0); got != tt.line {
			t.Errorf("%q: Line(0) = %q, want %q", tt.text, got, tt.line)
		}
	}
}

func TestComposeTabWrapsAtRightEdge(t *testing.T) {
	text := strings.Repeat("x", 78) + "\t"
	_, pos := compose(t, View{Text: []byte(text)})
	if pos != (core.Position{Row: 1, Col: 0}) {
		t.Errorf("cursor = %+v, want (1,0)", pos)
	}
}

func TestComposeTabWiderThanScreen(t *testing.T) {
	opts := Options{Width: 2, Height: 3, TabWidth: 4, DefaultAttr: core.AttrDefault, HighlightAttr: core.AttrHighlight}
	f := core.NewFrame(opts.Width, opts.Height, opts.DefaultAttr)

	pos := Compose(f, View{Text: []byte("\tx")}, opts)

	if f.Cells[4].Glyph != 'x' {
		t.Errorf("glyph after tab landed in %q, want 'x' at cell 4", f.Bytes())
	}
	if pos != (core.Position{Row: 2, Col: 1}) {
		t.Errorf("cursor = %+v, want (2,1)", pos)
	}

	// One row: the tab laps the screen and lands back at the origin.
	opts.Height = 1
	f = core.NewFrame(opts.Width, opts.Height, opts.DefaultAttr)
	pos = Compose(f, View{Text: []byte("\tx")}, opts)
	if f.Cells[0].Glyph != 'x' || pos != (core.Position{Row: 0, Col: 1}) {
		t.Errorf("cells %+v cursor %+v", f.Cells, pos)
	}
}

func TestComposeColumnWrap(t *testing.T) {
	text := strings.Repeat("a", 80) + "b"
	f, pos := compose(t, View{Text: []byte(text)})

	if got := f.Line(0); got != strings.Repeat("a", 80) {
		t.Errorf("Line(0) = %q", got)
	}
	if got := f.Line(1); got != "b" {
		t.Errorf("Line(1) = %q, want %q", got, "b")
	}
	if pos != (core.Position{Row: 1, Col: 1}) {
		t.Errorf("cursor = %+v, want (1,1)", pos)
	}
}

func TestComposeRowWrapOverwritesTop(t *testing.T) {
	// 25 newlines bring the write position back to row 0.
	text := "top" + strings.Repeat("\n", 25) + "X"
	f, pos := compose(t, View{Text: []byte(text)})

	if got := f.Line(0); got != "Xop" {
		t.Errorf("Line(0) = %q, want %q", got, "Xop")
	}
	if pos != (core.Position{Row: 0, Col: 1}) {
		t.Errorf("cursor = %+v, want (0,1)", pos)
	}
}

func TestComposeFullScreenWrapsCursorToOrigin(t *testing.T) {
	text := strings.Repeat("z", 80*25)
	_, pos := compose(t, View{Text: []byte(text)})
	if pos != (core.Position{}) {
		t.Errorf("cursor = %+v, want origin", pos)
	}
}

func TestComposeStopsAtNUL(t *testing.T) {
	f, pos := compose(t, View{Text: []byte{'a', 'b', 0, 'c'}})
	if got := f.Line(0); got != "ab" {
		t.Errorf("Line(0) = %q, want %q", got, "ab")
	}
	if pos.Col != 2 {
		t.Errorf("cursor col = %d, want 2", pos.Col)
	}
}

func TestComposeHighlight(t *testing.T) {
	f, _ := compose(t, View{
		Text:      []byte("xabc"),
		Search:    []byte("ab"),
		Highlight: true,
	})

	if diff := cmp.Diff([]int{1, 2}, f.CellsWith(core.AttrHighlight)); diff != "" {
		t.Errorf("highlighted cells mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeHighlightOverlapping(t *testing.T) {
	f, _ := compose(t, View{
		Text:      []byte("aaa"),
		Search:    []byte("aa"),
		Highlight: true,
	})

	if diff := cmp.Diff([]int{0, 1, 2}, f.CellsWith(core.AttrHighlight)); diff != "" {
		t.Errorf("highlighted cells mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeHighlightIsCaseSensitive(t *testing.T) {
	f, _ := compose(t, View{
		Text:      []byte("Abc abc"),
		Search:    []byte("abc"),
		Highlight: true,
	})

	if diff := cmp.Diff([]int{4, 5, 6}, f.CellsWith(core.AttrHighlight)); diff != "" {
		t.Errorf("highlighted cells mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeHighlightEmptySearch(t *testing.T) {
	f, _ := compose(t, View{Text: []byte("anything"), Highlight: true})
	if got := f.CellsWith(core.AttrHighlight); len(got) != 0 {
		t.Errorf("highlighted = %v, want none", got)
	}
}

func TestComposeHighlightBoundedByText(t *testing.T) {
	// "ab" at the very end of the text: a window running past the text
	// must not match.
	f, _ := compose(t, View{Text: []byte("xxa"), Search: []byte("ab"), Highlight: true})
	if got := f.CellsWith(core.AttrHighlight); len(got) != 0 {
		t.Errorf("highlighted = %v, want none", got)
	}
}

func TestComposeHighlightFollowsLayout(t *testing.T) {
	// A match that straddles the right edge highlights the cells where
	// the characters actually landed.
	text := strings.Repeat(".", 79) + "ab"
	f, _ := compose(t, View{Text: []byte(text), Search: []byte("ab"), Highlight: true})

	if diff := cmp.Diff([]int{79, 80}, f.CellsWith(core.AttrHighlight)); diff != "" {
		t.Errorf("highlighted cells mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeHighlightDisabled(t *testing.T) {
	f, _ := compose(t, View{Text: []byte("xabc"), Search: []byte("ab")})
	if got := f.CellsWith(core.AttrHighlight); len(got) != 0 {
		t.Errorf("highlighted = %v, want none when highlighting is off", got)
	}
}

func TestComposeShowSearch(t *testing.T) {
	f, pos := compose(t, View{
		Text:       []byte("hi\n"),
		Search:     []byte("qu"),
		ShowSearch: true,
	})

	if got := f.Line(1); got != "qu" {
		t.Errorf("Line(1) = %q, want %q", got, "qu")
	}
	if diff := cmp.Diff([]int{80, 81}, f.CellsWith(core.AttrHighlight)); diff != "" {
		t.Errorf("highlighted cells mismatch (-want +got):\n%s", diff)
	}
	if pos != (core.Position{Row: 1, Col: 2}) {
		t.Errorf("cursor = %+v, want (1,2)", pos)
	}
}

func TestComposeShowSearchWraps(t *testing.T) {
	text := strings.Repeat("t", 79)
	f, pos := compose(t, View{Text: []byte(text), Search: []byte("xy"), ShowSearch: true})

	if f.At(0, 79).Glyph != 'x' || f.At(1, 0).Glyph != 'y' {
		t.Errorf("search glyphs at (0,79)=%q (1,0)=%q", f.At(0, 79).Glyph, f.At(1, 0).Glyph)
	}
	if pos != (core.Position{Row: 1, Col: 1}) {
		t.Errorf("cursor = %+v, want (1,1)", pos)
	}
}

func TestComposeRebuildsFromScratch(t *testing.T) {
	opts := DefaultOptions()
	f := core.NewFrame(opts.Width, opts.Height, opts.DefaultAttr)
	Compose(f, View{Text: []byte("longer text"), Search: []byte("text"), Highlight: true}, opts)
	Compose(f, View{Text: []byte("ab")}, opts)

	if got := f.Line(0); got != "ab" {
		t.Errorf("Line(0) = %q, want %q", got, "ab")
	}
	if got := f.CellsWith(core.AttrHighlight); len(got) != 0 {
		t.Errorf("stale highlight at %v", got)
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		text, pattern string
		want          []int
	}{
		{"xabc", "ab", []int{1}},
		{"aaa", "aa", []int{0, 1}},
		{"aaaa", "a", []int{0, 1, 2, 3}},
		{"abc", "", nil},
		{"ab", "abc", nil},
		{"abab", "ab", []int{0, 2}},
	}

	for _, tt := range tests {
		got := Matches([]byte(tt.text), []byte(tt.pattern))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Matches(%q, %q) mismatch (-want +got):\n%s", tt.text, tt.pattern, diff)
		}
	}
}
