// Package screenshot renders a console frame to an image.
package screenshot

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/dshills/vgacon/internal/renderer/core"
)

// Config controls how a frame is rendered.
type Config struct {
	// Font is the glyph face. Nil uses basicfont.Face7x13.
	Font font.Face

	// CellWidth and CellHeight override the cell size. Zero derives
	// it from the font metrics.
	CellWidth  int
	CellHeight int

	// HideCursor suppresses the cursor underline.
	HideCursor bool
}

// Image renders f using the 16-colour VGA palette. The cursor is drawn
// as a two-pixel underline in the foreground colour of its cell.
func Image(f *core.Frame, cfg Config) *image.RGBA {
	face := cfg.Font
	if face == nil {
		face = basicfont.Face7x13
	}
	metrics := face.Metrics()

	cellWidth := cfg.CellWidth
	if cellWidth == 0 {
		adv, _ := face.GlyphAdvance('M')
		cellWidth = adv.Ceil()
		if cellWidth == 0 {
			cellWidth = 7
		}
	}
	cellHeight := cfg.CellHeight
	if cellHeight == 0 {
		cellHeight = metrics.Height.Ceil()
	}
	ascent := metrics.Ascent.Ceil()

	img := image.NewRGBA(image.Rect(0, 0, f.Width*cellWidth, f.Height*cellHeight))
	d := &font.Drawer{Dst: img, Face: face}

	for i, cell := range f.Cells {
		pos := core.PositionOf(i, f.Width)
		x, y := pos.Col*cellWidth, pos.Row*cellHeight
		rect := image.Rect(x, y, x+cellWidth, y+cellHeight)

		draw.Draw(img, rect, image.NewUniform(rgba(cell.Attr.Background())), image.Point{}, draw.Src)

		if cell.Glyph == 0 || cell.Glyph == ' ' {
			continue
		}
		d.Src = image.NewUniform(rgba(cell.Attr.Foreground()))
		d.Dot = fixed.P(x, y+ascent)
		d.DrawString(glyph(cell.Glyph))
	}

	if !cfg.HideCursor && f.Cursor >= 0 && f.Cursor < f.Len() {
		pos := f.CursorPosition()
		fg := rgba(f.Cells[f.Cursor].Attr.Foreground())
		x, y := pos.Col*cellWidth, (pos.Row+1)*cellHeight
		draw.Draw(img, image.Rect(x, y-2, x+cellWidth, y), image.NewUniform(fg), image.Point{}, draw.Src)
	}

	return img
}

// PNG renders f and writes it to w as a PNG.
func PNG(w io.Writer, f *core.Frame, cfg Config) error {
	return png.Encode(w, Image(f, cfg))
}

func rgba(c core.Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// glyph maps a code page byte to a string the font can draw. Bytes
// outside printable ASCII are shown as '?'.
func glyph(b byte) string {
	if b < 0x20 || b > 0x7E {
		return "?"
	}
	return string(rune(b))
}
