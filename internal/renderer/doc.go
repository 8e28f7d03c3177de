// Package renderer turns the console's text state into a screen of cells.
//
// Rendering is a full rebuild: every call starts from a blank frame,
// lays the text out, applies search highlighting, appends the pending
// search string and hands the frame to a backend. Nothing is patched
// incrementally.
//
// Layout rules:
//   - '\n' moves to column 0 of the next row.
//   - '\t' advances to the next multiple of the tab width.
//   - Any other byte is placed as a glyph and advances one column.
//   - A column past the right edge wraps to the next row; a row past the
//     bottom wraps to the top. There is no scrolling.
//
// Usage:
//
//	r := renderer.New(backend.NewNullBackend(80, 25), renderer.DefaultOptions())
//	r.Render(renderer.View{Text: []byte("hello")})
//	r.Frame().Line(0) // "hello"
package renderer
