// Package cell defines the content of a single grid cell and the packed
// attribute word the grid buffer stores alongside it.
package cell

// Content is what a grid cell displays.
type Content struct {
	// Char is the rendered unit. It may hold a base rune followed by
	// combining marks. Empty for the follower half of a wide glyph.
	Char string

	// Code is the code point of the base rune. 0 means no character.
	Code rune

	// Attr is the packed attribute word.
	Attr Attr

	// Width is the number of columns the glyph occupies:
	// 0 for a wide-glyph follower, 1 for normal, 2 for wide.
	Width int
}

// Blank is the content of an empty cell with default attributes.
var Blank = Content{Char: " ", Code: ' ', Attr: DefaultAttr, Width: 1}

// New returns single-width content for r.
func New(r rune, attr Attr) Content {
	return Content{Char: string(r), Code: r, Attr: attr, Width: 1}
}

// Same reports whether c and other draw identically.
// Code and Width follow from Char and are not compared.
func (c Content) Same(other Content) bool {
	return c.Char == other.Char && c.Attr == other.Attr
}

// Blank reports whether c has no visible glyph.
func (c Content) Blank() bool {
	return c.Code == 0 || c.Code == ' '
}

// Follower reports whether c is the right half of a wide glyph.
func (c Content) Follower() bool {
	return c.Width == 0
}

// Follower returns the placeholder stored to the right of a wide glyph.
func Follower(attr Attr) Content {
	return Content{Attr: attr}
}
