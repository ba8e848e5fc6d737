package cell

import "strings"

// Attr is the packed attribute word shared with the grid buffer.
//
// Layout:
//
//	bits [0,8]   background colour index
//	bits [9,17]  foreground colour index
//	bits [18,…]  flag set
//
// Colour indices are 9 bits wide so the palette can hold more than 256
// entries plus the default-colour sentinels.
type Attr uint32

const (
	colorBits  = 9
	colorMask  = 1<<colorBits - 1
	fgShift    = colorBits
	flagsShift = 2 * colorBits
)

// Default colour sentinels.
const (
	DefaultFG = 256
	DefaultBG = 257
)

// DefaultAttr is the attribute word of an unstyled cell.
const DefaultAttr = Attr(DefaultFG<<fgShift | DefaultBG)

// Flags is the style flag set stored above bit 17 of an Attr.
type Flags uint32

const (
	Bold Flags = 1 << iota
	Underline
	Blink
	Inverse
	Invisible
	Dim
	Italic
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{Bold, "bold"},
	{Underline, "underline"},
	{Blink, "blink"},
	{Inverse, "inverse"},
	{Invisible, "invisible"},
	{Dim, "dim"},
	{Italic, "italic"},
}

// Has reports whether every flag in f is set.
func (fl Flags) Has(f Flags) bool {
	return fl&f == f
}

// String returns a human-readable representation of the flag set.
func (fl Flags) String() string {
	if fl == 0 {
		return "none"
	}
	var parts []string
	for _, entry := range flagNames {
		if fl&entry.flag != 0 {
			parts = append(parts, entry.name)
		}
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, "|")
}

// MakeAttr packs colours and flags into an attribute word.
// Colour indices are masked to 9 bits.
func MakeAttr(fg, bg int, flags Flags) Attr {
	return Attr(uint32(flags)<<flagsShift |
		uint32(fg&colorMask)<<fgShift |
		uint32(bg&colorMask))
}

// Background returns bits [0,8].
func (a Attr) Background() int {
	return int(a & colorMask)
}

// Foreground returns bits [9,17].
func (a Attr) Foreground() int {
	return int(a>>fgShift) & colorMask
}

// Flags returns the bits above 17.
func (a Attr) Flags() Flags {
	return Flags(a >> flagsShift)
}

// WithForeground returns a copy of a with the foreground index replaced.
func (a Attr) WithForeground(fg int) Attr {
	return MakeAttr(fg, a.Background(), a.Flags())
}

// WithBackground returns a copy of a with the background index replaced.
func (a Attr) WithBackground(bg int) Attr {
	return MakeAttr(a.Foreground(), bg, a.Flags())
}

// WithFlags returns a copy of a with f added to its flag set.
func (a Attr) WithFlags(f Flags) Attr {
	return MakeAttr(a.Foreground(), a.Background(), a.Flags()|f)
}

// ResolveForeground returns the colour index a glyph is painted with and
// whether the bold font variant applies.
//
// Under inverse video the background index is used instead, with the
// default-background sentinel mapped to index 0. Bold promotes the eight
// standard colours to their bright variants.
func ResolveForeground(a Attr) (fg int, bold bool) {
	flags := a.Flags()
	fg = a.Foreground()
	if flags&Inverse != 0 {
		fg = a.Background()
		if fg == DefaultBG {
			fg = 0
		}
	}
	if flags&Bold != 0 {
		bold = true
		if fg < 8 {
			fg += 8
		}
	}
	return fg, bold
}
