// Package backend defines the drawing surface a render layer paints to.
package backend

// FontVariant selects the font used for a glyph paint.
type FontVariant int

const (
	FontRegular FontVariant = iota
	FontBold
)

// String returns the variant name.
func (v FontVariant) String() string {
	switch v {
	case FontRegular:
		return "regular"
	case FontBold:
		return "bold"
	default:
		return "unknown"
	}
}

// Surface is the primitive drawing target of a layer.
// Coordinates are in grid cells.
type Surface interface {
	// Resize adapts the backing surface to a new grid size.
	// metricsChanged reports that the glyph cell size changed as well.
	Resize(cols, rows int, metricsChanged bool)

	// ClearAll erases the whole surface.
	ClearAll()

	// ClearRegion erases a width x height block of cells.
	ClearRegion(col, row, width, height int)

	// PaintGlyph draws ch at (col, row) using the given foreground
	// colour index and the current font state.
	PaintGlyph(ch string, fg int, col, row int)

	// Save pushes the current font state.
	Save()

	// Restore pops the state pushed by the matching Save.
	Restore()

	// SetFontVariant changes the font for subsequent paints until the
	// next Restore.
	SetFontVariant(v FontVariant)
}

// Paint runs body inside a saved font state with variant v applied.
// The state is restored when body returns or panics.
func Paint(s Surface, v FontVariant, body func()) {
	s.Save()
	defer s.Restore()
	if v != FontRegular {
		s.SetFontVariant(v)
	}
	body()
}
