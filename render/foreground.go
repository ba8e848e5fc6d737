// Package render implements the foreground glyph layer of a character grid.
//
// The layer keeps a record of every cell it last drew and, on each pass,
// only clears and repaints the cells whose character or attribute word
// changed since then.
package render

import (
	"log/slog"

	"github.com/odvcencio/furry-term/backend"
	"github.com/odvcencio/furry-term/cell"
	"github.com/odvcencio/furry-term/grid"
)

// GridBuffer is the authoritative source of cell content.
type GridBuffer interface {
	// DisplayOffset returns the absolute row shown at the top of the viewport.
	DisplayOffset() int

	// CellAt returns the content at an absolute row and column.
	// A wide glyph is a Width 2 leader followed by a Width 0 follower.
	// A Width 0 cell that does not follow a leader is drawn as a blank.
	CellAt(row, col int) cell.Content
}

// Stats counts what a single Render call did.
type Stats struct {
	Rows      int
	Compared  int
	Unchanged int
	Cleared   int
	Painted   int
	Bold      int
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Rows += other.Rows
	s.Compared += other.Compared
	s.Unchanged += other.Unchanged
	s.Cleared += other.Cleared
	s.Painted += other.Painted
	s.Bold += other.Bold
}

// Option configures a Foreground layer.
type Option func(*Foreground)

// WithLogger sets the logger used for resize and reset tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Foreground) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Foreground draws glyphs to a surface, skipping cells that already show
// the right content. It must be driven from a single goroutine.
type Foreground struct {
	surface backend.Surface
	state   *grid.Cache
	logger  *slog.Logger
}

// New creates a foreground layer drawing to surface.
// Call Resize before the first Render.
func New(surface backend.Surface, opts ...Option) *Foreground {
	f := &Foreground{
		surface: surface,
		state:   grid.New(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Size returns the grid dimensions of the last Resize.
func (f *Foreground) Size() (cols, rows int) {
	return f.state.Size()
}

// Resize resizes the surface and discards all recorded cell state.
func (f *Foreground) Resize(cols, rows int, metricsChanged bool) {
	f.surface.Resize(cols, rows, metricsChanged)
	f.state.Resize(cols, rows)
	f.logger.Debug("foreground resized", "cols", cols, "rows", rows, "metrics_changed", metricsChanged)
}

// Reset forgets what was drawn and clears the surface, so the next Render
// repaints every cell.
func (f *Foreground) Reset() {
	f.state.Clear()
	f.surface.ClearAll()
	f.logger.Debug("foreground reset")
}

// Render brings rows startRow through endRow (inclusive, viewport
// relative) up to date with buf.
func (f *Foreground) Render(buf GridBuffer, startRow, endRow int) Stats {
	var stats Stats
	cols, _ := f.state.Size()
	offset := buf.DisplayOffset()

	for y := startRow; y <= endRow; y++ {
		row := y + offset
		stats.Rows++
		// covered reports that the previous column's wide leader cleared x.
		covered := false
		for x := 0; x < cols; x++ {
			content := buf.CellAt(row, x)
			stats.Compared++
			wasCovered := covered
			covered = false

			if prev, ok := f.state.Get(x, y); ok && prev.Same(content) {
				// Keep the freshest value; the buffer may have rebuilt it.
				f.state.Set(x, y, content)
				stats.Unchanged++
				continue
			}
			f.state.Set(x, y, content)

			if content.Follower() && wasCovered {
				continue
			}

			width := 1
			if content.Width == 2 && x+1 < cols {
				width = 2
				covered = true
				// The clear erases the next column, so it must be redrawn
				// unless it is this glyph's follower.
				f.state.Invalidate(x+1, y)
			}
			f.surface.ClearRegion(x, y, width, 1)
			stats.Cleared++

			if content.Blank() {
				continue
			}

			fg, bold := cell.ResolveForeground(content.Attr)
			variant := backend.FontRegular
			if bold {
				variant = backend.FontBold
				stats.Bold++
			}
			f.paint(content.Char, fg, x, y, variant)
			stats.Painted++
		}
	}
	return stats
}

func (f *Foreground) paint(ch string, fg, x, y int, variant backend.FontVariant) {
	backend.Paint(f.surface, variant, func() {
		f.surface.PaintGlyph(ch, fg, x, y)
	})
}
