// Package terminal implements backend.Surface on a tcell screen.
package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-term/backend"
)

// Surface paints glyphs into a tcell screen. Colour indices 0-255 map to
// the palette; anything else uses the terminal default colour.
type Surface struct {
	screen  tcell.Screen
	palette [256]tcell.Color
	base    tcell.Style
	bold    bool
	saved   []bool
	cols    int
	rows    int
}

var (
	_ backend.Surface = (*Surface)(nil)
	_ backend.Flusher = (*Surface)(nil)
)

// New opens the controlling terminal.
func New() (*Surface, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen wraps an initialised screen.
func NewWithScreen(screen tcell.Screen) *Surface {
	s := &Surface{
		screen: screen,
		base:   tcell.StyleDefault,
	}
	for i := range s.palette {
		s.palette[i] = tcell.PaletteColor(i)
	}
	s.cols, s.rows = screen.Size()
	screen.HideCursor()
	return s
}

// SetPalette overrides palette entries. Values are colour names or #rrggbb.
func (s *Surface) SetPalette(overrides map[int]string) error {
	for idx, name := range overrides {
		if idx < 0 || idx >= len(s.palette) {
			return fmt.Errorf("palette index %d out of range", idx)
		}
		c := tcell.GetColor(name)
		if c == tcell.ColorDefault {
			return fmt.Errorf("palette index %d: unknown colour %q", idx, name)
		}
		s.palette[idx] = c
	}
	return nil
}

// Color returns the tcell colour for a palette index.
func (s *Surface) Color(index int) tcell.Color {
	if index < 0 || index >= len(s.palette) {
		return tcell.ColorDefault
	}
	return s.palette[index]
}

// Screen exposes the wrapped screen for event handling.
func (s *Surface) Screen() tcell.Screen {
	return s.screen
}

// Size returns the current screen size.
func (s *Surface) Size() (cols, rows int) {
	return s.screen.Size()
}

// PollEvent waits for the next screen event.
func (s *Surface) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Show flushes pending changes to the terminal.
func (s *Surface) Show() {
	s.screen.Show()
}

// Fini restores the terminal.
func (s *Surface) Fini() {
	s.screen.Fini()
}

// Resize records the drawable grid size. A metrics change forces a full
// repaint of the physical terminal on the next Show.
func (s *Surface) Resize(cols, rows int, metricsChanged bool) {
	s.cols, s.rows = max(cols, 0), max(rows, 0)
	if metricsChanged {
		s.screen.Sync()
	}
}

// ClearAll erases the whole screen.
func (s *Surface) ClearAll() {
	s.screen.Clear()
}

// ClearRegion fills a block with blanks in the base style.
func (s *Surface) ClearRegion(col, row, width, height int) {
	for y := max(row, 0); y < min(row+height, s.rows); y++ {
		for x := max(col, 0); x < min(col+width, s.cols); x++ {
			s.screen.SetContent(x, y, ' ', nil, s.base)
		}
	}
}

// PaintGlyph draws ch. Runes after the first are passed as combining marks.
func (s *Surface) PaintGlyph(ch string, fg int, col, row int) {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return
	}
	runes := []rune(ch)
	if len(runes) == 0 {
		return
	}
	style := s.base.Foreground(s.Color(fg)).Bold(s.bold)
	s.screen.SetContent(col, row, runes[0], runes[1:], style)
}

// Save pushes the font state.
func (s *Surface) Save() {
	s.saved = append(s.saved, s.bold)
}

// Restore pops the font state. Unbalanced calls are ignored.
func (s *Surface) Restore() {
	if len(s.saved) == 0 {
		return
	}
	s.bold = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

// SetFontVariant selects the bold attribute for later paints.
func (s *Surface) SetFontVariant(v backend.FontVariant) {
	s.bold = v == backend.FontBold
}
