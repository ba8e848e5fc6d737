// Package sim provides an in-memory drawing surface that records every call.
// It is intended for tests.
package sim

import (
	"fmt"

	"github.com/odvcencio/furry-term/backend"
)

// OpKind identifies a recorded surface call.
type OpKind int

const (
	OpResize OpKind = iota
	OpClearAll
	OpClear
	OpPaint
)

// String returns the op name.
func (k OpKind) String() string {
	switch k {
	case OpResize:
		return "resize"
	case OpClearAll:
		return "clear-all"
	case OpClear:
		return "clear"
	case OpPaint:
		return "paint"
	default:
		return "unknown"
	}
}

// Op is one recorded call.
type Op struct {
	Kind    OpKind
	Col     int
	Row     int
	Width   int
	Height  int
	Char    string
	FG      int
	Variant backend.FontVariant
	Metrics bool
}

// String formats the op for test failure messages.
func (o Op) String() string {
	switch o.Kind {
	case OpResize:
		return fmt.Sprintf("resize(%d,%d,%v)", o.Width, o.Height, o.Metrics)
	case OpClear:
		return fmt.Sprintf("clear(%d,%d,%d,%d)", o.Col, o.Row, o.Width, o.Height)
	case OpPaint:
		return fmt.Sprintf("paint(%q,fg=%d,%d,%d,%s)", o.Char, o.FG, o.Col, o.Row, o.Variant)
	default:
		return o.Kind.String()
	}
}

// Surface records drawing calls and tracks font state.
type Surface struct {
	Cols, Rows int

	ops     []Op
	variant backend.FontVariant
	saved   []backend.FontVariant
	failAt  *[2]int
}

var _ backend.Surface = (*Surface)(nil)

// New creates a recording surface.
func New() *Surface {
	return &Surface{}
}

// Resize records the resize and updates the surface size.
func (s *Surface) Resize(cols, rows int, metricsChanged bool) {
	s.Cols, s.Rows = cols, rows
	s.ops = append(s.ops, Op{Kind: OpResize, Width: cols, Height: rows, Metrics: metricsChanged})
}

// ClearAll records a full clear.
func (s *Surface) ClearAll() {
	s.ops = append(s.ops, Op{Kind: OpClearAll})
}

// ClearRegion records a region clear.
func (s *Surface) ClearRegion(col, row, width, height int) {
	s.ops = append(s.ops, Op{Kind: OpClear, Col: col, Row: row, Width: width, Height: height})
}

// PaintGlyph records a paint with the active font variant.
// It panics once if FailOn selected this cell.
func (s *Surface) PaintGlyph(ch string, fg int, col, row int) {
	if s.failAt != nil && s.failAt[0] == col && s.failAt[1] == row {
		s.failAt = nil
		panic(fmt.Sprintf("sim: paint failed at %d,%d", col, row))
	}
	s.ops = append(s.ops, Op{Kind: OpPaint, Col: col, Row: row, Char: ch, FG: fg, Variant: s.variant})
}

// Save pushes the current font variant.
func (s *Surface) Save() {
	s.saved = append(s.saved, s.variant)
}

// Restore pops the last saved font variant.
func (s *Surface) Restore() {
	if len(s.saved) == 0 {
		return
	}
	s.variant = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

// SetFontVariant changes the active font variant.
func (s *Surface) SetFontVariant(v backend.FontVariant) {
	s.variant = v
}

// Variant returns the active font variant.
func (s *Surface) Variant() backend.FontVariant {
	return s.variant
}

// Depth returns the number of unrestored saves.
func (s *Surface) Depth() int {
	return len(s.saved)
}

// FailOn makes the next paint at (col, row) panic.
func (s *Surface) FailOn(col, row int) {
	s.failAt = &[2]int{col, row}
}

// Ops returns the recorded calls.
func (s *Surface) Ops() []Op {
	return s.ops
}

// Reset forgets recorded calls. Font state is kept.
func (s *Surface) Reset() {
	s.ops = s.ops[:0]
}

// Count returns the number of recorded calls of kind k.
func (s *Surface) Count(k OpKind) int {
	n := 0
	for _, op := range s.ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Paints returns recorded paint calls.
func (s *Surface) Paints() []Op {
	return s.filter(OpPaint)
}

// Clears returns recorded region clears.
func (s *Surface) Clears() []Op {
	return s.filter(OpClear)
}

func (s *Surface) filter(k OpKind) []Op {
	var out []Op
	for _, op := range s.ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}
