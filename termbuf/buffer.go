// Package termbuf provides an in-memory line buffer with scrollback and a
// display offset, suitable as the grid source of a render layer.
package termbuf

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-term/cell"
)

// DefaultTabWidth is the tab stop interval used when none is configured.
const DefaultTabWidth = 8

// Unlimited is a scrollback size that never drops lines.
const Unlimited = -1

// Line is one buffer row. Lines only hold the cells written so far; the
// remainder of the row reads as blank.
type Line []cell.Content

// Buffer stores lines of cell content. Text is appended at a cursor that
// wraps at the column count. Buffer is not safe for concurrent use.
type Buffer struct {
	cols       int
	rows       int
	lines      []Line
	scrollback int
	ydisp      int
	cursorX    int
	tabWidth   int
}

// New creates a buffer with a viewport of cols x rows and room for
// scrollback additional lines above it. A negative scrollback keeps every
// line.
func New(cols, rows, scrollback int) *Buffer {
	if scrollback < 0 {
		scrollback = Unlimited
	}
	return &Buffer{
		cols:       max(cols, 0),
		rows:       max(rows, 0),
		lines:      []Line{nil},
		scrollback: scrollback,
		tabWidth:   DefaultTabWidth,
	}
}

// Size returns the viewport dimensions.
func (b *Buffer) Size() (cols, rows int) {
	return b.cols, b.rows
}

// SetTabWidth sets the tab stop interval. Values below 1 restore the default.
func (b *Buffer) SetTabWidth(n int) {
	if n < 1 {
		n = DefaultTabWidth
	}
	b.tabWidth = n
}

// LineCount returns the number of stored lines, scrollback included.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineText returns the characters of line i with trailing spaces removed.
func (b *Buffer) LineText(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.lines[i] {
		if c.Follower() {
			continue
		}
		if c.Code == 0 {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteString(c.Char)
	}
	return strings.TrimRight(sb.String(), " ")
}

// DisplayOffset returns the absolute line shown at the top of the viewport.
func (b *Buffer) DisplayOffset() int {
	return b.ydisp
}

// MaxOffset returns the largest valid display offset.
func (b *Buffer) MaxOffset() int {
	return max(len(b.lines)-b.rows, 0)
}

// AtBottom reports whether the viewport shows the newest lines.
func (b *Buffer) AtBottom() bool {
	return b.ydisp == b.MaxOffset()
}

// CellAt returns the content at an absolute line and column.
// Positions outside the stored text read as blank.
func (b *Buffer) CellAt(row, col int) cell.Content {
	if row < 0 || row >= len(b.lines) || col < 0 {
		return cell.Blank
	}
	line := b.lines[row]
	if col >= len(line) {
		return cell.Blank
	}
	return line[col]
}

// ScrollTo sets the display offset, clamped to the valid range.
// It reports whether the offset changed.
func (b *Buffer) ScrollTo(offset int) bool {
	offset = min(max(offset, 0), b.MaxOffset())
	if offset == b.ydisp {
		return false
	}
	b.ydisp = offset
	return true
}

// ScrollBy moves the display offset by n lines.
func (b *Buffer) ScrollBy(n int) bool {
	return b.ScrollTo(b.ydisp + n)
}

// ScrollToBottom shows the newest lines.
func (b *Buffer) ScrollToBottom() bool {
	return b.ScrollTo(b.MaxOffset())
}

// Resize changes the viewport size. Stored lines are not reflowed.
func (b *Buffer) Resize(cols, rows int) {
	bottom := b.AtBottom()
	b.cols = max(cols, 0)
	b.rows = max(rows, 0)
	b.cursorX = min(b.cursorX, b.cols)
	b.trim()
	if bottom {
		b.ydisp = b.MaxOffset()
	} else {
		b.ydisp = min(b.ydisp, b.MaxOffset())
	}
}

// Clear drops all lines and resets the cursor.
func (b *Buffer) Clear() {
	b.lines = []Line{nil}
	b.cursorX = 0
	b.ydisp = 0
}

// Write appends s at the cursor using attr for every cell.
//
// '\n' starts a new line, '\r' returns to column 0 and '\t' advances to
// the next tab stop. Other control characters are dropped. Zero-width
// runes join the preceding glyph; wide runes occupy two columns. When the
// viewport was showing the newest lines it keeps following them.
func (b *Buffer) Write(s string, attr cell.Attr) {
	if b.cols == 0 {
		return
	}
	bottom := b.AtBottom()
	for _, r := range s {
		switch {
		case r == '\n':
			b.newLine()
		case r == '\r':
			b.cursorX = 0
		case r == '\t':
			stop := min((b.cursorX/b.tabWidth+1)*b.tabWidth, b.cols)
			for b.cursorX < stop {
				b.put(cell.New(' ', attr), 1)
			}
		case r < 0x20 || r == 0x7f:
		default:
			b.writeRune(r, attr)
		}
	}
	b.trim()
	if bottom {
		b.ydisp = b.MaxOffset()
	}
}

func (b *Buffer) writeRune(r rune, attr cell.Attr) {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		b.combine(r)
		return
	}
	if w > b.cols {
		return
	}
	if b.cursorX+w > b.cols {
		b.newLine()
	}
	b.put(cell.Content{Char: string(r), Code: r, Attr: attr, Width: w}, w)
}

// combine appends a zero-width rune to the glyph left of the cursor.
func (b *Buffer) combine(r rune) {
	line := b.current()
	x := b.cursorX - 1
	if x >= 0 && x < len(*line) && (*line)[x].Follower() {
		x--
	}
	if x < 0 || x >= len(*line) || (*line)[x].Code == 0 {
		return
	}
	(*line)[x].Char += string(r)
}

func (b *Buffer) put(c cell.Content, w int) {
	line := b.current()
	x := b.cursorX
	for len(*line) < x+w {
		*line = append(*line, cell.Blank)
	}
	// Overwriting half of a wide glyph blanks the other half.
	if (*line)[x].Follower() && x > 0 {
		(*line)[x-1] = blankLike((*line)[x-1])
	}
	end := x + w - 1
	if (*line)[end].Width == 2 && end+1 < len(*line) {
		(*line)[end+1] = blankLike((*line)[end+1])
	}
	(*line)[x] = c
	if w == 2 {
		(*line)[x+1] = cell.Follower(c.Attr)
	}
	b.cursorX += w
}

func (b *Buffer) current() *Line {
	return &b.lines[len(b.lines)-1]
}

func (b *Buffer) newLine() {
	b.lines = append(b.lines, nil)
	b.cursorX = 0
}

// trim drops lines that no longer fit in the scrollback.
func (b *Buffer) trim() {
	if b.scrollback == Unlimited {
		return
	}
	limit := b.rows + b.scrollback
	if limit < 1 {
		limit = 1
	}
	excess := len(b.lines) - limit
	if excess <= 0 {
		return
	}
	b.lines = append(b.lines[:0:0], b.lines[excess:]...)
	b.ydisp = max(b.ydisp-excess, 0)
}

func blankLike(c cell.Content) cell.Content {
	return cell.New(' ', c.Attr)
}
