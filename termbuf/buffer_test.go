package termbuf

import (
	"strconv"
	"strings"
	"testing"

	"github.com/odvcencio/furry-term/cell"
)

var plain = cell.DefaultAttr

func TestWriteLines(t *testing.T) {
	b := New(10, 3, 10)
	b.Write("hello\nworld", plain)
	if b.LineCount() != 2 {
		t.Fatalf("line count = %d, want 2", b.LineCount())
	}
	if got := b.LineText(0); got != "hello" {
		t.Fatalf("line 0 = %q", got)
	}
	if got := b.LineText(1); got != "world" {
		t.Fatalf("line 1 = %q", got)
	}
	if got := b.CellAt(0, 1); got.Char != "e" || got.Code != 'e' || got.Width != 1 {
		t.Fatalf("cell 0,1 = %+v", got)
	}
	if got := b.CellAt(0, 7); got != cell.Blank {
		t.Fatalf("unwritten cell = %+v, want blank", got)
	}
	if got := b.CellAt(9, 0); got != cell.Blank {
		t.Fatalf("missing line cell = %+v, want blank", got)
	}
}

func TestWriteWraps(t *testing.T) {
	b := New(4, 2, 10)
	b.Write("abcdefg", plain)
	if b.LineText(0) != "abcd" || b.LineText(1) != "efg" {
		t.Fatalf("wrapped lines = %q %q", b.LineText(0), b.LineText(1))
	}
}

func TestWriteCarriageReturnOverwrites(t *testing.T) {
	b := New(8, 2, 0)
	b.Write("abc\rX", plain)
	if got := b.LineText(0); got != "Xbc" {
		t.Fatalf("line = %q, want Xbc", got)
	}
}

func TestWriteTab(t *testing.T) {
	b := New(20, 1, 0)
	b.SetTabWidth(4)
	b.Write("a\tb", plain)
	if got := b.LineText(0); got != "a   b" {
		t.Fatalf("line = %q", got)
	}
	b.SetTabWidth(0)
	if b.tabWidth != DefaultTabWidth {
		t.Fatalf("tab width = %d, want default", b.tabWidth)
	}
}

func TestWriteDropsControls(t *testing.T) {
	b := New(8, 1, 0)
	b.Write("a\x07\x1bb", plain)
	if got := b.LineText(0); got != "ab" {
		t.Fatalf("line = %q", got)
	}
}

func TestWriteWideRune(t *testing.T) {
	b := New(5, 1, 0)
	attr := cell.MakeAttr(3, 0, cell.Bold)
	b.Write("a中b", attr)
	lead := b.CellAt(0, 1)
	if lead.Width != 2 || lead.Char != "中" {
		t.Fatalf("leader = %+v", lead)
	}
	follow := b.CellAt(0, 2)
	if !follow.Follower() || follow.Attr != attr {
		t.Fatalf("follower = %+v", follow)
	}
	if got := b.CellAt(0, 3); got.Char != "b" {
		t.Fatalf("after wide = %+v", got)
	}
	if got := b.LineText(0); got != "a中b" {
		t.Fatalf("line = %q", got)
	}
}

func TestWriteWideRuneWrapsWhole(t *testing.T) {
	b := New(3, 2, 0)
	b.Write("ab中", plain)
	if b.LineText(0) != "ab" || b.LineText(1) != "中" {
		t.Fatalf("lines = %q %q", b.LineText(0), b.LineText(1))
	}
}

func TestOverwriteWideHalfBlanksOther(t *testing.T) {
	b := New(4, 1, 0)
	b.Write("中\rx", plain)
	if got := b.CellAt(0, 1); got.Follower() || got.Char != " " {
		t.Fatalf("stale follower = %+v", got)
	}

	b = New(4, 1, 0)
	b.Write("中", plain)
	b.cursorX = 1
	b.Write("y", plain)
	if got := b.CellAt(0, 0); got.Width != 1 || got.Char != " " {
		t.Fatalf("stale leader = %+v", got)
	}
}

func TestWriteCombiningMark(t *testing.T) {
	b := New(5, 1, 0)
	b.Write("e\u0301x", plain)
	if got := b.CellAt(0, 0); got.Char != "e\u0301" || got.Code != 'e' {
		t.Fatalf("combined cell = %+v", got)
	}
	if got := b.CellAt(0, 1); got.Char != "x" {
		t.Fatalf("next cell = %+v", got)
	}

	b = New(5, 1, 0)
	b.Write("\u0301", plain)
	if b.CellAt(0, 0) != cell.Blank {
		t.Fatal("leading combining mark should be dropped")
	}
}

func TestScrollbackTrim(t *testing.T) {
	b := New(5, 2, 1)
	b.Write("1\n2\n3\n4", plain)
	if b.LineCount() != 3 {
		t.Fatalf("line count = %d, want 3", b.LineCount())
	}
	if b.LineText(0) != "2" {
		t.Fatalf("oldest line = %q, want 2", b.LineText(0))
	}
	if b.DisplayOffset() != 1 {
		t.Fatalf("offset = %d, want 1", b.DisplayOffset())
	}
}

func TestUnlimitedScrollbackKeepsFirstLine(t *testing.T) {
	b := New(5, 2, Unlimited)
	var sb strings.Builder
	for i := 0; i < 3000; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strconv.Itoa(i + 1))
	}
	b.Write(sb.String(), plain)
	if b.LineCount() != 3000 {
		t.Fatalf("line count = %d, want 3000", b.LineCount())
	}
	if b.DisplayOffset() != 2998 {
		t.Fatalf("offset = %d, want 2998", b.DisplayOffset())
	}
	b.ScrollTo(0)
	if b.DisplayOffset() != 0 {
		t.Fatalf("offset = %d, want 0", b.DisplayOffset())
	}
	if got := b.CellAt(0, 0); got.Char != "1" {
		t.Fatalf("top cell = %+v, want first line", got)
	}
}

func TestScrolling(t *testing.T) {
	b := New(5, 2, 10)
	b.Write("a\nb\nc\nd\ne", plain)
	if b.MaxOffset() != 3 || b.DisplayOffset() != 3 {
		t.Fatalf("offset = %d max = %d, want 3/3", b.DisplayOffset(), b.MaxOffset())
	}
	if !b.ScrollBy(-2) || b.DisplayOffset() != 1 {
		t.Fatalf("scroll up offset = %d", b.DisplayOffset())
	}
	if b.ScrollTo(1) {
		t.Fatal("expected no change")
	}
	b.ScrollBy(-10)
	if b.DisplayOffset() != 0 {
		t.Fatalf("clamped offset = %d", b.DisplayOffset())
	}
	b.Write("\nf", plain)
	if b.DisplayOffset() != 0 {
		t.Fatalf("scrolled-back viewport moved to %d", b.DisplayOffset())
	}
	if !b.ScrollToBottom() || !b.AtBottom() {
		t.Fatal("expected scroll to bottom")
	}
	b.Write("\ng", plain)
	if b.DisplayOffset() != b.MaxOffset() {
		t.Fatal("expected viewport to follow output")
	}
	if got := b.CellAt(b.DisplayOffset()+1, 0); got.Char != "g" {
		t.Fatalf("bottom row = %+v", got)
	}
}

func TestResizeKeepsBottom(t *testing.T) {
	b := New(5, 2, 10)
	b.Write("a\nb\nc\nd", plain)
	b.Resize(5, 3)
	if b.DisplayOffset() != 1 {
		t.Fatalf("offset = %d, want 1", b.DisplayOffset())
	}
	b.ScrollTo(0)
	b.Resize(5, 1)
	if b.DisplayOffset() != 0 {
		t.Fatalf("offset = %d, want 0", b.DisplayOffset())
	}
	if cols, rows := b.Size(); cols != 5 || rows != 1 {
		t.Fatalf("size = %dx%d", cols, rows)
	}
}

func TestClear(t *testing.T) {
	b := New(5, 2, 10)
	b.Write("a\nb\nc", plain)
	b.Clear()
	if b.LineCount() != 1 || b.DisplayOffset() != 0 || b.LineText(0) != "" {
		t.Fatalf("after clear: lines=%d offset=%d", b.LineCount(), b.DisplayOffset())
	}
}
