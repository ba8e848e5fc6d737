// Package highlight converts source code and markdown into runs of text
// carrying packed attribute words, ready to be written into a grid buffer.
package highlight

import "github.com/odvcencio/furry-term/cell"

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "monokai"

// Run is a span of text sharing one attribute word.
type Run struct {
	Text string
	Attr cell.Attr
}

// Writer accepts styled text.
type Writer interface {
	Write(s string, attr cell.Attr)
}

// WriteTo writes every run to w in order.
func WriteTo(w Writer, runs []Run) {
	for _, r := range runs {
		w.Write(r.Text, r.Attr)
	}
}

// PlainText returns the concatenated text of runs.
func PlainText(runs []Run) string {
	n := 0
	for _, r := range runs {
		n += len(r.Text)
	}
	buf := make([]byte, 0, n)
	for _, r := range runs {
		buf = append(buf, r.Text...)
	}
	return string(buf)
}

// appendRun adds text to runs, merging with the previous run when the
// attributes match.
func appendRun(runs []Run, text string, attr cell.Attr) []Run {
	if text == "" {
		return runs
	}
	if n := len(runs); n > 0 && runs[n-1].Attr == attr {
		runs[n-1].Text += text
		return runs
	}
	return append(runs, Run{Text: text, Attr: attr})
}
