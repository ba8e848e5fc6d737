package highlight

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/odvcencio/furry-term/cell"
)

const (
	linkColor  = 4
	quoteColor = 8
	ruleWidth  = 24
)

var headingColors = [...]int{5, 4, 6}

// Markdown renders markdown source as styled terminal text. Headings and
// strong emphasis are bold, code is shown in inverse video, links are
// underlined, and fenced code blocks are highlighted with style.
func Markdown(src []byte, style string) ([]Run, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	w := &mdWriter{
		src:         src,
		style:       style,
		attrs:       []cell.Attr{cell.DefaultAttr},
		atLineStart: true,
	}
	if err := ast.Walk(doc, w.visit); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return w.runs, nil
}

type mdWriter struct {
	src         []byte
	style       string
	runs        []Run
	attrs       []cell.Attr
	atLineStart bool
}

func (w *mdWriter) attr() cell.Attr {
	return w.attrs[len(w.attrs)-1]
}

func (w *mdWriter) push(a cell.Attr) {
	w.attrs = append(w.attrs, a)
}

func (w *mdWriter) pop() {
	if len(w.attrs) > 1 {
		w.attrs = w.attrs[:len(w.attrs)-1]
	}
}

func (w *mdWriter) emit(s string, attr cell.Attr) {
	if s == "" {
		return
	}
	w.runs = appendRun(w.runs, s, attr)
	w.atLineStart = strings.HasSuffix(s, "\n")
}

func (w *mdWriter) endLine() {
	if !w.atLineStart {
		w.emit("\n", cell.DefaultAttr)
	}
}

// startBlock separates top-level blocks with an empty line. The first block
// of a list item continues on the marker line.
func (w *mdWriter) startBlock(n ast.Node) {
	if p := n.Parent(); p != nil && p.Kind() == ast.KindListItem && n.PreviousSibling() == nil {
		return
	}
	w.endLine()
	if len(w.runs) > 0 && n.Parent() != nil && n.Parent().Kind() == ast.KindDocument {
		w.emit("\n", cell.DefaultAttr)
	}
}

func (w *mdWriter) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Heading:
		if entering {
			w.startBlock(n)
			level := min(max(node.Level, 1), len(headingColors))
			w.push(w.attr().WithForeground(headingColors[level-1]).WithFlags(cell.Bold))
			w.emit(strings.Repeat("#", node.Level)+" ", w.attr())
		} else {
			w.pop()
			w.endLine()
		}
	case *ast.Paragraph:
		if entering {
			w.startBlock(n)
		} else {
			w.endLine()
		}
	case *ast.TextBlock:
		if !entering {
			w.endLine()
		}
	case *ast.Blockquote:
		if entering {
			w.startBlock(n)
			w.push(w.attr().WithForeground(quoteColor).WithFlags(cell.Dim))
		} else {
			w.pop()
		}
	case *ast.List:
		if entering && n.Parent() != nil && n.Parent().Kind() == ast.KindDocument {
			w.startBlock(n)
		}
	case *ast.ListItem:
		if entering {
			w.endLine()
			w.emit(listMarker(node), w.attr())
		}
	case *ast.ThematicBreak:
		if entering {
			w.startBlock(n)
			w.emit(strings.Repeat("─", ruleWidth)+"\n", w.attr().WithForeground(quoteColor))
		}
	case *ast.Emphasis:
		if entering {
			flag := cell.Italic
			if node.Level >= 2 {
				flag = cell.Bold
			}
			w.push(w.attr().WithFlags(flag))
		} else {
			w.pop()
		}
	case *ast.CodeSpan:
		if entering {
			w.push(w.attr().WithFlags(cell.Inverse))
		} else {
			w.pop()
		}
	case *ast.Link:
		if entering {
			w.push(w.attr().WithForeground(linkColor).WithFlags(cell.Underline))
		} else {
			w.pop()
		}
	case *ast.AutoLink:
		if entering {
			attr := w.attr().WithForeground(linkColor).WithFlags(cell.Underline)
			w.emit(string(node.URL(w.src)), attr)
		}
		return ast.WalkSkipChildren, nil
	case *ast.FencedCodeBlock:
		if entering {
			w.startBlock(n)
			if err := w.code(string(node.Language(w.src)), node.Lines()); err != nil {
				return ast.WalkStop, err
			}
		}
		return ast.WalkSkipChildren, nil
	case *ast.CodeBlock:
		if entering {
			w.startBlock(n)
			if err := w.code("", node.Lines()); err != nil {
				return ast.WalkStop, err
			}
		}
		return ast.WalkSkipChildren, nil
	case *ast.HTMLBlock, *ast.RawHTML:
		return ast.WalkSkipChildren, nil
	case *ast.Text:
		if entering {
			w.emit(string(node.Segment.Value(w.src)), w.attr())
			if node.SoftLineBreak() || node.HardLineBreak() {
				w.emit("\n", cell.DefaultAttr)
			}
		}
	case *ast.String:
		if entering {
			w.emit(string(node.Value), w.attr())
		}
	}
	return ast.WalkContinue, nil
}

func (w *mdWriter) code(language string, lines *text.Segments) error {
	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(w.src))
	}
	body := sb.String()
	if language == "" {
		w.emit(body, w.attr().WithFlags(cell.Inverse))
		w.endLine()
		return nil
	}
	runs, err := Code(language, body, w.style)
	if err != nil {
		return err
	}
	for _, r := range runs {
		w.emit(r.Text, r.Attr)
	}
	w.endLine()
	return nil
}

func listMarker(item *ast.ListItem) string {
	depth := 0
	var list *ast.List
	for p := item.Parent(); p != nil; p = p.Parent() {
		if l, ok := p.(*ast.List); ok {
			if list == nil {
				list = l
			}
			depth++
		}
	}
	indent := strings.Repeat("  ", max(depth-1, 0))
	if list == nil || !list.IsOrdered() {
		return indent + "• "
	}
	index := list.Start
	for s := item.PreviousSibling(); s != nil; s = s.PreviousSibling() {
		index++
	}
	return indent + strconv.Itoa(index) + ". "
}
