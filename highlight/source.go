package highlight

import (
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/odvcencio/furry-term/cell"
)

// Source highlights src with the lexer matching filename.
// When no lexer matches, the content is analysed; plain text is the last
// resort. Unknown style names fall back to chroma's default style.
func Source(filename, src, style string) ([]Run, error) {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Analyse(src)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	runs, err := tokenise(lexer, chromaStyle(style), src)
	if err != nil {
		return nil, fmt.Errorf("highlight %s: %w", filename, err)
	}
	return runs, nil
}

// Code highlights src with the lexer registered under language.
func Code(language, src, style string) ([]Run, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	runs, err := tokenise(lexer, chromaStyle(style), src)
	if err != nil {
		return nil, fmt.Errorf("highlight %s code: %w", language, err)
	}
	return runs, nil
}

func chromaStyle(name string) *chroma.Style {
	if name == "" {
		name = DefaultStyle
	}
	return styles.Get(name)
}

func tokenise(lexer chroma.Lexer, style *chroma.Style, src string) ([]Run, error) {
	tokens, err := chroma.Tokenise(chroma.Coalesce(lexer), nil, src)
	if err != nil {
		return nil, err
	}
	base := style.Get(chroma.Text).Colour
	var runs []Run
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		runs = appendRun(runs, tok.Value, tokenAttr(style.Get(tok.Type), base))
	}
	return runs, nil
}

// tokenAttr keeps the default foreground for tokens drawn in the style's
// base text colour.
func tokenAttr(entry chroma.StyleEntry, base chroma.Colour) cell.Attr {
	var flags cell.Flags
	if entry.Bold == chroma.Yes {
		flags |= cell.Bold
	}
	if entry.Italic == chroma.Yes {
		flags |= cell.Italic
	}
	if entry.Underline == chroma.Yes {
		flags |= cell.Underline
	}
	fg := cell.DefaultFG
	if entry.Colour.IsSet() && entry.Colour != base {
		fg = Nearest256(entry.Colour)
	}
	return cell.MakeAttr(fg, cell.DefaultBG, flags)
}
