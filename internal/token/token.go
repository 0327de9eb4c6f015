// Package token flattens a goldmark document into the ordered token stream
// the recipe parser consumes: heading open/close markers carrying their level,
// and the raw inline text between headings. Inline content is reconstructed
// from the raw source lines, so emphasis markers and soft line breaks inside a
// paragraph survive verbatim.
package token

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// Kind discriminates the closed token variant.
type Kind int

const (
	// Other covers every block the parser has no semantics for; it falls
	// through as a no-op.
	Other Kind = iota
	// HeadingOpen marks the start of a heading region.
	HeadingOpen
	// HeadingClose marks the end of a heading region.
	HeadingClose
	// Inline carries raw text content, either a heading's own label or a
	// section body paragraph.
	Inline
)

// Token is one unit of the flattened markdown parse.
type Token struct {
	Kind    Kind
	Level   int    // heading level, set for HeadingOpen/HeadingClose
	Content string // raw text, set for Inline
}

var md = goldmark.New()

// Tokenize parses src and returns the flattened token stream. A heading
// becomes an open marker, an inline token with its label text, and a close
// marker; a paragraph becomes a single inline token holding all of its source
// lines joined by newlines. Container blocks (lists, quotes) are descended
// into so their text still reaches the stream; leaf blocks without recipe
// semantics degrade to Other tokens.
func Tokenize(src []byte) []Token {
	doc := md.Parser().Parse(gmtext.NewReader(src))

	var tokens []Token
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Document:
			return ast.WalkContinue, nil
		case *ast.Heading:
			tokens = append(tokens,
				Token{Kind: HeadingOpen, Level: node.Level},
				Token{Kind: Inline, Content: rawLines(node, src)},
				Token{Kind: HeadingClose, Level: node.Level},
			)
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.TextBlock:
			tokens = append(tokens, Token{Kind: Inline, Content: rawLines(n, src)})
			return ast.WalkSkipChildren, nil
		case *ast.List, *ast.ListItem, *ast.Blockquote:
			return ast.WalkContinue, nil
		default:
			if n.Type() == ast.TypeBlock {
				tokens = append(tokens, Token{Kind: Other})
				return ast.WalkSkipChildren, nil
			}
			return ast.WalkContinue, nil
		}
	})
	return tokens
}

// rawLines reconstructs the source text of a block node, one source line per
// output line, without trailing newlines.
func rawLines(n ast.Node, src []byte) string {
	lines := n.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		parts = append(parts, strings.TrimRight(string(seg.Value(src)), "\n"))
	}
	return strings.Join(parts, "\n")
}
