package lexer

import (
	"github.com/yaklabco/lintspec/pkg/definition"
	"github.com/yaklabco/lintspec/pkg/textindex"
)

// DocComment returns the doc comment carried in a token's leading trivia,
// from the first doc comment to the end of the last one. Plain comments and
// blank lines in between are kept in the text; the NatSpec parser skips
// them. Malformed doc comments are included so they get reported.
func DocComment(src []byte, leading []Trivia) *definition.RawComment {
	first, last := -1, -1
	for i, trivia := range leading {
		if trivia.IsDoc() {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return nil
	}

	span := textindex.Span{Start: leading[first].Span.Start, End: leading[last].Span.End}
	return &definition.RawComment{
		Text: string(src[span.Start:span.End]),
		Span: span,
	}
}

// Unterminated returns the first unterminated block comment in toks.
func Unterminated(toks []Token) (Trivia, bool) {
	for _, tok := range toks {
		for _, trivia := range tok.Leading {
			if trivia.Unterminated {
				return trivia, true
			}
		}
	}
	return Trivia{}, false
}
