// Package lexer tokenizes Solidity source for the parser backends.
//
// Comments and whitespace never appear as tokens. They are collected as
// leading trivia on the next significant token, which is how the backends
// find the documentation comment that precedes a declaration.
package lexer

import "github.com/yaklabco/lintspec/pkg/textindex"

// Kind classifies a token.
type Kind uint8

const (
	EOF Kind = iota
	Ident
	Number
	String
	Punct
	Illegal
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "end of file"
	case Ident:
		return "identifier"
	case Number:
		return "number"
	case String:
		return "string"
	case Punct:
		return "punctuation"
	case Illegal:
		return "illegal"
	default:
		return "unknown"
	}
}

// Token is one significant token with the trivia that precedes it.
type Token struct {
	Kind    Kind
	Text    string
	Span    textindex.Span
	Leading []Trivia
}

// Is reports whether the token is punctuation or an identifier with the
// given text.
func (t Token) Is(text string) bool {
	return (t.Kind == Punct || t.Kind == Ident) && t.Text == text
}

// TriviaKind classifies non-significant text.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDocLine
	TriviaDocBlock
)

// Trivia is whitespace or a comment.
type Trivia struct {
	Kind TriviaKind
	Span textindex.Span

	// Malformed marks a comment that has one delimiter character too many
	// to be a doc comment, such as "////" or "/***".
	Malformed bool

	// Unterminated marks a block comment that runs to the end of input.
	Unterminated bool
}

// IsDoc reports whether the trivia is a doc comment, including the
// malformed forms that must be reported rather than ignored.
func (t Trivia) IsDoc() bool {
	return t.Kind == TriviaDocLine || t.Kind == TriviaDocBlock
}

// IsComment reports whether the trivia is any kind of comment.
func (t Trivia) IsComment() bool {
	return t.Kind >= TriviaLineComment
}
