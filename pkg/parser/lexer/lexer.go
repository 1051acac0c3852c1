package lexer

import (
	"unicode/utf8"

	"github.com/yaklabco/lintspec/pkg/textindex"
)

// Lexer produces tokens from Solidity source.
type Lexer struct {
	cur  cursor
	look *Token
}

// New creates a lexer over src.
func New(src []byte) *Lexer {
	return &Lexer{cur: cursor{src: src}}
}

// Tokenize lexes all of src. The final token is always EOF and carries any
// trailing trivia.
func Tokenize(src []byte) []Token {
	lx := New(src)
	var toks []Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}

// Next returns the next significant token with its leading trivia. After the
// end of input it keeps returning EOF.
func (lx *Lexer) Next() Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	leading := lx.collectTrivia()
	if lx.cur.eof() {
		return Token{
			Kind:    EOF,
			Span:    textindex.Span{Start: lx.cur.off, End: lx.cur.off},
			Leading: leading,
		}
	}

	var tok Token
	ch := lx.cur.peek()
	switch {
	case isIdentStart(ch):
		tok = lx.scanIdent()
	case isDigit(ch), ch == '.' && isDigit(lx.cur.peekAt(1)):
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'':
		tok = lx.scanString(ch)
	case ch >= utf8.RuneSelf:
		start := lx.cur.off
		_, size := utf8.DecodeRune(lx.cur.src[start:])
		lx.cur.off += size
		tok = lx.token(Illegal, start)
	default:
		tok = lx.scanPunct()
	}

	tok.Leading = leading
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() Token {
	tok := lx.Next()
	lx.look = &tok
	return tok
}

func (lx *Lexer) token(kind Kind, start int) Token {
	span := lx.cur.spanFrom(start)
	return Token{Kind: kind, Text: string(lx.cur.src[span.Start:span.End]), Span: span}
}

func (lx *Lexer) scanIdent() Token {
	start := lx.cur.off
	for isIdentContinue(lx.cur.peek()) && !lx.cur.eof() {
		lx.cur.bump()
	}
	return lx.token(Ident, start)
}

// scanNumber accepts decimal, hex and scientific literals with underscores.
// Denominations such as "ether" lex as separate identifiers.
func (lx *Lexer) scanNumber() Token {
	start := lx.cur.off
	if lx.cur.peek() == '0' && (lx.cur.peekAt(1) == 'x' || lx.cur.peekAt(1) == 'X') {
		lx.cur.bump()
		lx.cur.bump()
		for isHexDigit(lx.cur.peek()) || lx.cur.peek() == '_' {
			lx.cur.bump()
		}
		return lx.token(Number, start)
	}
	for isDigit(lx.cur.peek()) || lx.cur.peek() == '_' || lx.cur.peek() == '.' {
		lx.cur.bump()
	}
	if b := lx.cur.peek(); b == 'e' || b == 'E' {
		next := lx.cur.peekAt(1)
		if isDigit(next) || (next == '-' && isDigit(lx.cur.peekAt(2))) {
			lx.cur.bump()
			lx.cur.eat('-')
			for isDigit(lx.cur.peek()) || lx.cur.peek() == '_' {
				lx.cur.bump()
			}
		}
	}
	return lx.token(Number, start)
}

// scanString consumes a quoted literal. A line break or the end of input
// before the closing quote yields an Illegal token.
func (lx *Lexer) scanString(quote byte) Token {
	start := lx.cur.off
	lx.cur.bump()
	for {
		if lx.cur.eof() {
			return lx.token(Illegal, start)
		}
		b := lx.cur.peek()
		switch {
		case b == quote:
			lx.cur.bump()
			return lx.token(String, start)
		case b == '\\':
			lx.cur.bump()
			lx.cur.bump()
		case b == '\n' || b == '\r':
			return lx.token(Illegal, start)
		default:
			lx.cur.bump()
		}
	}
}

func (lx *Lexer) scanPunct() Token {
	start := lx.cur.off
	b := lx.cur.bump()
	if b == '=' && lx.cur.peek() == '>' {
		lx.cur.bump()
	}
	if !isPunct(b) {
		return lx.token(Illegal, start)
	}
	return lx.token(Punct, start)
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isPunct(b byte) bool {
	switch b {
	case '(', ')', '{', '}', '[', ']', ';', ',', '.', '?', ':',
		'=', '+', '-', '*', '/', '%', '<', '>', '!', '&', '|', '^', '~', '@':
		return true
	default:
		return false
	}
}
