package scan

import (
	"fmt"
	"unicode/utf16"

	"fortio.org/safecast"
)

// span16 is a half-open range of UTF-16 code units.
type span16 struct {
	start, end uint32
}

type tokKind uint8

const (
	tokEOF tokKind = iota
	tokWord
	tokNumber
	tokString
	tokPunct
	tokIllegal
)

// token is a significant token. doc, when set, covers the doc comments in
// the trivia before it.
type token struct {
	kind tokKind
	text string
	sp   span16
	doc  *span16
}

func (t token) is(text string) bool {
	return (t.kind == tokPunct || t.kind == tokWord) && t.text == text
}

// scanner splits UTF-16 code units into tokens.
type scanner struct {
	units []uint16
	off   int

	// unterminated records the start of a block comment with no end.
	unterminated int
}

func newScanner(src []byte) (*scanner, error) {
	units := utf16.Encode([]rune(string(src)))
	if _, err := safecast.Conv[uint32](len(units)); err != nil {
		return nil, fmt.Errorf("source too large: %w", err)
	}
	return &scanner{units: units, unterminated: -1}, nil
}

func (s *scanner) at(n int) uint16 {
	if s.off+n >= len(s.units) {
		return 0
	}
	return s.units[s.off+n]
}

func (s *scanner) span(start int) span16 {
	// Bounds were checked against len(units) in newScanner.
	return span16{start: uint32(start), end: uint32(s.off)} //nolint:gosec
}

func (s *scanner) text(sp span16) string {
	return string(utf16.Decode(s.units[sp.start:sp.end]))
}

// all scans every token. The last token is tokEOF.
func (s *scanner) all() []token {
	var toks []token
	for {
		doc := s.skipTrivia()
		tok := s.next()
		tok.doc = doc
		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks
		}
	}
}

// skipTrivia consumes whitespace and comments and returns the span from the
// first doc comment to the end of the last, if any.
func (s *scanner) skipTrivia() *span16 {
	var doc *span16
	for s.off < len(s.units) {
		c := s.at(0)
		switch {
		case c == ' ' || c == '\t' || c == '\f' || c == '\v' || c == '\n' || c == '\r':
			s.off++
		case c == '/' && s.at(1) == '/':
			start := s.off
			slashes := 0
			for s.at(0) == '/' && s.off < len(s.units) {
				s.off++
				slashes++
			}
			for s.off < len(s.units) && s.at(0) != '\n' && s.at(0) != '\r' {
				s.off++
			}
			if slashes >= 3 {
				doc = extend(doc, s.span(start))
			}
		case c == '/' && s.at(1) == '*':
			start := s.off
			s.off += 2
			stars := 0
			for s.at(stars) == '*' {
				stars++
			}
			isDoc := stars >= 1 && s.at(stars) != '/'
			for {
				if s.off >= len(s.units) {
					s.unterminated = start
					break
				}
				if s.at(0) == '*' && s.at(1) == '/' {
					s.off += 2
					break
				}
				s.off++
			}
			if isDoc {
				doc = extend(doc, s.span(start))
			}
		default:
			return doc
		}
	}
	return doc
}

func extend(doc *span16, sp span16) *span16 {
	if doc == nil {
		return &sp
	}
	return &span16{start: doc.start, end: sp.end}
}

func (s *scanner) next() token {
	start := s.off
	if s.off >= len(s.units) {
		return token{kind: tokEOF, sp: s.span(start)}
	}

	c := s.at(0)
	kind := tokPunct
	switch {
	case isWordStart(c):
		for isWordPart(s.at(0)) && s.off < len(s.units) {
			s.off++
		}
		kind = tokWord
	case isDigit(c) || (c == '.' && isDigit(s.at(1))):
		for s.off < len(s.units) {
			cur := s.at(0)
			if isWordPart(cur) || cur == '.' {
				s.off++
				continue
			}
			if cur == '-' && (s.at(-1) == 'e' || s.at(-1) == 'E') && !s.hexNumber(start) {
				s.off++
				continue
			}
			break
		}
		kind = tokNumber
	case c == '"' || c == '\'':
		kind = s.scanString(c)
	case c == '=' && s.at(1) == '>':
		s.off += 2
	case c < 0x80 && isPunct(byte(c)):
		s.off++
	default:
		s.off++
		if utf16.IsSurrogate(rune(c)) && s.off < len(s.units) {
			s.off++
		}
		kind = tokIllegal
	}

	sp := s.span(start)
	return token{kind: kind, text: s.text(sp), sp: sp}
}

func (s *scanner) hexNumber(start int) bool {
	return s.units[start] == '0' && start+1 < len(s.units) && (s.units[start+1] == 'x' || s.units[start+1] == 'X')
}

func (s *scanner) scanString(quote uint16) tokKind {
	s.off++
	for s.off < len(s.units) {
		c := s.at(0)
		switch {
		case c == quote:
			s.off++
			return tokString
		case c == '\\':
			s.off += 2
		case c == '\n' || c == '\r':
			return tokIllegal
		default:
			s.off++
		}
	}
	s.off = len(s.units)
	return tokIllegal
}

func isWordStart(c uint16) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordPart(c uint16) bool {
	return isWordStart(c) || isDigit(c)
}

func isDigit(c uint16) bool {
	return c >= '0' && c <= '9'
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
