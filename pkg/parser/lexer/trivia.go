package lexer

// collectTrivia gathers whitespace and comments up to the next significant
// byte.
func (lx *Lexer) collectTrivia() []Trivia {
	var hold []Trivia

	for !lx.cur.eof() {
		start := lx.cur.off
		b := lx.cur.peek()

		switch {
		case b == ' ' || b == '\t' || b == '\f' || b == '\v':
			for isInlineSpace(lx.cur.peek()) && !lx.cur.eof() {
				lx.cur.bump()
			}
			hold = append(hold, Trivia{Kind: TriviaSpace, Span: lx.cur.spanFrom(start)})

		case b == '\n' || b == '\r':
			for (lx.cur.peek() == '\n' || lx.cur.peek() == '\r') && !lx.cur.eof() {
				lx.cur.bump()
			}
			hold = append(hold, Trivia{Kind: TriviaNewline, Span: lx.cur.spanFrom(start)})

		case b == '/' && lx.cur.peekAt(1) == '/':
			hold = append(hold, lx.scanLineComment())

		case b == '/' && lx.cur.peekAt(1) == '*':
			hold = append(hold, lx.scanBlockComment())

		default:
			return hold
		}
	}

	return hold
}

// scanLineComment consumes "//" to the end of the line. Exactly three
// slashes make a doc comment; four or more make a malformed one.
func (lx *Lexer) scanLineComment() Trivia {
	start := lx.cur.off
	slashes := 0
	for lx.cur.peek() == '/' && !lx.cur.eof() {
		lx.cur.bump()
		slashes++
	}
	for !lx.cur.eof() && lx.cur.peek() != '\n' && lx.cur.peek() != '\r' {
		lx.cur.bump()
	}

	trivia := Trivia{Kind: TriviaLineComment, Span: lx.cur.spanFrom(start)}
	if slashes >= 3 {
		trivia.Kind = TriviaDocLine
		trivia.Malformed = slashes > 3
	}
	return trivia
}

// scanBlockComment consumes "/* ... */". "/**" opens a doc comment and
// "/***" a malformed one. A comment made only of stars, like "/**/", is a
// plain comment.
func (lx *Lexer) scanBlockComment() Trivia {
	start := lx.cur.off
	lx.cur.bump()
	lx.cur.bump()

	stars := 0
	for lx.cur.peekAt(stars) == '*' {
		stars++
	}
	empty := stars >= 1 && lx.cur.peekAt(stars) == '/'

	trivia := Trivia{Kind: TriviaBlockComment}
	if stars >= 1 && !empty {
		trivia.Kind = TriviaDocBlock
		trivia.Malformed = stars > 1
	}

	for {
		if lx.cur.eof() {
			trivia.Unterminated = true
			break
		}
		if lx.cur.peek() == '*' && lx.cur.peekAt(1) == '/' {
			lx.cur.bump()
			lx.cur.bump()
			break
		}
		lx.cur.bump()
	}

	trivia.Span = lx.cur.spanFrom(start)
	return trivia
}

func isInlineSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\f' || b == '\v'
}
