package lexer

import "github.com/yaklabco/lintspec/pkg/textindex"

// cursor walks the source one byte at a time.
type cursor struct {
	src []byte
	off int
}

func (c *cursor) eof() bool {
	return c.off >= len(c.src)
}

func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.src[c.off]
}

// peekAt returns the byte n positions ahead, or 0 past the end.
func (c *cursor) peekAt(n int) byte {
	if c.off+n >= len(c.src) {
		return 0
	}
	return c.src[c.off+n]
}

func (c *cursor) bump() byte {
	if c.eof() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	return b
}

func (c *cursor) eat(b byte) bool {
	if c.peek() == b && !c.eof() {
		c.off++
		return true
	}
	return false
}

func (c *cursor) spanFrom(start int) textindex.Span {
	return textindex.Span{Start: start, End: c.off}
}
