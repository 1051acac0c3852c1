package natspec

import (
	"strings"
	"unicode"

	"github.com/yaklabco/lintspec/pkg/textindex"
)

// tagParser groups content lines into tags.
type tagParser struct {
	tags     []Tag
	problems []Problem

	// current is the tag receiving text. dropping is set after an incomplete
	// tag so its continuation lines are discarded with it.
	current  *Tag
	dropping bool
}

// line feeds one trimmed content line. A tag opens only at the start of a
// line; an "@word" further along is plain text.
func (p *tagParser) line(ln line) {
	if !startsTag(ln.text) {
		p.text(ln.text, ln.offset, true)
		return
	}
	p.tag(ln.text, ln.offset)
}

// text appends s to the current tag. Text before any tag opens an implicit
// notice.
func (p *tagParser) text(s string, offset int, newLine bool) {
	if p.dropping {
		return
	}
	if p.current == nil {
		if s == "" {
			return
		}
		p.current = &Tag{
			Kind:    KindNotice,
			Keyword: kindNames[KindNotice],
			Span:    textindex.Span{Start: offset, End: offset},
		}
		newLine = false
	}

	if newLine {
		p.current.Text += "\n"
	}
	p.current.Text += s
	if s != "" {
		p.current.Span.End = offset + len(s)
	}
}

// tag starts a new tag from s, which begins with "@".
func (p *tagParser) tag(s string, offset int) {
	p.flush()

	keyword := s[1 : 1+identLength(s[1:])]
	tag := Tag{
		Kind:    kindOf(keyword),
		Keyword: keyword,
		Span:    textindex.Span{Start: offset, End: offset + 1 + len(keyword)},
	}

	rest := s[1+len(keyword):]
	restOffset := offset + 1 + len(keyword)
	trimmed := strings.TrimLeftFunc(rest, unicode.IsSpace)
	restOffset += len(rest) - len(trimmed)
	trimmed = strings.TrimRightFunc(trimmed, unicode.IsSpace)

	switch tag.Kind {
	case KindParam, KindInheritdoc:
		word := firstWord(trimmed)
		if word == "" || rest == trimmed {
			p.problems = append(p.problems, Problem{
				Span:    tag.Span,
				Message: "@" + keyword + " is missing a name",
			})
			p.dropping = true
			return
		}
		tag.Name = word
		tag.NameSpan = textindex.Span{Start: restOffset, End: restOffset + len(word)}
		tag.Span.End = tag.NameSpan.End

		desc := strings.TrimLeftFunc(trimmed[len(word):], unicode.IsSpace)
		restOffset += len(trimmed) - len(desc)
		trimmed = desc
	case KindReturn:
		if word := firstWord(trimmed); word != "" && rest != trimmed {
			tag.Name = word
			tag.NameSpan = textindex.Span{Start: restOffset, End: restOffset + len(word)}
		}
	}

	p.current = &tag
	p.text(trimmed, restOffset, false)
}

// flush finishes the current tag.
func (p *tagParser) flush() {
	p.dropping = false
	if p.current == nil {
		return
	}
	p.current.Text = strings.TrimSpace(p.current.Text)
	p.tags = append(p.tags, *p.current)
	p.current = nil
}

// startsTag reports whether s begins with "@" followed by an identifier.
func startsTag(s string) bool {
	return strings.HasPrefix(s, "@") && identLength(s[1:]) > 0
}

// identLength returns the length of the tag keyword at the start of s.
// Keywords may contain ":" and "-" after the first character, as in
// "custom:my-tag".
func identLength(s string) int {
	n := 0
	for n < len(s) {
		c := s[n]
		switch {
		case c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
		case n > 0 && (c >= '0' && c <= '9' || c == ':' || c == '-'):
		default:
			return n
		}
		n++
	}
	return n
}

func firstWord(s string) string {
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		return s[:i]
	}
	return s
}
