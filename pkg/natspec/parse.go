package natspec

import (
	"strings"
	"unicode"

	"github.com/yaklabco/lintspec/pkg/textindex"
)

// line is the content of one doc comment line after its delimiters were
// removed. offset is the absolute position of text[0].
type line struct {
	text   string
	offset int
}

// Parse reads the doc comments in text, which starts at absolute offset base
// in its file. Text may hold several comments separated by whitespace; plain
// comments between them are skipped.
func Parse(text string, base int) (Comment, []Problem) {
	lines, problems := splitLines(text, base)
	p := &tagParser{problems: problems}
	for _, ln := range lines {
		p.line(ln)
	}
	p.flush()
	return Comment{Tags: p.tags}, p.problems
}

// splitLines strips comment delimiters and returns the content lines of
// every doc comment in text.
func splitLines(text string, base int) ([]line, []Problem) {
	var (
		lines    []line
		problems []Problem
	)
	problem := func(start, end int, message string) {
		problems = append(problems, Problem{
			Span:    textindex.Span{Start: base + start, End: base + end},
			Message: message,
		})
	}

	pos := 0
	for pos < len(text) {
		rest := text[pos:]
		switch {
		case isBlank(rest[0]):
			pos++

		case strings.HasPrefix(rest, "///"):
			slashes := countPrefix(rest, '/')
			end := pos + lineLength(rest)
			if slashes > 3 {
				problem(pos, pos+slashes, "invalid doc comment delimiter "+quote(rest[:slashes]))
			} else {
				lines = append(lines, trimLine(text[pos+3:end], base+pos+3, false, false))
			}
			pos = end

		case strings.HasPrefix(rest, "//"):
			pos += lineLength(rest)

		case strings.HasPrefix(rest, "/*"):
			stars := countPrefix(rest[2:], '*')
			closeAt := strings.Index(rest[2:], "*/")
			end := len(text)
			if closeAt >= 0 {
				end = pos + 2 + closeAt + 2
			}
			isDoc := stars >= 1 && !strings.HasPrefix(rest[2+stars:], "/")
			switch {
			case !isDoc:
			case stars > 1:
				problem(pos, pos+2+stars, "invalid doc comment delimiter "+quote(rest[:2+stars]))
			default:
				bodyEnd := end
				if closeAt < 0 {
					problem(pos, end, "unterminated doc comment")
				} else {
					bodyEnd -= 2
				}
				body := text[pos+3 : bodyEnd]
				if nested := strings.Index(body, "/*"); nested >= 0 {
					at := pos + 3 + nested
					problem(at, at+2, "nested comment delimiter \"/*\" in doc comment")
				}
				lines = append(lines, blockLines(body, base+pos+3)...)
			}
			pos = end

		default:
			end := pos + lineLength(rest)
			problem(pos, end, "unexpected text outside doc comment")
			pos = end
		}
	}
	return lines, problems
}

// blockLines splits the body of a "/** */" comment into lines. Every line
// but the first may start with decoration stars; the last may end with
// stars that belong to the closing delimiter.
func blockLines(body string, base int) []line {
	var out []line
	start := 0
	for i := 0; i <= len(body); i++ {
		if i < len(body) && body[i] != '\n' && body[i] != '\r' {
			continue
		}
		last := i == len(body)
		out = append(out, trimLine(body[start:i], base+start, start > 0, last))
		if !last && body[i] == '\r' && i+1 < len(body) && body[i+1] == '\n' {
			i++
		}
		start = i + 1
	}
	return out
}

// trimLine removes surrounding whitespace and, when asked, decoration
// stars at either end.
func trimLine(s string, offset int, leadingStars, trailingStars bool) line {
	trimmed := strings.TrimLeftFunc(s, unicode.IsSpace)
	if leadingStars {
		trimmed = strings.TrimLeftFunc(strings.TrimLeft(trimmed, "*"), unicode.IsSpace)
	}
	offset += len(s) - len(trimmed)

	trimmed = strings.TrimRightFunc(trimmed, unicode.IsSpace)
	if trailingStars {
		trimmed = strings.TrimRightFunc(strings.TrimRight(trimmed, "*"), unicode.IsSpace)
	}
	return line{text: trimmed, offset: offset}
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

func countPrefix(s string, b byte) int {
	n := 0
	for n < len(s) && s[n] == b {
		n++
	}
	return n
}

// lineLength is the length of the first line of s, without its terminator.
func lineLength(s string) int {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return i
	}
	return len(s)
}

func quote(s string) string {
	return "\"" + s + "\""
}
