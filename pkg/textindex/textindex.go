// Package textindex maps byte offsets in a source file to zero-indexed
// line/column positions and to UTF-16 code unit offsets.
//
// An Index is built in one linear pass over the content. Every lookup
// afterwards is a binary search over the line table or the table of
// multi-byte codepoints, so cost does not depend on the offset queried.
package textindex

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Span is a half-open byte range [Start, End) into source text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Position is a zero-indexed location. Column counts codepoints from the
// start of the line.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"-"`
}

// Range is a pair of positions delimiting a Span.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// line describes one line of content. terminator is the offset of the first
// byte of the line break (or the end of content for the last line).
type line struct {
	start      int
	terminator int
	end        int
}

// wideRune records a codepoint encoded on more than one byte.
type wideRune struct {
	offset int
	size   int
	// extraBefore is the number of continuation bytes in all wide runes
	// strictly before this one.
	extraBefore int
	// surrogatesBefore counts the 4-byte runes strictly before this one,
	// each of which takes two UTF-16 code units.
	surrogatesBefore int
	utf16Offset      int
}

// Index converts offsets for a single file.
type Index struct {
	content []byte
	lines   []line
	wide    []wideRune
}

// New builds the index for content. content is retained, not copied, and
// must not be mutated while the Index is in use.
func New(content []byte) *Index {
	idx := &Index{content: content}

	lineStart := 0
	extra := 0
	surrogates := 0

	for offset := 0; offset < len(content); {
		char := content[offset]

		if char < utf8.RuneSelf {
			switch char {
			case '\n':
				idx.lines = append(idx.lines, line{start: lineStart, terminator: offset, end: offset + 1})
				lineStart = offset + 1
			case '\r':
				if offset+1 < len(content) && content[offset+1] == '\n' {
					idx.lines = append(idx.lines, line{start: lineStart, terminator: offset, end: offset + 2})
					offset += 2
					lineStart = offset
					continue
				}
				idx.lines = append(idx.lines, line{start: lineStart, terminator: offset, end: offset + 1})
				lineStart = offset + 1
			}
			offset++
			continue
		}

		r, size := utf8.DecodeRune(content[offset:])
		if size > 1 {
			idx.wide = append(idx.wide, wideRune{
				offset:           offset,
				size:             size,
				extraBefore:      extra,
				surrogatesBefore: surrogates,
				utf16Offset:      offset - extra + surrogates,
			})
			extra += size - 1
			if size == utf8.UTFMax {
				surrogates++
			}
		}
		if r == '\u2028' || r == '\u2029' {
			idx.lines = append(idx.lines, line{start: lineStart, terminator: offset, end: offset + size})
			lineStart = offset + size
		}
		offset += size
	}

	idx.lines = append(idx.lines, line{start: lineStart, terminator: len(content), end: len(content)})

	return idx
}

// Len returns the length in bytes of the indexed content.
func (idx *Index) Len() int {
	return len(idx.content)
}

// LineCount returns the number of lines. Content ending in a line break has
// a trailing empty line.
func (idx *Index) LineCount() int {
	return len(idx.lines)
}

// LineText returns the text of a zero-indexed line without its terminator.
func (idx *Index) LineText(lineNo int) []byte {
	if lineNo < 0 || lineNo >= len(idx.lines) {
		return nil
	}
	info := idx.lines[lineNo]
	return idx.content[info.start:info.terminator]
}

// LineStart returns the byte offset of the start of a zero-indexed line.
func (idx *Index) LineStart(lineNo int) (int, bool) {
	if lineNo < 0 || lineNo >= len(idx.lines) {
		return 0, false
	}
	return idx.lines[lineNo].start, true
}

// Position converts a byte offset. Offsets are clamped to the content and
// snapped back to the first byte of the codepoint they fall in.
func (idx *Index) Position(offset int) Position {
	offset = idx.snap(offset)

	lineNo := sort.Search(len(idx.lines), func(i int) bool {
		return idx.lines[i].end > offset
	})
	if lineNo >= len(idx.lines) {
		lineNo = len(idx.lines) - 1
	}
	info := idx.lines[lineNo]

	// Any offset inside a line break (the LF of a CRLF in particular) sits
	// in the same column as the break itself.
	colOffset := min(offset, info.terminator)

	return Position{
		Line:   lineNo,
		Column: idx.runesBefore(colOffset) - idx.runesBefore(info.start),
		Offset: offset,
	}
}

// Range converts both ends of a span.
func (idx *Index) Range(span Span) Range {
	return Range{Start: idx.Position(span.Start), End: idx.Position(span.End)}
}

// UTF16 converts a byte offset to the number of UTF-16 code units that
// precede it.
func (idx *Index) UTF16(offset int) int {
	offset = idx.snap(offset)
	k := idx.wideBefore(offset)
	if k == 0 {
		return offset
	}
	last := idx.wide[k-1]
	extra := last.extraBefore + last.size - 1
	surrogates := last.surrogatesBefore
	if last.size == utf8.UTFMax {
		surrogates++
	}
	return offset - extra + surrogates
}

// ByteOffset converts a UTF-16 code unit offset back to a byte offset. A
// unit offset that lands between the two halves of a surrogate pair maps to
// the start of the codepoint.
func (idx *Index) ByteOffset(utf16Offset int) int {
	if utf16Offset <= 0 {
		return 0
	}
	k := sort.Search(len(idx.wide), func(i int) bool {
		return idx.wide[i].utf16Offset > utf16Offset
	})
	if k == 0 {
		return min(utf16Offset, len(idx.content))
	}
	w := idx.wide[k-1]
	units := 1
	if w.size == utf8.UTFMax {
		units = 2
	}
	if utf16Offset < w.utf16Offset+units {
		return w.offset
	}
	return min(w.offset+w.size+(utf16Offset-w.utf16Offset-units), len(idx.content))
}

// snap clamps offset to the content and moves it to a codepoint boundary.
func (idx *Index) snap(offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= len(idx.content) {
		return len(idx.content)
	}
	k := idx.wideBefore(offset)
	if k > 0 {
		w := idx.wide[k-1]
		if offset < w.offset+w.size {
			return w.offset
		}
	}
	return offset
}

// wideBefore returns how many wide runes start strictly before offset.
func (idx *Index) wideBefore(offset int) int {
	return sort.Search(len(idx.wide), func(i int) bool {
		return idx.wide[i].offset >= offset
	})
}

// runesBefore counts the codepoints that start before a boundary offset.
func (idx *Index) runesBefore(offset int) int {
	k := idx.wideBefore(offset)
	if k == 0 {
		return offset
	}
	last := idx.wide[k-1]
	return offset - last.extraBefore - (last.size - 1)
}
