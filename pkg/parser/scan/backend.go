// Package scan is a pattern-matching Solidity parser. It walks a flat token
// stream and recognizes declarations by their leading keywords, without
// building a syntax tree. Like editor tooling built on language servers, it
// works in UTF-16 code units; offsets are converted to bytes when results
// leave the package.
package scan

import (
	"github.com/yaklabco/lintspec/pkg/definition"
	"github.com/yaklabco/lintspec/pkg/parser/grammar"
	"github.com/yaklabco/lintspec/pkg/textindex"
)

// MinVersion is the oldest language version this backend parses.
const MinVersion = "v0.5.0"

// Backend parses by pattern matching.
type Backend struct{}

// New creates the backend.
func New() *Backend {
	return &Backend{}
}

// Name identifies the backend in configuration.
func (*Backend) Name() string {
	return "scan"
}

// MinVersion returns the oldest supported language version.
func (*Backend) MinVersion() string {
	return MinVersion
}

// Parse returns the definitions in src in source order.
func (*Backend) Parse(src []byte, features grammar.Features) ([]definition.Definition, error) {
	sc, err := newScanner(src)
	if err != nil {
		return nil, grammar.Errorf(0, "%v", err)
	}
	toks := sc.all()

	idx := textindex.New(src)
	conv := converter{src: src, idx: idx}

	if sc.unterminated >= 0 {
		return nil, grammar.Errorf(idx.ByteOffset(sc.unterminated), "unterminated block comment")
	}

	m := &matcher{toks: toks, features: features}
	if merr := m.run(); merr != nil {
		return nil, grammar.Errorf(conv.offset(merr.at), "%s", merr.message)
	}

	defs := make([]definition.Definition, 0, len(m.items))
	for _, it := range m.items {
		defs = append(defs, conv.definition(it))
	}
	return defs, nil
}

// converter maps UTF-16 positions to bytes through the text index.
type converter struct {
	src []byte
	idx *textindex.Index
}

func (c converter) offset(unit uint32) int {
	return c.idx.ByteOffset(int(unit))
}

func (c converter) span(sp span16) textindex.Span {
	return textindex.Span{Start: c.offset(sp.start), End: c.offset(sp.end)}
}

func (c converter) identifiers(ids []ident16) []definition.Identifier {
	if len(ids) == 0 {
		return nil
	}
	out := make([]definition.Identifier, len(ids))
	for i, id := range ids {
		out[i] = definition.Identifier{Name: id.name, Span: c.span(id.sp)}
	}
	return out
}

func (c converter) definition(it *item) definition.Definition {
	def := definition.Definition{
		Kind:          it.kind,
		Visibility:    it.visibility,
		Name:          it.name,
		Span:          c.span(it.sp),
		NameSpan:      c.span(it.nameSp),
		Params:        c.identifiers(it.params),
		Returns:       c.identifiers(it.returns),
		IsOverride:    it.override,
		Parent:        it.parent,
		AncestorNames: append([]string(nil), it.bases...),

		IsReceiveOrFallback: it.special,
	}
	if it.doc != nil {
		span := c.span(*it.doc)
		def.Comment = &definition.RawComment{Text: string(c.src[span.Start:span.End]), Span: span}
	}
	return def
}
