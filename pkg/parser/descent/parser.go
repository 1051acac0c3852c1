// Package descent is a recursive-descent Solidity parser. It builds a
// syntax tree of declarations over the shared lexer and reports byte
// offsets natively.
package descent

import (
	"github.com/yaklabco/lintspec/pkg/definition"
	"github.com/yaklabco/lintspec/pkg/parser/grammar"
	"github.com/yaklabco/lintspec/pkg/parser/lexer"
	"github.com/yaklabco/lintspec/pkg/textindex"
)

// MinVersion is the oldest language version this backend parses.
const MinVersion = "v0.4.0"

// Backend parses with recursive descent.
type Backend struct{}

// New creates the backend.
func New() *Backend {
	return &Backend{}
}

// Name identifies the backend in configuration.
func (*Backend) Name() string {
	return "descent"
}

// MinVersion returns the oldest supported language version.
func (*Backend) MinVersion() string {
	return MinVersion
}

// Parse returns the definitions in src in source order.
func (*Backend) Parse(src []byte, features grammar.Features) ([]definition.Definition, error) {
	toks := lexer.Tokenize(src)
	if trivia, ok := lexer.Unterminated(toks); ok {
		return nil, grammar.Errorf(trivia.Span.Start, "unterminated block comment")
	}

	p := &parser{src: src, toks: toks, features: features}
	unit, err := p.parseSourceUnit()
	if err != nil {
		return nil, err
	}
	return extract(unit), nil
}

type parser struct {
	src      []byte
	toks     []lexer.Token
	pos      int
	features grammar.Features

	// prevEnd is the end offset of the last consumed token.
	prevEnd int
}

func (p *parser) peek() lexer.Token {
	return p.toks[p.pos]
}

func (p *parser) peekAt(n int) lexer.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) next() lexer.Token {
	tok := p.toks[p.pos]
	if tok.Kind != lexer.EOF {
		p.pos++
		p.prevEnd = tok.Span.End
	}
	return tok
}

func (p *parser) at(text string) bool {
	return p.peek().Is(text)
}

func (p *parser) accept(text string) bool {
	if p.at(text) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(text string) (lexer.Token, error) {
	tok := p.peek()
	if !tok.Is(text) {
		return tok, p.unexpected(tok, "expected "+quote(text))
	}
	return p.next(), nil
}

func (p *parser) expectIdent() (lexer.Token, error) {
	tok := p.peek()
	if tok.Kind != lexer.Ident {
		return tok, p.unexpected(tok, "expected identifier")
	}
	return p.next(), nil
}

func (p *parser) unexpected(tok lexer.Token, want string) error {
	switch tok.Kind {
	case lexer.EOF:
		return grammar.Errorf(tok.Span.Start, "%s, found end of file", want)
	case lexer.Illegal:
		return grammar.Errorf(tok.Span.Start, "unexpected character %q", tok.Text)
	default:
		return grammar.Errorf(tok.Span.Start, "%s, found %q", want, tok.Text)
	}
}

func (p *parser) spanFrom(start lexer.Token) textindex.Span {
	return textindex.Span{Start: start.Span.Start, End: p.prevEnd}
}

func (p *parser) doc(tok lexer.Token) *definition.RawComment {
	return lexer.DocComment(p.src, tok.Leading)
}

func (p *parser) parseSourceUnit() (*sourceUnit, error) {
	unit := &sourceUnit{}

	for {
		tok := p.peek()
		if tok.Kind == lexer.EOF {
			return unit, nil
		}

		var (
			item *node
			err  error
		)
		switch {
		case tok.Is("pragma"), tok.Is("import"), tok.Is("using"), tok.Is("type"):
			err = p.skipStatement()
		case tok.Is(";"):
			p.next()
		case tok.Is("abstract"), tok.Is("contract"), tok.Is("interface"), tok.Is("library"):
			item, err = p.parseContract()
		case tok.Is("struct"):
			item, err = p.parseStruct()
		case tok.Is("enum"):
			item, err = p.parseEnum()
		case tok.Is("function") && p.features.FreeFunctions:
			item, err = p.parseFunction(nodeContract, true)
		case tok.Is("error") && p.features.ErrorDefinitions:
			item, err = p.parseEventOrError(nodeError)
		case tok.Is("event") && p.features.FileLevelEvents:
			item, err = p.parseEventOrError(nodeEvent)
		default:
			item, err = p.parseVariable(definition.VisibilityInternal)
		}
		if err != nil {
			return nil, err
		}
		if item != nil {
			unit.items = append(unit.items, item)
		}
	}
}

func (p *parser) parseContract() (*node, error) {
	start := p.peek()
	p.accept("abstract")

	kw := p.next()
	n := &node{doc: p.doc(start)}
	switch kw.Text {
	case "contract":
		n.kind = nodeContract
	case "interface":
		n.kind = nodeInterface
	case "library":
		n.kind = nodeLibrary
	default:
		return nil, p.unexpected(kw, "expected \"contract\"")
	}

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	n.name, n.nameSpan = name.Text, name.Span

	if p.accept("is") {
		for {
			base, err := p.parsePath()
			if err != nil {
				return nil, err
			}
			n.bases = append(n.bases, base)
			if p.at("(") {
				if err := p.skipBalanced(); err != nil {
					return nil, err
				}
			}
			if !p.accept(",") {
				break
			}
		}
	}

	if _, err := p.expect("{"); err != nil {
		return nil, err
	}
	for !p.at("}") {
		member, err := p.parseMember(n.kind)
		if err != nil {
			return nil, err
		}
		if member != nil {
			n.members = append(n.members, member)
		}
	}
	p.next()

	n.span = p.spanFrom(start)
	return n, nil
}

func (p *parser) parseMember(container nodeKind) (*node, error) {
	tok := p.peek()
	switch {
	case tok.Kind == lexer.EOF:
		return nil, p.unexpected(tok, "expected \"}\"")
	case tok.Is(";"):
		p.next()
		return nil, nil
	case tok.Is("using"), tok.Is("type"):
		return nil, p.skipStatement()
	case tok.Is("function"):
		if p.peekAt(1).Is("(") && p.features.ReceiveFallback {
			return p.parseVariable(definition.VisibilityInternal)
		}
		return p.parseFunction(container, false)
	case tok.Is("constructor"):
		return p.parseSpecialFunction(nodeConstructor, container)
	case p.features.ReceiveFallback && (tok.Is("receive") || tok.Is("fallback")) && p.peekAt(1).Is("("):
		return p.parseSpecialFunction(nodeFunction, container)
	case tok.Is("modifier"):
		return p.parseModifier()
	case tok.Is("struct"):
		return p.parseStruct()
	case tok.Is("enum"):
		return p.parseEnum()
	case tok.Is("event"):
		return p.parseEventOrError(nodeEvent)
	case tok.Is("error") && p.features.ErrorDefinitions:
		return p.parseEventOrError(nodeError)
	default:
		return p.parseVariable(definition.VisibilityInternal)
	}
}

// defaultVisibility is the visibility of a function that names none.
func defaultVisibility(container nodeKind, free bool) definition.Visibility {
	switch {
	case free:
		return definition.VisibilityInternal
	case container == nodeInterface:
		return definition.VisibilityExternal
	default:
		return definition.VisibilityPublic
	}
}

func (p *parser) parseFunction(container nodeKind, free bool) (*node, error) {
	start := p.next()
	n := &node{kind: nodeFunction, doc: p.doc(start)}

	if tok := p.peek(); tok.Kind == lexer.Ident {
		p.next()
		n.name, n.nameSpan = tok.Text, tok.Span
	} else if !p.features.ReceiveFallback {
		n.name, n.nameSpan = "fallback", start.Span
		n.special = true
	} else {
		return nil, p.unexpected(tok, "expected function name")
	}

	return p.finishFunction(n, start, defaultVisibility(container, free))
}

// parseSpecialFunction handles constructor, receive and fallback, whose
// keyword is also their name.
func (p *parser) parseSpecialFunction(kind nodeKind, container nodeKind) (*node, error) {
	start := p.next()
	n := &node{kind: kind, name: start.Text, nameSpan: start.Span, doc: p.doc(start)}
	n.special = kind == nodeFunction
	return p.finishFunction(n, start, defaultVisibility(container, false))
}

func (p *parser) finishFunction(n *node, start lexer.Token, visibility definition.Visibility) (*node, error) {
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	n.params = params
	n.visibility = visibility

	if err := p.parseAttributes(n); err != nil {
		return nil, err
	}

	if p.accept("returns") {
		returns, err := p.parseParams()
		if err != nil {
			return nil, err
		}
		n.returns = returns
	}

	if err := p.parseBodyOrSemicolon(); err != nil {
		return nil, err
	}
	n.span = p.spanFrom(start)
	return n, nil
}

// parseAttributes reads visibility, mutability, virtual, override and
// modifier invocations up to "returns", a body or ";".
func (p *parser) parseAttributes(n *node) error {
	for {
		tok := p.peek()
		if tok.Is("{") || tok.Is(";") || tok.Is("returns") {
			return nil
		}
		if tok.Kind != lexer.Ident {
			return p.unexpected(tok, "expected \"{\" or \";\"")
		}
		p.next()

		if vis, ok := definition.ParseVisibility(tok.Text); ok {
			n.visibility = vis
			continue
		}
		if tok.Text == "override" && p.features.VirtualOverride {
			n.override = true
		}
		for p.accept(".") {
			if _, err := p.expectIdent(); err != nil {
				return err
			}
		}
		if p.at("(") {
			if err := p.skipBalanced(); err != nil {
				return err
			}
		}
	}
}

func (p *parser) parseBodyOrSemicolon() error {
	if p.accept(";") {
		return nil
	}
	if p.at("{") {
		return p.skipBalanced()
	}
	return p.unexpected(p.peek(), "expected \"{\" or \";\"")
}

func (p *parser) parseModifier() (*node, error) {
	start := p.next()
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	n := &node{kind: nodeModifier, name: name.Text, nameSpan: name.Span, doc: p.doc(start)}

	if p.at("(") {
		if n.params, err = p.parseParams(); err != nil {
			return nil, err
		}
	}
	if err := p.parseAttributes(n); err != nil {
		return nil, err
	}
	n.visibility = definition.VisibilityNone
	if err := p.parseBodyOrSemicolon(); err != nil {
		return nil, err
	}
	n.span = p.spanFrom(start)
	return n, nil
}

func (p *parser) parseStruct() (*node, error) {
	start := p.next()
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	n := &node{kind: nodeStruct, name: name.Text, nameSpan: name.Span, doc: p.doc(start)}

	if _, err := p.expect("{"); err != nil {
		return nil, err
	}
	for !p.accept("}") {
		if err := p.parseType(); err != nil {
			return nil, err
		}
		member, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		n.params = append(n.params, param{name: member.Text, span: member.Span})
		if _, err := p.expect(";"); err != nil {
			return nil, err
		}
	}
	n.span = p.spanFrom(start)
	return n, nil
}

func (p *parser) parseEnum() (*node, error) {
	start := p.next()
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	n := &node{kind: nodeEnum, name: name.Text, nameSpan: name.Span, doc: p.doc(start)}

	if _, err := p.expect("{"); err != nil {
		return nil, err
	}
	for !p.accept("}") {
		member, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		n.params = append(n.params, param{name: member.Text, span: member.Span})
		if !p.accept(",") {
			if _, err := p.expect("}"); err != nil {
				return nil, err
			}
			break
		}
	}
	n.span = p.spanFrom(start)
	return n, nil
}

func (p *parser) parseEventOrError(kind nodeKind) (*node, error) {
	start := p.next()
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	n := &node{kind: kind, name: name.Text, nameSpan: name.Span, doc: p.doc(start)}

	if n.params, err = p.parseParams(); err != nil {
		return nil, err
	}
	if kind == nodeEvent {
		p.accept("anonymous")
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	n.span = p.spanFrom(start)
	return n, nil
}

// parseVariable reads a state variable or file-level constant:
// type, attributes, name, optional initializer, ";".
func (p *parser) parseVariable(visibility definition.Visibility) (*node, error) {
	start := p.peek()
	n := &node{kind: nodeVariable, visibility: visibility, doc: p.doc(start)}

	if err := p.parseType(); err != nil {
		return nil, err
	}

	var words []lexer.Token
	for p.peek().Kind == lexer.Ident {
		tok := p.next()
		if tok.Text == "override" && p.at("(") {
			if err := p.skipBalanced(); err != nil {
				return nil, err
			}
		}
		words = append(words, tok)
	}
	if len(words) == 0 {
		return nil, p.unexpected(p.peek(), "expected variable name")
	}

	name := words[len(words)-1]
	for _, word := range words[:len(words)-1] {
		if err := p.applyVariableAttribute(n, word); err != nil {
			return nil, err
		}
	}
	n.name, n.nameSpan = name.Text, name.Span

	if p.accept("=") {
		if err := p.skipExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	n.span = p.spanFrom(start)

	if n.visibility == definition.VisibilityPublic {
		n.returns = []param{{span: n.nameSpan}}
	}
	return n, nil
}

func (p *parser) applyVariableAttribute(n *node, word lexer.Token) error {
	if vis, ok := definition.ParseVisibility(word.Text); ok && vis != definition.VisibilityExternal {
		n.visibility = vis
		return nil
	}
	switch word.Text {
	case "constant", "transient":
		return nil
	case "immutable":
		if p.features.Immutable {
			return nil
		}
	case "override":
		if p.features.VirtualOverride {
			n.override = true
			return nil
		}
	}
	return grammar.Errorf(word.Span.Start, "unexpected %q in variable declaration", word.Text)
}

// parseType reads a type name: an elementary or user-defined path, a
// mapping or a function type, each optionally followed by array brackets.
func (p *parser) parseType() error {
	switch {
	case p.accept("mapping"):
		if _, err := p.expect("("); err != nil {
			return err
		}
		if err := p.parseType(); err != nil {
			return err
		}
		if p.peek().Kind == lexer.Ident {
			p.next()
		}
		if _, err := p.expect("=>"); err != nil {
			return err
		}
		if err := p.parseType(); err != nil {
			return err
		}
		if p.peek().Kind == lexer.Ident {
			p.next()
		}
		if _, err := p.expect(")"); err != nil {
			return err
		}
	case p.accept("function"):
		if _, err := p.parseParams(); err != nil {
			return err
		}
		for isFunctionTypeAttribute(p.peek().Text) && p.peek().Kind == lexer.Ident {
			p.next()
		}
		if p.accept("returns") {
			if _, err := p.parseParams(); err != nil {
				return err
			}
		}
	default:
		path, err := p.parsePath()
		if err != nil {
			return err
		}
		if path == "address" {
			p.accept("payable")
		}
	}

	for p.at("[") {
		if err := p.skipBalanced(); err != nil {
			return err
		}
	}
	return nil
}

func isFunctionTypeAttribute(word string) bool {
	switch word {
	case "internal", "external", "pure", "view", "payable":
		return true
	default:
		return false
	}
}

func isDataLocation(word string) bool {
	switch word {
	case "memory", "storage", "calldata", "indexed":
		return true
	default:
		return false
	}
}

// parsePath reads "A" or "A.B.C".
func (p *parser) parsePath() (string, error) {
	first, err := p.expectIdent()
	if err != nil {
		return "", err
	}
	path := first.Text
	for p.at(".") {
		p.next()
		part, err := p.expectIdent()
		if err != nil {
			return "", err
		}
		path += "." + part.Text
	}
	return path, nil
}

// parseParams reads a parenthesized parameter list. Unnamed parameters get
// the span of their type.
func (p *parser) parseParams() ([]param, error) {
	if _, err := p.expect("("); err != nil {
		return nil, err
	}

	var params []param
	if p.accept(")") {
		return params, nil
	}

	for {
		start := p.peek()
		if err := p.parseType(); err != nil {
			return nil, err
		}
		for isDataLocation(p.peek().Text) && p.peek().Kind == lexer.Ident {
			p.next()
		}

		entry := param{span: p.spanFrom(start)}
		if tok := p.peek(); tok.Kind == lexer.Ident {
			p.next()
			entry = param{name: tok.Text, span: tok.Span}
		}
		params = append(params, entry)

		if p.accept(")") {
			return params, nil
		}
		if _, err := p.expect(","); err != nil {
			return nil, err
		}
	}
}

// skipStatement skips to and past the next ";" at nesting depth zero.
func (p *parser) skipStatement() error {
	if err := p.skipExpression(); err != nil {
		return err
	}
	_, err := p.expect(";")
	return err
}

// skipExpression advances to the next ";" at nesting depth zero without
// consuming it.
func (p *parser) skipExpression() error {
	for {
		tok := p.peek()
		switch {
		case tok.Kind == lexer.EOF:
			return p.unexpected(tok, "expected \";\"")
		case tok.Kind == lexer.Illegal:
			return p.unexpected(tok, "")
		case tok.Is(";"):
			return nil
		case tok.Is("("), tok.Is("["), tok.Is("{"):
			if err := p.skipBalanced(); err != nil {
				return err
			}
		case tok.Is(")"), tok.Is("]"), tok.Is("}"):
			return p.unexpected(tok, "expected \";\"")
		default:
			p.next()
		}
	}
}

// skipBalanced consumes a bracketed group starting at the current token,
// which must be an opening bracket.
func (p *parser) skipBalanced() error {
	var stack []string
	for {
		tok := p.next()
		switch {
		case tok.Kind == lexer.EOF:
			return p.unexpected(tok, "expected closing bracket")
		case tok.Kind == lexer.Illegal:
			return p.unexpected(tok, "")
		case tok.Is("("):
			stack = append(stack, ")")
		case tok.Is("["):
			stack = append(stack, "]")
		case tok.Is("{"):
			stack = append(stack, "}")
		case tok.Is(")"), tok.Is("]"), tok.Is("}"):
			if len(stack) == 0 || stack[len(stack)-1] != tok.Text {
				return grammar.Errorf(tok.Span.Start, "unbalanced %q", tok.Text)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return nil
			}
		}
	}
}

func quote(s string) string {
	return "\"" + s + "\""
}
