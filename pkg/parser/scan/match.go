package scan

import (
	"strings"

	"github.com/yaklabco/lintspec/pkg/definition"
	"github.com/yaklabco/lintspec/pkg/parser/grammar"
)

// ident16 is a named or unnamed parameter in UTF-16 coordinates.
type ident16 struct {
	name string
	sp   span16
}

// item is a matched declaration in UTF-16 coordinates.
type item struct {
	kind       definition.Kind
	visibility definition.Visibility
	name       string
	nameSp     span16
	sp         span16
	params     []ident16
	returns    []ident16
	override   bool
	special    bool
	parent     *definition.Parent
	bases      []string
	doc        *span16
}

// matchError carries a UTF-16 offset until it is converted at the boundary.
type matchError struct {
	at      uint32
	message string
}

// frame is an open contract, interface or library body.
type frame struct {
	item  *item
	index int
}

type matcher struct {
	toks     []token
	pos      int
	features grammar.Features
	items    []*item
	open     *frame
}

func (m *matcher) peek(n int) token {
	if m.pos+n >= len(m.toks) {
		return m.toks[len(m.toks)-1]
	}
	return m.toks[m.pos+n]
}

func (m *matcher) fail(tok token, message string) *matchError {
	if tok.kind == tokEOF {
		message += ", found end of file"
	} else {
		message += ", found " + `"` + tok.text + `"`
	}
	return &matchError{at: tok.sp.start, message: message}
}

// run matches declarations until the end of input.
func (m *matcher) run() *matchError {
	for {
		tok := m.peek(0)
		if tok.kind == tokIllegal {
			return &matchError{at: tok.sp.start, message: "unexpected character " + `"` + tok.text + `"`}
		}
		if tok.kind == tokEOF {
			if m.open != nil {
				return m.fail(tok, `expected "}"`)
			}
			return nil
		}

		if err := m.step(tok); err != nil {
			return err
		}
	}
}

func (m *matcher) step(tok token) *matchError {
	inType := m.open != nil

	switch {
	case tok.is("}") && inType:
		m.open.item.sp.end = tok.sp.end
		m.open = nil
		m.pos++
		return nil
	case tok.is(";"):
		m.pos++
		return nil
	case tok.is("pragma"), tok.is("import"), tok.is("using"), tok.is("type"):
		_, err := m.untilSemicolon()
		return err
	case !inType && (tok.is("abstract") || tok.is("contract") || tok.is("interface") || tok.is("library")):
		return m.matchContract()
	case tok.is("struct"):
		return m.matchStruct()
	case tok.is("enum"):
		return m.matchEnum()
	case tok.is("event") && (inType || m.features.FileLevelEvents):
		return m.matchEventOrError(definition.KindEvent)
	case tok.is("error") && m.features.ErrorDefinitions:
		return m.matchEventOrError(definition.KindError)
	case tok.is("modifier") && inType:
		return m.matchModifier()
	case tok.is("constructor") && inType:
		return m.matchFunction(definition.KindConstructor, true)
	case inType && m.features.ReceiveFallback && (tok.is("receive") || tok.is("fallback")) && m.peek(1).is("("):
		return m.matchFunction(definition.KindFunction, true)
	case tok.is("function") && (inType || m.features.FreeFunctions):
		if m.peek(1).is("(") && m.features.ReceiveFallback {
			return m.matchVariable()
		}
		return m.matchFunction(definition.KindFunction, false)
	default:
		return m.matchVariable()
	}
}

func (m *matcher) add(it *item) {
	if m.open != nil {
		it.parent = &definition.Parent{Kind: m.open.item.kind, Name: m.open.item.name}
		it.bases = m.open.item.bases
	}
	m.items = append(m.items, it)
}

func (m *matcher) matchContract() *matchError {
	first := m.peek(0)
	if first.is("abstract") {
		m.pos++
	}
	kw := m.peek(0)
	it := &item{sp: span16{start: first.sp.start}, doc: first.doc}
	switch kw.text {
	case "contract":
		it.kind = definition.KindContract
	case "interface":
		it.kind = definition.KindInterface
	case "library":
		it.kind = definition.KindLibrary
	default:
		return m.fail(kw, `expected "contract"`)
	}
	m.pos++

	name := m.peek(0)
	if name.kind != tokWord {
		return m.fail(name, "expected identifier")
	}
	it.name, it.nameSp = name.text, name.sp
	m.pos++

	if m.peek(0).is("is") {
		m.pos++
		group, err := m.until("{")
		if err != nil {
			return err
		}
		for _, part := range splitTop(group, ",") {
			base := pathOf(part)
			if base == "" {
				return m.fail(m.peek(0), "expected base name")
			}
			it.bases = append(it.bases, base)
		}
	}

	if !m.peek(0).is("{") {
		return m.fail(m.peek(0), `expected "{"`)
	}
	m.pos++

	m.add(it)
	m.open = &frame{item: it, index: len(m.items) - 1}
	return nil
}

func (m *matcher) matchFunction(kind definition.Kind, keywordIsName bool) *matchError {
	first := m.peek(0)
	it := &item{kind: kind, sp: span16{start: first.sp.start}, doc: first.doc}
	m.pos++

	switch {
	case keywordIsName:
		it.name, it.nameSp = first.text, first.sp
		it.special = kind == definition.KindFunction
	case m.peek(0).kind == tokWord:
		it.name, it.nameSp = m.peek(0).text, m.peek(0).sp
		m.pos++
	case !m.features.ReceiveFallback:
		it.name, it.nameSp = "fallback", first.sp
		it.special = true
	default:
		return m.fail(m.peek(0), "expected function name")
	}

	switch {
	case m.open == nil:
		it.visibility = definition.VisibilityInternal
	case m.open.item.kind == definition.KindInterface:
		it.visibility = definition.VisibilityExternal
	default:
		it.visibility = definition.VisibilityPublic
	}

	params, err := m.paramGroup()
	if err != nil {
		return err
	}
	it.params = params

	if err := m.matchTail(it); err != nil {
		return err
	}
	m.add(it)
	return nil
}

func (m *matcher) matchModifier() *matchError {
	first := m.peek(0)
	it := &item{kind: definition.KindModifier, sp: span16{start: first.sp.start}, doc: first.doc}
	m.pos++

	name := m.peek(0)
	if name.kind != tokWord {
		return m.fail(name, "expected identifier")
	}
	it.name, it.nameSp = name.text, name.sp
	m.pos++

	if m.peek(0).is("(") {
		params, err := m.paramGroup()
		if err != nil {
			return err
		}
		it.params = params
	}
	if err := m.matchTail(it); err != nil {
		return err
	}
	it.visibility = definition.VisibilityNone
	m.add(it)
	return nil
}

// matchTail reads attributes, an optional returns list and the body or ";"
// that ends a function or modifier.
func (m *matcher) matchTail(it *item) *matchError {
	for {
		tok := m.peek(0)
		switch {
		case tok.is(";"):
			m.pos++
			it.sp.end = tok.sp.end
			return nil
		case tok.is("{"):
			end, err := m.group()
			if err != nil {
				return err
			}
			it.sp.end = end
			return nil
		case tok.is("returns"):
			m.pos++
			returns, err := m.paramGroup()
			if err != nil {
				return err
			}
			it.returns = returns
		case tok.is("("), tok.is("."):
			if tok.is("(") {
				if _, err := m.group(); err != nil {
					return err
				}
			} else {
				m.pos++
			}
		case tok.kind == tokWord:
			if vis, ok := definition.ParseVisibility(tok.text); ok {
				it.visibility = vis
			} else if tok.text == "override" && m.features.VirtualOverride {
				it.override = true
			}
			m.pos++
		default:
			return m.fail(tok, `expected "{" or ";"`)
		}
	}
}

func (m *matcher) matchStruct() *matchError {
	first := m.peek(0)
	it := &item{kind: definition.KindStruct, sp: span16{start: first.sp.start}, doc: first.doc}
	m.pos++
	if err := m.named(it); err != nil {
		return err
	}

	body, end, err := m.body()
	if err != nil {
		return err
	}
	for _, member := range splitTop(body, ";") {
		if len(member) == 0 {
			continue
		}
		last := member[len(member)-1]
		if last.kind != tokWord || len(member) < 2 {
			return m.fail(last, "expected member name")
		}
		it.params = append(it.params, ident16{name: last.text, sp: last.sp})
	}
	if n := len(body); n > 0 && !body[n-1].is(";") {
		return m.fail(body[n-1], `expected ";"`)
	}
	it.sp.end = end
	m.add(it)
	return nil
}

func (m *matcher) matchEnum() *matchError {
	first := m.peek(0)
	it := &item{kind: definition.KindEnum, sp: span16{start: first.sp.start}, doc: first.doc}
	m.pos++
	if err := m.named(it); err != nil {
		return err
	}

	body, end, err := m.body()
	if err != nil {
		return err
	}
	for _, member := range splitTop(body, ",") {
		if len(member) == 0 {
			continue
		}
		if len(member) != 1 || member[0].kind != tokWord {
			return m.fail(member[0], "expected enum member")
		}
		it.params = append(it.params, ident16{name: member[0].text, sp: member[0].sp})
	}
	it.sp.end = end
	m.add(it)
	return nil
}

func (m *matcher) matchEventOrError(kind definition.Kind) *matchError {
	first := m.peek(0)
	it := &item{kind: kind, sp: span16{start: first.sp.start}, doc: first.doc}
	m.pos++
	if err := m.named(it); err != nil {
		return err
	}

	params, err := m.paramGroup()
	if err != nil {
		return err
	}
	it.params = params

	if kind == definition.KindEvent && m.peek(0).is("anonymous") {
		m.pos++
	}
	if !m.peek(0).is(";") {
		return m.fail(m.peek(0), `expected ";"`)
	}
	it.sp.end = m.peek(0).sp.end
	m.pos++
	m.add(it)
	return nil
}

// matchVariable matches "type attributes name [= value];".
func (m *matcher) matchVariable() *matchError {
	first := m.peek(0)
	it := &item{kind: definition.KindVariable, visibility: definition.VisibilityInternal,
		sp: span16{start: first.sp.start}, doc: first.doc}

	stmt, err := m.untilSemicolon()
	if err != nil {
		return err
	}
	it.sp.end = stmt[len(stmt)-1].sp.end

	decl := stmt[:len(stmt)-1]
	for i, tok := range decl {
		if tok.is("=") {
			decl = decl[:i]
			break
		}
	}
	if len(decl) < 2 || decl[len(decl)-1].kind != tokWord || decl[len(decl)-2].is(".") {
		return m.fail(stmt[len(stmt)-1], "expected variable name")
	}
	name := decl[len(decl)-1]
	it.name, it.nameSp = name.text, name.sp

	depth := 0
	for _, tok := range decl[:len(decl)-1] {
		switch {
		case tok.is("("), tok.is("["):
			depth++
		case tok.is(")"), tok.is("]"):
			depth--
		case depth > 0:
		case tok.is("public"):
			it.visibility = definition.VisibilityPublic
		case tok.is("private"):
			it.visibility = definition.VisibilityPrivate
		case tok.is("internal") && !isFunctionType(decl):
			it.visibility = definition.VisibilityInternal
		case tok.is("immutable") && !m.features.Immutable,
			tok.is("override") && !m.features.VirtualOverride:
			return m.fail(tok, "unexpected attribute")
		case tok.is("override"):
			it.override = true
		}
	}

	if it.visibility == definition.VisibilityPublic {
		it.returns = []ident16{{sp: it.nameSp}}
	}
	m.add(it)
	return nil
}

func isFunctionType(decl []token) bool {
	return len(decl) > 0 && decl[0].is("function")
}

func (m *matcher) named(it *item) *matchError {
	name := m.peek(0)
	if name.kind != tokWord {
		return m.fail(name, "expected identifier")
	}
	it.name, it.nameSp = name.text, name.sp
	m.pos++
	return nil
}

// body consumes a brace group and returns the tokens inside it and the end
// of the closing brace.
func (m *matcher) body() ([]token, uint32, *matchError) {
	if !m.peek(0).is("{") {
		return nil, 0, m.fail(m.peek(0), `expected "{"`)
	}
	start := m.pos
	end, err := m.group()
	if err != nil {
		return nil, 0, err
	}
	return m.toks[start+1 : m.pos-1], end, nil
}

// paramGroup consumes a parenthesized list and names each entry.
func (m *matcher) paramGroup() ([]ident16, *matchError) {
	if !m.peek(0).is("(") {
		return nil, m.fail(m.peek(0), `expected "("`)
	}
	start := m.pos
	if _, err := m.group(); err != nil {
		return nil, err
	}
	inner := m.toks[start+1 : m.pos-1]

	var params []ident16
	for _, part := range splitTop(inner, ",") {
		if len(part) == 0 {
			if len(inner) == 0 {
				break
			}
			return nil, m.fail(m.toks[start], "empty parameter")
		}
		params = append(params, nameOf(part))
	}
	return params, nil
}

// nameOf applies the naming pattern to one parameter: a trailing word that
// is not a keyword and not part of a dotted path is the name.
func nameOf(part []token) ident16 {
	last := part[len(part)-1]
	if len(part) >= 2 && last.kind == tokWord && !reserved[last.text] && !part[len(part)-2].is(".") {
		return ident16{name: last.text, sp: last.sp}
	}
	return ident16{sp: span16{start: part[0].sp.start, end: last.sp.end}}
}

var reserved = map[string]bool{
	"memory": true, "storage": true, "calldata": true, "indexed": true, "payable": true,
	"internal": true, "external": true, "public": true, "private": true, "pure": true, "view": true,
}

// group consumes a balanced bracket group at the current token and returns
// the end offset of its closing bracket.
func (m *matcher) group() (uint32, *matchError) {
	var stack []string
	for {
		tok := m.peek(0)
		m.pos++
		switch {
		case tok.kind == tokEOF:
			m.pos--
			return 0, m.fail(tok, "expected closing bracket")
		case tok.kind == tokIllegal:
			return 0, &matchError{at: tok.sp.start, message: "unexpected character " + `"` + tok.text + `"`}
		case tok.is("("):
			stack = append(stack, ")")
		case tok.is("["):
			stack = append(stack, "]")
		case tok.is("{"):
			stack = append(stack, "}")
		case tok.is(")"), tok.is("]"), tok.is("}"):
			if len(stack) == 0 || stack[len(stack)-1] != tok.text {
				return 0, &matchError{at: tok.sp.start, message: "unbalanced " + `"` + tok.text + `"`}
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return tok.sp.end, nil
			}
		}
	}
}

// until returns the tokens before the next depth-zero occurrence of text,
// leaving it unconsumed.
func (m *matcher) until(text string) ([]token, *matchError) {
	start := m.pos
	for {
		tok := m.peek(0)
		switch {
		case tok.is(text):
			return m.toks[start:m.pos], nil
		case tok.kind == tokEOF:
			return nil, m.fail(tok, `expected "`+text+`"`)
		case tok.kind == tokIllegal:
			return nil, &matchError{at: tok.sp.start, message: "unexpected character " + `"` + tok.text + `"`}
		case tok.is("(") || tok.is("["):
			if _, err := m.group(); err != nil {
				return nil, err
			}
		case tok.is("{") || tok.is(")") || tok.is("]") || tok.is("}"):
			return nil, m.fail(tok, `expected "`+text+`"`)
		default:
			m.pos++
		}
	}
}

// untilSemicolon consumes a statement including its ";". Braces are only
// allowed inside parentheses or brackets.
func (m *matcher) untilSemicolon() ([]token, *matchError) {
	start := m.pos
	if _, err := m.until(";"); err != nil {
		return nil, err
	}
	m.pos++
	return m.toks[start:m.pos], nil
}

// splitTop splits toks on sep at bracket depth zero.
func splitTop(toks []token, sep string) [][]token {
	var (
		parts [][]token
		depth int
		start int
	)
	for i, tok := range toks {
		switch {
		case tok.is("("), tok.is("["), tok.is("{"):
			depth++
		case tok.is(")"), tok.is("]"), tok.is("}"):
			depth--
		case depth == 0 && tok.is(sep):
			parts = append(parts, toks[start:i])
			start = i + 1
		}
	}
	if start < len(toks) || len(toks) == 0 {
		parts = append(parts, toks[start:])
	}
	return parts
}

// pathOf joins the leading "A.B.C" path of a base specifier.
func pathOf(toks []token) string {
	var parts []string
	for i, tok := range toks {
		if tok.is("(") {
			break
		}
		if i%2 == 0 {
			if tok.kind != tokWord {
				return ""
			}
			parts = append(parts, tok.text)
		} else if !tok.is(".") {
			return ""
		}
	}
	return strings.Join(parts, ".")
}
