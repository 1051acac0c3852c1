// Package definition models the documentable declarations found in a
// Solidity source file.
package definition

import (
	"fmt"

	"github.com/yaklabco/lintspec/pkg/textindex"
)

// Kind is the type of declaration.
type Kind uint8

const (
	KindContract Kind = iota
	KindInterface
	KindLibrary
	KindConstructor
	KindFunction
	KindModifier
	KindStruct
	KindEnum
	KindError
	KindEvent
	KindVariable
)

var kindNames = [...]string{
	KindContract:    "contract",
	KindInterface:   "interface",
	KindLibrary:     "library",
	KindConstructor: "constructor",
	KindFunction:    "function",
	KindModifier:    "modifier",
	KindStruct:      "struct",
	KindEnum:        "enum",
	KindError:       "error",
	KindEvent:       "event",
	KindVariable:    "variable",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Kinds returns every declaration kind in display order.
func Kinds() []Kind {
	return []Kind{
		KindContract, KindInterface, KindLibrary, KindConstructor, KindFunction, KindModifier,
		KindStruct, KindEnum, KindError, KindEvent, KindVariable,
	}
}

// IsType reports whether the kind is a contract, interface or library.
func (k Kind) IsType() bool {
	return k == KindContract || k == KindInterface || k == KindLibrary
}

// Visibility applies to functions and state variables.
type Visibility uint8

const (
	VisibilityNone Visibility = iota
	VisibilityPrivate
	VisibilityInternal
	VisibilityPublic
	VisibilityExternal
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPrivate:
		return "private"
	case VisibilityInternal:
		return "internal"
	case VisibilityPublic:
		return "public"
	case VisibilityExternal:
		return "external"
	default:
		return ""
	}
}

// ParseVisibility maps a keyword to a visibility.
func ParseVisibility(word string) (Visibility, bool) {
	switch word {
	case "private":
		return VisibilityPrivate, true
	case "internal":
		return VisibilityInternal, true
	case "public":
		return VisibilityPublic, true
	case "external":
		return VisibilityExternal, true
	default:
		return VisibilityNone, false
	}
}

// Identifier is a parameter, member or return value. Name is empty for
// unnamed return values and parameters.
type Identifier struct {
	Name string
	Span textindex.Span
}

// IsNamed reports whether the identifier carries a name.
func (id Identifier) IsNamed() bool {
	return id.Name != ""
}

// Parent identifies the contract, interface or library enclosing a
// declaration.
type Parent struct {
	Kind Kind
	Name string
}

func (p Parent) String() string {
	return p.Name
}

// RawComment is the unparsed doc comment text attached to a declaration.
// Span covers Text exactly.
type RawComment struct {
	Text string
	Span textindex.Span
}

// Definition is one documentable declaration. Definitions are produced by a
// parser backend and not modified afterwards.
type Definition struct {
	Kind       Kind
	Visibility Visibility
	Name       string

	// Span covers the whole declaration; NameSpan covers the token that
	// names it.
	Span     textindex.Span
	NameSpan textindex.Span

	Params  []Identifier
	Returns []Identifier

	IsOverride bool

	// IsReceiveOrFallback marks the receive or fallback function, declared
	// with its keyword or, before 0.6, as an unnamed function.
	IsReceiveOrFallback bool

	// Parent is nil for file-level declarations.
	Parent *Parent

	// AncestorNames lists the bases of the enclosing contract, interface or
	// library, including bases of bases declared in the same file. For a
	// contract, interface or library it is the declaration's own list.
	AncestorNames []string

	Comment *RawComment
}

// HasAncestor reports whether name is one of the declaration's ancestors.
func (d *Definition) HasAncestor(name string) bool {
	for _, ancestor := range d.AncestorNames {
		if ancestor == name {
			return true
		}
	}
	return false
}

// QualifiedName returns "Parent.name", or just the name at file level.
func (d *Definition) QualifiedName() string {
	if d.Parent == nil {
		return d.Name
	}
	return d.Parent.Name + "." + d.Name
}

// Param returns the parameter with the given name.
func (d *Definition) Param(name string) (Identifier, bool) {
	for _, param := range d.Params {
		if param.IsNamed() && param.Name == name {
			return param, true
		}
	}
	return Identifier{}, false
}

// ReturnNamed reports whether one of the return values is called name.
func (d *Definition) ReturnNamed(name string) bool {
	for _, ret := range d.Returns {
		if ret.IsNamed() && ret.Name == name {
			return true
		}
	}
	return false
}
