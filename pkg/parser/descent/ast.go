package descent

import (
	"github.com/yaklabco/lintspec/pkg/definition"
	"github.com/yaklabco/lintspec/pkg/textindex"
)

// nodeKind is the syntax node type. It mirrors definition.Kind but keeps the
// tree independent of the output model.
type nodeKind uint8

const (
	nodeContract nodeKind = iota
	nodeInterface
	nodeLibrary
	nodeConstructor
	nodeFunction
	nodeModifier
	nodeStruct
	nodeEnum
	nodeError
	nodeEvent
	nodeVariable
)

// param is one entry in a parameter, return or member list.
type param struct {
	name string
	span textindex.Span
}

// node is a declaration in the syntax tree. Contract-like nodes hold their
// members; all others are leaves.
type node struct {
	kind       nodeKind
	name       string
	nameSpan   textindex.Span
	span       textindex.Span
	doc        *definition.RawComment
	visibility definition.Visibility
	override   bool
	special    bool
	params     []param
	returns    []param
	bases      []string
	members    []*node
}

// sourceUnit is the root of the tree.
type sourceUnit struct {
	items []*node
}

func (k nodeKind) definitionKind() definition.Kind {
	switch k {
	case nodeContract:
		return definition.KindContract
	case nodeInterface:
		return definition.KindInterface
	case nodeLibrary:
		return definition.KindLibrary
	case nodeConstructor:
		return definition.KindConstructor
	case nodeFunction:
		return definition.KindFunction
	case nodeModifier:
		return definition.KindModifier
	case nodeStruct:
		return definition.KindStruct
	case nodeEnum:
		return definition.KindEnum
	case nodeError:
		return definition.KindError
	case nodeEvent:
		return definition.KindEvent
	default:
		return definition.KindVariable
	}
}
