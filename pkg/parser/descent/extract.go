package descent

import "github.com/yaklabco/lintspec/pkg/definition"

// extract flattens the tree into definitions in source order. A contract
// precedes its members.
func extract(unit *sourceUnit) []definition.Definition {
	var defs []definition.Definition
	for _, item := range unit.items {
		defs = append(defs, toDefinition(item, nil, nil))
		if len(item.members) == 0 {
			continue
		}
		parent := &definition.Parent{Kind: item.kind.definitionKind(), Name: item.name}
		for _, member := range item.members {
			defs = append(defs, toDefinition(member, parent, item.bases))
		}
	}
	return defs
}

func toDefinition(n *node, parent *definition.Parent, ancestors []string) definition.Definition {
	if n.kind.definitionKind().IsType() {
		ancestors = n.bases
	}
	return definition.Definition{
		Kind:          n.kind.definitionKind(),
		Visibility:    n.visibility,
		Name:          n.name,
		Span:          n.span,
		NameSpan:      n.nameSpan,
		Params:        toIdentifiers(n.params),
		Returns:       toIdentifiers(n.returns),
		IsOverride:    n.override,
		Parent:        parent,
		AncestorNames: append([]string(nil), ancestors...),
		Comment:       n.doc,

		IsReceiveOrFallback: n.special,
	}
}

func toIdentifiers(params []param) []definition.Identifier {
	if len(params) == 0 {
		return nil
	}
	out := make([]definition.Identifier, len(params))
	for i, p := range params {
		out[i] = definition.Identifier{Name: p.name, Span: p.span}
	}
	return out
}
