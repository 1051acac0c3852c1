package parser

import "github.com/yaklabco/lintspec/pkg/definition"

// resolveAncestors replaces each definition's direct base list with every
// base reachable through types declared in the same file. Bases declared
// elsewhere stay as written; nothing outside the file is consulted.
func resolveAncestors(defs []definition.Definition) {
	direct := make(map[string][]string)
	for i := range defs {
		if defs[i].Kind.IsType() {
			direct[defs[i].Name] = defs[i].AncestorNames
		}
	}

	closure := make(map[string][]string)
	var walk func(name string, seen map[string]bool) []string
	walk = func(name string, seen map[string]bool) []string {
		var out []string
		for _, base := range direct[name] {
			if seen[base] {
				continue
			}
			seen[base] = true
			out = append(out, base)
			out = append(out, walk(base, seen)...)
		}
		return out
	}

	for name := range direct {
		closure[name] = walk(name, map[string]bool{name: true})
	}

	for i := range defs {
		def := &defs[i]
		owner := ""
		switch {
		case def.Kind.IsType():
			owner = def.Name
		case def.Parent != nil:
			owner = def.Parent.Name
		default:
			continue
		}
		if all, ok := closure[owner]; ok && len(all) > 0 {
			def.AncestorNames = append([]string(nil), all...)
		}
	}
}
