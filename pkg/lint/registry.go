package lint

import (
	"cmp"
	"slices"
	"strings"
	"sync"
)

// Registry holds the checks run by an Engine, keyed by ID ("NS005") and
// by name ("param").
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]Rule
	byName map[string]string
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[string]Rule),
		byName: make(map[string]string),
	}
}

// Register adds a rule. A rule with the same ID is replaced.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.byID[rule.ID()]; ok {
		delete(r.byName, old.Name())
	}
	r.byID[rule.ID()] = rule
	r.byName[rule.Name()] = rule.ID()
}

// Get finds a rule by ID, by name, or by the combined "NS005/param" form
// printed with --rule-format combined. IDs match case-insensitively.
func (r *Registry) Get(key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if id, name, combined := strings.Cut(key, "/"); combined {
		rule, ok := r.byID[strings.ToUpper(id)]
		if !ok || rule.Name() != name {
			return nil, false
		}
		return rule, true
	}
	if rule, ok := r.byID[strings.ToUpper(key)]; ok {
		return rule, true
	}
	if id, ok := r.byName[key]; ok {
		return r.byID[id], true
	}
	return nil, false
}

// Rules returns all registered rules sorted by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, 0, len(r.byID))
	for _, rule := range r.byID {
		result = append(result, rule)
	}
	slices.SortFunc(result, func(a, b Rule) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return result
}

// IDs returns all registered rule IDs in sorted order.
func (r *Registry) IDs() []string {
	rules := r.Rules()
	ids := make([]string, len(rules))
	for i, rule := range rules {
		ids[i] = rule.ID()
	}
	return ids
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// DefaultRegistry holds the built-in checks, which register themselves
// when the rules package is imported.
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
