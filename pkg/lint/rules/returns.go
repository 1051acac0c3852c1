package rules

import (
	"github.com/yaklabco/lintspec/pkg/config"
	"github.com/yaklabco/lintspec/pkg/definition"
	"github.com/yaklabco/lintspec/pkg/lint"
	"github.com/yaklabco/lintspec/pkg/natspec"
)

// ReturnRule matches @return tags against return values.
//
// A tag whose first word is the name of a named return value documents
// that value. Every other tag is positional: the n-th such tag documents
// the n-th unnamed return value. This applies to lists that mix named and
// unnamed values too.
type ReturnRule struct {
	lint.BaseRule
}

// NewReturnRule creates the return rule.
func NewReturnRule() *ReturnRule {
	return &ReturnRule{
		BaseRule: lint.NewBaseRule("NS006", "return",
			"Every return value has exactly one @return; unnamed values match by position",
			[]string{"tag", "list"}),
	}
}

// Apply checks @return tags.
func (r *ReturnRule) Apply(ctx *lint.RuleContext) []lint.Diagnostic {
	if ctx.Waived {
		return nil
	}

	rule := ctx.Rule(config.TagReturn)
	tags := ctx.Tags(natspec.KindReturn)
	if rule == config.Ignored && len(tags) == 0 {
		return nil
	}

	var diags []lint.Diagnostic
	if rule == config.Forbidden {
		for _, tag := range tags {
			diags = append(diags, lint.NewDiagnostic(r, lint.KindForbiddenTag, tag.Span,
				"@return is forbidden").Build())
		}
		return diags
	}

	def := ctx.Def
	byName := make(map[string][]natspec.Tag, len(tags))
	var positional []natspec.Tag
	for _, tag := range tags {
		if tag.Name != "" && def.ReturnNamed(tag.Name) {
			byName[tag.Name] = append(byName[tag.Name], tag)
			continue
		}
		positional = append(positional, tag)
	}

	unnamed := 0
	seen := make(map[string]bool, len(def.Returns))
	for i, ret := range def.Returns {
		if !ret.IsNamed() {
			if unnamed >= len(positional) && rule == config.Required {
				diags = append(diags, r.missingUnnamed(def, i, ret))
			}
			unnamed++
			continue
		}

		if seen[ret.Name] {
			continue
		}
		seen[ret.Name] = true

		matched := byName[ret.Name]
		if len(matched) == 0 && rule == config.Required {
			diags = append(diags, lint.NewDiagnosticf(r, lint.KindMissingParam, ret.Span,
				"@return %s is missing", ret.Name).Build())
		}
		for _, tag := range matched[min(1, len(matched)):] {
			diags = append(diags, lint.NewDiagnosticf(r, lint.KindDuplicateParam, tag.Span,
				"@return %s is present more than once", ret.Name).Build())
		}
	}

	for _, tag := range positional[min(unnamed, len(positional)):] {
		diags = append(diags, lint.NewDiagnostic(r, lint.KindOrphanParam, tag.Span,
			"too many unnamed returns").Build())
	}
	return diags
}

func (r *ReturnRule) missingUnnamed(def *definition.Definition, idx int, ret definition.Identifier) lint.Diagnostic {
	if def.Kind == definition.KindVariable {
		return lint.NewDiagnostic(r, lint.KindMissingParam, ret.Span, "@return is missing").Build()
	}
	return lint.NewDiagnosticf(r, lint.KindMissingParam, ret.Span,
		"@return missing for unnamed return #%d", idx+1).Build()
}
