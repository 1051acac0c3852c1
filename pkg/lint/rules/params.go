package rules

import (
	"github.com/yaklabco/lintspec/pkg/config"
	"github.com/yaklabco/lintspec/pkg/lint"
	"github.com/yaklabco/lintspec/pkg/natspec"
)

// ParamRule matches @param tags against parameters, struct members and
// enum variants by name.
type ParamRule struct {
	lint.BaseRule
}

// NewParamRule creates the param rule.
func NewParamRule() *ParamRule {
	return &ParamRule{
		BaseRule: lint.NewBaseRule("NS005", "param",
			"Every named parameter has exactly one @param, and every @param names a parameter",
			[]string{"tag", "list"}),
	}
}

// Apply checks @param tags. Unnamed parameters cannot be documented and
// are skipped.
func (r *ParamRule) Apply(ctx *lint.RuleContext) []lint.Diagnostic {
	if ctx.Waived {
		return nil
	}

	rule := ctx.Rule(config.TagParam)
	tags := ctx.Tags(natspec.KindParam)
	if rule == config.Ignored && len(tags) == 0 {
		return nil
	}

	var diags []lint.Diagnostic
	if rule == config.Forbidden {
		for _, tag := range tags {
			diags = append(diags, lint.NewDiagnostic(r, lint.KindForbiddenTag, tag.Span,
				"@param is forbidden").Build())
		}
		return diags
	}

	byName := make(map[string][]natspec.Tag, len(tags))
	for _, tag := range tags {
		if _, ok := ctx.Def.Param(tag.Name); !ok {
			diags = append(diags, lint.NewDiagnosticf(r, lint.KindOrphanParam, tag.NameSpan,
				"extra @param %s", tag.Name).Build())
			continue
		}
		byName[tag.Name] = append(byName[tag.Name], tag)
	}

	seen := make(map[string]bool, len(ctx.Def.Params))
	for _, param := range ctx.Def.Params {
		if !param.IsNamed() || seen[param.Name] {
			continue
		}
		seen[param.Name] = true

		matched := byName[param.Name]
		if len(matched) == 0 && rule == config.Required {
			diags = append(diags, lint.NewDiagnosticf(r, lint.KindMissingParam, param.Span,
				"@param %s is missing", param.Name).Build())
		}
		for _, tag := range matched[min(1, len(matched)):] {
			diags = append(diags, lint.NewDiagnosticf(r, lint.KindDuplicateParam, tag.Span,
				"@param %s is present more than once", param.Name).Build())
		}
	}
	return diags
}
