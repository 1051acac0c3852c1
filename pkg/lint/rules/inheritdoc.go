package rules

import (
	"github.com/yaklabco/lintspec/pkg/lint"
	"github.com/yaklabco/lintspec/pkg/natspec"
)

// InheritdocRule validates @inheritdoc on declarations where it may stand
// in for the other tags.
type InheritdocRule struct {
	lint.BaseRule
}

// NewInheritdocRule creates the inheritdoc rule.
func NewInheritdocRule() *InheritdocRule {
	return &InheritdocRule{
		BaseRule: lint.NewBaseRule("NS007", "inheritdoc",
			"@inheritdoc names an ancestor of the enclosing type and appears once",
			[]string{"tag", "inheritance"}),
	}
}

// Apply checks every @inheritdoc of an eligible declaration. On other
// declarations the tag has no effect and is not checked.
func (r *InheritdocRule) Apply(ctx *lint.RuleContext) []lint.Diagnostic {
	if !ctx.Resolution.InheritdocEligible {
		return nil
	}

	var diags []lint.Diagnostic
	for i, tag := range ctx.Tags(natspec.KindInheritdoc) {
		if i > 0 {
			diags = append(diags, lint.NewDiagnostic(r, lint.KindDuplicateTag, tag.Span,
				"@inheritdoc is present more than once").Build())
		}
		if !ctx.Def.HasAncestor(tag.Name) {
			diags = append(diags, lint.NewDiagnosticf(r, lint.KindInvalidInheritdoc, tag.Span,
				"@inheritdoc %s is not an ancestor", tag.Name).Build())
		}
	}
	return diags
}
