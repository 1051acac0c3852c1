package rules

import "github.com/yaklabco/lintspec/pkg/lint"

// MalformedCommentRule reports what the comment parser could not read:
// broken delimiters and tags without a name.
type MalformedCommentRule struct {
	lint.BaseRule
}

// NewMalformedCommentRule creates the malformed-comment rule.
func NewMalformedCommentRule() *MalformedCommentRule {
	return &MalformedCommentRule{
		BaseRule: lint.NewBaseRule("NS008", "malformed-comment",
			"Doc comments use well-formed delimiters and complete tags",
			[]string{"syntax"}),
	}
}

// Apply converts comment parser problems into diagnostics. It runs even
// when tags are waived.
func (r *MalformedCommentRule) Apply(ctx *lint.RuleContext) []lint.Diagnostic {
	diags := make([]lint.Diagnostic, 0, len(ctx.Problems))
	for _, problem := range ctx.Problems {
		diags = append(diags, lint.NewDiagnostic(r, lint.KindMalformedComment, problem.Span,
			problem.Message).Build())
	}
	return diags
}
