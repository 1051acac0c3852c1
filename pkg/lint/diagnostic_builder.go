package lint

import (
	"fmt"

	"github.com/yaklabco/lintspec/pkg/textindex"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts building a diagnostic for the given rule.
func NewDiagnostic(rule Rule, kind DiagnosticKind, span textindex.Span, message string) *DiagnosticBuilder {
	b := &DiagnosticBuilder{
		diag: Diagnostic{
			Kind:    kind,
			Message: message,
			Span:    span,
		},
	}
	if rule != nil {
		b.diag.RuleID = rule.ID()
		b.diag.RuleName = rule.Name()
	}
	return b
}

// NewDiagnosticf is NewDiagnostic with a formatted message.
func NewDiagnosticf(rule Rule, kind DiagnosticKind, span textindex.Span, format string, args ...any) *DiagnosticBuilder {
	return NewDiagnostic(rule, kind, span, fmt.Sprintf(format, args...))
}

// WithRuleID sets the rule identity for diagnostics not produced by a
// registered rule.
func (b *DiagnosticBuilder) WithRuleID(id, name string) *DiagnosticBuilder {
	b.diag.RuleID = id
	b.diag.RuleName = name
	return b
}

// WithRange sets the line/column range.
func (b *DiagnosticBuilder) WithRange(r textindex.Range) *DiagnosticBuilder {
	b.diag.Range = r
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
