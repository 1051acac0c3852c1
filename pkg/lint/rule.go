// Package lint provides the rule engine, diagnostics, and registry for
// lintspec.
package lint

import (
	"github.com/yaklabco/lintspec/pkg/definition"
	"github.com/yaklabco/lintspec/pkg/textindex"
)

// DiagnosticKind classifies a finding.
type DiagnosticKind uint8

const (
	KindMissingTag DiagnosticKind = iota
	KindForbiddenTag
	KindDuplicateTag
	KindOrphanParam
	KindMissingParam
	KindDuplicateParam
	KindInvalidInheritdoc
	KindMalformedComment
	KindParsingError
	KindIOError
)

var diagnosticKindNames = [...]string{
	KindMissingTag:        "missing-tag",
	KindForbiddenTag:      "forbidden-tag",
	KindDuplicateTag:      "duplicate-tag",
	KindOrphanParam:       "orphan-param",
	KindMissingParam:      "missing-param",
	KindDuplicateParam:    "duplicate-param",
	KindInvalidInheritdoc: "invalid-inheritdoc",
	KindMalformedComment:  "malformed-comment",
	KindParsingError:      "parsing-error",
	KindIOError:           "io-error",
}

func (k DiagnosticKind) String() string {
	if int(k) < len(diagnosticKindNames) {
		return diagnosticKindNames[k]
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k DiagnosticKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Fatal reports whether the kind stops processing of a file.
func (k DiagnosticKind) Fatal() bool {
	return k == KindParsingError || k == KindIOError
}

// Diagnostic represents a single documentation issue.
type Diagnostic struct {
	Kind DiagnosticKind

	// RuleID is the identifier of the rule that produced this diagnostic.
	RuleID string

	// RuleName is the human-readable name of the rule (e.g., "param").
	RuleName string

	// Message is the human-readable description of the issue.
	Message string

	// Span is the byte range of the most specific offending token.
	Span textindex.Span

	// Range is Span in line/column form. It is filled in when the source is
	// available.
	Range textindex.Range
}

// ItemDiagnostics groups the diagnostics of one declaration.
type ItemDiagnostics struct {
	// File marks the synthetic item that carries a file-level failure.
	File bool

	Parent     *definition.Parent
	Kind       definition.Kind
	Visibility definition.Visibility
	Name       string
	Span       textindex.Span
	Range      textindex.Range
	Diags      []Diagnostic
}

// QualifiedName returns "Parent.name", or just the name at file level.
func (it *ItemDiagnostics) QualifiedName() string {
	if it.Parent == nil {
		return it.Name
	}
	return it.Parent.Name + "." + it.Name
}

// ItemType describes the item, such as "contract" or "public function".
func (it *ItemDiagnostics) ItemType() string {
	if it.File {
		return "file"
	}
	if vis := it.Visibility.String(); vis != "" {
		return vis + " " + it.Kind.String()
	}
	return it.Kind.String()
}

// Rule defines the interface that all lint rules must implement.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "NS001").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	// Tags returns categorization tags for this rule.
	Tags() []string

	// Apply checks one declaration. It must not retain ctx.
	Apply(ctx *RuleContext) []Diagnostic
}
