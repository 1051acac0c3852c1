package rules

import (
	"github.com/yaklabco/lintspec/pkg/config"
	"github.com/yaklabco/lintspec/pkg/definition"
	"github.com/yaklabco/lintspec/pkg/lint"
	"github.com/yaklabco/lintspec/pkg/natspec"
	"github.com/yaklabco/lintspec/pkg/textindex"
)

// TagRule checks a tag that may appear at most once: @notice, @dev,
// @title or @author.
type TagRule struct {
	lint.BaseRule
	kind natspec.Kind
	tag  string

	// typesOnly limits the rule to contracts, interfaces and libraries.
	typesOnly bool
}

// NewNoticeRule creates the notice rule. Text before the first tag counts
// as @notice.
func NewNoticeRule() *TagRule {
	return &TagRule{
		BaseRule: lint.NewBaseRule("NS001", "notice",
			"@notice must be present when required, absent when forbidden, and at most once",
			[]string{"tag"}),
		kind: natspec.KindNotice,
		tag:  config.TagNotice,
	}
}

// NewDevRule creates the dev rule.
func NewDevRule() *TagRule {
	return &TagRule{
		BaseRule: lint.NewBaseRule("NS002", "dev",
			"@dev must be present when required, absent when forbidden, and at most once",
			[]string{"tag"}),
		kind: natspec.KindDev,
		tag:  config.TagDev,
	}
}

// NewTitleRule creates the title rule.
func NewTitleRule() *TagRule {
	return &TagRule{
		BaseRule: lint.NewBaseRule("NS003", "title",
			"@title of a contract, interface or library",
			[]string{"tag", "type"}),
		kind:      natspec.KindTitle,
		tag:       config.TagTitle,
		typesOnly: true,
	}
}

// NewAuthorRule creates the author rule.
func NewAuthorRule() *TagRule {
	return &TagRule{
		BaseRule: lint.NewBaseRule("NS004", "author",
			"@author of a contract, interface or library",
			[]string{"tag", "type"}),
		kind:      natspec.KindAuthor,
		tag:       config.TagAuthor,
		typesOnly: true,
	}
}

// Apply checks presence and uniqueness of the tag.
func (r *TagRule) Apply(ctx *lint.RuleContext) []lint.Diagnostic {
	if ctx.Waived || (r.typesOnly && !ctx.Def.Kind.IsType()) {
		return nil
	}

	rule := ctx.Rule(r.tag)
	tags := ctx.Tags(r.kind)
	var diags []lint.Diagnostic

	switch rule {
	case config.Required:
		if len(tags) == 0 {
			diags = append(diags, r.missing(ctx)...)
		}
	case config.Forbidden:
		for _, tag := range tags {
			diags = append(diags, lint.NewDiagnosticf(r, lint.KindForbiddenTag, tag.Span,
				"@%s is forbidden", r.tag).Build())
		}
		return diags
	}

	for _, tag := range tags[min(1, len(tags)):] {
		diags = append(diags, lint.NewDiagnosticf(r, lint.KindDuplicateTag, tag.Span,
			"@%s is present more than once", r.tag).Build())
	}
	return diags
}

func (r *TagRule) missing(ctx *lint.RuleContext) []lint.Diagnostic {
	span := nameSpan(ctx.Def)
	if !ctx.Resolution.NoticeOrDev || (r.kind != natspec.KindNotice && r.kind != natspec.KindDev) {
		return []lint.Diagnostic{
			lint.NewDiagnosticf(r, lint.KindMissingTag, span, "@%s is missing", r.tag).Build(),
		}
	}

	// The merged requirement is reported once, by the notice rule.
	if r.kind == natspec.KindDev || ctx.Comment.Has(natspec.KindDev) {
		return nil
	}
	return []lint.Diagnostic{
		lint.NewDiagnostic(r, lint.KindMissingTag, span, "@notice or @dev is missing").Build(),
	}
}

// nameSpan is where findings about the declaration as a whole point.
func nameSpan(def *definition.Definition) textindex.Span {
	if def.NameSpan.Len() > 0 {
		return def.NameSpan
	}
	return def.Span
}
