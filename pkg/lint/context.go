package lint

import (
	"github.com/yaklabco/lintspec/pkg/config"
	"github.com/yaklabco/lintspec/pkg/definition"
	"github.com/yaklabco/lintspec/pkg/natspec"
)

// RuleContext provides all context needed by a rule to check one
// declaration. It is built by the engine and discarded after use.
type RuleContext struct {
	// Def is the declaration being checked.
	Def *definition.Definition

	// Comment holds the parsed tags. It is empty when Def has no comment.
	Comment natspec.Comment

	// Problems are the comment parser's findings.
	Problems []natspec.Problem

	// Resolution is the rule set for Def.
	Resolution Resolution

	// Waived is set when Def needs no tags: receive and fallback
	// functions, and declarations with a valid @inheritdoc.
	Waived bool

	// Config is the run configuration.
	Config *config.Config
}

// NewRuleContext parses def's comment and resolves its rules.
func NewRuleContext(def *definition.Definition, cfg *config.Config) *RuleContext {
	ctx := &RuleContext{
		Def:        def,
		Resolution: Resolve(def, cfg),
		Config:     cfg,
	}
	if def.Comment != nil {
		ctx.Comment, ctx.Problems = natspec.Parse(def.Comment.Text, def.Comment.Span.Start)
	}
	ctx.Waived = exempt(def) || ctx.inherits()
	return ctx
}

// Rule returns the requirement for a tag name such as config.TagNotice.
func (rc *RuleContext) Rule(tag string) config.Req {
	if field := rc.Resolution.Rules.Field(tag); field != nil {
		return *field
	}
	return config.Ignored
}

// Tags returns the comment's tags of the given kind in source order.
func (rc *RuleContext) Tags(kind natspec.Kind) []natspec.Tag {
	return rc.Comment.Filter(kind)
}

// inherits reports whether every @inheritdoc names an ancestor, and there
// is at least one.
func (rc *RuleContext) inherits() bool {
	if !rc.Resolution.InheritdocEligible {
		return false
	}
	tags := rc.Tags(natspec.KindInheritdoc)
	if len(tags) == 0 {
		return false
	}
	for _, tag := range tags {
		if !rc.Def.HasAncestor(tag.Name) {
			return false
		}
	}
	return true
}

func exempt(def *definition.Definition) bool {
	return def.Kind == definition.KindFunction && def.IsReceiveOrFallback
}
