package rules

import "github.com/yaklabco/lintspec/pkg/lint"

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	// Singleton tags
	registry.Register(NewNoticeRule()) // NS001
	registry.Register(NewDevRule())    // NS002
	registry.Register(NewTitleRule())  // NS003
	registry.Register(NewAuthorRule()) // NS004

	// Lists
	registry.Register(NewParamRule())  // NS005
	registry.Register(NewReturnRule()) // NS006

	registry.Register(NewInheritdocRule())       // NS007
	registry.Register(NewMalformedCommentRule()) // NS008
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
}
