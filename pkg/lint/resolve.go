package lint

import (
	"github.com/yaklabco/lintspec/pkg/config"
	"github.com/yaklabco/lintspec/pkg/definition"
)

// Resolution is the effective rule set for one declaration.
type Resolution struct {
	// Bucket is the configuration bucket the rules came from.
	Bucket string

	// Rules holds one requirement per tag. Title and author are always
	// ignored for declarations other than contracts, interfaces and
	// libraries. With NoticeOrDev, Notice and Dev hold the merged rule.
	Rules config.Rules

	// NoticeOrDev means either tag satisfies the merged requirement.
	NoticeOrDev bool

	// InheritdocEligible means a valid @inheritdoc replaces every other
	// tag requirement.
	InheritdocEligible bool
}

// Resolve computes the rule set for def. It reads cfg and nothing else.
func Resolve(def *definition.Definition, cfg *config.Config) Resolution {
	bucket := BucketName(def)
	res := Resolution{Bucket: bucket}
	if cfg == nil {
		cfg = config.NewConfig()
	}

	if rules, ok := cfg.Bucket(bucket); ok {
		res.Rules = *rules
	}
	for _, tag := range config.TagNames() {
		field := res.Rules.Field(tag)
		*field = field.Normalize()
	}

	if !def.Kind.IsType() {
		res.Rules.Title = config.Ignored
		res.Rules.Author = config.Ignored
	}

	if cfg.NoticeOrDev {
		merged := mergeNoticeDev(res.Rules.Notice, res.Rules.Dev)
		res.Rules.Notice = merged
		res.Rules.Dev = merged
		res.NoticeOrDev = true
	}

	res.InheritdocEligible = inheritdocEligible(def, cfg)
	return res
}

func mergeNoticeDev(notice, dev config.Req) config.Req {
	switch {
	case notice == config.Required || dev == config.Required:
		return config.Required
	case notice == config.Forbidden && dev == config.Forbidden:
		return config.Forbidden
	default:
		return config.Ignored
	}
}

func inheritdocEligible(def *definition.Definition, cfg *config.Config) bool {
	if def.Kind == definition.KindConstructor {
		return false
	}

	exposed := def.Visibility == definition.VisibilityPublic || def.Visibility == definition.VisibilityExternal
	if cfg.Inheritdoc && exposed && len(def.AncestorNames) > 0 {
		return true
	}

	if cfg.InheritdocOverride && def.IsOverride {
		internalFunc := def.Kind == definition.KindFunction && def.Visibility == definition.VisibilityInternal
		return internalFunc || def.Kind == definition.KindModifier
	}
	return false
}

// BucketName returns the configuration bucket for def, such as
// "functions.public". Functions without a visibility are public and
// variables without one are internal.
func BucketName(def *definition.Definition) string {
	switch def.Kind {
	case definition.KindContract:
		return "contracts"
	case definition.KindInterface:
		return "interfaces"
	case definition.KindLibrary:
		return "libraries"
	case definition.KindConstructor:
		return "constructors"
	case definition.KindEnum:
		return "enums"
	case definition.KindError:
		return "errors"
	case definition.KindEvent:
		return "events"
	case definition.KindModifier:
		return "modifiers"
	case definition.KindStruct:
		return "structs"
	case definition.KindFunction:
		vis := def.Visibility
		if vis == definition.VisibilityNone {
			vis = definition.VisibilityPublic
		}
		return "functions." + vis.String()
	case definition.KindVariable:
		switch def.Visibility {
		case definition.VisibilityPrivate:
			return "variables.private"
		case definition.VisibilityPublic, definition.VisibilityExternal:
			return "variables.public"
		default:
			return "variables.internal"
		}
	default:
		return ""
	}
}
