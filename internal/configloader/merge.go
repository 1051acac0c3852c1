package configloader

import (
	"fmt"

	"github.com/yaklabco/lintspec/pkg/config"
)

// Overrides holds the values set on the command line. Nil pointers and nil
// slices mean "not given" and leave the lower layers alone.
type Overrides struct {
	Paths   []string
	Exclude []string

	Inheritdoc           *bool
	InheritdocOverride   *bool
	NoticeOrDev          *bool
	SkipVersionDetection *bool

	Backend    *string
	Output     *string
	Out        *string
	JSON       *bool
	Compact    *bool
	Sort       *bool
	RuleFormat *string
	Jobs       *int
	Color      *string

	// Tags lists per-tag requirement flags such as
	// --param-required=public-function.
	Tags []TagOverride
}

// TagOverride sets one tag's requirement on a list of item types.
type TagOverride struct {
	Tag   string
	Req   config.Req
	Items []string
}

// reqPrecedence orders tag overrides: forbidden beats required beats
// ignored when the same item is named more than once.
//
//nolint:gochecknoglobals // Read-only lookup table.
var reqPrecedence = map[config.Req]int{
	config.Ignored:   0,
	config.Required:  1,
	config.Forbidden: 2,
}

// Apply writes the overrides onto cfg. Unknown item types and tags that do
// not apply to an item are errors.
func (o *Overrides) Apply(cfg *config.Config) error {
	if o == nil || cfg == nil {
		return nil
	}

	if o.Paths != nil {
		cfg.Paths = o.Paths
	}
	if o.Exclude != nil {
		cfg.Exclude = append(cfg.Exclude, o.Exclude...)
	}

	setBool(&cfg.Inheritdoc, o.Inheritdoc)
	setBool(&cfg.InheritdocOverride, o.InheritdocOverride)
	setBool(&cfg.NoticeOrDev, o.NoticeOrDev)
	setBool(&cfg.SkipVersionDetection, o.SkipVersionDetection)
	setBool(&cfg.Compact, o.Compact)
	setBool(&cfg.Sort, o.Sort)

	setString(&cfg.Backend, o.Backend)
	setString(&cfg.Out, o.Out)
	setString(&cfg.Color, o.Color)
	if o.JSON != nil {
		setJSON(cfg, *o.JSON)
	}
	if o.Output != nil {
		cfg.Output = config.OutputFormat(*o.Output)
	}
	if o.RuleFormat != nil {
		cfg.RuleFormat = config.RuleFormat(*o.RuleFormat)
	}
	if o.Jobs != nil {
		cfg.Jobs = *o.Jobs
	}

	return applyTagOverrides(cfg, o.Tags)
}

func applyTagOverrides(cfg *config.Config, tags []TagOverride) error {
	type key struct{ bucket, tag string }
	winners := make(map[key]config.Req)
	var order []key

	for _, override := range tags {
		for _, item := range override.Items {
			bucketName, ok := ResolveItemAlias(item)
			if !ok {
				return fmt.Errorf("--%s-%s: unknown item type %q", override.Tag, override.Req, item)
			}
			rules, _ := cfg.Bucket(bucketName)
			bucket := config.Bucket{Name: bucketName, Rules: rules}
			if (override.Tag == config.TagTitle || override.Tag == config.TagAuthor) && !bucket.TypeBucket() {
				return fmt.Errorf("--%s-%s: @%s does not apply to %s", override.Tag, override.Req, override.Tag, item)
			}
			if rules.Field(override.Tag) == nil {
				return fmt.Errorf("unknown tag %q", override.Tag)
			}

			k := key{bucket: bucketName, tag: override.Tag}
			current, seen := winners[k]
			if !seen {
				order = append(order, k)
			}
			if !seen || reqPrecedence[override.Req] >= reqPrecedence[current] {
				winners[k] = override.Req
			}
		}
	}

	for _, k := range order {
		rules, _ := cfg.Bucket(k.bucket)
		*rules.Field(k.tag) = winners[k]
	}
	return nil
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
