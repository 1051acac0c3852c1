// Package config defines the lintspec configuration. These types are plain
// data; loading and layering live in internal/configloader.
package config

import (
	"fmt"
	"strings"
)

// Req is the requirement for one tag kind.
type Req string

const (
	Required  Req = "required"
	Ignored   Req = "ignored"
	Forbidden Req = "forbidden"
)

// reqAliases accepts the spellings used by older configuration files.
//
//nolint:gochecknoglobals // Read-only lookup table.
var reqAliases = map[string]Req{
	"required":  Required,
	"require":   Required,
	"ignored":   Ignored,
	"ignore":    Ignored,
	"forbidden": Forbidden,
	"forbid":    Forbidden,
	"disallow":  Forbidden,
}

// ParseReq parses a requirement, accepting aliases.
func ParseReq(s string) (Req, error) {
	if req, ok := reqAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return req, nil
	}
	return "", fmt.Errorf("invalid requirement %q; must be one of: required, ignored, forbidden", s)
}

// Normalize maps the zero value to Ignored.
func (r Req) Normalize() Req {
	if r == "" {
		return Ignored
	}
	return r
}

func (r Req) String() string {
	return string(r.Normalize())
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Req) UnmarshalText(text []byte) error {
	req, err := ParseReq(string(text))
	if err != nil {
		return err
	}
	*r = req
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (r Req) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Rules holds the requirement for each tag kind of one item kind. Title and
// Author only apply to contracts, interfaces and libraries.
type Rules struct {
	Title  Req `mapstructure:"title" yaml:"title,omitempty" validate:"omitempty,oneof=required ignored forbidden"`
	Author Req `mapstructure:"author" yaml:"author,omitempty" validate:"omitempty,oneof=required ignored forbidden"`
	Notice Req `mapstructure:"notice" yaml:"notice,omitempty" validate:"omitempty,oneof=required ignored forbidden"`
	Dev    Req `mapstructure:"dev" yaml:"dev,omitempty" validate:"omitempty,oneof=required ignored forbidden"`
	Param  Req `mapstructure:"param" yaml:"param,omitempty" validate:"omitempty,oneof=required ignored forbidden"`
	Return Req `mapstructure:"return" yaml:"return,omitempty" validate:"omitempty,oneof=required ignored forbidden"`
}

// Tag names as used in configuration keys and environment variables.
const (
	TagTitle  = "title"
	TagAuthor = "author"
	TagNotice = "notice"
	TagDev    = "dev"
	TagParam  = "param"
	TagReturn = "return"
)

// TagNames lists the configurable tags in display order.
func TagNames() []string {
	return []string{TagTitle, TagAuthor, TagNotice, TagDev, TagParam, TagReturn}
}

// Field returns a pointer to the requirement for tag, or nil.
func (r *Rules) Field(tag string) *Req {
	switch tag {
	case TagTitle:
		return &r.Title
	case TagAuthor:
		return &r.Author
	case TagNotice:
		return &r.Notice
	case TagDev:
		return &r.Dev
	case TagParam:
		return &r.Param
	case TagReturn:
		return &r.Return
	default:
		return nil
	}
}

// FunctionRules holds rules per function visibility.
type FunctionRules struct {
	Private  Rules `mapstructure:"private" yaml:"private"`
	Internal Rules `mapstructure:"internal" yaml:"internal"`
	Public   Rules `mapstructure:"public" yaml:"public"`
	External Rules `mapstructure:"external" yaml:"external"`
}

// VariableRules holds rules per state variable visibility.
type VariableRules struct {
	Private  Rules `mapstructure:"private" yaml:"private"`
	Internal Rules `mapstructure:"internal" yaml:"internal"`
	Public   Rules `mapstructure:"public" yaml:"public"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatPretty  OutputFormat = "pretty"
	FormatJSON    OutputFormat = "json"
	FormatGitHub  OutputFormat = "github"
	FormatSARIF   OutputFormat = "sarif"
	FormatSummary OutputFormat = "summary"
	FormatHTML    OutputFormat = "html"
	FormatTable   OutputFormat = "table"
	FormatCompact OutputFormat = "compact"
)

// Backend names.
const (
	BackendDescent = "descent"
	BackendScan    = "scan"
)

// Config is the root configuration structure for lintspec.
type Config struct {
	// Inheritdoc lets a valid @inheritdoc stand in for all other tags on
	// public and external items of types with ancestors.
	Inheritdoc bool `mapstructure:"inheritdoc" yaml:"inheritdoc"`

	// InheritdocOverride extends Inheritdoc to internal overrides and
	// modifiers.
	InheritdocOverride bool `mapstructure:"inheritdoc_override" yaml:"inheritdoc_override"`

	// NoticeOrDev merges the notice and dev rules: either tag satisfies a
	// requirement.
	NoticeOrDev bool `mapstructure:"notice_or_dev" yaml:"notice_or_dev"`

	// SkipVersionDetection parses every file with the newest grammar.
	SkipVersionDetection bool `mapstructure:"skip_version_detection" yaml:"skip_version_detection"`

	Contracts    Rules         `mapstructure:"contracts" yaml:"contracts"`
	Interfaces   Rules         `mapstructure:"interfaces" yaml:"interfaces"`
	Libraries    Rules         `mapstructure:"libraries" yaml:"libraries"`
	Constructors Rules         `mapstructure:"constructors" yaml:"constructors"`
	Enums        Rules         `mapstructure:"enums" yaml:"enums"`
	Errors       Rules         `mapstructure:"errors" yaml:"errors"`
	Events       Rules         `mapstructure:"events" yaml:"events"`
	Functions    FunctionRules `mapstructure:"functions" yaml:"functions"`
	Modifiers    Rules         `mapstructure:"modifiers" yaml:"modifiers"`
	Structs      Rules         `mapstructure:"structs" yaml:"structs"`
	Variables    VariableRules `mapstructure:"variables" yaml:"variables"`

	// Paths are the files and directories to lint when none are given on
	// the command line.
	Paths []string `mapstructure:"paths" yaml:"paths,omitempty"`

	// Exclude contains paths and glob patterns to skip.
	Exclude []string `mapstructure:"exclude" yaml:"exclude,omitempty"`

	// Backend selects the parser implementation.
	Backend string `mapstructure:"backend" yaml:"backend,omitempty" validate:"omitempty,oneof=descent scan"`

	// Output selects the report format.
	Output OutputFormat `mapstructure:"output" yaml:"output,omitempty" validate:"omitempty,oneof=text compact pretty json github sarif summary html table"`

	// Out writes the report to a file instead of stderr.
	Out string `mapstructure:"out" yaml:"out,omitempty"`

	// Compact shortens text output and minifies JSON.
	Compact bool `mapstructure:"compact" yaml:"compact,omitempty"`

	// Sort orders files by path before reporting.
	Sort bool `mapstructure:"sort" yaml:"sort,omitempty"`

	// RuleFormat controls how check identifiers appear in output.
	RuleFormat RuleFormat `mapstructure:"rule_format" yaml:"rule_format,omitempty" validate:"omitempty,oneof=name id combined"`

	// CLI-level options (not persisted to config files).

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-" validate:"gte=0"`

	// Color is "auto", "always" or "never".
	Color string `mapstructure:"-" yaml:"-" validate:"omitempty,oneof=auto always never"`
}

// NewConfig returns a Config with the default rule set: parameters of
// errors, events and modifiers, parameters and returns of public and
// external functions, and returns of public variables are required.
// Everything else is ignored.
func NewConfig() *Config {
	cfg := &Config{
		Inheritdoc: true,
		Backend:    BackendDescent,
		Output:     FormatText,
		RuleFormat: RuleFormatName,
		Color:      "auto",
	}

	for _, bucket := range cfg.Buckets() {
		for _, tag := range TagNames() {
			*bucket.Rules.Field(tag) = Ignored
		}
	}

	cfg.Errors.Param = Required
	cfg.Events.Param = Required
	cfg.Modifiers.Param = Required
	cfg.Functions.Public.Param = Required
	cfg.Functions.Public.Return = Required
	cfg.Functions.External.Param = Required
	cfg.Functions.External.Return = Required
	cfg.Variables.Public.Return = Required

	return cfg
}

// Bucket names one set of rules, such as "functions.public".
type Bucket struct {
	Name  string
	Rules *Rules
}

// TypeBucket reports whether title and author apply to the bucket.
func (b Bucket) TypeBucket() bool {
	return b.Name == "contracts" || b.Name == "interfaces" || b.Name == "libraries"
}

// Buckets returns every rule set in the configuration in display order.
// The pointers refer into c.
func (c *Config) Buckets() []Bucket {
	return []Bucket{
		{Name: "contracts", Rules: &c.Contracts},
		{Name: "interfaces", Rules: &c.Interfaces},
		{Name: "libraries", Rules: &c.Libraries},
		{Name: "constructors", Rules: &c.Constructors},
		{Name: "enums", Rules: &c.Enums},
		{Name: "errors", Rules: &c.Errors},
		{Name: "events", Rules: &c.Events},
		{Name: "functions.private", Rules: &c.Functions.Private},
		{Name: "functions.internal", Rules: &c.Functions.Internal},
		{Name: "functions.public", Rules: &c.Functions.Public},
		{Name: "functions.external", Rules: &c.Functions.External},
		{Name: "modifiers", Rules: &c.Modifiers},
		{Name: "structs", Rules: &c.Structs},
		{Name: "variables.private", Rules: &c.Variables.Private},
		{Name: "variables.internal", Rules: &c.Variables.Internal},
		{Name: "variables.public", Rules: &c.Variables.Public},
	}
}

// Bucket returns the rule set called name.
func (c *Config) Bucket(name string) (*Rules, bool) {
	for _, bucket := range c.Buckets() {
		if bucket.Name == name {
			return bucket.Rules, true
		}
	}
	return nil, false
}
