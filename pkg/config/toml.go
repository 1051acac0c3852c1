package config

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
)

// legacyFile is the layout of .lintspec.toml files. Tables are named after
// the item kind in singular form and requirements use require, ignore and
// disallow. Pointers distinguish absent keys from zero values.
type legacyFile struct {
	Lintspec struct {
		Paths                []string `toml:"paths"`
		Exclude              []string `toml:"exclude"`
		Inheritdoc           *bool    `toml:"inheritdoc"`
		InheritdocOverride   *bool    `toml:"inheritdoc_override"`
		NoticeOrDev          *bool    `toml:"notice_or_dev"`
		SkipVersionDetection *bool    `toml:"skip_version_detection"`
	} `toml:"lintspec"`

	Output struct {
		Out     *string `toml:"out"`
		JSON    *bool   `toml:"json"`
		Compact *bool   `toml:"compact"`
		Sort    *bool   `toml:"sort"`
	} `toml:"output"`

	Constructor legacyRules `toml:"constructor"`
	Enum        legacyRules `toml:"enum"`
	Error       legacyRules `toml:"error"`
	Event       legacyRules `toml:"event"`
	Modifier    legacyRules `toml:"modifier"`
	Struct      legacyRules `toml:"struct"`

	Function struct {
		Private  legacyRules `toml:"private"`
		Internal legacyRules `toml:"internal"`
		Public   legacyRules `toml:"public"`
		External legacyRules `toml:"external"`
	} `toml:"function"`

	Variable struct {
		Private  legacyRules `toml:"private"`
		Internal legacyRules `toml:"internal"`
		Public   legacyRules `toml:"public"`
	} `toml:"variable"`
}

type legacyRules struct {
	Notice *Req `toml:"notice"`
	Dev    *Req `toml:"dev"`
	Param  *Req `toml:"param"`
	Return *Req `toml:"return"`
}

func (l legacyRules) apply(r *Rules) {
	setReq(&r.Notice, l.Notice)
	setReq(&r.Dev, l.Dev)
	setReq(&r.Param, l.Param)
	setReq(&r.Return, l.Return)
}

func setReq(dst *Req, src *Req) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// MergeLegacyTOML decodes a .lintspec.toml document on top of c. It returns
// the keys it did not recognize, sorted.
func (c *Config) MergeLegacyTOML(data []byte) ([]string, error) {
	var file legacyFile
	meta, err := toml.Decode(string(data), &file)
	if err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}

	if meta.IsDefined("lintspec", "paths") {
		c.Paths = file.Lintspec.Paths
	}
	if meta.IsDefined("lintspec", "exclude") {
		c.Exclude = file.Lintspec.Exclude
	}
	setBool(&c.Inheritdoc, file.Lintspec.Inheritdoc)
	setBool(&c.InheritdocOverride, file.Lintspec.InheritdocOverride)
	setBool(&c.NoticeOrDev, file.Lintspec.NoticeOrDev)
	setBool(&c.SkipVersionDetection, file.Lintspec.SkipVersionDetection)

	if file.Output.Out != nil {
		c.Out = *file.Output.Out
	}
	if file.Output.JSON != nil {
		if *file.Output.JSON {
			c.Output = FormatJSON
		} else if c.Output == FormatJSON {
			c.Output = FormatText
		}
	}
	setBool(&c.Compact, file.Output.Compact)
	setBool(&c.Sort, file.Output.Sort)

	file.Constructor.apply(&c.Constructors)
	file.Enum.apply(&c.Enums)
	file.Error.apply(&c.Errors)
	file.Event.apply(&c.Events)
	file.Modifier.apply(&c.Modifiers)
	file.Struct.apply(&c.Structs)
	file.Function.Private.apply(&c.Functions.Private)
	file.Function.Internal.apply(&c.Functions.Internal)
	file.Function.Public.apply(&c.Functions.Public)
	file.Function.External.apply(&c.Functions.External)
	file.Variable.Private.apply(&c.Variables.Private)
	file.Variable.Internal.apply(&c.Variables.Internal)
	file.Variable.Public.apply(&c.Variables.Public)

	undecoded := meta.Undecoded()
	unknown := make([]string, 0, len(undecoded))
	for _, key := range undecoded {
		unknown = append(unknown, key.String())
	}
	sort.Strings(unknown)
	return unknown, nil
}
