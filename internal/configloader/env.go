package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/lintspec/pkg/config"
)

// envVarPrefix is the prefix for all lintspec environment variables.
const envVarPrefix = "LINTSPEC_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings maps environment variable names (without prefix) to config
// fields. Requirement variables such as LINTSPEC_FUNCTIONS_PUBLIC_PARAM are
// derived from the rule buckets and handled separately.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"INHERITDOC":             {field: "inheritdoc", typ: envTypeBool, help: "Accept @inheritdoc in place of other tags: true or false"},
	"INHERITDOC_OVERRIDE":    {field: "inheritdoc_override", typ: envTypeBool, help: "Also accept @inheritdoc on internal overrides: true or false"},
	"NOTICE_OR_DEV":          {field: "notice_or_dev", typ: envTypeBool, help: "Accept @dev where @notice is required and vice versa"},
	"SKIP_VERSION_DETECTION": {field: "skip_version_detection", typ: envTypeBool, help: "Parse with the newest grammar: true or false"},
	"PATHS":                  {field: "paths", typ: envTypeSlice, help: "Comma-separated list of paths to lint"},
	"EXCLUDE":                {field: "exclude", typ: envTypeSlice, help: "Comma-separated list of paths and globs to skip"},
	"BACKEND":                {field: "backend", typ: envTypeString, help: "Parser backend: descent or scan"},
	"OUTPUT":                 {field: "output", typ: envTypeString, help: "Output format: text, compact, pretty, json, github, sarif, summary, html or table"},
	"OUT":                    {field: "out", typ: envTypeString, help: "Write the report to this file"},
	"JSON":                   {field: "json", typ: envTypeBool, help: "Shorthand for OUTPUT=json: true or false"},
	"COMPACT":                {field: "compact", typ: envTypeBool, help: "Compact text output and minified JSON: true or false"},
	"SORT":                   {field: "sort", typ: envTypeBool, help: "Sort files by path: true or false"},
	"RULE_FORMAT":            {field: "rule_format", typ: envTypeString, help: "Rule identifiers in output: name, id or combined"},
	"JOBS":                   {field: "jobs", typ: envTypeInt, help: "Number of parallel workers (0 = auto)"},
	"COLOR":                  {field: "color", typ: envTypeString, help: "Color output: auto, always or never"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with LINTSPEC_ (e.g., LINTSPEC_BACKEND).
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	for _, envSuffix := range sortedKeys(envMappings) {
		envVar := envVarPrefix + envSuffix
		value := getenv(envVar)
		if value == "" {
			continue
		}
		if err := applyEnvValue(cfg, envMappings[envSuffix], value, envVar); err != nil {
			return err
		}
	}

	for _, bucket := range cfg.Buckets() {
		for _, tag := range bucketTags(bucket) {
			envVar := requirementEnvVar(bucket.Name, tag)
			value := getenv(envVar)
			if value == "" {
				continue
			}
			req, err := config.ParseReq(value)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
			*bucket.Rules.Field(tag) = req
		}
	}

	return nil
}

// requirementEnvVar names the variable for one bucket and tag, such as
// LINTSPEC_FUNCTIONS_PUBLIC_PARAM.
func requirementEnvVar(bucket, tag string) string {
	return envVarPrefix + strings.ToUpper(strings.ReplaceAll(bucket, ".", "_")+"_"+tag)
}

// bucketTags lists the tags configurable on a bucket.
func bucketTags(bucket config.Bucket) []string {
	if bucket.TypeBucket() {
		return config.TagNames()
	}
	return slices.DeleteFunc(config.TagNames(), func(tag string) bool {
		return tag == config.TagTitle || tag == config.TagAuthor
	})
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "backend":
		cfg.Backend = value
	case "output":
		cfg.Output = config.OutputFormat(value)
	case "out":
		cfg.Out = value
	case "rule_format":
		cfg.RuleFormat = config.RuleFormat(value)
	case "color":
		cfg.Color = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "inheritdoc":
		cfg.Inheritdoc = value
	case "inheritdoc_override":
		cfg.InheritdocOverride = value
	case "notice_or_dev":
		cfg.NoticeOrDev = value
	case "skip_version_detection":
		cfg.SkipVersionDetection = value
	case "compact":
		cfg.Compact = value
	case "sort":
		cfg.Sort = value
	case "json":
		setJSON(cfg, value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setJSON applies the legacy json switch: true selects JSON output, false
// falls back to text only if JSON was selected.
func setJSON(cfg *config.Config, value bool) {
	switch {
	case value:
		cfg.Output = config.FormatJSON
	case cfg.Output == config.FormatJSON:
		cfg.Output = config.FormatText
	}
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "paths":
		cfg.Paths = value
	case "exclude":
		cfg.Exclude = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config
// field, such as "backend" or "functions.public.param".
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	if idx := strings.LastIndex(field, "."); idx > 0 {
		if _, ok := config.NewConfig().Bucket(field[:idx]); ok {
			return requirementEnvVar(field[:idx], field[idx+1:])
		}
	}
	return ""
}

// ListEnvVars returns the supported environment variables with their
// descriptions. Requirement variables are summarized by one pattern entry.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings)+1)
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.help
	}
	vars[envVarPrefix+"<BUCKET>_<TAG>"] = "Requirement for one tag, e.g. LINTSPEC_FUNCTIONS_PUBLIC_PARAM=required"
	return vars
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
