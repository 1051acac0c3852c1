package config

import (
	"bytes"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every rule set. If false, only the global settings and a
	// commented example are written.
	Full bool

	// Format is "yaml" (default) or "toml" for the .lintspec.toml layout.
	Format string
}

//nolint:gochecknoglobals // Read-only lookup table.
var bucketDocs = map[string]string{
	"contracts":    "Contracts. Title and author only apply to contracts, interfaces and libraries.",
	"constructors": "Constructors are never covered by @inheritdoc.",
	"enums":        "Enums; param covers the variants.",
	"structs":      "Structs; param covers the members.",
	"functions":    "Functions by visibility. receive and fallback are never checked.",
	"variables":    "State variables by visibility. Public variables have one unnamed return.",
}

// GenerateTemplate creates a configuration file template holding the
// defaults.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", "yaml", "yml":
		return generateYAMLTemplate(opts), nil
	case "toml":
		return generateTOMLTemplate(), nil
	default:
		return nil, fmt.Errorf("unsupported template format %q; must be yaml or toml", opts.Format)
	}
}

func generateYAMLTemplate(opts TemplateOptions) []byte {
	cfg := NewConfig()
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")
	buf.WriteString(`# Let a valid @inheritdoc replace all other tags on public and external
# items of contracts that inherit from others.
inheritdoc: true

# Also accept @inheritdoc on internal overrides and modifiers.
inheritdoc_override: false

# Accept either @notice or @dev where one of them is required.
notice_or_dev: false

# Parse every file with the newest grammar instead of reading its pragma.
skip_version_detection: false

# Parser backend: descent or scan
backend: descent

# Files and directories to lint when none are given
# paths:
#   - src

# Paths or glob patterns to skip
# exclude:
#   - "test/**"

# Output format: text, compact, pretty, json, github, sarif, summary, html or table
# output: text

`)

	if !opts.Full {
		buf.WriteString(`# Requirements per item kind: required, ignored or forbidden.
# Unlisted tags keep their defaults.
# functions:
#   public:
#     notice: required
#     param: required
#     return: required
`)
		return buf.Bytes()
	}

	buf.WriteString("# Requirements per item kind: required, ignored or forbidden.\n")
	group := ""
	for _, bucket := range cfg.Buckets() {
		parent, child, nested := strings.Cut(bucket.Name, ".")
		if doc, ok := bucketDocs[parent]; ok && parent != group {
			buf.WriteString("\n# " + wrapComment(doc, commentWrapWidth, "") + "\n")
		}

		indent := ""
		if nested {
			if parent != group {
				buf.WriteString(parent + ":\n")
			}
			indent = "  "
			buf.WriteString(indent + child + ":\n")
		} else {
			buf.WriteString(parent + ":\n")
		}
		group = parent

		for _, tag := range TagNames() {
			if (tag == TagTitle || tag == TagAuthor) && !bucket.TypeBucket() {
				continue
			}
			fmt.Fprintf(&buf, "%s  %s: %s\n", indent, tag, bucket.Rules.Field(tag).String())
		}
	}
	return buf.Bytes()
}

// generateTOMLTemplate writes the .lintspec.toml layout, which has no
// contract, interface or library tables.
func generateTOMLTemplate() []byte {
	cfg := NewConfig()
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

[lintspec]
paths = []
exclude = []
inheritdoc = true
notice_or_dev = false

[output]
json = false
compact = false
sort = false
`)

	legacy := []struct {
		table  string
		bucket string
	}{
		{"constructor", "constructors"},
		{"enum", "enums"},
		{"error", "errors"},
		{"event", "events"},
		{"function.private", "functions.private"},
		{"function.internal", "functions.internal"},
		{"function.public", "functions.public"},
		{"function.external", "functions.external"},
		{"modifier", "modifiers"},
		{"struct", "structs"},
		{"variable.private", "variables.private"},
		{"variable.internal", "variables.internal"},
		{"variable.public", "variables.public"},
	}
	for _, entry := range legacy {
		rules, _ := cfg.Bucket(entry.bucket)
		fmt.Fprintf(&buf, "\n[%s]\n", entry.table)
		for _, tag := range []string{TagNotice, TagDev, TagParam, TagReturn} {
			fmt.Fprintf(&buf, "%s = %q\n", tag, legacyName(*rules.Field(tag)))
		}
	}
	return buf.Bytes()
}

func legacyName(r Req) string {
	switch r.Normalize() {
	case Required:
		return "require"
	case Forbidden:
		return "disallow"
	default:
		return "ignore"
	}
}

// wrapComment wraps a comment to fit within maxWidth characters. Lines
// after the first are prefixed with indent and "# ".
func wrapComment(text string, maxWidth int, indent string) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""
	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n"+indent+"# ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# lintspec configuration
# See: https://github.com/yaklabco/lintspec`
}
