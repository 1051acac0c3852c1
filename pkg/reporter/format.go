package reporter

import (
	"fmt"

	"github.com/yaklabco/lintspec/pkg/config"
)

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText    Format = "text"
	FormatCompact Format = "compact"
	FormatPretty  Format = "pretty"
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatGitHub  Format = "github"
	FormatSARIF   Format = "sarif"
	FormatSummary Format = "summary"
	FormatHTML    Format = "html"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	if formatStr == "" {
		return FormatText, nil
	}
	format := Format(formatStr)
	if !format.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: text, compact, pretty, table, json, github, sarif, summary, html", formatStr)
	}
	return format, nil
}

// FromOutput converts a configured output format.
func FromOutput(output config.OutputFormat) Format {
	if output == "" {
		return FormatText
	}
	return Format(output)
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatCompact, FormatPretty, FormatTable, FormatJSON,
		FormatGitHub, FormatSARIF, FormatSummary, FormatHTML:
		return true
	default:
		return false
	}
}

// Structured reports whether the format is meant for machines. Structured
// output is written even when there is nothing to report.
func (f Format) Structured() bool {
	switch f {
	case FormatJSON, FormatSARIF:
		return true
	default:
		return false
	}
}
