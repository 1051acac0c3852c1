package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/lintspec/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "5 issues (1 error, 4 warnings) in 2 files".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.DiagnosticsTotal == 0 {
		return s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))) + "\n"
	}

	errors := stats.DiagnosticsByKind["parsing-error"] + stats.DiagnosticsByKind["io-error"]
	warnings := stats.DiagnosticsTotal - errors

	var levels []string
	if errors > 0 {
		levels = append(levels, s.Error.Render(fmt.Sprintf("%d %s", errors, plural(errors, "error", "errors"))))
	}
	if warnings > 0 {
		levels = append(levels, s.Warning.Render(fmt.Sprintf("%d %s", warnings, plural(warnings, "warning", "warnings"))))
	}

	return fmt.Sprintf("%d %s (%s) in %d %s\n",
		stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue", "issues"),
		strings.Join(levels, ", "),
		stats.FilesWithIssues, plural(stats.FilesWithIssues, wordFile, wordFiles),
	)
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " + s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")
	builder.WriteString("  Items checked:     " + s.SummaryValue.Render(strconv.Itoa(stats.DefinitionsChecked)) + "\n")
	if stats.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues: " + s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files not checked: " + s.Error.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Total issues:      " + s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)) + "\n")

	kinds := make([]string, 0, len(stats.DiagnosticsByKind))
	for kind := range stats.DiagnosticsByKind {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(&builder, "    %-19s%s\n", kind+":", s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsByKind[kind])))
	}

	builder.WriteString("\n")
	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Some files could not be checked"))
	case stats.DiagnosticsTotal > 0:
		builder.WriteString(s.Warning.Render("Documentation is incomplete"))
	default:
		builder.WriteString(s.Success.Render("Documentation is complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}
