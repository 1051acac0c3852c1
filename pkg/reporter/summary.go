package reporter

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/lintspec/internal/ui/pretty"
	"github.com/yaklabco/lintspec/pkg/analysis"
	"github.com/yaklabco/lintspec/pkg/config"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth        = 90 // Width of table separators (same for both tables).
	ruleColWidth      = 30 // Width of the rule name column.
	fileColWidth      = 60 // Width of the file path column (wider for relative paths).
	numColWidth       = 7  // Width of numeric columns.
	warnColWidth      = 9  // Width of warnings column.
	filesColWidth     = 7  // Width of the files column.
	kindColWidth      = 30 // Width of the kind column.
	maxRuleNameLength = 28 // Maximum display width for rule name before truncation.
	maxFilePathLength = 58 // Maximum display width for file path before truncation.
)

// padRight pads a string to the given display width with spaces on the
// right. This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// padLeft pads a string to the given display width with spaces on the
// left. This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Issues == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render(noIssueMessage))
		return nil
	}

	if r.opts.SummaryOrder == SummaryOrderFiles {
		r.renderFileTable(report.ByFile)
		fmt.Fprintln(r.out)
		r.renderRuleTable(report.ByRule)
	} else {
		r.renderRuleTable(report.ByRule)
		fmt.Fprintln(r.out)
		r.renderFileTable(report.ByFile)
	}

	fmt.Fprintln(r.out)
	r.renderKindTable(report.ByKind)

	fmt.Fprintln(r.out)
	r.renderTotals(report.Totals)

	return nil
}

func (r *SummaryRenderer) separator() {
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
}

func (r *SummaryRenderer) renderRuleTable(rules []analysis.RuleAnalysis) {
	if len(rules) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Rules Summary"))
	r.separator()

	// Header - pad first, then style
	fmt.Fprintf(r.out, "%s %s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("Rule", ruleColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
		r.styles.TableHeader.Render(padLeft("Files", filesColWidth)),
	)
	r.separator()

	for _, rule := range rules {
		name := config.FormatRuleID(r.opts.RuleFormat, rule.RuleID, rule.RuleName)
		if runewidth.StringWidth(name) > maxRuleNameLength {
			name = runewidth.Truncate(name, maxRuleNameLength, "…")
		}

		fmt.Fprintf(r.out, "%s %s %s %s %s\n",
			r.rowStyle(rule.Errors, rule.Warnings, padRight(name, ruleColWidth)),
			padLeft(strconv.Itoa(rule.Issues), numColWidth),
			padLeft(strconv.Itoa(rule.Errors), numColWidth),
			padLeft(strconv.Itoa(rule.Warnings), warnColWidth),
			padLeft(strconv.Itoa(len(rule.Files)), filesColWidth),
		)
	}
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	r.separator()

	fmt.Fprintf(r.out, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
	)
	r.separator()

	for _, file := range files {
		path := file.Path
		if width := runewidth.StringWidth(path); width > maxFilePathLength {
			runes := []rune(path)
			for width > maxFilePathLength-1 && len(runes) > 0 {
				width -= runewidth.RuneWidth(runes[0])
				runes = runes[1:]
			}
			path = "…" + string(runes)
		}

		fmt.Fprintf(r.out, "%s %s %s %s\n",
			r.rowStyle(file.Errors, file.Warnings, padRight(path, fileColWidth)),
			padLeft(strconv.Itoa(file.Issues), numColWidth),
			padLeft(strconv.Itoa(file.Errors), numColWidth),
			padLeft(strconv.Itoa(file.Warnings), warnColWidth),
		)
	}
}

// renderKindTable lists how often each kind of finding occurred.
func (r *SummaryRenderer) renderKindTable(byKind map[string]int) {
	if len(byKind) == 0 {
		return
	}

	kinds := make([]string, 0, len(byKind))
	for kind := range byKind {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)

	fmt.Fprintln(r.out, r.styles.Bold.Render("Kinds Summary"))
	r.separator()
	for _, kind := range kinds {
		fmt.Fprintf(r.out, "%s %s\n", padRight(kind, kindColWidth), padLeft(strconv.Itoa(byKind[kind]), numColWidth))
	}
}

// rowStyle colors an already padded cell by the worst level in its row.
func (r *SummaryRenderer) rowStyle(errors, warnings int, padded string) string {
	switch {
	case errors > 0:
		return r.styles.TableErrorRow.Render(padded)
	case warnings > 0:
		return r.styles.TableWarnRow.Render(padded)
	default:
		return padded
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	issueWord := "issues"
	if totals.Issues == 1 {
		issueWord = "issue"
	}
	line := fmt.Sprintf("%d %s", totals.Issues, issueWord)

	var severityParts []string
	if totals.Errors > 0 {
		severityParts = append(severityParts, r.styles.Error.Render(fmt.Sprintf("%d errors", totals.Errors)))
	}
	if totals.Warnings > 0 {
		severityParts = append(severityParts, r.styles.Warning.Render(fmt.Sprintf("%d warnings", totals.Warnings)))
	}
	if len(severityParts) > 0 {
		line += " (" + strings.Join(severityParts, ", ") + ")"
	}

	fileWord := "files"
	if totals.FilesWithIssues == 1 {
		fileWord = "file"
	}
	line += fmt.Sprintf(" in %d %s", totals.FilesWithIssues, fileWord)

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+line)
}
