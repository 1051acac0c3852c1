package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/lintspec/pkg/config"
	"github.com/yaklabco/lintspec/pkg/lint"
	"github.com/yaklabco/lintspec/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // FILE, LOC, ITEM, MESSAGE, RULE
	minFileWidth     = 16
	minLocWidth      = 7
	minItemWidth     = 12
	minMessageWidth  = 30
	minRuleWidth     = 6
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow represents a single row in the diagnostic table.
type TableRow struct {
	File     string
	Location string
	Item     string
	Message  string
	Rule     string
	Fatal    bool
}

// TableFormatter formats diagnostics as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
	ruleFormat   config.RuleFormat
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int, ruleFormat config.RuleFormat) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
		ruleFormat:   ruleFormat,
	}
}

type columnWidths struct {
	file    int
	loc     int
	item    int
	message int
	rule    int
}

func (w columnWidths) total() int {
	return w.file + w.loc + w.item + w.message + w.rule + tablePadding*tableColumnCount
}

// FormatTable formats runner results as a styled table, one group of rows
// per file. displayPath maps absolute paths for display; nil keeps them.
func (t *TableFormatter) FormatTable(result *runner.Result, displayPath func(string) string) string {
	if result == nil {
		return ""
	}
	if displayPath == nil {
		displayPath = func(p string) string { return p }
	}

	groups := t.collectRows(result, displayPath)
	if len(groups) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(groups)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths) + "\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")

	for i, group := range groups {
		if i > 0 {
			builder.WriteString(t.formatSeparator(widths, lightSeparator) + "\n")
		}
		for _, row := range group {
			builder.WriteString(t.formatRow(row, widths) + "\n")
		}
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")
	builder.WriteString(t.formatLegend() + "\n")

	return builder.String()
}

// RowsFor converts one file's items into table rows.
func RowsFor(path string, items []lint.ItemDiagnostics, ruleFormat config.RuleFormat) []TableRow {
	var rows []TableRow
	for i := range items {
		item := &items[i]
		for j := range item.Diags {
			diag := &item.Diags[j]
			rows = append(rows, TableRow{
				File:     path,
				Location: fmt.Sprintf("%d:%d", diag.Range.Start.Line+1, diag.Range.Start.Column+1),
				Item:     item.QualifiedName(),
				Message:  diag.Message,
				Rule:     config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName),
				Fatal:    diag.Kind.Fatal(),
			})
		}
	}
	return rows
}

func (t *TableFormatter) collectRows(result *runner.Result, displayPath func(string) string) [][]TableRow {
	var groups [][]TableRow
	for _, file := range result.Files {
		if file.Result == nil {
			continue
		}
		if rows := RowsFor(displayPath(file.Path), file.Result.Items, t.ruleFormat); len(rows) > 0 {
			groups = append(groups, rows)
		}
	}
	return groups
}

func (t *TableFormatter) calculateColumnWidths(groups [][]TableRow) columnWidths {
	widths := columnWidths{
		file:    minFileWidth,
		loc:     minLocWidth,
		item:    minItemWidth,
		message: minMessageWidth,
		rule:    minRuleWidth,
	}

	for _, group := range groups {
		for _, row := range group {
			widths.file = max(widths.file, runewidth.StringWidth(row.File))
			widths.loc = max(widths.loc, len(row.Location))
			widths.item = max(widths.item, runewidth.StringWidth(row.Item))
			widths.message = max(widths.message, runewidth.StringWidth(row.Message))
			widths.rule = max(widths.rule, len(row.Rule))
		}
	}

	// Shrink message, then file, then item to fit the terminal.
	shrink := func(col *int, floor int) {
		if excess := widths.total() - t.termWidth; excess > 0 {
			*col = max(floor, *col-excess)
		}
	}
	shrink(&widths.message, minMessageWidth)
	shrink(&widths.file, minFileWidth)
	shrink(&widths.item, minItemWidth)

	return widths
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := " " + pad("FILE", widths.file) + "  " + pad("LOC", widths.loc) + "  " +
		pad("ITEM", widths.item) + "  " + pad("MESSAGE", widths.message) + "  " + pad("RULE", widths.rule)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, widths.total()))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := " " + pad(truncateLeft(row.File, widths.file), widths.file) + "  " +
		pad(row.Location, widths.loc) + "  " +
		pad(truncateRight(row.Item, widths.item), widths.item) + "  " +
		pad(truncateRight(row.Message, widths.message), widths.message) + "  " +
		pad(row.Rule, widths.rule)
	return t.rowStyle(row.Fatal).Render(content)
}

func (t *TableFormatter) rowStyle(fatal bool) lipgloss.Style {
	if fatal {
		return t.styles.TableErrorRow
	}
	return t.styles.TableWarnRow
}

func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Legend: parsing-error and io-error rows mark files that were not checked")
	}
	return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s = file not checked  %s = documentation issue",
		t.styles.TableErrorRow.Render(" error "), t.styles.TableWarnRow.Render(" warning ")))
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats) string {
	parts := []string{fmt.Sprintf("%d %s checked", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))}
	if stats.FilesErrored > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d not checked", stats.FilesErrored)))
	}
	if stats.DiagnosticsTotal > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d %s", stats.DiagnosticsTotal,
			plural(stats.DiagnosticsTotal, "issue", "issues"))))
	}
	return " " + strings.Join(parts, " | ")
}

// pad right-pads s to width display columns.
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// truncateRight shortens s to width display columns, ending in "…".
func truncateRight(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

// truncateLeft shortens a path from the front so the file name survives.
func truncateLeft(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for i := range runes {
		rest := string(runes[i:])
		if runewidth.StringWidth(rest)+1 <= width {
			return "…" + rest
		}
	}
	return ""
}
