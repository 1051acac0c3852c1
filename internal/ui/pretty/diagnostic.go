package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/lintspec/pkg/config"
	"github.com/yaklabco/lintspec/pkg/lint"
)

// FormatSeverity renders the level of a diagnostic: "error" for fatal
// file problems, "warning" for documentation findings.
func (s *Styles) FormatSeverity(kind lint.DiagnosticKind) string {
	if kind.Fatal() {
		return s.Error.Render("error")
	}
	return s.Warning.Render("warning")
}

// FormatCompact formats a diagnostic on one line:
// "path:line:col: item: message (rule)". Lines and columns are 1-based.
func (s *Styles) FormatCompact(path string, item *lint.ItemDiagnostics, diag *lint.Diagnostic, ruleFormat config.RuleFormat) string {
	location := fmt.Sprintf("%s:%d:%d", path, diag.Range.Start.Line+1, diag.Range.Start.Column+1)
	return fmt.Sprintf("%s: %s: %s %s\n",
		s.FilePath.Render(location),
		s.ItemName.Render(item.QualifiedName()),
		s.Message.Render(diag.Message),
		s.RuleID.Render("("+config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)+")"),
	)
}

// FormatItemHeader formats the heading line of one declaration, such as
// "  external function Token.transfer (12:5)".
func (s *Styles) FormatItemHeader(item *lint.ItemDiagnostics) string {
	loc := fmt.Sprintf("(%d:%d)", item.Range.Start.Line+1, item.Range.Start.Column+1)
	return fmt.Sprintf("  %s %s %s\n",
		s.ItemType.Render(item.ItemType()),
		s.ItemName.Render(item.QualifiedName()),
		s.Location.Render(loc),
	)
}

// FormatDiagnosticLine formats a diagnostic below its item header.
func (s *Styles) FormatDiagnosticLine(diag *lint.Diagnostic, ruleFormat config.RuleFormat) string {
	loc := fmt.Sprintf("%d:%d", diag.Range.Start.Line+1, diag.Range.Start.Column+1)
	return fmt.Sprintf("    %s  %s  %s  %s\n",
		s.Location.Render(loc),
		s.FormatSeverity(diag.Kind),
		s.Message.Render(diag.Message),
		s.RuleID.Render("("+config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)+")"),
	)
}

// Excerpt is the source shown under a diagnostic.
type Excerpt struct {
	// Line is the 0-based line number of Text.
	Line int

	// Text is the source line without its terminator.
	Text string

	// Column and EndColumn delimit the marked region in characters on Line.
	// EndColumn is ignored when it is not after Column.
	Column    int
	EndColumn int

	// Width caps the rendered line; 0 means no limit.
	Width int
}

// FormatExcerpt renders an excerpt with a line-number gutter and carets
// under the marked region. Caret positions use display width, so tabs and
// wide characters before the marked region keep the carets aligned.
func (s *Styles) FormatExcerpt(ex Excerpt) string {
	lineNo := strconv.Itoa(ex.Line + 1)
	pad := strings.Repeat(" ", len(lineNo))

	runes := []rune(ex.Text)
	start := min(max(ex.Column, 0), len(runes))
	end := start
	if ex.EndColumn > ex.Column {
		end = min(ex.EndColumn, len(runes))
	}

	offset := displayWidth(string(runes[:start]))
	carets := max(1, displayWidth(string(runes[start:end])))

	text := expandTabs(ex.Text)
	if ex.Width > 0 {
		avail := ex.Width - len(lineNo) - 4
		if avail > 0 && runewidth.StringWidth(text) > avail {
			text = runewidth.Truncate(text, avail, "…")
			offset = min(offset, avail-1)
			carets = max(1, min(carets, avail-offset))
		}
	}

	gutter := s.Gutter.Render("|")
	var builder strings.Builder
	builder.WriteString(" " + pad + " " + gutter + "\n")
	builder.WriteString(" " + s.Gutter.Render(lineNo) + " " + gutter + " " + s.SourceLine.Render(text) + "\n")
	builder.WriteString(" " + pad + " " + gutter + " " +
		strings.Repeat(" ", offset) + s.Caret.Render(strings.Repeat("^", carets)) + "\n")
	return builder.String()
}

const tabWidth = 4

func expandTabs(text string) string {
	return strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth))
}

func displayWidth(text string) int {
	return runewidth.StringWidth(expandTabs(text))
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		word := "issues"
		if issueCount == 1 {
			word = "issue"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, word))
	}
	return header
}
