package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/lintspec/internal/ui/pretty"
	"github.com/yaklabco/lintspec/pkg/config"
	"github.com/yaklabco/lintspec/pkg/lint"
	"github.com/yaklabco/lintspec/pkg/runner"
	"github.com/yaklabco/lintspec/pkg/textindex"
)

// PrettyReporter prints each diagnostic with the offending source line and
// carets under the flagged region. Excerpts need the file content, so the
// run must keep sources; without them only the headings are printed.
type PrettyReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewPrettyReporter creates a new pretty reporter.
func NewPrettyReporter(opts Options) *PrettyReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &PrettyReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  terminalWidth(opts, opts.Writer),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *PrettyReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	views := collectFiles(result, r.opts)
	total := countIssues(views)

	for _, view := range views {
		if view.Err != nil && view.Result == nil {
			fmt.Fprintf(r.bw, "%s: %s\n\n", r.styles.Error.Render("error"), view.Err)
			continue
		}
		r.reportFile(view)
	}

	switch {
	case r.opts.ShowSummary && result != nil:
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	case total == 0:
		fmt.Fprintln(r.bw, r.styles.Success.Render(noIssueMessage))
	}
	return total, nil
}

func (r *PrettyReporter) reportFile(view fileView) {
	items := view.items()
	if len(items) == 0 {
		return
	}

	var idx *textindex.Index
	if view.Result.Source != nil {
		idx = textindex.New(view.Result.Source)
	}

	for i := range items {
		item := &items[i]
		for j := range item.Diags {
			diag := &item.Diags[j]
			fmt.Fprint(r.bw, r.heading(view.Path, item, diag))
			if idx != nil {
				fmt.Fprint(r.bw, r.styles.FormatExcerpt(excerptFor(idx, diag.Range, r.width)))
			}
			fmt.Fprintln(r.bw)
		}
	}
}

// heading renders
//
//	warning[param]: @param to is missing
//	  --> src/Token.sol:12:31
//	  = in external function Token.transfer
func (r *PrettyReporter) heading(path string, item *lint.ItemDiagnostics, diag *lint.Diagnostic) string {
	rule := config.FormatRuleID(r.opts.RuleFormat, diag.RuleID, diag.RuleName)
	loc := fmt.Sprintf("%s:%d:%d", path, diag.Range.Start.Line+1, diag.Range.Start.Column+1)

	var builder strings.Builder
	builder.WriteString(r.styles.FormatSeverity(diag.Kind))
	builder.WriteString(r.styles.RuleID.Render("[" + rule + "]"))
	builder.WriteString(": " + r.styles.Message.Render(diag.Message) + "\n")
	builder.WriteString("  " + r.styles.Gutter.Render("-->") + " " + r.styles.FilePath.Render(loc) + "\n")
	if !item.File {
		builder.WriteString("  " + r.styles.Gutter.Render("=") + " in " +
			r.styles.ItemType.Render(item.ItemType()) + " " + r.styles.ItemName.Render(item.QualifiedName()) + "\n")
	}
	return builder.String()
}

// excerptFor cuts the first line of rng out of the source. A range that
// spans lines is marked to the end of its first line.
func excerptFor(idx *textindex.Index, rng textindex.Range, width int) pretty.Excerpt {
	text := string(idx.LineText(rng.Start.Line))
	end := rng.End.Column
	if rng.End.Line != rng.Start.Line {
		end = utf8.RuneCountInString(text)
	}
	return pretty.Excerpt{
		Line:      rng.Start.Line,
		Text:      text,
		Column:    rng.Start.Column,
		EndColumn: end,
		Width:     width,
	}
}
