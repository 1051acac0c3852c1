package reporter

import (
	"bufio"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/lintspec/internal/ui/pretty"
	"github.com/yaklabco/lintspec/pkg/analysis"
	"github.com/yaklabco/lintspec/pkg/runner"
)

// TableReporter formats results as a styled table with color-coded rows.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, terminalWidth(opts, opts.Writer), opts.RuleFormat),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		return 0, nil
	}

	total := countIssues(collectFiles(result, r.opts))
	if total == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render(noIssueMessage))
		fmt.Fprintln(r.bw, r.styles.Dim.Render(
			fmt.Sprintf("%d files checked", result.Stats.FilesProcessed),
		))
		return 0, nil
	}

	fmt.Fprint(r.bw, r.formatter.FormatTable(r.ordered(result), func(path string) string {
		return analysis.RelativePath(path, r.opts.WorkingDir)
	}))

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(result.Stats))
	}

	return total, nil
}

// ordered returns result with its files sorted by display path when
// sorting was requested.
func (r *TableReporter) ordered(result *runner.Result) *runner.Result {
	if !r.opts.Sort {
		return result
	}
	sorted := *result
	sorted.Files = slices.Clone(result.Files)
	slices.SortStableFunc(sorted.Files, func(a, b runner.FileOutcome) int {
		return strings.Compare(
			analysis.RelativePath(a.Path, r.opts.WorkingDir),
			analysis.RelativePath(b.Path, r.opts.WorkingDir))
	})
	return &sorted
}
