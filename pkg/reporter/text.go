package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/lintspec/internal/ui/pretty"
	"github.com/yaklabco/lintspec/pkg/runner"
)

// noIssueMessage is printed when a run finds nothing and no summary was
// requested.
const noIssueMessage = "No issue found"

// TextReporter formats results as styled terminal output, grouped by file
// and item, or one line per diagnostic in compact mode.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	views := collectFiles(result, r.opts)
	total := countIssues(views)

	if r.opts.Compact {
		r.reportCompact(views)
	} else {
		r.reportGrouped(views)
	}

	switch {
	case r.opts.ShowSummary && result != nil:
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	case total == 0:
		fmt.Fprintln(r.bw, r.styles.Success.Render(noIssueMessage))
	}

	return total, nil
}

// reportGrouped writes a header per file, then each item followed by its
// diagnostics.
func (r *TextReporter) reportGrouped(views []fileView) {
	for _, view := range views {
		if view.Err != nil && view.Result == nil {
			r.writeFileError(view)
			continue
		}
		items := view.items()
		if len(items) == 0 {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(view.Path, view.Result.IssueCount()))
		for i := range items {
			item := &items[i]
			fmt.Fprint(r.bw, r.styles.FormatItemHeader(item))
			for j := range item.Diags {
				fmt.Fprint(r.bw, r.styles.FormatDiagnosticLine(&item.Diags[j], r.opts.RuleFormat))
			}
		}
		fmt.Fprintln(r.bw)
	}
}

// reportCompact writes one "path:line:col: item: message (rule)" line per
// diagnostic.
func (r *TextReporter) reportCompact(views []fileView) {
	for _, view := range views {
		if view.Err != nil && view.Result == nil {
			r.writeFileError(view)
			continue
		}
		items := view.items()
		for i := range items {
			item := &items[i]
			for j := range item.Diags {
				fmt.Fprint(r.bw, r.styles.FormatCompact(view.Path, item, &item.Diags[j], r.opts.RuleFormat))
			}
		}
	}
}

func (r *TextReporter) writeFileError(view fileView) {
	fmt.Fprintf(r.bw, "%s: %s\n",
		r.styles.FilePath.Render(view.Path),
		r.styles.Error.Render(fmt.Sprintf("error: %v", view.Err)),
	)
}
