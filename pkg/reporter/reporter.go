// Package reporter renders lint results in the supported output formats.
package reporter

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"

	"golang.org/x/term"

	"github.com/yaklabco/lintspec/pkg/analysis"
	"github.com/yaklabco/lintspec/pkg/lint"
	"github.com/yaklabco/lintspec/pkg/runner"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// Compile-time interface check for reporterFacade.
var _ Reporter = (*reporterFacade)(nil)

// Reporter formats and writes lint results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of issues reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// reporterFacade bridges the Reporter interface to Renderer implementations.
type reporterFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

// Report implements Reporter by analyzing the result and rendering it.
func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, f.analysisOpts)
	if err := f.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}

func newRendererFacade(renderer Renderer, opts Options) *reporterFacade {
	sortBy := analysis.SortByCount
	if opts.Sort {
		sortBy = analysis.SortByAlpha
	}
	return &reporterFacade{
		renderer: renderer,
		analysisOpts: analysis.Options{
			IncludeDiagnostics: true,
			IncludeByFile:      true,
			IncludeByRule:      true,
			SortBy:             sortBy,
			SortDesc:           !opts.Sort,
			RuleFormat:         opts.RuleFormat,
			WorkingDir:         opts.WorkingDir,
		},
	}
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatCompact:
		opts.Compact = true
		return NewTextReporter(opts), nil
	case FormatPretty:
		return NewPrettyReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatGitHub:
		return NewGitHubReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatSummary:
		return newRendererFacade(NewSummaryRenderer(opts), opts), nil
	case FormatHTML:
		return newRendererFacade(NewHTMLRenderer(opts), opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// fileView is one file as the reporters see it.
type fileView struct {
	// Path is the display path.
	Path   string
	Result *lint.FileResult
	Err    error
}

func (v fileView) items() []lint.ItemDiagnostics {
	if v.Result == nil {
		return nil
	}
	return v.Result.Items
}

// collectFiles returns the processed files with display paths, ordered by
// path when opts.Sort is set. Files with neither diagnostics nor an error
// are kept; renderers skip them as they see fit.
func collectFiles(result *runner.Result, opts Options) []fileView {
	if result == nil {
		return nil
	}
	views := make([]fileView, 0, len(result.Files))
	for _, outcome := range result.Files {
		views = append(views, fileView{
			Path:   analysis.RelativePath(outcome.Path, opts.WorkingDir),
			Result: outcome.Result,
			Err:    outcome.Error,
		})
	}
	if opts.Sort {
		slices.SortStableFunc(views, func(a, b fileView) int {
			return cmp.Compare(a.Path, b.Path)
		})
	}
	return views
}

// countIssues counts every diagnostic in views.
func countIssues(views []fileView) int {
	total := 0
	for _, view := range views {
		if view.Result != nil {
			total += view.Result.IssueCount()
		}
	}
	return total
}

// terminalWidth returns the configured width, the width of writer when it
// is a terminal, or defaultTermWidth.
func terminalWidth(opts Options, writer io.Writer) int {
	if opts.TermWidth > 0 {
		return opts.TermWidth
	}
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
