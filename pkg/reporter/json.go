package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yaklabco/lintspec/pkg/lint"
	"github.com/yaklabco/lintspec/pkg/runner"
	"github.com/yaklabco/lintspec/pkg/textindex"
)

// JSONFile is one file in the JSON report. Only files with diagnostics
// are listed.
type JSONFile struct {
	Path  string     `json:"path"`
	Items []JSONItem `json:"items"`
}

// JSONItem is one declaration with its diagnostics.
type JSONItem struct {
	// Parent is the enclosing contract, interface or library, or null.
	Parent   *string          `json:"parent"`
	ItemType string           `json:"item_type"`
	Name     string           `json:"name"`
	Span     JSONRange        `json:"span"`
	Diags    []JSONDiagnostic `json:"diags"`
}

// JSONDiagnostic is a single finding.
type JSONDiagnostic struct {
	Span    JSONRange `json:"span"`
	Message string    `json:"message"`
}

// JSONRange is a 0-indexed line/column range.
type JSONRange struct {
	Start JSONPosition `json:"start"`
	End   JSONPosition `json:"end"`
}

// JSONPosition is a 0-indexed line and character column.
type JSONPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// JSONReporter writes an array of files with their items and
// diagnostics. An empty run produces "[]".
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	views := collectFiles(result, r.opts)
	output := buildJSON(views)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return countIssues(views), nil
}

// buildJSON converts files into the JSON report shape.
func buildJSON(views []fileView) []JSONFile {
	output := make([]JSONFile, 0, len(views))
	for _, view := range views {
		items := view.items()
		if len(items) == 0 {
			continue
		}
		file := JSONFile{Path: view.Path, Items: make([]JSONItem, 0, len(items))}
		for i := range items {
			file.Items = append(file.Items, jsonItem(&items[i]))
		}
		output = append(output, file)
	}
	return output
}

func jsonItem(item *lint.ItemDiagnostics) JSONItem {
	out := JSONItem{
		ItemType: jsonItemType(item),
		Name:     item.Name,
		Span:     jsonRange(item.Range),
		Diags:    make([]JSONDiagnostic, 0, len(item.Diags)),
	}
	if item.Parent != nil {
		name := item.Parent.Name
		out.Parent = &name
	}
	for _, diag := range item.Diags {
		out.Diags = append(out.Diags, JSONDiagnostic{
			Span:    jsonRange(diag.Range),
			Message: diag.Message,
		})
	}
	return out
}

// jsonItemType renders the item type in snake case, such as
// "external_function". File-level failures use the diagnostic kind.
func jsonItemType(item *lint.ItemDiagnostics) string {
	if item.File && len(item.Diags) > 0 {
		return strings.ReplaceAll(item.Diags[0].Kind.String(), "-", "_")
	}
	return strings.ReplaceAll(item.ItemType(), " ", "_")
}

func jsonRange(rng textindex.Range) JSONRange {
	return JSONRange{
		Start: JSONPosition{Line: rng.Start.Line, Column: rng.Start.Column},
		End:   JSONPosition{Line: rng.End.Line, Column: rng.End.Column},
	}
}
