package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintspec/pkg/definition"
	"github.com/yaklabco/lintspec/pkg/lint"
	"github.com/yaklabco/lintspec/pkg/runner"
	"github.com/yaklabco/lintspec/pkg/textindex"
)

func diag(kind lint.DiagnosticKind, id, name string) lint.Diagnostic {
	return lint.Diagnostic{
		Kind:     kind,
		RuleID:   id,
		RuleName: name,
		Message:  name + " finding",
		Range: textindex.Range{
			Start: textindex.Position{Line: 4, Column: 13},
			End:   textindex.Position{Line: 4, Column: 16},
		},
	}
}

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "/repo/src/Token.sol",
				Result: &lint.FileResult{
					Path: "/repo/src/Token.sol",
					Items: []lint.ItemDiagnostics{
						{
							Parent:     &definition.Parent{Kind: definition.KindContract, Name: "Token"},
							Kind:       definition.KindFunction,
							Visibility: definition.VisibilityExternal,
							Name:       "transfer",
							Diags: []lint.Diagnostic{
								diag(lint.KindMissingParam, "NS005", "param"),
								diag(lint.KindMissingParam, "NS005", "param"),
								diag(lint.KindMissingTag, "NS006", "return"),
							},
						},
						{
							Kind: definition.KindEvent,
							Name: "Moved",
							Diags: []lint.Diagnostic{
								diag(lint.KindMissingParam, "NS005", "param"),
							},
						},
					},
				},
			},
			{
				Path: "/repo/src/Broken.sol",
				Result: &lint.FileResult{
					Path: "/repo/src/Broken.sol",
					Items: []lint.ItemDiagnostics{{
						File: true,
						Name: "Broken.sol",
						Diags: []lint.Diagnostic{
							diag(lint.KindParsingError, lint.ParsingErrorID, lint.ParsingErrorName),
						},
					}},
				},
			},
			{Path: "/repo/src/Clean.sol", Result: &lint.FileResult{Path: "/repo/src/Clean.sol"}},
		},
	}
}

func TestAnalyze_EmptyResult(t *testing.T) {
	t.Parallel()

	report := Analyze(&runner.Result{}, DefaultOptions())

	require.NotNil(t, report)
	assert.Equal(t, 0, report.Totals.Issues)
	assert.Empty(t, report.Diagnostics)
	assert.Empty(t, report.ByFile)
	assert.Empty(t, report.ByRule)
	assert.Equal(t, ReportVersion, report.Version)
}

func TestAnalyze_NilResult(t *testing.T) {
	t.Parallel()

	report := Analyze(nil, DefaultOptions())
	require.NotNil(t, report)
	assert.False(t, report.Totals.HasIssues())
}

func TestAnalyze_CountsTotals(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), DefaultOptions())

	assert.Equal(t, Totals{
		Files:           3,
		FilesWithIssues: 2,
		Items:           3,
		Issues:          5,
		Errors:          1,
		Warnings:        4,
	}, report.Totals)
	assert.Equal(t, map[string]int{"missing-param": 3, "missing-tag": 1, "parsing-error": 1}, report.ByKind)
}

func TestAnalyze_Diagnostics(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.WorkingDir = "/repo"
	report := Analyze(sampleResult(), opts)

	require.Len(t, report.Diagnostics, 5)
	first := report.Diagnostics[0]
	assert.Equal(t, "src/Token.sol", first.FilePath)
	assert.Equal(t, "Token.transfer", first.Item)
	assert.Equal(t, "external function", first.ItemType)
	assert.Equal(t, "missing-param", first.Kind)
	assert.Equal(t, 5, first.StartLine)
	assert.Equal(t, 14, first.StartColumn)
	assert.False(t, first.Fatal)

	last := report.Diagnostics[4]
	assert.Equal(t, "file", last.ItemType)
	assert.True(t, last.Fatal)

	opts.IncludeDiagnostics = false
	assert.Empty(t, Analyze(sampleResult(), opts).Diagnostics)
}

func TestAnalyze_GroupsByRule(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), DefaultOptions())

	require.Len(t, report.ByRule, 3)
	assert.Equal(t, "NS005", report.ByRule[0].RuleID)
	assert.Equal(t, 3, report.ByRule[0].Issues)
	assert.Equal(t, []string{"/repo/src/Token.sol"}, report.ByRule[0].Files)

	// Ties on count fall back to the rule ID.
	assert.Equal(t, "NS006", report.ByRule[1].RuleID)
	assert.Equal(t, lint.ParsingErrorID, report.ByRule[2].RuleID)
}

func TestAnalyze_GroupsByFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		sortBy SortField
		want   []string
	}{
		{name: "count", sortBy: SortByCount, want: []string{"src/Token.sol", "src/Broken.sol"}},
		{name: "alpha", sortBy: SortByAlpha, want: []string{"src/Broken.sol", "src/Token.sol"}},
		{name: "severity", sortBy: SortBySeverity, want: []string{"src/Broken.sol", "src/Token.sol"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := DefaultOptions()
			opts.WorkingDir = "/repo"
			opts.SortBy = tt.sortBy
			report := Analyze(sampleResult(), opts)

			paths := make([]string, 0, len(report.ByFile))
			for _, fa := range report.ByFile {
				paths = append(paths, fa.Path)
			}
			assert.Equal(t, tt.want, paths)
		})
	}
}

func TestAnalyze_SkipsViews(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.IncludeByFile = false
	opts.IncludeByRule = false
	report := Analyze(sampleResult(), opts)

	assert.Nil(t, report.ByFile)
	assert.Nil(t, report.ByRule)
	assert.Equal(t, 5, report.Totals.Issues)
}
