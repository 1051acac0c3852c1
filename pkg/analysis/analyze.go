// Package analysis aggregates a lint run into per-file, per-rule and
// per-kind views for the summary and HTML reports.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/lintspec/pkg/lint"
	"github.com/yaklabco/lintspec/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// RelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func RelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

type analysisContext struct {
	ruleMap   map[string]*RuleAnalysis
	fileMap   map[string]*FileAnalysis
	ruleFiles map[string]map[string]bool
	fileRules map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		ruleMap:   make(map[string]*RuleAnalysis),
		fileMap:   make(map[string]*FileAnalysis),
		ruleFiles: make(map[string]map[string]bool),
		fileRules: make(map[string]map[string]bool),
	}
}

func (ctx *analysisContext) file(path string) *FileAnalysis {
	if _, ok := ctx.fileMap[path]; !ok {
		ctx.fileMap[path] = &FileAnalysis{Path: path}
		ctx.fileRules[path] = make(map[string]bool)
	}
	return ctx.fileMap[path]
}

func (ctx *analysisContext) rule(ruleID, ruleName string) *RuleAnalysis {
	if _, ok := ctx.ruleMap[ruleID]; !ok {
		ctx.ruleMap[ruleID] = &RuleAnalysis{RuleID: ruleID, RuleName: ruleName}
		ctx.ruleFiles[ruleID] = make(map[string]bool)
	}
	return ctx.ruleMap[ruleID]
}

func newEntry(path string, item *lint.ItemDiagnostics, diag *lint.Diagnostic) DiagnosticEntry {
	return DiagnosticEntry{
		FilePath:    path,
		Item:        item.QualifiedName(),
		ItemType:    item.ItemType(),
		RuleID:      diag.RuleID,
		RuleName:    diag.RuleName,
		Kind:        diag.Kind.String(),
		Fatal:       diag.Kind.Fatal(),
		Message:     diag.Message,
		StartLine:   diag.Range.Start.Line + 1,
		StartColumn: diag.Range.Start.Column + 1,
		EndLine:     diag.Range.End.Line + 1,
		EndColumn:   diag.Range.End.Column + 1,
	}
}

func (ctx *analysisContext) buildByRule(opts Options) []RuleAnalysis {
	result := make([]RuleAnalysis, 0, len(ctx.ruleMap))
	for ruleID, ra := range ctx.ruleMap {
		for f := range ctx.ruleFiles[ruleID] {
			ra.Files = append(ra.Files, f)
		}
		slices.Sort(ra.Files)
		result = append(result, *ra)
	}
	slices.SortFunc(result, func(left, right RuleAnalysis) int {
		return compareCounts(opts, left.RuleID, right.RuleID,
			[3]int{left.Errors, left.Warnings, left.Issues},
			[3]int{right.Errors, right.Warnings, right.Issues})
	})
	return result
}

func (ctx *analysisContext) buildByFile(opts Options) []FileAnalysis {
	var result []FileAnalysis
	for path, fa := range ctx.fileMap {
		if fa.Issues == 0 {
			continue
		}
		for r := range ctx.fileRules[path] {
			fa.Rules = append(fa.Rules, r)
		}
		slices.Sort(fa.Rules)
		result = append(result, *fa)
	}
	slices.SortFunc(result, func(left, right FileAnalysis) int {
		return compareCounts(opts, left.Path, right.Path,
			[3]int{left.Errors, left.Warnings, left.Issues},
			[3]int{right.Errors, right.Warnings, right.Issues})
	})
	return result
}

// compareCounts orders two rows by opts.SortBy. Counts are
// (errors, warnings, issues); ties fall back to the key so output is
// stable across runs.
func compareCounts(opts Options, leftKey, rightKey string, left, right [3]int) int {
	var result int
	switch opts.SortBy {
	case SortByAlpha:
	case SortBySeverity:
		result = cmp.Compare(right[0], left[0])
		if result == 0 {
			result = cmp.Compare(right[1], left[1])
		}
		if result == 0 {
			result = cmp.Compare(right[2], left[2])
		}
	default:
		result = cmp.Compare(left[2], right[2])
		if opts.SortDesc {
			result = -result
		}
	}
	if result == 0 {
		result = cmp.Compare(leftKey, rightKey)
	}
	return result
}

// Analyze transforms a runner.Result into a Report in a single pass over
// the diagnostics.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
		ByKind:    make(map[string]int),
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext()

	for _, file := range result.Files {
		report.Totals.Files++
		if file.Result == nil {
			continue
		}

		displayPath := RelativePath(file.Path, opts.WorkingDir)
		fa := ctx.file(displayPath)
		if file.Result.HasIssues() {
			report.Totals.FilesWithIssues++
		}

		for i := range file.Result.Items {
			item := &file.Result.Items[i]
			report.Totals.Items++
			fa.Items++

			for j := range item.Diags {
				diag := &item.Diags[j]
				report.Totals.Issues++
				fa.Issues++
				report.ByKind[diag.Kind.String()]++

				ra := ctx.rule(diag.RuleID, diag.RuleName)
				ra.Issues++
				if diag.Kind.Fatal() {
					report.Totals.Errors++
					fa.Errors++
					ra.Errors++
				} else {
					report.Totals.Warnings++
					fa.Warnings++
					ra.Warnings++
				}

				ctx.fileRules[displayPath][diag.RuleID] = true
				ctx.ruleFiles[diag.RuleID][displayPath] = true

				if opts.IncludeDiagnostics {
					report.Diagnostics = append(report.Diagnostics, newEntry(displayPath, item, diag))
				}
			}
		}
	}

	if opts.IncludeByRule {
		report.ByRule = ctx.buildByRule(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = ctx.buildByFile(opts)
	}

	return report
}
