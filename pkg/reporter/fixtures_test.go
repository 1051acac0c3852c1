package reporter_test

import (
	"errors"

	"github.com/yaklabco/lintspec/pkg/definition"
	"github.com/yaklabco/lintspec/pkg/lint"
	"github.com/yaklabco/lintspec/pkg/runner"
	"github.com/yaklabco/lintspec/pkg/textindex"
)

const (
	workDir   = "/work"
	tokenPath = "/work/src/Token.sol"
	brokenSrc = "/work/broken.sol"
)

const tokenSource = "pragma solidity ^0.8.0;\n\ncontract Token {\n    function transfer(address to) public {}\n}\n"

func pos(line, column, offset int) textindex.Position {
	return textindex.Position{Line: line, Column: column, Offset: offset}
}

func tokenResult(keepSource bool) *lint.FileResult {
	result := &lint.FileResult{
		Path:        tokenPath,
		Definitions: 2,
		Items: []lint.ItemDiagnostics{{
			Parent:     &definition.Parent{Kind: definition.KindContract, Name: "Token"},
			Kind:       definition.KindFunction,
			Visibility: definition.VisibilityPublic,
			Name:       "transfer",
			Span:       textindex.Span{Start: 46, End: 84},
			Range:      textindex.Range{Start: pos(3, 4, 46), End: pos(3, 42, 84)},
			Diags: []lint.Diagnostic{{
				Kind:     lint.KindMissingParam,
				RuleID:   "NS005",
				RuleName: "param",
				Message:  "@param to is missing",
				Span:     textindex.Span{Start: 72, End: 74},
				Range:    textindex.Range{Start: pos(3, 30, 72), End: pos(3, 32, 74)},
			}},
		}},
	}
	if keepSource {
		result.Source = []byte(tokenSource)
	}
	return result
}

func brokenResult() *lint.FileResult {
	err := errors.New("syntax error")
	return &lint.FileResult{
		Path: brokenSrc,
		Items: []lint.ItemDiagnostics{{
			File: true,
			Name: "broken.sol",
			Diags: []lint.Diagnostic{{
				Kind:     lint.KindParsingError,
				RuleID:   lint.ParsingErrorID,
				RuleName: lint.ParsingErrorName,
				Message:  err.Error(),
			}},
		}},
		Err: err,
	}
}

// sampleResult holds one documentation finding and one file that failed
// to parse, in discovery order.
func sampleResult(keepSource bool) *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: tokenPath, Result: tokenResult(keepSource)},
			{Path: brokenSrc, Result: brokenResult()},
		},
		Stats: runner.Stats{
			FilesDiscovered:    2,
			FilesProcessed:     2,
			FilesErrored:       1,
			FilesWithIssues:    2,
			DiagnosticsTotal:   2,
			DiagnosticsByKind:  map[string]int{"missing-param": 1, "parsing-error": 1},
			DefinitionsChecked: 2,
		},
	}
}

func cleanResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{{
			Path:   tokenPath,
			Result: &lint.FileResult{Path: tokenPath, Definitions: 3},
		}},
		Stats: runner.Stats{
			FilesDiscovered:    1,
			FilesProcessed:     1,
			DiagnosticsByKind:  map[string]int{},
			DefinitionsChecked: 3,
		},
	}
}
